// Package results persists the node ids chosen for each role, one id per
// line, in the file layout downstream analysis scripts expect.
package results

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	lab "github.com/ndn-campus/lab/pkg"
)

// Key identifies a scenario in result file names.
type Key struct {
	Prefix      string
	Campuses    int
	Servers     int
	Clients     int
	ContentSize uint64
}

// Filename for the given role, e.g.
// results/disaster-tcp-servers-02-003-010-000001048576.txt
func Filename(dir, role string, k Key) string {
	return filepath.Join(dir, fmt.Sprintf("%s-%s-%02d-%03d-%03d-%012d.txt",
		k.Prefix, role, k.Campuses, k.Servers, k.Clients, k.ContentSize))
}

// WriteIDs writes one id per line.
func WriteIDs(w io.Writer, ids lab.Population) error {
	bw := bufio.NewWriter(w)
	for _, id := range ids {
		if _, err := fmt.Fprintln(bw, id); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadIDs parses a file written by WriteIDs.
func ReadIDs(r io.Reader) (lab.Population, error) {
	var ps lab.Population
	s := bufio.NewScanner(r)
	for s.Scan() {
		var id lab.NodeID
		if _, err := fmt.Sscan(s.Text(), &id); err != nil {
			return nil, errors.Wrapf(err, "line %d", len(ps)+1)
		}
		ps = append(ps, id)
	}
	return ps, s.Err()
}

// Write the server and client files into dir, creating it if needed.  It
// returns the paths written, servers first.
func Write(dir string, k Key, servers, clients lab.Population) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create results dir")
	}

	paths := []string{
		Filename(dir, "servers", k),
		Filename(dir, "clients", k),
	}

	var g errgroup.Group
	g.Go(writeFile(paths[0], servers))
	g.Go(writeFile(paths[1], clients))

	return paths, g.Wait()
}

func writeFile(path string, ids lab.Population) func() error {
	return func() (err error) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Append(err, f.Close())
		}()

		return errors.Wrapf(WriteIDs(f, ids), "write %s", path)
	}
}
