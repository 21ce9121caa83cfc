package topology

import (
	"fmt"
	"io"
	"net/netip"
	"text/tabwriter"

	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"
)

// Allocation of one /24 block to one link.
type Allocation struct {
	Campus int // originating campus; for ring links the campus at the near end
	Tier   Tier
	Kind   LinkKind
	Index  int // position among links sharing Campus, Tier and Kind
	Subnet netip.Prefix
}

func (a Allocation) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"campus": a.Campus,
		"tier":   a.Tier.String(),
		"kind":   a.Kind.String(),
		"index":  a.Index,
		"subnet": a.Subnet.String(),
	}
}

// AddressPlan lists every block handed out, in the order links were built.
// The network builder re-derives the same blocks; the plan exists so the
// two can be checked against each other.
type AddressPlan []Allocation

// Lookup the block for a link.
func (p AddressPlan) Lookup(campus int, t Tier, k LinkKind, index int) (netip.Prefix, bool) {
	for _, a := range p {
		if a.Campus == campus && a.Tier == t && a.Kind == k && a.Index == index {
			return a.Subnet, true
		}
	}
	return netip.Prefix{}, false
}

// Validate that no two links share a block.
func (p AddressPlan) Validate() error {
	seen := mapset.NewThreadUnsafeSet()
	for _, a := range p {
		if !a.Subnet.IsValid() {
			return errors.Errorf("campus %d %s/%s link %d: no subnet",
				a.Campus, a.Tier, a.Kind, a.Index)
		}

		if !seen.Add(a.Subnet.Masked()) {
			return errors.Errorf("campus %d %s/%s link %d: %s allocated twice",
				a.Campus, a.Tier, a.Kind, a.Index, a.Subnet)
		}
	}
	return nil
}

// WriteTo writes the plan as an aligned table.
func (p AddressPlan) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 8, 1, ' ', 0)

	fmt.Fprintln(tw, "CAMPUS\tTIER\tKIND\tINDEX\tSUBNET")
	for _, a := range p {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n", a.Campus, a.Tier, a.Kind, a.Index, a.Subnet)
	}

	err := tw.Flush()
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

func block(a, b, c uint8) netip.Prefix {
	return netip.PrefixFrom(netip.AddrFrom4([4]byte{a, b, c, 0}), 24)
}

func campusOctet(z int) uint8 {
	return uint8(CampusOctetBase + z)
}

func lanOctet(t Tier, group int) uint8 {
	return tierOctet[t]*LANOctetScale + uint8(group)
}
