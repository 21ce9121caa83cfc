// Package sample assigns disjoint roles over a node population using
// sampling without replacement.
package sample

import (
	"fmt"

	"github.com/pkg/errors"

	lab "github.com/ndn-campus/lab/pkg"
)

// ErrInsufficientPopulation is matched by every *InsufficientPopulationError.
var ErrInsufficientPopulation = errors.New("insufficient population")

// InsufficientPopulationError is returned when a draw asks for more nodes
// than remain available, or for a negative number of nodes.
type InsufficientPopulationError struct {
	Role      string
	Requested int
	Available int
}

func (e *InsufficientPopulationError) Error() string {
	if e.Role == "" {
		return fmt.Sprintf("%s: requested %d, available %d",
			ErrInsufficientPopulation, e.Requested, e.Available)
	}

	return fmt.Sprintf("%s: role %q requested %d, available %d",
		ErrInsufficientPopulation, e.Role, e.Requested, e.Available)
}

// Is reports whether target is ErrInsufficientPopulation.
func (e *InsufficientPopulationError) Is(target error) bool {
	return target == ErrInsufficientPopulation
}

// Loggable representation of the error
func (e *InsufficientPopulationError) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"role":      e.Role,
		"requested": e.Requested,
		"available": e.Available,
	}
}

// Sample draws n distinct nodes from ps.  It returns the selected nodes in
// draw order and the nodes that were not selected.  The caller's slice is
// never modified; both results are freshly allocated.
//
// Sample performs a partial Fisher-Yates shuffle over the trailing n slots
// of a working copy, so every ordered n-subset is equally likely.
func Sample(rng lab.Source, ps lab.Population, n int) (selected, remaining lab.Population, err error) {
	if n < 0 || n > len(ps) {
		return nil, nil, &InsufficientPopulationError{
			Requested: n,
			Available: len(ps),
		}
	}

	w := ps.Clone()
	selected = make(lab.Population, 0, n)
	for i := len(w) - 1; i >= len(w)-n; i-- {
		j := rng.Intn(i + 1)
		selected = append(selected, w[j])
		w.Swap(i, j)
	}

	k := len(w) - n
	return selected, w[:k:k], nil
}

// Within picks n nodes from a single container.
func Within(rng lab.Source, ps lab.Population, n int) (lab.Population, error) {
	selected, _, err := Sample(rng, ps, n)
	return selected, err
}

// ClientsAndServers draws clients, then servers from whatever the clients
// left behind.  The two results are always disjoint.
func ClientsAndServers(rng lab.Source, ps lab.Population, clients, servers int) (Assignment, error) {
	s := New(rng, ps)

	if _, err := s.Assign(RoleClient, clients); err != nil {
		return Assignment{}, err
	}

	if _, err := s.Assign(RoleServer, servers); err != nil {
		return Assignment{}, err
	}

	return s.Assignment(), nil
}
