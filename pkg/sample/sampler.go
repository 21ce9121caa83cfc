package sample

import (
	mapset "github.com/deckarep/golang-set"
	"github.com/pkg/errors"

	lab "github.com/ndn-campus/lab/pkg"
)

// Well-known roles.
const (
	RoleClient = "client"
	RoleServer = "server"
)

// Sampler hands out disjoint roles from a shrinking pool.  Every call to
// Assign draws from the nodes that earlier calls left behind, so there is
// no way to sample twice from the same view of the population.
type Sampler struct {
	rng    lab.Source
	origin lab.Population
	pool   lab.Population
	roles  Assignment
}

// New sampler over ps.  The sampler keeps its own copy of ps.
func New(rng lab.Source, ps lab.Population) *Sampler {
	return &Sampler{
		rng:    rng,
		origin: ps.Clone(),
		pool:   ps.Clone(),
	}
}

// Loggable representation of the sampler
func (s *Sampler) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"population": len(s.origin),
		"remaining":  len(s.pool),
		"roles":      len(s.roles.order),
	}
}

// Assign n nodes to role.  On error the pool is left untouched.
func (s *Sampler) Assign(role string, n int) (lab.Population, error) {
	if _, ok := s.roles.sets[role]; ok {
		return nil, errors.Errorf("role %q already assigned", role)
	}

	selected, remaining, err := Sample(s.rng, s.pool, n)
	if err != nil {
		if ipe, ok := err.(*InsufficientPopulationError); ok {
			ipe.Role = role
		}
		return nil, err
	}

	s.pool = remaining
	s.roles.add(role, selected)
	return selected.Clone(), nil
}

// Remaining nodes that have not been assigned a role.
func (s *Sampler) Remaining() lab.Population {
	return s.pool.Clone()
}

// Assignment made so far.
func (s *Sampler) Assignment() Assignment {
	return s.roles.clone()
}

// Assignment maps role names to disjoint node sets.  Roles keep the order
// in which they were assigned.
type Assignment struct {
	order []string
	sets  map[string]lab.Population
}

func (a *Assignment) add(role string, ps lab.Population) {
	if a.sets == nil {
		a.sets = make(map[string]lab.Population)
	}

	a.order = append(a.order, role)
	a.sets[role] = ps
}

func (a Assignment) clone() Assignment {
	var c Assignment
	for _, role := range a.order {
		c.add(role, a.sets[role].Clone())
	}
	return c
}

// Merge assignments drawn from separate containers.  Roles must not repeat;
// callers that need disjoint sets across containers should Validate the
// result.
func Merge(as ...Assignment) (Assignment, error) {
	var m Assignment
	for _, a := range as {
		for _, role := range a.order {
			if _, ok := m.sets[role]; ok {
				return Assignment{}, errors.Errorf("role %q assigned twice", role)
			}
			m.add(role, a.sets[role].Clone())
		}
	}
	return m, nil
}

// Roles in assignment order.
func (a Assignment) Roles() []string {
	return append([]string(nil), a.order...)
}

// Get the nodes assigned to role, in draw order.
func (a Assignment) Get(role string) lab.Population {
	return a.sets[role].Clone()
}

// Clients is shorthand for Get(RoleClient).
func (a Assignment) Clients() lab.Population { return a.Get(RoleClient) }

// Servers is shorthand for Get(RoleServer).
func (a Assignment) Servers() lab.Population { return a.Get(RoleServer) }

// Loggable representation of the assignment
func (a Assignment) Loggable() map[string]interface{} {
	m := make(map[string]interface{}, len(a.order))
	for _, role := range a.order {
		m[role] = len(a.sets[role])
	}
	return m
}

// Validate that all role sets are pairwise disjoint, contain no duplicates,
// and are drawn from origin.
func (a Assignment) Validate(origin lab.Population) error {
	universe := mapset.NewThreadUnsafeSet()
	for _, id := range origin {
		universe.Add(id)
	}

	seen := mapset.NewThreadUnsafeSet()
	for _, role := range a.order {
		for _, id := range a.sets[role] {
			if !universe.Contains(id) {
				return errors.Errorf("role %q: node %d not in population", role, id)
			}

			if !seen.Add(id) {
				return errors.Errorf("role %q: node %d assigned twice", role, id)
			}
		}
	}

	return nil
}
