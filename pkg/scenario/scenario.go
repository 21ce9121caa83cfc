package scenario

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"

	lab "github.com/ndn-campus/lab/pkg"
	"github.com/ndn-campus/lab/pkg/sample"
	"github.com/ndn-campus/lab/pkg/topology"
)

// Run is the outcome of a single scenario: the planned network and the
// roles sampled over it.
type Run struct {
	ID      uuid.UUID
	Config  Config
	Seed    int64
	Network *topology.Network
	Roles   sample.Assignment
}

// Loggable representation of the run
func (r *Run) Loggable() map[string]interface{} {
	return map[string]interface{}{
		"run":       r.ID,
		"seed":      r.Seed,
		"placement": r.Config.Placement,
		"clients":   len(r.Roles.Clients()),
		"servers":   len(r.Roles.Servers()),
	}
}

// Clients in draw order.
func (r *Run) Clients() lab.Population { return r.Roles.Clients() }

// Servers in draw order.
func (r *Run) Servers() lab.Population { return r.Roles.Servers() }

// Execute the scenario.  The PRNG is seeded from cfg.Seed when set and
// from the clock otherwise; the seed used is recorded in the run.
func Execute(cfg Config) (*Run, error) {
	seed := lab.DefaultSeed()
	if cfg.Seed != nil {
		seed = *cfg.Seed
	}

	return ExecuteWith(cfg, seed, lab.NewSource(seed))
}

// ExecuteWith runs the scenario against an explicit source.  Seed is only
// recorded.  The topology is planned first; sampling only starts once the
// whole network exists.
func ExecuteWith(cfg Config, seed int64, rng lab.Source) (*Run, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n, err := topology.Plan(cfg.Spec())
	if err != nil {
		return nil, err
	}

	if err = n.Addresses.Validate(); err != nil {
		return nil, errors.Wrap(err, "address plan")
	}

	roles, err := Place(cfg, n, rng)
	if err != nil {
		return nil, errors.Wrapf(err, "%s placement", cfg.Placement)
	}

	return &Run{
		ID:      uuid.New(),
		Config:  cfg,
		Seed:    seed,
		Network: n,
		Roles:   roles,
	}, nil
}

// Place clients and servers on an already planned network according to
// cfg.Placement.  The returned roles are validated against the network.
func Place(cfg Config, n *topology.Network, rng lab.Source) (sample.Assignment, error) {
	roles, err := place(cfg, n, rng)
	if err != nil {
		return sample.Assignment{}, err
	}

	return roles, errors.Wrap(roles.Validate(n.Nodes()), "role assignment")
}

func place(cfg Config, n *topology.Network, rng lab.Source) (sample.Assignment, error) {
	switch cfg.Placement {
	case Random:
		return sample.ClientsAndServers(rng, n.Nodes(), cfg.Clients, cfg.Servers)

	case Filtered:
		clients := sample.New(rng, n.Leaves())
		if _, err := clients.Assign(sample.RoleClient, cfg.Clients); err != nil {
			return sample.Assignment{}, err
		}

		servers := sample.New(rng, n.Routers(topology.Tier1))
		if _, err := servers.Assign(sample.RoleServer, cfg.Servers); err != nil {
			return sample.Assignment{}, err
		}

		return sample.Merge(clients.Assignment(), servers.Assignment())
	}

	return sample.Assignment{}, errors.Errorf("unknown placement %q", cfg.Placement)
}
