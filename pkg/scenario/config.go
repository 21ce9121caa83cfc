// Package scenario ties the planner and the sampler together into a single
// scenario run.
package scenario

import (
	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ndn-campus/lab/pkg/topology"
)

// Placement strategy for clients and servers.
type Placement string

const (
	// Filtered places clients on LAN leaves and servers on tier1 routers.
	Filtered Placement = "filtered"
	// Random places clients, then servers, anywhere in the network.
	Random Placement = "random"
)

// Config of a scenario.  It can be read from a TOML file; command-line
// flags override individual fields.
type Config struct {
	Name        string    `toml:"name"`
	Campuses    int       `toml:"campuses"`
	LANClients  int       `toml:"lan_clients"`
	Clients     int       `toml:"clients"`
	Servers     int       `toml:"servers"`
	ContentSize uint64    `toml:"content_size"`
	Placement   Placement `toml:"placement"`
	Results     string    `toml:"results"`

	// Seed for the PRNG.  Nil means seed from the clock.
	Seed *int64 `toml:"seed"`
}

// Default scenario: three campuses, 42 leaves per LAN, one client and one
// server placed on the filtered populations.
func Default() Config {
	return Config{
		Name:       "disaster-tcp",
		Campuses:   3,
		LANClients: 42,
		Clients:    1,
		Servers:    1,
		Placement:  Filtered,
		Results:    "results",
	}
}

// Load a TOML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "decode %s", path)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, cfg.Validate()
}

// Spec for the planner.
func (c Config) Spec() topology.Spec {
	return topology.NewSpec(c.Campuses, c.LANClients)
}

// Validate the parts of the config the planner does not check.
func (c Config) Validate() error {
	if err := c.Spec().Validate(); err != nil {
		return err
	}

	switch c.Placement {
	case Filtered, Random:
	default:
		return errors.Errorf("unknown placement %q", c.Placement)
	}

	if c.Clients < 0 {
		return errors.Errorf("clients=%d: must not be negative", c.Clients)
	}

	if c.Servers < 0 {
		return errors.Errorf("servers=%d: must not be negative", c.Servers)
	}

	if c.Name == "" {
		return errors.New("name must not be empty")
	}

	return nil
}

// Loggable representation of the config
func (c Config) Loggable() map[string]interface{} {
	m := map[string]interface{}{
		"name":         c.Name,
		"campuses":     c.Campuses,
		"lan_clients":  c.LANClients,
		"clients":      c.Clients,
		"servers":      c.Servers,
		"content_size": c.ContentSize,
		"placement":    c.Placement,
	}

	if c.Seed != nil {
		m["seed"] = *c.Seed
	}

	return m
}
