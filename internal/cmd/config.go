package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/ndn-campus/lab/pkg/scenario"
)

// scenarioFlags are shared by every command that builds a scenario.
func scenarioFlags() []cli.Flag {
	return []cli.Flag{
		&cli.PathFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "scenario TOML file; flags override its values",
			EnvVars: []string{"CAMPUS_CONFIG"},
		},
		&cli.IntFlag{
			Name:    "campuses",
			Aliases: []string{"networks"},
			Usage:   "number of campus networks joined in the ring",
			EnvVars: []string{"CAMPUS_CAMPUSES"},
		},
		&cli.IntFlag{
			Name:    "lan",
			Usage:   "number of leaf nodes per LAN group",
			EnvVars: []string{"CAMPUS_LAN"},
		},
		&cli.IntFlag{
			Name:    "clients",
			Usage:   "number of client nodes to place",
			EnvVars: []string{"CAMPUS_CLIENTS"},
		},
		&cli.IntFlag{
			Name:    "servers",
			Usage:   "number of server nodes to place",
			EnvVars: []string{"CAMPUS_SERVERS"},
		},
		&cli.Uint64Flag{
			Name:    "contentsize",
			Usage:   "bytes each application transfers",
			EnvVars: []string{"CAMPUS_CONTENTSIZE"},
		},
		&cli.StringFlag{
			Name:    "placement",
			Usage:   "filtered, random",
			EnvVars: []string{"CAMPUS_PLACEMENT"},
		},
		&cli.Int64Flag{
			Name:    "seed",
			Usage:   "PRNG seed (default: derived from clock and pid)",
			EnvVars: []string{"CAMPUS_SEED"},
		},
		&cli.PathFlag{
			Name:    "results",
			Usage:   "directory for result files",
			EnvVars: []string{"CAMPUS_RESULTS"},
		},
		&cli.StringFlag{
			Name:    "name",
			Usage:   "scenario name, used as result file prefix",
			EnvVars: []string{"CAMPUS_NAME"},
		},
	}
}

// loadConfig reads the scenario file, if any, and applies flag overrides.
func loadConfig(c *cli.Context) (cfg scenario.Config, err error) {
	cfg = scenario.Default()
	if path := c.Path("config"); path != "" {
		if cfg, err = scenario.Load(path); err != nil {
			return
		}
	}

	if c.IsSet("campuses") {
		cfg.Campuses = c.Int("campuses")
	}
	if c.IsSet("lan") {
		cfg.LANClients = c.Int("lan")
	}
	if c.IsSet("clients") {
		cfg.Clients = c.Int("clients")
	}
	if c.IsSet("servers") {
		cfg.Servers = c.Int("servers")
	}
	if c.IsSet("contentsize") {
		cfg.ContentSize = c.Uint64("contentsize")
	}
	if c.IsSet("placement") {
		cfg.Placement = scenario.Placement(c.String("placement"))
	}
	if c.IsSet("seed") {
		seed := c.Int64("seed")
		cfg.Seed = &seed
	}
	if c.IsSet("results") {
		cfg.Results = c.Path("results")
	}
	if c.IsSet("name") {
		cfg.Name = c.String("name")
	}

	return cfg, cfg.Validate()
}
