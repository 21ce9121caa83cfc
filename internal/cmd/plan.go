package cmd

import (
	"encoding/json"

	"github.com/urfave/cli/v2"

	"github.com/ndn-campus/lab/pkg/topology"
)

// Plan command
func Plan(log *Logger) *cli.Command {
	return &cli.Command{
		Name:  "plan",
		Usage: "plan campus topology and address blocks",
		Flags: append(scenarioFlags(),
			&cli.BoolFlag{
				Name:  "addresses",
				Usage: "print the address plan",
			},
			&cli.BoolFlag{
				Name:  "graph",
				Usage: "print the topology as a JSON node-link graph",
			},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 1)
			}

			n, err := topology.Plan(cfg.Spec())
			if err != nil {
				return cli.Exit(err, 1)
			}

			if err = n.Addresses.Validate(); err != nil {
				return cli.Exit(err, 1)
			}

			for _, campus := range n.Campuses {
				log.With(campus).
					WithField("ring_neighbors", n.RingNeighbors(campus.Index)).
					Debug("campus planned")
			}
			log.With(n).Info("network planned")

			if c.Bool("addresses") {
				if _, err = n.Addresses.WriteTo(c.App.Writer); err != nil {
					return cli.Exit(err, 1)
				}
			}

			if c.Bool("graph") {
				enc := json.NewEncoder(c.App.Writer)
				enc.SetIndent("", "  ")
				if err = enc.Encode(n.Graph()); err != nil {
					return cli.Exit(err, 1)
				}
			}

			return nil
		},
	}
}
