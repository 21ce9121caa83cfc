package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/ndn-campus/lab/pkg/results"
	"github.com/ndn-campus/lab/pkg/scenario"
)

// Assign command
func Assign(log *Logger) *cli.Command {
	return &cli.Command{
		Name:  "assign",
		Usage: "place clients and servers and write their node ids",
		Flags: append(scenarioFlags(),
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "log the assignment without writing result files",
			},
		),
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return cli.Exit(err, 1)
			}

			run, err := scenario.Execute(cfg)
			if err != nil {
				return cli.Exit(err, 1)
			}

			l := log.With(run)
			l.With(run.Network).Info("network planned")

			for _, id := range run.Clients() {
				l.WithField("node", id).Debug("client assigned")
			}
			for _, id := range run.Servers() {
				l.WithField("node", id).Debug("server assigned")
			}

			if c.Bool("dry-run") {
				l.Info("dry run; skipping result files")
				return nil
			}

			paths, err := results.Write(cfg.Results, results.Key{
				Prefix:      cfg.Name,
				Campuses:    cfg.Campuses,
				Servers:     cfg.Servers,
				Clients:     cfg.Clients,
				ContentSize: cfg.ContentSize,
			}, run.Servers(), run.Clients())
			if err != nil {
				l.WithError(err).Error("failed to write results")
				return cli.Exit(err, 1)
			}

			l.WithField("files", paths).Info("results written")
			return nil
		},
	}
}
