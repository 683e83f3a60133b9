package main

import (
	"context"
	"fmt"
	"io"

	"github.com/agenthands/sociogram/internal/config"
	"github.com/agenthands/sociogram/internal/core"
	"github.com/agenthands/sociogram/internal/core/sociogram"
	"github.com/agenthands/sociogram/internal/provision"
	"github.com/agenthands/sociogram/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newPopulateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "populate",
		Short: "Provision the target graph and submit a freshly generated sociogram",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			if err := promptTargets(cmd.InOrStdin(), out, cfg); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if cfg.Provisioning() {
				ensureTarget(ctx, cfg, out)
			} else {
				log.Info().Str("backend", cfg.Run.Backend).Msg("Skipping provisioning")
			}

			gen, err := newGenerator(cfg)
			if err != nil {
				return err
			}
			sg := gen.Build(sociogram.Names())
			report.PrintSummary(out, sg, analyze(sg))

			runner := core.NewRunner(openDriver(cfg), report.NewConsole(out))
			result := runner.Run(ctx, gen.Statements(sg))
			if err := result.Failure(); err != nil {
				return err
			}

			fmt.Fprintln(out, "Graph constructed. B-)")
			return nil
		},
	}
}

// ensureTarget provisions the database and container. Failures are reported and
// population continues: the target may already exist under a key without
// management rights.
func ensureTarget(ctx context.Context, cfg *config.Config, out io.Writer) provision.Result {
	api, err := newProvisionAPI(cfg)
	if err != nil {
		fmt.Fprintln(out, err)
		return provision.Result{Database: provision.Failed, Err: err}
	}

	res := provision.NewProvisioner(api).Ensure(ctx, cfg.Graph.Database, cfg.Graph.Container, cfg.Graph.PartitionKeyPath)
	if res.Database != provision.Failed {
		fmt.Fprintf(out, "Created Database: %s (%s)\n", cfg.Graph.Database, res.Database)
	}
	if !res.Ready() {
		fmt.Fprintln(out, res.Err)
		log.Warn().Msg("Target graph not provisioned, submitting anyway")
		return res
	}
	fmt.Fprintf(out, "Created Collection (Graph): %s (%s)\n", cfg.Graph.Container, res.Container)
	return res
}
