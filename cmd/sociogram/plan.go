package main

import (
	"github.com/agenthands/sociogram/internal/core/sociogram"
	"github.com/agenthands/sociogram/internal/report"
	"github.com/spf13/cobra"
)

func newPlanCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the generated statements without connecting",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			gen, err := newGenerator(cfg)
			if err != nil {
				return err
			}
			sg := gen.Build(sociogram.Names())
			report.PrintSummary(out, sg, analyze(sg))
			report.PrintStatements(out, gen.Statements(sg))
			return nil
		},
	}
}
