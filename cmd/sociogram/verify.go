package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/agenthands/sociogram/internal/core/sociogram"
	"github.com/agenthands/sociogram/internal/driver"
	"github.com/agenthands/sociogram/internal/report"
	"github.com/spf13/cobra"
)

func newVerifyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check vertex and edge counts of a populated graph",
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

			d, err := openDriver(cfg)(ctx)
			if err != nil {
				return err
			}
			defer d.Close(context.WithoutCancel(ctx))

			dialect := dialectFor(cfg)
			vertices, err := count(ctx, d, dialect.CountVertices())
			if err != nil {
				return err
			}
			edges, err := count(ctx, d, dialect.CountEdges())
			if err != nil {
				return err
			}

			v := report.Verification{
				Vertices:  vertices,
				Edges:     edges,
				People:    len(sociogram.DefaultNames),
				MaxFanOut: cfg.Graph.MaxFanOut,
			}
			report.PrintVerification(out, v)
			if !v.OK() {
				return fmt.Errorf("graph verification failed")
			}
			return nil
		},
	}
}

func count(ctx context.Context, d driver.GraphDriver, query string) (int64, error) {
	records, err := d.Submit(ctx, query)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("no result for %q", query)
	}
	return toInt64(records[0])
}

// toInt64 reads a count from a Gremlin scalar or a Cypher "count" column.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		return n.Int64()
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	case map[string]any:
		if c, ok := n["count"]; ok {
			return toInt64(c)
		}
	}
	return 0, fmt.Errorf("unexpected count result: %v", v)
}
