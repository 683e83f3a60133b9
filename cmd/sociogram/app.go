package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/agenthands/sociogram/internal/config"
	"github.com/agenthands/sociogram/internal/core"
	"github.com/agenthands/sociogram/internal/core/community"
	"github.com/agenthands/sociogram/internal/core/model"
	"github.com/agenthands/sociogram/internal/core/sociogram"
	"github.com/agenthands/sociogram/internal/driver"
	"github.com/agenthands/sociogram/internal/provision"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/sociogram.toml"

func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment")
	}

	path := opts.configPath
	if path == "" {
		path = defaultConfigPath
	}

	cfg, err := config.Load(path)
	if err != nil {
		if opts.configPath != "" {
			return nil, err
		}
		log.Debug().Err(err).Msg("Using default configuration")
		cfg = config.Default()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if opts.database != "" {
		cfg.Graph.Database = opts.database
	}
	if opts.container != "" {
		cfg.Graph.Container = opts.container
	}
	if opts.backend != "" {
		cfg.Run.Backend = opts.backend
	}
	if opts.sampling != "" {
		cfg.Run.Sampling = opts.sampling
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed = opts.seed
	}
	if opts.logLevel != "" {
		cfg.Run.LogLevel = opts.logLevel
	}
	cfg.Run.Backend = strings.ToLower(cfg.Run.Backend)

	if err := setupLogging(cfg.Run.LogLevel); err != nil {
		return nil, err
	}
	return cfg, nil
}

// promptTargets asks for the database and container names the config left empty.
func promptTargets(in io.Reader, out io.Writer, cfg *config.Config) error {
	if cfg.Run.Backend != config.BackendGremlin {
		return nil
	}
	reader := bufio.NewReader(in)

	ask := func(prompt string, dst *string) error {
		if *dst != "" {
			return nil
		}
		fmt.Fprintln(out, prompt)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed to read input: %w", err)
		}
		*dst = strings.TrimRight(line, "\r\n")
		return nil
	}

	if err := ask("Enter the name of Graph Database :", &cfg.Graph.Database); err != nil {
		return err
	}
	return ask("Enter the name of Graph.Collection  :", &cfg.Graph.Container)
}

func schemaFor(cfg *config.Config) sociogram.Schema {
	return sociogram.Schema{
		VertexLabel:       cfg.Graph.VertexLabel,
		EdgeLabel:         cfg.Graph.EdgeLabel,
		PartitionProperty: sociogram.PartitionProperty(cfg.Graph.PartitionKeyPath),
		PartitionValue:    cfg.Graph.PartitionKeyValue,
	}
}

func dialectFor(cfg *config.Config) sociogram.Dialect {
	if cfg.Run.Backend == config.BackendMemgraph {
		return sociogram.NewCypher(schemaFor(cfg))
	}
	return sociogram.NewGremlin(schemaFor(cfg))
}

func newGenerator(cfg *config.Config) (*sociogram.Generator, error) {
	sampling, err := sociogram.ParseSampling(cfg.Run.Sampling)
	if err != nil {
		return nil, err
	}

	seed := cfg.Run.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Stringer("sampling", sampling).Msg("Generating sociogram")

	return sociogram.NewGenerator(dialectFor(cfg),
		sociogram.WithSeed(seed),
		sociogram.WithSampling(sampling),
		sociogram.WithMaxFanOut(cfg.Graph.MaxFanOut),
	), nil
}

// Replaced in tests.
var (
	newProvisionAPI = func(cfg *config.Config) (provision.API, error) {
		api, err := provision.NewCosmosAPI(cfg.Cosmos.Endpoint, cfg.Cosmos.Key)
		if err != nil {
			return nil, err
		}
		return api, nil
	}
	openDriver = opener
)

func opener(cfg *config.Config) core.OpenFunc {
	return func(ctx context.Context) (driver.GraphDriver, error) {
		switch cfg.Run.Backend {
		case config.BackendMemgraph:
			d, err := driver.NewMemgraphDriver(ctx, cfg.Memgraph.URI, cfg.Memgraph.User, cfg.Memgraph.Password)
			if err != nil {
				return nil, err
			}
			if err := d.BuildIndices(ctx, cfg.Graph.VertexLabel); err != nil {
				log.Warn().Err(err).Msg("Continuing without indices")
			}
			return d, nil
		default:
			return driver.NewGremlinDriver(ctx, driver.GremlinSettings{
				URL:      cfg.Gremlin.URL(),
				Username: cfg.GremlinUsername(),
				Password: cfg.Cosmos.Key,
			})
		}
	}
}

// analyze groups the sociogram for the summary. Detection problems only cost
// the summary its groups.
func analyze(sg model.Sociogram) []community.Grouping {
	groupings, err := community.Analyze(sg)
	if err != nil {
		log.Warn().Err(err).Msg("community detection failed")
	}
	return groupings
}
