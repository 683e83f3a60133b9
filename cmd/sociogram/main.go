package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	database   string
	container  string
	backend    string
	sampling   string
	seed       int64
	logLevel   string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	populate := newPopulateCommand(opts)
	root := &cobra.Command{
		Use:          "sociogram",
		Short:        "Provision a graph and fill it with a random sociogram",
		SilenceUsage: true,
		RunE:         populate.RunE,
	}
	// The config file may lower or raise the level again in loadConfig.
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		level := opts.logLevel
		if level == "" {
			level = os.Getenv("LOG_LEVEL")
		}
		return setupLogging(level)
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to a TOML config file (default "+defaultConfigPath+")")
	flags.StringVar(&opts.database, "database", "", "graph database name")
	flags.StringVar(&opts.container, "container", "", "graph container (collection) name")
	flags.StringVar(&opts.backend, "backend", "", "graph backend: gremlin or memgraph")
	flags.StringVar(&opts.sampling, "sampling", "", "edge sampling policy: legacy or exclude-self")
	flags.Int64Var(&opts.seed, "seed", 0, "random seed for edge generation (0 picks one)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(populate, newPlanCommand(opts), newVerifyCommand(opts))
	return root
}

func setupLogging(level string) error {
	if level == "" {
		level = "info"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
