package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	gr "nickandperla.net/genetic_route"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	verbose    bool
}

func newRootCommand(ctx context.Context) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:          "route",
		Short:        "Search for a cheap route between two nodes of a random graph with a genetic algorithm",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetOutput(os.Stderr)
			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "./route.toml", "path to the TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(
		newRunCommand(ctx, opts),
		newRunsCommand(opts),
		newGraphCommand(opts),
		newConfigCommand(opts),
	)
	return rootCmd
}

// loadConfig reads the config file. A missing file at the default location
// falls back to the built-in defaults.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*gr.ToolConfig, error) {
	if _, err := os.Stat(o.configPath); errors.Is(err, os.ErrNotExist) && !cmd.Flags().Changed("config") {
		log.Debugf("No config at %s, using defaults", o.configPath)
		return gr.DefaultToolConfig(), nil
	}
	log.Debugf("Reading config from %s", o.configPath)
	return gr.LoadToolConfig(o.configPath)
}

func newConfigCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			return config.Write(cmd.OutOrStdout())
		},
	}
}

func newGraphCommand(opts *rootOptions) *cobra.Command {
	var seed int64
	var nodes int

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Print the random graph a seed produces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("nodes") {
				nodes = config.Evolution.Graph.NodeCount
			}
			if !cmd.Flags().Changed("seed") {
				seed = config.Evolution.Seed
			}
			seed = gr.ResolveSeed(seed)

			graph, err := gr.NewGraph(nodes, gr.NewRand(seed))
			if err != nil {
				return err
			}
			log.WithField("seed", seed).Info("Network:")
			fmt.Fprintln(cmd.OutOrStdout(), graph)
			return nil
		},
	}
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the current time)")
	cmd.Flags().IntVarP(&nodes, "nodes", "n", 0, "number of nodes")
	return cmd
}
