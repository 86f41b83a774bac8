package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	gr "nickandperla.net/genetic_route"

	"github.com/mattn/go-isatty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type runOptions struct {
	seed        int64
	generations int
	nodes       int
	paths       int
	length      int
	start       int
	end         int
	logEvery    int
	timeout     time.Duration
	noDB        bool
	noPrompt    bool
}

func newRunCommand(ctx context.Context, root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evolve a route for a fixed number of generations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			opts.apply(cmd.Flags(), config.Evolution)
			return runEvolution(ctx, cmd, opts, config)
		},
	}

	flags := cmd.Flags()
	flags.Int64Var(&opts.seed, "seed", 0, "random seed (0 uses the current time)")
	flags.IntVarP(&opts.generations, "generations", "g", 0, "number of generations")
	flags.IntVarP(&opts.nodes, "nodes", "n", 0, "number of nodes in the graph")
	flags.IntVarP(&opts.paths, "paths", "p", 0, "paths per generation")
	flags.IntVarP(&opts.length, "length", "l", 0, "nodes per path, start and end included")
	flags.IntVar(&opts.start, "start", 0, "sender node")
	flags.IntVar(&opts.end, "end", 0, "receiver node")
	flags.IntVar(&opts.logEvery, "log-every", 0, "log the best path every N generations")
	flags.DurationVar(&opts.timeout, "timeout", 0, "stop evolving after this long")
	flags.BoolVar(&opts.noDB, "no-db", false, "do not record the run")
	flags.BoolVar(&opts.noPrompt, "no-prompt", false, "never ask for the start and end nodes")
	return cmd
}

// apply overrides config values with the flags given on the command line.
func (o *runOptions) apply(flags *pflag.FlagSet, config *gr.EvolutionConfig) {
	if flags.Changed("seed") {
		config.Seed = o.seed
	}
	if flags.Changed("generations") {
		config.GenerationCount = o.generations
	}
	if flags.Changed("nodes") {
		config.Graph.NodeCount = o.nodes
	}
	if flags.Changed("paths") {
		config.Population.PathsCount = o.paths
	}
	if flags.Changed("length") {
		config.Population.PathLength = o.length
	}
	if flags.Changed("start") {
		config.Population.Start = o.start
	}
	if flags.Changed("end") {
		config.Population.End = o.end
	}
	if flags.Changed("log-every") {
		config.LogEvery = o.logEvery
	}
	if flags.Changed("timeout") {
		config.Timeout = o.timeout
	}
}

// shouldPrompt asks for endpoints interactively, as long as none were given
// as flags and stdin is a terminal.
func (o *runOptions) shouldPrompt(cmd *cobra.Command) bool {
	if o.noPrompt || cmd.Flags().Changed("start") || cmd.Flags().Changed("end") {
		return false
	}
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func runEvolution(ctx context.Context, cmd *cobra.Command, opts *runOptions, config *gr.ToolConfig) error {
	evo := config.Evolution
	seed := gr.ResolveSeed(evo.Seed)
	rng := gr.NewRand(seed)

	graph, err := gr.NewGraph(evo.Graph.NodeCount, rng)
	if err != nil {
		return err
	}
	log.WithField("seed", seed).Info("Network:")
	fmt.Fprintln(cmd.OutOrStdout(), graph)

	if opts.shouldPrompt(cmd) {
		if evo.Population.Start, evo.Population.End, err = promptEndpoints(graph, evo.Population); err != nil {
			return err
		}
	}

	recorders := []gr.Recorder{gr.NewLogRecorder(log.StandardLogger(), evo.LogEvery, evo.GenerationCount)}

	var runRecorder *gr.RunRecorder
	if !opts.noDB {
		persist, err := gr.NewPersistence(config.Persistence)
		if err != nil {
			return fmt.Errorf("failed to create or initialize persistence: %w", err)
		}
		defer func() {
			if err := persist.Shutdown(); err != nil {
				log.Warnf("Failed to close database: %v", err)
			}
		}()

		if runRecorder, err = persist.StartRun(seed, evo); err != nil {
			return err
		}
		recorders = append(recorders, runRecorder)
	}

	evolution, err := gr.NewEvolution(evo, graph, rng, recorders...)
	if err != nil {
		return err
	}

	start := time.Now()
	result, runErr := evolution.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return runErr
	}
	if runErr != nil {
		log.Warnf("Stopped after %d of %d generations: %v", result.Generations, evo.GenerationCount, runErr)
	}

	if runRecorder != nil {
		if err := runRecorder.Finish(result); err != nil {
			return err
		}
		log.WithField("run", runRecorder.Run.ID).Debug("Run recorded")
	}

	log.WithFields(log.Fields{
		"generations": result.Generations,
		"elapsed":     time.Since(start).Round(time.Millisecond),
	}).Info("Evolution finished")
	fmt.Fprintf(cmd.OutOrStdout(), "Min path: %v\nMin length: %v\n", result.BestPath, result.BestLength)
	return nil
}
