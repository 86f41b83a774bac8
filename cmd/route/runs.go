package main

import (
	"fmt"
	"text/tabwriter"

	gr "nickandperla.net/genetic_route"

	"github.com/spf13/cobra"
)

func newRunsCommand(root *rootOptions) *cobra.Command {
	var limit int
	var runID uint

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, or show the generations of one run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			persist, err := gr.NewPersistence(config.Persistence)
			if err != nil {
				return fmt.Errorf("failed to create or initialize persistence: %w", err)
			}
			defer persist.Shutdown()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()

			if runID != 0 {
				run, err := persist.LoadRun(runID)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "Run %d: seed=%d %d→%d best=%v %s\n", run.ID, run.Seed, run.Start, run.End, run.BestLength, run.BestPath)
				fmt.Fprintln(w, "GEN\tMIN\tMEAN\tMAX\tSTDDEV\tDIVERSITY\tBEST")
				for _, s := range run.Stats {
					fmt.Fprintf(w, "%d\t%.4f\t%.4f\t%.4f\t%.4f\t%.3f\t%.4f\n",
						s.Generation, s.MinLength, s.MeanLength, s.MaxLength, s.StdDevLength, s.Diversity, s.BestLength)
				}
				return nil
			}

			runs, err := persist.ListRuns(limit)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, "ID\tCREATED\tSEED\tNODES\tPATHS\tLENGTH\tGENERATIONS\tBEST\tPATH")
			for _, r := range runs {
				fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%d\t%d/%d\t%.4f\t%s\n",
					r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Seed, r.NodeCount, r.PathsCount, r.PathLength,
					r.Generations, r.GenerationCount, r.BestLength, r.BestPath)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of runs to list")
	cmd.Flags().UintVar(&runID, "id", 0, "show the generation stats of this run")
	return cmd
}
