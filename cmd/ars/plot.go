package main

import (
	"fmt"
	"path/filepath"

	"github.com/samuelfneumann/goars/experiment/plotter"
	"github.com/samuelfneumann/goars/experiment/tracker"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	var (
		out   string
		title string
	)

	cmd := &cobra.Command{
		Use:   "plot RUN_DIR",
		Short: "Plot the reward history of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rewards, err := tracker.LoadData(filepath.Join(args[0],
				rewardsFile))
			if err != nil {
				return fmt.Errorf("plot: %w", err)
			}

			if out == "" {
				out = filepath.Join(args[0], plotFile)
			}
			if err := plotter.Rewards(rewards, title, out); err != nil {
				return fmt.Errorf("plot: %w", err)
			}
			logger.Printf("saved plot to %v", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "",
		"file to save the plot to, the extension sets the format "+
			"(default rewards.png in the run directory)")
	cmd.Flags().StringVar(&title, "title", "Augmented Random Search",
		"title of the plot")

	return cmd
}
