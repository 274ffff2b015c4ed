package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/samuelfneumann/goars/agent/linear/continuous/ars"
	"github.com/samuelfneumann/goars/environment/wrappers"
	"github.com/samuelfneumann/goars/experiment"
	"github.com/samuelfneumann/goars/experiment/checkpointer"
	"github.com/samuelfneumann/goars/experiment/plotter"
	"github.com/samuelfneumann/goars/experiment/tracker"
	"github.com/spf13/cobra"
)

// Files saved in each run directory
const (
	configFile     = "config.json"
	rewardsFile    = "rewards.bin"
	plotFile       = "rewards.png"
	checkpointName = "checkpoint"
	episodeName    = "episode"
	binExtension   = ".bin"
)

func newTrainCmd() *cobra.Command {
	var (
		flags           experimentFlags
		out             string
		checkpointEvery int
		progress        bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train a linear policy",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := flags.experimentConfig(cmd.Flags())
			if err != nil {
				return err
			}
			dir := outDir(out, cmd.Flags().Changed("out"))

			return train(c, dir, checkpointEvery, progress)
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "runs",
		"directory to save runs in")
	cmd.Flags().IntVar(&checkpointEvery, "checkpoint-every", 100,
		"iterations between checkpoints of the trainer, 0 disables "+
			"checkpointing")
	cmd.Flags().BoolVar(&progress, "progress", false,
		"display a progress bar instead of logging each iteration")

	return cmd
}

// train runs the experiment described by c, saving all output to a new
// run directory in out
func train(c experiment.Config, out string, checkpointEvery int,
	progress bool) error {
	hp := c.AgentConf.Config.(ars.Config)

	runDir := filepath.Join(out, uuid.New().String())
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return fmt.Errorf("train: could not create run directory: %w", err)
	}
	logger.Printf("saving run to %v", runDir)

	if err := c.Save(filepath.Join(runDir, configFile)); err != nil {
		return fmt.Errorf("train: %w", err)
	}

	env, err := c.CreateEnv(hp.Seed)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if closer, ok := env.(io.Closer); ok {
		defer closer.Close()
	}

	var monitor *wrappers.Monitor
	if hp.RecordEvery > 0 {
		monitor = wrappers.NewMonitor(env, checkpointer.FilenameEnumerator(
			0, filepath.Join(runDir, episodeName), binExtension))
		env = monitor
	}

	trainer, err := ars.New(env, hp)
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}
	trainer.SetLogger(logger)

	returns := tracker.NewReturn(filepath.Join(runDir, rewardsFile))
	trackers := []tracker.Tracker{returns}
	if progress {
		trackers = append(trackers, tracker.NewProgress(50, hp.NumSteps))
	} else {
		trackers = append(trackers, tracker.NewLogger(logger))
	}

	var checkpointers []checkpointer.Checkpointer
	if checkpointEvery > 0 {
		checkpointers = append(checkpointers, checkpointer.NewNStep(
			checkpointEvery, trainer, checkpointer.FilenameEnumerator(0,
				filepath.Join(runDir, checkpointName), binExtension)))
	}

	exp := experiment.NewIterative(trainer, trackers, checkpointers)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runErr := exp.Run(ctx)

	// Save whatever was tracked, even if the run failed
	if err := exp.Save(); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if err := checkpointer.Save(filepath.Join(runDir,
		checkpointName+binExtension), trainer); err != nil {
		return fmt.Errorf("train: %w", err)
	}
	if monitor != nil {
		monitor.SetRecording(false)
		if err := monitor.Err(); err != nil {
			logger.Printf("could not save recorded episodes: %v", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("train: %w", runErr)
	}

	logger.Printf("finished %v iterations, skipped %v updates",
		trainer.Iteration(), trainer.Skipped())

	rewards := returns.Data()
	if len(rewards) > 0 {
		if err := plotter.Rewards(rewards, "Augmented Random Search",
			filepath.Join(runDir, plotFile)); err != nil {
			return fmt.Errorf("train: %w", err)
		}
	}
	return nil
}
