package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/samuelfneumann/goars/agent/linear/continuous/ars"
	"github.com/samuelfneumann/goars/agent/linear/continuous/policy"
	"github.com/samuelfneumann/goars/experiment"
	"github.com/samuelfneumann/goars/experiment/checkpointer"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

func newEvalCmd() *cobra.Command {
	var (
		checkpoint string
		episodes   int
	)

	cmd := &cobra.Command{
		Use:   "eval RUN_DIR",
		Short: "Evaluate the policy saved in a run directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return eval(args[0], checkpoint, episodes)
		},
	}

	cmd.Flags().StringVar(&checkpoint, "checkpoint", "",
		"checkpoint file to evaluate (default the final checkpoint of "+
			"the run)")
	cmd.Flags().IntVarP(&episodes, "episodes", "n", 10,
		"number of evaluation rollouts")

	return cmd
}

// eval runs evaluation rollouts of the policy checkpointed in a run
// directory and logs their rewards
func eval(runDir, checkpoint string, episodes int) error {
	if episodes <= 0 {
		return fmt.Errorf("eval: number of episodes %v must be positive",
			episodes)
	}

	c, err := experiment.LoadConfig(filepath.Join(runDir, configFile))
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	hp, ok := c.AgentConf.Config.(ars.Config)
	if !ok {
		return fmt.Errorf("eval: agent type %v is not supported",
			c.AgentConf.Type)
	}

	env, err := c.CreateEnv(hp.Seed)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	if closer, ok := env.(io.Closer); ok {
		defer closer.Close()
	}

	trainer, err := ars.New(env, hp)
	if err != nil {
		return fmt.Errorf("eval: %w", err)
	}

	if checkpoint == "" {
		checkpoint = filepath.Join(runDir, checkpointName+binExtension)
	}
	if err := checkpointer.Load(checkpoint, trainer); err != nil {
		return fmt.Errorf("eval: %w", err)
	}
	logger.Printf("loaded policy trained for %v iterations",
		trainer.Iteration())

	rewards := make([]float64, episodes)
	for i := range rewards {
		rewards[i], err = trainer.Explore(policy.NoPerturbation())
		if err != nil {
			return fmt.Errorf("eval: %w", err)
		}
		logger.Printf("Episode: %v Reward: %v", i, rewards[i])
	}

	mean, std := stat.MeanStdDev(rewards, nil)
	logger.Printf("mean reward %v (std %v) over %v episodes", mean, std,
		episodes)
	return nil
}
