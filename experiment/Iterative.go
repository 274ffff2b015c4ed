package experiment

import (
	"context"
	"fmt"

	"github.com/samuelfneumann/goars/agent"
	"github.com/samuelfneumann/goars/experiment/checkpointer"
	"github.com/samuelfneumann/goars/experiment/tracker"
)

// Iterative is an experiment which runs an agent.Agent for all of its
// iterations. After each iteration, the evaluation reward is sent to
// each registered tracker.Tracker and each checkpointer.Checkpointer
// is given the chance to checkpoint.
type Iterative struct {
	agent.Agent
	trackers      []tracker.Tracker
	checkpointers []checkpointer.Checkpointer
}

// NewIterative creates and returns a new Iterative experiment
func NewIterative(a agent.Agent, t []tracker.Tracker,
	c []checkpointer.Checkpointer) *Iterative {
	return &Iterative{a, t, c}
}

// Register registers a tracker.Tracker with an Experiment so that data
// generated during the experiment can be tracked and saved
func (i *Iterative) Register(t tracker.Tracker) {
	i.trackers = append(i.trackers, t)
}

// RunIteration runs a single iteration of the experiment
func (i *Iterative) RunIteration() error {
	iteration := len(i.Agent.Rewards())

	reward, err := i.Agent.Iterate()
	if err != nil {
		return err
	}

	for _, t := range i.trackers {
		t.Track(iteration, reward)
	}

	for _, c := range i.checkpointers {
		if err := c.Checkpoint(iteration); err != nil {
			return fmt.Errorf("runIteration: %w", err)
		}
	}
	return nil
}

// Run runs the experiment until the agent has finished all its
// iterations, an iteration fails, or the context is cancelled. Data
// tracked before a failure can still be saved with Save.
func (i *Iterative) Run(ctx context.Context) error {
	for !i.Agent.Done() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("run: %w", err)
		}

		if err := i.RunIteration(); err != nil {
			return fmt.Errorf("run: %w", err)
		}
	}
	return nil
}

// Save saves all the data cached by the trackers
func (i *Iterative) Save() error {
	for _, t := range i.trackers {
		if err := t.Save(); err != nil {
			return fmt.Errorf("save: %w", err)
		}
	}
	return nil
}
