package ars

import (
	"fmt"

	"github.com/samuelfneumann/goars/agent"
	"github.com/samuelfneumann/goars/environment"
)

func init() {
	// Register the Config type so that it can be typed using
	// agent.TypedConfig to help with serialization/deserialization.
	agent.Register(agent.ARSLinear, Config{})
}

// Config represents the hyperparameters of a run of Augmented Random
// Search
type Config struct {
	NumSteps      int `json:"num_steps"`       // Training iterations
	EpisodeLength int `json:"episode_length"`  // Maximum steps per rollout
	NumDeltas     int `json:"num_deltas"`      // Deltas sampled per iteration
	NumBestDeltas int `json:"num_best_deltas"` // Deltas used in each update

	Noise float64 `json:"noise"` // Scale of deltas when perturbing the policy
	Alpha float64 `json:"alpha"` // Learning rate

	Seed uint64 `json:"seed"`

	// RecordEvery is the interval, in iterations, at which evaluation
	// rollouts are recorded when the environment is an
	// environment.Recorder. Zero disables recording.
	RecordEvery int `json:"record_every"`
}

// DefaultConfig returns the default hyperparameters
func DefaultConfig() Config {
	return Config{
		NumSteps:      1000,
		EpisodeLength: 1000,
		NumDeltas:     16,
		NumBestDeltas: 16,
		Noise:         0.03,
		Alpha:         0.02,
		Seed:          1,
		RecordEvery:   50,
	}
}

// CreateAgent creates the agent from the Config. Agent weights are
// always initialized to zero.
func (c Config) CreateAgent(env environment.Environment) (agent.Agent,
	error) {
	return New(env, c)
}

// ValidAgent returns whether the argument agent is a valid agent for
// construction with the Config
func (c Config) ValidAgent(a agent.Agent) bool {
	_, ok := a.(*Trainer)
	return ok
}

// Validate ensures that the Config is valid
func (c Config) Validate() error {
	switch {
	case c.NumSteps <= 0:
		return fmt.Errorf("validate: %w: number of steps %v must be "+
			"positive", ErrConfig, c.NumSteps)

	case c.EpisodeLength <= 0:
		return fmt.Errorf("validate: %w: episode length %v must be "+
			"positive", ErrConfig, c.EpisodeLength)

	case c.NumDeltas <= 0:
		return fmt.Errorf("validate: %w: number of deltas %v must be "+
			"positive", ErrConfig, c.NumDeltas)

	case c.NumBestDeltas <= 0:
		return fmt.Errorf("validate: %w: number of best deltas %v must "+
			"be positive", ErrConfig, c.NumBestDeltas)

	case c.NumBestDeltas > c.NumDeltas:
		return fmt.Errorf("validate: %w: number of best deltas %v "+
			"exceeds number of deltas %v", ErrConfig, c.NumBestDeltas,
			c.NumDeltas)

	case c.Noise <= 0:
		return fmt.Errorf("validate: %w: noise %v must be positive",
			ErrConfig, c.Noise)

	case c.Alpha <= 0:
		return fmt.Errorf("validate: %w: alpha %v must be positive",
			ErrConfig, c.Alpha)

	case c.RecordEvery < 0:
		return fmt.Errorf("validate: %w: record interval %v must not be "+
			"negative", ErrConfig, c.RecordEvery)
	}

	return nil
}

// Type returns the type of the agent constructed by the Config
func (c Config) Type() agent.Type {
	return agent.ARSLinear
}
