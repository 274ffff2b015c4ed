// Package experiment implements functionality for running an experiment
package experiment

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samuelfneumann/goars/agent"
	"github.com/samuelfneumann/goars/environment"
	"github.com/samuelfneumann/goars/environment/envconfig"
	"github.com/samuelfneumann/goars/experiment/checkpointer"
	"github.com/samuelfneumann/goars/experiment/tracker"
)

// Config represents a configuration of an experiment: the environment
// and the agent to run in it.
type Config struct {
	EnvConf   envconfig.Config
	AgentConf agent.TypedConfig
}

// LoadConfig loads a JSON serialized experiment Config from filename
func LoadConfig(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not read config: %w",
			err)
	}

	var c Config
	if err := json.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("loadConfig: could not decode "+
			"config: %w", err)
	}
	if c.AgentConf.Config == nil {
		return Config{}, fmt.Errorf("loadConfig: no agent configured")
	}

	return c, nil
}

// Save saves the Config to filename as JSON
func (c Config) Save(filename string) error {
	data, err := json.MarshalIndent(c, "", "\t")
	if err != nil {
		return fmt.Errorf("save: could not encode config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("save: could not write config: %w", err)
	}
	return nil
}

// CreateEnv creates the environment of the experiment
func (c Config) CreateEnv(seed uint64) (environment.Environment, error) {
	env, err := c.EnvConf.Create(seed)
	if err != nil {
		return nil, fmt.Errorf("createEnv: %w", err)
	}
	return env, nil
}

// CreateExp creates the experiment described by the Config in the
// environment env.
func (c Config) CreateExp(env environment.Environment, t []tracker.Tracker,
	check []checkpointer.Checkpointer) (*Iterative, error) {
	if err := c.AgentConf.Config.Validate(); err != nil {
		return nil, fmt.Errorf("createExp: %w", err)
	}

	a, err := c.AgentConf.Config.CreateAgent(env)
	if err != nil {
		return nil, fmt.Errorf("createExp: could not create agent: %w", err)
	}

	return NewIterative(a, t, check), nil
}
