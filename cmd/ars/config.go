package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/samuelfneumann/goars/agent"
	"github.com/samuelfneumann/goars/agent/linear/continuous/ars"
	"github.com/samuelfneumann/goars/environment/envconfig"
	"github.com/samuelfneumann/goars/experiment"
	"github.com/spf13/pflag"
)

// Environment variables which override hyperparameters in the
// experiment configuration file. Flags override these.
const (
	envNumSteps      = "ARS_NUM_STEPS"
	envEpisodeLength = "ARS_EPISODE_LENGTH"
	envNumDeltas     = "ARS_NUM_DELTAS"
	envNumBestDeltas = "ARS_NUM_BEST_DELTAS"
	envNoise         = "ARS_NOISE"
	envAlpha         = "ARS_ALPHA"
	envSeed          = "ARS_SEED"
	envRecordEvery   = "ARS_RECORD_EVERY"
	envOutDir        = "ARS_OUT_DIR"
)

// experimentFlags are the flags which configure an experiment
type experimentFlags struct {
	configFile string

	env     string
	task    string
	cutoff  int
	gymName string

	hp ars.Config
}

func (f *experimentFlags) register(flags *pflag.FlagSet) {
	def := ars.DefaultConfig()

	flags.StringVarP(&f.configFile, "config", "c", "",
		"JSON experiment configuration file")

	flags.StringVar(&f.env, "env", string(envconfig.Pendulum),
		"environment: Pendulum, Cartpole, MountainCar or Gym")
	flags.StringVar(&f.task, "task", "",
		"task of the environment (default SwingUp for Pendulum, "+
			"Balance for Cartpole, Goal for MountainCar)")
	flags.IntVar(&f.cutoff, "cutoff", 200,
		"episode cutoff of the environment")
	flags.StringVar(&f.gymName, "gym", "BipedalWalker-v3",
		"name of the Gym environment when --env=Gym")

	flags.IntVar(&f.hp.NumSteps, "num-steps", def.NumSteps,
		"training iterations")
	flags.IntVar(&f.hp.EpisodeLength, "episode-length", def.EpisodeLength,
		"maximum steps per rollout")
	flags.IntVar(&f.hp.NumDeltas, "num-deltas", def.NumDeltas,
		"deltas sampled per iteration")
	flags.IntVar(&f.hp.NumBestDeltas, "num-best-deltas", def.NumBestDeltas,
		"deltas used in each update")
	flags.Float64Var(&f.hp.Noise, "noise", def.Noise,
		"scale of deltas when perturbing the policy")
	flags.Float64Var(&f.hp.Alpha, "alpha", def.Alpha, "learning rate")
	flags.Uint64Var(&f.hp.Seed, "seed", def.Seed, "random seed")
	flags.IntVar(&f.hp.RecordEvery, "record-every", def.RecordEvery,
		"iterations between recorded evaluation rollouts, 0 disables "+
			"recording")
}

// experimentConfig resolves the experiment configuration. Settings are
// taken from, in order of precedence, the flags set on the command
// line, ARS_* environment variables, the configuration file and the
// defaults.
func (f *experimentFlags) experimentConfig(
	flags *pflag.FlagSet) (experiment.Config, error) {
	var c experiment.Config

	if f.configFile != "" {
		var err error
		c, err = experiment.LoadConfig(f.configFile)
		if err != nil {
			return experiment.Config{}, err
		}
	} else {
		c.EnvConf = defaultEnvConfig(f)
		c.AgentConf = agent.NewTypedConfig(ars.DefaultConfig())
	}

	hp, ok := c.AgentConf.Config.(ars.Config)
	if !ok {
		return experiment.Config{}, fmt.Errorf("experimentConfig: agent "+
			"type %v is not supported", c.AgentConf.Type)
	}

	if err := overrideFromEnv(&hp); err != nil {
		return experiment.Config{}, fmt.Errorf("experimentConfig: %w", err)
	}
	f.overrideFromFlags(flags, &hp, &c.EnvConf)

	c.AgentConf = agent.NewTypedConfig(hp)
	return c, nil
}

func defaultEnvConfig(f *experimentFlags) envconfig.Config {
	env := envconfig.EnvName(f.env)
	if env == envconfig.Gym {
		return envconfig.NewGymConfig(f.gymName)
	}

	task := envconfig.TaskName(f.task)
	if task == "" {
		switch env {
		case envconfig.Cartpole:
			task = envconfig.Balance
		case envconfig.MountainCar:
			task = envconfig.Goal
		default:
			task = envconfig.SwingUp
		}
	}
	return envconfig.NewConfig(env, task, f.cutoff)
}

// overrideFromFlags overwrites the settings of c and ec which were
// explicitly set on the command line
func (f *experimentFlags) overrideFromFlags(flags *pflag.FlagSet,
	c *ars.Config, ec *envconfig.Config) {
	set := func(name string) bool { return flags.Changed(name) }

	if f.configFile != "" {
		// Without a configuration file, the environment flags were
		// already used to build the environment configuration
		if set("env") || set("task") || set("cutoff") || set("gym") {
			*ec = defaultEnvConfig(f)
		}
	}

	if set("num-steps") {
		c.NumSteps = f.hp.NumSteps
	}
	if set("episode-length") {
		c.EpisodeLength = f.hp.EpisodeLength
	}
	if set("num-deltas") {
		c.NumDeltas = f.hp.NumDeltas
	}
	if set("num-best-deltas") {
		c.NumBestDeltas = f.hp.NumBestDeltas
	}
	if set("noise") {
		c.Noise = f.hp.Noise
	}
	if set("alpha") {
		c.Alpha = f.hp.Alpha
	}
	if set("seed") {
		c.Seed = f.hp.Seed
	}
	if set("record-every") {
		c.RecordEvery = f.hp.RecordEvery
	}
}

// overrideFromEnv overwrites the hyperparameters of c which are set by
// ARS_* environment variables
func overrideFromEnv(c *ars.Config) error {
	ints := []struct {
		name string
		dst  *int
	}{
		{envNumSteps, &c.NumSteps},
		{envEpisodeLength, &c.EpisodeLength},
		{envNumDeltas, &c.NumDeltas},
		{envNumBestDeltas, &c.NumBestDeltas},
		{envRecordEvery, &c.RecordEvery},
	}
	for _, v := range ints {
		value, ok := os.LookupEnv(v.name)
		if !ok {
			continue
		}
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("overrideFromEnv: %v: %w", v.name, err)
		}
		*v.dst = i
	}

	floats := []struct {
		name string
		dst  *float64
	}{
		{envNoise, &c.Noise},
		{envAlpha, &c.Alpha},
	}
	for _, v := range floats {
		value, ok := os.LookupEnv(v.name)
		if !ok {
			continue
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("overrideFromEnv: %v: %w", v.name, err)
		}
		*v.dst = f
	}

	if value, ok := os.LookupEnv(envSeed); ok {
		seed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("overrideFromEnv: %v: %w", envSeed, err)
		}
		c.Seed = seed
	}

	return nil
}

// outDir returns the directory that runs are saved in
func outDir(flag string, changed bool) string {
	if !changed {
		if dir, ok := os.LookupEnv(envOutDir); ok {
			return dir
		}
	}
	return flag
}
