// Package envconfig provides configuration structs for configuring
// environments with default physical parameters and tasks. Environment
// configurations in this package are JSON serializable.
package envconfig

import (
	"fmt"

	env "github.com/samuelfneumann/goars/environment"
	"github.com/samuelfneumann/goars/environment/classiccontrol/cartpole"
	"github.com/samuelfneumann/goars/environment/classiccontrol/mountaincar"
	"github.com/samuelfneumann/goars/environment/classiccontrol/pendulum"
	"gonum.org/v1/gonum/spatial/r1"
)

// EnvName stores the name of environments that can be configured with
// this package
type EnvName string

// Environments available for configuration
const (
	Pendulum    EnvName = "Pendulum"
	Cartpole    EnvName = "Cartpole"
	MountainCar EnvName = "MountainCar"
	Gym         EnvName = "Gym"
)

// TaskName stores the tasks that can be configured with this package.
// Note that not all tasks can be used with all environments. The tasks
// that can be used with each environment are as follows:
//
//	Environment			Task
//	Cartpole			Balance
//	Pendulum			SwingUp
//	MountainCar			Goal
//	Gym				(the Gym environment's own task)
type TaskName string

// Tasks available for configuration
const (
	SwingUp TaskName = "SwingUp"
	Balance TaskName = "Balance"
	Goal    TaskName = "Goal"
)

// Config implements a specific configuration of a specific environment
// and specific task. Not all environments can have all tasks.
//
// For Gym environments, GymName is the name of the environment in the
// Gym suite, Task and EpisodeCutoff are ignored.
type Config struct {
	Environment   EnvName
	Task          TaskName
	EpisodeCutoff int
	GymName       string
}

// Creator creates the environment called name
type Creator func(name string, seed uint64) (env.Environment, error)

// registered holds the Creators of environments registered by packages
// which cannot be imported by this package, such as package gym which
// requires a Python installation
var registered = make(map[EnvName]Creator)

// Register registers the Creator for environments called envName
func Register(envName EnvName, c Creator) {
	registered[envName] = c
}

// NewConfig returns a new environment Config
func NewConfig(envName EnvName, taskName TaskName, episodeCutoff int) Config {
	return Config{
		Environment:   envName,
		Task:          taskName,
		EpisodeCutoff: episodeCutoff,
	}
}

// NewGymConfig returns a new environment Config for the Gym environment
// called name
func NewGymConfig(name string) Config {
	return Config{Environment: Gym, GymName: name}
}

// Create returns the environment described by the Config, seeding
// starting state distributions with seed.
func (c Config) Create(seed uint64) (env.Environment, error) {
	switch c.Environment {
	case Cartpole:
		return CreateCartpole(c.Task, c.EpisodeCutoff, seed)

	case Pendulum:
		return CreatePendulum(c.Task, c.EpisodeCutoff, seed)

	case MountainCar:
		return CreateMountainCar(c.Task, c.EpisodeCutoff, seed)

	case Gym:
		if c.GymName == "" {
			return nil, fmt.Errorf("create: no Gym environment name given")
		}
		create, ok := registered[Gym]
		if !ok {
			return nil, fmt.Errorf("create: Gym environments are not " +
				"available, package gym must be imported")
		}
		return create(c.GymName, seed)
	}

	return nil, fmt.Errorf("create: cannot create environment %v, no "+
		"such environment", c.Environment)
}

// CreateCartpole is a factory for creating the Cartpole environment
// with default physical parameters and default task parameters.
func CreateCartpole(taskName TaskName, cutoff int,
	seed uint64) (env.Environment, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("createCartpole: episode cutoff %v must "+
			"be positive", cutoff)
	}

	bounds := r1.Interval{Min: -0.05, Max: 0.05}
	s := env.NewUniformStarter([]r1.Interval{
		bounds,
		bounds,
		bounds,
		bounds,
	}, seed)

	var task env.Task
	switch taskName {
	case Balance:
		task = cartpole.NewBalance(s, cutoff, cartpole.FailAngle)

	default:
		return nil, fmt.Errorf("createCartpole: Cartpole environment has "+
			"no task %v", taskName)
	}

	return cartpole.New(task), nil
}

// CreatePendulum is a factory for creating the Pendulum environment
// with default physical parameters and default task parameters.
func CreatePendulum(taskName TaskName, cutoff int,
	seed uint64) (env.Environment, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("createPendulum: episode cutoff %v must "+
			"be positive", cutoff)
	}

	angle := r1.Interval{Min: -pendulum.AngleBound, Max: pendulum.AngleBound}
	speed := r1.Interval{Min: -1.0, Max: 1.0}
	s := env.NewUniformStarter([]r1.Interval{angle, speed}, seed)

	var task env.Task
	switch taskName {
	case SwingUp:
		task = pendulum.NewSwingUp(s, cutoff)

	default:
		return nil, fmt.Errorf("createPendulum: Pendulum environment has "+
			"no task %v", taskName)
	}

	return pendulum.New(task), nil
}

// CreateMountainCar is a factory for creating the Mountain Car
// environment with default physical parameters and default task
// parameters.
func CreateMountainCar(taskName TaskName, cutoff int,
	seed uint64) (env.Environment, error) {
	if cutoff <= 0 {
		return nil, fmt.Errorf("createMountainCar: episode cutoff %v "+
			"must be positive", cutoff)
	}

	s := env.NewUniformStarter([]r1.Interval{
		{Min: -0.6, Max: -0.4},
		{Min: 0.0, Max: 0.0},
	}, seed)

	var task env.Task
	switch taskName {
	case Goal:
		task = mountaincar.NewGoal(s, cutoff, mountaincar.GoalPosition)

	default:
		return nil, fmt.Errorf("createMountainCar: Mountain Car "+
			"environment has no task %v", taskName)
	}

	return mountaincar.New(task), nil
}
