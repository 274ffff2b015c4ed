// Package gym provides access to OpenAI Gym environments.
//
// Any Gym environment with a Box observation space can be used.
// Actions are clipped to the bounds of the action space before being
// passed to the environment, so linear policies work best on
// continuous-control suites such as Classic Control, Box2D and MuJoCo. Episodes end with the environment's own default cutoffs.
//
// This is made possible through the Go bindings for OpenAI Gym,
// found at https://github.com/samuelfneumann/GoGym.
package gym

import (
	"fmt"

	env "github.com/samuelfneumann/goars/environment"
	"github.com/samuelfneumann/goars/environment/envconfig"
	ts "github.com/samuelfneumann/goars/timestep"
	"github.com/samuelfneumann/goars/utils/matutils"
	"github.com/samuelfneumann/gogym"
	"gonum.org/v1/gonum/mat"
)

func init() {
	envconfig.Register(envconfig.Gym, func(name string,
		seed uint64) (env.Environment, error) {
		g, err := New(name, seed)
		if err != nil {
			return nil, err
		}
		return g, nil
	})
}

// GymEnv implements access to an OpenAI Gym environment using GoGym
type GymEnv struct {
	gogym.Environment

	name        string
	actionSpec  env.Spec
	currentStep ts.TimeStep
}

// New returns a new GymEnv with the given name, which must be a legal
// name from the OpenAI Gym suite. The environment must be Reset
// before it is stepped.
func New(name string, seed uint64) (*GymEnv, error) {
	goGymEnv, err := gogym.Make(name)
	if err != nil {
		return nil, fmt.Errorf("new: could not create environment %v: %w",
			name, err)
	}
	goGymEnv.Seed(int(seed))

	g := &GymEnv{Environment: goGymEnv, name: name}
	g.actionSpec = g.ActionSpec()
	return g, nil
}

// Step takes a single environmental step. Actions outside the action
// space bounds are clipped.
func (g *GymEnv) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	action := mat.VecDenseCopyOf(a)
	if g.actionSpec.Cardinality == env.Continuous {
		matutils.VecClipBounds(action, g.actionSpec.LowerBound,
			g.actionSpec.UpperBound)
	}

	obs, reward, done, err := g.Environment.Step(action)
	if err != nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: could not step "+
			"%v: %w", g.name, err)
	}

	t := ts.New(ts.Mid, reward, mat.VecDenseCopyOf(obs),
		g.currentStep.Number+1)
	if done {
		t.StepType = ts.Last
		t.SetEnd(ts.TerminalStateReached)
	}
	g.currentStep = t

	return t, done, nil
}

// Reset resets the environment to some starting state
func (g *GymEnv) Reset() (ts.TimeStep, error) {
	obs, err := g.Environment.Reset()
	if err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: could not reset %v: %w",
			g.name, err)
	}

	t := ts.New(ts.First, 0, mat.VecDenseCopyOf(obs), 0)
	g.currentStep = t

	return t, nil
}

// ObservationSpec returns the observation spec of the environment
func (g *GymEnv) ObservationSpec() env.Spec {
	return spec(g.ObservationSpace(), env.Observation)
}

// ActionSpec returns the action specification of the environment
func (g *GymEnv) ActionSpec() env.Spec {
	return spec(g.ActionSpace(), env.Action)
}

// space is a GoGym space bounded by its lower and upper bounds
type space interface {
	Low() []*mat.VecDense
	High() []*mat.VecDense
}

// spec converts a GoGym space to an environment specification
func spec(s space, t env.SpecType) env.Spec {
	var cardinality env.Cardinality
	switch s.(type) {
	case *gogym.BoxSpace:
		cardinality = env.Continuous
	case *gogym.DiscreteSpace:
		cardinality = env.Discrete
	default:
		panic("spec: invalid space type, package gym supports " +
			"only GoGym's BoxSpace or DiscreteSpace")
	}

	low := s.Low()[0]
	high := s.High()[0]
	shape := mat.NewVecDense(low.Len(), nil)

	return env.NewSpec(shape, t, low, high, cardinality)
}

// String returns the name of the underlying Gym environment
func (g *GymEnv) String() string {
	return fmt.Sprintf("Gym  |  %v", g.name)
}

// Close performs resource cleanup after the environment is no longer
// needed
func (g *GymEnv) Close() error {
	g.Environment.Close()
	return nil
}

// Close releases the resources held by GoGym. No GymEnv can be used
// after Close is called.
func Close() {
	gogym.Close()
}
