// Package environment outlines the interfaces and structs needed to
// implement concrete environments
package environment

import (
	"github.com/samuelfneumann/goars/timestep"
	"gonum.org/v1/gonum/mat"
)

// Starter implements a distribution of starting states and samples starting
// states for environments
type Starter interface {
	Start() *mat.VecDense
}

// Ender determines when episodes should end
type Ender interface {
	// End checks whether t is the last TimeStep of an episode. If so,
	// End sets the StepType of t to timestep.Last and returns true.
	End(t *timestep.TimeStep) bool
}

// Task implements the reward scheme for taking actions in some
// environment, as well as the distribution of starting states and the
// episode termination conditions.
type Task interface {
	Starter
	Ender
	GetReward(state, action, nextState mat.Vector) float64
	Min() float64 // Minimum possible reward
	Max() float64 // Maximum possible reward
}

// Environment implements a simualted environment. Environments return
// errors when they cannot be reset or stepped, for example when the
// process running a remote simulator dies.
type Environment interface {
	Reset() (timestep.TimeStep, error)
	Step(action *mat.VecDense) (timestep.TimeStep, bool, error)
	ObservationSpec() Spec
	ActionSpec() Spec
}

// EpisodeCutoffer is an Environment which ends all episodes after a
// fixed number of steps.
type EpisodeCutoffer interface {
	Environment
	EpisodeCutoff() int
}

// Recorder is an Environment which can capture the episodes run in it.
// While recording is on, every step taken in the environment is
// captured.
type Recorder interface {
	Environment
	SetRecording(on bool)
	Recording() bool
}
