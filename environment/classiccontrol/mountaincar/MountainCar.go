// Package mountaincar implements the classic control Mountain Car
// environment with continuous actions
package mountaincar

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/goars/environment"
	ts "github.com/samuelfneumann/goars/timestep"
	"github.com/samuelfneumann/goars/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

const (
	MinPosition float64 = -1.2
	MaxPosition float64 = 0.6
	MaxSpeed    float64 = 0.07
	Power       float64 = 0.0015 // Engine power
	Gravity     float64 = 0.0025

	MinContinuousAction float64 = -1.0
	MaxContinuousAction float64 = 1.0

	ActionDims      int = 1
	ObservationDims int = 2
)

// MountainCar implements the classic control Mountain Car environment.
// In this environment, the agent controls a car in a valley between two
// hills. The car is underpowered and cannot drive up the hill unless
// it rocks back and forth from hill to hill, using its momentum to
// gradually climb higher.
//
// State features consist of the x position of the car and its velocity.
// These features are bounded by the MinPosition, MaxPosition, and
// MaxSpeed constants. Upon reaching the minimum position, the velocity
// of the car is set to 0.
//
// Actions are 1-dimensional and continuous, the force to apply to the
// car. Actions are clipped to [MinContinuousAction,
// MaxContinuousAction].
type MountainCar struct {
	env.Task
	positionBounds r1.Interval
	speedBounds    r1.Interval
	actionBounds   r1.Interval
	lastStep       ts.TimeStep
}

// New creates a new Mountain Car environment with the argument task
func New(t env.Task) *MountainCar {
	return &MountainCar{
		Task:           t,
		positionBounds: r1.Interval{Min: MinPosition, Max: MaxPosition},
		speedBounds:    r1.Interval{Min: -MaxSpeed, Max: MaxSpeed},
		actionBounds: r1.Interval{
			Min: MinContinuousAction,
			Max: MaxContinuousAction,
		},
	}
}

// Reset resets the environment and returns a starting state drawn from
// the environment Starter
func (m *MountainCar) Reset() (ts.TimeStep, error) {
	state := m.Start()
	if err := m.validateState(state); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	m.lastStep = ts.New(ts.First, 0, state, 0)
	return m.lastStep, nil
}

// Step takes one environmental step given action a and returns the next
// timestep and whether or not the episode has ended
func (m *MountainCar) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions should be %v-dimensional",
			ActionDims))
	}
	if m.lastStep.Observation == nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: environment " +
			"must be reset before stepping")
	}

	force := floatutils.ClipInterval(a.AtVec(0), m.actionBounds)

	nextState := m.nextState(force)
	reward := m.GetReward(m.lastStep.Observation, a, nextState)
	nextStep := ts.New(ts.Mid, reward, nextState, m.lastStep.Number+1)

	m.End(&nextStep)
	m.lastStep = nextStep

	return nextStep, nextStep.Last(), nil
}

// nextState calculates the next state in the environment given the
// force applied to the car
func (m *MountainCar) nextState(force float64) *mat.VecDense {
	state := m.lastStep.Observation
	position, velocity := state.AtVec(0), state.AtVec(1)

	velocity += force*Power - Gravity*math.Cos(3*position)
	velocity = floatutils.ClipInterval(velocity, m.speedBounds)

	position += velocity
	position = floatutils.ClipInterval(position, m.positionBounds)

	if position <= m.positionBounds.Min && velocity < 0 {
		velocity = 0
	}

	return mat.NewVecDense(ObservationDims, []float64{position, velocity})
}

// EpisodeCutoff returns the step limit of the task, or 0 if the task
// has none
func (m *MountainCar) EpisodeCutoff() int {
	if c, ok := m.Task.(interface{ EpisodeCutoff() int }); ok {
		return c.EpisodeCutoff()
	}
	return 0
}

// ObservationSpec returns the observation specification of the
// environment
func (m *MountainCar) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)
	lowerBound := mat.NewVecDense(ObservationDims, []float64{
		m.positionBounds.Min, m.speedBounds.Min})
	upperBound := mat.NewVecDense(ObservationDims, []float64{
		m.positionBounds.Max, m.speedBounds.Max})

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// ActionSpec returns the action specification of the environment
func (m *MountainCar) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{m.actionBounds.Min})
	upperBound := mat.NewVecDense(ActionDims, []float64{m.actionBounds.Max})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Continuous)
}

func (m *MountainCar) String() string {
	if m.lastStep.Observation == nil {
		return "Mountain Car  |  not reset"
	}
	str := "Mountain Car  |  Position: %v  |  Speed: %v"
	state := m.lastStep.Observation
	return fmt.Sprintf(str, state.AtVec(0), state.AtVec(1))
}

// validateState ensures the position and speed are within the
// environmental limits
func (m *MountainCar) validateState(s mat.Vector) error {
	if s.Len() != ObservationDims {
		return fmt.Errorf("state should be %v-dimensional, got %v",
			ObservationDims, s.Len())
	}
	if !floatutils.Within(s.AtVec(0), m.positionBounds) {
		return fmt.Errorf("illegal position %v ∉ [%v, %v]", s.AtVec(0),
			m.positionBounds.Min, m.positionBounds.Max)
	}
	if !floatutils.Within(s.AtVec(1), m.speedBounds) {
		return fmt.Errorf("illegal speed %v ∉ [%v, %v]", s.AtVec(1),
			m.speedBounds.Min, m.speedBounds.Max)
	}
	return nil
}
