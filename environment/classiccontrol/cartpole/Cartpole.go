// Package cartpole implements the Cartpole classic control environment
// with continuous actions
package cartpole

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
	// Physical constants
	Gravity        float64 = 9.8
	CartMass       float64 = 1.0
	PoleMass       float64 = 0.1
	TotalMass      float64 = CartMass + PoleMass
	HalfPoleLength float64 = 0.5  // half of pole length
	ForceMag       float64 = 10.0 // Magnification of force applied
	Dt             float64 = 0.02 // seconds between state updates

	// Bounds (+/-) on state variables
	PositionBounds        float64 = 2.4
	SpeedBounds           float64 = math.MaxFloat64
	AngleBounds           float64 = math.Pi
	AngularVelocityBounds float64 = math.MaxFloat64

	// Continuous actions
	MinContinuousAction float64 = -1.0
	MaxContinuousAction float64 = 1.0

	ActionDims      int = 1
	ObservationDims int = 4
)

// Cartpole implements the classic control environment Cartpole. In
// this environment, a pole is attached to a cart, which can move
// horizontally. The agent must keep the pole upright for as long as
// possible.
//
// The state features are continuous and consist of the cart's x
// position and speed, as well as the pole's angle from the positive
// y-axis and the pole's angular velocity.
//
// Actions are continuous and 1-dimensional. An action is the direction
// and magnitude of the force applied to the cart, in [-1, 1], and is
// scaled by ForceMag. Actions outside of [-1, 1] are clipped.
type Cartpole struct {
	env.Task
	lastStep              ts.TimeStep
	positionBounds        r1.Interval
	speedBounds           r1.Interval
	angleBounds           r1.Interval
	angularVelocityBounds r1.Interval
	actionBounds          r1.Interval
}

// New constructs a new Cartpole environment. The environment must be
// Reset before it is stepped.
func New(t env.Task) *Cartpole {
	return &Cartpole{
		Task:           t,
		positionBounds: r1.Interval{Min: -PositionBounds, Max: PositionBounds},
		speedBounds:    r1.Interval{Min: -SpeedBounds, Max: SpeedBounds},
		angleBounds:    r1.Interval{Min: -AngleBounds, Max: AngleBounds},
		angularVelocityBounds: r1.Interval{
			Min: -AngularVelocityBounds,
			Max: AngularVelocityBounds,
		},
		actionBounds: r1.Interval{
			Min: MinContinuousAction,
			Max: MaxContinuousAction,
		},
	}
}

// Reset resets the environment and returns a starting state drawn from
// the Task's Starter
func (c *Cartpole) Reset() (ts.TimeStep, error) {
	state := c.Start()
	if err := c.validateState(state); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	c.lastStep = ts.New(ts.First, 0, state, 0)
	return c.lastStep, nil
}

// Step takes one environmental step given action a and returns the next
// timestep and a bool indicating whether or not the episode has ended
func (c *Cartpole) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions should be %v-dimensional",
			ActionDims))
	}
	if c.lastStep.Observation == nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: environment " +
			"must be reset before stepping")
	}

	force := floatutils.ClipInterval(a.AtVec(0), c.actionBounds) * ForceMag

	state := c.lastStep.Observation
	x, xDot := state.AtVec(0), state.AtVec(1)
	th, thDot := state.AtVec(2), state.AtVec(3)

	cosTheta := math.Cos(th)
	sinTheta := math.Sin(th)

	poleMassLength := PoleMass * HalfPoleLength
	temp := (force + poleMassLength*thDot*thDot*sinTheta) / TotalMass
	thAcc := (Gravity*sinTheta - cosTheta*temp) / (HalfPoleLength *
		(4.0/3.0 - PoleMass*cosTheta*cosTheta/TotalMass))
	xAcc := temp - poleMassLength*thAcc*cosTheta/TotalMass

	// Euler integration
	x += Dt * xDot
	xDot += Dt * xAcc
	th += Dt * thDot
	th = normalizeAngle(th, c.angleBounds)
	thDot += Dt * thAcc

	nextState := mat.NewVecDense(ObservationDims, []float64{x, xDot, th,
		thDot})
	reward := c.GetReward(state, a, nextState)
	nextStep := ts.New(ts.Mid, reward, nextState, c.lastStep.Number+1)

	c.End(&nextStep)
	c.lastStep = nextStep

	return nextStep, nextStep.Last(), nil
}

// EpisodeCutoff returns the step limit of the Task, or 0 if the Task
// does not cut episodes off at a fixed step
func (c *Cartpole) EpisodeCutoff() int {
	if t, ok := c.Task.(interface{ EpisodeCutoff() int }); ok {
		return t.EpisodeCutoff()
	}
	return 0
}

// ActionSpec returns the action specification of the environment
func (c *Cartpole) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{c.actionBounds.Min})
	upperBound := mat.NewVecDense(ActionDims, []float64{c.actionBounds.Max})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Continuous)
}

// ObservationSpec returns the observation specification of the
// environment
func (c *Cartpole) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	lower := []float64{c.positionBounds.Min, c.speedBounds.Min,
		c.angleBounds.Min, c.angularVelocityBounds.Min}
	lowerBound := mat.NewVecDense(ObservationDims, lower)

	upper := []float64{c.positionBounds.Max, c.speedBounds.Max,
		c.angleBounds.Max, c.angularVelocityBounds.Max}
	upperBound := mat.NewVecDense(ObservationDims, upper)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

func (c *Cartpole) String() string {
	if c.lastStep.Observation == nil {
		return "Cartpole  |  not reset"
	}
	msg := "Cartpole  |  Position: %v  | Speed: %v  |  Angle: %v" +
		"  |  Angular Velocity: %v"

	state := c.lastStep.Observation
	position, speed := state.AtVec(0), state.AtVec(1)
	angle, velocity := state.AtVec(2), state.AtVec(3)

	return fmt.Sprintf(msg, position, speed, angle, velocity)
}

// validateState ensures that a state observation is valid and between
// the physical bounds of the Cartpole environment
func (c *Cartpole) validateState(obs mat.Vector) error {
	if obs.Len() != ObservationDims {
		return fmt.Errorf("state should be %v-dimensional, got %v",
			ObservationDims, obs.Len())
	}

	bounds := []r1.Interval{c.positionBounds, c.speedBounds,
		c.angleBounds, c.angularVelocityBounds}
	names := []string{"position", "speed", "angle", "angular velocity"}
	for i, interval := range bounds {
		if !floatutils.Within(obs.AtVec(i), interval) {
			return fmt.Errorf("%v %v is not within bounds %v", names[i],
				obs.AtVec(i), interval)
		}
	}
	return nil
}

// normalizeAngle normalizes the pole angle to the appropriate limits
func normalizeAngle(th float64, angleBounds r1.Interval) float64 {
	if angleBounds.Max != -angleBounds.Min {
		panic("angle bounds should be centered around 0")
	}

	width := angleBounds.Max - angleBounds.Min
	for th > angleBounds.Max {
		th -= width
	}
	for th < angleBounds.Min {
		th += width
	}
	return th
}
