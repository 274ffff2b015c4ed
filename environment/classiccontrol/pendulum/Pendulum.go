// Package pendulum implements the pendulum classic control environment
// with continuous actions
package pendulum

import (
	"fmt"
	"math"

	env "github.com/samuelfneumann/goars/environment"
	ts "github.com/samuelfneumann/goars/timestep"
	"github.com/samuelfneumann/goars/utils/floatutils"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

// default physical constants
const (
	AngleBound  float64 = math.Pi // +/- Angle bounds
	SpeedBound  float64 = 8.0     // +/- Speed bounds
	TorqueBound float64 = 2.0     // +/- Torque bounds

	dt              float64 = 0.05
	Gravity         float64 = 9.8
	Mass            float64 = 1.0
	Length          float64 = 1.0
	ActionDims      int     = 1
	ObservationDims int     = 2
)

// Pendulum implements the classic control environment Pendulum. In
// this environment, a pendulum is attached to a fixed base. An agent
// can swing the pendulum back and forth, but the torque is
// underpowered. In order to be able to swing the pendulum straight up,
// it must first be rocked back and forth, using the momentum to
// gradually climb higher until the pendulum can point straight up.
//
// State features consist of the angle of the pendulum from the positive
// y-axis and the angular velocity of the pendulum. The angular velocity
// is clipped to [-SpeedBound, SpeedBound] and angles are normalized to
// stay within [-AngleBound, AngleBound] = [-π, π].
//
// Actions are continuous and 1-dimensional, determining the torque
// applied at the fixed base. Actions outside of [-TorqueBound,
// TorqueBound] are clipped to stay within these bounds.
type Pendulum struct {
	env.Task
	lastStep     ts.TimeStep
	angleBounds  r1.Interval
	speedBounds  r1.Interval
	torqueBounds r1.Interval
}

// New creates and returns a new Pendulum environment. The environment
// must be Reset before it is stepped.
func New(t env.Task) *Pendulum {
	return &Pendulum{
		Task:         t,
		angleBounds:  r1.Interval{Min: -AngleBound, Max: AngleBound},
		speedBounds:  r1.Interval{Min: -SpeedBound, Max: SpeedBound},
		torqueBounds: r1.Interval{Min: -TorqueBound, Max: TorqueBound},
	}
}

// Reset resets the environment and returns a starting state drawn from
// the Task's Starter
func (p *Pendulum) Reset() (ts.TimeStep, error) {
	state := p.Start()
	if err := p.validateState(state); err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", err)
	}

	p.lastStep = ts.New(ts.First, 0, state, 0)
	return p.lastStep, nil
}

// Step takes one environmental step given action a and returns the next
// timestep and a bool indicating whether or not the episode has ended.
func (p *Pendulum) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	if a.Len() != ActionDims {
		panic(fmt.Sprintf("step: actions should be %v-dimensional",
			ActionDims))
	}
	if p.lastStep.Observation == nil {
		return ts.TimeStep{}, true, fmt.Errorf("step: environment " +
			"must be reset before stepping")
	}

	torque := floatutils.ClipInterval(a.AtVec(0), p.torqueBounds)

	nextState := p.nextState(p.lastStep.Observation, torque)
	reward := p.GetReward(p.lastStep.Observation, a, nextState)
	nextStep := ts.New(ts.Mid, reward, nextState, p.lastStep.Number+1)

	p.End(&nextStep)
	p.lastStep = nextStep

	return nextStep, nextStep.Last(), nil
}

// nextState computes the next state given the current state and the
// torque applied to the fixed base of the pendulum.
func (p *Pendulum) nextState(obs mat.Vector, torque float64) *mat.VecDense {
	th, thdot := obs.AtVec(0), obs.AtVec(1)

	newthdot := thdot + (-3*Gravity/(2*Length)*math.Sin(th+math.Pi)+
		3.0/(Mass*math.Pow(Length, 2))*torque)*dt
	newth := th + (newthdot * dt)

	newthdot = floatutils.ClipInterval(newthdot, p.speedBounds)
	newth = normalizeAngle(newth, p.angleBounds)

	return mat.NewVecDense(ObservationDims, []float64{newth, newthdot})
}

// EpisodeCutoff returns the step limit of the Task, or 0 if the Task
// does not cut episodes off at a fixed step
func (p *Pendulum) EpisodeCutoff() int {
	if c, ok := p.Task.(interface{ EpisodeCutoff() int }); ok {
		return c.EpisodeCutoff()
	}
	return 0
}

// ObservationSpec returns the observation specification of the
// environment
func (p *Pendulum) ObservationSpec() env.Spec {
	shape := mat.NewVecDense(ObservationDims, nil)

	minObs := []float64{p.angleBounds.Min, p.speedBounds.Min}
	lowerBound := mat.NewVecDense(ObservationDims, minObs)

	maxObs := []float64{p.angleBounds.Max, p.speedBounds.Max}
	upperBound := mat.NewVecDense(ObservationDims, maxObs)

	return env.NewSpec(shape, env.Observation, lowerBound, upperBound,
		env.Continuous)
}

// ActionSpec returns the action specification of the environment
func (p *Pendulum) ActionSpec() env.Spec {
	shape := mat.NewVecDense(ActionDims, nil)
	lowerBound := mat.NewVecDense(ActionDims, []float64{p.torqueBounds.Min})
	upperBound := mat.NewVecDense(ActionDims, []float64{p.torqueBounds.Max})

	return env.NewSpec(shape, env.Action, lowerBound, upperBound,
		env.Continuous)
}

// String converts the environment to a string representation
func (p *Pendulum) String() string {
	if p.lastStep.Observation == nil {
		return "Pendulum  |  not reset"
	}
	str := "Pendulum  |  theta: %v  |  theta dot: %v"
	theta := p.lastStep.Observation.AtVec(0)
	thetadot := p.lastStep.Observation.AtVec(1)

	return fmt.Sprintf(str, theta, thetadot)
}

// normalizeAngle normalizes the pendulum angle to the appropriate limits
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

// validateState validates the state to ensure that the angle and angular
// velocity are within the environmental limits
func (p *Pendulum) validateState(obs mat.Vector) error {
	if obs.Len() != ObservationDims {
		return fmt.Errorf("state should be %v-dimensional, got %v",
			ObservationDims, obs.Len())
	}
	if !floatutils.Within(obs.AtVec(0), p.angleBounds) {
		return fmt.Errorf("theta %v is not within bounds %v", obs.AtVec(0),
			p.angleBounds)
	}
	if !floatutils.Within(obs.AtVec(1), p.speedBounds) {
		return fmt.Errorf("theta dot %v is not within bounds %v",
			obs.AtVec(1), p.speedBounds)
	}
	return nil
}
