package mountaincar

import (
	"testing"

	env "github.com/samuelfneumann/goars/environment"
	ts "github.com/samuelfneumann/goars/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func newTestMountainCar(position, speed float64, cutoff int) *MountainCar {
	s := env.NewUniformStarter([]r1.Interval{
		{Min: position, Max: position},
		{Min: speed, Max: speed},
	}, 1)
	return New(NewGoal(s, cutoff, GoalPosition))
}

func TestGoalReached(t *testing.T) {
	m := newTestMountainCar(GoalPosition-0.01, MaxSpeed, 100)
	if _, err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	step, last, err := m.Step(mat.NewVecDense(ActionDims, []float64{1}))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !last || step.EndType() != ts.TerminalStateReached {
		t.Errorf("step: want terminal step have %v", step)
	}
	if step.Reward != 0 {
		t.Errorf("step: want reward 0 have %v", step.Reward)
	}
}

func TestStepLimit(t *testing.T) {
	m := newTestMountainCar(-0.5, 0, 3)
	if m.EpisodeCutoff() != 3 {
		t.Errorf("episodeCutoff: want 3 have %v", m.EpisodeCutoff())
	}
	if _, err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	for i := 1; i <= 3; i++ {
		step, last, err := m.Step(mat.NewVecDense(ActionDims, nil))
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		if step.Reward != -1 {
			t.Errorf("step %v: want reward -1 have %v", i, step.Reward)
		}
		if want := i == 3; last != want {
			t.Errorf("step %v: want last %v have %v", i, want, last)
		}
	}
}

func TestLeftWall(t *testing.T) {
	m := newTestMountainCar(MinPosition, -MaxSpeed, 10)
	if _, err := m.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	step, _, err := m.Step(mat.NewVecDense(ActionDims, []float64{-1}))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if p, v := step.Observation.AtVec(0), step.Observation.AtVec(1); p !=
		MinPosition || v != 0 {
		t.Errorf("step: want car stopped at left wall, have position %v "+
			"speed %v", p, v)
	}
}

func TestResetInvalidState(t *testing.T) {
	m := newTestMountainCar(MaxPosition+1, 0, 10)
	if _, err := m.Reset(); err == nil {
		t.Error("reset: expected error for out of bounds start state")
	}
}
