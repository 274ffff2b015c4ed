package cartpole

import (
	"testing"

	env "github.com/samuelfneumann/goars/environment"
	ts "github.com/samuelfneumann/goars/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func newTestCartpole(start []float64, cutoff int) *Cartpole {
	bounds := make([]r1.Interval, len(start))
	for i := range start {
		bounds[i] = r1.Interval{Min: start[i], Max: start[i]}
	}
	s := env.NewUniformStarter(bounds, 1)
	return New(NewBalance(s, cutoff, FailAngle))
}

func TestStepBeforeReset(t *testing.T) {
	c := newTestCartpole([]float64{0, 0, 0, 0}, 10)
	if _, _, err := c.Step(mat.NewVecDense(ActionDims, nil)); err == nil {
		t.Error("step: expected error before reset")
	}
}

func TestBalanceStepLimit(t *testing.T) {
	c := newTestCartpole([]float64{0, 0, 0, 0}, 3)

	if c.EpisodeCutoff() != 3 {
		t.Errorf("episodeCutoff: want 3 have %v", c.EpisodeCutoff())
	}
	if _, err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	// Balanced at rest with no force stays balanced
	for i := 1; i <= 3; i++ {
		step, last, err := c.Step(mat.NewVecDense(ActionDims, nil))
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		if step.Reward != 1 {
			t.Errorf("step %v: want reward 1 have %v", i, step.Reward)
		}
		if want := i == 3; last != want {
			t.Errorf("step %v: want last %v have %v", i, want, last)
		}
		if last && step.EndType() != ts.TimestepLimit {
			t.Errorf("step %v: want end type %v have %v", i,
				ts.TimestepLimit, step.EndType())
		}
	}
}

func TestBalancePoleFalls(t *testing.T) {
	c := newTestCartpole([]float64{0, 0, FailAngle * 1.5, 0}, 100)
	if _, err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	step, last, err := c.Step(mat.NewVecDense(ActionDims, nil))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !last || step.EndType() != ts.TerminalStateReached {
		t.Errorf("step: want terminal step have %v", step)
	}
	if step.Reward != -1 {
		t.Errorf("step: want reward -1 have %v", step.Reward)
	}
}

func TestBalanceLeavesTrack(t *testing.T) {
	c := newTestCartpole([]float64{PositionBounds, 5, 0, 0}, 100)
	if _, err := c.Reset(); err != nil {
		t.Fatalf("reset: %v", err)
	}

	step, last, err := c.Step(mat.NewVecDense(ActionDims, nil))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	if !last || step.EndType() != ts.TerminalStateReached {
		t.Errorf("step: want terminal step have %v", step)
	}
}

func TestForceClipped(t *testing.T) {
	start := []float64{0, 0, 0.01, 0}
	clipped := newTestCartpole(start, 10)
	bounded := newTestCartpole(start, 10)
	for _, c := range []*Cartpole{clipped, bounded} {
		if _, err := c.Reset(); err != nil {
			t.Fatalf("reset: %v", err)
		}
	}

	a, _, err := clipped.Step(mat.NewVecDense(1, []float64{-20}))
	if err != nil {
		t.Fatalf("step: %v", err)
	}
	b, _, err := bounded.Step(mat.NewVecDense(1,
		[]float64{MinContinuousAction}))
	if err != nil {
		t.Fatalf("step: %v", err)
	}

	if !mat.Equal(a.Observation, b.Observation) {
		t.Errorf("step: action should be clipped, have states %v and %v",
			a.Observation, b.Observation)
	}
}
