package environment

import (
	"testing"

	"github.com/samuelfneumann/goars/timestep"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
)

func TestStepLimit(t *testing.T) {
	s := NewStepLimit(3)

	if s.EpisodeCutoff() != 3 {
		t.Errorf("episodeCutoff: want 3 have %v", s.EpisodeCutoff())
	}

	for n := 1; n <= 4; n++ {
		step := timestep.New(timestep.Mid, 0, mat.NewVecDense(1, nil), n)
		end := s.End(&step)

		if want := n >= 3; end != want {
			t.Errorf("step %v: want end %v have %v", n, want, end)
		}
		if end && (!step.Last() || step.EndType() != timestep.TimestepLimit) {
			t.Errorf("step %v: want last step at timestep limit, have %v",
				n, step)
		}
		if !end && !step.Mid() {
			t.Errorf("step %v: step type should be unchanged", n)
		}
	}
}

func TestStepLimitPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("newStepLimit: expected panic for zero limit")
		}
	}()
	NewStepLimit(0)
}

func TestIntervalLimit(t *testing.T) {
	limits := []r1.Interval{{Min: -1, Max: 1}, {Min: 0, Max: 10}}
	i := NewIntervalLimit(limits, []int{2, 0}, timestep.TerminalStateReached)

	tests := []struct {
		obs  []float64
		want bool
	}{
		{[]float64{5, 100, 0}, false},
		{[]float64{0, 0, 1}, false},
		{[]float64{0, 0, 1.5}, true},
		{[]float64{-0.1, 0, 0}, true},
		{[]float64{10.1, 0, 0}, true},
	}

	for _, test := range tests {
		step := timestep.New(timestep.Mid, 0, mat.NewVecDense(3, test.obs), 1)
		end := i.End(&step)

		if end != test.want {
			t.Errorf("obs %v: want end %v have %v", test.obs, test.want, end)
		}
		if end && step.EndType() != timestep.TerminalStateReached {
			t.Errorf("obs %v: want end type %v have %v", test.obs,
				timestep.TerminalStateReached, step.EndType())
		}
	}
}

func TestUniformStarter(t *testing.T) {
	bounds := []r1.Interval{{Min: -1, Max: 1}, {Min: 5, Max: 5}}
	a := NewUniformStarter(bounds, 7)
	b := NewUniformStarter(bounds, 7)

	for i := 0; i < 20; i++ {
		start := a.Start()
		if start.Len() != 2 {
			t.Fatalf("start: want 2 features have %v", start.Len())
		}
		if v := start.AtVec(0); v < -1 || v > 1 {
			t.Errorf("start: feature 0 value %v out of bounds", v)
		}
		if v := start.AtVec(1); v != 5 {
			t.Errorf("start: feature 1 want 5 have %v", v)
		}
		if other := b.Start(); !mat.Equal(start, other) {
			t.Errorf("start: same seed should give same states, have %v "+
				"and %v", start, other)
		}
	}
}

func TestSpec(t *testing.T) {
	s := NewSpec(mat.NewVecDense(3, nil), Observation, mat.NewVecDense(3, nil),
		mat.NewVecDense(3, nil), Continuous)
	if s.Size() != 3 {
		t.Errorf("size: want 3 have %v", s.Size())
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("newSpec: expected panic for mismatched bounds")
		}
	}()
	NewSpec(mat.NewVecDense(3, nil), Action, mat.NewVecDense(2, nil),
		mat.NewVecDense(3, nil), Continuous)
}
