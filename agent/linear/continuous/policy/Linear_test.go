package policy

import (
	"bytes"
	"encoding/gob"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/samuelfneumann/goars/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

func newTestLinear(t *testing.T, w []float64, noise, lr float64,
	numBest int) *Linear {
	t.Helper()

	l := NewLinear(2, 2, noise, lr, numBest, weights.NewZero(), 1)
	if w != nil {
		err := l.SetWeights(map[string]*mat.Dense{
			WeightsKey: mat.NewDense(2, 2, w),
		})
		if err != nil {
			t.Fatalf("setWeights: %v", err)
		}
	}
	return l
}

func TestEvaluate(t *testing.T) {
	l := newTestLinear(t, []float64{1, 2, 3, 4}, 0.5, 0.1, 1)
	input := mat.NewVecDense(2, []float64{1, 1})
	delta := mat.NewDense(2, 2, []float64{2, 0, 0, -2})

	tests := []struct {
		name string
		p    Perturbation
		want []float64
	}{
		{"none", NoPerturbation(), []float64{3, 7}},
		{"zero value", Perturbation{}, []float64{3, 7}},
		{"plus zero", Plus(mat.NewDense(2, 2, nil)), []float64{3, 7}},
		{"minus zero", Minus(mat.NewDense(2, 2, nil)), []float64{3, 7}},
		{"plus", Plus(delta), []float64{4, 6}},
		{"minus", Minus(delta), []float64{2, 8}},
	}

	for _, test := range tests {
		action := l.Evaluate(input, test.p)
		if diff := cmp.Diff(test.want, action.RawVector().Data,
			approx); diff != "" {
			t.Errorf("%v (-want +have):\n%v", test.name, diff)
		}
	}

	// Perturbed evaluation leaves the weights unchanged
	want := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if !mat.Equal(want, l.Weights()[WeightsKey]) {
		t.Errorf("evaluate: weights changed: %v", l)
	}
}

func TestEvaluateZeroInput(t *testing.T) {
	l := newTestLinear(t, []float64{1, 2, 3, 4}, 0.5, 0.1, 1)
	delta := mat.NewDense(2, 2, []float64{1, 1, 1, 1})

	for _, p := range []Perturbation{NoPerturbation(), Plus(delta),
		Minus(delta)} {
		action := l.Evaluate(mat.NewVecDense(2, nil), p)
		if diff := cmp.Diff([]float64{0, 0},
			action.RawVector().Data); diff != "" {
			t.Errorf("%v (-want +have):\n%v", p.Direction(), diff)
		}
	}
}

func TestSelectAction(t *testing.T) {
	l := newTestLinear(t, []float64{1, 0, 0, -1}, 0.5, 0.1, 1)
	input := mat.NewVecDense(2, []float64{2, 3})

	want := l.Evaluate(input, NoPerturbation())
	if !mat.Equal(want, l.SelectAction(input)) {
		t.Errorf("selectAction: want %v have %v", want,
			l.SelectAction(input))
	}
}

func TestSampleDeltas(t *testing.T) {
	a := NewLinear(3, 4, 0.1, 0.1, 1, weights.NewZero(), 42)
	b := NewLinear(3, 4, 0.1, 0.1, 1, weights.NewZero(), 42)

	deltasA := a.SampleDeltas(5)
	deltasB := b.SampleDeltas(5)

	if len(deltasA) != 5 {
		t.Fatalf("sampleDeltas: want 5 deltas have %v", len(deltasA))
	}
	for i := range deltasA {
		if r, c := deltasA[i].Dims(); r != 3 || c != 4 {
			t.Errorf("delta %v: want shape (3 × 4) have (%v × %v)", i, r, c)
		}
		if !mat.Equal(deltasA[i], deltasB[i]) {
			t.Errorf("delta %v: same seed should give the same deltas", i)
		}
	}

	// The stream continues between calls
	next := a.SampleDeltas(1)
	if mat.Equal(next[0], deltasA[0]) {
		t.Error("sampleDeltas: consecutive samples should differ")
	}

	if empty := a.SampleDeltas(0); len(empty) != 0 {
		t.Errorf("sampleDeltas: want no deltas have %v", len(empty))
	}
}

func TestUpdate(t *testing.T) {
	l := newTestLinear(t, nil, 0.1, 0.1, 2)

	d1 := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	d2 := mat.NewDense(2, 2, []float64{0, 2, 2, 0})
	rollouts := []Rollout{
		{PositiveReward: 1, NegativeReward: 0, Delta: d1},
		{PositiveReward: 0.5, NegativeReward: 1, Delta: d2},
	}

	if err := l.Update(rollouts, 0.5); err != nil {
		t.Fatalf("update: %v", err)
	}

	// 0.1 / (2 * 0.5) * (1 * d1 - 0.5 * d2)
	want := []float64{0.1, -0.1, -0.1, 0.1}
	have := l.Weights()[WeightsKey].RawMatrix().Data
	if diff := cmp.Diff(want, have, approx); diff != "" {
		t.Errorf("update (-want +have):\n%v", diff)
	}
}

func TestUpdateEmpty(t *testing.T) {
	l := newTestLinear(t, []float64{1, 2, 3, 4}, 0.1, 0.1, 1)

	if err := l.Update(nil, 1); err != nil {
		t.Fatalf("update: %v", err)
	}

	want := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	if !mat.Equal(want, l.Weights()[WeightsKey]) {
		t.Errorf("update: weights should be unchanged, have %v", l)
	}
}

func TestUpdateDegenerate(t *testing.T) {
	rollouts := []Rollout{{PositiveReward: 1, NegativeReward: 1,
		Delta: mat.NewDense(2, 2, []float64{1, 1, 1, 1})}}

	for _, sigma := range []float64{0, math.NaN(), math.Inf(1)} {
		l := newTestLinear(t, []float64{1, 2, 3, 4}, 0.1, 0.1, 1)

		err := l.Update(rollouts, sigma)
		if !errors.Is(err, ErrDegenerateReward) {
			t.Errorf("sigma %v: want %v have %v", sigma,
				ErrDegenerateReward, err)
		}

		want := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
		if !mat.Equal(want, l.Weights()[WeightsKey]) {
			t.Errorf("sigma %v: weights should be unchanged, have %v",
				sigma, l)
		}
	}
}

func TestWeights(t *testing.T) {
	l := newTestLinear(t, []float64{1, 2, 3, 4}, 0.1, 0.1, 1)

	w := l.Weights()[WeightsKey]
	w.Set(0, 0, 100)
	if l.Weights()[WeightsKey].At(0, 0) != 1 {
		t.Error("weights: should return a copy of the weights")
	}

	err := l.SetWeights(map[string]*mat.Dense{
		WeightsKey: mat.NewDense(3, 2, nil),
	})
	if err == nil {
		t.Error("setWeights: expected error for wrong shape")
	}

	err = l.SetWeights(map[string]*mat.Dense{
		"bias": mat.NewDense(2, 2, nil),
	})
	if err == nil {
		t.Error("setWeights: expected error for missing weights")
	}
}

func TestLinearGob(t *testing.T) {
	l := newTestLinear(t, []float64{1, -2, 3.5, 4}, 0.1, 0.1, 1)

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(l); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := buf.Bytes()

	decoded := newTestLinear(t, nil, 0.1, 0.1, 1)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !mat.Equal(l.Weights()[WeightsKey], decoded.Weights()[WeightsKey]) {
		t.Errorf("decode: want weights %v have %v", l, decoded)
	}

	var empty Linear
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&empty); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !mat.Equal(l.Weights()[WeightsKey], empty.Weights()[WeightsKey]) {
		t.Errorf("decode: want weights %v have %v", l, &empty)
	}

	wrong := NewLinear(1, 2, 0.1, 0.1, 1, weights.NewZero(), 1)
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(wrong); err == nil {
		t.Error("decode: expected error for wrong shape")
	}
}

func TestPerturbation(t *testing.T) {
	delta := mat.NewDense(1, 1, []float64{1})

	if p := NoPerturbation(); p.Direction() != None || p.Delta() != nil {
		t.Errorf("noPerturbation: want direction None and no delta, have "+
			"%v %v", p.Direction(), p.Delta())
	}
	if p := Plus(delta); p.Direction() != Positive || p.Delta() != delta {
		t.Errorf("plus: want direction Positive, have %v", p.Direction())
	}
	if p := Minus(delta); p.Direction() != Negative || p.Delta() != delta {
		t.Errorf("minus: want direction Negative, have %v", p.Direction())
	}

	defer func() {
		if r := recover(); r == nil {
			t.Error("plus: expected panic for nil delta")
		}
	}()
	Plus(nil)
}

func TestRolloutBest(t *testing.T) {
	tests := []struct {
		pos, neg, want float64
	}{
		{1, 0, 1},
		{0, 1, 1},
		{-2, -3, -2},
		{2, 2, 2},
	}

	for _, test := range tests {
		r := Rollout{PositiveReward: test.pos, NegativeReward: test.neg}
		if r.Best() != test.want {
			t.Errorf("best(%v, %v): want %v have %v", test.pos, test.neg,
				test.want, r.Best())
		}
	}
}
