package matutils

import (
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestVecClipBounds(t *testing.T) {
	a := mat.NewVecDense(3, []float64{-5, 0.5, 5})
	lower := mat.NewVecDense(3, []float64{-1, 0, 0})
	upper := mat.NewVecDense(3, []float64{1, 1, 2})

	VecClipBounds(a, lower, upper)

	want := mat.NewVecDense(3, []float64{-1, 0.5, 2})
	if !mat.Equal(want, a) {
		t.Errorf("vecClipBounds: want %v have %v", Format(want), Format(a))
	}
}

func TestVecClipBoundsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("vecClipBounds: expected panic for mismatched lengths")
		}
	}()
	VecClipBounds(mat.NewVecDense(2, nil), mat.NewVecDense(3, nil),
		mat.NewVecDense(2, nil))
}
