package ars

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// VarianceFloor is the smallest variance a Normalizer will report for
// any feature
const VarianceFloor float64 = 0.01

// Normalizer keeps running estimates of the mean and variance of each
// feature of the observations it sees, and uses them to normalize
// observations to zero mean and unit variance.
//
// Estimates are updated incrementally with Welford's algorithm.
type Normalizer struct {
	n        []float64
	mean     []float64
	meanDiff []float64
	variance []float64
}

// NewNormalizer returns a new Normalizer for observations with the
// given number of features
func NewNormalizer(features int) *Normalizer {
	if features <= 0 {
		panic("newNormalizer: features must be positive")
	}

	variance := make([]float64, features)
	for i := range variance {
		variance[i] = VarianceFloor
	}

	return &Normalizer{
		n:        make([]float64, features),
		mean:     make([]float64, features),
		meanDiff: make([]float64, features),
		variance: variance,
	}
}

// Features returns the number of features the Normalizer tracks
func (n *Normalizer) Features() int {
	return len(n.mean)
}

// Observe updates the running estimates with the observation x
func (n *Normalizer) Observe(x mat.Vector) {
	n.checkLen(x)

	for i := range n.mean {
		value := x.AtVec(i)

		n.n[i]++
		lastMean := n.mean[i]
		n.mean[i] += (value - lastMean) / n.n[i]
		n.meanDiff[i] += (value - lastMean) * (value - n.mean[i])
		n.variance[i] = math.Max(n.meanDiff[i]/n.n[i], VarianceFloor)
	}
}

// Normalize returns x normalized by the current estimates:
//
//	(x - mean) / sqrt(variance)
//
// Normalize does not change the estimates.
func (n *Normalizer) Normalize(x mat.Vector) *mat.VecDense {
	n.checkLen(x)

	normalized := make([]float64, len(n.mean))
	for i := range normalized {
		normalized[i] = x.AtVec(i)
	}
	floats.Sub(normalized, n.mean)
	for i := range normalized {
		normalized[i] /= math.Sqrt(n.variance[i])
	}

	return mat.NewVecDense(len(normalized), normalized)
}

// N returns the number of observations seen for each feature
func (n *Normalizer) N() []float64 {
	return copySlice(n.n)
}

// Mean returns the running mean of each feature
func (n *Normalizer) Mean() []float64 {
	return copySlice(n.mean)
}

// Variance returns the running variance of each feature, which is never
// below VarianceFloor
func (n *Normalizer) Variance() []float64 {
	return copySlice(n.variance)
}

func (n *Normalizer) checkLen(x mat.Vector) {
	if x.Len() != len(n.mean) {
		panic(fmt.Sprintf("normalizer: observation should have %v "+
			"features, have %v", len(n.mean), x.Len()))
	}
}

// normalizerState is the serialized form of a Normalizer
type normalizerState struct {
	N, Mean, MeanDiff, Variance []float64
}

// GobEncode implements the gob.GobEncoder interface
func (n *Normalizer) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	state := normalizerState{n.n, n.mean, n.meanDiff, n.variance}
	if err := gob.NewEncoder(&buf).Encode(state); err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface
func (n *Normalizer) GobDecode(in []byte) error {
	var state normalizerState
	if err := gob.NewDecoder(bytes.NewReader(in)).Decode(&state); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}

	features := len(state.Mean)
	if len(state.N) != features || len(state.MeanDiff) != features ||
		len(state.Variance) != features {
		return fmt.Errorf("gobDecode: inconsistent normalizer state")
	}
	if n.mean != nil && features != len(n.mean) {
		return fmt.Errorf("gobDecode: normalizer should have %v "+
			"features, have %v", len(n.mean), features)
	}

	n.n = state.N
	n.mean = state.Mean
	n.meanDiff = state.MeanDiff
	n.variance = state.Variance
	return nil
}

func copySlice(s []float64) []float64 {
	c := make([]float64, len(s))
	copy(c, s)
	return c
}
