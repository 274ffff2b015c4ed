// Package policy implements linear continuous-action policies
package policy

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"github.com/samuelfneumann/goars/utils/matutils"
	"github.com/samuelfneumann/goars/utils/matutils/initializers/weights"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// WeightsKey is the key of the weights in the map returned by Weights
const WeightsKey string = "weights"

// ErrDegenerateReward is returned by Update when the standard deviation
// of the rewards used to scale the update is zero, in which case the
// update is not performed.
var ErrDegenerateReward = errors.New("reward standard deviation is zero")

// Linear implements a deterministic linear policy. Actions are the
// product of a weight matrix of shape (action dimensions × features)
// with the observation. The weights can be perturbed by random deltas
// when evaluating the policy and are updated by a weighted sum of
// these deltas.
type Linear struct {
	weights       *mat.Dense
	noise         float64
	learningRate  float64
	numBestDeltas int

	rng distuv.Normal

	// perturbed holds weights with a delta applied, reused between
	// evaluations
	perturbed *mat.Dense
}

// NewLinear creates a new Linear policy with actionDims outputs and
// features inputs. Deltas are scaled by noise when evaluating the
// policy, and updates are scaled by learningRate / numBestDeltas. The
// weights are initialized by init, and deltas are sampled from a
// random stream seeded with seed.
func NewLinear(actionDims, features int, noise, learningRate float64,
	numBestDeltas int, init weights.Initializer, seed uint64) *Linear {
	if actionDims <= 0 || features <= 0 {
		panic(fmt.Sprintf("newLinear: dimensions must be positive, got "+
			"(%v × %v)", actionDims, features))
	}
	if numBestDeltas <= 0 {
		panic("newLinear: number of best deltas must be positive")
	}

	w := mat.NewDense(actionDims, features, nil)
	init.Initialize(w)

	rng := distuv.Normal{Mu: 0, Sigma: 1, Src: rand.NewSource(seed)}

	return &Linear{
		weights:       w,
		noise:         noise,
		learningRate:  learningRate,
		numBestDeltas: numBestDeltas,
		rng:           rng,
		perturbed:     mat.NewDense(actionDims, features, nil),
	}
}

// Dims returns the shape (action dimensions × features) of the weights
func (l *Linear) Dims() (int, int) {
	return l.weights.Dims()
}

// Noise returns the scale applied to deltas when evaluating the policy
func (l *Linear) Noise() float64 {
	return l.noise
}

// Evaluate returns the action taken by the policy for the input when
// the weights are perturbed by p.
func (l *Linear) Evaluate(input mat.Vector, p Perturbation) *mat.VecDense {
	r, c := l.weights.Dims()
	if input.Len() != c {
		panic(fmt.Sprintf("evaluate: input should have %v features, "+
			"have %v", c, input.Len()))
	}

	action := mat.NewVecDense(r, nil)
	switch p.direction {
	case Positive:
		l.perturb(p.delta, l.noise)
		action.MulVec(l.perturbed, input)

	case Negative:
		l.perturb(p.delta, -l.noise)
		action.MulVec(l.perturbed, input)

	default:
		action.MulVec(l.weights, input)
	}

	return action
}

// perturb stores weights + scale * delta in l.perturbed
func (l *Linear) perturb(delta *mat.Dense, scale float64) {
	r, c := l.weights.Dims()
	if dr, dc := delta.Dims(); dr != r || dc != c {
		panic(fmt.Sprintf("perturb: delta should have shape (%v × %v), "+
			"have (%v × %v)", r, c, dr, dc))
	}
	l.perturbed.Scale(scale, delta)
	l.perturbed.Add(l.weights, l.perturbed)
}

// addScaled stores a + alpha * b in dst
func addScaled(dst, a *mat.Dense, alpha float64, b mat.Matrix) {
	var scaled mat.Dense
	scaled.Scale(alpha, b)
	dst.Add(a, &scaled)
}

// SelectAction returns the action of the unperturbed policy for the
// observation obs
func (l *Linear) SelectAction(obs mat.Vector) *mat.VecDense {
	return l.Evaluate(obs, NoPerturbation())
}

// SampleDeltas draws count matrices with the same shape as the weights,
// each with entries drawn i.i.d. from the standard normal distribution.
func (l *Linear) SampleDeltas(count int) []*mat.Dense {
	r, c := l.weights.Dims()

	deltas := make([]*mat.Dense, count)
	for k := range deltas {
		data := make([]float64, r*c)
		for i := range data {
			data[i] = l.rng.Rand()
		}
		deltas[k] = mat.NewDense(r, c, data)
	}

	return deltas
}

// Update moves the weights along the reward-weighted sum of the deltas
// in rollouts:
//
//	weights += learningRate / (numBestDeltas * sigmaRewards) *
//		Σ (positive reward - negative reward) * delta
//
// If sigmaRewards is zero (or not finite) the weights are left unchanged
// and an error wrapping ErrDegenerateReward is returned.
func (l *Linear) Update(rollouts []Rollout, sigmaRewards float64) error {
	if sigmaRewards == 0 || math.IsNaN(sigmaRewards) ||
		math.IsInf(sigmaRewards, 0) {
		return fmt.Errorf("update: sigma %v: %w", sigmaRewards,
			ErrDegenerateReward)
	}

	r, c := l.weights.Dims()
	step := mat.NewDense(r, c, nil)
	for _, rollout := range rollouts {
		addScaled(step, step, rollout.PositiveReward-rollout.NegativeReward,
			rollout.Delta)
	}

	scale := l.learningRate / (float64(l.numBestDeltas) * sigmaRewards)
	addScaled(l.weights, l.weights, scale, step)

	return nil
}

// Weights gets and returns a copy of the weights of the policy
func (l *Linear) Weights() map[string]*mat.Dense {
	weights := make(map[string]*mat.Dense)
	weights[WeightsKey] = mat.DenseCopyOf(l.weights)

	return weights
}

// SetWeights sets the weights of the policy. The new weights must have
// the same shape as the current weights.
func (l *Linear) SetWeights(weights map[string]*mat.Dense) error {
	w, ok := weights[WeightsKey]
	if !ok {
		return fmt.Errorf("setWeights: no weights named \"%v\"",
			WeightsKey)
	}

	r, c := l.weights.Dims()
	if wr, wc := w.Dims(); wr != r || wc != c {
		return fmt.Errorf("setWeights: weights should have shape "+
			"(%v × %v), have (%v × %v)", r, c, wr, wc)
	}
	l.weights.Copy(w)

	return nil
}

// GobEncode implements the gob.GobEncoder interface
func (l *Linear) GobEncode() ([]byte, error) {
	data, err := l.weights.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("gobEncode: %w", err)
	}
	return buf.Bytes(), nil
}

// GobDecode implements the gob.GobDecoder interface. Only the weights
// are restored. If l already has weights, the decoded weights must have
// the same shape.
func (l *Linear) GobDecode(in []byte) error {
	var data []byte
	if err := gob.NewDecoder(bytes.NewReader(in)).Decode(&data); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}

	var w mat.Dense
	if err := w.UnmarshalBinary(data); err != nil {
		return fmt.Errorf("gobDecode: %w", err)
	}

	if l.weights == nil {
		r, c := w.Dims()
		l.weights = &w
		l.perturbed = mat.NewDense(r, c, nil)
		return nil
	}
	return l.SetWeights(map[string]*mat.Dense{WeightsKey: &w})
}

func (l *Linear) String() string {
	return fmt.Sprintf("Linear  |  noise: %v  |  weights:\n%v", l.noise,
		matutils.Format(l.weights))
}
