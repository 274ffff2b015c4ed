package policy

import (
	"gonum.org/v1/gonum/mat"
)

// Direction is the direction in which a Perturbation moves the weights
// of a policy
type Direction int

const (
	None Direction = iota
	Positive
	Negative
)

func (d Direction) String() string {
	switch d {
	case Positive:
		return "Positive"
	case Negative:
		return "Negative"
	default:
		return "None"
	}
}

// Perturbation describes how the weights of a Linear policy are
// perturbed when the policy is evaluated. A Perturbation is either no
// perturbation at all, or a delta matrix applied in the positive or
// negative direction. Perturbations in some direction always carry a
// delta.
//
// The zero value is NoPerturbation.
type Perturbation struct {
	direction Direction
	delta     *mat.Dense
}

// NoPerturbation returns a Perturbation which leaves weights unchanged
func NoPerturbation() Perturbation {
	return Perturbation{}
}

// Plus returns a Perturbation which adds delta, scaled by the policy
// noise, to the weights of a policy
func Plus(delta *mat.Dense) Perturbation {
	if delta == nil {
		panic("plus: delta cannot be nil")
	}
	return Perturbation{Positive, delta}
}

// Minus returns a Perturbation which subtracts delta, scaled by the
// policy noise, from the weights of a policy
func Minus(delta *mat.Dense) Perturbation {
	if delta == nil {
		panic("minus: delta cannot be nil")
	}
	return Perturbation{Negative, delta}
}

// Direction returns the direction of the Perturbation
func (p Perturbation) Direction() Direction {
	return p.direction
}

// Delta returns the delta of the Perturbation, which is nil if the
// Perturbation has no direction
func (p Perturbation) Delta() *mat.Dense {
	return p.delta
}

// Rollout records the rewards of the pair of rollouts run with a delta
// applied in the positive and negative directions
type Rollout struct {
	PositiveReward float64
	NegativeReward float64
	Delta          *mat.Dense
}

// Best returns the larger of the positive and negative rewards
func (r Rollout) Best() float64 {
	if r.NegativeReward > r.PositiveReward {
		return r.NegativeReward
	}
	return r.PositiveReward
}
