// Package agent defines an agent interface
package agent

import (
	"gonum.org/v1/gonum/mat"
)

// Agent implements a policy search algorithm which improves its Policy
// one iteration at a time.
//
// Each iteration may run many episodes in some environment. An Agent
// is configured to run a fixed number of iterations, after which it is
// Done.
type Agent interface {
	// Iterate performs a single iteration of the algorithm and returns
	// the evaluation reward of the policy after the iteration
	Iterate() (float64, error)

	// Done returns whether the agent has finished all its iterations
	Done() bool

	// Rewards returns the evaluation reward of each iteration so far
	Rewards() []float64

	Policy() Policy
}

// Policy represents a policy that an agent can have.
//
// Policies determine how agents select actions. For a given agent,
// the Policy and learning algorithm should have pointers to the same
// weights so that any changes the algorithm makes to the weights are
// reflected in the actions the Policy chooses
type Policy interface {
	SelectAction(obs mat.Vector) *mat.VecDense
	Weights() map[string]*mat.Dense
	SetWeights(map[string]*mat.Dense) error
}
