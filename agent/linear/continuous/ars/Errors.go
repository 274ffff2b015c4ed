package ars

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned when hyperparameters are invalid
	ErrConfig = errors.New("invalid configuration")

	// ErrFinished is returned when iterating a Trainer which has
	// already run all of its iterations
	ErrFinished = errors.New("training finished")

	// ErrFailed is returned when iterating a Trainer after an iteration
	// failed part way through
	ErrFailed = errors.New("previous iteration failed")
)

// EnvironmentError is returned when the environment could not be reset
// or stepped during a rollout
type EnvironmentError struct {
	Iteration int
	Op        string // "reset" or "step"
	Err       error
}

func (e *EnvironmentError) Error() string {
	return fmt.Sprintf("iteration %v: environment %v: %v", e.Iteration,
		e.Op, e.Err)
}

func (e *EnvironmentError) Unwrap() error {
	return e.Err
}
