package environment

import "github.com/samuelfneumann/goars/timestep"

// StepLimit implements the Ender interface to end episodes at specific
// timestep limits
type StepLimit struct {
	episodeSteps int
}

// NewStepLimit creates and returns a new step limit
func NewStepLimit(episodeSteps int) *StepLimit {
	if episodeSteps <= 0 {
		panic("newStepLimit: episode steps must be positive")
	}
	return &StepLimit{episodeSteps}
}

// End determines whether or not the current episode should be ended,
// returning a boolean to indicate episode temrination. If the episode
// should be ended End() will modify the timestep so that its StepType
// field is timestep.Last
func (s *StepLimit) End(t *timestep.TimeStep) bool {
	if t.Number >= s.episodeSteps {
		t.StepType = timestep.Last
		t.SetEnd(timestep.TimestepLimit)
		return true
	}
	return false
}

// EpisodeCutoff returns the number of steps after which episodes end
func (s *StepLimit) EpisodeCutoff() int {
	return s.episodeSteps
}
