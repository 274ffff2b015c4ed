package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Return tracks and saves the evaluation reward of each iteration in an
// experiment.
type Return struct {
	returns  []float64
	filename string
}

// NewReturn creates and returns a new *Return Tracker which saves its
// data to filename
func NewReturn(filename string) *Return {
	return &Return{filename: filename}
}

// Track caches the reward of an iteration. Track panics if it is called
// for non-sequential iterations.
func (r *Return) Track(iteration int, reward float64) {
	if iteration != len(r.returns) {
		panic(fmt.Sprintf("track: iterations tracked are not sequential: "+
			"iteration %v --> iteration %v", len(r.returns)-1, iteration))
	}
	r.returns = append(r.returns, reward)
}

// Data returns the rewards tracked so far
func (r *Return) Data() []float64 {
	data := make([]float64, len(r.returns))
	copy(data, r.returns)
	return data
}

// Save saves the data tracked by the Return Tracker to disk
func (r *Return) Save() error {
	file, err := os.Create(r.filename)
	if err != nil {
		return fmt.Errorf("save: could not open save file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(r.returns); err != nil {
		return fmt.Errorf("save: could not encode return data: %w", err)
	}
	return nil
}
