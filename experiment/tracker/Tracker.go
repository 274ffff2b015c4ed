// Package tracker implements Trackers, which track and save data
// generated by the iterations of an experiment
package tracker

import (
	"encoding/gob"
	"fmt"
	"os"
)

// Tracker keeps track of experiment data and saves the data after the
// experiment has finished
type Tracker interface {
	// Track records the evaluation reward of an iteration
	Track(iteration int, reward float64)

	// Save saves all tracked data
	Save() error
}

// LoadData loads and returns the data saved by a Tracker
func LoadData(filename string) ([]float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadData: could not open data file: %w", err)
	}
	defer file.Close()

	var data []float64
	if err := gob.NewDecoder(file).Decode(&data); err != nil {
		return nil, fmt.Errorf("loadData: could not decode data: %w", err)
	}

	return data, nil
}
