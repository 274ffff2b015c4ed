// Package wrappers implements wrappers around environments
package wrappers

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/samuelfneumann/goars/environment"
	ts "github.com/samuelfneumann/goars/timestep"
	"gonum.org/v1/gonum/mat"
)

// Episode is a recording of a single episode
type Episode struct {
	Observations [][]float64
	Actions      [][]float64
	Rewards      []float64
}

// Len returns the number of steps taken in the episode
func (e *Episode) Len() int {
	return len(e.Actions)
}

// Return returns the sum of rewards seen in the episode
func (e *Episode) Return() float64 {
	var r float64
	for _, reward := range e.Rewards {
		r += reward
	}
	return r
}

// Monitor wraps an environment and records the episodes run in it while
// recording is switched on. Each recorded episode is saved to its own
// file, named by the filename function, when the episode is
// interrupted by a Reset or when recording is switched off.
//
// Recording starts with the first Reset after recording is switched on.
// Monitor implements the environment.Recorder interface.
type Monitor struct {
	environment.Environment

	recording bool
	episode   *Episode
	filename  func() string
	saved     []string
	err       error
}

// NewMonitor returns a new Monitor wrapping env. Recording is off
// initially.
func NewMonitor(env environment.Environment, filename func() string) *Monitor {
	return &Monitor{
		Environment: env,
		filename:    filename,
	}
}

// SetRecording switches recording on or off. Switching recording off
// saves the episode currently being recorded.
func (m *Monitor) SetRecording(on bool) {
	if !on {
		m.flush()
	}
	m.recording = on
}

// Recording returns whether the Monitor is recording
func (m *Monitor) Recording() bool {
	return m.recording
}

// Reset resets the wrapped environment, saving any episode currently
// being recorded and starting the recording of a new one if recording
// is on.
func (m *Monitor) Reset() (ts.TimeStep, error) {
	m.flush()
	if m.err != nil {
		return ts.TimeStep{}, fmt.Errorf("reset: %w", m.err)
	}

	step, err := m.Environment.Reset()
	if err != nil {
		return step, err
	}

	if m.recording {
		m.episode = &Episode{
			Observations: [][]float64{copyVec(step.Observation)},
		}
	}
	return step, nil
}

// Step takes a step in the wrapped environment, recording the step if
// recording is on.
func (m *Monitor) Step(a *mat.VecDense) (ts.TimeStep, bool, error) {
	step, last, err := m.Environment.Step(a)
	if err != nil {
		return step, last, err
	}

	if m.recording && m.episode != nil {
		m.episode.Observations = append(m.episode.Observations,
			copyVec(step.Observation))
		m.episode.Actions = append(m.episode.Actions, copyVec(a))
		m.episode.Rewards = append(m.episode.Rewards, step.Reward)
	}
	return step, last, nil
}

// EpisodeCutoff returns the episode cutoff of the wrapped environment,
// or 0 if it has none
func (m *Monitor) EpisodeCutoff() int {
	if c, ok := m.Environment.(environment.EpisodeCutoffer); ok {
		return c.EpisodeCutoff()
	}
	return 0
}

// Saved returns the names of the files that recorded episodes were
// saved to, in the order they were saved
func (m *Monitor) Saved() []string {
	saved := make([]string, len(m.saved))
	copy(saved, m.saved)
	return saved
}

// Err returns the first error encountered while saving an episode
func (m *Monitor) Err() error {
	return m.err
}

// flush saves the episode currently being recorded, if any
func (m *Monitor) flush() {
	if m.episode == nil {
		return
	}
	episode := m.episode
	m.episode = nil

	if m.err != nil {
		return
	}

	filename := m.filename()
	if err := saveEpisode(filename, episode); err != nil {
		m.err = err
		return
	}
	m.saved = append(m.saved, filename)
}

// saveEpisode gob encodes an episode to filename
func saveEpisode(filename string, e *Episode) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("saveEpisode: could not create file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(e); err != nil {
		return fmt.Errorf("saveEpisode: could not encode episode: %w", err)
	}
	return nil
}

// LoadEpisode loads an episode saved by a Monitor
func LoadEpisode(filename string) (*Episode, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("loadEpisode: could not open file: %w", err)
	}
	defer file.Close()

	var e Episode
	if err := gob.NewDecoder(file).Decode(&e); err != nil {
		return nil, fmt.Errorf("loadEpisode: could not decode episode: %w",
			err)
	}
	return &e, nil
}

func copyVec(v mat.Vector) []float64 {
	values := make([]float64, v.Len())
	for i := range values {
		values[i] = v.AtVec(i)
	}
	return values
}
