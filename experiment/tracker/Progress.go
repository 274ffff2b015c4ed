package tracker

import (
	"github.com/samuelfneumann/goars/utils/progressbar"
)

// Progress displays a progress bar which advances once per tracked
// iteration
type Progress struct {
	bar *progressbar.ManualProgressBar
}

// NewProgress returns a new Progress Tracker for an experiment of
// iterations iterations, with a progress bar width characters wide
func NewProgress(width, iterations int) *Progress {
	return &Progress{progressbar.NewManualProgressBar(width, iterations)}
}

// Track advances the progress bar
func (p *Progress) Track(_ int, reward float64) {
	p.bar.Increment()
	p.bar.SetMessage(reward)
	p.bar.Display()
}

// Save finishes displaying the progress bar
func (p *Progress) Save() error {
	p.bar.Close()
	return nil
}
