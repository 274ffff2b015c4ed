// Package plotter plots data tracked during experiments
package plotter

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Size is the width and height of saved plots
const Size vg.Length = 6 * vg.Inch

// Rewards plots the reward of each iteration against the iteration
// number and saves the plot to filename. The image format is determined
// by the extension of filename, e.g. ".png" or ".svg".
func Rewards(rewards []float64, title, filename string) error {
	if len(rewards) == 0 {
		return fmt.Errorf("rewards: no rewards to plot")
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Iteration"
	p.Y.Label.Text = "Reward"

	pts := make(plotter.XYs, len(rewards))
	for i := range rewards {
		pts[i].X = float64(i)
		pts[i].Y = rewards[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("rewards: could not create line: %w", err)
	}
	p.Add(line, plotter.NewGrid())
	p.Legend.Add("Evaluation Reward", line)

	if err := p.Save(Size, Size, filename); err != nil {
		return fmt.Errorf("rewards: could not save plot: %w", err)
	}
	return nil
}
