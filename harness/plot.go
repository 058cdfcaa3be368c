package harness

import (
	"fmt"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// PlotWindows draws windowed accuracy of every result as one line each and
// saves the chart. The image format follows the file extension.
func (h *Harness) PlotWindows(results []Result, path string) error {
	p := plot.New()
	p.Title.Text = "Windowed prediction accuracy"
	p.X.Label.Text = fmt.Sprintf("Window (%d branches)", h.config.WindowSize)
	p.Y.Label.Text = "Accuracy (%)"
	p.Y.Min = 0
	p.Y.Max = 100

	var lines []interface{}
	for _, r := range results {
		if len(r.Windows) == 0 {
			continue
		}

		pts := make(plotter.XYs, len(r.Windows))
		for i, acc := range r.Windows {
			pts[i].X = float64(i + 1)
			pts[i].Y = acc
		}
		lines = append(lines, r.Name, pts)
	}

	if len(lines) == 0 {
		return errors.New("no workload completed a full window")
	}

	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return errors.Wrap(err, "failed to add lines")
	}

	if err := p.Save(8*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "failed to save plot %q", path)
	}

	return nil
}
