// Package diagnostics renders the pipeline's intermediate and final state to
// disk for manual inspection: the offset cross-correlation curve that the
// synchronizer picked its coarse estimate from, and an HTML summary of the
// per-event-type match-rate aggregate.
package diagnostics

import (
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// OffsetCurve is one period's cross-correlation curve, candidate offsets on
// the x-axis and aggregated vote counts on the y-axis, plus the offset the
// synchronizer settled on.
type OffsetCurve struct {
	Period        int
	CandidateFrom int // x value of curve[0]
	Curve         []float64
	ChosenOffset  int
}

// PlotOffsetCurves renders one PNG per period's offset curve into outputDir,
// marking the chosen offset with a vertical line. Returns the file paths
// written.
func PlotOffsetCurves(outputDir string, curves []OffsetCurve) ([]string, error) {
	var written []string
	for _, c := range curves {
		path, err := plotOffsetCurve(outputDir, c)
		if err != nil {
			return written, fmt.Errorf("period %d: %w", c.Period, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func plotOffsetCurve(outputDir string, c OffsetCurve) (string, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Period %d - offset cross-correlation", c.Period)
	p.X.Label.Text = "Candidate offset (frames)"
	p.Y.Label.Text = "Vote count"

	pts := make(plotter.XYs, len(c.Curve))
	for i, v := range c.Curve {
		pts[i] = plotter.XY{X: float64(c.CandidateFrom + i), Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", err
	}
	line.Width = vg.Points(1)
	p.Add(line)

	chosenY := 0.0
	if idx := c.ChosenOffset - c.CandidateFrom; idx >= 0 && idx < len(c.Curve) {
		chosenY = c.Curve[idx]
	}
	marker, err := plotter.NewLine(plotter.XYs{
		{X: float64(c.ChosenOffset), Y: 0},
		{X: float64(c.ChosenOffset), Y: chosenY},
	})
	if err != nil {
		return "", err
	}
	marker.Color = plotter.DefaultLineStyle.Color
	marker.Width = vg.Points(2)
	p.Add(marker)
	p.Legend.Add("chosen", marker)
	p.Legend.Top = true

	out := filepath.Join(outputDir, fmt.Sprintf("period_%02d_offset.png", c.Period))
	if err := p.Save(12*vg.Inch, 5*vg.Inch, out); err != nil {
		return "", fmt.Errorf("save offset plot: %w", err)
	}
	return out, nil
}
