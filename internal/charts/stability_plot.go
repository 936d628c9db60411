package charts

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/ergodata/layout.report/internal/scoring"
)

var (
	colorA      = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	colorB      = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	colorAFaint = color.RGBA{R: 31, G: 119, B: 180, A: 50}
	colorBFaint = color.RGBA{R: 214, G: 39, B: 40, A: 50}
)

// SaveStabilityPlot writes one stability series to a PNG: every simulation
// track drawn faintly, the per-step averages drawn bold on top. This is the
// offline counterpart of the /charts/stability endpoint, used by the
// score-compare tool.
func SaveStabilityPlot(series scoring.StabilitySeries, nameA, nameB, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s vs %s (%s normalization, %d crossovers)", nameA, nameB, series.Basis, series.Crossovers)
	p.X.Label.Text = "Layouts in set"
	p.Y.Label.Text = "Score"

	for sim := range series.A {
		trackA, err := trackLine(series.A[sim], series.Start, colorAFaint)
		if err != nil {
			return err
		}
		trackB, err := trackLine(series.B[sim], series.Start, colorBFaint)
		if err != nil {
			return err
		}
		p.Add(trackA, trackB)
	}

	avgA, avgB := series.Averages()
	lineA, err := trackLine(avgA, series.Start, colorA)
	if err != nil {
		return err
	}
	lineA.Width = vg.Points(2.5)
	lineB, err := trackLine(avgB, series.Start, colorB)
	if err != nil {
		return err
	}
	lineB.Width = vg.Points(2.5)
	p.Add(lineA, lineB)

	p.Legend.Add(nameA+" (avg)", lineA)
	p.Legend.Add(nameB+" (avg)", lineB)
	p.Legend.Top = true
	p.Legend.Left = false
	p.Legend.XOffs = -10
	p.Legend.YOffs = -10

	if err := p.Save(12*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("save stability plot: %w", err)
	}
	return nil
}

func trackLine(scores []float64, start int, c color.Color) (*plotter.Line, error) {
	pts := make(plotter.XYs, len(scores))
	for i, v := range scores {
		pts[i] = plotter.XY{X: float64(start + i), Y: v}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = c
	line.Width = vg.Points(1)
	return line, nil
}
