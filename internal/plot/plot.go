// Package plot renders trajectory sequences as PNG or SVG line plots
// (gonum/plot) or terminal graphs (asciigraph).
//
// The functions here trust their input: sequences come from the integrator
// and are already index-aligned.
package plot

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgsvg"
)

const (
	DefaultTitle  = "Mass-Spring-Damper (RK4)"
	DefaultXLabel = "time[s]"
	DefaultYLabel = "x-position"
)

// Figure carries the display strings of a plot.
type Figure struct {
	Title  string
	XLabel string
	YLabel string
	Legend string // optional line name, e.g. "m,c,k= 1,1,1"
}

func DefaultFigure() Figure {
	return Figure{Title: DefaultTitle, XLabel: DefaultXLabel, YLabel: DefaultYLabel}
}

func limitedTicker(maxLabels int, labelFmt string) plot.Ticker {
	if maxLabels < 2 {
		maxLabels = 2
	}
	return plot.TickerFunc(func(min, max float64) []plot.Tick {
		if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) {
			return nil
		}
		if min == max {
			return []plot.Tick{{Value: min, Label: fmt.Sprintf(labelFmt, min)}}
		}
		step := (max - min) / float64(maxLabels-1)
		ticks := make([]plot.Tick, 0, maxLabels)
		for i := 0; i < maxLabels; i++ {
			v := min + float64(i)*step
			ticks = append(ticks, plot.Tick{Value: v, Label: fmt.Sprintf(labelFmt, v)})
		}
		return ticks
	})
}

func stylePlot(p *plot.Plot) {
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.Padding = vg.Points(8)

	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)
	p.X.Padding = vg.Points(6)
	p.Y.Padding = vg.Points(6)

	p.X.Tick.Marker = limitedTicker(11, "%.2g")
	p.Y.Tick.Marker = limitedTicker(9, "%.2g")
}

// NewLinePlot builds a gonum plot of ys against xs.
func NewLinePlot(xs, ys []float32, fig Figure) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fig.Title
	p.X.Label.Text = fig.XLabel
	p.Y.Label.Text = fig.YLabel
	stylePlot(p)

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = float64(xs[i])
		pts[i].Y = float64(ys[i])
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line, plotter.NewGrid())

	if fig.Legend != "" {
		p.Legend.Add(fig.Legend, line)
		p.Legend.Top = true
	}
	return p, nil
}

// WritePNG renders the plot at 8x6 inches, 150 DPI.
func WritePNG(w io.Writer, xs, ys []float32, fig Figure) error {
	p, err := NewLinePlot(xs, ys, fig)
	if err != nil {
		return err
	}

	c := vgimg.NewWith(
		vgimg.UseWH(8*vg.Inch, 6*vg.Inch),
		vgimg.UseDPI(150),
	)
	p.Draw(draw.New(c))

	bw := bufio.NewWriter(w)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("cannot write png: %w", err)
	}
	return bw.Flush()
}

// WriteSVG renders the same figure as WritePNG in vector form.
func WriteSVG(w io.Writer, xs, ys []float32, fig Figure) error {
	p, err := NewLinePlot(xs, ys, fig)
	if err != nil {
		return err
	}

	c := vgsvg.New(8*vg.Inch, 6*vg.Inch)
	p.Draw(draw.New(c))

	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("cannot write svg: %w", err)
	}
	return nil
}

// Save picks the format from the file extension (.svg, otherwise PNG) and
// creates the parent directory if needed.
func Save(path string, xs, ys []float32, fig Figure) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create plot file: %w", err)
	}
	defer f.Close()

	write := WritePNG
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		write = WriteSVG
	}
	if err := write(f, xs, ys, fig); err != nil {
		return err
	}
	return f.Close()
}

// ASCII renders ys as a terminal graph. Long series are downsampled to
// width points by asciigraph.
func ASCII(ys []float32, caption string, width, height int) string {
	return asciigraph.Plot(dynamo.Float64(ys),
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}
