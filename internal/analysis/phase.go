package analysis

import (
	"math"
	"strings"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

// density shades, from a single visit upwards
var shades = []rune{'.', ':', '*', '#'}

// PhasePortrait is the trajectory projected onto the (x, x') plane.
type PhasePortrait struct {
	X []float32
	V []float32
}

// NewPhasePortrait shares the position and velocity slices of traj.
func NewPhasePortrait(traj *dynamo.Trajectory) *PhasePortrait {
	return &PhasePortrait{X: traj.Position, V: traj.Velocity}
}

// bounds pads the range of vs by 10% on every side. vs must be non-empty.
func bounds(vs []float64) (lo, span float64) {
	lo, hi := vs[0], vs[0]
	for _, v := range vs[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span = hi - lo
	if span == 0 {
		span = 1
	}
	return lo - span*0.1, span * 1.2
}

// ASCII draws the portrait on a width x height grid. Cells are shaded by how
// many samples land in them; S and E mark the first and last plotted sample.
// Samples with a NaN or infinite coordinate are skipped, and the result is
// empty when none remain.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || width < 2 || height < 2 {
		return ""
	}

	n := min(len(p.X), len(p.V))
	xs := make([]float64, 0, n)
	vs := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x, v := float64(p.X[i]), float64(p.V[i])
		if math.IsNaN(x) || math.IsInf(x, 0) || math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		xs = append(xs, x)
		vs = append(vs, v)
	}
	if len(xs) == 0 {
		return ""
	}

	x0, xSpan := bounds(xs)
	v0, vSpan := bounds(vs)

	// scale maps v in [lo, lo+span] onto 0..cells-1, clamped at the edges
	scale := func(v, lo, span float64, cells int) int {
		f := (v - lo) / span * float64(cells-1)
		return int(max(0, min(f, float64(cells-1))))
	}
	cell := func(x, v float64) (row, col int) {
		return height - 1 - scale(v, v0, vSpan, height), scale(x, x0, xSpan, width)
	}

	hits := make([][]int, height)
	grid := make([][]rune, height)
	for r := range grid {
		hits[r] = make([]int, width)
		grid[r] = []rune(strings.Repeat(" ", width))
	}

	if x0 <= 0 && 0 <= x0+xSpan {
		_, zc := cell(0, v0)
		for r := range grid {
			grid[r][zc] = '│'
		}
	}
	if v0 <= 0 && 0 <= v0+vSpan {
		zr, _ := cell(x0, 0)
		for c := range grid[zr] {
			if grid[zr][c] == '│' {
				grid[zr][c] = '┼'
			} else {
				grid[zr][c] = '─'
			}
		}
	}

	for i := range xs {
		r, c := cell(xs[i], vs[i])
		hits[r][c]++
		grid[r][c] = shades[min(hits[r][c], len(shades))-1]
	}

	r, c := cell(xs[0], vs[0])
	grid[r][c] = 'S'
	last := len(xs) - 1
	r, c = cell(xs[last], vs[last])
	grid[r][c] = 'E'

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}
