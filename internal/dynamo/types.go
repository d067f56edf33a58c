package dynamo

import "math"

// SecondOrder is x'' = f(x, x') rewritten in state-space form.
type SecondOrder interface {
	DerivePosition(x, xDot float32) float32
	DeriveVelocity(x, xDot float32) float32
}

// Hamiltonian reports the energy of a state.
type Hamiltonian interface {
	Energy(x, xDot float32) float32
}

// Trajectory holds index-aligned samples: Position[i], Velocity[i] and
// Time[i] describe the same instant.
type Trajectory struct {
	Position []float32
	Velocity []float32
	Time     []float32
}

// Sample is one instant of a Trajectory.
type Sample struct {
	T    float32
	X    float32
	XDot float32
}

func NewTrajectory(capacity int) *Trajectory {
	return &Trajectory{
		Position: make([]float32, 0, capacity),
		Velocity: make([]float32, 0, capacity),
		Time:     make([]float32, 0, capacity),
	}
}

func (tr *Trajectory) Append(x, xDot, t float32) {
	tr.Position = append(tr.Position, x)
	tr.Velocity = append(tr.Velocity, xDot)
	tr.Time = append(tr.Time, t)
}

func (tr *Trajectory) Len() int { return len(tr.Time) }

func (tr *Trajectory) Sample(i int) Sample {
	return Sample{T: tr.Time[i], X: tr.Position[i], XDot: tr.Velocity[i]}
}

// Final returns the last sample. It panics on an empty trajectory.
func (tr *Trajectory) Final() Sample {
	return tr.Sample(tr.Len() - 1)
}

// IsValid reports whether the three sequences have equal length and hold
// only finite values.
func (tr *Trajectory) IsValid() bool {
	n := len(tr.Time)
	if len(tr.Position) != n || len(tr.Velocity) != n {
		return false
	}
	return tr.FirstNonFinite() < 0
}

// FirstNonFinite returns the index of the first sample holding NaN or Inf,
// or -1. Only indices present in all three sequences are inspected.
func (tr *Trajectory) FirstNonFinite() int {
	n := min(len(tr.Time), len(tr.Position), len(tr.Velocity))
	for i := 0; i < n; i++ {
		if !finite(tr.Position[i]) || !finite(tr.Velocity[i]) || !finite(tr.Time[i]) {
			return i
		}
	}
	return -1
}

// Float64 widens a sequence for libraries that work in float64.
func Float64(s []float32) []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
