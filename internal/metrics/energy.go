package metrics

import (
	"math"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

// Metric accumulates one scalar over the samples of a trajectory.
type Metric interface {
	Name() string
	Observe(s dynamo.Sample)
	Value() float64
	Reset()
}

// Apply resets each metric, feeds it every sample and collects the values.
func Apply(traj *dynamo.Trajectory, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
	}
	for i := 0; i < traj.Len(); i++ {
		s := traj.Sample(i)
		for _, m := range ms {
			m.Observe(s)
		}
	}
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}

// Energy returns the per-sample energy of traj under h.
func Energy(h dynamo.Hamiltonian, traj *dynamo.Trajectory) []float32 {
	e := make([]float32, traj.Len())
	for i := range e {
		e[i] = h.Energy(traj.Position[i], traj.Velocity[i])
	}
	return e
}

// EnergyDrift is the relative change |E - E0| / |E0| at the last observed
// sample.
type EnergyDrift struct {
	name          string
	h             dynamo.Hamiltonian
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyDrift(h dynamo.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
		h:    h,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(s dynamo.Sample) {
	energy := float64(e.h.Energy(s.X, s.XDot))
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.currentEnergy = energy
	e.samples++
}

func (e *EnergyDrift) Value() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return math.Abs(e.currentEnergy-e.initialEnergy) / math.Abs(e.initialEnergy)
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}

// PeakAmplitude is the largest |x| seen.
type PeakAmplitude struct {
	peak float64
}

func NewPeakAmplitude() *PeakAmplitude { return &PeakAmplitude{} }

func (p *PeakAmplitude) Name() string { return "peak_amplitude" }

func (p *PeakAmplitude) Observe(s dynamo.Sample) {
	p.peak = math.Max(p.peak, math.Abs(float64(s.X)))
}

func (p *PeakAmplitude) Value() float64 { return p.peak }
func (p *PeakAmplitude) Reset()         { p.peak = 0 }
