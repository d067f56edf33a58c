package metrics

import (
	"math"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

// Peak is a local extremum of the position sequence.
type Peak struct {
	Index     int
	T         float32
	Amplitude float32 // |x| at the extremum
}

// Peaks returns the local maxima of |x|, i.e. the oscillation envelope.
// Plateaus report their first sample.
func Peaks(traj *dynamo.Trajectory) []Peak {
	x := traj.Position
	var out []Peak
	for i := 1; i < len(x)-1; i++ {
		a := abs32(x[i])
		if a > abs32(x[i-1]) && a >= abs32(x[i+1]) && a > 0 {
			out = append(out, Peak{Index: i, T: traj.Time[i], Amplitude: a})
		}
	}
	return out
}

// Summary condenses a trajectory for reporting.
type Summary struct {
	Samples       int     `json:"samples" yaml:"samples"`
	FinalTime     float32 `json:"final_time" yaml:"final_time"`
	FinalPosition float32 `json:"final_position" yaml:"final_position"`
	FinalVelocity float32 `json:"final_velocity" yaml:"final_velocity"`
	PeakAmplitude float64 `json:"peak_amplitude" yaml:"peak_amplitude"`
	EnergyDrift   float64 `json:"energy_drift" yaml:"energy_drift"`
	Oscillations  int     `json:"oscillations" yaml:"oscillations"`
}

func Summarize(h dynamo.Hamiltonian, traj *dynamo.Trajectory) Summary {
	if traj.Len() == 0 {
		return Summary{}
	}
	vals := Apply(traj, NewEnergyDrift(h), NewPeakAmplitude())
	final := traj.Final()
	return Summary{
		Samples:       traj.Len(),
		FinalTime:     final.T,
		FinalPosition: final.X,
		FinalVelocity: final.XDot,
		PeakAmplitude: vals["peak_amplitude"],
		EnergyDrift:   vals["energy_drift"],
		Oscillations:  len(Peaks(traj)) / 2,
	}
}

// Map flattens the summary for metadata storage.
func (s Summary) Map() map[string]float64 {
	return map[string]float64{
		"samples":        float64(s.Samples),
		"final_time":     float64(s.FinalTime),
		"final_position": float64(s.FinalPosition),
		"final_velocity": float64(s.FinalVelocity),
		"peak_amplitude": s.PeakAmplitude,
		"energy_drift":   s.EnergyDrift,
		"oscillations":   float64(s.Oscillations),
	}
}

func abs32(v float32) float32 {
	return float32(math.Abs(float64(v)))
}
