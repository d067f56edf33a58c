package integrators

import (
	"testing"

	"github.com/hhakhilesh/DamperMassSpring/internal/physics"
	"github.com/hhakhilesh/DamperMassSpring/internal/sim"
)

// harmonic is a bare x'' = -x system without the model's validation.
type harmonic struct{}

func (harmonic) DerivePosition(x, xDot float32) float32 { return xDot }
func (harmonic) DeriveVelocity(x, xDot float32) float32 { return -x }

func benchReady(b *testing.B, end float32) sim.Ready {
	b.Helper()
	var s sim.Setup
	s.SetInitialState(1, 0)
	if err := s.SetTimeWindow(end, 0); err != nil {
		b.Fatal(err)
	}
	r, err := s.Ready()
	if err != nil {
		b.Fatal(err)
	}
	return r
}

func BenchmarkRK4Harmonic(b *testing.B) {
	integrator := NewRK4()
	ready := benchReady(b, 10)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := integrator.IntegrateReady(harmonic{}, ready, 0.01); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRK4Oscillator(b *testing.B) {
	integrator := NewRK4()
	osc, err := physics.NewPhysical(1, 1, 1)
	if err != nil {
		b.Fatal(err)
	}
	ready := benchReady(b, 10)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := integrator.IntegrateReady(osc, ready, DefaultStepSize); err != nil {
			b.Fatal(err)
		}
	}
}
