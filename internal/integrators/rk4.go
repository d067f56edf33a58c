package integrators

import (
	"context"
	"fmt"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
	"github.com/hhakhilesh/DamperMassSpring/internal/sim"
)

const (
	// DefaultStepSize is used when the caller has no preference.
	DefaultStepSize float32 = 0.001

	// DefaultMaxSamples bounds a single trajectory (3 sequences of float32).
	DefaultMaxSamples = 1 << 26

	// cancelCheckEvery is how many steps run between context checks.
	cancelCheckEvery = 4096
)

// RK4 is a fixed-step classical Runge-Kutta integrator for a two-state
// system. It holds no per-run state and is safe for concurrent use.
type RK4 struct {
	MaxSamples int
}

func NewRK4() *RK4 {
	return &RK4{MaxSamples: DefaultMaxSamples}
}

// Integrate checks, in order, that the initial state and the time window are
// set and that dt is positive, then integrates a snapshot of s.
func (r *RK4) Integrate(sys dynamo.SecondOrder, s *sim.Setup, dt float32) (*dynamo.Trajectory, error) {
	ready, err := s.Ready()
	if err != nil {
		return nil, err
	}
	return r.IntegrateReady(sys, ready, dt)
}

// IntegrateReady integrates from a snapshot. The loop runs steps+1 times
// where steps = floor((end-start)/dt), so the result holds steps+2 samples
// and the last time may pass end by up to one dt.
func (r *RK4) IntegrateReady(sys dynamo.SecondOrder, ready sim.Ready, dt float32) (*dynamo.Trajectory, error) {
	return r.IntegrateContext(context.Background(), sys, ready, dt)
}

// IntegrateContext is IntegrateReady with cancellation. A cancelled run
// returns ctx.Err() and no trajectory.
func (r *RK4) IntegrateContext(ctx context.Context, sys dynamo.SecondOrder, ready sim.Ready, dt float32) (*dynamo.Trajectory, error) {
	if !ready.Valid() {
		return nil, dynamo.ErrStateNotInitialized
	}
	if !(dt > 0) {
		return nil, fmt.Errorf("%w: got %g", dynamo.ErrInvalidStepSize, dt)
	}

	window := ready.Window()
	limit := r.MaxSamples
	if limit <= 0 {
		limit = DefaultMaxSamples
	}

	// float32 division, truncated toward zero
	ratio := (window.End - window.Start) / dt
	if ratio > float32(limit-2) {
		return nil, fmt.Errorf("%w: window %g..%g at dt=%g needs more than %d samples",
			dynamo.ErrTrajectoryTooLong, window.Start, window.End, dt, limit)
	}
	steps := int(ratio)
	if steps > limit-2 {
		return nil, fmt.Errorf("%w: window %g..%g at dt=%g needs more than %d samples",
			dynamo.ErrTrajectoryTooLong, window.Start, window.End, dt, limit)
	}

	traj := dynamo.NewTrajectory(steps + 2)

	start := window.Start
	x := ready.State().X
	xDot := ready.State().XDot
	traj.Append(x, xDot, start)

	half := dt / 2
	dt6 := dt / 6

	for i := 1; i <= steps+1; i++ {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		k11 := sys.DerivePosition(x, xDot)
		k12 := sys.DeriveVelocity(x, xDot)

		k21 := sys.DerivePosition(x+half*k11, xDot+half*k12)
		k22 := sys.DeriveVelocity(x+half*k11, xDot+half*k12)

		k31 := sys.DerivePosition(x+half*k21, xDot+half*k22)
		k32 := sys.DeriveVelocity(x+half*k21, xDot+half*k22)

		k41 := sys.DerivePosition(x+dt*k31, xDot+dt*k32)
		k42 := sys.DeriveVelocity(x+dt*k31, xDot+dt*k32)

		x += dt6 * (k11 + 2*k21 + 2*k31 + k41)
		xDot += dt6 * (k12 + 2*k22 + 2*k32 + k42)

		traj.Append(x, xDot, start+float32(i)*dt)
	}

	return traj, nil
}
