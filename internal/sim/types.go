package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/hhakhilesh/DamperMassSpring/internal/dynamo"
)

// Phase tracks which of the two setters have been called.
type Phase int

const (
	PhaseUnconfigured Phase = iota
	PhaseStateSet
	PhaseWindowSet
	PhaseReady
)

func (p Phase) String() string {
	switch p {
	case PhaseUnconfigured:
		return "unconfigured"
	case PhaseStateSet:
		return "state-set"
	case PhaseWindowSet:
		return "window-set"
	case PhaseReady:
		return "ready"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// InitialState is the position and velocity at the window start.
type InitialState struct {
	X    float32
	XDot float32
}

// TimeWindow is [Start, End] with 0 <= Start <= End.
type TimeWindow struct {
	Start float32
	End   float32
}

// Duration is End - Start.
func (w TimeWindow) Duration() float32 { return w.End - w.Start }

// Setup collects the initial state and time window before a run. The zero
// value is PhaseUnconfigured. Setters may be called again between runs.
type Setup struct {
	state     InitialState
	window    TimeWindow
	stateSet  bool
	windowSet bool
}

// SetInitialState records (x0, x0Dot). Any pair is accepted.
func (s *Setup) SetInitialState(x0, x0Dot float32) {
	s.state = InitialState{X: x0, XDot: x0Dot}
	s.stateSet = true
}

// SetTimeWindow records [start, end]. It fails with ErrInvalidTimeWindow
// when start < 0 or start > end, leaving the previous window in place.
func (s *Setup) SetTimeWindow(end, start float32) error {
	if !(start >= 0) || !(start <= end) || math.IsInf(float64(end), 0) {
		return fmt.Errorf("%w: start=%g end=%g (need 0 <= start <= end)", dynamo.ErrInvalidTimeWindow, start, end)
	}
	s.window = TimeWindow{Start: start, End: end}
	s.windowSet = true
	return nil
}

func (s *Setup) Phase() Phase {
	switch {
	case s.stateSet && s.windowSet:
		return PhaseReady
	case s.stateSet:
		return PhaseStateSet
	case s.windowSet:
		return PhaseWindowSet
	}
	return PhaseUnconfigured
}

// Ready snapshots the setup for integration. The initial state is checked
// before the window.
func (s *Setup) Ready() (Ready, error) {
	if !s.stateSet {
		return Ready{}, fmt.Errorf("%w: call SetInitialState first", dynamo.ErrStateNotInitialized)
	}
	if !s.windowSet {
		return Ready{}, fmt.Errorf("%w: call SetTimeWindow first", dynamo.ErrTimeWindowNotSet)
	}
	return Ready{state: s.state, window: s.window, ok: true}, nil
}

// Ready is a value snapshot of a fully configured Setup. It can only be
// obtained from Setup.Ready; later setter calls do not affect it.
type Ready struct {
	state  InitialState
	window TimeWindow
	ok     bool
}

func (r Ready) State() InitialState { return r.state }
func (r Ready) Window() TimeWindow  { return r.window }

// Valid reports whether r came from Setup.Ready rather than a zero literal.
func (r Ready) Valid() bool { return r.ok }

// Integrator turns a ready snapshot into a trajectory.
type Integrator interface {
	IntegrateContext(ctx context.Context, sys dynamo.SecondOrder, r Ready, dt float32) (*dynamo.Trajectory, error)
}
