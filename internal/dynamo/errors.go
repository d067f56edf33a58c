package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for model construction, configuration and integration.
var (
	// ErrInvalidParameter indicates an out-of-range m, c, k, zeta or wn.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrUnavailableParameter indicates a representation that was neither
	// supplied nor derivable, e.g. m/c/k on a modally constructed model.
	ErrUnavailableParameter = errors.New("dynamo: parameter representation unavailable")

	// ErrInvalidTimeWindow indicates start < 0 or start > end.
	ErrInvalidTimeWindow = errors.New("dynamo: invalid time window")

	// ErrStateNotInitialized indicates integration before SetInitialState.
	ErrStateNotInitialized = errors.New("dynamo: initial state not set")

	// ErrTimeWindowNotSet indicates integration before SetTimeWindow.
	ErrTimeWindowNotSet = errors.New("dynamo: time window not set")

	// ErrInvalidStepSize indicates a step size that is not strictly positive.
	ErrInvalidStepSize = errors.New("dynamo: step size must be positive")

	// ErrTrajectoryTooLong indicates the window/step ratio would exceed the
	// integrator's sample limit.
	ErrTrajectoryTooLong = errors.New("dynamo: trajectory exceeds sample limit")

	// ErrDiverged indicates a trajectory holding NaN or infinite samples,
	// typically from a step size too large for the model's frequency.
	ErrDiverged = errors.New("dynamo: trajectory diverged: non-finite samples")
)

// ParameterError wraps ErrInvalidParameter with the offending field.
type ParameterError struct {
	Name  string
	Value float32
	Rule  string
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("%s: %s = %g, must be %s", ErrInvalidParameter, e.Name, e.Value, e.Rule)
}

func (e *ParameterError) Unwrap() error {
	return ErrInvalidParameter
}
