// Package dynamo provides the core primitives shared by the oscillator model
// and the integrator.
//
// The package defines:
//
//   - [SecondOrder]: a second-order ODE split into two coupled first-order
//     derivative functions of position and velocity
//   - [Trajectory]: the index-aligned position, velocity and time samples
//     produced by an integration run
//   - the sentinel errors returned by construction, configuration and
//     integration
//
// # Example
//
//	osc, _ := physics.NewPhysical(1, 1, 1)
//	var setup sim.Setup
//	setup.SetInitialState(2, 0)
//	_ = setup.SetTimeWindow(10, 0)
//	traj, err := integrators.NewRK4().Integrate(osc, &setup, integrators.DefaultStepSize)
//
// # Numeric Type
//
// All core values are float32.
package dynamo
