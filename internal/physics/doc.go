// Package physics provides the single-degree-of-freedom mass-spring-damper
// model.
//
// An [Oscillator] is built from one of two parameterizations:
//
//   - [Physical]: mass m, damping coefficient c and spring stiffness k
//   - [Modal]: damping ratio zeta and natural frequency wn
//
// Either way the model exposes the governing equation
//
//	x'' + zeta*x' + wn^2*x = 0
//
// as two coupled first-order functions, [Oscillator.DerivePosition] and
// [Oscillator.DeriveVelocity], which makes it usable by any
// [dynamo.SecondOrder] integrator.
//
// # Damping Ratio
//
// In the physical parameterization zeta is derived as c/m, not the
// nondimensional c/(2*sqrt(k*m)).
package physics
