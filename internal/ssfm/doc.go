// Package ssfm integrates the generalized nonlinear Schrödinger equation
// with the symmetric split-step Fourier method.
//
// Each step applies the frozen linear operator for half a step in the
// frequency domain, advances the nonlinear operator (Kerr, delayed Raman
// and self-steepening) across the full step with a fourth-order
// Runge-Kutta scheme evaluated in the interaction picture, and closes
// with the second linear half-step. Step sizes adapt per step from the
// local-error criterion balancing the dispersive and nonlinear
// contributions to the instantaneous bandwidth:
//
//	dz = tol^(1/3) / sqrt(deltaD * deltaN)
//
// # Example
//
//	g, _ := grid.New(1024, 0.01)
//	f := fiber.New()
//	prop, _ := ssfm.New(g, f, nil)
//	res, err := prop.Run(ctx, u0, optic.DefaultConfig())
//
// Steps are strictly sequential: each depends on the previous field, so
// the engine is single-threaded by construction. The transform backend
// may parallelize internally without changing observable results.
package ssfm
