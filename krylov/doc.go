// Package krylov solves complex linear systems A·x = b with restarted GMRES,
// using nothing but matrix-vector products and preconditioner solves.
//
// The system matrix and the preconditioner are described by capability
// interfaces, so any matrix-free operator with Dims and ApplyTo can be
// solved, and anything with InverseApplyTo can precondition it:
//
//	res, err := krylov.GMRES(a, b, krylov.Settings{
//		Tolerance:      1e-8,
//		Preconditioner: p,
//	})
//
// Preconditioning is applied on the right (Arnoldi on A·M⁻¹), so the
// residual estimate reported after each iteration approximates the relative
// residual ‖b - A·x‖/‖b‖ of the current iterate, independent of M. Round-off
// in M⁻¹ can make the two drift apart; convergence is only reported once
// the recomputed residual meets the tolerance.
//
// Each call owns a fresh [History] that records one residual estimate per
// iteration; it is returned in the [Result] and shares no state with other
// solves.
package krylov
