// Package paradiag assembles the all-at-once θ-method system for the
// scalar Dahlquist problem q' = λq + f(t) and solves it with
// preconditioned GMRES.
//
// The system matrix is lower bidiagonal Toeplitz. Replacing its missing
// upper-right corner by α times the sub-diagonal yields an α-circulant
// preconditioner which is diagonalised by the FFT, so every time step is
// decoupled in the transformed basis. For α = 1 the preconditioner is
// the plain circulant. Small α brings the preconditioner closer to the
// system matrix at the cost of round-off in the diagonalisation.
//
// Sweep runs independent solves for several α values concurrently.
package paradiag
