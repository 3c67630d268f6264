// Package linop provides matrix-free linear operators for the all-at-once
// system of a θ-method time discretisation and its diagonalisable
// preconditioners.
//
// No operator ever forms its n×n matrix. Each one stores an O(n) descriptor
// and the FFT spectrum derived from it at construction, and applies itself
// in O(n log n):
//
//   - [Toeplitz]: M[i,j] = col[i-j] for i ≥ j, row[j-i] otherwise. Products
//     go through a zero-padded circulant embedding of size ≥ 2n-1.
//   - [Circulant]: M[i,j] = col[(i-j) mod n], diagonalised as
//     F⁻¹·diag(D)·F with D = Forward(col).
//   - [AlphaCirculant]: a circulant whose wrap-around entries are scaled by
//     α, diagonalised as Γ⁻¹·F⁻¹·diag(D)·F·Γ with Γ[k] = α^(k/n) and
//     D = Forward(Γ⊙col). At α = 1 it is exactly [Circulant].
//
// # Capabilities
//
// Every operator satisfies [Operator] (Dims and ApplyTo). The circulant
// variants also satisfy [Preconditioner], adding InverseApplyTo, which solves
// C·z = v by division in frequency space.
//
// # Usage
//
//	a, err := linop.NewToeplitz(col, row)
//	p, err := linop.NewAlphaCirculant(col, 0.1)
//	y, err := a.Apply(x)
//	z, err := p.InverseApply(y)
//
// # Errors
//
// Operand lengths that disagree with an operator's shape return
// [ErrDimensionMismatch]. Invalid descriptors (col[0] != row[0], α outside
// (0,1]) return [ErrConstruction] and no operator. InverseApply on a
// circulant with an eigenvalue that is zero relative to the largest one
// returns [ErrSingularPreconditioner]. There is no dense fallback.
//
// # Conditioning
//
// For small α the entries of Γ shrink towards α and the scale/unscale pair
// around the FFT loses accuracy; α close to machine epsilon is not usable.
// Moderate α (around 1e-1 … 1e-4) trades this against a preconditioner that
// is closer to the Toeplitz matrix.
package linop
