// Package transform provides the discrete Fourier transform used by the
// matrix-free operators in this module.
//
// Every operator diagonalises a circulant matrix as
//
//	C = F⁻¹ · diag(D) · F,   D = Forward(first column of C)
//
// which only holds if the eigenvalue step and the apply step share one
// normalisation. This package fixes it once:
//
//   - Forward is unscaled:  X[k] = Σ_j x[j]·exp(-2πi·jk/n)
//   - Inverse is scaled by 1/n, so Inverse(Forward(x)) == x
//
// # Usage
//
//	p, err := transform.New(1024)
//	freq := make([]complex128, p.Len())
//	err = p.Forward(freq, x)
//	err = p.Inverse(x, freq)
//
// # Backends
//
// The default backend is algo-fft. Lengths it cannot plan are handed to the
// gonum fourier package, which supports any n ≥ 1. Both produce the same
// coefficients under the convention above; [WithBackend] forces one of them.
//
// A [Plan] is safe for concurrent use. Each call borrows an engine from an
// internal pool, so callers never share scratch memory.
package transform
