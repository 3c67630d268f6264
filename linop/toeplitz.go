package linop

import (
	"fmt"

	"github.com/cwbudde/algo-paradiag/transform"
)

// Toeplitz is a matrix-free n×n Toeplitz operator,
//
//	M[i,j] = col[i-j]  for i ≥ j
//	M[i,j] = row[j-i]  for i < j
//
// Products are computed by embedding M into a circulant of size
// m = nextPowerOf2(2n-1):
//
//	c = [col[0], …, col[n-1], 0, …, 0, row[n-1], …, row[1]]
//
// whose leading n×n block is M. The spectrum of c is cached.
type Toeplitz struct {
	n    int
	m    int
	plan *transform.Plan

	// Spectrum of the circulant embedding.
	embedFFT []complex128
}

// NewToeplitz creates a Toeplitz operator from its first column and first row.
// col and row must have equal, non-zero length and share their first entry.
func NewToeplitz(col, row []complex128, opts ...Option) (*Toeplitz, error) {
	if err := validateToeplitz(col, row); err != nil {
		return nil, err
	}

	cfg := ApplyOptions(opts...)
	n := len(col)
	m := nextPowerOf2(2*n - 1)

	plan, err := transform.New(m, transform.WithBackend(cfg.Backend))
	if err != nil {
		return nil, fmt.Errorf("linop: failed to create FFT plan: %w", err)
	}

	embed := make([]complex128, m)
	copy(embed, col)
	for k := 1; k < n; k++ {
		embed[m-k] = row[k]
	}

	if err := plan.Forward(embed, embed); err != nil {
		return nil, fmt.Errorf("linop: failed to compute embedding spectrum: %w", err)
	}

	return &Toeplitz{
		n:        n,
		m:        m,
		plan:     plan,
		embedFFT: embed,
	}, nil
}

func validateToeplitz(col, row []complex128) error {
	if len(col) == 0 {
		return ErrEmptyInput
	}
	if len(col) != len(row) {
		return fmt.Errorf("%w: len(col)=%d, len(row)=%d", ErrDimensionMismatch, len(col), len(row))
	}
	if col[0] != row[0] {
		return fmt.Errorf("%w: col[0]=%v differs from row[0]=%v", ErrConstruction, col[0], row[0])
	}
	return nil
}

// Dims returns (n, n).
func (t *Toeplitz) Dims() (r, c int) {
	return t.n, t.n
}

// EmbeddingSize returns the size of the circulant embedding.
func (t *Toeplitz) EmbeddingSize() int {
	return t.m
}

// Apply returns M·v in a new slice.
func (t *Toeplitz) Apply(v []complex128) ([]complex128, error) {
	dst := make([]complex128, t.n)
	if err := t.ApplyTo(dst, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyTo computes dst = M·v. dst may alias v.
func (t *Toeplitz) ApplyTo(dst, v []complex128) error {
	if err := checkOperands(t.n, dst, v); err != nil {
		return err
	}

	work := make([]complex128, t.m)
	copy(work, v)

	if err := t.plan.Forward(work, work); err != nil {
		return err
	}
	for k := range work {
		work[k] *= t.embedFFT[k]
	}
	if err := t.plan.Inverse(work, work); err != nil {
		return err
	}

	copy(dst, work[:t.n])
	return nil
}

// ToeplitzDirect computes M·v straight from the definition in O(n²).
// It validates col and row like [NewToeplitz].
func ToeplitzDirect(col, row, v []complex128) ([]complex128, error) {
	if err := validateToeplitz(col, row); err != nil {
		return nil, err
	}
	n := len(col)
	dst := make([]complex128, n)
	if err := checkOperands(n, dst, v); err != nil {
		return nil, err
	}

	for i := 0; i < n; i++ {
		var sum complex128
		for j := 0; j <= i; j++ {
			sum += col[i-j] * v[j]
		}
		for j := i + 1; j < n; j++ {
			sum += row[j-i] * v[j]
		}
		dst[i] = sum
	}
	return dst, nil
}
