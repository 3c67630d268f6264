package linop

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-paradiag/internal/cvec"
	"github.com/cwbudde/algo-paradiag/transform"
)

// diagonalization is the shared frequency-space core of the circulant
// operators: C = F⁻¹·diag(eig)·F under the transform package convention.
type diagonalization struct {
	n    int
	plan *transform.Plan
	eig  []complex128

	maxAbs, minAbs float64
	minIdx         int
	singular       bool
}

func newDiagonalization(col []complex128, cfg Config) (*diagonalization, error) {
	if tol := cfg.SingularTolerance; !(tol > 0 && tol < 1) {
		return nil, fmt.Errorf("%w: singular tolerance %v outside (0, 1)", ErrConstruction, tol)
	}

	n := len(col)
	plan, err := transform.New(n, transform.WithBackend(cfg.Backend))
	if err != nil {
		return nil, fmt.Errorf("linop: failed to create FFT plan: %w", err)
	}

	eig, err := plan.Spectrum(col)
	if err != nil {
		return nil, fmt.Errorf("linop: failed to compute eigenvalues: %w", err)
	}

	d := &diagonalization{n: n, plan: plan, eig: eig}
	d.maxAbs, d.minAbs, d.minIdx = cvec.MaxMin(eig)
	d.singular = d.maxAbs == 0 || d.minAbs <= cfg.SingularTolerance*d.maxAbs
	return d, nil
}

// solve computes work = F⁻¹·diag(eig)^(±1)·F·work in place.
func (d *diagonalization) solve(work []complex128, inverse bool) error {
	if err := d.plan.Forward(work, work); err != nil {
		return err
	}
	if inverse {
		for k := range work {
			work[k] /= d.eig[k]
		}
	} else {
		for k := range work {
			work[k] *= d.eig[k]
		}
	}
	return d.plan.Inverse(work, work)
}

func (d *diagonalization) checkSingular() error {
	if d.singular {
		return fmt.Errorf("%w: |D[%d]| = %g with max |D| = %g", ErrSingularPreconditioner, d.minIdx, d.minAbs, d.maxAbs)
	}
	return nil
}

func (d *diagonalization) eigenvalues() []complex128 {
	out := make([]complex128, d.n)
	copy(out, d.eig)
	return out
}

func (d *diagonalization) condition() float64 {
	if d.singular {
		return math.Inf(1)
	}
	return d.maxAbs / d.minAbs
}

// Circulant is a matrix-free n×n circulant operator,
//
//	M[i,j] = col[(i-j) mod n]
//
// Its eigenvalues D = Forward(col) are computed once at construction.
type Circulant struct {
	diag *diagonalization
}

// NewCirculant creates a circulant operator from its first column.
//
// A circulant with a (numerically) zero eigenvalue is still constructed and
// can be applied, but [Circulant.InverseApply] reports
// [ErrSingularPreconditioner].
func NewCirculant(col []complex128, opts ...Option) (*Circulant, error) {
	if len(col) == 0 {
		return nil, ErrEmptyInput
	}

	d, err := newDiagonalization(col, ApplyOptions(opts...))
	if err != nil {
		return nil, err
	}
	return &Circulant{diag: d}, nil
}

// Dims returns (n, n).
func (c *Circulant) Dims() (int, int) {
	return c.diag.n, c.diag.n
}

// Eigenvalues returns a copy of D.
func (c *Circulant) Eigenvalues() []complex128 {
	return c.diag.eigenvalues()
}

// Singular reports whether InverseApply will fail.
func (c *Circulant) Singular() bool {
	return c.diag.singular
}

// ConditionEstimate returns max|D| / min|D|, or +Inf for a singular operator.
// For a circulant this is the 2-norm condition number.
func (c *Circulant) ConditionEstimate() float64 {
	return c.diag.condition()
}

// Apply returns M·v in a new slice.
func (c *Circulant) Apply(v []complex128) ([]complex128, error) {
	dst := make([]complex128, c.diag.n)
	if err := c.ApplyTo(dst, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyTo computes dst = Inverse(D ⊙ Forward(v)). dst may alias v.
func (c *Circulant) ApplyTo(dst, v []complex128) error {
	return c.run(dst, v, false)
}

// InverseApply returns the solution z of M·z = v in a new slice.
func (c *Circulant) InverseApply(v []complex128) ([]complex128, error) {
	dst := make([]complex128, c.diag.n)
	if err := c.InverseApplyTo(dst, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// InverseApplyTo computes dst = Inverse(Forward(v) ⊘ D). dst may alias v.
func (c *Circulant) InverseApplyTo(dst, v []complex128) error {
	if err := c.diag.checkSingular(); err != nil {
		return err
	}
	return c.run(dst, v, true)
}

func (c *Circulant) run(dst, v []complex128, inverse bool) error {
	if err := checkOperands(c.diag.n, dst, v); err != nil {
		return err
	}

	work := make([]complex128, c.diag.n)
	copy(work, v)
	if err := c.diag.solve(work, inverse); err != nil {
		return err
	}
	copy(dst, work)
	return nil
}

// CirculantDirect computes M·v straight from the definition in O(n²).
func CirculantDirect(col, v []complex128) ([]complex128, error) {
	return AlphaCirculantDirect(col, 1, v)
}
