package linop

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-paradiag/internal/cvec"
)

// AlphaCirculant is a matrix-free α-circulant operator,
//
//	M[i,j] = col[i-j]        for i ≥ j
//	M[i,j] = α·col[n+i-j]    for i < j
//
// It is diagonalised as M = Γ⁻¹·F⁻¹·diag(D)·F·Γ with the zero-based weights
//
//	Γ[k] = α^(k/n),  k = 0, …, n-1
//	D    = Forward(Γ ⊙ col)
//
// The same Γ is used to build D and to apply the operator. At α = 1, Γ is
// identically 1 and the operator equals [Circulant] for the same col.
type AlphaCirculant struct {
	alpha    float64
	gamma    []float64
	invGamma []float64
	diag     *diagonalization
}

// NewAlphaCirculant creates an α-circulant operator from the first column of
// the underlying circulant. alpha must lie in (0, 1].
func NewAlphaCirculant(col []complex128, alpha float64, opts ...Option) (*AlphaCirculant, error) {
	if len(col) == 0 {
		return nil, ErrEmptyInput
	}
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}

	n := len(col)
	gamma, invGamma := alphaWeights(alpha, n)

	scaled := make([]complex128, n)
	cvec.ScaleReal(scaled, col, gamma)

	d, err := newDiagonalization(scaled, ApplyOptions(opts...))
	if err != nil {
		return nil, err
	}

	return &AlphaCirculant{
		alpha:    alpha,
		gamma:    gamma,
		invGamma: invGamma,
		diag:     d,
	}, nil
}

func validateAlpha(alpha float64) error {
	if !(alpha > 0 && alpha <= 1) {
		return fmt.Errorf("%w: alpha=%v outside (0, 1]", ErrConstruction, alpha)
	}
	return nil
}

func alphaWeights(alpha float64, n int) (gamma, invGamma []float64) {
	gamma = make([]float64, n)
	invGamma = make([]float64, n)
	for k := range gamma {
		gamma[k] = math.Pow(alpha, float64(k)/float64(n))
		invGamma[k] = 1 / gamma[k]
	}
	return gamma, invGamma
}

// Dims returns (n, n).
func (a *AlphaCirculant) Dims() (int, int) {
	return a.diag.n, a.diag.n
}

// Alpha returns the wrap-around damping parameter.
func (a *AlphaCirculant) Alpha() float64 {
	return a.alpha
}

// Eigenvalues returns a copy of D = Forward(Γ ⊙ col).
func (a *AlphaCirculant) Eigenvalues() []complex128 {
	return a.diag.eigenvalues()
}

// Singular reports whether InverseApply will fail.
func (a *AlphaCirculant) Singular() bool {
	return a.diag.singular
}

// ConditionEstimate returns max|D| / min|D|, or +Inf for a singular operator.
// It ignores the conditioning of Γ.
func (a *AlphaCirculant) ConditionEstimate() float64 {
	return a.diag.condition()
}

// Apply returns M·v in a new slice.
func (a *AlphaCirculant) Apply(v []complex128) ([]complex128, error) {
	dst := make([]complex128, a.diag.n)
	if err := a.ApplyTo(dst, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// ApplyTo computes dst = Γ⁻¹ ⊙ Inverse(D ⊙ Forward(Γ ⊙ v)). dst may alias v.
func (a *AlphaCirculant) ApplyTo(dst, v []complex128) error {
	return a.run(dst, v, false)
}

// InverseApply returns the solution z of M·z = v in a new slice.
func (a *AlphaCirculant) InverseApply(v []complex128) ([]complex128, error) {
	dst := make([]complex128, a.diag.n)
	if err := a.InverseApplyTo(dst, v); err != nil {
		return nil, err
	}
	return dst, nil
}

// InverseApplyTo computes dst = Γ⁻¹ ⊙ Inverse(Forward(Γ ⊙ v) ⊘ D).
// dst may alias v.
func (a *AlphaCirculant) InverseApplyTo(dst, v []complex128) error {
	if err := a.diag.checkSingular(); err != nil {
		return err
	}
	return a.run(dst, v, true)
}

func (a *AlphaCirculant) run(dst, v []complex128, inverse bool) error {
	if err := checkOperands(a.diag.n, dst, v); err != nil {
		return err
	}

	work := make([]complex128, a.diag.n)
	cvec.ScaleReal(work, v, a.gamma)
	if err := a.diag.solve(work, inverse); err != nil {
		return err
	}
	cvec.ScaleReal(dst, work, a.invGamma)
	return nil
}

// AlphaCirculantDirect computes M·v straight from the definition in O(n²).
func AlphaCirculantDirect(col []complex128, alpha float64, v []complex128) ([]complex128, error) {
	if len(col) == 0 {
		return nil, ErrEmptyInput
	}
	if err := validateAlpha(alpha); err != nil {
		return nil, err
	}
	n := len(col)
	dst := make([]complex128, n)
	if err := checkOperands(n, dst, v); err != nil {
		return nil, err
	}

	wrap := complex(alpha, 0)
	for i := 0; i < n; i++ {
		var sum complex128
		for j := 0; j <= i; j++ {
			sum += col[i-j] * v[j]
		}
		for j := i + 1; j < n; j++ {
			sum += wrap * col[n+i-j] * v[j]
		}
		dst[i] = sum
	}
	return dst, nil
}
