package paradiag

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-paradiag/linop"
)

// ErrInvalidProblem is returned for malformed problem parameters.
var ErrInvalidProblem = errors.New("paradiag: invalid problem")

// Forcing is a time-dependent source term. A nil Forcing means f ≡ 0.
type Forcing func(t float64) complex128

// Problem describes q' = λq + f(t), q(0) = Q0 on [0, T], discretised with
// NT steps of the θ-method.
type Problem struct {
	T      float64
	NT     int
	Theta  float64
	Lambda complex128
	Q0     complex128
}

// Validate reports whether the problem parameters are usable.
func (p Problem) Validate() error {
	switch {
	case !(p.T > 0) || math.IsInf(p.T, 0):
		return fmt.Errorf("%w: T must be positive and finite, got %g", ErrInvalidProblem, p.T)
	case p.NT < 1:
		return fmt.Errorf("%w: NT must be at least 1, got %d", ErrInvalidProblem, p.NT)
	case !(p.Theta >= 0 && p.Theta <= 1):
		return fmt.Errorf("%w: theta must lie in [0, 1], got %g", ErrInvalidProblem, p.Theta)
	case cmplx.IsNaN(p.Lambda) || cmplx.IsInf(p.Lambda):
		return fmt.Errorf("%w: lambda must be finite", ErrInvalidProblem)
	case cmplx.IsNaN(p.Q0) || cmplx.IsInf(p.Q0):
		return fmt.Errorf("%w: q0 must be finite", ErrInvalidProblem)
	}

	// The step matrix diagonal vanishes when 1/dt = λθ.
	if p.diagonal() == 0 {
		return fmt.Errorf("%w: 1/dt - lambda*theta is zero", ErrInvalidProblem)
	}
	return nil
}

// Dt returns the uniform step size T/NT.
func (p Problem) Dt() float64 {
	return p.T / float64(p.NT)
}

// Times returns the NT unknown time levels t_1 … t_NT, or nil if NT < 1.
func (p Problem) Times() []float64 {
	if p.NT < 1 {
		return nil
	}
	dt := p.Dt()
	out := make([]float64, p.NT)
	for k := range out {
		out[k] = float64(k+1) * dt
	}
	return out
}

func (p Problem) diagonal() complex128 {
	return complex(1/p.Dt(), 0) - p.Lambda*complex(p.Theta, 0)
}

func (p Problem) subdiagonal() complex128 {
	return complex(-1/p.Dt(), 0) - p.Lambda*complex(1-p.Theta, 0)
}

// Coefficients returns the first column and first row of the Toeplitz
// system matrix, [1,-1,0,…]/dt - λ·[θ,1-θ,0,…] and [col[0],0,…]. Both are
// nil if NT < 1.
func (p Problem) Coefficients() (col, row []complex128) {
	if p.NT < 1 {
		return nil, nil
	}
	col = make([]complex128, p.NT)
	row = make([]complex128, p.NT)
	col[0] = p.diagonal()
	row[0] = col[0]
	if p.NT > 1 {
		col[1] = p.subdiagonal()
	}
	return col, row
}

// RHS assembles the all-at-once right-hand side
//
//	b[k] = θ f(t_{k+1}) + (1-θ) f(t_k),   b[0] += q0·(1/dt + (1-θ)λ).
func (p Problem) RHS(f Forcing) ([]complex128, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	b := make([]complex128, p.NT)
	if f != nil {
		dt := p.Dt()
		theta := complex(p.Theta, 0)
		prev := f(0)
		for k := range b {
			next := f(float64(k+1) * dt)
			b[k] = theta*next + (1-theta)*prev
			prev = next
		}
	}
	b[0] -= p.Q0 * p.subdiagonal()
	return b, nil
}

// Serial marches the θ-method step by step and returns q(t_1) … q(t_NT).
// It is the reference the all-at-once solution is checked against.
func (p Problem) Serial(f Forcing) ([]complex128, error) {
	b, err := p.RHS(f)
	if err != nil {
		return nil, err
	}
	out := make([]complex128, p.NT)
	// b[0] already carries the initial condition.
	diag, sub := p.diagonal(), p.subdiagonal()
	var prev complex128
	for k := range out {
		out[k] = (b[k] - sub*prev) / diag
		prev = out[k]
	}
	return out, nil
}

// Exact returns the analytic solution q0·exp(λt) of the unforced problem.
func (p Problem) Exact(t float64) complex128 {
	return p.Q0 * cmplx.Exp(p.Lambda*complex(t, 0))
}

// System returns the all-at-once system matrix.
func (p Problem) System(opts ...linop.Option) (*linop.Toeplitz, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	col, row := p.Coefficients()
	return linop.NewToeplitz(col, row, opts...)
}

// Preconditioner returns the preconditioner of the given kind. alpha is
// only consulted for KindAlphaCirculant.
func (p Problem) Preconditioner(kind Kind, alpha float64, opts ...linop.Option) (linop.Preconditioner, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	col, _ := p.Coefficients()
	switch kind {
	case KindNone:
		return linop.Identity(p.NT), nil
	case KindCirculant:
		c, err := linop.NewCirculant(col, opts...)
		if err != nil {
			return nil, err
		}
		return c, nil
	case KindAlphaCirculant:
		a, err := linop.NewAlphaCirculant(col, alpha, opts...)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: unknown preconditioner kind %d", linop.ErrConstruction, int(kind))
	}
}
