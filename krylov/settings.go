package krylov

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-logr/logr"
)

// Errors returned by the solver.
var (
	ErrDimensionMismatch = errors.New("krylov: dimension mismatch")
	ErrInvalidSettings   = errors.New("krylov: invalid settings")
	ErrBreakdown         = errors.New("krylov: singular Hessenberg system")
)

// Operator is the system matrix, known only through its action.
type Operator interface {
	Dims() (r, c int)
	ApplyTo(dst, v []complex128) error
}

// Preconditioner solves M·dst = v for an approximation M of the system
// matrix.
type Preconditioner interface {
	InverseApplyTo(dst, v []complex128) error
}

// Progress is passed to Settings.Progress once per iteration.
type Progress struct {
	// Iteration counts completed iterations, starting at 1.
	Iteration int
	// Residual is the relative residual estimate after this iteration.
	Residual float64
}

// Settings holds various settings for
// solving a linear system.
type Settings struct {
	// X0 is an initial guess.
	// If it is nil, the zero vector will
	// be used.
	// If it is not nil, the length of X0
	// must be equal to the dimension of
	// the system.
	X0 []complex128

	// Tolerance is the stopping
	// criterion on the relative residual
	//  ‖b - A·x‖ / ‖b‖ < Tolerance.
	// It must lie in (0, 1). Zero means
	// 1e-8.
	Tolerance float64

	// MaxIterations is the limit on the
	// number of iterations.
	// If it is zero, it will be set to
	// twice the dimension of the system.
	MaxIterations int

	// Restart is the number of
	// iterations between restarts.
	// Zero means min(n, 30).
	Restart int

	// Preconditioner is applied on the
	// right. If it is nil, no
	// preconditioning will be used.
	Preconditioner Preconditioner

	// Progress, if not nil, is called
	// once per iteration.
	Progress func(Progress)

	// Logger receives solve and
	// per-iteration diagnostics at V(1).
	// The zero value discards them.
	Logger logr.Logger
}

const (
	defaultTolerance = 1e-8
	defaultRestart   = 30
)

func defaultSettings(s *Settings, dim int) error {
	if s.Tolerance == 0 {
		s.Tolerance = defaultTolerance
	}
	if !(s.Tolerance > 0 && s.Tolerance < 1) {
		return fmt.Errorf("%w: tolerance %v outside (0, 1)", ErrInvalidSettings, s.Tolerance)
	}

	if s.MaxIterations < 0 {
		return fmt.Errorf("%w: negative iteration limit %d", ErrInvalidSettings, s.MaxIterations)
	}
	if s.MaxIterations == 0 {
		s.MaxIterations = 2 * dim
	}

	if s.Restart < 0 {
		return fmt.Errorf("%w: negative restart length %d", ErrInvalidSettings, s.Restart)
	}
	if s.Restart == 0 {
		s.Restart = defaultRestart
	}
	if s.Restart > dim {
		s.Restart = dim
	}

	if s.Logger.GetSink() == nil {
		s.Logger = logr.Discard()
	}
	return nil
}

// Stats holds statistics about an iterative solve.
type Stats struct {
	// Iterations is the number of
	// GMRES iterations (Arnoldi steps).
	Iterations int
	// MatVec is the number of products
	// with the system matrix.
	MatVec int
	// PSolve is the number of
	// preconditioner solves.
	PSolve int
	// Residual is the final relative
	// residual ‖b - A·x‖/‖b‖, computed
	// from the returned solution.
	Residual float64
	// StartTime is an approximate time
	// when the solve was started.
	StartTime time.Time
	// Runtime is an approximate duration
	// of the solve.
	Runtime time.Duration
}

// Result holds the result of an iterative solve.
type Result struct {
	// X is the approximate solution.
	X []complex128
	// Converged reports whether the
	// tolerance was met.
	Converged bool
	// Stats holds the statistics of the
	// solve.
	Stats Stats
	// History holds the per-iteration
	// residual estimates.
	History *History
}
