package paradiag

import (
	"fmt"

	"github.com/cwbudde/algo-paradiag/krylov"
	"github.com/cwbudde/algo-paradiag/linop"
)

// Solve solves the all-at-once system of p with right-hand side b, as
// built by Problem.RHS. The returned Result carries the per-iteration
// residual history of this solve.
func Solve(p Problem, b []complex128, opts ...Option) (krylov.Result, error) {
	return solve(p, b, ApplyOptions(opts...))
}

func solve(p Problem, b []complex128, cfg Config) (krylov.Result, error) {
	if err := p.Validate(); err != nil {
		return krylov.Result{}, err
	}
	if len(b) != p.NT {
		return krylov.Result{}, fmt.Errorf("%w: rhs length %d, want %d", linop.ErrDimensionMismatch, len(b), p.NT)
	}

	a, err := p.System(cfg.Operator...)
	if err != nil {
		return krylov.Result{}, fmt.Errorf("paradiag: system: %w", err)
	}
	m, err := p.Preconditioner(cfg.Preconditioner, cfg.Alpha, cfg.Operator...)
	if err != nil {
		return krylov.Result{}, fmt.Errorf("paradiag: preconditioner: %w", err)
	}

	logger := cfg.Logger.WithValues("preconditioner", cfg.Preconditioner.String())
	if cfg.Preconditioner == KindAlphaCirculant {
		logger = logger.WithValues("alpha", cfg.Alpha)
	}

	return krylov.GMRES(a, b, krylov.Settings{
		Tolerance:      cfg.Tolerance,
		MaxIterations:  cfg.MaxIterations,
		Restart:        cfg.Restart,
		Preconditioner: m,
		Progress:       cfg.Progress,
		Logger:         logger,
	})
}
