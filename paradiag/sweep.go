package paradiag

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-paradiag/krylov"
)

// SweepResult pairs an α value with its solve.
type SweepResult struct {
	Alpha  float64
	Result krylov.Result
}

// Sweep solves the system of p once per α with the α-circulant
// preconditioner. Solves run concurrently, at most Config.Workers at a
// time, and results are returned in the order of alphas. The first
// failure or a cancelled ctx stops further solves from starting.
func Sweep(ctx context.Context, p Problem, b []complex128, alphas []float64, opts ...Option) ([]SweepResult, error) {
	cfg := ApplyOptions(opts...)
	if err := p.Validate(); err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(alphas))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Workers)
	for i, alpha := range alphas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c := cfg
			c.Preconditioner = KindAlphaCirculant
			c.Alpha = alpha
			res, err := solve(p, b, c)
			if err != nil {
				return fmt.Errorf("alpha %g: %w", alpha, err)
			}
			out[i] = SweepResult{Alpha: alpha, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
