// Command paradiag solves the all-at-once θ-method system of the scalar
// Dahlquist problem q' = λq + f(t) with preconditioned GMRES.
//
// Usage:
//
//	paradiag [flags]
//
// Several --alpha values run an α-circulant sweep, one solve per value,
// in parallel. Each row reports the iteration count, the residual after
// the first iteration and the distance to the serial time march.
//
// Examples:
//
//	paradiag
//	paradiag --nt 4096 --alpha 1,0.1,0.01,0.001
//	paradiag --preconditioner none --max-iterations 500
//	PARADIAG_FORCING=cosine paradiag -o yaml
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-paradiag/krylov"
	"github.com/cwbudde/algo-paradiag/paradiag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := loadConfig(args, stderr)
	if errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	if cfg.List {
		if err := printForcings(stdout); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return 1
		}
		return 0
	}

	logger, sync, err := newLogger(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "error: creating logger: %v\n", err)
		return 1
	}
	defer sync()

	r, err := execute(ctx, cfg, logger)
	if err != nil {
		logger.Error(err, "solve failed")
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	switch cfg.Output {
	case "yaml":
		err = writeYAML(stdout, r)
	case "table", "":
		err = writeTable(stdout, r)
	default:
		err = fmt.Errorf("unknown output format %q", cfg.Output)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// newLogger builds a zap logger exposed as logr. Verbose mode uses the
// development config, whose debug level lets the solver's V(1) lines
// through.
func newLogger(verbose bool) (logr.Logger, func(), error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc = zap.NewDevelopmentConfig()
	}
	z, err := zc.Build()
	if err != nil {
		return logr.Discard(), func() {}, err
	}
	return zapr.NewLogger(z), func() { _ = z.Sync() }, nil
}

func execute(ctx context.Context, cfg config, logger logr.Logger) (report, error) {
	p := paradiag.Problem{
		T:      cfg.T,
		NT:     cfg.NT,
		Theta:  cfg.Theta,
		Lambda: complex(cfg.LambdaRe, cfg.LambdaIm),
		Q0:     complex(cfg.Q0, cfg.Q0Im),
	}
	if err := p.Validate(); err != nil {
		return report{}, err
	}
	f, err := lookupForcing(cfg.Forcing, cfg.Omega)
	if err != nil {
		return report{}, err
	}
	kind, err := paradiag.ParseKind(cfg.Preconditioner)
	if err != nil {
		return report{}, err
	}

	opts := []paradiag.Option{
		paradiag.WithPreconditioner(kind),
		paradiag.WithTolerance(cfg.Tolerance),
		paradiag.WithMaxIterations(cfg.MaxIterations),
		paradiag.WithRestart(cfg.Restart),
		paradiag.WithWorkers(cfg.Workers),
		paradiag.WithLogger(logger),
	}

	b, err := p.RHS(f)
	if err != nil {
		return report{}, err
	}
	logger.Info("problem assembled", "nt", p.NT, "dt", p.Dt(), "preconditioner", kind.String(),
		"forcing", cfg.Forcing, "alphas", cfg.Alphas)

	var results []paradiag.SweepResult
	if kind == paradiag.KindAlphaCirculant {
		results, err = paradiag.Sweep(ctx, p, b, cfg.Alphas, opts...)
		if err != nil {
			return report{}, err
		}
	} else {
		res, err := paradiag.Solve(p, b, opts...)
		if err != nil {
			return report{}, err
		}
		alpha := 0.0
		if kind == paradiag.KindCirculant {
			alpha = 1
		}
		results = []paradiag.SweepResult{{Alpha: alpha, Result: res}}
	}

	r := report{
		Problem: problemReport{
			T:        cfg.T,
			NT:       cfg.NT,
			Theta:    cfg.Theta,
			LambdaRe: cfg.LambdaRe,
			LambdaIm: cfg.LambdaIm,
			Q0:       cfg.Q0,
			Q0Im:     cfg.Q0Im,
			Forcing:  cfg.Forcing,
			Omega:    cfg.Omega,
		},
	}
	for _, sr := range results {
		row, err := newRow(p, f, kind, sr)
		if err != nil {
			return report{}, err
		}
		r.Results = append(r.Results, row)
	}
	return r, nil
}

func newRow(p paradiag.Problem, f paradiag.Forcing, kind paradiag.Kind, sr paradiag.SweepResult) (resultRow, error) {
	res := sr.Result
	serial, err := p.SerialError(res.X, f)
	if err != nil {
		return resultRow{}, err
	}
	return resultRow{
		Preconditioner: kind.String(),
		Alpha:          sr.Alpha,
		Converged:      res.Converged,
		Iterations:     res.Stats.Iterations,
		FirstResidual:  firstResidual(res),
		Residual:       res.Stats.Residual,
		SerialError:    serial,
		Runtime:        res.Stats.Runtime.String(),
	}, nil
}

func firstResidual(res krylov.Result) float64 {
	r, ok := res.History.At(1)
	if !ok {
		return res.Stats.Residual
	}
	return r
}
