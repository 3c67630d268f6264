package paradiag

import (
	"runtime"

	"github.com/go-logr/logr"

	"github.com/cwbudde/algo-paradiag/krylov"
	"github.com/cwbudde/algo-paradiag/linop"
	"github.com/cwbudde/algo-paradiag/transform"
)

const (
	defaultAlpha     = 0.1
	defaultTolerance = 1e-8
)

// Config holds solver settings shared by Solve and Sweep.
type Config struct {
	// Preconditioner selects the preconditioner kind.
	Preconditioner Kind

	// Alpha is the α-circulant parameter in (0, 1].
	Alpha float64

	// Tolerance, MaxIterations and Restart are passed to GMRES. Zero
	// values select the solver defaults.
	Tolerance     float64
	MaxIterations int
	Restart       int

	// Workers bounds the number of concurrent solves in Sweep.
	Workers int

	// Logger receives solver diagnostics at V(1).
	Logger logr.Logger

	// Progress is called once per GMRES iteration. Sweep calls it from
	// several goroutines.
	Progress func(krylov.Progress)

	// Operator holds options forwarded to operator construction.
	Operator []linop.Option
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default solver configuration.
func DefaultConfig() Config {
	return Config{
		Preconditioner: KindAlphaCirculant,
		Alpha:          defaultAlpha,
		Tolerance:      defaultTolerance,
		Workers:        runtime.GOMAXPROCS(0),
		Logger:         logr.Discard(),
	}
}

// WithPreconditioner selects the preconditioner kind.
func WithPreconditioner(k Kind) Option {
	return func(cfg *Config) {
		cfg.Preconditioner = k
	}
}

// WithAlpha sets the α-circulant parameter. Values outside (0, 1] are
// rejected when the preconditioner is built.
func WithAlpha(alpha float64) Option {
	return func(cfg *Config) {
		cfg.Alpha = alpha
	}
}

// WithTolerance sets the relative residual stopping criterion.
func WithTolerance(tol float64) Option {
	return func(cfg *Config) {
		cfg.Tolerance = tol
	}
}

// WithMaxIterations sets the iteration limit.
func WithMaxIterations(n int) Option {
	return func(cfg *Config) {
		cfg.MaxIterations = n
	}
}

// WithRestart sets the GMRES restart length.
func WithRestart(n int) Option {
	return func(cfg *Config) {
		cfg.Restart = n
	}
}

// WithWorkers bounds Sweep concurrency. Non-positive values are ignored.
func WithWorkers(n int) Option {
	return func(cfg *Config) {
		if n > 0 {
			cfg.Workers = n
		}
	}
}

// WithLogger sets the solver logger.
func WithLogger(l logr.Logger) Option {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithProgress installs a per-iteration callback.
func WithProgress(fn func(krylov.Progress)) Option {
	return func(cfg *Config) {
		cfg.Progress = fn
	}
}

// WithSingularTolerance sets the relative eigenvalue threshold below
// which a preconditioner is considered singular. Values outside (0, 1)
// make Solve fail with linop.ErrConstruction.
func WithSingularTolerance(tol float64) Option {
	return func(cfg *Config) {
		cfg.Operator = append(cfg.Operator, linop.WithSingularTolerance(tol))
	}
}

// WithBackend selects the FFT engine for all operators.
func WithBackend(b transform.Backend) Option {
	return func(cfg *Config) {
		cfg.Operator = append(cfg.Operator, linop.WithBackend(b))
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
