package linop

import "github.com/cwbudde/algo-paradiag/transform"

const defaultSingularTolerance = 1e-12

// Config holds operator construction settings.
type Config struct {
	// SingularTolerance is the threshold on |D[k]| / max|D| below which an
	// eigenvalue counts as zero.
	SingularTolerance float64

	// Backend selects the FFT engine.
	Backend transform.Backend
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default operator configuration.
func DefaultConfig() Config {
	return Config{
		SingularTolerance: defaultSingularTolerance,
		Backend:           transform.BackendAuto,
	}
}

// WithSingularTolerance sets the relative eigenvalue threshold used to
// detect singular preconditioners. It must lie in (0, 1); constructors
// reject other values with [ErrConstruction].
func WithSingularTolerance(tol float64) Option {
	return func(cfg *Config) {
		cfg.SingularTolerance = tol
	}
}

// WithBackend selects the FFT engine used by the operator.
func WithBackend(b transform.Backend) Option {
	return func(cfg *Config) {
		cfg.Backend = b
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
