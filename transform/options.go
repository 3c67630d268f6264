package transform

// Backend selects the FFT engine behind a [Plan].
type Backend int

const (
	// BackendAuto uses algo-fft and falls back to gonum for lengths algo-fft
	// cannot plan.
	BackendAuto Backend = iota

	// BackendAlgoFFT always uses algo-fft and fails for unsupported lengths.
	BackendAlgoFFT

	// BackendGonum always uses gonum's dsp/fourier.
	BackendGonum
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendAuto:
		return "auto"
	case BackendAlgoFFT:
		return "algo-fft"
	case BackendGonum:
		return "gonum"
	default:
		return "unknown"
	}
}

// Config holds plan construction settings.
type Config struct {
	Backend Backend
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the default plan configuration.
func DefaultConfig() Config {
	return Config{Backend: BackendAuto}
}

// WithBackend forces a specific FFT engine.
func WithBackend(b Backend) Option {
	return func(cfg *Config) {
		if b >= BackendAuto && b <= BackendGonum {
			cfg.Backend = b
		}
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
