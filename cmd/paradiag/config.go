package main

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "PARADIAG"

// config is the resolved driver configuration. Precedence follows viper:
// explicit flags, then PARADIAG_* environment variables, then the config
// file, then flag defaults.
type config struct {
	T        float64
	NT       int
	Theta    float64
	LambdaRe float64
	LambdaIm float64
	Q0       float64
	Q0Im     float64

	Alphas         []float64
	Preconditioner string
	Forcing        string
	Omega          float64

	Tolerance     float64
	MaxIterations int
	Restart       int
	Workers       int

	Output  string
	Verbose bool
	List    bool
}

func newFlagSet(stderr io.Writer) *pflag.FlagSet {
	fs := pflag.NewFlagSet("paradiag", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.Float64("T", 102.4, "final time")
	fs.Int("nt", 1024, "number of time steps")
	fs.Float64("theta", 0.5, "θ-method parameter (0 explicit, 0.5 Crank-Nicolson, 1 implicit)")
	fs.Float64("lambda-re", -0.01, "real part of λ")
	fs.Float64("lambda-im", 1, "imaginary part of λ")
	fs.Float64("q0", 1, "real part of the initial value")
	fs.Float64("q0-im", 0, "imaginary part of the initial value")

	fs.StringSlice("alpha", []string{"1", "0.1", "0.01"}, "α values, comma separated; several values run a sweep")
	fs.String("preconditioner", "alpha-circulant", "none, circulant or alpha-circulant")
	fs.String("forcing", "sine", "forcing term (use --list to see available)")
	fs.Float64("omega", 0.5, "forcing frequency or rate")

	fs.Float64("tolerance", 1e-8, "relative residual tolerance")
	fs.Int("max-iterations", 0, "iteration limit (0: twice the number of steps)")
	fs.Int("restart", 0, "GMRES restart length (0: min(nt, 30))")
	fs.Int("workers", runtime.GOMAXPROCS(0), "concurrent solves in a sweep")

	fs.StringP("output", "o", "table", "output format: table or yaml")
	fs.BoolP("verbose", "v", false, "log solver iterations")
	fs.String("config", "", "optional YAML or TOML config file")
	fs.Bool("list", false, "list forcing terms and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: paradiag [flags]\n\n")
		fmt.Fprintf(stderr, "Solves the all-at-once θ-method system for q' = λq + f(t) with\n")
		fmt.Fprintf(stderr, "α-circulant preconditioned GMRES and compares with the serial march.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nEnvironment variables %s_<FLAG> override defaults, e.g. %s_NT=256.\n", envPrefix, envPrefix)
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  paradiag --alpha 1,0.1,0.001\n")
		fmt.Fprintf(stderr, "  paradiag --preconditioner circulant --forcing cosine --omega 2\n")
		fmt.Fprintf(stderr, "  paradiag --config run.yaml -o yaml\n")
	}
	return fs
}

func loadConfig(args []string, stderr io.Writer) (config, error) {
	fs := newFlagSet(stderr)
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return config{}, fmt.Errorf("binding flags: %w", err)
	}
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	alphas, err := parseAlphas(v.GetStringSlice("alpha"))
	if err != nil {
		return config{}, err
	}

	return config{
		T:              v.GetFloat64("T"),
		NT:             v.GetInt("nt"),
		Theta:          v.GetFloat64("theta"),
		LambdaRe:       v.GetFloat64("lambda-re"),
		LambdaIm:       v.GetFloat64("lambda-im"),
		Q0:             v.GetFloat64("q0"),
		Q0Im:           v.GetFloat64("q0-im"),
		Alphas:         alphas,
		Preconditioner: v.GetString("preconditioner"),
		Forcing:        v.GetString("forcing"),
		Omega:          v.GetFloat64("omega"),
		Tolerance:      v.GetFloat64("tolerance"),
		MaxIterations:  v.GetInt("max-iterations"),
		Restart:        v.GetInt("restart"),
		Workers:        v.GetInt("workers"),
		Output:         strings.ToLower(v.GetString("output")),
		Verbose:        v.GetBool("verbose"),
		List:           v.GetBool("list"),
	}, nil
}

// parseAlphas accepts list entries that may themselves be comma separated,
// as they arrive from flags, environment variables and config files alike.
func parseAlphas(items []string) ([]float64, error) {
	var out []float64
	for _, item := range items {
		for _, field := range strings.Split(item, ",") {
			field = strings.Trim(strings.TrimSpace(field), "[]")
			if field == "" {
				continue
			}
			a, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid alpha %q: %w", field, err)
			}
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no alpha values given")
	}
	return out, nil
}
