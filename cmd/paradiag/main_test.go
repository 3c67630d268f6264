package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRunYAMLSweep(t *testing.T) {
	code, out, stderr := runCLI(t, "--T", "12.8", "--nt", "128", "--alpha", "1,0.1", "-o", "yaml")
	require.Equal(t, 0, code, stderr)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	assert.Equal(t, 128, r.Problem.NT)
	assert.Equal(t, "sine", r.Problem.Forcing)
	require.Len(t, r.Results, 2)
	assert.Equal(t, 1.0, r.Results[0].Alpha)
	assert.Equal(t, 0.1, r.Results[1].Alpha)
	for _, row := range r.Results {
		assert.True(t, row.Converged)
		assert.Equal(t, 2, row.Iterations)
		assert.Less(t, row.SerialError, 1e-6)
		assert.Equal(t, "alpha-circulant", row.Preconditioner)
	}
	assert.Less(t, r.Results[1].FirstResidual, r.Results[0].FirstResidual)
}

func TestRunImaginaryInitialValue(t *testing.T) {
	solve := func(args ...string) report {
		t.Helper()
		args = append([]string{"--nt", "32", "--T", "3.2", "--forcing", "none", "--q0", "0", "--alpha", "0.1", "-o", "yaml"}, args...)
		code, out, stderr := runCLI(t, args...)
		require.Equal(t, 0, code, stderr)
		var r report
		require.NoError(t, yaml.Unmarshal([]byte(out), &r))
		require.Len(t, r.Results, 1)
		return r
	}

	// q0 = 0 with no forcing is the zero right-hand side.
	zero := solve()
	assert.Equal(t, 0, zero.Results[0].Iterations)

	r := solve("--q0-im", "1")
	assert.Equal(t, 0.0, r.Problem.Q0)
	assert.Equal(t, 1.0, r.Problem.Q0Im)
	assert.True(t, r.Results[0].Converged)
	assert.Positive(t, r.Results[0].Iterations)
	assert.Less(t, r.Results[0].SerialError, 1e-6)
}

func TestRunTable(t *testing.T) {
	code, out, stderr := runCLI(t, "--nt", "64", "--T", "6.4", "--preconditioner", "circulant", "--forcing", "cosine")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "First Residual")
	assert.True(t, strings.HasPrefix(lines[2], "circulant"))
	assert.Contains(t, lines[2], "true")
}

func TestRunUnpreconditioned(t *testing.T) {
	code, out, stderr := runCLI(t, "--nt", "16", "--T", "1.6", "--preconditioner", "none", "-o", "yaml")
	require.Equal(t, 0, code, stderr)

	var r report
	require.NoError(t, yaml.Unmarshal([]byte(out), &r))
	require.Len(t, r.Results, 1)
	assert.Equal(t, "none", r.Results[0].Preconditioner)
	assert.Zero(t, r.Results[0].Alpha)
	assert.True(t, r.Results[0].Converged)
}

func TestRunList(t *testing.T) {
	code, out, _ := runCLI(t, "--list")
	require.Equal(t, 0, code)
	for _, e := range forcings {
		assert.Contains(t, out, e.name)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"unknown flag", []string{"--bogus"}, 2},
		{"bad alpha", []string{"--alpha", "x"}, 2},
		{"unknown forcing", []string{"--forcing", "square"}, 1},
		{"unknown preconditioner", []string{"--preconditioner", "jacobi"}, 1},
		{"empty preconditioner", []string{"--nt", "8", "--preconditioner", ""}, 1},
		{"alpha out of range", []string{"--nt", "8", "--alpha", "2"}, 1},
		{"invalid problem", []string{"--nt", "0"}, 1},
		{"unknown output", []string{"--nt", "8", "-o", "xml"}, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tc.args...)
			assert.Equal(t, tc.code, code)
			assert.Contains(t, stderr, "error")
		})
	}
}

func TestRunHelp(t *testing.T) {
	code, _, stderr := runCLI(t, "--help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Usage: paradiag")
}

func TestLoadConfigEnvironment(t *testing.T) {
	t.Setenv("PARADIAG_NT", "256")
	t.Setenv("PARADIAG_LAMBDA_RE", "-0.5")
	t.Setenv("PARADIAG_ALPHA", "0.5,0.25")
	t.Setenv("PARADIAG_Q0_IM", "-2")

	cfg, err := loadConfig(nil, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.NT)
	assert.Equal(t, -0.5, cfg.LambdaRe)
	assert.Equal(t, []float64{0.5, 0.25}, cfg.Alphas)
	assert.Equal(t, -2.0, cfg.Q0Im)

	// Flags win over the environment.
	cfg, err = loadConfig([]string{"--nt", "32"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.NT)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	data := "nt: 48\ntheta: 1\nalpha: [0.2, 0.02]\nforcing: decay\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := loadConfig([]string{"--config", path, "--theta", "0.75"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 48, cfg.NT)
	assert.Equal(t, 0.75, cfg.Theta)
	assert.Equal(t, []float64{0.2, 0.02}, cfg.Alphas)
	assert.Equal(t, "decay", cfg.Forcing)
	assert.InDelta(t, 102.4, cfg.T, 1e-12)

	_, err = loadConfig([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestParseAlphas(t *testing.T) {
	got, err := parseAlphas([]string{"1, 0.5", "[0.1]"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0.5, 0.1}, got)

	_, err = parseAlphas(nil)
	require.Error(t, err)
}

func TestLookupForcing(t *testing.T) {
	f, err := lookupForcing("none", 1)
	require.NoError(t, err)
	assert.Nil(t, f)

	f, err = lookupForcing("Decay", 2)
	require.NoError(t, err)
	assert.InDelta(t, 1, real(f(0)), 1e-15)
}
