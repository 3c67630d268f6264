package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

type problemReport struct {
	T        float64 `yaml:"T"`
	NT       int     `yaml:"nt"`
	Theta    float64 `yaml:"theta"`
	LambdaRe float64 `yaml:"lambda_re"`
	LambdaIm float64 `yaml:"lambda_im"`
	Q0       float64 `yaml:"q0"`
	Q0Im     float64 `yaml:"q0_im"`
	Forcing  string  `yaml:"forcing"`
	Omega    float64 `yaml:"omega"`
}

type resultRow struct {
	Preconditioner string  `yaml:"preconditioner"`
	Alpha          float64 `yaml:"alpha,omitempty"`
	Converged      bool    `yaml:"converged"`
	Iterations     int     `yaml:"iterations"`
	FirstResidual  float64 `yaml:"first_residual"`
	Residual       float64 `yaml:"residual"`
	SerialError    float64 `yaml:"serial_error"`
	Runtime        string  `yaml:"runtime"`
}

type report struct {
	Problem problemReport `yaml:"problem"`
	Results []resultRow   `yaml:"results"`
}

func writeYAML(w io.Writer, r report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return enc.Close()
}

func writeTable(w io.Writer, r report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Preconditioner\tAlpha\tConverged\tIterations\tFirst Residual\tResidual\tSerial Error\tRuntime\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--------------\t-----\t---------\t----------\t--------------\t--------\t------------\t-------\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range r.Results {
		alpha := "-"
		if row.Alpha != 0 {
			alpha = fmt.Sprintf("%g", row.Alpha)
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%v\t%d\t%.3e\t%.3e\t%.3e\t%s\n",
			row.Preconditioner,
			alpha,
			row.Converged,
			row.Iterations,
			row.FirstResidual,
			row.Residual,
			row.SerialError,
			row.Runtime,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}
