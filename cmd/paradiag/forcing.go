package main

import (
	"fmt"
	"io"
	"math"
	"math/cmplx"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-paradiag/paradiag"
)

type forcingEntry struct {
	name  string
	desc  string
	build func(omega float64) paradiag.Forcing
}

var forcings = []forcingEntry{
	{"none", "f(t) = 0", func(float64) paradiag.Forcing { return nil }},
	{"sine", "f(t) = sin(ωt)", func(w float64) paradiag.Forcing {
		return func(t float64) complex128 { return complex(math.Sin(w*t), 0) }
	}},
	{"cosine", "f(t) = cos(ωt)", func(w float64) paradiag.Forcing {
		return func(t float64) complex128 { return complex(math.Cos(w*t), 0) }
	}},
	{"decay", "f(t) = exp(-ωt)", func(w float64) paradiag.Forcing {
		return func(t float64) complex128 { return complex(math.Exp(-w*t), 0) }
	}},
	{"wave", "f(t) = exp(iωt)", func(w float64) paradiag.Forcing {
		return func(t float64) complex128 { return cmplx.Exp(complex(0, w*t)) }
	}},
}

func lookupForcing(name string, omega float64) (paradiag.Forcing, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, e := range forcings {
		if e.name == name {
			return e.build(omega), nil
		}
	}
	return nil, fmt.Errorf("unknown forcing %q (use --list to see available)", name)
}

func printForcings(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range forcings {
		if _, err := fmt.Fprintf(tw, "%s\t%s\n", e.name, e.desc); err != nil {
			return err
		}
	}
	return tw.Flush()
}
