package paradiag

import (
	"fmt"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/cwbudde/algo-paradiag/linop"
)

// SerialError returns the relative 2-norm distance between an
// all-at-once solution x and the serial march for the same forcing.
func (p Problem) SerialError(x []complex128, f Forcing) (float64, error) {
	ref, err := p.Serial(f)
	if err != nil {
		return 0, err
	}
	if len(x) != p.NT {
		return 0, fmt.Errorf("%w: solution length %d, want %d", linop.ErrDimensionMismatch, len(x), p.NT)
	}
	d := cmplxs.Distance(x, ref, 2)
	if n := cmplxs.Norm(ref, 2); n > 0 {
		return d / n, nil
	}
	return d, nil
}
