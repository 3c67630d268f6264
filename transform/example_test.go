package transform_test

import (
	"fmt"
	"math/cmplx"

	"github.com/cwbudde/algo-paradiag/transform"
)

func ExamplePlan() {
	p, _ := transform.New(4)

	// The spectrum of a circulant's first column holds its eigenvalues.
	col := []complex128{2, -1, 0, 0}
	eig, _ := p.Spectrum(col)
	fmt.Printf("%.3f %.3f %.3f %.3f\n",
		cmplx.Abs(eig[0]), cmplx.Abs(eig[1]), cmplx.Abs(eig[2]), cmplx.Abs(eig[3]))

	back := make([]complex128, 4)
	_ = p.Inverse(back, eig)
	fmt.Printf("%.1f %.1f\n", real(back[0]), real(back[1]))

	// Output:
	// 1.000 2.236 3.000 2.236
	// 2.0 -1.0
}
