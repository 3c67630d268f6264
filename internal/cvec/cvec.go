// Package cvec holds complex-vector kernels built on the SIMD float64
// routines of algo-vecmath. Complex inputs are split into pooled real and
// imaginary scratch slices, processed, and recombined.
package cvec

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

func putScratch(buf *scratchBuf) {
	scratchPool.Put(buf)
}

func split(re, im []float64, in []complex128) {
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}
}

// Magnitude writes |in[k]| into dst. dst and in must have the same length.
func Magnitude(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}

	re, im, buf := getScratch(len(in))
	split(re, im, in)
	vecmath.Magnitude(dst, re, im)
	putScratch(buf)
}

// MaxMin returns the largest and smallest |in[k]| and the index of the
// smallest. An empty input yields zeros and index -1.
func MaxMin(in []complex128) (maxAbs, minAbs float64, minIdx int) {
	if len(in) == 0 {
		return 0, 0, -1
	}

	mag := make([]float64, len(in))
	Magnitude(mag, in)

	maxAbs, minAbs = mag[0], mag[0]
	for i, m := range mag {
		if m > maxAbs {
			maxAbs = m
		}
		if m < minAbs {
			minAbs = m
			minIdx = i
		}
	}
	return maxAbs, minAbs, minIdx
}

// ScaleReal computes dst[k] = src[k]·w[k] for a real weight vector w.
// All slices must have the same length; dst may alias src.
func ScaleReal(dst, src []complex128, w []float64) {
	if len(src) == 0 {
		return
	}

	re, im, buf := getScratch(len(src))
	split(re, im, src)
	vecmath.MulBlockInPlace(re, w)
	vecmath.MulBlockInPlace(im, w)
	for i := range dst {
		dst[i] = complex(re[i], im[i])
	}
	putScratch(buf)
}
