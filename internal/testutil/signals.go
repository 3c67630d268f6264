package testutil

import (
	"math/rand"
)

// DeterministicComplexNoise generates complex white noise with a fixed seed for
// reproducibility. Real and imaginary parts are uniform in [-amplitude, amplitude].
func DeterministicComplexNoise(seed int64, amplitude float64, length int) []complex128 {
	out := make([]complex128, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		re := (rng.Float64()*2 - 1) * amplitude
		im := (rng.Float64()*2 - 1) * amplitude
		out[i] = complex(re, im)
	}
	return out
}

// DiagonallyDominant returns a deterministic complex coefficient vector whose
// first entry dominates the sum of the others, so circulants built from it
// are well conditioned.
func DiagonallyDominant(seed int64, length int) []complex128 {
	out := DeterministicComplexNoise(seed, 1/float64(2*length), length)
	if length > 0 {
		out[0] = complex(2, 0.5)
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []complex128 {
	out := make([]complex128, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Constant generates a constant-valued vector.
func Constant(value complex128, length int) []complex128 {
	out := make([]complex128, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ones returns a slice of length n filled with 1.
func Ones(n int) []complex128 {
	return Constant(1, n)
}
