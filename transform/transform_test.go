package transform

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sync"
	"testing"

	"github.com/cwbudde/algo-paradiag/internal/testutil"
)

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		n       int
		backend Backend
	}{
		{name: "auto n=1", n: 1, backend: BackendAuto},
		{name: "auto n=4", n: 4, backend: BackendAuto},
		{name: "auto n=100", n: 100, backend: BackendAuto},
		{name: "auto n=1024", n: 1024, backend: BackendAuto},
		{name: "algo-fft n=16", n: 16, backend: BackendAlgoFFT},
		{name: "algo-fft n=64", n: 64, backend: BackendAlgoFFT},
		{name: "gonum n=16", n: 16, backend: BackendGonum},
		{name: "gonum n=30", n: 30, backend: BackendGonum},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := New(tt.n, WithBackend(tt.backend))
			if err != nil {
				t.Fatalf("New(%d): %v", tt.n, err)
			}

			x := testutil.DeterministicComplexNoise(int64(tt.n), 1, tt.n)
			freq := make([]complex128, tt.n)
			back := make([]complex128, tt.n)

			if err := p.Forward(freq, x); err != nil {
				t.Fatalf("Forward: %v", err)
			}
			if err := p.Inverse(back, freq); err != nil {
				t.Fatalf("Inverse: %v", err)
			}

			testutil.RequireRelativeError(t, back, x, 1e-12)
		})
	}
}

func TestNormalization(t *testing.T) {
	for _, backend := range []Backend{BackendAlgoFFT, BackendGonum} {
		t.Run(backend.String(), func(t *testing.T) {
			const n = 8
			p, err := New(n, WithBackend(backend))
			if err != nil {
				t.Fatalf("New: %v", err)
			}

			// Forward is unscaled: DFT(δ₀) is all ones.
			freq, err := p.Spectrum(testutil.Impulse(n, 0))
			if err != nil {
				t.Fatalf("Spectrum: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, freq, testutil.Ones(n), 1e-14)

			// Inverse carries the 1/n: DFT⁻¹(ones) is δ₀.
			back := make([]complex128, n)
			if err := p.Inverse(back, testutil.Ones(n)); err != nil {
				t.Fatalf("Inverse: %v", err)
			}
			testutil.RequireSliceNearlyEqual(t, back, testutil.Impulse(n, 0), 1e-14)

			// Negative exponent on the forward transform.
			freq, err = p.Spectrum(testutil.Impulse(n, 1))
			if err != nil {
				t.Fatalf("Spectrum: %v", err)
			}
			want := make([]complex128, n)
			for k := range want {
				want[k] = cmplx.Exp(complex(0, -2*math.Pi*float64(k)/n))
			}
			testutil.RequireSliceNearlyEqual(t, freq, want, 1e-14)
		})
	}
}

func TestBackendsAgree(t *testing.T) {
	for _, n := range []int{4, 16, 64, 256} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			a, err := New(n, WithBackend(BackendAlgoFFT))
			if err != nil {
				t.Fatalf("New algo-fft: %v", err)
			}
			g, err := New(n, WithBackend(BackendGonum))
			if err != nil {
				t.Fatalf("New gonum: %v", err)
			}

			x := testutil.DeterministicComplexNoise(3, 1, n)
			sa, err := a.Spectrum(x)
			if err != nil {
				t.Fatalf("algo-fft Spectrum: %v", err)
			}
			sg, err := g.Spectrum(x)
			if err != nil {
				t.Fatalf("gonum Spectrum: %v", err)
			}

			testutil.RequireRelativeError(t, sa, sg, 1e-13)
		})
	}
}

func TestInPlace(t *testing.T) {
	p, err := New(32)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	x := testutil.DeterministicComplexNoise(9, 1, 32)
	buf := append([]complex128(nil), x...)

	if err := p.Forward(buf, buf); err != nil {
		t.Fatalf("Forward: %v", err)
	}
	if err := p.Inverse(buf, buf); err != nil {
		t.Fatalf("Inverse: %v", err)
	}

	testutil.RequireRelativeError(t, buf, x, 1e-12)
}

func TestErrors(t *testing.T) {
	if _, err := New(0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("New(0): expected ErrInvalidLength, got %v", err)
	}

	p, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if err := p.Forward(make([]complex128, 8), make([]complex128, 7)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Forward short src: expected ErrLengthMismatch, got %v", err)
	}
	if err := p.Inverse(make([]complex128, 9), make([]complex128, 8)); !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("Inverse long dst: expected ErrLengthMismatch, got %v", err)
	}
}

func TestBackendReported(t *testing.T) {
	p, err := New(16, WithBackend(BackendGonum))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Backend() != BackendGonum {
		t.Fatalf("Backend() = %v, want gonum", p.Backend())
	}

	p, err = New(16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.Backend() == BackendAuto {
		t.Fatal("Backend() must resolve auto to a concrete engine")
	}
}

func TestConcurrentUse(t *testing.T) {
	const n = 128
	p, err := New(n)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for g := range errs {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			x := testutil.DeterministicComplexNoise(int64(g), 1, n)
			freq := make([]complex128, n)
			back := make([]complex128, n)
			for range 20 {
				if err := p.Forward(freq, x); err != nil {
					errs[g] = err
					return
				}
				if err := p.Inverse(back, freq); err != nil {
					errs[g] = err
					return
				}
				if rel, _ := testutil.RelativeError(back, x); rel > 1e-12 {
					errs[g] = fmt.Errorf("goroutine %d: round trip error %v", g, rel)
					return
				}
			}
		}(g)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			t.Fatal(err)
		}
	}
}
