package transform

import (
	"errors"
	"fmt"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Errors returned by transform functions.
var (
	ErrInvalidLength  = errors.New("transform: length must be positive")
	ErrLengthMismatch = errors.New("transform: buffer length mismatch")
)

// engine is a single-goroutine FFT implementation of a fixed length.
type engine interface {
	forward(dst, src []complex128) error
	inverse(dst, src []complex128) error
}

type algoEngine struct {
	plan *algofft.Plan[complex128]
}

func (e *algoEngine) forward(dst, src []complex128) error {
	return e.plan.Forward(dst, src)
}

// inverse relies on algo-fft normalising the inverse by 1/n.
func (e *algoEngine) inverse(dst, src []complex128) error {
	return e.plan.Inverse(dst, src)
}

// gonumEngine wraps fourier.CmplxFFT, whose transforms are both unscaled.
type gonumEngine struct {
	fft   *fourier.CmplxFFT
	buf   []complex128
	scale complex128
}

func newGonumEngine(n int) *gonumEngine {
	return &gonumEngine{
		fft:   fourier.NewCmplxFFT(n),
		buf:   make([]complex128, n),
		scale: complex(1/float64(n), 0),
	}
}

func (e *gonumEngine) forward(dst, src []complex128) error {
	copy(e.buf, src)
	e.fft.Coefficients(dst, e.buf)
	return nil
}

func (e *gonumEngine) inverse(dst, src []complex128) error {
	copy(e.buf, src)
	e.fft.Sequence(dst, e.buf)
	for i := range dst {
		dst[i] *= e.scale
	}
	return nil
}

func newEngine(n int, backend Backend) (engine, Backend, error) {
	switch backend {
	case BackendGonum:
		return newGonumEngine(n), BackendGonum, nil
	case BackendAlgoFFT:
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return nil, backend, fmt.Errorf("transform: failed to create FFT plan: %w", err)
		}
		return &algoEngine{plan: plan}, BackendAlgoFFT, nil
	default:
		plan, err := algofft.NewPlan64(n)
		if err != nil {
			return newGonumEngine(n), BackendGonum, nil
		}
		return &algoEngine{plan: plan}, BackendAlgoFFT, nil
	}
}

// Plan computes length-n forward and inverse DFTs under the package
// normalisation (unscaled forward, 1/n inverse).
type Plan struct {
	n       int
	backend Backend
	engines sync.Pool
}

// New creates a plan for length-n transforms.
func New(n int, opts ...Option) (*Plan, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLength, n)
	}

	cfg := ApplyOptions(opts...)

	first, backend, err := newEngine(n, cfg.Backend)
	if err != nil {
		return nil, err
	}

	p := &Plan{n: n, backend: backend}
	p.engines.New = func() any {
		e, _, err := newEngine(n, backend)
		if err != nil {
			return nil
		}
		return e
	}
	p.engines.Put(first)

	return p, nil
}

// Len returns the transform length.
func (p *Plan) Len() int {
	return p.n
}

// Backend reports the engine actually in use. It is never BackendAuto.
func (p *Plan) Backend() Backend {
	return p.backend
}

// Forward computes dst = DFT(src) without scaling. dst may alias src.
func (p *Plan) Forward(dst, src []complex128) error {
	if err := p.checkLen(dst, src); err != nil {
		return err
	}

	e, err := p.acquire()
	if err != nil {
		return err
	}
	defer p.engines.Put(e)

	if err := e.forward(dst, src); err != nil {
		return fmt.Errorf("transform: forward FFT failed: %w", err)
	}
	return nil
}

// Inverse computes dst = DFT⁻¹(src), scaled by 1/n. dst may alias src.
func (p *Plan) Inverse(dst, src []complex128) error {
	if err := p.checkLen(dst, src); err != nil {
		return err
	}

	e, err := p.acquire()
	if err != nil {
		return err
	}
	defer p.engines.Put(e)

	if err := e.inverse(dst, src); err != nil {
		return fmt.Errorf("transform: inverse FFT failed: %w", err)
	}
	return nil
}

// Spectrum returns Forward(src) in a newly allocated slice.
func (p *Plan) Spectrum(src []complex128) ([]complex128, error) {
	dst := make([]complex128, p.n)
	if err := p.Forward(dst, src); err != nil {
		return nil, err
	}
	return dst, nil
}

func (p *Plan) checkLen(dst, src []complex128) error {
	if len(src) != p.n {
		return fmt.Errorf("%w: src has %d, want %d", ErrLengthMismatch, len(src), p.n)
	}
	if len(dst) != p.n {
		return fmt.Errorf("%w: dst has %d, want %d", ErrLengthMismatch, len(dst), p.n)
	}
	return nil
}

func (p *Plan) acquire() (engine, error) {
	e, ok := p.engines.Get().(engine)
	if !ok || e == nil {
		return nil, fmt.Errorf("transform: failed to create %s engine for length %d", p.backend, p.n)
	}
	return e, nil
}
