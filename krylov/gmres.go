package krylov

import (
	"fmt"
	"math"
	"math/cmplx"
	"time"

	"gonum.org/v1/gonum/cmplxs"
)

// breakdownTol bounds ‖w‖ after orthogonalisation, relative to its norm
// before, below which the Krylov subspace is treated as invariant.
const breakdownTol = 1e-14

// GMRES solves the n×n system a·x = b with restarted, right-preconditioned
// GMRES.
//
// One iteration is one Arnoldi step. A restart cycle ends early when the
// residual estimate falls below settings.Tolerance; the solve then stops
// only if the recomputed residual ‖b - A·x‖/‖b‖ is below the tolerance too,
// and restarts otherwise. After settings.MaxIterations iterations
// Result.Converged is false and the error is nil. Errors from a or the
// preconditioner abort the solve and are returned wrapped.
func GMRES(a Operator, b []complex128, settings Settings) (Result, error) {
	stats := Stats{StartTime: time.Now()}
	history := &History{}

	dim := len(b)
	r, c := a.Dims()
	if r != c || r != dim {
		return Result{History: history}, fmt.Errorf("%w: operator is %dx%d, rhs has length %d", ErrDimensionMismatch, r, c, dim)
	}
	if settings.X0 != nil && len(settings.X0) != dim {
		return Result{History: history}, fmt.Errorf("%w: initial guess has length %d, want %d", ErrDimensionMismatch, len(settings.X0), dim)
	}
	if err := defaultSettings(&settings, dim); err != nil {
		return Result{History: history}, err
	}

	s := &solver{
		a:        a,
		b:        b,
		settings: settings,
		stats:    &stats,
		history:  history,
		x:        make([]complex128, dim),
	}
	if settings.X0 != nil {
		copy(s.x, settings.X0)
	}

	log := settings.Logger.WithValues("n", dim, "restart", settings.Restart)
	log.V(1).Info("gmres start", "tolerance", settings.Tolerance, "maxIterations", settings.MaxIterations,
		"preconditioned", settings.Preconditioner != nil)

	converged, err := s.run()
	stats.Runtime = time.Since(stats.StartTime)
	res := Result{
		X:         s.x,
		Converged: converged,
		Stats:     stats,
		History:   history,
	}
	if err != nil {
		log.V(1).Info("gmres failed", "iterations", stats.Iterations, "error", err.Error())
		return res, err
	}

	log.V(1).Info("gmres done", "converged", converged, "iterations", stats.Iterations,
		"residual", stats.Residual, "runtime", stats.Runtime)
	return res, nil
}

type solver struct {
	a        Operator
	b        []complex128
	settings Settings
	stats    *Stats
	history  *History
	x        []complex128

	bnorm float64

	// Arnoldi basis, Hessenberg matrix (row-major, (m+1)×m) and the
	// Givens rotations that reduce it to upper triangular form.
	v  [][]complex128
	h  [][]complex128
	cs []float64
	sn []complex128
	g  []complex128

	w, z, res []complex128
}

func (s *solver) run() (bool, error) {
	dim := len(s.b)
	if dim == 0 {
		return true, nil
	}

	s.bnorm = cmplxs.Norm(s.b, 2)
	if s.bnorm == 0 {
		for i := range s.x {
			s.x[i] = 0
		}
		return true, nil
	}

	m := s.settings.Restart
	s.v = make([][]complex128, m+1)
	for i := range s.v {
		s.v[i] = make([]complex128, dim)
	}
	s.h = make([][]complex128, m+1)
	for i := range s.h {
		s.h[i] = make([]complex128, m)
	}
	s.cs = make([]float64, m)
	s.sn = make([]complex128, m)
	s.g = make([]complex128, m+1)
	s.w = make([]complex128, dim)
	s.z = make([]complex128, dim)
	s.res = make([]complex128, dim)

	zeroStart := s.settings.X0 == nil
	for {
		if zeroStart {
			copy(s.res, s.b)
			zeroStart = false
		} else if err := s.residual(s.res); err != nil {
			return false, err
		}

		beta := cmplxs.Norm(s.res, 2)
		if beta/s.bnorm < s.settings.Tolerance {
			s.stats.Residual = beta / s.bnorm
			return true, nil
		}
		if s.stats.Iterations >= s.settings.MaxIterations {
			s.stats.Residual = beta / s.bnorm
			return false, nil
		}

		// The estimate alone never ends the solve; the residual above does.
		if err := s.cycle(beta); err != nil {
			return false, err
		}
	}
}

// cycle runs one restart cycle from the residual in s.res with norm beta and
// updates s.x. It stops early once the residual estimate meets the tolerance.
func (s *solver) cycle(beta float64) error {
	m := s.settings.Restart

	copy(s.v[0], s.res)
	cmplxs.Scale(complex(1/beta, 0), s.v[0])
	for i := range s.g {
		s.g[i] = 0
	}
	s.g[0] = complex(beta, 0)

	var (
		k        int
		estimate float64
	)
	for j := 0; j < m && s.stats.Iterations < s.settings.MaxIterations; j++ {
		// w = A·M⁻¹·v_j
		if err := s.psolve(s.z, s.v[j]); err != nil {
			return err
		}
		if err := s.matvec(s.w, s.z); err != nil {
			return err
		}

		// Modified Gram-Schmidt.
		w0 := cmplxs.Norm(s.w, 2)
		for i := 0; i <= j; i++ {
			s.h[i][j] = cmplxs.Dot(s.v[i], s.w)
			cmplxs.AddScaled(s.w, -s.h[i][j], s.v[i])
		}
		hNext := cmplxs.Norm(s.w, 2)
		s.h[j+1][j] = complex(hNext, 0)

		for i := 0; i < j; i++ {
			s.h[i][j], s.h[i+1][j] = rotate(s.cs[i], s.sn[i], s.h[i][j], s.h[i+1][j])
		}
		s.cs[j], s.sn[j] = givens(s.h[j][j], s.h[j+1][j])
		s.h[j][j], s.h[j+1][j] = rotate(s.cs[j], s.sn[j], s.h[j][j], s.h[j+1][j])
		s.g[j], s.g[j+1] = rotate(s.cs[j], s.sn[j], s.g[j], s.g[j+1])

		k = j + 1
		estimate = cmplx.Abs(s.g[j+1]) / s.bnorm
		s.observe(estimate)

		if estimate < s.settings.Tolerance || hNext <= breakdownTol*w0 {
			break
		}
		copy(s.v[j+1], s.w)
		cmplxs.Scale(complex(1/hNext, 0), s.v[j+1])
	}

	return s.update(k)
}

// update solves the k×k triangular system H·y = g and adds M⁻¹·V·y to x.
func (s *solver) update(k int) error {
	y := make([]complex128, k)
	for i := k - 1; i >= 0; i-- {
		sum := s.g[i]
		for l := i + 1; l < k; l++ {
			sum -= s.h[i][l] * y[l]
		}
		if s.h[i][i] == 0 {
			return fmt.Errorf("%w: zero pivot at column %d", ErrBreakdown, i)
		}
		y[i] = sum / s.h[i][i]
	}

	for i := range s.w {
		s.w[i] = 0
	}
	for i := 0; i < k; i++ {
		cmplxs.AddScaled(s.w, y[i], s.v[i])
	}
	if err := s.psolve(s.z, s.w); err != nil {
		return err
	}
	cmplxs.AddScaled(s.x, 1, s.z)
	return nil
}

func (s *solver) observe(estimate float64) {
	s.stats.Iterations++
	s.history.record(estimate)
	if s.settings.Progress != nil {
		s.settings.Progress(Progress{Iteration: s.stats.Iterations, Residual: estimate})
	}
	s.settings.Logger.V(1).Info("gmres iteration", "iteration", s.stats.Iterations, "residual", estimate)
}

// residual computes dst = b - A·x.
func (s *solver) residual(dst []complex128) error {
	if err := s.matvec(dst, s.x); err != nil {
		return err
	}
	for i := range dst {
		dst[i] = s.b[i] - dst[i]
	}
	return nil
}

func (s *solver) matvec(dst, src []complex128) error {
	if err := s.a.ApplyTo(dst, src); err != nil {
		return fmt.Errorf("krylov: matrix-vector product failed: %w", err)
	}
	s.stats.MatVec++
	return nil
}

func (s *solver) psolve(dst, src []complex128) error {
	if s.settings.Preconditioner == nil {
		copy(dst, src)
		return nil
	}
	if err := s.settings.Preconditioner.InverseApplyTo(dst, src); err != nil {
		return fmt.Errorf("krylov: preconditioner solve failed: %w", err)
	}
	s.stats.PSolve++
	return nil
}

// givens returns the complex rotation G = [c s; -conj(s) c] that maps
// (a, b) to (r, 0).
func givens(a, b complex128) (c float64, s complex128) {
	if b == 0 {
		return 1, 0
	}
	absA := cmplx.Abs(a)
	if absA == 0 {
		return 0, 1
	}
	norm := math.Hypot(absA, cmplx.Abs(b))
	phase := a / complex(absA, 0)
	return absA / norm, phase * cmplx.Conj(b) / complex(norm, 0)
}

func rotate(c float64, s, x, y complex128) (complex128, complex128) {
	cc := complex(c, 0)
	return cc*x + s*y, -cmplx.Conj(s)*x + cc*y
}
