package krylov

// History accumulates the residual estimates of a single solve, one per
// iteration. A new History is created by every GMRES call.
type History struct {
	residuals []float64
}

func (h *History) record(residual float64) {
	h.residuals = append(h.residuals, residual)
}

// Iterations returns the number of recorded iterations.
func (h *History) Iterations() int {
	if h == nil {
		return 0
	}
	return len(h.residuals)
}

// Residuals returns a copy of the recorded residual estimates.
func (h *History) Residuals() []float64 {
	if h == nil {
		return nil
	}
	out := make([]float64, len(h.residuals))
	copy(out, h.residuals)
	return out
}

// At returns the residual estimate after iteration i (1-based), or false if
// there was no such iteration.
func (h *History) At(i int) (float64, bool) {
	if h == nil || i < 1 || i > len(h.residuals) {
		return 0, false
	}
	return h.residuals[i-1], true
}
