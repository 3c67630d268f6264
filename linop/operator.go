package linop

import "fmt"

// Operator is a square linear operator known only through its action.
type Operator interface {
	// Dims returns the shape of the operator.
	Dims() (r, c int)

	// ApplyTo computes dst = M·v. dst may alias v.
	ApplyTo(dst, v []complex128) error
}

// Preconditioner is an Operator whose inverse is cheap to apply.
type Preconditioner interface {
	Operator

	// InverseApplyTo solves M·dst = v. dst may alias v.
	InverseApplyTo(dst, v []complex128) error
}

// Identity is the n×n identity, used where no preconditioning is wanted.
type Identity int

// Dims returns (n, n).
func (id Identity) Dims() (r, c int) {
	return int(id), int(id)
}

// ApplyTo copies v into dst.
func (id Identity) ApplyTo(dst, v []complex128) error {
	if err := checkOperands(int(id), dst, v); err != nil {
		return err
	}
	copy(dst, v)
	return nil
}

// InverseApplyTo copies v into dst.
func (id Identity) InverseApplyTo(dst, v []complex128) error {
	return id.ApplyTo(dst, v)
}

func checkOperands(n int, dst, v []complex128) error {
	if len(v) != n {
		return fmt.Errorf("%w: operand has length %d, operator is %dx%d", ErrDimensionMismatch, len(v), n, n)
	}
	if len(dst) != n {
		return fmt.Errorf("%w: destination has length %d, operator is %dx%d", ErrDimensionMismatch, len(dst), n, n)
	}
	return nil
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

var (
	_ Operator       = (*Toeplitz)(nil)
	_ Preconditioner = (*Circulant)(nil)
	_ Preconditioner = (*AlphaCirculant)(nil)
	_ Preconditioner = Identity(0)
)
