package linop

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-paradiag/internal/testutil"
)

func randomToeplitz(seed int64, n int) (col, row []complex128) {
	col = testutil.DeterministicComplexNoise(seed, 1, n)
	row = testutil.DeterministicComplexNoise(seed+1000, 1, n)
	row[0] = col[0]
	return col, row
}

func TestToeplitzMatchesDirect(t *testing.T) {
	for _, n := range []int{1, 2, 4, 16, 64, 100} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			col, row := randomToeplitz(int64(n), n)
			op, err := NewToeplitz(col, row)
			require.NoError(t, err)

			r, c := op.Dims()
			require.Equal(t, n, r)
			require.Equal(t, n, c)
			require.GreaterOrEqual(t, op.EmbeddingSize(), 2*n-1)

			for trial := range 3 {
				v := testutil.DeterministicComplexNoise(int64(100*n+trial), 1, n)

				got, err := op.Apply(v)
				require.NoError(t, err)
				want, err := ToeplitzDirect(col, row, v)
				require.NoError(t, err)

				testutil.RequireRelativeError(t, got, want, 1e-10)
			}
		})
	}
}

// The 4×4 θ-method matrix written out by hand: backward differences on the
// diagonal and sub-diagonal, nothing above.
func TestToeplitzToyThetaMethod(t *testing.T) {
	const (
		dt    = 0.25
		theta = 0.3
	)
	lambda := complex(-0.5, 2)

	diag := complex(1/dt, 0) - lambda*complex(theta, 0)
	sub := complex(-1/dt, 0) - lambda*complex(1-theta, 0)

	dense := [4][4]complex128{
		{diag, 0, 0, 0},
		{sub, diag, 0, 0},
		{0, sub, diag, 0},
		{0, 0, sub, diag},
	}

	col := []complex128{diag, sub, 0, 0}
	row := []complex128{diag, 0, 0, 0}
	op, err := NewToeplitz(col, row)
	require.NoError(t, err)

	v := []complex128{1, 2i, -1 + 0.5i, 3}
	got, err := op.Apply(v)
	require.NoError(t, err)

	for i := range 4 {
		var want complex128
		for j := range 4 {
			want += dense[i][j] * v[j]
		}
		require.InDelta(t, real(want), real(got[i]), 1e-12, "row %d real", i)
		require.InDelta(t, imag(want), imag(got[i]), 1e-12, "row %d imag", i)
	}

	// Forward substitution on the dense matrix, then the operator must map
	// the solution back onto the right-hand side.
	b := []complex128{1 + 1i, 0.5, -2i, 1}
	q := make([]complex128, 4)
	for i := range 4 {
		s := b[i]
		for j := 0; j < i; j++ {
			s -= dense[i][j] * q[j]
		}
		q[i] = s / dense[i][i]
	}

	bq, err := op.Apply(q)
	require.NoError(t, err)
	testutil.RequireSliceNearlyEqual(t, bq, b, 1e-12)
}

func TestToeplitzConstructionErrors(t *testing.T) {
	tests := []struct {
		name string
		col  []complex128
		row  []complex128
		want error
	}{
		{name: "empty", col: nil, row: nil, want: ErrEmptyInput},
		{name: "length mismatch", col: []complex128{1, 2}, row: []complex128{1}, want: ErrDimensionMismatch},
		{name: "diagonal mismatch", col: []complex128{1, 2}, row: []complex128{1 + 1e-9i, 3}, want: ErrConstruction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := NewToeplitz(tt.col, tt.row)
			require.Nil(t, op)
			require.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)

			_, err = ToeplitzDirect(tt.col, tt.row, tt.col)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestToeplitzDimensionMismatch(t *testing.T) {
	col, row := randomToeplitz(1, 8)
	op, err := NewToeplitz(col, row)
	require.NoError(t, err)

	_, err = op.Apply(make([]complex128, 7))
	require.ErrorIs(t, err, ErrDimensionMismatch)

	err = op.ApplyTo(make([]complex128, 9), make([]complex128, 8))
	require.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = ToeplitzDirect(col, row, make([]complex128, 3))
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestToeplitzApplyInPlace(t *testing.T) {
	col, row := randomToeplitz(3, 16)
	op, err := NewToeplitz(col, row)
	require.NoError(t, err)

	v := testutil.DeterministicComplexNoise(4, 1, 16)
	want, err := ToeplitzDirect(col, row, v)
	require.NoError(t, err)

	require.NoError(t, op.ApplyTo(v, v))
	testutil.RequireRelativeError(t, v, want, 1e-10)
}

func TestToeplitzDoesNotRetainInputs(t *testing.T) {
	col, row := randomToeplitz(5, 8)
	op, err := NewToeplitz(col, row)
	require.NoError(t, err)

	v := testutil.Impulse(8, 2)
	before, err := op.Apply(v)
	require.NoError(t, err)

	col[1] = 100
	row[3] = -100

	after, err := op.Apply(v)
	require.NoError(t, err)
	require.Equal(t, before, after)
}
