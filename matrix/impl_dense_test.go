// Package matrix_test contains unit tests for the Dense implementation
// of the Matrix interface in the matrix package.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/antroute/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	_, err := matrix.NewDense(0, 5)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewDense(5, 0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewSquare(-1)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

// TestRowsCols verifies that Rows() and Cols() return correct dimension values.
func TestRowsCols(t *testing.T) {
	m, err := matrix.NewDense(3, 4)
	require.NoError(t, err)

	require.Equal(t, 3, m.Rows())
	require.Equal(t, 4, m.Cols())
	r, c := m.Shape()
	require.Equal(t, 3, r)
	require.Equal(t, 4, c)
}

// TestAtSetOutOfBounds ensures At() and Set() return ErrOutOfRange on invalid access.
func TestAtSetOutOfBounds(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_, err = m.At(-1, 0)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	_, err = m.At(0, 2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.Set(2, 0, 1.23)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	err = m.AddAt(0, -1, 4.56)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

// TestSetRejectsNaNInf checks the default numeric policy on writes.
func TestSetRejectsNaNInf(t *testing.T) {
	m, err := matrix.NewSquare(2)
	require.NoError(t, err)

	require.ErrorIs(t, m.Set(0, 1, math.NaN()), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Set(0, 1, math.Inf(1)), matrix.ErrNaNInf)
	require.ErrorIs(t, m.Fill(math.Inf(-1)), matrix.ErrNaNInf)

	require.NoError(t, m.Set(0, 1, math.MaxFloat64))
	require.ErrorIs(t, m.AddAt(0, 1, math.MaxFloat64), matrix.ErrNaNInf)
	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, math.MaxFloat64, v, "failed AddAt must leave the cell untouched")
}

// TestSetGet validates correct behavior of Set() followed by At() on valid indices.
func TestSetGet(t *testing.T) {
	m, err := matrix.NewDense(2, 3)
	require.NoError(t, err)

	require.NoError(t, m.Set(1, 2, 7.89))

	val, err := m.At(1, 2)
	require.NoError(t, err)
	require.Equal(t, 7.89, val)
}

// TestAddAtAccumulates checks that repeated deposits sum into one cell only.
func TestAddAtAccumulates(t *testing.T) {
	m, err := matrix.NewSquare(3)
	require.NoError(t, err)

	require.NoError(t, m.AddAt(0, 1, 0.25))
	require.NoError(t, m.AddAt(2, 1, 9))
	require.NoError(t, m.AddAt(0, 1, 0.5))

	v, err := m.At(0, 1)
	require.NoError(t, err)
	require.Equal(t, 0.75, v)

	v, err = m.At(1, 0)
	require.NoError(t, err)
	require.Zero(t, v)
}

// TestCloneIndependence ensures Clone() returns a deep copy that does not share storage.
func TestCloneIndependence(t *testing.T) {
	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)

	_ = m.Set(0, 0, 1.0)
	_ = m.Set(1, 1, 2.0)

	clone := m.Clone()
	_ = clone.Set(0, 0, 3.0)

	origVal, err := m.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 1.0, origVal)

	cloneVal, err := clone.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, 3.0, cloneVal)

	row, err := m.Row(1)
	require.NoError(t, err)
	row[1] = 42
	v, _ := m.At(1, 1)
	require.Equal(t, 2.0, v, "Row must return a copy")
}

// TestStringOutput checks that String() formats the matrix as expected.
func TestStringOutput(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)

	require.Equal(t, "[1, 2]\n[3, 4]\n", m.String())
}

// TestNewDenseFrom covers the length contract and the finite-value policy.
func TestNewDenseFrom(t *testing.T) {
	_, err := matrix.NewDenseFrom(2, 2, []float64{1, 2, 3})
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, err = matrix.NewDenseFrom(1, 2, []float64{1, math.NaN()})
	require.ErrorIs(t, err, matrix.ErrNaNInf)

	src := []float64{5, 6}
	m, err := matrix.NewDenseFrom(1, 2, src)
	require.NoError(t, err)
	src[0] = 0
	v, _ := m.At(0, 0)
	require.Equal(t, 5.0, v, "input slice must be copied")
}

// TestFillOffDiagonal checks the diagonal is forced to zero.
func TestFillOffDiagonal(t *testing.T) {
	m, err := matrix.NewSquare(3)
	require.NoError(t, err)
	require.NoError(t, m.FillOffDiagonal(1.5))

	m.Do(func(i, j int, v float64) bool {
		if i == j {
			require.Zero(t, v)
		} else {
			require.Equal(t, 1.5, v)
		}
		return true
	})
	require.NoError(t, matrix.ValidateZeroDiagonal(m, 0))

	rect, err := matrix.NewDense(2, 3)
	require.NoError(t, err)
	require.ErrorIs(t, rect.FillOffDiagonal(1), matrix.ErrNonSquare)
}

// TestZero resets values in place.
func TestZero(t *testing.T) {
	m, err := matrix.NewSquare(2)
	require.NoError(t, err)
	require.NoError(t, m.Fill(3))
	m.Zero()

	m.Do(func(_, _ int, v float64) bool {
		require.Zero(t, v)
		return true
	})
}

// TestScaleAddInPlace verifies m = alpha*m + b and the all-or-nothing failure mode.
func TestScaleAddInPlace(t *testing.T) {
	a, err := matrix.NewDenseFrom(2, 2, []float64{0, 2, 4, 0})
	require.NoError(t, err)
	b, err := matrix.NewDenseFrom(2, 2, []float64{0, 1, 0, 0})
	require.NoError(t, err)

	require.NoError(t, a.ScaleAddInPlace(0.5, b))
	want, _ := matrix.NewDenseFrom(2, 2, []float64{0, 2, 2, 0})
	require.True(t, matrix.Equal(want, a), "got %v", a)

	other, _ := matrix.NewSquare(3)
	require.ErrorIs(t, a.ScaleAddInPlace(1, other), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, a.ScaleAddInPlace(1, nil), matrix.ErrNilMatrix)

	huge, _ := matrix.NewDenseFrom(2, 2, []float64{0, math.MaxFloat64, 0, 0})
	require.NoError(t, a.Set(0, 1, math.MaxFloat64))
	before := a.CloneDense()
	require.ErrorIs(t, a.ScaleAddInPlace(1, huge), matrix.ErrNaNInf)
	require.True(t, matrix.Equal(before, a), "failed kernel must not modify the receiver")
}

// TestDo checks visitor order and early exit.
func TestDo(t *testing.T) {
	m, err := matrix.NewDenseFrom(2, 2, []float64{0, 1, 10, 11})
	require.NoError(t, err)

	var seen []float64
	m.Do(func(_, _ int, v float64) bool {
		seen = append(seen, v)
		return len(seen) < 3
	})
	require.Equal(t, []float64{0, 1, 10}, seen)
}
