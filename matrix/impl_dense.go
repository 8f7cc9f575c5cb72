// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep algorithmic determinism (fixed loop orders, no map iteration).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set/AddAt: O(1); Clone: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt    = "At"    // method tag used in error wrappers
	ctxSet   = "Set"   // method tag used in error wrappers
	ctxAdd   = "AddAt" // method tag used in error wrappers
	ctxApply = "Apply" // method tag used in error wrappers
	ctxFill  = "Fill"  // method tag used in error wrappers
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Format: "Dense.<method>(row,col): %w"; the sentinel is preserved for errors.Is.
//
// Complexity: O(1).
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set and in-place kernels.
type Dense struct {
	r, c           int       // row and column counts (>0)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf on writes when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate zero-filled buffer and initialize policy from defaults.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	// Validate shape.
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Allocate a contiguous flat buffer; make() zero-fills it deterministically.
	buf := make([]float64, rows*cols)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           buf,
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewSquare is NewDense(n, n) with an intention-revealing name.
// Complexity: O(n^2).
func NewSquare(n int) (*Dense, error) {
	return NewDense(n, n)
}

// NewDenseFrom builds an r×c matrix from a row-major slice (copied).
// len(values) must equal rows*cols; values must be finite under the default policy.
//
// Errors: ErrInvalidDimensions, ErrDimensionMismatch, ErrNaNInf.
// Complexity: O(r*c).
func NewDenseFrom(rows, cols int, values []float64) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(values) != rows*cols {
		return nil, ErrDimensionMismatch
	}

	var k int
	for k = range values {
		if m.validateNaNInf && (math.IsNaN(values[k]) || math.IsInf(values[k], 0)) {
			return nil, denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf)
		}
	}
	copy(m.data, values)

	return m, nil
}

// Rows returns the row count. No side effects.
// Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. No side effects.
// Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
// Complexity: O(1).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods wrap the sentinel with their method name and coordinates.
//
// Complexity: O(1).
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	// Row-major offset: i*c + j.
	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: load from flat buffer.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err) // wrap with context
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Implementation:
//   - Stage 1: compute offset via indexOf (bounds check).
//   - Stage 2: enforce numeric policy (reject NaN/±Inf when enabled).
//   - Stage 3: write into flat buffer.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for invalid numbers.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// AddAt accumulates delta into (row, col): m[row][col] += delta.
// The cell is left untouched when the result would violate the numeric policy.
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf when the sum is not finite (policy ON).
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) AddAt(row, col int, delta float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxAdd, row, col, err)
	}
	sum := m.data[off] + delta
	if m.validateNaNInf && (math.IsNaN(sum) || math.IsInf(sum, 0)) {
		return denseErrorf(ctxAdd, row, col, ErrNaNInf)
	}
	m.data[off] = sum

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// Complexity: O(r*c).
func (m *Dense) Clone() Matrix {
	return m.CloneDense()
}

// CloneDense is Clone with a concrete return type, for callers that keep
// using the fast paths of *Dense on the copy.
// Complexity: O(r*c).
func (m *Dense) CloneDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{
		r:              m.r,
		c:              m.c,
		data:           cp,
		validateNaNInf: m.validateNaNInf,
	}
}

// Row copies row i into a fresh slice of length Cols().
// Errors: ErrOutOfRange.
// Complexity: O(c).
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxAt, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// String renders matrix rows as lines with comma-separated values.
// Intended for logs and debugging, not for hot paths.
//
// Complexity:
//   - Time O(r*c), Space O(r*c) for formatting.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Read-only visitor; stops early when f returns false.
//
// Determinism:
//   - Fixed i→j order.
//
// Complexity:
//   - Time O(r*c), Space O(1).
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int

	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Fill sets every element to v.
// Errors: ErrNaNInf when v is not finite (policy ON).
// Complexity: O(r*c).
func (m *Dense) Fill(v float64) error {
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxFill, 0, 0, ErrNaNInf)
	}
	var k int
	for k = range m.data {
		m.data[k] = v
	}

	return nil
}

// Zero resets every element to 0 without reallocating.
// Complexity: O(r*c).
func (m *Dense) Zero() {
	clear(m.data)
}

// FillOffDiagonal sets every off-diagonal element of a square matrix to v and
// every diagonal element to 0.
//
// Errors: ErrNonSquare; ErrNaNInf when v is not finite (policy ON).
// Complexity: O(n^2).
func (m *Dense) FillOffDiagonal(v float64) error {
	if m.r != m.c {
		return fmt.Errorf("Dense.FillOffDiagonal: %w", ErrNonSquare)
	}
	if err := m.Fill(v); err != nil {
		return err
	}
	var i int
	for i = 0; i < m.r; i++ {
		m.data[i*m.c+i] = 0
	}

	return nil
}

// ScaleAddInPlace computes m = alpha*m + b element-wise in one flat sweep.
// The receiver is only modified when the whole result is valid, so a failed
// call leaves m unchanged.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrNaNInf (policy ON).
// Complexity: O(r*c) time; O(1) extra space on success paths.
func (m *Dense) ScaleAddInPlace(alpha float64, b *Dense) error {
	if b == nil {
		return fmt.Errorf("Dense.ScaleAddInPlace: %w", ErrNilMatrix)
	}
	if m.r != b.r || m.c != b.c {
		return fmt.Errorf("Dense.ScaleAddInPlace: %w", ErrDimensionMismatch)
	}

	var k int
	var nv float64
	if m.validateNaNInf {
		// Validation pass first: all-or-nothing semantics.
		for k = range m.data {
			nv = alpha*m.data[k] + b.data[k]
			if math.IsNaN(nv) || math.IsInf(nv, 0) {
				return denseErrorf(ctxApply, k/m.c, k%m.c, ErrNaNInf)
			}
		}
	}
	for k = range m.data {
		m.data[k] = alpha*m.data[k] + b.data[k]
	}

	return nil
}

// Equal reports whether a and b have the same shape and identical values.
// Complexity: O(r*c).
func Equal(a, b *Dense) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.r != b.r || a.c != b.c {
		return false
	}
	var k int
	for k = range a.data {
		if a.data[k] != b.data[k] {
			return false
		}
	}

	return true
}
