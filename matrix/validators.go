// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for structural checks used by
//    the engine and its tests (square shape, symmetry, zero diagonal, sign).
//  - Return sentinel errors wrapped with a validator tag so call sites can
//    match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Symmetry check runs O(n²) on the upper triangle only.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures matrices a and b are non-nil and have equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b Matrix) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrNonSquare)
	}

	return nil
}

// ValidateSymmetric checks |m[i][j] - m[j][i]| <= eps for all i<j.
// Complexity: O(n^2).
func ValidateSymmetric(m Matrix, eps float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	var (
		n      = m.Rows()
		i, j   int
		aij    float64
		aji    float64
		errAij error
		errAji error
	)
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			aij, errAij = m.At(i, j)
			aji, errAji = m.At(j, i)
			if errAij != nil || errAji != nil {
				return validatorErrorf("ValidateSymmetric", ErrOutOfRange)
			}
			if math.Abs(aij-aji) > eps {
				return validatorErrorf(fmt.Sprintf("ValidateSymmetric(%d,%d)", i, j), ErrAsymmetry)
			}
		}
	}

	return nil
}

// ValidateZeroDiagonal checks |m[i][i]| <= eps for every i.
// Complexity: O(n).
func ValidateZeroDiagonal(m Matrix, eps float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	var (
		i   int
		v   float64
		err error
	)
	for i = 0; i < m.Rows(); i++ {
		v, err = m.At(i, i)
		if err != nil {
			return validatorErrorf("ValidateZeroDiagonal", err)
		}
		if math.Abs(v) > eps {
			return validatorErrorf(fmt.Sprintf("ValidateZeroDiagonal(%d)", i), ErrNonZeroDiagonal)
		}
	}

	return nil
}

// ValidateNonNegative checks that every entry is >= 0.
// Complexity: O(r*c).
func ValidateNonNegative(m Matrix) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < m.Rows(); i++ {
		for j = 0; j < m.Cols(); j++ {
			v, err = m.At(i, j)
			if err != nil {
				return validatorErrorf("ValidateNonNegative", err)
			}
			if v < 0 {
				return validatorErrorf(fmt.Sprintf("ValidateNonNegative(%d,%d)", i, j), ErrNegativeValue)
			}
		}
	}

	return nil
}
