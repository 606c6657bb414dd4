// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Provide a single source of truth for the guard checks used by the CSR
//     engine: operand presence, shape agreement, vector length, index bounds
//     and the numeric policy.
//   - Return tagged sentinels so call sites can match with errors.Is.
//
// Determinism & Performance:
//   - All checks are pure and allocate nothing except on the error path.

package sparse

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// MaxExtent bounds the row and column counts of a matrix, so that the
// rows+1 and cols+1 offset arrays are always allocatable on every platform.
const MaxExtent = math.MaxInt32 - 1

// ValidateExtents ensures 0 ≤ rows, cols ≤ MaxExtent.
// Errors: ErrInvalidInput otherwise.
// Complexity: O(1).
func ValidateExtents(rows, cols int) error {
	if rows < 0 || cols < 0 || rows > MaxExtent || cols > MaxExtent {
		return tagErrorf("ValidateExtents", ErrInvalidInput)
	}

	return nil
}

// ValidateNotNil ensures the operand reference is non-nil.
// Returns a wrapped ErrTypeMismatch when m == nil: a nil *CSR is not a
// sparse matrix operand.
// Complexity: O(1).
func ValidateNotNil(m *CSR) error {
	if m == nil {
		return tagErrorf("ValidateNotNil", ErrTypeMismatch)
	}

	return nil
}

// ValidateSameRows ensures a and b have equal row counts (the addition contract).
// Assumes both are non-nil.
// Complexity: O(1).
func ValidateSameRows(a, b *CSR) error {
	if a.rows != b.rows {
		return tagErrorf("ValidateSameRows", ErrShapeMismatch)
	}

	return nil
}

// ValidateVecLen ensures x is present and has exactly n entries.
// Errors: ErrTypeMismatch for nil x, ErrShapeMismatch for a wrong length.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return tagErrorf("ValidateVecLen", ErrTypeMismatch)
	}
	if len(x) != n {
		return tagErrorf("ValidateVecLen", ErrShapeMismatch)
	}

	return nil
}

// ValidateGrid ensures a gonum matrix can serve as a dense construction grid.
// Errors: ErrInvalidInput for nil, negative or oversized extents.
// Complexity: O(1).
func ValidateGrid(m mat.Matrix) error {
	if m == nil {
		return tagErrorf("ValidateGrid", ErrInvalidInput)
	}
	if err := ValidateExtents(m.Dims()); err != nil {
		return tagErrorf("ValidateGrid", err)
	}

	return nil
}

// ValidateRectangular ensures every row of a nested slice has the same length.
// A nil or empty outer slice is a legal 0×0 grid.
// Complexity: O(rows).
func ValidateRectangular(rows [][]float64) error {
	if len(rows) == 0 {
		return nil
	}
	want := len(rows[0])
	if err := ValidateExtents(len(rows), want); err != nil {
		return tagErrorf("ValidateRectangular", err)
	}
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) != want {
			return tagErrorf("ValidateRectangular", ErrInvalidInput)
		}
	}

	return nil
}

// validateIndex checks 0 ≤ row < rows and 0 ≤ col < cols.
func (m *CSR) validateIndex(row, col int) error {
	if row < 0 || row >= m.rows {
		return ErrOutOfRange
	}
	if col < 0 || col >= m.cols {
		return ErrOutOfRange
	}

	return nil
}

// isNonFinite reports whether v is NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
