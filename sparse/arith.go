// SPDX-License-Identifier: MIT
// Package: sparse
//
// Purpose:
//   - Matrix-vector multiplication (pure), in-place matrix addition and strict
//     positional equality on CSR matrices.
//
// Determinism:
//   - Fixed loop orders (row → stored entry); results never depend on map
//     iteration or scheduling.

package sparse

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Multiply returns y = A·x as a dense slice of length Rows().
// Implementation:
//   - Stage 1: validate x (non-nil, len(x) == Cols()).
//   - Stage 2: for each row, accumulate value·x[col] over its stored entries.
//
// Behavior highlights:
//   - Pure: neither the matrix nor x is modified.
//
// Errors:
//   - ErrTypeMismatch for nil x; ErrShapeMismatch for len(x) != Cols().
//
// Complexity:
//   - Time O(nnz + r), Space O(r).
func (m *CSR) Multiply(x []float64) ([]float64, error) {
	if err := ValidateVecLen(x, m.cols); err != nil {
		return nil, tagErrorf(ctxMultiply, err)
	}

	y := make([]float64, m.rows)
	for r := 0; r < m.rows; r++ {
		var sum float64
		for k := m.rowExtent[r]; k < m.rowExtent[r+1]; k++ {
			sum += m.values[k] * x[m.colIndices[k]]
		}
		y[r] = sum
	}

	return y, nil
}

// MulVec is Multiply over gonum vectors.
// A matrix with no rows yields an empty (zero-value) *mat.VecDense.
// Errors: ErrTypeMismatch for nil x; ErrShapeMismatch for x.Len() != Cols().
// Complexity: O(nnz + r + c).
func (m *CSR) MulVec(x mat.Vector) (*mat.VecDense, error) {
	if x == nil {
		return nil, tagErrorf(ctxMulVec, ErrTypeMismatch)
	}
	if x.Len() != m.cols {
		return nil, tagErrorf(ctxMulVec, ErrShapeMismatch)
	}

	raw := make([]float64, m.cols)
	for i := range raw {
		raw[i] = x.AtVec(i)
	}
	y, err := m.Multiply(raw)
	if err != nil {
		return nil, tagErrorf(ctxMulVec, err)
	}
	if len(y) == 0 {
		return &mat.VecDense{}, nil
	}

	return mat.NewVecDense(len(y), y), nil
}

// Add accumulates other into m in place: m[r,c] += other[r,c] for every
// entry stored in other.
// Implementation:
//   - Stage 1: validate other (non-nil, same row count, stored columns inside m's extent).
//   - Stage 2: on a working copy of m, for each stored entry of other (row
//     re-derived from other's own rowExtent): read the current value and
//     ChangeValue(row, col, current+v). A sum of exactly zero removes the entry.
//   - Stage 3: adopt the working CSR arrays.
//
// Behavior highlights:
//   - other is never modified; m.Add(m) doubles every entry.
//   - On error m is left unchanged.
//   - A CSC snapshot on m is not refreshed.
//
// Errors:
//   - ErrTypeMismatch for nil other; ErrShapeMismatch for a row-count mismatch
//     or a stored column of other outside m's columns; ErrNaNInf when a sum
//     overflows to ±Inf under the numeric policy.
//
// Complexity:
//   - Time O(nnz(other)·(log k + nnz(m) + r)), Space O(nnz(m) + r).
func (m *CSR) Add(other *CSR) error {
	if err := ValidateNotNil(other); err != nil {
		return tagErrorf(ctxAdd, err)
	}
	if err := ValidateSameRows(m, other); err != nil {
		return tagErrorf(ctxAdd, err)
	}
	for _, c := range other.colIndices {
		if c >= m.cols {
			return fmt.Errorf("%s: column %d outside %d columns: %w", ctxAdd, c, m.cols, ErrShapeMismatch)
		}
	}

	work := &CSR{
		rows:           m.rows,
		cols:           m.cols,
		values:         append(make([]float64, 0, len(m.values)+other.nnz), m.values...),
		colIndices:     append(make([]int, 0, len(m.colIndices)+other.nnz), m.colIndices...),
		rowExtent:      append(make([]int, 0, len(m.rowExtent)), m.rowExtent...),
		nnz:            m.nnz,
		validateNaNInf: m.validateNaNInf,
	}
	for k := 0; k < other.nnz; k++ {
		row, col := other.rowOf(k), other.colIndices[k]
		cur, err := work.At(row, col)
		if err != nil {
			return tagErrorf(ctxAdd, err)
		}
		if err = work.ChangeValue(row, col, cur+other.values[k]); err != nil {
			return tagErrorf(ctxAdd, err)
		}
	}

	m.values, m.colIndices, m.rowExtent, m.nnz = work.values, work.colIndices, work.rowExtent, work.nnz

	return nil
}

// Equal reports strict positional equality: same rowExtent length, same
// stored count, and for every position k both values[k] and colIndices[k]
// match. It compares layout, not logical contents: two matrices holding the
// same cells in a different internal order compare unequal. Shape beyond the
// row count and the row offsets themselves are not compared.
// Two nil matrices are equal; nil and non-nil are not.
// Complexity: O(nnz).
func (m *CSR) Equal(other *CSR) bool {
	if m == nil || other == nil {
		return m == other
	}
	if len(m.rowExtent) != len(other.rowExtent) || len(m.values) != len(other.values) {
		return false
	}
	for k := range m.values {
		if m.values[k] != other.values[k] || m.colIndices[k] != other.colIndices[k] {
			return false
		}
	}

	return true
}
