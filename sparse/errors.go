// SPDX-License-Identifier: MIT
// Package sparse: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the sparse
// package. All operations MUST return these sentinels (possibly wrapped with
// call-site context) and tests MUST check them via errors.Is. No operation
// panics on user-triggered error conditions; panics are reserved for option
// constructors receiving nonsensical values.

package sparse

import (
	"errors"
	"fmt"
)

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "sparse: ..." for easy grepping. Call sites
// wrap with fmt.Errorf("CSR.<Method>(row,col): %w", ErrX) or "<tag>: %w";
// callers still match with errors.Is.
//
// ERROR PRIORITY (documented, enforced in tests):
// nil operand -> shape -> index -> numeric policy -> structural corruption.

var (
	// ErrInvalidInput is returned when construction input is not a well-formed
	// two-dimensional rectangular numeric grid (nil grid, ragged rows, negative extents).
	ErrInvalidInput = errors.New("sparse: invalid input grid")

	// ErrTypeMismatch indicates an arithmetic operand of the wrong kind,
	// e.g. a nil vector passed to Multiply or a nil *CSR passed to Add.
	ErrTypeMismatch = errors.New("sparse: operand type mismatch")

	// ErrShapeMismatch indicates incompatible extents between operands:
	// Add on differing row counts, Multiply with len(x) != Cols().
	ErrShapeMismatch = errors.New("sparse: shape mismatch")

	// ErrOutOfRange indicates that a row or column index is outside the
	// matrix's fixed extent. At/ChangeValue MUST return this, not panic.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value where the numeric policy
	// requires finite values (construction, ChangeValue).
	ErrNaNInf = errors.New("sparse: NaN or Inf encountered")

	// ErrCorrupt signals raw CSR arrays that violate the compressed-index
	// invariants (FromParts, Validate, snapshot decoding).
	ErrCorrupt = errors.New("sparse: corrupt CSR structure")
)

// Method tags used in error wrappers.
const (
	ctxNew      = "NewCSR"
	ctxFromRows = "NewCSRFromRows"
	ctxZero     = "NewZeroCSR"
	ctxParts    = "FromParts"
	ctxAt       = "At"
	ctxChange   = "ChangeValue"
	ctxMultiply = "Multiply"
	ctxMulVec   = "MulVec"
	ctxAdd      = "Add"
	ctxRowPat   = "RowPattern"
	ctxValidate = "Validate"
)

// csrErrorf wraps a sentinel with the method name and the offending coordinates.
func csrErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("CSR.%s(%d,%d): %w", method, row, col, err)
}

// tagErrorf wraps a sentinel with a plain tag.
func tagErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
