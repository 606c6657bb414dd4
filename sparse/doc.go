// SPDX-License-Identifier: MIT

// Package sparse provides an in-memory sparse matrix kept in Compressed Sparse
// Row (CSR) form, with on-demand Compressed Sparse Column (CSC) snapshots.
//
// What & Why:
//
//	CSR stores only the non-zero cells: a values array, a parallel column
//	index array and a row offset array of length rows+1. It makes row scans
//	and matrix-vector products cheap, and single-cell mutation correct as
//	long as the offsets are shifted with every insert or delete.
//
// Surface:
//
//   - Construction from a dense grid: NewCSR (any gonum mat.Matrix),
//     NewCSRFromRows ([][]float64), NewZeroCSR, FromParts (raw arrays).
//     A cell is stored iff |v| > tolerance (WithTolerance, default 0).
//   - Lookup and point mutation: At, ChangeValue (insert/update/delete).
//   - Conversion: ConvertToCSC builds a CSC snapshot; it is NOT kept in sync
//     with later mutations.
//   - Arithmetic: Multiply / MulVec (pure), Add (in place, cancellation to
//     zero removes entries).
//   - Comparison: Equal (strict positional), SamePattern (structural).
//   - Diagnostics: String (values, row extent, column indices on three lines).
//
// Errors are package sentinels (ErrInvalidInput, ErrTypeMismatch,
// ErrShapeMismatch, ErrOutOfRange, ErrNaNInf, ErrCorrupt) matched with
// errors.Is. The package never logs.
//
// Concurrency:
//
//	A *CSR is single-owner. There is no internal locking; callers that share
//	an instance must serialize access themselves.
//
// Complexity:
//
//	At: O(log k) for k entries in the row. ChangeValue: O(log k) to overwrite,
//	O(nnz + rows) to insert or remove. Multiply: O(nnz + rows).
//	ConvertToCSC: O(nnz·(log k + cols)).
package sparse
