// SPDX-License-Identifier: MIT

// Package sparse - CSR storage & point mutation.
//
// Purpose:
//   - Hold the three parallel CSR arrays (values, colIndices, rowExtent) as
//     the authoritative representation of a rows×cols sparse matrix.
//   - Keep the compressed-index invariants intact under single-cell
//     insert/update/delete (ChangeValue).
//   - Guarantee safety at the public surface: At/ChangeValue return errors
//     instead of panicking.
//
// Complexity quicksheet:
//   - NewCSR: O(r*c); At: O(log k) for k entries in the row;
//     ChangeValue: O(log k + nnz + r) for insert/remove (slice shift plus
//     rowExtent shift), O(log k) for overwrite; Clone: O(nnz + r + c).

package sparse

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Format names a compressed layout.
type Format uint8

const (
	// FormatCSR is the compressed sparse row layout (authoritative, mutable).
	FormatCSR Format = iota
	// FormatCSC is the compressed sparse column layout (derived snapshot).
	FormatCSC
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatCSR:
		return "CSR"
	case FormatCSC:
		return "CSC"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// CSR is a sparse matrix stored in Compressed Sparse Row form.
//   - values[k] is the k-th stored entry in row-major, column-ascending order.
//   - colIndices[k] is the column of values[k].
//   - rowExtent[r]..rowExtent[r+1] delimits row r; len(rowExtent) == rows+1.
//   - nnz mirrors rowExtent[rows] and is recomputed after every mutation.
//
// Every instance owns its slices; no storage is shared between matrices.
// A CSR is not safe for concurrent mutation; callers serialize access.
type CSR struct {
	rows, cols int
	values     []float64
	colIndices []int
	rowExtent  []int
	nnz        int

	tol            float64 // construction threshold, fixed
	validateNaNInf bool    // numeric guard for construction and ChangeValue

	primary Format       // always FormatCSR; guards ConvertToCSC
	csc     *cscSnapshot // nil until ConvertToCSC, never kept in sync
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*CSR)(nil)

// NewCSR builds a CSR matrix from a dense gonum grid.
// Implementation:
//   - Stage 1: validate the grid (non-nil, extents within [0, MaxExtent]).
//   - Stage 2: scan row-major; store a cell iff |v| > tolerance.
//   - Stage 3: record the running stored count after each row into rowExtent.
//
// Behavior highlights:
//   - Columns are visited in increasing order, so every row slice is strictly
//     ascending by construction.
//   - With the default numeric policy a NaN/±Inf cell fails construction.
//
// Errors:
//   - ErrInvalidInput for a nil grid; ErrInvalidInput+ErrNaNInf for non-finite cells.
//
// Complexity:
//   - Time O(r*c), Space O(nnz + r).
func NewCSR(m mat.Matrix, opts ...Option) (*CSR, error) {
	if err := ValidateGrid(m); err != nil {
		return nil, tagErrorf(ctxNew, err)
	}
	r, c := m.Dims()

	return buildCSR(ctxNew, r, c, m.At, gatherOptions(opts...))
}

// NewCSRFromRows builds a CSR matrix from a nested slice grid.
// A nil or empty outer slice yields a 0×0 matrix; ragged rows are rejected
// with ErrInvalidInput.
// Complexity: O(r*c).
func NewCSRFromRows(rows [][]float64, opts ...Option) (*CSR, error) {
	if err := ValidateRectangular(rows); err != nil {
		return nil, tagErrorf(ctxFromRows, err)
	}
	r, c := len(rows), 0
	if r > 0 {
		c = len(rows[0])
	}

	return buildCSR(ctxFromRows, r, c, func(i, j int) float64 { return rows[i][j] }, gatherOptions(opts...))
}

// NewZeroCSR returns an empty rows×cols matrix (no stored entries).
// Errors: ErrInvalidInput for negative extents or extents above MaxExtent.
// Complexity: O(r).
func NewZeroCSR(rows, cols int, opts ...Option) (*CSR, error) {
	if err := ValidateExtents(rows, cols); err != nil {
		return nil, tagErrorf(ctxZero, err)
	}

	return newEmpty(rows, cols, 0, gatherOptions(opts...)), nil
}

// newEmpty allocates fresh per-instance storage for an r×c matrix.
func newEmpty(rows, cols, capHint int, o Options) *CSR {
	return &CSR{
		rows:           rows,
		cols:           cols,
		values:         make([]float64, 0, capHint),
		colIndices:     make([]int, 0, capHint),
		rowExtent:      make([]int, rows+1),
		tol:            o.tol,
		validateNaNInf: o.validateNaNInf,
		primary:        FormatCSR,
	}
}

// buildCSR is the shared dense→CSR scan behind the public constructors.
func buildCSR(tag string, rows, cols int, at func(i, j int) float64, o Options) (*CSR, error) {
	m := newEmpty(rows, cols, 0, o)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v := at(i, j)
			if o.validateNaNInf && isNonFinite(v) {
				return nil, fmt.Errorf("%s(%d,%d): %w: %w", tag, i, j, ErrInvalidInput, ErrNaNInf)
			}
			if math.Abs(v) > o.tol || math.IsNaN(v) {
				m.values = append(m.values, v)
				m.colIndices = append(m.colIndices, j)
			}
		}
		m.rowExtent[i+1] = len(m.values)
	}
	m.updateNonZeroCount()

	return m, nil
}

// FromParts rebuilds a matrix from raw CSR arrays. The slices are copied.
// Implementation:
//   - Stage 1: reject negative or oversized extents (ErrInvalidInput).
//   - Stage 2: copy the arrays into fresh storage.
//   - Stage 3: Validate the compressed-index invariants and the numeric policy.
//
// Errors:
//   - ErrInvalidInput, ErrCorrupt (invariant violation or stored exact zero), ErrNaNInf.
//
// Complexity:
//   - Time O(nnz + r), Space O(nnz + r).
func FromParts(rows, cols int, values []float64, colIndices, rowExtent []int, opts ...Option) (*CSR, error) {
	if err := ValidateExtents(rows, cols); err != nil {
		return nil, tagErrorf(ctxParts, err)
	}
	o := gatherOptions(opts...)
	m := &CSR{
		rows:           rows,
		cols:           cols,
		values:         append(make([]float64, 0, len(values)), values...),
		colIndices:     append(make([]int, 0, len(colIndices)), colIndices...),
		rowExtent:      append(make([]int, 0, len(rowExtent)), rowExtent...),
		tol:            o.tol,
		validateNaNInf: o.validateNaNInf,
		primary:        FormatCSR,
	}
	if err := m.Validate(); err != nil {
		return nil, tagErrorf(ctxParts, err)
	}
	for k, v := range m.values {
		if v == 0 {
			return nil, fmt.Errorf("%s: stored zero at %d: %w", ctxParts, k, ErrCorrupt)
		}
		if m.validateNaNInf && isNonFinite(v) {
			return nil, fmt.Errorf("%s: value at %d: %w", ctxParts, k, ErrNaNInf)
		}
	}
	m.updateNonZeroCount()

	return m, nil
}

// Rows returns the fixed row count. Complexity: O(1).
func (m *CSR) Rows() int { return m.rows }

// Cols returns the fixed column count. Complexity: O(1).
func (m *CSR) Cols() int { return m.cols }

// Dims returns (rows, cols), matching gonum's naming. Complexity: O(1).
func (m *CSR) Dims() (rows, cols int) { return m.rows, m.cols }

// NonZeroCount returns the number of stored entries. Complexity: O(1).
func (m *CSR) NonZeroCount() int { return m.nnz }

// Tolerance returns the construction threshold. Complexity: O(1).
func (m *CSR) Tolerance() float64 { return m.tol }

// ValidatesNaNInf reports whether the numeric policy rejects NaN/±Inf.
func (m *CSR) ValidatesNaNInf() bool { return m.validateNaNInf }

// Primary reports the authoritative layout (always FormatCSR).
func (m *CSR) Primary() Format { return m.primary }

// Values returns a copy of the stored values in CSR order.
func (m *CSR) Values() []float64 { return slices.Clone(m.values) }

// ColIndices returns a copy of the column index array.
func (m *CSR) ColIndices() []int { return slices.Clone(m.colIndices) }

// RowExtent returns a copy of the row offset array (length Rows()+1).
func (m *CSR) RowExtent() []int { return slices.Clone(m.rowExtent) }

// updateNonZeroCount re-derives nnz from the last row offset.
func (m *CSR) updateNonZeroCount() {
	m.nnz = m.rowExtent[m.rows]
}

// search locates col inside row's slice with a binary search.
// pos is the position of col when found, otherwise the sorted insert point
// (first stored column strictly greater than col, or the row end).
// Complexity: O(log k) for k entries in the row.
func (m *CSR) search(row, col int) (pos int, found bool) {
	start, end := m.rowExtent[row], m.rowExtent[row+1]
	pos = start + sort.SearchInts(m.colIndices[start:end], col)

	return pos, pos < end && m.colIndices[pos] == col
}

// rowOf recovers the row that owns linear position pos.
// Equivalent to a bisect-right over rowExtent minus one, so empty rows
// (equal consecutive offsets) are skipped.
// Complexity: O(log r).
func (m *CSR) rowOf(pos int) int {
	return sort.SearchInts(m.rowExtent, pos+1) - 1
}

// At returns the value at (row, col), or 0 when the cell is not stored.
// Implementation:
//   - Stage 1: bounds check.
//   - Stage 2: binary search for col within row's slice.
//
// Errors:
//   - ErrOutOfRange on invalid indices.
//
// Complexity:
//   - Time O(log k), Space O(1).
func (m *CSR) At(row, col int) (float64, error) {
	if err := m.validateIndex(row, col); err != nil {
		return 0, csrErrorf(ctxAt, row, col, err)
	}
	if pos, ok := m.search(row, col); ok {
		return m.values[pos], nil
	}

	return 0, nil
}

// ChangeValue sets the logical value at (row, col) in place.
// Implementation:
//   - Stage 1: bounds check and numeric policy.
//   - Stage 2: binary search for col within row's slice.
//   - Stage 3: one of four cases:
//     present & v != 0 → overwrite in place;
//     present & v == 0 → delete entry, rowExtent[j]-- for j > row;
//     absent  & v != 0 → insert at sorted position, rowExtent[j]++ for j > row;
//     absent  & v == 0 → no-op.
//   - Stage 4: recompute the stored count.
//
// Behavior highlights:
//   - Only an exact zero removes an entry; the construction tolerance is not
//     re-applied on mutation.
//   - A previously built CSC snapshot is NOT updated; call ConvertToCSC again.
//
// Errors:
//   - ErrOutOfRange on invalid indices; ErrNaNInf when the policy rejects v.
//
// Complexity:
//   - Overwrite O(log k); insert/remove O(log k + nnz + r) for the shifts.
func (m *CSR) ChangeValue(row, col int, v float64) error {
	if err := m.validateIndex(row, col); err != nil {
		return csrErrorf(ctxChange, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return csrErrorf(ctxChange, row, col, ErrNaNInf)
	}

	pos, found := m.search(row, col)
	switch {
	case found && v != 0:
		m.values[pos] = v
		return nil
	case found:
		m.values = slices.Delete(m.values, pos, pos+1)
		m.colIndices = slices.Delete(m.colIndices, pos, pos+1)
		m.shiftRowExtent(row, -1)
	case v != 0:
		m.values = slices.Insert(m.values, pos, v)
		m.colIndices = slices.Insert(m.colIndices, pos, col)
		m.shiftRowExtent(row, +1)
	default:
		return nil
	}
	m.updateNonZeroCount()

	return nil
}

// Set is ChangeValue under the name used by the dense Matrix surface.
func (m *CSR) Set(row, col int, v float64) error {
	return m.ChangeValue(row, col, v)
}

// shiftRowExtent adds delta to every row offset after row.
func (m *CSR) shiftRowExtent(row, delta int) {
	for j := row + 1; j <= m.rows; j++ {
		m.rowExtent[j] += delta
	}
}

// Clone returns a deep copy, including any CSC snapshot.
// Complexity: O(nnz + r + c).
func (m *CSR) Clone() *CSR {
	cp := &CSR{
		rows:           m.rows,
		cols:           m.cols,
		values:         slices.Clone(m.values),
		colIndices:     slices.Clone(m.colIndices),
		rowExtent:      slices.Clone(m.rowExtent),
		nnz:            m.nnz,
		tol:            m.tol,
		validateNaNInf: m.validateNaNInf,
		primary:        m.primary,
	}
	if m.csc != nil {
		cp.csc = m.csc.clone()
	}

	return cp
}

// ToDense materializes the matrix as a gonum dense matrix.
// gonum forbids zero-sized dense matrices, so a matrix with no rows or no
// columns yields an empty (zero-value) *mat.Dense.
// Complexity: O(r*c + nnz).
func (m *CSR) ToDense() *mat.Dense {
	if m.rows == 0 || m.cols == 0 {
		return &mat.Dense{}
	}
	d := mat.NewDense(m.rows, m.cols, nil)
	for i := 0; i < m.rows; i++ {
		for k := m.rowExtent[i]; k < m.rowExtent[i+1]; k++ {
			d.Set(i, m.colIndices[k], m.values[k])
		}
	}

	return d
}

// Validate checks the compressed-index invariants:
// len(rowExtent) == rows+1, rowExtent[0] == 0, offsets non-decreasing,
// len(values) == len(colIndices) == rowExtent[rows], and each row's columns
// strictly ascending within [0, cols).
// Errors: wrapped ErrCorrupt describing the first violation.
// Complexity: O(nnz + r).
func (m *CSR) Validate() error {
	if len(m.rowExtent) != m.rows+1 {
		return fmt.Errorf("%s: row extent length %d, want %d: %w", ctxValidate, len(m.rowExtent), m.rows+1, ErrCorrupt)
	}
	if m.rowExtent[0] != 0 {
		return fmt.Errorf("%s: row extent starts at %d: %w", ctxValidate, m.rowExtent[0], ErrCorrupt)
	}
	for r := 0; r < m.rows; r++ {
		if m.rowExtent[r+1] < m.rowExtent[r] {
			return fmt.Errorf("%s: row extent decreases at row %d: %w", ctxValidate, r, ErrCorrupt)
		}
	}
	n := m.rowExtent[m.rows]
	if len(m.values) != n || len(m.colIndices) != n {
		return fmt.Errorf("%s: %d values, %d columns, extent %d: %w", ctxValidate, len(m.values), len(m.colIndices), n, ErrCorrupt)
	}
	for r := 0; r < m.rows; r++ {
		prev := -1
		for k := m.rowExtent[r]; k < m.rowExtent[r+1]; k++ {
			c := m.colIndices[k]
			if c < 0 || c >= m.cols || c <= prev {
				return fmt.Errorf("%s: column %d at position %d in row %d: %w", ctxValidate, c, k, r, ErrCorrupt)
			}
			prev = c
		}
	}

	return nil
}

// String renders three diagnostic lines: values, rowExtent, colIndices.
// Not a serialization format.
func (m *CSR) String() string {
	return fmt.Sprintf("%v\n%v\n%v", m.values, m.rowExtent, m.colIndices)
}
