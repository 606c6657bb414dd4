// SPDX-License-Identifier: MIT

// Package sparse - CSR → CSC conversion.
//
// The CSC arrays are a snapshot of the CSR state at the time ConvertToCSC ran.
// They are never patched by ChangeValue or Add; callers re-run the conversion
// after mutating.

package sparse

import (
	"slices"
	"sort"
)

// cscSnapshot holds the column-major dual of the CSR arrays.
//   - values, rowIndices: stored entries column-major, row-ascending within a column.
//   - colExtent: length cols+1, same role as rowExtent but over columns.
type cscSnapshot struct {
	values     []float64
	rowIndices []int
	colExtent  []int
}

func (s *cscSnapshot) clone() *cscSnapshot {
	return &cscSnapshot{
		values:     slices.Clone(s.values),
		rowIndices: slices.Clone(s.rowIndices),
		colExtent:  slices.Clone(s.colExtent),
	}
}

// ConvertToCSC builds (or rebuilds) the CSC snapshot from the current CSR state.
// Implementation:
//   - Stage 1: no-op unless CSR is the primary layout.
//   - Stage 2: allocate colExtent with cols+1 zeros.
//   - Stage 3: for each stored entry in CSR order, recover its row from
//     rowExtent, binary-search the insert point inside the target column's
//     current row span, insert (row, value), then bump colExtent[j] for j > col.
//
// Behavior highlights:
//   - An empty matrix yields colExtent of cols+1 zeros and empty arrays.
//   - Rows within a column come out ascending; entries sharing a row keep
//     their CSR order.
//
// Complexity:
//   - Time O(nnz·(log r + log k + c) + shift cost), Space O(nnz + c).
//     Intended as an explicit snapshot, not a per-mutation step.
func (m *CSR) ConvertToCSC() {
	if m.primary != FormatCSR {
		return
	}

	snap := &cscSnapshot{
		values:     make([]float64, 0, m.nnz),
		rowIndices: make([]int, 0, m.nnz),
		colExtent:  make([]int, m.cols+1),
	}
	for k := 0; k < m.nnz; k++ {
		v, col := m.values[k], m.colIndices[k]
		row := m.rowOf(k)

		start, stop := snap.colExtent[col], snap.colExtent[col+1]
		span := snap.rowIndices[start:stop]
		at := start + sort.Search(len(span), func(i int) bool { return span[i] > row })

		snap.values = slices.Insert(snap.values, at, v)
		snap.rowIndices = slices.Insert(snap.rowIndices, at, row)
		for j := col + 1; j <= m.cols; j++ {
			snap.colExtent[j]++
		}
	}
	m.csc = snap
}

// HasCSC reports whether a CSC snapshot has been built.
func (m *CSR) HasCSC() bool { return m.csc != nil }

// CSCValues returns a copy of the snapshot values, or nil before ConvertToCSC.
func (m *CSR) CSCValues() []float64 {
	if m.csc == nil {
		return nil
	}

	return slices.Clone(m.csc.values)
}

// CSCRowIndices returns a copy of the snapshot row indices, or nil before ConvertToCSC.
func (m *CSR) CSCRowIndices() []int {
	if m.csc == nil {
		return nil
	}

	return slices.Clone(m.csc.rowIndices)
}

// CSCColExtent returns a copy of the snapshot column offsets (length Cols()+1),
// or nil before ConvertToCSC.
func (m *CSR) CSCColExtent() []int {
	if m.csc == nil {
		return nil
	}

	return slices.Clone(m.csc.colExtent)
}
