// SPDX-License-Identifier: MIT

// Package sparse - sparsity patterns.
//
// A pattern is the set of stored cells, independent of their values. Patterns
// are returned as roaring bitmaps so callers can intersect, union or count
// them cheaply (e.g. fill-in of Add, overlap between two operators).

package sparse

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Pattern returns the set of stored cells as linear ids row*Cols()+col.
// Complexity: O(nnz) inserts into a compressed bitmap.
func (m *CSR) Pattern() *roaring64.Bitmap {
	bm := roaring64.New()
	cols := uint64(m.cols)
	for r := 0; r < m.rows; r++ {
		base := uint64(r) * cols
		for k := m.rowExtent[r]; k < m.rowExtent[r+1]; k++ {
			bm.Add(base + uint64(m.colIndices[k]))
		}
	}

	return bm
}

// RowPattern returns the stored columns of one row. Columns never exceed
// MaxExtent, so they always fit the 32-bit bitmap domain.
// Errors: ErrOutOfRange for an invalid row.
// Complexity: O(k) for k entries in the row.
func (m *CSR) RowPattern(row int) (*roaring.Bitmap, error) {
	if row < 0 || row >= m.rows {
		return nil, csrErrorf(ctxRowPat, row, 0, ErrOutOfRange)
	}

	bm := roaring.New()
	for k := m.rowExtent[row]; k < m.rowExtent[row+1]; k++ {
		bm.Add(uint32(m.colIndices[k]))
	}

	return bm, nil
}

// SamePattern reports whether m and other have the same extents and store
// exactly the same set of cells, regardless of values. It is the structural
// companion to the positional Equal.
// Complexity: O(nnz(m) + nnz(other)).
func (m *CSR) SamePattern(other *CSR) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.rows != other.rows || m.cols != other.cols || m.nnz != other.nnz {
		return false
	}

	return m.Pattern().Equals(other.Pattern())
}
