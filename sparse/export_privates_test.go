// SPDX-License-Identifier: MIT

package sparse

// White-box bridge: exposes unexported helpers to sparse_test only.

// RowOf_TestOnly forwards to the private position→row lookup.
func RowOf_TestOnly(m *CSR, pos int) int { return m.rowOf(pos) }

// ShareStorage_TestOnly reports whether a and b share their values backing array.
func ShareStorage_TestOnly(a, b *CSR) bool {
	if cap(a.values) == 0 || cap(b.values) == 0 {
		return false
	}

	return &a.values[:1][0] == &b.values[:1][0]
}

// PanicToleranceInvalid_TestOnly exposes the WithTolerance panic message.
const PanicToleranceInvalid_TestOnly = panicToleranceInvalid
