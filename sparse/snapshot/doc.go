// SPDX-License-Identifier: MIT

// Package snapshot encodes a sparse.CSR matrix into a compact, checksummed
// binary form and decodes it back.
//
// Layout (little-endian):
//
//	header  : magic "LVSP" | version u16 | compression u8 | flags u8 |
//	          rows u64 | cols u64 | tolerance f64 | nnz u64 |
//	          rawLen u32 | payloadLen u32                      (48 bytes)
//	payload : payloadLen bytes, raw or compressed with LZ4 / ZSTD
//	trailer : CRC32 (IEEE) of the payload bytes
//
// The raw payload is rowExtent (rows+1 × u64), colIndices (nnz × u64) and
// values (nnz × f64 bits). When compression does not shrink the payload
// below 90% of its raw size the raw bytes are stored and the header says
// None.
//
// A CSC snapshot is not serialized. Flag bit 0 records that the source
// matrix had one; Decode then rebuilds it from the decoded CSR state.
package snapshot
