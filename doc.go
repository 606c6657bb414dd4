// Package lvsparse is an in-memory sparse matrix toolkit built around the
// Compressed Sparse Row (CSR) layout.
//
// What is inside?
//
//	• sparse/          : the CSR engine: construction from dense grids
//	                     (gonum mat.Matrix or [][]float64), point lookup and
//	                     mutation that keep the compressed indices valid,
//	                     CSR→CSC snapshots, matrix-vector multiply, in-place
//	                     addition, positional equality, roaring sparsity patterns
//	• sparse/snapshot/ : compact binary snapshots of a CSR matrix with optional
//	                     LZ4 or ZSTD compression and a CRC32 trailer
//	• examples/        : a runnable heat-diffusion walkthrough
//
// Quick ASCII example:
//
//	    ┌         ┐
//	    │ 3  4  5 │     values     [3 4 5 3 6 6 8]
//	    │ 0  3  0 │ ──► colIndices [0 1 2 1 0 1 2]
//	    │ 6  6  8 │     rowExtent  [0 3 4 7]
//	    └         ┘
//
// A matrix is a single-owner value: no internal locking, no sharing of
// storage between instances.
//
//	go get github.com/katalvlaran/lvsparse
package lvsparse
