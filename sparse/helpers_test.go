// SPDX-License-Identifier: MIT
// Package sparse_test contains shared fixtures and helpers.
//
// Purpose:
//   - Provide small deterministic grids reused across construction, mutation,
//     conversion and arithmetic tests.
//   - Keep all data finite so the default numeric policy never interferes.

package sparse_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvsparse/sparse"
	"github.com/stretchr/testify/require"
)

// Fixture grids. The comments show the CSR arrays they produce.
var (
	// values [5 4 3 2 1 5], rowExtent [0 5 6 6 6], colIndices [0 1 2 3 4 1]
	grid1 = [][]float64{
		{5, 4, 3, 2, 1, 0},
		{0, 5, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
	}
	// values [10 -5 9], rowExtent [0 1 2 2 3], colIndices [0 1 5]
	grid2 = [][]float64{
		{10, 0, 0, 0, 0, 0},
		{0, -5, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 9},
	}
	grid3 = [][]float64{
		{1, 0, 0, 0, 5, 0, 0},
		{0, 0, 3, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 2, 0, 0, 0, 6, 0},
		{0, 0, 0, 4, 0, 0, 0},
	}
	grid4 = [][]float64{
		{-1, 2, 0, 0, -5, 0, 0},
		{0, 0, -3, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
		{0, 0, 0, 0, 0, 0, 0},
	}
	grid5 = [][]float64{
		{3, 4, 5},
		{0, 3, 0},
		{6, 6, 8},
	}
	grid6 = [][]float64{
		{1, -1, 2},
		{0, -3, 1},
	}
)

// filledGrid returns an r×c grid with every cell set to v.
func filledGrid(r, c int, v float64) [][]float64 {
	g := make([][]float64, r)
	for i := range g {
		g[i] = make([]float64, c)
		for j := range g[i] {
			g[i][j] = v
		}
	}

	return g
}

// randomGrid returns an r×c grid where roughly density of the cells hold a
// small non-zero integer value. Deterministic for a given seed.
func randomGrid(rng *rand.Rand, r, c int, density float64) [][]float64 {
	g := make([][]float64, r)
	for i := range g {
		g[i] = make([]float64, c)
		for j := range g[i] {
			if rng.Float64() < density {
				g[i][j] = float64(rng.Intn(9) + 1)
				if rng.Intn(2) == 0 {
					g[i][j] = -g[i][j]
				}
			}
		}
	}

	return g
}

// MustCSR builds a CSR from rows or fails the test.
func MustCSR(tb testing.TB, rows [][]float64, opts ...sparse.Option) *sparse.CSR {
	tb.Helper()
	m, err := sparse.NewCSRFromRows(rows, opts...)
	require.NoError(tb, err)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(tb testing.TB, m *sparse.CSR, i, j int) float64 {
	tb.Helper()
	v, err := m.At(i, j)
	require.NoError(tb, err)

	return v
}

// RequireInvariants asserts every CSR invariant plus "no stored zero".
func RequireInvariants(tb testing.TB, m *sparse.CSR) {
	tb.Helper()
	require.NoError(tb, m.Validate())
	require.Equal(tb, m.RowExtent()[m.Rows()], m.NonZeroCount())
	for k, v := range m.Values() {
		require.NotZerof(tb, v, "stored zero at position %d", k)
	}
}

// RequireMatchesGrid asserts that every cell of m equals want.
func RequireMatchesGrid(tb testing.TB, m *sparse.CSR, want [][]float64) {
	tb.Helper()
	require.Equal(tb, len(want), m.Rows())
	for i := range want {
		for j := range want[i] {
			require.Equalf(tb, want[i][j], MustAt(tb, m, i, j), "cell (%d,%d)", i, j)
		}
	}
}
