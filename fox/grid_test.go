// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapGrid(t *testing.T) {
	testCases := []struct {
		n, p int
		want Grid
	}{
		{n: 1, p: 1, want: Grid{N: 1, Q: 1, K: 1}},
		{n: 3, p: 1, want: Grid{N: 3, Q: 1, K: 3}},
		{n: 4, p: 4, want: Grid{N: 4, Q: 2, K: 2}},
		{n: 4, p: 16, want: Grid{N: 4, Q: 2, K: 2}},
		{n: 5, p: 4, want: Grid{N: 5, Q: 2, K: 3}},
		{n: 10, p: 8, want: Grid{N: 10, Q: 2, K: 5}},
		{n: 10, p: 9, want: Grid{N: 10, Q: 3, K: 4}},
		{n: 2, p: 64, want: Grid{N: 2, Q: 1, K: 2}},
		{n: 100, p: 3, want: Grid{N: 100, Q: 1, K: 100}},
		{n: 100, p: 64, want: Grid{N: 100, Q: 8, K: 13}},
	}
	for _, tc := range testCases {
		g, err := MapGrid(tc.n, tc.p)
		require.NoError(t, err, "n=%d p=%d", tc.n, tc.p)
		require.Equal(t, tc.want, g, "n=%d p=%d", tc.n, tc.p)
		require.True(t, g.Valid())
	}
}

func TestMapGridInvariants(t *testing.T) {
	for n := 1; n <= 70; n++ {
		for p := 1; p <= 70; p++ {
			g, err := MapGrid(n, p)
			require.NoError(t, err)
			require.GreaterOrEqual(t, g.Q, 1)
			require.LessOrEqual(t, g.Q, min(p, n), "n=%d p=%d", n, p)
			require.LessOrEqual(t, g.Q*g.Q, p, "n=%d p=%d", n, p)
			require.Equal(t, (n+g.Q-1)/g.Q, g.K)

			// Blocks tile the matrix exactly: extents add up to n and no
			// block is entirely padding.
			total := 0
			for b := range g.Q {
				require.Positive(t, g.Extent(b), "n=%d p=%d block %d", n, p, b)
				total += g.Extent(b)
			}
			require.Equal(t, n, total)

			again, err := MapGrid(n, p)
			require.NoError(t, err)
			require.Equal(t, g, again, "MapGrid must be deterministic")
		}
	}
}

func TestMapGridDegenerate(t *testing.T) {
	testCases := []struct {
		name      string
		n, p      int
		noWorkers bool
	}{
		{name: "zero side", n: 0, p: 4},
		{name: "negative side", n: -3, p: 4},
		{name: "zero workers", n: 4, p: 0, noWorkers: true},
		{name: "negative workers", n: 4, p: -1, noWorkers: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := MapGrid(tc.n, tc.p)
			require.ErrorIs(t, err, ErrDegenerateGrid)
			require.Equal(t, tc.noWorkers, errors.Is(err, ErrNoWorkers))
			require.Equal(t, Grid{}, g)
			require.False(t, g.Valid())
		})
	}
}

func TestGridHelpers(t *testing.T) {
	g := Grid{N: 7, Q: 3, K: 3}
	require.Equal(t, 9, g.Cells())
	require.Equal(t, 9, g.BlockLen())
	require.Equal(t, 5, g.Cell(1, 2))
	row, col := g.Coords(5)
	require.Equal(t, 1, row)
	require.Equal(t, 2, col)
	require.Equal(t, []int{3, 3, 1}, []int{g.Extent(0), g.Extent(1), g.Extent(2)})
	require.Equal(t, 6, g.Offset(2))
	require.Equal(t, 0, Grid{N: 4, Q: 3, K: 3}.Extent(2))
	require.Equal(t, "n=7 q=3 k=3", g.String())
}

func TestIsqrt(t *testing.T) {
	for x := range 10000 {
		r := isqrt(x)
		require.LessOrEqual(t, r*r, x)
		require.Greater(t, (r+1)*(r+1), x)
	}

	const r = 3037000499 // floor(sqrt(math.MaxInt)) on 64-bit
	for _, x := range []int{math.MaxInt, math.MaxInt - 1, r * r, r*r - 1} {
		got := isqrt(x)
		require.LessOrEqual(t, got, x/got, "x=%d", x)
		require.Greater(t, got+1, x/(got+1), "x=%d", x)
	}
	require.Equal(t, r, isqrt(math.MaxInt))
}

func TestMapGridNearMaxInt(t *testing.T) {
	g, err := MapGrid(math.MaxInt, math.MaxInt)
	require.NoError(t, err)
	require.Equal(t, 3037000499, g.Q)
	require.Equal(t, math.MaxInt/g.Q+1, g.K)
	require.True(t, g.Valid())
	require.Positive(t, g.Extent(g.Q-1))
}

func TestGridValid(t *testing.T) {
	require.True(t, Grid{N: 5, Q: 2, K: 3}.Valid())
	require.True(t, Grid{N: 5, Q: 2, K: 4}.Valid())
	require.False(t, Grid{N: 5, Q: 2, K: 2}.Valid(), "blocks must cover n")
	require.False(t, Grid{N: 4, Q: 8, K: 1}.Valid(), "q must not exceed n")
	require.False(t, Grid{N: 4, Q: 1, K: 8}.Valid(), "k must not exceed n")
	require.False(t, Grid{N: 4, Q: 0, K: 4}.Valid())
}
