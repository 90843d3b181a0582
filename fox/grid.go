// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"fmt"
	"math"
)

// Grid is a q x q arrangement of workers over an n x n matrix split into
// k x k blocks. The zero Grid is invalid.
type Grid struct {
	N int // matrix side
	Q int // grid side
	K int // block side
}

// MapGrid computes the grid for an n x n product on p workers:
// q = max(1, floor(sqrt(min(p, n)))) and k = ceil(n / q).
// It guarantees 1 <= q <= min(p, n) and q*q <= p.
//
// n <= 0 or p <= 0 yields the zero Grid and an error matching
// ErrDegenerateGrid.
func MapGrid(n, p int) (Grid, error) {
	if n <= 0 {
		return Grid{}, fmt.Errorf("map grid: n=%d: %w", n, ErrDegenerateGrid)
	}
	if p <= 0 {
		return Grid{}, fmt.Errorf("map grid: p=%d: %w: %w", p, ErrDegenerateGrid, ErrNoWorkers)
	}

	q := max(1, isqrt(min(p, n)))
	return Grid{N: n, Q: q, K: ceilDiv(n, q)}, nil
}

// isqrt returns floor(sqrt(x)) for x >= 0. Comparisons divide rather than
// square so that x near math.MaxInt does not overflow.
func isqrt(x int) int {
	if x <= 0 {
		return 0
	}
	r := int(math.Sqrt(float64(x)))
	for r > x/r {
		r--
	}
	for r+1 <= x/(r+1) {
		r++
	}
	return r
}

// ceilDiv returns ceil(n / d) for n >= 0 and d > 0 without computing n+d-1.
func ceilDiv(n, d int) int {
	k := n / d
	if n%d != 0 {
		k++
	}
	return k
}

// Valid reports whether g describes a usable grid: q blocks of side k cover
// n, and neither q nor k exceeds n.
func (g Grid) Valid() bool {
	return g.N > 0 && g.Q > 0 && g.K > 0 &&
		g.Q <= g.N && g.K <= g.N && g.K >= ceilDiv(g.N, g.Q)
}

// Cells returns the number of grid cells, q*q.
func (g Grid) Cells() int {
	return g.Q * g.Q
}

// BlockLen returns the number of elements in one block, k*k.
func (g Grid) BlockLen() int {
	return g.K * g.K
}

// Cell returns the linear index of grid cell (row, col).
func (g Grid) Cell(row, col int) int {
	return row*g.Q + col
}

// Coords is the inverse of Cell.
func (g Grid) Coords(cell int) (row, col int) {
	return cell / g.Q, cell % g.Q
}

// Offset returns the first matrix row (or column) covered by block index b.
func (g Grid) Offset(b int) int {
	return b * g.K
}

// Extent returns how many real (non-padding) rows or columns block index b
// covers: min(k, n - b*k), floored at 0.
func (g Grid) Extent(b int) int {
	return max(0, min(g.K, g.N-b*g.K))
}

func (g Grid) String() string {
	return fmt.Sprintf("n=%d q=%d k=%d", g.N, g.Q, g.K)
}
