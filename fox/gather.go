// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import "fmt"

// Gather writes the accumulator of every grid cell into its position of the
// n x n row-major out, dropping block padding. Each of the n*n output
// elements is written by exactly one cell; nothing past out[n*n-1] is
// touched.
//
// Shapes are checked before the first write, so on error out is unchanged.
func Gather(acc [][]float64, g Grid, out []float64) error {
	if !g.Valid() {
		return fmt.Errorf("gather: %v: %w", g, ErrDegenerateGrid)
	}
	// out holds n*n, so q*q and k*k below cannot overflow.
	if !holdsSquare(out, g.N) {
		return fmt.Errorf("gather: output has %d elements, need %dx%d: %w", len(out), g.N, g.N, ErrShortBuffer)
	}
	if len(acc) != g.Cells() {
		return fmt.Errorf("gather: %d accumulators for %d cells: %w", len(acc), g.Cells(), ErrDimensionMismatch)
	}
	for cell, blk := range acc {
		if len(blk) < g.BlockLen() {
			return fmt.Errorf("gather: cell %d block has %d elements, need %d: %w", cell, len(blk), g.BlockLen(), ErrShortBuffer)
		}
	}

	for bi := range g.Q {
		rows := g.Extent(bi)
		rowOff := g.Offset(bi)
		for bj := range g.Q {
			blk := acc[g.Cell(bi, bj)]
			cols := g.Extent(bj)
			colOff := g.Offset(bj)
			if cols == 0 {
				continue
			}
			for r := range rows {
				dst := (rowOff+r)*g.N + colOff
				copy(out[dst:dst+cols], blk[r*g.K:r*g.K+cols])
			}
		}
	}
	return nil
}
