// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import "fmt"

// Distribute scatters the n x n row-major matrices a and b over g. Block
// (i, j) of each matrix lands at index g.Cell(i, j) of the returned slices as
// a contiguous k x k buffer. Positions past the matrix edge are zero.
//
// Every element of a and b is copied into exactly one block. The inputs are
// only read.
func Distribute(a, b []float64, g Grid) (aBlocks, bBlocks [][]float64, err error) {
	if !g.Valid() {
		return nil, nil, fmt.Errorf("distribute: %v: %w", g, ErrDegenerateGrid)
	}
	if err := checkOperands(a, b, g.N); err != nil {
		return nil, nil, fmt.Errorf("distribute: %w", err)
	}

	aBlocks = scatter(a, g)
	bBlocks = scatter(b, g)
	return aBlocks, bBlocks, nil
}

// checkOperands reports ErrShortBuffer unless a and b each hold n*n elements.
func checkOperands(a, b []float64, n int) error {
	if !holdsSquare(a, n) {
		return fmt.Errorf("A has %d elements, need %dx%d: %w", len(a), n, n, ErrShortBuffer)
	}
	if !holdsSquare(b, n) {
		return fmt.Errorf("B has %d elements, need %dx%d: %w", len(b), n, n, ErrShortBuffer)
	}
	return nil
}

// scatter allocates all q*q blocks in one backing array and copies the real
// part of each block row by row.
func scatter(m []float64, g Grid) [][]float64 {
	blockLen := g.BlockLen()
	backing := make([]float64, g.Cells()*blockLen)
	blocks := make([][]float64, g.Cells())

	for bi := range g.Q {
		rows := g.Extent(bi)
		rowOff := g.Offset(bi)
		for bj := range g.Q {
			cell := g.Cell(bi, bj)
			blk := backing[cell*blockLen : (cell+1)*blockLen : (cell+1)*blockLen]
			blocks[cell] = blk

			cols := g.Extent(bj)
			colOff := g.Offset(bj)
			if cols == 0 {
				continue
			}
			for r := range rows {
				src := (rowOff+r)*g.N + colOff
				copy(blk[r*g.K:r*g.K+cols], m[src:src+cols])
			}
		}
	}
	return blocks
}

// newAccumulators returns q*q zeroed k x k blocks, one per grid cell.
func newAccumulators(g Grid) [][]float64 {
	blockLen := g.BlockLen()
	backing := make([]float64, g.Cells()*blockLen)
	acc := make([][]float64, g.Cells())
	for cell := range acc {
		acc[cell] = backing[cell*blockLen : (cell+1)*blockLen : (cell+1)*blockLen]
	}
	return acc
}
