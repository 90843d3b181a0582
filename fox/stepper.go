// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/ajroetker/foxmm/fox/contrib/matmul"
	"github.com/ajroetker/foxmm/fox/contrib/workerpool"
)

// stepper runs the q Fox steps over distributed blocks and returns one
// accumulator per grid cell. It must not modify a; b may be consumed.
type stepper interface {
	run(g Grid, a, b [][]float64) ([][]float64, error)
}

// root returns the grid column whose A block row `row` uses at step.
func root(g Grid, row, step int) int {
	return (row + step) % g.Q
}

// multiplyCell performs cell (row, col)'s multiply-accumulate for step,
// given the broadcast A block and the B block the cell currently holds.
func multiplyCell(g Grid, acc, aBlk, bBlk []float64, row, col, step int) {
	inner := g.Extent(root(g, row, step))
	matmul.BlockMulAdd(acc, aBlk, bBlk, g.K, g.Extent(row), g.Extent(col), inner)
}

// checkBlocks guards the steppers against a mismatched distribution before
// any accumulation happens.
func checkBlocks(g Grid, a, b [][]float64) error {
	if !g.Valid() {
		return fmt.Errorf("fox step: %v: %w", g, ErrDegenerateGrid)
	}
	if len(a) != g.Cells() || len(b) != g.Cells() {
		return fmt.Errorf("fox step: got %d A and %d B blocks for %d cells: %w",
			len(a), len(b), g.Cells(), ErrDimensionMismatch)
	}
	for cell := range a {
		if len(a[cell]) < g.BlockLen() || len(b[cell]) < g.BlockLen() {
			return fmt.Errorf("fox step: cell %d block shorter than %d: %w", cell, g.BlockLen(), ErrShortBuffer)
		}
	}
	return nil
}

// sharedStepper schedules q*q cell tasks per step on a worker pool.
type sharedStepper struct {
	pool *workerpool.Pool
	log  logrus.FieldLogger
}

func (s *sharedStepper) run(g Grid, a, b [][]float64) ([][]float64, error) {
	if err := checkBlocks(g, a, b); err != nil {
		return nil, err
	}

	acc := newAccumulators(g)
	held := slices.Clone(b) // held[cell] is the B block cell currently owns
	for step := range g.Q {
		s.pool.ParallelForAtomic(g.Cells(), func(cell int) {
			row, col := g.Coords(cell)
			aBlk := a[g.Cell(row, root(g, row, step))]
			multiplyCell(g, acc[cell], aBlk, held[cell], row, col, step)
		})
		// ParallelForAtomic has returned: every cell finished this step.
		shiftUp(held, g.Q)
		s.log.WithField("step", step).Debug("fox step done")
	}
	return acc, nil
}

// shiftUp moves every B block one row up within its grid column, cyclically:
// the block at (i, j) goes to (i-1 mod q, j).
func shiftUp(blocks [][]float64, q int) {
	for col := range q {
		top := blocks[col]
		for row := 0; row < q-1; row++ {
			blocks[row*q+col] = blocks[(row+1)*q+col]
		}
		blocks[(q-1)*q+col] = top
	}
}

// sequentialStepper runs the schedule on the calling goroutine. Rather than
// shifting B, it reads block (root, col) directly, which is the block the
// shifted schedule would hold at that step.
type sequentialStepper struct {
	log logrus.FieldLogger
}

func (s *sequentialStepper) run(g Grid, a, b [][]float64) ([][]float64, error) {
	if err := checkBlocks(g, a, b); err != nil {
		return nil, err
	}

	acc := newAccumulators(g)
	for step := range g.Q {
		for row := range g.Q {
			r := root(g, row, step)
			aBlk := a[g.Cell(row, r)]
			for col := range g.Q {
				multiplyCell(g, acc[g.Cell(row, col)], aBlk, b[g.Cell(r, col)], row, col, step)
			}
		}
		s.log.WithField("step", step).Debug("fox step done")
	}
	return acc, nil
}
