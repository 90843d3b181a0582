// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/ajroetker/foxmm/fox/contrib/workerpool"
)

// message carries one block between grid cells.
type message struct {
	step  int
	from  int // sending cell
	block []float64
}

// node is the state private to one grid cell's goroutine. Nothing in a node
// is read or written by another goroutine; blocks travel only as messages.
type node struct {
	row, col int
	a, b     []float64 // owned A block, currently held B block
	acc      []float64
}

// messagePassingStepper gives every grid cell its own goroutine and
// mailboxes, so q*q goroutines are started per run, not per step.
type messagePassingStepper struct {
	log logrus.FieldLogger
}

// mesh holds the per-cell mailboxes. rowIn receives broadcast A blocks and
// colIn receives B blocks shifted up from the cell below. Each has room for
// one message: a cell receives at most one of each per step and the barrier
// keeps steps from overlapping.
type mesh struct {
	g       Grid
	rowIn   []chan message
	colIn   []chan message
	barrier *workerpool.Barrier
}

func newMesh(g Grid) *mesh {
	m := &mesh{
		g:       g,
		rowIn:   make([]chan message, g.Cells()),
		colIn:   make([]chan message, g.Cells()),
		barrier: workerpool.NewBarrier(g.Cells()),
	}
	for cell := range m.rowIn {
		m.rowIn[cell] = make(chan message, 1)
		m.colIn[cell] = make(chan message, 1)
	}
	return m
}

func (s *messagePassingStepper) run(g Grid, a, b [][]float64) ([][]float64, error) {
	if err := checkBlocks(g, a, b); err != nil {
		return nil, err
	}

	m := newMesh(g)
	s.log.WithField("parties", m.barrier.Parties()).Debug("fox mesh ready")
	acc := newAccumulators(g)
	var eg errgroup.Group
	for cell := range g.Cells() {
		row, col := g.Coords(cell)
		nd := &node{row: row, col: col, a: a[cell], b: b[cell], acc: acc[cell]}
		eg.Go(func() error {
			return m.runNode(nd, s.log)
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return acc, nil
}

// runNode executes all q steps for one cell. A protocol violation is
// remembered but the node keeps taking part in every exchange and barrier
// so that its peers cannot block forever; the error is returned at the end.
func (m *mesh) runNode(nd *node, log logrus.FieldLogger) error {
	g := m.g
	self := g.Cell(nd.row, nd.col)
	up := g.Cell((nd.row-1+g.Q)%g.Q, nd.col)
	below := g.Cell((nd.row+1)%g.Q, nd.col)

	var firstErr error
	fail := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}

	for step := range g.Q {
		// Row broadcast of A.
		rootCol := root(g, nd.row, step)
		sender := g.Cell(nd.row, rootCol)
		aBlk := nd.a
		if nd.col == rootCol {
			for col := range g.Q {
				if col != nd.col {
					m.rowIn[g.Cell(nd.row, col)] <- message{step: step, from: self, block: slices.Clone(nd.a)}
				}
			}
		} else {
			msg := <-m.rowIn[self]
			if msg.step != step || msg.from != sender {
				fail(fmt.Errorf("cell %d step %d: A block from cell %d step %d, want cell %d: %w",
					self, step, msg.from, msg.step, sender, ErrProtocol))
			}
			aBlk = msg.block
		}

		multiplyCell(g, nd.acc, aBlk, nd.b, nd.row, nd.col, step)

		// Cyclic shift of B one row up. The block is handed over, not copied.
		m.colIn[up] <- message{step: step, from: self, block: nd.b}
		msg := <-m.colIn[self]
		if msg.step != step || msg.from != below {
			fail(fmt.Errorf("cell %d step %d: B block from cell %d step %d, want cell %d: %w",
				self, step, msg.from, msg.step, below, ErrProtocol))
		}
		nd.b = msg.block

		m.barrier.Wait()
		if self == 0 {
			log.WithField("step", step).Debug("fox step done")
		}
	}
	return firstErr
}
