// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
)

func TestShiftUp(t *testing.T) {
	// 3x3 grid; each block is tagged with its (row, col) as row*10+col.
	const q = 3
	blocks := make([][]float64, q*q)
	for row := range q {
		for col := range q {
			blocks[row*q+col] = []float64{float64(row*10 + col)}
		}
	}

	shiftUp(blocks, q)

	for row := range q {
		for col := range q {
			from := (row + 1) % q
			require.Equal(t, float64(from*10+col), blocks[row*q+col][0], "cell (%d,%d)", row, col)
		}
	}

	// q shifts bring every block home.
	shiftUp(blocks, q)
	shiftUp(blocks, q)
	for row := range q {
		for col := range q {
			require.Equal(t, float64(row*10+col), blocks[row*q+col][0])
		}
	}
}

func TestRootCyclesThroughEveryColumn(t *testing.T) {
	g := Grid{N: 20, Q: 5, K: 4}
	for row := range g.Q {
		seen := make(map[int]bool)
		for step := range g.Q {
			seen[root(g, row, step)] = true
		}
		require.Len(t, seen, g.Q, "row %d", row)
	}
}

// Every (i, p) A block must meet every (p, j) B block exactly once across the
// steps: record which B block each cell holds when it multiplies.
func TestSharedScheduleCoversAllPairs(t *testing.T) {
	const q = 4
	held := make([][]float64, q*q)
	for cell := range held {
		held[cell] = []float64{float64(cell / q)} // B block's original row
	}
	g := Grid{N: q, Q: q, K: 1}
	met := make(map[[3]int]int)
	for step := range q {
		for cell := range g.Cells() {
			row, col := g.Coords(cell)
			r := root(g, row, step)
			require.Equal(t, float64(r), held[cell][0], "cell (%d,%d) step %d holds wrong B row", row, col, step)
			met[[3]int{row, r, col}]++
		}
		shiftUp(held, q)
	}
	require.Len(t, met, q*q*q)
	for key, count := range met {
		require.Equal(t, 1, count, "pair %v", key)
	}
}

func TestCheckBlocks(t *testing.T) {
	g := Grid{N: 4, Q: 2, K: 2}
	good := newAccumulators(g)

	require.NoError(t, checkBlocks(g, good, good))
	require.ErrorIs(t, checkBlocks(Grid{}, good, good), ErrDegenerateGrid)
	require.ErrorIs(t, checkBlocks(g, good[:3], good), ErrDimensionMismatch)

	short := newAccumulators(g)
	short[2] = short[2][:3]
	require.ErrorIs(t, checkBlocks(g, good, short), ErrShortBuffer)

	for _, st := range []stepper{
		&sharedStepper{log: quietLogger()},
		&messagePassingStepper{log: quietLogger()},
		&sequentialStepper{log: quietLogger()},
	} {
		_, err := st.run(g, good[:1], good)
		require.ErrorIs(t, err, ErrDimensionMismatch)
	}
}

func TestMessagePassingReportsProtocolViolation(t *testing.T) {
	g := Grid{N: 2, Q: 1, K: 2}
	m := newMesh(g)
	// Make room for a stray message ahead of the node's own shifted B block.
	m.colIn[0] = make(chan message, 2)
	m.colIn[0] <- message{step: 3, from: 0, block: make([]float64, 4)}

	nd := &node{a: make([]float64, 4), b: make([]float64, 4), acc: make([]float64, 4)}
	err := m.runNode(nd, quietLogger())
	require.ErrorIs(t, err, ErrProtocol)
}

func TestMessagePassingBarrierSpansGrid(t *testing.T) {
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	g, err := MapGrid(9, 9)
	require.NoError(t, err)
	a, b, err := Distribute(sequence(9), Identity(9).Data, g)
	require.NoError(t, err)

	st := &messagePassingStepper{log: log}
	acc, err := st.run(g, a, b)
	require.NoError(t, err)
	require.Len(t, acc, g.Cells())

	steps := 0
	var ready *logrus.Entry
	for _, entry := range hook.AllEntries() {
		switch entry.Message {
		case "fox mesh ready":
			ready = entry
		case "fox step done":
			steps++
		}
	}
	require.NotNil(t, ready)
	require.Equal(t, g.Cells(), ready.Data["parties"])
	require.Equal(t, g.Q, steps)
}
