// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package workerpool

import "sync"

// Barrier is a reusable cyclic barrier for a fixed number of goroutines.
// Each generation releases once all parties have called Wait.
type Barrier struct {
	parties int

	mu         sync.Mutex
	cond       sync.Cond
	waiting    int
	generation int
}

// NewBarrier creates a barrier for parties goroutines. parties < 1 is
// treated as 1, which makes Wait return immediately.
func NewBarrier(parties int) *Barrier {
	b := &Barrier{parties: max(parties, 1)}
	b.cond = sync.Cond{L: &b.mu}
	return b
}

// Parties returns the number of goroutines the barrier waits for.
func (b *Barrier) Parties() int {
	return b.parties
}

// Wait blocks until all parties of the current generation have arrived and
// returns the generation that was released.
func (b *Barrier) Wait() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	gen := b.generation
	b.waiting++
	if b.waiting == b.parties {
		b.waiting = 0
		b.generation++
		b.cond.Broadcast()
		return gen
	}
	for gen == b.generation {
		b.cond.Wait()
	}
	return gen
}
