// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool provides a persistent, bounded worker pool with a
// parallel-for primitive whose return is a barrier: every index handed to a
// ParallelFor call has been processed before the call returns.
//
// The Fox stepper schedules one task per grid cell per step on the pool, so
// the pool is created once per engine and reused across steps and runs
// instead of spawning q*q goroutines each step.
//
// Usage:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	for step := range q {
//	    pool.ParallelForAtomic(q*q, func(cell int) {
//	        multiplyCell(cell, step)
//	    })
//	    // all cells finished this step here
//	}
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a persistent worker pool. Workers are spawned once at creation and
// live until Close.
type Pool struct {
	numWorkers int
	workC      chan task
	closeOnce  sync.Once
	closed     atomic.Bool

	// sendMu is held for reading while a ParallelFor call queues tasks and
	// for writing while Close closes workC.
	sendMu sync.RWMutex
}

// task is one unit handed to a worker; done is the barrier of the
// ParallelFor call that produced it.
type task struct {
	fn   func()
	done *sync.WaitGroup
}

// New creates a pool with numWorkers persistent workers.
// If numWorkers <= 0, uses GOMAXPROCS.
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.GOMAXPROCS(0)
	}

	p := &Pool{
		numWorkers: numWorkers,
		workC:      make(chan task, numWorkers*2),
	}
	for range numWorkers {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	for t := range p.workC {
		t.fn()
		t.done.Done()
	}
}

// NumWorkers returns the number of workers in the pool.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Closed reports whether Close has been called.
func (p *Pool) Closed() bool {
	return p.closed.Load()
}

// Close shuts the workers down. Work already queued still runs. Close waits
// for ParallelFor calls that are queueing tasks; calls that start afterwards
// run inline on the caller. Calling Close multiple times is safe.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		p.sendMu.Lock()
		defer p.sendMu.Unlock()
		p.closed.Store(true)
		close(p.workC)
	})
}

// acquire locks the pool for queueing and reports whether it is still open.
// On true the caller must call p.sendMu.RUnlock once its tasks are queued.
func (p *Pool) acquire() bool {
	p.sendMu.RLock()
	if p.closed.Load() {
		p.sendMu.RUnlock()
		return false
	}
	return true
}

// ParallelFor runs fn over [0, n) split into at most NumWorkers contiguous
// chunks and blocks until every chunk has finished.
//
// fn receives (start, end) and must process [start, end).
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || !p.acquire() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for start := 0; start < n; start += chunk {
		end := min(start+chunk, n)
		wg.Add(1)
		p.workC <- task{fn: func() { fn(start, end) }, done: &wg}
	}
	p.sendMu.RUnlock()
	wg.Wait()
}

// ParallelForAtomic runs fn(i) for every i in [0, n), with workers claiming
// indices one at a time from a shared counter. It blocks until all indices
// are processed. Use it when per-index cost varies, e.g. padded edge blocks.
func (p *Pool) ParallelForAtomic(n int, fn func(i int)) {
	if n <= 0 {
		return
	}

	workers := min(p.numWorkers, n)
	if workers == 1 || !p.acquire() {
		for i := range n {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		p.workC <- task{
			fn: func() {
				for {
					i := int(next.Add(1)) - 1
					if i >= n {
						return
					}
					fn(i)
				}
			},
			done: &wg,
		}
	}
	p.sendMu.RUnlock()
	wg.Wait()
}
