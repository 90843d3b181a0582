// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ajroetker/foxmm/fox/contrib/workerpool"
	"github.com/ajroetker/foxmm/internal/platform"
)

// Engine multiplies square matrices with the Fox algorithm. An Engine is
// safe for concurrent use; runs share its worker pool but no block storage.
type Engine struct {
	workers    int
	workersSet bool
	strategy   Strategy
	pool       *workerpool.Pool
	ownsPool   bool
	log        logrus.FieldLogger
	stepper    stepper
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the parallel width P used to size the grid and, for the
// Shared strategy, the worker pool. P must be positive.
func WithWorkers(p int) Option {
	return func(e *Engine) {
		e.workers = p
		e.workersSet = true
	}
}

// WithStrategy selects the stepper. The default comes from DefaultStrategy.
func WithStrategy(s Strategy) Option {
	return func(e *Engine) {
		e.strategy = s
	}
}

// WithLogger sets the logger for grid selection and per-step progress, both
// logged at debug level. The default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithPool makes the Shared strategy run on an existing pool. The Engine
// does not close it. Unless WithWorkers is also given, P is the pool size.
func WithPool(pool *workerpool.Pool) Option {
	return func(e *Engine) {
		e.pool = pool
	}
}

// New builds an Engine. Without WithWorkers, P is discovered from the
// runtime environment (CPU affinity, capped by GOMAXPROCS).
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		strategy: DefaultStrategy(),
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if !e.workersSet {
		if e.pool != nil {
			e.workers = e.pool.NumWorkers()
		} else {
			e.workers = platform.Workers()
		}
	}
	if e.workers <= 0 {
		return nil, fmt.Errorf("new engine: workers=%d: %w: %w", e.workers, ErrDegenerateGrid, ErrNoWorkers)
	}
	if !e.strategy.Valid() {
		return nil, fmt.Errorf("new engine: %v: %w", e.strategy, ErrUnknownStrategy)
	}

	log := e.log.WithField("strategy", e.strategy.String())
	switch e.strategy {
	case Shared:
		if e.pool == nil {
			e.pool = workerpool.New(e.workers)
			e.ownsPool = true
		}
		e.stepper = &sharedStepper{pool: e.pool, log: log}
	case MessagePassing:
		e.stepper = &messagePassingStepper{log: log}
	case Sequential:
		e.stepper = &sequentialStepper{log: log}
	}
	return e, nil
}

// Close releases the worker pool if the Engine created it.
func (e *Engine) Close() {
	if e.ownsPool {
		e.pool.Close()
	}
}

// Workers returns the parallel width P.
func (e *Engine) Workers() int {
	return e.workers
}

// Strategy returns the configured strategy.
func (e *Engine) Strategy() Strategy {
	return e.strategy
}

// Grid returns the grid the Engine would use for an n x n product.
func (e *Engine) Grid(n int) (Grid, error) {
	return MapGrid(n, e.workers)
}

// Multiply computes c = a * b for n x n row-major matrices. a and b must
// hold at least n*n elements and c must have room for n*n; only c[:n*n] is
// written. On error c is not modified.
func (e *Engine) Multiply(a, b, c []float64, n int) error {
	g, err := e.Grid(n)
	if err != nil {
		return err
	}
	if !holdsSquare(c, n) {
		return fmt.Errorf("multiply: output has %d elements, need %dx%d: %w", len(c), n, n, ErrShortBuffer)
	}

	aBlocks, bBlocks, err := Distribute(a, b, g)
	if err != nil {
		return err
	}
	log := e.log.WithFields(logrus.Fields{
		"n":        g.N,
		"q":        g.Q,
		"k":        g.K,
		"workers":  e.workers,
		"strategy": e.strategy.String(),
	})
	log.Debug("fox multiply start")

	acc, err := e.stepper.run(g, aBlocks, bBlocks)
	if err != nil {
		return fmt.Errorf("multiply: %w", err)
	}
	if err := Gather(acc, g, c); err != nil {
		return err
	}
	log.Debug("fox multiply done")
	return nil
}

// MultiplyMatrix validates a and b and returns their product.
func (e *Engine) MultiplyMatrix(a, b Matrix) (Matrix, error) {
	if err := ValidateOperands(a, b); err != nil {
		return Matrix{}, err
	}
	n := a.Rows
	c := make([]float64, n*n)
	if err := e.Multiply(a.Data, b.Data, c, n); err != nil {
		return Matrix{}, err
	}
	return Matrix{Rows: n, Cols: n, Data: c}, nil
}

// Multiply is a one-shot helper: it builds an Engine with the given number of
// workers and the default strategy, multiplies, and closes the Engine.
func Multiply(a, b []float64, n, workers int) ([]float64, error) {
	e, err := New(WithWorkers(workers))
	if err != nil {
		return nil, err
	}
	defer e.Close()

	// Shapes are checked before c is sized from n.
	if _, err := e.Grid(n); err != nil {
		return nil, err
	}
	if err := checkOperands(a, b, n); err != nil {
		return nil, fmt.Errorf("multiply: %w", err)
	}
	c := make([]float64, n*n)
	if err := e.Multiply(a, b, c, n); err != nil {
		return nil, err
	}
	return c, nil
}
