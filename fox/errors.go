// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import "errors"

// Sentinel errors. Every message carries the "fox: " prefix; call sites wrap
// them with fmt.Errorf("context: %w", ErrX) and callers match with errors.Is.
var (
	// ErrNonSquare is returned when an operand is not a square matrix.
	ErrNonSquare = errors.New("fox: matrix is not square")

	// ErrDimensionMismatch is returned when the operands have different sides,
	// or when a declared shape disagrees with the data backing it.
	ErrDimensionMismatch = errors.New("fox: dimension mismatch")

	// ErrShortBuffer is returned when an input or output buffer holds fewer
	// than n*n elements.
	ErrShortBuffer = errors.New("fox: buffer too short")

	// ErrDegenerateGrid is returned when no process grid can be built, i.e.
	// the matrix side is not positive or no workers are available.
	ErrDegenerateGrid = errors.New("fox: degenerate grid")

	// ErrNoWorkers is returned alongside ErrDegenerateGrid when the parallel
	// width is not positive.
	ErrNoWorkers = errors.New("fox: no workers available")

	// ErrBadEncoding is returned when a raw buffer's length is not exactly the
	// declared element count times 8 bytes.
	ErrBadEncoding = errors.New("fox: bad float64 buffer encoding")

	// ErrUnknownStrategy is returned for an unrecognized strategy name or value.
	ErrUnknownStrategy = errors.New("fox: unknown strategy")

	// ErrProtocol is returned by the message-passing stepper when a block
	// arrives from an unexpected sender or for an unexpected step.
	ErrProtocol = errors.New("fox: message protocol violation")
)
