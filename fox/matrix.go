// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"encoding/binary"
	"fmt"
	"math"
)

// float64Size is the encoded size of one element in a raw buffer.
const float64Size = 8

// holdsSquare reports whether buf has room for an n x n matrix. It divides
// instead of forming n*n, which can overflow for a bogus n.
func holdsSquare(buf []float64, n int) bool {
	return n > 0 && len(buf)/n >= n
}

// hasElems reports whether count is exactly rows*cols, without overflow.
func hasElems(count, rows, cols int) bool {
	if rows == 0 || cols == 0 {
		return count == 0
	}
	return count%cols == 0 && count/cols == rows
}

// Matrix is a typed, length-checked row-major view over float64 data.
// Construct it once at the boundary with NewMatrix or MatrixFromBytes and
// pass it around instead of re-deriving shapes from raw buffers.
type Matrix struct {
	Rows, Cols int
	Data       []float64
}

// NewMatrix wraps data as a rows x cols matrix. len(data) must equal
// rows*cols exactly.
func NewMatrix(rows, cols int, data []float64) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, fmt.Errorf("new matrix %dx%d: %w", rows, cols, ErrDimensionMismatch)
	}
	if !hasElems(len(data), rows, cols) {
		return Matrix{}, fmt.Errorf("new matrix %dx%d: %d elements: %w", rows, cols, len(data), ErrDimensionMismatch)
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}, nil
}

// MatrixFromBytes decodes buf as rows*cols little-endian IEEE-754 doubles.
// The buffer must hold exactly that many elements.
func MatrixFromBytes(buf []byte, rows, cols int) (Matrix, error) {
	if rows < 0 || cols < 0 {
		return Matrix{}, fmt.Errorf("decode matrix %dx%d: %w", rows, cols, ErrDimensionMismatch)
	}
	if len(buf)%float64Size != 0 || !hasElems(len(buf)/float64Size, rows, cols) {
		return Matrix{}, fmt.Errorf("decode matrix %dx%d: %d bytes is not %d x %d x %d: %w",
			rows, cols, len(buf), rows, cols, float64Size, ErrBadEncoding)
	}
	data := make([]float64, len(buf)/float64Size)
	for i := range data {
		data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[i*float64Size:]))
	}
	return Matrix{Rows: rows, Cols: cols, Data: data}, nil
}

// Bytes encodes m as little-endian IEEE-754 doubles, the inverse of
// MatrixFromBytes.
func (m Matrix) Bytes() []byte {
	buf := make([]byte, len(m.Data)*float64Size)
	for i, v := range m.Data {
		binary.LittleEndian.PutUint64(buf[i*float64Size:], math.Float64bits(v))
	}
	return buf
}

// Square reports whether m is square.
func (m Matrix) Square() bool {
	return m.Rows == m.Cols
}

// At returns element (i, j).
func (m Matrix) At(i, j int) float64 {
	return m.Data[i*m.Cols+j]
}

// Identity returns the n x n identity matrix.
func Identity(n int) Matrix {
	m := Matrix{Rows: n, Cols: n, Data: make([]float64, n*n)}
	for i := range n {
		m.Data[i*n+i] = 1
	}
	return m
}

// ValidateOperands checks that a and b are square matrices of the same side
// and that their data matches the declared shape. It is the validation step
// run before any computation.
func ValidateOperands(a, b Matrix) error {
	if a.Rows < 0 || a.Cols < 0 || !hasElems(len(a.Data), a.Rows, a.Cols) {
		return fmt.Errorf("validate A: %dx%d with %d elements: %w", a.Rows, a.Cols, len(a.Data), ErrDimensionMismatch)
	}
	if b.Rows < 0 || b.Cols < 0 || !hasElems(len(b.Data), b.Rows, b.Cols) {
		return fmt.Errorf("validate B: %dx%d with %d elements: %w", b.Rows, b.Cols, len(b.Data), ErrDimensionMismatch)
	}
	if !a.Square() {
		return fmt.Errorf("validate A: %dx%d: %w", a.Rows, a.Cols, ErrNonSquare)
	}
	if !b.Square() {
		return fmt.Errorf("validate B: %dx%d: %w", b.Rows, b.Cols, ErrNonSquare)
	}
	if a.Rows != b.Rows {
		return fmt.Errorf("validate: A is %dx%d, B is %dx%d: %w", a.Rows, a.Cols, b.Rows, b.Cols, ErrDimensionMismatch)
	}
	return nil
}
