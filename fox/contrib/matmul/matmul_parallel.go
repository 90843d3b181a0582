// Copyright 2024 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package matmul

import "github.com/ajroetker/foxmm/fox/contrib/workerpool"

// Parallel tuning parameters
const (
	// MinParallelOps is the minimum number of multiply-adds before the
	// row-strip baseline leaves the calling goroutine.
	MinParallelOps = 64 * 64 * 64

	// RowsPerStrip is how many rows of C one task computes.
	RowsPerStrip = 16
)

// ParallelMatMul computes C = A * B by splitting C into horizontal strips of
// RowsPerStrip rows and running Naive on runs of strips over pool.
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major)
//
// It is the plain data-parallel baseline the Fox engine is compared against.
// A nil pool, or a product smaller than MinParallelOps, runs inline.
func ParallelMatMul(pool *workerpool.Pool, a, b, c []float64, m, n, k int) {
	if pool == nil || m*n*k < MinParallelOps {
		Naive(a, b, c, m, n, k)
		return
	}
	checkLens(a, b, c, m, n, k)

	// Strips cost the same, so each worker takes one contiguous run of them.
	numStrips := (m + RowsPerStrip - 1) / RowsPerStrip
	pool.ParallelFor(numStrips, func(start, end int) {
		rowStart := start * RowsPerStrip
		rowEnd := min(end*RowsPerStrip, m)
		Naive(a[rowStart*k:rowEnd*k], b, c[rowStart*n:rowEnd*n], rowEnd-rowStart, n, k)
	})
}
