// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package fox multiplies square float64 matrices with the Fox algorithm on a
// virtual q x q process grid.
//
// A run goes through four phases:
//
//  1. MapGrid picks the grid side q = floor(sqrt(min(P, n))) and the block
//     side k = ceil(n / q) for P workers and an n x n product.
//  2. Distribute cuts A and B into q*q zero-padded k x k blocks, one of each
//     per grid cell.
//  3. A stepper runs q steps. At step s, row i uses the A block in column
//     (i + s) mod q, every cell multiplies it by its current B block into
//     its accumulator, and B blocks move one row up within their column.
//  4. Gather copies each accumulator back into the row-major result,
//     dropping the padding.
//
// Three steppers realize step 3: Shared (a persistent worker pool with a
// barrier after each step), MessagePassing (one goroutine per cell that
// exchanges blocks over channels) and Sequential (a single goroutine that
// rotates the broadcaster index instead of moving B). They produce identical
// results.
//
// Example usage:
//
//	eng, err := fox.New(fox.WithWorkers(16))
//	if err != nil {
//	    return err
//	}
//	defer eng.Close()
//
//	c := make([]float64, n*n)
//	if err := eng.Multiply(a, b, c, n); err != nil {
//	    return err
//	}
//
// On error the output buffer is left untouched.
package fox
