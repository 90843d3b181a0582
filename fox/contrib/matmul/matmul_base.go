// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package matmul

// Naive computes C = A * B with the textbook triple loop.
// C[i,j] = sum(A[i,p] * B[p,j]) for p in 0..K-1
//
//   - A is M x K (row-major)
//   - B is K x N (row-major)
//   - C is M x N (row-major), overwritten
//
// It is the single-threaded baseline and the reference the other kernels
// are tested against.
func Naive(a, b, c []float64, m, n, k int) {
	checkLens(a, b, c, m, n, k)

	for i := range c[:m*n] {
		c[i] = 0
	}
	for i := range m {
		cRow := c[i*n : (i+1)*n]
		for p := range k {
			aip := a[i*k+p]
			bRow := b[p*n : (p+1)*n]
			for j := range n {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}

// BlockMulAdd accumulates C += A * B on square tiles of side stride.
//
// All three tiles are stride x stride, row-major with row stride `stride`.
// Only C[0:rows, 0:cols] is updated and only A[0:rows, 0:inner] and
// B[0:inner, 0:cols] are read, so the padded margin of an edge tile is
// never visited. Extents must satisfy 0 <= rows, cols, inner <= stride.
func BlockMulAdd(c, a, b []float64, stride, rows, cols, inner int) {
	if rows < 0 || cols < 0 || inner < 0 || rows > stride || cols > stride || inner > stride {
		panic("matmul: block extent out of range")
	}
	need := stride * stride
	if len(a) < need {
		panic("matmul: A block too short")
	}
	if len(b) < need {
		panic("matmul: B block too short")
	}
	if len(c) < need {
		panic("matmul: C block too short")
	}

	for i := range rows {
		cRow := c[i*stride : i*stride+cols]
		aRow := a[i*stride : i*stride+inner]
		for p, aip := range aRow {
			bRow := b[p*stride : p*stride+cols]
			for j := range cRow {
				cRow[j] += aip * bRow[j]
			}
		}
	}
}

func checkLens(a, b, c []float64, m, n, k int) {
	if len(a) < m*k {
		panic("matmul: A slice too short")
	}
	if len(b) < k*n {
		panic("matmul: B slice too short")
	}
	if len(c) < m*n {
		panic("matmul: C slice too short")
	}
}
