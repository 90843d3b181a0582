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

// Package matmul provides the float64 kernels used by the Fox engine:
// a bounded multiply-accumulate on square blocks, a naive reference
// product, and a row-strip parallel baseline.
//
// Example usage:
//
//	// C = A * B where A is MxK, B is KxN, C is MxN
//	a := make([]float64, M*K) // row-major
//	b := make([]float64, K*N) // row-major
//	c := make([]float64, M*N) // output, row-major
//
//	matmul.Naive(a, b, c, M, N, K)
//
// Block kernels work on k x k tiles stored contiguously with stride k. Only
// the leading rows x inner x cols corner is touched, so zero-padded edges of
// a tile cost nothing.
package matmul
