// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

//go:build !linux

package platform

// affinityCPUs is not available on this OS; Workers falls back to GOMAXPROCS.
func affinityCPUs() int {
	return 0
}
