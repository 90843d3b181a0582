// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package platform discovers the parallel width and CPU features of the
// machine the engine runs on.
package platform

import (
	"os"
	"runtime"
	"strconv"
)

// WorkersEnv overrides worker discovery when set to a positive integer.
const WorkersEnv = "FOX_WORKERS"

// Workers returns the parallel width P available to this process: the
// FOX_WORKERS override if set, else the number of CPUs in the affinity mask
// (where the OS exposes one) capped by GOMAXPROCS. Always >= 1.
func Workers() int {
	if val := os.Getenv(WorkersEnv); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			return n
		}
	}
	procs := runtime.GOMAXPROCS(0)
	if n := affinityCPUs(); n > 0 && n < procs {
		procs = n
	}
	return max(procs, 1)
}
