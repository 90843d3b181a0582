// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Command foxmm multiplies square matrices with the Fox block algorithm.
//
// Usage:
//
//	foxmm grid -n 1000 -p 16                  # show the process grid
//	foxmm multiply -n 512 --verify            # random operands, check against gonum
//	foxmm multiply -n 3 --a a.bin --b b.bin --out c.bin
//	foxmm bench --sizes 128,256 --strategies shared,mpi
//	foxmm info                                # platform and worker discovery
//
// Settings come from flags, FOX_* environment variables, an optional .env
// file (--env-file) and an optional YAML file (--config).
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
