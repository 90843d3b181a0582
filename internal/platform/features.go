// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package platform

import (
	"runtime"

	"golang.org/x/sys/cpu"
)

// Feature is one named CPU capability and whether it was detected.
type Feature struct {
	Name    string
	Present bool
	Note    string
}

// Report summarizes the runtime environment.
type Report struct {
	GOOS       string
	GOARCH     string
	NumCPU     int
	GOMAXPROCS int
	Affinity   int // 0 when unknown
	Workers    int
	Features   []Feature
}

// Detect builds a Report for the current process.
func Detect() Report {
	return Report{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Affinity:   affinityCPUs(),
		Workers:    Workers(),
		Features:   Features(),
	}
}

// Features lists the CPU features relevant to float64 block kernels for the
// running architecture. Other architectures get an empty list.
func Features() []Feature {
	switch runtime.GOARCH {
	case "amd64", "386":
		return []Feature{
			{"SSE2", cpu.X86.HasSSE2, "baseline"},
			{"SSE4.1", cpu.X86.HasSSE41, ""},
			{"AVX", cpu.X86.HasAVX, ""},
			{"AVX2", cpu.X86.HasAVX2, ""},
			{"FMA", cpu.X86.HasFMA, "fused multiply-add"},
			{"AVX512F", cpu.X86.HasAVX512F, ""},
		}
	case "arm64":
		return []Feature{
			{"ASIMD", cpu.ARM64.HasASIMD, "NEON baseline"},
			{"FP", cpu.ARM64.HasFP, ""},
			{"SVE", cpu.ARM64.HasSVE, "Scalable Vector Extension"},
			{"SVE2", cpu.ARM64.HasSVE2, ""},
			{"ATOMICS", cpu.ARM64.HasATOMICS, "Large System Extensions"},
		}
	default:
		return nil
	}
}
