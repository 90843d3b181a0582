// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package platform

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWorkersWithinGOMAXPROCS(t *testing.T) {
	t.Setenv(WorkersEnv, "")
	w := Workers()
	require.GreaterOrEqual(t, w, 1)
	require.LessOrEqual(t, w, runtime.GOMAXPROCS(0))
}

func TestWorkersEnvOverride(t *testing.T) {
	t.Setenv(WorkersEnv, "37")
	require.Equal(t, 37, Workers())
}

func TestWorkersEnvIgnoresGarbage(t *testing.T) {
	for _, val := range []string{"zero", "0", "-4"} {
		t.Setenv(WorkersEnv, val)
		require.GreaterOrEqual(t, Workers(), 1, "FOX_WORKERS=%q", val)
		require.LessOrEqual(t, Workers(), runtime.GOMAXPROCS(0), "FOX_WORKERS=%q", val)
	}
}

func TestDetect(t *testing.T) {
	r := Detect()
	require.Equal(t, runtime.GOOS, r.GOOS)
	require.Equal(t, runtime.GOARCH, r.GOARCH)
	require.Positive(t, r.NumCPU)
	require.Positive(t, r.Workers)
	if runtime.GOOS == "linux" {
		require.Positive(t, r.Affinity)
	}
	if runtime.GOARCH == "amd64" {
		require.NotEmpty(t, r.Features)
		require.Equal(t, "SSE2", r.Features[0].Name)
		require.True(t, r.Features[0].Present)
	}
}
