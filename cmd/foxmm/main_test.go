// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ajroetker/foxmm/fox"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"FOX_WORKERS", "FOX_STRATEGY", "FOX_LOG_LEVEL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append(args, "--env-file", writeEnvFile(t)))
	err := cmd.Execute()
	return out.String(), err
}

// writeEnvFile returns an empty env file so tests never pick up a stray .env.
func writeEnvFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	return path
}

func TestGridCommand(t *testing.T) {
	out, err := run(t, "grid", "-n", "10", "--workers", "9")
	require.NoError(t, err)
	require.Contains(t, out, "workers: 9")
	require.Contains(t, out, "grid:    3 x 3 (9 cells)")
	require.Contains(t, out, "block:   4 x 4")
	require.Contains(t, out, "padding: 2")
}

func TestGridCommandDegenerate(t *testing.T) {
	_, err := run(t, "grid", "-n", "0")
	require.ErrorIs(t, err, fox.ErrDegenerateGrid)
}

func TestMultiplyCommandVerify(t *testing.T) {
	for _, s := range []string{"shared", "mpi", "seq"} {
		out, err := run(t, "multiply", "-n", "37", "-p", "16", "--strategy", s, "--verify", "--log-level", "error")
		require.NoError(t, err, s)
		require.Contains(t, out, "n=37 grid=4x4 block=10")
		require.Contains(t, out, "max relative error vs gonum")
	}
}

func TestMultiplyCommandFiles(t *testing.T) {
	dir := t.TempDir()
	a, err := fox.NewMatrix(2, 2, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	b, err := fox.NewMatrix(2, 2, []float64{5, 6, 7, 8})
	require.NoError(t, err)
	aPath, bPath, cPath := filepath.Join(dir, "a.bin"), filepath.Join(dir, "b.bin"), filepath.Join(dir, "c.bin")
	require.NoError(t, os.WriteFile(aPath, a.Bytes(), 0o644))
	require.NoError(t, os.WriteFile(bPath, b.Bytes(), 0o644))

	out, err := run(t, "multiply", "-n", "2", "--a", aPath, "--b", bPath, "--out", cPath, "--print", "--log-level", "error")
	require.NoError(t, err)
	require.Contains(t, out, "19")

	raw, err := os.ReadFile(cPath)
	require.NoError(t, err)
	c, err := fox.MatrixFromBytes(raw, 2, 2)
	require.NoError(t, err)
	require.Equal(t, []float64{19, 22, 43, 50}, c.Data)
}

func TestMultiplyCommandErrors(t *testing.T) {
	dir := t.TempDir()
	short := filepath.Join(dir, "short.bin")
	require.NoError(t, os.WriteFile(short, make([]byte, 24), 0o644))

	_, err := run(t, "multiply", "-n", "2", "--a", short, "--b", short)
	require.ErrorIs(t, err, fox.ErrBadEncoding)

	_, err = run(t, "multiply", "-n", "2", "--a", short)
	require.Error(t, err)

	_, err = run(t, "multiply", "-n", "4", "--strategy", "gpu")
	require.ErrorIs(t, err, fox.ErrUnknownStrategy)
}

func TestBenchCommand(t *testing.T) {
	out, err := run(t, "bench", "--sizes", "8,16,8", "--strategies", "shared,seq,shared", "--repeat", "1", "-p", "4", "--log-level", "error")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	// Header, then (2 strategies + baseline) x 2 sizes.
	require.Len(t, lines, 1+3*2)
	require.Contains(t, out, "row-strip")
	require.Contains(t, out, "sequential")
}

func TestBenchCommandRejectsBadRepeat(t *testing.T) {
	_, err := run(t, "bench", "--sizes", "8", "--repeat", "0")
	require.ErrorContains(t, err, "--repeat")
}

func TestInfoCommand(t *testing.T) {
	out, err := run(t, "info", "--strategy", "mpi")
	require.NoError(t, err)
	require.Contains(t, out, "GOARCH:")
	require.Contains(t, strings.ToLower(out), "* message-passing")
	require.Contains(t, out, "  Shared")
}
