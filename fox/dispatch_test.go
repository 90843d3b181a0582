// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseStrategy(t *testing.T) {
	testCases := map[string]Strategy{
		"shared":          Shared,
		"POOL":            Shared,
		" threads ":       Shared,
		"message-passing": MessagePassing,
		"MPI":             MessagePassing,
		"sequential":      Sequential,
		"seq":             Sequential,
	}
	for name, want := range testCases {
		got, err := ParseStrategy(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	_, err := ParseStrategy("gpu")
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestStrategyString(t *testing.T) {
	for _, s := range Strategies() {
		require.True(t, s.Valid())
		back, err := ParseStrategy(s.String())
		require.NoError(t, err)
		require.Equal(t, s, back)
	}
	require.False(t, Strategy(-1).Valid())
	require.Equal(t, "Strategy(9)", Strategy(9).String())
}

func TestDefaultStrategy(t *testing.T) {
	t.Setenv(StrategyEnv, "")
	require.Equal(t, Shared, DefaultStrategy())

	t.Setenv(StrategyEnv, "mpi")
	require.Equal(t, MessagePassing, DefaultStrategy())

	t.Setenv(StrategyEnv, "bogus")
	require.Equal(t, Shared, DefaultStrategy())
}
