// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package fox

import (
	"fmt"
	"os"
	"strings"
)

// Strategy selects how the Fox steps are executed.
type Strategy int

const (
	// Shared runs one task per grid cell per step on a persistent worker
	// pool; the pool's parallel-for return is the step barrier. B blocks are
	// shifted by rotating block references after each step.
	Shared Strategy = iota

	// MessagePassing runs one goroutine per grid cell. Each goroutine owns its
	// blocks, receives the broadcast A block over its row channel, hands its
	// B block to the cell above and waits on a cyclic barrier between steps.
	MessagePassing

	// Sequential runs the schedule on the calling goroutine and selects the
	// B block by rotating the broadcaster index instead of moving blocks.
	Sequential
)

// StrategyEnv names the environment variable consulted by DefaultStrategy.
const StrategyEnv = "FOX_STRATEGY"

var strategyNames = map[Strategy]string{
	Shared:         "shared",
	MessagePassing: "message-passing",
	Sequential:     "sequential",
}

var strategyAliases = map[string]Strategy{
	"shared":          Shared,
	"pool":            Shared,
	"threads":         Shared,
	"message-passing": MessagePassing,
	"messagepassing":  MessagePassing,
	"mpi":             MessagePassing,
	"sequential":      Sequential,
	"seq":             Sequential,
}

// String returns the canonical name of s.
func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool {
	_, ok := strategyNames[s]
	return ok
}

// Strategies lists all strategies in declaration order.
func Strategies() []Strategy {
	return []Strategy{Shared, MessagePassing, Sequential}
}

// ParseStrategy maps a strategy name or alias (case-insensitive) to a
// Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s, ok := strategyAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Shared, fmt.Errorf("parse strategy %q: %w", name, ErrUnknownStrategy)
	}
	return s, nil
}

// DefaultStrategy returns the strategy named by FOX_STRATEGY, or Shared when
// the variable is unset or unrecognized.
func DefaultStrategy() Strategy {
	val := os.Getenv(StrategyEnv)
	if val == "" {
		return Shared
	}
	s, err := ParseStrategy(val)
	if err != nil {
		return Shared
	}
	return s
}
