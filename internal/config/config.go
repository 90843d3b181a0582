// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package config loads engine settings from defaults, an optional YAML file,
// FOX_* environment variables (optionally seeded from a .env file) and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ajroetker/foxmm/fox"
	"github.com/ajroetker/foxmm/internal/platform"
)

// EnvPrefix is shared with fox.StrategyEnv and platform.WorkersEnv so one
// variable name means the same thing everywhere.
const EnvPrefix = "FOX"

// Keys.
const (
	KeyWorkers  = "workers"
	KeyStrategy = "strategy"
	KeyLogLevel = "log_level"
)

// Config is the resolved configuration.
type Config struct {
	Workers  int    `mapstructure:"workers"`
	Strategy string `mapstructure:"strategy"`
	LogLevel string `mapstructure:"log_level"`
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyStrategy, fox.Shared.String())
	v.SetDefault(KeyLogLevel, logrus.InfoLevel.String())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags registers the configuration flags on fs and binds them to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	fs.IntP(KeyWorkers, "p", 0, "parallel width P (0 = detect from CPU affinity)")
	fs.StringP(KeyStrategy, "s", fox.Shared.String(), "fox stepper: shared, message-passing or sequential")
	fs.String("log-level", logrus.InfoLevel.String(), "log level (debug, info, warn, error)")

	for key, flag := range map[string]string{
		KeyWorkers:  KeyWorkers,
		KeyStrategy: KeyStrategy,
		KeyLogLevel: "log-level",
	} {
		if err := v.BindPFlag(key, fs.Lookup(flag)); err != nil {
			return fmt.Errorf("config: bind flag %q: %w", flag, err)
		}
	}
	return nil
}

// LoadDotEnv seeds the process environment from a .env style file. Variables
// already set win. A missing file is not an error unless required.
func LoadDotEnv(path string, required bool) error {
	err := godotenv.Load(path)
	if err == nil || (!required && errors.Is(err, fs.ErrNotExist)) {
		return nil
	}
	return fmt.Errorf("config: load env file %q: %w", path, err)
}

// Load reads the optional YAML file into v and returns the resolved and
// validated configuration.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %q: %w", file, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("config: workers=%d must not be negative", c.Workers)
	}
	if _, err := fox.ParseStrategy(c.Strategy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ResolvedWorkers returns the configured P, or the detected one when unset.
func (c Config) ResolvedWorkers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return platform.Workers()
}

// Logger builds a text logger at the configured level.
func (c Config) Logger() (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	log := logrus.New()
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return log, nil
}

// EngineOptions translates c into fox options.
func (c Config) EngineOptions(log logrus.FieldLogger) ([]fox.Option, error) {
	s, err := fox.ParseStrategy(c.Strategy)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return []fox.Option{
		fox.WithWorkers(c.ResolvedWorkers()),
		fox.WithStrategy(s),
		fox.WithLogger(log),
	}, nil
}
