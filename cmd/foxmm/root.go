// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajroetker/foxmm/fox"
	"github.com/ajroetker/foxmm/internal/config"
)

// app carries the state shared by subcommands once flags are parsed.
type app struct {
	v       *viper.Viper
	cfgFile string
	envFile string

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	root := &cobra.Command{
		Use:           "foxmm",
		Short:         "Fox algorithm block matrix multiplication",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.StringVar(&a.envFile, "env-file", ".env", "file of FOX_* variables to load if present")
	if err := config.BindFlags(a.v, pf); err != nil {
		panic(err)
	}

	root.AddCommand(
		newGridCmd(a),
		newMultiplyCmd(a),
		newBenchCmd(a),
		newInfoCmd(a),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	required := cmd.Flags().Changed("env-file")
	if err := config.LoadDotEnv(a.envFile, required); err != nil {
		return err
	}
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	log, err := cfg.Logger()
	if err != nil {
		return err
	}
	log.SetOutput(cmd.ErrOrStderr())
	a.cfg, a.log = cfg, log
	return nil
}

// engine builds an Engine from the loaded configuration, optionally
// overriding the strategy.
func (a *app) engine(opts ...fox.Option) (*fox.Engine, error) {
	base, err := a.cfg.EngineOptions(a.log)
	if err != nil {
		return nil, err
	}
	return fox.New(append(base, opts...)...)
}
