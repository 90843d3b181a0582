// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ajroetker/foxmm/fox"
	"github.com/ajroetker/foxmm/internal/platform"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Print detected platform, workers and strategies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			r := platform.Detect()

			fmt.Fprintf(out, "GOOS: %s\n", r.GOOS)
			fmt.Fprintf(out, "GOARCH: %s\n", r.GOARCH)
			fmt.Fprintf(out, "NumCPU: %d\n", r.NumCPU)
			fmt.Fprintf(out, "GOMAXPROCS: %d\n", r.GOMAXPROCS)
			if r.Affinity > 0 {
				fmt.Fprintf(out, "Affinity CPUs: %d\n", r.Affinity)
			}
			fmt.Fprintf(out, "Detected workers: %d\n", r.Workers)
			fmt.Fprintf(out, "Configured workers: %d\n", a.cfg.ResolvedWorkers())
			fmt.Fprintln(out)

			if len(r.Features) > 0 {
				fmt.Fprintf(out, "=== golang.org/x/sys/cpu (%s) ===\n", r.GOARCH)
				for _, f := range r.Features {
					note := ""
					if f.Note != "" {
						note = " (" + f.Note + ")"
					}
					fmt.Fprintf(out, "  Has%-8s %v%s\n", f.Name+":", f.Present, note)
				}
				fmt.Fprintln(out)
			}

			current, err := fox.ParseStrategy(a.cfg.Strategy)
			if err != nil {
				return err
			}
			title := cases.Title(language.English)
			fmt.Fprintln(out, "Strategies:")
			for _, s := range fox.Strategies() {
				marker := " "
				if s == current {
					marker = "*"
				}
				fmt.Fprintf(out, " %s %s\n", marker, title.String(s.String()))
			}
			return nil
		},
	}
}
