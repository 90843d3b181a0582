// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajroetker/foxmm/fox"
)

func newGridCmd(a *app) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Print the process grid chosen for an n x n product",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := a.cfg.ResolvedWorkers()
			g, err := fox.MapGrid(n, p)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "workers: %d\n", p)
			fmt.Fprintf(out, "grid:    %d x %d (%d cells)\n", g.Q, g.Q, g.Cells())
			fmt.Fprintf(out, "block:   %d x %d\n", g.K, g.K)
			fmt.Fprintf(out, "padding: %d\n", g.Q*g.K-g.N)
			return nil
		},
	}
	cmd.Flags().IntVarP(&n, "n", "n", 1024, "matrix side")
	return cmd
}
