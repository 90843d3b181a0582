// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"math/rand"
	"slices"
	"text/tabwriter"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/ajroetker/foxmm/fox"
	"github.com/ajroetker/foxmm/fox/contrib/matmul"
	"github.com/ajroetker/foxmm/fox/contrib/workerpool"
)

type benchOpts struct {
	sizes      []int
	strategies []string
	repeat     int
	baseline   bool
}

func newBenchCmd(a *app) *cobra.Command {
	var o benchOpts
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time the Fox strategies against the row-strip baseline",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBench(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.IntSliceVar(&o.sizes, "sizes", []int{128, 256, 512}, "matrix sides to time")
	f.StringSliceVar(&o.strategies, "strategies",
		lo.Map(fox.Strategies(), func(s fox.Strategy, _ int) string { return s.String() }),
		"strategies to time")
	f.IntVar(&o.repeat, "repeat", 3, "runs per measurement; the fastest is reported")
	f.BoolVar(&o.baseline, "baseline", true, "also time the row-strip parallel baseline")
	return cmd
}

func (a *app) runBench(out io.Writer, o benchOpts) error {
	if o.repeat < 1 {
		return fmt.Errorf("--repeat must be at least 1, got %d", o.repeat)
	}
	strategies := make([]fox.Strategy, 0, len(o.strategies))
	for _, name := range lo.Uniq(o.strategies) {
		s, err := fox.ParseStrategy(name)
		if err != nil {
			return err
		}
		strategies = append(strategies, s)
	}
	strategies = lo.Uniq(strategies)
	sizes := lo.Filter(lo.Uniq(o.sizes), func(n int, _ int) bool { return n > 0 })
	slices.Sort(sizes)

	workers := a.cfg.ResolvedWorkers()
	pool := workerpool.New(workers)
	defer pool.Close()

	engines := make([]*fox.Engine, 0, len(strategies))
	for _, s := range strategies {
		e, err := a.engine(fox.WithStrategy(s), fox.WithPool(pool), fox.WithWorkers(workers))
		if err != nil {
			return err
		}
		defer e.Close()
		engines = append(engines, e)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "n\tgrid\tmethod\tbest\tGFLOP/s")
	rng := rand.New(rand.NewSource(1))
	for _, n := range sizes {
		am, bm := randomMatrix(rng, n), randomMatrix(rng, n)
		c := make([]float64, n*n)
		g, err := fox.MapGrid(n, workers)
		if err != nil {
			return err
		}
		gridCol := fmt.Sprintf("%dx%d", g.Q, g.Q)

		for _, e := range engines {
			best, err := timeBest(o.repeat, func() error {
				return e.Multiply(am.Data, bm.Data, c, n)
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%d\t%s\t%s\t%v\t%.2f\n", n, gridCol, e.Strategy(), best, gflops(n, best))
		}
		if o.baseline {
			best, err := timeBest(o.repeat, func() error {
				matmul.ParallelMatMul(pool, am.Data, bm.Data, c, n, n, n)
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(tw, "%d\t-\trow-strip\t%v\t%.2f\n", n, best, gflops(n, best))
		}
	}
	return tw.Flush()
}

func timeBest(repeat int, fn func() error) (time.Duration, error) {
	best := time.Duration(0)
	for i := range repeat {
		start := time.Now()
		if err := fn(); err != nil {
			return 0, err
		}
		if d := time.Since(start); i == 0 || d < best {
			best = d
		}
	}
	return best, nil
}

func gflops(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return 2 * float64(n) * float64(n) * float64(n) / d.Seconds() / 1e9
}
