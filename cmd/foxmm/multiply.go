// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/ajroetker/foxmm/fox"
)

type multiplyOpts struct {
	n         int
	seed      int64
	aFile     string
	bFile     string
	outFile   string
	verify    bool
	tolerance float64
	print     bool
}

func newMultiplyCmd(a *app) *cobra.Command {
	var o multiplyOpts
	cmd := &cobra.Command{
		Use:   "multiply",
		Short: "Multiply two n x n matrices",
		Long: `Multiply two n x n matrices with the Fox algorithm.

Operands are read from raw files of little-endian float64 values (--a, --b),
or generated from --seed when no files are given. The product can be written
in the same format with --out and checked against gonum with --verify.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runMultiply(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&o.n, "n", "n", 256, "matrix side")
	f.Int64Var(&o.seed, "seed", 1, "seed for generated operands")
	f.StringVar(&o.aFile, "a", "", "raw float64 file for A")
	f.StringVar(&o.bFile, "b", "", "raw float64 file for B")
	f.StringVar(&o.outFile, "out", "", "write the product as raw float64 to this file")
	f.BoolVar(&o.verify, "verify", false, "compare the product against gonum")
	f.Float64Var(&o.tolerance, "tolerance", 1e-9, "relative tolerance for --verify")
	f.BoolVar(&o.print, "print", false, "print the product (small n only)")
	return cmd
}

func (a *app) runMultiply(out io.Writer, o multiplyOpts) error {
	if (o.aFile == "") != (o.bFile == "") {
		return errors.New("--a and --b must be given together")
	}

	var am, bm fox.Matrix
	var err error
	if o.aFile != "" {
		if am, err = readMatrix(o.aFile, o.n); err != nil {
			return err
		}
		if bm, err = readMatrix(o.bFile, o.n); err != nil {
			return err
		}
	} else {
		rng := rand.New(rand.NewSource(o.seed))
		am, bm = randomMatrix(rng, o.n), randomMatrix(rng, o.n)
	}

	e, err := a.engine()
	if err != nil {
		return err
	}
	defer e.Close()

	start := time.Now()
	cm, err := e.MultiplyMatrix(am, bm)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	g, err := e.Grid(cm.Rows)
	if err != nil {
		return err
	}
	a.log.WithFields(logrus.Fields{
		"n":        g.N,
		"q":        g.Q,
		"k":        g.K,
		"strategy": e.Strategy().String(),
		"elapsed":  elapsed,
	}).Info("multiply done")
	fmt.Fprintf(out, "n=%d grid=%dx%d block=%d strategy=%s time=%v\n",
		g.N, g.Q, g.Q, g.K, e.Strategy(), elapsed)

	if o.verify {
		maxErr := verify(am, bm, cm)
		fmt.Fprintf(out, "max relative error vs gonum: %.3g\n", maxErr)
		if maxErr > o.tolerance {
			return fmt.Errorf("verification failed: %.3g exceeds tolerance %.3g", maxErr, o.tolerance)
		}
	}
	if o.print {
		fmt.Fprintf(out, "%v\n", mat.Formatted(mat.NewDense(cm.Rows, cm.Cols, cm.Data), mat.Squeeze()))
	}
	if o.outFile != "" {
		if err := os.WriteFile(o.outFile, cm.Bytes(), 0o644); err != nil {
			return fmt.Errorf("write product: %w", err)
		}
	}
	return nil
}

// readMatrix loads an n x n operand, checking the declared element count
// against the file size.
func readMatrix(path string, n int) (fox.Matrix, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return fox.Matrix{}, fmt.Errorf("read operand: %w", err)
	}
	m, err := fox.MatrixFromBytes(buf, n, n)
	if err != nil {
		return fox.Matrix{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

func randomMatrix(rng *rand.Rand, n int) fox.Matrix {
	m := fox.Matrix{Rows: n, Cols: n, Data: make([]float64, max(n, 0)*max(n, 0))}
	for i := range m.Data {
		m.Data[i] = rng.Float64()*2 - 1
	}
	return m
}

// verify returns the largest element-wise error of c against gonum's
// product, relative to max(1, |expected|).
func verify(a, b, c fox.Matrix) float64 {
	var want mat.Dense
	want.Mul(mat.NewDense(a.Rows, a.Cols, a.Data), mat.NewDense(b.Rows, b.Cols, b.Data))
	var maxErr float64
	for i := range c.Rows {
		for j := range c.Cols {
			w := want.At(i, j)
			maxErr = max(maxErr, math.Abs(c.At(i, j)-w)/max(1, math.Abs(w)))
		}
	}
	return maxErr
}
