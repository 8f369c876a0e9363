// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gar

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/lq"
)

func buildScalarProblem(n int) *lq.Problem {
	stages := make([]*lq.Knot, n)
	for i := range stages {
		stages[i] = scalarKnot(1, 1, 2, 0.5)
	}
	prob := lq.NewProblem(0, 1, 1, 0, stages)
	prob.QN.SetSym(0, 0, 2)
	return prob
}

// TestSplitCoversHorizonExactly checks Split's partition covers [0,n) with
// no gaps or overlaps, for a range of leg counts.
func TestSplitCoversHorizonExactly(t *testing.T) {
	for _, test := range []struct{ n, legs int }{
		{20, 4}, {21, 4}, {3, 8}, {1, 4}, {7, 1},
	} {
		bounds := Split(test.n, test.legs)
		if bounds[0] != 0 || bounds[len(bounds)-1] != test.n {
			t.Fatalf("n=%d legs=%d: bounds %v do not span [0,%d)", test.n, test.legs, bounds, test.n)
		}
		for i := 1; i < len(bounds); i++ {
			if bounds[i] <= bounds[i-1] {
				t.Fatalf("n=%d legs=%d: non-increasing bound at %d: %v", test.n, test.legs, i, bounds)
			}
		}
	}
}

// TestBackwardParallelMatchesSerial checks that the parallel-condensation
// backward pass approximately reproduces the serial Riccati sweep's
// rollout. The leg boundaries are glued with an augmented-Lagrangian
// penalty of strength mudyn rather than an exact equality, so the two
// sweeps agree only in the mudyn -> 0 limit; the test uses a small mudyn
// for the leg-gluing penalty and a matching loose tolerance.
func TestBackwardParallelMatchesSerial(t *testing.T) {
	const n = 12
	const legMudyn = 1e-6
	x0 := mat.NewVecDense(1, []float64{1})

	serialProb := buildScalarProblem(n)
	serialData := AllocateStageFactors(serialProb)
	if !BackwardSerial(serialProb, serialData, 1, 1, 0) {
		t.Fatal("serial backward pass failed")
	}
	serialDxs, serialDus := ForwardSerial(serialProb, serialData, x0)

	parProb := buildScalarProblem(n)
	legDatas, thetas, ok := BackwardParallel(parProb, 3, x0, legMudyn, 1, 0)
	if !ok {
		t.Fatal("parallel backward pass failed")
	}
	parDxs, parDus := ForwardParallel(parProb, legDatas, thetas, x0, 3)

	const tol = 1e-3
	for t_ := 0; t_ <= n; t_++ {
		if diff := math.Abs(parDxs[t_].AtVec(0) - serialDxs[t_].AtVec(0)); diff > tol {
			t.Errorf("state %d: parallel %v serial %v (diff %v)", t_, parDxs[t_].AtVec(0), serialDxs[t_].AtVec(0), diff)
		}
	}
	for t_ := 0; t_ < n; t_++ {
		if diff := math.Abs(parDus[t_].AtVec(0) - serialDus[t_].AtVec(0)); diff > tol {
			t.Errorf("control %d: parallel %v serial %v (diff %v)", t_, parDus[t_].AtVec(0), serialDus[t_].AtVec(0), diff)
		}
	}
}
