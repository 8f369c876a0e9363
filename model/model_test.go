// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestLinearDynamicsEvaluate(t *testing.T) {
	A := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	B := mat.NewDense(2, 2, []float64{-0.6, 0.3, 0, 1})
	E := mat.NewDense(2, 2, []float64{-1, 0, 0, -1})
	f := mat.NewVecDense(2, []float64{0.1, 0})
	dyn := &LinearDynamics{A: A, B: B, E: E, F: f}

	x := mat.NewVecDense(2, []float64{1, -0.1})
	u := mat.NewVecDense(2, []float64{0, 0})
	y := mat.NewVecDense(2, []float64{1.1, -0.1})

	data := dyn.CreateData()
	dyn.Evaluate(x, u, y, data)

	// residual should be A x + B u - y + f == 0 when y is the correct next state.
	want := []float64{0, 0}
	for i, w := range want {
		if math.Abs(data.Value.AtVec(i)-w) > 1e-12 {
			t.Errorf("index %d: got %v want %v", i, data.Value.AtVec(i), w)
		}
	}
}

func TestQuadraticCostEvaluate(t *testing.T) {
	Q := mat.NewSymDense(2, []float64{2, 0, 0, 1})
	R := mat.NewSymDense(2, []float64{0.01, 0, 0, 0.01})
	cost := &QuadraticCost{Q: Q, R: R, Xref: mat.NewVecDense(2, nil), Uref: mat.NewVecDense(2, nil)}

	x := mat.NewVecDense(2, []float64{1, -0.1})
	u := mat.NewVecDense(2, []float64{0.2, 0})
	data := cost.CreateData()
	cost.Evaluate(x, u, data)

	want := 0.5*(2*1*1+1*0.1*0.1) + 0.5*(0.01*0.2*0.2)
	if math.Abs(data.Value-want) > 1e-12 {
		t.Errorf("got %v want %v", data.Value, want)
	}

	cost.ComputeGradients(x, u, data)
	if math.Abs(data.Gx.AtVec(0)-2) > 1e-12 {
		t.Errorf("gx[0]: got %v want %v", data.Gx.AtVec(0), 2.0)
	}
}

func TestEqualityResidual(t *testing.T) {
	r := &EqualityResidual{Target: mat.NewVecDense(2, nil)}
	x := mat.NewVecDense(2, []float64{0.01, -0.02})
	data := r.CreateData()
	r.Evaluate(x, data)
	if math.Abs(data.Value.AtVec(0)-0.01) > 1e-12 || math.Abs(data.Value.AtVec(1)+0.02) > 1e-12 {
		t.Errorf("unexpected residual: %v", mat.Formatted(data.Value.T()))
	}
}
