// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifold

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

const tol = 1e-12

func TestRnRoundTrip(t *testing.T) {
	m := NewRn(4)
	for i, test := range []struct {
		x, d *mat.VecDense
	}{
		{mat.NewVecDense(4, []float64{1, 2, 3, 4}), mat.NewVecDense(4, []float64{0.1, -0.2, 0, 5})},
		{m.Neutral(), mat.NewVecDense(4, []float64{-1, -1, -1, -1})},
	} {
		y := m.Integrate(test.x, test.d)
		got := m.Difference(test.x, y)
		for k := 0; k < 4; k++ {
			if math.Abs(got.AtVec(k)-test.d.AtVec(k)) > tol {
				t.Errorf("test %d: round trip mismatch at %d: got %v want %v", i, k, got.AtVec(k), test.d.AtVec(k))
			}
		}
	}
}

func TestSO2RoundTrip(t *testing.T) {
	m := SO2{}
	for i, test := range []struct {
		x, d float64
	}{
		{0.1, 0.2},
		{3.0, 1.0},
		{-3.0, -1.0},
		{math.Pi - 0.01, 0.1},
	} {
		x := mat.NewVecDense(1, []float64{test.x})
		d := mat.NewVecDense(1, []float64{test.d})
		y := m.Integrate(x, d)
		got := m.Difference(x, y)
		if math.Abs(got.AtVec(0)-test.d) > tol {
			t.Errorf("test %d: round trip mismatch: got %v want %v", i, got.AtVec(0), test.d)
		}
	}
}

func TestSO2Jacobians(t *testing.T) {
	m := SO2{}
	x := mat.NewVecDense(1, []float64{0.4})
	d := mat.NewVecDense(1, []float64{0.2})
	var Jx, Jd mat.Dense
	m.JIntegrate(x, d, &Jx, &Jd)
	if Jx.At(0, 0) != 1 || Jd.At(0, 0) != 1 {
		t.Errorf("unexpected integrate Jacobians: Jx=%v Jd=%v", Jx.At(0, 0), Jd.At(0, 0))
	}
	y := m.Integrate(x, d)
	var Jdx, Jdy mat.Dense
	m.JDifference(x, y, &Jdx, &Jdy)
	if Jdx.At(0, 0) != -1 || Jdy.At(0, 0) != 1 {
		t.Errorf("unexpected difference Jacobians: Jx=%v Jy=%v", Jdx.At(0, 0), Jdy.At(0, 0))
	}
}
