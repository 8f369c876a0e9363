// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gar

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// TestBlockTridiagMatchesDenseSolve builds a small 3-block tridiagonal
// system, solves it with BlockTridiag, and checks the result against a
// dense solve of the equivalent full matrix.
func TestBlockTridiagMatchesDenseSolve(t *testing.T) {
	d0 := mat.NewSymDense(2, []float64{4, 1, 1, 3})
	d1 := mat.NewSymDense(2, []float64{5, 0, 0, 2})
	d2 := mat.NewSymDense(2, []float64{6, 1, 1, 4})
	o0 := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	o1 := mat.NewDense(2, 2, []float64{0.5, 0, 0, 0.5})

	sys := &BlockTridiag{
		Diag: []*mat.SymDense{d0, d1, d2},
		Off:  []*mat.Dense{o0, o1},
	}
	r := []*mat.VecDense{
		mat.NewVecDense(2, []float64{1, 2}),
		mat.NewVecDense(2, []float64{3, 4}),
		mat.NewVecDense(2, []float64{5, 6}),
	}
	x, ok := sys.Solve(r)
	if !ok {
		t.Fatal("Solve reported failure on an SPD system")
	}

	full := mat.NewDense(6, 6, nil)
	blocks := []*mat.SymDense{d0, d1, d2}
	for b, d := range blocks {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				full.Set(b*2+i, b*2+j, d.At(i, j))
			}
		}
	}
	offs := []*mat.Dense{o0, o1}
	for b, o := range offs {
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				full.Set(b*2+i, (b+1)*2+j, o.At(i, j))
				full.Set((b+1)*2+j, b*2+i, o.At(i, j))
			}
		}
	}
	rfull := mat.NewVecDense(6, nil)
	for b, v := range r {
		for i := 0; i < 2; i++ {
			rfull.SetVec(b*2+i, v.AtVec(i))
		}
	}
	var xfull mat.VecDense
	if err := xfull.SolveVec(full, rfull); err != nil {
		t.Fatalf("dense solve: %v", err)
	}

	for b, xi := range x {
		for i := 0; i < 2; i++ {
			got := xi.AtVec(i)
			want := xfull.AtVec(b*2 + i)
			if diff := got - want; diff > 1e-8 || diff < -1e-8 {
				t.Errorf("block %d entry %d: got %v want %v", b, i, got, want)
			}
		}
	}
}

func TestBlockTridiagSingleBlock(t *testing.T) {
	d0 := mat.NewSymDense(2, []float64{2, 0, 0, 2})
	sys := &BlockTridiag{Diag: []*mat.SymDense{d0}}
	x, ok := sys.Solve([]*mat.VecDense{mat.NewVecDense(2, []float64{4, 6})})
	if !ok {
		t.Fatal("Solve reported failure")
	}
	if math.Abs(x[0].AtVec(0)-2) > 1e-12 || math.Abs(x[0].AtVec(1)-3) > 1e-12 {
		t.Errorf("got (%v,%v) want (2,3)", x[0].AtVec(0), x[0].AtVec(1))
	}
}

func TestBlockTridiagNonSPDFails(t *testing.T) {
	d0 := mat.NewSymDense(2, []float64{0, 0, 0, 0})
	sys := &BlockTridiag{Diag: []*mat.SymDense{d0}}
	if _, ok := sys.Solve([]*mat.VecDense{mat.NewVecDense(2, []float64{1, 1})}); ok {
		t.Fatal("Solve should fail on a non-SPD block")
	}
}
