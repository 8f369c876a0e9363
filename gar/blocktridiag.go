// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gar

import "gonum.org/v1/gonum/mat"

// BlockTridiag is a symmetric, block-tridiagonal linear system: Diag[i] is
// the i-th diagonal block and Off[i] is the (i, i+1) off-diagonal block,
// so that the (i+1, i) block is Off[i]'s transpose. It is the reduced
// system produced by gluing the leg-boundary unknowns of the parallel
// Riccati condensation (§4.4) back together.
type BlockTridiag struct {
	Diag []*mat.SymDense
	Off  []*mat.Dense // len(Off) == len(Diag)-1
}

// Solve factors m via a block LDLᵀ sweep (block-Thomas elimination using a
// Cholesky factorization at every pivot, since each Schur complement is
// expected SPD) and solves M x = r, returning ok=false as soon as any
// pivot fails to factor as positive definite.
func (m *BlockTridiag) Solve(r []*mat.VecDense) (x []*mat.VecDense, ok bool) {
	n := len(m.Diag)
	if n == 0 {
		return nil, true
	}
	if len(m.Off) != n-1 || len(r) != n {
		panic("gar: BlockTridiag dimension mismatch")
	}

	chols := make([]mat.Cholesky, n)
	w := make([]*mat.Dense, n-1) // w[i] = (schur_i)^-1 Off[i], used in back substitution

	if !chols[0].Factorize(m.Diag[0]) {
		return nil, false
	}
	for i := 1; i < n; i++ {
		var wPrev mat.Dense
		if err := chols[i-1].SolveTo(&wPrev, m.Off[i-1]); err != nil {
			return nil, false
		}
		w[i-1] = &wPrev

		var corr mat.Dense
		corr.Mul(m.Off[i-1].T(), &wPrev)
		var reduced mat.Dense
		reduced.Sub(m.Diag[i], &corr)
		rows, _ := reduced.Dims()
		sym := mat.NewSymDense(rows, nil)
		copyDenseToSym(sym, &reduced)
		if !chols[i].Factorize(sym) {
			return nil, false
		}
	}

	y := make([]*mat.VecDense, n)
	var y0 mat.VecDense
	if err := chols[0].SolveVecTo(&y0, r[0]); err != nil {
		return nil, false
	}
	y[0] = &y0
	for i := 1; i < n; i++ {
		var corr mat.VecDense
		corr.MulVec(m.Off[i-1].T(), y[i-1])
		var rhs mat.VecDense
		rhs.SubVec(r[i], &corr)
		var yi mat.VecDense
		if err := chols[i].SolveVecTo(&yi, &rhs); err != nil {
			return nil, false
		}
		y[i] = &yi
	}

	x = make([]*mat.VecDense, n)
	x[n-1] = y[n-1]
	for i := n - 2; i >= 0; i-- {
		var corr mat.VecDense
		corr.MulVec(w[i], x[i+1])
		xi := mat.NewVecDense(y[i].Len(), nil)
		xi.SubVec(y[i], &corr)
		x[i] = xi
	}
	return x, true
}
