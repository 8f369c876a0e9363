// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "gonum.org/v1/gonum/mat"

// QuadraticCost implements the stage cost
//
//	ℓ(x, u) = ½(x-xref)ᵀQ(x-xref) + ½(u-uref)ᵀR(u-uref)
//
// with constant Hessian blocks Q, R, used by the LQR reference scenarios.
type QuadraticCost struct {
	Q, R       *mat.SymDense
	Xref, Uref *mat.VecDense
}

func (c *QuadraticCost) CreateData() *CostData {
	nx, _ := c.Q.Dims()
	nu, _ := c.R.Dims()
	return &CostData{
		Gx:  mat.NewVecDense(nx, nil),
		Gu:  mat.NewVecDense(nu, nil),
		Qxx: mat.NewSymDense(nx, nil),
		Quu: mat.NewSymDense(nu, nil),
		Qxu: mat.NewDense(nx, nu, nil),
	}
}

func (c *QuadraticCost) dx(x *mat.VecDense) *mat.VecDense {
	var dx mat.VecDense
	dx.SubVec(x, c.Xref)
	return &dx
}

func (c *QuadraticCost) du(u *mat.VecDense) *mat.VecDense {
	var du mat.VecDense
	du.SubVec(u, c.Uref)
	return &du
}

func (c *QuadraticCost) Evaluate(x, u *mat.VecDense, data *CostData) {
	dx, du := c.dx(x), c.du(u)
	var qx, qu mat.VecDense
	qx.MulVec(c.Q, dx)
	qu.MulVec(c.R, du)
	data.Value = 0.5*mat.Dot(dx, &qx) + 0.5*mat.Dot(du, &qu)
}

func (c *QuadraticCost) ComputeGradients(x, u *mat.VecDense, data *CostData) {
	data.Gx.MulVec(c.Q, c.dx(x))
	data.Gu.MulVec(c.R, c.du(u))
}

func (c *QuadraticCost) ComputeHessians(x, u *mat.VecDense, data *CostData) {
	data.Qxx.CopySym(c.Q)
	data.Quu.CopySym(c.R)
	data.Qxu.Zero()
}
