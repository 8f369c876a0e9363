// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "gonum.org/v1/gonum/mat"

// LinearDynamics implements the affine stage function
//
//	φ(x, u, y) = A·x + B·u + E·y + f
//
// used by the LQR reference scenarios, where y is the tangent of the next
// state (E is typically -I for a Euclidean manifold).
type LinearDynamics struct {
	A, B, E *mat.Dense
	F       *mat.VecDense
}

func (d *LinearDynamics) Nr() int {
	r, _ := d.A.Dims()
	return r
}

func (d *LinearDynamics) CreateData() *StageFunctionData {
	nr := d.Nr()
	_, nx := d.A.Dims()
	_, nu := d.B.Dims()
	_, ny := d.E.Dims()
	return &StageFunctionData{
		Value: mat.NewVecDense(nr, nil),
		Jx:    mat.NewDense(nr, nx, nil),
		Ju:    mat.NewDense(nr, nu, nil),
		Jy:    mat.NewDense(nr, ny, nil),
	}
}

func (d *LinearDynamics) Evaluate(x, u, y *mat.VecDense, data *StageFunctionData) {
	var tmp mat.VecDense
	tmp.MulVec(d.A, x)
	data.Value.CopyVec(&tmp)
	tmp.MulVec(d.B, u)
	data.Value.AddVec(data.Value, &tmp)
	tmp.MulVec(d.E, y)
	data.Value.AddVec(data.Value, &tmp)
	data.Value.AddVec(data.Value, d.F)
}

func (d *LinearDynamics) ComputeJacobians(x, u, y *mat.VecDense, data *StageFunctionData) {
	data.Jx.Copy(d.A)
	data.Ju.Copy(d.B)
	data.Jy.Copy(d.E)
}
