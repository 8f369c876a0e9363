// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "gonum.org/v1/gonum/mat"

// EqualityResidual implements the UnaryFunction g(x) = x - target, used as
// a terminal equality constraint (e.g. x_N = 0).
type EqualityResidual struct {
	Target *mat.VecDense
}

func (r *EqualityResidual) Nr() int { return r.Target.Len() }

func (r *EqualityResidual) CreateData() *StageFunctionData {
	n := r.Target.Len()
	return &StageFunctionData{
		Value: mat.NewVecDense(n, nil),
		Jx:    mat.NewDense(n, n, nil),
	}
}

func (r *EqualityResidual) Evaluate(x *mat.VecDense, data *StageFunctionData) {
	data.Value.SubVec(x, r.Target)
}

func (r *EqualityResidual) ComputeJacobians(x *mat.VecDense, data *StageFunctionData) {
	data.Jx.Zero()
	n := r.Target.Len()
	for i := 0; i < n; i++ {
		data.Jx.Set(i, i, 1)
	}
}

// IdentityResidual implements the StageFunction g(x, u, y) = x, used to
// express a box path constraint directly on the state via a
// constraint.Box projection in the solver's AL term.
type IdentityResidual struct {
	Nx, Nu, Ny int
}

func (r IdentityResidual) Nr() int { return r.Nx }

func (r IdentityResidual) CreateData() *StageFunctionData {
	return &StageFunctionData{
		Value: mat.NewVecDense(r.Nx, nil),
		Jx:    mat.NewDense(r.Nx, r.Nx, nil),
		Ju:    mat.NewDense(r.Nx, r.Nu, nil),
		Jy:    mat.NewDense(r.Nx, r.Ny, nil),
	}
}

func (r IdentityResidual) Evaluate(x, u, y *mat.VecDense, data *StageFunctionData) {
	data.Value.CopyVec(x)
}

func (r IdentityResidual) ComputeJacobians(x, u, y *mat.VecDense, data *StageFunctionData) {
	data.Jx.Zero()
	for i := 0; i < r.Nx; i++ {
		data.Jx.Set(i, i, 1)
	}
	data.Ju.Zero()
	data.Jy.Zero()
}

// BoxResidual implements the StageFunction g(x, u, y) = u, used to express
// a control-bound path constraint via a constraint.Box projection in the
// solver's AL term.
type BoxResidual struct {
	Nx, Nu, Ny int
}

func (r BoxResidual) Nr() int { return r.Nu }

func (r BoxResidual) CreateData() *StageFunctionData {
	return &StageFunctionData{
		Value: mat.NewVecDense(r.Nu, nil),
		Jx:    mat.NewDense(r.Nu, r.Nx, nil),
		Ju:    mat.NewDense(r.Nu, r.Nu, nil),
		Jy:    mat.NewDense(r.Nu, r.Ny, nil),
	}
}

func (r BoxResidual) Evaluate(x, u, y *mat.VecDense, data *StageFunctionData) {
	data.Value.CopyVec(u)
}

func (r BoxResidual) ComputeJacobians(x, u, y *mat.VecDense, data *StageFunctionData) {
	data.Jx.Zero()
	data.Ju.Zero()
	for i := 0; i < r.Nu; i++ {
		data.Ju.Set(i, i, 1)
	}
	data.Jy.Zero()
}
