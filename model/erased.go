// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import "gonum.org/v1/gonum/mat"

// FuncCost is a value-type erased Cost built from plain functions, in the
// same spirit as optimize.Problem erasing an objective behind Func/Grad/Hess
// closures rather than an interface hierarchy. It has copy semantics: a
// FuncCost value can be copied freely since it holds no per-call state of
// its own (all scratch lives in the CostData returned by CreateData).
type FuncCost struct {
	Nx, Nu int

	EvalFunc func(x, u *mat.VecDense) float64
	GradFunc func(x, u *mat.VecDense, gx, gu *mat.VecDense)
	HessFunc func(x, u *mat.VecDense, qxx, quu *mat.SymDense, qxu *mat.Dense)
}

func (c FuncCost) CreateData() *CostData {
	return &CostData{
		Gx:  mat.NewVecDense(c.Nx, nil),
		Gu:  mat.NewVecDense(c.Nu, nil),
		Qxx: mat.NewSymDense(c.Nx, nil),
		Quu: mat.NewSymDense(c.Nu, nil),
		Qxu: mat.NewDense(c.Nx, c.Nu, nil),
	}
}

func (c FuncCost) Evaluate(x, u *mat.VecDense, data *CostData) {
	data.Value = c.EvalFunc(x, u)
}

func (c FuncCost) ComputeGradients(x, u *mat.VecDense, data *CostData) {
	c.GradFunc(x, u, data.Gx, data.Gu)
}

func (c FuncCost) ComputeHessians(x, u *mat.VecDense, data *CostData) {
	c.HessFunc(x, u, data.Qxx, data.Quu, data.Qxu)
}

// FuncStage is a value-type erased StageFunction, following the same
// closure-erasure pattern as FuncCost.
type FuncStage struct {
	Nx, Nu, Ny, NrVal int

	EvalFunc func(x, u, y *mat.VecDense, value *mat.VecDense)
	JacFunc  func(x, u, y *mat.VecDense, Jx, Ju, Jy *mat.Dense)
}

func (f FuncStage) Nr() int { return f.NrVal }

func (f FuncStage) CreateData() *StageFunctionData {
	return &StageFunctionData{
		Value: mat.NewVecDense(f.NrVal, nil),
		Jx:    mat.NewDense(f.NrVal, f.Nx, nil),
		Ju:    mat.NewDense(f.NrVal, f.Nu, nil),
		Jy:    mat.NewDense(f.NrVal, f.Ny, nil),
	}
}

func (f FuncStage) Evaluate(x, u, y *mat.VecDense, data *StageFunctionData) {
	f.EvalFunc(x, u, y, data.Value)
}

func (f FuncStage) ComputeJacobians(x, u, y *mat.VecDense, data *StageFunctionData) {
	f.JacFunc(x, u, y, data.Jx, data.Ju, data.Jy)
}
