// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package model defines the polymorphic modelling contracts the solver
// treats as external collaborators (stage dynamics/constraints, costs) and
// a handful of reference implementations used by the tests and the
// end-to-end LQR scenarios.
package model

import "gonum.org/v1/gonum/mat"

// StageFunctionData is the per-call scratch a StageFunction writes its
// value and Jacobians into. CreateData allocates one of these sized to the
// function's (nx, nu, ny, nr); the solver reuses it across evaluations.
type StageFunctionData struct {
	Value *mat.VecDense // size nr
	Jx    *mat.Dense    // nr × nx
	Ju    *mat.Dense    // nr × nu
	Jy    *mat.Dense    // nr × ny (ny is the next state's tangent dimension)
}

// StageFunction is a residual g(x, u, y), polymorphic over its concrete
// form (dynamics, path constraint, ...). y is the tangent representation of
// the next state. A dynamics StageFunction has Nr() == ndx of the next
// knot.
type StageFunction interface {
	Nr() int
	CreateData() *StageFunctionData
	Evaluate(x, u, y *mat.VecDense, data *StageFunctionData)
	ComputeJacobians(x, u, y *mat.VecDense, data *StageFunctionData)
}

// VectorHessianProvider is implemented by StageFunctions that can supply
// second-order (vector-Hessian-product) terms. The solver does not call it
// under either Hessian approximation: EXACT builds the same Gauss-Newton
// model as GAUSS_NEWTON.
type VectorHessianProvider interface {
	ComputeVectorHessianProducts(x, u, y, lambda *mat.VecDense, data *StageFunctionData)
}

// UnaryFunction is a StageFunction restricted to depend on x only, used for
// terminal constraints and costs.
type UnaryFunction interface {
	Nr() int
	CreateData() *StageFunctionData
	Evaluate(x *mat.VecDense, data *StageFunctionData)
	ComputeJacobians(x *mat.VecDense, data *StageFunctionData)
}

// CostData is the per-call scratch a Cost writes its value, gradient, and
// Hessian blocks into.
type CostData struct {
	Value float64
	Gx    *mat.VecDense // nx
	Gu    *mat.VecDense // nu
	Qxx   *mat.SymDense // nx × nx
	Quu   *mat.SymDense // nu × nu
	Qxu   *mat.Dense    // nx × nu
}

// Cost is a scalar stage or terminal cost ℓ(x, u).
type Cost interface {
	CreateData() *CostData
	Evaluate(x, u *mat.VecDense, data *CostData)
	ComputeGradients(x, u *mat.VecDense, data *CostData)
	ComputeHessians(x, u *mat.VecDense, data *CostData)
}
