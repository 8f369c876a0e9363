// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package manifold defines the differentiable state-space contract used
// throughout the solver and provides two reference implementations.
package manifold

import "gonum.org/v1/gonum/mat"

// Manifold is a differentiable state space of nominal dimension Nx and
// tangent dimension Ndx. Integrate and Difference must be mutual inverses:
// Difference(x, Integrate(x, d)) == d to floating tolerance.
type Manifold interface {
	// Nx returns the ambient dimension of a point.
	Nx() int
	// Ndx returns the tangent-space dimension.
	Ndx() int
	// Neutral returns the neutral element of the manifold.
	Neutral() *mat.VecDense
	// Rand returns a random point on the manifold.
	Rand() *mat.VecDense
	// Integrate returns x ⊕ d, the point reached by moving from x along
	// the tangent vector d.
	Integrate(x, d *mat.VecDense) *mat.VecDense
	// Difference returns y ⊖ x, the tangent vector at x that integrates
	// to y.
	Difference(x, y *mat.VecDense) *mat.VecDense
	// JIntegrate fills Jx and Jd with the Jacobians of Integrate(x, d)
	// with respect to x and d respectively, each of size Ndx×Ndx.
	JIntegrate(x, d *mat.VecDense, Jx, Jd *mat.Dense)
	// JDifference fills Jx and Jy with the Jacobians of Difference(x, y)
	// with respect to x and y respectively, each of size Ndx×Ndx.
	JDifference(x, y *mat.VecDense, Jx, Jy *mat.Dense)
}
