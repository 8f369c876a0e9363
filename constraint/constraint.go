// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package constraint defines closed convex constraint sets used by the
// augmented-Lagrangian path-constraint projection, along with the handful
// of concrete sets the reference models need.
package constraint

import "gonum.org/v1/gonum/mat"

// Set is a closed convex set 𝒞 with cheap projection and normal-cone test.
// Implementations must be safe for concurrent read-only use (Projection and
// NormalConeProj must not retain or mutate z).
type Set interface {
	// Dim returns the dimension of the ambient space.
	Dim() int
	// Projection returns Π_𝒞(z).
	Projection(z *mat.VecDense) *mat.VecDense
	// NormalConeProj returns the projection of z onto the normal cone of 𝒞
	// at the nearest point of 𝒞 to z.
	NormalConeProj(z *mat.VecDense) *mat.VecDense
	// IsInNormalCone reports whether λ lies in the normal cone of 𝒞 at z.
	IsInNormalCone(z, lambda *mat.VecDense, tol float64) bool
}

// JacobianSet is implemented by sets whose projection is differentiable
// almost everywhere; ProjectJacobian fills J with the Jacobian of
// Projection at z (as required by the StageFunction/ConstraintSet contract
// of the modelling layer).
type JacobianSet interface {
	Set
	ProjectJacobian(z *mat.VecDense, J *mat.Dense)
}
