// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linesearch implements the merit function and step-size search
// used to globalize the proximal DDP outer iteration (§4.8): an
// augmented-Lagrangian merit value combining the rollout cost, the
// proximal regularization term, and the AL constraint penalties, searched
// along a computed direction by backtracking with polynomial
// interpolation, grounded on the teacher's optimize/backtracking.go and
// optimize/brent.go line-search code.
package linesearch

// Terms holds the components of the augmented-Lagrangian merit function
// evaluated at a trial step, as described by §4.8: the raw trajectory
// cost, the proximal term tying the trial iterate to the previous one,
// and the constraint-penalty term (the path and terminal constraint
// penalties, each already weighted by their own AL strength; the dynamics
// residual is not part of it).
type Terms struct {
	Cost       float64
	Proximal   float64
	Constraint float64
}

// Value returns the scalar merit Cost + Proximal + Constraint.
func (t Terms) Value() float64 { return t.Cost + t.Proximal + t.Constraint }

// Directional is the first-order (directional-derivative) information
// needed by the line search to check the Armijo sufficient-decrease
// condition without re-evaluating the merit function's gradient.
type Directional struct {
	Value float64 // merit value at the base point
	Slope float64 // directional derivative of the merit along the search direction; must be < 0
}

// ArmijoSatisfied reports whether a trial merit value phi at step alpha
// satisfies the sufficient-decrease condition
//
//	phi(alpha) <= phi(0) + c1*alpha*phi'(0)
func ArmijoSatisfied(d Directional, alpha, phi, c1 float64) bool {
	return phi <= d.Value+c1*alpha*d.Slope
}
