// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import "math"

// bclState tracks the Bertsekas constrained-Lagrangian schedule: the AL
// penalty μ and the per-iteration primal/inner tolerance targets ε, η.
type bclState struct {
	Mu  float64
	Eps float64
	Eta float64
}

func newBCLState(p BCLParams, tol float64) *bclState {
	return &bclState{Mu: p.MuInit, Eps: math.Max(tol, 1), Eta: math.Max(tol, 1)}
}

// update advances the schedule given the primal infeasibility pk measured
// at the end of an inner solve, per spec.md §4.7 step 3: accept and
// tighten when pk is within the current ε target, otherwise reject the
// multiplier update and shrink μ. It reports whether the AL iteration's
// multiplier update should be applied.
func (b *bclState) update(p BCLParams, muMin, tol, pk float64) (accept bool) {
	accept = pk <= b.Eps
	if accept {
		b.Eps = math.Max(tol, b.Eps*p.AlphaEps)
		b.Eta = math.Max(tol, b.Eta*p.AlphaEps)
		b.Mu = math.Max(muMin, b.Mu*0.5)
	} else {
		b.Mu = math.Max(muMin, b.Mu*p.AlphaMu)
		b.Eps = math.Max(tol, b.Eps*p.AlphaEps)
	}
	return accept
}
