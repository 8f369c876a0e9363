// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/constraint"
)

// updateMultipliers advances the dynamics costate lams and the path/
// terminal constraint multipliers vs/vN to their "plus" estimate at the
// end of a converged inner solve, per spec.md §4.7 step 4.
//
// Path and terminal multipliers always use the classical AL closed form
// v+ = (1/mu) * NormalConeProj(c + mu*v), the Moreau-decomposition
// identity already exploited in updateLQSubproblem, regardless of
// Settings.MultiplierUpdateMode: they are AL-penalized rather than
// eliminated, so there is no competing Newton-system dual to choose
// between for them.
//
// The dynamics costate lams is the one quantity with two genuinely
// different sources, since dynamics are eliminated exactly via the
// Riccati recursion rather than AL-penalized: UpdateNewton reads it
// straight from the backward pass's value-function gradient
// (StageFactor.Pvec), while UpdatePrimal applies the same ALM "plus"
// closed form used for path multipliers, treating the dynamics residual
// as an equality constraint in its own right. The two are not combined
// into a convex blend (an earlier DualWeight setting attempted this):
// Pvec lives in the manifold's tangent space at xs[t] while the ALM
// estimate is a penalty-method dual with no shared scale, so there is no
// principled weight between them — the mode picks one or the other.
func (s *Solver) updateMultipliers(xs, us, lams, vs []*mat.VecDense, vN *mat.VecDense, mu float64) {
	n := s.prob.Horizon()

	switch s.Settings.MultiplierUpdateMode {
	case UpdateNewton:
		if s.Settings.NumLegs <= 1 {
			for t := 0; t <= n; t++ {
				lams[t].CopyVec(s.ws.Factors[t].Pvec())
			}
		}
		// NumLegs > 1: the parallel leg condensation's per-leg factors are
		// not indexed by global stage at this level, so the Newton costate
		// is unavailable and the previous estimate is kept.
	case UpdatePrimal:
		// lams[n], the terminal costate, has no dynamics residual of its
		// own (there is no stage-n transition) and is left unchanged.
		for t, st := range s.prob.Stages {
			eq := constraint.NewEquality(lams[t].Len())
			dd := st.Dynamics.CreateData()
			st.Dynamics.Evaluate(xs[t], us[t], xs[t+1], dd)
			lams[t] = plusMultiplier(eq, dd.Value, lams[t], mu)
		}
	}

	for t, st := range s.prob.Stages {
		if st.Constraint == nil {
			continue
		}
		pd := st.Constraint.Function.CreateData()
		st.Constraint.Function.Evaluate(xs[t], us[t], xs[t+1], pd)
		vs[t] = plusMultiplier(st.Constraint.Set, pd.Value, vs[t], mu)
	}
	if s.prob.Terminal != nil {
		td := s.prob.Terminal.Function.CreateData()
		s.prob.Terminal.Function.Evaluate(xs[n], td)
		newVN := plusMultiplier(s.prob.Terminal.Set, td.Value, vN, mu)
		vN.CopyVec(newVN)
	}
}

// plusMultiplier evaluates v+ = (1/mu) * NormalConeProj(c + mu*v).
func plusMultiplier(set interface {
	NormalConeProj(z *mat.VecDense) *mat.VecDense
}, c, v *mat.VecDense, mu float64) *mat.VecDense {
	var zbar mat.VecDense
	zbar.AddScaledVec(c, mu, v)
	shifted := set.NormalConeProj(&zbar)
	out := mat.NewVecDense(shifted.Len(), nil)
	out.ScaleVec(1/mu, shifted)
	return out
}
