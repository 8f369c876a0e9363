// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/linesearch"
)

// lineSearch runs a backtracking search of the AL merit function (§4.8)
// along the direction (dxs, dus), starting from the Workspace's current
// (mu, rho).
func (s *Solver) lineSearch(xs, us, dxs, dus []*mat.VecDense) linesearch.Result {
	d0Value, _ := s.evalMerit(xs, us, 0, dxs, dus)
	d0 := linesearch.Directional{Value: d0Value, Slope: s.directionalSlope(dxs, dus)}

	eval := func(alpha float64) (float64, linesearch.Terms) {
		return s.evalMerit(xs, us, alpha, dxs, dus)
	}
	settings := s.Settings.LS
	settings.NonMonotone = s.Settings.LSMode == Nonmonotone
	return linesearch.Search(eval, d0, settings)
}

// directionalSlope approximates the merit's directional derivative along
// (dxs, dus) by the LQ model's own linear term evaluated along the
// direction, the standard Gauss-Newton proxy for the true nonlinear
// slope.
func (s *Solver) directionalSlope(dxs, dus []*mat.VecDense) float64 {
	var slope float64
	for t, k := range s.ws.LQ.Stages {
		slope += mat.Dot(k.Qvec(), dxs[t])
		slope += mat.Dot(k.Rvec(), dus[t])
	}
	slope += mat.Dot(s.ws.LQ.QNvec(), dxs[len(dxs)-1])
	return slope
}

// evalMerit builds the trial trajectory xs ⊕ alpha*dxs, us + alpha*dus and
// evaluates the AL merit of spec.md §4.8 there:
//
//	M = Σᵢ ℓᵢ + Σⱼ ½μ‖Π_𝒞(cⱼ+μvⱼ)/μ − vⱼ‖² + ½ρ‖x − x_prev‖²
//
// vj is taken as 0 here since the merit is evaluated relative to the LQ
// subproblem's own AL shift (already folded into the subproblem at the
// current multiplier estimate); see s.ws.Mu/Rho for the active weights.
// The per-stage trial-state build and cost/constraint/proximal
// evaluations are dispatched across the solver's workpool.Pool: each
// stage writes only to its own slot of a pre-sized slice, then the
// (cheap, serial) reduction sums those slots.
func (s *Solver) evalMerit(xs, us []*mat.VecDense, alpha float64, dxs, dus []*mat.VecDense) (float64, linesearch.Terms) {
	n := s.prob.Horizon()
	trialX := make([]*mat.VecDense, n+1)
	trialU := make([]*mat.VecDense, n)

	s.parallelStages(n+1, func(t int) {
		var d mat.VecDense
		d.ScaleVec(alpha, dxs[t])
		trialX[t] = s.prob.Manifold.Integrate(xs[t], &d)
	})
	s.parallelStages(n, func(t int) {
		var d mat.VecDense
		d.ScaleVec(alpha, dus[t])
		var u mat.VecDense
		u.AddVec(us[t], &d)
		trialU[t] = mat.VecDenseCopyOf(&u)
	})

	stageCost := make([]float64, n)
	stageConstraint := make([]float64, n)
	proxTerm := make([]float64, n+1)

	s.parallelStages(n, func(t int) {
		st := s.prob.Stages[t]
		cd := st.Cost.CreateData()
		st.Cost.Evaluate(trialX[t], trialU[t], cd)
		stageCost[t] = cd.Value

		if st.Constraint != nil {
			pd := st.Constraint.Function.CreateData()
			st.Constraint.Function.Evaluate(trialX[t], trialU[t], trialX[t+1], pd)
			stageConstraint[t] = constraintPenalty(st.Constraint.Set, pd.Value, s.ws.Mu)
		}
		if s.ws.Rho > 0 {
			diff := s.prob.Manifold.Difference(xs[t], trialX[t])
			proxTerm[t] = 0.5 * s.ws.Rho * mat.Dot(diff, diff)
		}
	})
	if s.ws.Rho > 0 {
		diff := s.prob.Manifold.Difference(xs[n], trialX[n])
		proxTerm[n] = 0.5 * s.ws.Rho * mat.Dot(diff, diff)
	}

	var cost, constraintTerm, prox float64
	for t := 0; t < n; t++ {
		cost += stageCost[t]
		constraintTerm += stageConstraint[t]
	}
	for _, p := range proxTerm {
		prox += p
	}

	tcd := s.prob.TerminalCost.CreateData()
	s.prob.TerminalCost.Evaluate(trialX[n], mat.NewVecDense(0, nil), tcd)
	cost += tcd.Value

	if s.prob.Terminal != nil {
		td := s.prob.Terminal.Function.CreateData()
		s.prob.Terminal.Function.Evaluate(trialX[n], td)
		constraintTerm += constraintPenalty(s.prob.Terminal.Set, td.Value, s.ws.Mu)
	}

	terms := linesearch.Terms{Cost: cost, Proximal: prox, Constraint: constraintTerm}
	return terms.Value(), terms
}

// constraintPenalty evaluates spec.md §4.8's single-block AL term
// ½μ‖Π_𝒞(c+μv)/μ − v‖², with v taken as 0 (the merit is evaluated
// relative to the subproblem's own multiplier-shifted linearization).
func constraintPenalty(set interface {
	Projection(z *mat.VecDense) *mat.VecDense
}, c *mat.VecDense, mu float64) float64 {
	if mu <= 0 {
		return 0
	}
	proj := set.Projection(c)
	var diff mat.VecDense
	diff.ScaleVec(1/mu, proj)
	return 0.5 * mu * mat.Dot(&diff, &diff)
}
