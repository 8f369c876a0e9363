// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// computeInfeasibilities measures the raw (non-AL-shifted) primal gap of
// (xs, us) against the nonlinear problem -- dynamics residual and distance
// of every path/terminal constraint value from its set -- and the dual
// (stationarity) gap via the last forward pass's criterion, per spec.md
// §4.7 step 3 and §8. The per-stage dynamics/constraint evaluation is
// dispatched across the solver's workpool.Pool, each stage writing only
// its own slot of a pre-sized slice, with the max-reduction done serially
// afterward (mirroring the race-free pattern in lq_build.go/merit.go).
func (s *Solver) computeInfeasibilities(xs, us []*mat.VecDense) (primal, dual float64) {
	n := s.prob.Horizon()
	stageGap := make([]float64, n)

	s.parallelStages(n, func(t int) {
		st := s.prob.Stages[t]
		dd := st.Dynamics.CreateData()
		st.Dynamics.Evaluate(xs[t], us[t], xs[t+1], dd)
		gap := infNorm(dd.Value)

		if st.Constraint != nil {
			pd := st.Constraint.Function.CreateData()
			st.Constraint.Function.Evaluate(xs[t], us[t], xs[t+1], pd)
			gap = math.Max(gap, infNorm(constraintGap(st.Constraint.Set, pd.Value)))
		}
		stageGap[t] = gap
	})
	for _, g := range stageGap {
		primal = math.Max(primal, g)
	}

	if s.prob.Terminal != nil {
		td := s.prob.Terminal.Function.CreateData()
		s.prob.Terminal.Function.Evaluate(xs[n], td)
		primal = math.Max(primal, infNorm(constraintGap(s.prob.Terminal.Set, td.Value)))
	}

	dual = s.ComputeCriterion()
	return primal, dual
}

// constraintGap returns c - Π_𝒞(c), the raw distance of c from set.
func constraintGap(set interface {
	Projection(z *mat.VecDense) *mat.VecDense
}, c *mat.VecDense) *mat.VecDense {
	proj := set.Projection(c)
	gap := mat.NewVecDense(c.Len(), nil)
	gap.SubVec(c, proj)
	return gap
}
