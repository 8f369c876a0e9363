// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/lq"
)

// refineForward performs classical iterative refinement of the forward
// pass's dynamics elimination: each stage's Â/B̂/f̂ (used to propagate
// dx[t+1] from dx[t], du[t]) come from a mat.Dense.Solve against the
// knot's E block, which can carry solve error on an ill-conditioned E. One
// refinement sweep recomputes every stage's feedback control from the
// latest dx, measures the dynamics defect
//
//	A·dx[t] + B·du[t] + E·dx[t+1] + f
//
// and corrects dx[t+1] by solving E·δ = -defect, up to
// Settings.MaxRefinementSteps sweeps or until every stage's defect is
// within Settings.RefinementThreshold. It only applies to the serial
// factor path: the parallel leg condensation's per-leg factors are not
// indexed by global stage here, so NumLegs > 1 skips refinement (recorded
// in DESIGN.md).
func (s *Solver) refineForward(dxs, dus []*mat.VecDense) {
	if s.Settings.NumLegs > 1 || s.Settings.MaxRefinementSteps <= 0 {
		return
	}
	for step := 0; step < s.Settings.MaxRefinementSteps; step++ {
		maxDefect := 0.0
		for t, k := range s.ws.LQ.Stages {
			d := s.ws.Factors[t]

			var du mat.VecDense
			du.MulVec(d.K, dxs[t])
			du.AddVec(&du, d.Kvec())
			dus[t].CopyVec(&du)

			defect := dynamicsDefect(k, dxs[t], dus[t], dxs[t+1])
			if n := infNorm(defect); n > maxDefect {
				maxDefect = n
			}

			var negDefect, corr mat.VecDense
			negDefect.ScaleVec(-1, defect)
			corr.SolveVec(k.E, &negDefect)
			dxs[t+1].AddVec(dxs[t+1], &corr)
		}
		if maxDefect <= s.Settings.RefinementThreshold {
			break
		}
	}
}

// dynamicsDefect returns A·dx + B·du + E·dxNext + f for knot k, which the
// Riccati forward pass drives to (numerically) zero.
func dynamicsDefect(k *lq.Knot, dx, du, dxNext *mat.VecDense) *mat.VecDense {
	var defect mat.VecDense
	defect.MulVec(k.A, dx)
	var bu mat.VecDense
	bu.MulVec(k.B, du)
	defect.AddVec(&defect, &bu)
	var ey mat.VecDense
	ey.MulVec(k.E, dxNext)
	defect.AddVec(&defect, &ey)
	defect.AddVec(&defect, k.Fvec())
	return &defect
}
