// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/proxscaler"
)

// updateLQSubproblem rebuilds every knot of s.ws.LQ from the nonlinear
// problem's callbacks evaluated at (xs, us), AL-penalizing path and
// terminal constraints with strength mu and adding the proximal
// regularization ½·rho·||x - prevX||^2 to every stage and the terminal cost,
// per spec.md §4.7 step 1. The per-stage sweep is dispatched across the
// solver's workpool.Pool (§4.7 "Parallel stage evaluation"): each stage
// only touches its own knot, scaler, and freshly-allocated scratch data,
// so spans run without synchronization.
func (s *Solver) updateLQSubproblem(xs, us, lams, vs []*mat.VecDense, vN *mat.VecDense, mu, rho float64, prevXs []*mat.VecDense) {
	s.ws.Mu, s.ws.Rho = mu, rho
	n := s.prob.Horizon()

	s.parallelStages(n, func(t int) {
		st := s.prob.Stages[t]
		k := s.ws.LQ.Stages[t]

		cd := st.Cost.CreateData()
		st.Cost.ComputeGradients(xs[t], us[t], cd)
		st.Cost.ComputeHessians(xs[t], us[t], cd)
		k.Q.CopySym(cd.Qxx)
		k.R.CopySym(cd.Quu)
		k.S.Copy(cd.Qxu.T())
		k.Qvec().CopyVec(cd.Gx)
		k.Rvec().CopyVec(cd.Gu)

		if rho > 0 {
			diff := s.prob.Manifold.Difference(prevXs[t], xs[t])
			addRidge(k.Q, rho)
			var rd mat.VecDense
			rd.ScaleVec(rho, diff)
			k.Qvec().AddVec(k.Qvec(), &rd)
		}

		dd := st.Dynamics.CreateData()
		st.Dynamics.ComputeJacobians(xs[t], us[t], xs[t+1], dd)
		st.Dynamics.Evaluate(xs[t], us[t], xs[t+1], dd)
		k.A.Copy(dd.Jx)
		k.B.Copy(dd.Ju)
		k.E.Copy(dd.Jy)
		k.Fvec().CopyVec(dd.Value)

		if st.Constraint != nil {
			pd := st.Constraint.Function.CreateData()
			st.Constraint.Function.ComputeJacobians(xs[t], us[t], xs[t+1], pd)
			st.Constraint.Function.Evaluate(xs[t], us[t], xs[t+1], pd)

			sqrtW := scalerSqrtWeights(s.ws.Scalers[t], st.Constraint.Set.Dim())
			k.C.Copy(pd.Jx)
			scaleRows(k.C, sqrtW)
			k.D.Copy(pd.Ju)
			scaleRows(k.D, sqrtW)

			var zbar mat.VecDense
			zbar.AddScaledVec(pd.Value, mu, vs[t])
			dEff := st.Constraint.Set.NormalConeProj(&zbar)
			k.Dvec().CopyVec(scaleVec(dEff, sqrtW))
		}
	})

	xN := xs[n]
	td := s.prob.TerminalCost.CreateData()
	zeroU := mat.NewVecDense(0, nil)
	st2 := s.prob.TerminalCost
	st2.ComputeGradients(xN, zeroU, td)
	st2.ComputeHessians(xN, zeroU, td)
	s.ws.LQ.QN.CopySym(td.Qxx)
	s.ws.LQ.QNvec().CopyVec(td.Gx)
	if rho > 0 {
		diff := s.prob.Manifold.Difference(prevXs[n], xN)
		addRidge(s.ws.LQ.QN, rho)
		var rd mat.VecDense
		rd.ScaleVec(rho, diff)
		s.ws.LQ.QNvec().AddVec(s.ws.LQ.QNvec(), &rd)
	}

	if s.prob.Terminal != nil {
		td2 := s.prob.Terminal.Function.CreateData()
		s.prob.Terminal.Function.ComputeJacobians(xN, td2)
		s.prob.Terminal.Function.Evaluate(xN, td2)
		s.ws.LQ.GN.Copy(td2.Jx)
		var zbar mat.VecDense
		zbar.AddScaledVec(td2.Value, mu, vN)
		dEff := s.prob.Terminal.Set.NormalConeProj(&zbar)
		s.ws.LQ.GNvec().CopyVec(dEff)
	}
}

func addRidge(m *mat.SymDense, ridge float64) {
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		m.SetSym(i, i, m.At(i, i)+ridge)
	}
}

// scalerSqrtWeights expands sc's per-block weights into one sqrt'd
// per-row factor, so that scaling C/D/d's rows by it turns gar's fixed
// (1/mueq)||.||^2 penalty into (1/mueq)*w_i*(...)^2 per constraint row i
// (nil scaler, or no scaler at all, leaves every row at weight 1).
func scalerSqrtWeights(sc *proxscaler.Scaler, nc int) []float64 {
	w := make([]float64, nc)
	if sc == nil {
		for i := range w {
			w[i] = 1
		}
		return w
	}
	diag := sc.DiagMatrix()
	for i := range w {
		v := diag.At(i, i)
		if v <= 0 {
			v = 1
		}
		w[i] = math.Sqrt(v)
	}
	return w
}

func scaleRows(m *mat.Dense, w []float64) {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			m.Set(i, j, m.At(i, j)*w[i])
		}
	}
}

func scaleVec(v *mat.VecDense, w []float64) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	for i := 0; i < v.Len(); i++ {
		out.SetVec(i, v.AtVec(i)*w[i])
	}
	return out
}
