// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/gar"
	"github.com/go-trajopt/proxddp/internal/workpool"
	"github.com/go-trajopt/proxddp/linesearch"
	"github.com/go-trajopt/proxddp/proxddp/log"
)

// ErrNotSetup is returned by Run when Setup has not been called.
var ErrNotSetup = errors.New("proxddp: Setup must be called before Run")

const maxInnerIters = 50

// Solver is the proximal augmented-Lagrangian DDP driver (SolverProxDDP).
type Solver struct {
	Settings Settings

	pool   *workpool.Pool
	logger *log.Logger

	prob *Problem
	ws   *Workspace
	res  *Results
}

// NewSolver constructs a Solver, mirroring the SolverProxDDP(tol, mu_init,
// rho_init, max_iters, verbose, hess_approx) constructor contract.
func NewSolver(tol, muInit, rhoInit float64, maxALIters int, verbose log.Verbosity, hess HessianApprox) *Solver {
	s := DefaultSettings(tol, muInit, rhoInit, maxALIters, verbose, hess)
	return &Solver{Settings: s, logger: log.New(verbose), pool: workpool.New(0)}
}

// Setup allocates a Workspace and Results exclusively owned by this
// Solver for prob; a second call to Setup on the same Solver replaces
// both.
func (s *Solver) Setup(prob *Problem) error {
	if err := prob.validate(); err != nil {
		return err
	}
	s.prob = prob
	s.ws = NewWorkspace(prob)
	s.res = newResults(prob.Horizon())
	return nil
}

// Run executes the solve from the given initial trajectory (xsInit/usInit
// may be nil to neutral-initialize) and returns whether the AL loop
// converged. Setup-time dimension errors are returned as a Go error;
// numerical failures (RICCATI_FAILURE, LS_FAILURE, iteration cap) are
// recorded in Results and reported via the boolean return only, per
// spec.md §7.
func (s *Solver) Run(xsInit, usInit []*mat.VecDense) (bool, error) {
	if s.prob == nil {
		return false, ErrNotSetup
	}
	start := time.Now()
	n := s.prob.Horizon()

	xs := s.initXs(xsInit)
	us := s.initUs(usInit)
	lams := make([]*mat.VecDense, n+1)
	vs := make([]*mat.VecDense, n)
	for t := 0; t <= n; t++ {
		lams[t] = mat.NewVecDense(s.prob.Manifold.Ndx(), nil)
	}
	for t, st := range s.prob.Stages {
		if st.Constraint != nil {
			vs[t] = mat.NewVecDense(st.Constraint.Set.Dim(), nil)
		}
	}
	var vN *mat.VecDense
	if s.prob.Terminal != nil {
		vN = mat.NewVecDense(s.prob.Terminal.Set.Dim(), nil)
	}
	prevXs := cloneVecs(xs)

	bcl := newBCLState(s.Settings.BCL, s.Settings.Tol)
	reg := s.Settings.RegInitial
	rho := s.Settings.BCL.RhoInit

	converged := false
	var pk, dk float64

mainloop:
	for alIter := 0; alIter < s.Settings.MaxALIters; alIter++ {
		s.res.NumALIters = alIter + 1

		for inner := 0; inner < maxInnerIters; inner++ {
			s.res.NumInnerIters++
			s.updateLQSubproblem(xs, us, lams, vs, vN, bcl.Mu, rho, prevXs)

			ok := s.backward(reg)
			for !ok {
				reg *= 10
				if reg > s.Settings.RegMax {
					s.res.RiccatiFailure = true
					break mainloop
				}
				ok = s.backward(reg)
			}
			if reg > s.Settings.RegMin {
				reg = math.Max(s.Settings.RegMin, reg/10)
			}

			dxs, dus := s.forward()
			crit := criterion(dxs, dus)

			info := log.IterInfo{ALIter: alIter + 1, InnerIter: inner + 1, Mu: bcl.Mu, Reg: reg}
			if crit <= bcl.Eta {
				s.logger.Log(info)
				break
			}

			result := s.lineSearch(xs, us, dxs, dus)
			info.Merit, info.StepSize, info.Accepted = result.Value, result.Alpha, result.Success
			s.logger.Log(info)
			if !result.Success {
				s.res.LSFailure = true
				break
			}
			s.applyStep(xs, us, dxs, dus, result.Alpha)
		}

		pk, dk = s.computeInfeasibilities(xs, us)
		accept := bcl.update(s.Settings.BCL, s.Settings.MuMin, s.Settings.Tol, pk)
		if accept {
			s.updateMultipliers(xs, us, lams, vs, vN, bcl.Mu)
			prevXs = cloneVecs(xs)
		}
		outer := log.IterInfo{ALIter: alIter + 1, Mu: bcl.Mu, Reg: reg, PrimalInf: pk, DualInf: dk}
		s.logger.Log(outer)
		if s.Settings.Verbose >= log.VeryVerbose {
			s.res.Iters = append(s.res.Iters, outer)
		}

		if pk <= s.Settings.Tol && dk <= s.Settings.Tol {
			converged = true
			break
		}
	}

	s.res.Converged = converged
	s.res.Xs, s.res.Us, s.res.Lams, s.res.Vs = xs, us, lams, vs
	s.res.VN = vN
	s.res.PrimalInfeas, s.res.DualInfeas = pk, dk
	s.res.Runtime = time.Since(start)
	return converged, nil
}

// UpdateLQSubproblem rebuilds the Workspace's LQ approximation at (xs, us,
// lams, vs) with AL penalty mu and proximal weight rho, overwriting the
// pre-sized blocks in place (exported for the introspection-hook
// contract of spec.md §6).
func (s *Solver) UpdateLQSubproblem(xs, us, lams, vs []*mat.VecDense, mu, rho float64) {
	s.updateLQSubproblem(xs, us, lams, vs, nil, mu, rho, xs)
}

// ComputeCriterion returns the stationarity measure used to decide
// inner-loop termination: it runs a forward pass on the current
// factorization and returns the largest infinity norm over all of that
// pass's state and control steps.
func (s *Solver) ComputeCriterion() float64 {
	dxs, dus := s.forward()
	return criterion(dxs, dus)
}

// ComputeInfeasibilities returns the primal and dual infeasibility of
// (xs, us) against prob, per spec.md §4.7 step 3 and §8.
func (s *Solver) ComputeInfeasibilities(prob *Problem, xs, us []*mat.VecDense) (primal, dual float64) {
	return s.computeInfeasibilities(xs, us)
}

func criterion(dxs, dus []*mat.VecDense) float64 {
	var m float64
	for _, d := range dus {
		m = math.Max(m, infNorm(d))
	}
	for _, d := range dxs {
		m = math.Max(m, infNorm(d))
	}
	return m
}

func infNorm(v *mat.VecDense) float64 {
	var m float64
	for i := 0; i < v.Len(); i++ {
		if a := math.Abs(v.AtVec(i)); a > m {
			m = a
		}
	}
	return m
}

func (s *Solver) initXs(xsInit []*mat.VecDense) []*mat.VecDense {
	n := s.prob.Horizon()
	xs := make([]*mat.VecDense, n+1)
	xs[0] = mat.VecDenseCopyOf(s.prob.X0)
	for t := 1; t <= n; t++ {
		if xsInit != nil {
			xs[t] = mat.VecDenseCopyOf(xsInit[t])
		} else {
			xs[t] = s.prob.Manifold.Neutral()
		}
	}
	return xs
}

func (s *Solver) initUs(usInit []*mat.VecDense) []*mat.VecDense {
	n := s.prob.Horizon()
	us := make([]*mat.VecDense, n)
	for t := 0; t < n; t++ {
		if usInit != nil {
			us[t] = mat.VecDenseCopyOf(usInit[t])
		} else {
			us[t] = mat.NewVecDense(s.prob.Stages[t].Nu, nil)
		}
	}
	return us
}

// parallelStages dispatches fn(t) for every stage index in [0, n) across
// the Solver's workpool.Pool, one span of stages per worker;
// fn must only touch index-t-owned state (distinct knots, distinct
// scratch data) since spans run concurrently. Falls back to a serial loop
// when n is too small to be worth dispatching.
func (s *Solver) parallelStages(n int, fn func(t int)) {
	if s.pool == nil || n <= 1 {
		for t := 0; t < n; t++ {
			fn(t)
		}
		return
	}
	spans := workpool.MakeSpans(n, s.pool.NumWorkers())
	s.pool.Run(spans, func(sp workpool.Span) {
		for t := sp.Lo; t < sp.Hi; t++ {
			fn(t)
		}
	})
}

func cloneVecs(vs []*mat.VecDense) []*mat.VecDense {
	out := make([]*mat.VecDense, len(vs))
	for i, v := range vs {
		out[i] = mat.VecDenseCopyOf(v)
	}
	return out
}

// backward runs the serial or parallel Riccati backward pass depending on
// Settings.NumLegs, writing into the Workspace's pre-allocated factors.
func (s *Solver) backward(reg float64) bool {
	const mudyn = 1e-6 // leg-gluing softening only; ordinary dynamics are eliminated exactly via E
	if s.Settings.NumLegs <= 1 {
		return gar.BackwardSerial(s.ws.LQ, s.ws.Factors, mudyn, s.ws.Mu, reg)
	}
	legDatas, thetas, ok := gar.BackwardParallel(s.ws.LQ, s.Settings.NumLegs, s.ws.Dxs[0], mudyn, s.ws.Mu, reg)
	if !ok {
		return false
	}
	s.ws.legDatas, s.ws.thetas = legDatas, thetas
	return true
}

func (s *Solver) forward() (dxs, dus []*mat.VecDense) {
	if s.Settings.NumLegs <= 1 {
		dxs, dus = gar.ForwardSerial(s.ws.LQ, s.ws.Factors, s.ws.Dxs[0])
		s.refineForward(dxs, dus)
		return dxs, dus
	}
	return gar.ForwardParallel(s.ws.LQ, s.ws.legDatas, s.ws.thetas, s.ws.Dxs[0], s.Settings.NumLegs)
}

// applyStep advances (xs, us) by the step alpha*(dxs, dus), integrating
// states along the manifold and adding controls in the (Euclidean)
// control space.
func (s *Solver) applyStep(xs, us []*mat.VecDense, dxs, dus []*mat.VecDense, alpha float64) {
	for t := range xs {
		var d mat.VecDense
		d.ScaleVec(alpha, dxs[t])
		xs[t] = s.prob.Manifold.Integrate(xs[t], &d)
	}
	for t := range us {
		var d mat.VecDense
		d.ScaleVec(alpha, dus[t])
		var u mat.VecDense
		u.AddVec(us[t], &d)
		us[t] = mat.VecDenseCopyOf(&u)
	}
	if s.Settings.RolloutType == Nonlinear {
		s.correctNonlinearRollout(xs, us)
	}
}

// correctNonlinearRollout re-integrates the true (nonlinear) dynamics
// stage functions forward from x0, replacing the linearized trial states
// with the dynamics' actual prediction: at each stage it takes up to
// Settings.RolloutMaxIters Newton corrections Jy·δ = -φ on the next state,
// stopping once the residual's infinity norm is at most
// Settings.RefinementThreshold or Jy cannot be solved.
func (s *Solver) correctNonlinearRollout(xs, us []*mat.VecDense) {
	for t, st := range s.prob.Stages {
		data := st.Dynamics.CreateData()
		y := xs[t+1]
		for it := 0; it < s.Settings.RolloutMaxIters; it++ {
			st.Dynamics.Evaluate(xs[t], us[t], y, data)
			if infNorm(data.Value) <= s.Settings.RefinementThreshold {
				break
			}
			st.Dynamics.ComputeJacobians(xs[t], us[t], y, data)
			var corr mat.VecDense
			if err := corr.SolveVec(data.Jy, data.Value); err != nil {
				break
			}
			corr.ScaleVec(-1, &corr)
			y = s.prob.Manifold.Integrate(y, &corr)
		}
		xs[t+1] = y
	}
}
