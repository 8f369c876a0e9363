// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/constraint"
	"github.com/go-trajopt/proxddp/gar"
	"github.com/go-trajopt/proxddp/lq"
	"github.com/go-trajopt/proxddp/proxscaler"
)

// Workspace holds the solver's per-problem buffers, sized to the problem
// once in NewWorkspace. The LQ knots and the serial Factors are
// overwritten in place on every iteration; the parallel leg factors and
// condensed boundary system built by gar.BackwardParallel, the forward
// pass's steps and the line search's trial trajectories are still
// allocated on each call.
type Workspace struct {
	LQ      *lq.Problem
	Factors []*gar.StageFactor

	// Scalers holds one ProxScaler per stage that has a path constraint,
	// and nil for stages without one.
	Scalers []*proxscaler.Scaler

	XsTrial, UsTrial []*mat.VecDense
	Dxs, Dus         []*mat.VecDense

	PrevXs, PrevUs   []*mat.VecDense
	PrevLams, PrevVs []*mat.VecDense
	LamsPlus, VsPlus []*mat.VecDense

	Reg float64
	Mu  float64
	Rho float64

	// legDatas/thetas cache the most recent parallel backward pass's
	// output for the matching forward pass; unused when NumLegs <= 1.
	legDatas [][]*gar.StageFactor
	thetas   []*mat.VecDense
}

// NewWorkspace allocates a Workspace for prob, including its nested LQ
// problem (stage dimensions mirror prob's, constraint row-counts drawn
// from each stage's PathConstraint, if any).
func NewWorkspace(prob *Problem) *Workspace {
	n := prob.Horizon()
	nx := prob.Manifold.Ndx()

	stages := make([]*lq.Knot, n)
	scalers := make([]*proxscaler.Scaler, n)
	for t, s := range prob.Stages {
		nc := 0
		if s.Constraint != nil {
			nc = s.Constraint.Set.Dim()
		}
		stages[t] = lq.NewKnot(nx, s.Nu, nc)
		if nc > 0 {
			scalers[t] = newConstraintScaler(s.Constraint.Set)
		}
	}

	ncN := 0
	if prob.Terminal != nil {
		ncN = prob.Terminal.Set.Dim()
	}
	lqProb := lq.NewProblem(0, nx, nx, ncN, stages)

	w := &Workspace{
		LQ:       lqProb,
		Factors:  gar.AllocateStageFactors(lqProb),
		Scalers:  scalers,
		XsTrial:  make([]*mat.VecDense, n+1),
		UsTrial:  make([]*mat.VecDense, n),
		Dxs:      make([]*mat.VecDense, n+1),
		Dus:      make([]*mat.VecDense, n),
		PrevXs:   make([]*mat.VecDense, n+1),
		PrevUs:   make([]*mat.VecDense, n),
		PrevLams: make([]*mat.VecDense, n+1),
		PrevVs:   make([]*mat.VecDense, n),
		LamsPlus: make([]*mat.VecDense, n+1),
		VsPlus:   make([]*mat.VecDense, n),
	}
	for t := 0; t <= n; t++ {
		w.Dxs[t] = mat.NewVecDense(nx, nil)
		w.PrevLams[t] = mat.NewVecDense(nx, nil)
		w.LamsPlus[t] = mat.NewVecDense(nx, nil)
	}
	for t, s := range prob.Stages {
		w.Dus[t] = mat.NewVecDense(s.Nu, nil)
		if s.Constraint != nil {
			nc := s.Constraint.Set.Dim()
			w.PrevVs[t] = mat.NewVecDense(nc, nil)
			w.VsPlus[t] = mat.NewVecDense(nc, nil)
		}
	}
	return w
}

// newConstraintScaler builds a proxscaler.Scaler for a stage's constraint
// set, one block per sub-set of a constraint.ConeProduct so a
// heterogeneous path constraint (e.g. an equality block next to a box
// block) gets independently-weighted rows (§4.5), or a single block for a
// bare Set.
func newConstraintScaler(set constraint.Set) *proxscaler.Scaler {
	if cp, ok := set.(*constraint.ConeProduct); ok {
		sub := cp.Sets()
		dims := make([]int, len(sub))
		isEq := make([]bool, len(sub))
		for i, s := range sub {
			dims[i] = s.Dim()
			_, isEq[i] = s.(constraint.Equality)
		}
		sc := proxscaler.New(dims)
		sc.ApplyDefaultScalingStrategy(isEq)
		return sc
	}
	_, isEq := set.(constraint.Equality)
	sc := proxscaler.New([]int{set.Dim()})
	sc.ApplyDefaultScalingStrategy([]bool{isEq})
	return sc
}
