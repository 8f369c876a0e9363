// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/constraint"
	"github.com/go-trajopt/proxddp/manifold"
	"github.com/go-trajopt/proxddp/model"
)

// ErrDimensionMismatch is returned by Setup when the problem's stage
// dimensions are internally inconsistent.
var ErrDimensionMismatch = errors.New("proxddp: dimension mismatch")

// PathConstraint pairs a stage function with the convex set its value must
// lie in.
type PathConstraint struct {
	Function model.StageFunction
	Set      constraint.Set
}

// TerminalConstraint pairs a unary function of the terminal state with the
// convex set its value must lie in.
type TerminalConstraint struct {
	Function model.UnaryFunction
	Set      constraint.Set
}

// Stage holds one time step's dynamics, cost, and optional path
// constraint.
type Stage struct {
	Nu         int
	Dynamics   model.StageFunction // Nr() == next stage's manifold.Ndx()
	Cost       model.Cost
	Constraint *PathConstraint // nil if this stage has no path constraint
}

// Problem is the nonlinear nonconvex trajectory-optimization problem the
// solver drives to a KKT point: the modelling-layer callbacks (§6) plus the
// fixed initial state.
type Problem struct {
	Manifold     manifold.Manifold
	X0           *mat.VecDense
	Stages       []Stage
	TerminalCost model.Cost // evaluated as Cost.Evaluate(xN, <zero-length u>, ...)
	Terminal     *TerminalConstraint
}

// Horizon returns the number of stages N.
func (p *Problem) Horizon() int { return len(p.Stages) }

func (p *Problem) validate() error {
	if p.Manifold == nil || p.X0 == nil {
		return ErrDimensionMismatch
	}
	if p.X0.Len() != p.Manifold.Ndx() {
		return ErrDimensionMismatch
	}
	if len(p.Stages) == 0 {
		return ErrDimensionMismatch
	}
	for _, s := range p.Stages {
		if s.Dynamics == nil || s.Cost == nil {
			return ErrDimensionMismatch
		}
		if s.Dynamics.Nr() != p.Manifold.Ndx() {
			return ErrDimensionMismatch
		}
	}
	return nil
}
