// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lq

import "gonum.org/v1/gonum/mat"

// Problem is an ordered chain of Knots together with the initial and
// terminal constraints that close the horizon.
type Problem struct {
	// G0, g0 is the initial constraint G0·x0 + g0 = 0, of row-count Nc0.
	G0 *mat.Dense
	g0 *mat.VecDense

	Stages []*Knot

	// Terminal cost ½x_NᵀQNxN + qNᵀxN.
	QN *mat.SymDense
	qN *mat.VecDense

	// Terminal constraint GN·xN + gN = 0, of row-count NcN (may be empty).
	GN *mat.Dense
	gN *mat.VecDense
}

// NewProblem allocates a Problem for a horizon of N stages with the given
// initial-constraint row-count nc0 and terminal state dimension nxN.
func NewProblem(nc0, nx0, nxN, ncN int, stages []*Knot) *Problem {
	return &Problem{
		G0:     mat.NewDense(nc0, nx0, nil),
		g0:     mat.NewVecDense(nc0, nil),
		Stages: stages,
		QN:     mat.NewSymDense(nxN, nil),
		qN:     mat.NewVecDense(nxN, nil),
		GN:     mat.NewDense(ncN, nxN, nil),
		gN:     mat.NewVecDense(ncN, nil),
	}
}

// G0vec returns the initial constraint shift g0.
func (p *Problem) G0vec() *mat.VecDense { return p.g0 }

// QNvec returns the terminal cost linear term qN.
func (p *Problem) QNvec() *mat.VecDense { return p.qN }

// GNvec returns the terminal constraint shift gN.
func (p *Problem) GNvec() *mat.VecDense { return p.gN }

// Horizon returns the number of stages N (|xs| = N+1, |us| = N).
func (p *Problem) Horizon() int { return len(p.Stages) }

// EqualProblem reports whether a and b are equal stage-by-stage, including
// the initial constraint, per the value-semantics contract of Knot.
func EqualProblem(a, b *Problem) bool {
	if len(a.Stages) != len(b.Stages) {
		return false
	}
	if !mat.Equal(a.G0, b.G0) || !mat.Equal(a.g0, b.g0) {
		return false
	}
	if !mat.Equal(a.QN, b.QN) || !mat.Equal(a.qN, b.qN) {
		return false
	}
	if !mat.Equal(a.GN, b.GN) || !mat.Equal(a.gN, b.gN) {
		return false
	}
	for i := range a.Stages {
		if !Equal(a.Stages[i], b.Stages[i]) {
			return false
		}
	}
	return true
}
