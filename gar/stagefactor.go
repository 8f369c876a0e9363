// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gar ("generalized augmented Riccati") implements the structured
// linear solver that factorizes and solves the block-banded KKT system
// arising from a linearized, augmented-Lagrangian optimal-control
// subproblem: a serial backward/forward Riccati sweep (§4.2), its
// parallel-condensing variant (§4.3), and the symmetric block-tridiagonal
// solve (§4.4) that glues the condensed legs back together.
package gar

import "gonum.org/v1/gonum/mat"

// StageFactor is the per-knot Riccati workspace: the value-function blocks
// (Pmat, pvec, and, for knots carrying a θ-parameterization, Vtt/Vxt/vt),
// the feedback gain K and feedforward k, and the θ-feedback Kth used by
// every knot of a non-final leg in the parallel solver.
type StageFactor struct {
	Nx, Nu, Nth int

	Pmat *mat.SymDense // Nx × Nx
	pvec *mat.VecDense // Nx

	Vtt *mat.SymDense // Nth × Nth, valid only if Nth > 0
	Vxt *mat.Dense    // Nx × Nth, valid only if Nth > 0
	vt  *mat.VecDense // Nth, valid only if Nth > 0

	K   *mat.Dense    // Nu × Nx feedback gain
	k   *mat.VecDense // Nu feedforward
	Kth *mat.Dense    // Nu × Nth θ-feedback, valid only if Nth > 0

	chol mat.Cholesky // scratch factorization of the condensed (u,u) block
	spd  bool         // whether the last Factorize call on chol succeeded
}

// NewStageFactor allocates a stage factor for a knot of state dimension nx
// and control dimension nu. Call AddParameterization to size the
// θ-coupling blocks for legs produced by the parallel condensation.
func NewStageFactor(nx, nu int) *StageFactor {
	return &StageFactor{
		Nx: nx, Nu: nu,
		Pmat: mat.NewSymDense(nx, nil),
		pvec: mat.NewVecDense(nx, nil),
		K:    mat.NewDense(nu, nx, nil),
		k:    mat.NewVecDense(nu, nil),
	}
}

// Pvec returns the value-function linear term p.
func (s *StageFactor) Pvec() *mat.VecDense { return s.pvec }

// Kvec returns the feedforward term k.
func (s *StageFactor) Kvec() *mat.VecDense { return s.k }

// Vtvec returns the θ-coupled value-function linear term vt, or nil if the
// stage factor has not been parameterized.
func (s *StageFactor) Vtvec() *mat.VecDense { return s.vt }

// AddParameterization allocates the θ-coupling blocks (Vtt, Vxt, vt, Kth)
// sized to nth.
func (s *StageFactor) AddParameterization(nth int) {
	s.Nth = nth
	s.Vtt = mat.NewSymDense(nth, nil)
	s.Vxt = mat.NewDense(s.Nx, nth, nil)
	s.vt = mat.NewVecDense(nth, nil)
	s.Kth = mat.NewDense(s.Nu, nth, nil)
}

// IsSPD reports whether the last factorized (u,u) block was found
// numerically positive definite.
func (s *StageFactor) IsSPD() bool {
	return s.spd
}
