// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proxddp implements the proximal augmented-Lagrangian DDP solver:
// an outer Bertsekas constrained-Lagrangian (BCL) loop adjusting the AL
// penalty and tolerance schedule around an inner primal-dual Newton loop
// that calls the gar Riccati solver for the search direction and the
// linesearch package for step acceptance.
package proxddp

import (
	"github.com/go-trajopt/proxddp/linesearch"
	"github.com/go-trajopt/proxddp/proxddp/log"
)

// HessianApprox selects how the stage cost Hessian is built.
type HessianApprox int

const (
	// GaussNewton drops second-order constraint curvature terms, using
	// only the cost Hessian and the AL penalty's own (always-correct)
	// Gauss-Newton curvature. This is the only approximation these
	// reference StageFunction implementations support, since
	// model.VectorHessianProvider is never exercised by them; Exact falls
	// back to the same computation and is accepted only so callers can
	// request it without a setup-time error.
	GaussNewton HessianApprox = iota
	// Exact builds the same model as GaussNewton; vector-Hessian-product
	// terms from model.VectorHessianProvider are not added.
	Exact
)

// RolloutType selects how the forward step is applied to the nonlinear
// problem.
type RolloutType int

const (
	// Linear applies the Riccati feedback law directly to the
	// linearization, x_{t+1} = x_t ⊕ (Â δx_t + B̂ δu_t + f̂).
	Linear RolloutType = iota
	// Nonlinear integrates the true dynamics stage function, correcting
	// for linearization error with up to Settings.RolloutMaxIters Newton
	// substeps per stage.
	Nonlinear
)

// MultiplierUpdateMode selects how the dynamics costate is advanced
// after an accepted AL iteration. Path/terminal multipliers always use
// the classical ALM "plus" formula regardless of mode: they are
// AL-penalized rather than eliminated, so there is no competing
// Newton-system estimate for them to select between (see
// updateMultipliers). Only the dynamics costate, which the Riccati
// recursion eliminates exactly rather than penalizes, has two distinct
// sources to choose from.
type MultiplierUpdateMode int

const (
	// UpdateNewton takes the dynamics costate directly from the Riccati
	// backward pass's value-function gradient (the Newton-system dual).
	UpdateNewton MultiplierUpdateMode = iota
	// UpdatePrimal takes the dynamics costate from the classical ALM
	// "plus" formula λ⁺ = Π(c/μ + λ) applied to the dynamics residual
	// (treating the dynamics as an equality constraint in its own
	// right, the same closed form used for path/terminal multipliers).
	UpdatePrimal
)

// LSMode selects the line-search acceptance strategy.
type LSMode int

const (
	// Armijo backtracks the step size from 1 until sufficient decrease.
	Armijo LSMode = iota
	// Nonmonotone always accepts the fixed step α=1.
	Nonmonotone
)

// BCLParams configures the Bertsekas constrained-Lagrangian schedule for
// the AL penalty μ and the constraint/inner tolerances.
type BCLParams struct {
	AlphaMu  float64 // μ shrink factor on a rejected AL iteration, in (0,1)
	AlphaEps float64 // ε/η tighten factor on an accepted AL iteration, in (0,1)
	MuInit   float64
	RhoInit  float64
}

// DefaultBCLParams returns the commonly used Bertsekas schedule constants.
func DefaultBCLParams() BCLParams {
	return BCLParams{AlphaMu: 0.1, AlphaEps: 0.1, MuInit: 1e-2, RhoInit: 0}
}

// Settings collects every solver tunable named by the public API.
type Settings struct {
	Tol   float64 // target primal+dual infeasibility for CONVERGED
	BCL   BCLParams
	MuMin float64

	MaxALIters          int
	RolloutMaxIters     int
	MaxRefinementSteps  int
	RefinementThreshold float64

	LSMode               LSMode
	RolloutType          RolloutType
	MultiplierUpdateMode MultiplierUpdateMode
	HessApprox           HessianApprox

	RegMin     float64
	RegMax     float64
	RegInitial float64

	// NumLegs, when > 1, selects the parallel-condensing Riccati backward
	// pass over nLegs legs instead of the serial sweep.
	NumLegs int

	LS linesearch.Settings

	Verbose log.Verbosity
}

// DefaultSettings returns a Settings populated with the library's default
// tunables, mirroring the constructor defaults spec'd for SolverProxDDP.
func DefaultSettings(tol, muInit, rhoInit float64, maxALIters int, verbose log.Verbosity, hess HessianApprox) Settings {
	bcl := DefaultBCLParams()
	bcl.MuInit = muInit
	bcl.RhoInit = rhoInit
	return Settings{
		Tol:                  tol,
		BCL:                  bcl,
		MuMin:                1e-8,
		MaxALIters:           maxALIters,
		RolloutMaxIters:      10,
		MaxRefinementSteps:   2,
		RefinementThreshold:  1e-10,
		LSMode:               Armijo,
		RolloutType:          Linear,
		MultiplierUpdateMode: UpdatePrimal,
		HessApprox:           hess,
		RegMin:               1e-10,
		RegMax:               1e6,
		RegInitial:           1e-9,
		NumLegs:              1,
		LS:                   linesearch.DefaultSettings(),
		Verbose:              verbose,
	}
}
