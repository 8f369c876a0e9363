// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/constraint"
	"github.com/go-trajopt/proxddp/manifold"
	"github.com/go-trajopt/proxddp/model"
	"github.com/go-trajopt/proxddp/proxddp/log"
)

// lqrProblem builds the unconstrained LQR regulation scenario: drive
// x_{t+1} = A x_t + B u_t + c to the origin over a fixed horizon, with
// quadratic stage and terminal costs.
func lqrProblem(n int) *Problem {
	A := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	B := mat.NewDense(2, 2, []float64{-0.6, 0.3, 0, 1})
	E := mat.NewDense(2, 2, []float64{-1, 0, 0, -1})
	c := mat.NewVecDense(2, []float64{0.1, 0})

	Q := mat.NewSymDense(2, []float64{2, 0, 0, 1})
	R := mat.NewSymDense(2, []float64{0.01, 0, 0, 0.01})
	xref := mat.NewVecDense(2, nil)
	uref := mat.NewVecDense(2, nil)

	stages := make([]Stage, n)
	for t := range stages {
		stages[t] = Stage{
			Nu:       2,
			Dynamics: &model.LinearDynamics{A: A, B: B, E: E, F: c},
			Cost:     &model.QuadraticCost{Q: Q, R: R, Xref: xref, Uref: uref},
		}
	}

	return &Problem{
		Manifold: manifold.NewRn(2),
		X0:       mat.NewVecDense(2, []float64{1, -0.1}),
		Stages:   stages,
		TerminalCost: &model.QuadraticCost{
			Q: Q, R: mat.NewSymDense(0, nil),
			Xref: xref, Uref: mat.NewVecDense(0, nil),
		},
	}
}

func TestSolverConvergesOnLQR(t *testing.T) {
	prob := lqrProblem(20)
	s := NewSolver(1e-7, 1e-6, 0, 50, log.Quiet, GaussNewton)
	if err := s.Setup(prob); err != nil {
		t.Fatalf("Setup: %v", err)
	}

	converged, err := s.Run(nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !converged {
		t.Fatalf("expected convergence, got al_iters=%d primal=%g dual=%g",
			s.res.NumALIters, s.res.PrimalInfeas, s.res.DualInfeas)
	}
	if s.res.NumALIters > 2 {
		t.Errorf("expected convergence within 2 AL iterations for an unconstrained LQR problem, got %d", s.res.NumALIters)
	}

	xN := s.res.Xs[len(s.res.Xs)-1]
	if n := infNorm(xN); n > 1e-3 {
		t.Errorf("terminal state not driven to the origin: ||x_N||_inf = %g", n)
	}
}

func TestSolverParallelMatchesSerial(t *testing.T) {
	serialProb := lqrProblem(20)
	s1 := NewSolver(1e-7, 1e-6, 0, 50, log.Quiet, GaussNewton)
	if err := s1.Setup(serialProb); err != nil {
		t.Fatalf("Setup serial: %v", err)
	}
	conv1, err := s1.Run(nil, nil)
	if err != nil || !conv1 {
		t.Fatalf("serial solve did not converge: conv=%v err=%v", conv1, err)
	}

	parallelProb := lqrProblem(20)
	s2 := NewSolver(1e-7, 1e-6, 0, 50, log.Quiet, GaussNewton)
	s2.Settings.NumLegs = 2
	if err := s2.Setup(parallelProb); err != nil {
		t.Fatalf("Setup parallel: %v", err)
	}
	conv2, err := s2.Run(nil, nil)
	if err != nil || !conv2 {
		t.Fatalf("parallel solve did not converge: conv=%v err=%v", conv2, err)
	}

	for t := range s1.res.Xs {
		diff := s1.res.Xs[t].RawVector().Data
		other := s2.res.Xs[t].RawVector().Data
		for i := range diff {
			if math.Abs(diff[i]-other[i]) > 1e-4 {
				t.Fatalf("stage %d component %d: serial=%g parallel=%g", t, i, diff[i], other[i])
			}
		}
	}
}

func TestSolverTerminalEqualityConstraint(t *testing.T) {
	prob := lqrProblem(15)
	prob.Terminal = &TerminalConstraint{
		Function: &model.EqualityResidual{Target: mat.NewVecDense(2, nil)},
		Set:      constraint.NewEquality(2),
	}

	s := NewSolver(1e-6, 1e-4, 1e-3, 80, log.Quiet, GaussNewton)
	if err := s.Setup(prob); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	converged, err := s.Run(nil, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !converged {
		t.Fatalf("expected convergence with a terminal equality constraint, primal=%g dual=%g", s.res.PrimalInfeas, s.res.DualInfeas)
	}
	xN := s.res.Xs[len(s.res.Xs)-1]
	if n := infNorm(xN); n > 1e-2 {
		t.Errorf("terminal equality constraint not satisfied: ||x_N||_inf = %g", n)
	}
}

func TestRunWithoutSetupFails(t *testing.T) {
	s := NewSolver(1e-6, 1e-2, 0, 10, log.Quiet, GaussNewton)
	if _, err := s.Run(nil, nil); err != ErrNotSetup {
		t.Fatalf("got err %v, want ErrNotSetup", err)
	}
}
