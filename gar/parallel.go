// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gar

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/lq"
)

// errFactorization is returned internally by a leg's errgroup task to
// signal a non-SPD pivot; BackwardParallel translates it into ok=false
// without propagating the error to callers (the backward sweep is
// expected to fail occasionally under a poor trust region and is handled
// by the outer solver's regularization retry, not treated as fatal).
var errFactorization = errors.New("gar: stage factorization failed")

// Split partitions the horizon [0, n) into at most nLegs contiguous,
// disjoint legs of near-equal length and returns their boundaries as a
// slice of length len(legs)+1, e.g. Split(20, 4) == [0 5 10 15 20].
func Split(n, nLegs int) []int {
	if nLegs > n {
		nLegs = n
	}
	if nLegs <= 0 {
		return []int{0, n}
	}
	bounds := make([]int, 0, nLegs+1)
	base := n / nLegs
	rem := n % nLegs
	lo := 0
	bounds = append(bounds, lo)
	for i := 0; i < nLegs; i++ {
		size := base
		if i < rem {
			size++
		}
		lo += size
		bounds = append(bounds, lo)
	}
	return bounds
}

// legSummary is leg ℓ's reduced contribution to the global boundary system:
// its cost-to-go as a quadratic function of (x_lo, θ), where θ is the
// state tangent at the leg's right boundary.
type legSummary struct {
	P   *mat.SymDense // Nx × Nx, Nx = dim(x_lo)
	p   *mat.VecDense // Nx
	Vxt *mat.Dense    // Nx × Nth, Nth = dim(θ)
	Vtt *mat.SymDense // Nth × Nth
	vt  *mat.VecDense // Nth
}

// backwardLeg runs the local backward sweep over knots [lo, hi). For every
// leg but the last, the tangent at the right boundary x_hi is paired with
// a free parameter θ through an augmented-Lagrangian penalty on the
// continuity residual x_hi - θ, with strength mudyn. This is the only
// place mudyn enters the sweep: the ordinary dynamics residuals inside a
// leg are eliminated exactly through E by backwardStep (§4.3's leg
// boundaries are glued by the reduced block-tridiagonal system, not
// substituted exactly, and the penalty vanishes as mudyn -> 0). The last
// leg instead seeds its
// right boundary with the problem's real terminal cost, since there is no
// further leg to glue it to.
func backwardLeg(prob *lq.Problem, lo, hi int, mudyn, mueq, reg float64) ([]*StageFactor, bool) {
	isLast := hi == prob.Horizon()

	var boundary *StageFactor
	var nxBoundary int
	if isLast {
		nxN, _ := prob.QN.Dims()
		boundary = NewStageFactor(nxN, 0)
		terminal(prob, boundary, mueq, reg)
	} else {
		nxBoundary = prob.Stages[hi].Nx
		boundary = NewStageFactor(nxBoundary, 0)
		boundary.AddParameterization(nxBoundary)
		scale := 2 / mudyn
		for i := 0; i < nxBoundary; i++ {
			boundary.Pmat.SetSym(i, i, scale)
			boundary.Vtt.SetSym(i, i, scale)
			boundary.Vxt.Set(i, i, -scale)
		}
	}

	datas := make([]*StageFactor, hi-lo+1)
	datas[hi-lo] = boundary
	for t := hi - 1; t >= lo; t-- {
		if !isLast {
			prob.Stages[t].AddParameterization(nxBoundary)
		}
		this := NewStageFactor(prob.Stages[t].Nx, prob.Stages[t].Nu)
		if !backwardStep(prob.Stages[t], datas[t-lo+1], this, mudyn, mueq, reg) {
			return nil, false
		}
		datas[t-lo] = this
	}
	return datas, true
}

func summarize(first *StageFactor) legSummary {
	return legSummary{P: first.Pmat, p: first.pvec, Vxt: first.Vxt, Vtt: first.Vtt, vt: first.vt}
}

// BackwardParallel runs the fork-join Riccati backward pass: the horizon is
// split into nLegs legs, each leg's local backward sweep runs concurrently
// (via errgroup), and the legs' boundary contributions are glued together
// by solving a reduced, symmetric block-tridiagonal system for the
// internal boundary tangents θ. It returns ok=false if any leg's local
// sweep fails to factor as positive definite, or if the reduced system
// does, matching the logical-AND failure reduction across legs.
func BackwardParallel(prob *lq.Problem, nLegs int, x0 *mat.VecDense, mudyn, mueq, reg float64) (legDatas [][]*StageFactor, thetas []*mat.VecDense, ok bool) {
	bounds := Split(prob.Horizon(), nLegs)
	nl := len(bounds) - 1
	legDatas = make([][]*StageFactor, nl)
	summaries := make([]legSummary, nl)

	g, _ := errgroup.WithContext(context.Background())
	for l := 0; l < nl; l++ {
		l := l
		g.Go(func() error {
			lo, hi := bounds[l], bounds[l+1]
			datas, okl := backwardLeg(prob, lo, hi, mudyn, mueq, reg)
			if !okl {
				return errFactorization
			}
			legDatas[l] = datas
			summaries[l] = summarize(datas[0])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return legDatas, nil, false
	}
	if nl == 1 {
		return legDatas, nil, true
	}

	// Internal boundaries are θ_0..θ_{nl-2}, one per leg except the last.
	m := nl - 1
	diag := make([]*mat.SymDense, m)
	off := make([]*mat.Dense, m-1)
	rhs := make([]*mat.VecDense, m)

	for l := 0; l < m; l++ {
		right := summaries[l]  // leg l's right boundary is θ_l
		left := summaries[l+1] // leg l+1's left boundary is also θ_l

		d := mat.NewSymDense(right.Vtt.Symmetric(), nil)
		d.CopySym(right.Vtt)
		addSymFromDense(d, left.P)
		diag[l] = d

		v := mat.VecDenseCopyOf(right.vt)
		v.AddVec(v, left.p)
		if l == 0 {
			var corr mat.VecDense
			corr.MulVec(right.Vxt.T(), x0)
			v.AddVec(v, &corr)
		}
		// Stationarity in θ_l reads M θ = -(vt + p + Vxtᵀx0), so the
		// reduced system is solved against the negated gradient terms.
		v.ScaleVec(-1, v)
		rhs[l] = v
	}
	for l := 0; l < m-1; l++ {
		off[l] = mat.DenseCopyOf(summaries[l+1].Vxt)
	}

	sys := &BlockTridiag{Diag: diag, Off: off}
	x, solved := sys.Solve(rhs)
	if !solved {
		return legDatas, nil, false
	}
	return legDatas, x, true
}

// ForwardParallel rolls every leg's feedback law forward concurrently,
// given the solved boundary tangents thetas (length nLegs-1) and the
// overall initial tangent dx0.
func ForwardParallel(prob *lq.Problem, legDatas [][]*StageFactor, thetas []*mat.VecDense, dx0 *mat.VecDense, nLegs int) (dxs, dus []*mat.VecDense) {
	bounds := Split(prob.Horizon(), nLegs)
	nl := len(bounds) - 1
	n := prob.Horizon()
	dxs = make([]*mat.VecDense, n+1)
	dus = make([]*mat.VecDense, n)
	dxs[0] = mat.VecDenseCopyOf(dx0)

	var g errgroup.Group
	for l := 0; l < nl; l++ {
		l := l
		g.Go(func() error {
			lo, hi := bounds[l], bounds[l+1]
			var theta *mat.VecDense
			if l < nl-1 {
				theta = thetas[l]
			}
			xlo := dxs[0]
			if l > 0 {
				xlo = thetas[l-1]
			}
			x := mat.VecDenseCopyOf(xlo)
			for t := lo; t < hi; t++ {
				k := prob.Stages[t]
				d := legDatas[l][t-lo]
				du := mat.NewVecDense(k.Nu, nil)
				du.MulVec(d.K, x)
				du.AddVec(du, d.k)
				if theta != nil && d.Kth != nil {
					var kth mat.VecDense
					kth.MulVec(d.Kth, theta)
					du.AddVec(du, &kth)
				}
				dus[t] = du

				var ahat, bhat mat.Dense
				ahat.Solve(k.E, k.A)
				ahat.Scale(-1, &ahat)
				bhat.Solve(k.E, k.B)
				bhat.Scale(-1, &bhat)
				var fhat mat.VecDense
				fhat.SolveVec(k.E, k.Fvec())
				fhat.ScaleVec(-1, &fhat)

				x1 := mat.NewVecDense(k.Nx, nil)
				x1.MulVec(&ahat, x)
				var bu mat.VecDense
				bu.MulVec(&bhat, du)
				x1.AddVec(x1, &bu)
				x1.AddVec(x1, &fhat)

				dxs[t+1] = x1
				x = x1
			}
			return nil
		})
	}
	g.Wait()
	return dxs, dus
}
