// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gar

import (
	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/lq"
)

// BackwardSerial runs the single-threaded Riccati backward sweep over prob,
// writing one StageFactor per knot plus a terminal one into datas (which
// must already have length Horizon()+1, e.g. from AllocateStageFactors).
// mueq is the augmented-Lagrangian penalty strength for the path-constraint
// residuals. mudyn is not used by the serial sweep, which eliminates the
// dynamics exactly through E; in BackwardParallel it sets only the penalty
// that joins adjacent legs. reg is added to the
// diagonal of every stage's state Hessian block as a numerical
// regularizer. BackwardSerial returns false, aborting the sweep, as soon as
// a stage's condensed (u,u) block fails to factor as positive definite.
func BackwardSerial(prob *lq.Problem, datas []*StageFactor, mudyn, mueq, reg float64) bool {
	n := prob.Horizon()
	if len(datas) != n+1 {
		panic("gar: datas must have length Horizon()+1")
	}
	terminal(prob, datas[n], mueq, reg)
	for t := n - 1; t >= 0; t-- {
		if !backwardStep(prob.Stages[t], datas[t+1], datas[t], mudyn, mueq, reg) {
			return false
		}
	}
	return true
}

// terminal initializes the value function at the end of the horizon from
// the problem's terminal cost, AL-penalizing the terminal constraint
// (GN, gN) if one is present.
func terminal(prob *lq.Problem, term *StageFactor, mueq, reg float64) {
	nx := term.Nx
	term.Pmat.CopySym(prob.QN)
	term.pvec.CopyVec(prob.QNvec())
	for i := 0; i < nx; i++ {
		term.Pmat.SetSym(i, i, term.Pmat.At(i, i)+reg)
	}
	if prob.GN == nil {
		return
	}
	var ggt mat.Dense
	ggt.Mul(prob.GN.T(), prob.GN)
	ggt.Scale(1/mueq, &ggt)
	addSymFromDense(term.Pmat, &ggt)

	var gtd mat.VecDense
	gtd.MulVec(prob.GN.T(), prob.GNvec())
	gtd.ScaleVec(1/mueq, &gtd)
	term.pvec.AddVec(term.pvec, &gtd)
}

// backwardStep eliminates the current knot's control (and, via the knot's
// dynamics block E, the next state) against the next stage's value
// function `next`, writing the resulting feedback law and propagated value
// function into `this`. It returns false if the condensed control Hessian
// is not numerically positive definite.
func backwardStep(k *lq.Knot, next, this *StageFactor, mudyn, mueq, reg float64) bool {
	nx, nu := k.Nx, k.Nu

	// Eliminate the dynamics block E: the knot's residual A x + B u + E y + f
	// = 0 is solved for the next tangent y as an explicit affine map of
	// (x, u), y = Ahat x + Bhat u + fhat. E is required invertible (the
	// identity manifold convention is E = -I).
	var ahat, bhat mat.Dense
	if err := ahat.Solve(k.E, k.A); err != nil {
		return false
	}
	ahat.Scale(-1, &ahat)
	if err := bhat.Solve(k.E, k.B); err != nil {
		return false
	}
	bhat.Scale(-1, &bhat)
	var fhatVec mat.VecDense
	if err := fhatVec.SolveVec(k.E, k.Fvec()); err != nil {
		return false
	}
	fhatVec.ScaleVec(-1, &fhatVec)

	// Pf = P*fhat + p (affine part of the propagated costate)
	var pf mat.VecDense
	pf.MulVec(next.Pmat, &fhatVec)
	pf.AddVec(&pf, next.pvec)

	var paHat, pbHat mat.Dense
	paHat.Mul(next.Pmat, &ahat)
	pbHat.Mul(next.Pmat, &bhat)

	var qxx mat.Dense
	qxx.Mul(ahat.T(), &paHat)
	qxx.Add(&qxx, k.Q)
	var quu mat.Dense
	quu.Mul(bhat.T(), &pbHat)
	quu.Add(&quu, k.R)
	var qux mat.Dense
	qux.Mul(bhat.T(), &paHat)
	qux.Add(&qux, k.S)

	var qx, qu mat.VecDense
	qx.MulVec(ahat.T(), &pf)
	qx.AddVec(&qx, k.Qvec())
	qu.MulVec(bhat.T(), &pf)
	qu.AddVec(&qu, k.Rvec())

	if k.Nc > 0 {
		var ctc, dtd, dtc mat.Dense
		ctc.Mul(k.C.T(), k.C)
		dtd.Mul(k.D.T(), k.D)
		dtc.Mul(k.D.T(), k.C)
		ctc.Scale(1/mueq, &ctc)
		dtd.Scale(1/mueq, &dtd)
		dtc.Scale(1/mueq, &dtc)
		qxx.Add(&qxx, &ctc)
		quu.Add(&quu, &dtd)
		qux.Add(&qux, &dtc)

		var ctd, dtd2 mat.VecDense
		ctd.MulVec(k.C.T(), k.Dvec())
		dtd2.MulVec(k.D.T(), k.Dvec())
		ctd.ScaleVec(1/mueq, &ctd)
		dtd2.ScaleVec(1/mueq, &dtd2)
		qx.AddVec(&qx, &ctd)
		qu.AddVec(&qu, &dtd2)
	}
	for i := 0; i < nx; i++ {
		qxx.Set(i, i, qxx.At(i, i)+reg)
	}

	quuSym := mat.NewSymDense(nu, nil)
	copyDenseToSym(quuSym, &quu)
	if ok := this.chol.Factorize(quuSym); !ok {
		this.spd = false
		return false
	}
	this.spd = true

	// K = -Quu^-1 Qux, k = -Quu^-1 Qu
	var K mat.Dense
	if err := this.chol.SolveTo(&K, &qux); err != nil {
		return false
	}
	K.Scale(-1, &K)
	this.K.Copy(&K)

	var kk mat.VecDense
	if err := this.chol.SolveVecTo(&kk, &qu); err != nil {
		return false
	}
	kk.ScaleVec(-1, &kk)
	this.k.CopyVec(&kk)

	// P = Qxx + Qux^T K, p = Qx + Qux^T k  (Schur complement of Quu in H).
	var quxTK mat.Dense
	quxTK.Mul(qux.T(), &K)
	var pnew mat.Dense
	pnew.Add(&qxx, &quxTK)
	copyDenseToSym(this.Pmat, &pnew)

	var quxTk mat.VecDense
	quxTk.MulVec(qux.T(), &kk)
	this.pvec.AddVec(&qx, &quxTk)

	if k.Nth == 0 {
		return true
	}

	// θ-coupling: next.Vxt/Vtt/vt carry the dependence on the leg's
	// boundary parameter θ accumulated from later knots in the same leg;
	// the knot's own Gx/Gu/Gamma/gamma (if set) add this knot's direct
	// cost coupling to θ.
	this.AddParameterization(k.Nth)

	var qxth, quth mat.Dense
	qxth.Mul(ahat.T(), next.Vxt)
	quth.Mul(bhat.T(), next.Vxt)
	if k.Gx != nil {
		qxth.Add(&qxth, k.Gx)
	}
	if k.Gu != nil {
		quth.Add(&quth, k.Gu)
	}

	qtt := mat.NewSymDense(k.Nth, nil)
	copyDenseToSym(qtt, next.Vtt)
	if k.Gamma != nil {
		addSymFromDense(qtt, k.Gamma)
	}

	var qth mat.VecDense
	qth.MulVec(next.Vxt.T(), &fhatVec)
	qth.AddVec(&qth, next.vt)
	if k.Gamma != nil {
		qth.AddVec(&qth, k.Gammavec())
	}

	var Kth mat.Dense
	if err := this.chol.SolveTo(&Kth, &quth); err != nil {
		return false
	}
	Kth.Scale(-1, &Kth)
	this.Kth.Copy(&Kth)

	var quxTKth mat.Dense
	quxTKth.Mul(qux.T(), &Kth)
	var vxtNew mat.Dense
	vxtNew.Add(&qxth, &quxTKth)
	this.Vxt.Copy(&vxtNew)

	var quthTKth mat.Dense
	quthTKth.Mul(quth.T(), &Kth)
	vttNew := mat.NewDense(k.Nth, k.Nth, nil)
	vttNew.Add(qtt, &quthTKth)
	copyDenseToSym(this.Vtt, vttNew)

	var quthTk mat.VecDense
	quthTk.MulVec(quth.T(), &kk)
	this.vt.AddVec(&qth, &quthTk)

	return true
}

func addSymFromDense(dst *mat.SymDense, src mat.Matrix) {
	n, _ := src.Dims()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dst.SetSym(i, j, dst.At(i, j)+src.At(i, j))
		}
	}
}

func copyDenseToSym(dst *mat.SymDense, src mat.Matrix) {
	n, _ := src.Dims()
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			dst.SetSym(i, j, src.At(i, j))
		}
	}
}

// ForwardSerial rolls the feedback law produced by BackwardSerial forward
// from an initial state tangent dx0, returning the per-stage control
// deltas and state tangents (dx[0]==dx0, dx[t+1] the tangent produced by
// stage t's eliminated dynamics).
func ForwardSerial(prob *lq.Problem, datas []*StageFactor, dx0 *mat.VecDense) (dxs, dus []*mat.VecDense) {
	n := prob.Horizon()
	dxs = make([]*mat.VecDense, n+1)
	dus = make([]*mat.VecDense, n)
	dxs[0] = mat.VecDenseCopyOf(dx0)
	for t := 0; t < n; t++ {
		k := prob.Stages[t]
		d := datas[t]
		du := mat.NewVecDense(k.Nu, nil)
		du.MulVec(d.K, dxs[t])
		du.AddVec(du, d.k)
		dus[t] = du

		var ahat, bhat mat.Dense
		ahat.Solve(k.E, k.A)
		ahat.Scale(-1, &ahat)
		bhat.Solve(k.E, k.B)
		bhat.Scale(-1, &bhat)
		var fhat mat.VecDense
		fhat.SolveVec(k.E, k.Fvec())
		fhat.ScaleVec(-1, &fhat)

		dx1 := mat.NewVecDense(k.Nx, nil)
		dx1.MulVec(&ahat, dxs[t])
		var bu mat.VecDense
		bu.MulVec(&bhat, du)
		dx1.AddVec(dx1, &bu)
		dx1.AddVec(dx1, &fhat)
		dxs[t+1] = dx1
	}
	return dxs, dus
}

// AllocateStageFactors returns a freshly sized slice of StageFactor, one
// per knot of prob plus a terminal one, ready to be passed to
// BackwardSerial.
func AllocateStageFactors(prob *lq.Problem) []*StageFactor {
	n := prob.Horizon()
	datas := make([]*StageFactor, n+1)
	for t := 0; t < n; t++ {
		datas[t] = NewStageFactor(prob.Stages[t].Nx, prob.Stages[t].Nu)
	}
	nxN, _ := prob.QN.Dims()
	datas[n] = NewStageFactor(nxN, 0)
	return datas
}
