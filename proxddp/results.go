// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/go-trajopt/proxddp/proxddp/log"
)

// Results holds a solve's final iterate and its diagnostics.
type Results struct {
	Xs, Us []*mat.VecDense
	Lams   []*mat.VecDense // dynamics costate/multiplier estimate, one per knot including t=0
	Vs     []*mat.VecDense // path-constraint multiplier estimate, one per stage (nil entry if no constraint)
	VN     *mat.VecDense   // terminal-constraint multiplier estimate (nil if the problem has no terminal constraint)

	Converged     bool
	NumALIters    int
	NumInnerIters int // total inner Newton iterations across the whole solve

	PrimalInfeas float64
	DualInfeas   float64
	Merit        float64

	RiccatiFailure bool
	LSFailure      bool

	Runtime time.Duration

	// Iters records one IterInfo per outer iteration, populated only when
	// Settings.Verbose >= VeryVerbose.
	Iters []log.IterInfo
}

func newResults(n int) *Results {
	return &Results{
		Xs:   make([]*mat.VecDense, n+1),
		Us:   make([]*mat.VecDense, n),
		Lams: make([]*mat.VecDense, n+1),
		Vs:   make([]*mat.VecDense, n),
	}
}
