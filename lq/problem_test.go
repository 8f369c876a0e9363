// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lq

import "testing"

func sampleProblem(n int) *Problem {
	stages := make([]*Knot, n)
	for i := range stages {
		stages[i] = sampleKnot()
	}
	p := NewProblem(2, 2, 2, 0, stages)
	p.G0.Set(0, 0, 1)
	p.g0.SetVec(0, -1)
	p.QN.SetSym(0, 0, 2)
	return p
}

func TestProblemEqual(t *testing.T) {
	a := sampleProblem(4)
	b := sampleProblem(4)
	if !EqualProblem(a, b) {
		t.Fatal("two problems built identically must compare equal")
	}
	b.Stages[2].Q.SetSym(0, 0, 123)
	if EqualProblem(a, b) {
		t.Fatal("a stage-level difference must make the problems unequal")
	}
}

func TestProblemEqualRequiresSameInitialConstraint(t *testing.T) {
	a := sampleProblem(2)
	b := sampleProblem(2)
	b.g0.SetVec(0, 42)
	if EqualProblem(a, b) {
		t.Fatal("differing initial constraint must make the problems unequal")
	}
}
