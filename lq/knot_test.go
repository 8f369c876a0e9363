// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lq

import "testing"

func sampleKnot() *Knot {
	k := NewKnot(2, 2, 1)
	k.Q.SetSym(0, 0, 2)
	k.Q.SetSym(1, 1, 1)
	k.R.SetSym(0, 0, 0.01)
	k.R.SetSym(1, 1, 0.01)
	k.A.Set(0, 0, 1)
	k.A.Set(1, 1, 1)
	k.B.Set(0, 0, -0.6)
	k.B.Set(0, 1, 0.3)
	k.B.Set(1, 1, 1)
	k.E.Set(0, 0, -1)
	k.E.Set(1, 1, -1)
	k.f.SetVec(0, 0.1)
	k.C.Set(0, 0, 1)
	k.d.SetVec(0, -1)
	return k
}

func TestKnotCloneEqual(t *testing.T) {
	k := sampleKnot()
	c := k.Clone()
	if !Equal(k, c) {
		t.Fatal("clone of a knot must equal the original")
	}
	c.Q.SetSym(0, 0, 99)
	if Equal(k, c) {
		t.Fatal("mutating the clone must not affect the original")
	}
}

func TestKnotCopyFrom(t *testing.T) {
	k := sampleKnot()
	dst := NewKnot(2, 2, 1)
	dst.CopyFrom(k)
	if !Equal(k, dst) {
		t.Fatal("CopyFrom must produce an equal knot")
	}
}

func TestKnotSwap(t *testing.T) {
	a := sampleKnot()
	b := NewKnot(2, 2, 1)
	aClone, bClone := a.Clone(), b.Clone()
	Swap(a, b)
	if !Equal(a, bClone) || !Equal(b, aClone) {
		t.Fatal("swap must exchange contents")
	}
}

func TestAddParameterizationLeavesOtherBlocksUnchanged(t *testing.T) {
	k := sampleKnot()
	before := k.Clone()
	k.AddParameterization(3)
	// AddParameterization does change Nth and allocate the θ blocks by contract.
	before.Nth = 3
	before.Gx, before.Gu, before.Gamma, before.gamma = k.Gx, k.Gu, k.Gamma, k.gamma
	if !Equal(k, before) {
		t.Fatal("AddParameterization must leave (Q,R,S,q,r,A,B,E,f,C,D,d) unchanged")
	}
	if k.Gx == nil || k.Gu == nil || k.Gamma == nil || k.Gammavec() == nil {
		t.Fatal("AddParameterization must allocate the theta-coupling blocks")
	}
	gr, gc := k.Gx.Dims()
	if gr != k.Nx || gc != 3 {
		t.Fatalf("Gx has wrong shape: got (%d,%d) want (%d,%d)", gr, gc, k.Nx, 3)
	}
}
