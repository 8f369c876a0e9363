// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxddp

import "testing"

func TestBCLAcceptTightensSchedule(t *testing.T) {
	p := DefaultBCLParams()
	p.MuInit = 1.0
	b := newBCLState(p, 1e-7)
	eps0 := b.Eps

	accept := b.update(p, 1e-8, 1e-7, eps0/2)
	if !accept {
		t.Fatal("expected acceptance when pk is within the current epsilon target")
	}
	if b.Eps >= eps0 {
		t.Errorf("epsilon should tighten on acceptance: before=%g after=%g", eps0, b.Eps)
	}
	if b.Mu >= 1.0 {
		t.Errorf("mu should shrink toward muMin on acceptance: got %g", b.Mu)
	}
}

func TestBCLRejectShrinksMu(t *testing.T) {
	p := DefaultBCLParams()
	p.MuInit = 1.0
	b := newBCLState(p, 1e-7)
	mu0 := b.Mu

	accept := b.update(p, 1e-8, 1e-7, b.Eps*10)
	if accept {
		t.Fatal("expected rejection when pk exceeds the current epsilon target")
	}
	if b.Mu >= mu0 {
		t.Errorf("mu should shrink by AlphaMu on rejection: before=%g after=%g", mu0, b.Mu)
	}
}

func TestBCLMuFloorsAtMuMin(t *testing.T) {
	p := DefaultBCLParams()
	p.MuInit = 1e-8
	p.AlphaMu = 0.01
	b := newBCLState(p, 1e-7)
	b.update(p, 1e-8, 1e-7, 1e10)
	if b.Mu < 1e-8 {
		t.Errorf("mu must not drop below muMin: got %g", b.Mu)
	}
}
