// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linesearch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTermsValueSumsComponents(t *testing.T) {
	got := Terms{Cost: 1.5, Proximal: 0.25, Constraint: 2}
	if v := got.Value(); v != 3.75 {
		t.Errorf("Value() = %v, want 3.75", v)
	}
}

func TestSearchReturnsExpectedTerms(t *testing.T) {
	eval, d0 := quadraticMerit(1.0, 0.1)
	result := Search(eval, d0, DefaultSettings())
	if !result.Success {
		t.Fatal("expected the search to accept a step")
	}

	_, want := eval(result.Alpha)
	if diff := cmp.Diff(want, result.Terms); diff != "" {
		t.Errorf("Result.Terms mismatch against a direct re-evaluation at the accepted alpha (-want +got):\n%s", diff)
	}
}
