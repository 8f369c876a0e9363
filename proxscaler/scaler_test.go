// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package proxscaler

import (
	"errors"
	"testing"
)

func TestScalerSizeConstant(t *testing.T) {
	s := New([]int{2, 3, 1})
	if s.NumBlocks() != 3 {
		t.Fatalf("got %d want 3", s.NumBlocks())
	}
	s.SetWeight(0, 5)
	if s.NumBlocks() != 3 {
		t.Fatal("NumBlocks must stay constant across weight updates")
	}
}

func TestSetWeightsWrongSizeFails(t *testing.T) {
	s := New([]int{2, 3})
	if err := s.SetWeights([]float64{1, 2, 3}); !errors.Is(err, ErrWeightSize) {
		t.Fatalf("got %v want ErrWeightSize", err)
	}
}

func TestSetWeightOutOfRange(t *testing.T) {
	s := New([]int{2, 3})
	var idxErr *IndexError
	if err := s.SetWeight(5, 1); !errors.As(err, &idxErr) {
		t.Fatalf("got %v want *IndexError", err)
	}
}

func TestDiagMatrixRepeatsWeightPerBlock(t *testing.T) {
	s := New([]int{2, 1})
	if err := s.SetWeights([]float64{3, 7}); err != nil {
		t.Fatal(err)
	}
	d := s.DiagMatrix()
	want := []float64{3, 3, 7}
	for i, w := range want {
		if d.At(i, i) != w {
			t.Errorf("diag[%d]: got %v want %v", i, d.At(i, i), w)
		}
	}
}

func TestApplyDefaultScalingStrategy(t *testing.T) {
	s := New([]int{1, 1, 2})
	if err := s.ApplyDefaultScalingStrategy([]bool{true, false, false}); err != nil {
		t.Fatal(err)
	}
	w0, _ := s.Weight(0)
	w1, _ := s.Weight(1)
	w2, _ := s.Weight(2)
	if w0 != defaultEqualityWeight {
		t.Errorf("equality block weight: got %v want %v", w0, defaultEqualityWeight)
	}
	if w1 != defaultInequalityWeight || w2 != defaultInequalityWeight {
		t.Errorf("inequality block weights: got %v,%v want %v", w1, w2, defaultInequalityWeight)
	}
}
