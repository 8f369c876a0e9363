// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package proxscaler implements the per-stage augmented-Lagrangian
// constraint weighting (§4.5): constraints are grouped into blocks, each
// block carrying one strictly-positive scalar weight repeated across its
// rows in the penalty's diagonal matrix.
package proxscaler

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Default weights used by ApplyDefaultScalingStrategy.
const (
	defaultEqualityWeight   = 10
	defaultInequalityWeight = 1
)

var (
	// ErrWeightSize is returned by SetWeights when the supplied slice does
	// not have one entry per block.
	ErrWeightSize = errors.New("proxscaler: weight slice size does not match block count")
	// ErrNonPositiveWeight is returned when a weight is not strictly positive.
	ErrNonPositiveWeight = errors.New("proxscaler: weight must be strictly positive")
)

// IndexError is returned by SetWeight/Weight when the block index is out
// of range.
type IndexError struct {
	Index, NumBlocks int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("proxscaler: block index %d out of range [0,%d)", e.Index, e.NumBlocks)
}

// Scaler holds one strictly-positive scalar weight per constraint block of
// a stage, and can expand those weights into a diagonal penalty matrix
// sized to the total number of constraint rows.
type Scaler struct {
	blockDims []int
	weights   []float64
	totalDim  int
}

// New returns a Scaler for the given per-block row counts, with every
// weight initialized to 1.
func New(blockDims []int) *Scaler {
	s := &Scaler{
		blockDims: append([]int(nil), blockDims...),
		weights:   make([]float64, len(blockDims)),
	}
	for i := range s.weights {
		s.weights[i] = 1
	}
	for _, d := range blockDims {
		s.totalDim += d
	}
	return s
}

// NumBlocks returns the (constant, immutable) number of constraint blocks.
func (s *Scaler) NumBlocks() int { return len(s.blockDims) }

// Dim returns the total number of constraint rows across all blocks.
func (s *Scaler) Dim() int { return s.totalDim }

// Weight returns the weight of block j.
func (s *Scaler) Weight(j int) (float64, error) {
	if j < 0 || j >= len(s.weights) {
		return 0, &IndexError{Index: j, NumBlocks: len(s.weights)}
	}
	return s.weights[j], nil
}

// SetWeight sets the weight of block j to v.
func (s *Scaler) SetWeight(j int, v float64) error {
	if j < 0 || j >= len(s.weights) {
		return &IndexError{Index: j, NumBlocks: len(s.weights)}
	}
	if v <= 0 {
		return ErrNonPositiveWeight
	}
	s.weights[j] = v
	return nil
}

// SetWeights replaces every block's weight at once. w must have exactly
// NumBlocks() entries, all strictly positive; otherwise SetWeights returns
// an error and leaves the scaler's weights unchanged.
func (s *Scaler) SetWeights(w []float64) error {
	if len(w) != len(s.weights) {
		return ErrWeightSize
	}
	for _, v := range w {
		if v <= 0 {
			return ErrNonPositiveWeight
		}
	}
	copy(s.weights, w)
	return nil
}

// ApplyDefaultScalingStrategy sets block weights using the default
// strategy: equality-like blocks (isEquality[j] == true) get a large
// weight, inequality-cone blocks get the baseline weight. isEquality must
// have one entry per block.
func (s *Scaler) ApplyDefaultScalingStrategy(isEquality []bool) error {
	if len(isEquality) != len(s.weights) {
		return ErrWeightSize
	}
	for j, eq := range isEquality {
		if eq {
			s.weights[j] = defaultEqualityWeight
		} else {
			s.weights[j] = defaultInequalityWeight
		}
	}
	return nil
}

// DiagMatrix returns the Dim()×Dim() diagonal matrix with each block's
// weight repeated across the rows of that block.
func (s *Scaler) DiagMatrix() *mat.DiagDense {
	data := make([]float64, s.totalDim)
	row := 0
	for j, d := range s.blockDims {
		w := s.weights[j]
		for k := 0; k < d; k++ {
			data[row] = w
			row++
		}
	}
	return mat.NewDiagDense(s.totalDim, data)
}
