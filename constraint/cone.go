// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import "gonum.org/v1/gonum/mat"

// ConeProduct is the Cartesian product of a sequence of constraint sets,
// each occupying a contiguous block of rows. It is used to compose
// heterogeneous path constraints (e.g. an equality block followed by a
// box block) into a single Set.
type ConeProduct struct {
	sets   []Set
	starts []int
	n      int
}

// NewConeProduct returns the Cartesian product of sets, in order.
func NewConeProduct(sets ...Set) *ConeProduct {
	starts := make([]int, len(sets)+1)
	for i, s := range sets {
		starts[i+1] = starts[i] + s.Dim()
	}
	return &ConeProduct{sets: sets, starts: starts, n: starts[len(sets)]}
}

func (c *ConeProduct) Dim() int { return c.n }

// Sets returns the product's constituent sets, in order, letting callers
// (e.g. the proxscaler block weighting) introspect the per-block
// structure instead of treating the product as an opaque single block.
func (c *ConeProduct) Sets() []Set { return c.sets }

func (c *ConeProduct) block(i int) (lo, hi int) {
	return c.starts[i], c.starts[i+1]
}

func (c *ConeProduct) Projection(z *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(c.n, nil)
	for i, s := range c.sets {
		lo, hi := c.block(i)
		sub := sliceVec(z, lo, hi)
		p := s.Projection(sub)
		setSlice(out, lo, p)
	}
	return out
}

func (c *ConeProduct) NormalConeProj(z *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(c.n, nil)
	for i, s := range c.sets {
		lo, hi := c.block(i)
		sub := sliceVec(z, lo, hi)
		p := s.NormalConeProj(sub)
		setSlice(out, lo, p)
	}
	return out
}

func (c *ConeProduct) IsInNormalCone(z, lambda *mat.VecDense, tol float64) bool {
	for i, s := range c.sets {
		lo, hi := c.block(i)
		if !s.IsInNormalCone(sliceVec(z, lo, hi), sliceVec(lambda, lo, hi), tol) {
			return false
		}
	}
	return true
}

func sliceVec(v *mat.VecDense, lo, hi int) *mat.VecDense {
	out := mat.NewVecDense(hi-lo, nil)
	for i := lo; i < hi; i++ {
		out.SetVec(i-lo, v.AtVec(i))
	}
	return out
}

func setSlice(dst *mat.VecDense, lo int, v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		dst.SetVec(lo+i, v.AtVec(i))
	}
}
