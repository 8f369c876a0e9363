// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import "gonum.org/v1/gonum/mat"

// NegativeOrthant is the set {z : z ≤ 0}, componentwise.
type NegativeOrthant struct {
	n int
}

// NewNegativeOrthant returns the negative orthant of dimension n.
func NewNegativeOrthant(n int) NegativeOrthant { return NegativeOrthant{n: n} }

func (c NegativeOrthant) Dim() int { return c.n }

func (c NegativeOrthant) Projection(z *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(c.n, nil)
	for i := 0; i < c.n; i++ {
		if v := z.AtVec(i); v < 0 {
			out.SetVec(i, v)
		}
	}
	return out
}

func (c NegativeOrthant) NormalConeProj(z *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(c.n, nil)
	for i := 0; i < c.n; i++ {
		if v := z.AtVec(i); v > 0 {
			out.SetVec(i, v)
		}
	}
	return out
}

func (c NegativeOrthant) IsInNormalCone(z, lambda *mat.VecDense, tol float64) bool {
	for i := 0; i < c.n; i++ {
		if lambda.AtVec(i) < -tol {
			return false
		}
		if z.AtVec(i) < -tol && lambda.AtVec(i) > tol {
			return false
		}
	}
	return true
}

// Box is the set {z : lo ≤ z ≤ hi}, componentwise.
type Box struct {
	lo, hi *mat.VecDense
}

// NewBox returns the box constraint set with the given bounds. lo and hi
// must have equal length and lo[i] <= hi[i] for all i.
func NewBox(lo, hi *mat.VecDense) Box {
	n := lo.Len()
	if hi.Len() != n {
		panic("constraint: mismatched box bounds")
	}
	return Box{lo: lo, hi: hi}
}

func (b Box) Dim() int { return b.lo.Len() }

func (b Box) Projection(z *mat.VecDense) *mat.VecDense {
	n := b.Dim()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		v := z.AtVec(i)
		switch {
		case v < b.lo.AtVec(i):
			v = b.lo.AtVec(i)
		case v > b.hi.AtVec(i):
			v = b.hi.AtVec(i)
		}
		out.SetVec(i, v)
	}
	return out
}

func (b Box) NormalConeProj(z *mat.VecDense) *mat.VecDense {
	n := b.Dim()
	proj := b.Projection(z)
	out := mat.NewVecDense(n, nil)
	out.SubVec(z, proj)
	return out
}

func (b Box) IsInNormalCone(z, lambda *mat.VecDense, tol float64) bool {
	n := b.Dim()
	for i := 0; i < n; i++ {
		v := z.AtVec(i)
		l := lambda.AtVec(i)
		atLo := v <= b.lo.AtVec(i)+tol
		atHi := v >= b.hi.AtVec(i)-tol
		switch {
		case atLo && atHi:
			// degenerate (lo == hi): any multiplier sign is admissible.
		case atLo:
			if l > tol {
				return false
			}
		case atHi:
			if l < -tol {
				return false
			}
		default:
			if l < -tol || l > tol {
				return false
			}
		}
	}
	return true
}
