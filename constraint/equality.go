// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package constraint

import "gonum.org/v1/gonum/mat"

// Equality is the set {0}: projection is the zero vector and every λ lies
// in the normal cone.
type Equality struct {
	n int
}

// NewEquality returns the equality set of dimension n.
func NewEquality(n int) Equality { return Equality{n: n} }

func (e Equality) Dim() int { return e.n }

func (e Equality) Projection(z *mat.VecDense) *mat.VecDense {
	return mat.NewVecDense(e.n, nil)
}

func (e Equality) NormalConeProj(z *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(e.n, nil)
	out.CopyVec(z)
	return out
}

func (e Equality) IsInNormalCone(z, lambda *mat.VecDense, tol float64) bool {
	return true
}
