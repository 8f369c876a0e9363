// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifold

import (
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Rn is the Euclidean manifold ℝⁿ: Integrate is vector addition and
// Difference is vector subtraction, so Nx equals Ndx.
type Rn struct {
	n int
}

// NewRn returns the Euclidean manifold of dimension n.
func NewRn(n int) *Rn {
	if n <= 0 {
		panic("manifold: non-positive dimension")
	}
	return &Rn{n: n}
}

func (m *Rn) Nx() int  { return m.n }
func (m *Rn) Ndx() int { return m.n }

func (m *Rn) Neutral() *mat.VecDense {
	return mat.NewVecDense(m.n, nil)
}

func (m *Rn) Rand() *mat.VecDense {
	v := mat.NewVecDense(m.n, nil)
	for i := 0; i < m.n; i++ {
		v.SetVec(i, rand.NormFloat64())
	}
	return v
}

func (m *Rn) Integrate(x, d *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(m.n, nil)
	out.AddVec(x, d)
	return out
}

func (m *Rn) Difference(x, y *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(m.n, nil)
	out.SubVec(y, x)
	return out
}

func (m *Rn) JIntegrate(x, d *mat.VecDense, Jx, Jd *mat.Dense) {
	identity(Jx, m.n)
	identity(Jd, m.n)
}

func (m *Rn) JDifference(x, y *mat.VecDense, Jx, Jy *mat.Dense) {
	identity(Jx, m.n)
	Jx.Scale(-1, Jx)
	identity(Jy, m.n)
}

func identity(dst *mat.Dense, n int) {
	dst.Reset()
	dst.ReuseAs(n, n)
	for i := 0; i < n; i++ {
		dst.Set(i, i, 1)
	}
}
