// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lq holds the data model for the per-stage linear-quadratic
// subproblem (the "knot") and the linear-quadratic problem it is chained
// into. Knot is value-semantic: Clone, CopyFrom, and Equal all operate on
// value contents, matching the copy-by-value contract the Riccati and
// ProxDDP packages rely on.
package lq

import "gonum.org/v1/gonum/mat"

// Knot holds one stage's linear-quadratic data:
//
//	cost        ½xᵀQx + ½uᵀRu + uᵀSx + qᵀx + rᵀu
//	dynamics    A·x + B·u + E·y + f = 0          (y is the next tangent)
//	constraint  C·x + D·u + d  ∈  𝒞
//
// and, once AddParameterization has been called, the linear coupling of the
// stage to a vector parameter θ used to glue parallel-Riccati legs together:
//
//	θ-term      Gxᵀ·x + Guᵀ·u + ½θᵀGamma·θ + gammaᵀ·θ
type Knot struct {
	Nx, Nu, Nc, Nth int

	Q *mat.SymDense // Nx × Nx
	R *mat.SymDense // Nu × Nu
	S *mat.Dense    // Nu × Nx
	q *mat.VecDense // Nx
	r *mat.VecDense // Nu

	A *mat.Dense    // Nx × Nx
	B *mat.Dense    // Nx × Nu
	E *mat.Dense    // Nx × Nx
	f *mat.VecDense // Nx

	C *mat.Dense    // Nc × Nx
	D *mat.Dense    // Nc × Nu
	d *mat.VecDense // Nc

	Gx    *mat.Dense    // Nx × Nth, nil until AddParameterization
	Gu    *mat.Dense    // Nu × Nth, nil until AddParameterization
	Gamma *mat.SymDense // Nth × Nth, nil until AddParameterization
	gamma *mat.VecDense // Nth, nil until AddParameterization
}

// NewKnot allocates a zeroed knot of the given dimensions.
func NewKnot(nx, nu, nc int) *Knot {
	return &Knot{
		Nx: nx, Nu: nu, Nc: nc,
		Q: mat.NewSymDense(nx, nil),
		R: mat.NewSymDense(nu, nil),
		S: mat.NewDense(nu, nx, nil),
		q: mat.NewVecDense(nx, nil),
		r: mat.NewVecDense(nu, nil),
		A: mat.NewDense(nx, nx, nil),
		B: mat.NewDense(nx, nu, nil),
		E: mat.NewDense(nx, nx, nil),
		f: mat.NewVecDense(nx, nil),
		C: mat.NewDense(nc, nx, nil),
		D: mat.NewDense(nc, nu, nil),
		d: mat.NewVecDense(nc, nil),
	}
}

// Qvec returns the linear cost term q.
func (k *Knot) Qvec() *mat.VecDense { return k.q }

// Rvec returns the linear cost term r.
func (k *Knot) Rvec() *mat.VecDense { return k.r }

// Fvec returns the dynamics shift f.
func (k *Knot) Fvec() *mat.VecDense { return k.f }

// Dvec returns the constraint shift d.
func (k *Knot) Dvec() *mat.VecDense { return k.d }

// Gammavec returns the parameterization shift γ, or nil if
// AddParameterization has not been called.
func (k *Knot) Gammavec() *mat.VecDense { return k.gamma }

// AddParameterization allocates the θ-coupling blocks (Gx, Gu, Gamma, gamma)
// sized to nth, leaving every other block (Q, R, S, q, r, A, B, E, f, C, D,
// d) untouched. Calling it again with a different nth reallocates only the
// parameterization blocks.
func (k *Knot) AddParameterization(nth int) {
	k.Nth = nth
	k.Gx = mat.NewDense(k.Nx, nth, nil)
	k.Gu = mat.NewDense(k.Nu, nth, nil)
	k.Gamma = mat.NewSymDense(nth, nil)
	k.gamma = mat.NewVecDense(nth, nil)
}

// Clone returns a deep copy of k.
func (k *Knot) Clone() *Knot {
	c := &Knot{Nx: k.Nx, Nu: k.Nu, Nc: k.Nc, Nth: k.Nth}
	c.Q = mat.NewSymDense(k.Nx, nil)
	c.Q.CopySym(k.Q)
	c.R = mat.NewSymDense(k.Nu, nil)
	c.R.CopySym(k.R)
	c.S = cloneDense(k.S)
	c.q = cloneVec(k.q)
	c.r = cloneVec(k.r)
	c.A = cloneDense(k.A)
	c.B = cloneDense(k.B)
	c.E = cloneDense(k.E)
	c.f = cloneVec(k.f)
	c.C = cloneDense(k.C)
	c.D = cloneDense(k.D)
	c.d = cloneVec(k.d)
	if k.Gx != nil {
		c.Gx = cloneDense(k.Gx)
		c.Gu = cloneDense(k.Gu)
		c.Gamma = mat.NewSymDense(k.Nth, nil)
		c.Gamma.CopySym(k.Gamma)
		c.gamma = cloneVec(k.gamma)
	}
	return c
}

// CopyFrom overwrites k's contents with a deep copy of src. k and src must
// have equal dimensions.
func (k *Knot) CopyFrom(src *Knot) {
	if k.Nx != src.Nx || k.Nu != src.Nu || k.Nc != src.Nc {
		panic("lq: dimension mismatch in Knot.CopyFrom")
	}
	k.Q.CopySym(src.Q)
	k.R.CopySym(src.R)
	k.S.Copy(src.S)
	k.q.CopyVec(src.q)
	k.r.CopyVec(src.r)
	k.A.Copy(src.A)
	k.B.Copy(src.B)
	k.E.Copy(src.E)
	k.f.CopyVec(src.f)
	k.C.Copy(src.C)
	k.D.Copy(src.D)
	k.d.CopyVec(src.d)
	k.Nth = src.Nth
	if src.Gx != nil {
		if k.Gx == nil {
			k.AddParameterization(src.Nth)
		}
		k.Gx.Copy(src.Gx)
		k.Gu.Copy(src.Gu)
		k.Gamma.CopySym(src.Gamma)
		k.gamma.CopyVec(src.gamma)
	} else {
		k.Gx, k.Gu, k.Gamma, k.gamma = nil, nil, nil, nil
	}
}

// Swap exchanges the contents of a and b in place.
func Swap(a, b *Knot) {
	*a, *b = *b, *a
}

// Equal reports whether a and b hold structurally and numerically equal
// data (exact float equality; callers comparing against a freshly
// round-tripped knot should tolerate no further numerical drift since Clone
// and CopyFrom never perform arithmetic).
func Equal(a, b *Knot) bool {
	if a.Nx != b.Nx || a.Nu != b.Nu || a.Nc != b.Nc || a.Nth != b.Nth {
		return false
	}
	if !mat.Equal(a.Q, b.Q) || !mat.Equal(a.R, b.R) || !mat.Equal(a.S, b.S) {
		return false
	}
	if !mat.Equal(a.q, b.q) || !mat.Equal(a.r, b.r) {
		return false
	}
	if !mat.Equal(a.A, b.A) || !mat.Equal(a.B, b.B) || !mat.Equal(a.E, b.E) || !mat.Equal(a.f, b.f) {
		return false
	}
	if !mat.Equal(a.C, b.C) || !mat.Equal(a.D, b.D) || !mat.Equal(a.d, b.d) {
		return false
	}
	if (a.Gx == nil) != (b.Gx == nil) {
		return false
	}
	if a.Gx == nil {
		return true
	}
	return mat.Equal(a.Gx, b.Gx) && mat.Equal(a.Gu, b.Gu) &&
		mat.Equal(a.Gamma, b.Gamma) && mat.Equal(a.gamma, b.gamma)
}

func cloneDense(m *mat.Dense) *mat.Dense {
	r, c := m.Dims()
	out := mat.NewDense(r, c, nil)
	out.Copy(m)
	return out
}

func cloneVec(v *mat.VecDense) *mat.VecDense {
	out := mat.NewVecDense(v.Len(), nil)
	out.CopyVec(v)
	return out
}
