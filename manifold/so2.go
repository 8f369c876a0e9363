// Copyright ©2026 The proxddp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package manifold

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// SO2 is the manifold of planar rotations, represented by an angle in
// radians wrapped to [-π, π). It is the non-Euclidean reference manifold
// used to exercise the Integrate/Difference round-trip invariant on a
// space where Nx == Ndx but Integrate is not simple addition.
type SO2 struct{}

func (SO2) Nx() int  { return 1 }
func (SO2) Ndx() int { return 1 }

func (SO2) Neutral() *mat.VecDense {
	return mat.NewVecDense(1, []float64{0})
}

func (SO2) Rand() *mat.VecDense {
	return mat.NewVecDense(1, []float64{wrap(rand.Float64()*2*math.Pi - math.Pi)})
}

func (SO2) Integrate(x, d *mat.VecDense) *mat.VecDense {
	return mat.NewVecDense(1, []float64{wrap(x.AtVec(0) + d.AtVec(0))})
}

func (SO2) Difference(x, y *mat.VecDense) *mat.VecDense {
	return mat.NewVecDense(1, []float64{wrap(y.AtVec(0) - x.AtVec(0))})
}

func (SO2) JIntegrate(x, d *mat.VecDense, Jx, Jd *mat.Dense) {
	Jx.Reset()
	Jx.ReuseAs(1, 1)
	Jx.Set(0, 0, 1)
	Jd.Reset()
	Jd.ReuseAs(1, 1)
	Jd.Set(0, 0, 1)
}

func (SO2) JDifference(x, y *mat.VecDense, Jx, Jy *mat.Dense) {
	Jx.Reset()
	Jx.ReuseAs(1, 1)
	Jx.Set(0, 0, -1)
	Jy.Reset()
	Jy.ReuseAs(1, 1)
	Jy.Set(0, 0, 1)
}

// wrap brings an angle into [-π, π).
func wrap(theta float64) float64 {
	theta = math.Mod(theta+math.Pi, 2*math.Pi)
	if theta < 0 {
		theta += 2 * math.Pi
	}
	return theta - math.Pi
}
