// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/empymod/emg3d/field"
)

// hxAt/hyAt/hzAt evaluate a single face value of v_μr·∇×e directly from
// the current edge field, unlike Operator.computeH's bulk snapshot: the
// pointwise Gauss-Seidel sweep must see each edge's freshest
// neighbours as the sweep progresses, not a pre-computed H from before the
// sweep started.
func (o *Operator) hxAt(e *field.Field, i, j, k int) complex128 {
	ey, ez := e.Ey(), e.Ez()
	dEzDy := (ez.Get(i, j+1, k) - ez.Get(i, j, k)) / complex(o.hy[j], 0)
	dEyDz := (ey.Get(i, j, k+1) - ey.Get(i, j, k)) / complex(o.hz[k], 0)
	return o.muX(i, j, k) * (dEzDy - dEyDz)
}
func (o *Operator) hyAt(e *field.Field, i, j, k int) complex128 {
	ex, ez := e.Ex(), e.Ez()
	dExDz := (ex.Get(i, j, k+1) - ex.Get(i, j, k)) / complex(o.hz[k], 0)
	dEzDx := (ez.Get(i+1, j, k) - ez.Get(i, j, k)) / complex(o.hx[i], 0)
	return o.muY(i, j, k) * (dExDz - dEzDx)
}
func (o *Operator) hzAt(e *field.Field, i, j, k int) complex128 {
	ex, ey := e.Ex(), e.Ey()
	dEyDx := (ey.Get(i+1, j, k) - ey.Get(i, j, k)) / complex(o.hx[i], 0)
	dExDy := (ex.Get(i, j+1, k) - ex.Get(i, j, k)) / complex(o.hy[j], 0)
	return o.muZ(i, j, k) * (dEyDx - dExDy)
}

// gsUpdateX/Y/Z apply one Gauss-Seidel update to a single edge, in place.
func (o *Operator) gsUpdateX(b, e *field.Field, i, j, k int) {
	ex := e.Ex()
	if j == 0 || j == ex.Ny-1 || k == 0 || k == ex.Nz-1 {
		ex.Set(i, j, k, 0)
		return
	}
	curl := (o.hzAt(e, i, j, k) - o.hzAt(e, i, j-1, k)) / complex(o.hyD[j], 0)
	curl -= (o.hyAt(e, i, j, k) - o.hyAt(e, i, j, k-1)) / complex(o.hzD[k], 0)
	ax := curl + o.edgeEtaX(i, j, k)*ex.Get(i, j, k)
	resid := b.Ex().Get(i, j, k) - ax
	ex.Set(i, j, k, ex.Get(i, j, k)+resid/o.diagX(i, j, k))
}
func (o *Operator) gsUpdateY(b, e *field.Field, i, j, k int) {
	ey := e.Ey()
	if i == 0 || i == ey.Nx-1 || k == 0 || k == ey.Nz-1 {
		ey.Set(i, j, k, 0)
		return
	}
	curl := (o.hxAt(e, i, j, k) - o.hxAt(e, i, j, k-1)) / complex(o.hzD[k], 0)
	curl -= (o.hzAt(e, i, j, k) - o.hzAt(e, i-1, j, k)) / complex(o.hxD[i], 0)
	ay := curl + o.edgeEtaY(i, j, k)*ey.Get(i, j, k)
	resid := b.Ey().Get(i, j, k) - ay
	ey.Set(i, j, k, ey.Get(i, j, k)+resid/o.diagY(i, j, k))
}
func (o *Operator) gsUpdateZ(b, e *field.Field, i, j, k int) {
	ez := e.Ez()
	if i == 0 || i == ez.Nx-1 || j == 0 || j == ez.Ny-1 {
		ez.Set(i, j, k, 0)
		return
	}
	curl := (o.hyAt(e, i, j, k) - o.hyAt(e, i-1, j, k)) / complex(o.hxD[i], 0)
	curl -= (o.hxAt(e, i, j, k) - o.hxAt(e, i, j-1, k)) / complex(o.hyD[j], 0)
	az := curl + o.edgeEtaZ(i, j, k)*ez.Get(i, j, k)
	resid := b.Ez().Get(i, j, k) - az
	ez.Set(i, j, k, ez.Get(i, j, k)+resid/o.diagZ(i, j, k))
}

// sweepPoint performs one pointwise Gauss-Seidel sweep over the three edge
// orientations in turn (this design: "three sweeps per iteration (one per
// edge orientation) so that all three components are relaxed"), in
// lexicographic order, forward or reverse.
func (o *Operator) sweepPoint(b, e *field.Field, reverse bool) {
	ex, ey, ez := e.Ex(), e.Ey(), e.Ez()
	sweepComponent(ex.Nx, ex.Ny, ex.Nz, reverse, func(i, j, k int) { o.gsUpdateX(b, e, i, j, k) })
	sweepComponent(ey.Nx, ey.Ny, ey.Nz, reverse, func(i, j, k int) { o.gsUpdateY(b, e, i, j, k) })
	sweepComponent(ez.Nx, ez.Ny, ez.Nz, reverse, func(i, j, k int) { o.gsUpdateZ(b, e, i, j, k) })
}

// sweepComponent visits every (i,j,k) of a component's shape in
// lexicographic order (or its exact reverse) and calls visit.
func sweepComponent(nx, ny, nz int, reverse bool, visit func(i, j, k int)) {
	if !reverse {
		for i := 0; i < nx; i++ {
			for j := 0; j < ny; j++ {
				for k := 0; k < nz; k++ {
					visit(i, j, k)
				}
			}
		}
		return
	}
	for i := nx - 1; i >= 0; i-- {
		for j := ny - 1; j >= 0; j-- {
			for k := nz - 1; k >= 0; k-- {
				visit(i, j, k)
			}
		}
	}
}

// PointGS performs nu pointwise Gauss-Seidel iterations on e in place,
// alternating forward and reverse sweeps when nu is even for stability
// on anisotropic coefficients.
func (o *Operator) PointGS(b, e *field.Field, nu int) {
	for it := 0; it < nu; it++ {
		reverse := nu%2 == 0 && it%2 == 1
		o.sweepPoint(b, e, reverse)
	}
}
