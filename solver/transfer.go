// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/empymod/emg3d/field"
	"github.com/empymod/emg3d/mesh"
)

// ownAxisPair returns the one or two fine indices, and their weights, that
// combine along an edge's own direction to form one coarse edge: two
// in-series fine edges are combined by a length-weighted average when the
// axis is coarsened, otherwise the fine and coarse indices coincide.
func ownAxisPair(coarsened bool, i int, fineH []float64) (i0, i1 int, w0, w1 float64) {
	if !coarsened {
		return i, i, 1, 0
	}
	i0, i1 = 2*i, 2*i+1
	return i0, i1, fineH[i0], fineH[i1]
}

// transverseIndex maps a coarse transverse (node) index to the coincident
// fine node index: every coarse node sits exactly on an even fine node
// when that axis is coarsened.
func transverseIndex(coarsened bool, j int) int {
	if coarsened {
		return 2 * j
	}
	return j
}

// Restrict maps a fine-grid residual (or any edge field) down to the
// coarse grid selected by mask, combining in-series edges along a
// coarsened own-axis by a length-weighted average and sampling coincident
// nodes along coarsened transverse axes.
func Restrict(fine *field.Field, coarse *mesh.Mesh, mask [3]bool) *field.Field {
	fm := fine.Mesh
	out := field.New(coarse)

	fx, fy, fz := fine.Ex(), fine.Ey(), fine.Ez()
	cx, cy, cz := out.Ex(), out.Ey(), out.Ez()

	for i := 0; i < cx.Nx; i++ {
		i0, i1, w0, w1 := ownAxisPair(mask[mesh.AxisX], i, fm.Hx)
		for j := 0; j < cx.Ny; j++ {
			jf := transverseIndex(mask[mesh.AxisY], j)
			for k := 0; k < cx.Nz; k++ {
				kf := transverseIndex(mask[mesh.AxisZ], k)
				v0, v1 := fx.Get(i0, jf, kf), fx.Get(i1, jf, kf)
				cx.Set(i, j, k, (complex(w0, 0)*v0+complex(w1, 0)*v1)/complex(w0+w1, 0))
			}
		}
	}
	for i := 0; i < cy.Nx; i++ {
		ifx := transverseIndex(mask[mesh.AxisX], i)
		for j := 0; j < cy.Ny; j++ {
			j0, j1, w0, w1 := ownAxisPair(mask[mesh.AxisY], j, fm.Hy)
			for k := 0; k < cy.Nz; k++ {
				kf := transverseIndex(mask[mesh.AxisZ], k)
				v0, v1 := fy.Get(ifx, j0, kf), fy.Get(ifx, j1, kf)
				cy.Set(i, j, k, (complex(w0, 0)*v0+complex(w1, 0)*v1)/complex(w0+w1, 0))
			}
		}
	}
	for i := 0; i < cz.Nx; i++ {
		ifx := transverseIndex(mask[mesh.AxisX], i)
		for j := 0; j < cz.Ny; j++ {
			jf := transverseIndex(mask[mesh.AxisY], j)
			for k := 0; k < cz.Nz; k++ {
				k0, k1, w0, w1 := ownAxisPair(mask[mesh.AxisZ], k, fm.Hz)
				v0, v1 := fz.Get(ifx, jf, k0), fz.Get(ifx, jf, k1)
				cz.Set(i, j, k, (complex(w0, 0)*v0+complex(w1, 0)*v1)/complex(w0+w1, 0))
			}
		}
	}
	return out
}

// transverseWeights returns, for a fine node index along a possibly-
// coarsened transverse axis, the one or two coarse node indices that
// bracket it and their bilinear interpolation weights. A fine node on a
// coincident coarse node gets weight 1; an odd fine node midway between
// two coarse nodes is split 0.5/0.5, clipped to the last coarse node at
// the upper boundary.
func transverseWeights(coarsened bool, fineIdx, coarseN int) (lo, hi int, wlo, whi float64) {
	if !coarsened {
		return fineIdx, fineIdx, 1, 0
	}
	if fineIdx%2 == 0 {
		c := fineIdx / 2
		return c, c, 1, 0
	}
	c0 := fineIdx / 2
	c1 := c0 + 1
	if c1 >= coarseN {
		return c0, c0, 1, 0
	}
	return c0, c1, 0.5, 0.5
}

// Prolong maps a coarse-grid correction up to the fine grid selected by
// mask: piecewise-constant along a coarsened own-axis (the edge's own
// direction carries no interior interpolation point) and bilinear across
// the transverse axes. The returned field still needs PEC
// re-enforcement, done by the caller after adding the correction in.
func Prolong(coarse *field.Field, fine *mesh.Mesh, mask [3]bool) *field.Field {
	out := field.New(fine)
	cx, cy, cz := coarse.Ex(), coarse.Ey(), coarse.Ez()
	fx, fy, fz := out.Ex(), out.Ey(), out.Ez()

	for i := 0; i < fx.Nx; i++ {
		ic := i
		if mask[mesh.AxisX] {
			ic = i / 2
		}
		for j := 0; j < fx.Ny; j++ {
			j0, j1, wj0, wj1 := transverseWeights(mask[mesh.AxisY], j, cx.Ny)
			for k := 0; k < fx.Nz; k++ {
				k0, k1, wk0, wk1 := transverseWeights(mask[mesh.AxisZ], k, cx.Nz)
				v := complex(wj0*wk0, 0)*cx.Get(ic, j0, k0) +
					complex(wj0*wk1, 0)*cx.Get(ic, j0, k1) +
					complex(wj1*wk0, 0)*cx.Get(ic, j1, k0) +
					complex(wj1*wk1, 0)*cx.Get(ic, j1, k1)
				fx.Set(i, j, k, v)
			}
		}
	}
	for i := 0; i < fy.Nx; i++ {
		i0, i1, wi0, wi1 := transverseWeights(mask[mesh.AxisX], i, cy.Nx)
		for j := 0; j < fy.Ny; j++ {
			jc := j
			if mask[mesh.AxisY] {
				jc = j / 2
			}
			for k := 0; k < fy.Nz; k++ {
				k0, k1, wk0, wk1 := transverseWeights(mask[mesh.AxisZ], k, cy.Nz)
				v := complex(wi0*wk0, 0)*cy.Get(i0, jc, k0) +
					complex(wi0*wk1, 0)*cy.Get(i0, jc, k1) +
					complex(wi1*wk0, 0)*cy.Get(i1, jc, k0) +
					complex(wi1*wk1, 0)*cy.Get(i1, jc, k1)
				fy.Set(i, j, k, v)
			}
		}
	}
	for i := 0; i < fz.Nx; i++ {
		i0, i1, wi0, wi1 := transverseWeights(mask[mesh.AxisX], i, cz.Nx)
		for j := 0; j < fz.Ny; j++ {
			j0, j1, wj0, wj1 := transverseWeights(mask[mesh.AxisY], j, cz.Ny)
			for k := 0; k < fz.Nz; k++ {
				kc := k
				if mask[mesh.AxisZ] {
					kc = k / 2
				}
				v := complex(wi0*wj0, 0)*cz.Get(i0, j0, kc) +
					complex(wi0*wj1, 0)*cz.Get(i0, j1, kc) +
					complex(wi1*wj0, 0)*cz.Get(i1, j0, kc) +
					complex(wi1*wj1, 0)*cz.Get(i1, j1, kc)
				fz.Set(i, j, k, v)
			}
		}
	}
	out.EnsurePEC()
	return out
}
