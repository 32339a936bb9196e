// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/empymod/emg3d/field"
	"github.com/empymod/emg3d/mesh"
	"github.com/empymod/emg3d/model"
)

// Operator applies the discrete curl-curl-plus-mass operator A,
//
//   r_α = ∇ × (v_μr · ∇ × e)_α + η_α e_α
//
// on the staggered grid: the double curl is assembled as the transpose of
// the discrete curl applied to v_μr times the curl of e (Cᵀ·diag(v_μr)·C,
// the standard edge-element construction), which is positive
// semi-definite by construction; DESIGN.md records why the sign is taken
// without a leading minus (a leading minus would make the operator's own
// diagonal negative and the pointwise/line smoothers unstable). It holds
// scratch face-centred arrays for the intermediate H = v_μr·∇×E field so
// repeated Apply calls (one per smoothing sweep / Krylov matvec) do not
// reallocate.
type Operator struct {
	Mesh  *mesh.Mesh
	Model *model.Model

	hx []float64
	hy []float64
	hz []float64

	hxD []float64 // dual (node-to-node) spacing, length nx+1
	hyD []float64
	hzD []float64

	nx, ny, nz int

	// scratch face fields: Hx[nx+1][ny][nz], Hy[nx][ny+1][nz], Hz[nx][ny][nz+1]
	Hx [][][]complex128
	Hy [][][]complex128
	Hz [][][]complex128
}

// NewOperator builds an Operator for the given mesh and model.
func NewOperator(m *mesh.Mesh, mdl *model.Model) *Operator {
	nx, ny, nz := m.Shape()
	o := &Operator{Mesh: m, Model: mdl, nx: nx, ny: ny, nz: nz}
	o.hx, o.hy, o.hz = m.Hx, m.Hy, m.Hz
	o.hxD = dualSpacing(o.hx)
	o.hyD = dualSpacing(o.hy)
	o.hzD = dualSpacing(o.hz)
	o.Hx = alloc3(nx+1, ny, nz)
	o.Hy = alloc3(nx, ny+1, nz)
	o.Hz = alloc3(nx, ny, nz+1)
	return o
}

// dualSpacing returns the distance between consecutive cell centres,
// length len(h)+1, with the outer two entries equal to half the boundary
// cell width (one-sided dual cell at the domain edge).
func dualSpacing(h []float64) []float64 {
	n := len(h)
	d := make([]float64, n+1)
	d[0] = 0.5 * h[0]
	for i := 1; i < n; i++ {
		d[i] = 0.5*h[i-1] + 0.5*h[i]
	}
	d[n] = 0.5 * h[n-1]
	return d
}

func alloc3(nx, ny, nz int) [][][]complex128 {
	a := make([][][]complex128, nx)
	for i := range a {
		a[i] = make([][]complex128, ny)
		for j := range a[i] {
			a[i][j] = make([]complex128, nz)
		}
	}
	return a
}

// muX/muY/muZ average v_μr over the (up to two) cells sharing a node on
// the respective axis; out-of-range indices are clamped to the single
// adjacent cell at the boundary.
func (o *Operator) muX(i, j, k int) complex128 {
	lo, hi := clampIdx(i-1, o.nx), clampIdx(i, o.nx)
	return complex(0.5*(o.Model.VMuR[lo][j][k]+o.Model.VMuR[hi][j][k]), 0)
}
func (o *Operator) muY(i, j, k int) complex128 {
	lo, hi := clampIdx(j-1, o.ny), clampIdx(j, o.ny)
	return complex(0.5*(o.Model.VMuR[i][lo][k]+o.Model.VMuR[i][hi][k]), 0)
}
func (o *Operator) muZ(i, j, k int) complex128 {
	lo, hi := clampIdx(k-1, o.nz), clampIdx(k, o.nz)
	return complex(0.5*(o.Model.VMuR[i][j][lo]+o.Model.VMuR[i][j][hi]), 0)
}

func clampIdx(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// computeH fills Hx, Hy, Hz from e = ∇×e scaled by v_μr, on the dual face
// grid.
func (o *Operator) computeH(e *field.Field) {
	ex, ey, ez := e.Ex(), e.Ey(), e.Ez()

	// Hx(i,j,k): i node [0,nx], j cell [0,ny), k cell [0,nz)
	for i := 0; i <= o.nx; i++ {
		for j := 0; j < o.ny; j++ {
			for k := 0; k < o.nz; k++ {
				dEzDy := (ez.Get(i, j+1, k) - ez.Get(i, j, k)) / complex(o.hy[j], 0)
				dEyDz := (ey.Get(i, j, k+1) - ey.Get(i, j, k)) / complex(o.hz[k], 0)
				o.Hx[i][j][k] = o.muX(i, j, k) * (dEzDy - dEyDz)
			}
		}
	}
	// Hy(i,j,k): i cell [0,nx), j node [0,ny], k cell [0,nz)
	for i := 0; i < o.nx; i++ {
		for j := 0; j <= o.ny; j++ {
			for k := 0; k < o.nz; k++ {
				dExDz := (ex.Get(i, j, k+1) - ex.Get(i, j, k)) / complex(o.hz[k], 0)
				dEzDx := (ez.Get(i+1, j, k) - ez.Get(i, j, k)) / complex(o.hx[i], 0)
				o.Hy[i][j][k] = o.muY(i, j, k) * (dExDz - dEzDx)
			}
		}
	}
	// Hz(i,j,k): i cell [0,nx), j cell [0,ny), k node [0,nz]
	for i := 0; i < o.nx; i++ {
		for j := 0; j < o.ny; j++ {
			for k := 0; k <= o.nz; k++ {
				dEyDx := (ey.Get(i+1, j, k) - ey.Get(i, j, k)) / complex(o.hx[i], 0)
				dExDy := (ex.Get(i, j+1, k) - ex.Get(i, j, k)) / complex(o.hy[j], 0)
				o.Hz[i][j][k] = o.muZ(i, j, k) * (dEyDx - dExDy)
			}
		}
	}
}

// edgeEta sums the η_α of the (up to four) cells sharing edge α at
// transverse node indices, the finite-volume assembly of the cell-shaped
// η array onto the edge the mass term actually lives on.
func (o *Operator) edgeEtaX(i, j, k int) complex128 {
	var sum complex128
	for _, jj := range neighbors(j, o.ny) {
		for _, kk := range neighbors(k, o.nz) {
			sum += o.Model.EtaX[i][jj][kk]
		}
	}
	return sum
}
func (o *Operator) edgeEtaY(i, j, k int) complex128 {
	var sum complex128
	for _, ii := range neighbors(i, o.nx) {
		for _, kk := range neighbors(k, o.nz) {
			sum += o.Model.EtaY[ii][j][kk]
		}
	}
	return sum
}
func (o *Operator) edgeEtaZ(i, j, k int) complex128 {
	var sum complex128
	for _, ii := range neighbors(i, o.nx) {
		for _, jj := range neighbors(j, o.ny) {
			sum += o.Model.EtaZ[ii][jj][k]
		}
	}
	return sum
}

// neighbors returns the valid cell indices {idx-1, idx} adjacent to node
// index idx along an axis with n cells.
func neighbors(idx, n int) []int {
	var out []int
	if idx-1 >= 0 && idx-1 < n {
		out = append(out, idx-1)
	}
	if idx >= 0 && idx < n {
		out = append(out, idx)
	}
	return out
}

// Apply computes r = A·e, writing into (and returning) r. r must already
// be allocated with the same mesh shape as e; it is zeroed by Apply.
func (o *Operator) Apply(e, r *field.Field) *field.Field {
	o.computeH(e)

	rx, ry, rz := r.Ex(), r.Ey(), r.Ez()
	ex, ey, ez := e.Ex(), e.Ey(), e.Ez()

	for i := 0; i < rx.Nx; i++ {
		for j := 0; j < rx.Ny; j++ {
			for k := 0; k < rx.Nz; k++ {
				if j == 0 || j == rx.Ny-1 || k == 0 || k == rx.Nz-1 {
					rx.Set(i, j, k, 0)
					continue
				}
				curl := (o.Hz[i][j][k] - o.Hz[i][j-1][k]) / complex(o.hyD[j], 0)
				curl -= (o.Hy[i][j][k] - o.Hy[i][j][k-1]) / complex(o.hzD[k], 0)
				val := curl + o.edgeEtaX(i, j, k)*ex.Get(i, j, k)
				rx.Set(i, j, k, val)
			}
		}
	}
	for i := 0; i < ry.Nx; i++ {
		for j := 0; j < ry.Ny; j++ {
			for k := 0; k < ry.Nz; k++ {
				if i == 0 || i == ry.Nx-1 || k == 0 || k == ry.Nz-1 {
					ry.Set(i, j, k, 0)
					continue
				}
				curl := (o.Hx[i][j][k] - o.Hx[i][j][k-1]) / complex(o.hzD[k], 0)
				curl -= (o.Hz[i][j][k] - o.Hz[i-1][j][k]) / complex(o.hxD[i], 0)
				val := curl + o.edgeEtaY(i, j, k)*ey.Get(i, j, k)
				ry.Set(i, j, k, val)
			}
		}
	}
	for i := 0; i < rz.Nx; i++ {
		for j := 0; j < rz.Ny; j++ {
			for k := 0; k < rz.Nz; k++ {
				if i == 0 || i == rz.Nx-1 || j == 0 || j == rz.Ny-1 {
					rz.Set(i, j, k, 0)
					continue
				}
				curl := (o.Hy[i][j][k] - o.Hy[i-1][j][k]) / complex(o.hxD[i], 0)
				curl -= (o.Hx[i][j][k] - o.Hx[i][j-1][k]) / complex(o.hyD[j], 0)
				val := curl + o.edgeEtaZ(i, j, k)*ez.Get(i, j, k)
				rz.Set(i, j, k, val)
			}
		}
	}
	return r
}

// diagX/diagY/diagZ return the diagonal entry of A at the given edge (the
// coefficient of e_α(i,j,k) in r_α(i,j,k)), used by the pointwise and line
// Gauss-Seidel smoothers to solve each edge's 1x1 (or
// tridiagonal) local problem without re-deriving the stencil by finite
// differencing.
func (o *Operator) diagX(i, j, k int) complex128 {
	a := o.muZ(i, j, k)/complex(o.hy[j], 0) + o.muZ(i, j-1, k)/complex(o.hy[j-1], 0)
	b := o.muY(i, j, k)/complex(o.hz[k], 0) + o.muY(i, j, k-1)/complex(o.hz[k-1], 0)
	return o.edgeEtaX(i, j, k) + a/complex(o.hyD[j], 0) + b/complex(o.hzD[k], 0)
}
func (o *Operator) diagY(i, j, k int) complex128 {
	a := o.muX(i, j, k)/complex(o.hz[k], 0) + o.muX(i, j, k-1)/complex(o.hz[k-1], 0)
	b := o.muZ(i, j, k)/complex(o.hx[i], 0) + o.muZ(i-1, j, k)/complex(o.hx[i-1], 0)
	return o.edgeEtaY(i, j, k) + a/complex(o.hzD[k], 0) + b/complex(o.hxD[i], 0)
}
func (o *Operator) diagZ(i, j, k int) complex128 {
	a := o.muY(i, j, k)/complex(o.hx[i], 0) + o.muY(i-1, j, k)/complex(o.hx[i-1], 0)
	b := o.muX(i, j, k)/complex(o.hy[j], 0) + o.muX(i, j-1, k)/complex(o.hy[j-1], 0)
	return o.edgeEtaZ(i, j, k) + a/complex(o.hxD[i], 0) + b/complex(o.hyD[j], 0)
}

// Residual computes r = b − A·e into a fresh Field.
func (o *Operator) Residual(b, e *field.Field) *field.Field {
	r := field.New(o.Mesh)
	o.Apply(e, r)
	r.Scale(-1)
	r.Add(1, b)
	return r
}
