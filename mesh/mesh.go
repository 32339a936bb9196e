// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the rectilinear tensor mesh that underpins the
// staggered (Yee-type) grid used by the multigrid diffusion solver.
package mesh

import (
	"github.com/cpmech/gosl/chk"
)

// Axis enumerates the three Cartesian axes of the tensor mesh.
type Axis int

// axis identifiers
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Mesh holds the cell widths of a rectilinear tensor mesh along the three
// axes together with its origin. Nodes, cell-centres and cell volumes are
// derived on demand; nothing beyond (h, origin) is considered primary data.
type Mesh struct {
	Hx, Hy, Hz   []float64 // cell widths [Nx], [Ny], [Nz]; all entries > 0
	X0, Y0, Z0   float64   // origin (lower corner of cell [0,0,0])
	nx, ny, nz   int       // cached cell counts
}

// New builds a Mesh from the three width arrays and an origin, validating
// that every width is strictly positive.
func New(hx, hy, hz []float64, x0, y0, z0 float64) (o *Mesh, err error) {
	o = &Mesh{Hx: hx, Hy: hy, Hz: hz, X0: x0, Y0: y0, Z0: z0}
	o.nx, o.ny, o.nz = len(hx), len(hy), len(hz)
	if err = o.checkPositive(); err != nil {
		return nil, err
	}
	return o, nil
}

// checkPositive validates the invariant that every width is strictly positive.
func (o *Mesh) checkPositive() (err error) {
	for axis, h := range [][]float64{o.Hx, o.Hy, o.Hz} {
		for i, v := range h {
			if v <= 0 {
				return chk.Err("mesh: width must be strictly positive: axis=%d index=%d value=%g", axis, i, v)
			}
		}
	}
	return nil
}

// Shape returns the number of cells along x, y and z.
func (o *Mesh) Shape() (nx, ny, nz int) { return o.nx, o.ny, o.nz }

// N returns the three cell counts packed as [3]int, indexable by Axis.
func (o *Mesh) N() [3]int { return [3]int{o.nx, o.ny, o.nz} }

// H returns the width slice for the given axis.
func (o *Mesh) H(axis Axis) []float64 {
	switch axis {
	case AxisX:
		return o.Hx
	case AxisY:
		return o.Hy
	default:
		return o.Hz
	}
}

// Nodes returns the node coordinates along an axis: len(h)+1 values, the
// cumulative sum of widths starting at the axis origin.
func (o *Mesh) Nodes(axis Axis) []float64 {
	h := o.H(axis)
	origin := o.origin(axis)
	nodes := make([]float64, len(h)+1)
	nodes[0] = origin
	for i, w := range h {
		nodes[i+1] = nodes[i] + w
	}
	return nodes
}

// CellCenters returns the cell-centre coordinates along an axis.
func (o *Mesh) CellCenters(axis Axis) []float64 {
	nodes := o.Nodes(axis)
	centers := make([]float64, len(nodes)-1)
	for i := range centers {
		centers[i] = 0.5 * (nodes[i] + nodes[i+1])
	}
	return centers
}

func (o *Mesh) origin(axis Axis) float64 {
	switch axis {
	case AxisX:
		return o.X0
	case AxisY:
		return o.Y0
	default:
		return o.Z0
	}
}

// CellVolume returns h_x[ix]*h_y[iy]*h_z[iz].
func (o *Mesh) CellVolume(ix, iy, iz int) float64 {
	return o.Hx[ix] * o.Hy[iy] * o.Hz[iz]
}

// Volumes returns the full [nx][ny][nz] cell-volume array.
func (o *Mesh) Volumes() [][][]float64 {
	vol := alloc3(o.nx, o.ny, o.nz)
	for ix := 0; ix < o.nx; ix++ {
		for iy := 0; iy < o.ny; iy++ {
			for iz := 0; iz < o.nz; iz++ {
				vol[ix][iy][iz] = o.CellVolume(ix, iy, iz)
			}
		}
	}
	return vol
}

// CanCoarsen reports whether axis can be halved: count must be even and at
// least two coarse cells must remain, so the fine count must be >= 4; an
// axis of 2 cells cannot be coarsened (MaxLevel is 0 for it).
func (o *Mesh) CanCoarsen(axis Axis) bool {
	n := o.N()[axis]
	return n%2 == 0 && n >= 4
}

// Coarsen returns a new Mesh halved along the axes selected by mask (a
// 3-bool array indexed by Axis); axes not selected, or that fail
// CanCoarsen, are left untouched. New widths along a coarsened axis are the
// sums of consecutive fine-width pairs.
func (o *Mesh) Coarsen(mask [3]bool) (c *Mesh, err error) {
	hx, hy, hz := o.Hx, o.Hy, o.Hz
	if mask[AxisX] && o.CanCoarsen(AxisX) {
		hx = pairSum(o.Hx)
	}
	if mask[AxisY] && o.CanCoarsen(AxisY) {
		hy = pairSum(o.Hy)
	}
	if mask[AxisZ] && o.CanCoarsen(AxisZ) {
		hz = pairSum(o.Hz)
	}
	return New(hx, hy, hz, o.X0, o.Y0, o.Z0)
}

// pairSum sums consecutive pairs of a width array, producing len(h)/2 values.
func pairSum(h []float64) []float64 {
	out := make([]float64, len(h)/2)
	for i := range out {
		out[i] = h[2*i] + h[2*i+1]
	}
	return out
}

// MaxLevel returns the largest n such that the cell count along axis is
// divisible by 2^n and the resulting coarsest count is still >= 2.
func (o *Mesh) MaxLevel(axis Axis) int {
	n := o.N()[axis]
	level := 0
	for n%2 == 0 && n/2 >= 2 {
		n /= 2
		level++
	}
	return level
}

func alloc3(nx, ny, nz int) [][][]float64 {
	a := make([][][]float64, nx)
	for ix := range a {
		a[ix] = make([][]float64, ny)
		for iy := range a[ix] {
			a[ix][iy] = make([]float64, nz)
		}
	}
	return a
}
