// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package emsource discretises point and finite electric dipole sources
// onto a staggered edge grid, producing the right-hand-side field b that
// solver.Solve consumes via "source injection" on the Yee grid.
package emsource

import (
	"math"

	"github.com/cpmech/gosl/chk"

	"github.com/empymod/emg3d/field"
	"github.com/empymod/emg3d/mesh"
	"github.com/empymod/emg3d/model"
)

// Dipole describes a finite electric dipole source: a current of Strength
// amperes flowing along a segment of length Length metres centred at
// Center, oriented by Azimuth (horizontal deviation from the x-axis,
// anti-clockwise, degrees) and Dip (vertical deviation from the xy-plane,
// upwards positive, degrees) -- the rotation convention of the source's
// electrodes.rotation. Length == 0 collapses it to a point dipole of
// moment Strength (A·m), matching the original's point/finite duality.
type Dipole struct {
	Center       [3]float64
	Azimuth, Dip float64
	Length       float64
	Strength     float64
}

// moment returns the dipole's vector moment (A·m) decomposed onto x, y, z.
func (d Dipole) moment() (mx, my, mz float64) {
	length := d.Length
	if length == 0 {
		length = 1
	}
	az := d.Azimuth * math.Pi / 180
	dip := d.Dip * math.Pi / 180
	m := d.Strength * length
	mx = m * math.Cos(az) * math.Cos(dip)
	my = m * math.Sin(az) * math.Cos(dip)
	mz = m * math.Sin(dip)
	return
}

// Field discretises d onto m's edge grid at Laplace/frequency parameter s,
// returning b = -s·μ0·Js in the packed layout field.New produces, i.e. the
// right-hand side solver.Solve expects. The dipole's vector
// moment is distributed across the up to eight nearest edges of each
// affected component by trilinear interpolation; it is not additionally
// normalised by the enclosing cell volumes, a deliberate simplification
// of the source's more elaborate length-and-volume weighted deposition.
func Field(m *mesh.Mesh, s complex128, d Dipole) (*field.Field, error) {
	if s == 0 {
		return nil, chk.Err("emsource: s must be nonzero")
	}
	b := field.New(m)
	mx, my, mz := d.moment()
	scale := -s * complex(model.Mu0, 0)
	if mx != 0 {
		depositX(m, b, d.Center, mx*real(scale), mx*imag(scale))
	}
	if my != 0 {
		depositY(m, b, d.Center, my*real(scale), my*imag(scale))
	}
	if mz != 0 {
		depositZ(m, b, d.Center, mz*real(scale), mz*imag(scale))
	}
	return b, nil
}

// locate returns the bracketing indices and linear-interpolation weights
// of x within the sorted coordinate array coords, clamping to the nearest
// endpoint when x falls outside the array's range.
func locate(coords []float64, x float64) (i0, i1 int, w0, w1 float64) {
	n := len(coords)
	if x <= coords[0] {
		return 0, 0, 1, 0
	}
	if x >= coords[n-1] {
		return n - 1, n - 1, 1, 0
	}
	for i := 0; i < n-1; i++ {
		if x >= coords[i] && x <= coords[i+1] {
			span := coords[i+1] - coords[i]
			w1 = (x - coords[i]) / span
			return i, i + 1, 1 - w1, w1
		}
	}
	return n - 1, n - 1, 1, 0
}

func depositX(m *mesh.Mesh, b *field.Field, c [3]float64, re, im float64) {
	cx := m.CellCenters(mesh.AxisX)
	ny := m.Nodes(mesh.AxisY)
	nz := m.Nodes(mesh.AxisZ)
	ix0, ix1, wx0, wx1 := locate(cx, c[0])
	iy0, iy1, wy0, wy1 := locate(ny, c[1])
	iz0, iz1, wz0, wz1 := locate(nz, c[2])
	ex := b.Ex()
	for _, ix := range uniq(ix0, ix1) {
		wx := weightOf(ix, ix0, ix1, wx0, wx1)
		for _, iy := range uniq(iy0, iy1) {
			wy := weightOf(iy, iy0, iy1, wy0, wy1)
			for _, iz := range uniq(iz0, iz1) {
				wz := weightOf(iz, iz0, iz1, wz0, wz1)
				w := wx * wy * wz
				ex.Set(ix, iy, iz, ex.Get(ix, iy, iz)+complex(re*w, im*w))
			}
		}
	}
}

func depositY(m *mesh.Mesh, b *field.Field, c [3]float64, re, im float64) {
	nx := m.Nodes(mesh.AxisX)
	cy := m.CellCenters(mesh.AxisY)
	nz := m.Nodes(mesh.AxisZ)
	ix0, ix1, wx0, wx1 := locate(nx, c[0])
	iy0, iy1, wy0, wy1 := locate(cy, c[1])
	iz0, iz1, wz0, wz1 := locate(nz, c[2])
	ey := b.Ey()
	for _, ix := range uniq(ix0, ix1) {
		wx := weightOf(ix, ix0, ix1, wx0, wx1)
		for _, iy := range uniq(iy0, iy1) {
			wy := weightOf(iy, iy0, iy1, wy0, wy1)
			for _, iz := range uniq(iz0, iz1) {
				wz := weightOf(iz, iz0, iz1, wz0, wz1)
				w := wx * wy * wz
				ey.Set(ix, iy, iz, ey.Get(ix, iy, iz)+complex(re*w, im*w))
			}
		}
	}
}

func depositZ(m *mesh.Mesh, b *field.Field, c [3]float64, re, im float64) {
	nx := m.Nodes(mesh.AxisX)
	ny := m.Nodes(mesh.AxisY)
	cz := m.CellCenters(mesh.AxisZ)
	ix0, ix1, wx0, wx1 := locate(nx, c[0])
	iy0, iy1, wy0, wy1 := locate(ny, c[1])
	iz0, iz1, wz0, wz1 := locate(cz, c[2])
	ez := b.Ez()
	for _, ix := range uniq(ix0, ix1) {
		wx := weightOf(ix, ix0, ix1, wx0, wx1)
		for _, iy := range uniq(iy0, iy1) {
			wy := weightOf(iy, iy0, iy1, wy0, wy1)
			for _, iz := range uniq(iz0, iz1) {
				wz := weightOf(iz, iz0, iz1, wz0, wz1)
				w := wx * wy * wz
				ez.Set(ix, iy, iz, ez.Get(ix, iy, iz)+complex(re*w, im*w))
			}
		}
	}
}

// uniq collapses a clamped (i0, i1) pair with i0 == i1 to a single index.
func uniq(i0, i1 int) []int {
	if i0 == i1 {
		return []int{i0}
	}
	return []int{i0, i1}
}

func weightOf(i, i0, i1 int, w0, w1 float64) float64 {
	if i == i0 {
		return w0
	}
	return w1
}
