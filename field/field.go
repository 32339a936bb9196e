// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package field implements the packed edge-centred field container:
// one contiguous backing buffer with three shape-correct views
// (Ex, Ey, Ez) computed from the mesh shape, replacing the source's
// dynamic single-flat-buffer reshaping with static, shape-checked slices.
package field

import (
	"math"
	"math/cmplx"

	"github.com/cpmech/gosl/chk"

	"github.com/empymod/emg3d/mesh"
)

// Component is a shape-correct view onto one of the three edge-oriented
// sub-blocks of a Field's backing buffer. It shares storage with the
// Field it was taken from: writes through Set are visible to the owner.
type Component struct {
	Data           []complex128
	Nx, Ny, Nz int // shape of this component
}

// index returns the flat offset of (i,j,k) within the component's own
// lexicographic (x-major) layout.
func (o Component) index(i, j, k int) int { return (i*o.Ny+j)*o.Nz + k }

// Get returns the value at (i,j,k).
func (o Component) Get(i, j, k int) complex128 { return o.Data[o.index(i, j, k)] }

// Set stores v at (i,j,k).
func (o Component) Set(i, j, k int, v complex128) { o.Data[o.index(i, j, k)] = v }

// Field is the packed edge-field container: NE = NEx+NEy+NEz complex
// values laid out contiguously, Ex first, then Ey, then Ez.
type Field struct {
	Mesh           *mesh.Mesh
	Data           []complex128
	nEx, nEy, nEz int
	nx, ny, nz     int
}

// New allocates a zeroed Field sized to m.
func New(m *mesh.Mesh) *Field {
	nx, ny, nz := m.Shape()
	o := &Field{Mesh: m, nx: nx, ny: ny, nz: nz}
	o.nEx = nx * (ny + 1) * (nz + 1)
	o.nEy = (nx + 1) * ny * (nz + 1)
	o.nEz = (nx + 1) * (ny + 1) * nz
	o.Data = make([]complex128, o.nEx+o.nEy+o.nEz)
	return o
}

// NE returns the total edge count.
func (o *Field) NE() int { return len(o.Data) }

// Ex returns the view onto the x-directed edges, shape (Nx, Ny+1, Nz+1).
func (o *Field) Ex() Component {
	return Component{Data: o.Data[:o.nEx], Nx: o.nx, Ny: o.ny + 1, Nz: o.nz + 1}
}

// Ey returns the view onto the y-directed edges, shape (Nx+1, Ny, Nz+1).
func (o *Field) Ey() Component {
	return Component{Data: o.Data[o.nEx : o.nEx+o.nEy], Nx: o.nx + 1, Ny: o.ny, Nz: o.nz + 1}
}

// Ez returns the view onto the z-directed edges, shape (Nx+1, Ny+1, Nz).
func (o *Field) Ez() Component {
	return Component{Data: o.Data[o.nEx+o.nEy:], Nx: o.nx + 1, Ny: o.ny + 1, Nz: o.nz}
}

// Zero sets every edge value to zero.
func (o *Field) Zero() {
	for i := range o.Data {
		o.Data[i] = 0
	}
}

// Clone returns a deep copy.
func (o *Field) Clone() *Field {
	c := &Field{Mesh: o.Mesh, nEx: o.nEx, nEy: o.nEy, nEz: o.nEz, nx: o.nx, ny: o.ny, nz: o.nz}
	c.Data = make([]complex128, len(o.Data))
	copy(c.Data, o.Data)
	return c
}

// CopyFrom overwrites o's data with b's; panics via chk.Panic on shape mismatch.
func (o *Field) CopyFrom(b *Field) {
	if len(o.Data) != len(b.Data) {
		chk.Panic("field: CopyFrom shape mismatch: %d != %d", len(o.Data), len(b.Data))
	}
	copy(o.Data, b.Data)
}

// Add computes o += α·b.
func (o *Field) Add(alpha complex128, b *Field) {
	if len(o.Data) != len(b.Data) {
		chk.Panic("field: Add shape mismatch: %d != %d", len(o.Data), len(b.Data))
	}
	for i := range o.Data {
		o.Data[i] += alpha * b.Data[i]
	}
}

// Sub computes r = a - b into a new Field.
func Sub(a, b *Field) *Field {
	if len(a.Data) != len(b.Data) {
		chk.Panic("field: Sub shape mismatch: %d != %d", len(a.Data), len(b.Data))
	}
	r := &Field{Mesh: a.Mesh, nEx: a.nEx, nEy: a.nEy, nEz: a.nEz, nx: a.nx, ny: a.ny, nz: a.nz}
	r.Data = make([]complex128, len(a.Data))
	for i := range r.Data {
		r.Data[i] = a.Data[i] - b.Data[i]
	}
	return r
}

// Scale multiplies every edge value by alpha, in place.
func (o *Field) Scale(alpha complex128) {
	for i := range o.Data {
		o.Data[i] *= alpha
	}
}

// Norm returns the ℓ2 norm over all edges, computed in double precision
// regardless of field dtype.
func (o *Field) Norm() float64 {
	var sum float64
	for _, v := range o.Data {
		sum += real(v)*real(v) + imag(v)*imag(v)
	}
	return math.Sqrt(sum)
}

// Dot returns the unconjugated bilinear form Σ a_i·b_i, the natural inner
// product for the complex-symmetric (not Hermitian) operator of this design.
func Dot(a, b *Field) complex128 {
	var sum complex128
	for i := range a.Data {
		sum += a.Data[i] * b.Data[i]
	}
	return sum
}

// Conj conjugates every edge value in place, used at the solver's entry
// and exit boundary to reconcile the e^{+iωt} time convention this module
// computes internally with the e^{-iωt} convention some callers expect
// back.
func (o *Field) Conj() {
	for i := range o.Data {
		o.Data[i] = cmplx.Conj(o.Data[i])
	}
}

// EnsurePEC zeroes the tangential edge components on the six outer faces
// of the domain: Ex is tangential to
// the y- and z-normal faces, Ey to the x- and z-normal faces, Ez to the
// x- and y-normal faces.
func (o *Field) EnsurePEC() {
	ex := o.Ex()
	for i := 0; i < ex.Nx; i++ {
		for j := 0; j < ex.Ny; j++ {
			for k := 0; k < ex.Nz; k++ {
				if j == 0 || j == ex.Ny-1 || k == 0 || k == ex.Nz-1 {
					ex.Set(i, j, k, 0)
				}
			}
		}
	}
	ey := o.Ey()
	for i := 0; i < ey.Nx; i++ {
		for j := 0; j < ey.Ny; j++ {
			for k := 0; k < ey.Nz; k++ {
				if i == 0 || i == ey.Nx-1 || k == 0 || k == ey.Nz-1 {
					ey.Set(i, j, k, 0)
				}
			}
		}
	}
	ez := o.Ez()
	for i := 0; i < ez.Nx; i++ {
		for j := 0; j < ez.Ny; j++ {
			for k := 0; k < ez.Nz; k++ {
				if i == 0 || i == ez.Nx-1 || j == 0 || j == ez.Ny-1 {
					ez.Set(i, j, k, 0)
				}
			}
		}
	}
}
