// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model implements the per-cell volumetric operator coefficients
// (η) and the inverse relative permeability that the multigrid operator
// consumes, generalising the material-model idiom of mdl/diffusion.M1.
package model

import (
	"github.com/cpmech/gosl/chk"

	"github.com/empymod/emg3d/mesh"
)

// Mu0 is the vacuum permeability, in H/m.
const Mu0 = 4e-7 * 3.14159265358979323846

// Eps0 is the vacuum permittivity, in F/m.
const Eps0 = 8.8541878128e-12

// Model carries the per-cell volumetric coefficients η_x, η_y, η_z (the
// model coefficients on the fine mesh) and the optional inverse
// relative permeability v_μr (default 1). All arrays are shaped [nx][ny][nz].
type Model struct {
	Nx, Ny, Nz     int
	EtaX, EtaY, EtaZ [][][]complex128
	VMuR           [][][]float64
}

// Conductivities groups the per-axis conductivity-convention cell arrays
// fed to New. Missing axes default to the isotropic (X) value, matching
// "missing axes default to the isotropic value" rule: pass nil
// for Y and/or Z to request isotropic or VTI/HTI behaviour.
type Conductivities struct {
	X, Y, Z []float64 // flattened [nx*ny*nz], mapping-encoded values
	Epsilon []float64 // relative permittivity; nil defaults to 1 everywhere
	MuR     []float64 // relative permeability; nil defaults to 1 everywhere
	Map     Mapping
}

// New builds a Model on the given mesh from conductivity-convention arrays
// and a frequency/Laplace parameter s (s = -iω in the frequency domain, s
// real in the Laplace domain). η_α = s·μ0·σ̃_α·V, where σ̃ = σ + s·ε0·εr
// carries the displacement-current term.
func New(m *mesh.Mesh, c Conductivities, s complex128) (o *Model, err error) {
	nx, ny, nz := m.Shape()
	n := nx * ny * nz
	if len(c.X) != n {
		return nil, chk.Err("model: conductivity array length %d does not match mesh cell count %d", len(c.X), n)
	}
	if s == 0 {
		return nil, chk.Err("model: frequency/Laplace parameter s must be nonzero")
	}

	o = &Model{Nx: nx, Ny: ny, Nz: nz}
	o.EtaX = alloc3c(nx, ny, nz)
	o.EtaY = alloc3c(nx, ny, nz)
	o.EtaZ = alloc3c(nx, ny, nz)
	o.VMuR = alloc3r(nx, ny, nz)

	sy := c.Y
	if sy == nil {
		sy = c.X
	}
	sz := c.Z
	if sz == nil {
		sz = c.X
	}

	vol := m.Volumes()

	idx := func(ix, iy, iz int) int { return (ix*ny+iy)*nz + iz }

	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			for iz := 0; iz < nz; iz++ {
				i := idx(ix, iy, iz)
				v := vol[ix][iy][iz]

				epsR := 1.0
				if c.Epsilon != nil {
					epsR = c.Epsilon[i]
				}
				muR := 1.0
				if c.MuR != nil {
					muR = c.MuR[i]
				}

				sigX := c.Map.ToConductivity(c.X[i])
				sigY := c.Map.ToConductivity(sy[i])
				sigZ := c.Map.ToConductivity(sz[i])

				sigTildeX := complex(sigX, 0) + s*complex(Eps0*epsR, 0)
				sigTildeY := complex(sigY, 0) + s*complex(Eps0*epsR, 0)
				sigTildeZ := complex(sigZ, 0) + s*complex(Eps0*epsR, 0)

				o.EtaX[ix][iy][iz] = s * complex(Mu0, 0) * sigTildeX * complex(v, 0)
				o.EtaY[ix][iy][iz] = s * complex(Mu0, 0) * sigTildeY * complex(v, 0)
				o.EtaZ[ix][iy][iz] = s * complex(Mu0, 0) * sigTildeZ * complex(v, 0)
				o.VMuR[ix][iy][iz] = 1 / muR
			}
		}
	}
	return o, nil
}

// IsReal reports whether every η entry carries zero imaginary part, i.e.
// whether the Laplace parameter s passed to New was real rather than a
// genuine e^{iωt} frequency. Callers use this to pick the real-valued
// Krylov path over the complex128 one.
func (o *Model) IsReal() bool {
	for ix := 0; ix < o.Nx; ix++ {
		for iy := 0; iy < o.Ny; iy++ {
			for iz := 0; iz < o.Nz; iz++ {
				if imag(o.EtaX[ix][iy][iz]) != 0 || imag(o.EtaY[ix][iy][iz]) != 0 || imag(o.EtaZ[ix][iy][iz]) != 0 {
					return false
				}
			}
		}
	}
	return true
}

// SumEta returns the scalar sum over all cells of η_x, η_y and η_z. Used by
// the "η restriction is exactly additive" invariant test.
func (o *Model) SumEta() (sx, sy, sz complex128) {
	for ix := 0; ix < o.Nx; ix++ {
		for iy := 0; iy < o.Ny; iy++ {
			for iz := 0; iz < o.Nz; iz++ {
				sx += o.EtaX[ix][iy][iz]
				sy += o.EtaY[ix][iy][iz]
				sz += o.EtaZ[ix][iy][iz]
			}
		}
	}
	return
}

func alloc3c(nx, ny, nz int) [][][]complex128 {
	a := make([][][]complex128, nx)
	for ix := range a {
		a[ix] = make([][]complex128, ny)
		for iy := range a[ix] {
			a[ix][iy] = make([]complex128, nz)
		}
	}
	return a
}

func alloc3r(nx, ny, nz int) [][][]float64 {
	a := make([][][]float64, nx)
	for ix := range a {
		a[ix] = make([][]float64, ny)
		for iy := range a[ix] {
			a[ix][iy] = make([]float64, nz)
		}
	}
	return a
}
