// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

// Restrict builds the coarse-level Model by summing the fine η over the 2,
// 4 or 8 sub-cells that make up each coarse cell along the axes selected by
// mask, exactly as this design requires ("always sum η, not σ"). v_μr is
// averaged over the same sub-cells, since it is not an additive
// volumetric coefficient; the average is the plain arithmetic mean and
// does not weight the sub-cells by their volumes. An axis not selected by mask is left
// untouched (single sub-cell along that axis).
func (o *Model) Restrict(mask [3]bool, coarseNx, coarseNy, coarseNz int) (c *Model) {
	c = &Model{Nx: coarseNx, Ny: coarseNy, Nz: coarseNz}
	c.EtaX = alloc3c(coarseNx, coarseNy, coarseNz)
	c.EtaY = alloc3c(coarseNx, coarseNy, coarseNz)
	c.EtaZ = alloc3c(coarseNx, coarseNy, coarseNz)
	c.VMuR = alloc3r(coarseNx, coarseNy, coarseNz)

	sx, sy, sz := 1, 1, 1
	if mask[0] {
		sx = 2
	}
	if mask[1] {
		sy = 2
	}
	if mask[2] {
		sz = 2
	}
	nsub := float64(sx * sy * sz)

	for jx := 0; jx < coarseNx; jx++ {
		for jy := 0; jy < coarseNy; jy++ {
			for jz := 0; jz < coarseNz; jz++ {
				var ex, ey, ez complex128
				var vmr float64
				for a := 0; a < sx; a++ {
					for b := 0; b < sy; b++ {
						for c2 := 0; c2 < sz; c2++ {
							ix, iy, iz := jx*sx+a, jy*sy+b, jz*sz+c2
							ex += o.EtaX[ix][iy][iz]
							ey += o.EtaY[ix][iy][iz]
							ez += o.EtaZ[ix][iy][iz]
							vmr += o.VMuR[ix][iy][iz]
						}
					}
				}
				c.EtaX[jx][jy][jz] = ex
				c.EtaY[jx][jy][jz] = ey
				c.EtaZ[jx][jy][jz] = ez
				c.VMuR[jx][jy][jz] = vmr / nsub
			}
		}
	}
	return c
}
