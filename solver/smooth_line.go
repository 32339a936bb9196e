// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/empymod/emg3d/field"
)

// LineAxis names a single coordinate axis for line relaxation,
// distinct from the 0..7 combined ldir codes that select a subset of axes.
type LineAxis int

// axis identifiers for line relaxation
const (
	LineX LineAxis = iota
	LineY
	LineZ
)

// thomas solves the tridiagonal system T·x = rhs by the Thomas sweep
//. lower[0] and
// upper[n-1] are never read (the line's endpoints couple only to the
// zeroed PEC boundary, which contributes nothing to the right-hand side).
func thomas(lower, diag, upper, rhs []complex128) []complex128 {
	n := len(diag)
	cp := make([]complex128, n)
	dp := make([]complex128, n)
	cp[0] = 0
	if n > 1 {
		cp[0] = upper[0] / diag[0]
	}
	dp[0] = rhs[0] / diag[0]
	for i := 1; i < n; i++ {
		m := diag[i] - lower[i]*cp[i-1]
		if i < n-1 {
			cp[i] = upper[i] / m
		}
		dp[i] = (rhs[i] - lower[i]*dp[i-1]) / m
	}
	x := make([]complex128, n)
	x[n-1] = dp[n-1]
	for i := n - 2; i >= 0; i-- {
		x[i] = dp[i] - cp[i]*x[i+1]
	}
	return x
}

// relaxLinesAlongX performs one block Gauss-Seidel pass of line relaxation
// along x for the two components whose own direction is not x (Ey, Ez),
// each of whose edges forms a line of interior points parallel to x.
// The residual r = b − A·e is evaluated once for the whole pass
// (a block-Jacobi snapshot across lines, exact within each line), then
// every line's tridiagonal correction is solved and applied.
func (o *Operator) relaxLinesAlongX(b, e *field.Field) {
	r := o.Residual(b, e)
	ey, ry := e.Ey(), r.Ey()
	for j := 0; j < ey.Ny; j++ {
		for k := 0; k < ey.Nz; k++ {
			if k == 0 || k == ey.Nz-1 {
				continue
			}
			n := ey.Nx - 2 // interior i = 1..Nx-2
			if n <= 0 {
				continue
			}
			lower := make([]complex128, n)
			diag := make([]complex128, n)
			upper := make([]complex128, n)
			rhs := make([]complex128, n)
			for idx := 0; idx < n; idx++ {
				i := idx + 1
				diag[idx] = o.diagY(i, j, k)
				rhs[idx] = ry.Get(i, j, k)
				if idx > 0 {
					lower[idx] = -o.muZ(i-1, j, k) / complex(o.hx[i-1]*o.hxD[i], 0)
				}
				if idx < n-1 {
					upper[idx] = -o.muZ(i, j, k) / complex(o.hx[i]*o.hxD[i], 0)
				}
			}
			delta := thomas(lower, diag, upper, rhs)
			for idx := 0; idx < n; idx++ {
				i := idx + 1
				ey.Set(i, j, k, ey.Get(i, j, k)+delta[idx])
			}
		}
	}

	ez, rz := e.Ez(), r.Ez()
	for j := 0; j < ez.Ny; j++ {
		for k := 0; k < ez.Nz; k++ {
			if j == 0 || j == ez.Ny-1 {
				continue
			}
			n := ez.Nx - 2
			if n <= 0 {
				continue
			}
			lower := make([]complex128, n)
			diag := make([]complex128, n)
			upper := make([]complex128, n)
			rhs := make([]complex128, n)
			for idx := 0; idx < n; idx++ {
				i := idx + 1
				diag[idx] = o.diagZ(i, j, k)
				rhs[idx] = rz.Get(i, j, k)
				if idx > 0 {
					lower[idx] = -o.muY(i-1, j, k) / complex(o.hx[i-1]*o.hxD[i], 0)
				}
				if idx < n-1 {
					upper[idx] = -o.muY(i, j, k) / complex(o.hx[i]*o.hxD[i], 0)
				}
			}
			delta := thomas(lower, diag, upper, rhs)
			for idx := 0; idx < n; idx++ {
				i := idx + 1
				ez.Set(i, j, k, ez.Get(i, j, k)+delta[idx])
			}
		}
	}
}

// relaxLinesAlongY mirrors relaxLinesAlongX for the components Ex, Ez.
func (o *Operator) relaxLinesAlongY(b, e *field.Field) {
	r := o.Residual(b, e)
	ex, rx := e.Ex(), r.Ex()
	for i := 0; i < ex.Nx; i++ {
		for k := 0; k < ex.Nz; k++ {
			if k == 0 || k == ex.Nz-1 {
				continue
			}
			n := ex.Ny - 2
			if n <= 0 {
				continue
			}
			lower := make([]complex128, n)
			diag := make([]complex128, n)
			upper := make([]complex128, n)
			rhs := make([]complex128, n)
			for idx := 0; idx < n; idx++ {
				j := idx + 1
				diag[idx] = o.diagX(i, j, k)
				rhs[idx] = rx.Get(i, j, k)
				if idx > 0 {
					lower[idx] = -o.muZ(i, j-1, k) / complex(o.hy[j-1]*o.hyD[j], 0)
				}
				if idx < n-1 {
					upper[idx] = -o.muZ(i, j, k) / complex(o.hy[j]*o.hyD[j], 0)
				}
			}
			delta := thomas(lower, diag, upper, rhs)
			for idx := 0; idx < n; idx++ {
				j := idx + 1
				ex.Set(i, j, k, ex.Get(i, j, k)+delta[idx])
			}
		}
	}

	ez, rz := e.Ez(), r.Ez()
	for i := 0; i < ez.Nx; i++ {
		for k := 0; k < ez.Nz; k++ {
			if i == 0 || i == ez.Nx-1 {
				continue
			}
			n := ez.Ny - 2
			if n <= 0 {
				continue
			}
			lower := make([]complex128, n)
			diag := make([]complex128, n)
			upper := make([]complex128, n)
			rhs := make([]complex128, n)
			for idx := 0; idx < n; idx++ {
				j := idx + 1
				diag[idx] = o.diagZ(i, j, k)
				rhs[idx] = rz.Get(i, j, k)
				if idx > 0 {
					lower[idx] = -o.muX(i, j-1, k) / complex(o.hy[j-1]*o.hyD[j], 0)
				}
				if idx < n-1 {
					upper[idx] = -o.muX(i, j, k) / complex(o.hy[j]*o.hyD[j], 0)
				}
			}
			delta := thomas(lower, diag, upper, rhs)
			for idx := 0; idx < n; idx++ {
				j := idx + 1
				ez.Set(i, j, k, ez.Get(i, j, k)+delta[idx])
			}
		}
	}
}

// relaxLinesAlongZ mirrors relaxLinesAlongX for the components Ex, Ey.
func (o *Operator) relaxLinesAlongZ(b, e *field.Field) {
	r := o.Residual(b, e)
	ex, rx := e.Ex(), r.Ex()
	for i := 0; i < ex.Nx; i++ {
		for j := 0; j < ex.Ny; j++ {
			if j == 0 || j == ex.Ny-1 {
				continue
			}
			n := ex.Nz - 2
			if n <= 0 {
				continue
			}
			lower := make([]complex128, n)
			diag := make([]complex128, n)
			upper := make([]complex128, n)
			rhs := make([]complex128, n)
			for idx := 0; idx < n; idx++ {
				k := idx + 1
				diag[idx] = o.diagX(i, j, k)
				rhs[idx] = rx.Get(i, j, k)
				if idx > 0 {
					lower[idx] = -o.muY(i, j, k-1) / complex(o.hz[k-1]*o.hzD[k], 0)
				}
				if idx < n-1 {
					upper[idx] = -o.muY(i, j, k) / complex(o.hz[k]*o.hzD[k], 0)
				}
			}
			delta := thomas(lower, diag, upper, rhs)
			for idx := 0; idx < n; idx++ {
				k := idx + 1
				ex.Set(i, j, k, ex.Get(i, j, k)+delta[idx])
			}
		}
	}

	ey, ry := e.Ey(), r.Ey()
	for i := 0; i < ey.Nx; i++ {
		for j := 0; j < ey.Ny; j++ {
			if i == 0 || i == ey.Nx-1 {
				continue
			}
			n := ey.Nz - 2
			if n <= 0 {
				continue
			}
			lower := make([]complex128, n)
			diag := make([]complex128, n)
			upper := make([]complex128, n)
			rhs := make([]complex128, n)
			for idx := 0; idx < n; idx++ {
				k := idx + 1
				diag[idx] = o.diagY(i, j, k)
				rhs[idx] = ry.Get(i, j, k)
				if idx > 0 {
					lower[idx] = -o.muX(i, j, k-1) / complex(o.hz[k-1]*o.hzD[k], 0)
				}
				if idx < n-1 {
					upper[idx] = -o.muX(i, j, k) / complex(o.hz[k]*o.hzD[k], 0)
				}
			}
			delta := thomas(lower, diag, upper, rhs)
			for idx := 0; idx < n; idx++ {
				k := idx + 1
				ey.Set(i, j, k, ey.Get(i, j, k)+delta[idx])
			}
		}
	}
}

// axisCellCount returns the number of cells along a LineAxis, used by the
// degenerate-axis policy.
func (o *Operator) axisCellCount(axis LineAxis) int {
	switch axis {
	case LineX:
		return o.nx
	case LineY:
		return o.ny
	default:
		return o.nz
	}
}

// LineGS performs nu line-relaxation passes along the given set of axes
// (in order), dropping any axis whose cell count is exactly 2 per the
// degenerate policy of this design.
func (o *Operator) LineGS(b, e *field.Field, axes []LineAxis, nu int) {
	var active []LineAxis
	for _, ax := range axes {
		if o.axisCellCount(ax) != 2 {
			active = append(active, ax)
		}
	}
	for it := 0; it < nu; it++ {
		for _, ax := range active {
			switch ax {
			case LineX:
				o.relaxLinesAlongX(b, e)
			case LineY:
				o.relaxLinesAlongY(b, e)
			case LineZ:
				o.relaxLinesAlongZ(b, e)
			}
		}
	}
}

// AxesForLdir turns an ldir code (0..7) into the ordered set of axes to
// relax. It takes no mesh and drops nothing itself; LineGS later omits any
// 2-cell axis from the active set (e.g. ldir=7 then behaves like ldir=6
// when the z axis degenerates) rather than remapping the code itself.
func AxesForLdir(ldir int) []LineAxis {
	switch ldir {
	case 0:
		return nil
	case 1:
		return []LineAxis{LineX}
	case 2:
		return []LineAxis{LineY}
	case 3:
		return []LineAxis{LineZ}
	case 4:
		return []LineAxis{LineY, LineZ}
	case 5:
		return []LineAxis{LineX, LineZ}
	case 6:
		return []LineAxis{LineX, LineY}
	default: // 7
		return []LineAxis{LineX, LineY, LineZ}
	}
}
