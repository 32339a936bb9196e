// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ana holds closed-form analytical reference solutions used by
// tests to check the multigrid solver's output, generalising the
// teacher's own ana package (analytical solutions exercised by tests)
// from solid/porous mechanics to electromagnetic diffusion.
package ana

import (
	"math"
	"math/cmplx"

	"github.com/empymod/emg3d/model"
)

// DipoleOnAxisEx returns the x-directed electric field on the axis of an
// x-directed point electric dipole of moment `moment` (A·m) embedded in a
// homogeneous, non-magnetic, isotropic full space of conductivity sigma
// (S/m), at offset x (m) along the dipole's own axis (y = z = 0), in the
// quasi-static diffusive limit (displacement currents neglected).
//
// s is the same complex frequency/Laplace parameter model.New takes
// (s = -iω in the frequency domain, s real and negative in the Laplace
// domain). The diffusive wavenumber is k = sqrt(s·μ0·σ), i.e. k² = -iωμ0σ
// for s = -iω, so a real s gives a real field; on-axis, the
// frequency-domain full-space dipole field (Ward & Hohmann 1988, eq.
// 4.62, specialised to y = z = 0) reduces to
//
//	Ex(x) = moment / (2π·σ·x³) · [1 - (1 + ikx)·e^{-ikx}]
//
// used here purely as a sanity-check reference, not a substitute for a
// rigorously validated closed form.
func DipoleOnAxisEx(x, sigma float64, s complex128, moment float64) complex128 {
	if x == 0 || sigma <= 0 {
		return 0
	}
	k := cmplx.Sqrt(s * complex(model.Mu0*sigma, 0))
	ikx := complex(0, 1) * k * complex(x, 0)
	pref := complex(moment, 0) / complex(2*math.Pi*sigma*x*x*x, 0)
	return pref * (1 - (1+ikx)*cmplx.Exp(-ikx))
}

// DipoleOffAxisEx returns the x-component of the electric field at
// (x, y, 0) from the same x-directed dipole as DipoleOnAxisEx, the
// general off-axis reduction (z = 0) of the same closed form:
//
//	r² = x² + y², Ex = moment/(4π·σ·r³) · [(3x²/r² - 1)·(1-(1+ikr)e^{-ikr}) + (ikr)²·(1 - x²/r²)·e^{-ikr}]
func DipoleOffAxisEx(x, y, sigma float64, s complex128, moment float64) complex128 {
	r := math.Hypot(x, y)
	if r == 0 || sigma <= 0 {
		return 0
	}
	k := cmplx.Sqrt(s * complex(model.Mu0*sigma, 0))
	ikr := complex(0, 1) * k * complex(r, 0)
	expTerm := cmplx.Exp(-ikr)
	pref := complex(moment, 0) / complex(4*math.Pi*sigma*r*r*r, 0)
	term1 := complex(3*x*x/(r*r)-1, 0) * (1 - (1+ikr)*expTerm)
	term2 := ikr * ikr * complex(1-x*x/(r*r), 0) * expTerm
	return pref * (term1 + term2)
}
