// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/empymod/emg3d/mesh"
)

func uniform(n int, h float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = h
	}
	return w
}

func Test_model01a(tst *testing.T) {

	chk.PrintTitle("model01a. isotropic model, frequency domain")

	m, _ := mesh.New(uniform(2, 1), uniform(2, 1), uniform(2, 1), 0, 0, 0)
	sigma := make([]float64, 8)
	for i := range sigma {
		sigma[i] = 1.0
	}
	s := complex(0, -2*math.Pi*10) // 10 Hz
	mdl, err := New(m, Conductivities{X: sigma, Map: Conductivity}, s)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	if mdl.VMuR[0][0][0] != 1 {
		tst.Fatalf("default v_mur must be 1, got %v", mdl.VMuR[0][0][0])
	}
	if mdl.EtaX[0][0][0] != mdl.EtaY[0][0][0] {
		tst.Fatalf("isotropic model must have equal eta_x and eta_y")
	}
}

func Test_model01b(tst *testing.T) {

	chk.PrintTitle("model01b. mismatched conductivity length is rejected")

	m, _ := mesh.New(uniform(2, 1), uniform(2, 1), uniform(2, 1), 0, 0, 0)
	_, err := New(m, Conductivities{X: []float64{1, 2, 3}, Map: Conductivity}, complex(0, -1))
	if err == nil {
		tst.Fatalf("expected error for mismatched array length")
	}
}

func Test_model02a(tst *testing.T) {

	chk.PrintTitle("model02a. restriction of eta is exactly additive")

	m, _ := mesh.New(uniform(4, 1), uniform(4, 1), uniform(4, 1), 0, 0, 0)
	sigma := make([]float64, 64)
	for i := range sigma {
		sigma[i] = 1.0 + float64(i)*0.01
	}
	s := complex(0, -2*math.Pi*5)
	fine, _ := New(m, Conductivities{X: sigma, Map: Conductivity}, s)

	coarse := fine.Restrict([3]bool{true, true, true}, 2, 2, 2)

	fsx, fsy, fsz := fine.SumEta()
	csx, csy, csz := coarse.SumEta()

	const tol = 1e-9
	if cabsDiff(fsx, csx) > tol || cabsDiff(fsy, csy) > tol || cabsDiff(fsz, csz) > tol {
		tst.Fatalf("restriction is not additive: fine=(%v,%v,%v) coarse=(%v,%v,%v)", fsx, fsy, fsz, csx, csy, csz)
	}
}

func Test_model03a(tst *testing.T) {

	chk.PrintTitle("model03a. mapping round trips")

	for _, mp := range []Mapping{Conductivity, LogTenConductivity, LnConductivity, Resistivity, LogTenResistivity, LnResistivity} {
		sigma := 0.37
		v := mp.FromConductivity(sigma)
		back := mp.ToConductivity(v)
		if math.Abs(back-sigma) > 1e-10 {
			tst.Fatalf("mapping %v did not round-trip: got %v want %v", mp, back, sigma)
		}
	}
}

func cabsDiff(a, b complex128) float64 {
	d := a - b
	return math.Hypot(real(d), imag(d))
}
