// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestDipoleOnAxisExZeroAtOrigin(t *testing.T) {
	s := complex(0, -2*math.Pi*10)
	if v := DipoleOnAxisEx(0, 1.0/1.5, s, 1); v != 0 {
		t.Fatalf("expected zero at x=0, got %v", v)
	}
}

func TestDipoleOnAxisExDecaysWithDistance(t *testing.T) {
	s := complex(0, -2*math.Pi*10)
	sigma := 1.0 / 1.5
	near := cmplx.Abs(DipoleOnAxisEx(50, sigma, s, 1))
	far := cmplx.Abs(DipoleOnAxisEx(500, sigma, s, 1))
	if !(near > far) {
		t.Fatalf("expected field magnitude to decay with offset, near=%v far=%v", near, far)
	}
}

func TestDipoleOffAxisMatchesOnAxisAtY0(t *testing.T) {
	s := complex(0, -2*math.Pi*10)
	sigma := 1.0 / 1.5
	a := DipoleOnAxisEx(200, sigma, s, 1)
	b := DipoleOffAxisEx(200, 0, sigma, s, 1)
	diff := cmplx.Abs(a - b)
	if diff > 1e-20*cmplx.Abs(a) {
		t.Fatalf("on-axis and off-axis(y=0) formulas disagree: %v vs %v", a, b)
	}
}

func TestDipoleOnAxisExLaplaceDomainIsReal(t *testing.T) {
	s := complex(-1.0, 0)
	sigma := 0.5
	v := DipoleOnAxisEx(10, sigma, s, 1)
	if math.Abs(imag(v)) > 1e-12*math.Abs(real(v)) {
		t.Fatalf("expected a real result for real s, got %v", v)
	}
}
