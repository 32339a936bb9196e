// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package emsource

import (
	"math"
	"testing"

	"github.com/empymod/emg3d/mesh"
)

func uniformMesh(t *testing.T, n int, h float64) *mesh.Mesh {
	t.Helper()
	hs := make([]float64, n)
	for i := range hs {
		hs[i] = h
	}
	m, err := mesh.New(hs, hs, hs, -float64(n)*h/2, -float64(n)*h/2, -float64(n)*h/2)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func TestFieldRejectsZeroS(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	_, err := Field(m, 0, Dipole{Strength: 1})
	if err == nil {
		t.Fatal("expected error for s == 0")
	}
}

func TestFieldXDirectedDipoleOnlyTouchesEx(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	s := complex(0, -2*math.Pi*10)
	b, err := Field(m, s, Dipole{Strength: 1})
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	ey, ez := b.Ey(), b.Ez()
	for _, v := range ey.Data {
		if v != 0 {
			t.Fatalf("expected Ey untouched by an x-directed dipole, got %v", v)
		}
	}
	for _, v := range ez.Data {
		if v != 0 {
			t.Fatalf("expected Ez untouched by an x-directed dipole, got %v", v)
		}
	}
	var sum complex128
	for _, v := range b.Ex().Data {
		sum += v
	}
	if sum == 0 {
		t.Fatal("expected nonzero total deposited onto Ex")
	}
}

func TestFieldTiltedDipoleTouchesAllComponents(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	s := complex(0, -2*math.Pi*10)
	b, err := Field(m, s, Dipole{Strength: 1, Azimuth: 45, Dip: 30})
	if err != nil {
		t.Fatalf("Field: %v", err)
	}
	anyNonzero := func(data []complex128) bool {
		for _, v := range data {
			if v != 0 {
				return true
			}
		}
		return false
	}
	if !anyNonzero(b.Ex().Data) || !anyNonzero(b.Ey().Data) || !anyNonzero(b.Ez().Data) {
		t.Fatal("expected a tilted dipole to deposit onto all three components")
	}
}
