// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/empymod/emg3d/field"
)

func TestRestrictConstantFieldStaysConstant(t *testing.T) {
	fine := uniformMesh(t, 8, 10)
	coarse, err := fine.Coarsen([3]bool{true, true, true})
	if err != nil {
		t.Fatalf("Coarsen: %v", err)
	}

	f := field.New(fine)
	for i := range f.Data {
		f.Data[i] = complex(3.5, -1.25)
	}

	r := Restrict(f, coarse, [3]bool{true, true, true})
	for _, v := range r.Data {
		if math.Abs(real(v)-3.5) > 1e-12 || math.Abs(imag(v)+1.25) > 1e-12 {
			t.Fatalf("expected a constant field to restrict to itself, got %v", v)
		}
	}
}

func TestProlongConstantFieldStaysConstant(t *testing.T) {
	fine := uniformMesh(t, 8, 10)
	coarse, err := fine.Coarsen([3]bool{true, true, true})
	if err != nil {
		t.Fatalf("Coarsen: %v", err)
	}

	c := field.New(coarse)
	for i := range c.Data {
		c.Data[i] = complex(2, 4)
	}

	p := Prolong(c, fine, [3]bool{true, true, true})
	ex := p.Ex()
	for i := 1; i < ex.Nx-1; i++ {
		for j := 1; j < ex.Ny-1; j++ {
			for k := 1; k < ex.Nz-1; k++ {
				v := ex.Get(i, j, k)
				if math.Abs(real(v)-2) > 1e-9 || math.Abs(imag(v)-4) > 1e-9 {
					t.Fatalf("expected interior prolongation of a constant field to stay constant, got %v at (%d,%d,%d)", v, i, j, k)
				}
			}
		}
	}
}

func TestRestrictSemicoarsenOnlyCombinesOwnAxis(t *testing.T) {
	fine := uniformMesh(t, 8, 10)
	coarse, err := fine.Coarsen([3]bool{true, false, false})
	if err != nil {
		t.Fatalf("Coarsen: %v", err)
	}
	cnx, cny, cnz := coarse.Shape()
	fnx, fny, fnz := fine.Shape()
	if cnx != fnx/2 || cny != fny || cnz != fnz {
		t.Fatalf("expected only x coarsened, got coarse shape (%d,%d,%d) from fine (%d,%d,%d)", cnx, cny, cnz, fnx, fny, fnz)
	}

	f := field.New(fine)
	for i := range f.Data {
		f.Data[i] = complex(1, 0)
	}
	r := Restrict(f, coarse, [3]bool{true, false, false})
	if r.NE() == 0 {
		t.Fatal("expected a nonempty restricted field")
	}
}
