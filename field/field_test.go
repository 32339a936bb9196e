// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/empymod/emg3d/mesh"
)

func smallMesh() *mesh.Mesh {
	h := func(n int, w float64) []float64 {
		s := make([]float64, n)
		for i := range s {
			s[i] = w
		}
		return s
	}
	m, _ := mesh.New(h(4, 1), h(4, 1), h(4, 1), 0, 0, 0)
	return m
}

func Test_field01a(tst *testing.T) {

	chk.PrintTitle("field01a. edge counts and view shapes")

	m := smallMesh()
	f := New(m)
	nx, ny, nz := m.Shape()
	ex, ey, ez := f.Ex(), f.Ey(), f.Ez()
	wantEx := nx * (ny + 1) * (nz + 1)
	wantEy := (nx + 1) * ny * (nz + 1)
	wantEz := (nx + 1) * (ny + 1) * nz
	if len(ex.Data) != wantEx || len(ey.Data) != wantEy || len(ez.Data) != wantEz {
		tst.Fatalf("unexpected component sizes: %d %d %d", len(ex.Data), len(ey.Data), len(ez.Data))
	}
	if f.NE() != wantEx+wantEy+wantEz {
		tst.Fatalf("unexpected NE: %d", f.NE())
	}
}

func Test_field01b(tst *testing.T) {

	chk.PrintTitle("field01b. views alias the backing buffer")

	f := New(smallMesh())
	ex := f.Ex()
	ex.Set(1, 1, 1, complex(3, 4))
	if f.Data[ex.index(1, 1, 1)] != complex(3, 4) {
		tst.Fatalf("Ex view does not alias Field.Data")
	}
}

func Test_field02a(tst *testing.T) {

	chk.PrintTitle("field02a. EnsurePEC zeroes tangential outer edges")

	f := New(smallMesh())
	for i := range f.Data {
		f.Data[i] = complex(1, 0)
	}
	f.EnsurePEC()
	ex := f.Ex()
	if ex.Get(0, 0, 0) != 0 {
		tst.Fatalf("Ex at outer y/z face must be zero after EnsurePEC")
	}
	if ex.Get(0, 1, 1) == 0 {
		tst.Fatalf("Ex at an interior (non-tangential) edge must not be zeroed")
	}
}

func Test_field03a(tst *testing.T) {

	chk.PrintTitle("field03a. norm, add and sub")

	a := New(smallMesh())
	b := New(smallMesh())
	for i := range a.Data {
		a.Data[i] = complex(1, 0)
		b.Data[i] = complex(1, 0)
	}
	r := Sub(a, b)
	if r.Norm() != 0 {
		tst.Fatalf("a-a must have zero norm, got %v", r.Norm())
	}
	a.Add(-1, b)
	if a.Norm() != 0 {
		tst.Fatalf("a += -1*a must be zero, got %v", a.Norm())
	}
}
