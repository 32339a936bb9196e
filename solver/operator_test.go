// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/empymod/emg3d/field"
	"github.com/empymod/emg3d/mesh"
	"github.com/empymod/emg3d/model"
)

func newUniformMesh(n int, h float64) *mesh.Mesh {
	w := make([]float64, n)
	for i := range w {
		w[i] = h
	}
	m, _ := mesh.New(w, w, w, 0, 0, 0)
	return m
}

func isoModel(m *mesh.Mesh, sigma float64, s complex128) *model.Model {
	nx, ny, nz := m.Shape()
	n := nx * ny * nz
	sig := make([]float64, n)
	for i := range sig {
		sig[i] = sigma
	}
	mdl, err := model.New(m, model.Conductivities{X: sig, Map: model.Conductivity}, s)
	if err != nil {
		panic(err)
	}
	return mdl
}

func Test_operator01a(tst *testing.T) {

	chk.PrintTitle("operator01a. A applied to the zero field is zero")

	m := newUniformMesh(6, 1)
	mdl := isoModel(m, 1.0, complex(0, -2*math.Pi*10))
	op := NewOperator(m, mdl)

	e := field.New(m)
	r := field.New(m)
	op.Apply(e, r)
	if r.Norm() != 0 {
		tst.Fatalf("A*0 must be 0, got norm=%v", r.Norm())
	}
}

func Test_operator01b(tst *testing.T) {

	chk.PrintTitle("operator01b. PEC is preserved by Apply")

	m := newUniformMesh(6, 1)
	mdl := isoModel(m, 1.0, complex(0, -2*math.Pi*10))
	op := NewOperator(m, mdl)

	e := field.New(m)
	for i := range e.Data {
		e.Data[i] = complex(1, 0.5)
	}
	r := field.New(m)
	op.Apply(e, r)

	ex := r.Ex()
	for i := 0; i < ex.Nx; i++ {
		for k := 0; k < ex.Nz; k++ {
			if ex.Get(i, 0, k) != 0 || ex.Get(i, ex.Ny-1, k) != 0 {
				tst.Fatalf("Ex outer tangential edges must be zero after Apply")
			}
		}
	}
}

func Test_operator02a(tst *testing.T) {

	chk.PrintTitle("operator02a. A is linear: A(2e) = 2*A(e)")

	m := newUniformMesh(6, 1)
	mdl := isoModel(m, 1.0, complex(0, -2*math.Pi*10))
	op := NewOperator(m, mdl)

	e := field.New(m)
	for i := range e.Data {
		e.Data[i] = complex(float64(i%5)+0.3, float64(i%3))
	}
	e.EnsurePEC()

	r1 := field.New(m)
	op.Apply(e, r1)

	e2 := e.Clone()
	e2.Scale(2)
	r2 := field.New(m)
	op.Apply(e2, r2)

	diff := field.Sub(r2, r1)
	diff.Add(-1, r1) // diff = r2 - 2*r1
	if diff.Norm() > 1e-8*r2.Norm() {
		tst.Fatalf("operator is not linear: relative residual %v", diff.Norm()/r2.Norm())
	}
}
