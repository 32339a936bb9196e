// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/empymod/emg3d/field"
)

func TestAxesForLdirMapsAllCodes(t *testing.T) {
	if axes := AxesForLdir(0); axes != nil {
		t.Fatalf("expected ldir=0 to select no axes, got %v", axes)
	}
	if axes := AxesForLdir(7); len(axes) != 3 {
		t.Fatalf("expected ldir=7 to select all three axes, got %v", axes)
	}
}

func TestLineGSDropsDegenerateTwoCellAxis(t *testing.T) {
	m := uniformMesh(t, 2, 10) // every axis has only 2 cells: fully degenerate
	s := complex(0, -2*math.Pi*10)
	mdl := homogeneousModel(t, m, 1.0/1.5, s)
	op := NewOperator(m, mdl)

	b := field.New(m)
	b.Ex().Set(0, 1, 1, complex(1, 0))
	e := field.New(m)

	// Must not panic even though every requested axis degenerates to empty.
	op.LineGS(b, e, AxesForLdir(7), 2)
}

func TestLineGSReducesResidual(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	s := complex(0, -2*math.Pi*10)
	mdl := homogeneousModel(t, m, 1.0/1.5, s)
	op := NewOperator(m, mdl)

	b := field.New(m)
	b.Ex().Set(4, 4, 4, complex(1, 0))
	e := field.New(m)

	before := op.Residual(b, e).Norm()
	op.LineGS(b, e, AxesForLdir(7), 2)
	after := op.Residual(b, e).Norm()

	if after >= before {
		t.Fatalf("expected line relaxation to reduce the residual: before=%v after=%v", before, after)
	}
}
