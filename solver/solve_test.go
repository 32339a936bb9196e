// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"
	"testing"

	"github.com/empymod/emg3d/field"
	"github.com/empymod/emg3d/mesh"
	"github.com/empymod/emg3d/model"
)

func uniformMesh(t *testing.T, n int, h float64) *mesh.Mesh {
	t.Helper()
	hs := make([]float64, n)
	for i := range hs {
		hs[i] = h
	}
	m, err := mesh.New(hs, hs, hs, 0, 0, 0)
	if err != nil {
		t.Fatalf("mesh.New: %v", err)
	}
	return m
}

func homogeneousModel(t *testing.T, m *mesh.Mesh, sigma float64, s complex128) *model.Model {
	t.Helper()
	nx, ny, nz := m.Shape()
	n := nx * ny * nz
	sig := make([]float64, n)
	for i := range sig {
		sig[i] = sigma
	}
	mdl, err := model.New(m, model.Conductivities{X: sig, Map: model.Conductivity}, s)
	if err != nil {
		t.Fatalf("model.New: %v", err)
	}
	return mdl
}

func TestSolveReducesResidualVCycle(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	s := complex(0, -2*math.Pi*10)
	mdl := homogeneousModel(t, m, 1.0/1.5, s)

	b := field.New(m)
	b.Ex().Set(4, 4, 4, complex(1, 0))

	cfg := Default()
	cfg.Cycle = CycleV
	cfg.MaxIt = 15

	_, info, err := Solve(m, mdl, b, nil, cfg)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(info.Residuals) < 2 {
		t.Fatalf("expected a residual history, got %v", info.Residuals)
	}
	first, last := info.Residuals[0], info.Residuals[len(info.Residuals)-1]
	if last >= first {
		t.Fatalf("expected residual to shrink: first=%v last=%v", first, last)
	}
}

func TestSolveInvalidConfigReturnsError(t *testing.T) {
	m := uniformMesh(t, 4, 10)
	s := complex(0, -2*math.Pi*10)
	mdl := homogeneousModel(t, m, 1.0/1.5, s)
	b := field.New(m)

	cfg := Default()
	cfg.Tol = -1
	_, info, err := Solve(m, mdl, b, nil, cfg)
	if err == nil {
		t.Fatal("expected an error for an invalid config")
	}
	if info.Exit != ExitInvalidInput {
		t.Fatalf("expected ExitInvalidInput, got %v", info.Exit)
	}
}

func TestSolveGMRESRealLaplaceDomainConverges(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	s := complex(5.0, 0) // real Laplace parameter: routes through GMRESReal
	mdl := homogeneousModel(t, m, 1.0/1.5, s)
	if !mdl.IsReal() {
		t.Fatal("expected a real Laplace-parameter model to report IsReal()")
	}
	b := field.New(m)
	b.Ex().Set(4, 4, 4, complex(1, 0))

	cfg := Default()
	cfg.Cycle = CycleV
	cfg.SSLSolver = SSLGMRES
	cfg.MaxIt = 20

	_, info, err := Solve(m, mdl, b, nil, cfg)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if info.OuterIterations != 1 {
		t.Fatalf("expected the real GMRES path to run as a single outer iteration, got %d", info.OuterIterations)
	}
	first, last := info.Residuals[0], info.Residuals[len(info.Residuals)-1]
	if last >= first {
		t.Fatalf("expected real-domain GMRES to reduce the residual: first=%v last=%v", first, last)
	}
}

func TestSolveConvergedEntryPreCheckSkipsIteration(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	s := complex(0, -2*math.Pi*10)
	mdl := homogeneousModel(t, m, 1.0/1.5, s)
	b := field.New(m)
	b.Ex().Set(4, 4, 4, complex(1, 0))

	cfg := Default()
	cfg.Cycle = CycleV
	cfg.MaxIt = 15

	e0, info, err := Solve(m, mdl, b, nil, cfg)
	if err != nil {
		t.Fatalf("first solve: %v", err)
	}
	if info.Exit != ExitConverged {
		t.Fatalf("expected the first solve to converge, got %s", info.Exit)
	}

	_, info2, err := Solve(m, mdl, b, e0, cfg)
	if err != nil {
		t.Fatalf("second solve: %v", err)
	}
	if info2.Exit != ExitConverged {
		t.Fatalf("expected re-feeding a converged field to exit converged immediately, got %s", info2.Exit)
	}
	if info2.OuterIterations != 0 {
		t.Fatalf("expected zero outer iterations from the entry pre-check, got %d", info2.OuterIterations)
	}
	if len(info2.Residuals) != 1 {
		t.Fatalf("expected a single residual entry from the entry pre-check, got %v", info2.Residuals)
	}
}

func TestSolveGMRESWithMGPreconditionerConverges(t *testing.T) {
	m := uniformMesh(t, 8, 10)
	s := complex(0, -2*math.Pi*10)
	mdl := homogeneousModel(t, m, 1.0/1.5, s)
	b := field.New(m)
	b.Ex().Set(4, 4, 4, complex(1, 0))

	cfg := Default()
	cfg.Cycle = CycleV
	cfg.SSLSolver = SSLGMRES
	cfg.MaxIt = 20

	_, info, err := Solve(m, mdl, b, nil, cfg)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	first, last := info.Residuals[0], info.Residuals[len(info.Residuals)-1]
	if last >= first {
		t.Fatalf("expected GMRES to reduce the residual: first=%v last=%v", first, last)
	}
}
