// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"gonum.org/v1/gonum/linsolve"
	"gonum.org/v1/gonum/mat"

	"github.com/empymod/emg3d/field"
)

// realMatVec adapts the complex128-native Operator to gonum/linsolve's
// MulVecToer, valid whenever the model's s parameter is real (the
// Laplace-domain case of this design): η and v_μr then carry zero imaginary
// part, so the operator maps real inputs to real outputs and a real
// gonum.org/v1/gonum/mat.VecDense round trip loses nothing.
type realMatVec struct {
	op *Operator
}

func (o realMatVec) MulVecTo(dst *mat.VecDense, _ bool, x mat.Vector) {
	n := dst.Len()
	ef := field.New(o.op.Mesh)
	for i := 0; i < n; i++ {
		ef.Data[i] = complex(x.AtVec(i), 0)
	}
	rf := field.New(o.op.Mesh)
	o.op.Apply(ef, rf)
	for i := 0; i < n; i++ {
		dst.SetVec(i, real(rf.Data[i]))
	}
}

// realPrecon adapts a Preconditioner (an MG cycle) to gonum/linsolve's
// PreconSolver, the real-domain half of Krylov acceleration.
type realPrecon struct {
	op      *Operator
	precond Preconditioner
}

func (o realPrecon) PreconSolve(dst *mat.VecDense, _ bool, rhs mat.Vector) error {
	if o.precond == nil {
		dst.CopyVec(rhs)
		return nil
	}
	n := dst.Len()
	rf := field.New(o.op.Mesh)
	for i := 0; i < n; i++ {
		rf.Data[i] = complex(rhs.AtVec(i), 0)
	}
	xf := o.precond(rf)
	for i := 0; i < n; i++ {
		dst.SetVec(i, real(xf.Data[i]))
	}
	return nil
}

// realSystem bundles MulVecTo and PreconSolve into the single value
// gonum/linsolve.Iterative expects. realSystem always carries a
// PreconSolve method; leaving precond nil runs unpreconditioned because
// realPrecon.PreconSolve then copies rhs into dst unchanged.
type realSystem struct {
	realMatVec
	realPrecon
}

// runKrylovReal runs GMRESReal in place of the complex128 GMRES when the
// model's Laplace parameter s is real, exercising gonum/linsolve's GMRES
// directly on float64 data. The whole call is accounted as one outer/inner
// iteration: linsolve.Iterative does not expose a per-iteration residual
// trace, only the final iterate.
func runKrylovReal(op *Operator, precond Preconditioner, b, e *field.Field, cfg Config, info *Info) {
	n := b.NE()
	bReal := make([]float64, n)
	x0 := make([]float64, n)
	for i := 0; i < n; i++ {
		bReal[i] = real(b.Data[i])
		x0[i] = real(e.Data[i])
	}

	x, err := GMRESReal(op, precond, bReal, x0, defaultRestart, cfg.MaxIt, cfg.Tol)
	if err != nil {
		info.Exit = ExitInternalError
		return
	}
	for i := 0; i < n; i++ {
		e.Data[i] = complex(x[i], 0)
	}

	r := op.Residual(b, e)
	info.Residuals = append(info.Residuals, r.Norm())
	info.InnerIterations = 1
	info.OuterIterations = 1
	if info.converged(cfg.Tol) {
		info.Exit = ExitConverged
	} else if info.diverged() {
		info.Exit = ExitDiverged
	} else {
		info.Exit = ExitMaxIterations
	}
}

// GMRESReal solves the real (Laplace-domain) system directly through
// gonum.org/v1/gonum/linsolve's GMRES, the path real-valued systems take
// instead of the hand-translated complex128 Krylov methods of krylov.go.
func GMRESReal(op *Operator, precond Preconditioner, b []float64, x0 []float64, restart, maxit int, tol float64) ([]float64, error) {
	n := len(b)
	sys := realSystem{
		realMatVec: realMatVec{op: op},
		realPrecon: realPrecon{op: op, precond: precond},
	}

	settings := &linsolve.Settings{
		Tolerance:     tol,
		MaxIterations: maxit,
	}
	if x0 != nil {
		settings.InitX = mat.NewVecDense(n, append([]float64(nil), x0...))
	}

	bvec := mat.NewVecDense(n, b)
	result, err := linsolve.Iterative(sys, bvec, &linsolve.GMRES{Restart: restart}, settings)
	if err != nil {
		return nil, err
	}
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = result.X.AtVec(i)
	}
	return out, nil
}
