// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"time"

	"github.com/cpmech/gosl/io"

	"github.com/empymod/emg3d/field"
	"github.com/empymod/emg3d/mesh"
	"github.com/empymod/emg3d/model"
)

// defaultRestart is the GMRES/LGMRES/GCROTMK restart length used when the
// caller does not need to tune it directly through Config.
const defaultRestart = 30

// Solve computes the edge field e solving A·e = b on the given mesh and
// model, by the scheme Config selects: a standalone multigrid cycle, a
// Krylov method accelerated by the multigrid cycle as a preconditioner,
// or (Cycle == CycleNone, SSLSolver != SSLNone) an unpreconditioned
// Krylov run. e0, if non-nil, seeds the iteration;
// otherwise the iteration starts from zero. The incoming/outgoing source
// and field are conjugated at the boundary to reconcile this
// package's internal e^{+iωt} convention with callers using e^{-iωt}.
func Solve(m *mesh.Mesh, mdl *model.Model, b *field.Field, e0 *field.Field, cfg Config) (*field.Field, *Info, error) {
	info := &Info{}
	if err := cfg.Validate(); err != nil {
		info.Exit = ExitInvalidInput
		return nil, info, err
	}

	start := time.Now()
	defer func() { info.WallTime = time.Since(start) }()

	rhs := b.Clone()
	rhs.Conj()
	info.NormRHS = rhs.Norm()

	e := field.New(m)
	if e0 != nil {
		e.CopyFrom(e0)
		e.Conj()
	}
	e.EnsurePEC()

	op := NewOperator(m, mdl)
	st := newState(m, cfg)

	r0 := op.Residual(rhs, e)
	info.Residuals = append(info.Residuals, r0.Norm())
	if cfg.Verbosity >= 2 {
		io.Pf("emg3d: initial residual = %.3e\n", r0.Norm())
	}

	if r0.Norm() <= cfg.Tol*info.NormRHS {
		info.Exit = ExitConverged
		e.Conj()
		if cfg.Verbosity >= 1 {
			io.Pf("emg3d: %s after %d outer iteration(s), final residual = %.3e, wall = %s\n",
				info.Exit, info.OuterIterations, info.Residuals[len(info.Residuals)-1], info.WallTime)
		}
		return e, info, nil
	}

	if cfg.NuInit > 0 {
		op.PointGS(rhs, e, cfg.NuInit)
		r := op.Residual(rhs, e)
		info.Residuals = append(info.Residuals, r.Norm())
	}

	if cfg.SSLSolver == SSLNone {
		runCyclesOnly(op, m, mdl, rhs, e, cfg, st, info)
	} else {
		runKrylov(op, m, mdl, rhs, e, cfg, st, info)
	}

	e.Conj()
	if cfg.Verbosity >= 1 {
		io.Pf("emg3d: %s after %d outer iteration(s), final residual = %.3e, wall = %s\n",
			info.Exit, info.OuterIterations, info.Residuals[len(info.Residuals)-1], info.WallTime)
	}
	return e, info, nil
}

// runCyclesOnly repeatedly applies the configured multigrid cycle with no
// outer Krylov acceleration, cycling the semicoarsening/line-relaxation
// direction schedules each iteration.
func runCyclesOnly(op *Operator, m *mesh.Mesh, mdl *model.Model, b, e *field.Field, cfg Config, st *state, info *Info) {
	for it := 0; it < cfg.MaxIt; it++ {
		rdir := st.rdir.current()
		ldir := st.ldir.current()
		info.RdirHistory = append(info.RdirHistory, rdir)
		info.LdirHistory = append(info.LdirHistory, ldir)

		RunCycle(op, m, mdl, b, e, cfg, rdir, ldir, st.clevel[rdir])

		r := op.Residual(b, e)
		info.Residuals = append(info.Residuals, r.Norm())
		info.OuterIterations++
		if cfg.Verbosity >= 3 {
			io.Pf("emg3d: iteration %3d  rdir=%d ldir=%d  residual=%.3e\n", it, rdir, ldir, r.Norm())
		}
		st.rdir.advance()
		st.ldir.advance()

		if info.converged(cfg.Tol) {
			info.Exit = ExitConverged
			return
		}
		if info.diverged() {
			info.Exit = ExitDiverged
			return
		}
		if info.stagnated() {
			info.Exit = ExitStagnated
			return
		}
	}
	info.Exit = ExitMaxIterations
}

// runKrylov dispatches to the configured Krylov back end, preconditioned
// by one multigrid cycle per matvec unless Cycle == CycleNone.
func runKrylov(op *Operator, m *mesh.Mesh, mdl *model.Model, b, e *field.Field, cfg Config, st *state, info *Info) {
	var precond Preconditioner
	if cfg.Cycle != CycleNone {
		rdir := st.rdir.current()
		ldir := st.ldir.current()
		precond = MGPreconditioner(op, m, mdl, cfg, rdir, ldir, st.clevel[rdir])
	}

	if cfg.SSLSolver == SSLGMRES && mdl.IsReal() {
		runKrylovReal(op, precond, b, e, cfg, info)
		return
	}

	var resids []float64
	switch cfg.SSLSolver {
	case SSLBiCGSTAB:
		_, resids = BiCGSTAB(op, precond, b, e, cfg.MaxIt, cfg.Tol)
	case SSLCGS:
		_, resids = CGS(op, precond, b, e, cfg.MaxIt, cfg.Tol)
	case SSLGMRES:
		_, resids = GMRES(op, precond, b, e, defaultRestart, cfg.MaxIt, cfg.Tol)
	case SSLLGMRES:
		_, resids = LGMRES(op, precond, b, e, defaultRestart, cfg.MaxIt, cfg.Tol)
	case SSLGCROTMK:
		_, resids = GCROTMK(op, precond, b, e, defaultRestart, cfg.MaxIt, cfg.Tol)
	}

	info.Residuals = append(info.Residuals, resids...)
	info.InnerIterations = len(resids) - 1
	info.OuterIterations = info.InnerIterations
	if info.converged(cfg.Tol) {
		info.Exit = ExitConverged
	} else if info.diverged() {
		info.Exit = ExitDiverged
	} else {
		info.Exit = ExitMaxIterations
	}
}
