// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/empymod/emg3d/field"
	"github.com/empymod/emg3d/mesh"
	"github.com/empymod/emg3d/model"
)

// canCoarsenFurther reports whether at least one axis selected by mask can
// still be halved, the mesh-driven half of the coarsest-grid stop test
// (the level-counted half is maxLevel in cycleLevel).
func canCoarsenFurther(m *mesh.Mesh, mask [3]bool) bool {
	return (mask[mesh.AxisX] && m.CanCoarsen(mesh.AxisX)) ||
		(mask[mesh.AxisY] && m.CanCoarsen(mesh.AxisY)) ||
		(mask[mesh.AxisZ] && m.CanCoarsen(mesh.AxisZ))
}

// smoothBoth runs nu pointwise iterations and, when ldir selects any axes,
// nu line-relaxation iterations on top: line relaxation supplements,
// rather than replaces, the pointwise sweep.
func smoothBoth(op *Operator, b, e *field.Field, ldir, nu int) {
	if nu == 0 {
		return
	}
	op.PointGS(b, e, nu)
	if axes := AxesForLdir(ldir); len(axes) > 0 {
		op.LineGS(b, e, axes, nu)
	}
}

// cycleLevel implements the recursive V/W/F multigrid descent.
// mask and ldir are fixed for the whole recursion (chosen once per
// outer iteration by the caller); level counts how many times the
// recursion has coarsened so far, compared against maxLevel (state.clevel
// for the active rdir code).
func cycleLevel(op *Operator, m *mesh.Mesh, mdl *model.Model, b, e *field.Field, cfg Config, mask [3]bool, ldir, level, maxLevel int, cyc Cycle) {
	if level >= maxLevel || !canCoarsenFurther(m, mask) {
		smoothBoth(op, b, e, ldir, cfg.NuCoarse)
		return
	}

	smoothBoth(op, b, e, ldir, cfg.NuPre)

	r := op.Residual(b, e)
	cm, err := m.Coarsen(mask)
	if err != nil {
		smoothBoth(op, b, e, ldir, cfg.NuCoarse)
		return
	}
	cnx, cny, cnz := cm.Shape()
	cmdl := mdl.Restrict(mask, cnx, cny, cnz)
	cop := NewOperator(cm, cmdl)

	rc := Restrict(r, cm, mask)
	ec := field.New(cm)

	switch cyc {
	case CycleW:
		cycleLevel(cop, cm, cmdl, rc, ec, cfg, mask, ldir, level+1, maxLevel, cyc)
		cycleLevel(cop, cm, cmdl, rc, ec, cfg, mask, ldir, level+1, maxLevel, cyc)
	case CycleF:
		cycleLevel(cop, cm, cmdl, rc, ec, cfg, mask, ldir, level+1, maxLevel, CycleF)
		cycleLevel(cop, cm, cmdl, rc, ec, cfg, mask, ldir, level+1, maxLevel, CycleV)
	default: // CycleV
		cycleLevel(cop, cm, cmdl, rc, ec, cfg, mask, ldir, level+1, maxLevel, cyc)
	}

	corr := Prolong(ec, m, mask)
	e.Add(1, corr)
	e.EnsurePEC()

	smoothBoth(op, b, e, ldir, cfg.NuPost)
}

// RunCycle performs a single multigrid cycle (V, W or F) on the finest
// grid, updating e in place. rdir/ldir are the codes chosen for this
// outer iteration; maxLevel bounds the recursion (state.clevel[rdir]).
func RunCycle(op *Operator, m *mesh.Mesh, mdl *model.Model, b, e *field.Field, cfg Config, rdir, ldir, maxLevel int) {
	mask := maskFor(rdir)
	cycleLevel(op, m, mdl, b, e, cfg, mask, ldir, 0, maxLevel, cfg.Cycle)
}
