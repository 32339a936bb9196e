// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/empymod/emg3d/mesh"
)

// direction is a modular cycling sequence of integer codes: multi-digit
// cycling schedules re-expressed as an ordered sequence with a "next"
// operation that advances a modular index, rather than string parsing at
// each use.
type direction struct {
	codes []int
	pos   int
}

func newDirection(codes []int) *direction { return &direction{codes: codes} }

// current returns the active code without advancing.
func (o *direction) current() int { return o.codes[o.pos] }

// advance moves to the next code in the cycle.
func (o *direction) advance() { o.pos = (o.pos + 1) % len(o.codes) }

// state is the solver-state struct threaded through the cycle recursion;
// it also collects telemetry.
type state struct {
	rdir *direction
	ldir *direction

	clevel [4]int // per-rdir-code maximum coarsening level

	cfg   Config
	info  *Info
	fine  *mesh.Mesh
}

// newState builds the cycle-state for one solve, pre-computing clevel for
// each of the four rdir codes (0=full, 1=semi-x, 2=semi-y, 3=semi-z).
func newState(m *mesh.Mesh, cfg Config) *state {
	o := &state{
		rdir: newDirection(cfg.Semicoarsening),
		ldir: newDirection(cfg.LineRelaxation),
		cfg:  cfg,
		fine: m,
	}
	o.clevel = computeClevel(m, cfg.CLevel)
	return o
}

// computeClevel returns, for each rdir code, the maximum number of levels
// the recursion may descend before hitting the coarsest-grid policy: the
// largest n with shape divisible by 2^n and remaining dimension >= 2; the
// user may cap it globally.
func computeClevel(m *mesh.Mesh, cap_ int) [4]int {
	lx := m.MaxLevel(mesh.AxisX)
	ly := m.MaxLevel(mesh.AxisY)
	lz := m.MaxLevel(mesh.AxisZ)

	var out [4]int
	out[0] = minOf(lx, ly, lz) // full coarsening: bounded by every axis
	out[1] = lx                // semi-x: only x needs to keep coarsening
	out[2] = ly
	out[3] = lz
	if cap_ >= 0 {
		for i := range out {
			if out[i] > cap_ {
				out[i] = cap_
			}
		}
	}
	return out
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// maskFor turns an rdir code into the 3-bool axis-coarsening mask consumed
// by mesh.Mesh.Coarsen and model.Model.Restrict. Codes 0-3 are the ones
// exposed through Config.Semicoarsening; 4-6 (pairs of axes) are
// the wider internal range this design allows the controller to choose from
// and are supported here for completeness even though nothing currently
// selects them.
func maskFor(rdir int) [3]bool {
	switch rdir {
	case 0:
		return [3]bool{true, true, true}
	case 1:
		return [3]bool{true, false, false}
	case 2:
		return [3]bool{false, true, false}
	case 3:
		return [3]bool{false, false, true}
	case 4:
		return [3]bool{false, true, true}
	case 5:
		return [3]bool{true, false, true}
	default: // 6
		return [3]bool{true, true, false}
	}
}
