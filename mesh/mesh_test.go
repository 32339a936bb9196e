// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func uniform(n int, h float64) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = h
	}
	return w
}

func Test_mesh01a(tst *testing.T) {

	chk.PrintTitle("mesh01a. basic construction and node positions")

	m, err := New(uniform(4, 1), uniform(4, 2), uniform(4, 0.5), 0, 0, 0)
	if err != nil {
		tst.Fatalf("New failed: %v", err)
	}
	nx, ny, nz := m.Shape()
	if nx != 4 || ny != 4 || nz != 4 {
		tst.Fatalf("unexpected shape: %d %d %d", nx, ny, nz)
	}
	nodes := m.Nodes(AxisX)
	if len(nodes) != 5 || nodes[4] != 4 {
		tst.Fatalf("unexpected x nodes: %v", nodes)
	}
	if vol := m.CellVolume(0, 0, 0); vol != 1 {
		tst.Fatalf("unexpected cell volume: %v", vol)
	}
}

func Test_mesh01b(tst *testing.T) {

	chk.PrintTitle("mesh01b. non-positive widths are rejected")

	_, err := New([]float64{1, -1, 1, 1}, uniform(4, 1), uniform(4, 1), 0, 0, 0)
	if err == nil {
		tst.Fatalf("expected error for non-positive width")
	}
}

func Test_mesh02a(tst *testing.T) {

	chk.PrintTitle("mesh02a. coarsening halves the selected axes")

	m, _ := New(uniform(8, 1), uniform(8, 1), uniform(4, 1), 0, 0, 0)
	c, err := m.Coarsen([3]bool{true, true, false})
	if err != nil {
		tst.Fatalf("Coarsen failed: %v", err)
	}
	nx, ny, nz := c.Shape()
	if nx != 4 || ny != 4 || nz != 4 {
		tst.Fatalf("unexpected coarse shape: %d %d %d", nx, ny, nz)
	}
	if c.Hx[0] != 2 {
		tst.Fatalf("unexpected coarse width: %v", c.Hx[0])
	}
}

func Test_mesh02b(tst *testing.T) {

	chk.PrintTitle("mesh02b. two-cell axis cannot coarsen further")

	m, _ := New(uniform(2, 1), uniform(4, 1), uniform(4, 1), 0, 0, 0)
	if m.CanCoarsen(AxisX) {
		tst.Fatalf("axis with 2 cells must not be coarsenable")
	}
	if m.MaxLevel(AxisX) != 0 {
		tst.Fatalf("MaxLevel of a 2-cell axis must be 0")
	}
}
