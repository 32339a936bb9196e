// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/plt"
)

// PlotResiduals draws the relative residual history on a log-scale y-axis
// and saves it to fname, using the Plot/Gll/Save plotting idiom for the
// solver's own outer-iteration residual history.
func (o *Info) PlotResiduals(fname string) {
	if len(o.Residuals) == 0 {
		return
	}
	x := make([]float64, len(o.Residuals))
	y := make([]float64, len(o.Residuals))
	r0 := o.Residuals[0]
	for i, r := range o.Residuals {
		x[i] = float64(i)
		if r0 > 0 {
			y[i] = math.Log10(r / r0)
		} else {
			y[i] = math.Log10(r + 1e-300)
		}
	}
	plt.Plot(x, y, io.Sf("'b.-', clip_on=0, label='%s'", o.Exit))
	plt.Gll("$\\mathrm{iteration}$", "$\\log_{10}(\\|r\\|/\\|r_0\\|)$", "")
	plt.Save(fname)
}
