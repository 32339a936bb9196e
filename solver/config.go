// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gosl/chk"
)

// Cycle is a closed variant naming the multigrid recursion pattern
// (V/W/F).
type Cycle int

// recognised cycles
const (
	CycleV Cycle = iota
	CycleW
	CycleF
	CycleNone
)

// SSLSolver is a closed variant naming the optional Krylov outer
// acceleration method.
type SSLSolver int

// recognised Krylov back ends
const (
	SSLNone SSLSolver = iota
	SSLBiCGSTAB
	SSLCGS
	SSLGMRES
	SSLLGMRES
	SSLGCROTMK
)

// Config carries the solver parameters of this design, in the manner of the
// teacher's fun.Prms-connected parameter structs but as an explicit Go
// struct rather than a string-keyed database.
type Config struct {
	Cycle     Cycle
	SSLSolver SSLSolver

	// Semicoarsening is either a single-element slice (fixed direction;
	// {0} disables semicoarsening) or a multi-element slice cycled
	// round-robin across outer iterations. An empty or nil slice is
	// rejected by Validate.
	// Values are axis codes 0 (full coarsening) through 3 (semi along z).
	Semicoarsening []int

	// LineRelaxation follows the same cycling convention as
	// Semicoarsening; values are 0 (none) through 7 (all three axes).
	LineRelaxation []int

	Tol       float64
	MaxIt     int
	NuInit    int
	NuPre     int
	NuCoarse  int
	NuPost    int
	CLevel    int // -1 = automatic
	Verbosity int // -1..4
}

// Default returns the solver's default configuration.
func Default() Config {
	return Config{
		Cycle:          CycleF,
		SSLSolver:      SSLNone,
		Semicoarsening: []int{0},
		LineRelaxation: []int{0},
		Tol:            1e-6,
		MaxIt:          50,
		NuInit:         0,
		NuPre:          2,
		NuCoarse:       1,
		NuPost:         2,
		CLevel:         -1,
		Verbosity:      0,
	}
}

// Validate checks the configuration for misconfiguration: an
// invalid cycle/solver selection, a non-positive tolerance, or an empty
// direction cycle is fatal at solve entry.
func (c Config) Validate() (err error) {
	if c.Cycle < CycleV || c.Cycle > CycleNone {
		return chk.Err("solver: invalid cycle selection %d", c.Cycle)
	}
	if c.SSLSolver < SSLNone || c.SSLSolver > SSLGCROTMK {
		return chk.Err("solver: invalid sslsolver selection %d", c.SSLSolver)
	}
	if c.Cycle == CycleNone && c.SSLSolver == SSLNone {
		return chk.Err("solver: cycle=none and sslsolver=none leaves nothing to do")
	}
	if c.Tol <= 0 {
		return chk.Err("solver: tol must be positive, got %g", c.Tol)
	}
	if c.MaxIt <= 0 {
		return chk.Err("solver: maxit must be positive, got %d", c.MaxIt)
	}
	if len(c.Semicoarsening) == 0 {
		return chk.Err("solver: semicoarsening direction cycle must not be empty")
	}
	for _, v := range c.Semicoarsening {
		if v < 0 || v > 3 {
			return chk.Err("solver: semicoarsening code out of range [0,3]: %d", v)
		}
	}
	if len(c.LineRelaxation) == 0 {
		return chk.Err("solver: linerelaxation direction cycle must not be empty")
	}
	for _, v := range c.LineRelaxation {
		if v < 0 || v > 7 {
			return chk.Err("solver: linerelaxation code out of range [0,7]: %d", v)
		}
	}
	if c.NuPre < 0 || c.NuPost < 0 || c.NuCoarse < 0 || c.NuInit < 0 {
		return chk.Err("solver: smoothing step counts must be non-negative")
	}
	return nil
}

// ParseDigits turns a multi-digit cycling string (e.g. "1213") into an
// ordered sequence of axis/direction codes, one per digit. A single digit
// or an empty string both produce a length-1 cycle of that digit (0 if
// empty).
func ParseDigits(s string) (codes []int, err error) {
	if s == "" {
		return []int{0}, nil
	}
	codes = make([]int, 0, len(s))
	for _, r := range s {
		if r < '0' || r > '9' {
			return nil, chk.Err("solver: invalid digit %q in direction cycle %q", r, s)
		}
		codes = append(codes, int(r-'0'))
	}
	return codes, nil
}
