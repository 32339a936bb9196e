// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"math"

	"github.com/cpmech/gosl/chk"
)

// Mapping is a closed variant naming the convention used to store a
// per-cell physical property before it is turned into the volumetric
// operator coefficient η. Ported from emg3d/maps.py's
// *Conductivity map classes; the six conventions map both ways.
type Mapping int

// recognised mappings
const (
	Conductivity Mapping = iota
	LogTenConductivity
	LnConductivity
	Resistivity
	LogTenResistivity
	LnResistivity
)

// String implements fmt.Stringer.
func (o Mapping) String() string {
	switch o {
	case Conductivity:
		return "conductivity"
	case LogTenConductivity:
		return "log10conductivity"
	case LnConductivity:
		return "lnconductivity"
	case Resistivity:
		return "resistivity"
	case LogTenResistivity:
		return "log10resistivity"
	case LnResistivity:
		return "lnresistivity"
	default:
		return "unknown"
	}
}

// ParseMapping converts a recognised mapping name into a Mapping value.
func ParseMapping(name string) (o Mapping, err error) {
	switch name {
	case "conductivity", "":
		return Conductivity, nil
	case "log10conductivity", "log10_conductivity":
		return LogTenConductivity, nil
	case "lnconductivity", "ln_conductivity":
		return LnConductivity, nil
	case "resistivity":
		return Resistivity, nil
	case "log10resistivity", "log10_resistivity":
		return LogTenResistivity, nil
	case "lnresistivity", "ln_resistivity":
		return LnResistivity, nil
	}
	return Conductivity, chk.Err("model: unrecognised mapping %q", name)
}

// ToConductivity converts a stored property value into conductivity (S/m)
// according to the mapping convention.
func (o Mapping) ToConductivity(v float64) float64 {
	switch o {
	case Conductivity:
		return v
	case LogTenConductivity:
		return math.Pow(10, v)
	case LnConductivity:
		return math.Exp(v)
	case Resistivity:
		return 1 / v
	case LogTenResistivity:
		return 1 / math.Pow(10, v)
	case LnResistivity:
		return 1 / math.Exp(v)
	}
	return v
}

// FromConductivity converts a conductivity value (S/m) back into the stored
// property convention; the inverse of ToConductivity.
func (o Mapping) FromConductivity(sigma float64) float64 {
	switch o {
	case Conductivity:
		return sigma
	case LogTenConductivity:
		return math.Log10(sigma)
	case LnConductivity:
		return math.Log(sigma)
	case Resistivity:
		return 1 / sigma
	case LogTenResistivity:
		return math.Log10(1 / sigma)
	case LnResistivity:
		return math.Log(1 / sigma)
	}
	return sigma
}
