// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package cavity implements the effective U-value (convective plus
// radiative) of a gas-filled cavity enclosed between two solid surfaces,
// per ISO 15099 §5.
package cavity

import (
	"math"

	"github.com/germolinal/thermalcore/gas"
)

// StefanBoltzmann is sigma, in W/(m2.K4)
const StefanBoltzmann = 5.670374419e-8

// Cavity models a gas layer between two solid surfaces.
type Cavity struct {
	Thickness   float64  // gap width, m
	Height      float64  // cavity height, m (ISO 15099: distance top to bottom)
	Gas         *gas.Gas // fill gas
	EmissFront  float64  // thermal emissivity of the front bounding surface
	EmissBack   float64  // thermal emissivity of the back bounding surface
	Tilt        float64  // radians, 0 = horizontal, pi/2 = vertical
}

// New builds a Cavity, defaulting both emissivities to 0.84 when zero-valued
// (the source's default-emissivity convention, §9).
func New(thickness, height float64, g *gas.Gas, emissFront, emissBack, tilt float64) *Cavity {
	if emissFront == 0 {
		emissFront = 0.84
	}
	if emissBack == 0 {
		emissBack = 0.84
	}
	return &Cavity{Thickness: thickness, Height: height, Gas: g, EmissFront: emissFront, EmissBack: emissBack, Tilt: tilt}
}

// UValue returns U (W/m2.K) such that q = U*(t_front - t_back), combining
// the radiative exchange between the two bounding surfaces with the
// convective transport through the gas, evaluated at the given boundary
// temperatures (°C).
func (o *Cavity) UValue(tFront, tBack float64) float64 {
	return o.radiative(tFront, tBack) + o.convective(tFront, tBack)
}

func (o *Cavity) radiative(tFront, tBack float64) float64 {
	tm := (tFront+tBack)/2.0 + 273.15
	return 4.0 * tm * tm * tm * StefanBoltzmann * o.EmissFront * o.EmissBack /
		(1.0 - (1.0-o.EmissFront)*(1.0-o.EmissBack))
}

// convective returns the convective part of the cavity U-value using the
// Hollands et al. correlation for the Nusselt number of an inclined
// enclosure (the ISO 15099 §5 correlation family), degenerating to pure
// conduction U=lambda/d when the temperature difference is negligible.
func (o *Cavity) convective(tFront, tBack float64) float64 {
	deltaT := tFront - tBack
	tMean := (tFront + tBack) / 2.0
	lambda := o.Gas.ThermalConductivity(tMean)
	if math.Abs(deltaT) < 1e-6 {
		return lambda / o.Thickness
	}
	ra := o.Gas.Rayleigh(tMean, deltaT, o.Thickness)
	aspect := o.Height / o.Thickness
	nu := nusselt(ra, o.Tilt, aspect)
	return nu * lambda / o.Thickness
}

// verticalThreshold is the inclination (rad, from horizontal) above which the
// ISO 15099 vertical-cavity correlation is used instead of Hollands'
// tilted-enclosure correlation (valid up to about 75 degrees).
const verticalThreshold = 75.0 * math.Pi / 180.0

// nusselt returns the cavity Nusselt number from the ISO 15099 correlation
// family: Hollands' tilted-enclosure correlation for horizontal-to-tilted
// cavities, and the aspect-ratio-dependent vertical correlation for
// near-vertical cavities.
func nusselt(ra, tilt, aspect float64) float64 {
	if tilt >= verticalThreshold {
		return verticalNusselt(ra, aspect)
	}
	cosTilt := math.Cos(tilt)
	if cosTilt < 1e-9 {
		cosTilt = 1e-9
	}
	raCos := ra * cosTilt
	term1 := posPart(1.0 - 1708.0/raCos)
	sinTerm := math.Pow(math.Sin(1.8*tilt), 1.6)
	term2 := 1.0 - sinTerm*1708.0/raCos
	term3 := posPart(math.Cbrt(raCos/5830.0) - 1.0)
	nu := 1.0 + 1.44*term1*term2 + term3
	if nu < 1.0 {
		nu = 1.0
	}
	return nu
}

// verticalNusselt is the ISO 15099 vertical-cavity correlation, branched by
// Rayleigh number with the cavity aspect ratio A = height/thickness.
func verticalNusselt(ra, aspect float64) float64 {
	var nu float64
	switch {
	case ra > 5e4:
		nu = 0.0673838 * math.Cbrt(ra)
	case ra > 1e4:
		nu = 0.242 * math.Pow(ra/aspect, 0.272)
	default:
		nu = 0.197 * math.Pow(ra, 0.25) / math.Pow(aspect, 1.0/9.0)
	}
	if nu < 1.0 {
		nu = 1.0
	}
	return nu
}

func posPart(x float64) float64 {
	if x < 0 {
		return 0
	}
	return x
}
