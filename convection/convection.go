// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package convection implements the TARP (Thermal Analysis Research
// Program) natural and forced surface convection coefficients, as
// described in EnergyPlus' Engineering Reference.
package convection

import "math"

// MinH is the physical floor below which a convection coefficient never falls.
const MinH = 0.15

// Roughness classifies a surface's exterior finish, 1 (Very Rough) to
// 6 (Very Smooth), driving the forced-convection roughness multiplier.
type Roughness int

const (
	VeryRough Roughness = iota + 1
	Rough
	MediumRough
	MediumSmooth
	Smooth
	VerySmooth
)

// roughnessFactor is Rf indexed by Roughness-1.
var roughnessFactor = [6]float64{2.17, 1.67, 1.52, 1.13, 1.11, 1.0}

// Params is the boundary condition between a surface and either a zone air
// node or the exterior weather.
type Params struct {
	AirTemp     float64   // dry-bulb air temperature, C
	AirSpeed    float64   // wind speed (exterior) or 0 (interior), m/s
	IRIrrad     float64   // incident infrared irradiance, W/m2
	SurfaceTemp float64   // surface temperature, C
	Roughness   Roughness // 1..6
	CosTilt     float64   // cosine of surface tilt; >0 faces up, <0 faces down
}

// NaturalH returns the TARP natural convection coefficient (W/m2.K), floored at MinH.
func (p Params) NaturalH() float64 {
	deltaT := p.AirTemp - p.SurfaceTemp
	absDeltaT := math.Abs(deltaT)
	absCos := math.Abs(p.CosTilt)

	var h float64
	switch {
	case absDeltaT < 1e-3 || absCos < 1e-3:
		h = 1.31 * math.Cbrt(absDeltaT)
	case sameSign(deltaT, p.CosTilt):
		h = 9.482 * math.Cbrt(absDeltaT) / (7.238 - absCos)
	default:
		h = 1.81 * math.Cbrt(absDeltaT) / (1.382 + absCos)
	}
	if h < MinH {
		return MinH
	}
	return h
}

func sameSign(a, b float64) bool {
	return (a < 0 && b < 0) || (a > 0 && b > 0)
}

// ForcedH returns the TARP forced (wind-driven) convection coefficient
// (W/m2.K) for a surface of the given area and perimeter (m2, m), windward
// indicating whether the surface faces the wind.
func (p Params) ForcedH(area, perimeter float64, windward bool) float64 {
	rf := roughnessFactor[p.Roughness-1]
	wf := 0.5
	if windward {
		wf = 1.0
	}
	return 2.537 * wf * rf * math.Sqrt(perimeter*p.AirSpeed/area)
}

// TotalH returns the combined exterior coefficient h_f + h_n, never below
// MinH since the natural component alone is already floored there.
func (p Params) TotalH(area, perimeter float64, windward bool) float64 {
	return p.ForcedH(area, perimeter, windward) + p.NaturalH()
}

// IsWindward classifies a surface as facing the wind. Horizontal surfaces
// (|cosTilt| close to 1) are windward by definition; otherwise the
// surface's horizontal-plane outward normal must have a positive dot
// product with the wind direction vector.
func IsWindward(windDirRad float64, cosTilt float64, normal [3]float64) bool {
	if math.Abs(cosTilt) > 1.0-1e-6 {
		return true
	}
	windX := math.Sin(windDirRad)
	windY := math.Cos(windDirRad)
	horizLen := math.Hypot(normal[0], normal[1])
	if horizLen < 1e-12 {
		return true
	}
	nx, ny := normal[0]/horizLen, normal[1]/horizLen
	return nx*windX+ny*windY > 0
}
