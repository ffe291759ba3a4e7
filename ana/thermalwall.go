// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ana

import "math"

// MasslessWallSteady is the closed-form steady-state solution of a
// single massless, uniform-property wall of thickness L and
// conductivity k, bounded by a front air/film resistance 1/hFront and a
// back air/film resistance 1/hBack at temperatures tFront and tBack: a
// pure series-resistor divider with no transient term, used to validate
// package surface's massless resistive solve.
type MasslessWallSteady struct {
	L, K          float64
	HFront, HBack float64
	TFront, TBack float64
}

// TotalResistance is the sum of the two film resistances and the
// conduction resistance, m2.K/W.
func (o MasslessWallSteady) TotalResistance() float64 {
	return 1.0/o.HFront + o.L/o.K + 1.0/o.HBack
}

// Flux is the steady-state heat flux from front to back, W/m2 (positive
// when TFront > TBack).
func (o MasslessWallSteady) Flux() float64 {
	return (o.TFront - o.TBack) / o.TotalResistance()
}

// SurfaceTemp returns the front and back surface (not air) temperatures
// at steady state, accounting for the film-resistance drop at each face.
func (o MasslessWallSteady) SurfaceTemp() (front, back float64) {
	q := o.Flux()
	front = o.TFront - q/o.HFront
	back = o.TBack + q/o.HBack
	return
}

// ExponentialRelaxation is the closed-form solution of a single lumped
// (one-node) thermal mass C exchanging with a fixed-temperature
// environment through conductance G and a constant forcing power P:
// C*dT/dt = G*(Tenv-T) + P, starting from T0 at t=0.
type ExponentialRelaxation struct {
	C, G, P, Tenv, T0 float64
}

// TimeConstant is C/G, seconds.
func (o ExponentialRelaxation) TimeConstant() float64 {
	return o.C / o.G
}

// Temp returns the node temperature at time t (seconds).
func (o ExponentialRelaxation) Temp(t float64) float64 {
	tInf := o.Tenv + o.P/o.G
	tau := o.TimeConstant()
	return tInf + (o.T0-tInf)*math.Exp(-t/tau)
}
