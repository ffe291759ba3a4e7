// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package glazing implements the ISO 9050/2003 recursive combination of
// transmittance, reflectance and per-layer absorptance across a stack of
// translucent layers.
package glazing

import "github.com/germolinal/thermalcore/thermoerr"

// Layer is one translucent layer's optical properties for solar-spectrum
// purposes. AlphaFront/AlphaBack are derived as 1 - tau - rho.
type Layer struct {
	Tau        float64
	RhoFront   float64
	RhoBack    float64
	AlphaFront float64
	AlphaBack  float64
}

// NewLayer builds a Layer, validating tau/rho/alpha all lie in [0,1].
func NewLayer(tau, rhoFront, rhoBack float64) (Layer, error) {
	if tau < 0 || tau > 1 {
		return Layer{}, thermoerr.New(thermoerr.ReflectanceOutOfRange, "transmittance %v outside [0,1]", tau)
	}
	if rhoFront < 0 || rhoFront > 1 {
		return Layer{}, thermoerr.New(thermoerr.ReflectanceOutOfRange, "front reflectance %v outside [0,1]", rhoFront)
	}
	if rhoBack < 0 || rhoBack > 1 {
		return Layer{}, thermoerr.New(thermoerr.ReflectanceOutOfRange, "back reflectance %v outside [0,1]", rhoBack)
	}
	alphaFront := 1.0 - tau - rhoFront
	alphaBack := 1.0 - tau - rhoBack
	if alphaFront < -1e-9 || alphaFront > 1+1e-9 || alphaBack < -1e-9 || alphaBack > 1+1e-9 {
		return Layer{}, thermoerr.New(thermoerr.ReflectanceOutOfRange, "derived absorptance outside [0,1] for tau=%v rho_f=%v rho_b=%v", tau, rhoFront, rhoBack)
	}
	return Layer{Tau: tau, RhoFront: rhoFront, RhoBack: rhoBack, AlphaFront: alphaFront, AlphaBack: alphaBack}, nil
}

// Opaque reports whether this layer is effectively opaque (tau < 1e-9).
func (l Layer) Opaque() bool {
	return l.Tau < 1e-9
}

// combinedTau is ISO 9050 eq. 2.
func combinedTau(a, b Layer) float64 {
	return a.Tau * b.Tau / (1.0 - a.RhoBack*b.RhoFront)
}

// combinedRhoFront is ISO 9050 eq. 5.
func combinedRhoFront(a, b Layer) float64 {
	return a.RhoFront + a.Tau*a.Tau*b.RhoFront/(1.0-a.RhoBack*b.RhoFront)
}

// combinedRhoBack is the back-side mirror of eq. 5.
func combinedRhoBack(a, b Layer) float64 {
	return b.RhoBack + b.Tau*b.Tau*a.RhoBack/(1.0-b.RhoFront*a.RhoBack)
}

// Combine returns the single equivalent layer of a in front of b.
func Combine(a, b Layer) Layer {
	tau := combinedTau(a, b)
	rhoFront := combinedRhoFront(a, b)
	rhoBack := combinedRhoBack(a, b)
	return Layer{
		Tau:        tau,
		RhoFront:   rhoFront,
		RhoBack:    rhoBack,
		AlphaFront: 1.0 - tau - rhoFront,
		AlphaBack:  1.0 - tau - rhoBack,
	}
}

// CombineStack recursively combines a front-to-back stack of layers
// (divide-and-conquer: layers[0] combined with the recursive combination of
// the rest) into a single equivalent Layer.
func CombineStack(layers []Layer) Layer {
	if len(layers) == 1 {
		return layers[0]
	}
	rest := CombineStack(layers[1:])
	return Combine(layers[0], rest)
}

// combinedAlphas is ISO 9050 eqs. 17-18: the front and back absorptance of
// the two-layer system a-in-front-of-b.
func combinedAlphas(a, b Layer) (alphaA, alphaB float64) {
	denom := 1.0 - a.RhoBack*b.RhoFront
	alphaA = a.AlphaFront + a.AlphaBack*a.Tau*b.RhoFront/denom
	alphaB = b.AlphaFront * a.Tau / denom
	return
}

// Alphas returns, for each layer in the front-to-back stack, the fraction
// of incident radiation it absorbs (proportional to incident radiation;
// they do not sum to 1.0 — the remainder is transmitted or reflected).
// Computed by combining the stack to the left and to the right of each
// layer and reading off the running prefix-sum absorptance, per ISO 9050.
// Enumeration stops at the first opaque layer: that layer is the last one
// reported, and nothing behind it gets an entry.
func Alphas(layers []Layer) []float64 {
	n := len(layers)
	ret := make([]float64, 0, n)
	if n == 0 {
		return ret
	}
	for i, l := range layers {
		if l.Opaque() {
			layers = layers[:i+1]
			break
		}
	}
	n = len(layers)
	if n == 1 {
		return append(ret, layers[0].AlphaFront)
	}

	accAlpha := 0.0
	for i := 1; i < n; i++ {
		left := CombineStack(layers[0:i])
		right := CombineStack(layers[i:])
		a0, _ := combinedAlphas(left, right)
		ret = append(ret, a0-accAlpha)
		accAlpha = a0
	}

	left := CombineStack(layers[0 : n-1])
	last := layers[n-1]
	_, aLast := combinedAlphas(left, last)
	ret = append(ret, aLast)
	return ret
}
