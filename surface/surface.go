// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package surface marches one construction's node temperatures through a
// model macro-step: massive chunks by classical RK4 (cavity/radiative
// U-values frozen for the duration of each sub-step), massless chunks by
// a direct tri-diagonal ("voltage divider") steady-state solve, with
// boundary convection/radiation recomputed every sub-step from C3.
package surface

import (
	"math"

	"github.com/germolinal/thermalcore/convection"
	"github.com/germolinal/thermalcore/discretize"
	"github.com/germolinal/thermalcore/glazing"
	"github.com/germolinal/thermalcore/thermoerr"
)

// Optics describes how a construction routes absorbed solar radiation
// into its segments: either a fixed opaque front/back absorptance, or a
// translucent layer stack whose per-layer absorption is computed by
// package glazing. Translucent constructions are assumed (as is typical
// for glazing) to discretize to exactly one segment per layer, so a
// layer's absorbed flux maps 1:1 onto its segment's index.
type Optics struct {
	Opaque           bool
	FrontAbsorptance float64
	BackAbsorptance  float64
	GlazingLayers    []glazing.Layer
}

// SolarGains returns, for the given incident irradiance on the front and
// back faces (W/m2), the per-segment absorbed flux (W/m2) to be added
// into q. The returned slice has one entry per entry in segments.
func (o Optics) SolarGains(frontIncident, backIncident float64, nSegments int) []float64 {
	gains := make([]float64, nSegments)
	if nSegments == 0 {
		return gains
	}
	if o.Opaque {
		gains[0] += frontIncident * o.FrontAbsorptance
		gains[nSegments-1] += backIncident * o.BackAbsorptance
		return gains
	}
	alphas := glazing.Alphas(o.GlazingLayers)
	for i, a := range alphas {
		if i < nSegments {
			gains[i] += frontIncident * a
		}
	}
	return gains
}

// Env is the boundary condition surrounding one face of a surface for a
// single sub-step: the air it convects to, the radiant temperature its
// long-wave exchange is linearized about, and the wind/roughness terms
// C3 needs for the exterior forced-convection branch.
type Env struct {
	AirTemp    float64
	AirSpeed   float64
	RadTemp    float64
	Windward   bool
	Emissivity float64
}

// boundary computes the C3 convection coefficient and the radiative
// linearization h_rad=4*sigma*eps*Ts^3 about the current surface
// temperature, returning a discretize.Boundary ready for GetKQ.
func (e Env) boundary(surfaceTempC, area, perimeter float64, roughness convection.Roughness, cosTilt float64) discretize.Boundary {
	p := convection.Params{
		AirTemp:     e.AirTemp,
		AirSpeed:    e.AirSpeed,
		SurfaceTemp: surfaceTempC,
		Roughness:   roughness,
		CosTilt:     cosTilt,
	}
	var hs float64
	if e.AirSpeed > 0 {
		hs = p.TotalH(area, perimeter, e.Windward)
	} else {
		hs = p.NaturalH()
	}
	tsK := surfaceTempC + 273.15
	emiss := e.Emissivity
	if emiss == 0 {
		emiss = discretize.DefaultEmissivity
	}
	radHs := 4.0 * 5.670374419e-8 * emiss * tsK * tsK * tsK
	return discretize.Boundary{AirTemp: e.AirTemp, RadTemp: e.RadTemp, Hs: hs, RadHs: radHs}
}

// Surface is a fully discretized construction ready to be marched.
type Surface struct {
	Name             string
	Segments         []discretize.Segment
	Area             float64
	Perimeter        float64
	CosTilt          float64
	Normal           [3]float64
	Roughness        convection.Roughness
	Optics           Optics
	TstepSubdivision int
}

// BoundaryFlux is one face's live convective coefficient and the heat
// flow recorded into it at the end of a March call: h·(Tair−Tface) plus
// the linearized long-wave term and the absorbed solar flux, per C6 step
// 4 ("heat flows into each adjacent zone/environment are recorded").
type BoundaryFlux struct {
	H     float64 // live convection coefficient, W/m2.K
	Solar float64 // absorbed solar flux into this face's node, W/m2
	IR    float64 // linearized long-wave flux into this face's node, W/m2
	Q     float64 // total heat flow from the environment into this face, W/m2
}

// AllocateMemory returns a ChunkMemory sized for this surface's largest
// chunk, to be reused across every subsequent March call (the explicit
// pre-allocated scratch handle the design calls for).
func (s *Surface) AllocateMemory() *discretize.ChunkMemory {
	maxChunk := 1
	for _, c := range discretize.GetChunks(s.Segments) {
		if n := c.Fin - c.Ini; n > maxChunk {
			maxChunk = n
		}
	}
	return discretize.NewChunkMemory(maxChunk)
}

// March advances temps (one entry per Segment, mutated in place) through
// one model macro-step of duration dtModel, subdivided into
// s.TstepSubdivision sub-steps. front/back are the macro-step's boundary
// environments (held fixed across sub-steps; only the linearized
// convection/radiation coefficients are refreshed every sub-step).
// frontIncident/backIncident are the macro-step's incident solar
// irradiance (W/m2) on each face. frontFlux/backFlux, when non-nil, are
// filled in with the live boundary coefficient and heat flow for that
// face, evaluated at the node temperatures the last sub-step leaves (see
// BoundaryFlux) — the mechanism the zone/exterior
// coupling reads instead of a fixed coefficient.
func (s *Surface) March(dtModel float64, front, back Env, frontIncident, backIncident float64, temps []float64, mem *discretize.ChunkMemory, frontFlux, backFlux *BoundaryFlux) error {
	if len(temps) != len(s.Segments) {
		return thermoerr.AtStep(thermoerr.DimensionMismatch, s.Name, -1, "temps has %d entries, want %d", len(temps), len(s.Segments))
	}
	n := s.TstepSubdivision
	if n < 1 {
		n = 1
	}
	dt := dtModel / float64(n)
	solarQ := s.Optics.SolarGains(frontIncident, backIncident, len(s.Segments))
	chunks := discretize.GetChunks(s.Segments)

	for sub := 0; sub < n; sub++ {
		frontB := front.boundary(temps[0], s.Area, s.Perimeter, s.Roughness, s.CosTilt)
		backB := back.boundary(temps[len(temps)-1], s.Area, s.Perimeter, s.Roughness, -s.CosTilt)

		for _, c := range chunks {
			if err := discretize.GetKQ(s.Segments, c.Ini, c.Fin, temps, frontB, backB, mem); err != nil {
				return thermoerr.AtStep(thermoerr.IllegalConstruction, s.Name, sub, "%v", err)
			}
			for i := c.Ini; i < c.Fin; i++ {
				mem.Q[i-c.Ini] += solarQ[i]
			}
			if c.Massive {
				if err := rk4Step(mem, s.Segments[c.Ini:c.Fin], temps[c.Ini:c.Fin], dt); err != nil {
					return thermoerr.AtStep(thermoerr.NonFiniteTemperature, s.Name, sub, "%v", err)
				}
			} else {
				if err := solveMasslessChain(mem, temps[c.Ini:c.Fin]); err != nil {
					return thermoerr.AtStep(thermoerr.NonFiniteTemperature, s.Name, sub, "%v", err)
				}
			}
		}

		for _, t := range temps {
			if math.IsNaN(t) || math.IsInf(t, 0) {
				return thermoerr.AtStep(thermoerr.NonFiniteTemperature, s.Name, sub, "non-finite node temperature")
			}
		}
	}

	if frontFlux != nil || backFlux != nil {
		frontB := front.boundary(temps[0], s.Area, s.Perimeter, s.Roughness, s.CosTilt)
		backB := back.boundary(temps[len(temps)-1], s.Area, s.Perimeter, s.Roughness, -s.CosTilt)
		if frontFlux != nil {
			ir := frontB.RadHs * (front.RadTemp - temps[0])
			solar := solarQ[0]
			*frontFlux = BoundaryFlux{H: frontB.Hs, Solar: solar, IR: ir, Q: frontB.Hs*(front.AirTemp-temps[0]) + ir + solar}
		}
		if backFlux != nil {
			last := len(temps) - 1
			ir := backB.RadHs * (back.RadTemp - temps[last])
			solar := solarQ[last]
			*backFlux = BoundaryFlux{H: backB.Hs, Solar: solar, IR: ir, Q: backB.Hs*(back.AirTemp-temps[last]) + ir + solar}
		}
	}
	return nil
}

// rk4Step advances local (the chunk's node temperatures) by dt using
// classical fixed-step RK4 against mem.K/mem.Q frozen for this call,
// writing into mem.K1..K4/TempScratch (pre-allocated, never reallocated).
func rk4Step(mem *discretize.ChunkMemory, segs []discretize.Segment, local []float64, dt float64) error {
	n := len(local)
	deriv := func(x []float64, out []float64) error {
		for i := 0; i < n; i++ {
			sum := mem.Q[i]
			for j := 0; j < n; j++ {
				sum += mem.K[i][j] * x[j]
			}
			mass := segs[i].Mass
			if mass <= 0 {
				return thermoerr.New(thermoerr.IllegalConstruction, "rk4Step called on a massless node")
			}
			out[i] = sum / mass
		}
		return nil
	}

	if err := deriv(local, mem.K1); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		mem.TempScratch[i] = local[i] + dt/2.0*mem.K1[i]
	}
	if err := deriv(mem.TempScratch, mem.K2); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		mem.TempScratch[i] = local[i] + dt/2.0*mem.K2[i]
	}
	if err := deriv(mem.TempScratch, mem.K3); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		mem.TempScratch[i] = local[i] + dt*mem.K3[i]
	}
	if err := deriv(mem.TempScratch, mem.K4); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		local[i] += dt / 6.0 * (mem.K1[i] + 2*mem.K2[i] + 2*mem.K3[i] + mem.K4[i])
	}
	return nil
}

// solveMasslessChain solves K*T = -Q for a tri-diagonal chunk (every node
// couples only to its immediate neighbors, by construction) via the
// Thomas algorithm: the direct series/voltage-divider solve for a
// steady-state resistor chain with fixed boundary conditions and
// interior current injections (solar gains folded into Q).
func solveMasslessChain(mem *discretize.ChunkMemory, local []float64) error {
	n := len(local)
	a := mem.ThomasA[:n] // sub-diagonal
	b := mem.ThomasB[:n] // diagonal
	c := mem.ThomasC[:n] // super-diagonal
	d := mem.ThomasD[:n] // RHS = -Q

	for i := 0; i < n; i++ {
		b[i] = mem.K[i][i]
		d[i] = -mem.Q[i]
		if i > 0 {
			a[i] = mem.K[i][i-1]
		}
		if i < n-1 {
			c[i] = mem.K[i][i+1]
		}
	}

	// forward elimination
	for i := 1; i < n; i++ {
		if b[i-1] == 0 {
			return thermoerr.New(thermoerr.IllegalConstruction, "singular massless chain at node %d", i-1)
		}
		w := a[i] / b[i-1]
		b[i] -= w * c[i-1]
		d[i] -= w * d[i-1]
	}
	if b[n-1] == 0 {
		return thermoerr.New(thermoerr.IllegalConstruction, "singular massless chain at node %d", n-1)
	}

	// back substitution
	local[n-1] = d[n-1] / b[n-1]
	for i := n - 2; i >= 0; i-- {
		local[i] = (d[i] - c[i]*local[i+1]) / b[i]
	}
	return nil
}
