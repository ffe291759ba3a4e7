// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"

	"github.com/cpmech/gosl/ode"

	"github.com/germolinal/thermalcore/discretize"
	"github.com/germolinal/thermalcore/thermoerr"
)

// MarchStiff is an optional alternative to March for a surface that
// discretizes to a single massive chunk whose fastest internal mode
// would otherwise force an unreasonably small TstepSubdivision (e.g. a
// thin high-conductance skin next to a massive core). It integrates the
// whole macro-step in one adaptive gosl/ode "Radau5" call against K/Q
// frozen at the boundary conditions evaluated once at the macro-step's
// start, rather than many fixed RK4 sub-steps. The default marching path
// remains Surface.March; this exists only for surfaces that need it.
func (s *Surface) MarchStiff(dtModel float64, front, back Env, frontIncident, backIncident float64, temps []float64, mem *discretize.ChunkMemory) error {
	if len(temps) != len(s.Segments) {
		return thermoerr.AtStep(thermoerr.DimensionMismatch, s.Name, -1, "temps has %d entries, want %d", len(temps), len(s.Segments))
	}
	chunks := discretize.GetChunks(s.Segments)
	if len(chunks) != 1 || !chunks[0].Massive {
		return thermoerr.New(thermoerr.IllegalConstruction, "MarchStiff requires the surface to discretize to a single massive chunk; use March otherwise")
	}

	n := len(temps)
	solarQ := s.Optics.SolarGains(frontIncident, backIncident, n)
	frontB := front.boundary(temps[0], s.Area, s.Perimeter, s.Roughness, s.CosTilt)
	backB := back.boundary(temps[n-1], s.Area, s.Perimeter, s.Roughness, -s.CosTilt)
	if err := discretize.GetKQ(s.Segments, 0, n, temps, frontB, backB, mem); err != nil {
		return thermoerr.AtStep(thermoerr.IllegalConstruction, s.Name, 0, "%v", err)
	}
	for i := 0; i < n; i++ {
		mem.Q[i] += solarQ[i]
	}

	mass := make([]float64, n)
	for i, seg := range s.Segments {
		mass[i] = seg.Mass
	}

	var sol ode.ODE
	silent := true
	sol.Init("Radau5", n, func(f []float64, dT, T float64, xi []float64, args ...interface{}) error {
		for i := 0; i < n; i++ {
			sum := mem.Q[i]
			for j := 0; j < n; j++ {
				sum += mem.K[i][j] * xi[j]
			}
			f[i] = sum / mass[i]
		}
		return nil
	}, nil, nil, nil, silent)
	sol.Distr = false

	if err := sol.Solve(temps, 0, dtModel, dtModel, false); err != nil {
		return thermoerr.AtStep(thermoerr.NonFiniteTemperature, s.Name, 0, "Radau5 solve failed: %v", err)
	}
	for _, t := range temps {
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return thermoerr.AtStep(thermoerr.NonFiniteTemperature, s.Name, 0, "non-finite node temperature")
		}
	}
	return nil
}
