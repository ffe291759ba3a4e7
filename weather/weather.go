// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package weather defines the pull interface the model driver reads
// exterior boundary conditions from; the core never performs I/O
// itself (per the concurrency/resource model), so callers inject an
// implementation (file-backed, network-backed, or synthetic for tests).
package weather

import "time"

// Sample is one instant's exterior conditions.
type Sample struct {
	DryBulbTemp   float64 // C
	WindSpeed     float64 // m/s
	WindDirection float64 // radians, 0 = north
	SkyTemp       float64 // C, effective sky radiant temperature
	DirectSolar   float64 // W/m2, direct-normal irradiance
	DiffuseSolar  float64 // W/m2, diffuse horizontal irradiance
}

// Source pulls a weather Sample for a given instant. Implementations may
// interpolate between recorded observations; Get must not block on
// network or disk I/O beyond what a single call can tolerate, since it
// is invoked once per model macro-step.
type Source interface {
	Get(t time.Time) (Sample, error)
}

// Constant is a Source that always returns the same Sample, useful for
// tests and steady-state validation scenarios.
type Constant struct {
	Sample Sample
}

// Get implements Source.
func (c Constant) Get(t time.Time) (Sample, error) {
	return c.Sample, nil
}
