// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/cpmech/gosl/chk"

	"github.com/germolinal/thermalcore/convection"
	"github.com/germolinal/thermalcore/discretize"
	"github.com/germolinal/thermalcore/state"
	"github.com/germolinal/thermalcore/surface"
	"github.com/germolinal/thermalcore/weather"
	"github.com/germolinal/thermalcore/zone"
)

func buildSingleWallModel(tst *testing.T, parallel bool) (*Model, *state.Vector, int, int) {
	layer := discretize.LayerSpec{Thickness: 0.15, Lambda: 1.0, Rho: 1800, Cp: 900}
	segs, err := discretize.Build([]discretize.LayerSpec{layer}, []int{4}, 2.4, math.Pi/2)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	wallSurf := &surface.Surface{
		Name: "wall", Segments: segs, Area: 12, Perimeter: 14,
		CosTilt: 0, Normal: [3]float64{0, 1, 0}, Roughness: convection.MediumRough,
		Optics: surface.Optics{Opaque: true, FrontAbsorptance: 0.0, BackAbsorptance: 0.0},
		TstepSubdivision: 6,
	}

	st := state.New()
	zoneSlot, _ := st.AddSlot("zone.air", state.ZoneAirTemp, 1)
	wallSlot, _ := st.AddSlot("wall.nodes", state.SurfaceNodeTemp, len(segs))
	frontConvSlot, _ := st.AddSlot("wall.front_h", state.SurfaceFrontConvectionCoefficient, 1)
	st.Values(zoneSlot)[0] = 20
	for i := range st.Values(wallSlot) {
		st.Values(wallSlot)[i] = 20
	}
	st.Values(frontConvSlot)[0] = 3.0
	st.Freeze()

	z := &zone.Zone{
		Name: "room", Volume: 50, StateSlot: zoneSlot,
		Couplings: []zone.Coupling{{Area: 12, CoeffSlot: frontConvSlot, SurfaceSlot: wallSlot, NodeIndex: 0}},
	}

	binding := &SurfaceBinding{
		Surface: wallSurf, Memory: wallSurf.AllocateMemory(), StateSlot: wallSlot,
		Zone: z, ExteriorBack: true,
		Front: FaceRecording{ConvCoefSlot: &frontConvSlot},
	}

	m := &Model{Surfaces: []*SurfaceBinding{binding}, Zones: []*zone.Zone{z}, MacroStepLength: 900, Parallel: parallel}
	return m, st, zoneSlot, wallSlot
}

func Test_model_march_cools_toward_cold_exterior(tst *testing.T) {
	chk.PrintTitle("model: macro-step drives the zone toward a cold exterior over time")

	m, st, zoneSlot, _ := buildSingleWallModel(tst, false)
	wx := weather.Constant{Sample: weather.Sample{DryBulbTemp: -10, WindSpeed: 2, SkyTemp: -15}}
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	start := st.Values(zoneSlot)[0]
	for i := 0; i < 200; i++ {
		if err := m.March(context.Background(), date, wx, st); err != nil {
			tst.Fatalf("march %d failed: %v", i, err)
		}
		date = date.Add(time.Duration(m.MacroStepLength) * time.Second)
	}
	end := st.Values(zoneSlot)[0]
	if end >= start {
		tst.Errorf("expected the zone to cool from %v toward the cold exterior, ended at %v", start, end)
	}
}

func Test_model_march_parallel_matches_sequential(tst *testing.T) {
	chk.PrintTitle("model: parallel surface fan-out agrees with sequential marching")

	mSeq, stSeq, zoneSlotSeq, _ := buildSingleWallModel(tst, false)
	mPar, stPar, zoneSlotPar, _ := buildSingleWallModel(tst, true)
	wx := weather.Constant{Sample: weather.Sample{DryBulbTemp: -10, WindSpeed: 2, SkyTemp: -15}}
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 50; i++ {
		if err := mSeq.March(context.Background(), date, wx, stSeq); err != nil {
			tst.Fatalf("sequential march %d failed: %v", i, err)
		}
		if err := mPar.March(context.Background(), date, wx, stPar); err != nil {
			tst.Fatalf("parallel march %d failed: %v", i, err)
		}
		date = date.Add(time.Duration(mSeq.MacroStepLength) * time.Second)
	}
	got, want := stPar.Values(zoneSlotPar)[0], stSeq.Values(zoneSlotSeq)[0]
	if math.Abs(got-want) > 1e-9 {
		tst.Errorf("expected parallel and sequential marching to agree exactly, got %v vs %v", got, want)
	}
}

func Test_model_march_respects_context_cancellation(tst *testing.T) {
	chk.PrintTitle("model: march refuses to start once the context is cancelled")

	m, st, _, _ := buildSingleWallModel(tst, false)
	wx := weather.Constant{Sample: weather.Sample{DryBulbTemp: -10}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := m.March(ctx, time.Now(), wx, st)
	if err == nil {
		tst.Errorf("expected march to report the cancelled context")
	}
}

func Test_model_march_with_heating_stays_warmer(tst *testing.T) {
	chk.PrintTitle("model: ideal heating keeps the zone warmer than an unheated run")

	mHeated, stHeated, zoneSlotHeated, _ := buildSingleWallModel(tst, false)
	mHeated.Zones[0].HVAC = &zone.HVAC{System: zone.Ideal, Capacity: 3000}
	mHeated.Zones[0].HVACMode = zone.Heating

	mUnheated, stUnheated, zoneSlotUnheated, _ := buildSingleWallModel(tst, false)

	wx := weather.Constant{Sample: weather.Sample{DryBulbTemp: -10, WindSpeed: 2, SkyTemp: -15}}
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		if err := mHeated.March(context.Background(), date, wx, stHeated); err != nil {
			tst.Fatalf("heated march %d failed: %v", i, err)
		}
		if err := mUnheated.March(context.Background(), date, wx, stUnheated); err != nil {
			tst.Fatalf("unheated march %d failed: %v", i, err)
		}
		date = date.Add(time.Duration(mHeated.MacroStepLength) * time.Second)
	}
	if stHeated.Values(zoneSlotHeated)[0] <= stUnheated.Values(zoneSlotUnheated)[0] {
		tst.Errorf("expected the heated zone to stay warmer than the unheated one")
	}
}
