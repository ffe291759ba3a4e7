// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package model is the top-level macro-step driver: pull weather,
// resolve each surface's boundary environments, march every surface
// (C6), then settle every zone's air node (C7). A macro-step either
// commits in full or leaves the state vector untouched.
package model

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/germolinal/thermalcore/convection"
	"github.com/germolinal/thermalcore/discretize"
	"github.com/germolinal/thermalcore/state"
	"github.com/germolinal/thermalcore/surface"
	"github.com/germolinal/thermalcore/thermoerr"
	"github.com/germolinal/thermalcore/weather"
	"github.com/germolinal/thermalcore/zone"
)

// FaceRecording is where one face's live boundary bookkeeping (C6 step 4)
// gets written after each March call: the C3 convection coefficient, the
// absorbed solar flux, the linearized long-wave flux, and the total heat
// flow from the environment into that face. Every field is an optional
// state slot (length 1) — nil skips recording that quantity.
type FaceRecording struct {
	ConvCoefSlot *int
	SolarSlot    *int
	IRSlot       *int
	HeatFlowSlot *int
}

// record writes flux into the slots named by r (any of which may be nil).
func (r FaceRecording) record(st *state.Vector, flux surface.BoundaryFlux) {
	if r.ConvCoefSlot != nil {
		st.Values(*r.ConvCoefSlot)[0] = flux.H
	}
	if r.SolarSlot != nil {
		st.Values(*r.SolarSlot)[0] = flux.Solar
	}
	if r.IRSlot != nil {
		st.Values(*r.IRSlot)[0] = flux.IR
	}
	if r.HeatFlowSlot != nil {
		st.Values(*r.HeatFlowSlot)[0] = flux.Q
	}
}

// SurfaceBinding ties one discretized Surface to its pre-allocated
// scratch, its state slot, and the zone its front face bounds. A window
// or exterior-facing opaque wall has Zone set and ExteriorBack true; an
// interior partition between two zones is not modeled by this binding
// (§4.8's surfaces are envelope surfaces). Front/Back name
// the state slots each face's live convection coefficient and flux
// bookkeeping gets recorded into.
type SurfaceBinding struct {
	Surface               *surface.Surface
	Memory                *discretize.ChunkMemory
	StateSlot             int
	Zone                  *zone.Zone
	ExteriorBack          bool
	FrontIncidentSolar    float64
	BackIncidentSolarCoef float64 // multiplies the weather sample's direct+diffuse solar to get this face's incident irradiance
	Front                 FaceRecording
	Back                  FaceRecording
}

// Model is the assembled simulation: every surface binding and zone,
// ready to be marched macro-step by macro-step.
type Model struct {
	Surfaces        []*SurfaceBinding
	Zones           []*zone.Zone
	MacroStepLength float64 // seconds
	Parallel        bool    // fan out across surfaces within a macro-step
}

// interiorRadTemp approximates a zone's mean radiant temperature as its
// air temperature, since this module does not model a full interior
// long-wave radiant exchange network between surfaces (see DESIGN.md).
func interiorRadTemp(z *zone.Zone, st *state.Vector) float64 {
	return st.Values(z.StateSlot)[0]
}

// March advances the whole model by one macro-step of MacroStepLength
// seconds starting at date, reading weather from wx and committing the
// result into st. On any error the in-progress macro-step is discarded
// and st is left at its previous values.
func (m *Model) March(ctx context.Context, date time.Time, wx weather.Source, st *state.Vector) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sample, err := wx.Get(date)
	if err != nil {
		return thermoerr.New(thermoerr.MissingProperty, "weather pull failed: %v", err)
	}

	scratch := st.Clone()

	marchOne := func(b *SurfaceBinding) error {
		s := b.Surface
		var front, back surface.Env

		if b.Zone != nil {
			front = surface.Env{
				AirTemp:    scratch.Values(b.Zone.StateSlot)[0],
				RadTemp:    interiorRadTemp(b.Zone, scratch),
				Emissivity: discretize.DefaultEmissivity,
			}
		}

		if b.ExteriorBack {
			windward := convection.IsWindward(sample.WindDirection, s.CosTilt, s.Normal)
			back = surface.Env{
				AirTemp:    sample.DryBulbTemp,
				AirSpeed:   sample.WindSpeed,
				RadTemp:    sample.SkyTemp,
				Windward:   windward,
				Emissivity: discretize.DefaultEmissivity,
			}
		}

		backSolar := b.BackIncidentSolarCoef * (sample.DirectSolar + sample.DiffuseSolar)
		temps := scratch.Values(b.StateSlot)
		var frontFlux, backFlux surface.BoundaryFlux
		if err := s.March(m.MacroStepLength, front, back, b.FrontIncidentSolar, backSolar, temps, b.Memory, &frontFlux, &backFlux); err != nil {
			return err
		}
		b.Front.record(scratch, frontFlux)
		b.Back.record(scratch, backFlux)
		return nil
	}

	if m.Parallel && len(m.Surfaces) > 1 {
		errs := make([]error, len(m.Surfaces))
		var wg sync.WaitGroup
		sem := make(chan struct{}, workerCount())
		for i, b := range m.Surfaces {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, b *SurfaceBinding) {
				defer wg.Done()
				defer func() { <-sem }()
				errs[i] = marchOne(b)
			}(i, b)
		}
		wg.Wait()
		for _, e := range errs {
			if e != nil {
				return e
			}
		}
	} else {
		for _, b := range m.Surfaces {
			if err := marchOne(b); err != nil {
				return err
			}
		}
	}

	for _, z := range m.Zones {
		if err := z.Step(m.MacroStepLength, sample.DryBulbTemp, scratch); err != nil {
			return err
		}
	}

	st.CopyFrom(scratch)
	return nil
}

func workerCount() int {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	return n
}
