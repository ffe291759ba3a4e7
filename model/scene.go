// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"math"
	"os"

	"github.com/germolinal/thermalcore/catalog"
	"github.com/germolinal/thermalcore/convection"
	"github.com/germolinal/thermalcore/discretize"
	"github.com/germolinal/thermalcore/state"
	"github.com/germolinal/thermalcore/surface"
	"github.com/germolinal/thermalcore/thermoerr"
	"github.com/germolinal/thermalcore/zone"
)

// ZoneSpec describes one zone in a scene document.
type ZoneSpec struct {
	Name            string  `json:"name"`
	Volume          float64 `json:"volume"`
	InfiltrationACH float64 `json:"infiltration_ach"`
	HeatingCapacity float64 `json:"heating_capacity"`
	HVACSystem      string  `json:"hvac_system"` // "ideal" or "electric"
}

// SurfaceSpec describes one envelope surface: a construction from the
// catalog, its geometry, and the zone it bounds.
type SurfaceSpec struct {
	Name         string     `json:"name"`
	Construction string     `json:"construction"`
	Area         float64    `json:"area"`
	Perimeter    float64    `json:"perimeter"`
	Height       float64    `json:"height"`
	Tilt         float64    `json:"tilt"` // radians from horizontal
	Normal       [3]float64 `json:"normal"`
	Roughness    int        `json:"roughness"` // 1..6, per convection.Roughness
	Zone         string     `json:"zone"`
	FrontAbsorpt float64    `json:"front_solar_absorptance"`
	BackAbsorpt  float64    `json:"back_solar_absorptance"`
	SolarCoef    float64    `json:"back_solar_coefficient"`
}

// Scene is the top-level assembled-model document.
type Scene struct {
	Zones            []ZoneSpec    `json:"zones"`
	Surfaces         []SurfaceSpec `json:"surfaces"`
	MacroStepSeconds float64       `json:"macro_step_seconds"`
	DtMin            float64       `json:"dt_min"`
	DxMaxFrac        float64       `json:"dx_max_frac"`
	Parallel         bool          `json:"parallel"`
}

// LoadScene reads and parses a scene document from path.
func LoadScene(path string) (*Scene, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, thermoerr.New(thermoerr.MissingProperty, "cannot read scene file %q: %v", path, err)
	}
	var sc Scene
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, thermoerr.New(thermoerr.MissingProperty, "cannot parse scene file %q: %v", path, err)
	}
	return &sc, nil
}

// Build resolves a Scene against a Catalog into a ready-to-march Model
// and its backing state.Vector.
func Build(cat *catalog.Catalog, sc *Scene) (*Model, *state.Vector, error) {
	st := state.New()
	zones := make(map[string]*zone.Zone, len(sc.Zones))
	var zoneList []*zone.Zone

	for _, zs := range sc.Zones {
		slot, err := st.AddSlot(zs.Name+".air", state.ZoneAirTemp, 1)
		if err != nil {
			return nil, nil, err
		}
		z := &zone.Zone{Name: zs.Name, Volume: zs.Volume, StateSlot: slot, InfiltrationACH: zs.InfiltrationACH}
		if zs.HeatingCapacity > 0 {
			system := zone.Ideal
			if zs.HVACSystem == "electric" {
				system = zone.Electric
			}
			z.HVAC = &zone.HVAC{System: system, Capacity: zs.HeatingCapacity}
			z.HVACMode = zone.Heating
		}

		hvacSlot, err := st.AddSlot(zs.Name+".hvac", state.HVACHeatingCoolingConsumption, 1)
		if err != nil {
			return nil, nil, err
		}
		z.HVACSlot = &hvacSlot
		infVolSlot, err := st.AddSlot(zs.Name+".infiltration_volume", state.SpaceInfiltrationVolume, 1)
		if err != nil {
			return nil, nil, err
		}
		z.InfiltrationVolumeSlot = &infVolSlot
		infTempSlot, err := st.AddSlot(zs.Name+".infiltration_temp", state.SpaceInfiltrationTemperature, 1)
		if err != nil {
			return nil, nil, err
		}
		z.InfiltrationTempSlot = &infTempSlot

		zones[zs.Name] = z
		zoneList = append(zoneList, z)
	}

	var bindings []*SurfaceBinding
	for _, ss := range sc.Surfaces {
		specs, err := cat.LayerSpecs(ss.Construction)
		if err != nil {
			return nil, nil, err
		}
		tstepSubdivision, nElements := discretize.DiscretizeConstruction(specs, sc.MacroStepSeconds, sc.DtMin, sc.DxMaxFrac)
		segs, err := discretize.Build(specs, nElements, ss.Height, ss.Tilt)
		if err != nil {
			return nil, nil, err
		}

		slot, err := st.AddSlot(ss.Name+".nodes", state.SurfaceNodeTemp, len(segs))
		if err != nil {
			return nil, nil, err
		}

		roughness := convection.Roughness(ss.Roughness)
		if roughness < convection.VeryRough || roughness > convection.VerySmooth {
			roughness = convection.MediumRough
		}

		surf := &surface.Surface{
			Name:             ss.Name,
			Segments:         segs,
			Area:             ss.Area,
			Perimeter:        ss.Perimeter,
			CosTilt:          math.Cos(ss.Tilt),
			Normal:           ss.Normal,
			Roughness:        roughness,
			Optics:           surface.Optics{Opaque: true, FrontAbsorptance: ss.FrontAbsorpt, BackAbsorptance: ss.BackAbsorpt},
			TstepSubdivision: tstepSubdivision,
		}

		z, ok := zones[ss.Zone]
		if !ok {
			return nil, nil, thermoerr.New(thermoerr.MissingProperty, "surface %q references unknown zone %q", ss.Name, ss.Zone)
		}

		frontConvSlot, err := st.AddSlot(ss.Name+".front_h", state.SurfaceFrontConvectionCoefficient, 1)
		if err != nil {
			return nil, nil, err
		}
		frontHeatFlowSlot, err := st.AddSlot(ss.Name+".front_q", state.SurfaceFrontHeatFlow, 1)
		if err != nil {
			return nil, nil, err
		}
		frontSolarSlot, err := st.AddSlot(ss.Name+".front_solar", state.SurfaceFrontSolarIrradiance, 1)
		if err != nil {
			return nil, nil, err
		}
		frontIRSlot, err := st.AddSlot(ss.Name+".front_ir", state.SurfaceFrontIRIrradiance, 1)
		if err != nil {
			return nil, nil, err
		}
		backConvSlot, err := st.AddSlot(ss.Name+".back_h", state.SurfaceBackConvectionCoefficient, 1)
		if err != nil {
			return nil, nil, err
		}
		backHeatFlowSlot, err := st.AddSlot(ss.Name+".back_q", state.SurfaceBackHeatFlow, 1)
		if err != nil {
			return nil, nil, err
		}
		backSolarSlot, err := st.AddSlot(ss.Name+".back_solar", state.SurfaceBackSolarIrradiance, 1)
		if err != nil {
			return nil, nil, err
		}
		backIRSlot, err := st.AddSlot(ss.Name+".back_ir", state.SurfaceBackIRIrradiance, 1)
		if err != nil {
			return nil, nil, err
		}

		z.Couplings = append(z.Couplings, zone.Coupling{Area: ss.Area, CoeffSlot: frontConvSlot, SurfaceSlot: slot, NodeIndex: 0})

		binding := &SurfaceBinding{
			Surface: surf, Memory: surf.AllocateMemory(), StateSlot: slot,
			Zone: z, ExteriorBack: true, BackIncidentSolarCoef: ss.SolarCoef,
			Front: FaceRecording{ConvCoefSlot: &frontConvSlot, SolarSlot: &frontSolarSlot, IRSlot: &frontIRSlot, HeatFlowSlot: &frontHeatFlowSlot},
			Back:  FaceRecording{ConvCoefSlot: &backConvSlot, SolarSlot: &backSolarSlot, IRSlot: &backIRSlot, HeatFlowSlot: &backHeatFlowSlot},
		}
		bindings = append(bindings, binding)
	}

	st.Freeze()
	m := &Model{Surfaces: bindings, Zones: zoneList, MacroStepLength: sc.MacroStepSeconds, Parallel: sc.Parallel}
	return m, st, nil
}
