// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package zone implements the implicit-Euler air-node energy balance for
// one thermal zone: convective exchange with its bounding surfaces,
// infiltration, HVAC, luminaires and occupant/other gains.
package zone

import (
	"github.com/germolinal/thermalcore/gas"
	"github.com/germolinal/thermalcore/state"
	"github.com/germolinal/thermalcore/thermoerr"
)

// Coupling is one bounding surface's convective exchange with this
// zone's air, referencing the surface's state slot/node index rather
// than holding a back-pointer to the surface itself. CoeffSlot is the
// state slot (length 1, kind state.SurfaceFrontConvectionCoefficient or
// state.SurfaceBackConvectionCoefficient) the bounding surface's own
// March call writes its live C3 convection coefficient into every
// macro-step — Step reads it fresh rather than assuming a fixed value.
type Coupling struct {
	Area        float64
	CoeffSlot   int
	SurfaceSlot int
	NodeIndex   int
}

// Zone is one thermal zone's air node. HVACSlot, InfiltrationVolumeSlot
// and InfiltrationTempSlot are optional state slots (length 1) Step
// records its HVAC consumption and infiltration bookkeeping into; nil
// skips recording.
type Zone struct {
	Name                   string
	Volume                 float64
	StateSlot              int
	Couplings              []Coupling
	InfiltrationACH        float64
	HVAC                   *HVAC
	HVACMode               HeatingCoolingKind
	Luminaires             []*Luminaire
	OccupantGain           float64
	OtherGain              float64
	HVACSlot               *int
	InfiltrationVolumeSlot *int
	InfiltrationTempSlot   *int
}

// Step advances this zone's air temperature by dt (implicit Euler),
// reading bounding-surface node temperatures from st and the outdoor
// dry-bulb temperature from the caller, writing the updated air
// temperature back into st.
func (z *Zone) Step(dt, outdoorAirTemp float64, st *state.Vector) error {
	slot := st.Slot(z.StateSlot)
	if slot.Length != 1 {
		return thermoerr.New(thermoerr.DimensionMismatch, "zone %q state slot has length %d, want 1", z.Name, slot.Length)
	}
	tOld := st.Values(z.StateSlot)[0]

	air, err := gas.New("air")
	if err != nil {
		return err
	}
	rho := air.Density(tOld)
	cp := air.HeatCapacity(tOld)
	capacitance := z.Volume * rho * cp

	conductance := 0.0
	forcing := 0.0
	for _, c := range z.Couplings {
		surfSlot := st.Slot(c.SurfaceSlot)
		if c.NodeIndex < 0 || c.NodeIndex >= surfSlot.Length {
			return thermoerr.New(thermoerr.DimensionMismatch, "zone %q coupling references node %d outside surface slot %q (length %d)", z.Name, c.NodeIndex, surfSlot.Name, surfSlot.Length)
		}
		coeffSlot := st.Slot(c.CoeffSlot)
		if coeffSlot.Length != 1 {
			return thermoerr.New(thermoerr.DimensionMismatch, "zone %q coupling's convection coefficient slot %q has length %d, want 1", z.Name, coeffSlot.Name, coeffSlot.Length)
		}
		h := st.Values(c.CoeffSlot)[0]
		tSurf := st.Values(c.SurfaceSlot)[c.NodeIndex]
		g := h * c.Area
		conductance += g
		forcing += g * tSurf
	}

	mInf := z.InfiltrationACH / 3600.0 * z.Volume * rho
	conductance += mInf * cp
	forcing += mInf * cp * outdoorAirTemp
	if z.InfiltrationVolumeSlot != nil {
		st.Values(*z.InfiltrationVolumeSlot)[0] = mInf / rho
	}
	if z.InfiltrationTempSlot != nil {
		st.Values(*z.InfiltrationTempSlot)[0] = outdoorAirTemp
	}

	hvacPower := 0.0
	if z.HVAC != nil {
		p, err := z.HVAC.Power(z.HVACMode)
		if err != nil {
			return err
		}
		forcing += p
		hvacPower = p
	}
	if z.HVACSlot != nil {
		st.Values(*z.HVACSlot)[0] = hvacPower
	}
	for _, l := range z.Luminaires {
		if l.On {
			forcing += l.Power
		}
	}
	forcing += z.OccupantGain + z.OtherGain

	// implicit Euler: (C/dt + conductance)*Tnew = C/dt*Told + forcing
	a := capacitance/dt + conductance
	if a == 0 {
		return thermoerr.New(thermoerr.IllegalConstruction, "zone %q has zero thermal capacitance and conductance; cannot solve", z.Name)
	}
	tNew := (capacitance/dt*tOld + forcing) / a

	st.Values(z.StateSlot)[0] = tNew
	return nil
}
