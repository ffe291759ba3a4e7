// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package state holds the simulation's flat, slot-indexed state vector.
// Every surface's node temperatures, every zone's air temperature, and
// the heat-flow bookkeeping recorded at each boundary live in one
// contiguous []float64, addressed by name-resolved Slots rather than by
// scattered per-object fields or back-pointers, per the design notes.
package state

import "github.com/germolinal/thermalcore/thermoerr"

// Kind classifies what a Slot's values represent.
type Kind int

const (
	SurfaceNodeTemp Kind = iota
	SurfaceFrontHeatFlow
	SurfaceBackHeatFlow
	SurfaceFrontConvectionCoefficient
	SurfaceBackConvectionCoefficient
	SurfaceFrontSolarIrradiance
	SurfaceBackSolarIrradiance
	SurfaceFrontIRIrradiance
	SurfaceBackIRIrradiance
	FenestrationNodeTemp
	FenestrationFrontHeatFlow
	FenestrationBackHeatFlow
	ZoneAirTemp
	HVACHeatingCoolingConsumption
	SpaceInfiltrationVolume
	SpaceInfiltrationTemperature
)

func (k Kind) String() string {
	switch k {
	case SurfaceNodeTemp:
		return "SurfaceNodeTemp"
	case SurfaceFrontHeatFlow:
		return "SurfaceFrontHeatFlow"
	case SurfaceBackHeatFlow:
		return "SurfaceBackHeatFlow"
	case SurfaceFrontConvectionCoefficient:
		return "SurfaceFrontConvectionCoefficient"
	case SurfaceBackConvectionCoefficient:
		return "SurfaceBackConvectionCoefficient"
	case SurfaceFrontSolarIrradiance:
		return "SurfaceFrontSolarIrradiance"
	case SurfaceBackSolarIrradiance:
		return "SurfaceBackSolarIrradiance"
	case SurfaceFrontIRIrradiance:
		return "SurfaceFrontIRIrradiance"
	case SurfaceBackIRIrradiance:
		return "SurfaceBackIRIrradiance"
	case FenestrationNodeTemp:
		return "FenestrationNodeTemp"
	case FenestrationFrontHeatFlow:
		return "FenestrationFrontHeatFlow"
	case FenestrationBackHeatFlow:
		return "FenestrationBackHeatFlow"
	case ZoneAirTemp:
		return "ZoneAirTemp"
	case HVACHeatingCoolingConsumption:
		return "HVACHeatingCoolingConsumption"
	case SpaceInfiltrationVolume:
		return "SpaceInfiltrationVolume"
	case SpaceInfiltrationTemperature:
		return "SpaceInfiltrationTemperature"
	default:
		return "Unknown"
	}
}

// Slot is one named, contiguous region of the flat state vector.
type Slot struct {
	Name   string
	Kind   Kind
	Offset int
	Length int
}

// Vector is the flat simulation state: one backing []float64, addressed
// through Slots. Slot assignment is frozen before marching begins
// (Freeze), so every index computed during setup stays valid for the
// lifetime of a run.
type Vector struct {
	slots  []Slot
	byName map[string]int
	data   []float64
	frozen bool
}

// New returns an empty, unfrozen state vector.
func New() *Vector {
	return &Vector{byName: map[string]int{}}
}

// AddSlot reserves length contiguous values under name, returning the
// slot's index. Returns an error if the vector is frozen or name is
// already taken.
func (v *Vector) AddSlot(name string, kind Kind, length int) (int, error) {
	if v.frozen {
		return 0, thermoerr.New(thermoerr.IllegalConstruction, "cannot add slot %q: state vector is already frozen", name)
	}
	if _, exists := v.byName[name]; exists {
		return 0, thermoerr.New(thermoerr.IllegalConstruction, "slot %q already exists", name)
	}
	offset := len(v.data)
	v.data = append(v.data, make([]float64, length)...)
	idx := len(v.slots)
	v.slots = append(v.slots, Slot{Name: name, Kind: kind, Offset: offset, Length: length})
	v.byName[name] = idx
	return idx, nil
}

// Freeze locks slot assignment; any later AddSlot call returns an error.
func (v *Vector) Freeze() {
	v.frozen = true
}

// Frozen reports whether Freeze has been called.
func (v *Vector) Frozen() bool {
	return v.frozen
}

// Slot returns the Slot at idx (as returned by AddSlot).
func (v *Vector) Slot(idx int) Slot {
	return v.slots[idx]
}

// SlotByName resolves a slot by name, returning ok=false if absent —
// callers hold the resolved index/offset going forward rather than
// re-resolving by name or keeping a back-pointer into this vector.
func (v *Vector) SlotByName(name string) (Slot, bool) {
	idx, ok := v.byName[name]
	if !ok {
		return Slot{}, false
	}
	return v.slots[idx], true
}

// Values returns the mutable sub-slice of the backing array for slot idx.
func (v *Vector) Values(idx int) []float64 {
	s := v.slots[idx]
	return v.data[s.Offset : s.Offset+s.Length]
}

// All returns the entire backing array (callers dump this for
// persistence; the module has no intrinsic persistence of its own).
func (v *Vector) All() []float64 {
	return v.data
}

// Len returns the total number of scalar values across all slots.
func (v *Vector) Len() int {
	return len(v.data)
}

// Clone returns an independent copy of the vector's backing data and
// slot table, used by model.Model.March to stage a macro-step's mutated
// slots and only commit them on full success.
func (v *Vector) Clone() *Vector {
	data := make([]float64, len(v.data))
	copy(data, v.data)
	slots := make([]Slot, len(v.slots))
	copy(slots, v.slots)
	byName := make(map[string]int, len(v.byName))
	for k, val := range v.byName {
		byName[k] = val
	}
	return &Vector{slots: slots, byName: byName, data: data, frozen: v.frozen}
}

// CopyFrom overwrites v's backing data with other's (same slot layout
// assumed — used to commit a successful macro-step's scratch copy back).
func (v *Vector) CopyFrom(other *Vector) {
	copy(v.data, other.data)
}
