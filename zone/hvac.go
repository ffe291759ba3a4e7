// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zone

import "github.com/germolinal/thermalcore/thermoerr"

// HeatingCoolingKind is the HVAC operating mode for one macro-step.
type HeatingCoolingKind int

const (
	Off HeatingCoolingKind = iota
	Heating
	Cooling
)

// HVACSystemKind distinguishes an idealized (always-available, either
// direction) system from an electric-resistance system, which cannot
// provide cooling.
type HVACSystemKind int

const (
	Ideal HVACSystemKind = iota
	Electric
)

// HVAC is one zone's heating/cooling plant: a fixed-capacity system that
// injects its full rated capacity whenever it is on. Ideal can heat or
// cool; Electric heats only. There is no setpoint control.
type HVAC struct {
	System   HVACSystemKind
	Capacity float64 // W, positive
}

// Power returns the signed power (W, positive=heating, negative=cooling)
// this plant contributes for the given operating mode. Electric+Cooling
// is InvalidHVACMode — an electric-resistance system cannot cool,
// exactly as the source panics on this combination (converted here to a
// returned error per this module's error-handling convention).
func (h HVAC) Power(kind HeatingCoolingKind) (float64, error) {
	switch kind {
	case Off:
		return 0, nil
	case Heating:
		return h.Capacity, nil
	case Cooling:
		if h.System == Electric {
			return 0, thermoerr.New(thermoerr.InvalidHVACMode, "an Electric HVAC system cannot provide Cooling")
		}
		return -h.Capacity, nil
	default:
		return 0, thermoerr.New(thermoerr.InvalidHVACMode, "unknown HeatingCoolingKind %d", kind)
	}
}
