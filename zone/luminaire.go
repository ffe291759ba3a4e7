// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package zone

import "github.com/germolinal/thermalcore/thermoerr"

// Luminaire is a named electric-lighting heat source assigned to one
// target zone by index, not by back-pointer.
type Luminaire struct {
	Name       string
	Power      float64 // W, heat dissipated into the zone when on
	On         bool
	TargetZone int // index into the caller's []*Zone
}

// ResolveLuminaire finds the named luminaire among every zone's
// Luminaires, validating that its TargetZone index is in range.
func ResolveLuminaire(name string, zones []*Zone) (*Luminaire, error) {
	for _, z := range zones {
		for _, l := range z.Luminaires {
			if l.Name != name {
				continue
			}
			if l.TargetZone < 0 || l.TargetZone >= len(zones) {
				return nil, thermoerr.New(thermoerr.IllegalConstruction, "luminaire %q targets zone index %d, out of range [0,%d)", name, l.TargetZone, len(zones))
			}
			return l, nil
		}
	}
	return nil, thermoerr.New(thermoerr.MissingProperty, "no luminaire named %q", name)
}
