// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package catalog is the immutable substance/material/construction store:
// a JSON document loaded once at startup (grounded on inp/sim.go's
// top-level JSON document convention) and validated before use, never
// mutated afterward.
package catalog

import (
	"encoding/json"
	"math"
	"os"

	"github.com/germolinal/thermalcore/discretize"
	"github.com/germolinal/thermalcore/thermoerr"
)

// Substance is a named material's bulk thermal properties: either a
// solid (Lambda/Rho/Cp, plus the emissivities a neighboring gas layer
// reads) or a fill gas (GasName, resolved against package gas).
type Substance struct {
	Name         string  `json:"name"`
	IsGas        bool    `json:"is_gas"`
	Lambda       float64 `json:"lambda"`
	Rho          float64 `json:"rho"`
	Cp           float64 `json:"cp"`
	GasName      string  `json:"gas_name"`
	FrontEmiss   float64 `json:"front_emissivity"`
	BackEmiss    float64 `json:"back_emissivity"`
	FrontAbsorpt float64 `json:"front_solar_absorptance"`
	BackAbsorpt  float64 `json:"back_solar_absorptance"`
}

// Material is one physical layer: a Substance at a given thickness.
type Material struct {
	Name      string  `json:"name"`
	Substance string  `json:"substance"`
	Thickness float64 `json:"thickness"`
}

// Construction is a named, front-to-back ordered list of Material names.
type Construction struct {
	Name   string   `json:"name"`
	Layers []string `json:"layers"`
}

// document is the raw shape of a catalog JSON file.
type document struct {
	Substances    []Substance    `json:"substances"`
	Materials     []Material     `json:"materials"`
	Constructions []Construction `json:"constructions"`
}

// Catalog is the resolved, validated, immutable store.
type Catalog struct {
	substances    map[string]Substance
	materials     map[string]Material
	constructions map[string]Construction
}

// LoadJSON reads and validates a catalog document from path.
func LoadJSON(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, thermoerr.New(thermoerr.MissingProperty, "cannot read catalog file %q: %v", path, err)
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, thermoerr.New(thermoerr.MissingProperty, "cannot parse catalog file %q: %v", path, err)
	}

	c := &Catalog{
		substances:    make(map[string]Substance, len(doc.Substances)),
		materials:     make(map[string]Material, len(doc.Materials)),
		constructions: make(map[string]Construction, len(doc.Constructions)),
	}
	for _, s := range doc.Substances {
		c.substances[s.Name] = s
	}
	for _, m := range doc.Materials {
		c.materials[m.Name] = m
	}
	for _, k := range doc.Constructions {
		c.constructions[k.Name] = k
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// validate resolves every construction's layer specs (catching unknown
// material/substance references and the gas-adjacency/first-last-layer
// invariants discretize.Build enforces) at load time rather than at
// first use.
func (c *Catalog) validate() error {
	for name := range c.constructions {
		specs, err := c.LayerSpecs(name)
		if err != nil {
			return err
		}
		placeholders := make([]int, len(specs))
		for i, s := range specs {
			if !s.IsGas {
				placeholders[i] = 1
			}
		}
		if _, err := discretize.Build(specs, placeholders, 1.0, math.Pi/2); err != nil {
			return thermoerr.New(thermoerr.IllegalConstruction, "construction %q failed validation: %v", name, err)
		}
	}
	return nil
}

// Substance looks up a substance by name.
func (c *Catalog) Substance(name string) (Substance, error) {
	s, ok := c.substances[name]
	if !ok {
		return Substance{}, thermoerr.New(thermoerr.MissingProperty, "unknown substance %q", name)
	}
	return s, nil
}

// Material looks up a material by name.
func (c *Catalog) Material(name string) (Material, error) {
	m, ok := c.materials[name]
	if !ok {
		return Material{}, thermoerr.New(thermoerr.MissingProperty, "unknown material %q", name)
	}
	return m, nil
}

// Construction looks up a construction by name.
func (c *Catalog) Construction(name string) (Construction, error) {
	k, ok := c.constructions[name]
	if !ok {
		return Construction{}, thermoerr.New(thermoerr.MissingProperty, "unknown construction %q", name)
	}
	return k, nil
}

// LayerSpecs resolves a construction's materials and substances into the
// discretize.LayerSpec list Build/DiscretizeConstruction operate on.
func (c *Catalog) LayerSpecs(constructionName string) ([]discretize.LayerSpec, error) {
	k, err := c.Construction(constructionName)
	if err != nil {
		return nil, err
	}
	specs := make([]discretize.LayerSpec, len(k.Layers))
	for i, matName := range k.Layers {
		mat, err := c.Material(matName)
		if err != nil {
			return nil, err
		}
		sub, err := c.Substance(mat.Substance)
		if err != nil {
			return nil, err
		}
		specs[i] = discretize.LayerSpec{
			IsGas:      sub.IsGas,
			Thickness:  mat.Thickness,
			Lambda:     sub.Lambda,
			Rho:        sub.Rho,
			Cp:         sub.Cp,
			GasName:    sub.GasName,
			FrontEmiss: sub.FrontEmiss,
			BackEmiss:  sub.BackEmiss,
		}
	}
	return specs, nil
}
