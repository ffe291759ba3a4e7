// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cpmech/gosl/chk"
)

const sampleCatalog = `{
  "substances": [
    {"name": "concrete", "lambda": 1.7, "rho": 2300, "cp": 900, "front_solar_absorptance": 0.6, "back_solar_absorptance": 0.6},
    {"name": "air-gap", "is_gas": true, "gas_name": "air"}
  ],
  "materials": [
    {"name": "concrete-100mm", "substance": "concrete", "thickness": 0.1},
    {"name": "gap-12mm", "substance": "air-gap", "thickness": 0.0127}
  ],
  "constructions": [
    {"name": "solid-wall", "layers": ["concrete-100mm"]},
    {"name": "bad-wall", "layers": ["gap-12mm"]}
  ]
}`

func writeSample(tst *testing.T, body string) string {
	dir := tst.TempDir()
	path := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		tst.Fatalf("unexpected error writing sample catalog: %v", err)
	}
	return path
}

func Test_load_json_rejects_invalid_construction(tst *testing.T) {
	chk.PrintTitle("catalog: load validates every construction at load time")

	path := writeSample(tst, sampleCatalog)
	_, err := LoadJSON(path)
	if err == nil {
		tst.Fatalf("expected a validation error: bad-wall starts with a gas layer")
	}
}

func Test_load_json_valid_catalog(tst *testing.T) {
	chk.PrintTitle("catalog: load a valid catalog and resolve layer specs")

	validOnly := `{
  "substances": [{"name": "concrete", "lambda": 1.7, "rho": 2300, "cp": 900}],
  "materials": [{"name": "concrete-100mm", "substance": "concrete", "thickness": 0.1}],
  "constructions": [{"name": "solid-wall", "layers": ["concrete-100mm"]}]
}`
	path := writeSample(tst, validOnly)
	c, err := LoadJSON(path)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	specs, err := c.LayerSpecs("solid-wall")
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if len(specs) != 1 || specs[0].Lambda != 1.7 {
		tst.Errorf("unexpected layer specs: %+v", specs)
	}
}

func Test_missing_construction(tst *testing.T) {
	chk.PrintTitle("catalog: unknown construction name is reported")

	validOnly := `{
  "substances": [{"name": "concrete", "lambda": 1.7, "rho": 2300, "cp": 900}],
  "materials": [{"name": "concrete-100mm", "substance": "concrete", "thickness": 0.1}],
  "constructions": [{"name": "solid-wall", "layers": ["concrete-100mm"]}]
}`
	path := writeSample(tst, validOnly)
	c, err := LoadJSON(path)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	if _, err := c.LayerSpecs("does-not-exist"); err == nil {
		tst.Errorf("expected an error for an unknown construction name")
	}
}
