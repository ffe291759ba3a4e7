// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package surface

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/germolinal/thermalcore/convection"
	"github.com/germolinal/thermalcore/discretize"
)

func Test_march_stiff_matches_rk4_on_a_single_chunk(tst *testing.T) {
	chk.PrintTitle("surface: MarchStiff agrees with March on a single massive chunk")

	layer := discretize.LayerSpec{Thickness: 0.1, Lambda: 1.7, Rho: 2300, Cp: 900}
	segsA, err := discretize.Build([]discretize.LayerSpec{layer}, []int{3}, 2.4, math.Pi/2)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	segsB := append([]discretize.Segment(nil), segsA...)

	rk4Surf := &Surface{Name: "rk4", Segments: segsA, Area: 10, Perimeter: 12, Roughness: convection.MediumRough,
		Optics: Optics{Opaque: true, FrontAbsorptance: 0.6, BackAbsorptance: 0.6}, TstepSubdivision: 20}
	stiffSurf := &Surface{Name: "stiff", Segments: segsB, Area: 10, Perimeter: 12, Roughness: convection.MediumRough,
		Optics: Optics{Opaque: true, FrontAbsorptance: 0.6, BackAbsorptance: 0.6}}

	front := Env{AirTemp: 20, RadTemp: 20, Emissivity: 0.9}
	back := Env{AirTemp: -10, RadTemp: -10, Emissivity: 0.9}

	tempsRK4 := []float64{20, 20, 20, 20}
	tempsStiff := []float64{20, 20, 20, 20}
	memRK4 := rk4Surf.AllocateMemory()
	memStiff := stiffSurf.AllocateMemory()

	for i := 0; i < 20; i++ {
		if err := rk4Surf.March(300, front, back, 0, 0, tempsRK4, memRK4, nil, nil); err != nil {
			tst.Fatalf("rk4 march failed: %v", err)
		}
		if err := stiffSurf.MarchStiff(300, front, back, 0, 0, tempsStiff, memStiff); err != nil {
			tst.Fatalf("stiff march failed: %v", err)
		}
	}

	for i := range tempsRK4 {
		if math.Abs(tempsRK4[i]-tempsStiff[i]) > 0.5 {
			tst.Errorf("node %d: RK4 gave %v, Radau5 gave %v (expected close agreement)", i, tempsRK4[i], tempsStiff[i])
		}
	}
}

func Test_march_stiff_rejects_multi_chunk_surface(tst *testing.T) {
	chk.PrintTitle("surface: MarchStiff rejects a surface with more than one chunk")

	massive := discretize.LayerSpec{Thickness: 0.1, Lambda: 1.7, Rho: 2300, Cp: 900}
	massless := discretize.LayerSpec{Thickness: 0.05, Lambda: 0.025, Rho: 30, Cp: 1500}
	segs, err := discretize.Build([]discretize.LayerSpec{massive, massless}, []int{3, 0}, 2.4, math.Pi/2)
	if err != nil {
		tst.Fatalf("unexpected error: %v", err)
	}
	s := &Surface{Name: "mixed", Segments: segs, Area: 10, Perimeter: 12, Roughness: convection.MediumRough}
	mem := s.AllocateMemory()
	temps := make([]float64, len(segs))
	err = s.MarchStiff(300, Env{}, Env{}, 0, 0, temps, mem)
	if err == nil {
		tst.Errorf("expected MarchStiff to reject a multi-chunk surface")
	}
}
