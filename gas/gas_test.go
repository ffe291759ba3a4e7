// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gas

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// checkValue asserts a relative error below 1% as the source tables are
// reproduced from ISO 15099 to limited precision.
func checkValue(tst *testing.T, label string, a, b float64) {
	err := absf(a-b) / absf(a)
	if err > 1e-2 {
		tst.Errorf("%s: a=%v b=%v err=%v exceeds 1%%", label, a, b, err)
	}
}

func Test_thermal_conductivity(tst *testing.T) {
	chk.PrintTitle("gas: thermal conductivity")

	a, _ := New("air")
	checkValue(tst, "air@0", 0.0241, a.ThermalConductivity(0.))
	checkValue(tst, "air@10", 0.0248, a.ThermalConductivity(10.))

	ar, _ := New("argon")
	checkValue(tst, "argon@0", 0.0163, ar.ThermalConductivity(0.))
	checkValue(tst, "argon@10", 0.0169, ar.ThermalConductivity(10.))

	k, _ := New("krypton")
	checkValue(tst, "krypton@0", 0.0087, k.ThermalConductivity(0.))
	checkValue(tst, "krypton@10", 0.0089, k.ThermalConductivity(10.))

	x, _ := New("xenon")
	checkValue(tst, "xenon@0", 0.0052, x.ThermalConductivity(0.))
	checkValue(tst, "xenon@10", 0.0053, x.ThermalConductivity(10.))
}

func Test_dynamic_viscosity(tst *testing.T) {
	chk.PrintTitle("gas: dynamic viscosity")

	a, _ := New("air")
	checkValue(tst, "air@0", 1.722e-5, a.DynamicViscosity(0.))
	checkValue(tst, "air@10", 1.771e-5, a.DynamicViscosity(10.))

	ar, _ := New("argon")
	checkValue(tst, "argon@0", 2.1e-5, ar.DynamicViscosity(0.))
	checkValue(tst, "argon@10", 2.165e-5, ar.DynamicViscosity(10.))

	k, _ := New("krypton")
	checkValue(tst, "krypton@0", 2.346e-5, k.DynamicViscosity(0.))
	checkValue(tst, "krypton@10", 2.423e-5, k.DynamicViscosity(10.))

	x, _ := New("xenon")
	checkValue(tst, "xenon@0", 2.132e-5, x.DynamicViscosity(0.))
	checkValue(tst, "xenon@10", 2.206e-5, x.DynamicViscosity(10.))
}

func Test_heat_capacity(tst *testing.T) {
	chk.PrintTitle("gas: heat capacity")

	a, _ := New("air")
	checkValue(tst, "air@0", 1006.1034, a.HeatCapacity(0.))
	checkValue(tst, "air@10", 1006.2265, a.HeatCapacity(10.))

	ar, _ := New("argon")
	checkValue(tst, "argon@0", 521.9285, ar.HeatCapacity(0.))
	checkValue(tst, "argon@10", 521.9285, ar.HeatCapacity(10.))

	k, _ := New("krypton")
	checkValue(tst, "krypton@0", 248.0907, k.HeatCapacity(0.))
	checkValue(tst, "krypton@10", 248.0907, k.HeatCapacity(10.))

	x, _ := New("xenon")
	checkValue(tst, "xenon@0", 158.3397, x.HeatCapacity(0.))
	checkValue(tst, "xenon@10", 158.3397, x.HeatCapacity(10.))
}

func Test_mass(tst *testing.T) {
	chk.PrintTitle("gas: molar mass")

	a, _ := New("air")
	checkValue(tst, "air", 28.97, a.Mass())

	ar, _ := New("argon")
	checkValue(tst, "argon", 39.948, ar.Mass())

	k, _ := New("krypton")
	checkValue(tst, "krypton", 83.80, k.Mass())

	x, _ := New("xenon")
	checkValue(tst, "xenon", 131.3, x.Mass())
}

func Test_unknown_gas(tst *testing.T) {
	chk.PrintTitle("gas: unknown species")

	_, err := New("helium")
	if err == nil {
		tst.Errorf("expected an UnknownGas error for helium")
	}
}
