// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package gas implements temperature-dependent thermal properties of the
// fill gases used in glazing cavities: thermal conductivity, dynamic
// viscosity, specific heat capacity and molar mass, plus the derived
// density, Prandtl and Rayleigh numbers used by the cavity model.
//
// Property tables are literal polynomials in absolute temperature (K),
// taken from ISO 15099. The public API accepts and documents temperatures
// in °C, converting internally.
package gas

import "github.com/germolinal/thermalcore/thermoerr"

// UniversalGasConstant is R in J/(mol.K)
const UniversalGasConstant = 8.31446261815324

// StdPressure is the standard atmospheric pressure (Pa) used for density
const StdPressure = 101325.0

// Gas holds the polynomial coefficient tables (in order of increasing power
// of absolute temperature) for one fill-gas species.
type Gas struct {
	Name    string
	Lambda  []float64 // thermal conductivity (W/m.K) coefficients
	Mu      []float64 // dynamic viscosity (N.s/m2) coefficients
	Cp      []float64 // specific heat capacity (J/kg.K) coefficients
	MolMass float64   // molar mass in g/mol (= kg/kmol), e.g. 28.97 for air
}

// toKelvin converts a Celsius temperature to Kelvin
func toKelvin(tC float64) float64 {
	return tC + 273.15
}

// horner evaluates a polynomial given in increasing-power coefficient order
func horner(coef []float64, x float64) float64 {
	y := 0.0
	for i := len(coef) - 1; i >= 0; i-- {
		y = y*x + coef[i]
	}
	return y
}

// ThermalConductivity returns λ(T) in W/m.K for tempC in °C
func (o *Gas) ThermalConductivity(tempC float64) float64 {
	return horner(o.Lambda, toKelvin(tempC))
}

// DynamicViscosity returns μ(T) in N.s/m2 for tempC in °C
func (o *Gas) DynamicViscosity(tempC float64) float64 {
	return horner(o.Mu, toKelvin(tempC))
}

// HeatCapacity returns cp(T) in J/kg.K for tempC in °C
func (o *Gas) HeatCapacity(tempC float64) float64 {
	return horner(o.Cp, toKelvin(tempC))
}

// Mass returns the molar mass in g/mol (literal table value, e.g. 28.97)
func (o *Gas) Mass() float64 {
	return o.MolMass
}

// Density returns the ideal-gas density (kg/m3) at tempC (°C) and standard pressure
func (o *Gas) Density(tempC float64) float64 {
	t := toKelvin(tempC)
	// MolMass table is given in g/mol-equivalent (e.g. 28.97); convert to kg/mol
	return StdPressure * (o.MolMass / 1000.0) / (UniversalGasConstant * t)
}

// Prandtl returns the Prandtl number cp*mu/lambda at tempC (°C)
func (o *Gas) Prandtl(tempC float64) float64 {
	return o.HeatCapacity(tempC) * o.DynamicViscosity(tempC) / o.ThermalConductivity(tempC)
}

// Rayleigh returns the Rayleigh number for a cavity of thickness d (m) and
// temperature difference deltaT (K) about mean temperature tempC (°C),
// using the Boussinesq approximation with beta = 1/T_mean.
func (o *Gas) Rayleigh(tempC, deltaT, d float64) float64 {
	const g = 9.81
	tK := toKelvin(tempC)
	rho := o.Density(tempC)
	mu := o.DynamicViscosity(tempC)
	cp := o.HeatCapacity(tempC)
	lambda := o.ThermalConductivity(tempC)
	nu := mu / rho
	alpha := lambda / (rho * cp)
	beta := 1.0 / tK
	return g * beta * absf(deltaT) * d * d * d / (nu * alpha)
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

func air() *Gas {
	return &Gas{
		Name:    "air",
		Lambda:  []float64{2.873e-3, 7.760e-5},
		Mu:      []float64{3.723e-6, 4.94e-8},
		Cp:      []float64{1002.7370, 1.2324e-2},
		MolMass: 28.97,
	}
}

func argon() *Gas {
	return &Gas{
		Name:    "argon",
		Lambda:  []float64{2.285e-3, 5.149e-5},
		Mu:      []float64{3.379e-6, 6.451e-8},
		Cp:      []float64{521.9285},
		MolMass: 39.948,
	}
}

func krypton() *Gas {
	return &Gas{
		Name:    "krypton",
		Lambda:  []float64{9.443e-4, 2.826e-5},
		Mu:      []float64{2.213e-6, 7.777e-8},
		Cp:      []float64{248.0907},
		MolMass: 83.8,
	}
}

func xenon() *Gas {
	return &Gas{
		Name:    "xenon",
		Lambda:  []float64{4.538e-4, 1.723e-5},
		Mu:      []float64{1.069e-6, 7.414e-8},
		Cp:      []float64{158.3397},
		MolMass: 131.30,
	}
}

// New returns a fresh Gas for one of the supported species names:
// "air", "argon", "krypton", "xenon". Returns an UnknownGas error otherwise.
func New(name string) (gas *Gas, err error) {
	allocator, ok := allocators[name]
	if !ok {
		return nil, thermoerr.New(thermoerr.UnknownGas, "gas %q is not available in the gas database", name)
	}
	return allocator(), nil
}

// allocators holds all available gas species, registered in init()
var allocators = map[string]func() *Gas{}

func init() {
	allocators["air"] = air
	allocators["argon"] = argon
	allocators["krypton"] = krypton
	allocators["xenon"] = xenon
}
