// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package thermoerr defines the typed error kinds raised by the thermal
// transport core, shared across gas, cavity, convection, glazing,
// discretize, surface, zone and model.
package thermoerr

import "fmt"

// Kind identifies one of the error kinds raised at model-build or march time.
type Kind int

// error kinds, grouped build-time then march-time
const (
	MissingProperty Kind = iota
	IllegalConstruction
	UnknownGas
	ReflectanceOutOfRange
	DimensionMismatch
	NonFiniteTemperature
	InvalidHVACMode
)

func (k Kind) String() string {
	switch k {
	case MissingProperty:
		return "MissingProperty"
	case IllegalConstruction:
		return "IllegalConstruction"
	case UnknownGas:
		return "UnknownGas"
	case ReflectanceOutOfRange:
		return "ReflectanceOutOfRange"
	case DimensionMismatch:
		return "DimensionMismatch"
	case NonFiniteTemperature:
		return "NonFiniteTemperature"
	case InvalidHVACMode:
		return "InvalidHVACMode"
	}
	return "Unknown"
}

// Error is the typed error returned by the thermal core. Surface and SubStep
// are only meaningful for march-time errors; both are left at their zero
// value for build-time errors.
type Error struct {
	Kind    Kind
	Msg     string
	Surface string
	SubStep int
}

func (e *Error) Error() string {
	if e.Surface != "" {
		return fmt.Sprintf("%v: %s (surface=%q sub_step=%d)", e.Kind, e.Msg, e.Surface, e.SubStep)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

// New creates a build-time error (no surface/sub-step context).
func New(kind Kind, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...)}
}

// AtStep creates a march-time error tagged with the surface name and sub-step index.
func AtStep(kind Kind, surface string, subStep int, msg string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(msg, args...), Surface: surface, SubStep: subStep}
}
