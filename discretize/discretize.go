// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package discretize turns a front-to-back stack of construction layers
// into a chain of thermal nodes (Segments), partitions that chain into
// contiguous massive/massless chunks, and assembles the per-chunk K/q
// conductance system consumed by package surface's time marching.
package discretize

import (
	"math"

	"github.com/germolinal/thermalcore/cavity"
	"github.com/germolinal/thermalcore/gas"
	"github.com/germolinal/thermalcore/thermoerr"

	"github.com/cpmech/gosl/la"
)

// MassFloor is the areal heat capacity (J/m2.K) below which a node is
// treated as massless. Do not change without re-validating chunking
// invariants elsewhere in this package and in package surface.
const MassFloor = 1e-5

// MaxRs is R_s in the discretization stability quadratic.
const MaxRs = 0.05

// DefaultEmissivity is used whenever a solid layer's own emissivity is
// left zero-valued.
const DefaultEmissivity = 0.84

// UValue is the coupling between one node and its neighbor, a Go sum type
// (interface + unexported marker method) mirroring the source enum
// UValue { Solid(f64), Cavity(Cavity), Back, None } — chosen over an
// inheritance hierarchy per the design notes.
type UValue interface {
	isUValue()
}

// SolidU is a plain conductive coupling, W/(m2.K).
type SolidU struct{ U float64 }

func (SolidU) isUValue() {}

// CavityU couples across a gas-filled gap; its U depends on the boundary
// temperatures at evaluation time.
type CavityU struct{ C *cavity.Cavity }

func (CavityU) isUValue() {}

// BackU marks the last node of a construction: its outward coupling is
// whatever boundary condition is supplied to GetKQ, not another node.
type BackU struct{}

func (BackU) isUValue() {}

// NoneU marks a node with no outward coupling at all.
type NoneU struct{}

func (NoneU) isUValue() {}

// Segment is one thermal node: its areal heat capacity (J/m2.K) and its
// coupling to the next node toward the back of the construction.
type Segment struct {
	Mass float64
	U    UValue
}

// LayerSpec is one construction layer as given to Build: either a solid
// (Lambda, Rho, Cp) or a gas-filled cavity (GasName).
type LayerSpec struct {
	IsGas      bool
	Thickness  float64
	Lambda     float64
	Rho        float64
	Cp         float64
	GasName    string
	FrontEmiss float64
	BackEmiss  float64
}

func orDefaultEmiss(e float64) float64 {
	if e == 0 {
		return DefaultEmissivity
	}
	return e
}

// Discretization is the built node chain for one construction, plus the
// sub-stepping parameters that produced it.
type Discretization struct {
	Segments         []Segment
	TstepSubdivision int
	NElements        []int
}

// Build assembles the node chain for a front-to-back layer stack, given
// the per-layer element counts nElements (0 for a layer treated as
// massless, produced by DiscretizeConstruction). Height and tilt
// parameterize any gas layers' Cavity objects. The chain always ends with
// one extra back-surface node carrying BackU, so every element keeps its
// own coupling to the node behind it.
func Build(layers []LayerSpec, nElements []int, height, tilt float64) ([]Segment, error) {
	if len(layers) == 0 {
		return nil, thermoerr.New(thermoerr.IllegalConstruction, "construction has no layers")
	}
	if len(nElements) != len(layers) {
		return nil, thermoerr.New(thermoerr.DimensionMismatch, "nElements has %d entries, want %d (one per layer)", len(nElements), len(layers))
	}

	var segments []Segment
	pendingMass := 0.0

	for i, layer := range layers {
		if layer.IsGas {
			if i == 0 || i == len(layers)-1 {
				return nil, thermoerr.New(thermoerr.IllegalConstruction, "gas layer %d cannot be the first or last layer of a construction", i)
			}
			prev, next := layers[i-1], layers[i+1]
			if prev.IsGas || next.IsGas {
				return nil, thermoerr.New(thermoerr.IllegalConstruction, "gas layer %d is adjacent to another gas layer with no solid between them", i)
			}
			g, err := gas.New(layer.GasName)
			if err != nil {
				return nil, err
			}
			eout := orDefaultEmiss(prev.BackEmiss)
			ein := orDefaultEmiss(next.FrontEmiss)
			cav := cavity.New(layer.Thickness, height, g, eout, ein, tilt)
			segments = append(segments, Segment{Mass: pendingMass, U: CavityU{C: cav}})
			pendingMass = 0
			continue
		}

		m := nElements[i]
		if m <= 0 {
			u := layer.Lambda / layer.Thickness
			segments = append(segments, Segment{Mass: pendingMass, U: SolidU{U: u}})
			pendingMass = 0
			continue
		}

		dx := layer.Thickness / float64(m)
		halfMass := layer.Rho * layer.Cp * dx / 2.0
		uSub := layer.Lambda / dx

		segments = append(segments, Segment{Mass: pendingMass + halfMass, U: SolidU{U: uSub}})
		for k := 1; k < m; k++ {
			segments = append(segments, Segment{Mass: 2 * halfMass, U: SolidU{U: uSub}})
		}
		pendingMass = halfMass
	}

	segments = append(segments, Segment{Mass: pendingMass, U: BackU{}})

	return segments, nil
}

// stableDx solves the stability quadratic 0 = dx^2 - (dt/(rho*cp*Rs))*dx -
// 2*dt*lambda/(rho*cp) for its positive root: the minimum node spacing a
// solid layer may use at sub-step dt and still march stably.
func stableDx(layer LayerSpec, dt float64) float64 {
	rhoCp := layer.Rho * layer.Cp
	b := dt / (rhoCp * MaxRs)
	c := 2.0 * dt * layer.Lambda / rhoCp
	return (b + math.Sqrt(b*b+4.0*c)) / 2.0
}

// DiscretizeConstruction searches, iteratively (never recursively — an
// unbounded recursive retry would risk stack growth proportional to the
// sub-step count), for the smallest sub-timestep count n such that every
// solid layer can be split into at least its required minimum element
// count (1/dxMaxFrac) while remaining numerically stable at
// dt = dtModel/n. dtMin floors how small a sub-step the caller is willing
// to accept; a layer that cannot reach its required resolution within
// that floor is degraded to massless (nElements=0) rather than searched
// forever.
func DiscretizeConstruction(layers []LayerSpec, dtModel, dtMin, dxMaxFrac float64) (n int, nElements []int) {
	if dxMaxFrac <= 0 {
		dxMaxFrac = 1.0 / 15.0
	}
	nElements = make([]int, len(layers))

	n = 1
	for {
		dt := dtModel / float64(n)
		allResolved := true
		for i, layer := range layers {
			if layer.IsGas {
				nElements[i] = 0
				continue
			}
			dxCrit := stableDx(layer, dt)
			mMax := int(math.Floor(layer.Thickness / dxCrit))
			requiredMin := int(math.Ceil(1.0 / dxMaxFrac))
			if mMax < requiredMin {
				nElements[i] = 0
				allResolved = false
				continue
			}
			nElements[i] = mMax
		}
		if allResolved {
			return n, nElements
		}
		nextDt := dtModel / float64(n+1)
		if nextDt < dtMin {
			return n, nElements
		}
		n++
	}
}

// Chunk is a contiguous, homogeneous-mass range [Ini, Fin) of Segments.
type Chunk struct {
	Ini, Fin int
	Massive  bool
}

// GetChunks partitions Segments into an exhaustive, disjoint sequence of
// massive ([Mass >= MassFloor, ...]) and massless chunks, front to back.
func GetChunks(segments []Segment) []Chunk {
	var chunks []Chunk
	n := len(segments)
	i := 0
	for i < n {
		massive := segments[i].Mass >= MassFloor
		j := i + 1
		for j < n && (segments[j].Mass >= MassFloor) == massive {
			j++
		}
		chunks = append(chunks, Chunk{Ini: i, Fin: j, Massive: massive})
		i = j
	}
	return chunks
}

// Boundary is the environment a construction's front or back face is
// coupled to: a convective air temperature/coefficient pair and a
// radiant temperature/coefficient pair (the latter re-linearized by the
// caller every sub-step from the current surface temperature, per C6).
type Boundary struct {
	AirTemp float64
	RadTemp float64
	Hs      float64
	RadHs   float64
}

func uValueOf(u UValue, tFront, tBack float64) (float64, error) {
	switch v := u.(type) {
	case SolidU:
		return v.U, nil
	case CavityU:
		return v.C.UValue(tFront, tBack), nil
	default:
		return 0, thermoerr.New(thermoerr.IllegalConstruction, "segment has no internal coupling to evaluate")
	}
}

// GetKQ assembles the dense K (conductance) matrix and q (forcing) vector
// for the chunk segments[ini:fin), into mem.K/mem.Q (reused buffers sized
// to the chunk). temperatures holds the full construction's current node
// temperatures (front is its own chunk's responsibility; neighbors
// outside [ini,fin) are read as known, explicit values). front/back are
// only consulted when this chunk touches the construction's outer faces.
func GetKQ(segments []Segment, ini, fin int, temperatures []float64, front, back Boundary, mem *ChunkMemory) error {
	n := fin - ini
	if n <= 0 {
		return thermoerr.New(thermoerr.DimensionMismatch, "empty chunk [%d,%d)", ini, fin)
	}
	if len(temperatures) != len(segments) {
		return thermoerr.New(thermoerr.DimensionMismatch, "temperatures has %d entries, want %d", len(temperatures), len(segments))
	}
	mem.Resize(n)
	la.MatFill(mem.K, 0)
	for i := range mem.Q {
		mem.Q[i] = 0
	}

	for k := 0; k < n; k++ {
		global := ini + k

		if k == 0 {
			if ini == 0 {
				mem.K[0][0] -= front.Hs + front.RadHs
				mem.Q[0] += front.AirTemp*front.Hs + front.RadHs*front.RadTemp
			} else {
				uPrev, err := uValueOf(segments[global-1].U, temperatures[global-1], temperatures[global])
				if err != nil {
					return err
				}
				mem.K[0][0] -= uPrev
				mem.Q[0] += uPrev * temperatures[global-1]
			}
		}

		switch u := segments[global].U.(type) {
		case SolidU, CavityU:
			var tBack float64
			if global+1 < len(temperatures) {
				tBack = temperatures[global+1]
			}
			uval, err := uValueOf(u, temperatures[global], tBack)
			if err != nil {
				return err
			}
			if k == n-1 {
				if global+1 >= len(segments) {
					return thermoerr.New(thermoerr.IllegalConstruction, "non-terminal coupling at the true end of the construction (segment %d)", global)
				}
				mem.K[k][k] -= uval
				mem.Q[k] += uval * temperatures[global+1]
			} else {
				mem.K[k][k] -= uval
				mem.K[k][k+1] += uval
				mem.K[k+1][k] += uval
				mem.K[k+1][k+1] -= uval
			}
		case BackU:
			mem.K[k][k] -= back.Hs + back.RadHs
			mem.Q[k] += back.AirTemp*back.Hs + back.RadHs*back.RadTemp
		case NoneU:
			// no outward coupling
		}
	}
	return nil
}

// RValue returns the construction's total resistance (m2.K/W), resolving
// every CavityU contribution as 1/UValue(tFront, tBack) evaluated at the
// caller-supplied boundary temperatures (the source's Discretization::
// r_value() never finished this; see DESIGN.md for the resolution). When
// a construction has more than one cavity and both temperatures are
// zero, the call is ambiguous (there is no single pair of boundary
// temperatures that can stand in for every cavity's own local gradient)
// and an error is returned instead.
func RValue(segments []Segment, tFront, tBack float64) (float64, error) {
	cavities := 0
	for _, s := range segments {
		if _, ok := s.U.(CavityU); ok {
			cavities++
		}
	}
	if cavities > 1 && tFront == 0 && tBack == 0 {
		return 0, thermoerr.New(thermoerr.IllegalConstruction, "RValue is ambiguous for a multi-cavity construction called with default zero boundary temperatures")
	}
	total := 0.0
	for _, s := range segments {
		switch u := s.U.(type) {
		case SolidU:
			if u.U > 0 {
				total += 1.0 / u.U
			}
		case CavityU:
			uval := u.C.UValue(tFront, tBack)
			if uval > 0 {
				total += 1.0 / uval
			}
		}
	}
	return total, nil
}
