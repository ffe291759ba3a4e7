// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package discretize

import "github.com/cpmech/gosl/la"

// ChunkMemory is the explicit pre-allocated scratch handle threaded
// through every GetKQ/march call for one chunk: K and Q are resized (not
// reallocated) up to their largest-ever chunk size and reused from then
// on, mirroring ele/diffusion/diffusion.go's struct-resident Ustar/Xip/
// Gradu/Wvec/Tmp/K scratch allocated once in Init and mutated in place on
// every subsequent call. K1..K4 and TempScratch are the RK4 stepper's own
// buffers (package surface), and ThomasA..ThomasD are the massless
// tri-diagonal solver's own buffers, carried here so a single handle
// travels through discretization and both marching paths without
// allocating in the per-sub-step hot loop.
type ChunkMemory struct {
	K                                  [][]float64
	Q                                  []float64
	K1, K2, K3, K4, TempScratch        []float64
	ThomasA, ThomasB, ThomasC, ThomasD []float64
	cap                                int
}

// NewChunkMemory allocates a handle sized for an n-node chunk up front;
// Resize grows it later only if a larger chunk is ever encountered.
func NewChunkMemory(n int) *ChunkMemory {
	m := &ChunkMemory{}
	m.Resize(n)
	return m
}

// Resize ensures the handle's buffers can hold an n-node chunk, growing
// (never shrinking) the underlying allocation. Existing contents are not
// preserved across a grow.
func (m *ChunkMemory) Resize(n int) {
	if n <= m.cap && m.K != nil {
		m.K = m.K[:n]
		for i := range m.K {
			m.K[i] = m.K[i][:n]
		}
		m.Q = m.Q[:n]
		m.K1 = m.K1[:n]
		m.K2 = m.K2[:n]
		m.K3 = m.K3[:n]
		m.K4 = m.K4[:n]
		m.TempScratch = m.TempScratch[:n]
		m.ThomasA = m.ThomasA[:n]
		m.ThomasB = m.ThomasB[:n]
		m.ThomasC = m.ThomasC[:n]
		m.ThomasD = m.ThomasD[:n]
		return
	}
	m.cap = n
	m.K = la.MatAlloc(n, n)
	m.Q = make([]float64, n)
	m.K1 = make([]float64, n)
	m.K2 = make([]float64, n)
	m.K3 = make([]float64, n)
	m.K4 = make([]float64, n)
	m.TempScratch = make([]float64, n)
	m.ThomasA = make([]float64, n)
	m.ThomasB = make([]float64, n)
	m.ThomasC = make([]float64, n)
	m.ThomasD = make([]float64, n)
}
