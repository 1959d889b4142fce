// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package spikes generates stochastic spike trains from an instantaneous
firing rate trace, as a time-inhomogeneous Poisson process discretized
at the stimulus sample resolution: within each fine time bin a spike is
emitted with probability rate(t) * dt, with an independent draw per bin
per replicate.

Generation is a stateless transform: with identical inputs, randomness is
the only source of variation between calls, and replicate realizations
are statistically independent given the same rate trace.
*/
package spikes

import (
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/etensor"
)

// Raster is one trial's set of replicate spike trains, as a
// Rep x Time binary matrix at the stimulus sample resolution.
type Raster = etensor.Float32

// RasterSet collects the rasters for all trials of one neuron instance.
type RasterSet []*Raster

// Params are the spike generation parameters.
type Params struct {
	Reps int `def:"50" min:"1" desc:"number of independent replicate spike-train realizations per trial"`
}

func (sp *Params) Defaults() {
	sp.Reps = 50
}

func (sp *Params) Update() {
	if sp.Reps < 1 {
		sp.Reps = 1
	}
}

// Gen generates Reps independent spike-train realizations for the given
// rate trace (spikes/second) sampled at time step dt (seconds), using the
// given random source.  Returns a Reps x len(rate) binary matrix.
// Spike probabilities rate(t)*dt are clamped to [0, 1]: callers should
// keep rates well below 1/dt for an accurate Poisson approximation.
func (sp *Params) Gen(rate []float32, dt float32, rnd erand.Rand) *Raster {
	sp.Update()
	nt := len(rate)
	rst := etensor.NewFloat32([]int{sp.Reps, nt}, nil, []string{"Rep", "Time"})
	for ri := 0; ri < sp.Reps; ri++ {
		for ti := 0; ti < nt; ti++ {
			p := float64(rate[ti] * dt)
			if p > 1 {
				p = 1
			}
			if p > 0 && rnd.Float64(-1) < p {
				rst.Set([]int{ri, ti}, 1)
			}
		}
	}
	return rst
}

// Count returns the total spike count for the given replicate row.
func Count(rst *Raster, rep int) int {
	nt := rst.Dim(1)
	n := 0
	for ti := 0; ti < nt; ti++ {
		if rst.Value([]int{rep, ti}) > 0 {
			n++
		}
	}
	return n
}

// MeanCount returns the mean total spike count across replicates.
func MeanCount(rst *Raster) float32 {
	nr := rst.Dim(0)
	if nr == 0 {
		return 0
	}
	sum := 0
	for ri := 0; ri < nr; ri++ {
		sum += Count(rst, ri)
	}
	return float32(sum) / float32(nr)
}
