// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sdf estimates continuous firing rates from spike rasters: a
peri-stimulus time histogram (PSTH) of mean spike counts per re-binned
time bin across replicates, and a spike density function (SDF) obtained
by convolving the PSTH with a symmetric (causal-agnostic) gaussian
smoothing kernel and scaling to spikes/second.

Both estimates are pure functions of their inputs, and both are linear
operators over rasters: estimating the sum of two raster sets gives the
sum of the individual estimates.
*/
package sdf

import (
	"github.com/emer/lnp/filterbank"
	"github.com/emer/lnp/kernels"
	"github.com/emer/lnp/spikes"
)

// Params are the spike density estimation parameters.
type Params struct {
	BinMs     float32 `def:"10" min:"0.1" desc:"re-binning bin size in milliseconds for the PSTH"`
	WidthMult float32 `def:"4" desc:"smoothing kernel width (gaussian sigma) as a multiple of the bin size"`
}

func (sp *Params) Defaults() {
	sp.BinMs = 10
	sp.WidthMult = 4
}

func (sp *Params) Update() {
	if sp.BinMs <= 0 {
		sp.BinMs = 10
	}
	if sp.WidthMult <= 0 {
		sp.WidthMult = 4
	}
}

// BinSamples returns the number of fine (sample-rate) bins per re-binned
// PSTH bin, minimum 1.
func (sp *Params) BinSamples(sampleRate float32) int {
	bs := int(sp.BinMs * 0.001 * sampleRate)
	if bs < 1 {
		bs = 1
	}
	return bs
}

// NBins returns the re-binned trial length for a trial of nt fine bins:
// any partial trailing bin is dropped.
func (sp *Params) NBins(nt int, sampleRate float32) int {
	return nt / sp.BinSamples(sampleRate)
}

// PSTH computes the peri-stimulus time histogram of the given raster:
// mean spike count per re-binned time bin, averaged across replicates.
func (sp *Params) PSTH(rst *spikes.Raster, sampleRate float32) []float32 {
	sp.Update()
	nr := rst.Dim(0)
	nt := rst.Dim(1)
	bs := sp.BinSamples(sampleRate)
	nb := nt / bs
	h := make([]float32, nb)
	if nr == 0 {
		return h
	}
	for ri := 0; ri < nr; ri++ {
		for bi := 0; bi < nb; bi++ {
			sum := float32(0)
			for j := bi * bs; j < (bi+1)*bs; j++ {
				sum += rst.Value([]int{ri, j})
			}
			h[bi] += sum
		}
	}
	for bi := range h {
		h[bi] /= float32(nr)
	}
	return h
}

// Density smooths the given PSTH with a unit-area gaussian kernel of
// sigma = WidthMult bins, and scales counts-per-bin to spikes/second.
// Output length equals the PSTH length.  If the PSTH is shorter than the
// kernel support, it is returned unsmoothed (scaled only).
func (sp *Params) Density(psth []float32, sampleRate float32) []float32 {
	sp.Update()
	binSecs := float32(sp.BinSamples(sampleRate)) / sampleRate
	kern := smoothKernel(sp.WidthMult)
	out, err := filterbank.Convolve(psth, kern)
	if err != nil { // short trial: scale without smoothing
		out = make([]float32, len(psth))
		copy(out, psth)
	}
	for i := range out {
		out[i] /= binSecs
	}
	return out
}

// Estimate computes both the PSTH and the smoothed density for one raster.
func (sp *Params) Estimate(rst *spikes.Raster, sampleRate float32) (psth, density []float32) {
	psth = sp.PSTH(rst, sampleRate)
	density = sp.Density(psth, sampleRate)
	return
}

// smoothKernel returns a unit-area gaussian smoothing kernel with the
// given sigma in bins.  Unit area conserves total spike count under
// smoothing, unlike the unit-peak normalization of the subunit kernels.
func smoothKernel(sigmaBins float32) []float32 {
	kp := kernels.Params{Shape: kernels.Gauss, Sigma: sigmaBins}
	k := kp.Kernel()
	sum := float32(0)
	for _, v := range k {
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}
