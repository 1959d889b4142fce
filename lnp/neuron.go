// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"fmt"

	"github.com/emer/lnp/filterbank"
	"github.com/emer/lnp/sdf"
	"github.com/emer/lnp/spikes"
)

// Neuron is one concrete neuron instance drawn from a TypeParams
// template: its realized filter bank, its perturbed rate parameters, and
// all the derived response data the pipeline stages populate.  Instances
// are created once per (type, replicate) pair at simulation start and
// persist to the end of the run for aggregation.
type Neuron struct {

	// name of the type this instance was drawn from.
	Type string

	// instance index within its type.
	Index int

	// realized subunit filter bank, independently drawn per instance.
	Bank *filterbank.Bank

	// rate parameters: the template values independently perturbed
	// by up to +-10 percent per instance.
	Rate RateParams

	// rectified pooled drive trace, one per stimulus trial.
	Pools [][]float32

	// instantaneous firing rate trace (spikes/sec), one per trial.
	Rates [][]float32

	// spike rasters (Rep x Time binary matrices), one per trial.
	Rasters spikes.RasterSet

	// peri-stimulus time histograms, one per trial.
	PSTHs [][]float32

	// smoothed spike density traces (spikes/sec), one per trial.
	Densities [][]float32
}

// perturb returns v scaled by an independent uniform factor in
// [1-frac, 1+frac].
func perturb(ctx *Context, v, frac float32) float32 {
	return v * (1 - frac + 2*frac*float32(ctx.Rand.Float64(-1)))
}

// Build realizes this instance from the given type template: draws the
// filter bank kernels from the configured distributions and perturbs the
// baseline and modulated rates by +-10 percent, each with an independent
// draw.  The template itself is never modified.
func (nr *Neuron) Build(ctx *Context, tp *TypeParams, idx int) error {
	if err := tp.Validate(); err != nil {
		return err
	}
	nr.Type = tp.Name
	nr.Index = idx
	bk, err := filterbank.Build(tp.Filters, ctx.SampleRate, ctx.Rand)
	if err != nil {
		return fmt.Errorf("lnp: type %q instance %d: build: %w", tp.Name, idx, err)
	}
	nr.Bank = bk
	nr.Rate = tp.Rate
	nr.Rate.Baseline = perturb(ctx, tp.Rate.Baseline, 0.1)
	nr.Rate.Mod = perturb(ctx, tp.Rate.Mod, 0.1)
	return nil
}

// Run computes the full response pipeline for this instance over every
// stimulus trial: subunit convolution + rectification, pooling, rate
// mapping, spike generation, and density estimation.  All derived fields
// are populated on completion; on error nothing past the failing trial
// is populated and the error identifies the stage, type, and instance.
func (nr *Neuron) Run(ctx *Context, stim *Stim, gen *spikes.Params, est *sdf.Params) error {
	if nr.Bank == nil {
		return fmt.Errorf("lnp: type %q instance %d: Run before Build: %w", nr.Type, nr.Index, filterbank.ErrConfig)
	}
	ntr := stim.NTrials()
	nr.Pools = make([][]float32, ntr)
	nr.Rates = make([][]float32, ntr)
	nr.Rasters = make(spikes.RasterSet, ntr)
	nr.PSTHs = make([][]float32, ntr)
	nr.Densities = make([][]float32, ntr)
	for ti, trl := range stim.Trials {
		resp, err := nr.Bank.Respond(trl)
		if err != nil {
			return fmt.Errorf("lnp: type %q instance %d trial %d: subunit: %w", nr.Type, nr.Index, ti, err)
		}
		pool, err := Pool(resp, nr.Bank.Wts)
		if err != nil {
			return fmt.Errorf("lnp: type %q instance %d trial %d: pooling: %w", nr.Type, nr.Index, ti, err)
		}
		nr.Pools[ti] = pool
		nr.Rates[ti] = nr.Rate.Rate(pool)
		nr.Rasters[ti] = gen.Gen(nr.Rates[ti], ctx.Dt, ctx.Rand)
		nr.PSTHs[ti], nr.Densities[ti] = est.Estimate(nr.Rasters[ti], ctx.SampleRate)
	}
	return nil
}
