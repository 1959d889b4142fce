// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import "github.com/emer/emergent/v2/erand"

// Context holds the shared state for one simulation run: the stimulus
// time resolution and the seedable random source threaded through filter
// bank building, rate perturbation, spike generation, and ensemble
// shuffling.  There is no hidden process-wide state: every stage that
// draws randomness takes its source from here (or from an explicitly
// provided replacement, e.g. for parallel runs).
type Context struct {

	// sample rate of the stimulus ensemble, in Hz.
	SampleRate float32 `def:"5000"`

	// duration of one fine time bin in seconds = 1 / SampleRate.
	Dt float32 `inactive:"+"`

	// random seed the Rand source was last initialized with.
	RndSeed int64 `inactive:"+"`

	// random source for all stochastic stages of this run.
	Rand *erand.SysRand `view:"-"`
}

// NewContext returns a new Context with default parameters, seeded with
// the given random seed.
func NewContext(seed int64) *Context {
	ctx := &Context{}
	ctx.Defaults()
	ctx.SetRndSeed(seed)
	return ctx
}

// Defaults sets default parameter values.
func (ctx *Context) Defaults() {
	ctx.SampleRate = 5000
	ctx.Update()
}

// Update must be called after any changes to parameters.
func (ctx *Context) Update() {
	if ctx.SampleRate > 0 {
		ctx.Dt = 1 / ctx.SampleRate
	}
}

// SetRndSeed sets a new random seed, re-initializing the random source,
// for reproducible runs.
func (ctx *Context) SetRndSeed(seed int64) {
	ctx.RndSeed = seed
	ctx.Rand = erand.NewSysRand(seed)
}
