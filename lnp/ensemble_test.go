// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"testing"

	"github.com/emer/lnp/filterbank"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noiseStim returns a gaussian white noise stimulus ensemble.
func noiseStim(ctx *Context, ntrials, nsamp int) *Stim {
	st := &Stim{SampleRate: ctx.SampleRate}
	st.TimeSecs = make([]float32, nsamp)
	for i := range st.TimeSecs {
		st.TimeSecs[i] = float32(i) * ctx.Dt
	}
	st.Trials = make([][]float32, ntrials)
	for ti := range st.Trials {
		trl := make([]float32, nsamp)
		for i := range trl {
			trl[i] = float32(ctx.Rand.NormFloat64(-1))
		}
		st.Trials[ti] = trl
	}
	return st
}

// testTypes returns three small neuron types with narrow kernels,
// suitable for fast tests.
func testTypes() []TypeParams {
	names := []string{"Sustained", "Transient", "PushPull"}
	types := make([]TypeParams, 3)
	for ti := range types {
		tp := &types[ti]
		tp.Defaults()
		tp.Name = names[ti]
		for si := range tp.Filters {
			tp.Filters[si].Width.Mean = 0.002
			tp.Filters[si].Width.Var = 0.0002
		}
	}
	return types
}

func TestEnsembleCounts(t *testing.T) {
	ctx := NewContext(42)
	stim := noiseStim(ctx, 2, 400)
	en := NewEnsemble(testTypes()...)
	en.Params.NNeurons = 20
	en.Params.Gen.Reps = 5
	require.NoError(t, en.Run(ctx, stim))

	assert.Equal(t, 60, len(en.Neurons))
	perType := map[string]int{}
	for _, nr := range en.Neurons {
		perType[nr.Type]++
	}
	for _, tp := range en.Types {
		assert.Equal(t, 20, perType[tp.Name], "type %s", tp.Name)
	}

	bl, err := en.Blind(ctx.Rand)
	require.NoError(t, err)
	assert.Equal(t, 58, bl.NMembers())
	assert.Equal(t, 2, bl.NDropped)

	// every instance used exactly once before the trim: the 58 retained
	// members must have 58 distinct sources
	seen := map[int]bool{}
	for _, be := range bl.Entries {
		assert.False(t, seen[be.src], "source %d repeated", be.src)
		seen[be.src] = true
	}
}

func TestBlindBeforeRun(t *testing.T) {
	ctx := NewContext(42)
	en := NewEnsemble(testTypes()...)
	_, err := en.Blind(ctx.Rand)
	assert.ErrorIs(t, err, filterbank.ErrConfig)
}

func TestFlattenRoundTrip(t *testing.T) {
	ctx := NewContext(42)
	stim := noiseStim(ctx, 3, 400)
	en := NewEnsemble(testTypes()...)
	en.Params.NNeurons = 4
	en.Params.Gen.Reps = 5
	require.NoError(t, en.Run(ctx, stim))
	bl, err := en.Blind(ctx.Rand)
	require.NoError(t, err)

	flat, err := bl.Flatten()
	require.NoError(t, err)
	ntr := bl.Entries[0].NTrials()
	nbin := len(bl.Entries[0].Densities[0])
	assert.Equal(t, bl.NMembers(), flat.Dim(0))
	assert.Equal(t, ntr*nbin, flat.Dim(1))

	tot := flat.Dim(1)
	for mi, be := range bl.Entries {
		back, err := Unflatten(flat.Values[mi*tot:(mi+1)*tot], ntr)
		require.NoError(t, err)
		assert.Equal(t, be.Densities, back, "member %d", mi)
	}
}

func TestRunFailureReportsInstance(t *testing.T) {
	ctx := NewContext(42)
	// trial shorter than kernel support: subunit stage must fail and the
	// error must identify the type
	stim := noiseStim(ctx, 1, 5)
	en := NewEnsemble(testTypes()...)
	en.Params.NNeurons = 2
	err := en.Run(ctx, stim)
	require.Error(t, err)
	assert.ErrorIs(t, err, filterbank.ErrDimension)
	assert.Contains(t, err.Error(), "Sustained")
	assert.Contains(t, err.Error(), "instance 0")
	assert.Nil(t, en.Neurons)
}

func TestRunDeterministic(t *testing.T) {
	run := func() []float32 {
		ctx := NewContext(99)
		stim := noiseStim(ctx, 1, 400)
		en := NewEnsemble(testTypes()...)
		en.Params.NNeurons = 1
		en.Params.Gen.Reps = 3
		if err := en.Run(ctx, stim); err != nil {
			t.Fatal(err)
		}
		return en.Neurons[0].Densities[0]
	}
	d1 := run()
	d2 := run()
	assert.Equal(t, d1, d2, "same seed must reproduce the full pipeline")
}
