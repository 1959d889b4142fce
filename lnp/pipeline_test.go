// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/lnp/filterbank"
	"github.com/emer/lnp/kernels"
)

// TestEndToEnd runs the reference single-neuron scenario: 1 trial of
// 5000 samples at 5000 Hz, one type with a single enabled gaussian
// filter (center 0.02s, zero spread, weight 1), baseline 10, mod 14,
// 50 replicates.
func TestEndToEnd(t *testing.T) {
	ctx := NewContext(42)
	stim := noiseStim(ctx, 1, 5000)

	tp := TypeParams{Name: "Single"}
	tp.Filters = make([]filterbank.FilterSpec, 1)
	fs := &tp.Filters[0]
	fs.Defaults()
	fs.Shape = kernels.Gauss
	fs.Width.Mean = 0.02
	fs.Width.Var = 0
	fs.Wt = 1
	tp.Rate.Defaults()

	en := NewEnsemble(tp)
	en.Params.NNeurons = 1
	en.Params.Gen.Reps = 50
	if err := en.Run(ctx, stim); err != nil {
		t.Fatal(err)
	}
	nr := en.Neurons[0]

	// raster must be a 50 x 5000 binary matrix
	rst := nr.Rasters[0]
	if rst.Dim(0) != 50 || rst.Dim(1) != 5000 {
		t.Fatalf("expected 50 x 5000 raster, got %d x %d", rst.Dim(0), rst.Dim(1))
	}
	for _, v := range rst.Values {
		if v != 0 && v != 1 {
			t.Fatalf("raster not binary: %v", v)
		}
	}

	// mean total count across replicates should match the integral of
	// the deterministic rate trace
	want := float32(0)
	for _, r := range nr.Rates[0] {
		want += r * ctx.Dt
	}
	mean := float32(0)
	for ri := 0; ri < 50; ri++ {
		cnt := float32(0)
		for ti := 0; ti < 5000; ti++ {
			cnt += rst.Value([]int{ri, ti})
		}
		mean += cnt
	}
	mean /= 50
	if math32.Abs(mean-want) > 3 {
		t.Errorf("mean count %v too far from rate integral %v", mean, want)
	}

	// the smoothed density must track the shape of the deterministic
	// rate trace: positive correlation well above chance
	bs := en.Params.Est.BinSamples(ctx.SampleRate)
	nb := len(nr.Densities[0])
	binSecs := float32(bs) / ctx.SampleRate
	expCounts := make([]float32, nb) // expected spike count per bin per rep
	for bi := 0; bi < nb; bi++ {
		sum := float32(0)
		for j := bi * bs; j < (bi+1)*bs; j++ {
			sum += nr.Rates[0][j]
		}
		expCounts[bi] = (sum / float32(bs)) * binSecs
	}
	expDensity := en.Params.Est.Density(expCounts, ctx.SampleRate)
	r := corr(expDensity, nr.Densities[0])
	if r < 0.5 {
		t.Errorf("density/rate correlation %v too low", r)
	}
}

// corr returns the Pearson correlation of two equal-length traces.
func corr(a, b []float32) float32 {
	n := len(a)
	var ma, mb float32
	for i := 0; i < n; i++ {
		ma += a[i]
		mb += b[i]
	}
	ma /= float32(n)
	mb /= float32(n)
	var sab, saa, sbb float32
	for i := 0; i < n; i++ {
		da := a[i] - ma
		db := b[i] - mb
		sab += da * db
		saa += da * da
		sbb += db * db
	}
	if saa == 0 || sbb == 0 {
		return 0
	}
	return sab / math32.Sqrt(saa*sbb)
}
