// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sdf

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/lnp/spikes"
)

const difTol = float32(1.0e-5)

func TestPSTHLength(t *testing.T) {
	sp := Params{}
	sp.Defaults() // 10 ms bins
	rst := etensor.NewFloat32([]int{5, 5000}, nil, []string{"Rep", "Time"})
	h := sp.PSTH(rst, 5000)
	if len(h) != 100 { // 5000 samples / 50 per bin
		t.Errorf("expected 100 bins, got %d", len(h))
	}
	d := sp.Density(h, 5000)
	if len(d) != len(h) {
		t.Errorf("density length %d != psth length %d", len(d), len(h))
	}
}

func TestPSTHMean(t *testing.T) {
	// 2 reps: one spike in every fine bin vs none -> mean count = binSamples/2
	sp := Params{BinMs: 10, WidthMult: 4}
	rst := etensor.NewFloat32([]int{2, 1000}, nil, []string{"Rep", "Time"})
	for ti := 0; ti < 1000; ti++ {
		rst.Set([]int{0, ti}, 1)
	}
	h := sp.PSTH(rst, 5000)
	want := float32(sp.BinSamples(5000)) / 2
	for bi, v := range h {
		if math32.Abs(v-want) > difTol {
			t.Errorf("bin %d: got %v, want %v", bi, v, want)
		}
	}
}

func TestDensityConstantRate(t *testing.T) {
	// flat psth of c counts/bin must give flat density c/binSecs in the
	// interior (edges are attenuated by zero padding)
	sp := Params{BinMs: 10, WidthMult: 4}
	nb := 200
	h := make([]float32, nb)
	for i := range h {
		h[i] = 0.2 // counts per 10 ms bin = 20 Hz
	}
	d := sp.Density(h, 5000)
	for bi := nb / 4; bi < 3*nb/4; bi++ {
		if math32.Abs(d[bi]-20) > 0.01 {
			t.Errorf("bin %d: density %v, want 20", bi, d[bi])
		}
	}
}

func TestLinearity(t *testing.T) {
	// smoothing the sum of two rasters equals the sum of smoothing each
	rnd := erand.NewSysRand(42)
	gen := spikes.Params{Reps: 8}
	rate := make([]float32, 2000)
	for i := range rate {
		rate[i] = 30
	}
	ra := gen.Gen(rate, 1.0/5000, rnd)
	rb := gen.Gen(rate, 1.0/5000, rnd)
	rsum := etensor.NewFloat32([]int{8, 2000}, nil, []string{"Rep", "Time"})
	for i := range rsum.Values {
		rsum.Values[i] = ra.Values[i] + rb.Values[i]
	}

	sp := Params{}
	sp.Defaults()
	_, da := sp.Estimate(ra, 5000)
	_, db := sp.Estimate(rb, 5000)
	_, dsum := sp.Estimate(rsum, 5000)
	for bi := range dsum {
		dif := math32.Abs(dsum[bi] - (da[bi] + db[bi]))
		if dif > 1.0e-2 {
			t.Errorf("bin %d: density not linear: %v vs %v", bi, dsum[bi], da[bi]+db[bi])
		}
	}
}
