// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/emer/lnp/filterbank"
)

const difTol = float32(1.0e-6)

func TestPoolNonNegative(t *testing.T) {
	resp := [][]float32{
		{1, 0, 2, 0, 3},
		{0, 4, 0, 0, 1},
		{2, 2, 2, 2, 2},
	}
	wts := []float32{1, -1, -0.4}
	pool, err := Pool(resp, wts)
	if err != nil {
		t.Fatal(err)
	}
	if len(pool) != 5 {
		t.Fatalf("pool length %d != 5", len(pool))
	}
	// hand-computed weighted sums: 0.2, -4.8, 1.2, -0.8, 1.2 -> rectified
	want := []float32{0.2, 0, 1.2, 0, 1.2}
	for ti := range pool {
		if math32.Abs(pool[ti]-want[ti]) > difTol {
			t.Errorf("pool[%d]: got %v, want %v", ti, pool[ti], want[ti])
		}
		if pool[ti] < 0 {
			t.Errorf("pool[%d] negative: %v", ti, pool[ti])
		}
	}
}

func TestPoolDimErrors(t *testing.T) {
	if _, err := Pool([][]float32{{1, 2}}, []float32{1, 2}); !errors.Is(err, filterbank.ErrDimension) {
		t.Errorf("weight count mismatch: expected ErrDimension, got %v", err)
	}
	if _, err := Pool([][]float32{{1, 2}, {1}}, []float32{1, 1}); !errors.Is(err, filterbank.ErrDimension) {
		t.Errorf("ragged traces: expected ErrDimension, got %v", err)
	}
}

func TestRateMapping(t *testing.T) {
	rp := RateParams{}
	rp.Defaults() // baseline 10, mod 14, per-trial max norm
	pool := []float32{0, 1, 2, 4}
	rate := rp.Rate(pool)
	want := []float32{10, 13.5, 17, 24} // 10 + 14*pool/4
	for ti := range rate {
		if math32.Abs(rate[ti]-want[ti]) > difTol {
			t.Errorf("rate[%d]: got %v, want %v", ti, rate[ti], want[ti])
		}
	}

	// all-zero drive: flat baseline
	rate = rp.Rate([]float32{0, 0, 0})
	for ti := range rate {
		if math32.Abs(rate[ti]-10) > difTol {
			t.Errorf("zero drive rate[%d]: got %v, want 10", ti, rate[ti])
		}
	}

	// fixed reference normalization
	rp.NormRef = 8
	rate = rp.Rate(pool)
	if math32.Abs(rate[3]-17) > difTol { // 10 + 14*4/8
		t.Errorf("fixed ref rate[3]: got %v, want 17", rate[3])
	}
}

func TestRateValidate(t *testing.T) {
	rp := RateParams{Baseline: 0, Mod: 14}
	if err := rp.Validate(); !errors.Is(err, filterbank.ErrConfig) {
		t.Errorf("zero baseline: expected ErrConfig, got %v", err)
	}
	rp = RateParams{Baseline: 10, Mod: -1}
	if err := rp.Validate(); !errors.Is(err, filterbank.ErrConfig) {
		t.Errorf("negative mod: expected ErrConfig, got %v", err)
	}
}
