// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"fmt"

	"github.com/emer/lnp/filterbank"
	"github.com/goki/mat32"
)

// Pool computes the pooled subunit drive for one trial: the weighted sum
// across all rectified subunit traces with signed pooling weights,
// followed by half-wave rectification of the sum.  Negative weights give
// push-pull tuning; the final rectification keeps the drive non-negative.
// Returns ErrDimension on mismatched trace lengths or weight count.
func Pool(resp [][]float32, wts []float32) ([]float32, error) {
	if len(resp) != len(wts) {
		return nil, fmt.Errorf("lnp.Pool: %d subunit traces vs %d weights: %w", len(resp), len(wts), filterbank.ErrDimension)
	}
	if len(resp) == 0 {
		return nil, fmt.Errorf("lnp.Pool: no subunit traces: %w", filterbank.ErrDimension)
	}
	nt := len(resp[0])
	pool := make([]float32, nt)
	for fi, r := range resp {
		if len(r) != nt {
			return nil, fmt.Errorf("lnp.Pool: subunit %d trace length %d != %d: %w", fi, len(r), nt, filterbank.ErrDimension)
		}
		w := wts[fi]
		for ti, v := range r {
			pool[ti] += w * v
		}
	}
	for ti, v := range pool {
		pool[ti] = mat32.Max(v, 0)
	}
	return pool, nil
}

// RateParams map the rectified pooled drive onto an instantaneous firing
// rate trace: rate(t) = Baseline + Mod * pool(t) / norm, where norm is
// NormRef if > 0, else the trial's own maximum pooled drive.  The
// normalization policy is identical for every neuron instance; a fixed
// NormRef makes rates comparable across trials as well as instances.
// Because pool(t) >= 0 and both rates are > 0, rate(t) >= Baseline > 0
// for all t.
type RateParams struct {

	// baseline firing rate in spikes/second, added to every time bin.
	Baseline float32 `def:"10" min:"0"`

	// stimulus-modulated firing rate in spikes/second at full drive.
	Mod float32 `def:"14" min:"0"`

	// fixed normalization reference for the pooled drive: 0 selects
	// per-trial maximum normalization.
	NormRef float32 `def:"0" min:"0"`
}

func (rp *RateParams) Defaults() {
	rp.Baseline = 10
	rp.Mod = 14
	rp.NormRef = 0
}

// Validate checks for positive rate parameters.
func (rp *RateParams) Validate() error {
	if rp.Baseline <= 0 {
		return fmt.Errorf("lnp.RateParams: baseline rate %g must be > 0: %w", rp.Baseline, filterbank.ErrConfig)
	}
	if rp.Mod <= 0 {
		return fmt.Errorf("lnp.RateParams: modulated rate %g must be > 0: %w", rp.Mod, filterbank.ErrConfig)
	}
	if rp.NormRef < 0 {
		return fmt.Errorf("lnp.RateParams: norm reference %g must be >= 0: %w", rp.NormRef, filterbank.ErrConfig)
	}
	return nil
}

// Norm returns the normalization constant for the given pooled drive:
// NormRef if configured, else the trace's own maximum.
// Returns 1 for an all-zero trace (rate stays at Baseline everywhere).
func (rp *RateParams) Norm(pool []float32) float32 {
	if rp.NormRef > 0 {
		return rp.NormRef
	}
	mx := float32(0)
	for _, v := range pool {
		if v > mx {
			mx = v
		}
	}
	if mx == 0 {
		return 1
	}
	return mx
}

// Rate maps the rectified pooled drive onto the instantaneous firing
// rate trace, in spikes/second.
func (rp *RateParams) Rate(pool []float32) []float32 {
	norm := rp.Norm(pool)
	rate := make([]float32, len(pool))
	for ti, v := range pool {
		rate[ti] = rp.Baseline + rp.Mod*v/norm
	}
	return rate
}
