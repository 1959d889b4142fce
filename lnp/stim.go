// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"fmt"

	"github.com/emer/lnp/filterbank"
)

// Stim is the stimulus ensemble: an ordered sequence of trial time
// series at a common sample rate, plus the time axis of the longest
// trial.  It is produced by an external stimulus provider and treated
// as opaque read-only input, shared by every neuron instance.
type Stim struct {

	// sample rate in Hz.
	SampleRate float32

	// time axis in seconds, one value per sample of the longest trial.
	TimeSecs []float32

	// trial time series, in trial order.
	Trials [][]float32
}

// NTrials returns the number of stimulus trials.
func (st *Stim) NTrials() int {
	return len(st.Trials)
}

// Validate checks that the ensemble is usable as pipeline input.
func (st *Stim) Validate() error {
	if st.SampleRate <= 0 {
		return fmt.Errorf("lnp.Stim: sample rate %g must be > 0: %w", st.SampleRate, filterbank.ErrConfig)
	}
	if len(st.Trials) == 0 {
		return fmt.Errorf("lnp.Stim: no trials: %w", filterbank.ErrConfig)
	}
	mx := 0
	for ti, trl := range st.Trials {
		if len(trl) == 0 {
			return fmt.Errorf("lnp.Stim: trial %d is empty: %w", ti, filterbank.ErrDimension)
		}
		if len(trl) > mx {
			mx = len(trl)
		}
	}
	if len(st.TimeSecs) > 0 && len(st.TimeSecs) < mx {
		return fmt.Errorf("lnp.Stim: time axis length %d < longest trial %d: %w", len(st.TimeSecs), mx, filterbank.ErrDimension)
	}
	return nil
}

// Downsample returns the stimulus trials downsampled by the given factor
// (taking the mean over each factor-sized window, partial trailing
// windows dropped) and concatenated end-to-end across trials: the
// stimulus vector matching a flattened ensemble density matrix.
func (st *Stim) Downsample(factor int) []float32 {
	if factor < 1 {
		factor = 1
	}
	var out []float32
	for _, trl := range st.Trials {
		nb := len(trl) / factor
		for bi := 0; bi < nb; bi++ {
			sum := float32(0)
			for j := bi * factor; j < (bi+1)*factor; j++ {
				sum += trl[j]
			}
			out = append(out, sum/float32(factor))
		}
	}
	return out
}

// DownsampleTime returns the time axis downsampled by the given factor
// (first time point of each window), repeated per trial to match
// Downsample output ordering.
func (st *Stim) DownsampleTime(factor int) []float32 {
	if factor < 1 {
		factor = 1
	}
	var out []float32
	for _, trl := range st.Trials {
		nb := len(trl) / factor
		for bi := 0; bi < nb; bi++ {
			si := bi * factor
			if si < len(st.TimeSecs) {
				out = append(out, st.TimeSecs[si])
			} else {
				out = append(out, float32(si)/st.SampleRate)
			}
		}
	}
	return out
}
