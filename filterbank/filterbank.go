// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package filterbank realizes the subunit filter bank of an LNP neuron from
a fixed catalog of filter specs, and computes the subunit responses:
convolution of each stimulus trial through each realized kernel followed
by half-wave rectification.

The catalog size is constant across all neuron instances of all types:
disabled slots still occupy a catalog position, they just contribute no
kernel and zero weight.  Each Build call independently draws the kernel
width for every enabled slot from the configured distribution, so distinct
neuron instances built from the same specs have distinct kernels.
*/
package filterbank

import (
	"fmt"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/lnp/kernels"
	"github.com/goki/mat32"
)

// FilterSpec configures one catalog slot of the subunit filter bank.
// Widths are in seconds and are converted to sample counts at build time.
type FilterSpec struct {
	On    bool            `desc:"enable this catalog slot -- disabled slots contribute no kernel and zero weight but still occupy their slot"`
	Shape kernels.Shapes  `desc:"temporal kernel shape primitive for this slot"`
	Width erand.RndParams `desc:"distribution of kernel width in seconds: Mean is the center, Var the spread -- Var = 0 degenerates to exactly Mean (no randomness)"`
	Wt    float32         `desc:"signed pooling weight: negative weights give push-pull tuning against positively weighted subunits"`
}

func (fs *FilterSpec) Defaults() {
	fs.On = true
	fs.Shape = kernels.Gauss
	fs.Width.Dist = erand.Gaussian
	fs.Width.Mean = 0.02
	fs.Width.Var = 0.005
	fs.Wt = 1
}

// Validate checks the filter spec for a buildable configuration.
// Disabled slots are always valid.
func (fs *FilterSpec) Validate() error {
	if !fs.On {
		return nil
	}
	if fs.Shape < 0 || fs.Shape >= kernels.ShapesN {
		return fmt.Errorf("filterbank.FilterSpec: unknown shape %d: %w", fs.Shape, ErrConfig)
	}
	if fs.Width.Mean <= 0 {
		return fmt.Errorf("filterbank.FilterSpec: width center %g must be > 0: %w", fs.Width.Mean, ErrConfig)
	}
	if fs.Width.Var < 0 {
		return fmt.Errorf("filterbank.FilterSpec: width spread %g must be >= 0: %w", fs.Width.Var, ErrDistribution)
	}
	return nil
}

// Bank is one realized subunit filter bank: the discrete kernels and
// pooling weights for every enabled catalog slot, in slot order.
type Bank struct {
	SampleRate float32     `desc:"sample rate (Hz) the kernels were realized at"`
	Kernels    [][]float32 `desc:"discrete FIR kernel per enabled slot"`
	Wts        []float32   `desc:"signed pooling weight per enabled slot"`
	Widths     []float32   `desc:"realized kernel width in seconds per enabled slot, as drawn from the spec distribution"`
	Slots      []int       `desc:"catalog slot index per enabled slot, for traceability back to the spec"`
}

// NFilters returns the number of realized (enabled) filters.
func (bk *Bank) NFilters() int {
	return len(bk.Kernels)
}

// Build realizes a filter bank from the given catalog of specs, drawing
// each enabled slot's kernel width from its configured distribution using
// the given random source.  Draws at or below zero are clamped to the
// minimum one-sample support by the kernel realization.
// Returns ErrConfig if no slot is enabled or the sample rate is invalid,
// and passes through per-spec validation errors.
func Build(specs []FilterSpec, sampleRate float32, rnd erand.Rand) (*Bank, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("filterbank.Build: sample rate %g must be > 0: %w", sampleRate, ErrConfig)
	}
	bk := &Bank{SampleRate: sampleRate}
	for si := range specs {
		fs := &specs[si]
		if err := fs.Validate(); err != nil {
			return nil, fmt.Errorf("slot %d: %w", si, err)
		}
		if !fs.On {
			continue
		}
		w := float32(fs.Width.Gen(-1, rnd))
		bk.Kernels = append(bk.Kernels, kernels.Discrete(fs.Shape, w, sampleRate))
		bk.Wts = append(bk.Wts, fs.Wt)
		bk.Widths = append(bk.Widths, w)
		bk.Slots = append(bk.Slots, si)
	}
	if bk.NFilters() == 0 {
		return nil, fmt.Errorf("filterbank.Build: no enabled slots in catalog of %d: %w", len(specs), ErrConfig)
	}
	return bk, nil
}

// Convolve computes the same-length symmetric (centered, zero-padded)
// convolution of sig with kern, in cross-correlation orientation (the
// kernel is not flipped -- identical for the even-symmetric shapes).
// Returns ErrDimension if the signal is shorter than the kernel support.
func Convolve(sig, kern []float32) ([]float32, error) {
	if len(kern) == 0 {
		return nil, fmt.Errorf("filterbank.Convolve: empty kernel: %w", ErrDimension)
	}
	if len(sig) < len(kern) {
		return nil, fmt.Errorf("filterbank.Convolve: trial length %d < kernel support %d: %w", len(sig), len(kern), ErrDimension)
	}
	half := len(kern) / 2
	out := make([]float32, len(sig))
	for i := range sig {
		sum := float32(0)
		for j, kv := range kern {
			si := i + j - half
			if si < 0 || si >= len(sig) {
				continue
			}
			sum += kv * sig[si]
		}
		out[i] = sum
	}
	return out, nil
}

// ConvolveRect is Convolve followed by point-wise half-wave rectification
// max(x, 0): the subunit nonlinearity.
func ConvolveRect(sig, kern []float32) ([]float32, error) {
	out, err := Convolve(sig, kern)
	if err != nil {
		return nil, err
	}
	for i, v := range out {
		out[i] = mat32.Max(v, 0)
	}
	return out, nil
}

// Respond computes the rectified subunit response of every filter in the
// bank to the given stimulus trial.  Zero-weight filters still convolve
// and rectify: the pooling stage handles the weighting.
func (bk *Bank) Respond(sig []float32) ([][]float32, error) {
	resp := make([][]float32, bk.NFilters())
	for fi, kern := range bk.Kernels {
		r, err := ConvolveRect(sig, kern)
		if err != nil {
			return nil, fmt.Errorf("filter %d (slot %d): %w", fi, bk.Slots[fi], err)
		}
		resp[fi] = r
	}
	return resp, nil
}
