// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package kernels provides the catalog of temporal filter kernel shape
primitives used by the subunit filter bank, realized as discrete FIR
kernels at a given width.

Symmetric shapes (Gauss, GaussDeriv, DoG, RaisedCos) are supported over
+-3 sigma around zero; causal shapes (Alpha, Biphasic) are supported over
[0, 6 tau].  All kernels are normalized to unit peak absolute value, so
that subunit response amplitudes depend only on the stimulus and the
pooling weights, not on kernel width.
*/
package kernels

import (
	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
)

// Shapes are the temporal kernel shape primitives available to the
// filter catalog.
type Shapes int32

//go:generate stringer -type=Shapes

var KiT_Shapes = kit.Enums.AddEnum(ShapesN, kit.NotBitFlag, nil)

func (ev Shapes) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Shapes) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The kernel shapes
const (
	// Gauss is a symmetric gaussian envelope, a pure smoothing / bandpass kernel
	Gauss Shapes = iota

	// GaussDeriv is the first derivative of a gaussian, an odd-symmetric
	// edge / transient detector
	GaussDeriv

	// DoG is a difference-of-gaussians (center minus broader surround),
	// an even-symmetric bandpass kernel
	DoG

	// RaisedCos is a raised cosine bump, a compact-support smoothing kernel
	RaisedCos

	// Alpha is a causal alpha function (t/tau) exp(1 - t/tau), a monophasic
	// delayed-integration kernel
	Alpha

	// Biphasic is a causal damped sinusoid, a push-pull transient kernel
	Biphasic

	ShapesN
)

// Params specifies one temporal kernel primitive: its shape and its
// width (sigma for the symmetric shapes, tau for the causal ones),
// in units of samples.  Use Discrete for second-based widths.
type Params struct {
	Shape Shapes  `desc:"which shape primitive to realize"`
	Sigma float32 `min:"0.5" desc:"kernel width in samples: sigma for symmetric shapes, tau for causal ones -- values below 0.5 are clamped to 0.5 so every kernel has at least one sample of support"`
}

func (kp *Params) Defaults() {
	kp.Shape = Gauss
	kp.Sigma = 10
}

func (kp *Params) Update() {
	if kp.Sigma < 0.5 {
		kp.Sigma = 0.5
	}
}

// NSamples returns the discrete support length for the current shape
// and width: 2*ceil(3 sigma)+1 for symmetric shapes, ceil(6 tau)+1
// for causal ones.
func (kp *Params) NSamples() int {
	if kp.Shape == Alpha || kp.Shape == Biphasic {
		return int(math32.Ceil(6*kp.Sigma)) + 1
	}
	return 2*int(math32.Ceil(3*kp.Sigma)) + 1
}

// Kernel realizes the discrete kernel over its full support,
// normalized to unit peak absolute value.
func (kp *Params) Kernel() []float32 {
	kp.Update()
	sig := kp.Sigma
	n := kp.NSamples()
	k := make([]float32, n)
	switch kp.Shape {
	case Gauss:
		half := (n - 1) / 2
		for i := range k {
			t := float32(i - half)
			k[i] = math32.Exp(-(t * t) / (2 * sig * sig))
		}
	case GaussDeriv:
		half := (n - 1) / 2
		for i := range k {
			t := float32(i - half)
			k[i] = -t / (sig * sig) * math32.Exp(-(t*t)/(2*sig*sig))
		}
	case DoG:
		half := (n - 1) / 2
		ssig := 1.6 * sig // standard surround ratio
		for i := range k {
			t := float32(i - half)
			ctr := math32.Exp(-(t * t) / (2 * sig * sig))
			sur := math32.Exp(-(t * t) / (2 * ssig * ssig))
			k[i] = ctr - 0.7*sur
		}
	case RaisedCos:
		half := (n - 1) / 2
		for i := range k {
			t := float32(i - half)
			k[i] = 0.5 * (1 + math32.Cos(math32.Pi*t/float32(half+1)))
		}
	case Alpha:
		for i := range k {
			t := float32(i) / sig
			k[i] = t * math32.Exp(1-t)
		}
	case Biphasic:
		for i := range k {
			t := float32(i) / sig
			k[i] = math32.Sin(math32.Pi*t/3) * math32.Exp(-t/3)
		}
	}
	normPeak(k)
	return k
}

// Discrete realizes a kernel of given shape with width in seconds,
// converted to samples at the given sample rate (Hz).
func Discrete(shape Shapes, widthSecs, sampleRate float32) []float32 {
	kp := Params{Shape: shape, Sigma: widthSecs * sampleRate}
	return kp.Kernel()
}

// normPeak scales the kernel in place to unit peak absolute value.
// No-op for an all-zero kernel.
func normPeak(k []float32) {
	mx := float32(0)
	for _, v := range k {
		av := math32.Abs(v)
		if av > mx {
			mx = av
		}
	}
	if mx == 0 {
		return
	}
	for i := range k {
		k[i] /= mx
	}
}
