// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package lnp is the overall repository for the LNP synthetic sensory neuron
simulator: a two-stage linear-nonlinear-Poisson (LN-LNP) cascade that turns
a stimulus ensemble into stochastic spike trains and smoothed firing-rate
estimates, packaged for downstream statistical analysis.

This top-level of the repository has no functional code -- everything is
organized into the following sub-packages:

* kernels: the catalog of temporal filter kernel shape primitives
(gaussian, gaussian-derivative, difference-of-gaussians, raised cosine,
alpha, and biphasic), realized as discrete FIR kernels.

* filterbank: per-neuron randomized realization of the kernel catalog from
filter specs, and the subunit stage: convolution of stimulus trials through
each kernel followed by half-wave rectification.

* spikes: inhomogeneous Poisson spike generation at the stimulus sample
resolution, producing repeated independent raster realizations per trial.

* sdf: peri-stimulus time histogram and smoothed spike density function
estimation from rasters.

* lnp: the core package tying the stages together: simulation context with
seedable random source, neuron type configs, per-instance parameter draws,
pooling and rate mapping, the ensemble orchestrator, and the blinded,
shuffled ensemble with its flattened matrix for external dimensionality
reduction.

* examples: compile into runnable programs; examples/lnpsim runs the full
batch pipeline over a synthetic noise stimulus ensemble and writes the
resulting tables as CSV files.
*/
package lnp
