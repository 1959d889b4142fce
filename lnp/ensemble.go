// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"fmt"

	"github.com/emer/lnp/filterbank"
	"github.com/emer/lnp/sdf"
	"github.com/emer/lnp/spikes"
)

// Params are the ensemble orchestration parameters.
type Params struct {

	// number of neuron instances per type.
	NNeurons int `def:"20" min:"1"`

	// number of entries dropped from the end of the final shuffled
	// ensemble (the blinding trim).
	Trim int `def:"2" min:"0"`

	// spike generation parameters (replicates per trial).
	Gen spikes.Params `view:"inline"`

	// spike density estimation parameters.
	Est sdf.Params `view:"inline"`
}

func (pr *Params) Defaults() {
	pr.NNeurons = 20
	pr.Trim = 2
	pr.Gen.Defaults()
	pr.Est.Defaults()
}

// Ensemble drives the full simulation: many neuron instances across a
// fixed set of named types, run sequentially through the LN-LNP pipeline
// over a shared stimulus ensemble, then shuffled and relabeled into the
// blinded ensemble.  Instances are read-independent once the stimulus is
// built, so a caller may run them in parallel with per-instance random
// sources; the reference orchestration here is sequential.
type Ensemble struct {

	// orchestration parameters.
	Params Params

	// the named neuron type templates.
	Types []TypeParams

	// all neuron instances, grouped by type: instance i of type ti is
	// at index ti*Params.NNeurons + i.
	Neurons []*Neuron

	// the blinded ensemble, built by Blind after a Run.
	Blinded *Blinded
}

// NewEnsemble returns a new Ensemble over the given types, with default
// parameters.
func NewEnsemble(types ...TypeParams) *Ensemble {
	en := &Ensemble{Types: types}
	en.Params.Defaults()
	return en
}

// TypeNeuron returns instance i of type ti.  Valid only after Run.
func (en *Ensemble) TypeNeuron(ti, i int) *Neuron {
	return en.Neurons[ti*en.Params.NNeurons+i]
}

// Validate checks the ensemble configuration, including the invariant
// that every type has the same filter catalog size.
func (en *Ensemble) Validate() error {
	if len(en.Types) == 0 {
		return fmt.Errorf("lnp.Ensemble: no neuron types: %w", filterbank.ErrConfig)
	}
	if en.Params.NNeurons < 1 {
		return fmt.Errorf("lnp.Ensemble: NNeurons %d must be >= 1: %w", en.Params.NNeurons, filterbank.ErrConfig)
	}
	ncat := len(en.Types[0].Filters)
	for ti := range en.Types {
		tp := &en.Types[ti]
		if err := tp.Validate(); err != nil {
			return err
		}
		if len(tp.Filters) != ncat {
			return fmt.Errorf("lnp.Ensemble: type %q catalog size %d != %d: %w", tp.Name, len(tp.Filters), ncat, filterbank.ErrConfig)
		}
	}
	return nil
}

// Run builds and runs every neuron instance of every type over the given
// stimulus ensemble, sequentially.  On any instance failure it aborts
// and returns an error identifying the failing type and instance index;
// no partially-run instance is retained.
func (en *Ensemble) Run(ctx *Context, stim *Stim) error {
	if err := en.Validate(); err != nil {
		return err
	}
	if err := stim.Validate(); err != nil {
		return err
	}
	nn := en.Params.NNeurons
	en.Neurons = make([]*Neuron, 0, len(en.Types)*nn)
	en.Blinded = nil
	for ti := range en.Types {
		tp := &en.Types[ti]
		for i := 0; i < nn; i++ {
			nr := &Neuron{}
			if err := nr.Build(ctx, tp, i); err != nil {
				en.Neurons = nil
				return err
			}
			if err := nr.Run(ctx, stim, &en.Params.Gen, &en.Params.Est); err != nil {
				en.Neurons = nil
				return err
			}
			en.Neurons = append(en.Neurons, nr)
		}
	}
	return nil
}
