// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"fmt"

	"github.com/emer/lnp/filterbank"
	"github.com/emer/lnp/kernels"
)

// TypeParams is a named neuron type archetype: one FilterSpec per catalog
// slot plus the rate mapping parameters.  It is an immutable template
// shared across many neuron instances: each instance independently draws
// its realized kernel widths and perturbs its rates, it never mutates
// the template.
type TypeParams struct {

	// name of this neuron type, e.g. "Sustained".
	Name string

	// filter catalog: one spec per slot.  The catalog size must be the
	// same for every type in a run.
	Filters []filterbank.FilterSpec

	// baseline + modulation rate mapping parameters.
	Rate RateParams
}

// Defaults configures the full default catalog: one slot per kernel
// shape, all enabled, alternating pooling weight signs, and default
// rate parameters.
func (tp *TypeParams) Defaults() {
	tp.Filters = make([]filterbank.FilterSpec, kernels.ShapesN)
	for si := range tp.Filters {
		fs := &tp.Filters[si]
		fs.Defaults()
		fs.Shape = kernels.Shapes(si)
		if si%2 == 1 {
			fs.Wt = -0.5
		}
	}
	tp.Rate.Defaults()
}

// Validate checks the type for a runnable configuration.
func (tp *TypeParams) Validate() error {
	if tp.Name == "" {
		return fmt.Errorf("lnp.TypeParams: type name must be set: %w", filterbank.ErrConfig)
	}
	if len(tp.Filters) == 0 {
		return fmt.Errorf("lnp.TypeParams %q: empty filter catalog: %w", tp.Name, filterbank.ErrConfig)
	}
	for si := range tp.Filters {
		if err := tp.Filters[si].Validate(); err != nil {
			return fmt.Errorf("lnp.TypeParams %q slot %d: %w", tp.Name, si, err)
		}
	}
	if err := tp.Rate.Validate(); err != nil {
		return fmt.Errorf("lnp.TypeParams %q: %w", tp.Name, err)
	}
	return nil
}
