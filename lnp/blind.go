// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"fmt"

	"github.com/emer/emergent/v2/erand"
	"github.com/emer/etable/v2/etensor"
	"github.com/emer/lnp/filterbank"
)

// BlindEntry is one relabeled member of the blinded ensemble: the
// smoothed density traces of one neuron instance with its type identity
// stripped.  The source instance is retained only via internal indexing
// for scoring a downstream analysis, never exposed in the data.
type BlindEntry struct {

	// smoothed spike density trace per stimulus trial.
	Densities [][]float32

	// index of the source instance in Ensemble.Neurons.
	src int
}

// NTrials returns the number of per-trial traces in this entry.
func (be *BlindEntry) NTrials() int {
	return len(be.Densities)
}

// Blinded is the relabeled, order-shuffled ensemble of per-neuron
// density records used as the ground-truth-hidden dataset for
// downstream analysis.
type Blinded struct {

	// the shuffled, trimmed members.
	Entries []*BlindEntry

	// number of entries dropped from the end after the second shuffle.
	NDropped int
}

// NMembers returns the number of members in the blinded ensemble.
func (bl *Blinded) NMembers() int {
	return len(bl.Entries)
}

// Blind builds the blinded ensemble from the run results: each instance
// of each type is assigned a uniformly random position via a permuted
// type-tag sequence consumed against per-type queues (every instance
// used exactly once, in order within its type), the flat collection is
// then fully permuted a second time, and the last Params.Trim entries
// are dropped.  The result is stored on the Ensemble and returned.
func (en *Ensemble) Blind(rnd erand.Rand) (*Blinded, error) {
	nn := en.Params.NNeurons
	n := len(en.Types) * nn
	if len(en.Neurons) != n {
		return nil, fmt.Errorf("lnp.Blind: have %d neurons, expected %d: run first: %w", len(en.Neurons), n, filterbank.ErrConfig)
	}
	if en.Params.Trim >= n {
		return nil, fmt.Errorf("lnp.Blind: trim %d >= ensemble size %d: %w", en.Params.Trim, n, filterbank.ErrConfig)
	}

	// first pass: random type at each position, consuming each type's
	// instances in queue order
	tags := make([]int, 0, n)
	for ti := range en.Types {
		for i := 0; i < nn; i++ {
			tags = append(tags, ti)
		}
	}
	erand.PermuteInts(tags, rnd)
	next := make([]int, len(en.Types))
	flat := make([]*BlindEntry, n)
	for pi, ti := range tags {
		nr := en.TypeNeuron(ti, next[ti])
		flat[pi] = &BlindEntry{Densities: nr.Densities, src: ti*nn + next[ti]}
		next[ti]++
	}

	// second full permutation, then the deterministic end trim
	ord := make([]int, n)
	for i := range ord {
		ord[i] = i
	}
	erand.PermuteInts(ord, rnd)
	shuffled := make([]*BlindEntry, n)
	for i, oi := range ord {
		shuffled[i] = flat[oi]
	}
	bl := &Blinded{
		Entries:  shuffled[:n-en.Params.Trim],
		NDropped: en.Params.Trim,
	}
	en.Blinded = bl
	return bl, nil
}

// Flatten appends each member's density traces end-to-end into one
// fixed-length vector per member, returning the (NMembers, totalLen)
// matrix consumed by the downstream reduction tool, where totalLen =
// numTrials * traceLengthPerTrial.  Returns ErrDimension if members
// have ragged trial counts or trace lengths.
func (bl *Blinded) Flatten() (*etensor.Float32, error) {
	n := bl.NMembers()
	if n == 0 {
		return nil, fmt.Errorf("lnp.Flatten: empty ensemble: %w", filterbank.ErrDimension)
	}
	ntr := bl.Entries[0].NTrials()
	if ntr == 0 {
		return nil, fmt.Errorf("lnp.Flatten: member 0 has no traces: %w", filterbank.ErrDimension)
	}
	nbin := len(bl.Entries[0].Densities[0])
	tot := ntr * nbin
	tsr := etensor.NewFloat32([]int{n, tot}, nil, []string{"Member", "Time"})
	for mi, be := range bl.Entries {
		if be.NTrials() != ntr {
			return nil, fmt.Errorf("lnp.Flatten: member %d has %d trials, expected %d: %w", mi, be.NTrials(), ntr, filterbank.ErrDimension)
		}
		for ti, d := range be.Densities {
			if len(d) != nbin {
				return nil, fmt.Errorf("lnp.Flatten: member %d trial %d length %d, expected %d: %w", mi, ti, len(d), nbin, filterbank.ErrDimension)
			}
			copy(tsr.Values[mi*tot+ti*nbin:], d)
		}
	}
	return tsr, nil
}

// Unflatten is the lossless inverse of one Flatten row: it reshapes a
// member's flattened vector back into per-trial trace order.
func Unflatten(row []float32, ntr int) ([][]float32, error) {
	if ntr < 1 || len(row)%ntr != 0 {
		return nil, fmt.Errorf("lnp.Unflatten: length %d not divisible by %d trials: %w", len(row), ntr, filterbank.ErrDimension)
	}
	nbin := len(row) / ntr
	out := make([][]float32, ntr)
	for ti := 0; ti < ntr; ti++ {
		out[ti] = make([]float32, nbin)
		copy(out[ti], row[ti*nbin:(ti+1)*nbin])
	}
	return out, nil
}
