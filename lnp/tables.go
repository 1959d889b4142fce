// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lnp

import (
	"fmt"
	"strings"

	"github.com/c2h5oh/datasize"
	"github.com/emer/etable/v2/etable"
	"github.com/emer/etable/v2/etensor"
)

// NeuronTable returns a table of the per-instance realized parameters:
// one row per (type, instance) with the drawn kernel widths and pooling
// weights laid out over the fixed-size filter catalog (disabled slots
// zero), plus the perturbed rate parameters.  This is the serializable
// record of everything that varies across instances.
func (en *Ensemble) NeuronTable() *etable.Table {
	ncat := 0
	if len(en.Types) > 0 {
		ncat = len(en.Types[0].Filters)
	}
	dt := &etable.Table{}
	dt.SetMetaData("name", "Neurons")
	dt.SetMetaData("desc", "realized per-instance filter and rate parameters")
	sch := etable.Schema{
		{Name: "Type", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "Instance", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Baseline", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Mod", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Widths", Type: etensor.FLOAT32, CellShape: []int{ncat}, DimNames: []string{"Slot"}},
		{Name: "Wts", Type: etensor.FLOAT32, CellShape: []int{ncat}, DimNames: []string{"Slot"}},
	}
	dt.SetFromSchema(sch, len(en.Neurons))
	for ri, nr := range en.Neurons {
		dt.SetCellString("Type", ri, nr.Type)
		dt.SetCellFloat("Instance", ri, float64(nr.Index))
		dt.SetCellFloat("Baseline", ri, float64(nr.Rate.Baseline))
		dt.SetCellFloat("Mod", ri, float64(nr.Rate.Mod))
		wd := etensor.NewFloat32([]int{ncat}, nil, []string{"Slot"})
		wt := etensor.NewFloat32([]int{ncat}, nil, []string{"Slot"})
		for fi, sl := range nr.Bank.Slots {
			wd.Set([]int{sl}, nr.Bank.Widths[fi])
			wt.Set([]int{sl}, nr.Bank.Wts[fi])
		}
		dt.SetCellTensor("Widths", ri, wd)
		dt.SetCellTensor("Wts", ri, wt)
	}
	return dt
}

// DriveTable returns the fine-resolution drive record for one neuron
// instance: one row per (trial, sample) with the rectified pooled drive
// and the instantaneous firing rate.
func (en *Ensemble) DriveTable(nr *Neuron) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "Drive")
	dt.SetMetaData("desc", fmt.Sprintf("pooled drive and rate for type %s instance %d", nr.Type, nr.Index))
	sch := etable.Schema{
		{Name: "Trial", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Sample", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Pool", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Rate", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	nrow := 0
	for _, p := range nr.Pools {
		nrow += len(p)
	}
	dt.SetFromSchema(sch, nrow)
	ri := 0
	for ti := range nr.Pools {
		for si := range nr.Pools[ti] {
			dt.SetCellFloat("Trial", ri, float64(ti))
			dt.SetCellFloat("Sample", ri, float64(si))
			dt.SetCellFloat("Pool", ri, float64(nr.Pools[ti][si]))
			dt.SetCellFloat("Rate", ri, float64(nr.Rates[ti][si]))
			ri++
		}
	}
	return dt
}

// DensityTable returns the binned estimate record for one neuron
// instance: one row per (trial, bin) with the PSTH and smoothed density.
func (en *Ensemble) DensityTable(nr *Neuron) *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "Density")
	dt.SetMetaData("desc", fmt.Sprintf("PSTH and spike density for type %s instance %d", nr.Type, nr.Index))
	sch := etable.Schema{
		{Name: "Trial", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Bin", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "PSTH", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
		{Name: "Density", Type: etensor.FLOAT64, CellShape: nil, DimNames: nil},
	}
	nrow := 0
	for _, h := range nr.PSTHs {
		nrow += len(h)
	}
	dt.SetFromSchema(sch, nrow)
	ri := 0
	for ti := range nr.PSTHs {
		for bi := range nr.PSTHs[ti] {
			dt.SetCellFloat("Trial", ri, float64(ti))
			dt.SetCellFloat("Bin", ri, float64(bi))
			dt.SetCellFloat("PSTH", ri, float64(nr.PSTHs[ti][bi]))
			dt.SetCellFloat("Density", ri, float64(nr.Densities[ti][bi]))
			ri++
		}
	}
	return dt
}

// BlindedTable returns the blinded ensemble as a table: one row per
// member with its flattened density vector as a tensor cell.  Type
// identity is deliberately absent.
func (en *Ensemble) BlindedTable() (*etable.Table, error) {
	if en.Blinded == nil {
		return nil, fmt.Errorf("lnp.BlindedTable: Blind has not been run")
	}
	flat, err := en.Blinded.Flatten()
	if err != nil {
		return nil, err
	}
	tot := flat.Dim(1)
	dt := &etable.Table{}
	dt.SetMetaData("name", "Blinded")
	dt.SetMetaData("desc", "shuffled, relabeled ensemble density matrix")
	sch := etable.Schema{
		{Name: "Member", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Density", Type: etensor.FLOAT32, CellShape: []int{tot}, DimNames: []string{"Time"}},
	}
	dt.SetFromSchema(sch, flat.Dim(0))
	for mi := 0; mi < flat.Dim(0); mi++ {
		dt.SetCellFloat("Member", mi, float64(mi))
		row := etensor.NewFloat32([]int{tot}, nil, []string{"Time"})
		copy(row.Values, flat.Values[mi*tot:(mi+1)*tot])
		dt.SetCellTensor("Density", mi, row)
	}
	return dt, nil
}

// SizeReport returns a string reporting the memory footprint of the
// ensemble's derived data, per type and total.
func (en *Ensemble) SizeReport() string {
	var b strings.Builder
	totRst := 0
	totTrc := 0
	for ti := range en.Types {
		tp := &en.Types[ti]
		rst := 0
		trc := 0
		for i := 0; i < en.Params.NNeurons; i++ {
			nr := en.TypeNeuron(ti, i)
			for _, r := range nr.Rasters {
				rst += r.Len() * 4
			}
			for tri := range nr.Pools {
				trc += 4 * (len(nr.Pools[tri]) + len(nr.Rates[tri]) + len(nr.PSTHs[tri]) + len(nr.Densities[tri]))
			}
		}
		totRst += rst
		totTrc += trc
		fmt.Fprintf(&b, "%14s:\t Neurons: %d\t RasterMem: %v \t TraceMem: %v\n", tp.Name, en.Params.NNeurons,
			(datasize.ByteSize)(rst).HumanReadable(), (datasize.ByteSize)(trc).HumanReadable())
	}
	fmt.Fprintf(&b, "\n%14s:\t Neurons: %d\t RasterMem: %v \t TraceMem: %v\n", "Total", len(en.Neurons),
		(datasize.ByteSize)(totRst).HumanReadable(), (datasize.ByteSize)(totTrc).HumanReadable())
	return b.String()
}
