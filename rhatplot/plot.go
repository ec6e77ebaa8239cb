// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"math"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"
	"github.com/statgo/mcmcdiag/mcmc"
)

// plotRhat renders results as a dot plot: one point per parameter,
// Rhat on the x axis, parameters stacked on the y axis. Undefined
// rows are dropped. nparams is the number of plotted parameters.
func plotRhat(results []mcmc.ParamRhat, scaling float64, greek bool) (plot *gg.Plot, nparams int) {
	tab := mcmc.ResultTable(results)
	nparams = tab.Len()
	if nparams == 0 {
		return nil, 0
	}

	if greek {
		labels := tab.MustColumn("Parameter").([]string)
		glabels := make([]string, len(labels))
		for i, l := range labels {
			glabels[i] = greekLabel(l)
		}
		tab = table.NewBuilder(tab).Add("Parameter", glabels).Done()
	}

	plot = gg.NewPlot(tab)
	lo, hi := xBounds(results, scaling)
	plot.SetScale("x", gg.NewLinearScaler().SetMin(lo).SetMax(hi))
	plot.Add(gg.LayerPoints{X: "Rhat", Y: "Parameter"})
	plot.Add(gg.Title("Potential Scale Reduction Factors"))
	plot.Add(gg.AxisLabel("x", "R̂"))
	return plot, nparams
}

// xBounds returns the x-axis domain for results. The lower bound is
// the smallest defined Rhat. The upper bound is the largest defined
// Rhat, or scaling if that is larger: the configured bound is a
// floor, so it never clips visible points.
func xBounds(results []mcmc.ParamRhat, scaling float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, r := range results {
		if r.Undefined {
			continue
		}
		lo = math.Min(lo, r.Rhat)
		hi = math.Max(hi, r.Rhat)
	}
	if scaling > hi {
		hi = scaling
	}
	return
}
