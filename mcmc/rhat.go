// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcmc

import (
	"fmt"
	"math"

	"github.com/aclements/go-gg/table"
	"github.com/aclements/go-moremath/stats"
)

// ParamRhat is the potential scale reduction factor of a single
// monitored parameter, along with the variance components it is
// derived from.
type ParamRhat struct {
	// Parameter is the monitored parameter name.
	Parameter string

	// B is the between-chain variance: the sample variance of the
	// per-chain means, scaled by the chain length.
	B float64

	// W is the within-chain variance: the mean of the per-chain
	// sample variances.
	W float64

	// VarHatPlus is the pooled posterior variance estimate
	// combining B and W.
	VarHatPlus float64

	// Rhat is sqrt(VarHatPlus / W). Values near 1 indicate that
	// the chains have mixed.
	Rhat float64

	// Undefined reports that Rhat is indeterminate for this
	// parameter because its within-chain variance is zero (or the
	// chains are too short to estimate it). When Undefined is
	// set, VarHatPlus and Rhat are zero and must be ignored.
	Undefined bool
}

// Rhat computes the Gelman-Rubin potential scale reduction factor for
// every distinct parameter in d, following Gelman, Carlin, Stern &
// Rubin, "Bayesian Data Analysis" (2003).
//
// It returns one ParamRhat per parameter, in order of first
// appearance. It is an error if d has fewer than two chains, is
// empty, or is ragged (some (parameter, chain) pair has a different
// number of draws than the rest).
func Rhat(d *Draws) ([]ParamRhat, error) {
	chains := d.ChainIDs()
	if len(chains) < 2 {
		return nil, fmt.Errorf("at least two chains required (have %d)", len(chains))
	}
	if d.Len() == 0 {
		return nil, fmt.Errorf("no draws (did a family filter match nothing?)")
	}

	// Accumulate each (parameter, chain) cell in one pass.
	type cell struct {
		param string
		chain int
	}
	cells := make(map[cell]*stats.Sample)
	params := d.Parameters()
	for i, v := range d.Values {
		c := cell{d.Params[i], d.Chains[i]}
		s := cells[c]
		if s == nil {
			s = new(stats.Sample)
			cells[c] = s
		}
		s.Xs = append(s.Xs, v)
	}

	// The estimator assumes every chain contributes nIter draws
	// to every parameter. Check that rather than silently biasing
	// the variances.
	nIter := len(cells[cell{d.Params[0], d.Chains[0]}].Xs)
	for _, p := range params {
		for _, c := range chains {
			s := cells[cell{p, c}]
			if s == nil {
				return nil, fmt.Errorf("parameter %q has no draws in chain %v", p, c)
			}
			if len(s.Xs) != nIter {
				return nil, fmt.Errorf("parameter %q has %d draws in chain %v, want %d", p, len(s.Xs), c, nIter)
			}
		}
	}

	results := make([]ParamRhat, 0, len(params))
	for _, p := range params {
		// Between-chain variance from the per-chain means.
		var psiDot stats.Sample
		sumS2j := 0.0
		for _, c := range chains {
			s := cells[cell{p, c}]
			psiDot.Xs = append(psiDot.Xs, s.Mean())
			sumS2j += s.Variance()
		}
		b := float64(nIter) * psiDot.Variance()

		r := ParamRhat{Parameter: p, B: b}
		if nIter < 2 {
			// A single draw per chain leaves the
			// within-chain variance unestimable.
			r.Undefined = true
		} else if w := sumS2j / float64(len(chains)); w == 0 {
			// 0/0: a parameter that is constant within
			// every chain has no defined scale reduction.
			r.Undefined = true
		} else {
			r.W = w
			n := float64(nIter)
			r.VarHatPlus = (n-1)/n*w + b/n
			r.Rhat = math.Sqrt(r.VarHatPlus / w)
		}
		results = append(results, r)
	}
	return results, nil
}

// ResultTable returns the defined rows of results as a go-gg table
// with columns "Parameter", "Rhat", "B", "W", and "wa". Undefined
// rows are dropped so that no NaN reaches a scale or a printout.
func ResultTable(results []ParamRhat) *table.Table {
	var (
		params []string
		rhats  []float64
		bs     []float64
		ws     []float64
		was    []float64
	)
	for _, r := range results {
		if r.Undefined {
			continue
		}
		params = append(params, r.Parameter)
		rhats = append(rhats, r.Rhat)
		bs = append(bs, r.B)
		ws = append(ws, r.W)
		was = append(was, r.VarHatPlus)
	}
	return new(table.Builder).
		Add("Parameter", params).
		Add("Rhat", rhats).
		Add("B", bs).
		Add("W", ws).
		Add("wa", was).
		Done()
}
