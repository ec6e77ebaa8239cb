// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mcmc manipulates tables of MCMC simulation draws and
// computes convergence diagnostics over them.
//
// A draws table has one row per sampled value, identified by the
// monitored parameter ("beta[1]") and the chain that produced it.
// Tables are expected to be rectangular: every (parameter, chain)
// pair carries the same number of draws.
package mcmc

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclements/go-gg/table"
)

// Draws holds simulation draws from one or more MCMC chains.
//
// The zero value is an empty table. Append rows with Add or use one
// of the constructors.
type Draws struct {
	// Params, Chains, and Values are parallel columns: row i
	// records that chain Chains[i] drew Values[i] for parameter
	// Params[i].
	Params []string
	Chains []int
	Values []float64
}

// NewDraws returns a Draws table over the given parallel columns. It
// returns an error if the columns have mismatched lengths.
func NewDraws(params []string, chains []int, values []float64) (*Draws, error) {
	if len(params) != len(chains) || len(params) != len(values) {
		return nil, fmt.Errorf("column length mismatch: %d parameters, %d chains, %d values", len(params), len(chains), len(values))
	}
	return &Draws{params, chains, values}, nil
}

// Add appends one draw to d.
func (d *Draws) Add(param string, chain int, value float64) {
	d.Params = append(d.Params, param)
	d.Chains = append(d.Chains, chain)
	d.Values = append(d.Values, value)
}

// Len returns the number of draws in d.
func (d *Draws) Len() int {
	return len(d.Values)
}

// Parameters returns the distinct parameter names in d, in order of
// first appearance.
func (d *Draws) Parameters() []string {
	var params []string
	seen := make(map[string]bool)
	for _, p := range d.Params {
		if !seen[p] {
			seen[p] = true
			params = append(params, p)
		}
	}
	return params
}

// ChainIDs returns the distinct chain identifiers in d, in order of
// first appearance.
func (d *Draws) ChainIDs() []int {
	var chains []int
	seen := make(map[int]bool)
	for _, c := range d.Chains {
		if !seen[c] {
			seen[c] = true
			chains = append(chains, c)
		}
	}
	return chains
}

// NChains returns the number of distinct chains in d.
func (d *Draws) NChains() int {
	return len(d.ChainIDs())
}

// NIterations returns the number of draws per (parameter, chain)
// pair, assuming d is rectangular. It returns 0 for an empty table.
func (d *Draws) NIterations() int {
	if d.Len() == 0 {
		return 0
	}
	n := 0
	p0, c0 := d.Params[0], d.Chains[0]
	for i := range d.Values {
		if d.Params[i] == p0 && d.Chains[i] == c0 {
			n++
		}
	}
	return n
}

// Filter returns the draws whose parameter satisfies pred. Chain and
// iteration structure is preserved for the parameters that remain.
func (d *Draws) Filter(pred func(param string) bool) *Draws {
	out := new(Draws)
	for i, p := range d.Params {
		if pred(p) {
			out.Add(p, d.Chains[i], d.Values[i])
		}
	}
	return out
}

// FamilyExact returns a predicate matching exactly the parameter
// named name.
func FamilyExact(name string) func(string) bool {
	return func(param string) bool { return param == name }
}

// FamilyPattern returns a predicate matching parameters against re.
func FamilyPattern(re *regexp.Regexp) func(string) bool {
	return re.MatchString
}

// Table returns d as a go-gg table with columns "Parameter", "Chain",
// and "value".
func (d *Draws) Table() *table.Table {
	return new(table.Builder).
		Add("Parameter", d.Params).
		Add("Chain", d.Chains).
		Add("value", d.Values).
		Done()
}

// ReadDraws parses a CSV stream of simulation draws from r. The
// header row must name "Parameter", "Chain", and "value" columns, in
// any order and any case; other columns (such as an iteration index)
// are ignored.
func ReadDraws(r io.Reader) (*Draws, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("missing header row")
	}

	cols, err := drawCols(rows[0])
	if err != nil {
		return nil, err
	}
	tab := table.TableFromStrings(rows[0], rows[1:], true)

	d := new(Draws)
	params, ok := tab.Column(cols.param).([]string)
	if !ok {
		// A parameter column of all numbers coerces to ints.
		// Undo that; parameters are categorical.
		params = stringColumn(tab.Column(cols.param))
	}
	chains, ok := tab.Column(cols.chain).([]int)
	if !ok {
		return nil, fmt.Errorf("%s column must be integral", cols.chain)
	}
	values, err := floatColumn(tab.Column(cols.value))
	if err != nil {
		return nil, fmt.Errorf("%s column must be numeric", cols.value)
	}
	d.Params, d.Chains, d.Values = params, chains, values
	return d, nil
}

type drawColNames struct {
	param, chain, value string
}

func drawCols(header []string) (drawColNames, error) {
	var cols drawColNames
	for _, h := range header {
		switch {
		case strings.EqualFold(h, "Parameter"):
			cols.param = h
		case strings.EqualFold(h, "Chain"):
			cols.chain = h
		case strings.EqualFold(h, "value"):
			cols.value = h
		}
	}
	if cols.param == "" || cols.chain == "" || cols.value == "" {
		return cols, fmt.Errorf("header must name Parameter, Chain, and value columns; got %v", header)
	}
	return cols, nil
}

func stringColumn(col interface{}) []string {
	switch col := col.(type) {
	case []string:
		return col
	case []int:
		out := make([]string, len(col))
		for i, v := range col {
			out[i] = fmt.Sprint(v)
		}
		return out
	case []float64:
		out := make([]string, len(col))
		for i, v := range col {
			out[i] = fmt.Sprint(v)
		}
		return out
	}
	panic(fmt.Sprintf("unsupported column type %T", col))
}

func floatColumn(col interface{}) ([]float64, error) {
	switch col := col.(type) {
	case []float64:
		return col, nil
	case []int:
		out := make([]float64, len(col))
		for i, v := range col {
			out[i] = float64(v)
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported column type %T", col)
}
