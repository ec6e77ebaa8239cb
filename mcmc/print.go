// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcmc

import (
	"fmt"
	"io"
	"os"

	"github.com/aclements/go-gg/table"
)

// Print prints results to stdout in table form.
func Print(results []ParamRhat) error {
	return Fprint(os.Stdout, results)
}

// Fprint prints results to w in table form, one row per parameter.
// Unlike ResultTable, undefined rows are kept, with "NA" in place of
// the indeterminate wa and Rhat values.
func Fprint(w io.Writer, results []ParamRhat) error {
	g := func(v float64) string { return fmt.Sprintf("%.6g", v) }
	n := len(results)
	params := make([]string, n)
	rhats := make([]string, n)
	bs := make([]string, n)
	ws := make([]string, n)
	was := make([]string, n)
	for i, r := range results {
		params[i] = r.Parameter
		bs[i] = g(r.B)
		ws[i] = g(r.W)
		if r.Undefined {
			rhats[i], was[i] = "NA", "NA"
		} else {
			rhats[i], was[i] = g(r.Rhat), g(r.VarHatPlus)
		}
	}
	tab := new(table.Builder).
		Add("Parameter", params).
		Add("Rhat", rhats).
		Add("B", bs).
		Add("W", ws).
		Add("wa", was).
		Done()
	return table.Fprint(w, tab)
}
