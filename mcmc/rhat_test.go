// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mcmc

import (
	"math"
	"math/rand"
	"reflect"
	"strings"
	"testing"
)

// aboutEq reports whether x and y are equal to within a small
// absolute tolerance.
func aboutEq(x, y float64) bool {
	return math.Abs(x-y) < 1e-9
}

func mustRhat(t *testing.T, d *Draws) []ParamRhat {
	t.Helper()
	rs, err := Rhat(d)
	if err != nil {
		t.Fatalf("Rhat failed: %s", err)
	}
	return rs
}

// twoChains builds a rectangular two-chain table for a single
// parameter from the given per-chain draws.
func twoChains(param string, chain1, chain2 []float64) *Draws {
	d := new(Draws)
	for _, v := range chain1 {
		d.Add(param, 1, v)
	}
	for _, v := range chain2 {
		d.Add(param, 2, v)
	}
	return d
}

func TestRhatWorkedExample(t *testing.T) {
	// Two identical chains of [1,2,3]: the chains agree exactly,
	// so B is 0, W is the common within-chain variance var([1,2,3])
	// = 1, and the pooled estimate reduces to its within-chain
	// term wa = ((n-1)/n)*W = 2/3, giving Rhat = sqrt(2/3).
	d := twoChains("a", []float64{1, 2, 3}, []float64{1, 2, 3})
	rs := mustRhat(t, d)
	if len(rs) != 1 {
		t.Fatalf("want 1 result; got %d", len(rs))
	}
	r := rs[0]
	if r.Undefined {
		t.Fatal("Rhat reported undefined")
	}
	wa := 2.0 / 3
	if !aboutEq(r.B, 0) || !aboutEq(r.W, 1) || !aboutEq(r.VarHatPlus, wa) || !aboutEq(r.Rhat, math.Sqrt(wa)) {
		t.Errorf("want B=0 W=1 wa=%v Rhat=%v; got B=%v W=%v wa=%v Rhat=%v", wa, math.Sqrt(wa), r.B, r.W, r.VarHatPlus, r.Rhat)
	}
}

func TestRhatOneRowPerParameter(t *testing.T) {
	d := new(Draws)
	for _, p := range []string{"beta[2]", "alpha", "beta[1]"} {
		for chain := 1; chain <= 3; chain++ {
			for i := 0; i < 4; i++ {
				d.Add(p, chain, float64(i+chain))
			}
		}
	}
	rs := mustRhat(t, d)

	var got []string
	for _, r := range rs {
		got = append(got, r.Parameter)
	}
	// One row per distinct parameter, in first-appearance order.
	want := []string{"beta[2]", "alpha", "beta[1]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("want parameters %v; got %v", want, got)
	}
}

func TestRhatPrecondition(t *testing.T) {
	d := new(Draws)
	for i := 0; i < 10; i++ {
		d.Add("a", 1, float64(i))
	}
	_, err := Rhat(d)
	if err == nil || !strings.Contains(err.Error(), "at least two chains") {
		t.Errorf("want at-least-two-chains error; got %v", err)
	}

	// An empty table has zero chains, which also fails the
	// precondition before anything divides by zero.
	if _, err := Rhat(new(Draws)); err == nil {
		t.Error("empty table: want error; got nil")
	}

	// A filter that matches nothing produces an empty table.
	if _, err := Rhat(d.Filter(FamilyExact("nope"))); err == nil {
		t.Error("empty family: want error; got nil")
	}
}

func TestRhatConstantParameter(t *testing.T) {
	d := twoChains("c", []float64{7, 7, 7}, []float64{7, 7, 7})
	rs := mustRhat(t, d)
	r := rs[0]
	if !r.Undefined {
		t.Fatalf("constant parameter: want undefined Rhat; got %+v", r)
	}
	// Undefined means zeroed fields, never NaN or Inf sentinels.
	for _, v := range []float64{r.B, r.W, r.VarHatPlus, r.Rhat} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("undefined result leaked a non-finite value: %+v", r)
		}
	}
}

func TestRhatSingleIteration(t *testing.T) {
	// One draw per chain: W is unestimable, so Rhat is undefined
	// even though the draws differ.
	d := twoChains("a", []float64{1}, []float64{2})
	rs := mustRhat(t, d)
	if !rs[0].Undefined {
		t.Errorf("single iteration: want undefined Rhat; got %+v", rs[0])
	}
}

func TestRhatDivergedChains(t *testing.T) {
	// Chain means separated by many within-chain standard
	// deviations: a clear non-convergence signal.
	d := twoChains("a",
		[]float64{-0.1, 0, 0.1, -0.05, 0.05},
		[]float64{9.9, 10, 10.1, 9.95, 10.05})
	rs := mustRhat(t, d)
	r := rs[0]
	if r.Undefined {
		t.Fatal("Rhat reported undefined")
	}
	if r.Rhat <= 1.1 {
		t.Errorf("separated chains: want Rhat > 1.1; got %v", r.Rhat)
	}
	if r.B <= r.W {
		t.Errorf("separated chains: want B >> W; got B=%v W=%v", r.B, r.W)
	}
}

func TestRhatConvergedChains(t *testing.T) {
	// Four chains of i.i.d. draws from the same distribution mix
	// by construction, so Rhat must be very close to 1.
	rng := rand.New(rand.NewSource(1))
	d := new(Draws)
	for chain := 1; chain <= 4; chain++ {
		for i := 0; i < 1500; i++ {
			d.Add("theta", chain, 2+0.1*rng.NormFloat64())
		}
	}
	rs := mustRhat(t, d)
	r := rs[0]
	if r.Undefined {
		t.Fatal("Rhat reported undefined")
	}
	if r.Rhat < 0.99 || r.Rhat > 1.05 {
		t.Errorf("converged chains: want Rhat in [0.99, 1.05]; got %v", r.Rhat)
	}
}

func TestRhatRagged(t *testing.T) {
	// Unequal chain lengths silently bias the variance estimates,
	// so they are rejected outright.
	d := twoChains("a", []float64{1, 2, 3}, []float64{1, 2})
	if _, err := Rhat(d); err == nil {
		t.Error("ragged chains: want error; got nil")
	}

	// As is a parameter missing from one chain entirely.
	d = twoChains("a", []float64{1, 2, 3}, []float64{1, 2, 3})
	d.Add("b", 1, 4)
	d.Add("b", 1, 5)
	d.Add("b", 1, 6)
	if _, err := Rhat(d); err == nil {
		t.Error("parameter absent from chain 2: want error; got nil")
	}
}

func TestResultTable(t *testing.T) {
	d := twoChains("a", []float64{1, 2, 3}, []float64{1, 2, 3})
	d.Add("const", 1, 5)
	d.Add("const", 1, 5)
	d.Add("const", 1, 5)
	d.Add("const", 2, 5)
	d.Add("const", 2, 5)
	d.Add("const", 2, 5)

	rs := mustRhat(t, d)
	tab := ResultTable(rs)
	// The undefined "const" row is dropped.
	if want := []string{"a"}; !reflect.DeepEqual(tab.MustColumn("Parameter"), want) {
		t.Errorf("want Parameter column %v; got %v", want, tab.MustColumn("Parameter"))
	}
	rhats := tab.MustColumn("Rhat").([]float64)
	if want := math.Sqrt(2.0 / 3); len(rhats) != 1 || !aboutEq(rhats[0], want) {
		t.Errorf("want Rhat column [%v]; got %v", want, rhats)
	}
}
