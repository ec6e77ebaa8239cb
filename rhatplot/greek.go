// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"strings"
	"unicode"
)

var greekLetters = map[string]rune{
	"alpha":   'α',
	"beta":    'β',
	"gamma":   'γ',
	"delta":   'δ',
	"epsilon": 'ε',
	"zeta":    'ζ',
	"eta":     'η',
	"theta":   'θ',
	"iota":    'ι',
	"kappa":   'κ',
	"lambda":  'λ',
	"mu":      'μ',
	"nu":      'ν',
	"xi":      'ξ',
	"omicron": 'ο',
	"pi":      'π',
	"rho":     'ρ',
	"sigma":   'σ',
	"tau":     'τ',
	"upsilon": 'υ',
	"phi":     'φ',
	"chi":     'χ',
	"psi":     'ψ',
	"omega":   'ω',
}

// greekLabel interprets a parameter label as a symbolic expression:
// a leading identifier that spells a Greek letter name becomes that
// letter ("beta[1]" becomes "β[1]", "Delta" becomes "Δ"). Labels
// that don't start with a letter name pass through unchanged.
func greekLabel(label string) string {
	i := 0
	for i < len(label) && isLetter(label[i]) {
		i++
	}
	base, rest := label[:i], label[i:]
	g, ok := greekLetters[strings.ToLower(base)]
	if !ok {
		return label
	}
	if base[0] >= 'A' && base[0] <= 'Z' {
		g = unicode.ToUpper(g)
	}
	return string(g) + rest
}

func isLetter(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z'
}
