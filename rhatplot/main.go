// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command rhatplot computes and plots the Gelman-Rubin potential
// scale reduction factor (Rhat) for MCMC simulation draws.
//
// rhatplot reads draws in CSV form (Parameter, Chain, value columns;
// an Iteration column is ignored) from files or stdin, or runs an
// external sampler command once per chain with -sampler. It writes
// an SVG dot plot with one point per monitored parameter, or the
// Rhat table itself with -table. Chains that have mixed give Rhat
// near 1; values well above 1 mean the chains have not converged to
// a common distribution.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"regexp"
	"runtime/pprof"

	"github.com/statgo/mcmcdiag/mcmc"
)

func main() {
	log.SetPrefix("rhatplot: ")
	log.SetFlags(0)

	var (
		flagFamily  = flag.String("family", "", "restrict to parameters matching `regexp`")
		flagScaling = flag.Float64("scaling", 1.5, "floor for the upper x-axis bound; 0 auto-scales to the data")
		flagGreek   = flag.Bool("greek", false, "render parameter labels as Greek symbols")
		flagTable   = flag.Bool("table", false, "output a table instead of a plot")
		flagOut     = flag.String("o", "", "write output to `file` (default: stdout)")
		flagSampler = flag.String("sampler", "", "run `command` once per chain and read its stdout as draws")
		flagChains  = flag.Int("chains", 4, "number of chains to run with -sampler")
		flagName    = flag.String("name", "theta", "parameter `name` for single-column sampler output")
		flagConfig  = flag.String("config", "", "read plot defaults from YAML `file`")
		flagWidth   = flag.Int("w", 600, "plot width in `pixels`")
		flagHeight  = flag.Int("h", 0, "plot height in `pixels` (default: scale with parameter count)")

		flagCPUProfile = flag.String("cpuprofile", "", "write CPU profile to `file`")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [inputs...]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *flagCPUProfile != "" {
		f, err := os.Create(*flagCPUProfile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if *flagConfig != "" {
		config, err := readConfig(*flagConfig)
		if err != nil {
			log.Fatal(err)
		}
		// Flags given explicitly win over the config file.
		set := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
		if config.Scaling != nil && !set["scaling"] {
			*flagScaling = *config.Scaling
		}
		if config.Greek != nil && !set["greek"] {
			*flagGreek = *config.Greek
		}
		if config.Width != 0 && !set["w"] {
			*flagWidth = config.Width
		}
		if config.Height != 0 && !set["h"] {
			*flagHeight = config.Height
		}
	}

	// Gather draws.
	var draws *mcmc.Draws
	if *flagSampler != "" {
		if flag.NArg() > 0 {
			log.Fatal("-sampler does not take input files")
		}
		var err error
		draws, err = runSampler(*flagSampler, *flagChains, *flagName)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		paths := flag.Args()
		if len(paths) == 0 {
			paths = []string{"-"}
		}
		draws = new(mcmc.Draws)
		for _, path := range paths {
			func() {
				f := os.Stdin
				if path != "-" {
					var err error
					f, err = os.Open(path)
					if err != nil {
						log.Fatal(err)
					}
					defer f.Close()
				}

				d, err := mcmc.ReadDraws(f)
				if err != nil {
					log.Fatalf("%s: %s", path, err)
				}
				draws.Params = append(draws.Params, d.Params...)
				draws.Chains = append(draws.Chains, d.Chains...)
				draws.Values = append(draws.Values, d.Values...)
			}()
		}
	}

	// Family pre-filter.
	if *flagFamily != "" {
		re, err := regexp.Compile(*flagFamily)
		if err != nil {
			log.Fatal(err)
		}
		draws = draws.Filter(mcmc.FamilyPattern(re))
	}

	results, err := mcmc.Rhat(draws)
	if err != nil {
		log.Fatal(err)
	}
	nDefined := 0
	for _, r := range results {
		if r.Undefined {
			log.Printf("parameter %q has zero within-chain variance; Rhat undefined", r.Parameter)
			continue
		}
		nDefined++
	}

	// Prepare for output.
	f := os.Stdout
	if *flagOut != "" {
		var err error
		f, err = os.Create(*flagOut)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
	}

	// Output table. Undefined rows print as NA so every
	// parameter appears.
	if *flagTable {
		if err := mcmc.Fprint(f, results); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Plot.
	if nDefined == 0 {
		log.Fatal("no defined Rhat values to plot")
	}
	plot, nparams := plotRhat(results, *flagScaling, *flagGreek)
	height := *flagHeight
	if height == 0 {
		height = 120 + 30*nparams
	}
	if err := plot.WriteSVG(f, *flagWidth, height); err != nil {
		log.Fatal(err)
	}
}
