// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/statgo/mcmcdiag/mcmc"
)

// runSampler runs command once per chain, appending the chain number
// as the final argument, and collects each run's stdout as one chain
// of draws. name is the parameter name used for plain single-column
// output.
func runSampler(command string, nChains int, name string) (*mcmc.Draws, error) {
	words, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parsing sampler command: %s", err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("empty sampler command")
	}

	draws := new(mcmc.Draws)
	for chain := 1; chain <= nChains; chain++ {
		cmd := exec.Command(words[0], append(words[1:], strconv.Itoa(chain))...)
		cmd.Stderr = os.Stderr
		out, err := cmd.Output()
		if err != nil {
			return nil, fmt.Errorf("sampler chain %d: %s", chain, err)
		}
		if err := parseChain(draws, chain, name, out); err != nil {
			return nil, fmt.Errorf("sampler chain %d: %s", chain, err)
		}
	}
	return draws, nil
}

// parseChain parses one sampler run's output into draws for chain.
// Output is either CSV with Parameter and value columns, or one
// plain number per line for a single parameter named name.
func parseChain(draws *mcmc.Draws, chain int, name string, out []byte) error {
	lines := strings.Split(string(bytes.TrimSpace(out)), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return fmt.Errorf("no output")
	}

	if !strings.Contains(lines[0], ",") {
		for _, line := range lines {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			v, err := strconv.ParseFloat(line, 64)
			if err != nil {
				return err
			}
			draws.Add(name, chain, v)
		}
		return nil
	}

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		return err
	}
	paramCol, valueCol := -1, -1
	for i, h := range rows[0] {
		switch {
		case strings.EqualFold(h, "Parameter"):
			paramCol = i
		case strings.EqualFold(h, "value"):
			valueCol = i
		}
	}
	if paramCol < 0 || valueCol < 0 {
		return fmt.Errorf("header must name Parameter and value columns; got %v", rows[0])
	}
	for _, row := range rows[1:] {
		v, err := strconv.ParseFloat(row[valueCol], 64)
		if err != nil {
			return err
		}
		draws.Add(row[paramCol], chain, v)
	}
	return nil
}
