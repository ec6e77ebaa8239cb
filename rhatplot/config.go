// Copyright 2026 The mcmcdiag Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// plotConfig holds optional plot defaults read from a YAML file.
// Fields left unset in the file keep the flag defaults, and flags
// given explicitly on the command line always win.
type plotConfig struct {
	Scaling *float64 `yaml:"scaling"`
	Greek   *bool    `yaml:"greek"`
	Width   int      `yaml:"width"`
	Height  int      `yaml:"height"`
}

func readConfig(path string) (*plotConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := new(plotConfig)
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%s: %s", path, err)
	}
	if config.Width < 0 || config.Height < 0 {
		return nil, fmt.Errorf("%s: width and height must not be negative", path)
	}
	return config, nil
}
