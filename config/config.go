// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config holds the settings of a distinction skill run.
//
// A Config is an ordinary value passed to whatever needs it. It can
// be loaded from YAML:
//
//	numBins: 20
//	normBins: 20
//	numQuantiles: 100000
//	alpha: 1
//	minSamples: 50
//	referenceBins: 1000
//	equalize: true
//	workers: 4
//	groupBy: [daytime, surface, cloudtype]
//
// Keys that are omitted keep their default values.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/bcdev/beam-metimage/density"
	"github.com/bcdev/beam-metimage/equalize"
	"github.com/bcdev/beam-metimage/skill"
)

// Config is the engine configuration.
type Config struct {
	// NumBins is the bin count of equal-width histograms, used
	// directly and as the fallback when equalization fails.
	NumBins int `yaml:"numBins" json:"numBins"`

	// NormBins is the bin count in the smoothing denominator. It
	// is independent of the actual bin count. 0 means use the
	// actual bin count.
	NormBins int `yaml:"normBins" json:"normBins"`

	// NumQuantiles is the size of the skill evaluation grid.
	NumQuantiles int `yaml:"numQuantiles" json:"numQuantiles"`

	// Alpha is the additive smoothing strength.
	Alpha float64 `yaml:"alpha" json:"alpha"`

	// MinSamples is the smallest class sample count for which a
	// skill is computed.
	MinSamples int `yaml:"minSamples" json:"minSamples"`

	// ReferenceBins is the resolution of the histogram that is
	// inverted to find equalized borders.
	ReferenceBins int `yaml:"referenceBins" json:"referenceBins"`

	// Equalize selects equalized instead of equal-width bins.
	Equalize bool `yaml:"equalize" json:"equalize"`

	// Workers bounds concurrent cell evaluations. 0 means
	// GOMAXPROCS.
	Workers int `yaml:"workers" json:"workers"`

	// GroupBy lists the file configuration keys that form a
	// bucket.
	GroupBy []string `yaml:"groupBy" json:"groupBy"`
}

// Default returns the reference configuration.
func Default() Config {
	return Config{
		NumBins:       20,
		NormBins:      20,
		NumQuantiles:  skill.DefaultQuantiles,
		Alpha:         1,
		MinSamples:    50,
		ReferenceBins: 1000,
		GroupBy:       []string{"daytime", "surface", "cloudtype"},
	}
}

// Load reads a YAML configuration file on top of Default.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read yaml: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML data on top of Default and validates the
// result. Unknown keys are errors.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("unmarshal yaml: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.NumBins < 1:
		return fmt.Errorf("invalid numBins %d: must be at least 1", c.NumBins)
	case c.NormBins < 0:
		return fmt.Errorf("invalid normBins %d: must not be negative", c.NormBins)
	case c.NumQuantiles < 2:
		return fmt.Errorf("invalid numQuantiles %d: must be at least 2", c.NumQuantiles)
	case !(c.Alpha >= 0):
		return fmt.Errorf("invalid alpha %v: must not be negative", c.Alpha)
	case c.MinSamples < 0:
		return fmt.Errorf("invalid minSamples %d: must not be negative", c.MinSamples)
	case c.ReferenceBins < 2:
		return fmt.Errorf("invalid referenceBins %d: must be at least 2", c.ReferenceBins)
	case c.Workers < 0:
		return fmt.Errorf("invalid workers %d: must not be negative", c.Workers)
	}
	seen := make(map[string]bool)
	for _, k := range c.GroupBy {
		if k == "" {
			return fmt.Errorf("empty groupBy key")
		}
		if seen[k] {
			return fmt.Errorf("duplicate groupBy key %q", k)
		}
		seen[k] = true
	}
	return nil
}

// Smoothing returns the density smoothing settings.
func (c Config) Smoothing() density.Smoothing {
	return density.Smoothing{Alpha: c.Alpha, NormBins: c.NormBins}
}

// Binner returns the equalized binner.
func (c Config) Binner() equalize.Binner {
	return equalize.Binner{RefBins: c.ReferenceBins, Smoothing: c.Smoothing()}
}

// Estimator returns the skill estimator.
func (c Config) Estimator() skill.Estimator {
	return skill.Estimator{Quantiles: c.NumQuantiles}
}
