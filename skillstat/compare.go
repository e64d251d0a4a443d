// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package skillstat evaluates the distinction skill of every cell of
// a sample collection.
package skillstat

import (
	"errors"
	"fmt"
	"math"

	"github.com/bcdev/beam-metimage/config"
	"github.com/bcdev/beam-metimage/density"
	"github.com/bcdev/beam-metimage/equalize"
	"github.com/bcdev/beam-metimage/histo"
	"github.com/bcdev/beam-metimage/measure"
	"github.com/bcdev/beam-metimage/skillfmt"
)

// An Outcome tags how a Result was obtained.
type Outcome int

const (
	// Computed means the skill was computed with the configured
	// binning.
	Computed Outcome = iota
	// Fallback means equalization failed and the skill was
	// computed with equal-width bins.
	Fallback
	// InsufficientSamples means a class had too few samples. The
	// skill is undefined.
	InsufficientSamples
	// Invalid means the histograms were inconsistent. The skill
	// is undefined and the error is reported.
	Invalid
)

var outcomeNames = []string{"computed", "fallback", "insufficient", "invalid"}

func (o Outcome) String() string {
	if o < 0 || int(o) >= len(outcomeNames) {
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
	return outcomeNames[o]
}

// Defined reports whether results with this outcome carry a skill.
func (o Outcome) Defined() bool {
	return o == Computed || o == Fallback
}

// A Result is the comparison of one cell.
type Result struct {
	Measure measure.ID
	Bucket  string
	Key     []skillfmt.Config

	// NumCloud and NumNoCloud count the finite samples of each
	// class.
	NumCloud, NumNoCloud int

	// Skill is NaN unless Outcome is Computed or Fallback.
	Skill   float64
	Outcome Outcome

	// Reason explains an outcome other than Computed.
	Reason error

	// Borders, CloudCounts and NoCloudCounts describe the
	// histograms the skill was computed from. They are nil if
	// no histograms were built.
	Borders       []float64
	CloudCounts   []int
	NoCloudCounts []int

	// Flatness is the coefficient of variation of the pooled
	// density. It is near zero for well equalized bins.
	Flatness float64
}

// ErrTooFewSamples is the Reason of InsufficientSamples results.
var ErrTooFewSamples = errors.New("too few samples")

// Compare computes the distinction skill between the cloud and
// no-cloud samples. Non-finite samples are ignored.
//
// Insufficient samples and failed equalization are reported through
// the Outcome of the result. An error is returned only for Invalid
// results.
func Compare(cloud, noCloud []float64, cfg config.Config) (Result, error) {
	cloud, noCloud = histo.Finite(cloud), histo.Finite(noCloud)
	res := Result{
		NumCloud:   len(cloud),
		NumNoCloud: len(noCloud),
		Skill:      math.NaN(),
		Flatness:   math.NaN(),
	}

	switch {
	case res.NumCloud == 0 || res.NumNoCloud == 0:
		res.Outcome = InsufficientSamples
		res.Reason = fmt.Errorf("%w: One or both cloud/noCloud sample arrays empty - cannot compute distinction skill.", ErrTooFewSamples)
		return res, nil
	case res.NumCloud < cfg.MinSamples || res.NumNoCloud < cfg.MinSamples:
		res.Outcome = InsufficientSamples
		res.Reason = fmt.Errorf("%w: One or both cloud/noCloud sample arrays too small (%d, %d < %d) - cannot compute distinction skill.",
			ErrTooFewSamples, res.NumCloud, res.NumNoCloud, cfg.MinSamples)
		return res, nil
	}

	min, max, _ := histo.FiniteBounds(cloud, noCloud)
	if min == max {
		// Both classes hold the same single value. Their
		// distributions are identical.
		res.Skill = 0
		res.Flatness = 0
		return res, nil
	}

	var tCloud, tNoCloud *histo.Table
	if cfg.Equalize {
		pooled := make([]float64, 0, len(cloud)+len(noCloud))
		pooled = append(append(pooled, cloud...), noCloud...)
		borders, err := cfg.Binner().Borders(pooled)
		if err == nil {
			tCloud, err = histo.NewUnequal(borders)
		}
		if err != nil {
			res.Outcome = Fallback
			res.Reason = fmt.Errorf("Cannot perform equalization (%w) - will compute distinction skill without equalization.", err)
		} else {
			tNoCloud = tCloud.Clone()
		}
	}
	if tCloud == nil {
		var err error
		tCloud, err = histo.NewFixedWidth(min, max, cfg.NumBins)
		if err != nil {
			return invalid(res, err)
		}
		tNoCloud = tCloud.Clone()
	}
	tCloud.Add(cloud...)
	tNoCloud.Add(noCloud...)

	s := cfg.Smoothing()
	dCloud, dNoCloud := density.New(tCloud, s), density.New(tNoCloud, s)
	sk, err := cfg.Estimator().Densities(dNoCloud, dCloud)
	if err != nil {
		return invalid(res, err)
	}

	pooled := make([]int, tCloud.Len())
	for i := range pooled {
		pooled[i] = tCloud.Counts[i] + tNoCloud.Counts[i]
	}
	res.Skill = sk
	res.Borders = tCloud.Borders
	res.CloudCounts = tCloud.Counts
	res.NoCloudCounts = tNoCloud.Counts
	res.Flatness = equalize.Flatness(density.PDF(pooled, s))
	return res, nil
}

func invalid(res Result, err error) (Result, error) {
	res.Outcome = Invalid
	res.Skill = math.NaN()
	res.Reason = err
	return res, err
}
