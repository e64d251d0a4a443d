// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package equalize chooses unequal bin borders so that every bin of
// a histogram carries roughly the same probability mass.
//
// The bin count follows the Freedman-Diaconis rule. The borders are
// found by inverting the smoothed cumulative distribution of a fine
// equal-width reference histogram.
package equalize

import (
	"errors"
	"fmt"
	"math"

	"github.com/aclements/go-moremath/stats"
	"gonum.org/v1/gonum/interp"

	"github.com/bcdev/beam-metimage/density"
	"github.com/bcdev/beam-metimage/histo"
)

// ErrDegenerate is returned when the samples do not support
// equalized bins. Callers fall back to equal-width bins.
var ErrDegenerate = errors.New("degenerate binning")

// A Binner computes equalized bin borders.
type Binner struct {
	// RefBins is the bin count of the reference histogram.
	RefBins int

	// Smoothing is applied to the reference histogram.
	Smoothing density.Smoothing
}

// OptimalBins returns the Freedman-Diaconis bin count for xs:
// ceil((max-min) / h) with h = 2*IQR/n^(1/3).
//
// xs is not modified. Non-finite values are ignored.
func OptimalBins(xs []float64) (int, error) {
	s := stats.Sample{Xs: histo.Finite(xs)}
	if len(s.Xs) == 0 {
		return 0, fmt.Errorf("%w: no samples", ErrDegenerate)
	}
	s = *s.Copy().Sort()
	h := 2 * s.IQR() / math.Cbrt(float64(len(s.Xs)))
	if h == 0 || math.IsNaN(h) {
		return 0, fmt.Errorf("%w: bin width %v", ErrDegenerate, h)
	}
	min, max := s.Bounds()
	n := math.Ceil((max - min) / h)
	if !(n > 0) || n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: bin count %v", ErrDegenerate, n)
	}
	return int(n), nil
}

// Borders returns equalized bin borders for the pooled samples xs.
// The result has OptimalBins(xs) entries, so it delimits one bin
// fewer. The first and last borders are the sample bounds. Border
// counts above RefBins are degenerate.
func (b Binner) Borders(xs []float64) ([]float64, error) {
	n, err := OptimalBins(xs)
	if err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, fmt.Errorf("%w: %d borders cannot delimit a bin", ErrDegenerate, n)
	}
	if n > b.RefBins {
		// Finer than the reference histogram: the borders would
		// carry no information.
		return nil, fmt.Errorf("%w: %d borders exceed reference resolution of %d bins", ErrDegenerate, n, b.RefBins)
	}
	min, max, _ := histo.FiniteBounds(xs)
	ref, err := histo.NewFixedWidth(min, max, b.RefBins)
	if err != nil {
		return nil, fmt.Errorf("%w: reference histogram: %v", ErrDegenerate, err)
	}
	ref.Add(xs...)
	cdf := density.New(ref, b.Smoothing).CDF
	return invert(cdf, ref.Borders, n)
}

// invert evaluates the inverse of the piecewise-linear map
// borders -> cdf at n equally spaced probabilities in [0, 1].
func invert(cdf, borders []float64, n int) ([]float64, error) {
	for i := 1; i < len(cdf); i++ {
		if !(cdf[i] > cdf[i-1]) {
			return nil, fmt.Errorf("%w: cumulative distribution flat or non-monotone at bin %d", ErrDegenerate, i-1)
		}
	}
	var pl interp.PiecewiseLinear
	if err := pl.Fit(cdf, borders); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = pl.Predict(float64(i) / float64(n-1))
	}
	for i := 1; i < n; i++ {
		if !(out[i] > out[i-1]) {
			return nil, fmt.Errorf("%w: inverted borders collapse at %d", ErrDegenerate, i)
		}
	}
	return out, nil
}

// Flatness returns the coefficient of variation of pdf, the standard
// deviation divided by the mean. It is near zero for a well
// equalized histogram.
func Flatness(pdf []float64) float64 {
	s := stats.Sample{Xs: pdf}
	return populationStdDev(s) / s.Mean()
}

func populationStdDev(s stats.Sample) float64 {
	n := float64(len(s.Xs))
	if n < 2 {
		return 0
	}
	// Sample.StdDev uses the n-1 estimator.
	return s.StdDev() * math.Sqrt((n-1)/n)
}
