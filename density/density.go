// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package density derives smoothed probability densities and
// normalized cumulative distributions from binned counts.
package density

import (
	"gonum.org/v1/gonum/floats"

	"github.com/bcdev/beam-metimage/histo"
)

// Smoothing configures additive constant smoothing.
//
// Each bin receives Alpha / (n + Alpha*NormBins) on top of its count,
// where n is the number of bins. NormBins is a fixed constant that is
// deliberately independent of n, so smoothing strength does not
// change with the bin count. A NormBins of 0 uses n instead.
type Smoothing struct {
	Alpha    float64
	NormBins int
}

// Increment returns the constant added to every bin of an n-bin
// table.
func (s Smoothing) Increment(n int) float64 {
	if s.Alpha == 0 {
		return 0
	}
	norm := s.NormBins
	if norm == 0 {
		norm = n
	}
	return s.Alpha / (float64(n) + s.Alpha*float64(norm))
}

// PDF returns the smoothed density of counts. The result is not
// normalized.
func PDF(counts []int, s Smoothing) []float64 {
	inc := s.Increment(len(counts))
	pdf := make([]float64, len(counts))
	for i, c := range counts {
		pdf[i] = float64(c) + inc
	}
	return pdf
}

// CDF returns the len(pdf)+1 cumulative distribution of pdf,
// normalized so cdf[0] == 0 and cdf[len(pdf)] == 1.
//
// The result is NaN if pdf sums to zero; callers must not pass
// empty tables with zero smoothing.
func CDF(pdf []float64) []float64 {
	cdf := make([]float64, len(pdf)+1)
	floats.CumSum(cdf[1:], pdf)
	total := cdf[len(pdf)]
	for i := range cdf {
		cdf[i] /= total
	}
	return cdf
}

// A Density is the smoothed density and cumulative distribution of
// one table.
type Density struct {
	Borders []float64
	PDF     []float64
	CDF     []float64

	// N is the number of samples in the table.
	N int
}

// New computes the density of t. The borders are shared with t.
func New(t *histo.Table, s Smoothing) *Density {
	pdf := PDF(t.Counts, s)
	return &Density{
		Borders: t.Borders,
		PDF:     pdf,
		CDF:     CDF(pdf),
		N:       t.Total(),
	}
}
