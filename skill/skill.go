// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package skill computes the distinction skill of two binned
// distributions.
//
// The distinction skill is a Cramér-von Mises/Anderson type
// two-sample statistic: the squared difference of the two cumulative
// distributions, integrated against their pooled distribution and
// scaled by 3. It is near 0 for identical distributions and near 1
// for distributions that do not overlap.
package skill

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/interp"

	"github.com/bcdev/beam-metimage/density"
)

// DefaultQuantiles is the default size of the evaluation grid.
const DefaultQuantiles = 100000

// DimensionKind classifies a DimensionError.
type DimensionKind int

const (
	// UnequalLength means the two densities differ in length.
	UnequalLength DimensionKind = 1 + iota
	// BinMismatch means the borders do not delimit the densities'
	// bins.
	BinMismatch
)

// A DimensionError reports inconsistently sized inputs. It indicates
// a bug in the caller and is never recovered from.
type DimensionError struct {
	Kind      DimensionKind
	Got, Want int
}

func (e *DimensionError) Error() string {
	switch e.Kind {
	case UnequalLength:
		return fmt.Sprintf("Histograms have unequal length (%d != %d) - cannot proceed.", e.Got, e.Want)
	case BinMismatch:
		return fmt.Sprintf("Number of histogram bins does not match (%d borders, want %d) - cannot proceed.", e.Got, e.Want)
	}
	return fmt.Sprintf("dimension error %d: %d != %d", e.Kind, e.Got, e.Want)
}

// An Estimator computes distinction skills on a fixed evaluation
// grid. The zero value uses DefaultQuantiles.
type Estimator struct {
	// Quantiles is the number of grid points spanning the
	// borders. It must be at least 2 if set.
	Quantiles int
}

func (e Estimator) quantiles() int {
	if e.Quantiles == 0 {
		return DefaultQuantiles
	}
	return e.Quantiles
}

// Skill returns the distinction skill of the densities pdfA and pdfB
// over the shared bin borders. numA and numB are the sample counts
// behind each density and weight the pooled distribution.
//
// The densities are normalized without further smoothing.
func (e Estimator) Skill(pdfA, pdfB, borders []float64, numA, numB int) (float64, error) {
	if err := check(pdfA, pdfB, borders); err != nil {
		return 0, err
	}
	return e.FromCDF(density.CDF(pdfA), density.CDF(pdfB), borders, numA, numB)
}

// FromCDF is like Skill, but takes precomputed cumulative
// distributions, each with one more entry than there are bins.
func (e Estimator) FromCDF(cdfA, cdfB, borders []float64, numA, numB int) (float64, error) {
	if len(cdfA) != len(cdfB) {
		return 0, &DimensionError{UnequalLength, len(cdfA), len(cdfB)}
	}
	if len(borders) != len(cdfA) || len(borders) < 2 {
		return 0, &DimensionError{BinMismatch, len(borders), len(cdfA)}
	}
	m := e.quantiles()
	if m < 2 {
		return 0, fmt.Errorf("evaluation grid needs at least 2 points, got %d", m)
	}
	if numA+numB <= 0 {
		return 0, fmt.Errorf("no samples behind distributions (%d + %d)", numA, numB)
	}
	for i := 1; i < len(borders); i++ {
		if !(borders[i] > borders[i-1]) {
			return 0, fmt.Errorf("bin borders not strictly increasing at %d", i)
		}
	}

	na, nb := float64(numA), float64(numB)
	cdfAB := make([]float64, len(cdfA))
	for i := range cdfAB {
		cdfAB[i] = (cdfA[i]*na + cdfB[i]*nb) / (na + nb)
	}

	var fA, fB, fAB interp.PiecewiseLinear
	if err := fA.Fit(borders, cdfA); err != nil {
		return 0, fmt.Errorf("interpolating first distribution: %w", err)
	}
	if err := fB.Fit(borders, cdfB); err != nil {
		return 0, fmt.Errorf("interpolating second distribution: %w", err)
	}
	if err := fAB.Fit(borders, cdfAB); err != nil {
		return 0, fmt.Errorf("interpolating pooled distribution: %w", err)
	}

	lo, hi := borders[0], borders[len(borders)-1]
	step := (hi - lo) / float64(m)
	a := make([]float64, m)
	b := make([]float64, m)
	ab := make([]float64, m)
	for k := range a {
		x := lo + float64(k)*step
		a[k] = fA.Predict(x)
		b[k] = fB.Predict(x)
		ab[k] = fAB.Predict(x)
	}
	d := floats.SubTo(make([]float64, m), a, b)
	floats.MulTo(d, d, d)

	return 3 * trapezoid(ab, d), nil
}

// trapezoid integrates ys over the non-uniform abscissae xs.
func trapezoid(xs, ys []float64) float64 {
	var sum float64
	for k := 0; k+1 < len(xs); k++ {
		sum += (xs[k+1] - xs[k]) * (ys[k+1] + ys[k])
	}
	return 0.5 * sum
}

func check(pdfA, pdfB, borders []float64) error {
	if len(pdfA) != len(pdfB) {
		return &DimensionError{UnequalLength, len(pdfA), len(pdfB)}
	}
	if len(borders) != len(pdfA)+1 {
		return &DimensionError{BinMismatch, len(borders), len(pdfA) + 1}
	}
	return nil
}

// Skill computes the distinction skill with the default grid.
func Skill(pdfA, pdfB, borders []float64, numA, numB int) (float64, error) {
	return Estimator{}.Skill(pdfA, pdfB, borders, numA, numB)
}

// Densities computes the distinction skill of two densities over the
// same borders, using their precomputed cumulative distributions and
// sample counts.
func (e Estimator) Densities(a, b *density.Density) (float64, error) {
	if err := check(a.PDF, b.PDF, a.Borders); err != nil {
		return 0, err
	}
	if len(b.Borders) != len(a.Borders) {
		return 0, &DimensionError{BinMismatch, len(b.Borders), len(a.Borders)}
	}
	for i := range a.Borders {
		if a.Borders[i] != b.Borders[i] {
			return 0, fmt.Errorf("densities have different bin borders at %d", i)
		}
	}
	return e.FromCDF(a.CDF, b.CDF, a.Borders, a.N, b.N)
}
