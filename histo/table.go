// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package histo implements binned frequency tables over a closed
// value range.
//
// A Table is a plain value: counts plus the bin borders that delimit
// them. Borders are either equal-width, as produced by NewFixedWidth,
// or supplied by the caller, as with NewUnequal. Smoothing and
// cumulative distributions live in package density.
package histo

import (
	"fmt"
	"math"
	"sort"

	"github.com/aclements/go-moremath/vec"
	"gonum.org/v1/gonum/floats"
)

// A Table accumulates sample counts into bins.
//
// Samples that are NaN, infinite, or outside [Min, Max] are dropped.
// Repeated calls to Add accumulate into the same counts, which is how
// samples from several sources are pooled.
type Table struct {
	// Counts[i] is the number of samples in bin i.
	Counts []int

	// Borders has len(Counts)+1 strictly increasing values.
	// Bin i covers [Borders[i], Borders[i+1]), except the last
	// bin, which also includes Borders[len(Counts)].
	Borders []float64

	// Min and Max are the inclusive bounds used to admit samples.
	Min, Max float64

	equal bool
}

// NewFixedWidth returns an empty table with numBins equal-width bins
// spanning [min, max].
func NewFixedWidth(min, max float64, numBins int) (*Table, error) {
	if numBins < 1 {
		return nil, fmt.Errorf("bin count must be at least 1, got %d", numBins)
	}
	if !(min < max) || math.IsInf(max-min, 0) {
		return nil, fmt.Errorf("invalid range [%v, %v]", min, max)
	}
	return &Table{
		Counts:  make([]int, numBins),
		Borders: EqualBorders(min, max, numBins),
		Min:     min,
		Max:     max,
		equal:   true,
	}, nil
}

// NewUnequal returns an empty table whose bins are delimited by
// borders. There are len(borders)-1 bins. The table copies borders.
func NewUnequal(borders []float64) (*Table, error) {
	if len(borders) < 2 {
		return nil, fmt.Errorf("need at least 2 borders, got %d", len(borders))
	}
	for i, b := range borders {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return nil, fmt.Errorf("border %d is not finite", i)
		}
		if i > 0 && !(borders[i-1] < b) {
			return nil, fmt.Errorf("borders not strictly increasing at %d (%v >= %v)", i, borders[i-1], b)
		}
	}
	n := len(borders) - 1
	return &Table{
		Counts:  make([]int, n),
		Borders: append([]float64(nil), borders...),
		Min:     borders[0],
		Max:     borders[n],
	}, nil
}

// EqualBorders returns the numBins+1 borders of numBins equal-width
// bins over [min, max].
func EqualBorders(min, max float64, numBins int) []float64 {
	b := vec.Linspace(min, max, numBins+1)
	// Pin the upper edge; Linspace accumulates rounding.
	b[numBins] = max
	return b
}

// Len returns the number of bins.
func (t *Table) Len() int {
	return len(t.Counts)
}

// EqualWidth reports whether t was built with equal-width bins.
func (t *Table) EqualWidth() bool {
	return t.equal
}

// Total returns the number of samples counted so far.
func (t *Table) Total() int {
	n := 0
	for _, c := range t.Counts {
		n += c
	}
	return n
}

// Add counts each admissible sample in xs and returns the number
// of samples that were dropped.
func (t *Table) Add(xs ...float64) (dropped int) {
	for _, x := range xs {
		i, ok := t.bin(x)
		if !ok {
			dropped++
			continue
		}
		t.Counts[i]++
	}
	return dropped
}

// bin returns the bin index for x.
func (t *Table) bin(x float64) (int, bool) {
	if math.IsNaN(x) || math.IsInf(x, 0) || x < t.Min || x > t.Max {
		return 0, false
	}
	n := len(t.Counts)
	var i int
	if t.equal {
		i = int((x - t.Min) / (t.Max - t.Min) * float64(n))
	} else {
		// First border greater than x, minus one.
		i = sort.Search(len(t.Borders), func(j int) bool { return t.Borders[j] > x }) - 1
	}
	// x == Max lands one past the end.
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i, true
}

// Reset zeroes all counts, keeping the borders.
func (t *Table) Reset() {
	for i := range t.Counts {
		t.Counts[i] = 0
	}
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	t2 := *t
	t2.Counts = append([]int(nil), t.Counts...)
	t2.Borders = append([]float64(nil), t.Borders...)
	return &t2
}

// FiniteBounds returns the smallest and largest finite values over
// all of the sample sets. ok is false if there are none.
func FiniteBounds(sets ...[]float64) (min, max float64, ok bool) {
	for _, xs := range sets {
		fin := Finite(xs)
		if len(fin) == 0 {
			continue
		}
		lo, hi := floats.Min(fin), floats.Max(fin)
		if !ok || lo < min {
			min = lo
		}
		if !ok || hi > max {
			max = hi
		}
		ok = true
	}
	return
}

// Finite returns the finite values of xs. It returns xs itself if
// every value is finite.
func Finite(xs []float64) []float64 {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			out := append([]float64(nil), xs[:i]...)
			for _, x := range xs[i+1:] {
				if !math.IsNaN(x) && !math.IsInf(x, 0) {
					out = append(out, x)
				}
			}
			return out
		}
	}
	return xs
}
