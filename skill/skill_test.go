// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skill

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdev/beam-metimage/density"
	"github.com/bcdev/beam-metimage/histo"
)

var smooth = density.Smoothing{Alpha: 1, NormBins: 20}

func TestDimensionErrors(t *testing.T) {
	check := func(name string, pdfA, pdfB, borders []float64, want DimensionKind) {
		t.Helper()
		_, err := Skill(pdfA, pdfB, borders, numNoCloud, numCloud)
		var de *DimensionError
		if !errors.As(err, &de) {
			t.Fatalf("%s: got %v, want *DimensionError", name, err)
		}
		if de.Kind != want {
			t.Errorf("%s: got kind %d, want %d", name, de.Kind, want)
		}
	}
	check("unequal",
		[]float64{1, 2, 3},
		[]float64{1, 2, 3, 4},
		[]float64{0.1, 0.2, 0.3, 0.4},
		UnequalLength)
	check("bins",
		[]float64{2, 3, 4, 5},
		[]float64{1, 2, 3, 4},
		[]float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6},
		BinMismatch)

	_, err := Skill([]float64{1, 2, 3}, []float64{1, 2, 3, 4}, []float64{0.1, 0.2, 0.3, 0.4}, 1, 1)
	assert.Contains(t, err.Error(), "Histograms have unequal length")
	_, err = Skill([]float64{2, 3, 4, 5}, []float64{1, 2, 3, 4}, []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6}, 1, 1)
	assert.Contains(t, err.Error(), "Number of histogram bins does not match")
}

func TestLiteral(t *testing.T) {
	t.Run("reflectance", func(t *testing.T) {
		got, err := Skill(reflectanceNoCloud, reflectanceCloud, reflectanceBorders, numNoCloud, numCloud)
		require.NoError(t, err)
		assert.InDelta(t, 0.857929, got, 1e-5)
	})
	t.Run("ndvi", func(t *testing.T) {
		got, err := Skill(ndviNoCloud, ndviCloud, ndviBorders, numNoCloud, numCloud)
		require.NoError(t, err)
		assert.InDelta(t, 0.160655, got, 1e-5)
	})
}

// exact integrates the squared cumulative difference against the
// pooled distribution bin by bin. All three are linear within a bin,
// so the integral has a closed form.
func exact(cdfA, cdfB []float64, numA, numB int) float64 {
	na, nb := float64(numA), float64(numB)
	var sum float64
	for i := 0; i+1 < len(cdfA); i++ {
		d0, d1 := cdfA[i]-cdfB[i], cdfA[i+1]-cdfB[i+1]
		dAB := ((cdfA[i+1]-cdfA[i])*na + (cdfB[i+1]-cdfB[i])*nb) / (na + nb)
		sum += dAB * (d0*d0 + d0*d1 + d1*d1) / 3
	}
	return 3 * sum
}

func TestAgainstClosedForm(t *testing.T) {
	for _, tc := range []struct {
		name       string
		a, b, bins []float64
	}{
		{"reflectance", reflectanceNoCloud, reflectanceCloud, reflectanceBorders},
		{"ndvi", ndviNoCloud, ndviCloud, ndviBorders},
	} {
		t.Run(tc.name, func(t *testing.T) {
			want := exact(density.CDF(tc.a), density.CDF(tc.b), numNoCloud, numCloud)
			got, err := Skill(tc.a, tc.b, tc.bins, numNoCloud, numCloud)
			require.NoError(t, err)
			assert.InDelta(t, want, got, 1e-4)
		})
	}
}

func TestCoarseGrid(t *testing.T) {
	fine, err := Skill(ndviNoCloud, ndviCloud, ndviBorders, numNoCloud, numCloud)
	require.NoError(t, err)
	coarse, err := Estimator{Quantiles: 1000}.Skill(ndviNoCloud, ndviCloud, ndviBorders, numNoCloud, numCloud)
	require.NoError(t, err)
	assert.InDelta(t, fine, coarse, 1e-2)

	_, err = Estimator{Quantiles: 1}.Skill(ndviNoCloud, ndviCloud, ndviBorders, numNoCloud, numCloud)
	assert.Error(t, err)
}

func TestSymmetric(t *testing.T) {
	ab, err := Skill(ndviNoCloud, ndviCloud, ndviBorders, numNoCloud, numCloud)
	require.NoError(t, err)
	ba, err := Skill(ndviCloud, ndviNoCloud, ndviBorders, numCloud, numNoCloud)
	require.NoError(t, err)
	assert.InDelta(t, ab, ba, 1e-12)
}

func TestFromCDF(t *testing.T) {
	cdfA, cdfB := density.CDF(reflectanceNoCloud), density.CDF(reflectanceCloud)
	got, err := Estimator{}.FromCDF(cdfA, cdfB, reflectanceBorders, numNoCloud, numCloud)
	require.NoError(t, err)
	want, err := Skill(reflectanceNoCloud, reflectanceCloud, reflectanceBorders, numNoCloud, numCloud)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	_, err = Estimator{}.FromCDF(cdfA, cdfB[1:], reflectanceBorders, numNoCloud, numCloud)
	var de *DimensionError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, UnequalLength, de.Kind)

	_, err = Estimator{}.FromCDF(cdfA, cdfB, reflectanceBorders[1:], numNoCloud, numCloud)
	require.ErrorAs(t, err, &de)
	assert.Equal(t, BinMismatch, de.Kind)

	_, err = Estimator{}.FromCDF(cdfA, cdfB, reflectanceBorders, 0, 0)
	assert.Error(t, err)
}

func TestFromCDFBadBorders(t *testing.T) {
	cdfA, cdfB := density.CDF(reflectanceNoCloud), density.CDF(reflectanceCloud)
	check := func(name string, mod func(b []float64)) {
		t.Helper()
		borders := append([]float64(nil), reflectanceBorders...)
		mod(borders)
		got, err := Estimator{}.FromCDF(cdfA, cdfB, borders, numNoCloud, numCloud)
		if err == nil {
			t.Errorf("%s: got skill %v, want error", name, got)
		}
	}
	check("duplicate", func(b []float64) { b[3] = b[2] })
	check("reversed", func(b []float64) { b[0], b[len(b)-1] = b[len(b)-1], b[0] })
	check("nan", func(b []float64) { b[5] = math.NaN() })
	check("nan first", func(b []float64) { b[0] = math.NaN() })
}

func densities(t *testing.T, a, b []float64, min, max float64, bins int) (*density.Density, *density.Density) {
	t.Helper()
	ta, err := histo.NewFixedWidth(min, max, bins)
	require.NoError(t, err)
	tb := ta.Clone()
	ta.Add(a...)
	tb.Add(b...)
	return density.New(ta, smooth), density.New(tb, smooth)
}

func TestSeparated(t *testing.T) {
	min, max, ok := histo.FiniteBounds(rho860Cloud, rho860NoCloud)
	require.True(t, ok)
	noCloud, cloud := densities(t, rho860NoCloud, rho860Cloud, min, max, 20)
	require.Equal(t, 200, noCloud.N)
	require.Equal(t, 100, cloud.N)

	got, err := Estimator{}.Densities(noCloud, cloud)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 0.05)
}

func TestUniform(t *testing.T) {
	r := rand.New(rand.NewPCG(560, 1))
	a := make([]float64, 100)
	b := make([]float64, 200)
	for i := range a {
		a[i] = r.Float64()
	}
	for i := range b {
		b[i] = r.Float64()
	}
	da, db := densities(t, a, b, 0, 1, 20)
	got, err := Estimator{}.Densities(da, db)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, got, 0.05)
	assert.GreaterOrEqual(t, got, 0.0)
}

func TestIdentical(t *testing.T) {
	got, err := Skill(ndviCloud, ndviCloud, ndviBorders, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestDensitiesBorders(t *testing.T) {
	a, b := densities(t, []float64{0.1, 0.2}, []float64{0.3}, 0, 1, 4)
	b.Borders = histo.EqualBorders(0, 2, 4)
	_, err := Estimator{}.Densities(a, b)
	assert.Error(t, err)
}
