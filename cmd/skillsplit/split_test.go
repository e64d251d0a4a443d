// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdev/beam-metimage/measure"
	"github.com/bcdev/beam-metimage/skillfmt"
)

const pixels = `surface,daytime,cloudheight,H1,N2,extra
0,1,3,0.9,5,x
1,1,1,0.8,,x
2,1,0,0.1,1,x
3,2,0,0.2,2,x
6,1,0,0.5,3,x
`

// readSplit parses split output into a map from
// "bucket measure class" to values.
func readSplit(t *testing.T, data []byte) map[string][]float64 {
	t.Helper()
	out := make(map[string][]float64)
	r := skillfmt.NewReader(bytes.NewReader(data), "split")
	for r.Scan() {
		rec, err := r.Record()
		require.NoError(t, err)
		k := rec.GetFileConfig("daytime") + "/" + rec.GetFileConfig("surface") + "/" + rec.GetFileConfig("cloudtype") +
			" " + rec.Measure.String() + " " + rec.Class.String()
		require.NotContains(t, out, k, "duplicate record")
		out[k] = append([]float64(nil), rec.Values...)
	}
	require.NoError(t, r.Err())
	return out
}

func TestSplit(t *testing.T) {
	var buf bytes.Buffer
	st, err := split(strings.NewReader(pixels), &buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 5, st.pixels)
	assert.Equal(t, 1, st.unlabeled)

	got := readSplit(t, buf.Bytes())
	assert.Equal(t, st.records, len(got))

	check := func(key string, want ...float64) {
		t.Helper()
		if want == nil {
			assert.NotContains(t, got, key)
			return
		}
		assert.Equal(t, want, got[key], key)
	}
	check("ALL/ALL/ALL H1 cloud", 0.9, 0.8)
	check("ALL/ALL/ALL H1 nocloud", 0.1, 0.2)
	check("ALL/ALL/ALL N2 cloud", 5)
	check("ALL/ALL/ALL N2 nocloud", 1, 2)
	check("DAY/SEA/HIGH H1 cloud", 0.9)
	check("DAY/SEA/HIGH H1 nocloud", 0.1)
	check("DAY/SEA/SEMITRANSPARENT H1 cloud", 0.8)
	check("DAY/SEA/SEMITRANSPARENT N2 cloud")
	check("NIGHT/LAND/ALL H1 cloud")
	check("NIGHT/LAND/ALL H1 nocloud", 0.2)
	check("NIGHT/SEA/ALL H1 nocloud")
	check("TWILIGHT/ALL/ALL H1 cloud")
}

func TestSplitMeasures(t *testing.T) {
	var buf bytes.Buffer
	_, err := split(strings.NewReader(pixels), &buf, []measure.ID{measure.H1})
	require.NoError(t, err)
	got := readSplit(t, buf.Bytes())
	for k := range got {
		assert.Contains(t, k, " H1 ")
	}
	assert.NotEmpty(t, got)
}

func TestSplitErrors(t *testing.T) {
	check := func(data string, ids []measure.ID, wantErr string) {
		t.Helper()
		_, err := split(strings.NewReader(data), new(bytes.Buffer), ids)
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), wantErr)
		}
	}
	check("", nil, "empty input")
	check("daytime,cloudheight,H1\n", nil, "missing surface column")
	check("surface,daytime,cloudheight,extra\n", nil, "no measure columns")
	check(pixels, []measure.ID{measure.N5}, "missing N5 column")
	check("surface,daytime,cloudheight,H1\nx,1,1,0.5\n", nil, `line 2: bad surface code "x"`)
	check("surface,daytime,cloudheight,H1\n0,1\n", nil, "line 2: have 2 columns, want 4")
}

func TestSplitEmptyCodes(t *testing.T) {
	var buf bytes.Buffer
	st, err := split(strings.NewReader("surface,daytime,cloudheight,H1\n,1,1,0.5\n0,,,0.7\n"), &buf, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, st.unlabeled)
	got := readSplit(t, buf.Bytes())
	assert.Equal(t, []float64{0.7}, got["ALL/ALL/ALL H1 cloud"])
	assert.NotContains(t, got, "DAY/ALL/ALL H1 cloud")
	assert.NotContains(t, got, "ALL/ALL/LOW H1 cloud")
}
