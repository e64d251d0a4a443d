// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package report formats distinction skill results as a TSV file, an
// aligned text table, a JSON histogram dump and an SVG chart.
//
// All formats lay results out as a grid with one row per bucket, in
// the order buckets were first observed, and one column per measure,
// in measure order.
package report

import (
	"sort"

	"github.com/bcdev/beam-metimage/measure"
	"github.com/bcdev/beam-metimage/skillfmt"
	"github.com/bcdev/beam-metimage/skillstat"
)

// columnTitles maps group-by keys to their report column titles.
var columnTitles = map[string]string{
	"daytime":   "Daytime",
	"surface":   "Non-cloudy Surface",
	"cloudtype": "Cloud Type",
}

// ColumnTitle returns the report column title of a group-by key.
func ColumnTitle(key string) string {
	if t, ok := columnTitles[key]; ok {
		return t
	}
	return key
}

type grid struct {
	keys     []string
	rows     omap[string, *row]
	measures []measure.ID
}

type row struct {
	bucket string
	key    []skillfmt.Config
	cells  map[measure.ID]*skillstat.Result
}

func newGrid(results []skillstat.Result) *grid {
	g := new(grid)
	g.rows.New = func(bucket string) *row {
		return &row{bucket: bucket, cells: make(map[measure.ID]*skillstat.Result)}
	}
	seen := make(map[measure.ID]bool)
	for i := range results {
		res := &results[i]
		if g.keys == nil {
			for _, k := range res.Key {
				g.keys = append(g.keys, k.Key)
			}
		}
		r := g.rows.LoadOrNew(res.Bucket)
		if r.key == nil {
			r.key = res.Key
		}
		r.cells[res.Measure] = res
		if !seen[res.Measure] {
			seen[res.Measure] = true
			g.measures = append(g.measures, res.Measure)
		}
	}
	sort.Slice(g.measures, func(i, j int) bool { return g.measures[i] < g.measures[j] })
	return g
}

// each calls f for every result in grid order.
func (g *grid) each(f func(r *row, res *skillstat.Result)) {
	for _, bucket := range g.rows.Keys {
		r := g.rows.Load(bucket)
		for _, m := range g.measures {
			if res := r.cells[m]; res != nil {
				f(r, res)
			}
		}
	}
}

func (r *row) values(n int) []string {
	vals := make([]string, n)
	for i := range vals {
		if i < len(r.key) {
			vals[i] = r.key[i].Value
		}
	}
	return vals
}

// omap is an insertion-ordered map.
//
// The zero value of omap is a usable map.
type omap[K comparable, V any] struct {
	// New is called to create new values for LoadOrNew.
	New func(key K) V

	// Keys is the keys of this map in insertion order.
	Keys []K

	vals map[K]V
}

// Load returns the value associated with key, or the zero value if
// key is not in the map.
func (m *omap[K, V]) Load(key K) V {
	return m.vals[key]
}

// LoadOrNew is like Load, but if key doesn't exist, it first invokes
// m.New and stores the returned value under key.
func (m *omap[K, V]) LoadOrNew(key K) V {
	val, ok := m.vals[key]
	if !ok {
		val = m.New(key)
		m.Store(key, val)
	}
	return val
}

// Store sets key's value to value. If this is the first time key has
// been stored, it adds key to the insertion order.
func (m *omap[K, V]) Store(key K, value V) {
	if m.vals == nil {
		m.vals = make(map[K]V)
	}
	if _, ok := m.vals[key]; !ok {
		m.Keys = append(m.Keys, key)
	}
	m.vals[key] = value
}
