// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measure enumerates the cloud detection measures and maps
// each to the computation that derives it from a pixel.
package measure

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// An ID identifies a measure. Heritage measures H1 through H7 have
// IDs 1 through 7; new measures N1 through N7 have IDs 8 through 14.
type ID int

const (
	H1 ID = 1 + iota
	H2
	H3
	H4
	H5
	H6
	H7
	N1
	N2
	N3
	N4
	N5
	N6
	N7

	numHeritage = 7
	maxID       = N7
)

// All returns every measure in report order.
func All() []ID {
	ids := make([]ID, 0, maxID)
	for id := H1; id <= maxID; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Valid reports whether id is a known measure.
func (id ID) Valid() bool {
	return id >= H1 && id <= maxID
}

// Heritage reports whether id is one of the heritage measures.
func (id ID) Heritage() bool {
	return id >= H1 && id <= H7
}

func (id ID) String() string {
	switch {
	case id.Heritage():
		return "H" + strconv.Itoa(int(id))
	case id.Valid():
		return "N" + strconv.Itoa(int(id)-numHeritage)
	}
	return "ID(" + strconv.Itoa(int(id)) + ")"
}

// Parse parses a measure name such as "H3" or "n7".
func Parse(s string) (ID, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("bad measure %q", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 1 || n > numHeritage {
		return 0, fmt.Errorf("bad measure %q", s)
	}
	switch s[0] {
	case 'H', 'h':
		return ID(n), nil
	case 'N', 'n':
		return ID(n + numHeritage), nil
	}
	return 0, fmt.Errorf("bad measure %q", s)
}

// ParseList parses a comma-separated list of measures. An empty
// string means all measures.
func ParseList(s string) ([]ID, error) {
	if strings.TrimSpace(s) == "" {
		return All(), nil
	}
	var ids []ID
	for _, f := range strings.Split(s, ",") {
		id, err := Parse(strings.TrimSpace(f))
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// A Pixel provides named input values of one pixel.
type Pixel interface {
	// Value returns the named value. ok is false if the pixel
	// has no such value.
	Value(name string) (v float64, ok bool)
}

// A Func derives a measure from a pixel. ok is false if the measure
// is undefined for the pixel.
type Func func(p Pixel) (v float64, ok bool)

// Column returns a Func that reads the named value unchanged.
func Column(name string) Func {
	return func(p Pixel) (float64, bool) {
		v, ok := p.Value(name)
		if !ok || math.IsNaN(v) {
			return 0, false
		}
		return v, true
	}
}

// A Def is a registered measure.
type Def struct {
	ID      ID
	Name    string
	Compute Func
}

// A Registry maps measure IDs to their computations.
type Registry struct {
	defs map[ID]Def
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[ID]Def)}
}

// DefaultRegistry returns a registry that binds each measure to the
// pixel value of the same name, for inputs that carry precomputed
// measures.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, id := range All() {
		r.Register(id, id.String(), Column(id.String()))
	}
	return r
}

// Register binds id to f, replacing any earlier binding.
func (r *Registry) Register(id ID, name string, f Func) {
	if !id.Valid() {
		panic(fmt.Sprintf("measure: register of invalid %v", id))
	}
	r.defs[id] = Def{id, name, f}
}

// Lookup returns the definition of id.
func (r *Registry) Lookup(id ID) (Def, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// Defs returns the registered definitions in ID order.
func (r *Registry) Defs() []Def {
	out := make([]Def, 0, len(r.defs))
	for _, d := range r.defs {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Subset returns a registry holding only ids.
func (r *Registry) Subset(ids []ID) (*Registry, error) {
	sub := NewRegistry()
	for _, id := range ids {
		d, ok := r.defs[id]
		if !ok {
			return nil, fmt.Errorf("measure %v not registered", id)
		}
		sub.defs[id] = d
	}
	return sub, nil
}
