// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package skillproc filters sample records by boolean queries.
//
// Queries test record keys with anchored regexps or numeric
// comparisons:
//
//	surface:(SEA ICE) .measure:H. .n>=50
//
// The special key ".value" tests individual sample values, so
//
//	.measure:N1 .value>=0 .value<=1
//
// keeps only the N1 samples in [0, 1].
package skillproc

import (
	"fmt"

	"github.com/bcdev/beam-metimage/skillfmt"
	"github.com/bcdev/beam-metimage/skillproc/internal/kvql"
)

// A Filter filters sample records and the values in them.
type Filter struct {
	// query is the filter query.
	query kvql.Query

	// extractors records functions for extracting keys for
	// QueryMatch nodes.
	extractors map[string]skillfmt.Extractor

	// usesValues indicates that the results of this filter may be
	// different for different values of one record.
	usesValues bool
}

// NewFilter constructs a record filter from a boolean query.
func NewFilter(query string) (*Filter, error) {
	q, err := kvql.Parse(query)
	if err != nil {
		return nil, err
	}

	// Collect extractors for different keys.
	f := &Filter{
		query:      q,
		extractors: make(map[string]skillfmt.Extractor),
	}
	var walk func(q kvql.Query) error
	walk = func(q kvql.Query) error {
		switch q := q.(type) {
		default:
			panic(fmt.Sprintf("unknown query node type %T", q))
		case *kvql.QueryOp:
			for _, sub := range q.Exprs {
				if err := walk(sub); err != nil {
					return err
				}
			}
		case *kvql.QueryMatch:
			if _, ok := f.extractors[q.Key]; ok {
				break
			}
			if q.Key == ".value" {
				f.usesValues = true
			} else {
				ext, err := skillfmt.NewExtractor(q.Key)
				if err != nil {
					return &kvql.SyntaxError{Query: query, Off: q.Off, Msg: err.Error()}
				}
				f.extractors[q.Key] = ext
			}
		}
		return nil
	}
	if err := walk(q); err != nil {
		return nil, err
	}

	return f, nil
}

// Match returns the set of rec.Values that match f.
func (f *Filter) Match(rec *skillfmt.Record) Match {
	m := f.match(rec, f.query)
	return m.finish(!f.usesValues, len(rec.Values))
}

func (f *Filter) match(rec *skillfmt.Record, node kvql.Query) (m matchBuilder) {
	switch node := node.(type) {
	case *kvql.QueryOp:
		if len(node.Exprs) == 0 {
			if f.usesValues {
				m = newMatchBuilder(len(rec.Values))
			}
			switch node.Op {
			case kvql.OpAnd:
				m.setAll()
				return
			case kvql.OpOr:
				return
			}
		}

		m = f.match(rec, node.Exprs[0])
		switch node.Op {
		case kvql.OpNot:
			m.head = ^m.head
			for i := range m.rest {
				m.rest[i] = ^m.rest[i]
			}
		case kvql.OpAnd:
			for _, sub := range node.Exprs[1:] {
				m2 := f.match(rec, sub)
				m.head &= m2.head
				for i := range m.rest {
					m.rest[i] &= m2.rest[i]
				}
			}
		case kvql.OpOr:
			for _, sub := range node.Exprs[1:] {
				m2 := f.match(rec, sub)
				m.head |= m2.head
				for i := range m.rest {
					m.rest[i] |= m2.rest[i]
				}
			}
		}

	case *kvql.QueryMatch:
		if f.usesValues {
			m = newMatchBuilder(len(rec.Values))
		}
		// If we're not tracking values, we only use bit 0 of
		// the match.

		if f.usesValues && node.Key == ".value" {
			for i, v := range rec.Values {
				if node.MatchFloat(v) {
					m.set(i)
				}
			}
			return
		}
		ext := f.extractors[node.Key]
		if node.Match(ext(rec)) {
			m.setAll()
		}
	}
	return
}

type matchBuilder struct {
	head uint64
	rest []uint64
}

func newMatchBuilder(n int) matchBuilder {
	if n <= 64 {
		return matchBuilder{}
	}
	return matchBuilder{rest: make([]uint64, (n+63)/64-1)}
}

func (m *matchBuilder) set(i int) {
	if i < 64 {
		m.head |= 1 << i
	} else {
		m.rest[i/64-1] |= 1 << (i % 64)
	}
}

func (m *matchBuilder) setAll() {
	m.head = ^uint64(0)
	for i := range m.rest {
		m.rest[i] = ^uint64(0)
	}
}

func (m *matchBuilder) finish(broadcast bool, n int) Match {
	out := Match{n: n, head: m.head, rest: m.rest}
	if broadcast {
		// Broadcast bit 0 to all bits.
		out.allEqual = true
		return out
	}
	if n == 0 {
		// No values to test. The record keys decided.
		out.allEqual = true
		return out
	}
	b0 := m.head&1 != 0
	for i := 1; i < n; i++ {
		if out.Test(i) != b0 {
			return out
		}
	}
	out.allEqual = true
	out.head &= 1
	out.rest = nil
	return out
}

// A Match records the set of record values that matched a filter
// query.
type Match struct {
	// n is the number of bits in this match.
	n int

	// allEqual means bit 0 holds the state for all bits.
	allEqual bool

	head uint64
	rest []uint64
}

// All returns true if all values in a record matched the query.
func (m *Match) All() bool {
	return m.allEqual && m.head&1 != 0
}

// Any returns true if any values in a record matched the query.
func (m *Match) Any() bool {
	return !m.allEqual || m.head&1 != 0
}

// Test tests whether value i matched the query.
func (m *Match) Test(i int) bool {
	if i < 0 || i >= m.n {
		return false
	} else if m.allEqual {
		return m.head&1 != 0
	} else if i < 64 {
		return m.head&(1<<i) != 0
	}
	return m.rest[i/64-1]&(1<<(i%64)) != 0
}

// Apply removes values from rec that don't match m and reports
// whether the record should be kept. A record is kept if any value
// matched, or if it had no values and its keys matched.
func (m *Match) Apply(rec *skillfmt.Record) bool {
	if m.All() {
		return true
	}
	if !m.Any() {
		rec.Values = rec.Values[:0]
		return false
	}

	j := 0
	for i, val := range rec.Values {
		if m.Test(i) {
			rec.Values[j] = val
			j++
		}
	}
	rec.Values = rec.Values[:j]
	return j > 0
}
