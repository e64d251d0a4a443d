// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kvql

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// Query is a node in the query tree. It can either be a QueryOp or a
// QueryMatch.
type Query interface {
	isQuery()
	String() string
}

// Cmp is the test a QueryMatch applies to a value.
type Cmp int

const (
	// CmpRegexp matches the value against an anchored regexp.
	CmpRegexp Cmp = iota
	CmpLess
	CmpLessEq
	CmpGreater
	CmpGreaterEq
)

var cmpStrings = [...]string{":", "<", "<=", ">", ">="}

func (c Cmp) String() string { return cmpStrings[c] }

// QueryMatch is a leaf in a Query tree that tests a specific key for
// a match.
type QueryMatch struct {
	Off int // Byte offset of the key in the original query.
	Key string
	Cmp Cmp

	re  *regexp.Regexp // for CmpRegexp
	num float64        // for the numeric comparisons
	lit string
}

func (q *QueryMatch) isQuery() {}
func (q *QueryMatch) String() string {
	quote := func(s string) string {
		for _, r := range s {
			if unicode.IsSpace(r) {
				r = ' '
			}
			switch r {
			case '"', ' ', '(', ')', ':', '<', '>':
				return strconv.Quote(s)
			}
		}
		// No quoting necessary.
		return s
	}
	if q.Cmp != CmpRegexp {
		return quote(q.Key) + q.Cmp.String() + q.lit
	}
	return quote(q.Key) + ":" + quote(q.lit)
}

// Match returns whether q matches the given value of q.Key. A
// numeric comparison never matches a value that is not a number.
func (q *QueryMatch) Match(value string) bool {
	if q.Cmp == CmpRegexp {
		return q.re.MatchString(value)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return false
	}
	return q.MatchFloat(v)
}

// MatchFloat is Match for a numeric value.
func (q *QueryMatch) MatchFloat(v float64) bool {
	switch q.Cmp {
	case CmpLess:
		return v < q.num
	case CmpLessEq:
		return v <= q.num
	case CmpGreater:
		return v > q.num
	case CmpGreaterEq:
		return v >= q.num
	}
	return q.re.MatchString(strconv.FormatFloat(v, 'g', -1, 64))
}

// QueryOp is a boolean operator in the Query tree. OpNot must have
// exactly one child node. OpAnd and OpOr may have zero or more child
// nodes.
type QueryOp struct {
	Op    Op
	Exprs []Query
}

func (q *QueryOp) isQuery() {}
func (q *QueryOp) String() string {
	var op string
	switch q.Op {
	case OpNot:
		return fmt.Sprintf("-%s", q.Exprs[0])
	case OpAnd:
		if len(q.Exprs) == 0 {
			return "*"
		}
		op = " AND "
	case OpOr:
		op = " OR "
	}
	var buf strings.Builder
	buf.WriteByte('(')
	for i, e := range q.Exprs {
		if i > 0 {
			buf.WriteString(op)
		}
		buf.WriteString(e.String())
	}
	buf.WriteByte(')')
	return buf.String()
}

// Op specifies a type of boolean operator.
type Op int

const (
	OpAnd Op = 1 + iota
	OpOr
	OpNot
)
