// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bcdev/beam-metimage/bucket"
	"github.com/bcdev/beam-metimage/measure"
	"github.com/bcdev/beam-metimage/skillfmt"
)

var codeColumns = []string{"surface", "daytime", "cloudheight"}

// csvPixel is one CSV row. It implements measure.Pixel.
type csvPixel struct {
	cols map[string]int
	row  []string
}

func (p csvPixel) Value(name string) (float64, bool) {
	i, ok := p.cols[name]
	if !ok || i >= len(p.row) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(p.row[i]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// code returns a classification code. Empty cells are -1, which no
// class or filter value uses.
func (p csvPixel) code(name string) (int, error) {
	s := strings.TrimSpace(p.row[p.cols[name]])
	if s == "" {
		return -1, nil
	}
	c, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("bad %s code %q", name, s)
	}
	return c, nil
}

type stats struct {
	pixels, unlabeled, records int
}

// samples holds the cloud and no-cloud values of one measure in one
// bucket.
type samples struct {
	cloud, noCloud []float64
}

// split reads pixels from r and writes the sample records of every
// bucket to w. If ids is empty, it splits every measure that has a
// column.
func split(r io.Reader, w io.Writer, ids []measure.ID) (stats, error) {
	var st stats
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return st, errors.New("empty input")
	} else if err != nil {
		return st, err
	}
	cols := make(map[string]int)
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range codeColumns {
		if _, ok := cols[name]; !ok {
			return st, fmt.Errorf("missing %s column", name)
		}
	}
	// Measure columns keep their canonical names.
	for i, name := range header {
		if id, err := measure.Parse(strings.TrimSpace(name)); err == nil {
			cols[id.String()] = i
		}
	}

	if len(ids) == 0 {
		for _, id := range measure.All() {
			if _, ok := cols[id.String()]; ok {
				ids = append(ids, id)
			}
		}
		if len(ids) == 0 {
			return st, errors.New("no measure columns")
		}
	} else {
		for _, id := range ids {
			if _, ok := cols[id.String()]; !ok {
				return st, fmt.Errorf("missing %v column", id)
			}
		}
	}
	reg, err := measure.DefaultRegistry().Subset(ids)
	if err != nil {
		return st, err
	}
	defs := reg.Defs()

	buckets := bucket.All()
	cells := make([][]samples, len(buckets))
	for i := range cells {
		cells[i] = make([]samples, len(defs))
	}

	vals := make([]float64, len(defs))
	defined := make([]bool, len(defs))
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return st, err
		}
		line, _ := cr.FieldPos(0)
		p := csvPixel{cols, row}
		if len(row) < len(header) {
			return st, fmt.Errorf("line %d: have %d columns, want %d", line, len(row), len(header))
		}
		var px bucket.Pixel
		if px.Surface, err = p.code("surface"); err == nil {
			if px.Daytime, err = p.code("daytime"); err == nil {
				px.CloudHeight, err = p.code("cloudheight")
			}
		}
		if err != nil {
			return st, fmt.Errorf("line %d: %w", line, err)
		}

		st.pixels++
		class := px.Class()
		if class == bucket.Unlabeled {
			st.unlabeled++
			continue
		}
		for i, d := range defs {
			vals[i], defined[i] = d.Compute(p)
			if defined[i] && math.IsInf(vals[i], 0) {
				defined[i] = false
			}
		}
		for bi, b := range buckets {
			if !b.Admits(px) {
				continue
			}
			for i := range defs {
				if !defined[i] {
					continue
				}
				s := &cells[bi][i]
				if class == bucket.Cloud {
					s.cloud = append(s.cloud, vals[i])
				} else {
					s.noCloud = append(s.noCloud, vals[i])
				}
			}
		}
	}

	sw := skillfmt.NewWriter(w)
	var rec skillfmt.Record
	write := func(id measure.ID, class bucket.Class, vals []float64) error {
		if len(vals) == 0 {
			return nil
		}
		rec.Measure, rec.Class, rec.Values = id, class, vals
		st.records++
		return sw.Write(&rec)
	}
	for bi, b := range buckets {
		for _, kv := range b.Config() {
			rec.SetFileConfig(kv[0], kv[1])
		}
		for i, d := range defs {
			s := cells[bi][i]
			if err := write(d.ID, bucket.Cloud, s.cloud); err != nil {
				return st, err
			}
			if err := write(d.ID, bucket.NoCloud, s.noCloud); err != nil {
				return st, err
			}
		}
	}
	return st, nil
}
