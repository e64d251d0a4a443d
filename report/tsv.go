// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/bcdev/beam-metimage/skillstat"
)

// WriteTSV writes results as tab-separated values.
//
// The header names the group-by columns followed by clouds_M,
// noClouds_M and Skill_M for every measure M present. Each bucket is
// one row. Undefined skills, and measures missing from a bucket,
// print as NaN.
func WriteTSV(w io.Writer, results []skillstat.Result) error {
	g := newGrid(results)
	bw := bufio.NewWriter(w)

	var cols []string
	for _, k := range g.keys {
		cols = append(cols, ColumnTitle(k))
	}
	for _, m := range g.measures {
		cols = append(cols, "clouds_"+m.String(), "noClouds_"+m.String(), "Skill_"+m.String())
	}
	bw.WriteString(strings.Join(cols, "\t"))
	bw.WriteByte('\n')

	for _, bucket := range g.rows.Keys {
		r := g.rows.Load(bucket)
		cols = r.values(len(g.keys))
		for _, m := range g.measures {
			res := r.cells[m]
			if res == nil {
				cols = append(cols, "0", "0", "NaN")
				continue
			}
			cols = append(cols, strconv.Itoa(res.NumCloud), strconv.Itoa(res.NumNoCloud), tsvSkill(res.Skill))
		}
		bw.WriteString(strings.Join(cols, "\t"))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func tsvSkill(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%6f", v)
}
