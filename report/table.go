// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/bcdev/beam-metimage/skillstat"
)

// WriteTable writes results as an aligned text table, one line per
// result. Sample counts share one SI scale per column. Results whose
// outcome is not computed are explained in notes below the table.
func WriteTable(w io.Writer, results []skillstat.Result) error {
	g := newGrid(results)

	var clouds, noClouds []int
	g.each(func(_ *row, res *skillstat.Result) {
		clouds = append(clouds, res.NumCloud)
		noClouds = append(noClouds, res.NumNoCloud)
	})
	cloudScale, noCloudScale := CountScale(clouds), CountScale(noClouds)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	var hdr []string
	for _, k := range g.keys {
		hdr = append(hdr, ColumnTitle(k))
	}
	hdr = append(hdr, "Measure", "Clouds", "NoClouds", "Skill", "Outcome")
	fmt.Fprintln(tw, strings.Join(hdr, "\t"))

	var notes []string
	g.each(func(r *row, res *skillstat.Result) {
		cols := r.values(len(g.keys))
		outcome := res.Outcome.String()
		if res.Outcome != skillstat.Computed && res.Reason != nil {
			notes = append(notes, fmt.Sprintf("[%d] %s %v: %v", len(notes)+1, res.Bucket, res.Measure, res.Reason))
			outcome += fmt.Sprintf(" [%d]", len(notes))
		}
		cols = append(cols,
			res.Measure.String(),
			cloudScale.Format(float64(res.NumCloud)),
			noCloudScale.Format(float64(res.NumNoCloud)),
			tableSkill(res.Skill),
			outcome)
		fmt.Fprintln(tw, strings.Join(cols, "\t"))
	})
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(notes) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", strings.Join(notes, "\n")); err != nil {
			return err
		}
	}
	return nil
}

func tableSkill(v float64) string {
	if math.IsNaN(v) {
		return "~"
	}
	return strconv.FormatFloat(v, 'f', 4, 64)
}
