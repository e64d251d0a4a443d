// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"bytes"
	"fmt"
	"html"
	"image/color"
	"io"

	"github.com/aclements/go-moremath/scale"

	"github.com/bcdev/beam-metimage/measure"
	"github.com/bcdev/beam-metimage/skillstat"
)

// Qualitative palettes from Color Brewer.
var set1_9 = []color.Color{color.RGBA{228, 26, 28, 255}, color.RGBA{55, 126, 184, 255}, color.RGBA{77, 175, 74, 255}, color.RGBA{152, 78, 163, 255}, color.RGBA{255, 127, 0, 255}, color.RGBA{255, 255, 51, 255}, color.RGBA{166, 86, 40, 255}, color.RGBA{247, 129, 191, 255}, color.RGBA{153, 153, 153, 255}}
var dark2_8 = []color.Color{color.RGBA{27, 158, 119, 255}, color.RGBA{217, 95, 2, 255}, color.RGBA{117, 112, 179, 255}, color.RGBA{231, 41, 138, 255}, color.RGBA{102, 166, 30, 255}, color.RGBA{230, 171, 2, 255}, color.RGBA{166, 118, 29, 255}, color.RGBA{102, 102, 102, 255}}

var frameColor = color.RGBA{204, 204, 204, 255}

// measureColor gives heritage and new measures distinct palettes.
func measureColor(m measure.ID) color.Color {
	if m.Heritage() {
		return set1_9[int(m-measure.H1)%len(set1_9)]
	}
	return dark2_8[int(m-measure.N1)%len(dark2_8)]
}

const (
	labelFontSize   = 12
	labelFontHeight = labelFontSize * 5 / 4
	bucketWidth     = 200
	colWidth        = 60
	colSpace        = 10
	rowHeight       = 18
	rowGap          = 4
)

// WriteSVG writes results as a grid of bars, one row per bucket and
// one column per measure. Bar length is the skill on a [0, 1] scale.
// Fallback results are drawn translucent and undefined skills as "~".
func WriteSVG(w io.Writer, results []skillstat.Result) error {
	g := newGrid(results)
	svg := new(bytes.Buffer)

	x := func(col int) (float64, float64) {
		l := bucketWidth + col*(colWidth+colSpace)
		return float64(l), float64(l + colWidth)
	}

	// Column labels
	for i, m := range g.measures {
		l, r := x(i)
		fmt.Fprintf(svg, `  <text x="%f" y="%d" font-size="%d" text-anchor="middle">%s</text>`+"\n", mid(l, r), labelFontSize, labelFontSize, m)
	}
	topSpace := float64(labelFontHeight)

	skillScale := scale.Linear{Min: 0, Max: 1, Clamp: true}
	for rowI, bucket := range g.rows.Keys {
		r := g.rows.Load(bucket)
		top := topSpace + float64(rowI*(rowHeight+rowGap))
		bot := top + rowHeight

		// Bucket label
		fmt.Fprintf(svg, `  <text x="0" y="%f" font-size="%d" dominant-baseline="central">%s</text>`+"\n", mid(top, bot), labelFontSize, html.EscapeString(bucket))

		for i, m := range g.measures {
			l, rt := x(i)
			fmt.Fprintf(svg, `  <path d="%s" fill="none" stroke="%s" />`+"\n", svgPathRect(l, top, rt, bot), svgColor(frameColor))
			res := r.cells[m]
			if res == nil {
				continue
			}
			title := fmt.Sprintf("%s %v: %s (%v, %d/%d samples)", bucket, m, tableSkill(res.Skill), res.Outcome, res.NumCloud, res.NumNoCloud)
			if !res.Outcome.Defined() {
				fmt.Fprintf(svg, `  <text x="%f" y="%f" font-size="%d" text-anchor="middle" dominant-baseline="central"><title>%s</title>~</text>`+"\n", mid(l, rt), mid(top, bot), labelFontSize, html.EscapeString(title))
				continue
			}

			out := scale.Linear{Min: l, Max: rt}
			xs := scale.QQ{Src: &skillScale, Dest: &out}
			opacity := 1.0
			if res.Outcome == skillstat.Fallback {
				opacity = 0.5
			}
			fmt.Fprintf(svg, `  <path d="%s" fill="%s" fill-opacity="%g"><title>%s</title></path>`+"\n", svgPathRect(xs.Map(0), top, xs.Map(res.Skill), bot), svgColor(measureColor(m)), opacity, html.EscapeString(title))
		}
	}

	width, _ := x(len(g.measures))
	height := topSpace + float64(len(g.rows.Keys)*(rowHeight+rowGap))
	_, err := fmt.Fprintf(w,
		`<svg version="1.1" width="%f" height="%f" xmlns="http://www.w3.org/2000/svg">
%s</svg>
`,
		width,
		height,
		svg.Bytes(),
	)
	return err
}

func mid(a, b float64) float64 {
	return (a + b) / 2
}

func svgColor(c color.Color) string {
	c2 := color.NRGBAModel.Convert(c).(color.NRGBA)
	if c2.A == 255 {
		return fmt.Sprintf("rgb(%d,%d,%d)", c2.R, c2.G, c2.B)
	}
	return fmt.Sprintf("rgba(%d,%d,%d,%f)", c2.R, c2.G, c2.B, float64(c2.A)/255)
}

func svgPathRect(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("M%f %fH%fV%fH%fz", x1, y1, x2, y2, x1)
}
