// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillstat

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bcdev/beam-metimage/bucket"
	"github.com/bcdev/beam-metimage/config"
	"github.com/bcdev/beam-metimage/measure"
	"github.com/bcdev/beam-metimage/skill"
	"github.com/bcdev/beam-metimage/skillfmt"
)

const records = `daytime: DAY
surface: SEA
cloudtype: ALL

Sample H1 cloud 0.7 0.8
Sample H1 nocloud 0.1 0.2
Sample N1 cloud 1
Sample H1 cloud 0.9

surface: LAND

Sample H1 nocloud 0.3
`

func TestCollection(t *testing.T) {
	c, err := NewCollection([]string{"daytime", "surface", "cloudtype"})
	require.NoError(t, err)
	r := skillfmt.NewReader(strings.NewReader(records), "test")
	for r.Scan() {
		rec, err := r.Record()
		require.NoError(t, err)
		c.Add(rec)
	}
	require.NoError(t, r.Err())

	cells := c.Cells()
	require.Len(t, cells, 3)
	assert.Equal(t, "DAY/SEA/ALL", cells[0].Bucket)
	assert.Equal(t, measure.H1, cells[0].Measure)
	assert.Equal(t, []float64{0.7, 0.8, 0.9}, cells[0].Cloud)
	assert.Equal(t, []float64{0.1, 0.2}, cells[0].NoCloud)
	assert.Equal(t, []skillfmt.Config{{Key: "daytime", Value: "DAY"}, {Key: "surface", Value: "SEA"}, {Key: "cloudtype", Value: "ALL"}}, cells[0].Key)

	assert.Equal(t, measure.N1, cells[1].Measure)
	assert.Equal(t, []float64{1}, cells[1].Cloud)
	assert.Empty(t, cells[1].NoCloud)

	assert.Equal(t, "DAY/LAND/ALL", cells[2].Bucket)
	assert.Equal(t, []float64{0.3}, cells[2].NoCloud)

	_, err = NewCollection([]string{".bogus"})
	assert.Error(t, err)

	// Grouping by fewer keys pools buckets.
	c, err = NewCollection([]string{"daytime"})
	require.NoError(t, err)
	r = skillfmt.NewReader(strings.NewReader(records), "test")
	for r.Scan() {
		rec, _ := r.Record()
		c.Add(rec)
	}
	require.Len(t, c.Cells(), 2)
	assert.Equal(t, []float64{0.1, 0.2, 0.3}, c.Cells()[0].NoCloud)
}

func testCells() []*Cell {
	sep := &Cell{Bucket: "DAY/SEA/ALL", Measure: measure.H1, Cloud: stratified(100, 0.6, 1), NoCloud: stratified(200, 0, 0.3)}
	few := &Cell{Bucket: "DAY/SEA/ALL", Measure: measure.H2, Cloud: stratified(10, 0, 1), NoCloud: stratified(200, 0, 1)}
	bad := &Cell{Bucket: "NIGHT/ICE/HIGH", Measure: measure.N4, Cloud: stratified(60, 0, 1), NoCloud: stratified(60, 0, 1)}
	bad.Cloud[0], bad.NoCloud[0] = -math.MaxFloat64, math.MaxFloat64
	same := &Cell{Bucket: "NIGHT/ICE/HIGH", Measure: measure.N5, Cloud: stratified(80, 0, 1), NoCloud: stratified(80, 0, 1)}
	return []*Cell{sep, few, bad, same}
}

func TestEvaluate(t *testing.T) {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	cfg := config.Default()
	cfg.Workers = 2
	cfg.NumQuantiles = 10000
	ev := &Evaluator{Config: cfg, Logger: logger, Metrics: NewMetrics()}

	results, err := ev.Evaluate(context.Background(), testCells())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NIGHT/ICE/HIGH N4")
	var de *skill.DimensionError
	assert.False(t, errors.As(err, &de), "range errors are not dimension errors")

	require.Len(t, results, 4)
	assert.Equal(t, measure.H1, results[0].Measure)
	assert.Equal(t, Computed, results[0].Outcome)
	assert.InDelta(t, 1, results[0].Skill, 0.05)
	assert.Equal(t, InsufficientSamples, results[1].Outcome)
	assert.Equal(t, Invalid, results[2].Outcome)
	assert.Equal(t, "NIGHT/ICE/HIGH", results[2].Bucket)
	assert.Equal(t, Computed, results[3].Outcome)
	assert.InDelta(t, 0, results[3].Skill, 1e-12)

	assert.Len(t, hook.AllEntries(), 4)
	var levels []logrus.Level
	for _, e := range hook.AllEntries() {
		levels = append(levels, e.Level)
		if e.Data["measure"] == "H2" {
			assert.Equal(t, logrus.InfoLevel, e.Level)
			assert.Equal(t, 10, e.Data["numCloud"])
			assert.Contains(t, e.Message, "too small")
		}
	}
	assert.Contains(t, levels, logrus.ErrorLevel)

	m := ev.Metrics
	assert.Equal(t, 2.0, testutil.ToFloat64(m.cells.WithLabelValues("computed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cells.WithLabelValues("insufficient")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cells.WithLabelValues("invalid")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.cells.WithLabelValues("fallback")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.skill))

	path := filepath.Join(t.TempDir(), "metimage.prom")
	require.NoError(t, m.WriteToTextfile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(data, []byte(`metimage_cells_total{outcome="computed"} 2`)))
}

func TestEvaluateNoErrors(t *testing.T) {
	cfg := config.Default()
	cfg.NumQuantiles = 1000
	ev := &Evaluator{Config: cfg}
	cells := testCells()
	cells = append(cells[:2], cells[3])
	results, err := ev.Evaluate(context.Background(), cells)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, measure.N5, results[2].Measure)
}

func TestEvaluateCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ev := &Evaluator{Config: config.Default()}
	results, err := ev.Evaluate(ctx, testCells())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestCellClass(t *testing.T) {
	// Records of unlabeled pixels never reach a cell.
	c, err := NewCollection(nil)
	require.NoError(t, err)
	c.Add(&skillfmt.Record{Measure: measure.H1, Class: bucket.Unlabeled, Values: []float64{1}})
	require.Len(t, c.Cells(), 1)
	assert.Empty(t, c.Cells()[0].Cloud)
	assert.Empty(t, c.Cells()[0].NoCloud)
	assert.Equal(t, "", c.Cells()[0].Bucket)
}
