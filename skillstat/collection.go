// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillstat

import (
	"github.com/bcdev/beam-metimage/bucket"
	"github.com/bcdev/beam-metimage/measure"
	"github.com/bcdev/beam-metimage/skillfmt"
)

// A Collection groups sample records into cells, one per bucket and
// measure.
//
// A bucket is identified by the values of the group-by file
// configuration keys. Records for the same bucket, measure and class
// are pooled.
type Collection struct {
	groupBy []string
	key     skillfmt.Extractor

	// cells maps from (bucket, measure) to cell.
	cells map[cellKey]*Cell

	// order records the first observation order of cells.
	order []*Cell
}

type cellKey struct {
	bucket  string
	measure measure.ID
}

// A Cell holds the pooled samples of one measure in one bucket.
type Cell struct {
	// Bucket joins the group-by values with "/".
	Bucket string

	// Key holds the group-by keys and their values.
	Key []skillfmt.Config

	Measure measure.ID

	Cloud, NoCloud []float64
}

// NewCollection returns an empty collection that groups records by
// the given file configuration keys.
func NewCollection(groupBy []string) (*Collection, error) {
	key, err := skillfmt.NewKeyExtractor(groupBy)
	if err != nil {
		return nil, err
	}
	return &Collection{
		groupBy: append([]string(nil), groupBy...),
		key:     key,
		cells:   make(map[cellKey]*Cell),
	}, nil
}

// GroupBy returns the keys c groups by.
func (c *Collection) GroupBy() []string {
	return c.groupBy
}

// Add adds the values of rec to its cell. rec is not retained.
func (c *Collection) Add(rec *skillfmt.Record) {
	ckey := cellKey{c.key(rec), rec.Measure}
	cell := c.cells[ckey]
	if cell == nil {
		cell = &Cell{Bucket: ckey.bucket, Measure: rec.Measure}
		for _, k := range c.groupBy {
			cell.Key = append(cell.Key, skillfmt.Config{Key: k, Value: rec.GetFileConfig(k)})
		}
		c.cells[ckey] = cell
		c.order = append(c.order, cell)
	}
	switch rec.Class {
	case bucket.Cloud:
		cell.Cloud = append(cell.Cloud, rec.Values...)
	case bucket.NoCloud:
		cell.NoCloud = append(cell.NoCloud, rec.Values...)
	}
}

// Cells returns the cells in the order they were first observed.
func (c *Collection) Cells() []*Cell {
	return c.order
}
