// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/bcdev/beam-metimage/config"
	"github.com/bcdev/beam-metimage/skillstat"
)

// A Run is the JSON form of one evaluation.
type Run struct {
	ID      uuid.UUID     `json:"run"`
	Created time.Time     `json:"created"`
	Config  config.Config `json:"config"`
	Cells   []Cell        `json:"cells"`
}

// A Cell is the JSON form of a skillstat.Result. Skill and Flatness
// are null when undefined.
type Cell struct {
	Bucket        string            `json:"bucket"`
	Key           map[string]string `json:"key,omitempty"`
	Measure       string            `json:"measure"`
	NumCloud      int               `json:"numCloud"`
	NumNoCloud    int               `json:"numNoCloud"`
	Skill         *float64          `json:"skill"`
	Outcome       string            `json:"outcome"`
	Reason        string            `json:"reason,omitempty"`
	Flatness      *float64          `json:"flatness"`
	Borders       []float64         `json:"borders,omitempty"`
	CloudCounts   []int             `json:"cloudCounts,omitempty"`
	NoCloudCounts []int             `json:"noCloudCounts,omitempty"`
}

// NewRun returns a Run with a fresh ID holding results in grid order.
func NewRun(cfg config.Config, results []skillstat.Result) *Run {
	run := &Run{
		ID:      uuid.New(),
		Created: time.Now().UTC(),
		Config:  cfg,
		Cells:   []Cell{},
	}
	newGrid(results).each(func(_ *row, res *skillstat.Result) {
		c := Cell{
			Bucket:        res.Bucket,
			Measure:       res.Measure.String(),
			NumCloud:      res.NumCloud,
			NumNoCloud:    res.NumNoCloud,
			Skill:         finite(res.Skill),
			Outcome:       res.Outcome.String(),
			Flatness:      finite(res.Flatness),
			Borders:       res.Borders,
			CloudCounts:   res.CloudCounts,
			NoCloudCounts: res.NoCloudCounts,
		}
		if len(res.Key) > 0 {
			c.Key = make(map[string]string, len(res.Key))
			for _, kv := range res.Key {
				c.Key[kv.Key] = kv.Value
			}
		}
		if res.Reason != nil {
			c.Reason = res.Reason.Error()
		}
		run.Cells = append(run.Cells, c)
	})
	return run
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// WriteJSON writes run as indented JSON.
func WriteJSON(w io.Writer, run *Run) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}
