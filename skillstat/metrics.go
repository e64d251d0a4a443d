// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillstat

import (
	"math"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments an Evaluator. Its collectors are registered
// with its own Registry.
type Metrics struct {
	Registry *prometheus.Registry

	cells    *prometheus.CounterVec
	skill    prometheus.Histogram
	duration prometheus.Histogram
}

// NewMetrics returns metrics registered with a new registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		cells: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "metimage_cells_total",
			Help: "Number of evaluated cells by outcome.",
		}, []string{"outcome"}),
		skill: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "metimage_skill",
			Help:    "Distribution of defined distinction skills.",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "metimage_cell_duration_seconds",
			Help:    "Time to evaluate one cell.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		}),
	}
	m.Registry.MustRegister(m.cells, m.skill, m.duration)
	for _, o := range []Outcome{Computed, Fallback, InsufficientSamples, Invalid} {
		m.cells.WithLabelValues(o.String())
	}
	return m
}

func (m *Metrics) observe(res Result, d time.Duration) {
	m.cells.WithLabelValues(res.Outcome.String()).Inc()
	if res.Outcome.Defined() && !math.IsNaN(res.Skill) {
		m.skill.Observe(res.Skill)
	}
	m.duration.Observe(d.Seconds())
}

// WriteToTextfile writes the metrics to path in the text exposition
// format, for collection by a node exporter.
func (m *Metrics) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
