// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillstat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/bcdev/beam-metimage/config"
)

// An Evaluator compares cells concurrently.
type Evaluator struct {
	Config config.Config

	// Logger receives one entry per cell. If nil, nothing is
	// logged.
	Logger logrus.FieldLogger

	// Metrics, if non-nil, records every result.
	Metrics *Metrics
}

func (e *Evaluator) logger() logrus.FieldLogger {
	if e.Logger != nil {
		return e.Logger
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// Evaluate compares every cell and returns the results in the order
// of cells.
//
// A cell whose histograms are inconsistent is marked Invalid and
// does not stop the other cells; the errors of all invalid cells are
// joined into the returned error. Evaluate returns early with a nil
// result slice only if ctx is done.
func (e *Evaluator) Evaluate(ctx context.Context, cells []*Cell) ([]Result, error) {
	log := e.logger()
	workers := e.Config.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(cells))
	errs := make([]error, len(cells))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cell := range cells {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			res, err := Compare(cell.Cloud, cell.NoCloud, e.Config)
			res.Measure, res.Bucket, res.Key = cell.Measure, cell.Bucket, cell.Key
			if e.Metrics != nil {
				e.Metrics.observe(res, time.Since(start))
			}
			if err != nil {
				errs[i] = fmt.Errorf("%s %v: %w", cell.Bucket, cell.Measure, err)
			}
			logResult(log, res)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, errors.Join(errs...)
}

func logResult(log logrus.FieldLogger, res Result) {
	entry := log.WithFields(logrus.Fields{
		"measure":    res.Measure.String(),
		"bucket":     res.Bucket,
		"outcome":    res.Outcome.String(),
		"numCloud":   res.NumCloud,
		"numNoCloud": res.NumNoCloud,
	})
	switch res.Outcome {
	case Computed:
		entry.WithField("skill", res.Skill).Debug("computed distinction skill")
	case Fallback:
		entry.WithField("skill", res.Skill).Warn(res.Reason)
	case InsufficientSamples:
		entry.Info(res.Reason)
	case Invalid:
		entry.Error(res.Reason)
	}
}
