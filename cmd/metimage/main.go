// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command metimage computes the cloud/no-cloud distinction skill of
// every measure in every bucket of a set of sample record files.
//
// Usage:
//
//	metimage [flags] [inputs...]
//
// Records are grouped into buckets by the file configuration keys
// named in the configuration (by default daytime, surface and
// cloudtype), pooled per measure and class, and compared. The skill
// table is printed to stdout. If no inputs are provided, metimage
// reads from stdin.
//
// Flags override the values of the -config file.
//
// metimage exits with status 1 if any bucket had inconsistent
// histograms or if an input could not be read.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bcdev/beam-metimage/config"
	"github.com/bcdev/beam-metimage/report"
	"github.com/bcdev/beam-metimage/skillfmt"
	"github.com/bcdev/beam-metimage/skillproc"
	"github.com/bcdev/beam-metimage/skillstat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("metimage", flag.ContinueOnError)
	fs.SetOutput(stderr)
	flagConfig := fs.String("config", "", "load the engine configuration from YAML `file`")
	flagBins := fs.Int("bins", 0, "use `n` equal-width histogram bins")
	flagAlpha := fs.Float64("alpha", 0, "additive smoothing `strength`")
	flagEqualize := fs.Bool("equalize", false, "compare equalized histograms")
	flagWorkers := fs.Int("workers", 0, "evaluate at most `n` cells concurrently")
	flagGroupBy := fs.String("groupby", "", "comma-separated file configuration `keys` that form a bucket")
	flagFilter := fs.String("filter", "", "use only records and values matching `query` (see skillfilter)")
	flagTSV := fs.String("tsv", "", "write the skill table as TSV to `file`")
	flagJSON := fs.String("json", "", "write skills and histograms as JSON to `file`")
	flagSVG := fs.String("svg", "", "write a skill chart as SVG to `file`")
	flagMetrics := fs.String("metrics", "", "write Prometheus metrics in text format to `file`")
	flagVerbose := fs.Bool("v", false, "log every cell")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: metimage [flags] [inputs...]\n\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	log := logrus.New()
	log.SetOutput(stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if *flagVerbose {
		log.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *flagConfig != "" {
		var err error
		if cfg, err = config.Load(*flagConfig); err != nil {
			log.Error(err)
			return 1
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bins":
			cfg.NumBins = *flagBins
		case "alpha":
			cfg.Alpha = *flagAlpha
		case "equalize":
			cfg.Equalize = *flagEqualize
		case "workers":
			cfg.Workers = *flagWorkers
		case "groupby":
			cfg.GroupBy = nil
			for _, k := range strings.Split(*flagGroupBy, ",") {
				if k = strings.TrimSpace(k); k != "" {
					cfg.GroupBy = append(cfg.GroupBy, k)
				}
			}
		}
	})
	if err := cfg.Validate(); err != nil {
		log.Error(err)
		return 1
	}

	var filter *skillproc.Filter
	if *flagFilter != "" {
		var err error
		if filter, err = skillproc.NewFilter(*flagFilter); err != nil {
			log.Errorf("parsing -filter: %v", err)
			return 1
		}
	}

	coll, err := skillstat.NewCollection(cfg.GroupBy)
	if err != nil {
		log.Errorf("grouping by %v: %v", cfg.GroupBy, err)
		return 1
	}
	files := skillfmt.Files{Paths: fs.Args(), AllowStdin: true}
	for files.Scan() {
		rec, err := files.Record()
		if err != nil {
			// Non-fatal record parse error.
			log.Warn(err)
			continue
		}
		if filter != nil {
			match := filter.Match(rec)
			if !match.Apply(rec) {
				continue
			}
		}
		coll.Add(rec)
	}
	for _, st := range files.Stats() {
		entry := log.WithFields(logrus.Fields{"file": st.Path, "samples": st.Samples})
		if st.Malformed > 0 {
			entry.WithField("malformed", st.Malformed).Warn("skipped malformed sample lines")
		} else {
			entry.Info("read input")
		}
	}
	if err := files.Err(); err != nil {
		log.Error(err)
		return 1
	}
	cells := coll.Cells()
	if len(cells) == 0 {
		log.Error("no samples")
		return 1
	}

	var metrics *skillstat.Metrics
	if *flagMetrics != "" {
		metrics = skillstat.NewMetrics()
	}
	ev := &skillstat.Evaluator{Config: cfg, Logger: log, Metrics: metrics}
	results, evalErr := ev.Evaluate(ctx, cells)
	if results == nil {
		log.Error(evalErr)
		return 1
	}

	status := 0
	fail := func(err error) {
		if err != nil {
			log.Error(err)
			status = 1
		}
	}
	fail(report.WriteTable(stdout, results))
	if *flagTSV != "" {
		fail(writeFile(*flagTSV, func(w io.Writer) error {
			return report.WriteTSV(w, results)
		}))
	}
	if *flagJSON != "" {
		fail(writeFile(*flagJSON, func(w io.Writer) error {
			return report.WriteJSON(w, report.NewRun(cfg, results))
		}))
	}
	if *flagSVG != "" {
		fail(writeFile(*flagSVG, func(w io.Writer) error {
			return report.WriteSVG(w, results)
		}))
	}
	if metrics != nil {
		fail(metrics.WriteToTextfile(*flagMetrics))
	}
	if evalErr != nil {
		log.WithError(evalErr).Error("some buckets have inconsistent histograms")
		status = 1
	}
	return status
}

func writeFile(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
