// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command skillsplit reads per-pixel measures from a CSV file and
// writes them as cloud/no-cloud sample records, one block per bucket,
// for metimage.
//
// Usage:
//
//	skillsplit [-measures H1,N3] [pixels.csv]
//
// The CSV header must name the columns surface, daytime and
// cloudheight, holding the pixel classification codes, followed by
// one column per measure named like H1 or N3. Other columns are
// ignored. Empty or unparsable measure cells are undefined and
// skipped. If no file is given, skillsplit reads from stdin.
//
// Every pixel is added to each of the 80 daytime/surface/cloud type
// buckets that admits it. Pixels that are neither cloud nor clear
// are dropped.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bcdev/beam-metimage/measure"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	flagMeasures := flag.String("measures", "", "comma-separated `list` of measures to split (default all columns present)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] [pixels.csv]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() > 1 {
		flag.Usage()
		os.Exit(2)
	}

	var ids []measure.ID
	if *flagMeasures != "" {
		var err error
		if ids, err = measure.ParseList(*flagMeasures); err != nil {
			log.Fatal(err)
		}
	}

	var in io.Reader = os.Stdin
	if flag.NArg() == 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	st, err := split(in, os.Stdout, ids)
	if err != nil {
		log.Fatal(err)
	}
	log.WithFields(logrus.Fields{
		"pixels":    st.pixels,
		"unlabeled": st.unlabeled,
		"records":   st.records,
	}).Info("split pixels into buckets")
}
