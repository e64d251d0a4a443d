// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command skillfilter reads cloud/no-cloud sample records from input
// files, filters them, and writes the filtered records to stdout. If
// no inputs are provided, it reads from stdin.
//
// It supports the following query syntax:
//
//	key:regexp    - Test if key matches regexp. Key and value can be quoted.
//	key:(x y ...) - Test if key matches any of x, y, etc.
//	key<N, key<=N - Test if key is a number less than (or equal to) N
//	key>N, key>=N - Test if key is a number greater than (or equal to) N
//	x y ...       - Test if x, y, etc. are all true
//	x AND y       - Same as x y
//	x OR y        - Test if x or y are true
//	-x            - Negate x
//	(...)         - Subexpression
//
// Keys may be one of the following:
//
//	.measure      - The measure of a record, such as H1 or N7
//	.class        - The class of a record, cloud or nocloud
//	.n            - The number of samples in a record
//	.value        - An individual sample value
//	.file         - The name of the input file
//	file-key      - File-level configuration key, such as surface
//
// Regexp matching is anchored at the beginning and end, so a literal
// string without any regexp operators must match exactly.
//
// For example, the query
//
//	surface:(SEA ICE) .measure:H. .value>=0
//
// matches the heritage measures of sea and ice buckets and drops
// their negative sample values.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/bcdev/beam-metimage/skillfmt"
	"github.com/bcdev/beam-metimage/skillproc"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	flag.Usage = func() {
		// Note: Keep this in sync with the package doc.
		fmt.Fprintf(flag.CommandLine.Output(), `Usage: %s query [inputs...]

skillfilter reads cloud/no-cloud sample records from input files,
filters them, and writes the filtered records to stdout. If no inputs
are provided, it reads from stdin.

It supports the following query syntax:

	key:regexp    - Test if key matches regexp. Key and value can be quoted.
	key:(x y ...) - Test if key matches any of x, y, etc.
	key<N, key<=N - Test if key is a number less than (or equal to) N
	key>N, key>=N - Test if key is a number greater than (or equal to) N
	x y ...       - Test if x, y, etc. are all true
	x AND y       - Same as x y
	x OR y        - Test if x or y are true
	-x            - Negate x
	(...)         - Subexpression

Keys may be one of the following:

	.measure      - The measure of a record, such as H1 or N7
	.class        - The class of a record, cloud or nocloud
	.n            - The number of samples in a record
	.value        - An individual sample value
	.file         - The name of the input file
	file-key      - File-level configuration key, such as surface

Regexp matching is anchored at the beginning and end, so a literal
string without any regexp operators must match exactly.

For example, the query

	surface:(SEA ICE) .measure:H. .value>=0

matches the heritage measures of sea and ice buckets and drops their
negative sample values.
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	filter, err := skillproc.NewFilter(flag.Arg(0))
	if err != nil {
		log.Fatal(err)
	}

	writer := skillfmt.NewWriter(os.Stdout)
	files := skillfmt.Files{Paths: flag.Args()[1:], AllowStdin: true}
	for files.Scan() {
		rec, err := files.Record()
		if err != nil {
			// Non-fatal record parse error. Warn
			// but keep going.
			log.Warn(err)
			continue
		}

		match := filter.Match(rec)
		if !match.Apply(rec) {
			continue
		}

		if err := writer.Write(rec); err != nil {
			log.Fatal("writing output: ", err)
		}
	}
	if err := files.Err(); err != nil {
		log.Fatal(err)
	}
}
