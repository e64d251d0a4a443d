// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillfmt

import (
	"fmt"
	"io"
	"os"
)

// FileStats counts what was read from one input.
type FileStats struct {
	// Path is the name as given in Files.Paths, or "-" for stdin.
	Path string

	// Samples counts well-formed sample lines.
	Samples int

	// Malformed counts sample lines that failed to parse.
	Malformed int
}

// Files reads sample records from a list of input files in order.
//
// Every record carries a ".file" file configuration key holding the
// input's path as given in Paths. The key cannot appear in an input,
// so inputs cannot override it.
type Files struct {
	// Paths lists the inputs to read.
	Paths []string

	// AllowStdin makes "-" name standard input. With AllowStdin
	// and no Paths, standard input is the only input.
	AllowStdin bool

	next   int
	reader Reader
	cur    io.ReadCloser // nil between inputs
	stats  []FileStats
	err    error
}

// Scan advances to the next sample line across all inputs. It
// returns false at the end of the last input or on an I/O error,
// which Err then reports. A malformed sample line still returns
// true; Record reports its parse error.
func (f *Files) Scan() bool {
	for f.err == nil {
		if f.cur == nil && !f.open() {
			return false
		}
		if f.reader.Scan() {
			st := &f.stats[len(f.stats)-1]
			if _, err := f.reader.Record(); err != nil {
				st.Malformed++
			} else {
				st.Samples++
			}
			return true
		}
		if err := f.reader.Err(); err != nil {
			f.err = err
		}
		f.cur.Close()
		f.cur = nil
	}
	return false
}

// open starts reading the next input. It returns false if there is
// none or it could not be opened.
func (f *Files) open() bool {
	var path string
	switch {
	case f.next < len(f.Paths):
		path = f.Paths[f.next]
	case f.next == 0 && f.AllowStdin:
		path = "-"
	default:
		return false
	}
	f.next++

	if f.AllowStdin && path == "-" {
		f.cur = io.NopCloser(os.Stdin)
	} else {
		file, err := os.Open(path)
		if err != nil {
			f.err = fmt.Errorf("opening input: %w", err)
			return false
		}
		f.cur = file
	}
	f.stats = append(f.stats, FileStats{Path: path})
	f.reader.Reset(f.cur, path, ".file", path)
	return true
}

// Record returns the record of the last sample line, or its parse
// error. Parse errors do not stop Scan.
func (f *Files) Record() (*Record, error) {
	return f.reader.Record()
}

// Err returns the I/O error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}

// Stats returns the counts of every input opened so far, in order.
func (f *Files) Stats() []FileStats {
	return f.stats
}
