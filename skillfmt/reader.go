// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillfmt

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/bcdev/beam-metimage/bucket"
	"github.com/bcdev/beam-metimage/measure"
)

// A Reader reads sample record files.
//
// Its API is modeled on bufio.Scanner. A Reader retains ownership of
// the Record it returns; a caller should Clone anything it needs to
// retain.
//
// The zero value of the Reader is a valid Reader, but the user must
// call Reset before using it.
type Reader struct {
	s        *bufio.Scanner
	fileName string
	lineNum  int
	err      error // current I/O error

	record    Record
	recordErr error

	interns map[string]string
}

// SyntaxError represents a syntax error on a particular line of a
// sample record file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (s *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", s.FileName, s.Line, s.Msg)
}

var noRecord = errors.New("Reader.Scan has not been called")

// maxLine bounds the length of one line. Sample lines of whole
// buckets can be long.
const maxLine = 64 << 20

// NewReader constructs a reader to parse sample records from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. This
// also resets all of the file-level configuration values.
//
// initConfig is an alternating sequence of keys and values. Reset
// installs these as permanent file configuration that the input
// cannot override.
func (r *Reader) Reset(ior io.Reader, fileName string, initConfig ...string) {
	r.s = bufio.NewScanner(ior)
	r.s.Buffer(nil, maxLine)
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.lineNum = 0
	r.err = nil
	r.recordErr = noRecord
	if r.interns == nil {
		r.interns = make(map[string]string)
	}

	// Wipe the Record.
	r.record.FileConfig = r.record.FileConfig[:0]
	r.record.Measure = 0
	r.record.Class = bucket.Unlabeled
	r.record.Values = r.record.Values[:0]
	r.record.permConfig = 0
	for k := range r.record.configPos {
		delete(r.record.configPos, k)
	}
	if r.record.configPos == nil {
		r.record.configPos = make(map[string]int)
	}

	if len(initConfig)%2 != 0 {
		panic("len(initConfig) must be a multiple of 2")
	}
	for i := 0; i < len(initConfig); i += 2 {
		r.record.setFileConfig(initConfig[i], initConfig[i+1], true)
	}
}

var samplePrefix = []byte("Sample ")

// Scan advances the reader to the next record and returns true if a
// record was read. The caller should use the Record method to get the
// record. If an I/O error occurs, or this reaches the end of the
// file, it returns false and the caller should use the Err method to
// check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	for r.s.Scan() {
		r.lineNum++
		line := r.s.Bytes()
		if bytes.HasPrefix(line, samplePrefix) {
			// At this point we commit to this being a
			// sample line. If it's malformed, we treat
			// that as an error.
			r.recordErr = r.parseSampleLine(line)
			return true
		} else if key, val, ok := parseKeyValueLine(line); ok {
			// Intern key, since there tend to be few
			// unique keys.
			keyStr := r.intern(key)
			if len(val) == 0 {
				r.record.deleteFileConfig(keyStr)
			} else {
				r.record.setFileConfig(keyStr, r.intern(val), false)
			}
		}
		// Ignore the line.
	}

	if err := r.s.Err(); err != nil {
		r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.lineNum, err)
		return false
	}
	r.err = nil
	return false
}

// parseKeyValueLine attempts to parse line as a key: value pair. ok
// indicates whether the line could be parsed.
func parseKeyValueLine(line []byte) (key, val []byte, ok bool) {
	for i := 0; i < len(line); {
		r, n := utf8.DecodeRune(line[i:])
		// key begins with a lower case character ...
		if i == 0 && !unicode.IsLower(r) {
			return
		}
		// and contains no space characters nor upper case
		// characters.
		if unicode.IsSpace(r) || unicode.IsUpper(r) {
			return
		}
		if i > 0 && r == ':' {
			key = line[:i]
			val = line[i+1:]
			break
		}

		i += n
	}
	if len(key) == 0 {
		return
	}
	// Value can be omitted entirely, in which case the colon must
	// still be present, but need not be followed by a space.
	if len(val) == 0 {
		ok = true
		return
	}
	// One or more ASCII space or tab characters separate "key:"
	// from "value."
	for len(val) > 0 && (val[0] == ' ' || val[0] == '\t') {
		val = val[1:]
		ok = true
	}
	val = bytes.TrimRightFunc(val, unicode.IsSpace)
	return
}

// parseSampleLine parses line as a sample record and updates
// r.record. The caller must have already checked that it begins with
// "Sample ".
func (r *Reader) parseSampleLine(line []byte) error {
	var f []byte
	var err error

	line = line[len(samplePrefix):]
	for len(line) > 0 && (line[0] == ' ' || line[0] == '\t') {
		line = line[1:]
	}

	f, line = splitField(line)
	if len(f) == 0 {
		return &SyntaxError{r.fileName, r.lineNum, "missing measure"}
	}
	r.record.Measure, err = measure.Parse(string(f))
	if err != nil {
		return &SyntaxError{r.fileName, r.lineNum, err.Error()}
	}

	f, line = splitField(line)
	if len(f) == 0 {
		return &SyntaxError{r.fileName, r.lineNum, "missing class"}
	}
	r.record.Class, err = bucket.ParseClass(string(f))
	if err != nil {
		return &SyntaxError{r.fileName, r.lineNum, err.Error()}
	}

	// A sample line may carry no values at all.
	r.record.Values = r.record.Values[:0]
	for {
		f, line = splitField(line)
		if len(f) == 0 {
			break
		}
		val, err := atof(f)
		switch err := err.(type) {
		case nil:
		case *strconv.NumError:
			return &SyntaxError{r.fileName, r.lineNum, "parsing sample: " + err.Err.Error()}
		default:
			return &SyntaxError{r.fileName, r.lineNum, err.Error()}
		}
		r.record.Values = append(r.record.Values, val)
	}

	return nil
}

func (r *Reader) intern(x []byte) string {
	const maxIntern = 1024
	if s, ok := r.interns[string(x)]; ok {
		return s
	}
	if len(r.interns) >= maxIntern {
		// Evict a random item from the interns table.
		for k := range r.interns {
			delete(r.interns, k)
			break
		}
	}
	s := string(x)
	r.interns[s] = s
	return s
}

// Record returns the last record read, or an error if the record was
// malformed.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
//
// The caller should not retain the Record object, as it will be
// overwritten by the next call to Scan.
func (r *Reader) Record() (*Record, error) {
	if r.recordErr != nil {
		return nil, r.recordErr
	}
	return &r.record, nil
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}

// atof is a wrapper for strconv.ParseFloat that optimizes for
// short unsigned integers.
func atof(x []byte) (float64, error) {
	// The largest int exactly representable in a float64.
	const largestInt = 1<<53 - 1

	var val int64
	for _, ch := range x {
		digit := ch - '0'
		if digit >= 10 {
			goto fail
		}
		val = (val * 10) + int64(digit)
		if val > largestInt {
			goto fail
		}
	}
	return float64(val), nil

fail:
	return strconv.ParseFloat(string(x), 64)
}

const isSpace uint64 = 1<<'\t' | 1<<'\n' | 1<<'\v' | 1<<'\f' | 1<<'\r' | 1<<' '

// splitField consumes and returns non-whitespace in x as field,
// consumes whitespace following the field, and then returns the
// remaining bytes of x.
func splitField(x []byte) (field, rest []byte) {
	var i int
	for i = 0; i < len(x); {
		if x[i] < 128 {
			// Fast path for ASCII
			if (isSpace>>x[i])&1 != 0 {
				rest = x[i+1:]
				break
			}
			i++
		} else {
			r, n := utf8.DecodeRune(x[i:])
			if unicode.IsSpace(r) {
				rest = x[i+n:]
				break
			}
			i += n
		}
	}
	field = x[:i]

	for len(rest) > 0 {
		if rest[0] < 128 {
			if (isSpace>>rest[0])&1 == 0 {
				break
			}
			rest = rest[1:]
		} else {
			r, n := utf8.DecodeRune(rest)
			if !unicode.IsSpace(r) {
				break
			}
			rest = rest[n:]
		}
	}
	return
}
