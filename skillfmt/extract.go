// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillfmt

import (
	"fmt"
	"strconv"
	"strings"
)

// An Extractor returns some component of a sample record.
type Extractor func(*Record) string

// NewExtractor returns a function that extracts some component of a
// sample record.
//
// The key must be one of the following:
//
// - ".measure" for the measure name, such as "H3".
//
// - ".class" for the class, "cloud" or "nocloud".
//
// - ".n" for the number of values in the record.
//
// - Any other string is a file configuration key. This includes
// ".file", which Files sets to the input path.
func NewExtractor(key string) (Extractor, error) {
	if len(key) == 0 {
		return nil, fmt.Errorf("key must not be empty")
	}

	switch key {
	case ".measure":
		return extractMeasure, nil
	case ".class":
		return extractClass, nil
	case ".n":
		return extractN, nil
	case ".file":
	default:
		if strings.HasPrefix(key, ".") {
			return nil, fmt.Errorf("unknown key %q", key)
		}
	}

	return func(rec *Record) string {
		return rec.GetFileConfig(key)
	}, nil
}

// NewKeyExtractor returns an extractor that joins the values of the
// given file configuration keys with "/", giving records with equal
// values for every key the same result.
func NewKeyExtractor(keys []string) (Extractor, error) {
	exts := make([]Extractor, len(keys))
	for i, k := range keys {
		ext, err := NewExtractor(k)
		if err != nil {
			return nil, err
		}
		exts[i] = ext
	}
	return func(rec *Record) string {
		var b strings.Builder
		for i, ext := range exts {
			if i > 0 {
				b.WriteByte('/')
			}
			b.WriteString(ext(rec))
		}
		return b.String()
	}, nil
}

func extractMeasure(rec *Record) string {
	return rec.Measure.String()
}

func extractClass(rec *Record) string {
	return rec.Class.String()
}

func extractN(rec *Record) string {
	return strconv.Itoa(len(rec.Values))
}
