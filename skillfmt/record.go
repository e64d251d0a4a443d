// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package skillfmt provides a streaming reader and writer for sample
// record files.
//
// A sample record file is line oriented. Lines of the form
// "key: value" set file-level configuration that applies to every
// following record until the key is set again or deleted with an
// empty value. Lines of the form
//
//	Sample <measure> <class> <value>...
//
// carry the samples of one measure for one class, where measure is a
// name such as H1 or N7 and class is "cloud" or "nocloud". Values are
// decimal floating point numbers; NaN and Inf are accepted. Every
// other line is ignored.
//
// For example:
//
//	daytime: DAY
//	surface: SEA
//	cloudtype: ALL
//
//	Sample H1 cloud 0.12 0.5 NaN
//	Sample H1 nocloud 0.031 0.029
package skillfmt

import (
	"github.com/bcdev/beam-metimage/bucket"
	"github.com/bcdev/beam-metimage/measure"
)

// A Record is one sample line and the file configuration in effect
// for it.
type Record struct {
	// FileConfig is the set of file-level key/value pairs in
	// effect for this record.
	//
	// This is modified in place. New keys are appended. When an
	// existing key changes value, it is updated in place. Deleted
	// keys are removed.
	FileConfig []Config

	Measure measure.ID
	Class   bucket.Class

	// Values are the samples in input order, including any NaN
	// or infinite values.
	Values []float64

	// configPos, if non-nil, maps from Config.Key to index in
	// FileConfig.
	configPos map[string]int

	// permConfig indicates that FileConfig[:permConfig] cannot be
	// overridden.
	permConfig int
}

// Config is a single key/value configuration pair.
type Config struct {
	Key, Value string
}

// Clone makes a copy of r that shares no state with r.
func (r *Record) Clone() *Record {
	return &Record{
		FileConfig: append([]Config(nil), r.FileConfig...),
		Measure:    r.Measure,
		Class:      r.Class,
		Values:     append([]float64(nil), r.Values...),
		permConfig: r.permConfig,
	}
}

// SetFileConfig sets file configuration key to value, overriding or
// adding the configuration as necessary.
func (r *Record) SetFileConfig(key, value string) {
	r.setFileConfig(key, value, false)
}

// setFileConfig is SetFileConfig, but perm marks a value that later
// file lines cannot override.
func (r *Record) setFileConfig(key, value string, perm bool) {
	pos, ok := r.FileConfigIndex(key)
	if ok {
		if !perm && pos < r.permConfig {
			return
		}
		r.FileConfig[pos].Value = value
		return
	}
	pos = len(r.FileConfig)
	if perm {
		if pos != r.permConfig {
			panic("setting permanent file config after reading file")
		}
		r.permConfig = pos + 1
	}
	r.FileConfig = append(r.FileConfig, Config{key, value})
	r.configPos[key] = pos
}

// deleteFileConfig removes key from the file configuration, unless
// it is permanent.
func (r *Record) deleteFileConfig(key string) {
	pos, ok := r.FileConfigIndex(key)
	if !ok || pos < r.permConfig {
		return
	}
	copy(r.FileConfig[pos:], r.FileConfig[pos+1:])
	r.FileConfig = r.FileConfig[:len(r.FileConfig)-1]
	delete(r.configPos, key)
	for i := pos; i < len(r.FileConfig); i++ {
		r.configPos[r.FileConfig[i].Key] = i
	}
}

// FileConfigIndex returns the index in r.FileConfig of key.
func (r *Record) FileConfigIndex(key string) (pos int, ok bool) {
	if r.configPos == nil {
		r.configPos = make(map[string]int)
		for i, cfg := range r.FileConfig {
			r.configPos[cfg.Key] = i
		}
	}
	pos, ok = r.configPos[key]
	return
}

// GetFileConfig returns the value of file configuration key, or ""
// if it is not set.
func (r *Record) GetFileConfig(key string) string {
	pos, ok := r.FileConfigIndex(key)
	if !ok {
		return ""
	}
	return r.FileConfig[pos].Value
}
