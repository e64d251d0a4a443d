// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package skillfmt

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// A Writer writes sample record files.
type Writer struct {
	w   io.Writer
	buf bytes.Buffer

	first      bool
	fileConfig map[string]string
	order      []string
}

// NewWriter returns a writer that writes sample records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, first: true, fileConfig: make(map[string]string)}
}

// Write writes record rec to w. If rec's file configuration differs
// from the current file configuration in w, it first emits the
// appropriate file configuration lines. Keys that start with "." are
// not valid in files and are never written.
func (w *Writer) Write(rec *Record) error {
	if w.configChanged(rec) {
		w.writeFileConfig(rec)
	}

	w.buf.WriteString("Sample ")
	w.buf.WriteString(rec.Measure.String())
	w.buf.WriteByte(' ')
	w.buf.WriteString(rec.Class.String())
	for _, v := range rec.Values {
		w.buf.WriteByte(' ')
		w.buf.Write(strconv.AppendFloat(w.buf.AvailableBuffer(), v, 'g', -1, 64))
	}
	w.buf.WriteByte('\n')

	w.first = false

	// Flush the buffer out to the io.Writer. Write to the buffer
	// can't fail, so we only have to check if this fails.
	_, err := w.w.Write(w.buf.Bytes())
	w.buf.Reset()
	return err
}

func writable(key string) bool {
	return !strings.HasPrefix(key, ".")
}

func (w *Writer) configChanged(rec *Record) bool {
	n := 0
	for _, cfg := range rec.FileConfig {
		if !writable(cfg.Key) {
			continue
		}
		n++
		if val, ok := w.fileConfig[cfg.Key]; !ok || val != cfg.Value {
			return true
		}
	}
	return n != len(w.fileConfig)
}

func (w *Writer) writeFileConfig(rec *Record) {
	if !w.first {
		// Configuration blocks after records get an extra blank.
		w.buf.WriteByte('\n')
		w.first = true
	}

	// Walk keys we know to find changes and deletions.
	for i := 0; i < len(w.order); i++ {
		key := w.order[i]
		idx, ok := rec.FileConfigIndex(key)
		if !ok {
			// Key was deleted.
			fmt.Fprintf(&w.buf, "%s:\n", key)
			delete(w.fileConfig, key)
			copy(w.order[i:], w.order[i+1:])
			w.order = w.order[:len(w.order)-1]
			i--
			continue
		}
		val := rec.FileConfig[idx].Value
		if w.fileConfig[key] == val {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", key, val)
		w.fileConfig[key] = val
	}

	// Find new keys.
	for _, cfg := range rec.FileConfig {
		if !writable(cfg.Key) {
			continue
		}
		if _, ok := w.fileConfig[cfg.Key]; ok {
			continue
		}
		fmt.Fprintf(&w.buf, "%s: %s\n", cfg.Key, cfg.Value)
		w.fileConfig[cfg.Key] = cfg.Value
		w.order = append(w.order, cfg.Key)
	}

	w.buf.WriteByte('\n')
}
