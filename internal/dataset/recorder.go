package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
)

// Recorder appends labeled feature vectors to a CSV dataset file.
//
// The file handle is scoped to each call: Append opens, writes one row,
// and closes, so each write is atomic from this process's perspective.
// Concurrent external writers sharing the file are not supported.
type Recorder struct {
	path   string
	layout Layout
}

// NewRecorder returns a Recorder for the dataset at path. If the file
// does not exist it is created with the layout's header row; an existing
// file is left untouched, in particular its header is never rewritten.
func NewRecorder(path string, layout Layout) (*Recorder, error) {
	r := &Recorder{path: path, layout: layout}

	if _, err := os.Stat(path); err == nil {
		return r, nil
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat dataset %s: %w", path, err)
	}

	header, err := encodeRow(layout.Header())
	if err != nil {
		return nil, fmt.Errorf("write dataset header: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("create dataset %s: %w", path, err)
	}
	defer f.Close()

	if _, err := f.Write(header); err != nil {
		return nil, fmt.Errorf("write dataset header: %w", err)
	}

	return r, nil
}

// Path returns the dataset file path.
func (r *Recorder) Path() string {
	return r.path
}

// Layout returns the column layout the recorder was created with.
func (r *Recorder) Layout() Layout {
	return r.layout
}

// Append writes one record as a single row. The record's feature vector
// must match the layout; a failed write means the record is not
// recorded and the error is returned to the caller.
func (r *Recorder) Append(rec Record) error {
	if len(rec.Features) != r.layout.Features() {
		return fmt.Errorf("append: %w (want %d, got %d)",
			ErrColumnMismatch, r.layout.Features(), len(rec.Features))
	}

	row, err := encodeRow(rec.row())
	if err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	f, err := os.OpenFile(r.path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", r.path, err)
	}
	defer f.Close()

	if _, err := f.Write(row); err != nil {
		return fmt.Errorf("append record: %w", err)
	}

	return nil
}

// encodeRow serializes one CSV row fully in memory. A full-size row is
// far larger than csv.Writer's internal buffer, so writing through a
// csv.Writer attached to the file could flush earlier chunks before a
// failure surfaces and leave a partial row behind; encoding first keeps
// each row a single file write.
func encodeRow(fields []string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fields); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
