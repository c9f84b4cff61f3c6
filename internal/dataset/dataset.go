// Package dataset provides the append-only CSV sink for labeled
// feature vectors.
package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Label values assigned by the operator.
const (
	LabelDrowsy = 0
	LabelAlert  = 1
)

// ErrColumnMismatch is returned when a record's feature vector length
// does not match the layout the file was created with. Appending it
// would corrupt every downstream column.
var ErrColumnMismatch = errors.New("feature vector length does not match dataset layout")

// Layout describes the column structure of a dataset file. It is fixed
// for the lifetime of the file: the header is written once and every
// row must match it.
type Layout struct {
	FaceCount int
	PoseCount int
}

// Columns returns the total column count: x,y,z per face point,
// x,y,z,v per pose point, plus label and timestamp.
func (l Layout) Columns() int {
	return l.FaceCount*3 + l.PoseCount*4 + 2
}

// Features returns the number of feature columns (all columns except
// label and timestamp).
func (l Layout) Features() int {
	return l.FaceCount*3 + l.PoseCount*4
}

// Header returns the column names in fixed order: face_<i>_{x,y,z} for
// each face point, pose_<i>_{x,y,z,v} for each pose point, then label
// and timestamp.
func (l Layout) Header() []string {
	header := make([]string, 0, l.Columns())
	for i := 0; i < l.FaceCount; i++ {
		header = append(header,
			fmt.Sprintf("face_%d_x", i),
			fmt.Sprintf("face_%d_y", i),
			fmt.Sprintf("face_%d_z", i),
		)
	}
	for i := 0; i < l.PoseCount; i++ {
		header = append(header,
			fmt.Sprintf("pose_%d_x", i),
			fmt.Sprintf("pose_%d_y", i),
			fmt.Sprintf("pose_%d_z", i),
			fmt.Sprintf("pose_%d_v", i),
		)
	}
	return append(header, "label", "timestamp")
}

// Record is one labeled sample. It is immutable once appended; the
// dataset never updates or deletes rows.
type Record struct {
	Label     int
	Features  []float64
	Timestamp time.Time
}

// row serializes the record in header order: features, label, timestamp.
func (r Record) row() []string {
	row := make([]string, 0, len(r.Features)+2)
	for _, v := range r.Features {
		row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
	}
	row = append(row, strconv.Itoa(r.Label), r.Timestamp.UTC().Format(time.RFC3339))
	return row
}
