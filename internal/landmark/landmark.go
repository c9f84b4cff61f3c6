// Package landmark converts raw MediaPipe Holistic landmarks into
// scale- and translation-invariant feature vectors.
package landmark

import (
	"errors"
	"fmt"
)

// MediaPipe Holistic landmark counts and the face mesh indices used as
// normalization references.
// See: https://developers.google.com/mediapipe/solutions/vision/holistic_landmarker
const (
	FaceCount     = 468
	PoseCount     = 33
	NoseTip       = 1
	LeftEyeOuter  = 33
	RightEyeOuter = 263
)

// minEyeDistance is the threshold below which the eye distance is
// considered degenerate and the scale falls back to 1.0.
const minEyeDistance = 1e-6

// ErrMissingLandmarks is returned when a frame lacks either the face or
// the pose landmark set. Both are required to build a feature vector.
var ErrMissingLandmarks = errors.New("missing face or pose landmarks")

// CountError reports a landmark set whose length does not match the
// configured count. It indicates a contract breach by the detector:
// flattening is positional, so a short or long set would silently shift
// every downstream column.
type CountError struct {
	Kind string // "face" or "pose"
	Want int
	Got  int
}

func (e *CountError) Error() string {
	return fmt.Sprintf("%s landmarks: expected %d points, got %d", e.Kind, e.Want, e.Got)
}

// Point represents a single detected landmark. X and Y are normalized
// frame coordinates in [0,1], Z is relative depth. Visibility is a
// presence confidence reported only for pose points; face points carry 0.
type Point struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility,omitempty"`
}

// Config holds the landmark counts and reference indices used for
// normalization. It is immutable once a Normalizer is built from it,
// which lets tests run with small synthetic sets.
type Config struct {
	// FaceCount and PoseCount are the expected set lengths.
	FaceCount int
	PoseCount int

	// NoseIndex is the face point used as the spatial origin.
	NoseIndex int

	// LeftEyeIndex and RightEyeIndex are the face points whose 2D
	// distance provides the scale estimate.
	LeftEyeIndex  int
	RightEyeIndex int
}

// DefaultConfig returns the configuration matching MediaPipe Holistic
// output: 468 face points, 33 pose points, nose tip origin, outer eye
// corners for scale.
func DefaultConfig() Config {
	return Config{
		FaceCount:     FaceCount,
		PoseCount:     PoseCount,
		NoseIndex:     NoseTip,
		LeftEyeIndex:  LeftEyeOuter,
		RightEyeIndex: RightEyeOuter,
	}
}

// VectorLen returns the feature vector length produced under this
// configuration: x,y,z per face point plus x,y,z,visibility per pose point.
func (c Config) VectorLen() int {
	return c.FaceCount*3 + c.PoseCount*4
}
