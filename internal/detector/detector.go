// Package detector provides face and pose landmark detection for the
// nidra data collector.
package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/nidra/internal/landmark"
)

// Result holds the landmark sets detected in one frame. A nil slice
// means that set was not detected this frame, which is normal and not
// an error; callers decide whether a partial frame is usable.
type Result struct {
	Face []landmark.Point
	Pose []landmark.Point
}

// Holistic defines the interface for face+pose landmark detection
// implementations.
type Holistic interface {
	// Detect analyzes a video frame and returns the detected landmark
	// sets. Either set may be absent.
	Detect(frame *gocv.Mat) (*Result, error)

	// Close releases any resources held by the detector.
	Close() error
}

// Config holds configuration options for holistic detection.
type Config struct {
	// MinConfidence is the minimum detection confidence threshold (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum tracking confidence threshold (0.0-1.0).
	MinTrackingConf float64

	// RefineFace enables the refined face mesh, which adds 10 iris
	// landmarks on top of the 468-point mesh. Only enable it together
	// with a landmark configuration expecting 478 face points.
	RefineFace bool
}

// DefaultConfig returns a Config with sensible default values. The
// refined face mesh stays off so detections match the 468-point face
// count the default normalizer and dataset layout are built for.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		RefineFace:      false,
	}
}
