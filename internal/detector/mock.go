package detector

import (
	"gocv.io/x/gocv"

	"github.com/ayusman/nidra/internal/landmark"
)

// MockHolistic is a test implementation of the Holistic interface.
// It allows tests to control the detection results.
type MockHolistic struct {
	result *Result
	err    error
}

// NewMockHolistic creates a new MockHolistic instance.
func NewMockHolistic() *MockHolistic {
	return &MockHolistic{}
}

// SetResult sets the result that will be returned by Detect.
func (m *MockHolistic) SetResult(result *Result) {
	m.result = result
}

// SetError sets the error that will be returned by Detect.
func (m *MockHolistic) SetError(err error) {
	m.err = err
}

// Detect returns the pre-configured result or error. A nil configured
// result is returned as an empty Result (no landmarks this frame).
func (m *MockHolistic) Detect(frame *gocv.Mat) (*Result, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return &Result{}, nil
	}
	return m.result, nil
}

// Close is a no-op for the mock detector.
func (m *MockHolistic) Close() error {
	return nil
}

// SyntheticFace returns a face landmark set of the configured length
// with every point at the frame center, the nose reference at the
// center, and the eye references offset symmetrically so the eye
// distance is 0.2.
func SyntheticFace(cfg landmark.Config) []landmark.Point {
	face := make([]landmark.Point, cfg.FaceCount)
	for i := range face {
		face[i] = landmark.Point{X: 0.5, Y: 0.5}
	}
	face[cfg.LeftEyeIndex] = landmark.Point{X: 0.4, Y: 0.5}
	face[cfg.RightEyeIndex] = landmark.Point{X: 0.6, Y: 0.5}
	return face
}

// SyntheticPose returns a pose landmark set of the configured length
// with points spread down the frame and full visibility.
func SyntheticPose(cfg landmark.Config) []landmark.Point {
	pose := make([]landmark.Point, cfg.PoseCount)
	for i := range pose {
		pose[i] = landmark.Point{
			X:          0.5,
			Y:          0.3 + 0.01*float64(i),
			Z:          -0.05 * float64(i%3),
			Visibility: 1.0,
		}
	}
	return pose
}

// SyntheticResult returns a full detection result built from
// SyntheticFace and SyntheticPose.
func SyntheticResult(cfg landmark.Config) *Result {
	return &Result{
		Face: SyntheticFace(cfg),
		Pose: SyntheticPose(cfg),
	}
}
