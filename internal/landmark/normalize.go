package landmark

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Normalizer maps one frame's face and pose landmark sets into a flat
// feature vector. It holds no per-call state; Normalize is pure.
type Normalizer struct {
	cfg Config
}

// NewNormalizer creates a Normalizer with the given configuration.
func NewNormalizer(cfg Config) *Normalizer {
	return &Normalizer{cfg: cfg}
}

// Config returns the configuration the Normalizer was built with.
func (n *Normalizer) Config() Config {
	return n.cfg
}

// Normalize converts a frame's landmark sets into a feature vector of
// length Config.VectorLen().
//
// The nose point's (x,y) becomes the origin and all face and pose (x,y)
// coordinates are divided by the distance between the two eye reference
// points, so the vector is invariant to where the subject sits in the
// frame and how close they are to the camera. Z channels are mean-centered
// per set but not rescaled; pose visibility passes through unchanged.
//
// Returns ErrMissingLandmarks if either set is nil or empty, and a
// *CountError if a set's length disagrees with the configuration.
func (n *Normalizer) Normalize(face, pose []Point) ([]float64, error) {
	if len(face) == 0 || len(pose) == 0 {
		return nil, ErrMissingLandmarks
	}
	if len(face) != n.cfg.FaceCount {
		return nil, &CountError{Kind: "face", Want: n.cfg.FaceCount, Got: len(face)}
	}
	if len(pose) != n.cfg.PoseCount {
		return nil, &CountError{Kind: "pose", Want: n.cfg.PoseCount, Got: len(pose)}
	}

	ref := face[n.cfg.NoseIndex]
	scale := n.eyeScale(face)

	faceZ := make([]float64, len(face))
	for i, p := range face {
		faceZ[i] = p.Z
	}
	poseZ := make([]float64, len(pose))
	for i, p := range pose {
		poseZ[i] = p.Z
	}
	faceZMean := stat.Mean(faceZ, nil)
	poseZMean := stat.Mean(poseZ, nil)

	out := make([]float64, 0, n.cfg.VectorLen())
	for _, p := range face {
		out = append(out, (p.X-ref.X)/scale, (p.Y-ref.Y)/scale, p.Z-faceZMean)
	}
	for _, p := range pose {
		out = append(out, (p.X-ref.X)/scale, (p.Y-ref.Y)/scale, p.Z-poseZMean, p.Visibility)
	}

	return out, nil
}

// eyeScale estimates the frame's scale from the 2D distance between the
// two eye reference points. A near-zero distance falls back to 1.0:
// downstream the absolute scale is unrecoverable anyway, and a neutral
// scale keeps the sample usable instead of blowing up the division.
func (n *Normalizer) eyeScale(face []Point) float64 {
	left := face[n.cfg.LeftEyeIndex]
	right := face[n.cfg.RightEyeIndex]

	dist := math.Hypot(left.X-right.X, left.Y-right.Y)
	if dist < minEyeDistance {
		return 1.0
	}
	return dist
}
