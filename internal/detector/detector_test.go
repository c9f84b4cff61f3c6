package detector

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/ayusman/nidra/internal/landmark"
)

const epsilon = 1e-9

func TestMockHolistic(t *testing.T) {
	t.Run("returns empty result by default", func(t *testing.T) {
		mock := NewMockHolistic()

		result, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if result == nil {
			t.Fatal("expected a non-nil result")
		}
		if result.Face != nil || result.Pose != nil {
			t.Errorf("expected absent landmark sets, got %+v", result)
		}
	})

	t.Run("returns configured result", func(t *testing.T) {
		mock := NewMockHolistic()
		cfg := landmark.DefaultConfig()
		mock.SetResult(SyntheticResult(cfg))

		result, err := mock.Detect(nil)

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if len(result.Face) != cfg.FaceCount {
			t.Errorf("expected %d face points, got %d", cfg.FaceCount, len(result.Face))
		}
		if len(result.Pose) != cfg.PoseCount {
			t.Errorf("expected %d pose points, got %d", cfg.PoseCount, len(result.Pose))
		}
	})

	t.Run("returns configured error", func(t *testing.T) {
		mock := NewMockHolistic()

		expectedErr := errors.New("detection failed")
		mock.SetError(expectedErr)

		result, err := mock.Detect(nil)

		if err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
		if result != nil {
			t.Errorf("expected nil result when error is set, got %v", result)
		}
	})

	t.Run("Close returns nil", func(t *testing.T) {
		mock := NewMockHolistic()

		if err := mock.Close(); err != nil {
			t.Errorf("expected Close to return nil, got %v", err)
		}
	})

	t.Run("implements Holistic interface", func(t *testing.T) {
		var _ Holistic = (*MockHolistic)(nil)
	})
}

func TestDefaultConfig_MatchesDefaultFaceCount(t *testing.T) {
	// The refined face mesh emits 478 landmarks, but the default
	// normalizer and dataset layout are built for the 468-point mesh.
	// With refinement on by default, every live detection would be
	// rejected as a malformed set and no sample could ever be logged.
	if DefaultConfig().RefineFace {
		t.Errorf("RefineFace must stay off while the default face count is %d",
			landmark.DefaultConfig().FaceCount)
	}
}

func TestSyntheticFace(t *testing.T) {
	cfg := landmark.DefaultConfig()
	face := SyntheticFace(cfg)

	if len(face) != cfg.FaceCount {
		t.Fatalf("expected %d points, got %d", cfg.FaceCount, len(face))
	}

	t.Run("nose at frame center", func(t *testing.T) {
		nose := face[cfg.NoseIndex]
		if nose.X != 0.5 || nose.Y != 0.5 {
			t.Errorf("expected nose at (0.5,0.5), got (%g,%g)", nose.X, nose.Y)
		}
	})

	t.Run("eye distance is 0.2", func(t *testing.T) {
		left := face[cfg.LeftEyeIndex]
		right := face[cfg.RightEyeIndex]
		dist := math.Hypot(left.X-right.X, left.Y-right.Y)
		if math.Abs(dist-0.2) > epsilon {
			t.Errorf("expected eye distance 0.2, got %g", dist)
		}
	})
}

func TestSyntheticResult_Normalizes(t *testing.T) {
	cfg := landmark.DefaultConfig()
	result := SyntheticResult(cfg)

	out, err := landmark.NewNormalizer(cfg).Normalize(result.Face, result.Pose)
	if err != nil {
		t.Fatalf("synthetic result should normalize cleanly: %v", err)
	}
	if len(out) != cfg.VectorLen() {
		t.Errorf("expected vector length %d, got %d", cfg.VectorLen(), len(out))
	}
}

func TestJSONResult_ToResult(t *testing.T) {
	t.Run("full response", func(t *testing.T) {
		line := `{"face":[{"x":0.5,"y":0.4,"z":-0.01}],"pose":[{"x":0.5,"y":0.3,"z":0.1,"visibility":0.97}]}`

		var resp jsonResult
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		result := resp.toResult()
		if len(result.Face) != 1 || len(result.Pose) != 1 {
			t.Fatalf("unexpected result: %+v", result)
		}
		if result.Face[0].Visibility != 0 {
			t.Errorf("face points should carry zero visibility, got %g", result.Face[0].Visibility)
		}
		if result.Pose[0].Visibility != 0.97 {
			t.Errorf("expected pose visibility 0.97, got %g", result.Pose[0].Visibility)
		}
	})

	t.Run("absent sets stay nil", func(t *testing.T) {
		line := `{"face":null,"pose":null}`

		var resp jsonResult
		if err := json.Unmarshal([]byte(line), &resp); err != nil {
			t.Fatalf("failed to parse response: %v", err)
		}

		result := resp.toResult()
		if result.Face != nil || result.Pose != nil {
			t.Errorf("expected nil sets for a frame with no detections, got %+v", result)
		}
	})
}
