package main

import (
	"log"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ayusman/nidra/internal/capture"
	"github.com/ayusman/nidra/internal/collector"
	"github.com/ayusman/nidra/internal/dataset"
	"github.com/ayusman/nidra/internal/detector"
	"github.com/ayusman/nidra/internal/landmark"
	"github.com/ayusman/nidra/internal/session"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Capture and label landmark samples from the webcam",
	Long: `Collect opens the webcam, runs MediaPipe Holistic detection on each
frame, and shows the video in a window. Press 0 to log the current
frame as drowsy, 1 to log it as alert, and q or ESC to quit. Each
logged sample is appended to the CSV dataset.`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().Int("camera", envInt("NIDRA_CAMERA", 0), "Camera device ID")
	collectCmd.Flags().String("out", envOr("NIDRA_DATASET", "landmarks.csv"), "Dataset CSV path")
	collectCmd.Flags().String("db", envOr("NIDRA_DB", ""), "Session database path (default ~/.nidra/nidra.db)")
	collectCmd.Flags().Int("fps", capture.DefaultFPS, "Capture frame rate")
	collectCmd.Flags().Bool("mirror", true, "Mirror frames horizontally")
	collectCmd.Flags().Bool("mock", false, "Use a synthetic detector instead of MediaPipe")
	collectCmd.Flags().Bool("no-sessions", false, "Do not track this run in the session database")
}

func runCollect(cmd *cobra.Command, args []string) error {
	cameraID, _ := cmd.Flags().GetInt("camera")
	outPath, _ := cmd.Flags().GetString("out")
	dbPath, _ := cmd.Flags().GetString("db")
	fps, _ := cmd.Flags().GetInt("fps")
	mirror, _ := cmd.Flags().GetBool("mirror")
	useMock, _ := cmd.Flags().GetBool("mock")
	noSessions, _ := cmd.Flags().GetBool("no-sessions")

	cfg := landmark.DefaultConfig()

	recorder, err := dataset.NewRecorder(outPath, dataset.Layout{
		FaceCount: cfg.FaceCount,
		PoseCount: cfg.PoseCount,
	})
	if err != nil {
		return err
	}

	var sessions *session.Repository
	if !noSessions {
		if dbPath == "" {
			dir, err := dataDir()
			if err != nil {
				return err
			}
			dbPath = filepath.Join(dir, "nidra.db")
		}

		store, err := session.New(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()
		sessions = store.Sessions()
	}

	holistic := newHolistic(cfg, useMock)

	c := collector.New(collector.Config{
		Camera:     capture.NewCamera(capture.Options{DeviceID: cameraID, Mirror: mirror}),
		Detector:   holistic,
		Display:    collector.NewWindow("nidra collector"),
		Normalizer: landmark.NewNormalizer(cfg),
		Recorder:   recorder,
		Sessions:   sessions,
		FPS:        fps,
	})

	return c.Run()
}

// newHolistic returns the MediaPipe detector, falling back to a
// synthetic mock when the Python service is unavailable.
func newHolistic(cfg landmark.Config, forceMock bool) detector.Holistic {
	if !forceMock {
		mp, err := detector.NewMediaPipeHolistic(detector.DefaultConfig())
		if err == nil {
			log.Println("Using MediaPipe holistic detection")
			return mp
		}
		log.Printf("MediaPipe not available (%v), using mock detector", err)
	}

	mock := detector.NewMockHolistic()
	mock.SetResult(detector.SyntheticResult(cfg))
	return mock
}

// envInt reads an integer environment variable with a fallback.
func envInt(key string, fallback int) int {
	v := envOr(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
