// Package collector drives the interactive capture loop: read a frame,
// detect landmarks, and append a labeled feature vector to the dataset
// when the operator asks for it.
package collector

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ayusman/nidra/internal/capture"
	"github.com/ayusman/nidra/internal/dataset"
	"github.com/ayusman/nidra/internal/detector"
	"github.com/ayusman/nidra/internal/landmark"
	"github.com/ayusman/nidra/internal/session"
)

// Config holds the collaborators and settings for a Collector.
type Config struct {
	Camera     capture.Camera
	Detector   detector.Holistic
	Display    Display
	Normalizer *landmark.Normalizer
	Recorder   *dataset.Recorder

	// Sessions is optional; when set, each run is tracked as a session
	// with per-label counts.
	Sessions *session.Repository

	// FPS caps the frame rate of the loop. Zero uses the camera default.
	FPS int
}

// Collector runs the capture loop. One frame is fully processed
// (read, detect, optionally normalize+record, render) before the next
// is requested; the operator's quit command is the only thing that ends
// the loop.
type Collector struct {
	cfg     Config
	mu      sync.Mutex
	running bool
}

// New creates a Collector with the given configuration.
func New(cfg Config) *Collector {
	return &Collector{cfg: cfg}
}

// Running reports whether the capture loop is active.
func (c *Collector) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

func (c *Collector) setRunning(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.running = v
}

// Run executes the capture loop until the operator quits. Camera,
// detector, and display resources are released on every return path.
func (c *Collector) Run() error {
	defer func() {
		if err := c.cfg.Camera.Close(); err != nil {
			log.Printf("Error closing camera: %v", err)
		}
		if err := c.cfg.Detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
		if err := c.cfg.Display.Close(); err != nil {
			log.Printf("Error closing display: %v", err)
		}
	}()

	if err := c.cfg.Camera.Open(); err != nil {
		return fmt.Errorf("open camera: %w", err)
	}

	fps := c.cfg.FPS
	if fps <= 0 {
		fps = c.cfg.Camera.FPS()
	}
	c.cfg.Camera.SetFPS(fps)

	var sess *session.Session
	if c.cfg.Sessions != nil {
		var err error
		sess, err = c.cfg.Sessions.Begin(c.cfg.Recorder.Path())
		if err != nil {
			return fmt.Errorf("begin session: %w", err)
		}
		defer func() {
			if err := c.cfg.Sessions.End(sess.ID); err != nil {
				log.Printf("Error ending session: %v", err)
			}
		}()
	}

	c.setRunning(true)
	defer c.setRunning(false)

	log.Printf("Capture started. Press 0 or 1 to log, q to quit.")

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	for range ticker.C {
		frame, err := c.cfg.Camera.ReadFrame()
		if err != nil {
			log.Printf("Error reading frame: %v", err)
			// Keep the operator's quit command reachable even when the
			// camera stops delivering frames.
			if c.cfg.Display.Poll() == CmdQuit {
				log.Printf("Capture stopped")
				return nil
			}
			continue
		}

		result, err := c.cfg.Detector.Detect(frame)
		if err != nil {
			log.Printf("Error detecting landmarks: %v", err)
			result = &detector.Result{}
		}

		c.cfg.Display.Show(frame)
		cmd := c.cfg.Display.Poll()
		frame.Close()

		switch cmd {
		case CmdLogDrowsy:
			c.logSample(dataset.LabelDrowsy, result, sess)
		case CmdLogAlert:
			c.logSample(dataset.LabelAlert, result, sess)
		case CmdQuit:
			log.Printf("Capture stopped")
			return nil
		}
	}

	return nil
}

// logSample normalizes the frame's landmarks and appends one labeled
// record. Logging is best-effort per frame: missing or malformed
// landmarks and persistence failures are reported and skipped, never
// fatal to the loop.
func (c *Collector) logSample(label int, result *detector.Result, sess *session.Session) {
	features, err := c.cfg.Normalizer.Normalize(result.Face, result.Pose)
	if err != nil {
		var countErr *landmark.CountError
		switch {
		case errors.Is(err, landmark.ErrMissingLandmarks):
			log.Printf("Skipping sample, incomplete landmarks: %v", err)
		case errors.As(err, &countErr):
			log.Printf("Skipping sample, detector returned malformed set: %v", err)
		default:
			log.Printf("Skipping sample: %v", err)
		}
		return
	}

	rec := dataset.Record{
		Label:     label,
		Features:  features,
		Timestamp: time.Now(),
	}
	if err := c.cfg.Recorder.Append(rec); err != nil {
		log.Printf("Sample not recorded: %v", err)
		return
	}

	if c.cfg.Sessions != nil && sess != nil {
		if err := c.cfg.Sessions.IncrementLabel(sess.ID, label); err != nil {
			log.Printf("Error updating session counts: %v", err)
		}
	}

	log.Printf("Logged sample label=%d", label)
}
