// Package headless implements core/sink.PixelSink and core/sink.AudioSink
// for batch/automated runs: no window, optional periodic PNG snapshots,
// grounded on the teacher's headless backend's snapshot-interval
// bookkeeping and slog progress logging.
package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sms-core/smsemu/core/debug"
	"github.com/sms-core/smsemu/core/sink"
)

// SnapshotConfig controls periodic PNG dumps of the rendered frame.
type SnapshotConfig struct {
	Enabled   bool
	Interval  int // save every N Present() calls
	Directory string
	ROMName   string
}

// NewSnapshotConfig builds a SnapshotConfig from CLI-style parameters,
// creating directory (or a temp dir, if empty) when interval > 0.
func NewSnapshotConfig(interval int, directory, romPath string) (SnapshotConfig, error) {
	cfg := SnapshotConfig{Enabled: interval > 0, Interval: interval}
	if !cfg.Enabled {
		return cfg, nil
	}

	if directory == "" {
		dir, err := os.MkdirTemp("", "smsemu-snapshots-*")
		if err != nil {
			return cfg, fmt.Errorf("headless: create snapshot dir: %w", err)
		}
		cfg.Directory = dir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return cfg, fmt.Errorf("headless: create snapshot dir: %w", err)
		}
		cfg.Directory = directory
	}

	name := filepath.Base(romPath)
	cfg.ROMName = strings.TrimSuffix(name, filepath.Ext(name))
	return cfg, nil
}

// Sink buffers the current frame and discards audio; Present optionally
// dumps a PNG every Interval frames.
type Sink struct {
	width, height int
	frame         []sink.RGB
	snapshots     SnapshotConfig
	frameCount    int

	audioBuf []int16
}

func New(snapshots SnapshotConfig) *Sink {
	return &Sink{snapshots: snapshots}
}

func (s *Sink) SetResolution(w, h int) error {
	s.width, s.height = w, h
	s.frame = make([]sink.RGB, w*h)
	return nil
}

func (s *Sink) Paint(x, y int, c sink.RGB) error {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return fmt.Errorf("headless: pixel (%d,%d) outside %dx%d frame", x, y, s.width, s.height)
	}
	s.frame[y*s.width+x] = c
	return nil
}

func (s *Sink) Present() error {
	s.frameCount++
	if s.snapshots.Enabled && s.frameCount%s.snapshots.Interval == 0 {
		base := fmt.Sprintf("%s_frame_%d", s.snapshots.ROMName, s.frameCount)
		if err := debug.SaveFramePNGToDir(s.frame, s.width, s.height, base, s.snapshots.Directory); err != nil {
			slog.Error("snapshot failed", "frame", s.frameCount, "error", err)
		}
	}
	return nil
}

// Frame returns the most recently presented frame, for test assertions.
func (s *Sink) Frame() []sink.RGB { return s.frame }

func (s *Sink) Configure(sampleRateHz, bufferSizeSamples int) error {
	s.audioBuf = make([]int16, bufferSizeSamples)
	return nil
}
func (s *Sink) Play() error             { return nil }
func (s *Sink) Pause() error            { return nil }
func (s *Sink) Buffer() []int16         { return s.audioBuf }
func (s *Sink) QueueBuffer() error      { return nil }

var (
	_ sink.PixelSink = (*Sink)(nil)
	_ sink.AudioSink = (*Sink)(nil)
)
