// Package timing derives SMS/GG frame durations from the Z80 clock and
// provides a drift-tolerant sink.ClockSource for pacing real-time playback.
package timing

import (
	"time"

	"github.com/sms-core/smsemu/core/video"
)

// CPUFrequencyNTSC and CPUFrequencyPAL are the Z80 clock rates, in Hz, for
// each TV standard.
const (
	CPUFrequencyNTSC = 3579545
	CPUFrequencyPAL  = 3546893
)

// CyclesPerLine is the number of Z80 cycles executed per scanline: fixed at
// 228 regardless of TV standard, 2/3 of the VDP's 342-cycle line.
const CyclesPerLine = 228

// LinesNTSC and LinesPAL are the total scanline counts per frame.
const (
	LinesNTSC = 262
	LinesPAL  = 313
)

// Lines returns the scanline count per frame for tv.
func Lines(tv video.TVSystem) int {
	if tv == video.PAL {
		return LinesPAL
	}
	return LinesNTSC
}

// frequency returns the Z80 clock rate, in Hz, for tv.
func frequency(tv video.TVSystem) int {
	if tv == video.PAL {
		return CPUFrequencyPAL
	}
	return CPUFrequencyNTSC
}

// FrameDuration returns the real-time duration of one frame at tv's rate.
func FrameDuration(tv video.TVSystem) time.Duration {
	cycles := Lines(tv) * CyclesPerLine
	return time.Duration(float64(cycles) / float64(frequency(tv)) * float64(time.Second))
}

// TargetFPS returns the exact frame rate for tv.
func TargetFPS(tv video.TVSystem) float64 {
	return float64(time.Second) / float64(FrameDuration(tv))
}

// AdaptiveClock is a sink.ClockSource that sleeps for most of the remaining
// time and busy-waits the last stretch, trading a little CPU for avoiding
// the scheduler's oversleep. Unlike a fixed-interval ticker, SleepUntil
// takes an absolute deadline each call, so timing never drifts: the caller
// owns the schedule by computing each frame's deadline from the last.
type AdaptiveClock struct{}

// NewAdaptiveClock returns a ready-to-use AdaptiveClock.
func NewAdaptiveClock() *AdaptiveClock { return &AdaptiveClock{} }

func (a *AdaptiveClock) Now() time.Time { return time.Now() }

// SleepUntil blocks until t, or returns immediately if t has already passed.
func (a *AdaptiveClock) SleepUntil(t time.Time) {
	if d := time.Until(t); d > 2*time.Millisecond {
		time.Sleep(d - time.Millisecond)
	}
	for time.Now().Before(t) {
	}
}
