package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sms-core/smsemu/core/video"
)

func TestLines_NTSCAndPAL(t *testing.T) {
	assert.Equal(t, 262, Lines(video.NTSC))
	assert.Equal(t, 313, Lines(video.PAL))
}

func TestFrameDuration_NTSCIsAboutSixtyHz(t *testing.T) {
	fps := TargetFPS(video.NTSC)
	assert.InDelta(t, 59.92, fps, 0.05)
}

func TestFrameDuration_PALIsAboutFiftyHz(t *testing.T) {
	fps := TargetFPS(video.PAL)
	assert.InDelta(t, 49.70, fps, 0.05)
}

func TestAdaptiveClock_SleepUntilReturnsAtOrAfterDeadline(t *testing.T) {
	c := NewAdaptiveClock()
	deadline := c.Now().Add(5 * time.Millisecond)

	c.SleepUntil(deadline)

	assert.False(t, c.Now().Before(deadline))
}

func TestAdaptiveClock_SleepUntilPastDeadlineReturnsImmediately(t *testing.T) {
	c := NewAdaptiveClock()
	start := time.Now()

	c.SleepUntil(start.Add(-time.Second))

	assert.Less(t, time.Since(start), 2*time.Millisecond)
}
