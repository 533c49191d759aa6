package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type captureAudioSink struct {
	buf     []int16
	queued  [][]int16
	playing bool
}

func newCaptureAudioSink(size int) *captureAudioSink {
	return &captureAudioSink{buf: make([]int16, size)}
}

func (c *captureAudioSink) Configure(int, int) error { return nil }
func (c *captureAudioSink) Play() error              { c.playing = true; return nil }
func (c *captureAudioSink) Pause() error             { c.playing = false; return nil }
func (c *captureAudioSink) Buffer() []int16          { return c.buf }
func (c *captureAudioSink) QueueBuffer() error {
	cp := make([]int16, len(c.buf))
	copy(cp, c.buf)
	c.queued = append(c.queued, cp)
	return nil
}

func TestWrite_LatchAndDataByte_ToneReload(t *testing.T) {
	p := New(44100, 64)

	p.Write(0x80 | (0 << 4) | 0x05) // latch tone 0, low nibble 0x5
	p.Write(0x3F & 0x2A)            // data byte, bits 9:4

	assert.Equal(t, uint16(0x2A)<<4|0x05, p.tones[0].reload)
}

func TestWrite_VolumeLatch(t *testing.T) {
	p := New(44100, 64)

	p.Write(0x80 | (1 << 4) | 0x0A) // latch tone 0 volume register, value 0xA

	assert.Equal(t, uint8(0x0A), p.tones[0].volume)
}

func TestWrite_NoiseLatchResetsLFSR(t *testing.T) {
	p := New(44100, 64)
	p.noise.lfsr = 0x1234

	p.Write(0x80 | (6 << 4) | 0x03)

	assert.Equal(t, uint16(0x8000), p.noise.lfsr)
	assert.Equal(t, uint16(0x03), p.noise.control)
}

func TestGenerate_QueuesFullBuffers(t *testing.T) {
	p := New(44100, 4)
	sink := newCaptureAudioSink(4)

	assert.NoError(t, p.Generate(10, sink))

	assert.Len(t, sink.queued, 2, "10 samples at buffer size 4 -> 2 full flushes, 2 pending")
}

func TestStepTone_HoldsPositivePolarityWhenReloadIsZeroOrOne(t *testing.T) {
	p := New(44100, 64)
	p.tones[0].reload = 0
	p.tones[0].volume = 0 // loudest

	for i := 0; i < 5; i++ {
		p.stepTone(&p.tones[0])
	}

	assert.Equal(t, int8(1), p.tones[0].polarity, "reload<=1 holds polarity at +1")
}

func TestStepTone_AlternatesPolarityOverAFullPeriod(t *testing.T) {
	p := New(44100, 64)
	p.tones[0].reload = 4
	p.tones[0].volume = 0 // loudest

	saw := map[int16]bool{}
	for i := 0; i < 4*2; i++ {
		saw[p.stepTone(&p.tones[0])] = true
	}

	assert.True(t, saw[volumeToAmplitude[0]], "output never reached positive amplitude")
	assert.True(t, saw[-volumeToAmplitude[0]], "output never reached negative amplitude")
}

func TestStepNoise_PeriodicModeReloadsCounterFromModeBits(t *testing.T) {
	p := New(44100, 64)
	p.noise.control = 0 // periodic mode (bit2=0), period 0x20
	p.noise.lfsr = 0x0001
	p.noise.counter = 0

	p.stepNoise()

	assert.Equal(t, uint16(0x20), p.noise.counter)
}
