// Package audio implements the SN76489 programmable sound generator: three
// tone channels and one noise channel, mixed to a single signed 16-bit
// sample stream at one PSG cycle per 16 Z80 cycles.
package audio

import "github.com/sms-core/smsemu/core/sink"

// volumeToAmplitude maps a 4-bit attenuation (0=loudest, 15=silent) to a
// signed amplitude. The naive exponential (full scale halved every two
// steps) is
// louder than real hardware for the top few volumes, so the three loudest
// levels are capped, matching measured SN76489 output.
var volumeToAmplitude = [16]int16{
	3200, 3200, 3200, 2262, 1600, 1131, 800, 566,
	400, 283, 200, 141, 100, 71, 50, 0,
}

// Generator is the PSG's public interface: a port write and a sample
// generator. FakeSN76489 satisfies it too, discarding everything.
type Generator interface {
	Write(value uint8)
	Generate(sampleCount int, out sink.AudioSink) error
}

type tone struct {
	reload  uint16 // 10-bit tone reload value
	counter uint16
	volume  uint8 // 4-bit attenuation, 0=loudest, 15=silent
	polarity int8
}

type noise struct {
	control uint16 // low bits of register 6: mode (bits 1:0) and white/periodic (bit 2)
	counter uint16
	volume  uint8
	polarity int8
	lfsr    uint16
}

// PSG implements Generator against a real SN76489: three tone channels,
// one noise channel, and the register-latch port protocol from spec.md 4.5.
type PSG struct {
	tones [3]tone
	noise noise

	latchedRegister uint8

	sampleRateHz int
	bufferSize   int
	pending      []int16
}

const z80CyclesPerSample = 16

// New constructs a PSG. sampleRateHz should be the host's configured rate;
// spec.md 4.5 derives it from the Z80 frequency divided by 16, but the
// caller (the frame scheduler) is free to resample for the host's sink.
func New(sampleRateHz, bufferSize int) *PSG {
	p := &PSG{sampleRateHz: sampleRateHz, bufferSize: bufferSize}
	p.noise.lfsr = 0x8000
	p.noise.polarity = 1
	for i := range p.tones {
		p.tones[i].polarity = 1
	}
	return p
}

// Write implements the one-byte port-write protocol: a high bit selects a
// latch byte (register index + low bits), a clear high bit is a data byte
// continuing the latched register.
func (p *PSG) Write(value uint8) {
	if value&0x80 != 0 {
		p.latchedRegister = (value >> 4) & 0x07
		p.writeLow(p.latchedRegister, value&0x0F)
		return
	}
	p.writeHigh(p.latchedRegister, value&0x3F)
}

func (p *PSG) writeLow(reg uint8, low uint8) {
	switch reg {
	case 0, 2, 4: // tone reload, low 4 bits
		ch := reg / 2
		p.tones[ch].reload = p.tones[ch].reload&0x3F0 | uint16(low)
	case 1, 3, 5: // volume
		ch := reg / 2
		p.tones[ch].volume = low
	case 6:
		p.noise.control = uint16(low) & 0x07
		p.noise.lfsr = 0x8000
	case 7:
		p.noise.volume = low
	}
}

func (p *PSG) writeHigh(reg uint8, high uint8) {
	switch reg {
	case 0, 2, 4: // continuing a tone register: bits 9:4
		ch := reg / 2
		p.tones[ch].reload = p.tones[ch].reload&0x00F | uint16(high)<<4
	case 1, 3, 5:
		p.tones[reg/2].volume = high & 0x0F
	case 6:
		p.noise.control = uint16(high) & 0x07
		p.noise.lfsr = 0x8000
	case 7:
		p.noise.volume = high & 0x0F
	}
}

// Generate advances the PSG by sampleCount PSG cycles (1 PSG cycle = 16 Z80
// cycles), queuing samples into the sink in chunks of its configured buffer
// size, per spec.md 4.5.
func (p *PSG) Generate(sampleCount int, out sink.AudioSink) error {
	for i := 0; i < sampleCount; i++ {
		p.pending = append(p.pending, p.step())
		if len(p.pending) == p.bufferSize {
			if err := p.flush(out); err != nil {
				return err
			}
		}
	}
	return nil
}

func (p *PSG) flush(out sink.AudioSink) error {
	if len(p.pending) == 0 {
		return nil
	}
	buf := out.Buffer()
	n := copy(buf, p.pending)
	p.pending = p.pending[:0]
	_ = n
	return out.QueueBuffer()
}

func (p *PSG) step() int16 {
	var sum int32
	for i := range p.tones {
		sum += int32(p.stepTone(&p.tones[i]))
	}
	sum += int32(p.stepNoise())
	if sum > 32767 {
		sum = 32767
	}
	if sum < -32768 {
		sum = -32768
	}
	return int16(sum)
}

func (p *PSG) stepTone(t *tone) int16 {
	if t.counter > 0 {
		t.counter--
	}
	if t.counter == 0 {
		t.polarity = -t.polarity
		t.counter = t.reload
	}
	if t.reload <= 1 {
		t.polarity = 1
	}
	return int16(t.polarity) * volumeToAmplitude[t.volume]
}

func (p *PSG) stepNoise() int16 {
	n := &p.noise
	if n.counter > 0 {
		n.counter--
	}
	if n.counter == 0 {
		switch n.control & 0x03 {
		case 0:
			n.counter = 0x20
		case 1:
			n.counter = 0x40
		case 2:
			n.counter = 0x80
		default:
			n.counter = 2 * p.tones[2].reload
		}
		n.polarity = 1 - 2*int8(n.lfsr&1)

		var feedback uint16
		if n.control&0x04 != 0 {
			feedback = (n.lfsr & 1) ^ ((n.lfsr >> 3) & 1)
		} else {
			feedback = n.lfsr & 1
		}
		n.lfsr = (n.lfsr >> 1) | (feedback << 15)
	}
	return int16(n.polarity) * volumeToAmplitude[n.volume]
}
