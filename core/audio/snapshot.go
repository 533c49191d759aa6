package audio

// Snapshot is a read-only dump of PSG state for save-state serialization,
// grounded the same way video.Snapshot is: structured access to
// already-specified state, not a new feature.
type Snapshot struct {
	ToneReload   [3]uint16
	ToneCounter  [3]uint16
	ToneVolume   [3]uint8
	TonePolarity [3]int8

	NoiseControl  uint16
	NoiseCounter  uint16
	NoiseVolume   uint8
	NoisePolarity int8
	LFSR          uint16

	LatchedRegister uint8
}

// Snapshot captures the PSG's current state by value.
func (p *PSG) Snapshot() Snapshot {
	var s Snapshot
	for i, t := range p.tones {
		s.ToneReload[i] = t.reload
		s.ToneCounter[i] = t.counter
		s.ToneVolume[i] = t.volume
		s.TonePolarity[i] = t.polarity
	}
	s.NoiseControl = p.noise.control
	s.NoiseCounter = p.noise.counter
	s.NoiseVolume = p.noise.volume
	s.NoisePolarity = p.noise.polarity
	s.LFSR = p.noise.lfsr
	s.LatchedRegister = p.latchedRegister
	return s
}

// Restore loads previously captured state back into the PSG.
func (p *PSG) Restore(s Snapshot) {
	for i := range p.tones {
		p.tones[i].reload = s.ToneReload[i]
		p.tones[i].counter = s.ToneCounter[i]
		p.tones[i].volume = s.ToneVolume[i]
		p.tones[i].polarity = s.TonePolarity[i]
	}
	p.noise.control = s.NoiseControl
	p.noise.counter = s.NoiseCounter
	p.noise.volume = s.NoiseVolume
	p.noise.polarity = s.NoisePolarity
	p.noise.lfsr = s.LFSR
	p.latchedRegister = s.LatchedRegister
}
