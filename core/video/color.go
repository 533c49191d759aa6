package video

import "github.com/sms-core/smsemu/core/sink"

// Color converts a raw CRAM entry to a fully resolved RGB24 color. SMS/SMS2
// pack 2 bits per channel in a single byte; Game Gear packs 4 bits per
// channel across the 16-bit word the two-byte write protocol assembles.
// Exposed as a pure function so host pixel sinks never touch raw CRAM
// encoding directly.
func Color(kind Kind, cramValue uint16) sink.RGB {
	if kind == KindGG {
		r := uint8(cramValue & 0x0F)
		g := uint8((cramValue >> 4) & 0x0F)
		b := uint8((cramValue >> 8) & 0x0F)
		return sink.RGB{R: r * 17, G: g * 17, B: b * 17}
	}
	v := uint8(cramValue)
	r := v & 0x03
	g := (v >> 2) & 0x03
	b := (v >> 4) & 0x03
	return sink.RGB{R: r * 85, G: g * 85, B: b * 85}
}

// Snapshot is a read-only dump of VDP state for the debug inbox and for
// save-state serialization: structured access to state spec.md 3 already
// names, not a new rendering feature.
type Snapshot struct {
	VRAM     [0x4000]uint8
	CRAM     [32]uint16
	Reg      [11]uint8
	V, H     uint16
	Address  uint16
	Buffer   uint8
	Status   uint8
	Cycles   uint64
	Kind     Kind
	TVSystem TVSystem
}

// Snapshot captures the current VDP state by value.
func (v *VDP) Snapshot() Snapshot {
	return Snapshot{
		VRAM:     v.vram,
		CRAM:     v.cram,
		Reg:      v.reg,
		V:        v.v,
		H:        v.h,
		Address:  v.codeAddress,
		Buffer:   v.buffer,
		Status:   v.status,
		Cycles:   v.cycles,
		Kind:     v.Kind,
		TVSystem: v.TVSystem,
	}
}

// Restore loads previously captured state back into the VDP, for
// save-state decode.
func (v *VDP) Restore(s Snapshot) {
	v.vram = s.VRAM
	v.cram = s.CRAM
	v.reg = s.Reg
	v.v = s.V
	v.h = s.H
	v.codeAddress = s.Address
	v.buffer = s.Buffer
	v.status = s.Status
	v.cycles = s.Cycles
	v.Kind = s.Kind
	v.TVSystem = s.TVSystem
}
