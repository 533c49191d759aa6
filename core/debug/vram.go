package debug

import "github.com/sms-core/smsemu/core/video"

const (
	PatternCount      = 512 // 16KiB VRAM / 32 bytes per 8x8 4bpp tile
	PatternBytes      = 32
	PatternPixelWidth = 8
	PatternPixelHigh  = 8
)

// Pattern is one decoded 8x8 tile, as palette indices (0-15) into CRAM, not
// yet resolved to RGB — callers combine it with the relevant palette
// half-select bit from a name-table entry.
type Pattern struct {
	Index  int
	Pixels [PatternPixelHigh][PatternPixelWidth]uint8
}

// VRAMData is a decoded dump of every pattern plus the active name table's
// location, for a tile-browser debug view.
type VRAMData struct {
	Patterns        []Pattern
	NameTableAddr   uint16
	BackgroundLocked bool
}

// ExtractVRAMData decodes all 512 patterns and reports the active name
// table address for s's current mode.
func ExtractVRAMData(s video.Snapshot) *VRAMData {
	data := &VRAMData{
		Patterns:         make([]Pattern, PatternCount),
		BackgroundLocked: s.Reg[0]&(1<<7) != 0,
	}

	data.NameTableAddr = uint16(s.Reg[2]&0x0E) << 10
	vdp := video.New(s.Kind, s.TVSystem)
	vdp.Restore(s)
	if vdp.Resolution() != video.ResolutionLow {
		data.NameTableAddr |= 1 << 11
	}

	for i := 0; i < PatternCount; i++ {
		addr := uint16(i * PatternBytes)
		var pat Pattern
		pat.Index = i
		for line := 0; line < 8; line++ {
			b0 := s.VRAM[addr+uint16(line)*4]
			b1 := s.VRAM[addr+uint16(line)*4+1]
			b2 := s.VRAM[addr+uint16(line)*4+2]
			b3 := s.VRAM[addr+uint16(line)*4+3]
			for bitPos := 0; bitPos < 8; bitPos++ {
				shift := uint(7 - bitPos)
				idx := (b0>>shift)&1 | ((b1>>shift)&1)<<1 | ((b2>>shift)&1)<<2 | ((b3>>shift)&1)<<3
				pat.Pixels[line][bitPos] = idx
			}
		}
		data.Patterns[i] = pat
	}

	return data
}
