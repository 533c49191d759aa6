// Package debug extracts read-only views of VDP state for visualization and
// PNG frame dumps, grounded on the teacher's OAM/VRAM/snapshot debug tools
// but re-targeted at the SMS/GG sprite attribute table and pattern
// generator instead of the Game Boy's OAM and tile data.
package debug

import "github.com/sms-core/smsemu/core/video"

const (
	SpriteTableEntries  = 64
	SpriteTerminatorY   = 0xD0
	MaxSpritesPerLine   = 8
)

// SpriteInfo is one entry of the 64-sprite attribute table, decoded against
// a specific scanline.
type SpriteInfo struct {
	Index     int
	Y         uint8
	X         uint8
	Pattern   uint8
	IsVisible bool
}

// OAMData is a per-scanline snapshot of sprite evaluation state.
type OAMData struct {
	Sprites       []SpriteInfo
	CurrentLine   int
	ActiveSprites int
	SpriteHeight  int
}

// ExtractOAMData decodes the sprite attribute table from s against
// currentLine, applying the same 0xD0 terminator and tall/zoom height rules
// core/video's renderer uses, so the debug view matches what was actually
// drawn.
func ExtractOAMData(s video.Snapshot, currentLine int) *OAMData {
	tall := s.Reg[1]&2 != 0
	height := 8
	if tall {
		height = 16
	}
	zoom := 1
	if s.Reg[0]&1 != 0 {
		zoom = 2
	}

	tableAddr := uint16(s.Reg[5]&0x7E) << 7

	data := &OAMData{
		Sprites:      make([]SpriteInfo, 0, SpriteTableEntries),
		CurrentLine:  currentLine,
		SpriteHeight: height,
	}

	for i := 0; i < SpriteTableEntries; i++ {
		y := s.VRAM[tableAddr+uint16(i)]
		if y == SpriteTerminatorY {
			break
		}
		x := s.VRAM[(tableAddr+0x80+uint16(i)*2)&0x3FFF]
		pattern := s.VRAM[(tableAddr+0x81+uint16(i)*2)&0x3FFF]
		if tall {
			pattern &^= 1
		}

		spriteY := int(y) + 1
		if spriteY > 0xD0 {
			spriteY -= 256
		}
		visible := currentLine >= spriteY && currentLine < spriteY+height*zoom

		info := SpriteInfo{Index: i, Y: y, X: x, Pattern: pattern, IsVisible: visible}
		data.Sprites = append(data.Sprites, info)
		if visible {
			data.ActiveSprites++
		}
	}

	return data
}

// GetVisibleSprites filters Sprites down to the ones IsVisible marks as
// intersecting CurrentLine.
func (data *OAMData) GetVisibleSprites() []SpriteInfo {
	visible := make([]SpriteInfo, 0, data.ActiveSprites)
	for _, s := range data.Sprites {
		if s.IsVisible {
			visible = append(visible, s)
		}
	}
	return visible
}
