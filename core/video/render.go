package video

import "github.com/sms-core/smsemu/core/sink"

const spritesPerLine = 8
const cyclesPerLine = 342

// RunLine renders the current scanline (if any is visible), accounts for
// line/frame interrupts, then advances v and the cycle counter. It
// implements spec.md 4.4's run_line in full.
func (v *VDP) RunLine(pixels sink.PixelSink) error {
	active := v.activeLines()

	first, count := v.visibleWindow()
	if v.v >= first && v.v < first+count && v.displayVisible() {
		if err := v.renderLine(pixels); err != nil {
			return err
		}
	}

	if v.v < active+1 {
		v.lineCounter--
		if v.lineCounter == 0xFF {
			v.lineCounter = v.regLineCounter()
			v.linePending = true
			v.status |= statusLineInterrupt
		}
	} else {
		v.lineCounter = v.regLineCounter()
	}

	firstPostActive := map[Resolution]uint16{
		ResolutionLow: 193, ResolutionMedium: 225, ResolutionHigh: 241,
	}[v.Resolution()]
	if v.v == firstPostActive {
		v.status |= statusFrameInterrupt
	}

	v.v = (v.v + 1) % v.totalLines()
	v.cycles += cyclesPerLine

	return nil
}

func (v *VDP) renderLine(pixels sink.PixelSink) error {
	line := v.v
	backdrop := v.resolveColor(16 + uint16(v.backdropColorIndex()))

	// The full 256-pixel line is composed; the Game Gear's window is cut
	// out of it when painting below.
	cols := 256
	row := make([]sink.RGB, cols)
	priority := make([]bool, cols)
	opaque := make([]bool, cols)

	for i := range row {
		row[i] = backdrop
	}

	v.renderBackground(line, row, priority)
	v.renderSprites(line, row, priority, opaque)

	if v.leftColumnBlank() {
		for x := 0; x < 8 && x < cols; x++ {
			row[x] = backdrop
		}
	}

	startCol, colCount := 0, cols
	if v.Kind == KindGG {
		startCol, colCount = 48, 160
	}
	for x := 0; x < colCount; x++ {
		if err := pixels.Paint(x, int(v.visibleLineIndex(line)), row[startCol+x]); err != nil {
			return err
		}
	}
	return nil
}

// visibleLineIndex maps an internal scanline to the pixel sink's row index,
// accounting for the Game Gear's clipped 144-line visible window.
func (v *VDP) visibleLineIndex(line uint16) uint16 {
	first, _ := v.visibleWindow()
	return line - first
}

func (v *VDP) renderBackground(line uint16, row []sink.RGB, priority []bool) {
	yScroll := v.yScroll()
	xScroll := v.xScroll()

	for col := 0; col < 32; col++ {
		effectiveRow := line
		if !(v.vertScrollLock() && col >= 24) {
			effectiveRow = (line + uint16(yScroll)) % 224
		}
		tileRow := effectiveRow / 8
		fineRow := effectiveRow % 8

		entryAddr := v.nameTableAddress() + tileRow*64 + uint16(col)*2
		lo := v.vram[entryAddr&0x3FFF]
		hi := v.vram[(entryAddr+1)&0x3FFF]
		entry := uint16(lo) | uint16(hi)<<8

		tileIndex := entry & 0x01FF
		hFlip := entry&(1<<9) != 0
		vFlip := entry&(1<<10) != 0
		prio := entry&(1<<12) != 0
		paletteSelect := (entry >> 11) & 1

		patternLine := fineRow
		if vFlip {
			patternLine = 7 - fineRow
		}
		patAddr := tileIndex * 32
		indices := v.patternLineToPaletteIndices(patAddr, patternLine)

		for px := 0; px < 8; px++ {
			screenCol := col*8 + px
			if !(v.horizScrollLock() && line < 16) {
				screenCol = (screenCol - int(xScroll) + 256) % 256
			}
			if screenCol >= len(row) {
				continue
			}
			srcPx := px
			if hFlip {
				srcPx = 7 - px
			}
			idx := indices[srcPx]
			if idx == 0 {
				continue
			}
			row[screenCol] = v.resolveColor(uint16(paletteSelect)*16 + uint16(idx))
			priority[screenCol] = prio
		}
	}
}

func (v *VDP) renderSprites(line uint16, row []sink.RGB, priority []bool, opaque []bool) {
	height := 8
	if v.tallSprites() {
		height = 16
	}
	zoom := 1
	if v.zoomSprites() {
		zoom = 2
	}

	type sprite struct {
		x, y    int
		pattern uint16
	}
	var accepted []sprite

	base := v.spriteAttributeTableAddress()
	for i := 0; i < 64; i++ {
		y := v.vram[(base+uint16(i))&0x3FFF]
		if y == 0xD0 {
			break
		}
		spriteY := int(y) + 1
		if spriteY > 0xD0 {
			spriteY -= 256
		}
		if int(line) < spriteY || int(line) >= spriteY+height*zoom {
			continue
		}
		if len(accepted) == spritesPerLine {
			v.status |= statusSpriteOverflow
			continue
		}
		x := int(v.vram[(base+128+uint16(2*i))&0x3FFF])
		if v.shiftSprites() {
			x -= 8
		}
		patIndex := v.vram[(base+128+uint16(2*i)+1)&0x3FFF]
		if v.tallSprites() {
			patIndex &^= 1
		}
		accepted = append(accepted, sprite{x: x, y: spriteY, pattern: uint16(patIndex) * 32})
	}

	for _, s := range accepted {
		spriteLine := (int(line) - s.y) / zoom
		indices := v.patternLineToPaletteIndices(v.spritePatternTableAddress()+s.pattern, uint16(spriteLine))
		for px := 0; px < 8*zoom; px++ {
			screenCol := s.x + px
			if screenCol < 0 || screenCol >= len(row) {
				continue
			}
			idx := indices[px/zoom]
			if idx == 0 {
				continue
			}
			if opaque[screenCol] {
				v.status |= statusSpriteCollision
				continue
			}
			opaque[screenCol] = true
			if priority[screenCol] {
				continue // background tile marked high-priority wins
			}
			row[screenCol] = v.resolveColor(16 + uint16(idx))
		}
	}
}

// patternLineToPaletteIndices unpacks the four VRAM bitplanes for one row
// of an 8x8 pattern into eight 4-bit palette indices, per spec.md 4.4.
func (v *VDP) patternLineToPaletteIndices(address uint16, line uint16) [8]uint8 {
	base := (address + 4*line) & 0x3FFF
	b0 := v.vram[base]
	b1 := v.vram[(base+1)&0x3FFF]
	b2 := v.vram[(base+2)&0x3FFF]
	b3 := v.vram[(base+3)&0x3FFF]

	var out [8]uint8
	for i := 0; i < 8; i++ {
		shift := uint(7 - i)
		out[i] = (b0>>shift&1)<<0 | (b1>>shift&1)<<1 | (b2>>shift&1)<<2 | (b3>>shift&1)<<3
	}
	return out
}

func (v *VDP) resolveColor(cramIndex uint16) sink.RGB {
	return Color(v.Kind, v.cram[cramIndex%32])
}
