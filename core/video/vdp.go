// Package video implements the SMS/Game Gear VDP: register file, VRAM/CRAM,
// the two-byte control-port protocol, scanline rendering, and the
// frame/line interrupt lines the Z80 pulls from.
package video

import "github.com/sms-core/smsemu/core/sink"

// Kind selects which physical VDP is being emulated; it changes resolution
// rules, CRAM width, and the visible window clipped out of the active area.
type Kind uint8

const (
	KindSMS Kind = iota
	KindSMS2
	KindGG
)

// TVSystem selects the line/frame timing the VDP free-runs at.
type TVSystem uint8

const (
	NTSC TVSystem = iota
	PAL
)

// Resolution is the number of active (rendered) scanlines, selected by the
// mode-select bits in registers 0/1.
type Resolution uint16

const (
	ResolutionLow    Resolution = 192
	ResolutionMedium Resolution = 224
	ResolutionHigh   Resolution = 240
)

const (
	statusFrameInterrupt  = 1 << 7
	statusSpriteOverflow  = 1 << 6
	statusSpriteCollision = 1 << 5
	statusLineInterrupt   = 1 << 4
	// bits 3-0 are unused on real hardware and always read 0.
)

// VDP holds the full rendering-relevant hardware state: VRAM, CRAM,
// registers, counters, and the port-protocol latches.
type VDP struct {
	Kind     Kind
	TVSystem TVSystem

	vram [0x4000]uint8
	cram [32]uint16 // low byte is the SMS 6-bit color; GG uses the full 12 bits
	reg  [11]uint8

	codeAddress uint16 // bits 15-14: code, bits 13-0: address
	buffer      uint8
	controlFlag bool
	cramLatch   uint8
	cramLatched bool

	status       uint8
	lineCounter  uint8
	linePending  bool
	lineIRQArmed bool // not read or written; linePending carries the line interrupt

	v      uint16
	h      uint16
	cycles uint64

	inbox sink.Inbox
}

// New constructs a VDP at power-on state (all registers zero, v at line 0,
// status clear).
func New(kind Kind, tv TVSystem) *VDP {
	return &VDP{
		Kind:     kind,
		TVSystem: tv,
		inbox:    sink.NullInbox{},
		v:        0,
	}
}

// SetInbox attaches a trace sink; pass sink.NullInbox{} (the default) to
// disable tracing.
func (v *VDP) SetInbox(inbox sink.Inbox) { v.inbox = inbox }

func (v *VDP) code() uint8      { return uint8(v.codeAddress >> 14) }
func (v *VDP) address() uint16  { return v.codeAddress & 0x3FFF }
func (v *VDP) incAddress()      { v.codeAddress = (v.codeAddress&0xC000 | (v.address()+1)&0x3FFF) }
func (v *VDP) register(i int) uint8 { return v.reg[i] }

func (v *VDP) m1() bool { return v.reg[1]&(1<<4) != 0 }
func (v *VDP) m2() bool { return v.reg[0]&(1<<1) != 0 }
func (v *VDP) m3() bool { return v.reg[1]&(1<<3) != 0 }
func (v *VDP) m4() bool { return v.reg[0]&(1<<2) != 0 }

func (v *VDP) vertScrollLock() bool  { return v.reg[0]&(1<<7) != 0 }
func (v *VDP) horizScrollLock() bool { return v.reg[0]&(1<<6) != 0 }
func (v *VDP) leftColumnBlank() bool { return v.reg[0]&(1<<5) != 0 }
func (v *VDP) lineIRQEnabled() bool  { return v.reg[0]&(1<<4) != 0 }
func (v *VDP) shiftSprites() bool    { return v.reg[0]&(1<<3) != 0 }
func (v *VDP) zoomSprites() bool     { return v.reg[0]&1 != 0 }

func (v *VDP) displayVisible() bool  { return v.reg[1]&(1<<6) != 0 }
func (v *VDP) frameIRQEnabled() bool { return v.reg[1]&(1<<5) != 0 }
func (v *VDP) tallSprites() bool     { return v.reg[1]&2 != 0 }

// Resolution derives the active-line count from the mode-select bits, per
// spec.md 3's table (SMS is always Low; SMS2/GG select amongst the three).
func (v *VDP) Resolution() Resolution {
	switch {
	case v.Kind == KindSMS:
		return ResolutionLow
	case v.m4() && !v.m3() && v.m2() && v.m1():
		return ResolutionMedium
	case v.m4() && v.m3() && v.m2() && !v.m1():
		return ResolutionHigh
	default:
		return ResolutionLow
	}
}

func (v *VDP) totalLines() uint16 {
	if v.TVSystem == NTSC {
		return 262
	}
	return 313
}

func (v *VDP) activeLines() uint16 {
	if v.Kind == KindSMS {
		return 192
	}
	return uint16(v.Resolution())
}

// visibleWindow returns the first visible line and one-past-the-last, for
// the Game Gear's 144-line clip of the active area (spec.md 3's "Visible
// lines" derivation). SMS/SMS2 show every active line.
func (v *VDP) visibleWindow() (first, count uint16) {
	active := v.activeLines()
	if v.Kind != KindGG {
		return 0, active
	}
	return (active - 144) / 2, 144
}

func (v *VDP) visibleColumns() int {
	if v.Kind == KindGG {
		return 160
	}
	return 256
}

func (v *VDP) nameTableAddress() uint16 {
	base := uint16(v.reg[2]&0x0E) << 10
	if v.Resolution() == ResolutionLow {
		return base
	}
	return base | (1 << 11)
}

func (v *VDP) spriteAttributeTableAddress() uint16 {
	return uint16(v.reg[5]&0x7E) << 7
}

func (v *VDP) spritePatternTableAddress() uint16 {
	return uint16(v.reg[6]&0x04) << 11
}

func (v *VDP) backdropColorIndex() uint8 { return v.reg[7] & 0x0F }
func (v *VDP) xScroll() uint8            { return v.reg[8] }
func (v *VDP) yScroll() uint8            { return v.reg[9] }
func (v *VDP) regLineCounter() uint8     { return v.reg[10] }

// MaskableAsserted implements cpu.IRQSource: a maskable IRQ is asserted
// whenever the frame or line interrupt is both pending and enabled.
func (v *VDP) MaskableAsserted() bool {
	frame := v.status&statusFrameInterrupt != 0 && v.frameIRQEnabled()
	line := v.linePending && v.lineIRQEnabled()
	return frame || line
}

// Data implements cpu.IRQSource; the SMS/GG VDP always drives 0xFF onto the
// bus during an acknowledge cycle (games run in IM1, where this is unused).
func (v *VDP) Data() uint8 { return 0xFF }

// Cycles reports the VDP's own cycle counter, used by the frame scheduler
// to maintain the 3:2 VDP:Z80 ratio.
func (v *VDP) Cycles() uint64 { return v.cycles }

// VisibleDimensions returns the width and height of the frame a PixelSink
// should be sized for: the GG's 160x144 clipped window, or the full active
// area on SMS/SMS2.
func (v *VDP) VisibleDimensions() (width, height int) {
	_, count := v.visibleWindow()
	return v.visibleColumns(), int(count)
}

// V reports the current scanline (0..totalLines-1).
func (v *VDP) V() uint16 { return v.v }

// ReadV returns the 8-bit v-counter the CPU sees via the read_v port,
// implementing the piecewise readback quirk from spec.md 4.4: the true
// 9-bit v wraps at specific thresholds depending on tv_system/resolution.
func (v *VDP) ReadV() uint8 {
	var result uint16
	switch {
	case v.TVSystem == NTSC && v.Resolution() == ResolutionLow:
		if v.v <= 0xDA {
			result = v.v
		} else {
			result = v.v - 6
		}
	case v.TVSystem == NTSC && v.Resolution() == ResolutionMedium:
		if v.v <= 0xEA {
			result = v.v
		} else {
			result = v.v - 6
		}
	case v.TVSystem == NTSC && v.Resolution() == ResolutionHigh:
		if v.v <= 0xFF {
			result = v.v
		} else {
			result = v.v - 0x100
		}
	case v.TVSystem == PAL && v.Resolution() == ResolutionLow:
		if v.v <= 0xF2 {
			result = v.v
		} else {
			result = v.v - 57
		}
	case v.TVSystem == PAL && v.Resolution() == ResolutionMedium:
		switch {
		case v.v <= 0xFF:
			result = v.v
		case v.v <= 0x102:
			result = v.v - 0x100
		default:
			result = v.v - 57
		}
	default: // PAL, High
		switch {
		case v.v <= 0xFF:
			result = v.v
		case v.v <= 0x10A:
			result = v.v - 0x100
		default:
			result = v.v - 57
		}
	}
	return uint8(result)
}

// ReadH returns the 8-bit h-counter, the top 8 bits of the 9-bit internal
// horizontal counter.
func (v *VDP) ReadH() uint8 { return uint8(v.h >> 1) }

// ReadData implements the data-port read protocol: return the buffer, then
// refill it from the new address, then advance.
func (v *VDP) ReadData() uint8 {
	current := v.buffer
	v.buffer = v.vram[v.address()]
	v.incAddress()
	v.controlFlag = false
	return current
}

// ReadControl returns the status byte and clears it, the control-port
// latch, and the line-interrupt-pending flag, per spec.md 3's invariants.
func (v *VDP) ReadControl() uint8 {
	status := v.status
	v.status = 0
	v.controlFlag = false
	v.linePending = false
	return status
}

// WriteData implements the data-port write protocol: CRAM when code==3
// (with the Game Gear's two-byte latch), else VRAM.
func (v *VDP) WriteData(value uint8) {
	if v.code() == 3 {
		v.writeCRAM(value)
	} else {
		v.vram[v.address()] = value
	}
	v.incAddress()
	v.controlFlag = false
}

func (v *VDP) writeCRAM(value uint8) {
	addr := v.address()
	if v.Kind != KindGG {
		v.cram[addr%32] = uint16(value)
		return
	}
	if addr&1 == 0 {
		v.cramLatch = value
		v.cramLatched = true
		return
	}
	if v.cramLatched {
		v.cram[(addr>>1)%32] = uint16(v.cramLatch) | uint16(value)<<8
		v.cramLatched = false
	}
}

// WriteControl implements the two-byte control-port protocol: the first
// byte latches the low 8 bits of code/address, the second sets the high
// bits and, depending on the resulting code, either prefetches VRAM or
// writes a register.
func (v *VDP) WriteControl(value uint8) {
	if v.controlFlag {
		v.codeAddress = v.codeAddress&0x00FF | uint16(value)<<8
		v.controlFlag = false
		switch v.code() {
		case 0:
			v.buffer = v.vram[v.address()]
			v.incAddress()
		case 2:
			index := value & 0x0F
			if index <= 10 {
				v.reg[index] = uint8(v.codeAddress)
			}
		}
		return
	}
	v.codeAddress = v.codeAddress&0xFF00 | uint16(value)
	v.controlFlag = true
}
