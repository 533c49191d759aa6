package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sms-core/smsemu/core/sink"
)

type captureSink struct {
	w, h   int
	pixels map[[2]int]sink.RGB
}

func newCaptureSink() *captureSink { return &captureSink{pixels: map[[2]int]sink.RGB{}} }

func (c *captureSink) SetResolution(w, h int) error { c.w, c.h = w, h; return nil }
func (c *captureSink) Paint(x, y int, col sink.RGB) error {
	c.pixels[[2]int{x, y}] = col
	return nil
}
func (c *captureSink) Present() error { return nil }

func writeControlPair(v *VDP, lo, hi uint8) {
	v.WriteControl(lo)
	v.WriteControl(hi)
}

func setAddressForVRAMWrite(v *VDP, addr uint16) {
	writeControlPair(v, uint8(addr), uint8(addr>>8)|0x40) // code=1: VRAM write
}

func setRegister(v *VDP, index uint8, value uint8) {
	writeControlPair(v, value, 0x80|index)
}

func TestColor_SMSPacksTwoBitsPerChannel(t *testing.T) {
	c := Color(KindSMS, 0b00_11_10_01) // B=11 G=10 R=01
	// layout: bits0-1=R, bits2-3=G, bits4-5=B
	assert.Equal(t, sink.RGB{R: 1 * 85, G: 2 * 85, B: 3 * 85}, c)
}

func TestColor_GGPacksFourBitsPerChannel(t *testing.T) {
	c := Color(KindGG, 0x0F0)
	assert.Equal(t, sink.RGB{R: 0, G: 0xF * 17, B: 0}, c)
}

func TestWriteControl_RegisterWrite(t *testing.T) {
	v := New(KindSMS, NTSC)
	setRegister(v, 7, 0x05) // backdrop color index

	assert.Equal(t, uint8(0x05), v.register(7))
}

func TestWriteControl_RegisterIndexAboveTenDropped(t *testing.T) {
	v := New(KindSMS, NTSC)
	setRegister(v, 11, 0xFF)

	for i := 0; i < 11; i++ {
		assert.Equal(t, uint8(0), v.register(i))
	}
}

func TestDataPort_VRAMReadIsBuffered(t *testing.T) {
	v := New(KindSMS, NTSC)
	setAddressForVRAMWrite(v, 0x1000)
	v.WriteData(0xAB)

	writeControlPair(v, 0x00, 0x10) // code=0, address=0x1000: VRAM read, primes buffer

	first := v.ReadData()
	assert.Equal(t, uint8(0xAB), first, "first read returns the primed buffer, not a fresh fetch")
}

func TestWriteData_CRAM_SMS(t *testing.T) {
	v := New(KindSMS, NTSC)
	writeControlPair(v, 0x00, 0xC0) // code=3, address=0: CRAM write
	v.WriteData(0x2A)

	assert.Equal(t, uint16(0x2A), v.cram[0])
}

func TestWriteData_CRAM_GGTwoByteLatch(t *testing.T) {
	v := New(KindGG, NTSC)
	writeControlPair(v, 0x00, 0xC0) // code=3, address=0
	v.WriteData(0x34)               // low byte latched
	v.WriteData(0x01)               // high byte commits

	assert.Equal(t, uint16(0x0134), v.cram[0])
}

func TestReadControl_ClearsStatusAndLatches(t *testing.T) {
	v := New(KindSMS, NTSC)
	v.status = statusFrameInterrupt
	v.linePending = true
	v.controlFlag = true

	got := v.ReadControl()

	assert.Equal(t, uint8(statusFrameInterrupt), got)
	assert.Equal(t, uint8(0), v.status)
	assert.False(t, v.linePending)
	assert.False(t, v.controlFlag)
}

func TestRunLine_FrameInterruptAtFirstPostActiveLine(t *testing.T) {
	v := New(KindSMS, NTSC)
	v.v = 193 // first post-active line for Low resolution
	s := newCaptureSink()

	assert.NoError(t, v.RunLine(s))

	assert.True(t, v.status&statusFrameInterrupt != 0)
}

func TestRunLine_LineInterruptReloadsCounterOnUnderflow(t *testing.T) {
	v := New(KindSMS, NTSC)
	v.reg[10] = 3
	v.lineCounter = 0
	s := newCaptureSink()

	assert.NoError(t, v.RunLine(s))

	assert.True(t, v.linePending)
	assert.Equal(t, uint8(3), v.lineCounter)
}

func TestRunLine_CyclesAdvanceBy342(t *testing.T) {
	v := New(KindSMS, NTSC)
	s := newCaptureSink()

	assert.NoError(t, v.RunLine(s))

	assert.Equal(t, uint64(342), v.cycles)
}

func TestRunLine_VWrapsAtTotalLines(t *testing.T) {
	v := New(KindSMS, NTSC)
	v.v = 261 // NTSC total_lines - 1
	s := newCaptureSink()

	assert.NoError(t, v.RunLine(s))

	assert.Equal(t, uint16(0), v.v)
}

func TestMaskableAsserted_RequiresBothPendingAndEnabled(t *testing.T) {
	v := New(KindSMS, NTSC)
	v.status = statusFrameInterrupt
	assert.False(t, v.MaskableAsserted(), "frame IRQ not yet enabled in register 1")

	v.reg[1] = 1 << 5
	assert.True(t, v.MaskableAsserted())
}

func TestRenderBackground_SolidTileProducesPaletteColor(t *testing.T) {
	v := New(KindSMS, NTSC)
	v.reg[1] = 1 << 6 // display visible
	v.reg[2] = 0x0E   // name table at 0x3800, clear of tile 0's pattern bytes
	v.reg[5] = 0x7E   // sprite attribute table at 0x3F00

	// CRAM entry 1 (palette 0, index 1) -> some distinct color.
	writeControlPair(v, 0x01, 0xC0)
	v.WriteData(0x3F)

	// Name table entry 0 at name_table_address points at tile 0, no flips.
	setAddressForVRAMWrite(v, v.nameTableAddress())
	v.WriteData(0x00)
	v.WriteData(0x00)

	// Tile 0's first row: all bitplane-0 bits set -> palette index 1.
	setAddressForVRAMWrite(v, 0)
	v.WriteData(0xFF)
	v.WriteData(0x00)
	v.WriteData(0x00)
	v.WriteData(0x00)

	s := newCaptureSink()
	assert.NoError(t, v.RunLine(s))

	expected := Color(KindSMS, 0x3F)
	assert.Equal(t, expected, s.pixels[[2]int{0, 0}])
}
