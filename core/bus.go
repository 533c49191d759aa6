package core

import (
	"github.com/sms-core/smsemu/core/addr"
	"github.com/sms-core/smsemu/core/audio"
	"github.com/sms-core/smsemu/core/cpu"
	"github.com/sms-core/smsemu/core/input"
	"github.com/sms-core/smsemu/core/memory"
	"github.com/sms-core/smsemu/core/video"
)

// bus dispatches the Z80's I/O address space to the VDP, PSG, and
// controller ports; memory reads/writes pass straight through to the
// active mapper. It satisfies cpu.Memory and cpu.IO; the interrupt lines
// are composed separately by irqSource below.
type bus struct {
	mem   memory.Mapper
	vdp   *video.VDP
	psg   audio.Generator
	input *input.State
}

func (b *bus) Read(address uint16) uint8       { return b.mem.Read(address) }
func (b *bus) Write(address uint16, value byte) { b.mem.Write(address, value) }

func (b *bus) In(port uint8) uint8 {
	switch {
	case addr.IsVDPData(port):
		return b.vdp.ReadData()
	case addr.IsVDPControl(port):
		return b.vdp.ReadControl()
	case addr.IsVCounter(port):
		return b.vdp.ReadV()
	case addr.IsHCounter(port):
		return b.vdp.ReadH()
	case port == addr.PortJoypadA:
		return b.input.PortA()
	case port == addr.PortJoypadB:
		return b.input.PortB()
	default:
		return 0xFF
	}
}

func (b *bus) Out(port uint8, value uint8) {
	switch {
	case addr.IsVDPData(port):
		b.vdp.WriteData(value)
	case addr.IsVDPControl(port):
		b.vdp.WriteControl(value)
	case addr.IsPSGWrite(port):
		b.psg.Write(value)
	}
}

// irqSource composes the VDP's maskable line with the input state's NMI
// line into a single cpu.IRQSource, per spec.md §4.2's pull-model design:
// neither subsystem holds a back-pointer to the CPU.
type irqSource struct {
	vdp   *video.VDP
	input *input.State
}

func (s irqSource) NMIAsserted() bool      { return s.input.NMIAsserted() }
func (s irqSource) AckNMI()                { s.input.AckNMI() }
func (s irqSource) MaskableAsserted() bool { return s.vdp.MaskableAsserted() }
func (s irqSource) Data() uint8            { return s.vdp.Data() }

var (
	_ cpu.Memory    = (*bus)(nil)
	_ cpu.IO        = (*bus)(nil)
	_ cpu.IRQSource = irqSource{}
)
