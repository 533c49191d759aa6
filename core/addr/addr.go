// Package addr names the Z80 I/O port addresses the SMS/GG hardware wires
// up, so port dispatch in the bus reads like the port map instead of a
// column of magic bytes.
package addr

// VDP and PSG ports. The Z80 only decodes the low 8 bits of the port
// address; even/odd pairs below select the data vs. control half of each
// device.
const (
	PortVCounter   = 0x7E // read: VDP V counter (mirrored on even ports 0x40-0x7F)
	PortHCounter   = 0x7F // read: VDP H counter: write: PSG register/data
	PortVDPData    = 0xBE // read/write: VDP data port
	PortVDPControl = 0xBF // read: VDP status: write: VDP control port
)

// Joypad and I/O control ports.
const (
	PortIOControl = 0x3E // memory control register
	PortIOPorts   = 0x3F // I/O port control register
	PortJoypadA   = 0xDC // controller 1 + controller 2 up/down
	PortJoypadB   = 0xDD // controller 2 left/right/A/B, Reset
)

// IsVDPData reports whether port is one of the VDP's data-port mirrors:
// every even port in 0x80-0xBF. The other predicates decode their whole
// mirror range the same way, by bits 7, 6 and 0 of the port (odd ports
// 0x80-0xBF for control/status, even and odd ports 0x40-0x7F for the V and
// H counters).
func IsVDPData(port uint8) bool    { return port&0xC1 == 0x80 }
func IsVDPControl(port uint8) bool { return port&0xC1 == 0x81 }
func IsVCounter(port uint8) bool   { return port&0xC1 == 0x40 }
func IsHCounter(port uint8) bool   { return port&0xC1 == 0x41 }

// IsPSGWrite reports whether port is one of the PSG's write mirrors: the
// same 0x40-0x7F odd range IsHCounter decodes for reads. Same address,
// different chip, depending on direction - true to the real port map.
func IsPSGWrite(port uint8) bool { return port&0xC1 == 0x41 }
