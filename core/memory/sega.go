package memory

import (
	"bytes"
	"fmt"

	"github.com/sms-core/smsemu/core/romloader"
)

// segaMapper implements the standard Sega cartridge mapper: three 16 KiB
// ROM slots at 0x0000/0x4000/0x8000, 8 KiB system RAM at 0xC000 (mirrored
// at 0xE000), and up to two 16 KiB cartridge-RAM pages bankable into slot 2
// via the control registers at 0xFFFC-0xFFFF.
type segaMapper struct {
	rom *romloader.ROM
	ram systemRAM

	slot0Page int
	slot1Page int
	slot2Page int

	slot2IsCartRAM bool
	slot2CartBank  int // 0 or 1
	cartRAM        [2][]uint8
}

func newSegaMapper(rom *romloader.ROM) *segaMapper {
	m := &segaMapper{rom: rom}
	// Power-on state: slots 0,1,2 map ROM pages 0,1,2 (clamped to what the
	// image actually has, via romloader.ROM.Page's modulo wrap).
	m.slot0Page = 0
	m.slot1Page = 1 % rom.PageCount()
	m.slot2Page = 2 % rom.PageCount()
	return m
}

func (m *segaMapper) Read(address uint16) uint8 {
	switch {
	case address < 0x0400:
		return m.rom.Page(0)[address]
	case address < 0x4000:
		return m.rom.Page(m.slot0Page)[address]
	case address < 0x8000:
		return m.rom.Page(m.slot1Page)[address-0x4000]
	case address < 0xC000:
		if m.slot2IsCartRAM {
			return m.cartRAMPage()[address-0x8000]
		}
		return m.rom.Page(m.slot2Page)[address-0x8000]
	default:
		return m.ram.read(address)
	}
}

func (m *segaMapper) Write(address uint16, value uint8) {
	m.registerHook(address, value)

	switch {
	case address < 0xC000:
		if address >= 0x8000 && m.slot2IsCartRAM {
			m.cartRAMPage()[address-0x8000] = value
		}
		// ROM slots (0x0000-0x7FFF, and slot 2 when it's still ROM) drop
		// the write: those physical pages are not writable.
	default:
		m.ram.write(address, value)
	}
}

// registerHook implements spec.md 4.3's Sega control-register writes. The
// control registers alias the RAM mirror, so Write still falls through to a
// normal RAM write afterward for these addresses.
func (m *segaMapper) registerHook(address uint16, value uint8) {
	switch address {
	case 0xFFFC:
		bits := value & 0x0C
		switch bits {
		case 0x08:
			m.slot2IsCartRAM = true
			m.slot2CartBank = 0
		case 0x0C:
			m.slot2IsCartRAM = true
			m.slot2CartBank = 1
		default:
			m.slot2IsCartRAM = false
		}
		m.allocateCartRAM(m.slot2CartBank)
		// Bit 4 (cartridge RAM visible in slot 3 as well) is a legacy
		// feature with no known game dependency; left unimplemented per
		// spec.md 4.3.
	case 0xFFFD:
		m.slot0Page = int(value) % m.rom.PageCount()
	case 0xFFFE:
		m.slot1Page = int(value) % m.rom.PageCount()
	case 0xFFFF:
		page := int(value) % m.rom.PageCount()
		if m.slot2IsCartRAM {
			// The written page index is latched, but the active mapping
			// stays on cartridge RAM until 0xFFFC switches it back.
			m.slot2Page = page
		} else {
			m.slot2Page = page
		}
	}
}

func (m *segaMapper) allocateCartRAM(bank int) {
	if m.cartRAM[bank] == nil {
		m.cartRAM[bank] = make([]uint8, 0x4000)
	}
}

func (m *segaMapper) cartRAMPage() []uint8 {
	m.allocateCartRAM(m.slot2CartBank)
	return m.cartRAM[m.slot2CartBank]
}

// EncodeState captures the slot mapping, cartridge-RAM banks, and system
// RAM, per SPEC_FULL.md 10's save-state layout.
func (m *segaMapper) EncodeState() []byte {
	var buf bytes.Buffer
	writeInt32(&buf, m.slot0Page)
	writeInt32(&buf, m.slot1Page)
	writeInt32(&buf, m.slot2Page)
	writeBool(&buf, m.slot2IsCartRAM)
	writeInt32(&buf, m.slot2CartBank)
	writeBytes(&buf, m.ram.data[:])
	writeBytes(&buf, m.cartRAM[0])
	writeBytes(&buf, m.cartRAM[1])
	return buf.Bytes()
}

func (m *segaMapper) DecodeState(data []byte) error {
	r := bytes.NewReader(data)
	var err error
	if m.slot0Page, err = readInt32(r); err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	if m.slot1Page, err = readInt32(r); err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	if m.slot2Page, err = readInt32(r); err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	if m.slot2IsCartRAM, err = readBool(r); err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	if m.slot2CartBank, err = readInt32(r); err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	ram, err := readBytes(r)
	if err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	copy(m.ram.data[:], ram)
	if m.cartRAM[0], err = readBytes(r); err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	if m.cartRAM[1], err = readBytes(r); err != nil {
		return fmt.Errorf("memory: sega state: %w", err)
	}
	return nil
}

var _ StateCodec = (*segaMapper)(nil)
