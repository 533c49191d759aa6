package memory

import (
	"bytes"
	"fmt"

	"github.com/sms-core/smsemu/core/romloader"
)

// codemastersMapper implements the Codemasters mapper: three 16 KiB ROM
// slots whose bank registers are writes to specific addresses inside the
// ROM region itself (0x0000, 0x4000, 0x8000), rather than the Sega mapper's
// dedicated registers in the RAM mirror. Slot 2's upper 8 KiB can be an
// on-demand cartridge-RAM page instead of ROM.
type codemastersMapper struct {
	rom *romloader.ROM
	ram systemRAM

	slot0Page int
	slot1Page int
	slot2Page int

	slot2UpperIsRAM bool
	cartRAM         []uint8
}

func newCodemastersMapper(rom *romloader.ROM) *codemastersMapper {
	return &codemastersMapper{
		rom:       rom,
		slot0Page: 0,
		slot1Page: 1 % rom.PageCount(),
		slot2Page: 2 % rom.PageCount(),
	}
}

func (m *codemastersMapper) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.rom.Page(m.slot0Page)[address]
	case address < 0x8000:
		return m.rom.Page(m.slot1Page)[address-0x4000]
	case address < 0xA000:
		return m.rom.Page(m.slot2Page)[address-0x8000]
	case address < 0xC000:
		if m.slot2UpperIsRAM {
			return m.cartRAM[address-0xA000]
		}
		return m.rom.Page(m.slot2Page)[address-0x8000]
	default:
		return m.ram.read(address)
	}
}

func (m *codemastersMapper) Write(address uint16, value uint8) {
	m.registerHook(address, value)

	switch {
	case address >= 0xA000 && address < 0xC000 && m.slot2UpperIsRAM:
		m.cartRAM[address-0xA000] = value
	case address >= 0xC000:
		m.ram.write(address, value)
	}
}

func (m *codemastersMapper) registerHook(address uint16, value uint8) {
	switch address {
	case 0x0000:
		m.slot0Page = int(value) % m.rom.PageCount()
	case 0x4000:
		m.slot1Page = int(value) % m.rom.PageCount()
	case 0x8000:
		m.slot2Page = int(value&0x7F) % m.rom.PageCount()
		m.slot2UpperIsRAM = value&0x80 != 0
		if m.slot2UpperIsRAM && m.cartRAM == nil {
			m.cartRAM = make([]uint8, 0x2000)
		}
	}
}

func (m *codemastersMapper) EncodeState() []byte {
	var buf bytes.Buffer
	writeInt32(&buf, m.slot0Page)
	writeInt32(&buf, m.slot1Page)
	writeInt32(&buf, m.slot2Page)
	writeBool(&buf, m.slot2UpperIsRAM)
	writeBytes(&buf, m.ram.data[:])
	writeBytes(&buf, m.cartRAM)
	return buf.Bytes()
}

func (m *codemastersMapper) DecodeState(data []byte) error {
	r := bytes.NewReader(data)
	var err error
	if m.slot0Page, err = readInt32(r); err != nil {
		return fmt.Errorf("memory: codemasters state: %w", err)
	}
	if m.slot1Page, err = readInt32(r); err != nil {
		return fmt.Errorf("memory: codemasters state: %w", err)
	}
	if m.slot2Page, err = readInt32(r); err != nil {
		return fmt.Errorf("memory: codemasters state: %w", err)
	}
	if m.slot2UpperIsRAM, err = readBool(r); err != nil {
		return fmt.Errorf("memory: codemasters state: %w", err)
	}
	ram, err := readBytes(r)
	if err != nil {
		return fmt.Errorf("memory: codemasters state: %w", err)
	}
	copy(m.ram.data[:], ram)
	if m.cartRAM, err = readBytes(r); err != nil {
		return fmt.Errorf("memory: codemasters state: %w", err)
	}
	return nil
}

var _ StateCodec = (*codemastersMapper)(nil)
