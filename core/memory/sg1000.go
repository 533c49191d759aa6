package memory

import (
	"bytes"
	"fmt"

	"github.com/sms-core/smsemu/core/romloader"
)

// sg1000Mapper implements the SG-1000 cartridge layout: no paging
// whatsoever, ROM directly addressable up to 0xBFFF, and fixed system RAM
// at 0xC000 (mirrored at 0xE000, same as the other two families).
type sg1000Mapper struct {
	data []byte // flattened ROM pages, built once: SG-1000 never banks
	ram  systemRAM
}

func newSG1000Mapper(rom *romloader.ROM) *sg1000Mapper {
	data := make([]byte, 0, rom.PageCount()*0x4000)
	for i := 0; i < rom.PageCount(); i++ {
		data = append(data, rom.Page(i)...)
	}
	return &sg1000Mapper{data: data}
}

func (m *sg1000Mapper) Read(address uint16) uint8 {
	if address < 0xC000 {
		return m.data[int(address)%len(m.data)]
	}
	return m.ram.read(address)
}

func (m *sg1000Mapper) Write(address uint16, value uint8) {
	if address >= 0xC000 {
		m.ram.write(address, value)
	}
	// Sub-0xC000 writes are dropped: SG-1000 carts have no mapper register
	// and no writable space below system RAM.
}

// EncodeState captures system RAM only: SG-1000 has no banking state.
func (m *sg1000Mapper) EncodeState() []byte {
	var buf bytes.Buffer
	writeBytes(&buf, m.ram.data[:])
	return buf.Bytes()
}

func (m *sg1000Mapper) DecodeState(data []byte) error {
	r := bytes.NewReader(data)
	ram, err := readBytes(r)
	if err != nil {
		return fmt.Errorf("memory: sg1000 state: %w", err)
	}
	copy(m.ram.data[:], ram)
	return nil
}

var _ StateCodec = (*sg1000Mapper)(nil)
