package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeMemory struct {
	data [0x10000]uint8
}

func (m *fakeMemory) Read(address uint16) uint8        { return m.data[address] }
func (m *fakeMemory) Write(address uint16, value uint8) { m.data[address] = value }

func load(bytes ...uint8) *fakeMemory {
	m := &fakeMemory{}
	copy(m.data[:], bytes)
	return m
}

func TestAtAddress_DecodesPlainOpcodes(t *testing.T) {
	cases := []struct {
		name   string
		bytes  []uint8
		want   string
		length int
	}{
		{"nop", []uint8{0x00}, "NOP", 1},
		{"ld b,c", []uint8{0x41}, "LD B,C", 1},
		{"halt", []uint8{0x76}, "HALT", 1},
		{"ld a,n", []uint8{0x3E, 0x42}, "LD A,$42", 2},
		{"ld bc,nn", []uint8{0x01, 0x34, 0x12}, "LD BC,$1234", 3},
		{"add a,b", []uint8{0x80}, "ADD A,B", 1},
		{"cp n", []uint8{0xFE, 0x10}, "CP $10", 2},
		{"jp nn", []uint8{0xC3, 0x00, 0x80}, "JP $8000", 3},
		{"call nn", []uint8{0xCD, 0xAD, 0xDE}, "CALL $DEAD", 3},
		{"ret", []uint8{0xC9}, "RET", 1},
		{"push bc", []uint8{0xC5}, "PUSH BC", 1},
		{"di", []uint8{0xF3}, "DI", 1},
		{"rst 38", []uint8{0xFF}, "RST $38", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := AtAddress(load(tc.bytes...), 0)
			assert.Equal(t, tc.want, line.Text)
			assert.Equal(t, tc.length, line.Length)
		})
	}
}

func TestAtAddress_DecodesCBPrefixedBitOps(t *testing.T) {
	line := AtAddress(load(0xCB, 0x47), 0) // BIT 0,A
	assert.Equal(t, "BIT 0,A", line.Text)
	assert.Equal(t, 2, line.Length)

	line = AtAddress(load(0xCB, 0x00), 0) // RLC B
	assert.Equal(t, "RLC B", line.Text)
}

func TestAtAddress_DecodesIndexedWithDisplacement(t *testing.T) {
	line := AtAddress(load(0xDD, 0x7E, 0x05), 0) // LD A,(IX+5)
	assert.Equal(t, "LD A,(IX+5)", line.Text)
	assert.Equal(t, 3, line.Length)
}

func TestAtAddress_DecodesDDCBBitOpWithDisplacement(t *testing.T) {
	line := AtAddress(load(0xDD, 0xCB, 0x05, 0x46), 0) // BIT 0,(IX+5)
	assert.Equal(t, "BIT 0,(IX+5)", line.Text)
	assert.Equal(t, 4, line.Length)
}

func TestAtAddress_DecodesEDBlockAndExtendedOps(t *testing.T) {
	assert.Equal(t, "LDIR", AtAddress(load(0xED, 0xB0), 0).Text)
	assert.Equal(t, "NEG", AtAddress(load(0xED, 0x44), 0).Text)
	assert.Equal(t, "IM 1", AtAddress(load(0xED, 0x56), 0).Text)
}

func TestAtAddress_UnknownOpcodeFallsBackToRawByte(t *testing.T) {
	line := AtAddress(load(0xED, 0x00), 0)
	assert.Equal(t, "DB $ED,$00", line.Text)
}

func TestRange_AdvancesByEachInstructionsLength(t *testing.T) {
	mem := load(0x00, 0x3E, 0x42, 0xC3, 0x00, 0x80)
	lines := Range(mem, 0, 3)

	assert.Equal(t, uint16(0), lines[0].Address)
	assert.Equal(t, uint16(1), lines[1].Address)
	assert.Equal(t, uint16(3), lines[2].Address)
}
