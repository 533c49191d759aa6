package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sms-core/smsemu/core/romloader"
)

func fourPageROM(t *testing.T) *romloader.ROM {
	t.Helper()
	raw := make([]byte, 4*0x4000)
	for page := 0; page < 4; page++ {
		for i := range 0x4000 {
			raw[page*0x4000+i] = uint8(page)
		}
	}
	rom, err := romloader.Load("test.sms", raw)
	if err != nil {
		t.Fatal(err)
	}
	return rom
}

func TestSegaMapper_PowerOnState(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSega, rom)

	assert.Equal(t, uint8(0), m.Read(0x0500)) // slot 0 -> page 0
	assert.Equal(t, uint8(1), m.Read(0x4000)) // slot 1 -> page 1
	assert.Equal(t, uint8(2), m.Read(0x8000)) // slot 2 -> page 2
}

func TestSegaMapper_FirstKiBAlwaysPageZero(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSega, rom)

	m.Write(0xFFFD, 3) // remap slot 0 to page 3

	assert.Equal(t, uint8(0), m.Read(0x0000), "first KiB is always ROM page 0")
	assert.Equal(t, uint8(3), m.Read(0x0500), "beyond the first KiB, slot 0 follows the mapping")
}

func TestSegaMapper_RemapSlots(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSega, rom)

	m.Write(0xFFFE, 3)
	assert.Equal(t, uint8(3), m.Read(0x4000))

	m.Write(0xFFFF, 1)
	assert.Equal(t, uint8(1), m.Read(0x8000))
}

func TestSegaMapper_SlotTwoCartRAM(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSega, rom)

	m.Write(0xFFFC, 0x00) // bits 3-2 = 00 -> still ROM
	assert.Equal(t, uint8(2), m.Read(0x8000))

	m.Write(0xFFFC, 0x08) // bits 3-2 = 10 -> cart RAM bank 0
	m.Write(0x9000, 0x42)
	assert.Equal(t, uint8(0x42), m.Read(0x9000))

	m.Write(0xFFFC, 0x0C) // bits 3-2 = 11 -> cart RAM bank 1
	m.Write(0x9000, 0x99)
	assert.Equal(t, uint8(0x99), m.Read(0x9000))

	m.Write(0xFFFC, 0x08) // back to bank 0, which must still hold its value
	assert.Equal(t, uint8(0x42), m.Read(0x9000))

	m.Write(0xFFFC, 0x00) // back to ROM
	assert.Equal(t, uint8(2), m.Read(0x8000))
}

func TestSegaMapper_ControlRegistersAliasRAM(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSega, rom)

	m.Write(0xFFFD, 3)

	assert.Equal(t, uint8(3), m.Read(0xFFFD), "control registers live in the RAM mirror")
}

func TestCodemastersMapper_BankSwitchViaROMWrites(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindCodemasters, rom)

	m.Write(0x0000, 2)
	assert.Equal(t, uint8(2), m.Read(0x0000))

	m.Write(0x4000, 3)
	assert.Equal(t, uint8(3), m.Read(0x4000))
}

func TestCodemastersMapper_UpperHalfRAM(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindCodemasters, rom)

	m.Write(0x8000, 0x80|1) // page 1, upper half is cart RAM

	m.Write(0xA500, 0x99)
	assert.Equal(t, uint8(0x99), m.Read(0xA500))
	assert.Equal(t, uint8(1), m.Read(0x8000), "lower half stays ROM")
}

func TestSG1000Mapper_NoBankingFixedRAM(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSG1000, rom)

	assert.Equal(t, uint8(0), m.Read(0x0000))
	assert.Equal(t, uint8(1), m.Read(0x4000))

	m.Write(0xC100, 0x7E)
	assert.Equal(t, uint8(0x7E), m.Read(0xC100))
	assert.Equal(t, uint8(0x7E), m.Read(0xE100), "system RAM is mirrored")
}

func TestSystemRAM_MirroredAcrossBothWindows(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSega, rom)

	m.Write(0xC000, 0xAB)

	assert.Equal(t, uint8(0xAB), m.Read(0xE000))
}
