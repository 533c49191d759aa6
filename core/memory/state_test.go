package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegaMapper_EncodeDecodeStateRoundTrips(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSega, rom)
	m.Write(0xFFFE, 3) // slot 1 -> page 3
	m.Write(0xC100, 0x42)

	encoded := m.(*segaMapper).EncodeState()

	restored := New(KindSega, rom).(*segaMapper)
	require.NoError(t, restored.DecodeState(encoded))

	assert.Equal(t, m.(*segaMapper).slot1Page, restored.slot1Page)
	assert.Equal(t, uint8(0x42), restored.Read(0xC100))
}

func TestCodemastersMapper_EncodeDecodeStatePreservesCartRAM(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindCodemasters, rom)
	m.Write(0x8000, 0x80) // select cart RAM in slot 2's upper half
	m.Write(0xA000, 0x55)

	encoded := m.(*codemastersMapper).EncodeState()

	restored := New(KindCodemasters, rom).(*codemastersMapper)
	require.NoError(t, restored.DecodeState(encoded))

	assert.Equal(t, uint8(0x55), restored.Read(0xA000))
}

func TestSG1000Mapper_EncodeDecodeStateRoundTripsRAM(t *testing.T) {
	rom := fourPageROM(t)
	m := New(KindSG1000, rom)
	m.Write(0xC000, 0x99)

	encoded := m.(*sg1000Mapper).EncodeState()

	restored := New(KindSG1000, rom).(*sg1000Mapper)
	require.NoError(t, restored.DecodeState(encoded))

	assert.Equal(t, uint8(0x99), restored.Read(0xC000))
}
