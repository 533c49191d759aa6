package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sms-core/smsemu/core/video"
)

func TestExtractVRAMData_DecodesFourBitplanePattern(t *testing.T) {
	var s video.Snapshot
	// pattern 0, line 0: bitplane 0 all-ones -> every pixel's low bit set
	s.VRAM[0] = 0xFF

	data := ExtractVRAMData(s)

	for x := 0; x < 8; x++ {
		assert.Equal(t, uint8(1), data.Patterns[0].Pixels[0][x])
	}
}

func TestExtractVRAMData_NameTableAddressFromRegister2(t *testing.T) {
	var s video.Snapshot
	s.Reg[2] = 0x0E

	data := ExtractVRAMData(s)

	assert.Equal(t, uint16(0x3800), data.NameTableAddr)
}
