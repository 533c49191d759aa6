package addr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsVDPData_MatchesCanonicalAndMirrors(t *testing.T) {
	assert.True(t, IsVDPData(PortVDPData))
	assert.True(t, IsVDPData(0x80))
	assert.False(t, IsVDPData(0x81))
}

func TestIsVDPControl_MatchesCanonicalAndMirrors(t *testing.T) {
	assert.True(t, IsVDPControl(PortVDPControl))
	assert.True(t, IsVDPControl(0x81))
}

func TestIsHCounterAndPSGWrite_ShareTheSameAddressRange(t *testing.T) {
	assert.True(t, IsHCounter(PortHCounter))
	assert.True(t, IsPSGWrite(PortHCounter))
}

func TestIsVCounter_MatchesEvenMirrorOnly(t *testing.T) {
	assert.True(t, IsVCounter(PortVCounter))
	assert.False(t, IsVCounter(PortHCounter))
}
