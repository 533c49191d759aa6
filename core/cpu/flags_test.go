package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdd8_SignedOverflow(t *testing.T) {
	// A=0x7F, x=1, CF=0 -> add a,x: A=0x80, S=1, Z=0, H=1, PV=1, N=0, C=0.
	c, _, _, _ := newTestCPU()

	result := c.add8(0x7F, 1, false)

	assert.Equal(t, uint8(0x80), result)
	assert.True(t, c.isSet(flagS))
	assert.False(t, c.isSet(flagZ))
	assert.True(t, c.isSet(flagH))
	assert.True(t, c.isSet(flagPV))
	assert.False(t, c.isSet(flagN))
	assert.False(t, c.isSet(flagC))
}

func TestAdd8_Carry(t *testing.T) {
	c, _, _, _ := newTestCPU()

	result := c.add8(0xFF, 0x01, false)

	assert.Equal(t, uint8(0x00), result)
	assert.True(t, c.isSet(flagZ))
	assert.True(t, c.isSet(flagC))
	assert.True(t, c.isSet(flagH))
	assert.False(t, c.isSet(flagPV))
}

func TestSub8_Borrow(t *testing.T) {
	c, _, _, _ := newTestCPU()

	result := c.sub8(0x00, 0x01, false)

	assert.Equal(t, uint8(0xFF), result)
	assert.True(t, c.isSet(flagC))
	assert.True(t, c.isSet(flagH))
	assert.True(t, c.isSet(flagN))
	assert.True(t, c.isSet(flagS))
}

func TestInc8_DoesNotTouchCarry(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.setFlag(flagC)

	result := c.inc8(0x7F)

	assert.Equal(t, uint8(0x80), result)
	assert.True(t, c.isSet(flagPV))
	assert.True(t, c.isSet(flagC), "INC must not touch the carry flag")
}

func TestDec8_OverflowOnlyFrom0x80(t *testing.T) {
	c, _, _, _ := newTestCPU()

	result := c.dec8(0x80)

	assert.Equal(t, uint8(0x7F), result)
	assert.True(t, c.isSet(flagPV))
	assert.True(t, c.isSet(flagN))
}

func TestAddToHL_LeavesSignZeroParity(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.setFlag(flagS)
	c.setFlag(flagZ)
	c.setFlag(flagPV)

	result := c.addToHL(0xFFFF, 0x0001)

	assert.Equal(t, uint16(0x0000), result)
	assert.True(t, c.isSet(flagC))
	assert.True(t, c.isSet(flagH))
	// ADD HL,rr must not touch S/Z/PV, unlike ADC/SBC HL.
	assert.True(t, c.isSet(flagS))
	assert.True(t, c.isSet(flagZ))
	assert.True(t, c.isSet(flagPV))
}

func TestAdc16_TouchesSignZeroParity(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.setFlag(flagS)
	c.clearFlag(flagC) // power-on F is 0xFF; start with no carry-in

	result := c.adc16(0xFFFF, 0x0001)

	assert.Equal(t, uint16(0x0000), result)
	assert.True(t, c.isSet(flagZ))
	assert.False(t, c.isSet(flagS), "ADC HL,rr recomputes S from the result")
}

func TestDaa_AfterAdd(t *testing.T) {
	c, _, _, _ := newTestCPU()
	c.setA(0x0F)
	c.clearFlag(flagN)
	c.clearFlag(flagC)
	c.setFlag(flagH)

	c.daa()

	assert.Equal(t, uint8(0x15), c.a())
}

func TestParity(t *testing.T) {
	assert.True(t, parity(0x00))
	assert.True(t, parity(0x03))
	assert.False(t, parity(0x01))
}
