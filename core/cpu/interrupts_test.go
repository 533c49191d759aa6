package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEI_DelaysInterruptAcceptanceByOneInstruction(t *testing.T) {
	c, mem, _, irq := newTestCPU()
	c.im = 1
	irq.maskable = true
	mem.loadAt(0, 0xFB, 0x00, 0x00) // ei ; nop ; nop

	c.Step() // ei: interrupts re-armed, but the check is deferred
	assert.Equal(t, uint16(1), c.PC())
	assert.True(t, c.iff1)

	// The instruction immediately following ei must execute without the
	// interrupt being taken, even though it is pending the whole time.
	cost := c.Step()
	assert.Equal(t, 4, cost)
	assert.Equal(t, uint16(2), c.PC(), "nop after ei must not be preempted")

	// From the next boundary on, the pending interrupt is serviced.
	cost = c.Step()
	assert.Equal(t, 13, cost) // IM1 entry cost
	assert.Equal(t, uint16(0x0038), c.PC())
	assert.False(t, c.iff1)
}

func TestRunUntil_StopsRightAfterEI(t *testing.T) {
	c, mem, _, _ := newTestCPU()
	mem.loadAt(0, 0x00, 0xFB, 0x00, 0x00, 0x00) // nop ; ei ; nop nop nop

	consumed := c.RunUntil(1000)

	assert.Equal(t, uint16(2), c.PC())
	assert.Equal(t, uint64(8), consumed)
}

func TestMaskableInterrupt_IM1(t *testing.T) {
	c, mem, _, irq := newTestCPU()
	c.iff1 = true
	c.im = 1
	c.sp.set(0xFFF0)
	irq.maskable = true
	mem.loadAt(0, 0x00, 0x00) // would-be nops, never reached

	cost := c.Step()

	assert.Equal(t, 13, cost)
	assert.Equal(t, uint16(0x0038), c.PC())
	assert.Equal(t, uint16(0x0000), c.pop())
}

func TestMaskableInterrupt_IM2(t *testing.T) {
	c, mem, _, irq := newTestCPU()
	c.iff1 = true
	c.im = 2
	c.i = 0x40
	c.sp.set(0xFFF0)
	irq.maskable = true
	irq.data = 0x10
	mem.data[0x4010] = 0xCD
	mem.data[0x4011] = 0xAB

	cost := c.Step()

	assert.Equal(t, 19, cost)
	assert.Equal(t, uint16(0xABCD), c.PC())
}

func TestNMI_TakesPriorityAndPreservesIFF2(t *testing.T) {
	c, _, _, irq := newTestCPU()
	c.iff1 = true
	c.iff2 = true
	c.sp.set(0xFFF0)
	irq.nmi = true
	irq.maskable = true // NMI must win even when a maskable IRQ is also pending

	cost := c.Step()

	assert.Equal(t, 11, cost)
	assert.Equal(t, uint16(0x0066), c.PC())
	assert.False(t, c.iff1)
	assert.True(t, c.iff2)
	assert.False(t, irq.nmi, "NMI line is acknowledged (edge-triggered)")
}

func TestHalt_WakesOnMaskableInterrupt(t *testing.T) {
	c, mem, _, irq := newTestCPU()
	c.iff1 = true
	c.im = 1
	c.sp.set(0xFFF0)
	mem.loadAt(0, 0x76) // HALT

	c.Step()
	assert.True(t, c.Halted())

	irq.maskable = true
	cost := c.Step()

	assert.Equal(t, 13, cost)
	assert.False(t, c.Halted())
	assert.Equal(t, uint16(0x0038), c.PC())
}

func TestSafety_EIStormAborts(t *testing.T) {
	c, mem, _, _ := newTestCPU()
	for i := 0; i < len(mem.data); i++ {
		mem.data[i] = 0xFB // ei, forever
	}

	for i := 0; i < maxConsecutiveEI+2; i++ {
		c.Step()
		if c.Aborted() {
			break
		}
	}

	assert.True(t, c.Aborted())
	assert.Equal(t, "ei-storm", c.AbortKind())
}
