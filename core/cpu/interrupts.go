package cpu

// IRQSource is the pull-model interrupt line the CPU consults at each
// instruction boundary, per the design notes: no component holds a
// back-pointer to the CPU, the CPU instead asks "is anything asserted, and
// what byte would the device put on the bus?".
type IRQSource interface {
	// NMIAsserted reports whether a non-maskable interrupt is pending.
	NMIAsserted() bool
	// AckNMI clears the NMI line after it has been serviced (it is
	// edge-triggered on real hardware).
	AckNMI()
	// MaskableAsserted reports whether a maskable interrupt is pending.
	MaskableAsserted() bool
	// Data returns the byte the asserting device places on the bus during
	// an interrupt-acknowledge cycle: in IM0 this is executed as an
	// instruction (typically 0xFF, RST 38h); in IM2 its low bit is
	// cleared and it is OR'd with I<<8 to form the vector-table address.
	Data() uint8
}

// serviceNMI pushes PC, jumps to 0x0066, clears IFF1 (retaining IFF2 for
// RETN), wakes the CPU from HALT, and costs 11 T-states.
func (c *CPU) serviceNMI() int {
	c.halted = false
	c.push(c.pc.get())
	c.pc.set(0x0066)
	c.iff1 = false
	c.irq.AckNMI()
	c.inbox.Notify(NonmaskableInterruptMemo{})
	return 11
}

// serviceMaskable honors IM0/IM1/IM2 entry per spec.md 4.2. Returns the
// T-state cost of the interrupt-acceptance sequence (the IM0 case adds the
// executed instruction's own cost separately, via execByte).
func (c *CPU) serviceMaskable() int {
	// While halted, Step never fetches (it just burns idle cycles), so PC
	// is already parked one past the HALT opcode: no adjustment needed on
	// wake, unlike implementations that model HALT as a re-fetched NOP.
	c.halted = false
	c.iff1 = false
	c.iff2 = false

	data := c.irq.Data()
	c.inbox.Notify(MaskableInterruptMemo{Mode: c.im, Data: data})

	switch c.im {
	case 0:
		cost := c.execByte(data)
		return cost + 2
	case 1:
		c.push(c.pc.get())
		c.pc.set(0x0038)
		return 13
	default: // IM2
		vectorAddr := uint16(c.i)<<8 | uint16(data&0xFE)
		lo := c.mem.Read(vectorAddr)
		hi := c.mem.Read(vectorAddr + 1)
		target := uint16(hi)<<8 | uint16(lo)
		c.push(c.pc.get())
		c.pc.set(target)
		return 19
	}
}

// checkAndServiceInterrupts implements the EI-delay-aware interrupt check
// run once per instruction boundary. Returns the cycle cost of any
// interrupt entry performed (0 if none).
func (c *CPU) checkAndServiceInterrupts() int {
	if c.irq.NMIAsserted() {
		return c.serviceNMI()
	}

	switch c.checkStatus.kind {
	case checkAfterEI:
		// The instruction immediately following EI must retire before any
		// maskable interrupt is considered; this call IS that instruction,
		// so do not service yet. Downgrade to a normal check for next time.
		c.checkStatus = interruptCheckStatus{kind: checkNow}
		return 0
	default:
		if c.iff1 && c.irq.MaskableAsserted() {
			return c.serviceMaskable()
		}
		return 0
	}
}
