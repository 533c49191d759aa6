package cpu

// step decodes and executes exactly one instruction (including any DD/FD/CB/
// ED prefix chain ahead of it) starting at PC, and returns its T-state cost.
func (c *CPU) step() int {
	c.prefix = PrefixNone
	c.beginInstruction()

	cost := 0
	prefixRun := 0

	for {
		startPC := c.pc.get()
		opcodeByte := c.fetch()

		switch opcodeByte {
		case 0xDD:
			// Only a prefix superseded by another one costs its own 4
			// T-states; the last one is part of the instruction's cost.
			if c.indexed() {
				cost += 4
			}
			c.prefix = PrefixDD
			prefixRun++
			if c.safe && prefixRun > maxConsecutivePrefixes {
				return cost + c.abort("dd-fd-prefix-overrun")
			}
			continue
		case 0xFD:
			if c.indexed() {
				cost += 4
			}
			c.prefix = PrefixFD
			prefixRun++
			if c.safe && prefixRun > maxConsecutivePrefixes {
				return cost + c.abort("dd-fd-prefix-overrun")
			}
			continue
		case 0xCB:
			c.inbox.Notify(InstructionMemo{PC: startPC, Opcode: []uint8{opcodeByte}})
			switch c.prefix {
			case PrefixDD:
				return cost + c.execIndexedCB(&c.ix)
			case PrefixFD:
				return cost + c.execIndexedCB(&c.iy)
			default:
				return cost + c.execCB()
			}
		case 0xED:
			// A DD/FD immediately before ED is wasted: ED-space instructions
			// never reference HL/IX/IY through the substitution mechanism.
			if c.indexed() {
				cost += 4
			}
			c.prefix = PrefixNone
			c.inbox.Notify(InstructionMemo{PC: startPC, Opcode: []uint8{opcodeByte}})
			return cost + c.execED()
		default:
			c.inbox.Notify(InstructionMemo{PC: startPC, Opcode: []uint8{opcodeByte}})
			return cost + c.execMain(opcodeByte)
		}
	}
}

func (c *CPU) abort(kind string) int {
	c.aborted = true
	c.abortKind = kind
	c.inbox.Notify(AbortMemo{Kind: kind})
	return 0
}

// execByte executes a single opcode byte supplied out-of-band (IM0 interrupt
// acknowledge), without disturbing PC. Real IM0 hardware lets the
// interrupting device drive an arbitrary instruction onto the bus; in
// practice every SMS/GG interrupt source drives a one-byte RST, so that is
// what is fully supported here.
func (c *CPU) execByte(opcodeByte uint8) int {
	c.prefix = PrefixNone
	c.beginInstruction()
	switch opcodeByte & 0xC7 {
	case 0xC7:
		n := (opcodeByte >> 3) & 0x07
		c.push(c.pc.get())
		c.pc.set(uint16(n) * 8)
		return 11
	}
	return c.execMain(opcodeByte)
}
