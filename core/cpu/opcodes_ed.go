package cpu

// execED dispatches an ED-prefixed opcode. The 0x40-0x7F range is decoded
// uniformly from its row (r = bits 5-3) and column (bits 2-0); 0xA0-0xBB is
// the block-transfer/search/IO family, each with an ascending and a
// repeating ("R") form; everything else is an undocumented 8 T-state NOP.
func (c *CPU) execED() int {
	opcode := c.fetch()

	if opcode >= 0x40 && opcode <= 0x7F {
		return c.execED40to7F(opcode)
	}

	switch opcode {
	case 0xA0:
		c.ldi()
		return 16
	case 0xA1:
		c.cpi()
		return 16
	case 0xA2:
		c.ini()
		return 16
	case 0xA3:
		c.outi()
		return 16
	case 0xA8:
		c.ldd()
		return 16
	case 0xA9:
		c.cpd()
		return 16
	case 0xAA:
		c.ind()
		return 16
	case 0xAB:
		c.outd()
		return 16
	case 0xB0:
		c.ldi()
		if c.bc.get() != 0 {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	case 0xB1:
		c.cpi()
		if c.bc.get() != 0 && !c.isSet(flagZ) {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	case 0xB2:
		c.ini()
		if c.bc.high() != 0 {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	case 0xB3:
		c.outi()
		if c.bc.high() != 0 {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	case 0xB8:
		c.ldd()
		if c.bc.get() != 0 {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	case 0xB9:
		c.cpd()
		if c.bc.get() != 0 && !c.isSet(flagZ) {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	case 0xBA:
		c.ind()
		if c.bc.high() != 0 {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	case 0xBB:
		c.outd()
		if c.bc.high() != 0 {
			c.pc.set(c.pc.get() - 2)
			return 21
		}
		return 16
	}

	return 8
}

var edIM = [8]uint8{0, 0, 1, 2, 0, 0, 1, 2}

func (c *CPU) execED40to7F(opcode uint8) int {
	r := (opcode >> 3) & 0x07
	col := opcode & 0x07
	pairIdx := regPairID(r >> 1)
	isAdc := r&0x01 == 1

	switch col {
	case 0: // IN r,(C)
		v := c.io.In(c.cReg())
		c.putFlag(flagS, v&0x80 != 0)
		c.putFlag(flagZ, v == 0)
		c.clearFlag(flagH)
		c.putFlag(flagPV, parity(v))
		c.clearFlag(flagN)
		c.setXY(v)
		if regID(r) != regHLInd {
			c.writePlainReg8IgnoringPrefix(regID(r), v)
		}
		return 12
	case 1: // OUT (C),r
		var v uint8
		if regID(r) != regHLInd {
			v = c.readPlainReg8(regID(r))
		}
		c.io.Out(c.cReg(), v)
		return 12
	case 2:
		hl := c.readPair(pairHL)
		operand := c.readPairPlain(pairIdx)
		if isAdc {
			c.hl.set(c.adc16(hl, operand))
		} else {
			c.hl.set(c.sbc16(hl, operand))
		}
		return 15
	case 3:
		addr := c.fetchWord()
		if isAdc {
			lo := c.mem.Read(addr)
			hi := c.mem.Read(addr + 1)
			c.writePairPlain(pairIdx, uint16(hi)<<8|uint16(lo))
		} else {
			v := c.readPairPlain(pairIdx)
			c.mem.Write(addr, uint8(v))
			c.mem.Write(addr+1, uint8(v>>8))
		}
		return 20
	case 4:
		c.setA(c.sub8(0, c.a(), false))
		return 8
	case 5:
		if r == 1 {
			c.pc.set(c.pop())
		} else {
			c.pc.set(c.pop())
			c.iff1 = c.iff2
		}
		return 14
	case 6:
		c.im = edIM[r]
		return 8
	default: // col 7
		switch r {
		case 0:
			c.i = c.a()
			return 9
		case 1:
			c.r = c.a()
			return 9
		case 2:
			c.setA(c.i)
			c.putFlag(flagS, c.i&0x80 != 0)
			c.putFlag(flagZ, c.i == 0)
			c.putFlag(flagPV, c.iff2)
			c.clearFlag(flagH)
			c.clearFlag(flagN)
			c.setXY(c.i)
			return 9
		case 3:
			c.setA(c.r)
			c.putFlag(flagS, c.r&0x80 != 0)
			c.putFlag(flagZ, c.r == 0)
			c.putFlag(flagPV, c.iff2)
			c.clearFlag(flagH)
			c.clearFlag(flagN)
			c.setXY(c.r)
			return 9
		case 4:
			c.rrd()
			return 18
		case 5:
			c.rld()
			return 18
		default:
			return 8
		}
	}
}

// readPairPlain/writePairPlain access BC/DE/HL/SP without DD/FD
// substitution, for the ED-space LD (nn),rr / ADC/SBC HL,rr family (IX/IY
// are not valid operands there).
func (c *CPU) readPairPlain(id regPairID) uint16 {
	switch id {
	case pairBC:
		return c.bc.get()
	case pairDE:
		return c.de.get()
	case pairHL:
		return c.hl.get()
	default:
		return c.sp.get()
	}
}

func (c *CPU) writePairPlain(id regPairID, v uint16) {
	switch id {
	case pairBC:
		c.bc.set(v)
	case pairDE:
		c.de.set(v)
	case pairHL:
		c.hl.set(v)
	default:
		c.sp.set(v)
	}
}

// rrd/rld rotate a BCD digit between A's low nibble and (HL), 4 bits at a
// time; SF/ZF/PV/XY from the new A, HF=NF=0, CF unaffected.
func (c *CPU) rrd() {
	addr := c.hl.get()
	m := c.mem.Read(addr)
	a := c.a()
	newA := (a & 0xF0) | (m & 0x0F)
	newM := (a&0x0F)<<4 | (m >> 4)
	c.setA(newA)
	c.mem.Write(addr, newM)
	c.clearFlag(flagH)
	c.clearFlag(flagN)
	c.putFlag(flagPV, parity(newA))
	c.setSZ(newA)
	c.setXY(newA)
}

func (c *CPU) rld() {
	addr := c.hl.get()
	m := c.mem.Read(addr)
	a := c.a()
	newA := (a & 0xF0) | (m >> 4)
	newM := (m&0x0F)<<4 | (a & 0x0F)
	c.setA(newA)
	c.mem.Write(addr, newM)
	c.clearFlag(flagH)
	c.clearFlag(flagN)
	c.putFlag(flagPV, parity(newA))
	c.setSZ(newA)
	c.setXY(newA)
}

// ldi/ldd copy (HL) to (DE), stepping HL/DE by +1/-1 and decrementing BC.
// NF=HF=0; PV=BC!=0 after the decrement; the undocumented X/Y flags are
// copied from bits 3/1 of (transferred byte + A), per the well-documented
// "MEMPTR-less" quirk of the block-copy family.
func (c *CPU) ldi() { c.ldBlock(1) }
func (c *CPU) ldd() { c.ldBlock(-1) }

func (c *CPU) ldBlock(step int) {
	v := c.mem.Read(c.hl.get())
	c.mem.Write(c.de.get(), v)
	c.hl.set(uint16(int32(c.hl.get()) + int32(step)))
	c.de.set(uint16(int32(c.de.get()) + int32(step)))
	c.bc.set(c.bc.get() - 1)

	n := v + c.a()
	c.clearFlag(flagH)
	c.clearFlag(flagN)
	c.putFlag(flagPV, c.bc.get() != 0)
	c.putFlag(flagY, n&0x02 != 0)
	c.putFlag(flagX, n&0x08 != 0)
}

// cpi/cpd compare A with (HL) like CP, stepping HL by +1/-1 and
// decrementing BC; CF is left untouched, PV=BC!=0 after the decrement.
func (c *CPU) cpi() { c.cpBlock(1) }
func (c *CPU) cpd() { c.cpBlock(-1) }

func (c *CPU) cpBlock(step int) {
	v := c.mem.Read(c.hl.get())
	a := c.a()
	result := a - v
	hf := (a & 0x0F) < (v & 0x0F)

	c.hl.set(uint16(int32(c.hl.get()) + int32(step)))
	c.bc.set(c.bc.get() - 1)

	c.putFlag(flagH, hf)
	c.setFlag(flagN)
	c.putFlag(flagPV, c.bc.get() != 0)
	c.setSZ(result)

	n := result
	if hf {
		n--
	}
	c.putFlag(flagY, n&0x02 != 0)
	c.putFlag(flagX, n&0x08 != 0)
}

// ini/ind read a byte from port C into (HL), decrementing B and stepping HL
// by +1/-1. outi/outd write (HL) to port C, then step HL and decrement B.
func (c *CPU) ini() { c.inBlock(1) }
func (c *CPU) ind() { c.inBlock(-1) }

func (c *CPU) inBlock(step int) {
	v := c.io.In(c.cReg())
	c.mem.Write(c.hl.get(), v)
	c.hl.set(uint16(int32(c.hl.get()) + int32(step)))
	c.bc.setHigh(c.bc.high() - 1)

	c.putFlag(flagN, v&0x80 != 0)
	c.putFlag(flagZ, c.bc.high() == 0)
}

func (c *CPU) outi() { c.outBlock(1) }
func (c *CPU) outd() { c.outBlock(-1) }

func (c *CPU) outBlock(step int) {
	v := c.mem.Read(c.hl.get())
	c.hl.set(uint16(int32(c.hl.get()) + int32(step)))
	c.bc.setHigh(c.bc.high() - 1)
	c.io.Out(c.cReg(), v)

	c.putFlag(flagN, v&0x80 != 0)
	c.putFlag(flagZ, c.bc.high() == 0)
}
