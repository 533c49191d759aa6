package cpu

// conditionTrue evaluates the 3-bit cc field occupying bits 5-3 of JP/CALL/RET
// cc opcodes: 0=NZ 1=Z 2=NC 3=C 4=PO 5=PE 6=P 7=M.
func (c *CPU) conditionTrue(cc uint8) bool {
	switch cc {
	case 0:
		return !c.isSet(flagZ)
	case 1:
		return c.isSet(flagZ)
	case 2:
		return !c.isSet(flagC)
	case 3:
		return c.isSet(flagC)
	case 4:
		return !c.isSet(flagPV)
	case 5:
		return c.isSet(flagPV)
	case 6:
		return !c.isSet(flagS)
	default: // 7
		return c.isSet(flagS)
	}
}

func (c *CPU) condition(opcode uint8) bool {
	return c.conditionTrue((opcode >> 3) & 0x07)
}

// addHLCost: ADD HL,rr=11; ADD IX,rr/ADD IY,rr=15.
func (c *CPU) addHLCost() int {
	if c.indexed() {
		return 15
	}
	return 11
}

// incDecPairCost: INC/DEC BC/DE/SP=6 always (not substitutable by DD/FD).
func (c *CPU) incDecPairCost() int { return 6 }

// incDecHLCost: INC/DEC HL=6; INC/DEC IX/IY=10.
func (c *CPU) incDecHLCost() int {
	if c.indexed() {
		return 10
	}
	return 6
}

// ldRRNNCost: LD HL,nn=10; LD IX,nn/LD IY,nn=14.
func (c *CPU) ldRRNNCost() int {
	if c.indexed() {
		return 14
	}
	return 10
}

// ldNNHLCost: LD (nn),HL / LD HL,(nn) =16; indexed forms=20.
func (c *CPU) ldNNHLCost() int {
	if c.indexed() {
		return 20
	}
	return 16
}

// incDecIndCost: INC/DEC (HL)=11; INC/DEC (IX+d)/(IY+d)=23.
func (c *CPU) incDecIndCost() int {
	if c.indexed() {
		return 23
	}
	return 11
}

// popPushCost: POP/PUSH HL use the base argument; POP/PUSH IX/IY cost 4 more.
func (c *CPU) popPushCost(base int) int {
	if c.indexed() {
		return base + 4
	}
	return base
}
