package cpu

// Flag is one bit of the F register. Names match the community convention
// used in the Zilog manual and undocumented-flag literature.
type Flag uint8

const (
	flagC  Flag = 1 << 0 // carry
	flagN  Flag = 1 << 1 // add/subtract
	flagPV Flag = 1 << 2 // parity/overflow
	flagX  Flag = 1 << 3 // undocumented, copy of result bit 3
	flagH  Flag = 1 << 4 // half carry
	flagY  Flag = 1 << 5 // undocumented, copy of result bit 5
	flagZ  Flag = 1 << 6 // zero
	flagS  Flag = 1 << 7 // sign
)

func (c *CPU) setFlag(f Flag)   { c.af.setLow(c.af.low() | uint8(f)) }
func (c *CPU) clearFlag(f Flag) { c.af.setLow(c.af.low() &^ uint8(f)) }

func (c *CPU) putFlag(f Flag, set bool) {
	if set {
		c.setFlag(f)
	} else {
		c.clearFlag(f)
	}
}

func (c *CPU) isSet(f Flag) bool { return c.af.low()&uint8(f) != 0 }

// setXY copies bits 3 and 5 of result into the undocumented X/Y flags, the
// behavior real Z80 silicon exhibits for nearly every flag-affecting opcode.
func (c *CPU) setXY(result uint8) {
	c.putFlag(flagX, result&0x08 != 0)
	c.putFlag(flagY, result&0x20 != 0)
}

func (c *CPU) setSZ(result uint8) {
	c.putFlag(flagS, result&0x80 != 0)
	c.putFlag(flagZ, result == 0)
}

func parity(v uint8) bool {
	v ^= v >> 4
	v ^= v >> 2
	v ^= v >> 1
	return v&1 == 0
}
