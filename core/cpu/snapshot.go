package cpu

// Snapshot is a read-only dump of the complete register file and execution
// state, for save-state serialization. Structured access to state this
// package already owns, not a new feature, following the same shape as
// video.Snapshot and audio.Snapshot.
type Snapshot struct {
	AF, AF2 uint16
	BC, BC2 uint16
	DE, DE2 uint16
	HL, HL2 uint16
	IX, IY  uint16
	SP, PC  uint16

	I, R uint8

	Cycles uint64

	Halted bool
	IFF1   bool
	IFF2   bool
	IM     uint8

	Prefix Prefix
}

// Snapshot captures the CPU's current register file and execution state by
// value. Interrupt-check tri-state, the safety-rail counters, and the
// per-instruction displacement cache are deliberately excluded: they only
// matter mid-instruction, and RunFrame always calls back between
// instruction boundaries, never mid-Step.
func (c *CPU) Snapshot() Snapshot {
	return Snapshot{
		AF: c.af.get(), AF2: c.af2.get(),
		BC: c.bc.get(), BC2: c.bc2.get(),
		DE: c.de.get(), DE2: c.de2.get(),
		HL: c.hl.get(), HL2: c.hl2.get(),
		IX: c.ix.get(), IY: c.iy.get(),
		SP: c.sp.get(), PC: c.pc.get(),
		I: c.i, R: c.r,
		Cycles: c.cycles,
		Halted: c.halted,
		IFF1:   c.iff1,
		IFF2:   c.iff2,
		IM:     c.im,
		Prefix: c.prefix,
	}
}

// Restore loads a previously captured Snapshot back into the CPU, for
// save-state decode. Leaves the interrupt-check tri-state at its zero value
// (checkNone): the next Step call will re-evaluate interrupt acceptance
// fresh, which is always safe at an instruction boundary.
func (c *CPU) Restore(s Snapshot) {
	c.af.set(s.AF)
	c.af2.set(s.AF2)
	c.bc.set(s.BC)
	c.bc2.set(s.BC2)
	c.de.set(s.DE)
	c.de2.set(s.DE2)
	c.hl.set(s.HL)
	c.hl2.set(s.HL2)
	c.ix.set(s.IX)
	c.iy.set(s.IY)
	c.sp.set(s.SP)
	c.pc.set(s.PC)
	c.i = s.I
	c.r = s.R
	c.cycles = s.Cycles
	c.halted = s.Halted
	c.iff1 = s.IFF1
	c.iff2 = s.IFF2
	c.im = s.IM
	c.prefix = s.Prefix
	c.checkStatus = interruptCheckStatus{}
	c.aborted = false
	c.abortKind = ""
}
