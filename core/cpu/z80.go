package cpu

// Step executes exactly one instruction (the interrupt check included) and
// returns its T-state cost. Most callers want RunUntil instead; Step is
// exposed for disassemblers and single-step debuggers.
func (c *CPU) Step() int {
	if c.halted {
		cost := c.checkAndServiceInterrupts()
		if cost > 0 {
			c.cycles += uint64(cost)
			return cost
		}
		c.cycles += 4
		return 4
	}

	cost := c.checkAndServiceInterrupts()
	if cost > 0 {
		c.cycles += uint64(cost)
		return cost
	}

	cost = c.step()
	c.cycles += uint64(cost)
	return cost
}

// RunUntil dispatches instructions until the cycle counter reaches
// targetCycles or an event forces early return: the inbox signals hold, a
// HALT instruction has nothing to wake it, an ei instruction has just
// executed, or a safety rail has tripped. Returns the number of T-states
// actually consumed.
func (c *CPU) RunUntil(targetCycles uint64) uint64 {
	start := c.cycles
	for c.cycles < targetCycles {
		if c.aborted {
			break
		}

		if h, ok := c.inbox.(interface{ Hold() bool }); ok && h.Hold() {
			break
		}

		if c.halted && !c.irq.NMIAsserted() && !(c.iff1 && c.irq.MaskableAsserted()) {
			c.cycles = targetCycles
			break
		}

		wasAfterEI := c.checkStatus.kind == checkAfterEI

		c.Step()

		if !wasAfterEI && c.checkStatus.kind == checkAfterEI {
			// An ei instruction was just executed: stop here so the host
			// can observe the boundary before the one-instruction delay
			// that defers interrupt acceptance.
			break
		}
	}
	return c.cycles - start
}
