package cpu

// Memo is a structured trace event the CPU emits to an optional Inbox.
// Tracing never changes control flow — NullInbox discards everything at
// zero cost.
type Memo interface {
	isMemo()
}

// InstructionMemo is emitted once per instruction, before execution. PC and
// Opcode give the address and value of the byte that selects the opcode
// table: the opcode itself, or the CB or ED prefix; DD/FD prefixes ahead of
// it are not included.
type InstructionMemo struct {
	PC     uint16
	Opcode []uint8
}

func (InstructionMemo) isMemo() {}

// MaskableInterruptMemo is emitted when a maskable interrupt is accepted.
type MaskableInterruptMemo struct {
	Mode byte
	Data uint8
}

func (MaskableInterruptMemo) isMemo() {}

// NonmaskableInterruptMemo is emitted when an NMI is accepted.
type NonmaskableInterruptMemo struct{}

func (NonmaskableInterruptMemo) isMemo() {}

// AbortMemo is emitted when a safety rail trips run_until's early return.
type AbortMemo struct {
	Kind string
}

func (AbortMemo) isMemo() {}

// Inbox receives trace memos from the CPU. Hosts may discard, log, or
// disassemble them; the core is fully usable with a no-op inbox.
type Inbox interface {
	Notify(Memo)
}

// NullInbox discards every memo; the default when no inbox is configured.
type NullInbox struct{}

func (NullInbox) Notify(Memo) {}
