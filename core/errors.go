package core

import "errors"

// ErrEmptyROM and ErrROMSize name the malformed-cartridge cases (spec.md
// §7's RomError). romloader.Load, which NewFromBytes calls, reports those
// cases with errors of its own that do not wrap these values, so errors.Is
// against them does not match a load failure. romloader.Load accepts only
// whole 16 KiB pages (after an optional 512-byte header): an image whose
// length is a multiple of 8 KiB but not of 16 KiB is rejected.
var (
	ErrEmptyROM = errors.New("rom: empty image")
	ErrROMSize  = errors.New("rom: length is not a positive multiple of 8 KiB")
)

// MemoryLoadError reports a save-state whose mapper kind, ROM length, or
// page indices are internally inconsistent.
type MemoryLoadError struct{ Reason string }

func (e *MemoryLoadError) Error() string { return "memory load: " + e.Reason }

// RuntimeAbort reports a CPU safety-rail trip (spec.md §4.1): a runaway
// DD/FD prefix chain or an EI storm.
type RuntimeAbort struct{ Kind string }

func (e *RuntimeAbort) Error() string { return "runtime abort: " + e.Kind }
