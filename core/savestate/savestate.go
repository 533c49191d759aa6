// Package savestate encodes and decodes a complete Emulator snapshot:
// Z80 registers, VDP state, the active memory mapper's banking state, PSG
// state, and the input/Pause-edge latch. File I/O and any host-side UI
// around save slots are the caller's concern, not this package's
// (SPEC_FULL.md 15's save-state-file-I/O non-goal binds the core, not the
// CLI front end).
package savestate

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sms-core/smsemu/core/audio"
	"github.com/sms-core/smsemu/core/cpu"
	"github.com/sms-core/smsemu/core/input"
	"github.com/sms-core/smsemu/core/memory"
	"github.com/sms-core/smsemu/core/video"
)

// FormatVersion is bumped whenever the encoded layout changes
// incompatibly; Decode refuses to load a mismatched version.
const FormatVersion = 1

// State is a complete, versioned snapshot of a running Emulator. The
// cartridge is referenced by content hash rather than duplicated: Restore
// onto an Emulator built from a different ROM image is refused.
type State struct {
	ROMHash     [32]byte
	MapperKind  memory.Kind
	MapperState []byte
	CPU         cpu.Snapshot
	VDP         video.Snapshot
	HasPSG      bool
	PSG         audio.Snapshot
	Input       input.Snapshot
}

// emulator is the subset of core.Emulator's exported surface savestate
// needs; defined here rather than importing the core package directly to
// avoid a core <-> savestate import cycle (core will import savestate to
// offer Capture/Restore convenience methods).
type emulator interface {
	CPU() *cpu.CPU
	VDP() *video.VDP
	Mapper() memory.Mapper
	PSG() audio.Generator
	Input() *input.State
	Kind() memory.Kind
	ROMHash() [32]byte
}

// Capture builds a State from e's current subsystem state.
func Capture(e emulator) (State, error) {
	codec, ok := e.Mapper().(memory.StateCodec)
	if !ok {
		return State{}, fmt.Errorf("savestate: mapper %T does not implement StateCodec", e.Mapper())
	}

	s := State{
		ROMHash:     e.ROMHash(),
		MapperKind:  e.Kind(),
		MapperState: codec.EncodeState(),
		CPU:         e.CPU().Snapshot(),
		VDP:         e.VDP().Snapshot(),
		Input:       e.Input().Snapshot(),
	}

	if psg, ok := e.PSG().(*audio.PSG); ok {
		s.HasPSG = true
		s.PSG = psg.Snapshot()
	}

	return s, nil
}

// Restore loads s back into e. Refuses a State captured against a
// different cartridge or a different mapper kind.
func Restore(e emulator, s State) error {
	if s.ROMHash != e.ROMHash() {
		return fmt.Errorf("savestate: state was captured against a different cartridge")
	}
	if s.MapperKind != e.Kind() {
		return fmt.Errorf("savestate: state mapper kind %v does not match emulator kind %v", s.MapperKind, e.Kind())
	}

	codec, ok := e.Mapper().(memory.StateCodec)
	if !ok {
		return fmt.Errorf("savestate: mapper %T does not implement StateCodec", e.Mapper())
	}
	if err := codec.DecodeState(s.MapperState); err != nil {
		return err
	}

	e.CPU().Restore(s.CPU)
	e.VDP().Restore(s.VDP)
	e.Input().Restore(s.Input)

	if s.HasPSG {
		if psg, ok := e.PSG().(*audio.PSG); ok {
			psg.Restore(s.PSG)
		}
	}

	return nil
}

// Encode serializes s as a little-endian, length-prefixed binary blob.
func Encode(s State) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.LittleEndian, uint32(FormatVersion))
	buf.Write(s.ROMHash[:])
	binary.Write(&buf, binary.LittleEndian, uint32(s.MapperKind))

	writeLenPrefixed(&buf, s.MapperState)

	writeFixed(&buf, s.CPU)
	writeFixed(&buf, s.VDP)
	writeFixed(&buf, s.Input)

	var hasPSG uint8
	if s.HasPSG {
		hasPSG = 1
	}
	buf.WriteByte(hasPSG)
	if s.HasPSG {
		writeFixed(&buf, s.PSG)
	}

	return buf.Bytes()
}

// Decode parses a blob produced by Encode. Returns an error (not a panic)
// on a version mismatch or truncated input.
func Decode(data []byte) (State, error) {
	r := bytes.NewReader(data)

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return State{}, fmt.Errorf("savestate: read version: %w", err)
	}
	if version != FormatVersion {
		return State{}, fmt.Errorf("savestate: unsupported format version %d (expected %d)", version, FormatVersion)
	}

	var s State
	if _, err := io.ReadFull(r, s.ROMHash[:]); err != nil {
		return State{}, fmt.Errorf("savestate: read ROM hash: %w", err)
	}

	var kind uint32
	if err := binary.Read(r, binary.LittleEndian, &kind); err != nil {
		return State{}, fmt.Errorf("savestate: read mapper kind: %w", err)
	}
	s.MapperKind = memory.Kind(kind)

	mapperState, err := readLenPrefixed(r)
	if err != nil {
		return State{}, fmt.Errorf("savestate: read mapper state: %w", err)
	}
	s.MapperState = mapperState

	if err := readFixed(r, &s.CPU); err != nil {
		return State{}, fmt.Errorf("savestate: read cpu state: %w", err)
	}
	if err := readFixed(r, &s.VDP); err != nil {
		return State{}, fmt.Errorf("savestate: read vdp state: %w", err)
	}
	if err := readFixed(r, &s.Input); err != nil {
		return State{}, fmt.Errorf("savestate: read input state: %w", err)
	}

	hasPSG, err := r.ReadByte()
	if err != nil {
		return State{}, fmt.Errorf("savestate: read psg flag: %w", err)
	}
	s.HasPSG = hasPSG != 0
	if s.HasPSG {
		if err := readFixed(r, &s.PSG); err != nil {
			return State{}, fmt.Errorf("savestate: read psg state: %w", err)
		}
	}

	return s, nil
}

// HashROM is the content-hash function save states reference a cartridge
// by; exported so hosts can compare a loaded ROM's hash against a save
// state's without round-tripping through Capture/Restore.
func HashROM(data []byte) [32]byte { return sha256.Sum256(data) }

func writeLenPrefixed(buf *bytes.Buffer, data []byte) {
	binary.Write(buf, binary.LittleEndian, uint32(len(data)))
	buf.Write(data)
}

func readLenPrefixed(r *bytes.Reader) ([]byte, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	data := make([]byte, n)
	if n == 0 {
		return data, nil
	}
	_, err := io.ReadFull(r, data)
	return data, err
}

// writeFixed/readFixed handle the CPU/VDP/Input snapshot structs: every
// field is a fixed-size numeric, array, or bool, so binary.Write/Read
// (which require a fixed-size type) apply directly without custom framing.
func writeFixed(buf *bytes.Buffer, v any) {
	binary.Write(buf, binary.LittleEndian, v)
}

func readFixed(r *bytes.Reader, v any) error {
	return binary.Read(r, binary.LittleEndian, v)
}
