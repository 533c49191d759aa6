// Package memory implements the SMS/GG memory mappers: Sega, Codemasters,
// and SG-1000, each presenting the Z80 bus's flat Read/Write surface while
// paging 16 KiB ROM slots and (where applicable) cartridge RAM underneath.
package memory

import (
	"encoding/binary"
	"io"

	"github.com/sms-core/smsemu/core/romloader"
)

// Kind selects which mapper hook decodes control-register writes. The host
// supplies it explicitly at construction time; there is no reliable
// universal auto-detection across all three families.
type Kind uint8

const (
	KindSega Kind = iota
	KindCodemasters
	KindSG1000
)

// Mapper is the polymorphic memory interface the Z80 bus talks to. Every
// write first runs through the mapper's control-register hook (which may
// remap a slot), then falls through to the resolved physical location if
// writable.
type Mapper interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)
}

// New constructs the mapper named by kind over rom; an unrecognized kind
// yields the Sega mapper.
func New(kind Kind, rom *romloader.ROM) Mapper {
	switch kind {
	case KindCodemasters:
		return newCodemastersMapper(rom)
	case KindSG1000:
		return newSG1000Mapper(rom)
	default:
		return newSegaMapper(rom)
	}
}

// systemRAM is the 8 KiB of work RAM present on every SMS/GG, mapped at
// 0xC000-0xDFFF and mirrored at 0xE000-0xFFFF.
type systemRAM struct {
	data [0x2000]uint8
}

func (r *systemRAM) read(address uint16) uint8 {
	return r.data[address&0x1FFF]
}

func (r *systemRAM) write(address uint16, value uint8) {
	r.data[address&0x1FFF] = value
}

// StateCodec is implemented by every Mapper kind so save-state encoding can
// capture and restore bank/paging state without a type switch at the
// caller. ROM content is never part of the encoded state — a save-state
// references the cartridge by content hash instead, per SPEC_FULL.md 10.
type StateCodec interface {
	EncodeState() []byte
	DecodeState(data []byte) error
}

func writeInt32(w io.Writer, v int) { binary.Write(w, binary.LittleEndian, int32(v)) }

func writeBool(w io.Writer, v bool) {
	var b byte
	if v {
		b = 1
	}
	w.Write([]byte{b})
}

func writeBytes(w io.Writer, data []uint8) {
	binary.Write(w, binary.LittleEndian, uint32(len(data)))
	w.Write(data)
}

func readInt32(r io.Reader) (int, error) {
	var v int32
	err := binary.Read(r, binary.LittleEndian, &v)
	return int(v), err
}

func readBool(r io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func readBytes(r io.Reader) ([]uint8, error) {
	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	data := make([]uint8, n)
	_, err := io.ReadFull(r, data)
	return data, err
}
