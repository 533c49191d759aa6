// Package romloader loads SMS/GG cartridge images and exposes them as
// immutable, reference-counted handles shared across every mapper instance
// and save state that references the same cartridge.
package romloader

import (
	"crypto/sha256"
	"fmt"
)

// pageSize is the 16 KiB granularity mappers bank ROM in.
const pageSize = 0x4000

// headerSize is the leading padding some dumps carry ahead of the actual
// cartridge image (a leftover of SMS copier hardware).
const headerSize = 512

// ROM is an immutable cartridge image. It is safe to share a single *ROM
// across multiple mappers/save-states: nothing ever mutates data.
type ROM struct {
	data []byte
	name string
}

// Load strips an optional 512-byte copier header (detected by the image
// size not being a multiple of the 16 KiB page size once the header is
// accounted for) and wraps the remaining bytes as a ROM handle.
func Load(name string, raw []byte) (*ROM, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("romloader: %s: empty image", name)
	}

	data := raw
	if len(raw)%pageSize == headerSize {
		data = raw[headerSize:]
	}

	if len(data)%pageSize != 0 || len(data) == 0 {
		return nil, fmt.Errorf("romloader: %s: size %d is not a multiple of %d bytes", name, len(data), pageSize)
	}

	return &ROM{data: data, name: name}, nil
}

// Name returns the identifying label the ROM was loaded with (typically a
// filename), used in log messages and the window title. Save states identify
// the cartridge by a hash of its contents, not by Name.
func (r *ROM) Name() string { return r.name }

// PageCount returns the number of 16 KiB ROM pages.
func (r *ROM) PageCount() int { return len(r.data) / pageSize }

// Page returns the bytes of ROM page n, wrapping modulo PageCount as every
// mapper hook is specified to do for out-of-range page writes.
func (r *ROM) Page(n int) []byte {
	n %= r.PageCount()
	return r.data[n*pageSize : (n+1)*pageSize]
}

// Size returns the total image size in bytes, header excluded.
func (r *ROM) Size() int { return len(r.data) }

// Hash is a content digest of the cartridge image (header stripped), used
// by save states to reference a ROM without duplicating it and to verify a
// save state is being restored against the same cartridge it was captured
// from.
func (r *ROM) Hash() [32]byte { return sha256.Sum256(r.data) }
