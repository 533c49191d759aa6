// Package core assembles the Z80, VDP, PSG, memory mapper, and controller
// state into a runnable SMS/GG system, and drives them one frame at a time
// per the host-supplied sinks.
package core

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/sms-core/smsemu/core/audio"
	"github.com/sms-core/smsemu/core/cpu"
	"github.com/sms-core/smsemu/core/input"
	"github.com/sms-core/smsemu/core/memory"
	"github.com/sms-core/smsemu/core/romloader"
	"github.com/sms-core/smsemu/core/savestate"
	"github.com/sms-core/smsemu/core/sink"
	"github.com/sms-core/smsemu/core/video"
)

// Config selects the hardware variant and optional subsystems an Emulator
// is built with.
type Config struct {
	Kind         memory.Kind
	VideoKind    video.Kind
	TVSystem     video.TVSystem
	SampleRateHz int // 0 disables audio generation
	BufferSize   int // AudioSink chunk size, in samples
	Frequency    float64 // Z80 Hz to pace wall-clock sleep by; 0 disables pacing
}

// Emulator is the root struct: one Z80, one VDP, one PSG (or FakeSN76489),
// one memory mapper, one controller-input latch, wired together by bus.
type Emulator struct {
	rom   *romloader.ROM
	mem   memory.Mapper
	vdp   *video.VDP
	psg   audio.Generator
	input *input.State
	cpu   *cpu.CPU

	cfg Config

	lastAudioCycles uint64
	frameCount      uint64
}

// New builds an Emulator over rom's cartridge image.
func New(rom *romloader.ROM, cfg Config) *Emulator {
	e := &Emulator{rom: rom, cfg: cfg}

	e.mem = memory.New(cfg.Kind, rom)
	e.vdp = video.New(cfg.VideoKind, cfg.TVSystem)
	e.input = input.New()

	if cfg.SampleRateHz > 0 {
		e.psg = audio.New(cfg.SampleRateHz, cfg.BufferSize)
	} else {
		e.psg = audio.FakeSN76489{}
	}

	b := &bus{mem: e.mem, vdp: e.vdp, psg: e.psg, input: e.input}
	irq := irqSource{vdp: e.vdp, input: e.input}
	e.cpu = cpu.New(b, b, irq)

	slog.Debug("emulator created", "rom", rom.Name(), "pages", rom.PageCount(), "kind", cfg.Kind)
	return e
}

// NewFromBytes loads raw as a ROM image (stripping an optional copier
// header) and builds an Emulator over it.
func NewFromBytes(name string, raw []byte, cfg Config) (*Emulator, error) {
	rom, err := romloader.Load(name, raw)
	if err != nil {
		return nil, err
	}
	return New(rom, cfg), nil
}

// RunFrame advances the system by exactly one rendered frame: one VDP line
// at a time, catching the Z80 up to 2/3 of the VDP's cycle count after
// each, per spec.md §4.6's 3:2 VDP:Z80 ratio. On the frame boundary
// (VDP wraps to line 0) it generates and queues audio and, if a pacing
// frequency is configured, sleeps to real-time-align the frame.
//
// Returns a *RuntimeAbort if the CPU's safety rails tripped; no audio is
// pushed and no sleep occurs in that case (spec.md §4.6 cancellation).
func (e *Emulator) RunFrame(in input.PlayerInput, pixels sink.PixelSink, audioOut sink.AudioSink, clock sink.ClockSource) error {
	e.input.BeginFrame(in)

	if e.frameCount == 0 {
		w, h := e.vdp.VisibleDimensions()
		if err := pixels.SetResolution(w, h); err != nil {
			return fmt.Errorf("pixel sink: %w", err)
		}
	}

	frameStart := clock.Now()
	frameStartCycles := e.cpu.Cycles()

	for {
		if err := e.vdp.RunLine(pixels); err != nil {
			return fmt.Errorf("pixel sink: %w", err)
		}

		target := (2 * e.vdp.Cycles()) / 3
		for e.cpu.Cycles() < target {
			e.cpu.RunUntil(target)
			if e.cpu.Aborted() {
				return &RuntimeAbort{Kind: e.cpu.AbortKind()}
			}
		}

		if e.vdp.V() != 0 {
			continue
		}

		if err := pixels.Present(); err != nil {
			return fmt.Errorf("pixel sink: %w", err)
		}

		if e.cfg.SampleRateHz > 0 {
			samples := int((e.cpu.Cycles() - e.lastAudioCycles) / 16)
			e.lastAudioCycles = e.cpu.Cycles()
			if samples > 0 {
				if err := e.psg.Generate(samples, audioOut); err != nil {
					return fmt.Errorf("audio sink: %w", err)
				}
			}
		}

		if e.cfg.Frequency > 0 {
			elapsed := time.Duration(float64(e.cpu.Cycles()-frameStartCycles) / e.cfg.Frequency * float64(time.Second))
			clock.SleepUntil(frameStart.Add(elapsed))
		}

		e.frameCount++
		return nil
	}
}

// FrameCount returns the number of frames RunFrame has completed.
func (e *Emulator) FrameCount() uint64 { return e.frameCount }

// CPU, VDP, Mapper, PSG, Input, and ROM expose the subsystems for
// debug/save-state tooling.
func (e *Emulator) CPU() *cpu.CPU         { return e.cpu }
func (e *Emulator) VDP() *video.VDP       { return e.vdp }
func (e *Emulator) Mapper() memory.Mapper { return e.mem }
func (e *Emulator) PSG() audio.Generator  { return e.psg }
func (e *Emulator) Input() *input.State   { return e.input }
func (e *Emulator) ROM() *romloader.ROM   { return e.rom }
func (e *Emulator) Kind() memory.Kind     { return e.cfg.Kind }
func (e *Emulator) ROMHash() [32]byte     { return e.rom.Hash() }

// SaveState and LoadState wrap core/savestate's Capture/Encode and
// Decode/Restore, per SPEC_FULL.md 10. File I/O around the returned bytes
// is the caller's concern, not this package's.
func (e *Emulator) SaveState() ([]byte, error) {
	s, err := savestate.Capture(e)
	if err != nil {
		return nil, err
	}
	return savestate.Encode(s), nil
}

func (e *Emulator) LoadState(data []byte) error {
	s, err := savestate.Decode(data)
	if err != nil {
		return err
	}
	return savestate.Restore(e, s)
}
