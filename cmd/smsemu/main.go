package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli"

	"github.com/sms-core/smsemu/core"
	"github.com/sms-core/smsemu/core/backend/headless"
	"github.com/sms-core/smsemu/core/backend/sdl2"
	"github.com/sms-core/smsemu/core/backend/terminal"
	"github.com/sms-core/smsemu/core/cpu"
	"github.com/sms-core/smsemu/core/input"
	"github.com/sms-core/smsemu/core/memory"
	"github.com/sms-core/smsemu/core/sink"
	"github.com/sms-core/smsemu/core/timing"
	"github.com/sms-core/smsemu/core/video"
)

func main() {
	app := cli.NewApp()
	app.Name = "smsemu"
	app.Description = "A cycle-accurate Sega Master System / Game Gear emulator core"
	app.Usage = "smsemu [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.StringFlag{
			Name:  "kind",
			Usage: "Hardware variant: sms, sms2, or gg (default: inferred from the ROM's file extension)",
		},
		cli.StringFlag{
			Name:  "tv",
			Usage: "TV timing: ntsc or pal",
			Value: "ntsc",
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without a window, for a fixed number of frames",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.StringFlag{
			Name:  "backend",
			Usage: "Display backend: sdl2 or terminal",
			Value: "sdl2",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "Dump every fetched instruction and interrupt to stderr",
		},
		cli.StringFlag{
			Name:  "save-state",
			Usage: "Write a save state to this path on exit",
		},
		cli.StringFlag{
			Name:  "load-state",
			Usage: "Load a save state from this path before running",
		},
	}
	app.Action = runEmulator

	if err := app.Run(os.Args); err != nil {
		slog.Error("smsemu failed", "error", err)
		os.Exit(1)
	}
}

func runEmulator(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	raw, err := os.ReadFile(romPath)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}

	tv, err := parseTVSystem(c.String("tv"))
	if err != nil {
		return err
	}

	cfg := core.Config{
		Kind:         inferMapperKind(romPath),
		VideoKind:    inferVideoKind(c.String("kind"), romPath),
		TVSystem:     tv,
		SampleRateHz: 44100,
		BufferSize:   1024,
		Frequency:    cpuFrequency(tv),
	}

	emu, err := core.NewFromBytes(filepath.Base(romPath), raw, cfg)
	if err != nil {
		return fmt.Errorf("building emulator: %w", err)
	}

	if c.Bool("trace") {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		emu.CPU().SetInbox(traceInbox{})
	}

	if loadPath := c.String("load-state"); loadPath != "" {
		data, err := os.ReadFile(loadPath)
		if err != nil {
			return fmt.Errorf("reading save state: %w", err)
		}
		if err := emu.LoadState(data); err != nil {
			return fmt.Errorf("loading save state: %w", err)
		}
		slog.Info("loaded save state", "path", loadPath)
	}

	savePath := c.String("save-state")
	defer func() {
		if savePath == "" {
			return
		}
		if err := saveState(emu, savePath); err != nil {
			slog.Error("failed to write save state", "path", savePath, "error", err)
		} else {
			slog.Info("wrote save state", "path", savePath)
		}
	}()

	if c.Bool("headless") {
		frames := c.Int("frames")
		if frames <= 0 {
			return errors.New("headless mode requires --frames with a positive value")
		}
		return runHeadless(emu, frames)
	}

	switch c.String("backend") {
	case "sdl2":
		return runSDL2(emu)
	case "terminal":
		return runTerminal(emu)
	default:
		return fmt.Errorf("unknown --backend value %q (want sdl2 or terminal)", c.String("backend"))
	}
}

func parseTVSystem(s string) (video.TVSystem, error) {
	switch strings.ToLower(s) {
	case "ntsc", "":
		return video.NTSC, nil
	case "pal":
		return video.PAL, nil
	default:
		return video.NTSC, fmt.Errorf("unknown --tv value %q (want ntsc or pal)", s)
	}
}

func cpuFrequency(tv video.TVSystem) float64 {
	if tv == video.PAL {
		return timing.CPUFrequencyPAL
	}
	return timing.CPUFrequencyNTSC
}

// inferVideoKind resolves the --kind flag, falling back to the ROM's file
// extension (.gg is a Game Gear image; anything else is treated as SMS2,
// the more capable of the two Master System VDP revisions).
func inferVideoKind(kind, romPath string) video.Kind {
	switch strings.ToLower(kind) {
	case "sms":
		return video.KindSMS
	case "sms2":
		return video.KindSMS2
	case "gg":
		return video.KindGG
	}

	if strings.EqualFold(filepath.Ext(romPath), ".gg") {
		return video.KindGG
	}
	return video.KindSMS2
}

// inferMapperKind defaults to the Sega mapper, the vast majority of
// SMS/GG cartridges; ".sg" images are assumed SG-1000. memory.Kind's own
// doc comment notes there is no reliable universal auto-detection across
// all three mapper families, so Codemasters carts aren't distinguishable
// by extension alone and fall back to the Sega default.
func inferMapperKind(romPath string) memory.Kind {
	if strings.EqualFold(filepath.Ext(romPath), ".sg") {
		return memory.KindSG1000
	}
	return memory.KindSega
}

func runHeadless(emu *core.Emulator, frames int) error {
	pixels := headless.New(headless.SnapshotConfig{})
	audioOut := headless.New(headless.SnapshotConfig{})
	clock := sink.NoOpClockSource{}

	for i := 0; i < frames; i++ {
		if err := emu.RunFrame(input.PlayerInput{}, pixels, audioOut, clock); err != nil {
			return fmt.Errorf("frame %d: %w", i+1, err)
		}
		if (i+1)%60 == 0 {
			slog.Info("frame progress", "completed", i+1, "total", frames)
		}
	}

	slog.Info("headless run completed", "frames", emu.FrameCount())
	return nil
}

func runSDL2(emu *core.Emulator) error {
	backend, err := sdl2.New(fmt.Sprintf("smsemu - %s", emu.ROM().Name()))
	if err != nil {
		return err
	}
	defer backend.Close()

	if err := backend.Configure(44100, 1024); err != nil {
		return fmt.Errorf("configuring audio: %w", err)
	}
	if err := backend.Play(); err != nil {
		return fmt.Errorf("starting audio: %w", err)
	}

	return runUntilInterrupted(emu, backend, backend)
}

func runTerminal(emu *core.Emulator) error {
	backend, err := terminal.New()
	if err != nil {
		return err
	}
	defer backend.Close()

	audioOut := headless.New(headless.SnapshotConfig{})
	return runUntilInterrupted(emu, backend, audioOut)
}

// runUntilInterrupted drives RunFrame at the system's native frame rate
// until SIGINT/SIGTERM. Neither the sdl2 nor terminal sink exposes
// input-event polling: core/backend's window/keyboard handling is a
// non-goal (SPEC_FULL.md 15), since the core only consumes PlayerInput
// values, wherever a host chooses to source them from.
func runUntilInterrupted(emu *core.Emulator, pixels sink.PixelSink, audioOut sink.AudioSink) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	clock := timing.NewAdaptiveClock()
	for {
		select {
		case <-stop:
			return nil
		default:
		}

		if err := emu.RunFrame(input.PlayerInput{}, pixels, audioOut, clock); err != nil {
			var abort *core.RuntimeAbort
			if errors.As(err, &abort) {
				slog.Warn("emulation aborted", "kind", abort.Kind)
				return nil
			}
			return err
		}
	}
}

func saveState(emu *core.Emulator, path string) error {
	data, err := emu.SaveState()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// traceInbox dumps every CPU memo to stderr via slog, per --trace.
type traceInbox struct{}

func (traceInbox) Notify(memo cpu.Memo) {
	switch m := memo.(type) {
	case cpu.InstructionMemo:
		slog.Debug("instruction", "pc", fmt.Sprintf("$%04X", m.PC), "opcode", fmt.Sprintf("% X", m.Opcode))
	case cpu.MaskableInterruptMemo:
		slog.Debug("maskable interrupt", "mode", m.Mode, "data", fmt.Sprintf("$%02X", m.Data))
	case cpu.NonmaskableInterruptMemo:
		slog.Debug("nonmaskable interrupt")
	case cpu.AbortMemo:
		slog.Warn("cpu abort", "kind", m.Kind)
	}
}

var _ cpu.Inbox = traceInbox{}
