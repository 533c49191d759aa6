//go:build sdl2

// Package sdl2 implements core/sink.PixelSink and core/sink.AudioSink over
// go-sdl2: a streaming texture for pixels, a queued audio device for
// samples. Building it requires the SDL2 development libraries; the
// default build instead links stub.go, which reports the backend as
// unavailable (see the `sdl2` build tag).
package sdl2

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/sms-core/smsemu/core/display"
	"github.com/sms-core/smsemu/core/sink"
)

// Sink owns an SDL window, renderer, streaming texture, and (optionally) an
// open audio device.
type Sink struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture

	width, height int
	pixelBuffer   []byte

	audioDevice sdl.AudioDeviceID
	buf         []int16
}

// New creates a window+renderer, sized for the host's default scale; call
// SetResolution once the emulated system's frame size is known to size the
// backing texture.
func New(title string) (*Sink, error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS | sdl.INIT_AUDIO); err != nil {
		return nil, fmt.Errorf("sdl2: init: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		display.DefaultWindowWidth, display.DefaultWindowHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdl2: create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		window.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdl2: create renderer: %w", err)
	}

	return &Sink{window: window, renderer: renderer}, nil
}

func (s *Sink) SetResolution(w, h int) error {
	if s.texture != nil {
		s.texture.Destroy()
	}
	texture, err := s.renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		return fmt.Errorf("sdl2: create texture: %w", err)
	}
	s.texture = texture
	s.width, s.height = w, h
	s.pixelBuffer = make([]byte, w*h*display.RGBABytesPerPixel)
	return nil
}

func (s *Sink) Paint(x, y int, c sink.RGB) error {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return fmt.Errorf("sdl2: pixel (%d,%d) outside %dx%d frame", x, y, s.width, s.height)
	}
	idx := (y*s.width + x) * display.RGBABytesPerPixel
	s.pixelBuffer[idx] = display.FullAlpha
	s.pixelBuffer[idx+1] = c.B
	s.pixelBuffer[idx+2] = c.G
	s.pixelBuffer[idx+3] = c.R
	return nil
}

func (s *Sink) Present() error {
	if s.texture == nil {
		return nil
	}
	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixelBuffer[0]), s.width*display.RGBABytesPerPixel); err != nil {
		return fmt.Errorf("sdl2: update texture: %w", err)
	}
	s.renderer.SetDrawColor(display.GrayscaleBlack, display.GrayscaleBlack, display.GrayscaleBlack, display.FullAlpha)
	s.renderer.Clear()
	s.renderer.Copy(s.texture, nil, nil)
	s.renderer.Present()
	return nil
}

// Configure opens the audio device at the given rate; bufferSizeSamples is
// advisory (SDL picks its own internal sample count).
func (s *Sink) Configure(sampleRateHz, bufferSizeSamples int) error {
	spec := &sdl.AudioSpec{Freq: int32(sampleRateHz), Format: sdl.AUDIO_S16LSB, Channels: 1, Samples: uint16(bufferSizeSamples)}
	obtained := &sdl.AudioSpec{}
	dev, err := sdl.OpenAudioDevice("", false, spec, obtained, 0)
	if err != nil {
		return fmt.Errorf("sdl2: open audio device: %w", err)
	}
	s.audioDevice = dev
	s.buf = make([]int16, bufferSizeSamples)
	return nil
}

func (s *Sink) Play() error {
	sdl.PauseAudioDevice(s.audioDevice, false)
	return nil
}

func (s *Sink) Pause() error {
	sdl.PauseAudioDevice(s.audioDevice, true)
	return nil
}

func (s *Sink) Buffer() []int16 { return s.buf }

func (s *Sink) QueueBuffer() error {
	bytes := (*[1 << 30]byte)(unsafe.Pointer(&s.buf[0]))[: len(s.buf)*2 : len(s.buf)*2]
	if err := sdl.QueueAudio(s.audioDevice, bytes); err != nil {
		return fmt.Errorf("sdl2: queue audio: %w", err)
	}
	return nil
}

// Close releases all SDL resources.
func (s *Sink) Close() error {
	if s.audioDevice != 0 {
		sdl.CloseAudioDevice(s.audioDevice)
	}
	if s.texture != nil {
		s.texture.Destroy()
	}
	s.renderer.Destroy()
	s.window.Destroy()
	sdl.Quit()
	return nil
}

var (
	_ sink.PixelSink = (*Sink)(nil)
	_ sink.AudioSink = (*Sink)(nil)
)

func init() {
	slog.Debug("sdl2 backend linked")
}
