//go:build !sdl2

package sdl2

import (
	"fmt"

	"github.com/sms-core/smsemu/core/sink"
)

// Sink is a stub used when the binary is built without SDL2 development
// libraries available (build with -tags sdl2 to link the real backend).
type Sink struct{}

func New(title string) (*Sink, error) {
	return nil, fmt.Errorf("sdl2 backend not available: build with -tags sdl2")
}

func (s *Sink) SetResolution(w, h int) error             { return fmt.Errorf("sdl2 backend not available") }
func (s *Sink) Paint(x, y int, c sink.RGB) error          { return fmt.Errorf("sdl2 backend not available") }
func (s *Sink) Present() error                            { return fmt.Errorf("sdl2 backend not available") }
func (s *Sink) Configure(rate, bufferSize int) error      { return fmt.Errorf("sdl2 backend not available") }
func (s *Sink) Play() error                               { return fmt.Errorf("sdl2 backend not available") }
func (s *Sink) Pause() error                              { return fmt.Errorf("sdl2 backend not available") }
func (s *Sink) Buffer() []int16                           { return nil }
func (s *Sink) QueueBuffer() error                        { return fmt.Errorf("sdl2 backend not available") }
func (s *Sink) Close() error                              { return nil }

var (
	_ sink.PixelSink = (*Sink)(nil)
	_ sink.AudioSink = (*Sink)(nil)
)
