// Package terminal implements core/sink.PixelSink over a tcell character
// grid: each terminal cell draws two vertically-stacked emulated pixels as
// a half-block glyph, the same trick the teacher's Game Boy terminal
// renderer used, generalized to an arbitrary SetResolution size instead of
// a fixed Game Boy framebuffer.
package terminal

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/sms-core/smsemu/core/backend/terminal/render"
	"github.com/sms-core/smsemu/core/sink"
)

// Sink renders pixels to a tcell screen. It also hosts a LogBuffer so a
// frontend can mirror recent slog output into the same screen.
type Sink struct {
	screen tcell.Screen
	width  int
	height int
	frame  []sink.RGB

	LogBuffer *render.LogBuffer
}

// New opens a tcell screen. Call SetResolution before the first Paint.
func New() (*Sink, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: %w", err)
	}
	screen.Clear()
	return &Sink{screen: screen, LogBuffer: render.NewLogBuffer(100)}, nil
}

func (s *Sink) SetResolution(w, h int) error {
	s.width, s.height = w, h
	s.frame = make([]sink.RGB, w*h)
	return nil
}

func (s *Sink) Paint(x, y int, c sink.RGB) error {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return fmt.Errorf("terminal: pixel (%d,%d) outside %dx%d frame", x, y, s.width, s.height)
	}
	s.frame[y*s.width+x] = c
	return nil
}

// Present draws the accumulated frame as half-block glyphs: one terminal
// row covers two source pixel rows, foreground = top pixel, background =
// bottom pixel.
func (s *Sink) Present() error {
	if s.width == 0 || s.height == 0 {
		return nil
	}
	for row := 0; row*2 < s.height; row++ {
		top := row * 2
		bottom := top + 1
		for x := 0; x < s.width; x++ {
			tc := s.frame[top*s.width+x]
			var bc sink.RGB
			if bottom < s.height {
				bc = s.frame[bottom*s.width+x]
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(tc.R), int32(tc.G), int32(tc.B))).
				Background(tcell.NewRGBColor(int32(bc.R), int32(bc.G), int32(bc.B)))
			s.screen.SetContent(x, row, '▀', nil, style)
		}
	}
	s.screen.Show()
	return nil
}

// Close tears down the tcell screen.
func (s *Sink) Close() error {
	s.screen.Fini()
	return nil
}

var _ sink.PixelSink = (*Sink)(nil)
