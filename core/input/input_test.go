package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortA_NoButtonsHeldReadsAllOnes(t *testing.T) {
	s := New()
	s.BeginFrame(PlayerInput{})

	assert.Equal(t, uint8(0xFF), s.PortA())
}

func TestPortA_ClearsBitsForHeldButtons(t *testing.T) {
	s := New()
	s.BeginFrame(PlayerInput{Controller1: uint8(Up) | uint8(ButtonA)})

	got := s.PortA()
	assert.Equal(t, uint8(0), got&(1<<0), "Up held clears bit 0")
	assert.Equal(t, uint8(0), got&(1<<4), "A held clears bit 4")
	assert.NotEqual(t, uint8(0), got&(1<<1), "Down not held leaves bit 1 set")
}

func TestPortB_ResetClearsBitFour(t *testing.T) {
	s := New()
	s.BeginFrame(PlayerInput{Reset: true})

	assert.Equal(t, uint8(0), s.PortB()&(1<<4))
}

func TestPause_RisingEdgeArmsNMIOnce(t *testing.T) {
	s := New()

	s.BeginFrame(PlayerInput{Pause: false})
	assert.False(t, s.NMIAsserted())

	s.BeginFrame(PlayerInput{Pause: true})
	assert.True(t, s.NMIAsserted())

	s.AckNMI()
	assert.False(t, s.NMIAsserted())

	s.BeginFrame(PlayerInput{Pause: true})
	assert.False(t, s.NMIAsserted(), "held, not re-pressed: no new edge")
}

func TestPause_ReleaseThenPressAgainRearms(t *testing.T) {
	s := New()
	s.BeginFrame(PlayerInput{Pause: true})
	s.AckNMI()

	s.BeginFrame(PlayerInput{Pause: false})
	s.BeginFrame(PlayerInput{Pause: true})

	assert.True(t, s.NMIAsserted())
}
