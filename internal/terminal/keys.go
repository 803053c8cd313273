package terminal

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/spaceshooter/shooter"
)

// DefaultHold is how long a key counts as held after its last press or
// auto-repeat. Terminals report no key releases.
const DefaultHold = 150 * time.Millisecond

type action int

const (
	actionLeft action = iota
	actionRight
	actionUp
	actionDown
	actionFire
	actionCount
)

// HeldKeys turns the key presses of a terminal into held-key input.
type HeldKeys struct {
	hold  time.Duration
	last  [actionCount]time.Time
	reset bool
}

func NewHeldKeys(hold time.Duration) *HeldKeys {
	return &HeldKeys{hold: hold}
}

// Press records ev and reports whether it asks to quit.
func (h *HeldKeys) Press(ev *tcell.EventKey, now time.Time) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyLeft:
		h.last[actionLeft] = now
	case tcell.KeyRight:
		h.last[actionRight] = now
	case tcell.KeyUp:
		h.last[actionUp] = now
	case tcell.KeyDown:
		h.last[actionDown] = now
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'z', 'Z':
			h.last[actionFire] = now
		case ' ':
			h.reset = true
		}
	}
	return false
}

// Input returns the keys held at now. A reset press is reported once.
func (h *HeldKeys) Input(now time.Time) shooter.Input {
	input := shooter.Input{
		Left:  h.held(actionLeft, now),
		Right: h.held(actionRight, now),
		Up:    h.held(actionUp, now),
		Down:  h.held(actionDown, now),
		Fire:  h.held(actionFire, now),
		Reset: h.reset,
	}
	h.reset = false
	return input
}

func (h *HeldKeys) held(a action, now time.Time) bool {
	last := h.last[a]
	return !last.IsZero() && now.Sub(last) <= h.hold
}
