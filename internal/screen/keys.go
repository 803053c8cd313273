package screen

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/spaceshooter/shooter"
)

// KeySource reports keyboard state. The ebiten implementation is Keyboard.
type KeySource interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
}

// Keyboard reads the real keyboard through ebiten and inpututil.
type Keyboard struct{}

func (Keyboard) IsKeyPressed(key ebiten.Key) bool { return ebiten.IsKeyPressed(key) }

func (Keyboard) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }

// ReadInput maps arrows to movement, Z to fire and a fresh Space press to
// reset.
func ReadInput(keys KeySource) shooter.Input {
	return shooter.Input{
		Left:  keys.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: keys.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    keys.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  keys.IsKeyPressed(ebiten.KeyArrowDown),
		Fire:  keys.IsKeyPressed(ebiten.KeyZ),
		Reset: keys.IsKeyJustPressed(ebiten.KeySpace),
	}
}

// QuitRequested reports whether Escape or Q is held.
func QuitRequested(keys KeySource) bool {
	return keys.IsKeyPressed(ebiten.KeyEscape) || keys.IsKeyPressed(ebiten.KeyQ)
}
