package screen

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceshooter/shooter"
	"github.com/stretchr/testify/assert"
)

type fakeKeys struct {
	held  map[ebiten.Key]bool
	fresh map[ebiten.Key]bool
}

func (k fakeKeys) IsKeyPressed(key ebiten.Key) bool { return k.held[key] }

func (k fakeKeys) IsKeyJustPressed(key ebiten.Key) bool { return k.fresh[key] }

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		keys fakeKeys
		want shooter.Input
	}{
		{"nothing", fakeKeys{}, shooter.Input{}},
		{
			"arrows and fire",
			fakeKeys{held: map[ebiten.Key]bool{ebiten.KeyArrowLeft: true, ebiten.KeyArrowUp: true, ebiten.KeyZ: true}},
			shooter.Input{Left: true, Up: true, Fire: true},
		},
		{
			"held space does not reset",
			fakeKeys{held: map[ebiten.Key]bool{ebiten.KeySpace: true}},
			shooter.Input{},
		},
		{
			"fresh space resets",
			fakeKeys{held: map[ebiten.Key]bool{ebiten.KeySpace: true}, fresh: map[ebiten.Key]bool{ebiten.KeySpace: true}},
			shooter.Input{Reset: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReadInput(tt.keys))
		})
	}
}

func TestQuitRequested(t *testing.T) {
	assert.False(t, QuitRequested(fakeKeys{}))
	assert.True(t, QuitRequested(fakeKeys{held: map[ebiten.Key]bool{ebiten.KeyEscape: true}}))
	assert.True(t, QuitRequested(fakeKeys{held: map[ebiten.Key]bool{ebiten.KeyQ: true}}))
}

func TestToScreen(t *testing.T) {
	x, y := ToScreen(shooter.Vec2{}, 640, 480)
	assert.Equal(t, float32(320), x)
	assert.Equal(t, float32(240), y)

	x, y = ToScreen(shooter.Vec2{X: -320, Y: 240}, 640, 480)
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestSpriteRectIsCentred(t *testing.T) {
	transform := &shooter.Transform{Position: shooter.Vec2{X: 10, Y: 20}}
	sprite := &shooter.Sprite{Width: 30, Height: 40}

	x, y, w, h := spriteRect(transform, sprite, 640, 480)
	assert.Equal(t, float32(315), x)
	assert.Equal(t, float32(200), y)
	assert.Equal(t, float32(30), w)
	assert.Equal(t, float32(40), h)
}

func TestLayerStars(t *testing.T) {
	first := layerStars(0, 640, 480)
	assert.Len(t, first, starsPerLayer)
	assert.Equal(t, first, layerStars(0, 640, 480))
	assert.NotEqual(t, first, layerStars(1, 640, 480))

	for _, star := range first {
		assert.GreaterOrEqual(t, star.X, float32(0))
		assert.Less(t, star.X, float32(640))
		assert.GreaterOrEqual(t, star.Y, float32(0))
		assert.Less(t, star.Y, float32(480))
	}
}

func TestScrolledYWraps(t *testing.T) {
	assert.InDelta(t, 110, scrolledY(100, 10, 480), 1e-4)
	assert.InDelta(t, 10, scrolledY(470, 20, 480), 1e-4)
}

func TestScoreLine(t *testing.T) {
	assert.Equal(t, "SCORE 300  KILLS 3  BEST 900", ScoreLine(shooter.Score{Points: 300, Kills: 3, Best: 900}))
}

func TestCentredText(t *testing.T) {
	x, y := centredText("Game Over", 640, 480)
	assert.Equal(t, 320-27, x)
	assert.Equal(t, 224, y)
}
