package screen

import (
	"fmt"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
	"github.com/plus3/spaceshooter/shooter"
)

const (
	starsPerLayer = 48
	// ebitenutil's debug font.
	glyphWidth  = 6
	glyphHeight = 16
)

var (
	spaceColor = color.RGBA{R: 0x05, G: 0x05, B: 0x12, A: 0xff}
	starColors = []color.RGBA{
		{R: 0x60, G: 0x60, B: 0x80, A: 0xff},
		{R: 0xc0, G: 0xc0, B: 0xe0, A: 0xff},
		{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
	cockpitColor = color.RGBA{R: 0x40, G: 0x30, B: 0xa0, A: 0xff}
)

// Canvas is the image of the current Draw call, kept as a singleton so render
// systems can reach it.
type Canvas struct {
	Image *ebiten.Image
}

// ToScreen maps a centred, y-up world position to pixel coordinates on a
// width x height screen.
func ToScreen(p shooter.Vec2, width, height float32) (float32, float32) {
	return p.X + width/2, height/2 - p.Y
}

// spriteRect returns the top-left corner and size of a sprite centred on t.
func spriteRect(t *shooter.Transform, s *shooter.Sprite, width, height float32) (x, y, w, h float32) {
	cx, cy := ToScreen(t.Position, width, height)
	return cx - s.Width/2, cy - s.Height/2, s.Width, s.Height
}

// layerStars scatters the stars of one parallax layer over a tile. The same
// depth always gives the same stars.
func layerStars(depth int, width, tileHeight float32) []shooter.Vec2 {
	rng := rand.New(rand.NewPCG(uint64(depth)+1, 0x5eed))
	stars := make([]shooter.Vec2, starsPerLayer)
	for i := range stars {
		stars[i] = shooter.Vec2{X: rng.Float32() * width, Y: rng.Float32() * tileHeight}
	}
	return stars
}

// scrolledY moves a star down by offset, wrapping inside the tile.
func scrolledY(y, offset, tileHeight float32) float32 {
	return float32(math.Mod(float64(y+offset), float64(tileHeight)))
}

// BackgroundSystem clears the canvas and draws one star field per parallax
// layer.
type BackgroundSystem struct {
	Layers ecs.Query[struct{ *shooter.ParallaxLayer }]
	Canvas ecs.Singleton[Canvas]
	Config ecs.Singleton[config.Config]

	stars map[int][]shooter.Vec2
}

func (s *BackgroundSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get().Image
	cfg := s.Config.Get()
	canvas.Fill(spaceColor)

	if s.stars == nil {
		s.stars = make(map[int][]shooter.Vec2)
	}

	width := cfg.Window.Width
	tile := cfg.Background.TileHeight
	for layer := range s.Layers.Values() {
		depth := layer.ParallaxLayer.Depth
		stars, ok := s.stars[depth]
		if !ok {
			stars = layerStars(depth, width, tile)
			s.stars[depth] = stars
		}

		c := starColors[min(depth, len(starColors)-1)]
		size := float32(1 + depth)
		for _, star := range stars {
			y := scrolledY(star.Y, layer.ParallaxLayer.Offset, tile)
			vector.DrawFilledRect(canvas, star.X, y, size, size, c, false)
		}
	}
}

// SpriteSystem draws every sprite as a filled rectangle. The ship gets a
// cockpit that leans with its bank frame.
type SpriteSystem struct {
	Sprites ecs.Query[struct {
		*shooter.Transform
		*shooter.Sprite
		Ship *shooter.SpaceShip `ecs:"optional"`
	}]
	Canvas ecs.Singleton[Canvas]
	Config ecs.Singleton[config.Config]
}

func (s *SpriteSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get().Image
	window := s.Config.Get().Window
	width, height := window.Width, window.Height

	for item := range s.Sprites.Values() {
		if item.Sprite.Width == 0 || item.Sprite.Height == 0 {
			continue
		}
		x, y, w, h := spriteRect(item.Transform, item.Sprite, width, height)
		vector.DrawFilledRect(canvas, x, y, w, h, item.Sprite.Color, false)

		if item.Ship != nil {
			lean := float32(item.Sprite.Frame-shooter.FrameLevel) * w / 6
			vector.DrawFilledRect(canvas, x+w/3+lean, y+h/6, w/3, h/3, cockpitColor, false)
		}
	}
}

// HUDSystem prints the score line and the game over banner.
type HUDSystem struct {
	Banners ecs.Query[struct{ *shooter.GameBanner }]
	Score   ecs.Singleton[shooter.Score]
	Canvas  ecs.Singleton[Canvas]
	Config  ecs.Singleton[config.Config]
}

func (s *HUDSystem) Execute(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get().Image
	width, height := s.Config.Get().Window.Size()
	score := s.Score.Get()

	ebitenutil.DebugPrintAt(canvas, ScoreLine(*score), 8, 8)

	line := 0
	for banner := range s.Banners.Values() {
		for _, text := range []string{banner.GameBanner.Text, "Press Space to play again"} {
			x, y := centredText(text, width, height)
			ebitenutil.DebugPrintAt(canvas, text, x, y+line*glyphHeight)
			line++
		}
	}
}

// ScoreLine is the HUD text for score.
func ScoreLine(score shooter.Score) string {
	return fmt.Sprintf("SCORE %d  KILLS %d  BEST %d", score.Points, score.Kills, score.Best)
}

func centredText(text string, width, height int) (int, int) {
	return width/2 - len(text)*glyphWidth/2, height/2 - glyphHeight
}
