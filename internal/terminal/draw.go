package terminal

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
	"github.com/plus3/spaceshooter/shooter"
)

// Display is the terminal screen, kept as a singleton for DrawSystem.
type Display struct {
	Screen tcell.Screen
}

// Grid maps the centred, y-up world onto a Cols x Rows character grid.
type Grid struct {
	Width, Height float32
	Cols, Rows    int
}

func (g Grid) cellWidth() float32  { return g.Width / float32(g.Cols) }
func (g Grid) cellHeight() float32 { return g.Height / float32(g.Rows) }

// Cell returns the cell under world position p.
func (g Grid) Cell(p shooter.Vec2) (int, int) {
	x := (p.X + g.Width/2) / g.cellWidth()
	y := (g.Height/2 - p.Y) / g.cellHeight()
	return int(math.Floor(float64(x))), int(math.Floor(float64(y)))
}

// Span returns the cells covered by a w x h box centred on p, clamped to the
// grid. A box smaller than a cell still covers the cell under its centre.
func (g Grid) Span(p shooter.Vec2, w, h float32) (x0, y0, x1, y1 int) {
	x0, y0 = g.Cell(shooter.Vec2{X: p.X - w/2, Y: p.Y + h/2})
	x1, y1 = g.Cell(shooter.Vec2{X: p.X + w/2, Y: p.Y - h/2})
	cx, cy := g.Cell(p)
	x0, y0 = min(x0, cx), min(y0, cy)
	x1, y1 = max(x1, cx), max(y1, cy)
	return max(x0, 0), max(y0, 0), min(x1, g.Cols-1), min(y1, g.Rows-1)
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

type spriteView struct {
	*shooter.Transform
	*shooter.Sprite
	Ship       *shooter.SpaceShip     `ecs:"optional"`
	Pumper     *shooter.Pumper        `ecs:"optional"`
	Bullet     *shooter.Bullet        `ecs:"optional"`
	Foe        *shooter.Foe           `ecs:"optional"`
	Projectile *shooter.FoeProjectile `ecs:"optional"`
}

func (v spriteView) glyph() rune {
	switch {
	case v.Ship != nil:
		switch v.Sprite.Frame {
		case shooter.FrameLeft:
			return '<'
		case shooter.FrameRight:
			return '>'
		}
		return 'A'
	case v.Pumper != nil:
		if v.Sprite.Frame%2 == 0 {
			return '*'
		}
		return '+'
	case v.Bullet != nil:
		return '|'
	case v.Foe != nil:
		return 'W'
	case v.Projectile != nil:
		return 'o'
	}
	return '#'
}

// DrawSystem draws the whole frame: stars, sprites and the HUD line.
type DrawSystem struct {
	Layers  ecs.Query[struct{ *shooter.ParallaxLayer }]
	Sprites ecs.Query[spriteView]
	Banners ecs.Query[struct{ *shooter.GameBanner }]
	Score   ecs.Singleton[shooter.Score]
	Config  ecs.Singleton[config.Config]
	Display ecs.Singleton[Display]
}

func (s *DrawSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Display.Get().Screen
	cfg := s.Config.Get()
	cols, rows := screen.Size()
	if cols == 0 || rows == 0 {
		return
	}
	grid := Grid{Width: cfg.Window.Width, Height: cfg.Window.Height, Cols: cols, Rows: rows}

	screen.Clear()

	for layer := range s.Layers.Values() {
		drawStars(screen, grid, layer.ParallaxLayer, cfg.Background.TileHeight)
	}

	for sprite := range s.Sprites.Values() {
		if sprite.Sprite.Width == 0 || sprite.Sprite.Height == 0 {
			continue
		}
		style := tcell.StyleDefault.Foreground(rgb(sprite.Sprite.Color))
		glyph := sprite.glyph()
		x0, y0, x1, y1 := grid.Span(sprite.Transform.Position, sprite.Sprite.Width, sprite.Sprite.Height)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				screen.SetContent(x, y, glyph, nil, style)
			}
		}
	}

	hud := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	drawText(screen, 0, 0, scoreLine(*s.Score.Get()), hud)

	row := rows/2 - 1
	for banner := range s.Banners.Values() {
		for _, text := range []string{banner.GameBanner.Text, "Press Space to play again"} {
			drawText(screen, (cols-len(text))/2, row, text, hud.Foreground(rgb(shooter.BannerColor)).Bold(true))
			row++
		}
	}

	screen.Show()
}

// starColumns picks the columns of one layer's stars. Deeper layers are
// denser.
func starColumns(depth, cols int) []int {
	step := max(7-2*depth, 2)
	var out []int
	for x := (depth * 3) % step; x < cols; x += step {
		out = append(out, x)
	}
	return out
}

func drawStars(screen tcell.Screen, grid Grid, layer *shooter.ParallaxLayer, tileHeight float32) {
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	glyph := '.'
	if layer.Depth > 0 {
		style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	}

	shift := int(layer.Offset / tileHeight * float32(grid.Rows))
	for i, x := range starColumns(layer.Depth, grid.Cols) {
		y := ((i*11+layer.Depth*5)%grid.Rows + shift) % grid.Rows
		screen.SetContent(x, y, glyph, nil, style)
	}
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
