package terminal

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/spaceshooter/internal/config"
	"github.com/plus3/spaceshooter/shooter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGame(t *testing.T) (*Game, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	cfg := config.Default()
	cfg.Simulation.Seed = 1
	return New(shooter.NewWorld(cfg), screen), screen
}

func runeAt(screen tcell.SimulationScreen, x, y int) rune {
	mainc, _, _, _ := screen.GetContent(x, y)
	return mainc
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func char(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestHeldKeysExpire(t *testing.T) {
	start := time.Unix(0, 0)
	keys := NewHeldKeys(150 * time.Millisecond)

	assert.False(t, keys.Press(key(tcell.KeyLeft), start))
	assert.False(t, keys.Press(char('z'), start))

	input := keys.Input(start.Add(100 * time.Millisecond))
	assert.True(t, input.Left)
	assert.True(t, input.Fire)
	assert.False(t, input.Right)

	assert.Equal(t, shooter.Input{}, keys.Input(start.Add(200*time.Millisecond)))
}

func TestHeldKeysRepeatExtendsHold(t *testing.T) {
	start := time.Unix(0, 0)
	keys := NewHeldKeys(150 * time.Millisecond)

	keys.Press(key(tcell.KeyUp), start)
	keys.Press(key(tcell.KeyUp), start.Add(100*time.Millisecond))
	assert.True(t, keys.Input(start.Add(200*time.Millisecond)).Up)
}

func TestHeldKeysResetIsReportedOnce(t *testing.T) {
	now := time.Unix(0, 0)
	keys := NewHeldKeys(DefaultHold)

	keys.Press(char(' '), now)
	assert.True(t, keys.Input(now).Reset)
	assert.False(t, keys.Input(now).Reset)
}

func TestHeldKeysQuit(t *testing.T) {
	now := time.Unix(0, 0)
	keys := NewHeldKeys(DefaultHold)

	assert.True(t, keys.Press(key(tcell.KeyEscape), now))
	assert.True(t, keys.Press(key(tcell.KeyCtrlC), now))
	assert.True(t, keys.Press(char('q'), now))
	assert.False(t, keys.Press(char('x'), now))
}

func TestGridCell(t *testing.T) {
	grid := Grid{Width: 640, Height: 480, Cols: 80, Rows: 24}

	tests := []struct {
		name string
		at   shooter.Vec2
		x, y int
	}{
		{"centre", shooter.Vec2{}, 40, 12},
		{"top left", shooter.Vec2{X: -320, Y: 240}, 0, 0},
		{"just inside bottom right", shooter.Vec2{X: 319, Y: -239}, 79, 23},
		{"left of centre", shooter.Vec2{X: -1, Y: 1}, 39, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := grid.Cell(tt.at)
			assert.Equal(t, tt.x, x)
			assert.Equal(t, tt.y, y)
		})
	}
}

func TestGridSpan(t *testing.T) {
	grid := Grid{Width: 640, Height: 480, Cols: 80, Rows: 24}

	x0, y0, x1, y1 := grid.Span(shooter.Vec2{}, 47, 45)
	assert.Equal(t, []int{37, 10, 42, 13}, []int{x0, y0, x1, y1})

	x0, y0, x1, y1 = grid.Span(shooter.Vec2{X: 4, Y: 5}, 1, 1)
	assert.Equal(t, []int{40, 11, 40, 11}, []int{x0, y0, x1, y1})

	x0, y0, x1, y1 = grid.Span(shooter.Vec2{X: -320, Y: 240}, 40, 40)
	assert.Equal(t, []int{0, 0, 2, 1}, []int{x0, y0, x1, y1})
}

func TestStarColumnsStayOnScreen(t *testing.T) {
	for depth := range 3 {
		cols := starColumns(depth, 80)
		assert.NotEmpty(t, cols)
		for _, x := range cols {
			assert.GreaterOrEqual(t, x, 0)
			assert.Less(t, x, 80)
		}
	}
	assert.Greater(t, len(starColumns(1, 80)), len(starColumns(0, 80)))
}

func TestDrawShowsShipAndScore(t *testing.T) {
	game, screen := newTestGame(t)
	game.Draw()

	assert.Equal(t, 'A', runeAt(screen, 40, 12))
	assert.Equal(t, 'S', runeAt(screen, 0, 0))
}

func TestFrameMovesShip(t *testing.T) {
	game, screen := newTestGame(t)
	now := time.Unix(0, 0)

	game.keys.Press(key(tcell.KeyRight), now)
	game.Frame(4.0/64.0, now)

	assert.Equal(t, '>', runeAt(screen, 44, 12))
	assert.Equal(t, ' ', runeAt(screen, 38, 12))
}

func TestRunStopsOnQuitKey(t *testing.T) {
	game, screen := newTestGame(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	assert.NoError(t, game.Run(ctx))
}

func TestRunStopsOnCancel(t *testing.T) {
	game, _ := newTestGame(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, game.Run(ctx), context.Canceled)
}
