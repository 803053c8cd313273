// Package terminal runs a shooter.World in a terminal through tcell.
package terminal

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/shooter"
)

// FrameInterval is the redraw period, about 60 frames a second.
const FrameInterval = 16 * time.Millisecond

type Game struct {
	world  *shooter.World
	screen tcell.Screen
	keys   *HeldKeys
	render *ecs.Scheduler
}

// New wraps world for an initialised screen. The caller owns the screen and
// calls Fini on it.
func New(world *shooter.World, screen tcell.Screen) *Game {
	storage := world.Storage()
	ecs.NewSingleton(storage, Display{Screen: screen})

	g := &Game{
		world:  world,
		screen: screen,
		keys:   NewHeldKeys(DefaultHold),
		render: ecs.NewScheduler(storage),
	}
	g.render.Register(&DrawSystem{})
	return g
}

// Open creates and initialises the terminal screen.
func Open() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	return screen, nil
}

// Run pumps terminal events and advances the world on a ticker until the
// player quits or ctx is cancelled.
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)

	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	last := time.Now()
	g.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if g.handle(ev, time.Now()) {
				log.Printf("[Terminal] quit requested")
				return nil
			}

		case now := <-ticker.C:
			g.Frame(now.Sub(last).Seconds(), now)
			last = now
		}
	}
}

func (g *Game) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return g.keys.Press(ev, now)
	case *tcell.EventResize:
		g.screen.Sync()
	}
	return false
}

// Frame feeds the keys held at now to the world, advances it by elapsed
// seconds and redraws.
func (g *Game) Frame(elapsed float64, now time.Time) {
	g.world.SetInput(g.keys.Input(now))
	g.world.Update(elapsed)
	g.Draw()
}

func (g *Game) Draw() {
	g.render.Once(0)
}

func scoreLine(score shooter.Score) string {
	return fmt.Sprintf("SCORE %d  KILLS %d  BEST %d", score.Points, score.Kills, score.Best)
}
