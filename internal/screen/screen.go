// Package screen runs a shooter.World in an ebiten window. Drawing is done by
// ECS systems scheduled once per Draw on the world's own storage.
package screen

import (
	"fmt"
	"log"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/ecs/debugui"
	debugui_ebiten "github.com/plus3/spaceshooter/ecs/debugui/ebiten"
	"github.com/plus3/spaceshooter/shooter"
)

// Game implements ebiten.Game.
type Game struct {
	world  *shooter.World
	keys   KeySource
	render *ecs.Scheduler
	canvas *ecs.Singleton[Canvas]

	overlay *ecs.Scheduler
	backend *ecs.Singleton[debugui_ebiten.ImguiBackend]
	capture *ecs.Singleton[debugui.ImguiInputState]
}

type Option func(*Game)

// WithOverlay draws the Dear ImGui debug windows on top of the game.
func WithOverlay(backend debugui_ebiten.ImguiBackend) Option {
	return func(g *Game) {
		storage := g.world.Storage()
		g.backend = ecs.NewSingleton(storage, backend)

		sim, frame := g.world.Schedulers()
		debugui.SpawnDebugUI(storage,
			debugui.Scheduled{Name: "Simulation", Scheduler: sim},
			debugui.Scheduled{Name: "Frame", Scheduler: frame},
			debugui.Scheduled{Name: "Render", Scheduler: g.render},
		)
		storage.Spawn(debugui.ImguiItem{Render: g.renderGameWindow})
		g.capture = ecs.NewSingleton[debugui.ImguiInputState](storage)

		g.overlay = ecs.NewScheduler(storage)
		g.overlay.Register(&debugui.ImguiSystem{})
		g.overlay.Register(&debugui.WindowSystem{})
	}
}

// WithKeys replaces the keyboard, mostly for tests.
func WithKeys(keys KeySource) Option {
	return func(g *Game) { g.keys = keys }
}

// New wraps world in a Game. The world's storage gains a Canvas singleton and
// the render systems.
func New(world *shooter.World, opts ...Option) *Game {
	storage := world.Storage()
	g := &Game{
		world:  world,
		keys:   Keyboard{},
		render: ecs.NewScheduler(storage),
		canvas: ecs.NewSingleton(storage, Canvas{}),
	}
	g.render.Register(&BackgroundSystem{})
	g.render.Register(&SpriteSystem{})
	g.render.Register(&HUDSystem{})

	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run() error {
	window := g.world.Config().Window
	ebiten.SetWindowSize(window.Size())
	ebiten.SetWindowTitle(window.Title)

	log.Printf("[Screen] running at %d TPS", ebiten.TPS())
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if QuitRequested(g.keys) {
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.backend.Get().BeginFrame()
	}

	input := ReadInput(g.keys)
	if g.capture != nil && g.capture.Get().WantCaptureKeyboard {
		input = shooter.Input{}
	}
	g.world.SetInput(input)
	g.world.Update(1.0 / float64(ebiten.TPS()))

	if g.overlay != nil {
		g.overlay.Once(1.0 / float64(ebiten.TPS()))
		g.backend.Get().EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Get().Image = screen
	g.render.Once(0)

	if g.overlay != nil {
		g.backend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	width, height := g.world.Config().Window.Size()
	if g.overlay != nil {
		g.backend.Get().Layout(width, height)
	}
	return width, height
}

func (g *Game) renderGameWindow() {
	if !imgui.BeginV("Game", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}
	defer imgui.End()

	score := g.world.Score()
	input := g.world.Input()
	storage := g.world.Storage()

	imgui.Text(fmt.Sprintf("State: %s", g.world.State()))
	imgui.Text(ScoreLine(score))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Foes: %d", storage.CountEntities(shooter.Foe{})))
	imgui.Text(fmt.Sprintf("Bullets: %d", storage.CountEntities(shooter.Bullet{})))
	imgui.Text(fmt.Sprintf("Projectiles: %d", storage.CountEntities(shooter.FoeProjectile{})))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Input: %+v", input))
}
