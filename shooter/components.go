// Package shooter is the simulation of a small arcade space shooter: a ship
// that moves and fires, foes that drop in from the top and fire back, and a
// Playing / GameOver flow, all expressed as ECS systems.
//
// Coordinates are centred on the window with y pointing up.
package shooter

import (
	"image/color"
	"math/rand/v2"

	"github.com/plus3/spaceshooter/ecs"
)

type Vec2 struct {
	X, Y float32
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Scale(f float32) Vec2 { return Vec2{v.X * f, v.Y * f} }

// Transform places an entity. Scale is also its collision box.
type Transform struct {
	Position Vec2
	Scale    Vec2
}

type Speed float32

type Direction Vec2

type Health int

type Damage int

type ShootingDelay struct {
	Timer Timer
}

type SpaceShip struct{}

// Pumper is the engine flame drawn under the ship.
type Pumper struct{}

type Bullet struct{}

type Foe struct{}

type FoeProjectile struct{}

type GameBanner struct {
	Text string
}

// Sprite is what the frontends draw: a rectangle of Width x Height centred on
// the Transform, and a frame index for animated or swerving entities.
type Sprite struct {
	Color  color.RGBA
	Width  float32
	Height float32
	Frame  int
}

type AnimationIndices struct {
	First, Last int
}

type AnimationTimer struct {
	Timer Timer
}

// Attachment pins an entity to Parent at Offset. Steer is added along the
// axes the player is currently pushing: -X for left, +X for right, +Y for up
// and -Y for down.
type Attachment struct {
	Parent *ecs.EntityRef
	Offset Vec2
	Steer  Vec2
}

// ParallaxLayer scrolls a background layer. Speed is the fraction of the
// camera motion the layer follows; Offset wraps at the tile height.
type ParallaxLayer struct {
	Speed  float32
	Offset float32
	Depth  int
}

type GameState int

const (
	Playing GameState = iota
	GameOver
)

func (s GameState) String() string {
	switch s {
	case Playing:
		return "Playing"
	case GameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Input is the player's intent for the current frame. Reset is edge
// triggered: it is cleared at the end of every World.Update.
type Input struct {
	Left, Right, Up, Down bool
	Fire                  bool
	Reset                 bool
}

type Score struct {
	Points int
	Kills  int
	Best   int
}

type FoeSpawnDelay struct {
	Timer Timer
}

// Rng is the random source for foe placement.
type Rng struct {
	*rand.Rand
}

func NewRng(seed uint64) Rng {
	return Rng{rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

var (
	ShipColor       = color.RGBA{R: 0x9b, G: 0x8c, B: 0xff, A: 0xff}
	PumperColor     = color.RGBA{R: 0xff, G: 0xc8, B: 0x3c, A: 0xff}
	BulletColor     = color.RGBA{R: 0xff, G: 0xa5, B: 0x00, A: 0xff}
	FoeColor        = color.RGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}
	ProjectileColor = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 0xff}
	BannerColor     = color.RGBA{R: 0x80, G: 0x00, B: 0x80, A: 0xff}
)

// NewRegistry registers every component the simulation spawns.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Transform](registry)
	ecs.RegisterComponent[Speed](registry)
	ecs.RegisterComponent[Direction](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Damage](registry)
	ecs.RegisterComponent[ShootingDelay](registry)
	ecs.RegisterComponent[SpaceShip](registry)
	ecs.RegisterComponent[Pumper](registry)
	ecs.RegisterComponent[Bullet](registry)
	ecs.RegisterComponent[Foe](registry)
	ecs.RegisterComponent[FoeProjectile](registry)
	ecs.RegisterComponent[GameBanner](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[AnimationIndices](registry)
	ecs.RegisterComponent[AnimationTimer](registry)
	ecs.RegisterComponent[Attachment](registry)
	ecs.RegisterComponent[ParallaxLayer](registry)
	return registry
}
