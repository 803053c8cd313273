package shooter

import (
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
)

// PointsPerFoe is added to the score for every foe destroyed.
const PointsPerFoe = 100

type FoeSpawnSystem struct {
	Delay  ecs.Singleton[FoeSpawnDelay]
	Rng    ecs.Singleton[Rng]
	Config ecs.Singleton[config.Config]
}

func (s *FoeSpawnSystem) Execute(frame *ecs.UpdateFrame) {
	if !s.Delay.Get().Timer.Tick(frame.DeltaTime) {
		return
	}

	cfg := s.Config.Get()
	half := max(cfg.Foe.Units/2-1, 0)
	unit := s.Rng.Get().IntN(2*half+1) - half

	at := Vec2{
		X: cfg.Foe.UnitWidth(cfg.Window.Width) * float32(unit),
		Y: cfg.Window.YBorder() + cfg.Foe.SpawnMargin,
	}
	frame.Commands.Spawn(foeBundle(cfg, at)...)
}

type foeMoveView struct {
	ecs.EntityId
	*Transform
	*Speed
	*Foe
}

type FoeMovementSystem struct {
	Foes   ecs.Query[foeMoveView]
	Config ecs.Singleton[config.Config]
}

func (s *FoeMovementSystem) Execute(frame *ecs.UpdateFrame) {
	cfg := s.Config.Get()
	bottom := -cfg.Window.YBorder() - cfg.Foe.DespawnMargin
	dt := float32(frame.DeltaTime)

	for foe := range s.Foes.Values() {
		foe.Transform.Position.Y -= float32(*foe.Speed) * dt
		if foe.Transform.Position.Y < bottom {
			frame.Commands.Delete(foe.EntityId)
		}
	}
}

type FoeShootingSystem struct {
	Foes ecs.Query[struct {
		*Transform
		*ShootingDelay
		*Foe
	}]
	Ship   ecs.Query[shipView]
	Config ecs.Singleton[config.Config]
}

func (s *FoeShootingSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Foes.Len() == 0 {
		return
	}
	_, ship, ok := s.Ship.First()
	if !ok {
		return
	}

	cfg := s.Config.Get()
	target := ship.Transform.Position
	for foe := range s.Foes.Values() {
		if !foe.ShootingDelay.Timer.Tick(frame.DeltaTime) {
			continue
		}
		from := foe.Transform.Position
		frame.Commands.Spawn(projectileBundle(cfg, from, Aim(from, target))...)
	}
}

type FoeProjectileSystem struct {
	Projectiles ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Direction
		*Speed
		*FoeProjectile
	}]
	Config ecs.Singleton[config.Config]
}

func (s *FoeProjectileSystem) Execute(frame *ecs.UpdateFrame) {
	window := s.Config.Get().Window
	dt := float32(frame.DeltaTime)

	for projectile := range s.Projectiles.Values() {
		pos := &projectile.Transform.Position
		if pos.Y < -window.YBorder() || pos.X < -window.XBorder() || pos.X > window.XBorder() {
			frame.Commands.Delete(projectile.EntityId)
		}

		step := float32(*projectile.Speed) * dt
		pos.X += projectile.Direction.X * step
		pos.Y += projectile.Direction.Y * step
	}
}

// FoeHitSystem applies bullet damage to foes. A bullet is spent on the first
// foe it overlaps.
type FoeHitSystem struct {
	Foes ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Health
		*Foe
	}]
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Damage
		*Bullet
	}]
	Score ecs.Singleton[Score]

	spent map[ecs.EntityId]struct{}
}

func (s *FoeHitSystem) Execute(frame *ecs.UpdateFrame) {
	if s.spent == nil {
		s.spent = make(map[ecs.EntityId]struct{})
	}
	clear(s.spent)

	score := s.Score.Get()
	for foe := range s.Foes.Values() {
		for bullet := range s.Bullets.Values() {
			if _, ok := s.spent[bullet.EntityId]; ok {
				continue
			}
			if !Overlaps(bullet.Transform, foe.Transform) {
				continue
			}
			s.spent[bullet.EntityId] = struct{}{}
			frame.Commands.Delete(bullet.EntityId)
			*foe.Health -= Health(*bullet.Damage)
		}

		if *foe.Health <= 0 {
			frame.Commands.Delete(foe.EntityId)
			score.Points += PointsPerFoe
			score.Kills++
		}
	}
}
