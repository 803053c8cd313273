package shooter

import (
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
)

type shipView struct {
	ecs.EntityId
	*Transform
	*SpaceShip
}

type pumperView struct {
	ecs.EntityId
	*Pumper
}

// despawnShip deletes the ship and every flame and ends the round.
func despawnShip(frame *ecs.UpdateFrame, ship ecs.EntityId, pumpers *ecs.Query[pumperView], state *ecs.State[GameState]) {
	frame.Commands.Delete(ship)
	for pumper := range pumpers.Values() {
		frame.Commands.Delete(pumper.EntityId)
	}
	state.Set(GameOver)
}

type ShipMovementSystem struct {
	Ship ecs.Query[struct {
		*Transform
		*Speed
		*SpaceShip
	}]
	Input  ecs.Singleton[Input]
	Config ecs.Singleton[config.Config]
}

func (s *ShipMovementSystem) Execute(frame *ecs.UpdateFrame) {
	_, ship, ok := s.Ship.First()
	if !ok {
		return
	}
	input := s.Input.Get()
	window := s.Config.Get().Window

	pos := &ship.Transform.Position
	var horizontal, vertical float32

	if input.Left && !(pos.X <= -window.XBorder()) {
		horizontal = -1
	} else if input.Right && !(pos.X >= window.XBorder()) {
		horizontal = 1
	}

	if input.Up && !(pos.Y >= window.YBorder()) {
		vertical = 1
	} else if input.Down && !(pos.Y <= -window.YBorder()) {
		vertical = -1
	}

	step := float32(*ship.Speed) * float32(frame.DeltaTime)
	pos.X += horizontal * step
	pos.Y += vertical * step
}

type ShipShootingSystem struct {
	Ship ecs.Query[struct {
		*Transform
		*ShootingDelay
		*SpaceShip
	}]
	Input  ecs.Singleton[Input]
	Config ecs.Singleton[config.Config]
}

func (s *ShipShootingSystem) Execute(frame *ecs.UpdateFrame) {
	_, ship, ok := s.Ship.First()
	if !ok || !s.Input.Get().Fire {
		return
	}
	if !ship.ShootingDelay.Timer.Tick(frame.DeltaTime) {
		return
	}

	cfg := s.Config.Get()
	pos := ship.Transform.Position
	dx, dy := cfg.Ship.BulletOffsetX, cfg.Ship.BulletOffsetY
	frame.Commands.Spawn(bulletBundle(cfg, Vec2{pos.X - dx, pos.Y + dy})...)
	frame.Commands.Spawn(bulletBundle(cfg, Vec2{pos.X + dx, pos.Y + dy})...)
}

type BulletSystem struct {
	Bullets ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Speed
		*Bullet
	}]
	Config ecs.Singleton[config.Config]
}

func (s *BulletSystem) Execute(frame *ecs.UpdateFrame) {
	top := s.Config.Get().Window.YBorder()
	dt := float32(frame.DeltaTime)

	for bullet := range s.Bullets.Values() {
		bullet.Transform.Position.Y += float32(*bullet.Speed) * dt
		if bullet.Transform.Position.Y > top {
			frame.Commands.Delete(bullet.EntityId)
		}
	}
}

type ShipHitSystem struct {
	Ship ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Health
		*SpaceShip
	}]
	Projectiles ecs.Query[struct {
		ecs.EntityId
		*Transform
		*Damage
		*FoeProjectile
	}]
	Pumpers ecs.Query[pumperView]
	State   ecs.Singleton[ecs.State[GameState]]
}

func (s *ShipHitSystem) Execute(frame *ecs.UpdateFrame) {
	_, ship, ok := s.Ship.First()
	if !ok {
		return
	}

	for projectile := range s.Projectiles.Values() {
		if Overlaps(ship.Transform, projectile.Transform) {
			frame.Commands.Delete(projectile.EntityId)
			*ship.Health -= Health(*projectile.Damage)
		}
	}

	if *ship.Health <= 0 {
		despawnShip(frame, ship.EntityId, &s.Pumpers, s.State.Get())
	}
}

type ShipCollisionSystem struct {
	Ship ecs.Query[shipView]
	Foes ecs.Query[struct {
		*Transform
		*Foe
	}]
	Pumpers ecs.Query[pumperView]
	State   ecs.Singleton[ecs.State[GameState]]
}

func (s *ShipCollisionSystem) Execute(frame *ecs.UpdateFrame) {
	_, ship, ok := s.Ship.First()
	if !ok || s.Foes.Len() == 0 {
		return
	}

	for foe := range s.Foes.Values() {
		if Overlaps(ship.Transform, foe.Transform) {
			despawnShip(frame, ship.EntityId, &s.Pumpers, s.State.Get())
			return
		}
	}
}

// SwerveSystem banks the ship sprite towards the horizontal input.
type SwerveSystem struct {
	Ship ecs.Query[struct {
		*Sprite
		*SpaceShip
	}]
	Input ecs.Singleton[Input]
}

func (s *SwerveSystem) Execute(frame *ecs.UpdateFrame) {
	_, ship, ok := s.Ship.First()
	if !ok {
		return
	}

	input := s.Input.Get()
	switch {
	case input.Left:
		ship.Sprite.Frame = FrameLeft
	case input.Right:
		ship.Sprite.Frame = FrameRight
	default:
		ship.Sprite.Frame = FrameLevel
	}
}
