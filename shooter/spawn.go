package shooter

import (
	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
)

// Ship sprite frames: banking left, level, banking right.
const (
	FrameLeft  = 0
	FrameLevel = 1
	FrameRight = 2
)

// Pumper flame frames.
const (
	PumperFirstFrame = 15
	PumperLastFrame  = 18
)

// Drawn sizes of the ship and its flame. The collision box is the smaller
// Transform scale.
const (
	shipSpriteWidth  = 47
	shipSpriteHeight = 45
)

func shipBundle(cfg *config.Config) []any {
	scale := cfg.Ship.Scale
	return []any{
		Transform{Scale: Vec2{scale, scale}},
		ShootingDelay{Timer: NewTimer(cfg.Ship.ShootingDelay, Repeating)},
		Health(cfg.Ship.Health),
		Speed(cfg.Ship.Speed),
		Sprite{Color: ShipColor, Width: shipSpriteWidth, Height: shipSpriteHeight, Frame: FrameLevel},
		SpaceShip{},
	}
}

func pumperBundle(cfg *config.Config, parent *ecs.EntityRef) []any {
	scale := cfg.Ship.Scale
	offset := Vec2{0, cfg.Ship.PumperOffsetY}
	return []any{
		Transform{Position: offset, Scale: Vec2{scale, scale}},
		Sprite{Color: PumperColor, Width: shipSpriteWidth / 3, Height: shipSpriteHeight / 2, Frame: PumperFirstFrame},
		AnimationIndices{First: PumperFirstFrame, Last: PumperLastFrame},
		AnimationTimer{Timer: NewTimer(cfg.Ship.PumperAnimation, Repeating)},
		Attachment{
			Parent: parent,
			Offset: offset,
			Steer:  Vec2{cfg.Ship.PumperTipX, cfg.Ship.PumperTipY},
		},
		Pumper{},
	}
}

// SpawnShip adds the ship and its attached flame to storage and returns the
// ship id.
func SpawnShip(storage *ecs.Storage, cfg *config.Config) ecs.EntityId {
	ship := storage.Spawn(shipBundle(cfg)...)
	storage.Spawn(pumperBundle(cfg, storage.CreateEntityRef(ship))...)
	return ship
}

func bulletBundle(cfg *config.Config, at Vec2) []any {
	size := Vec2{cfg.Ship.BulletWidth, cfg.Ship.BulletHeight}
	return []any{
		Transform{Position: at, Scale: size},
		Speed(cfg.Ship.BulletSpeed),
		Damage(cfg.Ship.Damage),
		Sprite{Color: BulletColor, Width: size.X, Height: size.Y},
		Bullet{},
	}
}

// SpawnBullet adds a player bullet at the given position.
func SpawnBullet(storage *ecs.Storage, cfg *config.Config, at Vec2) ecs.EntityId {
	return storage.Spawn(bulletBundle(cfg, at)...)
}

func foeBundle(cfg *config.Config, at Vec2) []any {
	size := cfg.Foe.Size
	return []any{
		Transform{Position: at, Scale: Vec2{size, size}},
		ShootingDelay{Timer: NewTimer(cfg.Foe.ShootDelay, Repeating)},
		Health(cfg.Foe.Health),
		Speed(cfg.Foe.Speed),
		Sprite{Color: FoeColor, Width: size, Height: size},
		Foe{},
	}
}

// SpawnFoe adds a foe at the given position.
func SpawnFoe(storage *ecs.Storage, cfg *config.Config, at Vec2) ecs.EntityId {
	return storage.Spawn(foeBundle(cfg, at)...)
}

func projectileBundle(cfg *config.Config, at Vec2, dir Direction) []any {
	size := cfg.Foe.ProjectileSize
	return []any{
		Transform{Position: at, Scale: Vec2{size, size}},
		dir,
		Speed(cfg.Foe.ProjectileSpeed),
		Damage(cfg.Foe.Damage),
		Sprite{Color: ProjectileColor, Width: size, Height: size},
		FoeProjectile{},
	}
}

// SpawnProjectile adds a foe projectile flying along dir.
func SpawnProjectile(storage *ecs.Storage, cfg *config.Config, at Vec2, dir Direction) ecs.EntityId {
	return storage.Spawn(projectileBundle(cfg, at, dir)...)
}

func layerBundles(cfg *config.Config) [][]any {
	bundles := make([][]any, 0, len(cfg.Background.LayerSpeeds))
	for depth, speed := range cfg.Background.LayerSpeeds {
		bundles = append(bundles, []any{
			Transform{},
			ParallaxLayer{Speed: speed, Depth: depth},
		})
	}
	return bundles
}

func bannerBundle() []any {
	return []any{
		Transform{},
		Sprite{Color: BannerColor},
		GameBanner{Text: "Game Over"},
	}
}
