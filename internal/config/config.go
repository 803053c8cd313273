// Package config holds the gameplay constants of the shooter and loads
// overrides from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
	Title  string  `yaml:"title"`
}

// XBorder is the distance from the centre to the left and right edges.
func (w Window) XBorder() float32 { return w.Width * 0.5 }

// YBorder is the distance from the centre to the top and bottom edges.
func (w Window) YBorder() float32 { return w.Height * 0.5 }

// Size is the window size in whole pixels.
func (w Window) Size() (int, int) { return int(w.Width), int(w.Height) }

type Ship struct {
	Speed         float32 `yaml:"speed"`
	Damage        int     `yaml:"damage"`
	Health        int     `yaml:"health"`
	Scale         float32 `yaml:"scale"`
	ShootingDelay float64 `yaml:"shooting_delay"`

	BulletSpeed   float32 `yaml:"bullet_speed"`
	BulletWidth   float32 `yaml:"bullet_width"`
	BulletHeight  float32 `yaml:"bullet_height"`
	BulletOffsetX float32 `yaml:"bullet_offset_x"`
	BulletOffsetY float32 `yaml:"bullet_offset_y"`

	PumperAnimation float64 `yaml:"pumper_animation"`
	PumperOffsetY   float32 `yaml:"pumper_offset_y"`
	PumperTipX      float32 `yaml:"pumper_tip_x"`
	PumperTipY      float32 `yaml:"pumper_tip_y"`
}

type Foe struct {
	Speed      float32 `yaml:"speed"`
	Damage     int     `yaml:"damage"`
	Health     int     `yaml:"health"`
	Size       float32 `yaml:"size"`
	SpawnDelay float64 `yaml:"spawn_delay"`
	Units      int     `yaml:"units"`
	// SpawnMargin is how far above the top edge foes appear.
	SpawnMargin float32 `yaml:"spawn_margin"`
	// DespawnMargin is how far below the bottom edge foes are removed.
	DespawnMargin float32 `yaml:"despawn_margin"`
	ShootDelay    float64 `yaml:"shoot_delay"`

	ProjectileSpeed float32 `yaml:"projectile_speed"`
	ProjectileSize  float32 `yaml:"projectile_size"`
}

// UnitWidth is the horizontal spacing of foe spawn columns.
func (f Foe) UnitWidth(windowWidth float32) float32 {
	return windowWidth / float32(f.Units)
}

type Background struct {
	LayerSpeeds []float32 `yaml:"layer_speeds"`
	CameraSpeed float32   `yaml:"camera_speed"`
	TileHeight  float32   `yaml:"tile_height"`
}

type Simulation struct {
	TickRate int `yaml:"tick_rate"`
	MaxSteps int `yaml:"max_steps"`
	// Seed feeds the foe spawn rng. Zero picks a random seed.
	Seed uint64 `yaml:"seed"`
}

// Step returns the fixed timestep in seconds.
func (s Simulation) Step() float64 {
	return 1.0 / float64(s.TickRate)
}

type Config struct {
	Window     Window     `yaml:"window"`
	Ship       Ship       `yaml:"ship"`
	Foe        Foe        `yaml:"foe"`
	Background Background `yaml:"background"`
	Simulation Simulation `yaml:"simulation"`
}

func Default() Config {
	return Config{
		Window: Window{
			Width:  640,
			Height: 480,
			Title:  "Space shooter",
		},
		Ship: Ship{
			Speed:           530,
			Damage:          2,
			Health:          10,
			Scale:           6,
			ShootingDelay:   0.12,
			BulletSpeed:     980,
			BulletWidth:     10,
			BulletHeight:    20,
			BulletOffsetX:   10,
			BulletOffsetY:   15,
			PumperAnimation: 0.07,
			PumperOffsetY:   -36,
			PumperTipX:      13,
			PumperTipY:      10,
		},
		Foe: Foe{
			Speed:           230,
			Damage:          2,
			Health:          12,
			Size:            30,
			SpawnDelay:      1.5,
			Units:           32,
			SpawnMargin:     50,
			DespawnMargin:   25,
			ShootDelay:      1.2,
			ProjectileSpeed: 500,
			ProjectileSize:  20,
		},
		Background: Background{
			LayerSpeeds: []float32{0.85, 0.95},
			CameraSpeed: 2,
			TileHeight:  480,
		},
		Simulation: Simulation{
			TickRate: 64,
			MaxSteps: 8,
		},
	}
}

// Load reads a YAML file on top of Default. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var ErrInvalid = errors.New("invalid config")

func positive[T int | float32 | float64](name string, v T) error {
	if v <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, name, v)
	}
	return nil
}

// Validate checks that every size, speed, damage and delay is usable.
func (c Config) Validate() error {
	return errors.Join(
		positive("window.width", c.Window.Width),
		positive("window.height", c.Window.Height),
		positive("ship.speed", c.Ship.Speed),
		positive("ship.damage", c.Ship.Damage),
		positive("ship.health", c.Ship.Health),
		positive("ship.scale", c.Ship.Scale),
		positive("ship.shooting_delay", c.Ship.ShootingDelay),
		positive("ship.bullet_speed", c.Ship.BulletSpeed),
		positive("ship.bullet_width", c.Ship.BulletWidth),
		positive("ship.bullet_height", c.Ship.BulletHeight),
		positive("ship.pumper_animation", c.Ship.PumperAnimation),
		positive("foe.speed", c.Foe.Speed),
		positive("foe.damage", c.Foe.Damage),
		positive("foe.health", c.Foe.Health),
		positive("foe.size", c.Foe.Size),
		positive("foe.spawn_delay", c.Foe.SpawnDelay),
		positive("foe.units", c.Foe.Units),
		positive("foe.shoot_delay", c.Foe.ShootDelay),
		positive("foe.projectile_speed", c.Foe.ProjectileSpeed),
		positive("foe.projectile_size", c.Foe.ProjectileSize),
		positive("background.tile_height", c.Background.TileHeight),
		positive("simulation.tick_rate", c.Simulation.TickRate),
		positive("simulation.max_steps", c.Simulation.MaxSteps),
	)
}

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

const (
	EnvConfig = "SHOOTER_CONFIG"
	EnvSeed   = "SHOOTER_SEED"
)

// FromEnv loads the file named by SHOOTER_CONFIG, or Default when unset, and
// applies SHOOTER_SEED on top.
func FromEnv() (Config, error) {
	cfg := Default()
	if path := GetEnv(EnvConfig, ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}

	if raw := GetEnv(EnvSeed, ""); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse %s: %w", EnvSeed, err)
		}
		cfg.Simulation.Seed = seed
	}
	return cfg, nil
}
