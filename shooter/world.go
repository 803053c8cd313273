package shooter

import (
	"log"
	"math/rand/v2"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
)

// World owns the storage and the two schedules of one game: the fixed-step
// simulation that runs while Playing, and a per-frame schedule for input
// that must not depend on the step rate.
type World struct {
	storage *ecs.Storage
	sim     *ecs.Scheduler
	frame   *ecs.Scheduler

	cfg   ecs.Singleton[config.Config]
	input ecs.Singleton[Input]
	state *ecs.Singleton[ecs.State[GameState]]
	score ecs.Singleton[Score]
}

type Option func(*worldOptions)

type worldOptions struct {
	recorder Recorder
	systems  []ecs.System
}

// WithRecorder persists the score at the end of every round.
func WithRecorder(r Recorder) Option {
	return func(o *worldOptions) { o.recorder = r }
}

// WithSystems appends systems to the simulation schedule, after the built-in
// ones and before state transitions. They run only while Playing.
func WithSystems(systems ...ecs.System) Option {
	return func(o *worldOptions) { o.systems = append(o.systems, systems...) }
}

// NewWorld builds a world in the Playing state with the ship already spawned.
// An invalid cfg is replaced by config.Default, keeping its seed.
func NewWorld(cfg config.Config, opts ...Option) *World {
	if err := cfg.Validate(); err != nil {
		log.Printf("[Shooter] %v, using default config", err)
		seed := cfg.Simulation.Seed
		cfg = config.Default()
		cfg.Simulation.Seed = seed
	}

	var options worldOptions
	for _, opt := range opts {
		opt(&options)
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	storage := ecs.NewStorage(NewRegistry())
	ecs.NewSingleton(storage, cfg)
	ecs.NewSingleton(storage, Input{})
	ecs.NewSingleton(storage, FoeSpawnDelay{Timer: NewTimer(cfg.Foe.SpawnDelay, Repeating)})
	ecs.NewSingleton(storage, NewRng(seed))

	score := Score{}
	if options.recorder != nil {
		score.Best = options.recorder.Best()
	}
	ecs.NewSingleton(storage, score)

	w := &World{
		storage: storage,
		sim:     ecs.NewScheduler(storage),
		frame:   ecs.NewScheduler(storage),
		state:   ecs.NewState(storage, Playing),
	}
	w.cfg.Init(storage)
	w.input.Init(storage)
	w.score.Init(storage)

	w.sim.Step = cfg.Simulation.Step()
	w.sim.MaxSteps = cfg.Simulation.MaxSteps

	playing := ecs.InState(Playing)
	for _, system := range []ecs.System{
		&FoeSpawnSystem{},
		&ShipMovementSystem{},
		&ShipShootingSystem{},
		&BulletSystem{},
		&FoeMovementSystem{},
		&FoeShootingSystem{},
		&FoeProjectileSystem{},
		&FoeHitSystem{},
		&ShipHitSystem{},
		&ShipCollisionSystem{},
		&AttachmentSystem{},
		&SwerveSystem{},
		&AnimationSystem{},
		&ParallaxSystem{},
	} {
		w.sim.Register(system, playing)
	}
	for _, system := range options.systems {
		w.sim.Register(system, playing)
	}

	transitions := newGameFlow(storage, options.recorder).transitions()
	w.sim.Register(transitions)

	w.frame.Register(&ResetSystem{}, ecs.InState(GameOver))
	w.frame.Register(transitions)

	// Enter the initial state.
	w.frame.Once(0)
	return w
}

// Update advances the world by elapsed wall-clock seconds and returns the
// number of fixed steps run.
func (w *World) Update(elapsed float64) int {
	w.frame.Once(elapsed)
	steps := w.sim.Advance(elapsed)
	w.input.Get().Reset = false
	return steps
}

// Step runs exactly one fixed step, ignoring the accumulator.
func (w *World) Step() {
	w.frame.Once(w.sim.Step)
	w.sim.Once(w.sim.Step)
	w.input.Get().Reset = false
}

func (w *World) SetInput(input Input) {
	*w.input.Get() = input
}

func (w *World) Input() Input {
	return *w.input.Get()
}

func (w *World) Storage() *ecs.Storage {
	return w.storage
}

func (w *World) Config() *config.Config {
	return w.cfg.Get()
}

func (w *World) State() GameState {
	return w.state.Get().Current()
}

func (w *World) Score() Score {
	return *w.score.Get()
}

type Stats struct {
	Simulation *ecs.SchedulerStats
	Frame      *ecs.SchedulerStats
	Storage    *ecs.StorageStats
}

func (w *World) Stats() Stats {
	return Stats{
		Simulation: w.sim.GetStats(),
		Frame:      w.frame.GetStats(),
		Storage:    w.storage.CollectStats(),
	}
}

// Schedulers exposes the simulation and per-frame schedulers for debug views.
func (w *World) Schedulers() (sim, frame *ecs.Scheduler) {
	return w.sim, w.frame
}
