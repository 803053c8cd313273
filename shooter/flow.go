package shooter

import (
	"log"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/plus3/spaceshooter/internal/config"
)

// Recorder keeps the best score across sessions.
type Recorder interface {
	Best() int
	Record(points, kills int) (bool, error)
}

// ResetSystem starts a new round when the reset key is pressed. It runs once
// per frame while the game is over.
type ResetSystem struct {
	Input ecs.Singleton[Input]
	State ecs.Singleton[ecs.State[GameState]]
}

func (s *ResetSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Input.Get().Reset {
		s.State.Get().Set(Playing)
	}
}

type gameFlow struct {
	cfg      ecs.Singleton[config.Config]
	score    ecs.Singleton[Score]
	delay    ecs.Singleton[FoeSpawnDelay]
	recorder Recorder
	rounds   int

	placed *ecs.View[struct {
		ecs.EntityId
		*Transform
	}]
}

func newGameFlow(storage *ecs.Storage, recorder Recorder) *gameFlow {
	f := &gameFlow{
		recorder: recorder,
		placed: ecs.NewView[struct {
			ecs.EntityId
			*Transform
		}](storage),
	}
	f.cfg.Init(storage)
	f.score.Init(storage)
	f.delay.Init(storage)
	return f
}

func (f *gameFlow) transitions() *ecs.StateTransitions[GameState] {
	return ecs.NewStateTransitions[GameState]().
		OnEnter(Playing, f.enterPlaying).
		OnEnter(GameOver, f.enterGameOver).
		OnExit(GameOver, f.exitGameOver)
}

func (f *gameFlow) enterPlaying(frame *ecs.UpdateFrame) {
	cfg := f.cfg.Get()
	f.rounds++

	score := f.score.Get()
	score.Points, score.Kills = 0, 0
	f.delay.Get().Timer.Reset()

	for _, layer := range layerBundles(cfg) {
		frame.Commands.Spawn(layer...)
	}
	frame.Commands.Defer(func() {
		SpawnShip(frame.Storage, cfg)
	})

	log.Printf("[Shooter] round %d started", f.rounds)
}

func (f *gameFlow) enterGameOver(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(bannerBundle()...)

	score := f.score.Get()
	score.Best = max(score.Best, score.Points)
	log.Printf("[Shooter] game over: %d points, %d kills", score.Points, score.Kills)

	if f.recorder == nil {
		return
	}
	newBest, err := f.recorder.Record(score.Points, score.Kills)
	if err != nil {
		log.Printf("[Shooter] failed to record score: %v", err)
		return
	}
	if newBest {
		log.Printf("[Shooter] new best score: %d", score.Points)
	}
}

func (f *gameFlow) exitGameOver(frame *ecs.UpdateFrame) {
	for id := range f.placed.Iter() {
		frame.Commands.Delete(id)
	}
	frame.Commands.Defer(frame.Storage.Compact)
}
