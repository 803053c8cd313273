package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Moving ecs.Query[movingView]
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Moving.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
}

type ScoreSystem struct {
	Score ecs.Singleton[Score]
	Foes  ecs.Query[struct {
		ecs.EntityId
		*Foe
	}]
}

func (s *ScoreSystem) Execute(frame *ecs.UpdateFrame) {
	for item := range s.Foes.Values() {
		*s.Score.Get() += 10
		frame.Commands.Delete(item.EntityId)
	}
}

func TestSchedulerBindsQueriesAndSingletons(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ecs.NewSingleton(storage, Score(0))
	storage.Spawn(Position{}, Velocity{DX: 64, DY: -64})
	storage.Spawn(Foe{})
	storage.Spawn(Foe{})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&ScoreSystem{})

	scheduler.Once(1.0 / 64.0)

	var score *Score
	require.True(t, storage.ReadSingleton(&score))
	assert.Equal(t, Score(20), *score)
	assert.Zero(t, storage.CountEntities(Foe{}), "deletes flushed after the pass")

	for item := range ecs.NewView[movingView](storage).Values() {
		assert.InDelta(t, 1.0, item.Position.X, 1e-6)
		assert.InDelta(t, -1.0, item.Position.Y, 1e-6)
	}
}

func TestSchedulerSeesSpawnsOnNextPass(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var seen []int
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Foe{})
	}))
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		seen = append(seen, frame.Storage.CountEntities(Foe{}))
	}))

	scheduler.Once(0)
	scheduler.Once(0)
	assert.Equal(t, []int{0, 1}, seen)
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var order []string
	for _, name := range []string{"spawn", "move", "collide"} {
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {
			order = append(order, name)
		}))
	}

	scheduler.Once(0)
	assert.Equal(t, []string{"spawn", "move", "collide"}, order)
}

func TestSchedulerRunConditions(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	enabled := false
	runs := 0
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) { runs++ }), func(*ecs.Storage) bool {
		return enabled
	})

	scheduler.Once(0)
	assert.Zero(t, runs)

	enabled = true
	scheduler.Once(0)
	assert.Equal(t, 1, runs)

	stats := scheduler.GetStats()
	assert.Equal(t, int64(2), stats.Passes)
	assert.Equal(t, int64(1), stats.Systems[0].ExecutionCount)
}

func TestSchedulerAdvanceUsesFixedSteps(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)

	var deltas []float64
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		deltas = append(deltas, frame.DeltaTime)
	}))

	assert.Equal(t, 0, scheduler.Advance(1.0/128.0))
	assert.Equal(t, 1, scheduler.Advance(1.0/128.0))
	assert.Equal(t, 2, scheduler.Advance(1.0/32.0))
	assert.Equal(t, 0, scheduler.Advance(-1))

	require.Len(t, deltas, 3)
	for _, dt := range deltas {
		assert.Equal(t, ecs.DefaultStep, dt)
	}
}

func TestSchedulerAdvanceDropsBacklog(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.MaxSteps = 4

	assert.Equal(t, 4, scheduler.Advance(1.0))
	assert.Equal(t, 0, scheduler.Advance(0))
}

func TestSchedulerStats(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {}), func(*ecs.Storage) bool { return false })

	for range 3 {
		scheduler.Once(0)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(3), stats.TotalExecutions)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
	assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)

	assert.Zero(t, stats.Systems[1].ExecutionCount)
	assert.Zero(t, stats.Systems[1].MinDuration)
	assert.Zero(t, stats.Systems[1].AvgDuration)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MovementSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, 2*time.Millisecond)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Positive(t, scheduler.GetStats().Passes)
}
