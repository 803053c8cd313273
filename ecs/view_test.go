package ecs_test

import (
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type movingView struct {
	*Position
	*Velocity
}

type healthView struct {
	ecs.EntityId
	*Health
	Name *Name `ecs:"optional"`
}

func TestViewIterMatchesRequiredComponents(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	storage.Spawn(Position{X: 2})
	storage.Spawn(Position{X: 3}, Velocity{DX: 3}, Health{Current: 1})

	view := ecs.NewView[movingView](storage)
	assert.Equal(t, 2, view.Count())

	for item := range view.Values() {
		item.Position.X += item.Velocity.DX
	}

	var xs []float32
	for item := range ecs.NewView[struct{ *Position }](storage).Values() {
		xs = append(xs, item.Position.X)
	}
	assert.ElementsMatch(t, []float32{2, 2, 6}, xs)
}

func TestViewOptionalFieldAndEntityId(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	named := storage.Spawn(Health{Current: 5}, Name{Value: "foe"})
	anonymous := storage.Spawn(Health{Current: 7})

	view := ecs.NewView[healthView](storage)

	seen := map[ecs.EntityId]healthView{}
	for id, item := range view.Iter() {
		assert.Equal(t, id, item.EntityId)
		seen[id] = item
	}
	require.Len(t, seen, 2)

	require.NotNil(t, seen[named].Name)
	assert.Equal(t, "foe", seen[named].Name.Value)
	assert.Nil(t, seen[anonymous].Name)
	assert.Equal(t, 7, seen[anonymous].Health.Current)
}

func TestViewGetAndFill(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 4}, Velocity{DY: -1})
	still := storage.Spawn(Position{X: 5})

	view := ecs.NewView[movingView](storage)

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Equal(t, float32(-1), item.Velocity.DY)

	assert.Nil(t, view.Get(still))

	var out movingView
	assert.True(t, view.Fill(id, &out))
	storage.Delete(id)
	assert.False(t, view.Fill(id, &out))
	assert.Nil(t, view.Get(id))
}

func TestViewSkipsDeletedEntities(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2})
	storage.Delete(a)

	view := ecs.NewView[struct{ *Position }](storage)
	assert.Equal(t, 1, view.Count())
}

func TestViewIterStopsEarly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	for range 5 {
		storage.Spawn(Position{})
	}

	n := 0
	for range ecs.NewView[struct{ *Position }](storage).Iter() {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

func TestViewSpawn(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	view := ecs.NewView[healthView](storage)

	id := view.Spawn(healthView{Health: &Health{Current: 3, Max: 3}})
	assert.True(t, storage.Alive(id))

	item := view.Get(id)
	require.NotNil(t, item)
	assert.Nil(t, item.Name)
	assert.Equal(t, 3, item.Health.Max)

	assert.Panics(t, func() { view.Spawn(healthView{}) })
}

func TestNewViewRejectsInvalidShapes(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	assert.Panics(t, func() { ecs.NewView[Position](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}
