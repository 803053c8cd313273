package ecs_test

import (
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryPanicsBeforeExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	query := ecs.NewQuery[movingView](storage)

	assert.Panics(t, func() {
		for range query.Iter() {
		}
	})
	assert.Panics(t, func() {
		for range query.Values() {
		}
	})

	_, _, ok := query.First()
	assert.False(t, ok)
}

func TestQueryCachesUntilExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	storage.Spawn(Position{X: 1}, Velocity{})

	query := ecs.NewQuery[movingView](storage)
	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Position{X: 2}, Velocity{})
	storage.Spawn(Position{X: 3}, Velocity{}, Ship{})
	assert.Equal(t, 1, query.Len(), "rows are a snapshot")

	query.Execute()
	assert.Equal(t, 3, query.Len())

	total := float32(0)
	for _, item := range query.Iter() {
		total += item.Position.X
	}
	assert.Equal(t, float32(6), total)
}

func TestQueryFirst(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	ship := storage.Spawn(Position{X: 9}, Ship{})
	storage.Spawn(Position{X: 1}, Foe{})

	query := ecs.NewQuery[struct {
		*Position
		*Ship
	}](storage)
	query.Execute()

	id, item, ok := query.First()
	require.True(t, ok)
	assert.Equal(t, ship, id)
	assert.Equal(t, float32(9), item.Position.X)
}

func TestQueryDropsDeletedRowsOnExecute(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	a := storage.Spawn(Position{}, Foe{})
	storage.Spawn(Position{}, Foe{})

	query := ecs.NewQuery[struct {
		*Position
		*Foe
	}](storage)
	query.Execute()
	require.Equal(t, 2, query.Len())

	storage.Delete(a)
	query.Execute()
	assert.Equal(t, 1, query.Len())

	for id := range query.Iter() {
		assert.NotEqual(t, a, id)
	}
}
