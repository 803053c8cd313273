package ecs_test

import (
	"testing"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityRefIsShared(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 1})

	a := storage.CreateEntityRef(id)
	b := storage.CreateEntityRef(id)
	require.NotNil(t, a)
	assert.Same(t, a, b)
	assert.True(t, a.Alive())

	resolved, ok := storage.ResolveEntityRef(a)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)
}

func TestEntityRefForDeadEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})
	storage.Delete(id)

	assert.Nil(t, storage.CreateEntityRef(id))

	var nilRef *ecs.EntityRef
	assert.False(t, nilRef.Alive())
	_, ok := storage.ResolveEntityRef(nilRef)
	assert.False(t, ok)
}

func TestEntityRefFollowsComponentChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{X: 7})
	ref := storage.CreateEntityRef(id)

	moved := storage.AddComponent(id, Velocity{DX: 1})
	assert.Equal(t, moved, ref.Id)
	assert.Same(t, storage.GetArchetype(Position{}, Velocity{}), ref.Archetype)

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)
	item := view.GetRef(ref)
	require.NotNil(t, item)
	assert.Equal(t, float32(7), item.Position.X)
}

func TestEntityRefDiesWithEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)

	storage.Delete(id)
	assert.False(t, ref.Alive())
	assert.Zero(t, ref.Id)
	assert.Nil(t, ref.Archetype)
}

func TestEntityRefSurvivesCompact(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	first := storage.Spawn(Position{X: 1})
	storage.Spawn(Position{X: 2})
	third := storage.Spawn(Position{X: 3})
	ref := storage.CreateEntityRef(third)

	storage.Delete(first)
	storage.Compact()

	require.True(t, ref.Alive())
	assert.Equal(t, uint32(1), ref.Id.Index())
	assert.Equal(t, float32(3), ecs.ReadComponent[Position](storage, ref.Id).X)
}

func TestInvalidateEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	id := storage.Spawn(Position{})
	ref := storage.CreateEntityRef(id)

	assert.True(t, storage.InvalidateEntityRef(ref))
	assert.False(t, ref.Alive())
	assert.False(t, storage.InvalidateEntityRef(ref))
	assert.True(t, storage.Alive(id), "invalidating a ref does not delete the entity")

	fresh := storage.CreateEntityRef(id)
	assert.NotSame(t, ref, fresh)
	assert.True(t, fresh.Alive())
}
