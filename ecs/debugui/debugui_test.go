package debugui

import (
	"testing"
	"time"

	"github.com/plus3/spaceshooter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type position struct {
	X, Y float32
}

type armor int

func TestFrameHistoryAverageIgnoresEmptySlots(t *testing.T) {
	h := newFrameHistory(4)
	assert.Zero(t, h.average())

	h.push(10)
	h.push(20)
	assert.InDelta(t, 15, h.average(), 1e-6)

	for _, ms := range []float32{30, 30, 30, 30} {
		h.push(ms)
	}
	assert.InDelta(t, 30, h.average(), 1e-6)
}

func TestFrameTimerTick(t *testing.T) {
	now := time.Unix(100, 0)
	timer := NewFrameTimer()
	timer.now = func() time.Time { return now }

	assert.Zero(t, timer.Tick())

	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.25, timer.Tick(), 1e-6)
}

func TestSortArchetypeRows(t *testing.T) {
	rows := []ecs.ArchetypeStats{
		{ID: 3, ComponentTypes: []string{"a"}, EntityCount: 5},
		{ID: 1, ComponentTypes: []string{"a", "b", "c"}, EntityCount: 5},
		{ID: 2, ComponentTypes: []string{"b", "c"}, EntityCount: 9},
	}

	ids := func() []uint32 {
		out := make([]uint32, len(rows))
		for i, row := range rows {
			out[i] = row.ID
		}
		return out
	}

	tests := []struct {
		name      string
		column    int
		ascending bool
		want      []uint32
	}{
		{"entity count descending", columnEntityCount, false, []uint32{2, 1, 3}},
		{"entity count ascending", columnEntityCount, true, []uint32{1, 3, 2}},
		{"id ascending", columnArchetypeID, true, []uint32{1, 2, 3}},
		{"component count descending", columnComponentCount, false, []uint32{1, 2, 3}},
		{"components ascending", columnComponents, true, []uint32{3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sortArchetypeRows(rows, tt.column, tt.ascending)
			assert.Equal(t, tt.want, ids())
		})
	}
}

func TestDescribeEntity(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[position](registry)
	ecs.RegisterComponent[armor](registry)
	storage := ecs.NewStorage(registry)

	id := storage.Spawn(position{X: 1, Y: 2}, armor(3))
	lines := describeEntity(storage, id)
	assert.ElementsMatch(t, []string{
		"debugui.position: {X:1 Y:2}",
		"debugui.armor: 3",
	}, lines)
}

func TestListEntitiesHonoursLimit(t *testing.T) {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[armor](registry)
	storage := ecs.NewStorage(registry)

	for i := range 5 {
		storage.Spawn(armor(i))
	}
	archetype := storage.GetArchetype(armor(0))
	require.NotNil(t, archetype)

	assert.Len(t, listEntities(archetype, 3), 3)
	assert.Len(t, listEntities(archetype, 0), 5)
	assert.Same(t, archetype, findArchetype(storage, archetype.ID()))
}

func TestSpawnDebugUIRegistersWindows(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	scheduler := ecs.NewScheduler(storage)

	SpawnDebugUI(storage, Scheduled{Name: "frame", Scheduler: scheduler})

	assert.Equal(t, 1, storage.CountEntities(PerformanceStats{}))
	assert.Equal(t, 1, storage.CountEntities(ArchetypeViewer{}))
	assert.Equal(t, 1, storage.CountEntities(EntityList{}))
	assert.True(t, ecs.NewSingleton[ImguiInputState](storage).Exists())
	assert.True(t, ecs.NewSingleton[FrameTimer](storage).Exists())
}
