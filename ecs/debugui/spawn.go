package debugui

import "github.com/plus3/spaceshooter/ecs"

// RegisterDebugUIComponents adds the window components to registry. It is
// safe to call on the registry of a storage that is already in use.
func RegisterDebugUIComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[PerformanceStats](registry)
	ecs.RegisterComponent[ArchetypeViewer](registry)
	ecs.RegisterComponent[EntityList](registry)
}

// SpawnDebugUI spawns the performance, archetype and entity windows into
// storage. Timings are shown for every scheduler in schedulers.
func SpawnDebugUI(storage *ecs.Storage, schedulers ...Scheduled) {
	RegisterDebugUIComponents(storage.Registry())

	ecs.NewSingleton(storage, ImguiInputState{})
	ecs.NewSingleton(storage, *NewFrameTimer())

	storage.Spawn(NewPerformanceStats(120, schedulers...))
	storage.Spawn(NewArchetypeViewer())
	storage.Spawn(NewEntityList(64))
}
