// Package debugui draws Dear ImGui windows over a running world. Windows are
// components, so they are spawned, queried and deleted like any other entity.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spaceshooter/ecs"
)

// ImguiItem is a component that holds a Dear ImGui render function.
// Attach this to entities that should render ImGui widgets each frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState tracks Dear ImGui's input capture state as a singleton component.
// Frontends check it before handing keys to the game.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem queries all ImguiItem components and defers their render functions.
// It also updates the ImguiInputState singleton with current input capture state.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	if state := i.InputState.Get(); state != nil {
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// WindowSystem draws the windows spawned by SpawnDebugUI. It must run between
// the backend's BeginFrame and EndFrame.
type WindowSystem struct {
	Performance ecs.Query[struct{ *PerformanceStats }]
	Archetypes  ecs.Query[struct{ *ArchetypeViewer }]
	Entities    ecs.Query[struct{ *EntityList }]
	Timer       ecs.Singleton[FrameTimer]
}

func (s *WindowSystem) Execute(frame *ecs.UpdateFrame) {
	var dt float32
	if timer := s.Timer.Get(); timer != nil {
		dt = timer.Tick()
	}

	for window := range s.Performance.Values() {
		window.Render(frame.Storage, dt)
	}

	var selected *uint32
	for window := range s.Archetypes.Values() {
		window.Render(frame.Storage)
		if id, ok := window.Selected(); ok {
			selected = &id
		}
	}

	for window := range s.Entities.Values() {
		window.Render(frame.Storage, selected)
	}
}
