// Package debugui draws Dear ImGui debug windows for an ecs.Storage. Windows
// are components; ImguiSystem and WindowSystem queue their rendering as
// deferred commands so it happens after the frame's systems have run.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/spritewalk/ecs"
)

// ImguiItem holds a free-form render function drawn every frame.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether imgui wants the mouse or keyboard.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem records imgui's input capture and queues every ImguiItem.
type ImguiSystem struct {
	Items ecs.Query[struct{ *ImguiItem }]
	Input ecs.Singleton[ImguiInputState]
}

func (s *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	io := imgui.CurrentIO()
	state := s.Input.Get()
	state.WantCaptureMouse = io.WantCaptureMouse()
	state.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for item := range s.Items.Iter() {
		if item.Render != nil {
			frame.Commands.Defer(item.Render)
		}
	}
}

// WindowSystem queues the built-in inspector and stats windows.
type WindowSystem struct {
	Inspectors ecs.Query[struct{ *Inspector }]
	Stats      ecs.Query[struct{ *StatsWindow }]
}

func (s *WindowSystem) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	dt := float32(frame.DeltaTime)

	for w := range s.Inspectors.Iter() {
		inspector := w.Inspector
		frame.Commands.Defer(func() { inspector.Render(storage) })
	}
	for w := range s.Stats.Iter() {
		stats := w.StatsWindow
		frame.Commands.Defer(func() { stats.Render(storage, dt) })
	}
}

// Register adds the window components to registry.
func Register(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[ImguiItem](registry)
	ecs.RegisterComponent[Inspector](registry)
	ecs.RegisterComponent[StatsWindow](registry)
}

// SpawnWindows creates an inspector for target and a stats window that also
// reports the timings of the given schedulers.
func SpawnWindows(storage *ecs.Storage, target *ecs.EntityRef, schedulers ...*ecs.Scheduler) {
	ecs.NewSingleton[ImguiInputState](storage)
	storage.Spawn(Inspector{Title: "Inspector", Target: target})
	storage.Spawn(NewStatsWindow(120, schedulers...))
}
