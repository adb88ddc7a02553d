// Package ebiten runs the debugui windows on top of an ebiten game through
// the cimgui-go ebiten backend.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/ecs/debugui"
)

// ImguiBackend is the storage singleton holding the imgui backend.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
}

// Overlay owns an imgui frame per tick. Its scheduler shares the game's
// storage and runs only the debug window systems.
type Overlay struct {
	backend   *ecs.Singleton[ImguiBackend]
	input     *ecs.Singleton[debugui.ImguiInputState]
	scheduler *ecs.Scheduler
}

// NewOverlay creates the imgui backend and window, and spawns an inspector
// for target plus a stats window reporting the given schedulers.
func NewOverlay(storage *ecs.Storage, title string, width, height int, target *ecs.EntityRef, schedulers ...*ecs.Scheduler) *Overlay {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	debugui.Register(storage.Registry())
	debugui.SpawnWindows(storage, target, schedulers...)

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&debugui.ImguiSystem{})
	scheduler.Register(&debugui.WindowSystem{})

	return &Overlay{
		backend:   ecs.NewSingleton(storage, ImguiBackend{EbitenBackend: backend}),
		input:     ecs.NewSingleton[debugui.ImguiInputState](storage),
		scheduler: scheduler,
	}
}

// Update draws one imgui frame.
func (o *Overlay) Update(dt float64) {
	b := o.backend.Get()
	b.BeginFrame()
	o.scheduler.Once(dt)
	b.EndFrame()
}

func (o *Overlay) WantsKeyboard() bool {
	return o.input.Get().WantCaptureKeyboard
}

func (o *Overlay) Draw(screen *ebiten.Image) {
	o.backend.Get().Draw(screen)
}

func (o *Overlay) Layout(width, height int) {
	o.backend.Get().Layout(width, height)
}
