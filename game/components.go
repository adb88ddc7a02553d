package game

import (
	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/sprite"
	"github.com/tanema/gween"
)

type Position struct {
	X, Y int
}

// Size is the logical size of an entity. It never goes negative.
type Size struct {
	Width, Height int
}

// Player is the state of the keyboard-controlled entity.
type Player struct {
	State     Action
	Facing    Direction
	Velocity  int
	ScaleRate int
}

// Animation tracks which frame of the current direction is shown.
type Animation struct {
	Step       int
	Frames     int
	FrameStart uint32 // tick of the last frame advance
	FrameTime  uint32 // ms between advances
}

// Sprite points an entity at the sheet it is drawn from.
type Sprite struct {
	Sheet *sprite.Sheet
}

// DisplaySize is the size actually drawn. It eases towards Size.
type DisplaySize struct {
	Width, Height float32

	targetW, targetH int
	tweenW, tweenH   *gween.Tween
}

// Tweening reports whether a size change is still being eased in.
func (d *DisplaySize) Tweening() bool {
	return d.tweenW != nil
}

// Clock counts milliseconds of game time.
type Clock struct {
	Ticks uint32
	carry float64
}

// ActionQueue carries the actions produced by input this tick.
type ActionQueue struct {
	Pending []Action
}

// InputCapture is set when another consumer, such as the debug overlay,
// owns the keyboard this tick.
type InputCapture struct {
	Keyboard bool
}

// UIState holds toggles driven by non-player keys.
type UIState struct {
	HUD     bool
	Overlay bool
	Quit    bool
}

// NewRegistry registers every component and singleton type the game uses.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Size](registry)
	ecs.RegisterComponent[Player](registry)
	ecs.RegisterComponent[Animation](registry)
	ecs.RegisterComponent[Sprite](registry)
	ecs.RegisterComponent[DisplaySize](registry)
	return registry
}
