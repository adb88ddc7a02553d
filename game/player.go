package game

import (
	"image"

	"github.com/plus3/spritewalk/ecs"
	"github.com/plus3/spritewalk/sprite"
)

// FramesPerDirection is the number of walk frames per facing on the sheet.
const FramesPerDirection = 2

// PlayerLayout is the arrangement of the player sheet: 32x32 frames, four
// facings of two frames each.
var PlayerLayout = sprite.Layout{
	FrameWidth:         32,
	FrameHeight:        32,
	Directions:         4,
	FramesPerDirection: FramesPerDirection,
}

// PlayerOptions are the spawn parameters of a player.
type PlayerOptions struct {
	Position  Position
	Size      Size
	Velocity  int
	ScaleRate int
	FrameTime uint32
}

// DefaultPlayerOptions is a 32x32 player at the origin walking 2px a step.
func DefaultPlayerOptions() PlayerOptions {
	return PlayerOptions{
		Size:      Size{Width: 32, Height: 32},
		Velocity:  2,
		ScaleRate: 5,
		FrameTime: 200,
	}
}

// SpawnPlayer creates the player entity. ticks is the current clock value
// and starts the first animation frame.
func SpawnPlayer(storage *ecs.Storage, opts PlayerOptions, sheet *sprite.Sheet, ticks uint32) ecs.EntityId {
	return storage.Spawn(
		opts.Position,
		opts.Size,
		Player{
			State:     Walk(Up),
			Facing:    Up,
			Velocity:  opts.Velocity,
			ScaleRate: opts.ScaleRate,
		},
		Animation{
			Frames:     FramesPerDirection,
			FrameStart: ticks,
			FrameTime:  opts.FrameTime,
		},
		Sprite{Sheet: sheet},
		DisplaySize{
			Width:   float32(opts.Size.Width),
			Height:  float32(opts.Size.Height),
			targetW: opts.Size.Width,
			targetH: opts.Size.Height,
		},
	)
}

// Body is the view of the components the update rule touches.
type Body struct {
	*Player
	*Position
	*Size
	*Animation
}

// Apply runs one action against the body at time ticks. It reports whether
// the animation advanced to its next frame.
func (b Body) Apply(ticks uint32, a Action) bool {
	b.Player.State = a

	advanced := b.Animation.tick(ticks)

	switch a.Kind {
	case ActionWalk:
		dx, dy := a.Direction.delta()
		b.Position.X += dx * b.Player.Velocity
		b.Position.Y += dy * b.Player.Velocity
		b.Player.Facing = a.Direction
	case ActionStop:
		b.Animation.Step = 0
		b.Player.Facing = a.Direction
	case ActionScaleUp:
		b.Size.Width += b.Player.ScaleRate
		b.Size.Height += b.Player.ScaleRate
	case ActionScaleDown:
		b.Size.Width = max(0, b.Size.Width-b.Player.ScaleRate)
		b.Size.Height = max(0, b.Size.Height-b.Player.ScaleRate)
	}
	return advanced
}

// tick advances the step when at least FrameTime has passed since the last
// advance. A clock value behind FrameStart counts as no time passing.
func (a *Animation) tick(ticks uint32) bool {
	if ticks < a.FrameStart || ticks-a.FrameStart < a.FrameTime {
		return false
	}
	frames := max(a.Frames, 1)
	a.Step = (a.Step + 1) % frames
	a.FrameStart = ticks
	return true
}

// Delay is the time since the last frame advance.
func (a *Animation) Delay(ticks uint32) uint32 {
	if ticks < a.FrameStart {
		return 0
	}
	return ticks - a.FrameStart
}

// SourceRect is the sheet rectangle for the body's current frame.
func (b Body) SourceRect(layout sprite.Layout) image.Rectangle {
	return layout.FrameRect(int(b.Player.Facing), b.Animation.Step)
}
