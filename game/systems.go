package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/spritewalk/ecs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// ScaleTweenDuration is how long, in seconds, a size change takes to show.
const ScaleTweenDuration = 0.12

// ClockSystem advances the millisecond clock by the frame delta.
type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	c := s.Clock.Get()
	ms := frame.DeltaTime*1000 + c.carry
	whole := uint32(ms)
	c.carry = ms - float64(whole)
	c.Ticks += whole
}

// InputSystem reads the keyboard and queues the actions for this tick.
type InputSystem struct {
	Keys     KeySource
	Bindings Bindings

	Queue   ecs.Singleton[ActionQueue]
	Capture ecs.Singleton[InputCapture]
	UI      ecs.Singleton[UIState]
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	queue := s.Queue.Get()
	queue.Pending = queue.Pending[:0]

	if s.Capture.Get().Keyboard {
		return
	}

	ui := s.UI.Get()
	if anyJustPressed(s.Keys, s.Bindings.Quit) {
		ui.Quit = true
	}
	if anyJustPressed(s.Keys, s.Bindings.HUD) {
		ui.HUD = !ui.HUD
	}
	if anyJustPressed(s.Keys, s.Bindings.Overlay) {
		ui.Overlay = !ui.Overlay
	}

	queue.Pending = append(queue.Pending, s.Bindings.Actions(s.Keys)...)
}

// PlayerSystem applies the queued actions to every player entity in order.
type PlayerSystem struct {
	Log *zap.SugaredLogger

	Players ecs.Query[struct {
		ecs.EntityId
		*Player
		*Position
		*Size
		*Animation
	}]
	Clock ecs.Singleton[Clock]
	Queue ecs.Singleton[ActionQueue]
}

func (s *PlayerSystem) Execute(frame *ecs.UpdateFrame) {
	pending := s.Queue.Get().Pending
	if len(pending) == 0 {
		return
	}
	ticks := s.Clock.Get().Ticks

	for p := range s.Players.Iter() {
		body := Body{p.Player, p.Position, p.Size, p.Animation}
		for _, a := range pending {
			delay := body.Delay(ticks)
			advanced := body.Apply(ticks, a)
			if s.Log != nil {
				s.Log.Debugw("player action",
					"entity", p.EntityId,
					"action", a,
					"delay", delay,
					"advanced", advanced,
					"x", p.Position.X, "y", p.Position.Y,
					"width", p.Size.Width, "height", p.Size.Height,
				)
			}
		}
	}
}

// TweenSystem eases each DisplaySize towards its logical Size.
type TweenSystem struct {
	Entities ecs.Query[struct {
		*Size
		*DisplaySize
	}]
}

func (s *TweenSystem) Execute(frame *ecs.UpdateFrame) {
	dt := float32(frame.DeltaTime)
	for e := range s.Entities.Iter() {
		d := e.DisplaySize
		if e.Size.Width != d.targetW || e.Size.Height != d.targetH {
			d.targetW, d.targetH = e.Size.Width, e.Size.Height
			d.tweenW = gween.New(d.Width, float32(d.targetW), ScaleTweenDuration, ease.OutQuad)
			d.tweenH = gween.New(d.Height, float32(d.targetH), ScaleTweenDuration, ease.OutQuad)
		}
		if d.tweenW == nil {
			continue
		}

		w, doneW := d.tweenW.Update(dt)
		h, doneH := d.tweenH.Update(dt)
		d.Width, d.Height = w, h
		if doneW && doneH {
			d.Width, d.Height = float32(d.targetW), float32(d.targetH)
			d.tweenW, d.tweenH = nil, nil
		}
	}
}

var (
	background = color.White
	hudPanel   = color.RGBA{0, 0, 0, 0xa0}
)

// RenderSystem draws the scene onto Screen, which the game sets before each
// draw pass.
type RenderSystem struct {
	Screen *ebiten.Image

	Sprites ecs.Query[struct {
		*Position
		*Player
		*Animation
		*Sprite
		*DisplaySize
	}]
	Clock ecs.Singleton[Clock]
	UI    ecs.Singleton[UIState]
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Screen == nil {
		return
	}
	s.Screen.Fill(background)

	for e := range s.Sprites.Iter() {
		if e.Sprite.Sheet == nil || e.DisplaySize.Width <= 0 || e.DisplaySize.Height <= 0 {
			continue
		}
		layout := e.Sprite.Sheet.Layout

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(
			2*float64(e.DisplaySize.Width)/float64(layout.FrameWidth),
			2*float64(e.DisplaySize.Height)/float64(layout.FrameHeight),
		)
		op.GeoM.Translate(float64(e.Position.X), float64(e.Position.Y))
		s.Screen.DrawImage(e.Sprite.Sheet.Frame(int(e.Player.Facing), e.Animation.Step), op)
	}

	if s.UI.Get().HUD {
		s.drawHUD()
	}
}

func (s *RenderSystem) drawHUD() {
	ticks := s.Clock.Get().Ticks
	y := 4
	for e := range s.Sprites.Iter() {
		line := fmt.Sprintf("pos=(%d,%d) size=%.0fx%.0f state=%s step=%d tick=%d",
			e.Position.X, e.Position.Y,
			e.DisplaySize.Width, e.DisplaySize.Height,
			e.Player.State, e.Animation.Step, ticks)
		vector.DrawFilledRect(s.Screen, 2, float32(y-2), float32(len(line)*6+8), 18, hudPanel, false)
		ebitenutil.DebugPrintAt(s.Screen, line, 6, y)
		y += 20
	}
}
