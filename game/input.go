package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeySource reports keyboard state for the current tick.
type KeySource interface {
	IsPressed(key ebiten.Key) bool
	JustPressed(key ebiten.Key) bool
	JustReleased(key ebiten.Key) bool
}

// EbitenKeys reads the live keyboard through ebiten.
type EbitenKeys struct{}

func (EbitenKeys) IsPressed(key ebiten.Key) bool    { return ebiten.IsKeyPressed(key) }
func (EbitenKeys) JustPressed(key ebiten.Key) bool  { return inpututil.IsKeyJustPressed(key) }
func (EbitenKeys) JustReleased(key ebiten.Key) bool { return inpututil.IsKeyJustReleased(key) }

// DirectionKey binds a key to a walk direction.
type DirectionKey struct {
	Key       ebiten.Key
	Direction Direction
}

// Bindings maps keys to actions. Walk keys are scanned in order.
type Bindings struct {
	Walk      []DirectionKey
	ScaleUp   []ebiten.Key
	ScaleDown []ebiten.Key
	Quit      []ebiten.Key
	HUD       []ebiten.Key
	Overlay   []ebiten.Key
}

// DefaultBindings are arrow keys to walk, keypad plus/minus (or =/-) to
// scale, escape to quit, F3 for the HUD and F1 for the debug overlay.
func DefaultBindings() Bindings {
	return Bindings{
		Walk: []DirectionKey{
			{ebiten.KeyArrowLeft, Left},
			{ebiten.KeyArrowRight, Right},
			{ebiten.KeyArrowUp, Up},
			{ebiten.KeyArrowDown, Down},
		},
		ScaleUp:   []ebiten.Key{ebiten.KeyKPAdd, ebiten.KeyEqual},
		ScaleDown: []ebiten.Key{ebiten.KeyKPSubtract, ebiten.KeyMinus},
		Quit:      []ebiten.Key{ebiten.KeyEscape},
		HUD:       []ebiten.Key{ebiten.KeyF3},
		Overlay:   []ebiten.Key{ebiten.KeyF1},
	}
}

// Actions turns this tick's key state into player actions. A held walk key
// yields a walk every tick, the way a repeating key-down would; the tick it
// is released yields a stop.
func (b Bindings) Actions(keys KeySource) []Action {
	var actions []Action
	for _, wk := range b.Walk {
		switch {
		case keys.IsPressed(wk.Key):
			actions = append(actions, Walk(wk.Direction))
		case keys.JustReleased(wk.Key):
			actions = append(actions, Stop(wk.Direction))
		}
	}
	if anyJustPressed(keys, b.ScaleUp) {
		actions = append(actions, ScaleUp())
	}
	if anyJustPressed(keys, b.ScaleDown) {
		actions = append(actions, ScaleDown())
	}
	return actions
}

func anyJustPressed(keys KeySource, set []ebiten.Key) bool {
	for _, k := range set {
		if keys.JustPressed(k) {
			return true
		}
	}
	return false
}
