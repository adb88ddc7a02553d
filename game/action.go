package game

import "fmt"

// Direction is a facing. Its value is the sprite-sheet direction index.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// delta is the unit step of the direction in screen coordinates.
func (d Direction) delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	}
	return 0, 0
}

// ActionKind is the mode part of an Action.
type ActionKind int

const (
	ActionWalk ActionKind = iota
	ActionStop
	ActionScaleUp
	ActionScaleDown
)

// Action is one player command. Direction is only meaningful for walk and
// stop.
type Action struct {
	Kind      ActionKind
	Direction Direction
}

func Walk(d Direction) Action { return Action{Kind: ActionWalk, Direction: d} }
func Stop(d Direction) Action { return Action{Kind: ActionStop, Direction: d} }
func ScaleUp() Action         { return Action{Kind: ActionScaleUp} }
func ScaleDown() Action       { return Action{Kind: ActionScaleDown} }

// Directed reports whether the action carries a direction.
func (a Action) Directed() bool {
	return a.Kind == ActionWalk || a.Kind == ActionStop
}

func (a Action) String() string {
	switch a.Kind {
	case ActionWalk:
		return "walk(" + a.Direction.String() + ")"
	case ActionStop:
		return "stop(" + a.Direction.String() + ")"
	case ActionScaleUp:
		return "scale-up"
	case ActionScaleDown:
		return "scale-down"
	}
	return fmt.Sprintf("Action(%d)", int(a.Kind))
}
