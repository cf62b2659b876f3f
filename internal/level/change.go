package level

import (
	"fmt"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
)

// ChangeKind discriminates the payload carried by a Change.
type ChangeKind uint8

const (
	ChangeWalk    ChangeKind = iota // Player moves, nothing pushed
	ChangePush                      // First entity of a push chain moves
	ChangePushed                    // Entity further down a push chain moves
	ChangeTurn                      // Orientation change
	ChangeToggle                    // Focus change
	ChangeBlocked                   // Rejected step, entity that hit the obstacle
	ChangeInvalid                   // Rejected step, other entities of the chain
)

// String returns a human-readable name for the change kind.
func (k ChangeKind) String() string {
	switch k {
	case ChangeWalk:
		return "walk"
	case ChangePush:
		return "push"
	case ChangePushed:
		return "pushed"
	case ChangeTurn:
		return "turn"
	case ChangeToggle:
		return "toggle"
	case ChangeBlocked:
		return "blocked"
	case ChangeInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// Moves reports whether the kind carries a Move payload.
func (k ChangeKind) Moves() bool {
	return k == ChangeWalk || k == ChangePush || k == ChangePushed
}

// Rejected reports whether the kind marks a discarded step.
func (k ChangeKind) Rejected() bool {
	return k == ChangeBlocked || k == ChangeInvalid
}

// MovePayload is the position transition of a walk, push or pushed change.
type MovePayload struct {
	From hexagon.Position
	To   hexagon.Position
}

// TurnPayload is the orientation transition of a turn change.
type TurnPayload struct {
	From hexagon.Orientation
	To   hexagon.Orientation
}

// TogglePayload is the focus state a toggle change sets.
type TogglePayload struct {
	Focused bool
}

// FacePayload is the direction a rejected step was heading.
type FacePayload struct {
	Direction hexagon.Orientation
}

// Change is one entity's atomic state transition. Kind selects which payload
// is meaningful; the others are zero.
type Change struct {
	Kind   ChangeKind
	Entity *Entity
	Input  Input

	Move   MovePayload
	Turn   TurnPayload
	Toggle TogglePayload
	Face   FacePayload
}

// String returns a compact description used in logs and test failures.
func (c Change) String() string {
	id := -1
	if c.Entity != nil {
		id = c.Entity.ID()
	}
	switch c.Kind {
	case ChangeWalk, ChangePush, ChangePushed:
		return fmt.Sprintf("%s#%d %v->%v", c.Kind, id, c.Move.From, c.Move.To)
	case ChangeTurn:
		return fmt.Sprintf("%s#%d %v->%v", c.Kind, id, c.Turn.From, c.Turn.To)
	case ChangeToggle:
		return fmt.Sprintf("%s#%d focused=%v", c.Kind, id, c.Toggle.Focused)
	default:
		return fmt.Sprintf("%s#%d %v", c.Kind, id, c.Face.Direction)
	}
}

// Reversed returns the change that undoes c. The boolean is false for
// rejected kinds, which never take part in history.
func (c Change) Reversed() (Change, bool) {
	r := c

	switch c.Kind {
	case ChangeWalk, ChangePush, ChangePushed:
		r.Input = flipMoveInput(c.Input)
		r.Move.From, r.Move.To = c.Move.To, c.Move.From
	case ChangeTurn:
		r.Input = flipTurnInput(c.Input)
		r.Turn.From, r.Turn.To = c.Turn.To, c.Turn.From
	case ChangeToggle:
		r.Toggle.Focused = !c.Toggle.Focused
	case ChangeBlocked, ChangeInvalid:
		return c, false
	default:
		panic(fmt.Sprintf("level: cannot reverse change of kind %d", c.Kind))
	}

	return r, true
}

func flipMoveInput(in Input) Input {
	if in == InputForward {
		return InputBackward
	}
	return InputForward
}

func flipTurnInput(in Input) Input {
	if in == InputLeft {
		return InputRight
	}
	return InputLeft
}
