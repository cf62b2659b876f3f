package level

import (
	"fmt"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
)

// EntityState tracks whether an entity may accept a new change.
type EntityState uint8

const (
	EntityIdle EntityState = iota
	EntityBusy
)

// String returns a human-readable name for the state.
func (s EntityState) String() string {
	if s == EntityBusy {
		return "busy"
	}
	return "idle"
}

// Entity is a player or block standing on the grid.
// Entities are owned by their level and only change through applied Changes.
type Entity struct {
	id          int
	kind        EntityType
	position    hexagon.Position
	orientation hexagon.Orientation
	focused     bool
	cluster     int

	state    EntityState
	last     Change
	revision uint64
}

func newEntity(id int, kind EntityType, p hexagon.Position, o hexagon.Orientation, cluster int) *Entity {
	return &Entity{
		id:          id,
		kind:        kind,
		position:    p,
		orientation: o,
		cluster:     cluster,
	}
}

// ID returns the entity's index in its level.
func (e *Entity) ID() int { return e.id }

// Type returns whether the entity is a player or a block.
func (e *Entity) Type() EntityType { return e.kind }

// Position returns the entity's grid position.
func (e *Entity) Position() hexagon.Position { return e.position }

// Orientation returns the direction the entity faces.
func (e *Entity) Orientation() hexagon.Orientation { return e.orientation }

// Focused reports whether the entity is the selected player.
func (e *Entity) Focused() bool { return e.focused }

// Cluster returns the 1-based block cluster the entity belongs to, or 0.
func (e *Entity) Cluster() int { return e.cluster }

// State returns the entity's Idle/Busy state.
func (e *Entity) State() EntityState { return e.state }

// CanChange reports whether the entity is idle and may accept a new change.
func (e *Entity) CanChange() bool {
	return e.state == EntityIdle
}

// LastChange returns the most recent change applied to the entity.
// The boolean is false when no change has been applied yet.
func (e *Entity) LastChange() (Change, bool) {
	return e.last, e.revision > 0
}

// Revision counts the changes applied to the entity. Visual collaborators
// compare revisions to detect a new change to animate.
func (e *Entity) Revision() uint64 { return e.revision }

// HandleChange applies the logical effect of c and marks the entity Busy.
// Rejected kinds leave position, orientation and focus untouched.
func (e *Entity) HandleChange(c Change) {
	switch c.Kind {
	case ChangeWalk, ChangePush, ChangePushed:
		e.position = c.Move.To
	case ChangeTurn:
		e.orientation = c.Turn.To
	case ChangeToggle:
		if e.kind != EntityPlayer {
			panic(fmt.Sprintf("level: toggle applied to %s #%d", e.kind, e.id))
		}
		e.focused = c.Toggle.Focused
	case ChangeBlocked, ChangeInvalid:
	default:
		panic(fmt.Sprintf("level: cannot apply change of kind %d", c.Kind))
	}

	e.state = EntityBusy
	e.last = c
	e.revision++
}

// Settle reports that the visual transition of the last change finished.
func (e *Entity) Settle() {
	e.state = EntityIdle
}

// EntityView is a read-only copy of an entity's logical state.
type EntityView struct {
	ID          int
	Type        EntityType
	Position    hexagon.Position
	Orientation hexagon.Orientation
	Focused     bool
	Cluster     int
	Busy        bool
}

// View returns a copy of the entity's logical state.
func (e *Entity) View() EntityView {
	return EntityView{
		ID:          e.id,
		Type:        e.kind,
		Position:    e.position,
		Orientation: e.orientation,
		Focused:     e.focused,
		Cluster:     e.cluster,
		Busy:        e.state == EntityBusy,
	}
}
