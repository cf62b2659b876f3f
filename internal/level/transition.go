package level

import (
	"fmt"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
)

// HandleInput runs one input against the level. Switch cycles to the next
// player; use Switch to target a specific one.
func (l *Level) HandleInput(in Input) {
	switch in {
	case InputForward, InputBackward:
		l.move(in)
	case InputLeft, InputRight:
		l.turn(in)
	case InputUndo:
		l.undoStep()
	case InputRedo:
		l.redoStep()
	case InputSwitch:
		l.switchPlayer(nil)
	default:
		panic(fmt.Sprintf("level: unknown input %d", in))
	}
}

// Switch focuses target, or the next player after the focused one when
// target is nil. No-op on single-player levels and when target is already
// focused. Panics when target is not a player of this level.
func (l *Level) Switch(target *Entity) {
	if target != nil {
		if target.id >= len(l.entities) || l.entities[target.id] != target || target.kind != EntityPlayer {
			panic("level: switch target is not a player of this level")
		}
		if target.id == l.current {
			return
		}
	}
	l.switchPlayer(target)
}

// Tick dispatches the buffered input once the focused player is idle.
// The buffer is cleared before dispatch, so an input that makes the player
// busy again is not re-buffered by itself.
func (l *Level) Tick() {
	if !l.buffered || !l.CurrentPlayer().CanChange() {
		return
	}

	in, target := l.bufferedInput, l.bufferedTarget
	l.buffered = false
	l.bufferedTarget = nil

	if in == InputSwitch {
		l.switchPlayer(target)
		return
	}
	l.HandleInput(in)
}

// deferInput buffers in when the focused player is busy. The first buffered
// input wins until consumed. Returns true when the input must not run now.
func (l *Level) deferInput(in Input, target *Entity) bool {
	if l.CurrentPlayer().CanChange() {
		return false
	}
	if !l.buffered {
		l.buffered = true
		l.bufferedInput = in
		l.bufferedTarget = target
	}
	return true
}

func (l *Level) move(in Input) {
	if l.deferInput(in, nil) {
		return
	}
	l.anchor = nil

	player := l.CurrentPlayer()
	direction := player.orientation
	if in == InputBackward {
		direction = direction.Reverse()
	}

	at := player.position
	next := player
	for {
		first := next == player

		kind := ChangePushed
		if first {
			kind = ChangePush
		}
		c := l.history.Append(Change{
			Kind:   kind,
			Entity: next,
			Input:  in,
			Move:   MovePayload{From: at},
		})

		advanced, ok := hexagon.Advance(direction, at, l.columns, l.rows)
		if !ok {
			l.reject(direction)
			return
		}
		c.Move.To = advanced
		at = advanced

		tile := l.Tile(at)
		if tile == TileEmpty {
			l.reject(direction)
			return
		}
		if tile == TileSlab && c.Entity.kind == EntityBlock {
			l.reject(direction)
			return
		}

		next = l.EntityAt(at)
		if next != nil {
			continue
		}

		l.undo.Clear()
		l.moves++

		if first {
			c.Kind = ChangeWalk
			l.history.Commit()
			l.sound.Play(SoundMove)
			return
		}

		l.history.Commit()
		if l.Won() {
			if l.onComplete != nil {
				l.onComplete()
			}
			l.sound.Play(SoundWin)
			return
		}
		l.sound.Play(SoundPush)
		return
	}
}

func (l *Level) reject(direction hexagon.Orientation) {
	l.history.Discard(direction)
	l.sound.Play(SoundHit)
}

func (l *Level) turn(in Input) {
	if l.deferInput(in, nil) {
		return
	}
	l.anchor = nil

	player := l.CurrentPlayer()
	to := player.orientation.TurnLeft()
	if in == InputRight {
		to = player.orientation.TurnRight()
	}

	l.history.Append(Change{
		Kind:   ChangeTurn,
		Entity: player,
		Input:  in,
		Turn:   TurnPayload{From: player.orientation, To: to},
	})
	l.history.Commit()
	l.undo.Clear()
	l.sound.Play(SoundTurn)
}

func (l *Level) undoStep() {
	if l.deferInput(InputUndo, nil) {
		return
	}
	l.anchor = nil
	if l.history.SwapStep(l.undo, l.reverted(-1)) {
		l.syncCurrentPlayer()
	}
}

func (l *Level) redoStep() {
	if l.deferInput(InputRedo, nil) {
		return
	}
	l.anchor = nil
	if l.undo.SwapStep(l.history, l.reverted(+1)) {
		l.syncCurrentPlayer()
	}
}

// reverted plays the feedback of a reversed change and keeps the move count
// in step with the history the change lands in.
func (l *Level) reverted(moveDelta int) func(Change) {
	return func(c Change) {
		switch c.Kind {
		case ChangeWalk:
			l.sound.Play(SoundMove)
			l.moves += moveDelta
		case ChangePush:
			l.sound.Play(SoundPush)
			l.moves += moveDelta
		case ChangeTurn:
			l.sound.Play(SoundTurn)
		}
	}
}

func (l *Level) syncCurrentPlayer() {
	for i, e := range l.entities {
		if e.focused {
			l.current = i
			return
		}
	}
}

func (l *Level) switchPlayer(target *Entity) {
	if l.players <= 1 {
		return
	}
	if l.deferInput(InputSwitch, target) {
		return
	}

	current := l.CurrentPlayer()
	first := l.history.ChangeCount()
	l.history.Append(Change{
		Kind:   ChangeToggle,
		Entity: current,
		Input:  InputSwitch,
		Toggle: TogglePayload{Focused: false},
	})

	next := target
	if next == nil {
		next = l.nextPlayer()
	}
	l.current = next.id

	l.history.Append(Change{
		Kind:   ChangeToggle,
		Entity: next,
		Input:  InputSwitch,
		Toggle: TogglePayload{Focused: true},
	})
	l.history.Commit()
	l.undo.Clear()

	switch {
	case l.anchor == nil:
		l.anchor = current
	case l.anchor == next:
		// Back where the switching started: drop both switch steps.
		l.history.PopStep(0)
		l.history.PopStep(0)
		l.anchor = nil
	default:
		// Keep a single step from the anchor to the new player.
		l.history.changes[first].Entity = l.anchor
		l.history.PopStep(1)
	}
}

func (l *Level) nextPlayer() *Entity {
	n := len(l.entities)
	for i := 1; i <= n; i++ {
		e := l.entities[(l.current+i)%n]
		if e.kind == EntityPlayer {
			return e
		}
	}
	return l.CurrentPlayer()
}
