// Package level implements the hive puzzle simulation: a hexagonal grid of
// tiles, the players and blocks standing on it, and the move, turn, switch,
// undo and redo transactions that change them.
//
// The package holds no timers and performs no I/O. Entities become Busy when
// a change is applied to them and stay Busy until the caller reports that the
// change has settled (see Entity.Settle). Inputs that arrive while the focused
// player is Busy are buffered and dispatched by Level.Tick.
package level

// TileType is the kind of ground at a grid position.
type TileType uint8

const (
	TileEmpty TileType = iota // Impassable
	TileFloor                 // Walkable by every entity
	TileSpot                  // Goal tile, must hold a block to win
	TileSlab                  // Walkable by players only
)

// TileTypeCount is the number of valid tile ids.
const TileTypeCount = 4

// String returns a human-readable name for the tile type.
func (t TileType) String() string {
	switch t {
	case TileEmpty:
		return "empty"
	case TileFloor:
		return "floor"
	case TileSpot:
		return "spot"
	case TileSlab:
		return "slab"
	default:
		return "unknown"
	}
}

// Walkable reports whether any entity may stand on the tile.
func (t TileType) Walkable() bool {
	return t == TileFloor || t == TileSpot || t == TileSlab
}

// EntityType distinguishes controllable players from pushable blocks.
type EntityType uint8

const (
	EntityPlayer EntityType = iota
	EntityBlock
)

// String returns a human-readable name for the entity type.
func (t EntityType) String() string {
	switch t {
	case EntityPlayer:
		return "player"
	case EntityBlock:
		return "block"
	default:
		return "unknown"
	}
}

// Input is a discrete command accepted by a level.
type Input uint8

const (
	InputForward Input = iota
	InputBackward
	InputLeft
	InputRight
	InputUndo
	InputRedo
	InputSwitch
)

// String returns a human-readable name for the input.
func (i Input) String() string {
	switch i {
	case InputForward:
		return "forward"
	case InputBackward:
		return "backward"
	case InputLeft:
		return "left"
	case InputRight:
		return "right"
	case InputUndo:
		return "undo"
	case InputRedo:
		return "redo"
	case InputSwitch:
		return "switch"
	default:
		return "unknown"
	}
}

// ParseInput maps a single-letter command to an input.
// Letters: f(orward) b(ackward) l(eft) r(ight) u(ndo) y (redo) s(witch).
func ParseInput(r rune) (Input, bool) {
	switch r {
	case 'f', 'F':
		return InputForward, true
	case 'b', 'B':
		return InputBackward, true
	case 'l', 'L':
		return InputLeft, true
	case 'r', 'R':
		return InputRight, true
	case 'u', 'U':
		return InputUndo, true
	case 'y', 'Y':
		return InputRedo, true
	case 's', 'S':
		return InputSwitch, true
	default:
		return 0, false
	}
}

// Sound names an effect the level asks its audio collaborator to play.
type Sound uint8

const (
	SoundMove Sound = iota
	SoundPush
	SoundTurn
	SoundHit
	SoundWin
)

// String returns a human-readable name for the sound.
func (s Sound) String() string {
	switch s {
	case SoundMove:
		return "move"
	case SoundPush:
		return "push"
	case SoundTurn:
		return "turn"
	case SoundHit:
		return "hit"
	case SoundWin:
		return "win"
	default:
		return "unknown"
	}
}

// SoundPlayer plays named sound effects. Calls are fire-and-forget.
type SoundPlayer interface {
	Play(s Sound)
}

// SoundFunc adapts a plain function to SoundPlayer.
type SoundFunc func(Sound)

// Play calls f(s).
func (f SoundFunc) Play(s Sound) {
	f(s)
}

type silentPlayer struct{}

func (silentPlayer) Play(Sound) {}
