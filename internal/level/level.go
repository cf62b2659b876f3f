package level

import (
	"fmt"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
)

// Level is a loaded puzzle: an immutable tile grid, the entities on it and the
// committed and undone step histories.
type Level struct {
	title    string
	columns  int
	rows     int
	tiles    []TileType
	entities []*Entity
	players  int
	clusters []Cluster

	current int
	anchor  *Entity

	history *StepHistory
	undo    *StepHistory

	buffered       bool
	bufferedInput  Input
	bufferedTarget *Entity

	moves int

	sound      SoundPlayer
	onComplete func()
}

// Option configures a Level at construction.
type Option func(*Level)

// WithSoundPlayer sets the audio collaborator. The default plays nothing.
func WithSoundPlayer(p SoundPlayer) Option {
	return func(l *Level) {
		if p != nil {
			l.sound = p
		}
	}
}

// WithCompletion registers the callback invoked once per winning push.
func WithCompletion(fn func()) Option {
	return func(l *Level) {
		l.onComplete = fn
	}
}

// New validates def and builds a level from it. Nothing is constructed when
// validation fails.
func New(def Definition, opts ...Option) (*Level, error) {
	specs, err := def.Specs()
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", def.Title, err)
	}

	l := &Level{
		title:   def.Title,
		columns: def.Columns,
		rows:    def.Rows,
		tiles:   make([]TileType, len(def.Tiles)),
		history: NewStepHistory(),
		undo:    NewStepHistory(),
		sound:   silentPlayer{},
	}
	for i, t := range def.Tiles {
		l.tiles[i] = TileType(t)
	}

	l.entities = make([]*Entity, len(specs))
	for i, spec := range specs {
		e := newEntity(i, spec.Type, spec.Position, spec.Orientation, spec.Cluster)
		if spec.Type == EntityPlayer {
			l.players++
		}
		if spec.Focused {
			e.focused = true
			l.current = i
		}
		l.entities[i] = e
	}

	l.clusters = buildClusters(def.Clusters, l.entities, l.columns, l.rows)

	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Title returns the level title.
func (l *Level) Title() string { return l.title }

// Columns returns the grid width in tiles.
func (l *Level) Columns() int { return l.columns }

// Rows returns the grid height in tiles.
func (l *Level) Rows() int { return l.rows }

// Moves returns the number of walk and push steps currently committed.
func (l *Level) Moves() int { return l.moves }

// Undoable returns the number of steps that can be undone.
func (l *Level) Undoable() int { return l.history.StepCount() }

// Redoable returns the number of steps that can be redone.
func (l *Level) Redoable() int { return l.undo.StepCount() }

// Tile returns the tile at p, or TileEmpty outside the grid.
func (l *Level) Tile(p hexagon.Position) TileType {
	if !p.InBounds(l.columns, l.rows) {
		return TileEmpty
	}
	return l.tiles[hexagon.TileIndex(p, l.columns)]
}

// EntityAt returns the entity standing at p, or nil.
func (l *Level) EntityAt(p hexagon.Position) *Entity {
	for _, e := range l.entities {
		if e.position == p {
			return e
		}
	}
	return nil
}

// Entities returns the level's entities in load order.
func (l *Level) Entities() []*Entity {
	out := make([]*Entity, len(l.entities))
	copy(out, l.entities)
	return out
}

// Entity returns the entity with the given id, or nil.
func (l *Level) Entity(id int) *Entity {
	if id < 0 || id >= len(l.entities) {
		return nil
	}
	return l.entities[id]
}

// Players returns the number of player entities.
func (l *Level) Players() int { return l.players }

// CurrentPlayer returns the focused player.
func (l *Level) CurrentPlayer() *Entity {
	return l.entities[l.current]
}

// CurrentPlayerIndex returns the id of the focused player.
func (l *Level) CurrentPlayerIndex() int { return l.current }

// Busy reports whether any entity is still settling a change.
func (l *Level) Busy() bool {
	for _, e := range l.entities {
		if !e.CanChange() {
			return true
		}
	}
	return false
}

// HasBufferedInput reports whether an input is waiting for the focused
// player to become idle.
func (l *Level) HasBufferedInput() bool { return l.buffered }

// SettleAll marks every entity idle.
func (l *Level) SettleAll() {
	for _, e := range l.entities {
		e.Settle()
	}
}

// Won reports whether every spot tile holds a block.
func (l *Level) Won() bool {
	for i, t := range l.tiles {
		if t != TileSpot {
			continue
		}
		e := l.EntityAt(hexagon.PositionOf(i, l.columns))
		if e == nil || e.kind != EntityBlock {
			return false
		}
	}
	return true
}

// AnchorPoint returns where an entity standing at p is drawn under m.
// Slabs are raised by a quarter of the tile radius.
func (l *Level) AnchorPoint(m hexagon.Metrics, p hexagon.Position) (x, y float64, ok bool) {
	x, y, ok = m.Center(p)
	if ok && l.Tile(p) == TileSlab {
		y -= m.Radius / 4
	}
	return x, y, ok
}

// Snapshot captures the observable state of a level.
type Snapshot struct {
	Title         string
	Columns       int
	Rows          int
	Tiles         []TileType
	Entities      []EntityView
	CurrentPlayer int
	Moves         int
	Undoable      int
	Redoable      int
	Won           bool
}

// Snapshot returns a copy of the level's observable state.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		Title:         l.title,
		Columns:       l.columns,
		Rows:          l.rows,
		Tiles:         make([]TileType, len(l.tiles)),
		Entities:      make([]EntityView, len(l.entities)),
		CurrentPlayer: l.current,
		Moves:         l.moves,
		Undoable:      l.history.StepCount(),
		Redoable:      l.undo.StepCount(),
		Won:           l.Won(),
	}
	copy(s.Tiles, l.tiles)
	for i, e := range l.entities {
		s.Entities[i] = e.View()
	}
	return s
}
