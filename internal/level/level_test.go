package level

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-hive/internal/hexagon"
)

const (
	F = int(TileFloor)
	S = int(TileSpot)
	L = int(TileSlab)
	E = int(TileEmpty)

	down = int(hexagon.LowerMiddle)
	up   = int(hexagon.UpperMiddle)
)

type soundRecorder struct {
	played []Sound
}

func (r *soundRecorder) Play(s Sound) {
	r.played = append(r.played, s)
}

func (r *soundRecorder) reset() {
	r.played = nil
}

type fixture struct {
	level *Level
	sound *soundRecorder
	wins  int
}

func newFixture(t *testing.T, def Definition) *fixture {
	t.Helper()
	f := &fixture{sound: &soundRecorder{}}
	l, err := New(def, WithSoundPlayer(f.sound), WithCompletion(func() { f.wins++ }))
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	f.level = l
	return f
}

// do sends an input and lets every entity settle.
func (f *fixture) do(inputs ...Input) {
	for _, in := range inputs {
		f.level.HandleInput(in)
		f.level.SettleAll()
	}
}

// column builds a one-column level; entities stand in that column.
func column(tiles []int, entities ...int) Definition {
	return Definition{
		Title:    "test",
		Columns:  1,
		Rows:     len(tiles),
		Tiles:    tiles,
		Entities: entities,
	}
}

func assertSounds(t *testing.T, r *soundRecorder, want ...Sound) {
	t.Helper()
	if len(r.played) != len(want) {
		t.Fatalf("sounds = %v, want %v", r.played, want)
	}
	for i := range want {
		if r.played[i] != want[i] {
			t.Fatalf("sounds = %v, want %v", r.played, want)
		}
	}
}

func assertAt(t *testing.T, e *Entity, want hexagon.Position) {
	t.Helper()
	if e.Position() != want {
		t.Errorf("entity #%d at %v, want %v", e.ID(), e.Position(), want)
	}
}

func TestWalk(t *testing.T) {
	f := newFixture(t, column([]int{F, F, F}, CodeFocusedPlayer, 0, 0, down, 0))
	player := f.level.CurrentPlayer()

	f.level.HandleInput(InputForward)

	assertAt(t, player, hexagon.P(0, 1))
	last, _ := player.LastChange()
	if last.Kind != ChangeWalk {
		t.Errorf("last change kind = %v, want walk", last.Kind)
	}
	if f.level.Moves() != 1 || f.level.Undoable() != 1 {
		t.Errorf("Moves() = %d, Undoable() = %d, want 1, 1", f.level.Moves(), f.level.Undoable())
	}
	if !f.level.Busy() {
		t.Errorf("level should be busy until the walk settles")
	}
	assertSounds(t, f.sound, SoundMove)
}

func TestWalkBackward(t *testing.T) {
	f := newFixture(t, column([]int{F, F, F}, CodeFocusedPlayer, 0, 1, up, 0))
	f.do(InputBackward)

	assertAt(t, f.level.CurrentPlayer(), hexagon.P(0, 2))
	if f.level.CurrentPlayer().Orientation() != hexagon.UpperMiddle {
		t.Errorf("walking backward changed the orientation")
	}
}

func TestPushOntoSpotWins(t *testing.T) {
	f := newFixture(t, column([]int{F, F, S},
		CodeFocusedPlayer, 0, 0, down, 0,
		CodeBlock, 0, 1, 0, 0,
	))
	player := f.level.Entity(0)
	block := f.level.Entity(1)

	if f.level.Won() {
		t.Fatalf("level won before any move")
	}

	f.do(InputForward)

	assertAt(t, player, hexagon.P(0, 1))
	assertAt(t, block, hexagon.P(0, 2))
	if f.wins != 1 {
		t.Errorf("completion fired %d times, want 1", f.wins)
	}
	if !f.level.Won() {
		t.Errorf("Won() = false after covering the only spot")
	}
	assertSounds(t, f.sound, SoundWin)

	step := f.level.history.Last()
	if len(step) != 2 || step[0].Kind != ChangePush || step[1].Kind != ChangePushed {
		t.Errorf("committed step = %v, want push then pushed", step)
	}

	f.do(InputUndo)
	if f.level.Won() {
		t.Errorf("Won() = true after undoing the winning push")
	}
	assertAt(t, block, hexagon.P(0, 1))

	f.do(InputRedo)
	if !f.level.Won() {
		t.Errorf("Won() = false after redoing the winning push")
	}
	if f.wins != 1 {
		t.Errorf("redo fired completion again: %d", f.wins)
	}
}

func TestPushChain(t *testing.T) {
	f := newFixture(t, column([]int{F, F, F, F, S},
		CodeFocusedPlayer, 0, 0, down, 0,
		CodeBlock, 0, 1, 0, 0,
		CodeBlock, 0, 2, 0, 0,
	))

	f.do(InputForward)

	assertAt(t, f.level.Entity(0), hexagon.P(0, 1))
	assertAt(t, f.level.Entity(1), hexagon.P(0, 2))
	assertAt(t, f.level.Entity(2), hexagon.P(0, 3))
	assertSounds(t, f.sound, SoundPush)
	if f.wins != 0 {
		t.Errorf("completion fired without covering the spot")
	}
}

func TestRejectedPushes(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
	}{
		{
			name: "grid edge",
			def: column([]int{F, F},
				CodeFocusedPlayer, 0, 0, down, 0,
				CodeBlock, 0, 1, 0, 0),
		},
		{
			name: "empty tile",
			def: column([]int{F, F, E},
				CodeFocusedPlayer, 0, 0, down, 0,
				CodeBlock, 0, 1, 0, 0),
		},
		{
			name: "block onto slab",
			def: column([]int{F, F, L},
				CodeFocusedPlayer, 0, 0, down, 0,
				CodeBlock, 0, 1, 0, 0),
		},
		{
			name: "walk into edge",
			def:  column([]int{F, F}, CodeFocusedPlayer, 0, 1, down, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.def)
			before := f.level.Snapshot()
			changes := f.level.history.ChangeCount()

			f.level.HandleInput(InputForward)

			if got := f.level.history.ChangeCount(); got != changes {
				t.Errorf("ChangeCount() = %d, want %d", got, changes)
			}
			if f.level.Undoable() != 0 || f.level.Moves() != 0 {
				t.Errorf("rejected push recorded history: %d steps, %d moves",
					f.level.Undoable(), f.level.Moves())
			}
			assertSounds(t, f.sound, SoundHit)

			f.level.SettleAll()
			after := f.level.Snapshot()
			if !reflect.DeepEqual(before, after) {
				t.Errorf("state changed:\n before %+v\n after  %+v", before, after)
			}

			// The entity that ran into the obstacle is marked blocked.
			var blocked int
			for _, e := range f.level.Entities() {
				if c, ok := e.LastChange(); ok && c.Kind == ChangeBlocked {
					blocked++
				}
			}
			if blocked != 1 {
				t.Errorf("%d entities marked blocked, want 1", blocked)
			}
		})
	}
}

func TestPlayerWalksOntoSlab(t *testing.T) {
	f := newFixture(t, column([]int{F, L}, CodeFocusedPlayer, 0, 0, down, 0))
	f.do(InputForward)
	assertAt(t, f.level.CurrentPlayer(), hexagon.P(0, 1))
	assertSounds(t, f.sound, SoundMove)
}

func TestTurnAndUndo(t *testing.T) {
	f := newFixture(t, column([]int{F}, CodeFocusedPlayer, 0, 0, down, 0))
	player := f.level.CurrentPlayer()

	f.do(InputLeft)
	if player.Orientation() != hexagon.LowerRight {
		t.Fatalf("after left turn Orientation() = %v, want %v", player.Orientation(), hexagon.LowerRight)
	}
	f.do(InputRight, InputRight)
	if player.Orientation() != hexagon.LowerLeft {
		t.Fatalf("after two right turns Orientation() = %v, want %v", player.Orientation(), hexagon.LowerLeft)
	}
	if f.level.Moves() != 0 {
		t.Errorf("turns counted as moves: %d", f.level.Moves())
	}

	f.sound.reset()
	f.do(InputUndo, InputUndo, InputUndo)
	if player.Orientation() != hexagon.LowerMiddle {
		t.Errorf("after undoing all turns Orientation() = %v, want %v", player.Orientation(), hexagon.LowerMiddle)
	}
	assertSounds(t, f.sound, SoundTurn, SoundTurn, SoundTurn)
	if f.level.Redoable() != 3 {
		t.Errorf("Redoable() = %d, want 3", f.level.Redoable())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	def := Definition{
		Title:   "round trip",
		Columns: 4,
		Rows:    4,
		Tiles: []int{
			F, F, F, F,
			F, F, S, F,
			F, F, F, F,
			F, L, F, F,
		},
		Entities: []int{
			CodeFocusedPlayer, 0, 0, down, 0,
			CodePlayer, 3, 3, up, 0,
			CodeBlock, 0, 1, 0, 0,
			CodeBlock, 2, 2, 0, 0,
		},
	}
	f := newFixture(t, def)

	inputs := []Input{
		InputForward, InputForward, InputLeft, InputForward, InputSwitch,
		InputForward, InputRight, InputBackward, InputForward, InputSwitch,
		InputLeft, InputForward, InputForward,
	}

	initial := f.level.Snapshot()
	f.do(inputs...)
	final := f.level.Snapshot()

	steps := f.level.Undoable()
	if steps == 0 {
		t.Fatalf("no steps were committed")
	}

	for i := 0; i < steps; i++ {
		f.do(InputUndo)
	}
	assertSameState(t, "after undoing everything", initial, f.level.Snapshot())

	for i := 0; i < steps; i++ {
		f.do(InputRedo)
	}
	assertSameState(t, "after redoing everything", final, f.level.Snapshot())
}

func assertSameState(t *testing.T, when string, want, got Snapshot) {
	t.Helper()
	if got.CurrentPlayer != want.CurrentPlayer {
		t.Errorf("%s: CurrentPlayer = %d, want %d", when, got.CurrentPlayer, want.CurrentPlayer)
	}
	if got.Moves != want.Moves {
		t.Errorf("%s: Moves = %d, want %d", when, got.Moves, want.Moves)
	}
	if !reflect.DeepEqual(got.Entities, want.Entities) {
		t.Errorf("%s: entities differ\n got  %+v\n want %+v", when, got.Entities, want.Entities)
	}
}

func TestNewActionClearsRedo(t *testing.T) {
	f := newFixture(t, column([]int{F, F, F}, CodeFocusedPlayer, 0, 0, down, 0))

	f.do(InputForward, InputUndo)
	if f.level.Redoable() != 1 {
		t.Fatalf("Redoable() = %d, want 1", f.level.Redoable())
	}
	f.do(InputLeft)
	if f.level.Redoable() != 0 {
		t.Errorf("Redoable() after a new turn = %d, want 0", f.level.Redoable())
	}
}

func TestMoveCountFollowsHistory(t *testing.T) {
	f := newFixture(t, column([]int{F, F, F, F}, CodeFocusedPlayer, 0, 0, down, 0))

	f.do(InputForward, InputForward, InputLeft)
	if f.level.Moves() != 2 {
		t.Fatalf("Moves() = %d, want 2", f.level.Moves())
	}
	f.do(InputUndo, InputUndo)
	if f.level.Moves() != 1 {
		t.Errorf("Moves() after undoing a turn and a walk = %d, want 1", f.level.Moves())
	}
	f.do(InputRedo)
	if f.level.Moves() != 2 {
		t.Errorf("Moves() after redo = %d, want 2", f.level.Moves())
	}
}

func threePlayers() Definition {
	return Definition{
		Title:   "three",
		Columns: 3,
		Rows:    1,
		Tiles:   []int{F, F, F},
		Entities: []int{
			CodeFocusedPlayer, 0, 0, down, 0,
			CodePlayer, 1, 0, down, 0,
			CodePlayer, 2, 0, down, 0,
		},
	}
}

func assertFocus(t *testing.T, l *Level, want int) {
	t.Helper()
	if l.CurrentPlayerIndex() != want {
		t.Errorf("CurrentPlayerIndex() = %d, want %d", l.CurrentPlayerIndex(), want)
	}
	for _, e := range l.Entities() {
		if e.Focused() != (e.ID() == want) {
			t.Errorf("entity #%d Focused() = %v", e.ID(), e.Focused())
		}
	}
}

func TestSwitchBackCollapses(t *testing.T) {
	f := newFixture(t, Definition{
		Title:   "pair",
		Columns: 2,
		Rows:    1,
		Tiles:   []int{F, F},
		Entities: []int{
			CodeFocusedPlayer, 0, 0, down, 0,
			CodePlayer, 1, 0, down, 0,
		},
	})

	f.do(InputSwitch)
	assertFocus(t, f.level, 1)
	if f.level.Undoable() != 1 {
		t.Fatalf("Undoable() after one switch = %d, want 1", f.level.Undoable())
	}

	f.do(InputSwitch)
	assertFocus(t, f.level, 0)
	if f.level.Undoable() != 0 {
		t.Errorf("Undoable() after switching back = %d, want 0", f.level.Undoable())
	}
}

func TestSwitchKeepsNetStep(t *testing.T) {
	f := newFixture(t, threePlayers())

	f.do(InputSwitch, InputSwitch)
	assertFocus(t, f.level, 2)
	if f.level.Undoable() != 1 {
		t.Fatalf("Undoable() after A->B->C = %d, want 1", f.level.Undoable())
	}

	f.do(InputUndo)
	assertFocus(t, f.level, 0)

	f.do(InputRedo)
	assertFocus(t, f.level, 2)
}

func TestSwitchCycleCollapses(t *testing.T) {
	f := newFixture(t, threePlayers())

	f.do(InputSwitch, InputSwitch, InputSwitch)
	assertFocus(t, f.level, 0)
	if f.level.Undoable() != 0 {
		t.Errorf("Undoable() after A->B->C->A = %d, want 0", f.level.Undoable())
	}
}

func TestSwitchAfterMoveIsKept(t *testing.T) {
	f := newFixture(t, threePlayers())

	f.do(InputSwitch, InputLeft, InputSwitch)
	assertFocus(t, f.level, 2)
	if f.level.Undoable() != 3 {
		t.Errorf("Undoable() = %d, want 3", f.level.Undoable())
	}

	f.do(InputUndo, InputUndo, InputUndo)
	assertFocus(t, f.level, 0)
}

func TestSwitchToTarget(t *testing.T) {
	f := newFixture(t, threePlayers())

	f.level.Switch(f.level.Entity(2))
	f.level.SettleAll()
	assertFocus(t, f.level, 2)

	f.level.Switch(f.level.Entity(2))
	if f.level.Undoable() != 1 {
		t.Errorf("switching to the focused player recorded a step")
	}

	mustPanic(t, "foreign entity", func() {
		other := newFixture(t, threePlayers())
		f.level.Switch(other.level.Entity(1))
	})
}

func TestSwitchSinglePlayer(t *testing.T) {
	f := newFixture(t, column([]int{F}, CodeFocusedPlayer, 0, 0, down, 0))
	f.do(InputSwitch)
	if f.level.Undoable() != 0 || f.level.HasBufferedInput() {
		t.Errorf("switch on a single-player level had an effect")
	}
}

func TestInputBuffering(t *testing.T) {
	f := newFixture(t, column([]int{F}, CodeFocusedPlayer, 0, 0, down, 0))
	player := f.level.CurrentPlayer()

	f.level.HandleInput(InputLeft)
	if player.CanChange() {
		t.Fatalf("player should be busy after a turn")
	}

	f.level.HandleInput(InputLeft)
	f.level.HandleInput(InputRight)
	if !f.level.HasBufferedInput() {
		t.Fatalf("input was not buffered while busy")
	}
	if f.level.Undoable() != 1 {
		t.Fatalf("buffered input ran early")
	}

	f.level.Tick()
	if f.level.Undoable() != 1 {
		t.Fatalf("buffered input ran while still busy")
	}

	player.Settle()
	f.level.Tick()
	if f.level.Undoable() != 2 || f.level.HasBufferedInput() {
		t.Fatalf("Undoable() = %d, buffered = %v after dispatch", f.level.Undoable(), f.level.HasBufferedInput())
	}
	// First buffered input wins: left, not right.
	if player.Orientation() != hexagon.UpperRight {
		t.Errorf("Orientation() = %v, want %v", player.Orientation(), hexagon.UpperRight)
	}

	player.Settle()
	f.level.Tick()
	f.level.Tick()
	if f.level.Undoable() != 2 {
		t.Errorf("buffered input dispatched more than once")
	}
}

func TestBufferedSwitchKeepsTarget(t *testing.T) {
	f := newFixture(t, threePlayers())

	f.level.HandleInput(InputLeft)
	f.level.Switch(f.level.Entity(2))
	assertFocus(t, f.level, 0)

	f.level.SettleAll()
	f.level.Tick()
	assertFocus(t, f.level, 2)
}

func TestBufferedUndo(t *testing.T) {
	f := newFixture(t, column([]int{F, F}, CodeFocusedPlayer, 0, 0, down, 0))

	f.level.HandleInput(InputForward)
	f.level.HandleInput(InputUndo)
	assertAt(t, f.level.CurrentPlayer(), hexagon.P(0, 1))

	f.level.SettleAll()
	f.level.Tick()
	assertAt(t, f.level.CurrentPlayer(), hexagon.P(0, 0))
}

func TestClustersLinkAdjacentBlocks(t *testing.T) {
	def := Definition{
		Title:    "clusters",
		Clusters: 2,
		Columns:  3,
		Rows:     2,
		Tiles:    []int{F, F, F, F, F, F},
		Entities: []int{
			CodeFocusedPlayer, 2, 1, down, 0,
			CodeBlock, 0, 0, 0, 1,
			CodeBlock, 0, 1, 0, 1,
			CodeBlock, 1, 0, 0, 1,
			CodeBlock, 2, 0, 0, 2,
		},
	}
	f := newFixture(t, def)

	clusters := f.level.Clusters()
	if len(clusters) != 2 {
		t.Fatalf("len(Clusters()) = %d, want 2", len(clusters))
	}
	if len(clusters[0].Blocks) != 3 || len(clusters[1].Blocks) != 1 {
		t.Errorf("cluster sizes = %d, %d, want 3, 1", len(clusters[0].Blocks), len(clusters[1].Blocks))
	}
	// (0,0)-(0,1), (0,0)-(1,0) and (0,1)-(1,0) are all adjacent.
	if len(clusters[0].Links) != 3 {
		t.Errorf("cluster 1 has %d links, want 3", len(clusters[0].Links))
	}
	if len(clusters[1].Links) != 0 {
		t.Errorf("single block cluster has %d links", len(clusters[1].Links))
	}
}

func TestAnchorPointRaisesSlabs(t *testing.T) {
	f := newFixture(t, column([]int{F, L}, CodeFocusedPlayer, 0, 0, down, 0))
	m := hexagon.MetricsFromRadius(1, 2, 4, 0, 0)

	_, floorY, _ := m.Center(hexagon.P(0, 1))
	_, slabY, ok := f.level.AnchorPoint(m, hexagon.P(0, 1))
	if !ok || slabY != floorY-1 {
		t.Errorf("slab anchor y = %v, want %v", slabY, floorY-1)
	}
}
