// Package hive implements the hexagonal push puzzle as an arcade game:
// it drives a level.Level from platform input, animates its changes and
// walks through a campaign of levels.
package hive

import (
	"fmt"
	"sync"
	"time"

	"github.com/vovakirdan/tui-hive/internal/config"
	"github.com/vovakirdan/tui-hive/internal/core"
	"github.com/vovakirdan/tui-hive/internal/level"
	"github.com/vovakirdan/tui-hive/internal/levels"
	"github.com/vovakirdan/tui-hive/internal/registry"
)

// GameID is the registry identifier of the campaign.
const GameID = "hive"

// Settings configure a game before its first Reset.
type Settings struct {
	Config config.HiveConfig
	Sound  level.SoundPlayer

	// Levels is the campaign in play order. Nil loads the built-in pack.
	Levels []levels.Entry

	// StartLevel is the 0-based campaign index to begin with.
	StartLevel int
}

// Package-level defaults used by the registry factory
var (
	settingsMu      sync.RWMutex
	defaultSettings = Settings{Config: config.DefaultHiveConfig()}
)

// Configure sets the settings of games created through the registry.
func Configure(s Settings) {
	settingsMu.Lock()
	defer settingsMu.Unlock()
	defaultSettings = s
}

// Configured returns the settings of games created through the registry.
func Configured() Settings {
	settingsMu.RLock()
	defer settingsMu.RUnlock()
	return defaultSettings
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New(Configured())
	})
}

// Game implements the hive campaign.
type Game struct {
	settings Settings
	entries  []levels.Entry
	loadErr  error

	index int
	lvl   *level.Level
	anim  *Animator

	runtime core.RuntimeConfig
	layout  layout
	tick    uint64

	elapsed  time.Duration // time spent on the current level
	justWon  bool
	won      bool
	wonFor   time.Duration
	gameOver bool
	paused   bool
}

// New creates a game with the given settings.
func New(s Settings) *Game {
	return &Game{
		settings: s,
		anim:     NewAnimator(s.Config.Animation),
	}
}

// ID returns the game identifier.
func (g *Game) ID() string { return GameID }

// Title returns the display name.
func (g *Game) Title() string { return "Hive" }

// Reset loads the campaign and starts its first level.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.tick = 0
	g.gameOver = false
	g.paused = false
	g.loadErr = nil

	g.entries = g.settings.Levels
	if g.entries == nil {
		entries, err := levels.Builtin().LoadAll()
		if err != nil {
			g.loadErr = fmt.Errorf("loading built-in levels: %w", err)
		}
		g.entries = entries
	}
	if g.loadErr == nil && len(g.entries) == 0 {
		g.loadErr = fmt.Errorf("no levels to play")
	}
	if g.loadErr != nil {
		g.lvl = nil
		return
	}

	g.index = core.Clamp(g.settings.StartLevel, 0, len(g.entries)-1)
	g.loadLevel()
}

// Resize adapts the layout without restarting the level.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
	g.relayout()
}

// loadLevel builds the level at the current index.
func (g *Game) loadLevel() {
	entry := g.entries[g.index]
	lvl, err := entry.New(
		level.WithSoundPlayer(g.settings.Sound),
		level.WithCompletion(func() { g.justWon = true }),
	)
	if err != nil {
		g.loadErr = err
		g.lvl = nil
		return
	}

	g.lvl = lvl
	g.anim.Reset()
	g.elapsed = 0
	g.justWon = false
	g.won = false
	g.wonFor = 0
	g.relayout()
}

func (g *Game) relayout() {
	if g.lvl == nil {
		return
	}
	g.layout = newLayout(g.lvl.Columns(), g.lvl.Rows(), g.runtime.ScreenW, g.runtime.ScreenH)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	dt := g.runtime.TickDuration()

	if g.lvl == nil || g.layout.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionRestart) {
		g.gameOver = false
		g.loadLevel()
		return core.StepResult{State: g.State()}
	}

	if g.gameOver {
		g.anim.Advance(g.lvl, dt)
		return core.StepResult{State: g.State()}
	}

	if g.won {
		g.wonFor += dt
		g.anim.Advance(g.lvl, dt)
		if in.Has(core.ActionNext) || in.Has(core.ActionConfirm) || g.wonFor >= g.settings.Config.Campaign.AdvanceDelay() {
			g.advanceLevel()
		}
		return core.StepResult{State: g.State()}
	}

	g.elapsed += dt

	for _, a := range in.Order {
		if input, ok := levelInput(a); ok {
			g.lvl.HandleInput(input)
		}
	}
	for _, c := range in.Clicks {
		g.click(c)
	}

	g.anim.Advance(g.lvl, dt)
	g.lvl.Tick()

	var solved *core.LevelResult
	if g.justWon {
		g.justWon = false
		g.won = true
		g.wonFor = 0
		solved = &core.LevelResult{
			LevelID: g.entries[g.index].ID,
			Index:   g.index,
			Moves:   g.lvl.Moves(),
			Elapsed: g.elapsed,
		}
	}

	return core.StepResult{State: g.State(), Solved: solved}
}

// levelInput maps platform actions to level inputs.
func levelInput(a core.Action) (level.Input, bool) {
	switch a {
	case core.ActionForward:
		return level.InputForward, true
	case core.ActionBackward:
		return level.InputBackward, true
	case core.ActionTurnLeft:
		return level.InputLeft, true
	case core.ActionTurnRight:
		return level.InputRight, true
	case core.ActionUndo:
		return level.InputUndo, true
	case core.ActionRedo:
		return level.InputRedo, true
	case core.ActionSwitch:
		return level.InputSwitch, true
	default:
		return 0, false
	}
}

// click focuses the player drawn under the pointer.
func (g *Game) click(c core.Click) {
	p, ok := g.layout.tileAt(c.X, c.Y)
	if !ok {
		return
	}
	e := g.lvl.EntityAt(p)
	if e == nil || e.Type() != level.EntityPlayer || e.Focused() {
		return
	}
	g.lvl.Switch(e)
}

// advanceLevel moves to the next level, or ends the run after the last one.
func (g *Game) advanceLevel() {
	if g.index >= len(g.entries)-1 {
		g.gameOver = true
		return
	}
	g.index++
	g.loadLevel()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	s := core.GameState{
		Won:      g.won,
		GameOver: g.gameOver,
		Paused:   g.paused || g.layout.tooSmall,
	}
	if g.lvl != nil {
		s.Score = g.lvl.Moves()
	}
	return s
}

// Level returns the level in play, or nil if none could be loaded.
func (g *Game) Level() *level.Level { return g.lvl }

// Entry returns the campaign entry in play and its index.
func (g *Game) Entry() (levels.Entry, int) {
	if len(g.entries) == 0 {
		return levels.Entry{}, -1
	}
	return g.entries[g.index], g.index
}

// LevelCount returns the number of levels in the campaign.
func (g *Game) LevelCount() int { return len(g.entries) }

// Err returns why no level could be loaded.
func (g *Game) Err() error { return g.loadErr }

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Resizable = (*Game)(nil)
)
