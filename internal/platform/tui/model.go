package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-hive/internal/core"
	"github.com/vovakirdan/tui-hive/internal/registry"
	"github.com/vovakirdan/tui-hive/internal/storage"
)

// Recorder stores solved levels for one play session.
type Recorder struct {
	store   *storage.Store
	session string
	logger  *log.Logger
}

// NewRecorder creates a recorder with a fresh session id.
// A nil store records nothing.
func NewRecorder(store *storage.Store, logger *log.Logger) *Recorder {
	return &Recorder{
		store:   store,
		session: uuid.NewString(),
		logger:  logger,
	}
}

// Session returns the play session id.
func (r *Recorder) Session() string { return r.session }

// Record saves a completion and advances the campaign progress.
func (r *Recorder) Record(res core.LevelResult) error {
	if r == nil || r.store == nil {
		return nil
	}

	_, err := r.store.SaveCompletion(storage.Completion{
		SessionID:  r.session,
		LevelID:    res.LevelID,
		Moves:      res.Moves,
		DurationMS: res.Elapsed.Milliseconds(),
	})
	if err != nil {
		return err
	}
	if err := r.store.SaveProgress(res.Index); err != nil {
		return err
	}

	if r.logger != nil {
		r.logger.Debug("level solved",
			"level", res.LevelID,
			"moves", res.Moves,
			"elapsed", res.Elapsed,
			"session", r.session,
		)
	}
	return nil
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	recorder   *Recorder
	logger     *log.Logger
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	palette    Palette
	quitting   bool
	backToMenu bool
}

// NewModel creates a model for the given game.
func NewModel(game registry.Game, recorder *Recorder, logger *log.Logger, cfg core.RuntimeConfig) Model {
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		recorder:   recorder,
		logger:     logger,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		palette:    defaultPalette,
	}
}

// WithPalette returns a copy of the model drawing with p.
func (m Model) WithPalette(p Palette) Model {
	m.palette = p
	return m
}

// Init starts the game and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.backToMenu = true
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize follows the terminal size. Games that cannot resize in
// place are restarted.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(registry.Resizable); ok {
		r.Resize(msg.Width, msg.Height)
	} else {
		m.game.Reset(m.config)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if result.Solved != nil {
		if err := m.recorder.Record(*result.Solved); err != nil && m.logger != nil {
			m.logger.Warn("could not save completion", "level", result.Solved.LevelID, "error", err)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot writes the current screen as plain text.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".hive", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}
	m.game.Render(m.screen)
	return m.palette.Render(m.screen)
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState { return m.gameState }

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if the user asked for the level picker.
func (m Model) BackToMenu() bool { return m.backToMenu }
