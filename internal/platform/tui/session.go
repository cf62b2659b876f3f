package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-hive/internal/core"
	"github.com/vovakirdan/tui-hive/internal/levels"
	"github.com/vovakirdan/tui-hive/internal/registry"
	"github.com/vovakirdan/tui-hive/internal/storage"
)

// SessionOptions configure a play session.
type SessionOptions struct {
	Levels  []levels.Entry
	Store   *storage.Store
	Logger  *log.Logger
	Runtime core.RuntimeConfig

	// Renderer styles the board; nil means the local terminal.
	Renderer *lipgloss.Renderer

	// NewGame creates the campaign starting at the given level index.
	NewGame func(start int) registry.Game

	// StartLevel opens a level right away instead of the picker when >= 0.
	StartLevel int
}

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewRecords
)

// SessionModel manages the full session flow: picker -> game -> picker,
// with the records table reachable from the picker.
type SessionModel struct {
	opts     SessionOptions
	recorder *Recorder
	palette  Palette
	view     sessionView
	menu     LevelMenuModel
	records  RecordsModel
	game     *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(opts SessionOptions) SessionModel {
	m := SessionModel{
		opts:     opts,
		recorder: NewRecorder(opts.Store, opts.Logger),
		palette:  defaultPalette,
	}
	if opts.Renderer != nil {
		m.palette = NewPalette(opts.Renderer)
	}
	m.menu = m.newMenu()

	if opts.StartLevel >= 0 && opts.StartLevel < len(opts.Levels) {
		m.openGame(opts.StartLevel)
	}
	return m
}

func (m SessionModel) newMenu() LevelMenuModel {
	return NewLevelMenuModel(m.opts.Levels, m.opts.Store, m.opts.Logger, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
}

func (m *SessionModel) openGame(index int) {
	game := NewModel(m.opts.NewGame(index), m.recorder, m.opts.Logger, m.opts.Runtime).WithPalette(m.palette)
	m.game = &game
	m.view = viewGame
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	if m.view == viewGame {
		return m.game.Init()
	}
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	if menu, ok := next.(LevelMenuModel); ok {
		m.menu = menu
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRecords():
		m.records = NewRecordsModel(m.opts.Levels, m.opts.Store, m.opts.Logger, m.opts.Runtime.ScreenW, m.opts.Runtime.ScreenH)
		m.view = viewRecords
		return m, m.records.Init()

	case m.menu.Selected() >= 0:
		m.openGame(m.menu.Selected())
		return m, m.game.Init()
	}
	return m, cmd
}

func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.records.Update(msg)
	if records, ok := next.(RecordsModel); ok {
		m.records = records
	}

	switch {
	case m.records.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.records.IsGoingBack():
		m.menu = m.newMenu()
		m.view = viewMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	if game, ok := next.(Model); ok {
		m.game = &game
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.game.BackToMenu():
		m.game = nil
		m.menu = m.newMenu()
		m.view = viewMenu
		return m, m.menu.Init()
	}
	return m, cmd
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewRecords:
		return m.records.View()
	default:
		return m.menu.View()
	}
}

// Recorder returns the recorder that stores this session's completions.
func (m SessionModel) Recorder() *Recorder { return m.recorder }

// RunSession runs an interactive session in the local terminal.
func RunSession(opts SessionOptions) error {
	p := tea.NewProgram(
		NewSessionModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
