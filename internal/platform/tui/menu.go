package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/zyedidia/generic/mapset"

	"github.com/vovakirdan/tui-hive/internal/levels"
	"github.com/vovakirdan/tui-hive/internal/storage"
)

// MenuKeyMap is shown in the level picker help line.
type MenuKeyMap struct {
	Navigate key.Binding
	Select   key.Binding
	Records  key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Navigate, k.Select, k.Records, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func defaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Navigate: key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("up/down", "navigate")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "play")),
		Records:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "records")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

var (
	menuTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
	menuCursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	menuSolvedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// LevelMenuModel is the Bubble Tea model for the level picker.
type LevelMenuModel struct {
	entries []levels.Entry
	solved  mapset.Set[string]
	best    map[string]int

	cursor      int
	width       int
	height      int
	keyMapper   *KeyMapper
	keys        MenuKeyMap
	help        help.Model
	quitting    bool
	selected    int
	wantRecords bool
}

// NewLevelMenuModel creates a level picker. The cursor starts on the first
// level after the stored campaign progress.
func NewLevelMenuModel(entries []levels.Entry, store *storage.Store, logger *log.Logger, width, height int) LevelMenuModel {
	m := LevelMenuModel{
		entries:   entries,
		solved:    mapset.New[string](),
		best:      make(map[string]int),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
		keys:      defaultMenuKeyMap(),
		help:      help.New(),
		selected:  -1,
	}
	m.load(store, logger)
	return m
}

func (m *LevelMenuModel) load(store *storage.Store, logger *log.Logger) {
	if store == nil {
		return
	}

	solved, err := store.Solved()
	if err != nil {
		if logger != nil {
			logger.Warn("could not load solved levels", "error", err)
		}
		return
	}
	m.solved = solved

	records, err := store.Records()
	if err == nil {
		for _, r := range records {
			m.best[r.LevelID] = r.BestMoves
		}
	}

	progress, err := store.Progress()
	if err == nil && len(m.entries) > 0 {
		m.cursor = min(progress+1, len(m.entries)-1)
	}
}

// Init initializes the menu model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.entries) > 0 {
			m.selected = m.cursor
		}

	case MenuActionRecords:
		m.wantRecords = true
	}
	return m, nil
}

// View renders the level list.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("  H I V E  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("%d of %d levels solved", m.solvedCount(), len(m.entries)), m.width))
	b.WriteString("\n\n")

	for i, e := range m.entries {
		mark := "  "
		if m.solved.Has(e.ID) {
			mark = menuSolvedStyle.Render("✓ ")
		}

		title := e.Title
		if title == "" {
			title = e.ID
		}
		line := fmt.Sprintf("%2d. %-24s", i+1, title)
		if best, ok := m.best[e.ID]; ok {
			line += menuDimStyle.Render(fmt.Sprintf(" best %d", best))
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "> "
			line = menuCursorStyle.Render(line)
		}
		b.WriteString("  " + cursor + mark + line + "\n")
	}

	b.WriteString("\n  ")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m LevelMenuModel) solvedCount() int {
	n := 0
	for _, e := range m.entries {
		if m.solved.Has(e.ID) {
			n++
		}
	}
	return n
}

// Cursor returns the highlighted level index.
func (m LevelMenuModel) Cursor() int { return m.cursor }

// Selected returns the chosen level index, or -1.
func (m LevelMenuModel) Selected() int { return m.selected }

// IsQuitting returns true if the user requested to quit.
func (m LevelMenuModel) IsQuitting() bool { return m.quitting }

// WantsRecords returns true if the user asked for the records table.
func (m LevelMenuModel) WantsRecords() bool { return m.wantRecords }

// centerText centers text within width. Escape sequences do not count.
func centerText(text string, width int) string {
	visible := lipgloss.Width(text)
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}
