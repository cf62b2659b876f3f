package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-hive/internal/levels"
	"github.com/vovakirdan/tui-hive/internal/storage"
)

// RecordsKeyMap defines the key bindings for the records table.
type RecordsKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k RecordsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k RecordsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultRecordsKeyMap returns default key bindings.
func DefaultRecordsKeyMap() RecordsKeyMap {
	return RecordsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b", "tab"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// RecordRow is one line of the records table.
type RecordRow struct {
	Index  int
	ID     string
	Title  string
	Record storage.LevelRecord
	Solved bool
}

// BuildRecordRows joins the campaign with the stored records, in campaign
// order. Stored levels that are not in the campaign follow at the end.
func BuildRecordRows(entries []levels.Entry, records []storage.LevelRecord) []RecordRow {
	byID := make(map[string]storage.LevelRecord, len(records))
	for _, r := range records {
		byID[r.LevelID] = r
	}

	rows := make([]RecordRow, 0, len(entries))
	for i, e := range entries {
		r, ok := byID[e.ID]
		delete(byID, e.ID)
		rows = append(rows, RecordRow{Index: i + 1, ID: e.ID, Title: e.Title, Record: r, Solved: ok})
	}
	for _, r := range records {
		if _, ok := byID[r.LevelID]; ok {
			rows = append(rows, RecordRow{ID: r.LevelID, Title: r.LevelID, Record: r, Solved: true})
		}
	}
	return rows
}

// Cells formats the row for display. now anchors relative times.
func (r RecordRow) Cells(now time.Time) []string {
	index := "-"
	if r.Index > 0 {
		index = fmt.Sprintf("%d", r.Index)
	}
	if !r.Solved {
		return []string{index, r.Title, "0", "-", "-", "never"}
	}
	return []string{
		index,
		r.Title,
		humanize.Comma(int64(r.Record.Completions)),
		fmt.Sprintf("%d", r.Record.BestMoves),
		formatElapsed(r.Record.BestTime()),
		humanize.RelTime(r.Record.LastTime(), now, "ago", "from now"),
	}
}

// formatElapsed renders a solve time as m:ss.t.
func formatElapsed(d time.Duration) string {
	d = d.Round(100 * time.Millisecond)
	m := int(d / time.Minute)
	s := d - time.Duration(m)*time.Minute
	return fmt.Sprintf("%d:%04.1f", m, s.Seconds())
}

// RecordsModel is the Bubble Tea model for the records screen.
type RecordsModel struct {
	rows     []RecordRow
	table    table.Model
	help     help.Model
	keys     RecordsKeyMap
	width    int
	height   int
	quitting bool
	back     bool
}

// NewRecordsModel creates a records screen for the campaign.
func NewRecordsModel(entries []levels.Entry, store *storage.Store, logger *log.Logger, width, height int) RecordsModel {
	var records []storage.LevelRecord
	if store != nil {
		var err error
		records, err = store.Records()
		if err != nil && logger != nil {
			logger.Warn("could not load records", "error", err)
		}
	}

	m := RecordsModel{
		rows:   BuildRecordRows(entries, records),
		help:   help.New(),
		keys:   DefaultRecordsKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()
	return m
}

func (m *RecordsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Level", Width: 22},
		{Title: "Solves", Width: 7},
		{Title: "Best", Width: 5},
		{Title: "Time", Width: 7},
		{Title: "Last played", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("94")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *RecordsModel) updateTableRows() {
	now := time.Now()
	rows := make([]table.Row, len(m.rows))
	for i, r := range m.rows {
		rows[i] = r.Cells(now)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the records model.
func (m RecordsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the records screen.
func (m RecordsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the records table.
func (m RecordsModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214"))
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("RECORDS"), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	if len(m.rows) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No levels loaded.")
		b.WriteString(tableStyle.Render(empty))
	} else {
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// IsGoingBack returns true if the user wants the level picker.
func (m RecordsModel) IsGoingBack() bool { return m.back }

// IsQuitting returns true if the user wants to quit entirely.
func (m RecordsModel) IsQuitting() bool { return m.quitting }
