package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// maxReplays bounds how many replays the browser loads.
const maxReplays = 100

// ReplaysKeyMap defines the key bindings for the replay browser.
type ReplaysKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Verify key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ReplaysKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Verify, k.Delete, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ReplaysKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Verify, k.Delete},
		{k.Back, k.Quit},
	}
}

// DefaultReplaysKeyMap returns default key bindings.
func DefaultReplaysKeyMap() ReplaysKeyMap {
	return ReplaysKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Verify: key.NewBinding(
			key.WithKeys("enter", "v"),
			key.WithHelp("enter", "re-simulate"),
		),
		Delete: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ReplaysModel is the Bubble Tea model for the replay browser.
type ReplaysModel struct {
	store     *storage.Store
	replays   []storage.ReplaySummary
	table     table.Model
	help      help.Model
	keys      ReplaysKeyMap
	status    string
	width     int
	height    int
	quitting  bool
	goingBack bool // True if user pressed back (not quit)
}

// NewReplaysModel creates a new replay browser.
func NewReplaysModel(store *storage.Store, width, height int) ReplaysModel {
	h := help.New()
	h.ShowAll = false

	m := ReplaysModel{
		store:  store,
		keys:   DefaultReplaysKeyMap(),
		help:   h,
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the window.
func (m *ReplaysModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 5},
		{Title: "Score", Width: 6},
		{Title: "Level", Width: 6},
		{Title: "Generator", Width: 10},
		{Title: "Events", Width: 7},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// load refreshes the replay list from the store.
func (m *ReplaysModel) load() {
	m.replays = nil
	if m.store != nil {
		replays, err := m.store.RecentReplays(maxReplays)
		if err != nil {
			m.status = err.Error()
		} else {
			m.replays = replays
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current replays.
func (m *ReplaysModel) updateTableRows() {
	rows := make([]table.Row, len(m.replays))
	for i, r := range m.replays {
		rows[i] = table.Row{
			strconv.FormatInt(r.ID, 10),
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Level),
			r.Generator,
			strconv.Itoa(r.EventCount),
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
}

// current returns the highlighted replay.
func (m *ReplaysModel) current() (storage.ReplaySummary, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.replays) {
		return storage.ReplaySummary{}, false
	}
	return m.replays[i], true
}

// verify re-simulates the highlighted replay.
func (m *ReplaysModel) verify() {
	sum, ok := m.current()
	if !ok {
		return
	}
	r, err := m.store.Replay(sum.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	snap, match, err := storage.Verify(*r)
	switch {
	case err != nil:
		m.status = err.Error()
	case match:
		m.status = fmt.Sprintf("replay #%d reproduces score %d", r.ID, snap.Score)
	default:
		m.status = fmt.Sprintf("replay #%d diverged: score %d, recorded %d", r.ID, snap.Score, r.Score)
	}
}

// remove deletes the highlighted replay.
func (m *ReplaysModel) remove() {
	sum, ok := m.current()
	if !ok {
		return
	}
	if err := m.store.DeleteReplay(sum.ID); err != nil && !errors.Is(err, storage.ErrReplayNotFound) {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("replay #%d deleted", sum.ID)
	m.load()
}

// Init initializes the replay browser.
func (m ReplaysModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the replay browser.
func (m ReplaysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Verify):
			m.verify()
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			m.remove()
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

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the replay browser.
func (m ReplaysModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.MarginBottom(1).Render(centerText("REPLAYS", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(footerStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ReplaysModel) renderTableContent() string {
	if len(m.replays) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No replays recorded yet.\nPlay with --record to keep one!")
	}

	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ReplaysModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ReplaysModel) IsQuitting() bool {
	return m.quitting
}

// RunReplays runs the replay browser.
// Returns true if user wants to go back to menu, false if quitting.
func RunReplays(store *storage.Store, width, height int) (goBack bool, err error) {
	p := tea.NewProgram(
		NewReplaysModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ReplaysModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}
