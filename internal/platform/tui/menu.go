package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// MenuItem represents a selectable piece generator in the menu.
type MenuItem struct {
	GeneratorID string
	Title       string
}

// MenuModel is the Bubble Tea model for the generator picker.
type MenuModel struct {
	items       []MenuItem
	cursor      int
	width       int
	height      int
	config      core.RuntimeConfig
	keyMapper   *KeyMapper
	hasReplays  bool
	quitting    bool
	selected    *MenuItem // Set when user selects a generator
	openReplays bool      // True if user asked for the replay browser
}

// NewMenuModel creates a new menu model. withReplays enables the replay
// browser shortcut; it needs a database.
func NewMenuModel(cfg core.RuntimeConfig, withReplays bool) MenuModel {
	gens := registry.List()
	items := make([]MenuItem, 0, len(gens))
	for _, g := range gens {
		items = append(items, MenuItem{GeneratorID: g.ID, Title: g.Title})
	}

	return MenuModel{
		items:      items,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		hasReplays: withReplays,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit // Exit menu to start game
		}

	case MenuActionReplays:
		if m.hasReplays {
			m.openReplays = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("  T E T R I S  "), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a piece generator", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%-8s %s", cursor, item.GeneratorID, item.Title)
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	// Footer with controls
	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Q: Quit"
	if m.hasReplays {
		controls = "Up/Down: Navigate  |  Enter: Play  |  Tab: Replays  |  Q: Quit"
	}
	b.WriteString(footerStyle.Render(centerText(controls, m.width)))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsReplays returns true if user requested the replay browser.
func (m MenuModel) WantsReplays() bool {
	return m.openReplays
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	GeneratorID  string
	Config       core.RuntimeConfig
	WantsReplays bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(cfg core.RuntimeConfig, withReplays bool) (MenuResult, error) {
	p := tea.NewProgram(
		NewMenuModel(cfg, withReplays),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{Config: m.Config()}
	switch {
	case m.WantsReplays():
		result.WantsReplays = true
	case m.Selected() != nil:
		result.GeneratorID = m.Selected().GeneratorID
	default:
		result.Quit = true
	}
	return result, nil
}
