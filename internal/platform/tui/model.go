package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
	"github.com/vovakirdan/tui-tetris/internal/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/tetris/machine"
	"github.com/vovakirdan/tui-tetris/internal/tetris/view"
)

// Options configure a game model.
type Options struct {
	Config  config.TetrisConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // nil disables replay recording
	Record  bool
	Logger  *log.Logger // nil discards
}

// game is one running game: the machine, its timers and its journal.
// The model is copied by value on every update, so everything the machine
// calls back into lives here.
type game struct {
	seed    int64
	machine *machine.Machine
	timers  *TeaTimers
	journal *storage.Journal
	signals []machine.Signal
	last    machine.Event
}

func newGame(cfg config.TetrisConfig, seed int64) (*game, error) {
	gen, err := registry.Create(cfg.Queue.Generator, registry.Seeded(seed))
	if err != nil {
		return nil, err
	}

	g := &game{
		seed:    seed,
		timers:  NewTeaTimers(),
		journal: storage.NewJournal(seed, cfg),
	}
	g.machine = machine.New(engine.New(cfg.Engine(), gen), g.timers, cfg.Machine(),
		machine.WithSignals(func(s machine.Signal) { g.signals = append(g.signals, s) }),
		machine.WithEventHook(func(ev machine.Event) {
			g.last = ev
			g.journal.Record(ev)
		}),
	)
	return g, nil
}

// drain returns and forgets the signals emitted since the last call.
func (g *game) drain() []machine.Signal {
	s := g.signals
	g.signals = nil
	return s
}

// Model is the Bubble Tea model for a tetris game.
type Model struct {
	opts       Options
	logger     *log.Logger
	game       *game
	screen     *core.Screen
	keys       *KeyMapper
	help       help.Model
	softDrop   softDropLatch
	status     string
	embedded   bool // back returns to a menu instead of quitting
	quitting   bool
	backToMenu bool
}

// NewModel creates a model and its first game. The game starts in Init.
func NewModel(opts Options) (Model, error) {
	// Use time-based seed if not specified
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g, err := newGame(opts.Config, opts.Runtime.Seed)
	if err != nil {
		return Model{}, err
	}

	m := Model{
		opts:     opts,
		logger:   logger,
		game:     g,
		screen:   core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keys:     NewKeyMapper(),
		help:     help.New(),
		softDrop: softDropLatch{window: opts.Config.SoftDropRelease()},
	}
	m.help.Width = opts.Runtime.ScreenW
	m.layoutScreen()
	return m, nil
}

// Init starts the game.
func (m Model) Init() tea.Cmd {
	m.logger.Debug("game started", "seed", m.game.seed, "generator", m.opts.Config.Queue.Generator)
	m.game.machine.Start()
	m.game.drain()
	return m.game.timers.Flush()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.help.Width = msg.Width
		m.layoutScreen()
		return m, nil

	case TimerMsg:
		prev := m.game.machine.State()
		if m.game.timers.Fire(msg) {
			m.afterDispatch(prev)
		}
		return m, m.game.timers.Flush()

	case SoftDropReleaseMsg:
		if m.softDrop.release(msg) {
			m.input(core.ActionSoftDrop, core.KeyUp)
		}
		return m, m.game.timers.Flush()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Back):
		st := m.game.machine.State()
		if st == machine.Paused || st == machine.GameOver {
			m.game.machine.Stop()
			if m.embedded {
				m.backToMenu = true
				return m, nil
			}
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.game.machine.Stop()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil

	case core.ActionToggleHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.layoutScreen()
		return m, nil

	case core.ActionContinue:
		if m.game.machine.State() == machine.GameOver {
			return m, m.restart()
		}

	case core.ActionSoftDrop:
		started, release := m.softDrop.press()
		if started {
			m.input(action, core.KeyDown)
		}
		return m, tea.Batch(release, m.game.timers.Flush())
	}

	m.input(action, core.KeyDown)
	return m, m.game.timers.Flush()
}

// input decodes an action and dispatches it.
func (m *Model) input(action core.Action, edge core.KeyEdge) {
	next, _ := m.game.machine.Engine().NextCursorRotation()
	in, ok := machine.Decode(action, edge, next)
	if !ok {
		return
	}
	prev := m.game.machine.State()
	m.game.machine.Dispatch(machine.InputEvent(in))
	m.afterDispatch(prev)
}

// afterDispatch logs transitions and reacts to the signals of one event.
func (m *Model) afterDispatch(prev machine.State) {
	if st := m.game.machine.State(); st != prev {
		m.logger.Debug("state changed", "from", prev, "to", st, "event", m.game.last)
	}

	for _, s := range m.game.drain() {
		switch s := s.(type) {
		case machine.LinesClearedSignal:
			m.logger.Debug("lines cleared", "rows", s.Rows)
		case machine.GameOverSignal:
			m.logger.Info("game over", "score", s.Score, "level", s.Level, "lines", s.Lines)
			m.softDrop.reset()
			m.saveReplay()
		}
	}
}

// restart replaces the finished game with a fresh one on a new seed.
func (m *Model) restart() tea.Cmd {
	seed := time.Now().UnixNano()
	g, err := newGame(m.opts.Config, seed)
	if err != nil {
		m.logger.Error("cannot start a new game", "error", err)
		return nil
	}
	m.game.machine.Stop()
	m.game = g
	m.opts.Runtime.Seed = seed
	m.status = ""
	m.softDrop.reset()
	return m.Init()
}

// saveReplay stores the finished game when recording is enabled.
func (m *Model) saveReplay() {
	if !m.opts.Record || m.opts.Store == nil {
		return
	}
	r := m.game.journal.Finish(m.game.machine.Snapshot())
	id, err := m.opts.Store.SaveReplay(r)
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		m.status = "replay not saved"
		return
	}
	m.logger.Info("replay saved", "id", id, "events", r.EventCount)
	m.status = fmt.Sprintf("replay #%d saved", id)
}

// layoutScreen sizes the game screen to leave room for the help footer.
func (m *Model) layoutScreen() {
	footer := 1
	if m.help.ShowAll {
		footer = 4
	}
	h := max(m.opts.Runtime.ScreenH-footer, 0)
	m.screen.Resize(m.opts.Runtime.ScreenW, h)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	// Render current state
	view.Render(m.screen, m.game.machine.Snapshot())

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".tetris", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("tetris_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.status = "screenshot saved"
}

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	view.Render(m.screen, m.game.machine.Snapshot())

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("  ")
	}
	b.WriteString(footerStyle.Render(m.help.View(m.keys.Keys)))
	return b.String()
}

// GameState returns the state of the current game.
func (m Model) GameState() core.GameState {
	return m.game.machine.GameState()
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program and returns the state the last game
// ended in.
func Run(opts Options) (core.GameState, error) {
	model, err := NewModel(opts)
	if err != nil {
		return core.GameState{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return core.GameState{}, err
	}
	if fm, ok := final.(Model); ok {
		return fm.GameState(), nil
	}
	return core.GameState{}, nil
}
