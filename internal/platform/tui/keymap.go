package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Left       key.Binding
	Right      key.Binding
	Rotate     key.Binding
	SoftDrop   key.Binding
	HardDrop   key.Binding
	Hold       key.Binding
	Pause      key.Binding
	Continue   key.Binding
	Back       key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Rotate, k.HardDrop, k.Pause, k.Help}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Rotate, k.SoftDrop},
		{k.HardDrop, k.Hold, k.Pause, k.Continue},
		{k.Back, k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→/l", "right"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "k", "x", "w"),
			key.WithHelp("↑/x", "rotate"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("space", "hard drop"),
		),
		Hold: key.NewBinding(
			key.WithKeys("c", "shift+left", "shift+right"),
			key.WithHelp("c", "hold"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", "1"),
			key.WithHelp("p", "pause"),
		),
		Continue: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new game"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("^s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	Keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{Keys: DefaultGameKeyMap()}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	k := km.Keys
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, k.Left):
		return core.ActionLeft, false
	case key.Matches(msg, k.Right):
		return core.ActionRight, false
	case key.Matches(msg, k.Rotate):
		return core.ActionRotate, false
	case key.Matches(msg, k.SoftDrop):
		return core.ActionSoftDrop, false
	case key.Matches(msg, k.HardDrop):
		return core.ActionHardDrop, false
	case key.Matches(msg, k.Hold):
		return core.ActionHold, false
	case key.Matches(msg, k.Pause):
		return core.ActionPause, false
	case key.Matches(msg, k.Continue):
		return core.ActionContinue, false
	case key.Matches(msg, k.Help):
		return core.ActionToggleHelp, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
	MenuActionReplays
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab", "r":
		return MenuActionReplays
	}
	return MenuActionNone
}

// SoftDropReleaseMsg is sent when a held soft-drop key may have been released.
type SoftDropReleaseMsg struct {
	Gen int
}

// softDropLatch synthesises key releases for soft drop. Terminals only send
// presses and auto-repeats, so the key counts as released once no repeat
// arrived within the release window.
type softDropLatch struct {
	window time.Duration
	held   bool
	gen    int
}

// press records a press or repeat. started is true on the first press of a
// hold; cmd schedules the release check.
func (l *softDropLatch) press() (started bool, cmd tea.Cmd) {
	started = !l.held
	l.held = true
	l.gen++
	gen := l.gen
	return started, tea.Tick(l.window, func(time.Time) tea.Msg {
		return SoftDropReleaseMsg{Gen: gen}
	})
}

// release reports whether msg ends the current hold.
func (l *softDropLatch) release(msg SoftDropReleaseMsg) bool {
	if !l.held || msg.Gen != l.gen {
		return false
	}
	l.held = false
	return true
}

// reset drops a pending hold without a release.
func (l *softDropLatch) reset() {
	l.held = false
	l.gen++
}
