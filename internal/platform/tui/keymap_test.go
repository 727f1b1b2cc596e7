package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"h", runeKey("h"), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"up rotates", tea.KeyMsg{Type: tea.KeyUp}, core.ActionRotate, false},
		{"x rotates", runeKey("x"), core.ActionRotate, false},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, core.ActionSoftDrop, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionHardDrop, false},
		{"hold", runeKey("c"), core.ActionHold, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"pause alt", runeKey("1"), core.ActionPause, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionContinue, false},
		{"help", runeKey("?"), core.ActionToggleHelp, false},
		{"q", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("z"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v",
					tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{runeKey("k"), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionReplays},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey("q"), MenuActionQuit},
		{runeKey("z"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, want %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestSoftDropLatch(t *testing.T) {
	l := softDropLatch{window: 100 * time.Millisecond}

	started, cmd := l.press()
	if !started || cmd == nil {
		t.Fatalf("first press: started=%v cmd=%v", started, cmd != nil)
	}
	first := SoftDropReleaseMsg{Gen: l.gen}

	started, _ = l.press()
	if started {
		t.Error("repeat should not start a new hold")
	}

	if l.release(first) {
		t.Error("release check from before the repeat should be stale")
	}
	if !l.release(SoftDropReleaseMsg{Gen: l.gen}) {
		t.Error("latest release check should end the hold")
	}
	if l.release(SoftDropReleaseMsg{Gen: l.gen}) {
		t.Error("hold already ended")
	}

	if started, _ = l.press(); !started {
		t.Error("press after release should start a new hold")
	}
	l.reset()
	if l.held {
		t.Error("reset should drop the hold")
	}
}
