// Package tui provides the Bubble Tea integration for the tetris platform.
// It handles the terminal UI loop, key decoding, timers and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/tetris/machine"
)

// TimerMsg is sent when a scheduled machine timer elapses.
type TimerMsg struct {
	ID  machine.TimerID
	src *TeaTimers
}

// TeaTimers implements machine.Timers on top of tea.Tick.
// Scheduling only queues a command; Flush hands the queued commands to the
// runtime. Cancelled ids still arrive as TimerMsg and are dropped by Fire.
// Not safe for concurrent use: everything runs inside Update.
type TeaTimers struct {
	next    machine.TimerID
	pending map[machine.TimerID]func()
	queued  []tea.Cmd
}

// NewTeaTimers creates an empty timer facility.
func NewTeaTimers() *TeaTimers {
	return &TeaTimers{pending: make(map[machine.TimerID]func())}
}

// Schedule registers fn to run d from now.
func (t *TeaTimers) Schedule(d time.Duration, fn func()) machine.TimerID {
	t.next++
	id := t.next
	t.pending[id] = fn
	t.queued = append(t.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return TimerMsg{ID: id, src: t}
	}))
	return id
}

// Cancel forgets a timer. Cancelling a fired or unknown id is a no-op.
func (t *TeaTimers) Cancel(id machine.TimerID) {
	delete(t.pending, id)
}

// Fire runs the callback of a live timer and reports whether it was live.
// Messages scheduled by another TeaTimers are never live.
func (t *TeaTimers) Fire(msg TimerMsg) bool {
	if msg.src != t {
		return false
	}
	id := msg.ID
	fn, ok := t.pending[id]
	if !ok {
		return false
	}
	delete(t.pending, id)
	fn()
	return true
}

// Pending returns the number of live timers.
func (t *TeaTimers) Pending() int { return len(t.pending) }

// Flush returns the commands queued since the last flush.
func (t *TeaTimers) Flush() tea.Cmd {
	if len(t.queued) == 0 {
		return nil
	}
	cmds := t.queued
	t.queued = nil
	return tea.Batch(cmds...)
}
