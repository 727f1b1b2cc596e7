package machine

import (
	"sort"
	"time"
)

// TimerID identifies a scheduled timer. Zero is never issued.
type TimerID uint64

// Timers schedules one-shot callbacks. Implementations must run callbacks on
// the goroutine that calls Dispatch, and must never run a cancelled one.
type Timers interface {
	Schedule(d time.Duration, fn func()) TimerID
	Cancel(id TimerID)
}

// NopTimers issues ids but never fires. Replays use it and feed the
// recorded timer events instead.
type NopTimers struct {
	next TimerID
}

func (t *NopTimers) Schedule(time.Duration, func()) TimerID {
	t.next++
	return t.next
}

func (t *NopTimers) Cancel(TimerID) {}

// ManualTimers is a virtual clock. Nothing fires until Advance is called.
type ManualTimers struct {
	now     time.Duration
	next    TimerID
	pending map[TimerID]manualTimer
}

type manualTimer struct {
	at time.Duration
	fn func()
}

// NewManualTimers returns a virtual clock at zero.
func NewManualTimers() *ManualTimers {
	return &ManualTimers{pending: make(map[TimerID]manualTimer)}
}

func (t *ManualTimers) Schedule(d time.Duration, fn func()) TimerID {
	t.next++
	t.pending[t.next] = manualTimer{at: t.now + d, fn: fn}
	return t.next
}

func (t *ManualTimers) Cancel(id TimerID) {
	delete(t.pending, id)
}

// Now returns the virtual time elapsed since creation.
func (t *ManualTimers) Now() time.Duration { return t.now }

// Pending returns the number of timers waiting to fire.
func (t *ManualTimers) Pending() int { return len(t.pending) }

// Advance moves the clock forward by d, firing due timers in deadline order.
// Timers scheduled by callbacks fire too if they fall within the window.
func (t *ManualTimers) Advance(d time.Duration) {
	target := t.now + d
	for {
		id, ok := t.earliest()
		if !ok || t.pending[id].at > target {
			break
		}
		t.fire(id)
	}
	t.now = target
}

// FireNext jumps to the earliest pending timer and fires it.
// It returns false if nothing is pending.
func (t *ManualTimers) FireNext() bool {
	id, ok := t.earliest()
	if !ok {
		return false
	}
	t.fire(id)
	return true
}

func (t *ManualTimers) fire(id TimerID) {
	timer := t.pending[id]
	delete(t.pending, id)
	if timer.at > t.now {
		t.now = timer.at
	}
	timer.fn()
}

// earliest returns the pending timer with the smallest deadline, oldest first.
func (t *ManualTimers) earliest() (TimerID, bool) {
	if len(t.pending) == 0 {
		return 0, false
	}
	ids := make([]TimerID, 0, len(t.pending))
	for id := range t.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := t.pending[ids[i]], t.pending[ids[j]]
		if a.at != b.at {
			return a.at < b.at
		}
		return ids[i] < ids[j]
	})
	return ids[0], true
}
