package machine

import (
	"testing"
	"time"
)

func TestManualTimersOrder(t *testing.T) {
	timers := NewManualTimers()
	var fired []string

	timers.Schedule(300*time.Millisecond, func() { fired = append(fired, "c") })
	timers.Schedule(100*time.Millisecond, func() { fired = append(fired, "a") })
	timers.Schedule(100*time.Millisecond, func() { fired = append(fired, "b") })

	timers.Advance(200 * time.Millisecond)
	if len(fired) != 2 || fired[0] != "a" || fired[1] != "b" {
		t.Fatalf("fired = %v, expected [a b]", fired)
	}
	if timers.Now() != 200*time.Millisecond {
		t.Errorf("Now() = %v, expected 200ms", timers.Now())
	}

	timers.Advance(100 * time.Millisecond)
	if len(fired) != 3 {
		t.Errorf("fired = %v, expected c to fire at its deadline", fired)
	}
}

func TestManualTimersCancel(t *testing.T) {
	timers := NewManualTimers()
	fired := false
	id := timers.Schedule(time.Second, func() { fired = true })
	timers.Cancel(id)
	timers.Cancel(id)

	timers.Advance(2 * time.Second)
	if fired {
		t.Error("cancelled timer fired")
	}
	if timers.FireNext() {
		t.Error("FireNext with nothing pending should report false")
	}
}

func TestManualTimersRescheduleFromCallback(t *testing.T) {
	timers := NewManualTimers()
	count := 0
	var tick func()
	tick = func() {
		count++
		timers.Schedule(100*time.Millisecond, tick)
	}
	timers.Schedule(100*time.Millisecond, tick)

	timers.Advance(time.Second)
	if count != 10 {
		t.Errorf("count = %d, expected 10", count)
	}
	if timers.Pending() != 1 {
		t.Errorf("Pending() = %d, expected 1", timers.Pending())
	}
}

func TestNopTimersNeverFire(t *testing.T) {
	var timers NopTimers
	a := timers.Schedule(time.Millisecond, func() { t.Error("fired") })
	b := timers.Schedule(time.Millisecond, func() { t.Error("fired") })
	if a == 0 || a == b {
		t.Errorf("ids = %d, %d; expected distinct non-zero ids", a, b)
	}
	timers.Cancel(a)
}
