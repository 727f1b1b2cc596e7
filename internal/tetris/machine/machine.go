package machine

import (
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris/engine"
)

// Config holds the timing rules of the machine.
type Config struct {
	LockDelay     time.Duration // grace period after touching down
	MaxLockResets int           // lock timer rearms allowed per placement
}

// DefaultConfig returns the standard timing rules.
func DefaultConfig() Config {
	return Config{
		LockDelay:     500 * time.Millisecond,
		MaxLockResets: 16,
	}
}

// Option configures a Machine.
type Option func(*Machine)

// WithSignals sets the receiver of signals.
func WithSignals(sink func(Signal)) Option {
	return func(m *Machine) { m.sink = sink }
}

// WithEventHook sets a function that sees every dispatched event before it
// is handled. The replay journal hooks in here.
func WithEventHook(hook func(Event)) Option {
	return func(m *Machine) { m.hook = hook }
}

// Machine is the lock-down state machine around one engine.
type Machine struct {
	eng    *engine.Engine
	timers Timers
	cfg    Config

	state State
	prev  State // state to resume when unpausing

	gravity      TimerID
	gravityArmed bool
	lock         TimerID
	lockArmed    bool
	lockArms     int // lock timer arms since the last spawn

	sink  func(Signal)
	hook  func(Event)
	dirty bool
}

// New creates a machine. Call Start to spawn the first cursor.
func New(eng *engine.Engine, timers Timers, cfg Config, opts ...Option) *Machine {
	m := &Machine{
		eng:    eng,
		timers: timers,
		cfg:    cfg,
		state:  TickingDown,
		prev:   TickingDown,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Engine returns the driven engine.
func (m *Machine) Engine() *engine.Engine { return m.eng }

// State returns the current state.
func (m *Machine) State() State { return m.state }

// LockArms returns how many times the lock timer was armed for the current cursor.
func (m *Machine) LockArms() int { return m.lockArms }

// Start spawns the first cursor and starts gravity.
func (m *Machine) Start() {
	m.eng.CreateTopCursor(nil)
	m.state = TickingDown
	m.lockArms = 0
	m.armGravity()
	m.emit(RedrawSignal{})
}

// Stop cancels every pending timer. The machine can no longer advance on
// its own.
func (m *Machine) Stop() {
	m.cancelGravity()
	m.cancelLock()
}

// Dispatch handles one event to completion.
func (m *Machine) Dispatch(ev Event) {
	if m.hook != nil {
		m.hook(ev)
	}

	switch ev.Kind {
	case EventGravity:
		m.gravityArmed = false
		m.onGravity()
	case EventLockDown:
		m.lockArmed = false
		m.onLockDown()
	case EventInput:
		m.onInput(ev.Input)
	}

	if m.state == LockedDown {
		m.settle()
	}

	if m.dirty {
		m.dirty = false
		m.emit(RedrawSignal{})
	}
}

func (m *Machine) onGravity() {
	if m.state == GameOver {
		return
	}
	m.armGravity()

	switch m.state {
	case TickingDown, SoftDropping:
		if _, ok := m.eng.Cursor(); !ok {
			m.spawn()
			return
		}
		if m.eng.CursorHasHitBottom() {
			m.gameOver()
			return
		}
		m.eng.TryTickDown()
		m.dirty = true
		if m.eng.CursorHasHitBottom() {
			m.armLock()
			m.state = LockingDown
		}

	case LockingDown:
		// Moved off a ledge during the grace period: keep falling.
		if _, ok := m.eng.TickedDownCursor(); !ok {
			return
		}
		m.eng.TryTickDown()
		m.dirty = true
		if !m.eng.CursorHasHitBottom() {
			m.cancelLock()
			m.state = TickingDown
		}
	}
}

func (m *Machine) onLockDown() {
	if m.state != LockingDown {
		return
	}

	if _, ok := m.eng.TickedDownCursor(); ok {
		if m.canRearm() {
			m.armLock()
		} else {
			m.state = TickingDown
		}
		return
	}

	m.place()
}

func (m *Machine) onInput(in Input) {
	switch in.Kind {
	case InputPause:
		m.togglePause()
		return
	case InputContinue:
		if m.state == GameOver {
			m.restart()
		}
		return
	case InputSoftDropStop:
		switch m.state {
		case SoftDropping:
			m.state = TickingDown
			m.dirty = true
		case Paused:
			if m.prev == SoftDropping {
				m.prev = TickingDown
			}
		}
		return
	}

	if !m.state.Active() {
		return
	}

	switch in.Kind {
	case InputMove:
		if m.eng.MoveCursor(in.Move) {
			m.afterShift()
		}
	case InputRotation:
		if m.eng.RotateAndAdjustCursor(in.Rotation) {
			m.afterShift()
		}
	case InputHardDrop:
		m.cancelLock()
		m.eng.HardDrop()
		m.place()
	case InputSoftDropStart:
		if m.state == TickingDown {
			m.state = SoftDropping
			m.armGravity()
			m.dirty = true
		}
	case InputHold:
		if swapped, _ := m.eng.TryHold(); swapped {
			m.cancelLock()
			m.lockArms = 0
			if m.state == LockingDown {
				m.state = TickingDown
			}
			m.dirty = true
		}
	}
}

// afterShift runs after a successful move or rotation.
func (m *Machine) afterShift() {
	m.dirty = true
	switch m.state {
	case LockingDown:
		if m.canRearm() {
			m.armLock()
		}
	case TickingDown, SoftDropping:
		if m.eng.CursorHasHitBottom() {
			m.armLock()
			m.state = LockingDown
		}
	}
}

// place stamps the cursor and spawns the next one, or ends the game.
func (m *Machine) place() {
	m.dirty = true
	if !m.eng.TryPlaceCursor() {
		m.gameOver()
		return
	}
	m.emit(PlacedSignal{})
	m.spawn()
	m.state = LockedDown
}

// settle clears full lines after a placement.
func (m *Machine) settle() {
	m.eng.LineClear(func(rows []int) {
		if len(rows) > 0 {
			m.emit(LinesClearedSignal{Rows: rows})
		}
	})
	m.state = TickingDown
	m.dirty = true
}

func (m *Machine) spawn() {
	m.eng.CreateTopCursor(nil)
	m.cancelLock()
	m.lockArms = 0
	m.dirty = true
}

func (m *Machine) togglePause() {
	switch m.state {
	case GameOver:
		return
	case Paused:
		m.state = m.prev
		switch m.state {
		case LockingDown:
			m.startLock()
		case SoftDropping:
			// Gravity rearmed at normal speed while paused.
			m.armGravity()
		}
	default:
		m.prev = m.state
		m.state = Paused
		m.cancelLock()
	}
	m.dirty = true
}

func (m *Machine) gameOver() {
	m.state = GameOver
	m.Stop()
	m.dirty = true
	m.emit(GameOverSignal{
		Score: m.eng.Score(),
		Level: m.eng.Level(),
		Lines: m.eng.LinesReached(),
	})
}

func (m *Machine) restart() {
	m.eng.Reset()
	m.prev = TickingDown
	m.Start()
}

func (m *Machine) armGravity() {
	m.cancelGravity()
	d := m.eng.DropTime(m.state == SoftDropping)
	m.gravity = m.timers.Schedule(d, func() { m.Dispatch(GravityEvent()) })
	m.gravityArmed = true
}

func (m *Machine) cancelGravity() {
	if m.gravityArmed {
		m.timers.Cancel(m.gravity)
		m.gravityArmed = false
	}
}

// canRearm reports whether move/rotate spam may still extend the grace period.
func (m *Machine) canRearm() bool {
	return m.lockArms <= m.cfg.MaxLockResets
}

// armLock (re)starts the lock timer and counts it against the cap.
func (m *Machine) armLock() {
	m.startLock()
	m.lockArms++
}

// startLock (re)starts the lock timer without counting it.
func (m *Machine) startLock() {
	m.cancelLock()
	m.lock = m.timers.Schedule(m.cfg.LockDelay, func() { m.Dispatch(LockDownEvent()) })
	m.lockArmed = true
}

func (m *Machine) cancelLock() {
	if m.lockArmed {
		m.timers.Cancel(m.lock)
		m.lockArmed = false
	}
}

func (m *Machine) emit(s Signal) {
	if m.sink != nil {
		m.sink(s)
	}
}

// Snapshot is everything a renderer reads, plus the top-level state.
type Snapshot struct {
	engine.Snapshot
	State State
}

// Snapshot copies the visible game state.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{Snapshot: m.eng.Snapshot(), State: m.state}
}

// GameState summarizes the game for the platform.
func (m *Machine) GameState() core.GameState {
	return core.GameState{
		Score:    m.eng.Score(),
		Level:    m.eng.Level(),
		Lines:    m.eng.LinesReached(),
		GameOver: m.state == GameOver,
		Paused:   m.state == Paused,
	}
}
