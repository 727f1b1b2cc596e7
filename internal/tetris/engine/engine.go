// Package engine owns a single game of falling blocks: the playfield, the
// falling cursor, the upcoming queue, the hold slot and scoring.
//
// The engine is not safe for concurrent use. It is driven from one event
// loop by the machine package, which decides when to tick, lock and spawn.
package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/tetris/field"
	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// Config holds the rules parameters of an engine.
type Config struct {
	Width           int // Field columns
	Height          int // Field rows
	QueueSize       int // Upcoming kinds kept, including the "next" one
	LinesPerLevel   int // Lines needed to advance one level
	SoftDropDivisor int // Gravity speed-up while soft dropping
}

// DefaultConfig returns the standard rules.
func DefaultConfig() Config {
	return Config{
		Width:           field.StandardWidth,
		Height:          field.StandardHeight,
		QueueSize:       5,
		LinesPerLevel:   10,
		SoftDropDivisor: 20,
	}
}

// minDropTime bounds the gravity interval at very high levels, where the
// curve goes to zero and then negative.
const minDropTime = time.Millisecond

// Move is a horizontal cursor movement.
type Move int

const (
	MoveLeft Move = iota
	MoveRight
)

// Offset returns the translation of the move.
func (m Move) Offset() piece.Offset {
	if m == MoveLeft {
		return piece.O(-1, 0)
	}
	return piece.O(1, 0)
}

// String returns "left" or "right".
func (m Move) String() string {
	if m == MoveLeft {
		return "left"
	}
	return "right"
}

// Engine is one game session.
type Engine struct {
	cfg Config
	gen registry.Generator

	field  *field.Field
	cursor piece.Piece
	active bool

	queue []piece.Kind // queue[0] is the next kind

	hold       piece.Kind
	holding    bool
	holdLocked bool

	level        int
	linesReached int
	score        int

	holdField  *field.Field
	nextField  *field.Field
	queueField *field.Field
}

// New creates an engine with an empty field and a full queue drawn from gen.
// No cursor is spawned.
func New(cfg Config, gen registry.Generator) *Engine {
	if cfg.QueueSize < 1 {
		panic("engine: queue size must be at least 1")
	}
	if cfg.LinesPerLevel < 1 || cfg.SoftDropDivisor < 1 {
		panic("engine: lines per level and soft drop divisor must be positive")
	}

	e := &Engine{
		cfg:        cfg,
		gen:        gen,
		field:      field.New(cfg.Width, cfg.Height),
		queue:      make([]piece.Kind, 0, cfg.QueueSize),
		level:      1,
		holdField:  field.New(previewSize, previewSize),
		nextField:  field.New(previewSize, previewSize),
		queueField: field.New(previewSize, previewSize*max(cfg.QueueSize-1, 1)),
	}
	for range cfg.QueueSize {
		e.queue = append(e.queue, gen.Next())
	}
	e.rebuildQueuePreviews()
	return e
}

// Config returns the rules the engine was created with.
func (e *Engine) Config() Config { return e.cfg }

// Generator returns the kind source.
func (e *Engine) Generator() registry.Generator { return e.gen }

// Field returns the playfield. Callers must not modify it.
func (e *Engine) Field() *field.Field { return e.field }

// Level returns the current level, starting at 1.
func (e *Engine) Level() int { return e.level }

// Score returns the number of lines cleared this game.
func (e *Engine) Score() int { return e.score }

// LinesReached returns the lines cleared since the last level-up.
func (e *Engine) LinesReached() int { return e.linesReached }

// Cursor returns the falling piece, if any.
func (e *Engine) Cursor() (piece.Piece, bool) {
	return e.cursor, e.active
}

// Queue returns a copy of the upcoming kinds, next first.
func (e *Engine) Queue() []piece.Kind {
	return append([]piece.Kind(nil), e.queue...)
}

// Hold returns the held kind, if any.
func (e *Engine) Hold() (piece.Kind, bool) {
	return e.hold, e.holding
}

// HoldLocked reports whether a hold was already used for the current cursor.
func (e *Engine) HoldLocked() bool { return e.holdLocked }

// SpawnPosition returns the anchor at which kind k enters the field:
// horizontally centered by occupied width, with its top row at the field top.
func (e *Engine) SpawnPosition(k piece.Kind) piece.Offset {
	x := (e.cfg.Width - k.Width()) / 2
	y := e.cfg.Height - 1
	if k.Height() == 1 {
		y--
	}
	return piece.O(x, y)
}

// CreateTopCursor spawns a new cursor at the top of the field. The kind is
// force when given, otherwise the head of the queue, which is then refilled.
func (e *Engine) CreateTopCursor(force *piece.Kind) {
	var k piece.Kind
	if force != nil {
		k = *force
	} else {
		k = e.queue[0]
		e.queue = append(e.queue[:0], e.queue[1:]...)
		e.queue = append(e.queue, e.gen.Next())
		e.rebuildQueuePreviews()
	}

	e.cursor = piece.New(k, e.SpawnPosition(k))
	e.active = true
}

// MoveCursor shifts the cursor one column. It fails, leaving the cursor
// unchanged, if the new position clips. With no cursor it is a successful
// no-op.
func (e *Engine) MoveCursor(m Move) bool {
	if !e.active {
		return true
	}
	moved := e.cursor.MovedBy(m.Offset())
	if e.field.IsClipping(moved) {
		return false
	}
	e.cursor = moved
	return true
}

// RotateAndAdjustCursor turns the cursor to r in place. There is no wall
// kick: a rotation that would leave the side walls or overlap fails.
func (e *Engine) RotateAndAdjustCursor(r piece.Rotation) bool {
	if !e.active {
		return false
	}
	rotated := e.cursor.WithRotation(r)
	if e.field.HasOutOfBoundsOrOverlap(rotated) {
		return false
	}
	// Stricter than HasOutOfBoundsOrOverlap, which tolerates negative y:
	// a cursor is never committed below the floor.
	if _, ok := e.field.PieceCells(rotated); !ok {
		return false
	}
	e.cursor = rotated
	return true
}

// NextCursorRotation returns the rotation a rotate input would produce.
func (e *Engine) NextCursorRotation() (piece.Rotation, bool) {
	if !e.active {
		return piece.N, false
	}
	return e.cursor.Rotation.Next(), true
}

// TickedDownCursor returns the cursor moved one row down, or false if
// there is no cursor or that position clips.
func (e *Engine) TickedDownCursor() (piece.Piece, bool) {
	if !e.active {
		return piece.Piece{}, false
	}
	down := e.cursor.MovedBy(piece.O(0, -1))
	if e.field.IsClipping(down) {
		return piece.Piece{}, false
	}
	return down, true
}

// TryTickDown commits one downward step. Calling it without a cursor or
// with a bottomed-out cursor panics.
func (e *Engine) TryTickDown() {
	if !e.active {
		panic("engine: tick of an absent cursor")
	}
	down, ok := e.TickedDownCursor()
	if !ok {
		panic("engine: tick of a cursor that has hit bottom")
	}
	e.cursor = down
}

// CursorHasHitBottom reports whether a cursor exists and cannot move down.
func (e *Engine) CursorHasHitBottom() bool {
	if !e.active {
		return false
	}
	_, ok := e.TickedDownCursor()
	return !ok
}

// HardDrop moves the cursor down until it hits bottom. It does not place it.
func (e *Engine) HardDrop() {
	for {
		down, ok := e.TickedDownCursor()
		if !ok {
			return
		}
		e.cursor = down
	}
}

// PlaceCursor stamps the cursor into the field and releases the hold lock.
// It returns false, leaving the field and cursor unchanged, if the cursor is
// not placeable; that is how the game ends. A placed cursor is consumed and
// the caller spawns the next one. Placing without a cursor panics.
func (e *Engine) PlaceCursor() bool {
	if !e.active {
		panic("engine: place of an absent cursor")
	}
	if err := e.field.PlacePiece(e.cursor); err != nil {
		return false
	}
	e.active = false
	e.holdLocked = false
	return true
}

// TryPlaceCursor is PlaceCursor that treats a missing cursor as success.
func (e *Engine) TryPlaceCursor() bool {
	if !e.active {
		return true
	}
	return e.PlaceCursor()
}

// TryHold banks the cursor's kind. If the slot held a different kind, that
// kind is spawned fresh at the top; if it was empty, the next queued kind is.
// A hold is allowed once per placement.
// ok is false when there is no cursor; swapped reports whether anything changed.
func (e *Engine) TryHold() (swapped, ok bool) {
	if !e.active {
		return false, false
	}
	if e.holdLocked {
		return false, true
	}

	current := e.cursor.Kind
	switch {
	case !e.holding:
		e.hold, e.holding = current, true
		e.CreateTopCursor(nil)
	case e.hold != current:
		previous := e.hold
		e.hold = current
		e.CreateTopCursor(&previous)
	default:
		return false, true
	}

	e.holdLocked = true
	e.rebuildHoldPreview()
	return true, true
}

// LineClear removes every full row and scores it. report, when set, sees the
// row indices before they are cleared. It returns the number of rows cleared.
func (e *Engine) LineClear(report func(rows []int)) int {
	rows := e.field.FullLines()
	if report != nil {
		report(rows)
	}
	if len(rows) == 0 {
		return 0
	}

	e.field.ClearLines(rows)
	e.score += len(rows)
	e.linesReached += len(rows)
	if e.linesReached >= e.cfg.LinesPerLevel {
		e.level++
		e.linesReached = 0
	}
	return len(rows)
}

// DropTime returns the gravity interval for the current level:
// (0.8 - (L+1)*0.007)^(L+1) seconds, divided for soft drop.
func (e *Engine) DropTime(softDrop bool) time.Duration {
	n := float64(e.level + 1)
	seconds := math.Pow(0.8-n*0.007, n)
	d := time.Duration(seconds * float64(time.Second))
	if softDrop {
		d /= time.Duration(e.cfg.SoftDropDivisor)
	}
	if d < minDropTime {
		d = minDropTime
	}
	return d
}

// Reset starts a new game on the same engine. The queue and the generator
// stream carry on.
func (e *Engine) Reset() {
	e.field.Clear()
	e.active = false
	e.cursor = piece.Piece{}
	e.holding = false
	e.holdLocked = false
	e.level = 1
	e.score = 0
	e.linesReached = 0
	e.rebuildHoldPreview()
}
