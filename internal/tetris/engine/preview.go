package engine

import (
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris/field"
	"github.com/vovakirdan/tui-tetris/internal/tetris/piece"
)

// previewSize is the side of one preview box; it fits every kind facing north.
const previewSize = 4

// HoldField returns the hold preview. Callers must not modify it.
func (e *Engine) HoldField() *field.Field { return e.holdField }

// NextField returns the next-piece preview. Callers must not modify it.
func (e *Engine) NextField() *field.Field { return e.nextField }

// QueueField returns the preview of the kinds after the next one, stacked
// top-down in the order they will be dealt. Callers must not modify it.
func (e *Engine) QueueField() *field.Field { return e.queueField }

func (e *Engine) rebuildHoldPreview() {
	e.holdField.Clear()
	if e.holding {
		stamp(e.holdField, e.hold, 0)
	}
}

func (e *Engine) rebuildQueuePreviews() {
	e.nextField.Clear()
	stamp(e.nextField, e.queue[0], 0)

	e.queueField.Clear()
	slots := e.queueField.Height() / previewSize
	for i, k := range e.queue[1:] {
		stamp(e.queueField, k, (slots-1-i)*previewSize)
	}
}

// stamp draws a north-facing k into dst with its bounding box at row y.
func stamp(dst *field.Field, k piece.Kind, y int) {
	p := piece.New(k, piece.O(0, y))
	if err := dst.PlacePiece(p); err != nil {
		panic("engine: preview does not fit " + k.String())
	}
}

// CursorInfo describes the falling piece for rendering.
type CursorInfo struct {
	Kind     piece.Kind
	Cells    [piece.CellCount]piece.Offset // field positions, possibly above the top row
	Color    core.Color
	Rotation piece.Rotation
}

// CursorInfo returns the cursor's cells, color and rotation, if a cursor exists.
func (e *Engine) CursorInfo() (CursorInfo, bool) {
	if !e.active {
		return CursorInfo{}, false
	}
	return CursorInfo{
		Kind:     e.cursor.Kind,
		Cells:    e.cursor.FieldOffsets(),
		Color:    e.cursor.Kind.Color(),
		Rotation: e.cursor.Rotation,
	}, true
}

// Snapshot is a read-only copy of everything a renderer needs.
type Snapshot struct {
	Field      *field.Field
	Cursor     CursorInfo
	HasCursor  bool
	Hold       *field.Field
	Next       *field.Field
	Queue      *field.Field
	Level      int
	Score      int
	Lines      int
	HoldLocked bool
}

// Snapshot copies the engine's visible state.
func (e *Engine) Snapshot() Snapshot {
	cursor, ok := e.CursorInfo()
	return Snapshot{
		Field:      e.field.Clone(),
		Cursor:     cursor,
		HasCursor:  ok,
		Hold:       e.holdField.Clone(),
		Next:       e.nextField.Clone(),
		Queue:      e.queueField.Clone(),
		Level:      e.level,
		Score:      e.score,
		Lines:      e.linesReached,
		HoldLocked: e.holdLocked,
	}
}
