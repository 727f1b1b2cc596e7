// Package view draws a machine snapshot into a core.Screen.
// It is a pure function of the snapshot; the platform turns the screen into
// styled terminal output.
package view

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/tetris/field"
	"github.com/vovakirdan/tui-tetris/internal/tetris/machine"
)

const (
	cellWidth  = 2  // screen columns per field cell
	panelWidth = 10 // preview box width, border included
	panelGap   = 2
	slotRows   = 2 // rows of a preview slot that pieces occupy
	hudHeight  = 1
)

const (
	blockRune = '█'
	emptyRune = '·'
)

// Layout holds the screen rectangles of every element.
type Layout struct {
	Board core.Rect
	Hold  core.Rect
	Next  core.Rect
	Queue core.Rect
}

// ComputeLayout centers the board on a w×h screen with the hold box on its
// left and the next and queue boxes on its right.
func ComputeLayout(snap machine.Snapshot, w, h int) Layout {
	boardW := snap.Field.Width()*cellWidth + 2
	boardH := snap.Field.Height() + 2
	board := core.NewRect((w-boardW)/2, hudHeight, boardW, boardH)

	right := board.Right() + panelGap
	next := core.NewRect(right, board.Y, panelWidth, slotRows+2)
	slots := snap.Queue.Height() / 4
	queue := core.NewRect(right, next.Bottom(), panelWidth, slots*(slotRows+1)+1)

	return Layout{
		Board: board,
		Hold:  core.NewRect(board.X-panelGap-panelWidth, board.Y, panelWidth, slotRows+2),
		Next:  next,
		Queue: queue,
	}
}

// MinSize returns the smallest screen the snapshot fits on.
func MinSize(snap machine.Snapshot) (w, h int) {
	l := ComputeLayout(snap, 0, 0)
	w = l.Queue.Right() - l.Hold.X
	h = max(l.Board.Bottom(), l.Queue.Bottom())
	return w, h
}

// Render draws the snapshot. The screen is cleared first.
func Render(dst *core.Screen, snap machine.Snapshot) {
	dst.Clear()

	minW, minH := MinSize(snap)
	if dst.Width() < minW || dst.Height() < minH {
		renderTooSmall(dst, minW, minH)
		return
	}

	l := ComputeLayout(snap, dst.Width(), dst.Height())

	renderHUD(dst, snap, l.Board)
	renderBoard(dst, snap, l.Board)
	renderPreview(dst, "HOLD", snap.Hold, l.Hold, 1)
	renderPreview(dst, "NEXT", snap.Next, l.Next, 1)
	renderPreview(dst, "QUEUE", snap.Queue, l.Queue, snap.Queue.Height()/4)
	renderOverlay(dst, snap, l.Board)
}

func renderTooSmall(dst *core.Screen, w, h int) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need %dx%d", w, h))
}

func renderHUD(dst *core.Screen, snap machine.Snapshot, board core.Rect) {
	dst.DrawText(board.X, 0, fmt.Sprintf("Score %d", snap.Score))
	level := fmt.Sprintf("Level %d", snap.Level)
	dst.DrawText(board.Right()-len(level), 0, level)
}

// renderBoard draws the playfield box, the stack and the cursor.
func renderBoard(dst *core.Screen, snap machine.Snapshot, board core.Rect) {
	dst.DrawBox(board)
	inner := board.Inset(1)
	height := snap.Field.Height()

	for c, cell := range snap.Field.Cells() {
		drawCell(dst, inner, height, c.X, c.Y, cell)
	}

	if !snap.HasCursor {
		return
	}
	for _, o := range snap.Cursor.Cells {
		if o.X < 0 || o.Y < 0 || o.X >= snap.Field.Width() || o.Y >= height {
			continue
		}
		drawCell(dst, inner, height, o.X, o.Y, field.FilledCell(snap.Cursor.Color))
	}
}

// drawCell draws field cell (x, y) into area; row 0 is at the bottom.
func drawCell(dst *core.Screen, area core.Rect, height, x, y int, cell field.Cell) {
	sx := area.X + x*cellWidth
	sy := area.Y + height - 1 - y
	if cell.Filled {
		dst.SetColored(sx, sy, blockRune, cell.Color)
		dst.SetColored(sx+1, sy, blockRune, cell.Color)
		return
	}
	dst.SetColored(sx, sy, ' ', core.ColorDefault)
	dst.SetColored(sx+1, sy, emptyRune, core.ColorGray)
}

// renderPreview draws a preview field in slots of four rows, showing only the
// two rows a north-facing piece can occupy in each slot.
func renderPreview(dst *core.Screen, title string, f *field.Field, box core.Rect, slots int) {
	dst.DrawBox(box)
	dst.DrawText(box.X+1, box.Y, title)
	inner := box.Inset(1)

	for slot := range slots {
		base := (slots - 1 - slot) * 4
		top := inner.Y + slot*(slotRows+1)
		for row := range slotRows {
			y := base + slotRows - row
			for x := range f.Width() {
				cell := f.Get(field.C(x, y))
				if !cell.Filled {
					continue
				}
				sx := inner.X + x*cellWidth
				dst.SetColored(sx, top+row, blockRune, cell.Color)
				dst.SetColored(sx+1, top+row, blockRune, cell.Color)
			}
		}
	}
}

func renderOverlay(dst *core.Screen, snap machine.Snapshot, board core.Rect) {
	var lines []string
	switch snap.State {
	case machine.Paused:
		lines = []string{"PAUSED", "", "p to resume"}
	case machine.GameOver:
		lines = []string{"GAME OVER", fmt.Sprintf("Score %d", snap.Score), "", "enter to retry"}
	default:
		return
	}

	y := board.Y + (board.H-len(lines))/2
	for i, line := range lines {
		x := board.X + (board.W-len([]rune(line)))/2
		dst.DrawTextColored(x, y+i, line, core.ColorBrightWhite)
	}
}
