// Package backend defines the screen collaborator the UI runtime draws to
// and reads raw input from. Implementations live in subpackages: tcell for
// real terminals, tty for a raw ANSI terminal, sim for tests.
package backend

import (
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

//go:generate mockgen -package=mock -destination=mock/mock_screen.go github.com/dcrosta/dtk-sub000/pkg/ui/backend Screen

// Screen is what the runtime consumes. All coordinates are absolute
// (row, col) cells; implementations clip anything outside the screen.
type Screen interface {
	// Extent returns the current terminal dimensions.
	Extent() (rows, cols int)

	// DrawText writes text starting at (row, col). Wide runes occupy two
	// columns.
	DrawText(row, col int, text string, style Style)

	// DrawBox draws a single-line border around the given area.
	DrawBox(row, col, rows, cols int, style Style)

	// DrawLine draws a horizontal or vertical rule of length cells.
	DrawLine(row, col, length int, vertical bool, style Style)

	// Clear blanks a region.
	Clear(region geom.Rect)

	// ShowCursor places the text cursor at (row, col) and makes it visible.
	ShowCursor(row, col int)

	// HideCursor hides the text cursor.
	HideCursor()

	// ReadRawInputCode waits up to timeout for one raw input code.
	// A zero timeout polls.
	ReadRawInputCode(timeout time.Duration) (terminal.Code, bool)
}

// Backend is a Screen with a lifecycle.
type Backend interface {
	Screen

	// Init initializes the backend (enters alt screen, raw mode, etc).
	Init() error

	// Fini cleans up the backend (restores terminal state).
	Fini()

	// Show synchronizes pending draws to the terminal.
	Show()

	// Sync forces a full redraw on next Show().
	Sync()
}

// Canvas is the cell-level surface the shared draw helpers write to.
type Canvas interface {
	Extent() (rows, cols int)
	SetCell(row, col int, r rune, style Style)
}
