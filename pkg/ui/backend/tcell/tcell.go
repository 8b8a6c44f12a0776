// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"sync"
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/gdamore/tcell/v2"
)

// Backend implements backend.Backend using tcell. tcell decodes keys itself,
// so key events are re-encoded into the raw codes the runtime's decoder
// expects.
type Backend struct {
	screen tcell.Screen

	events chan tcell.Event
	done   chan struct{}
	once   sync.Once

	// codes re-encoded from the last key event, not yet read
	pending []terminal.Code
}

// New creates a new tcell backend.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen), nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{
		screen: screen,
		events: make(chan tcell.Event, 64),
		done:   make(chan struct{}),
	}
}

// Screen exposes the underlying tcell screen.
func (b *Backend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the screen and starts the event pump.
func (b *Backend) Init() error {
	if err := b.screen.Init(); err != nil {
		return err
	}
	go b.pump()
	return nil
}

func (b *Backend) pump() {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case b.events <- ev:
		case <-b.done:
			return
		}
	}
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.once.Do(func() { close(b.done) })
	b.screen.Fini()
}

// Extent returns the terminal dimensions.
func (b *Backend) Extent() (rows, cols int) {
	w, h := b.screen.Size()
	return h, w
}

// SetCell implements backend.Canvas.
func (b *Backend) SetCell(row, col int, r rune, style backend.Style) {
	b.screen.SetContent(col, row, r, nil, ConvertStyle(style))
}

func (b *Backend) DrawText(row, col int, text string, style backend.Style) {
	backend.DrawText(b, row, col, text, style)
}

func (b *Backend) DrawBox(row, col, rows, cols int, style backend.Style) {
	backend.DrawBox(b, row, col, rows, cols, style)
}

func (b *Backend) DrawLine(row, col, length int, vertical bool, style backend.Style) {
	backend.DrawLine(b, row, col, length, vertical, style)
}

func (b *Backend) Clear(region geom.Rect) {
	backend.Fill(b, region)
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// ShowCursor places the cursor.
func (b *Backend) ShowCursor(row, col int) {
	b.screen.ShowCursor(col, row)
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// ReadRawInputCode returns the next raw code, waiting up to timeout for a
// key event. Non-key events end the wait early so the caller can react to
// resizes.
func (b *Backend) ReadRawInputCode(timeout time.Duration) (terminal.Code, bool) {
	if code, ok := b.popPending(); ok {
		return code, true
	}

	var timer <-chan time.Time
	if timeout > 0 {
		t := time.NewTimer(timeout)
		defer t.Stop()
		timer = t.C
	}

	for {
		var ev tcell.Event
		if timer == nil {
			select {
			case ev = <-b.events:
			default:
				return 0, false
			}
		} else {
			select {
			case ev = <-b.events:
			case <-timer:
				return 0, false
			case <-b.done:
				return 0, false
			}
		}

		key, ok := ev.(*tcell.EventKey)
		if !ok {
			return 0, false
		}
		b.pending = append(b.pending, EncodeKey(key)...)
		if code, ok := b.popPending(); ok {
			return code, true
		}
	}
}

func (b *Backend) popPending() (terminal.Code, bool) {
	if len(b.pending) == 0 {
		return 0, false
	}
	code := b.pending[0]
	b.pending = b.pending[1:]
	return code, true
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
