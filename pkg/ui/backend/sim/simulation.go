// Package sim provides a simulation backend for testing.
package sim

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend/tcell"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	tcellv2 "github.com/gdamore/tcell/v2"
	"github.com/pmezard/go-difflib/difflib"
)

// Call is one recorded Screen call.
type Call struct {
	Op       string
	Row, Col int
	Rows     int
	Cols     int
	Text     string
	Vertical bool
	Style    backend.Style
}

func (c Call) String() string {
	switch c.Op {
	case "text":
		return fmt.Sprintf("text(%d,%d,%q)", c.Row, c.Col, c.Text)
	case "box":
		return fmt.Sprintf("box(%d,%d,%dx%d)", c.Row, c.Col, c.Rows, c.Cols)
	case "line":
		dir := "h"
		if c.Vertical {
			dir = "v"
		}
		return fmt.Sprintf("line(%d,%d,%d%s)", c.Row, c.Col, c.Rows+c.Cols, dir)
	case "clear":
		return fmt.Sprintf("clear(%d,%d,%dx%d)", c.Row, c.Col, c.Rows, c.Cols)
	default:
		return c.Op
	}
}

// Backend is a testable backend using tcell's simulation screen. It records
// every draw call and serves raw input from an injected code queue instead
// of waiting on the terminal.
type Backend struct {
	*tcell.Backend
	screen tcellv2.SimulationScreen

	mu     sync.Mutex
	calls  []Call
	input  []terminal.Code
	frames int

	cursorVisible bool
	cursor        geom.Point
}

// New creates a new simulation backend with the given dimensions. The screen
// is initialized immediately.
func New(rows, cols int) *Backend {
	screen := tcellv2.NewSimulationScreen("")
	if err := screen.Init(); err != nil {
		panic(fmt.Sprintf("sim: init simulation screen: %v", err))
	}
	screen.SetSize(cols, rows)

	return &Backend{
		Backend: tcell.NewWithScreen(screen),
		screen:  screen,
	}
}

// Init is a no-op; New already initialized the screen.
func (s *Backend) Init() error {
	return nil
}

// Resize changes the simulation screen size.
func (s *Backend) Resize(rows, cols int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.SetSize(cols, rows)
}

func (s *Backend) record(c Call) {
	s.mu.Lock()
	s.calls = append(s.calls, c)
	s.mu.Unlock()
}

func (s *Backend) DrawText(row, col int, text string, style backend.Style) {
	s.record(Call{Op: "text", Row: row, Col: col, Text: text, Style: style})
	s.Backend.DrawText(row, col, text, style)
}

func (s *Backend) DrawBox(row, col, rows, cols int, style backend.Style) {
	s.record(Call{Op: "box", Row: row, Col: col, Rows: rows, Cols: cols, Style: style})
	s.Backend.DrawBox(row, col, rows, cols, style)
}

func (s *Backend) DrawLine(row, col, length int, vertical bool, style backend.Style) {
	c := Call{Op: "line", Row: row, Col: col, Vertical: vertical, Style: style}
	if vertical {
		c.Rows = length
	} else {
		c.Cols = length
	}
	s.record(c)
	s.Backend.DrawLine(row, col, length, vertical, style)
}

func (s *Backend) Clear(region geom.Rect) {
	s.record(Call{Op: "clear", Row: region.Row, Col: region.Col, Rows: region.Rows, Cols: region.Cols})
	s.Backend.Clear(region)
}

func (s *Backend) Show() {
	s.mu.Lock()
	s.frames++
	s.mu.Unlock()
	s.Backend.Show()
}

func (s *Backend) ShowCursor(row, col int) {
	s.mu.Lock()
	s.cursorVisible = true
	s.cursor = geom.Point{Row: row, Col: col}
	s.mu.Unlock()
	s.Backend.ShowCursor(row, col)
}

func (s *Backend) HideCursor() {
	s.mu.Lock()
	s.cursorVisible = false
	s.mu.Unlock()
	s.Backend.HideCursor()
}

// Cursor reports the last cursor request.
func (s *Backend) Cursor() (geom.Point, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor, s.cursorVisible
}

// Calls returns a copy of the recorded draw calls.
func (s *Backend) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Call(nil), s.calls...)
}

// CallStrings returns the recorded draw calls in their String form.
func (s *Backend) CallStrings() []string {
	calls := s.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// ResetCalls forgets recorded draw calls.
func (s *Backend) ResetCalls() {
	s.mu.Lock()
	s.calls = nil
	s.mu.Unlock()
}

// Frames returns how many times Show was called.
func (s *Backend) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// InjectCodes queues raw input codes.
func (s *Backend) InjectCodes(codes ...terminal.Code) {
	s.mu.Lock()
	s.input = append(s.input, codes...)
	s.mu.Unlock()
}

// InjectString queues every rune of str as a raw code.
func (s *Backend) InjectString(str string) {
	s.InjectCodes(terminal.Codes(str)...)
}

// InjectKey queues the raw encoding of a named key or printable token.
func (s *Backend) InjectKey(tok terminal.Token) {
	if seq, ok := terminal.Xterm[tok]; ok {
		s.InjectString(seq)
		return
	}
	switch tok {
	case terminal.KeyEnter:
		s.InjectCodes(terminal.CodeCR)
	case terminal.KeyTab:
		s.InjectCodes(terminal.CodeTab)
	case terminal.KeyEscape:
		s.InjectCodes(terminal.CodeEscape)
	case terminal.KeyBackspace:
		s.InjectCodes(terminal.CodeDEL)
	case terminal.KeySpace:
		s.InjectCodes(terminal.CodeSpace)
	default:
		s.InjectString(string(tok))
	}
}

// Pending returns the number of injected codes not yet read.
func (s *Backend) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.input)
}

// ReadRawInputCode pops the next injected code. It never waits: an empty
// queue reads as an immediate timeout.
func (s *Backend) ReadRawInputCode(time.Duration) (terminal.Code, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.input) == 0 {
		return 0, false
	}
	code := s.input[0]
	s.input = s.input[1:]
	return code, true
}

// Capture captures the current screen content as a string.
func (s *Backend) Capture() string {
	rows, cols := s.Extent()
	return s.CaptureRegion(0, 0, rows, cols)
}

// CaptureRegion captures a rectangular region of the screen.
func (s *Backend) CaptureRegion(row, col, rows, cols int) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := make([]string, 0, rows)
	for y := row; y < row+rows; y++ {
		var line strings.Builder
		for x := col; x < col+cols; {
			mainc, comb, _, width := s.screen.GetContent(x, y)
			if mainc == 0 {
				mainc = ' '
			}
			line.WriteRune(mainc)
			for _, c := range comb {
				line.WriteRune(c)
			}
			// wide runes cover the following cell
			x += max(width, 1)
		}
		lines = append(lines, line.String())
	}
	return strings.Join(lines, "\n")
}

// CaptureTrimmed is Capture with trailing spaces removed from each line and
// trailing blank lines dropped, for golden comparisons.
func (s *Backend) CaptureTrimmed() string {
	lines := strings.Split(s.Capture(), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return strings.Join(lines, "\n")
}

// Diff compares the trimmed screen against a golden frame and returns a
// unified diff, or "" when they match.
func (s *Backend) Diff(golden string) string {
	got := s.CaptureTrimmed()
	want := strings.TrimRight(golden, "\n")
	if got == want {
		return ""
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(want + "\n"),
		B:        difflib.SplitLines(got + "\n"),
		FromFile: "golden",
		ToFile:   "screen",
		Context:  2,
	})
	if err != nil {
		return err.Error()
	}
	return diff
}

// CaptureCell returns the content and style of a single cell.
func (s *Backend) CaptureCell(row, col int) (rune, backend.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, _, style, _ := s.screen.GetContent(col, row)
	return m, tcell.StyleFromTcell(style)
}

// FindText searches for text on the screen and returns its position.
func (s *Backend) FindText(text string) (row, col int) {
	for r, line := range strings.Split(s.Capture(), "\n") {
		if i := strings.Index(line, text); i >= 0 {
			return r, len([]rune(line[:i]))
		}
	}
	return -1, -1
}

// ContainsText returns true if the text appears anywhere on screen.
func (s *Backend) ContainsText(text string) bool {
	row, _ := s.FindText(text)
	return row >= 0
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
