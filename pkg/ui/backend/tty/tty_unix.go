//go:build unix

package tty

import (
	"io"
	"os"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/muesli/termenv"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Backend implements backend.Backend over a terminal file pair.
type Backend struct {
	in, out *os.File
	state   *term.State

	mu     sync.Mutex
	cur    *buffer
	prev   *buffer
	render renderer

	cursorVisible bool
	cursor        geom.Point

	readBuf []byte
}

// New creates a backend reading from in and writing to out. Both are usually
// the controlling terminal.
func New(in, out *os.File) *Backend {
	return &Backend{in: in, out: out}
}

// NewStd creates a backend on stdin and stdout.
func NewStd() *Backend {
	return New(os.Stdin, os.Stdout)
}

// Init puts the input terminal in raw mode and switches to the alternate
// screen.
func (b *Backend) Init() error {
	if !term.IsTerminal(int(b.in.Fd())) {
		return errors.New(errors.ErrCodeBackendInit, "input is not a terminal").
			WithContext("fd", b.in.Fd())
	}
	state, err := term.MakeRaw(int(b.in.Fd()))
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeBackendInit, "enabling raw mode")
	}
	b.state = state

	rows, cols := b.querySize()
	profile := termenv.NewOutput(b.out).EnvColorProfile()

	b.mu.Lock()
	b.cur = newBuffer(rows, cols)
	b.prev = newBuffer(rows, cols)
	b.prev.fill(invalid)
	b.render = renderer{sgr: newSGREncoder(profile)}
	b.mu.Unlock()

	_, err = io.WriteString(b.out, seqAltScreenOn+seqHideCursor+seqClearScreen)
	if err != nil {
		term.Restore(int(b.in.Fd()), state)
		return errors.Wrap(err, errors.ErrCodeBackendInit, "writing terminal setup")
	}
	return nil
}

// Fini restores the terminal.
func (b *Backend) Fini() {
	io.WriteString(b.out, sgrReset+seqShowCursor+seqAltScreenOff)
	if b.state != nil {
		term.Restore(int(b.in.Fd()), b.state)
		b.state = nil
	}
}

func (b *Backend) querySize() (rows, cols int) {
	ws, err := unix.IoctlGetWinsize(int(b.out.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Row == 0 || ws.Col == 0 {
		return 24, 80
	}
	return int(ws.Row), int(ws.Col)
}

// Extent queries the window size; a change resizes the cell buffers and
// forces a full redraw on the next Show.
func (b *Backend) Extent() (rows, cols int) {
	rows, cols = b.querySize()
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cur != nil && (b.cur.rows != rows || b.cur.cols != cols) {
		b.cur.resize(rows, cols)
		b.prev.resize(rows, cols)
		b.prev.fill(invalid)
	}
	return rows, cols
}

func (b *Backend) canvas() backend.Canvas {
	if b.cur == nil {
		b.cur = newBuffer(b.querySize())
		b.prev = newBuffer(b.cur.rows, b.cur.cols)
		b.prev.fill(invalid)
		b.render = renderer{sgr: newSGREncoder(termenv.Ascii)}
	}
	return b.cur
}

func (b *Backend) DrawText(row, col int, text string, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	backend.DrawText(b.canvas(), row, col, text, style)
}

func (b *Backend) DrawBox(row, col, rows, cols int, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	backend.DrawBox(b.canvas(), row, col, rows, cols, style)
}

func (b *Backend) DrawLine(row, col, length int, vertical bool, style backend.Style) {
	b.mu.Lock()
	defer b.mu.Unlock()
	backend.DrawLine(b.canvas(), row, col, length, vertical, style)
}

func (b *Backend) Clear(region geom.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	backend.Fill(b.canvas(), region)
}

func (b *Backend) ShowCursor(row, col int) {
	b.mu.Lock()
	b.cursorVisible = true
	b.cursor = geom.Point{Row: row, Col: col}
	b.mu.Unlock()
}

func (b *Backend) HideCursor() {
	b.mu.Lock()
	b.cursorVisible = false
	b.mu.Unlock()
}

// Show writes the changed cells and the cursor state.
func (b *Backend) Show() {
	b.mu.Lock()
	b.canvas()
	b.render.out.Reset()
	b.render.out.WriteString(seqHideCursor)
	b.render.diff(b.prev, b.cur)
	if b.cursorVisible {
		b.render.out.WriteString(cursorTo(b.cursor.Row, b.cursor.Col) + seqShowCursor)
	}
	out := append([]byte(nil), b.render.out.Bytes()...)
	b.mu.Unlock()

	b.out.Write(out)
}

// Sync forgets what the terminal shows so the next Show repaints every cell.
func (b *Backend) Sync() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.prev != nil {
		b.prev.fill(invalid)
	}
	io.WriteString(b.out, seqClearScreen)
}

// ReadRawInputCode returns the next code, waiting up to timeout for input.
// Bytes are decoded as UTF-8; invalid bytes are passed through as codes.
func (b *Backend) ReadRawInputCode(timeout time.Duration) (terminal.Code, bool) {
	if code, ok := b.nextBuffered(); ok {
		return code, true
	}
	ready, err := selectWithTimeout(int(b.in.Fd()), timeout)
	if err != nil || !ready {
		return 0, false
	}
	var chunk [256]byte
	n, err := b.in.Read(chunk[:])
	if n <= 0 || err != nil {
		return 0, false
	}
	b.readBuf = append(b.readBuf, chunk[:n]...)
	return b.nextBuffered()
}

func (b *Backend) nextBuffered() (terminal.Code, bool) {
	if len(b.readBuf) == 0 {
		return 0, false
	}
	if !utf8.FullRune(b.readBuf) {
		// Wait for the rest of a split multi-byte rune.
		if len(b.readBuf) < utf8.UTFMax {
			ready, _ := selectWithTimeout(int(b.in.Fd()), 5*time.Millisecond)
			if ready {
				var chunk [16]byte
				if n, _ := b.in.Read(chunk[:]); n > 0 {
					b.readBuf = append(b.readBuf, chunk[:n]...)
				}
			}
		}
	}
	r, size := utf8.DecodeRune(b.readBuf)
	if r == utf8.RuneError && size <= 1 {
		r = rune(b.readBuf[0])
		size = 1
	}
	b.readBuf = b.readBuf[size:]
	return terminal.Code(r), true
}

// selectWithTimeout waits for fd to become readable.
func selectWithTimeout(fd int, timeout time.Duration) (bool, error) {
	var readFds unix.FdSet
	readFds.Zero()
	readFds.Set(fd)

	tv := unix.NsecToTimeval(max(timeout, 0).Nanoseconds())
	n, err := unix.Select(fd+1, &readFds, nil, nil, &tv)
	if err != nil {
		if err == unix.EINTR {
			return false, nil
		}
		return false, err
	}
	return n > 0, nil
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
