// Package tty is a backend that drives an ANSI terminal directly: raw mode
// through x/term, a retained cell buffer diffed against what the terminal
// last showed, and SGR sequences chosen for the detected color profile.
package tty

import (
	"bytes"
	"strconv"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/mattn/go-runewidth"
)

type cell struct {
	r     rune
	width int8 // 0 marks the trailing half of a wide rune
	style backend.Style
}

var blank = cell{r: ' ', width: 1, style: backend.DefaultStyle()}

// invalid never matches a drawn cell, forcing a redraw.
var invalid = cell{r: -1, width: 1}

// buffer is a fixed-size grid of cells.
type buffer struct {
	rows, cols int
	cells      []cell
}

func newBuffer(rows, cols int) *buffer {
	b := &buffer{}
	b.resize(rows, cols)
	return b
}

func (b *buffer) resize(rows, cols int) {
	b.rows, b.cols = max(rows, 0), max(cols, 0)
	b.cells = make([]cell, b.rows*b.cols)
	b.fill(blank)
}

func (b *buffer) fill(c cell) {
	for i := range b.cells {
		b.cells[i] = c
	}
}

func (b *buffer) at(row, col int) *cell {
	return &b.cells[row*b.cols+col]
}

// Extent implements backend.Canvas.
func (b *buffer) Extent() (int, int) {
	return b.rows, b.cols
}

// SetCell implements backend.Canvas.
func (b *buffer) SetCell(row, col int, r rune, style backend.Style) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	w := runewidth.RuneWidth(r)
	if w < 1 {
		w = 1
	}
	// Overwriting either half of a wide rune blanks the other half.
	if cur := b.at(row, col); cur.width == 0 && col > 0 {
		*b.at(row, col-1) = blank
	} else if cur.width == 2 && col+1 < b.cols {
		*b.at(row, col+1) = blank
	}
	*b.at(row, col) = cell{r: r, width: int8(w), style: style}
	if w == 2 && col+1 < b.cols {
		*b.at(row, col+1) = cell{width: 0, style: style}
	}
}

// renderer writes the difference between the screen image and what the
// terminal currently shows.
type renderer struct {
	sgr  *sgrEncoder
	out  bytes.Buffer
	last backend.Style
	set  bool
}

// diff appends to r.out the output that turns prev into cur, then copies
// cur into prev.
func (r *renderer) diff(prev, cur *buffer) {
	r.set = false
	lastRow, lastCol := -1, -1
	for row := 0; row < cur.rows; row++ {
		for col := 0; col < cur.cols; col++ {
			c := *cur.at(row, col)
			p := prev.at(row, col)
			if c.width == 0 || c == *p {
				continue
			}
			if row != lastRow || col != lastCol {
				r.moveTo(row, col)
			}
			if !r.set || c.style != r.last {
				r.out.WriteString(r.sgr.encode(c.style))
				r.last, r.set = c.style, true
			}
			r.out.WriteRune(c.r)
			*p = c
			if c.width == 2 && col+1 < cur.cols {
				*prev.at(row, col+1) = *cur.at(row, col+1)
			}
			lastRow, lastCol = row, col+int(c.width)
		}
	}
	if r.set {
		r.out.WriteString(sgrReset)
	}
}

func (r *renderer) moveTo(row, col int) {
	r.out.WriteString(cursorTo(row, col))
}

func cursorTo(row, col int) string {
	return "\x1b[" + strconv.Itoa(row+1) + ";" + strconv.Itoa(col+1) + "H"
}

const (
	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"
	seqHideCursor   = "\x1b[?25l"
	seqShowCursor   = "\x1b[?25h"
	seqClearScreen  = "\x1b[2J"
)
