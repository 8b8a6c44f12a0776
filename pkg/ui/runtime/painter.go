package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
)

// Painter forwards a widget's draw calls to the screen, translated from
// widget-relative coordinates and clipped to the widget's bounds.
type Painter struct {
	screen backend.Screen
	bounds geom.Rect
}

func newPainter(screen backend.Screen, bounds geom.Rect) *Painter {
	return &Painter{screen: screen, bounds: bounds}
}

// Extent is the size of the area being painted.
func (p *Painter) Extent() geom.Extent {
	return p.bounds.Extent
}

// Bounds is the absolute area being painted.
func (p *Painter) Bounds() geom.Rect {
	return p.bounds
}

// DrawText draws a single line of text, dropping whatever falls outside
// the bounds. Returns the number of columns drawn.
func (p *Painter) DrawText(row, col int, text string, style backend.Style) int {
	if row < 0 || row >= p.bounds.Rows || text == "" {
		return 0
	}
	if col < 0 {
		text = trimLeft(text, -col)
		col = 0
	}
	room := p.bounds.Cols - col
	if room <= 0 || text == "" {
		return 0
	}
	if runewidth.StringWidth(text) > room {
		text = runewidth.Truncate(text, room, "")
	}
	if text == "" {
		return 0
	}
	p.screen.DrawText(p.bounds.Row+row, p.bounds.Col+col, text, style)
	return runewidth.StringWidth(text)
}

// trimLeft drops the first cols columns of s. A wide rune cut in half is
// dropped entirely.
func trimLeft(s string, cols int) string {
	for i, r := range s {
		if cols <= 0 {
			return s[i:]
		}
		cols -= runewidth.RuneWidth(r)
	}
	return ""
}

// DrawBox draws a border around the given area, clipped to the bounds.
func (p *Painter) DrawBox(row, col, rows, cols int, style backend.Style) {
	box := p.clip(geom.NewRect(row, col, rows, cols))
	if box.Empty() {
		return
	}
	p.screen.DrawBox(box.Row, box.Col, box.Rows, box.Cols, style)
}

// DrawLine draws a horizontal or vertical rule, clipped to the bounds.
func (p *Painter) DrawLine(row, col, length int, vertical bool, style backend.Style) {
	area := geom.NewRect(row, col, 1, length)
	if vertical {
		area = geom.NewRect(row, col, length, 1)
	}
	line := p.clip(area)
	if line.Empty() {
		return
	}
	if vertical {
		p.screen.DrawLine(line.Row, line.Col, line.Rows, true, style)
	} else {
		p.screen.DrawLine(line.Row, line.Col, line.Cols, false, style)
	}
}

// Clear blanks a region given in widget coordinates.
func (p *Painter) Clear(region geom.Rect) {
	if r := p.clip(region); !r.Empty() {
		p.screen.Clear(r)
	}
}

// Fill blanks the whole area.
func (p *Painter) Fill() {
	p.Clear(geom.FromExtent(p.bounds.Extent))
}

// clip converts a relative rect to absolute coordinates inside the bounds.
func (p *Painter) clip(r geom.Rect) geom.Rect {
	abs := geom.NewRect(p.bounds.Row+r.Row, p.bounds.Col+r.Col, r.Rows, r.Cols)
	return abs.Intersection(p.bounds)
}
