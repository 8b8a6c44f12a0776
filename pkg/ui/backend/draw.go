package backend

import (
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/mattn/go-runewidth"
)

// Box drawing runes.
const (
	RuneHLine    = '─'
	RuneVLine    = '│'
	RuneULCorner = '┌'
	RuneURCorner = '┐'
	RuneLLCorner = '└'
	RuneLRCorner = '┘'
)

// DrawText writes text cell by cell and returns the columns consumed.
// Zero-width runes are dropped; wide runes take two columns and are not
// started in the last visible column.
func DrawText(c Canvas, row, col int, text string, style Style) int {
	rows, cols := c.Extent()
	if row < 0 || row >= rows {
		return 0
	}
	start := col
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col >= cols {
			break
		}
		if col >= 0 {
			if w == 2 && col+1 >= cols {
				break
			}
			c.SetCell(row, col, r, style)
		}
		col += w
	}
	return col - start
}

// DrawBox draws a single-line border. Boxes smaller than 2x2 degrade to lines.
func DrawBox(c Canvas, row, col, rows, cols int, style Style) {
	if rows <= 0 || cols <= 0 {
		return
	}
	if rows == 1 {
		DrawLine(c, row, col, cols, false, style)
		return
	}
	if cols == 1 {
		DrawLine(c, row, col, rows, true, style)
		return
	}
	bottom, right := row+rows-1, col+cols-1
	DrawLine(c, row, col+1, cols-2, false, style)
	DrawLine(c, bottom, col+1, cols-2, false, style)
	DrawLine(c, row+1, col, rows-2, true, style)
	DrawLine(c, row+1, right, rows-2, true, style)
	setClipped(c, row, col, RuneULCorner, style)
	setClipped(c, row, right, RuneURCorner, style)
	setClipped(c, bottom, col, RuneLLCorner, style)
	setClipped(c, bottom, right, RuneLRCorner, style)
}

// DrawLine draws a rule of length cells.
func DrawLine(c Canvas, row, col, length int, vertical bool, style Style) {
	for i := 0; i < length; i++ {
		if vertical {
			setClipped(c, row+i, col, RuneVLine, style)
		} else {
			setClipped(c, row, col+i, RuneHLine, style)
		}
	}
}

// Fill blanks a region with spaces in the default style.
func Fill(c Canvas, region geom.Rect) {
	rows, cols := c.Extent()
	region = region.Intersection(geom.NewRect(0, 0, rows, cols))
	style := DefaultStyle()
	for r := region.Row; r < region.Bottom(); r++ {
		for col := region.Col; col < region.Right(); col++ {
			c.SetCell(r, col, ' ', style)
		}
	}
}

func setClipped(c Canvas, row, col int, r rune, style Style) {
	rows, cols := c.Extent()
	if row < 0 || row >= rows || col < 0 || col >= cols {
		return
	}
	c.SetCell(row, col, r, style)
}
