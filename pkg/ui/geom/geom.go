// Package geom holds the cell geometry shared by the layout solver, the
// widget tree and the screen backends. All coordinates are zero-based
// (row, col) cell positions; extents are never negative.
package geom

import "fmt"

// Point is a cell position.
type Point struct {
	Row, Col int
}

// Extent is a size in cells.
type Extent struct {
	Rows, Cols int
}

// Empty returns true if either dimension is zero.
func (e Extent) Empty() bool {
	return e.Rows <= 0 || e.Cols <= 0
}

// Clamp limits e to fit within limit in both dimensions.
func (e Extent) Clamp(limit Extent) Extent {
	return Extent{
		Rows: clamp(e.Rows, 0, limit.Rows),
		Cols: clamp(e.Cols, 0, limit.Cols),
	}
}

// Along returns the extent measured along axis-major dimension.
// horizontal=true selects Cols, otherwise Rows.
func (e Extent) Along(horizontal bool) int {
	if horizontal {
		return e.Cols
	}
	return e.Rows
}

func (e Extent) String() string {
	return fmt.Sprintf("%dx%d", e.Rows, e.Cols)
}

// Rect is a positioned extent.
type Rect struct {
	Point
	Extent
}

// NewRect creates a rect from an origin and size.
func NewRect(row, col, rows, cols int) Rect {
	return Rect{Point: Point{Row: row, Col: col}, Extent: Extent{Rows: max(0, rows), Cols: max(0, cols)}}
}

// FromExtent creates a rect at the origin with the given size.
func FromExtent(e Extent) Rect {
	return Rect{Extent: e}
}

// Bottom returns the first row below the rect.
func (r Rect) Bottom() int {
	return r.Row + r.Rows
}

// Right returns the first column right of the rect.
func (r Rect) Right() int {
	return r.Col + r.Cols
}

// Contains returns true if the cell is inside the rect.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Row && row < r.Bottom() && col >= r.Col && col < r.Right()
}

// Intersection returns the overlapping area of two rects.
func (r Rect) Intersection(other Rect) Rect {
	row := max(r.Row, other.Row)
	col := max(r.Col, other.Col)
	bottom := min(r.Bottom(), other.Bottom())
	right := min(r.Right(), other.Right())
	if bottom <= row || right <= col {
		return Rect{}
	}
	return NewRect(row, col, bottom-row, right-col)
}

// Inset returns a rect shrunk by the given amounts.
func (r Rect) Inset(top, right, bottom, left int) Rect {
	return NewRect(r.Row+top, r.Col+left, r.Rows-top-bottom, r.Cols-left-right)
}

// Center returns a rect of extent e centered inside r, clipped to r.
func (r Rect) Center(e Extent) Rect {
	e = e.Clamp(r.Extent)
	return NewRect(r.Row+(r.Rows-e.Rows)/2, r.Col+(r.Cols-e.Cols)/2, e.Rows, e.Cols)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %s)", r.Row, r.Col, r.Extent)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
