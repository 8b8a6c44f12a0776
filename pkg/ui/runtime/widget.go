// Package runtime is the widget runtime: an arena tree of widgets with a
// single focus path, axis containers laid out by the flex allocator,
// per-node damage tracking and the render loop that ties them to a screen.
package runtime

import (
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

// ID identifies a node in a Tree. IDs are never reused within a tree.
type ID uint64

// NoID is the zero ID.
const NoID ID = 0

// Widget is the contract every node implements.
type Widget interface {
	// Measure returns the desired extent given the space available.
	Measure(available geom.Extent) geom.Extent

	// Paint draws the widget. Coordinates are relative to its bounds and
	// drawing is clipped to them.
	Paint(p *Painter)

	// HandleInput offers a key the node's bindings did not consume.
	HandleInput(tok terminal.Token) bool

	// Focus and Unfocus are notifications; they must not change focus.
	Focus()
	Unfocus()
}

// Arranger widgets are told their bounds after every arrange pass.
type Arranger interface {
	Arrange(bounds geom.Rect)
}

// Attacher widgets receive their node handle when added to a tree.
type Attacher interface {
	Attach(n Node)
}

// Focusable lets a leaf decline focus. Leaves that don't implement it can
// always be focused.
type Focusable interface {
	CanFocus() bool
}

// CursorOwner is asked each tick, while focused, where the text cursor
// goes (relative to its bounds).
type CursorOwner interface {
	Cursor() (geom.Point, bool)
}
