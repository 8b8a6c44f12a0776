// Package widgets provides small widgets built on the runtime contract.
package widgets

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/dcrosta/dtk-sub000/pkg/ui/runtime"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/dcrosta/dtk-sub000/pkg/ui/theme"
)

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	node    runtime.Node
	focused bool
	theme   *theme.Theme
}

// Attach stores the node handle.
func (b *Base) Attach(n runtime.Node) {
	b.node = n
}

// Node returns the handle the widget was attached with.
func (b *Base) Node() runtime.Node {
	return b.node
}

// HandleInput consumes nothing by default.
func (b *Base) HandleInput(terminal.Token) bool {
	return false
}

// CanFocus returns false by default.
func (b *Base) CanFocus() bool {
	return false
}

// Focus marks the widget as focused.
func (b *Base) Focus() {
	b.focused = true
}

// Unfocus marks the widget as unfocused.
func (b *Base) Unfocus() {
	b.focused = false
}

// IsFocused returns whether the widget is focused.
func (b *Base) IsFocused() bool {
	return b.focused
}

// Invalidate marks the widget's node for repaint.
func (b *Base) Invalidate() {
	b.node.Touch()
}

// Theme returns the widget theme, the default theme if none was set.
func (b *Base) Theme() *theme.Theme {
	if b.theme == nil {
		return theme.DefaultTheme()
	}
	return b.theme
}

// SetTheme changes the theme and repaints.
func (b *Base) SetTheme(th *theme.Theme) {
	b.theme = th
	b.Invalidate()
}

// FocusableBase extends Base for focusable widgets.
type FocusableBase struct {
	Base
}

// CanFocus returns true for focusable widgets.
func (f *FocusableBase) CanFocus() bool {
	return true
}

// Alignment positions text inside a wider area.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// truncateString shortens s to maxWidth columns, ending with an ellipsis
// when something was cut.
func truncateString(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth == 1 {
		return runewidth.Truncate(s, 1, "")
	}
	return runewidth.Truncate(s, maxWidth, theme.Symbols.Ellipsis)
}

// alignOffset returns the column at which text of the given width starts.
func alignOffset(align Alignment, width, room int) int {
	if width >= room {
		return 0
	}
	switch align {
	case AlignCenter:
		return (room - width) / 2
	case AlignRight:
		return room - width
	default:
		return 0
	}
}

func splitLines(s string) []string {
	return strings.Split(s, "\n")
}
