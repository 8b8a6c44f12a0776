package widgets

import (
	"slices"

	"github.com/mattn/go-runewidth"

	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/runtime"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

const defaultFieldWidth = 20

// TextField is a single-line text input with cursor support.
type TextField struct {
	FocusableBase

	value       []rune
	cursor      int // index into value
	offset      int // first visible rune
	width       int
	placeholder string

	// Callbacks
	onSubmit func(text string)
	onChange func(text string)
}

func NewTextField() *TextField {
	return &TextField{width: defaultFieldWidth}
}

// WithWidth sets the preferred width in columns.
func (f *TextField) WithWidth(cols int) *TextField {
	f.width = max(1, cols)
	return f
}

// WithPlaceholder sets the text shown while the field is empty and
// unfocused.
func (f *TextField) WithPlaceholder(text string) *TextField {
	f.placeholder = text
	return f
}

// OnSubmit sets the callback for enter. Without one, enter escalates.
func (f *TextField) OnSubmit(fn func(text string)) {
	f.onSubmit = fn
}

// OnChange sets the callback for edits.
func (f *TextField) OnChange(fn func(text string)) {
	f.onChange = fn
}

func (f *TextField) Text() string {
	return string(f.value)
}

// SetText replaces the value and moves the cursor to the end.
func (f *TextField) SetText(text string) {
	f.value = []rune(text)
	f.cursor = len(f.value)
	f.Invalidate()
}

// CursorPos returns the cursor index in runes.
func (f *TextField) CursorPos() int {
	return f.cursor
}

// Attach binds the editing keys on the field's node.
func (f *TextField) Attach(n runtime.Node) {
	f.FocusableBase.Attach(n)
	t := n.Bindings()
	t.Bind(terminal.Printable, func(a keybind.Args) {
		f.Insert(string(a.Key()))
	}, nil, keybind.WithToken(), keybind.Named("insert"))

	move := func(fn func()) keybind.Action {
		return func(keybind.Args) {
			fn()
			f.Invalidate()
		}
	}
	t.Bind(terminal.KeyLeft, move(func() { f.cursor = max(0, f.cursor-1) }), nil, keybind.Named("left"))
	t.Bind(terminal.KeyRight, move(func() { f.cursor = min(len(f.value), f.cursor+1) }), nil, keybind.Named("right"))
	t.Bind(terminal.KeyHome, move(func() { f.cursor = 0 }), nil, keybind.Named("home"))
	t.Bind(terminal.Ctrl('a'), move(func() { f.cursor = 0 }), nil, keybind.Named("home"))
	t.Bind(terminal.KeyEnd, move(func() { f.cursor = len(f.value) }), nil, keybind.Named("end"))
	t.Bind(terminal.Ctrl('e'), move(func() { f.cursor = len(f.value) }), nil, keybind.Named("end"))
	t.Bind(terminal.KeyBackspace, func(keybind.Args) { f.Backspace() }, nil, keybind.Named("backspace"))
	t.Bind(terminal.KeyDelete, func(keybind.Args) { f.Delete() }, nil, keybind.Named("delete"))
	t.Bind(terminal.Ctrl('u'), func(keybind.Args) { f.KillToStart() }, nil, keybind.Named("kill"))
}

// Insert adds text at the cursor.
func (f *TextField) Insert(text string) {
	if text == "" {
		return
	}
	runes := []rune(text)
	f.value = slices.Insert(f.value, f.cursor, runes...)
	f.cursor += len(runes)
	f.changed()
}

// Backspace deletes the rune before the cursor.
func (f *TextField) Backspace() {
	if f.cursor == 0 {
		return
	}
	f.value = slices.Delete(f.value, f.cursor-1, f.cursor)
	f.cursor--
	f.changed()
}

// Delete deletes the rune under the cursor.
func (f *TextField) Delete() {
	if f.cursor >= len(f.value) {
		return
	}
	f.value = slices.Delete(f.value, f.cursor, f.cursor+1)
	f.changed()
}

// KillToStart deletes everything before the cursor.
func (f *TextField) KillToStart() {
	if f.cursor == 0 {
		return
	}
	f.value = slices.Delete(f.value, 0, f.cursor)
	f.cursor = 0
	f.changed()
}

func (f *TextField) changed() {
	f.Invalidate()
	if f.onChange != nil {
		f.onChange(string(f.value))
	}
}

// HandleInput submits on enter when a submit callback is set.
func (f *TextField) HandleInput(tok terminal.Token) bool {
	if tok == terminal.KeyEnter && f.onSubmit != nil {
		f.onSubmit(string(f.value))
		return true
	}
	return false
}

func (f *TextField) Measure(available geom.Extent) geom.Extent {
	return geom.Extent{Rows: 1, Cols: f.width}
}

// scroll moves the visible window so the cursor cell fits in cols.
func (f *TextField) scroll(cols int) {
	if cols <= 0 {
		return
	}
	f.offset = min(f.offset, f.cursor)
	// the cursor cell itself needs one column
	for f.offset < f.cursor && runewidth.StringWidth(string(f.value[f.offset:f.cursor]))+1 > cols {
		f.offset++
	}
}

func (f *TextField) Paint(p *runtime.Painter) {
	th := f.Theme()
	cols := p.Extent().Cols
	style := th.Field
	if f.focused {
		style = th.FieldFocus
	}

	if len(f.value) == 0 && !f.focused && f.placeholder != "" {
		p.DrawText(0, 0, runewidth.FillRight(truncateString(f.placeholder, cols), cols), th.Placeholder)
		return
	}

	f.scroll(cols)
	visible := runewidth.Truncate(string(f.value[f.offset:]), cols, "")
	p.DrawText(0, 0, runewidth.FillRight(visible, cols), style)
}

// Cursor places the terminal cursor at the edit position while focused.
func (f *TextField) Cursor() (geom.Point, bool) {
	if !f.focused {
		return geom.Point{}, false
	}
	f.scroll(f.node.Bounds().Cols)
	col := runewidth.StringWidth(string(f.value[f.offset:f.cursor]))
	return geom.Point{Row: 0, Col: col}, true
}
