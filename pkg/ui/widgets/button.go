package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/runtime"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/dcrosta/dtk-sub000/pkg/ui/theme"
)

// Button runs a callback when pressed with enter or space.
type Button struct {
	FocusableBase

	label   string
	onPress func()
}

func NewButton(label string, onPress func()) *Button {
	return &Button{label: label, onPress: onPress}
}

// Attach binds the press keys on the button's node.
func (b *Button) Attach(n runtime.Node) {
	b.FocusableBase.Attach(n)
	press := func(keybind.Args) { b.Press() }
	n.Bindings().Bind(terminal.KeyEnter, press, nil, keybind.Named("press"))
	n.Bindings().Bind(terminal.KeySpace, press, nil, keybind.Named("press"))
}

func (b *Button) Label() string {
	return b.label
}

// Press invokes the callback.
func (b *Button) Press() {
	if b.onPress != nil {
		b.onPress()
	}
}

func (b *Button) decorated() string {
	return theme.Symbols.ButtonLeft + " " + b.label + " " + theme.Symbols.ButtonRight
}

func (b *Button) Measure(geom.Extent) geom.Extent {
	return geom.Extent{Rows: 1, Cols: runewidth.StringWidth(b.decorated())}
}

func (b *Button) Paint(p *runtime.Painter) {
	p.Fill()
	th := b.Theme()
	style := th.Button
	if b.focused {
		style = th.ButtonFocus
	}
	cols := p.Extent().Cols
	text := truncateString(b.decorated(), cols)
	p.DrawText(0, alignOffset(AlignCenter, runewidth.StringWidth(text), cols), text, style)
}
