package widgets

import (
	"context"
	"fmt"

	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/runtime"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/dcrosta/dtk-sub000/pkg/ui/theme"
)

// Cancelled is the choice reported when a dialog is dismissed with escape.
const Cancelled = -1

// Dialog is a bordered message box with a row of buttons, run as a modal
// loop.
type Dialog struct {
	title   string
	message string
	buttons []string
	focus   int
	theme   *theme.Theme
}

// NewDialog creates a dialog. With no buttons it shows a single "OK".
func NewDialog(title, message string, buttons ...string) *Dialog {
	if len(buttons) == 0 {
		buttons = []string{"OK"}
	}
	return &Dialog{title: title, message: message, buttons: buttons}
}

// WithDefault focuses button i initially.
func (d *Dialog) WithDefault(i int) *Dialog {
	if i >= 0 && i < len(d.buttons) {
		d.focus = i
	}
	return d
}

func (d *Dialog) WithTheme(th *theme.Theme) *Dialog {
	d.theme = th
	return d
}

func (d *Dialog) Buttons() []string {
	return append([]string(nil), d.buttons...)
}

// Build returns the dialog tree. choose is called with the pressed
// button's index, or Cancelled on escape.
func (d *Dialog) Build(choose func(int)) (*runtime.Tree, error) {
	th := d.theme
	if th == nil {
		th = theme.DefaultTheme()
	}

	tree := runtime.NewTree()
	root, err := tree.Add(runtime.NoID, "dialog",
		runtime.VBox(runtime.WithBorder(d.title), runtime.WithBorderStyle(th.BorderFocus, th.Title), runtime.WithSpacing(1)))
	if err != nil {
		return nil, err
	}

	msg := NewLabel(d.message).WithAlignment(AlignCenter)
	msg.theme = th
	if _, err := tree.Add(root, "dialog.message", msg); err != nil {
		return nil, err
	}

	row, err := tree.Add(root, "dialog.buttons", runtime.HBox(runtime.WithSpacing(1)))
	if err != nil {
		return nil, err
	}
	ids := make([]runtime.ID, len(d.buttons))
	for i, label := range d.buttons {
		btn := NewButton(label, func() { choose(i) })
		btn.theme = th
		id, err := tree.Add(row, fmt.Sprintf("dialog.button.%d", i), btn)
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}
	if err := tree.SetFocus(ids[d.focus]); err != nil {
		return nil, err
	}

	keys := tree.Bindings(root)
	keys.Bind(terminal.KeyEscape, func(keybind.Args) { choose(Cancelled) }, nil, keybind.Named("cancel"))
	next := func(keybind.Args) { tree.FocusNext() }
	prev := func(keybind.Args) { tree.FocusPrev() }
	keys.Bind(terminal.KeyTab, next, nil, keybind.Named("next"))
	keys.Bind(terminal.KeyRight, next, nil, keybind.Named("next"))
	keys.Bind(terminal.KeyBacktab, prev, nil, keybind.Named("prev"))
	keys.Bind(terminal.KeyLeft, prev, nil, keybind.Named("prev"))
	return tree, nil
}

// Run shows the dialog modally over c's current loop and returns the
// chosen button index, or Cancelled.
func (d *Dialog) Run(ctx context.Context, c *runtime.Context) (int, error) {
	choice := Cancelled
	tree, err := d.Build(func(i int) {
		choice = i
		if l := c.Current(); l != nil {
			l.Quit()
		}
	})
	if err != nil {
		return Cancelled, err
	}
	if err := c.RunModal(ctx, tree); err != nil {
		return Cancelled, err
	}
	return choice, nil
}
