package main

import (
	"context"
	"fmt"
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/logging"
	"github.com/dcrosta/dtk-sub000/pkg/ui/eventq"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keymap"
	"github.com/dcrosta/dtk-sub000/pkg/ui/layout"
	"github.com/dcrosta/dtk-sub000/pkg/ui/runtime"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/dcrosta/dtk-sub000/pkg/ui/theme"
	"github.com/dcrosta/dtk-sub000/pkg/ui/widgets"
)

// typeTick carries a time.Time from the clock producer.
const typeTick = "tick"

const clockInterval = time.Second

// defaultBindings are the global bindings before any keymap file.
var defaultBindings = []struct {
	action  string
	trigger terminal.Token
}{
	{"quit", terminal.Ctrl('q')},
	{"quit", terminal.Ctrl('c')},
	{"ask-quit", terminal.KeyEscape},
	{"next-field", terminal.KeyTab},
	{"prev-field", terminal.KeyBacktab},
	{"redraw", terminal.Ctrl('l')},
}

// demo is a small form: a name field, a status line, three buttons and a
// clock fed from another goroutine.
type demo struct {
	ctx  context.Context
	c    *runtime.Context
	th   *theme.Theme
	tree *runtime.Tree
	reg  *keymap.Registry

	name   *widgets.TextField
	status *widgets.Label
	clock  *widgets.Label
	ticks  int
}

func newDemo(c *runtime.Context, th *theme.Theme) (*demo, error) {
	d := &demo{ctx: context.Background(), c: c, th: th, reg: keymap.NewRegistry()}
	if err := d.build(); err != nil {
		return nil, err
	}
	d.registerActions()
	for _, b := range defaultBindings {
		if err := d.reg.Bind(c.Globals(), b.action, b.trigger); err != nil {
			return nil, err
		}
	}
	c.Handle(typeTick, d.onTick)
	c.Handle(keymap.TypeReload, d.onReload)
	return d, nil
}

func (d *demo) build() error {
	th := d.th
	tree := runtime.NewTree(runtime.WithLogger(d.c.Logger()))
	root, err := tree.Add(runtime.NoID, "main", runtime.VBox(
		runtime.WithBorder("dtk demo"),
		runtime.WithBorderStyle(th.Border, th.Title),
		runtime.WithSpacing(1),
	))
	if err != nil {
		return err
	}

	form := tree.MustAdd(root, "form", runtime.HBox(runtime.WithSpacing(1)), runtime.WithConstraint(layout.Fixed(1)))
	prompt := widgets.NewLabel("Name:")
	prompt.SetTheme(th)
	tree.MustAdd(form, "form.prompt", prompt, runtime.WithConstraint(layout.Fixed(5)))

	d.name = widgets.NewTextField().WithPlaceholder("type a name")
	d.name.SetTheme(th)
	d.name.OnSubmit(func(string) { d.greet() })
	tree.MustAdd(form, "form.name", d.name)

	d.status = widgets.NewLabel("Press Greet, or Ask to open a dialog.")
	d.status.SetTheme(th)
	tree.MustAdd(root, "status", d.status, runtime.WithConstraint(layout.Fixed(1)))

	buttons := tree.MustAdd(root, "buttons", runtime.HBox(runtime.WithSpacing(2)), runtime.WithConstraint(layout.Fixed(1)))
	for _, b := range []struct {
		name  string
		label string
		press func()
	}{
		{"buttons.greet", "Greet", d.greet},
		{"buttons.ask", "Ask", d.ask},
		{"buttons.quit", "Quit", d.c.Quit},
	} {
		btn := widgets.NewButton(b.label, b.press)
		btn.SetTheme(th)
		tree.MustAdd(buttons, b.name, btn, runtime.WithConstraint(layout.Constraint{Min: 9, Max: 12, Weight: 1}))
	}

	d.clock = widgets.NewLabel("").WithStyle(th.TextMuted)
	tree.MustAdd(root, "clock", d.clock)

	d.tree = tree
	return nil
}

func (d *demo) registerActions() {
	d.reg.Register("quit", func(keybind.Args) { d.c.Quit() }, nil)
	d.reg.Register("ask-quit", func(keybind.Args) { d.askQuit() }, nil)
	d.reg.Register("next-field", func(keybind.Args) { d.tree.FocusNext() }, nil)
	d.reg.Register("prev-field", func(keybind.Args) { d.tree.FocusPrev() }, nil)
	d.reg.Register("redraw", func(keybind.Args) { d.c.Queue().Post(eventq.TypeRedraw, nil) }, nil)
	d.reg.Register("greet", func(keybind.Args) { d.greet() }, nil)
}

// targets maps keymap sections onto the tables they configure.
func (d *demo) targets() map[string]*keybind.Table {
	return map[string]*keybind.Table{"global": d.c.Globals()}
}

// loadKeymap applies the keymap file over the current bindings.
func (d *demo) loadKeymap(path string) error {
	km, err := keymap.Load(path)
	if err != nil {
		return err
	}
	n, err := km.ApplyAll(d.targets(), d.reg)
	if err != nil {
		return err
	}
	d.c.Logger().Info(logging.CategoryKeymap, "applied", "keymap applied", map[string]any{
		"path":     path,
		"bindings": n,
	})
	return nil
}

// onReload runs on the loop goroutine. A broken file keeps the previous
// bindings and is reported on the status line.
func (d *demo) onReload(ev eventq.Event) {
	path, _ := ev.Payload.(string)
	if err := d.loadKeymap(path); err != nil {
		d.c.Logger().Warn(logging.CategoryKeymap, "reload_failed", err.Error(), map[string]any{"path": path})
		d.status.SetText("keymap error: " + err.Error())
		return
	}
	d.status.SetText("keymap reloaded")
}

func (d *demo) onTick(ev eventq.Event) {
	at, ok := ev.Payload.(time.Time)
	if !ok {
		return
	}
	d.ticks++
	d.clock.SetText(fmt.Sprintf("%s  (%d ticks)", at.Format(time.TimeOnly), d.ticks))
}

func (d *demo) greet() {
	name := d.name.Text()
	if name == "" {
		name = "stranger"
	}
	d.status.SetText("Hello, " + name + "!")
}

func (d *demo) ask() {
	choice, err := widgets.NewDialog("Question", "Do you like terminals?", "Yes", "No").
		WithTheme(d.th).
		Run(d.ctx, d.c)
	switch {
	case err != nil:
		d.status.SetText("dialog failed: " + err.Error())
	case choice == 0:
		d.status.SetText("Good answer.")
	case choice == 1:
		d.status.SetText("Fair enough.")
	default:
		d.status.SetText("No answer.")
	}
}

func (d *demo) askQuit() {
	choice, err := widgets.NewDialog("Quit", "Leave the demo?", "Quit", "Stay").
		WithTheme(d.th).
		WithDefault(1).
		Run(d.ctx, d.c)
	if err == nil && choice == 0 {
		d.c.Quit()
	}
}

// Run shows the form until quit or ctx is done.
func (d *demo) Run(ctx context.Context) error {
	d.ctx = ctx
	return d.c.Run(ctx, d.tree)
}

// produceTicks posts the wall clock every interval until ctx is done.
func produceTicks(ctx context.Context, q *eventq.Queue, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()
	q.Post(typeTick, time.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case at := <-t.C:
			q.Post(typeTick, at)
		}
	}
}
