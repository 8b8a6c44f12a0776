// Package keybind maps logical key tokens to actions for one tree node.
package keybind

import (
	"maps"
	"sort"

	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

// Implicit argument names.
const (
	// ArgKey holds the resolved token (the literal for printable input).
	ArgKey = "key"
	// ArgSource holds the value passed as source to Dispatch.
	ArgSource = "source"
)

// Args are the arguments an action is invoked with.
type Args map[string]any

// Key returns the ArgKey value.
func (a Args) Key() terminal.Token {
	tok, _ := a[ArgKey].(terminal.Token)
	return tok
}

// Source returns the ArgSource value.
func (a Args) Source() any {
	return a[ArgSource]
}

// Action is the callable a binding invokes.
type Action func(Args)

// Want declares which implicit arguments a binding receives.
type Want uint8

const (
	WantToken Want = 1 << iota
	WantSource
)

// Binding is one trigger entry.
type Binding struct {
	Trigger terminal.Token
	Action  Action
	Args    Args
	Wants   Want
	// Name identifies the action for keymap listings.
	Name string
}

// Option tags a binding.
type Option func(*Binding)

// WithToken passes the resolved token as Args[ArgKey].
func WithToken() Option {
	return func(b *Binding) { b.Wants |= WantToken }
}

// WithSource passes the dispatching node as Args[ArgSource].
func WithSource() Option {
	return func(b *Binding) { b.Wants |= WantSource }
}

// Named records the action name.
func Named(name string) Option {
	return func(b *Binding) { b.Name = name }
}

// Table holds the bindings of one node. The zero value is not usable; use
// NewTable. A nil *Table dispatches nothing.
type Table struct {
	bindings  map[terminal.Token]*Binding
	printable *Binding
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{bindings: make(map[terminal.Token]*Binding)}
}

// Bind maps trigger to action, replacing any previous binding for it.
// terminal.Printable installs the printable-input handler. The reserved
// terminal.All and the empty token are ignored, as is a nil action.
func (t *Table) Bind(trigger terminal.Token, action Action, args Args, opts ...Option) {
	if action == nil || trigger == terminal.TokenNone || trigger == terminal.All {
		return
	}
	b := &Binding{Trigger: trigger, Action: action, Args: maps.Clone(args)}
	for _, opt := range opts {
		opt(b)
	}
	if trigger == terminal.Printable {
		t.printable = b
		return
	}
	t.bindings[trigger] = b
}

// Unbind removes the binding for trigger. terminal.All clears the table,
// including the printable handler. It reports whether anything was removed.
func (t *Table) Unbind(trigger terminal.Token) bool {
	switch trigger {
	case terminal.All:
		removed := len(t.bindings) > 0 || t.printable != nil
		clear(t.bindings)
		t.printable = nil
		return removed
	case terminal.Printable:
		removed := t.printable != nil
		t.printable = nil
		return removed
	}
	if _, ok := t.bindings[trigger]; !ok {
		return false
	}
	delete(t.bindings, trigger)
	return true
}

// Dispatch invokes the binding for tok. A registered printable handler
// takes printable tokens first; named tokens with a literal (space) are
// passed as that literal. It returns false when nothing is bound, which
// callers treat as a signal to escalate.
func (t *Table) Dispatch(tok terminal.Token, source any) bool {
	if t == nil {
		return false
	}
	if t.printable != nil {
		if lit, ok := tok.Literal(); ok {
			t.printable.invoke(terminal.Token(lit), source)
			return true
		}
	}
	b, ok := t.bindings[tok]
	if !ok {
		return false
	}
	b.invoke(tok, source)
	return true
}

func (b *Binding) invoke(tok terminal.Token, source any) {
	args := make(Args, len(b.Args)+2)
	maps.Copy(args, b.Args)
	if b.Wants&WantToken != 0 {
		if _, set := args[ArgKey]; !set {
			args[ArgKey] = tok
		}
	}
	if b.Wants&WantSource != 0 {
		if _, set := args[ArgSource]; !set {
			args[ArgSource] = source
		}
	}
	b.Action(args)
}

// Lookup returns a copy of the binding for trigger.
func (t *Table) Lookup(trigger terminal.Token) (Binding, bool) {
	if t == nil {
		return Binding{}, false
	}
	var b *Binding
	if trigger == terminal.Printable {
		b = t.printable
	} else {
		b = t.bindings[trigger]
	}
	if b == nil {
		return Binding{}, false
	}
	out := *b
	out.Args = maps.Clone(b.Args)
	return out, true
}

// Triggers lists bound triggers in sorted order.
func (t *Table) Triggers() []terminal.Token {
	if t == nil {
		return nil
	}
	out := make([]terminal.Token, 0, t.Len())
	for trigger := range t.bindings {
		out = append(out, trigger)
	}
	if t.printable != nil {
		out = append(out, terminal.Printable)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Bindings returns copies of every binding, ordered by trigger.
func (t *Table) Bindings() []Binding {
	triggers := t.Triggers()
	out := make([]Binding, 0, len(triggers))
	for _, trigger := range triggers {
		b, _ := t.Lookup(trigger)
		out = append(out, b)
	}
	return out
}

// Len reports the number of bindings.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	n := len(t.bindings)
	if t.printable != nil {
		n++
	}
	return n
}
