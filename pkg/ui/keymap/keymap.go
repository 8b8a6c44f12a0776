// Package keymap loads user key bindings from TOML files and applies them to
// binding tables through a registry of named actions.
//
// A keymap file has one table per section; each key is an action name and
// each value a trigger or a list of triggers:
//
//	[global]
//	quit = "ctrl-q"
//
//	[dialog]
//	confirm = ["enter", "y"]
package keymap

import (
	"io"
	"os"
	"sort"
	"sync"

	"github.com/BurntSushi/toml"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

type entry struct {
	action keybind.Action
	args   keybind.Args
	opts   []keybind.Option
}

// Registry maps action names to actions. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]entry
}

func NewRegistry() *Registry {
	return &Registry{actions: make(map[string]entry)}
}

// Register makes action available under name. Registering a name again
// replaces it.
func (r *Registry) Register(name string, action keybind.Action, args keybind.Args, opts ...keybind.Option) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[name] = entry{action: action, args: args, opts: opts}
}

func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.actions[name]
	return ok
}

// Names lists registered actions, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.actions))
	for name := range r.actions {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Bind binds the named action to trigger on table.
func (r *Registry) Bind(table *keybind.Table, name string, trigger terminal.Token) error {
	r.mu.RLock()
	e, ok := r.actions[name]
	r.mu.RUnlock()
	if !ok {
		return apperrors.New(apperrors.ErrCodeKeymapInvalid, "unknown action").
			WithContext("action", name)
	}
	opts := append([]keybind.Option{keybind.Named(name)}, e.opts...)
	table.Bind(trigger, e.action, e.args, opts...)
	return nil
}

// Keymap is a parsed keymap: section -> action -> triggers.
type Keymap struct {
	Sections map[string]map[string][]terminal.Token
}

// Section returns the bindings of one section, nil if absent.
func (k *Keymap) Section(name string) map[string][]terminal.Token {
	if k == nil {
		return nil
	}
	return k.Sections[name]
}

// Load reads a keymap file. A missing file yields an empty keymap.
func Load(path string) (*Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Keymap{Sections: map[string]map[string][]terminal.Token{}}, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeKeymapLoad, "failed to read keymap").
			WithContext("path", path)
	}
	km, err := Parse(data)
	if err != nil {
		if e, ok := apperrors.As(err); ok {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	return km, nil
}

// Parse decodes keymap TOML. Triggers are normalized; the reserved
// "all" and empty triggers are rejected.
func Parse(data []byte) (*Keymap, error) {
	var raw map[string]any
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeKeymapInvalid, "failed to parse keymap")
	}

	km := &Keymap{Sections: make(map[string]map[string][]terminal.Token, len(raw))}
	for section, value := range raw {
		actions, ok := value.(map[string]any)
		if !ok {
			return nil, apperrors.New(apperrors.ErrCodeKeymapInvalid, "bindings must be inside a section").
				WithContext("key", section)
		}
		out := make(map[string][]terminal.Token, len(actions))
		for action, value := range actions {
			triggers, err := triggerList(value)
			if err != nil {
				return nil, err.WithContext("section", section).WithContext("action", action)
			}
			out[action] = triggers
		}
		km.Sections[section] = out
	}
	return km, nil
}

func triggerList(value any) ([]terminal.Token, *apperrors.Error) {
	var names []string
	switch v := value.(type) {
	case string:
		names = []string{v}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, apperrors.New(apperrors.ErrCodeKeymapInvalid, "trigger must be a string")
			}
			names = append(names, s)
		}
	default:
		return nil, apperrors.Newf(apperrors.ErrCodeKeymapInvalid, "unsupported value of type %T", value)
	}

	out := make([]terminal.Token, 0, len(names))
	for _, name := range names {
		tok := terminal.Normalize(name)
		if tok == terminal.TokenNone || tok == terminal.All {
			return nil, apperrors.New(apperrors.ErrCodeKeymapInvalid, "reserved trigger").
				WithContext("trigger", name)
		}
		out = append(out, tok)
	}
	return out, nil
}

// Apply binds one section onto table. Every action must be registered;
// nothing is bound otherwise. Triggers previously bound under an applied
// action name are removed first, so the file replaces defaults. It returns
// the number of bindings made.
func (k *Keymap) Apply(section string, table *keybind.Table, reg *Registry) (int, error) {
	actions := k.Section(section)
	names := make([]string, 0, len(actions))
	for name := range actions {
		if !reg.Has(name) {
			return 0, apperrors.New(apperrors.ErrCodeKeymapInvalid, "unknown action").
				WithContext("section", section).
				WithContext("action", name)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	for _, b := range table.Bindings() {
		if _, ok := actions[b.Name]; ok && b.Name != "" {
			table.Unbind(b.Trigger)
		}
	}

	n := 0
	for _, name := range names {
		for _, trigger := range actions[name] {
			if err := reg.Bind(table, name, trigger); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}

// ApplyAll applies every section that has a table in targets. Sections
// without a target are ignored.
func (k *Keymap) ApplyAll(targets map[string]*keybind.Table, reg *Registry) (int, error) {
	sections := make([]string, 0, len(targets))
	for section := range targets {
		sections = append(sections, section)
	}
	sort.Strings(sections)

	total := 0
	for _, section := range sections {
		n, err := k.Apply(section, targets[section], reg)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Export writes the named bindings of each table as keymap TOML.
// Unnamed bindings are skipped.
func Export(w io.Writer, tables map[string]*keybind.Table) error {
	doc := make(map[string]map[string][]string, len(tables))
	for section, table := range tables {
		actions := map[string][]string{}
		for _, b := range table.Bindings() {
			if b.Name == "" {
				continue
			}
			actions[b.Name] = append(actions[b.Name], string(b.Trigger))
		}
		if len(actions) > 0 {
			doc[section] = actions
		}
	}
	return toml.NewEncoder(w).Encode(doc)
}
