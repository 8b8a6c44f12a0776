package runtime

import (
	"fmt"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/logging"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/layout"
)

type record struct {
	id       ID
	name     string
	widget   Widget
	parent   ID
	children []ID
	active   ID

	bounds     geom.Rect
	dirty      bool
	bindings   *keybind.Table
	constraint *layout.Constraint
}

func (r *record) container() (*Container, bool) {
	c, ok := r.widget.(*Container)
	return c, ok
}

// Tree stores widgets in a flat arena keyed by ID. Parent and child links
// are IDs, so detaching a subtree only removes arena entries.
//
// A Tree is owned by the goroutine running its loop; it is not safe for
// concurrent use.
type Tree struct {
	nodes map[ID]*record
	names map[string]ID
	root  ID
	next  ID

	focused ID
	stack   []ID

	relayout bool
	log      *logging.Logger
}

// TreeOption configures a Tree.
type TreeOption func(*Tree)

// WithLogger sets the logger for focus and structure events.
func WithLogger(l *logging.Logger) TreeOption {
	return func(t *Tree) { t.log = l }
}

// NewTree returns an empty tree.
func NewTree(opts ...TreeOption) *Tree {
	t := &Tree{
		nodes: make(map[ID]*record),
		names: make(map[string]ID),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetLogger replaces the tree's logger.
func (t *Tree) SetLogger(l *logging.Logger) {
	t.log = l
}

// AddOption configures a node being added.
type AddOption func(*record)

// WithConstraint gives the node an explicit constraint along its
// container's axis.
func WithConstraint(c layout.Constraint) AddOption {
	return func(r *record) { r.constraint = &c }
}

// Add registers w under parent and returns its ID. NoID as parent makes w
// the root. Names must be unique; an empty name is generated from the ID.
// If nothing is focused yet and w is a focusable leaf it takes focus.
func (t *Tree) Add(parent ID, name string, w Widget, opts ...AddOption) (ID, error) {
	if w == nil {
		return NoID, apperrors.New(apperrors.ErrCodeTreeInvalid, "widget is nil").
			WithContext("name", name)
	}

	if parent == NoID {
		if t.root != NoID {
			return NoID, apperrors.New(apperrors.ErrCodeTreeInvalid, "tree already has a root").
				WithContext("name", name).
				WithContext("root", t.nodes[t.root].name)
		}
	} else {
		prec, ok := t.nodes[parent]
		if !ok {
			return NoID, apperrors.New(apperrors.ErrCodeTreeInvalid, "unknown parent").
				WithContext("name", name).
				WithContext("parent", uint64(parent))
		}
		if _, ok := prec.container(); !ok {
			return NoID, apperrors.New(apperrors.ErrCodeTreeInvalid, "parent is not a container").
				WithContext("name", name).
				WithContext("parent", prec.name)
		}
	}

	t.next++
	id := t.next
	if name == "" {
		name = fmt.Sprintf("node-%d", id)
	}
	if _, dup := t.names[name]; dup {
		t.next--
		return NoID, apperrors.New(apperrors.ErrCodeTreeInvalid, "duplicate node name").
			WithContext("name", name)
	}

	rec := &record{
		id:       id,
		name:     name,
		widget:   w,
		parent:   parent,
		dirty:    true,
		bindings: keybind.NewTable(),
	}
	for _, opt := range opts {
		opt(rec)
	}
	t.nodes[id] = rec
	t.names[name] = id
	if parent == NoID {
		t.root = id
	} else {
		prec := t.nodes[parent]
		prec.children = append(prec.children, id)
		prec.dirty = true
	}
	t.relayout = true

	if a, ok := w.(Attacher); ok {
		a.Attach(Node{tree: t, id: id})
	}

	if t.focused == NoID {
		if leaf := t.firstFocusable(id); leaf != NoID {
			t.focusLeaf(leaf)
		}
	}
	return id, nil
}

// MustAdd is Add that panics on error, for building fixed trees.
func (t *Tree) MustAdd(parent ID, name string, w Widget, opts ...AddOption) ID {
	id, err := t.Add(parent, name, w, opts...)
	if err != nil {
		panic(err)
	}
	return id
}

// Detach removes id and its subtree. If the focused leaf was inside, focus
// moves to the first remaining focusable leaf.
func (t *Tree) Detach(id ID) error {
	rec, ok := t.nodes[id]
	if !ok {
		return apperrors.New(apperrors.ErrCodeTreeInvalid, "unknown node").
			WithContext("id", uint64(id))
	}

	removed := t.subtree(id)
	lostFocus := false
	for _, sub := range removed {
		if sub == t.focused {
			lostFocus = true
		}
	}

	if prec, ok := t.nodes[rec.parent]; ok {
		prec.children = removeID(prec.children, id)
		if prec.active == id {
			prec.active = NoID
		}
		prec.dirty = true
	}
	if id == t.root {
		t.root = NoID
	}

	var prev Widget
	if lostFocus {
		prev = t.nodes[t.focused].widget
		t.focused = NoID
	}
	for _, sub := range removed {
		delete(t.names, t.nodes[sub].name)
		delete(t.nodes, sub)
	}
	t.stack = t.liveStack()
	t.relayout = true

	t.log.NodeEvent(logging.LevelDebug, logging.CategoryFocus, rec.name, "detach", "subtree detached",
		map[string]any{"nodes": len(removed)})

	if prev != nil {
		prev.Unfocus()
		if leaf := t.firstFocusable(t.root); leaf != NoID {
			t.focusLeaf(leaf)
		}
	}
	return nil
}

func (t *Tree) subtree(id ID) []ID {
	out := []ID{id}
	for i := 0; i < len(out); i++ {
		out = append(out, t.nodes[out[i]].children...)
	}
	return out
}

func (t *Tree) liveStack() []ID {
	live := t.stack[:0]
	for _, id := range t.stack {
		if _, ok := t.nodes[id]; ok {
			live = append(live, id)
		}
	}
	return live
}

func removeID(ids []ID, id ID) []ID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

// Root returns the root ID, NoID for an empty tree.
func (t *Tree) Root() ID { return t.root }

// Len reports the number of nodes.
func (t *Tree) Len() int { return len(t.nodes) }

// Contains reports whether id is in the tree.
func (t *Tree) Contains(id ID) bool {
	_, ok := t.nodes[id]
	return ok
}

// Lookup finds a node by name.
func (t *Tree) Lookup(name string) (ID, bool) {
	id, ok := t.names[name]
	return id, ok
}

// Node returns the handle for id.
func (t *Tree) Node(id ID) Node {
	return Node{tree: t, id: id}
}

// Widget returns the widget registered under id.
func (t *Tree) Widget(id ID) Widget {
	if rec, ok := t.nodes[id]; ok {
		return rec.widget
	}
	return nil
}

// Name returns the node's name.
func (t *Tree) Name(id ID) string {
	if rec, ok := t.nodes[id]; ok {
		return rec.name
	}
	return ""
}

// Parent returns the parent ID, NoID for the root or unknown nodes.
func (t *Tree) Parent(id ID) ID {
	if rec, ok := t.nodes[id]; ok {
		return rec.parent
	}
	return NoID
}

// Children returns a copy of the child IDs in order.
func (t *Tree) Children(id ID) []ID {
	if rec, ok := t.nodes[id]; ok {
		return append([]ID(nil), rec.children...)
	}
	return nil
}

// Bindings returns the node's keybinding table.
func (t *Tree) Bindings(id ID) *keybind.Table {
	if rec, ok := t.nodes[id]; ok {
		return rec.bindings
	}
	return nil
}

// Bounds returns the node's absolute geometry.
func (t *Tree) Bounds(id ID) geom.Rect {
	if rec, ok := t.nodes[id]; ok {
		return rec.bounds
	}
	return geom.Rect{}
}

// IsContainer reports whether id holds a Container.
func (t *Tree) IsContainer(id ID) bool {
	rec, ok := t.nodes[id]
	if !ok {
		return false
	}
	_, ok = rec.container()
	return ok
}

// Walk visits id and its descendants depth-first. Returning false from fn
// skips the node's children.
func (t *Tree) Walk(id ID, fn func(id ID) bool) {
	rec, ok := t.nodes[id]
	if !ok || !fn(id) {
		return
	}
	for _, child := range rec.children {
		t.Walk(child, fn)
	}
}

// NeedsArrange reports whether structure or constraints changed since the
// last arrange pass.
func (t *Tree) NeedsArrange() bool {
	return t.relayout
}
