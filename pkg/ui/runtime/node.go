package runtime

import (
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/layout"
)

// Node is a widget's handle to its record in a tree. It is a lookup, not
// an owning reference: once the node is detached every method is a no-op
// returning zero values.
type Node struct {
	tree *Tree
	id   ID
}

func (n Node) ID() ID { return n.id }

func (n Node) Tree() *Tree { return n.tree }

// Valid reports whether the node is still in its tree.
func (n Node) Valid() bool {
	return n.record() != nil
}

func (n Node) record() *record {
	if n.tree == nil {
		return nil
	}
	return n.tree.nodes[n.id]
}

func (n Node) Name() string {
	if rec := n.record(); rec != nil {
		return rec.name
	}
	return ""
}

// Touch marks the node for repaint.
func (n Node) Touch() {
	if rec := n.record(); rec != nil {
		rec.dirty = true
	}
}

func (n Node) Dirty() bool {
	rec := n.record()
	return rec != nil && rec.dirty
}

// Bounds returns the absolute geometry from the last arrange pass.
func (n Node) Bounds() geom.Rect {
	if rec := n.record(); rec != nil {
		return rec.bounds
	}
	return geom.Rect{}
}

// Bindings returns the node's keybinding table, nil once detached.
func (n Node) Bindings() *keybind.Table {
	if rec := n.record(); rec != nil {
		return rec.bindings
	}
	return nil
}

// SetConstraint overrides the measured constraint its container uses and
// schedules a new arrange pass.
func (n Node) SetConstraint(c layout.Constraint) {
	if rec := n.record(); rec != nil {
		rec.constraint = &c
		n.tree.relayout = true
	}
}

// Relayout schedules a new arrange pass, for widgets whose measured size
// changed.
func (n Node) Relayout() {
	if rec := n.record(); rec != nil {
		n.tree.relayout = true
	}
}

func (n Node) IsFocused() bool {
	return n.Valid() && n.tree.focused == n.id
}

// Focus moves focus to the node.
func (n Node) Focus() error {
	if n.tree == nil {
		return unreachable(n.id, "", "node has no tree")
	}
	return n.tree.SetFocus(n.id)
}

func (n Node) Parent() Node {
	if rec := n.record(); rec != nil && rec.parent != NoID {
		return Node{tree: n.tree, id: rec.parent}
	}
	return Node{}
}
