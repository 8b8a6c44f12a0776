package runtime

import (
	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/logging"
)

// Focus state is one variable, the focused leaf. Container active
// references always describe the path from the root down to it; every
// change goes through focusLeaf.

func unreachable(id ID, name, msg string) *apperrors.Error {
	return apperrors.New(apperrors.ErrCodeFocusUnreachable, msg).
		WithContext("id", uint64(id)).
		WithContext("node", name)
}

// Focused returns the focused leaf, NoID if nothing can take focus.
func (t *Tree) Focused() ID { return t.focused }

// IsFocused reports whether id is the focused leaf.
func (t *Tree) IsFocused(id ID) bool {
	return id != NoID && t.focused == id
}

// OnActivePath reports whether id is on the path from the root to the
// focused leaf.
func (t *Tree) OnActivePath(id ID) bool {
	for _, p := range t.ActivePath() {
		if p == id {
			return true
		}
	}
	return false
}

// ActivePath returns [root, ..., focused leaf] by following active
// references.
func (t *Tree) ActivePath() []ID {
	if t.root == NoID {
		return nil
	}
	path := []ID{t.root}
	for rec := t.nodes[t.root]; rec.active != NoID; rec = t.nodes[rec.active] {
		path = append(path, rec.active)
	}
	return path
}

// SetFocus focuses id and erases the focus stack. A container resolves to
// its active leaf, or its first focusable one. It fails with
// ErrCodeFocusUnreachable if id is unknown, not connected to the root or
// has no focusable leaf.
func (t *Tree) SetFocus(id ID) error {
	leaf, err := t.resolve(id)
	if err != nil {
		return t.focusError(err)
	}
	t.stack = nil
	t.focusLeaf(leaf)
	return nil
}

// PushFocus saves the focused leaf on the stack, then focuses id.
func (t *Tree) PushFocus(id ID) error {
	leaf, err := t.resolve(id)
	if err != nil {
		return t.focusError(err)
	}
	if t.focused != NoID {
		t.stack = append(t.stack, t.focused)
	}
	t.focusLeaf(leaf)
	return nil
}

// PopFocus restores the most recently pushed leaf. Given a target that is
// on the stack, it drops every entry down to and including the target's
// latest position and focuses the target; otherwise it is a plain pop.
// Entries that were detached or can no longer take focus are skipped.
func (t *Tree) PopFocus(target ...ID) (ID, bool) {
	if len(target) > 0 {
		for i := len(t.stack) - 1; i >= 0; i-- {
			if t.stack[i] != target[0] {
				continue
			}
			if leaf, err := t.resolve(target[0]); err == nil {
				t.stack = t.stack[:i]
				t.focusLeaf(leaf)
				return leaf, true
			}
			break
		}
	}

	for len(t.stack) > 0 {
		id := t.stack[len(t.stack)-1]
		t.stack = t.stack[:len(t.stack)-1]
		if leaf, err := t.resolve(id); err == nil {
			t.focusLeaf(leaf)
			return leaf, true
		}
	}
	return NoID, false
}

// FocusDepth reports the number of saved focus entries.
func (t *Tree) FocusDepth() int {
	return len(t.stack)
}

// FocusNext moves focus to the next focusable leaf in depth-first order,
// wrapping at the end.
func (t *Tree) FocusNext() bool {
	return t.cycle(1)
}

// FocusPrev moves focus to the previous focusable leaf, wrapping at the
// start.
func (t *Tree) FocusPrev() bool {
	return t.cycle(-1)
}

func (t *Tree) cycle(step int) bool {
	leaves := t.focusableLeaves()
	if len(leaves) == 0 {
		return false
	}
	cur := -1
	for i, id := range leaves {
		if id == t.focused {
			cur = i
			break
		}
	}
	var next int
	switch {
	case cur < 0 && step > 0:
		next = 0
	case cur < 0:
		next = len(leaves) - 1
	default:
		next = (cur + step + len(leaves)) % len(leaves)
	}
	if leaves[next] == t.focused {
		return false
	}
	t.stack = nil
	t.focusLeaf(leaves[next])
	return true
}

func (t *Tree) focusableLeaves() []ID {
	var out []ID
	t.Walk(t.root, func(id ID) bool {
		if t.focusable(id) {
			out = append(out, id)
		}
		return true
	})
	return out
}

func (t *Tree) focusable(id ID) bool {
	rec, ok := t.nodes[id]
	if !ok {
		return false
	}
	if _, isContainer := rec.container(); isContainer {
		return false
	}
	if f, ok := rec.widget.(Focusable); ok {
		return f.CanFocus()
	}
	return true
}

// firstFocusable returns the first focusable leaf at or below id,
// preferring active children.
func (t *Tree) firstFocusable(id ID) ID {
	rec, ok := t.nodes[id]
	if !ok {
		return NoID
	}
	if t.focusable(id) {
		return id
	}
	if rec.active != NoID {
		if leaf := t.firstFocusable(rec.active); leaf != NoID {
			return leaf
		}
	}
	for _, child := range rec.children {
		if leaf := t.firstFocusable(child); leaf != NoID {
			return leaf
		}
	}
	return NoID
}

func (t *Tree) connected(id ID) bool {
	for id != NoID {
		rec, ok := t.nodes[id]
		if !ok {
			return false
		}
		if rec.parent == NoID {
			return id == t.root
		}
		id = rec.parent
	}
	return false
}

func (t *Tree) resolve(id ID) (ID, *apperrors.Error) {
	rec, ok := t.nodes[id]
	if !ok {
		return NoID, unreachable(id, "", "widget is not registered")
	}
	if !t.connected(id) {
		return NoID, unreachable(id, rec.name, "widget is not reachable from the root")
	}
	leaf := t.firstFocusable(id)
	if leaf == NoID {
		return NoID, unreachable(id, rec.name, "widget has no focusable leaf")
	}
	return leaf, nil
}

func (t *Tree) focusError(err *apperrors.Error) error {
	t.log.Error(logging.CategoryFocus, "focus_failed", err.Message, err.Context)
	return err
}

func (t *Tree) focusLeaf(leaf ID) {
	prev := t.focused

	for _, rec := range t.nodes {
		rec.active = NoID
	}
	for child := leaf; child != t.root; {
		parent := t.nodes[child].parent
		t.nodes[parent].active = child
		child = parent
	}
	t.focused = leaf

	if prev == leaf {
		return
	}
	if prec, ok := t.nodes[prev]; ok {
		prec.dirty = true
		prec.widget.Unfocus()
	}
	rec := t.nodes[leaf]
	rec.dirty = true
	rec.widget.Focus()

	t.log.NodeEvent(logging.LevelDebug, logging.CategoryFocus, rec.name, "focus", "focus moved",
		map[string]any{"from": t.Name(prev), "stack": len(t.stack)})
}
