package runtime

import (
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
)

// Touch marks id for repaint.
func (t *Tree) Touch(id ID) {
	if rec, ok := t.nodes[id]; ok {
		rec.dirty = true
	}
}

// Dirty reports whether id is waiting for a repaint.
func (t *Tree) Dirty(id ID) bool {
	rec, ok := t.nodes[id]
	return ok && rec.dirty
}

// MarkAllDirty touches every node.
func (t *Tree) MarkAllDirty() {
	for _, rec := range t.nodes {
		rec.dirty = true
	}
}

// DirtyCount reports how many nodes wait for a repaint.
func (t *Tree) DirtyCount() int {
	n := 0
	for _, rec := range t.nodes {
		if rec.dirty {
			n++
		}
	}
	return n
}

// Paint repaints dirty nodes onto screen and returns how many were
// painted. Containers always recurse, so a dirty child repaints under a
// clean parent; a container's own border is drawn only when it is dirty.
func (t *Tree) Paint(screen backend.Screen) int {
	if t.root == NoID {
		return 0
	}
	return t.paint(screen, t.nodes[t.root])
}

func (t *Tree) paint(screen backend.Screen, rec *record) int {
	n := 0
	if rec.dirty {
		if !rec.bounds.Empty() {
			rec.widget.Paint(newPainter(screen, rec.bounds))
			n++
		}
		rec.dirty = false
	}
	if _, ok := rec.container(); ok {
		for _, child := range rec.children {
			if crec, ok := t.nodes[child]; ok {
				n += t.paint(screen, crec)
			}
		}
	}
	return n
}
