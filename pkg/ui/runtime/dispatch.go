package runtime

import "github.com/dcrosta/dtk-sub000/pkg/ui/terminal"

// Dispatch offers tok along the active path, starting at the focused leaf.
// At each node the keybinding table goes first, then the widget's
// HandleInput; unconsumed tokens move to the parent. Bound actions get
// the node's handle as their source. Returns false if no node consumed
// the token.
func (t *Tree) Dispatch(tok terminal.Token) bool {
	path := t.ActivePath()
	for i := len(path) - 1; i >= 0; i-- {
		rec, ok := t.nodes[path[i]]
		if !ok {
			continue
		}
		if rec.bindings.Dispatch(tok, Node{tree: t, id: rec.id}) {
			return true
		}
		if rec.widget.HandleInput(tok) {
			return true
		}
	}
	return false
}
