package runtime

import (
	"reflect"
	"testing"

	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

func TestDispatch_LeafFirstThenEscalate(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoID, "root", VBox())
	col := tree.MustAdd(root, "col", VBox())
	leaf := newStub("leaf")
	leafID := tree.MustAdd(col, "leaf", leaf)

	var order []string
	bind := func(id ID, tok terminal.Token, name string) {
		tree.Bindings(id).Bind(tok, func(keybind.Args) { order = append(order, name) }, nil)
	}
	bind(leafID, "j", "leaf")
	bind(col, "j", "col")
	bind(col, "l", "col")
	bind(root, "l", "root")
	bind(root, "q", "root")

	for _, tok := range []terminal.Token{"j", "l", "q"} {
		if !tree.Dispatch(tok) {
			t.Errorf("Dispatch(%s) not consumed", tok)
		}
	}
	want := []string{"leaf", "col", "root"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("handlers = %v, want %v", order, want)
	}
	if tree.Dispatch("x") {
		t.Error("unbound key should not be consumed")
	}
}

func TestDispatch_BindingsBeforeHandleInput(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoID, "root", VBox())
	leaf := newStub("leaf")
	leaf.consume = map[terminal.Token]bool{"a": true, "b": true}
	id := tree.MustAdd(root, "leaf", leaf)

	bound := false
	tree.Bindings(id).Bind("a", func(keybind.Args) { bound = true }, nil)
	rootGotB := false
	tree.Bindings(root).Bind("b", func(keybind.Args) { rootGotB = true }, nil)

	tree.Dispatch("a")
	tree.Dispatch("b")

	if !bound {
		t.Error("leaf binding should run")
	}
	if !reflect.DeepEqual(leaf.inputs, []terminal.Token{"b"}) {
		t.Errorf("HandleInput saw %v, want only b", leaf.inputs)
	}
	if rootGotB {
		t.Error("leaf HandleInput consumed b; root must not see it")
	}
}

func TestDispatch_SourceIsNode(t *testing.T) {
	tree, _, ids, _ := buildColumn(t, "a")
	var src any
	tree.Bindings(ids[0]).Bind("x", func(a keybind.Args) { src = a.Source() }, nil, keybind.WithSource())
	tree.Dispatch("x")

	n, ok := src.(Node)
	if !ok || n.ID() != ids[0] {
		t.Errorf("source = %#v, want the leaf node", src)
	}
}

func TestDispatch_PrintableHandlerOnLeaf(t *testing.T) {
	tree, root, ids, _ := buildColumn(t, "field")
	var typed string
	tree.Bindings(ids[0]).Bind(terminal.Printable, func(a keybind.Args) {
		typed += string(a.Key())
	}, nil, keybind.WithToken())
	quit := false
	tree.Bindings(root).Bind("ctrl-q", func(keybind.Args) { quit = true }, nil)

	for _, tok := range []terminal.Token{"h", "i", terminal.KeySpace, "!", "ctrl-q"} {
		tree.Dispatch(tok)
	}
	if typed != "hi !" {
		t.Errorf("typed = %q", typed)
	}
	if !quit {
		t.Error("non-printable keys should escalate past the printable handler")
	}
}

func TestDispatch_EmptyTree(t *testing.T) {
	if NewTree().Dispatch("q") {
		t.Error("empty tree consumed a key")
	}
}
