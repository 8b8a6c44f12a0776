package runtime

import (
	"testing"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
)

func TestTree_AddAndLookup(t *testing.T) {
	tree, root, ids, _ := buildColumn(t, "a", "b")

	if tree.Root() != root {
		t.Fatalf("Root = %d, want %d", tree.Root(), root)
	}
	if tree.Len() != 3 {
		t.Errorf("Len = %d, want 3", tree.Len())
	}
	if id, ok := tree.Lookup("b"); !ok || id != ids[1] {
		t.Errorf("Lookup(b) = %d, %v", id, ok)
	}
	if got := tree.Parent(ids[0]); got != root {
		t.Errorf("Parent = %d, want root", got)
	}
	children := tree.Children(root)
	if len(children) != 2 || children[0] != ids[0] || children[1] != ids[1] {
		t.Errorf("Children = %v", children)
	}
	if !tree.IsContainer(root) || tree.IsContainer(ids[0]) {
		t.Error("IsContainer mismatch")
	}
}

func TestTree_AddErrors(t *testing.T) {
	tree, root, ids, _ := buildColumn(t, "a")

	cases := []struct {
		name   string
		parent ID
		label  string
		widget Widget
	}{
		{"second root", NoID, "other", VBox()},
		{"unknown parent", ID(99), "x", newStub("x")},
		{"leaf parent", ids[0], "y", newStub("y")},
		{"duplicate name", root, "a", newStub("a")},
		{"nil widget", root, "z", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tree.Add(tc.parent, tc.label, tc.widget)
			if !apperrors.IsCode(err, apperrors.ErrCodeTreeInvalid) {
				t.Errorf("err = %v, want TREE_INVALID", err)
			}
		})
	}
	if tree.Len() != 2 {
		t.Errorf("failed adds changed the tree: Len = %d", tree.Len())
	}
}

func TestTree_GeneratedNames(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoID, "", VBox())
	if tree.Name(root) != "node-1" {
		t.Errorf("Name = %q, want node-1", tree.Name(root))
	}
}

func TestTree_AttachHandle(t *testing.T) {
	tree, _, ids, stubs := buildColumn(t, "a")
	n := stubs[0].node

	if n.ID() != ids[0] || !n.Valid() || n.Name() != "a" {
		t.Fatalf("handle = %+v", n)
	}
	if n.Bindings() == nil {
		t.Error("handle should expose the binding table")
	}

	if err := tree.Detach(ids[0]); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	if n.Valid() {
		t.Error("handle should be invalid after detach")
	}
	n.Touch()
	if n.Dirty() || n.Bindings() != nil {
		t.Error("detached handle should be inert")
	}
}

func TestTree_DetachSubtree(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoID, "root", HBox())
	left := tree.MustAdd(root, "left", VBox())
	a := tree.MustAdd(left, "a", newStub("a"))
	tree.MustAdd(left, "b", newStub("b"))
	c := tree.MustAdd(root, "c", newStub("c"))

	if err := tree.Detach(left); err != nil {
		t.Fatalf("Detach: %v", err)
	}
	if tree.Len() != 2 {
		t.Errorf("Len = %d, want 2", tree.Len())
	}
	if _, ok := tree.Lookup("b"); ok {
		t.Error("detached names should be released")
	}
	if tree.Contains(a) {
		t.Error("detached node still in arena")
	}
	if got := tree.Children(root); len(got) != 1 || got[0] != c {
		t.Errorf("Children = %v", got)
	}
	if !tree.NeedsArrange() {
		t.Error("detach should schedule an arrange pass")
	}

	if err := tree.Detach(a); !apperrors.IsCode(err, apperrors.ErrCodeTreeInvalid) {
		t.Errorf("second detach err = %v", err)
	}
}

func TestTree_AutoFocusFirstLeaf(t *testing.T) {
	tree, _, ids, stubs := buildColumn(t, "a", "b")

	if tree.Focused() != ids[0] {
		t.Fatalf("Focused = %d, want first leaf", tree.Focused())
	}
	if !stubs[0].focused || stubs[1].focused {
		t.Error("only the first leaf should be notified")
	}
}

func TestTree_AutoFocusSkipsUnfocusable(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoID, "root", VBox())
	label := newStub("label")
	label.noFocus = true
	tree.MustAdd(root, "label", label)
	if tree.Focused() != NoID {
		t.Fatal("an unfocusable leaf must not take focus")
	}
	field := tree.MustAdd(root, "field", newStub("field"))
	if tree.Focused() != field {
		t.Errorf("Focused = %d, want field", tree.Focused())
	}
}

func TestTree_DetachFocusedMovesFocus(t *testing.T) {
	tree, _, ids, stubs := buildColumn(t, "a", "b", "c")

	if err := tree.SetFocus(ids[1]); err != nil {
		t.Fatal(err)
	}
	if err := tree.Detach(ids[1]); err != nil {
		t.Fatal(err)
	}
	if tree.Focused() != ids[0] {
		t.Errorf("Focused = %d, want first remaining leaf", tree.Focused())
	}
	if stubs[1].focused {
		t.Error("detached leaf should have been unfocused")
	}
	if got := focusedCount(stubs[0], stubs[2]); got != 1 {
		t.Errorf("focused leaves = %d, want 1", got)
	}
}

func TestTree_Walk(t *testing.T) {
	tree := NewTree()
	root := tree.MustAdd(NoID, "root", VBox())
	row := tree.MustAdd(root, "row", HBox())
	tree.MustAdd(row, "x", newStub("x"))
	tree.MustAdd(root, "y", newStub("y"))

	var names []string
	tree.Walk(root, func(id ID) bool {
		names = append(names, tree.Name(id))
		return id != row
	})
	want := []string{"root", "row", "y"}
	if len(names) != len(want) {
		t.Fatalf("Walk = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Walk[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}
