package runtime

import (
	"context"
	"testing"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend/sim"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

// stub is a leaf widget that records what the runtime does to it.
type stub struct {
	text    string
	want    geom.Extent
	noFocus bool
	consume map[terminal.Token]bool

	node      Node
	focused   bool
	focusN    int
	unfocusN  int
	paints    int
	inputs    []terminal.Token
	arranged  []geom.Rect
	cursor    geom.Point
	hasCursor bool
}

func newStub(text string) *stub {
	return &stub{text: text}
}

func (s *stub) Attach(n Node) { s.node = n }

func (s *stub) Measure(available geom.Extent) geom.Extent {
	if s.want != (geom.Extent{}) {
		return s.want
	}
	return geom.Extent{Rows: 1, Cols: runewidth.StringWidth(s.text)}
}

func (s *stub) Arrange(bounds geom.Rect) {
	s.arranged = append(s.arranged, bounds)
}

func (s *stub) Paint(p *Painter) {
	s.paints++
	p.DrawText(0, 0, s.text, backend.DefaultStyle())
}

func (s *stub) HandleInput(tok terminal.Token) bool {
	s.inputs = append(s.inputs, tok)
	return s.consume[tok]
}

func (s *stub) Focus() {
	s.focused = true
	s.focusN++
}

func (s *stub) Unfocus() {
	s.focused = false
	s.unfocusN++
}

func (s *stub) CanFocus() bool { return !s.noFocus }

func (s *stub) Cursor() (geom.Point, bool) { return s.cursor, s.hasCursor }

// focusedCount counts stubs that currently believe they are focused.
func focusedCount(stubs ...*stub) int {
	n := 0
	for _, s := range stubs {
		if s.focused {
			n++
		}
	}
	return n
}

// buildColumn returns a vertical root holding one stub per label.
func buildColumn(t *testing.T, labels ...string) (*Tree, ID, []ID, []*stub) {
	t.Helper()
	tree := NewTree()
	root, err := tree.Add(NoID, "root", VBox())
	if err != nil {
		t.Fatalf("add root: %v", err)
	}
	var ids []ID
	var stubs []*stub
	for _, label := range labels {
		s := newStub(label)
		id, err := tree.Add(root, label, s)
		if err != nil {
			t.Fatalf("add %s: %v", label, err)
		}
		ids = append(ids, id)
		stubs = append(stubs, s)
	}
	return tree, root, ids, stubs
}

func newSimContext(rows, cols int) (*Context, *sim.Backend) {
	screen := sim.New(rows, cols)
	return NewContext(screen, Options{}), screen
}

func step(t *testing.T, l *Loop) {
	t.Helper()
	if err := l.Step(context.Background()); err != nil {
		t.Fatalf("Step: %v", err)
	}
}

// nopScreen discards everything.
type nopScreen struct{}

func (nopScreen) Extent() (int, int)                                   { return 24, 80 }
func (nopScreen) DrawText(int, int, string, backend.Style)             {}
func (nopScreen) DrawBox(int, int, int, int, backend.Style)            {}
func (nopScreen) DrawLine(int, int, int, bool, backend.Style)          {}
func (nopScreen) Clear(geom.Rect)                                      {}
func (nopScreen) ShowCursor(int, int)                                  {}
func (nopScreen) HideCursor()                                          {}
func (nopScreen) ReadRawInputCode(time.Duration) (terminal.Code, bool) { return 0, false }
