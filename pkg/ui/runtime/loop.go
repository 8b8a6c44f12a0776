package runtime

import (
	"context"
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/logging"
	"github.com/dcrosta/dtk-sub000/pkg/ui/eventq"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

type shower interface {
	Show()
}

type cursorState struct {
	shown bool
	at    geom.Point
}

// Loop renders one tree and feeds it input, one Step per tick.
type Loop struct {
	c     *Context
	tree  *Tree
	modal bool
	quit  bool

	extent   geom.Extent
	bounds   geom.Rect
	arranged bool
	stale    bool

	cursor      cursorState
	cursorKnown bool

	// deferred is set while the frame cap holds back a dirty frame.
	deferred bool
}

func newLoop(c *Context, tree *Tree, modal bool) *Loop {
	if tree.log == nil {
		tree.log = c.log
	}
	return &Loop{c: c, tree: tree, modal: modal}
}

func (l *Loop) Tree() *Tree { return l.tree }

func (l *Loop) Context() *Context { return l.c }

// Quit ends this loop after the current step.
func (l *Loop) Quit() {
	l.quit = true
}

// Done reports whether the loop or its context quit.
func (l *Loop) Done() bool {
	return l.quit || l.c.quit
}

// Invalidate forces a full arrange, a screen clear and a complete repaint
// on the next step.
func (l *Loop) Invalidate() {
	l.stale = true
}

// Run steps the loop until it quits or ctx is done. It returns ctx.Err()
// on cancellation and the first arrange error.
func (l *Loop) Run(ctx context.Context) error {
	l.c.push(l)
	defer l.c.pop()

	for !l.Done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := l.Step(ctx); err != nil {
			return err
		}
	}
	return l.flush(ctx)
}

// flush draws a frame the cap held back, so a full-screen loop never ends
// with its last state off screen. Modal loops are repainted over by their
// caller and skip it.
func (l *Loop) flush(ctx context.Context) error {
	if l.modal || !l.deferred {
		return nil
	}
	if err := l.layout(ctx); err != nil {
		return err
	}
	l.deferred = false
	if l.tree.DirtyCount() == 0 {
		return nil
	}
	start := time.Now()
	n := l.tree.Paint(l.c.screen)
	l.c.metrics.Painted(n, time.Since(start))
	l.placeCursor()
	if s, ok := l.c.screen.(shower); ok {
		s.Show()
	}
	l.c.metrics.FrameFlushed()
	return nil
}

// Step runs one tick: arrange on resize, apply queued events, repaint
// dirty nodes, place the cursor, then read and dispatch one token.
func (l *Loop) Step(ctx context.Context) error {
	if err := l.layout(ctx); err != nil {
		return err
	}

	l.applyEvents()
	if l.Done() {
		return nil
	}
	if err := l.layout(ctx); err != nil {
		return err
	}

	painted := l.paint()
	moved := l.placeCursor()
	if painted || moved {
		if s, ok := l.c.screen.(shower); ok {
			s.Show()
		}
	}
	if painted {
		l.c.metrics.FrameFlushed()
	}

	l.readInput()
	return nil
}

func (l *Loop) rootBounds(ext geom.Extent) geom.Rect {
	full := geom.FromExtent(ext)
	if !l.modal {
		return full
	}
	return full.Center(l.tree.Measure(ext))
}

func (l *Loop) layout(ctx context.Context) error {
	rows, cols := l.c.screen.Extent()
	ext := geom.Extent{Rows: rows, Cols: cols}
	resized := l.arranged && ext != l.extent
	if l.arranged && !resized && !l.stale && !l.tree.NeedsArrange() {
		return nil
	}

	bounds := l.rootBounds(ext)
	if err := l.tree.Arrange(ctx, bounds); err != nil {
		l.c.metrics.LayoutFailed()
		return err
	}

	if resized {
		l.c.log.Info(logging.CategoryRender, "resize", "screen resized", map[string]any{
			"from": l.extent.String(),
			"to":   ext.String(),
		})
	}

	// A modal opening over an intact screen only clears its own area.
	region := geom.FromExtent(ext)
	if l.modal && !resized && !l.stale {
		region = bounds
		if l.arranged {
			region = unionRect(bounds, l.bounds)
		}
	}
	l.c.screen.Clear(region)
	l.tree.MarkAllDirty()

	l.extent = ext
	l.bounds = bounds
	l.arranged = true
	l.stale = false
	l.cursorKnown = false
	return nil
}

func unionRect(a, b geom.Rect) geom.Rect {
	if a.Empty() {
		return b
	}
	if b.Empty() {
		return a
	}
	row, col := min(a.Row, b.Row), min(a.Col, b.Col)
	return geom.NewRect(row, col, max(a.Bottom(), b.Bottom())-row, max(a.Right(), b.Right())-col)
}

func (l *Loop) applyEvents() {
	q := l.c.queue
	l.c.metrics.SetQueueDepth(q.Len())
	for _, ev := range q.Drain(func(ev eventq.Event) bool { return ev.Type != eventq.TypeKey }) {
		l.apply(ev)
	}
}

func (l *Loop) apply(ev eventq.Event) {
	switch ev.Type {
	case eventq.TypeInvoke:
		if fn, ok := ev.Payload.(func()); ok && fn != nil {
			fn()
		}
	case eventq.TypeRedraw:
		l.Invalidate()
	case eventq.TypeQuit:
		l.Quit()
	default:
		h, ok := l.c.handlers[ev.Type]
		if !ok {
			l.c.log.Debug(logging.CategoryEvents, "unhandled", "no handler for event", map[string]any{
				"type": ev.Type,
				"id":   ev.ID.String(),
			})
			return
		}
		h(ev)
	}
	l.c.metrics.EventApplied(ev.Type)
}

// paint reports whether anything was drawn.
func (l *Loop) paint() bool {
	if l.tree.DirtyCount() == 0 {
		return false
	}
	if l.c.limiter != nil && !l.c.limiter.Allow() {
		l.c.metrics.FrameSkipped()
		l.deferred = true
		return false
	}
	l.deferred = false
	start := time.Now()
	n := l.tree.Paint(l.c.screen)
	l.c.metrics.Painted(n, time.Since(start))
	return true
}

// placeCursor reports whether the cursor changed.
func (l *Loop) placeCursor() bool {
	var want cursorState
	focused := l.tree.Focused()
	if owner, ok := l.tree.Widget(focused).(CursorOwner); ok {
		if pt, ok := owner.Cursor(); ok {
			b := l.tree.Bounds(focused)
			at := geom.Point{Row: b.Row + pt.Row, Col: b.Col + pt.Col}
			if b.Contains(at.Row, at.Col) {
				want = cursorState{shown: true, at: at}
			}
		}
	}
	if l.cursorKnown && want == l.cursor {
		return false
	}
	if want.shown {
		l.c.screen.ShowCursor(want.at.Row, want.at.Col)
	} else {
		l.c.screen.HideCursor()
	}
	l.cursor = want
	l.cursorKnown = true
	return true
}

func isKey(ev eventq.Event) bool {
	return ev.Type == eventq.TypeKey
}

func (l *Loop) readInput() {
	if ev, ok := l.c.queue.Take(isKey); ok {
		if tok, ok := ev.Payload.(terminal.Token); ok {
			l.Dispatch(tok)
		}
		return
	}
	if tok, ok := l.c.decoder.Read(l.c.screen, l.c.tick, l.c.escWait); ok {
		l.Dispatch(tok)
	}
}

// Dispatch offers tok to the tree's active path, then to the context's
// global bindings with the loop as source.
func (l *Loop) Dispatch(tok terminal.Token) bool {
	consumed := l.tree.Dispatch(tok)
	if !consumed {
		consumed = l.c.globals.Dispatch(tok, l)
	}
	l.c.metrics.Dispatched(consumed)
	l.c.log.Debug(logging.CategoryInput, "dispatch", "key dispatched", map[string]any{
		"key":      string(tok),
		"consumed": consumed,
	})
	return consumed
}
