package runtime

import (
	"context"

	"github.com/dcrosta/dtk-sub000/pkg/logging"
	"github.com/dcrosta/dtk-sub000/pkg/telemetry"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
)

func (t *Tree) measure(id ID, available geom.Extent) geom.Extent {
	rec, ok := t.nodes[id]
	if !ok {
		return geom.Extent{}
	}
	return rec.widget.Measure(available)
}

// Measure returns the root's desired extent.
func (t *Tree) Measure(available geom.Extent) geom.Extent {
	return t.measure(t.root, available)
}

// Arrange lays the tree out inside bounds. Nodes whose geometry changes
// are touched. A constraint error aborts the pass and is returned with the
// container's name and the requested extent.
func (t *Tree) Arrange(ctx context.Context, bounds geom.Rect) error {
	if t.root == NoID {
		t.relayout = false
		return nil
	}
	_, span := telemetry.StartSpan(ctx, "arrange")
	defer span.End()
	span.SetAttributes(
		telemetry.AttrNode.String(t.nodes[t.root].name),
		telemetry.AttrRows.Int(bounds.Rows),
		telemetry.AttrCols.Int(bounds.Cols),
	)

	if err := t.arrange(t.root, bounds); err != nil {
		span.RecordError(err)
		t.log.Error(logging.CategoryLayout, "arrange_failed", "arrange pass aborted", map[string]any{
			"error":  err.Error(),
			"bounds": bounds.String(),
		})
		return err
	}
	t.relayout = false
	return nil
}

func (t *Tree) arrange(id ID, bounds geom.Rect) error {
	rec := t.nodes[id]
	if rec.bounds != bounds {
		rec.bounds = bounds
		rec.dirty = true
	}
	if a, ok := rec.widget.(Arranger); ok {
		a.Arrange(bounds)
	}

	c, ok := rec.container()
	if !ok {
		return nil
	}
	rects, err := c.place(t, rec, bounds)
	if err != nil {
		return err
	}
	for i, child := range rec.children {
		if err := t.arrange(child, rects[i]); err != nil {
			return err
		}
	}
	return nil
}
