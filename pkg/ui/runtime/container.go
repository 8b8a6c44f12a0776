package runtime

import (
	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/layout"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

// Axis is a container's main axis.
type Axis int

const (
	Vertical   Axis = iota // children stacked top to bottom
	Horizontal             // children side by side
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Container lays its children out along one axis with the flex allocator.
// Children without an explicit constraint get their measured main extent
// as minimum, no maximum and weight 1. The cross axis is always filled.
type Container struct {
	axis       Axis
	spacing    int
	border     bool
	title      string
	style      backend.Style
	titleStyle backend.Style

	node Node
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithSpacing sets the gap between children.
func WithSpacing(cells int) ContainerOption {
	return func(c *Container) { c.spacing = max(0, cells) }
}

// WithBorder draws a single-line border with an optional title.
func WithBorder(title string) ContainerOption {
	return func(c *Container) {
		c.border = true
		c.title = title
	}
}

// WithBorderStyle sets the border and title styles.
func WithBorderStyle(border, title backend.Style) ContainerOption {
	return func(c *Container) {
		c.style = border
		c.titleStyle = title
	}
}

// NewContainer returns an empty container.
func NewContainer(axis Axis, opts ...ContainerOption) *Container {
	c := &Container{axis: axis}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// VBox returns a vertical container.
func VBox(opts ...ContainerOption) *Container {
	return NewContainer(Vertical, opts...)
}

// HBox returns a horizontal container.
func HBox(opts ...ContainerOption) *Container {
	return NewContainer(Horizontal, opts...)
}

func (c *Container) Attach(n Node) { c.node = n }

func (c *Container) Node() Node { return c.node }

func (c *Container) Axis() Axis { return c.axis }

func (c *Container) Title() string { return c.title }

// SetTitle changes the border title.
func (c *Container) SetTitle(title string) {
	if title != c.title {
		c.title = title
		c.node.Touch()
	}
}

func (c *Container) horizontal() bool { return c.axis == Horizontal }

func (c *Container) inset() int {
	if c.border {
		return 1
	}
	return 0
}

// Measure sums the children along the axis and takes the largest cross
// extent.
func (c *Container) Measure(available geom.Extent) geom.Extent {
	tree := c.node.Tree()
	if tree == nil {
		return geom.Extent{}
	}
	b := c.inset()
	inner := geom.Extent{Rows: max(0, available.Rows-2*b), Cols: max(0, available.Cols-2*b)}

	main, cross := 0, 0
	children := tree.Children(c.node.ID())
	for i, child := range children {
		want := tree.measure(child, inner)
		if c.horizontal() {
			main += want.Cols
			cross = max(cross, want.Rows)
		} else {
			main += want.Rows
			cross = max(cross, want.Cols)
		}
		if i > 0 {
			main += c.spacing
		}
	}
	if c.horizontal() {
		return geom.Extent{Rows: cross + 2*b, Cols: main + 2*b}
	}
	return geom.Extent{Rows: main + 2*b, Cols: cross + 2*b}
}

// Paint draws the border and title. Children paint themselves.
func (c *Container) Paint(p *Painter) {
	if !c.border {
		return
	}
	e := p.Extent()
	p.DrawBox(0, 0, e.Rows, e.Cols, c.style)
	if c.title != "" && e.Cols > 4 {
		p.DrawText(0, 2, " "+c.title+" ", c.titleStyle)
	}
}

func (c *Container) HandleInput(terminal.Token) bool { return false }

func (c *Container) Focus() {}

func (c *Container) Unfocus() {}

// place splits bounds among the children.
func (c *Container) place(tree *Tree, rec *record, bounds geom.Rect) ([]geom.Rect, error) {
	b := c.inset()
	inner := bounds.Inset(b, b, b, b)
	if len(rec.children) == 0 {
		return nil, nil
	}

	items := make([]layout.Constraint, len(rec.children))
	for i, child := range rec.children {
		crec := tree.nodes[child]
		if crec.constraint != nil {
			items[i] = *crec.constraint
			continue
		}
		want := tree.measure(child, inner.Extent)
		items[i] = layout.Flexible(want.Along(c.horizontal()), 1)
	}

	sizes, err := layout.Allocate(items, inner.Along(c.horizontal()), c.spacing)
	if err != nil {
		requested := c.spacing * (len(items) - 1)
		for _, it := range items {
			requested += it.Min
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeLayoutConstraint, "cannot arrange children").
			WithContext("node", rec.name).
			WithContext("axis", c.axis.String()).
			WithContext("requested", requested).
			WithContext("extent", inner.Extent.String())
	}

	rects := make([]geom.Rect, len(sizes))
	offset := 0
	for i, size := range sizes {
		if c.horizontal() {
			rects[i] = geom.NewRect(inner.Row, inner.Col+offset, inner.Rows, size)
		} else {
			rects[i] = geom.NewRect(inner.Row+offset, inner.Col, size, inner.Cols)
		}
		offset += size + c.spacing
	}
	return rects, nil
}
