package widgets

import (
	"github.com/mattn/go-runewidth"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/geom"
	"github.com/dcrosta/dtk-sub000/pkg/ui/runtime"
)

// Label displays static, possibly multi-line text.
type Label struct {
	Base

	text  string
	align Alignment
	style *backend.Style
}

// NewLabel creates a left-aligned label.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// WithAlignment sets the alignment.
func (l *Label) WithAlignment(align Alignment) *Label {
	l.align = align
	return l
}

// WithStyle overrides the theme's text style.
func (l *Label) WithStyle(style backend.Style) *Label {
	l.style = &style
	return l
}

func (l *Label) Text() string {
	return l.text
}

// SetText replaces the text. The label is rearranged when its measured
// size changes and repainted otherwise.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	before := l.Measure(geom.Extent{})
	l.text = text
	if l.Measure(geom.Extent{}) != before {
		l.node.Relayout()
	}
	l.Invalidate()
}

// Measure returns one row per line and the widest line.
func (l *Label) Measure(geom.Extent) geom.Extent {
	lines := splitLines(l.text)
	width := 0
	for _, line := range lines {
		width = max(width, runewidth.StringWidth(line))
	}
	return geom.Extent{Rows: len(lines), Cols: width}
}

func (l *Label) Paint(p *runtime.Painter) {
	p.Fill()
	style := l.Theme().Text
	if l.style != nil {
		style = *l.style
	}
	cols := p.Extent().Cols
	for row, line := range splitLines(l.text) {
		line = truncateString(line, cols)
		p.DrawText(row, alignOffset(l.align, runewidth.StringWidth(line), cols), line, style)
	}
}
