package tty

import (
	"fmt"
	"strings"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/muesli/termenv"
)

const sgrReset = termenv.CSI + termenv.ResetSeq + "m"

var attrSeqs = []struct {
	mask backend.AttrMask
	seq  string
}{
	{backend.AttrBold, termenv.BoldSeq},
	{backend.AttrDim, termenv.FaintSeq},
	{backend.AttrItalic, termenv.ItalicSeq},
	{backend.AttrUnderline, termenv.UnderlineSeq},
	{backend.AttrBlink, termenv.BlinkSeq},
	{backend.AttrReverse, termenv.ReverseSeq},
	{backend.AttrStrikeThrough, termenv.CrossOutSeq},
}

// sgrEncoder turns styles into SGR sequences, degrading colors to what the
// terminal's profile supports.
type sgrEncoder struct {
	profile termenv.Profile
	cache   map[backend.Style]string
}

func newSGREncoder(profile termenv.Profile) *sgrEncoder {
	return &sgrEncoder{profile: profile, cache: make(map[backend.Style]string)}
}

// encode always starts from a reset so sequences do not depend on the
// previous cell's style.
func (e *sgrEncoder) encode(s backend.Style) string {
	if seq, ok := e.cache[s]; ok {
		return seq
	}
	fg, bg, attrs := s.Decompose()
	parts := []string{termenv.ResetSeq}
	for _, a := range attrSeqs {
		if attrs&a.mask != 0 {
			parts = append(parts, a.seq)
		}
	}
	if seq := e.color(fg, false); seq != "" {
		parts = append(parts, seq)
	}
	if seq := e.color(bg, true); seq != "" {
		parts = append(parts, seq)
	}
	seq := termenv.CSI + strings.Join(parts, ";") + "m"
	e.cache[s] = seq
	return seq
}

func (e *sgrEncoder) color(c backend.Color, bg bool) string {
	if c == backend.ColorDefault {
		return ""
	}
	var tc termenv.Color
	switch {
	case c.IsRGB():
		r, g, b := c.RGB()
		tc = e.profile.Color(fmt.Sprintf("#%02x%02x%02x", r, g, b))
	case c < 16:
		tc = e.profile.Convert(termenv.ANSIColor(c))
	default:
		tc = e.profile.Convert(termenv.ANSI256Color(c))
	}
	if tc == nil {
		return ""
	}
	return tc.Sequence(bg)
}
