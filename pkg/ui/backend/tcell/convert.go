package tcell

import (
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/gdamore/tcell/v2"
)

var namedKeys = map[tcell.Key]terminal.Token{
	tcell.KeyUp:      terminal.KeyUp,
	tcell.KeyDown:    terminal.KeyDown,
	tcell.KeyRight:   terminal.KeyRight,
	tcell.KeyLeft:    terminal.KeyLeft,
	tcell.KeyHome:    terminal.KeyHome,
	tcell.KeyEnd:     terminal.KeyEnd,
	tcell.KeyPgUp:    terminal.KeyPageUp,
	tcell.KeyPgDn:    terminal.KeyPageDown,
	tcell.KeyInsert:  terminal.KeyInsert,
	tcell.KeyDelete:  terminal.KeyDelete,
	tcell.KeyBacktab: terminal.KeyBacktab,
	tcell.KeyF1:      terminal.KeyF1,
	tcell.KeyF2:      terminal.KeyF2,
	tcell.KeyF3:      terminal.KeyF3,
	tcell.KeyF4:      terminal.KeyF4,
	tcell.KeyF5:      terminal.KeyF5,
	tcell.KeyF6:      terminal.KeyF6,
	tcell.KeyF7:      terminal.KeyF7,
	tcell.KeyF8:      terminal.KeyF8,
	tcell.KeyF9:      terminal.KeyF9,
	tcell.KeyF10:     terminal.KeyF10,
	tcell.KeyF11:     terminal.KeyF11,
	tcell.KeyF12:     terminal.KeyF12,
}

// EncodeKey turns a tcell key event back into the raw codes a terminal
// would have sent. Alt is encoded as an ESC prefix.
func EncodeKey(ev *tcell.EventKey) []terminal.Code {
	k, mods := ev.Key(), ev.Modifiers()

	var codes []terminal.Code
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if mods&tcell.ModCtrl != 0 && isLetter(r) {
			codes = []terminal.Code{terminal.Code(r & 0x1f)}
		} else {
			codes = []terminal.Code{terminal.Code(r)}
		}
	case k < 256:
		// Control keys share their ASCII value. Ctrl-letter keys arrive as
		// the uppercase letter with ModCtrl.
		if mods&tcell.ModCtrl != 0 && isLetter(rune(k)) {
			codes = []terminal.Code{terminal.Code(k & 0x1f)}
		} else {
			codes = []terminal.Code{terminal.Code(k)}
		}
		if k == tcell.KeyEscape {
			return codes
		}
	default:
		tok, ok := namedKeys[k]
		if !ok {
			return nil
		}
		if prefixed, ok := terminal.Xterm[modifierPrefix(mods)+tok]; ok && mods != tcell.ModNone {
			return terminal.Codes(prefixed)
		}
		return terminal.Codes(terminal.Xterm[tok])
	}

	if mods&tcell.ModAlt != 0 {
		codes = append([]terminal.Code{terminal.CodeEscape}, codes...)
	}
	return codes
}

func modifierPrefix(mods tcell.ModMask) terminal.Token {
	switch {
	case mods&tcell.ModCtrl != 0:
		return "ctrl-"
	case mods&tcell.ModAlt != 0:
		return "alt-"
	case mods&tcell.ModShift != 0:
		return "shift-"
	}
	return ""
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// ConvertStyle converts backend.Style to tcell.Style.
func ConvertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	style := tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg))

	var mask tcell.AttrMask
	for _, m := range attrMap {
		if attrs&m.ours != 0 {
			mask |= m.theirs
		}
	}
	return style.Attributes(mask)
}

// StyleFromTcell converts tcell.Style back to backend.Style.
func StyleFromTcell(ts tcell.Style) backend.Style {
	fg, bg, attrs := ts.Decompose()
	style := backend.DefaultStyle().
		Foreground(colorFromTcell(fg)).
		Background(colorFromTcell(bg))

	for _, m := range attrMap {
		if attrs&m.theirs != 0 {
			style = style.With(m.ours)
		}
	}
	return style
}

var attrMap = []struct {
	ours   backend.AttrMask
	theirs tcell.AttrMask
}{
	{backend.AttrBold, tcell.AttrBold},
	{backend.AttrBlink, tcell.AttrBlink},
	{backend.AttrReverse, tcell.AttrReverse},
	{backend.AttrUnderline, tcell.AttrUnderline},
	{backend.AttrDim, tcell.AttrDim},
	{backend.AttrItalic, tcell.AttrItalic},
	{backend.AttrStrikeThrough, tcell.AttrStrikeThrough},
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	if c.IsRGB() {
		r, g, b := c.RGB()
		return tcell.NewRGBColor(int32(r), int32(g), int32(b))
	}
	return tcell.PaletteColor(int(c))
}

func colorFromTcell(tc tcell.Color) backend.Color {
	if tc == tcell.ColorDefault {
		return backend.ColorDefault
	}
	if tc&tcell.ColorIsRGB != 0 {
		r, g, b := tc.RGB()
		return backend.ColorRGB(uint8(r), uint8(g), uint8(b))
	}
	return backend.Color(tc & 0xFF)
}
