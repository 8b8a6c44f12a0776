package terminal

// Xterm holds the xterm/VT encodings for named keys that arrive as escape
// sequences. Backends that receive already-decoded keys use it to re-encode
// them into raw codes; the input decoder builds its default table from it.
var Xterm = map[Token]string{
	KeyUp:       "\x1b[A",
	KeyDown:     "\x1b[B",
	KeyRight:    "\x1b[C",
	KeyLeft:     "\x1b[D",
	KeyHome:     "\x1b[H",
	KeyEnd:      "\x1b[F",
	KeyInsert:   "\x1b[2~",
	KeyDelete:   "\x1b[3~",
	KeyPageUp:   "\x1b[5~",
	KeyPageDown: "\x1b[6~",
	KeyBacktab:  "\x1b[Z",
	KeyF1:       "\x1bOP",
	KeyF2:       "\x1bOQ",
	KeyF3:       "\x1bOR",
	KeyF4:       "\x1bOS",
	KeyF5:       "\x1b[15~",
	KeyF6:       "\x1b[17~",
	KeyF7:       "\x1b[18~",
	KeyF8:       "\x1b[19~",
	KeyF9:       "\x1b[20~",
	KeyF10:      "\x1b[21~",
	KeyF11:      "\x1b[23~",
	KeyF12:      "\x1b[24~",

	"shift-up":    "\x1b[1;2A",
	"shift-down":  "\x1b[1;2B",
	"shift-right": "\x1b[1;2C",
	"shift-left":  "\x1b[1;2D",
	"alt-up":      "\x1b[1;3A",
	"alt-down":    "\x1b[1;3B",
	"alt-right":   "\x1b[1;3C",
	"alt-left":    "\x1b[1;3D",
	"ctrl-up":     "\x1b[1;5A",
	"ctrl-down":   "\x1b[1;5B",
	"ctrl-right":  "\x1b[1;5C",
	"ctrl-left":   "\x1b[1;5D",
}

// XtermAlternates are encodings some terminals send for the same keys
// (application cursor mode, rxvt and linux console variants).
var XtermAlternates = map[string]Token{
	"\x1bOA":   KeyUp,
	"\x1bOB":   KeyDown,
	"\x1bOC":   KeyRight,
	"\x1bOD":   KeyLeft,
	"\x1bOH":   KeyHome,
	"\x1bOF":   KeyEnd,
	"\x1b[1~":  KeyHome,
	"\x1b[4~":  KeyEnd,
	"\x1b[7~":  KeyHome,
	"\x1b[8~":  KeyEnd,
	"\x1b[11~": KeyF1,
	"\x1b[12~": KeyF2,
	"\x1b[13~": KeyF3,
	"\x1b[14~": KeyF4,
}

// Codes splits an encoded sequence into raw codes.
func Codes(seq string) []Code {
	out := make([]Code, 0, len(seq))
	for _, r := range seq {
		out = append(out, Code(r))
	}
	return out
}
