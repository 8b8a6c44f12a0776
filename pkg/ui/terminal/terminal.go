// Package terminal provides the logical key tokens and raw input codes used
// throughout the UI.
package terminal

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Code is one raw input code as read from the terminal backend: a byte of an
// escape sequence or a decoded codepoint.
type Code rune

// Common raw codes.
const (
	CodeNUL       Code = 0x00
	CodeTab       Code = 0x09
	CodeLF        Code = 0x0a
	CodeCR        Code = 0x0d
	CodeEscape    Code = 0x1b
	CodeSpace     Code = 0x20
	CodeDEL       Code = 0x7f
	CodeBackspace Code = 0x08
)

// IsPrintable reports whether the code is a plain printable character.
// Space is excluded; it decodes to the named KeySpace token.
func (c Code) IsPrintable() bool {
	r := rune(c)
	return r > 0x20 && r != 0x7f && utf8.ValidRune(r) && unicode.IsPrint(r)
}

// Token is a logical key token, independent of the raw terminal encoding.
// Printable characters are their own one-character token ("a", "Q", "é");
// everything else uses a lower-case name ("up", "ctrl-x", "f5").
type Token string

// Sentinels.
const (
	// TokenNone means no token was produced.
	TokenNone Token = ""
	// Printable binds a table's printable-input handler.
	Printable Token = "printable"
	// All clears every binding when passed to Unbind.
	All Token = "all"
)

// Named keys.
const (
	KeyEnter     Token = "enter"
	KeyTab       Token = "tab"
	KeyBacktab   Token = "backtab"
	KeyEscape    Token = "escape"
	KeyBackspace Token = "backspace"
	KeySpace     Token = "space"
	KeyUp        Token = "up"
	KeyDown      Token = "down"
	KeyLeft      Token = "left"
	KeyRight     Token = "right"
	KeyHome      Token = "home"
	KeyEnd       Token = "end"
	KeyPageUp    Token = "pageup"
	KeyPageDown  Token = "pagedown"
	KeyInsert    Token = "insert"
	KeyDelete    Token = "delete"
	KeyF1        Token = "f1"
	KeyF2        Token = "f2"
	KeyF3        Token = "f3"
	KeyF4        Token = "f4"
	KeyF5        Token = "f5"
	KeyF6        Token = "f6"
	KeyF7        Token = "f7"
	KeyF8        Token = "f8"
	KeyF9        Token = "f9"
	KeyF10       Token = "f10"
	KeyF11       Token = "f11"
	KeyF12       Token = "f12"
)

// literals maps named tokens that stand for a printable character.
var literals = map[Token]string{
	KeySpace: " ",
}

// Ctrl returns the token for ctrl plus a letter, e.g. Ctrl('c') == "ctrl-c".
func Ctrl(r rune) Token {
	return Token("ctrl-" + string(unicode.ToLower(r)))
}

// Alt returns the token for alt plus a character, e.g. Alt('x') == "alt-x".
func Alt(r rune) Token {
	return Token("alt-" + string(r))
}

// Rune returns the one-character token for r.
func Rune(r rune) Token {
	return Token(string(r))
}

// IsPrintable reports whether the token stands for literal printable text:
// a single printable character or a named token with a literal (space).
func (t Token) IsPrintable() bool {
	if _, ok := literals[t]; ok {
		return true
	}
	r, size := utf8.DecodeRuneInString(string(t))
	if r == utf8.RuneError || size != len(t) {
		return false
	}
	return Code(r).IsPrintable()
}

// Literal returns the text a printable token inserts.
func (t Token) Literal() (string, bool) {
	if lit, ok := literals[t]; ok {
		return lit, true
	}
	if t.IsPrintable() {
		return string(t), true
	}
	return "", false
}

// Normalize canonicalizes a user-written token: named keys are lower-cased
// and common aliases resolved. Single characters keep their case.
func Normalize(s string) Token {
	if s == " " {
		return KeySpace
	}
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) == 1 {
		return Token(s)
	}
	lower := strings.ToLower(s)
	if alias, ok := aliases[lower]; ok {
		return alias
	}
	if strings.HasPrefix(lower, "c-") {
		return Token("ctrl-" + lower[2:])
	}
	if strings.HasPrefix(lower, "m-") {
		return Token("alt-" + s[2:])
	}
	if strings.HasPrefix(lower, "alt-") {
		return Token("alt-" + s[4:])
	}
	return Token(lower)
}

var aliases = map[string]Token{
	"esc":    KeyEscape,
	"return": KeyEnter,
	"cr":     KeyEnter,
	"bs":     KeyBackspace,
	"del":    KeyDelete,
	"pgup":   KeyPageUp,
	"pgdn":   KeyPageDown,
	"s-tab":  KeyBacktab,
}

func (t Token) String() string {
	if t == TokenNone {
		return "<none>"
	}
	return string(t)
}
