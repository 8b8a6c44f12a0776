package terminal

import "testing"

func TestToken_IsPrintable(t *testing.T) {
	tests := []struct {
		tok  Token
		want bool
	}{
		{"a", true},
		{"Z", true},
		{"é", true},
		{KeySpace, true},
		{KeyEnter, false},
		{KeyUp, false},
		{Ctrl('c'), false},
		{"ab", false},
		{TokenNone, false},
		{Token("\x7f"), false},
	}

	for _, tt := range tests {
		if got := tt.tok.IsPrintable(); got != tt.want {
			t.Errorf("%q.IsPrintable() = %v, want %v", tt.tok, got, tt.want)
		}
	}
}

func TestToken_Literal(t *testing.T) {
	if lit, ok := KeySpace.Literal(); !ok || lit != " " {
		t.Errorf("space literal = %q, %v", lit, ok)
	}
	if lit, ok := Token("x").Literal(); !ok || lit != "x" {
		t.Errorf("x literal = %q, %v", lit, ok)
	}
	if _, ok := KeyTab.Literal(); ok {
		t.Error("tab should have no literal")
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]Token{
		"q":      "q",
		"Q":      "Q",
		" ":      KeySpace,
		"  tab ": KeyTab,
		"Esc":    KeyEscape,
		"ENTER":  KeyEnter,
		"C-x":    Ctrl('x'),
		"ctrl-X": Ctrl('x'),
		"M-f":    Alt('f'),
		"pgdn":   KeyPageDown,
		"F5":     KeyF5,
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCode_IsPrintable(t *testing.T) {
	if !Code('a').IsPrintable() {
		t.Error("'a' should be printable")
	}
	for _, c := range []Code{CodeEscape, CodeSpace, CodeDEL, CodeCR, CodeTab} {
		if c.IsPrintable() {
			t.Errorf("code %#x should not be printable", c)
		}
	}
}
