// Package theme provides the named flat style roles widgets draw with.
package theme

import (
	"sort"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
)

// Theme is the set of style roles shared by the sample widgets.
type Theme struct {
	Name string

	// Text hierarchy
	Text      backend.Style
	TextMuted backend.Style
	Accent    backend.Style

	// Containers
	Border      backend.Style
	BorderFocus backend.Style
	Title       backend.Style

	// Controls
	Button      backend.Style
	ButtonFocus backend.Style
	Field       backend.Style
	FieldFocus  backend.Style
	Placeholder backend.Style
	Selection   backend.Style

	// Semantic
	Success backend.Style
	Warning backend.Style
	Error   backend.Style
}

// DefaultTheme returns the true-color theme: warm text on the terminal
// background with an amber accent.
func DefaultTheme() *Theme {
	base := backend.DefaultStyle()
	amber := backend.ColorRGB(255, 183, 77)
	return &Theme{
		Name: "default",

		Text:      base.Foreground(backend.ColorRGB(240, 238, 232)),
		TextMuted: base.Foreground(backend.ColorRGB(100, 98, 92)),
		Accent:    base.Foreground(amber),

		Border:      base.Foreground(backend.ColorRGB(80, 80, 96)),
		BorderFocus: base.Foreground(amber),
		Title:       base.Foreground(amber).Bold(true),

		Button:      base.Foreground(backend.ColorRGB(160, 158, 150)),
		ButtonFocus: base.Foreground(backend.ColorRGB(12, 12, 16)).Background(amber).Bold(true),
		Field:       base.Foreground(backend.ColorRGB(240, 238, 232)).Background(backend.ColorRGB(32, 32, 40)),
		FieldFocus:  base.Foreground(backend.ColorRGB(240, 238, 232)).Background(backend.ColorRGB(60, 60, 80)),
		Placeholder: base.Foreground(backend.ColorRGB(100, 98, 92)).With(backend.AttrItalic),
		Selection:   base.Background(backend.ColorRGB(60, 60, 80)),

		Success: base.Foreground(backend.ColorRGB(134, 239, 172)),
		Warning: base.Foreground(backend.ColorRGB(255, 138, 101)),
		Error:   base.Foreground(backend.ColorRGB(255, 110, 90)).Bold(true),
	}
}

// ANSITheme uses the 16 palette colors only.
func ANSITheme() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Name: "ansi",

		Text:      base,
		TextMuted: base.Foreground(backend.ColorBrightBlack),
		Accent:    base.Foreground(backend.ColorYellow),

		Border:      base.Foreground(backend.ColorBrightBlack),
		BorderFocus: base.Foreground(backend.ColorYellow),
		Title:       base.Foreground(backend.ColorYellow).Bold(true),

		Button:      base,
		ButtonFocus: base.Foreground(backend.ColorBlack).Background(backend.ColorYellow),
		Field:       base.Underline(true),
		FieldFocus:  base.Foreground(backend.ColorBrightWhite).Underline(true),
		Placeholder: base.Foreground(backend.ColorBrightBlack),
		Selection:   base.Reverse(true),

		Success: base.Foreground(backend.ColorGreen),
		Warning: base.Foreground(backend.ColorYellow),
		Error:   base.Foreground(backend.ColorRed).Bold(true),
	}
}

// MonoTheme expresses every role with attributes alone.
func MonoTheme() *Theme {
	base := backend.DefaultStyle()
	return &Theme{
		Name: "mono",

		Text:      base,
		TextMuted: base.Dim(true),
		Accent:    base.Bold(true),

		Border:      base.Dim(true),
		BorderFocus: base,
		Title:       base.Bold(true),

		Button:      base,
		ButtonFocus: base.Reverse(true),
		Field:       base.Underline(true),
		FieldFocus:  base.Underline(true).Bold(true),
		Placeholder: base.Dim(true),
		Selection:   base.Reverse(true),

		Success: base,
		Warning: base.Bold(true),
		Error:   base.Bold(true).Underline(true),
	}
}

var builtin = map[string]func() *Theme{
	"default": DefaultTheme,
	"ansi":    ANSITheme,
	"mono":    MonoTheme,
}

// Names lists the built-in themes.
func Names() []string {
	out := make([]string, 0, len(builtin))
	for name := range builtin {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Lookup returns a fresh copy of the named built-in theme.
func Lookup(name string) (*Theme, error) {
	build, ok := builtin[name]
	if !ok {
		return nil, apperrors.New(apperrors.ErrCodeConfigInvalid, "unknown theme").
			WithContext("theme", name).
			WithContext("valid", Names())
	}
	return build(), nil
}

// Symbols are the glyphs widgets draw besides text.
var Symbols = struct {
	Check       string
	Cross       string
	Arrow       string
	Ellipsis    string
	ButtonLeft  string
	ButtonRight string
}{
	Check:       "✓",
	Cross:       "✗",
	Arrow:       "›",
	Ellipsis:    "…",
	ButtonLeft:  "[",
	ButtonRight: "]",
}
