package tcell

import (
	"testing"
	"time"

	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want string
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), "x"},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "\x1bx"},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "\r"},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), "\x03"},
		{"ctrl-q", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), "\x11"},
		{"ctrl rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModCtrl), "\x11"},
		{"uppercase letter with ctrl", tcell.NewEventKey(tcell.Key('U'), 0, tcell.ModCtrl), "\x15"},
		{"shifted letter stays printable", tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModShift), "Q"},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "\x1b"},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), "\x1b[A"},
		{"ctrl-up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModCtrl), "\x1b[1;5A"},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), "\x1b[15~"},
		{"shift-f5 falls back", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModShift), "\x1b[15~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, terminal.Codes(tt.want), EncodeKey(tt.ev))
		})
	}
}

func TestStyleRoundTrip(t *testing.T) {
	in := backend.DefaultStyle().
		Foreground(backend.ColorRGB(10, 20, 30)).
		Background(backend.ColorBlue).
		With(backend.AttrBold | backend.AttrReverse)

	out := StyleFromTcell(ConvertStyle(in))
	assert.Equal(t, in, out)
}

func TestBackend_ReadRawInputCode(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	b := NewWithScreen(screen)
	require.NoError(t, b.Init())
	defer b.Fini()

	screen.InjectKey(tcell.KeyDown, 0, tcell.ModNone)

	var got []terminal.Code
	for i := 0; i < 3; i++ {
		code, ok := b.ReadRawInputCode(time.Second)
		require.True(t, ok, "code %d", i)
		got = append(got, code)
	}
	assert.Equal(t, terminal.Codes("\x1b[B"), got)

	_, ok := b.ReadRawInputCode(10 * time.Millisecond)
	assert.False(t, ok)
}

func TestBackend_Draw(t *testing.T) {
	screen := tcell.NewSimulationScreen("")
	b := NewWithScreen(screen)
	require.NoError(t, b.Init())
	defer b.Fini()
	screen.SetSize(10, 3)

	rows, cols := b.Extent()
	assert.Equal(t, 3, rows)
	assert.Equal(t, 10, cols)

	b.DrawText(1, 2, "hi", backend.DefaultStyle())
	b.Show()

	r, _, _, _ := screen.GetContent(2, 1)
	assert.Equal(t, 'h', r)
	r, _, _, _ = screen.GetContent(3, 1)
	assert.Equal(t, 'i', r)
}
