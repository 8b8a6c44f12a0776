package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

type scriptedSource struct {
	codes    []terminal.Code
	timeouts []time.Duration
}

func (s *scriptedSource) ReadRawInputCode(timeout time.Duration) (terminal.Code, bool) {
	s.timeouts = append(s.timeouts, timeout)
	if len(s.codes) == 0 {
		return 0, false
	}
	c := s.codes[0]
	s.codes = s.codes[1:]
	return c, true
}

func feedAll(d *Decoder, seq string) []terminal.Token {
	var out []terminal.Token
	for _, c := range terminal.Codes(seq) {
		if tok, ok := d.Feed(c); ok {
			out = append(out, tok)
		}
	}
	return out
}

func TestDecoder_PrintableFastPath(t *testing.T) {
	d := NewDecoder(nil)
	assert.Equal(t, []terminal.Token{"a", "Z", "é"}, feedAll(d, "aZé"))
	assert.False(t, d.Pending())
}

func TestDecoder_MultiStepSequences(t *testing.T) {
	tests := []struct {
		seq  string
		want terminal.Token
	}{
		{"\x1b[A", terminal.KeyUp},
		{"\x1bOA", terminal.KeyUp},
		{"\x1b[3~", terminal.KeyDelete},
		{"\x1b[24~", terminal.KeyF12},
		{"\x1bOP", terminal.KeyF1},
		{"\x1b[1;5C", "ctrl-right"},
		{"\x1b[Z", terminal.KeyBacktab},
		{"\r", terminal.KeyEnter},
		{"\x7f", terminal.KeyBackspace},
		{"\x03", "ctrl-c"},
		{" ", terminal.KeySpace},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			d := NewDecoder(nil)
			assert.Equal(t, []terminal.Token{tt.want}, feedAll(d, tt.seq))
			assert.False(t, d.Pending())
		})
	}
}

func TestDecoder_IncompletePrefixDiscardedOnTimeout(t *testing.T) {
	var failed [][]terminal.Code
	d := NewDecoder(nil, WithFailureHook(func(codes []terminal.Code) {
		failed = append(failed, codes)
	}))

	assert.Empty(t, feedAll(d, "\x1b[1;"))
	require.True(t, d.Pending())
	assert.Equal(t, terminal.Codes("\x1b[1;"), d.Buffered())

	tok, ok := d.Expire()
	assert.False(t, ok)
	assert.Equal(t, terminal.TokenNone, tok)
	assert.False(t, d.Pending())
	require.Len(t, failed, 1)
	assert.Equal(t, terminal.Codes("\x1b[1;"), failed[0])

	// The decoder starts over from the root afterwards.
	assert.Equal(t, []terminal.Token{terminal.KeyDown}, feedAll(d, "\x1b[B"))
}

func TestDecoder_LoneEscapeTimesOutToEscape(t *testing.T) {
	d := NewDecoder(nil)
	assert.Empty(t, feedAll(d, "\x1b"))

	tok, ok := d.Expire()
	require.True(t, ok)
	assert.Equal(t, terminal.KeyEscape, tok)
}

func TestDecoder_EscapeEscape(t *testing.T) {
	failures := 0
	d := NewDecoder(nil, WithFailureHook(func([]terminal.Code) { failures++ }))

	assert.Equal(t, []terminal.Token{terminal.KeyEscape}, feedAll(d, "\x1b\x1b"))
	assert.True(t, d.Pending())
	tok, ok := d.Expire()
	require.True(t, ok)
	assert.Equal(t, terminal.KeyEscape, tok)
	assert.Zero(t, failures)

	// the second escape may still begin a sequence
	assert.Equal(t, []terminal.Token{terminal.KeyEscape, terminal.KeyUp}, feedAll(d, "\x1b\x1b[A"))
	assert.False(t, d.Pending())
}

func TestDecoder_MissResetsToRoot(t *testing.T) {
	failures := 0
	d := NewDecoder(nil, WithFailureHook(func([]terminal.Code) { failures++ }))

	assert.Empty(t, feedAll(d, "\x1b[9"))
	assert.False(t, d.Pending())
	assert.Equal(t, 1, failures)
	assert.Equal(t, []terminal.Token{"x"}, feedAll(d, "x"))
}

func TestDecoder_AltKeys(t *testing.T) {
	d := NewDecoder(nil, WithAltKeys(true))
	assert.Equal(t, []terminal.Token{"alt-x"}, feedAll(d, "\x1bx"))

	d = NewDecoder(nil, WithAltKeys(false))
	assert.Empty(t, feedAll(d, "\x1bx"))
	assert.False(t, d.Pending())
}

func TestDecoder_ExpireWithoutPending(t *testing.T) {
	d := NewDecoder(nil)
	_, ok := d.Expire()
	assert.False(t, ok)
}

func TestDecoder_Read(t *testing.T) {
	src := &scriptedSource{codes: terminal.Codes("\x1b[Aq")}
	d := NewDecoder(nil)

	tok, ok := d.Read(src, 50*time.Millisecond, 5*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, terminal.KeyUp, tok)
	assert.Equal(t, []time.Duration{50 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond}, src.timeouts)

	tok, ok = d.Read(src, 50*time.Millisecond, 5*time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, terminal.Token("q"), tok)

	_, ok = d.Read(src, 50*time.Millisecond, 5*time.Millisecond)
	assert.False(t, ok)
}

func TestDecoder_ReadStalledSequence(t *testing.T) {
	src := &scriptedSource{codes: terminal.Codes("\x1b")}
	d := NewDecoder(nil)

	tok, ok := d.Read(src, time.Millisecond, time.Millisecond)
	require.True(t, ok)
	assert.Equal(t, terminal.KeyEscape, tok)
	assert.False(t, d.Pending())
}

func TestSequences_AddConflicts(t *testing.T) {
	s := NewSequences()
	require.NoError(t, s.Add("\x1b[A", terminal.KeyUp))

	err := s.Add("\x1b[", "alt-[")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeInvalidInput))

	err = s.Add("\x1b[AB", "bogus")
	require.Error(t, err)

	assert.Error(t, s.Add("", terminal.KeyUp))
	assert.Error(t, s.AddTimeout("\x1b[A", terminal.KeyEscape))

	require.NoError(t, s.Add("\x1b[A", "cursor-up"))
	tok, ok := s.Lookup("\x1b[A")
	require.True(t, ok)
	assert.Equal(t, terminal.Token("cursor-up"), tok)
	assert.Equal(t, 1, s.Len())
}

func TestSequences_Extend(t *testing.T) {
	s := DefaultSequences()
	before := s.Len()
	require.NoError(t, s.Extend(map[string]string{"\x1b[1;6A": "Ctrl-Shift-Up"}))
	assert.Equal(t, before+1, s.Len())

	d := NewDecoder(s)
	assert.Equal(t, []terminal.Token{"ctrl-shift-up"}, feedAll(d, "\x1b[1;6A"))
}

func TestDefaultSequences_CoversXterm(t *testing.T) {
	s := DefaultSequences()
	for tok, seq := range terminal.Xterm {
		got, ok := s.Lookup(seq)
		require.True(t, ok, "missing %s", tok)
		assert.Equal(t, tok, got)
	}
}
