package keybind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

func TestTable_ExactBinding(t *testing.T) {
	tbl := NewTable()
	quit := false
	tbl.Bind("q", func(Args) { quit = true }, nil)

	assert.True(t, tbl.Dispatch("q", nil))
	assert.True(t, quit)
	assert.False(t, tbl.Dispatch("x", nil), "unbound trigger escalates")
}

func TestTable_PrintableHandlerWins(t *testing.T) {
	tbl := NewTable()
	var typed []terminal.Token
	exact := 0
	tbl.Bind(terminal.Printable, func(a Args) { typed = append(typed, a.Key()) }, nil, WithToken())
	tbl.Bind("q", func(Args) { exact++ }, nil)
	tbl.Bind(terminal.KeyEnter, func(Args) { exact++ }, nil)

	assert.True(t, tbl.Dispatch("q", nil))
	assert.True(t, tbl.Dispatch(terminal.KeySpace, nil))
	assert.True(t, tbl.Dispatch(terminal.KeyEnter, nil))

	assert.Equal(t, []terminal.Token{"q", " "}, typed)
	assert.Equal(t, 1, exact, "enter is not printable and reaches the exact binding")
}

func TestTable_LastWriteWins(t *testing.T) {
	tbl := NewTable()
	var got string
	tbl.Bind("x", func(Args) { got = "first" }, nil)
	tbl.Bind("x", func(Args) { got = "second" }, nil)

	tbl.Dispatch("x", nil)
	assert.Equal(t, "second", got)
	assert.Equal(t, 1, tbl.Len())
}

func TestTable_ImplicitArgs(t *testing.T) {
	tbl := NewTable()
	var seen []Args
	record := func(a Args) { seen = append(seen, a) }

	tbl.Bind("a", record, Args{"n": 1}, WithToken(), WithSource())
	tbl.Bind("b", record, Args{ArgKey: terminal.Token("fixed")}, WithToken(), WithSource())
	tbl.Bind("c", record, nil)

	tbl.Dispatch("a", "widget-1")
	tbl.Dispatch("b", "widget-2")
	tbl.Dispatch("c", "widget-3")

	require.Len(t, seen, 3)
	assert.Equal(t, Args{"n": 1, ArgKey: terminal.Token("a"), ArgSource: "widget-1"}, seen[0])
	assert.Equal(t, terminal.Token("fixed"), seen[1].Key(), "caller-supplied value is kept")
	assert.Equal(t, "widget-2", seen[1].Source())
	assert.Empty(t, seen[2], "untagged binding gets no implicit args")
}

func TestTable_ArgsCopiedPerInvocation(t *testing.T) {
	tbl := NewTable()
	bound := Args{"count": 0}
	tbl.Bind("a", func(a Args) { a["count"] = 99 }, bound)

	tbl.Dispatch("a", nil)
	b, ok := tbl.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, 0, b.Args["count"])
	assert.Equal(t, 0, bound["count"])
}

func TestTable_Unbind(t *testing.T) {
	tbl := NewTable()
	noop := func(Args) {}
	tbl.Bind("a", noop, nil)
	tbl.Bind("b", noop, nil)
	tbl.Bind(terminal.Printable, noop, nil)

	assert.True(t, tbl.Unbind("a"))
	assert.False(t, tbl.Unbind("a"))
	assert.Equal(t, []terminal.Token{"b", terminal.Printable}, tbl.Triggers())

	assert.True(t, tbl.Unbind(terminal.All))
	assert.Zero(t, tbl.Len())
	assert.False(t, tbl.Dispatch("z", nil))
	assert.False(t, tbl.Unbind(terminal.All))
}

func TestTable_ReservedTriggersIgnored(t *testing.T) {
	tbl := NewTable()
	tbl.Bind(terminal.All, func(Args) {}, nil)
	tbl.Bind(terminal.TokenNone, func(Args) {}, nil)
	tbl.Bind("x", nil, nil)
	assert.Zero(t, tbl.Len())
}

func TestTable_NilSafe(t *testing.T) {
	var tbl *Table
	assert.False(t, tbl.Dispatch("q", nil))
	assert.Zero(t, tbl.Len())
	assert.Empty(t, tbl.Triggers())
}

func TestTable_BindingsListing(t *testing.T) {
	tbl := NewTable()
	tbl.Bind("ctrl-q", func(Args) {}, nil, Named("quit"))
	tbl.Bind("tab", func(Args) {}, nil, Named("focus-next"))

	list := tbl.Bindings()
	require.Len(t, list, 2)
	assert.Equal(t, "quit", list[0].Name)
	assert.Equal(t, terminal.Token("tab"), list[1].Trigger)
}
