package keymap

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/ui/keybind"
	"github.com/dcrosta/dtk-sub000/pkg/ui/terminal"
)

const sample = `
[global]
quit = "C-q"
help = ["f1", "?"]

[dialog]
confirm = ["Return", "y"]
`

func TestParse(t *testing.T) {
	km, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, []terminal.Token{"ctrl-q"}, km.Section("global")["quit"])
	assert.Equal(t, []terminal.Token{terminal.KeyF1, "?"}, km.Section("global")["help"])
	assert.Equal(t, []terminal.Token{terminal.KeyEnter, "y"}, km.Section("dialog")["confirm"])
	assert.Nil(t, km.Section("missing"))
}

func TestParse_Space(t *testing.T) {
	km, err := Parse([]byte("[global]\npress = \" \"\nboth = [\" \", \"enter\"]"))
	require.NoError(t, err)

	assert.Equal(t, []terminal.Token{terminal.KeySpace}, km.Section("global")["press"])
	assert.Equal(t, []terminal.Token{terminal.KeySpace, terminal.KeyEnter}, km.Section("global")["both"])
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"syntax":          "[global\nquit = 1",
		"number":          "[global]\nquit = 1",
		"mixed":           "[global]\nquit = [\"q\", 2]",
		"reserved":        "[global]\nquit = \"all\"",
		"empty":           "[global]\nquit = \"\"",
		"top level":       "quit = \"q\"",
		"array of tables": "[global]\nquit = \"q\"\n[[dialog]]\nok = \"y\"",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeKeymapInvalid), "err = %v", err)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	km, err := Load(filepath.Join(dir, "missing.toml"))
	require.NoError(t, err)
	assert.Empty(t, km.Sections)

	path := filepath.Join(dir, "keys.toml")
	require.NoError(t, os.WriteFile(path, []byte("[global]\nquit = 3"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	e, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, path, e.Context["path"])
	assert.Equal(t, "quit", e.Context["action"])
}

func TestApply_ReplacesNamedDefaults(t *testing.T) {
	var fired []string
	reg := NewRegistry()
	reg.Register("quit", func(keybind.Args) { fired = append(fired, "quit") }, nil)
	reg.Register("help", func(keybind.Args) { fired = append(fired, "help") }, nil)

	table := keybind.NewTable()
	require.NoError(t, reg.Bind(table, "quit", "q"))
	table.Bind("x", func(keybind.Args) { fired = append(fired, "x") }, nil)

	km, err := Parse([]byte(sample))
	require.NoError(t, err)
	n, err := km.Apply("global", table, reg)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.False(t, table.Dispatch("q", nil), "replaced default should be unbound")
	assert.True(t, table.Dispatch("ctrl-q", nil))
	assert.True(t, table.Dispatch("?", nil))
	assert.True(t, table.Dispatch("x", nil), "unnamed bindings survive")
	assert.Equal(t, []string{"quit", "help", "x"}, fired)

	b, ok := table.Lookup(terminal.KeyF1)
	require.True(t, ok)
	assert.Equal(t, "help", b.Name)
}

func TestApply_UnknownActionBindsNothing(t *testing.T) {
	reg := NewRegistry()
	reg.Register("confirm", func(keybind.Args) {}, nil)

	km, err := Parse([]byte("[dialog]\nconfirm = \"y\"\ncancel = \"n\"\n"))
	require.NoError(t, err)

	table := keybind.NewTable()
	_, err = km.Apply("dialog", table, reg)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrCodeKeymapInvalid))
	assert.Equal(t, 0, table.Len())
}

func TestRegistry_OptionsCarried(t *testing.T) {
	var got keybind.Args
	reg := NewRegistry()
	reg.Register("insert", func(a keybind.Args) { got = a }, keybind.Args{"mode": "overwrite"}, keybind.WithToken())

	table := keybind.NewTable()
	require.NoError(t, reg.Bind(table, "insert", "i"))
	require.True(t, table.Dispatch("i", nil))
	assert.Equal(t, terminal.Token("i"), got.Key())
	assert.Equal(t, "overwrite", got["mode"])

	assert.Error(t, reg.Bind(table, "nope", "n"))
	assert.Equal(t, []string{"insert"}, reg.Names())
}

func TestApplyAllAndExport(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"quit", "help", "confirm"} {
		reg.Register(name, func(keybind.Args) {}, nil)
	}
	tables := map[string]*keybind.Table{
		"global": keybind.NewTable(),
		"dialog": keybind.NewTable(),
	}

	km, err := Parse([]byte(sample))
	require.NoError(t, err)
	n, err := km.ApplyAll(tables, reg)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, tables))

	round, err := Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []terminal.Token{terminal.KeyEnter, "y"}, round.Section("dialog")["confirm"])
	assert.ElementsMatch(t, []terminal.Token{terminal.KeyF1, "?"}, round.Section("global")["help"])
}
