//go:build unix

package tty

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/dcrosta/dtk-sub000/pkg/ui/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPTY(t *testing.T, rows, cols uint16) (*Backend, io.ReadWriter) {
	t.Helper()
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		tty.Close()
		ptmx.Close()
	})
	require.NoError(t, pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols}))

	b := New(tty, tty)
	require.NoError(t, b.Init())
	t.Cleanup(b.Fini)
	return b, ptmx
}

// readUntil reads from r until want appears or the deadline passes.
func readUntil(t *testing.T, r io.Reader, want string) string {
	t.Helper()
	got := make(chan string, 1)
	go func() {
		var sb strings.Builder
		buf := make([]byte, 1024)
		for {
			n, err := r.Read(buf)
			sb.Write(buf[:n])
			if strings.Contains(sb.String(), want) || err != nil {
				got <- sb.String()
				return
			}
		}
	}()
	select {
	case s := <-got:
		return s
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for %q", want)
		return ""
	}
}

func TestBackend_ExtentAndShow(t *testing.T) {
	b, ptmx := openPTY(t, 10, 40)

	rows, cols := b.Extent()
	assert.Equal(t, 10, rows)
	assert.Equal(t, 40, cols)

	b.DrawText(2, 3, "hello", backend.DefaultStyle())
	b.ShowCursor(2, 8)
	b.Show()

	out := readUntil(t, ptmx, "hello")
	assert.Contains(t, out, "hello")
}

func TestBackend_ReadRawInputCode(t *testing.T) {
	b, ptmx := openPTY(t, 5, 20)

	_, ok := b.ReadRawInputCode(10 * time.Millisecond)
	assert.False(t, ok, "no input yet")

	_, err := ptmx.Write([]byte("qé"))
	require.NoError(t, err)

	code, ok := b.ReadRawInputCode(time.Second)
	require.True(t, ok)
	assert.Equal(t, 'q', rune(code))

	code, ok = b.ReadRawInputCode(time.Second)
	require.True(t, ok)
	assert.Equal(t, 'é', rune(code))
}

func TestBackend_InitRejectsNonTerminal(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	assert.Error(t, New(r, w).Init())
}
