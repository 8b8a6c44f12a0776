package keymap

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcrosta/dtk-sub000/pkg/ui/eventq"
)

func TestWatcher_PostsReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keys.toml")
	require.NoError(t, os.WriteFile(path, []byte("[global]\n"), 0o644))

	q := eventq.New()
	w, err := NewWatcher(path, q, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// unrelated files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.toml"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("[global]\nquit = \"q\"\n"), 0o644))

	waitCtx, waitCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer waitCancel()
	ev, ok := q.DequeueContext(waitCtx)
	require.True(t, ok, "no reload event")
	assert.Equal(t, TypeReload, ev.Type)
	assert.Equal(t, w.Path(), ev.Payload)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope", "keys.toml"), eventq.New(), nil)
	assert.Error(t, err)
}
