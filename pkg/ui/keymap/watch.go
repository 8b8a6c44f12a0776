package keymap

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	apperrors "github.com/dcrosta/dtk-sub000/pkg/errors"
	"github.com/dcrosta/dtk-sub000/pkg/logging"
	"github.com/dcrosta/dtk-sub000/pkg/ui/eventq"
)

// TypeReload is posted when the watched keymap file changes. The payload
// is the file path.
const TypeReload = "reload"

// Watcher posts TypeReload events for one keymap file. The containing
// directory is watched so editors that replace the file are seen.
type Watcher struct {
	path  string
	queue *eventq.Queue
	log   *logging.Logger
	fs    *fsnotify.Watcher
}

func NewWatcher(path string, queue *eventq.Queue, log *logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeKeymapLoad, "failed to resolve keymap path").
			WithContext("path", path)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeKeymapLoad, "failed to create watcher")
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		fs.Close()
		return nil, apperrors.Wrap(err, apperrors.ErrCodeKeymapLoad, "failed to watch keymap directory").
			WithContext("path", abs)
	}
	return &Watcher{path: abs, queue: queue, log: log, fs: fs}, nil
}

func (w *Watcher) Path() string { return w.path }

// Run forwards changes until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.queue.Post(TypeReload, w.path)
			w.log.Debug(logging.CategoryKeymap, "changed", "keymap file changed", map[string]any{
				"path": w.path,
				"op":   ev.Op.String(),
			})
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn(logging.CategoryKeymap, "watch_error", err.Error(), map[string]any{"path": w.path})
		}
	}
}

// Close stops the watcher without waiting for Run.
func (w *Watcher) Close() error {
	return w.fs.Close()
}
