// Package watch rebuilds the selected bundle whenever the source image
// changes on disk.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
)

// debounceDelay coalesces editor save bursts into one rebuild.
const debounceDelay = 500 * time.Millisecond

// Watcher monitors one source file and triggers rebuilds.
type Watcher struct {
	fsw     *fsnotify.Watcher
	path    string
	rebuild func() error
	logger  hclog.Logger
}

// New creates a watcher for the given source path. rebuild is called
// after each settled change.
func New(path string, rebuild func() error, logger hclog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	// Watch the directory: editors commonly replace the file, which
	// drops a watch placed on the file itself.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{fsw: fsw, path: abs, rebuild: rebuild, logger: logger}, nil
}

// Run processes events until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("👀 Watching source", "path", w.path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.logger.Debug("📝 Source event", "op", ev.Op.String())
			pending = time.After(debounceDelay)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("❌ Watcher error", "error", err)

		case <-pending:
			pending = nil
			w.logger.Info("🔁 Source changed, rebuilding")
			if err := w.rebuild(); err != nil {
				w.logger.Error("❌ Rebuild failed", "error", err)
			}
		}
	}
}

// Close releases the underlying fsnotify watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
