package settings

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher keeps a [*Compiled] snapshot of a settings file current.
//
// Each reload compiles a new snapshot and swaps it in atomically; snapshots
// already handed out by [Watcher.Snapshot] are never modified. A reload that
// fails keeps the previous snapshot.
type Watcher struct {
	current  atomic.Pointer[Compiled]
	loader   *Loader
	fsw      *fsnotify.Watcher
	onReload func(*Compiled, error)
	cancel   context.CancelFunc
	path     string
	wg       sync.WaitGroup
}

// WatcherOption configures a [Watcher].
type WatcherOption func(*Watcher)

// WithReloadHook sets a function called after every reload attempt with the
// new snapshot, or with the error that left the previous one in place.
func WithReloadHook(fn func(*Compiled, error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher loads and compiles the settings file at path. It fails if the
// initial load fails.
func NewWatcher(loader *Loader, path string, opts ...WatcherOption) (*Watcher, error) {
	w := &Watcher{
		loader: loader,
		path:   filepath.Clean(path),
	}

	for _, opt := range opts {
		opt(w)
	}

	c, err := loader.LoadCompiled(w.path)
	if err != nil {
		return nil, err
	}

	w.current.Store(c)

	return w, nil
}

// Snapshot returns the current settings snapshot.
func (w *Watcher) Snapshot() *Compiled {
	return w.current.Load()
}

// Reload loads and compiles the settings file, replacing the current
// snapshot on success.
func (w *Watcher) Reload() error {
	c, err := w.loader.LoadCompiled(w.path)
	if err != nil {
		slog.Warn("settings reload failed, keeping previous settings",
			slog.String("path", w.path),
			slog.Any("error", err),
		)
	} else {
		w.current.Store(c)
		slog.Debug("settings reloaded", slog.String("path", w.path))
	}

	if w.onReload != nil {
		w.onReload(c, err)
	}

	return err
}

// Start watches the settings file for changes until ctx is done or
// [Watcher.Close] is called. The containing directory is watched so that
// files replaced by rename are picked up.
func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}

	err = fsw.Add(filepath.Dir(w.path))
	if err != nil {
		_ = fsw.Close()

		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	ctx, cancel := context.WithCancel(ctx)

	w.fsw = fsw
	w.cancel = cancel

	w.wg.Add(1)

	go w.eventLoop(ctx)

	return nil
}

// Close stops watching. It is safe to call without [Watcher.Start].
func (w *Watcher) Close() error {
	if w.fsw == nil {
		return nil
	}

	w.cancel()
	err := w.fsw.Close()
	w.wg.Wait()

	if err != nil {
		return fmt.Errorf("close settings watcher: %w", err)
	}

	return nil
}

func (w *Watcher) eventLoop(ctx context.Context) {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != w.path {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			_ = w.Reload()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}

			slog.Warn("settings watcher", slog.Any("error", err))

		case <-ctx.Done():
			return
		}
	}
}
