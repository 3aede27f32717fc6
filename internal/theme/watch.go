package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultWatchDebounce is how long the watcher waits for a burst of file
// events to settle before reloading.
const DefaultWatchDebounce = 250 * time.Millisecond

// Watcher reloads the theme registry when files in the theme directory change.
type Watcher struct {
	loader   *Loader
	store    *Store
	dir      string
	debounce time.Duration
	logger   zerolog.Logger

	// onReload is called after every reload attempt.
	onReload func(*Registry, error)
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce overrides DefaultWatchDebounce.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithReloadHook registers fn to be called after every reload with the
// published registry and the reload error, if any.
func WithReloadHook(fn func(*Registry, error)) WatcherOption {
	return func(w *Watcher) {
		w.onReload = fn
	}
}

// NewWatcher creates a watcher publishing reloads of dir to store.
func NewWatcher(loader *Loader, store *Store, dir string, logger zerolog.Logger, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		loader:   loader,
		store:    store,
		dir:      dir,
		debounce: DefaultWatchDebounce,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches the theme directory until ctx is cancelled. The directory is
// created if it does not exist yet.
func (w *Watcher) Run(ctx context.Context) error {
	if w.loader == nil || w.store == nil {
		return fmt.Errorf("theme watcher needs a loader and a store")
	}
	if w.dir == "" {
		return fmt.Errorf("theme directory is required")
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create theme directory %s: %w", w.dir, err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	w.logger.Info().
		Str("dir", w.dir).
		Dur("debounce", w.debounce).
		Msg("watching theme directory")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			w.logger.Debug().
				Str("path", event.Name).
				Str("op", event.Op.String()).
				Msg("theme file changed")
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Msg("theme watcher error")

		case <-timer.C:
			w.reload()
		}
	}
}

func (w *Watcher) reload() {
	err := w.loader.Reload(w.dir, w.store)
	var loadErrs LoadErrors
	if err != nil && !errors.As(err, &loadErrs) {
		w.logger.Error().Err(err).Str("dir", w.dir).Msg("theme reload failed")
	}
	if w.onReload != nil {
		w.onReload(w.store.Load(), err)
	}
}

func relevant(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	return IsThemeFile(filepath.Base(event.Name))
}
