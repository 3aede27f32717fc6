package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/posting/internal/theme"
)

// RegistryReloadedMsg is sent when the theme watcher published a new registry.
type RegistryReloadedMsg struct {
	Registry  *theme.Registry
	Err       error
	Timestamp time.Time
}

// WatchErrorMsg indicates the theme watcher stopped with an error.
type WatchErrorMsg struct {
	Err error
}

// reloadSubscriber bridges the theme watcher to the TUI.
type reloadSubscriber struct {
	program *tea.Program
}

// OnReload forwards a reload to the program.
func (s *reloadSubscriber) OnReload(registry *theme.Registry, err error) {
	if s.program != nil {
		s.program.Send(RegistryReloadedMsg{Registry: registry, Err: err, Timestamp: time.Now()})
	}
}

// WatchThemes returns a command running a watcher over dir that sends a
// RegistryReloadedMsg to program after every reload. The watcher stops
// when ctx is cancelled.
func WatchThemes(ctx context.Context, program *tea.Program, loader *theme.Loader, store *theme.Store, dir string, logger zerolog.Logger) tea.Cmd {
	return func() tea.Msg {
		subscriber := &reloadSubscriber{program: program}
		watcher := theme.NewWatcher(loader, store, dir, logger,
			theme.WithReloadHook(subscriber.OnReload),
		)
		if err := watcher.Run(ctx); err != nil {
			return WatchErrorMsg{Err: err}
		}
		return nil
	}
}
