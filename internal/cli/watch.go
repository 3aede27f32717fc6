package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/posting/internal/theme"
)

var watchMode bool

func init() {
	themesCmd.AddCommand(themesWatchCmd)
	themesListCmd.Flags().BoolVar(&watchMode, "watch", false, "stream reload events after listing (requires --jsonl)")
}

// ReloadEvent is written once per theme directory reload.
type ReloadEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Dir       string        `json:"dir"`
	Themes    []string      `json:"themes"`
	Skipped   []SkippedFile `json:"skipped,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// SkippedFile names a theme file left out of a reload.
type SkippedFile struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// StreamConfig configures a ReloadStreamer.
type StreamConfig struct {
	Debounce time.Duration
	// JSONL writes each event as a JSON line instead of a status line.
	JSONL bool
}

// DefaultStreamConfig returns the default stream settings.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		Debounce: theme.DefaultWatchDebounce,
		JSONL:    true,
	}
}

// ReloadStreamer watches the theme directory and writes an event per reload.
type ReloadStreamer struct {
	loader *theme.Loader
	store  *theme.Store
	dir    string
	out    io.Writer
	config StreamConfig

	mu sync.Mutex
}

// NewReloadStreamer creates a streamer publishing reloads of dir to store.
func NewReloadStreamer(loader *theme.Loader, store *theme.Store, dir string, out io.Writer, config StreamConfig) *ReloadStreamer {
	if config.Debounce <= 0 {
		config.Debounce = theme.DefaultWatchDebounce
	}
	return &ReloadStreamer{
		loader: loader,
		store:  store,
		dir:    dir,
		out:    out,
		config: config,
	}
}

// Stream blocks until ctx is cancelled. Cancellation is not an error.
func (s *ReloadStreamer) Stream(ctx context.Context) error {
	watcher := theme.NewWatcher(s.loader, s.store, s.dir, cliLogger(),
		theme.WithDebounce(s.config.Debounce),
		theme.WithReloadHook(func(registry *theme.Registry, err error) {
			if werr := s.writeEvent(newReloadEvent(s.dir, registry, err, time.Now().UTC())); werr != nil {
				logger := cliLogger()
				logger.Warn().Err(werr).Msg("failed to write reload event")
			}
		}),
	)
	return watcher.Run(ctx)
}

func (s *ReloadStreamer) writeEvent(event ReloadEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.JSONL {
		_, err := fmt.Fprintf(s.out, "%s %s\n", event.Timestamp.Local().Format("15:04:05"), formatReloadStatus(event))
		if err != nil {
			return err
		}
		for _, skipped := range event.Skipped {
			if _, err := fmt.Fprintf(s.out, "  skipped %s: %s\n", skipped.Path, skipped.Error); err != nil {
				return err
			}
		}
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	_, err = fmt.Fprintln(s.out, string(data))
	return err
}

func newReloadEvent(dir string, registry *theme.Registry, err error, now time.Time) ReloadEvent {
	event := ReloadEvent{
		Timestamp: now,
		Dir:       dir,
		Themes:    registry.Names(),
	}
	if err == nil {
		return event
	}

	var loadErrs theme.LoadErrors
	if errors.As(err, &loadErrs) {
		for _, e := range loadErrs {
			event.Skipped = append(event.Skipped, SkippedFile{Path: e.Path, Error: e.Err.Error()})
		}
		return event
	}
	event.Error = err.Error()
	return event
}

// MustBeJSONLForWatch rejects --watch without --jsonl.
func MustBeJSONLForWatch() error {
	if watchMode && !IsJSONLOutput() {
		return fmt.Errorf("--watch requires --jsonl")
	}
	return nil
}

var themesWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload themes when the theme directory changes",
	Long: `Watch the theme directory and reload the registry whenever a theme file
changes. One line is written per reload; with --jsonl the line is a JSON event.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return streamReloads(cmd.Context(), cmd.OutOrStdout(), IsJSONLOutput())
	},
}

func streamReloads(ctx context.Context, out io.Writer, jsonl bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	registry, loadErrs, err := loadRegistry()
	if err != nil {
		return err
	}
	reportLoadErrors(loadErrs)

	config := DefaultStreamConfig()
	config.JSONL = jsonl
	streamer := NewReloadStreamer(newLoader(), theme.NewStore(registry), currentConfig().ThemeDirectory, out, config)
	ctx, stop := signalContext(ctx)
	defer stop()
	return streamer.Stream(ctx)
}

func signalContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}
