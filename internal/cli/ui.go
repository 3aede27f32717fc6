package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/opencode-ai/posting/internal/logging"
	"github.com/opencode-ai/posting/internal/theme"
	"github.com/opencode-ai/posting/internal/tui"
)

var previewNoWatch bool

func init() {
	themesCmd.AddCommand(themesPreviewCmd)
	themesPreviewCmd.Flags().BoolVar(&previewNoWatch, "no-watch", false, "do not reload themes when files change")
}

// PreflightError is returned when a command cannot start in the current
// environment.
type PreflightError struct {
	Message  string
	Hint     string
	NextStep string
}

func (e *PreflightError) Error() string {
	parts := []string{e.Message}
	if e.Hint != "" {
		parts = append(parts, "hint: "+e.Hint)
	}
	if e.NextStep != "" {
		parts = append(parts, "try: "+e.NextStep)
	}
	return strings.Join(parts, "\n")
}

var themesPreviewCmd = &cobra.Command{
	Use:   "preview [name]",
	Short: "Preview themes interactively",
	Long:  "Open a terminal view listing every theme with a live preview of URLs, methods, JSON highlighting and the text area.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := currentConfig().Theme
		if len(args) == 1 {
			name = args[0]
		}
		return runPreview(name)
	},
}

func runPreview(name string) error {
	if IsNonInteractive() {
		return &PreflightError{
			Message:  "theme preview requires an interactive terminal",
			Hint:     "Run without --non-interactive and with a TTY, or use the other themes subcommands",
			NextStep: fmt.Sprintf("posting themes show %s", name),
		}
	}

	registry, loadErrs, err := loadRegistry()
	if err != nil {
		return err
	}
	reportLoadErrors(loadErrs)

	cfg := currentConfig()
	return tui.Run(tui.Config{
		Store:    theme.NewStore(registry),
		Loader:   newLoader(),
		Theme:    name,
		ThemeDir: cfg.ThemeDirectory,
		Watch:    cfg.WatchThemes && !previewNoWatch,
		Logger:   logging.Component("tui"),
		Hooks:    tui.DefaultPreviewHooks(),
	})
}

// IsNonInteractive reports whether interactive views must not be started.
func IsNonInteractive() bool {
	if nonInteractive {
		return true
	}
	if _, ok := os.LookupEnv("POSTING_NON_INTERACTIVE"); ok {
		return true
	}
	return !hasTTY()
}

func hasTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
