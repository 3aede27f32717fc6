// Package cli implements the posting command line.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/opencode-ai/posting/internal/config"
	"github.com/opencode-ai/posting/internal/logging"
	"github.com/opencode-ai/posting/internal/theme"
)

var (
	configPath     string
	themeDirFlag   string
	logLevelFlag   string
	jsonOutput     bool
	jsonlOutput    bool
	noProgress     bool
	nonInteractive bool

	appConfig *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "posting",
	Short: "Manage posting themes",
	Long: `posting is a terminal HTTP client. These commands list, inspect, validate
and preview its themes.

Themes are YAML files in the theme directory. User themes are merged over the
builtin ones; a user theme with the same name as a builtin replaces it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default $XDG_CONFIG_HOME/posting/config.yaml)")
	flags.StringVar(&themeDirFlag, "theme-dir", "", "theme directory (overrides theme_directory)")
	flags.StringVar(&logLevelFlag, "log-level", "", "log level: trace, debug, info, warn, error")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never start interactive views")
}

// SetBuildInfo records the version information reported by --version.
func SetBuildInfo(version, date, commit string) {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version, commit, date)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func initConfig() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dir := strings.TrimSpace(themeDirFlag); dir != "" {
		cfg.ThemeDirectory = dir
	}
	if level := strings.TrimSpace(logLevelFlag); level != "" {
		cfg.Logging.Level = level
	}

	if err := logging.Init(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	}); err != nil {
		return err
	}

	appConfig = cfg
	logger := logging.Component("cli")
	logger.Debug().
		Str("config", cfg.Path).
		Str("theme_dir", cfg.ThemeDirectory).
		Msg("configuration loaded")
	return nil
}

// GetConfig returns the loaded configuration, or nil before a command ran.
func GetConfig() *config.Config {
	return appConfig
}

func currentConfig() *config.Config {
	if cfg := GetConfig(); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

func newLoader() *theme.Loader {
	return theme.NewLoader(logging.Component("themes"))
}

// loadRegistry builds the registry for the configured theme directory.
// Invalid user theme files are logged and reported through the second
// return value; they never prevent the registry from loading.
func loadRegistry() (*theme.Registry, theme.LoadErrors, error) {
	cfg := currentConfig()
	progress := startProgress("Loading themes")

	registry, err := newLoader().Build(cfg.ThemeDirectory)
	if registry == nil {
		progress.Fail(err)
		return nil, nil, err
	}

	var loadErrs theme.LoadErrors
	if err != nil && !errors.As(err, &loadErrs) {
		progress.Fail(err)
		return nil, nil, err
	}
	notes := []string{fmt.Sprintf("%d themes", registry.Len())}
	if len(loadErrs) > 0 {
		notes = append(notes, fmt.Sprintf("%d skipped", len(loadErrs)))
	}
	progress.Done(notes...)
	return registry, loadErrs, nil
}

func cliLogger() zerolog.Logger {
	return logging.Component("cli")
}

func warnf(format string, args ...any) {
	if IsJSONOutput() || IsJSONLOutput() {
		return
	}
	fmt.Fprintf(os.Stderr, colorize("warning: ", colorYellow)+format+"\n", args...)
}
