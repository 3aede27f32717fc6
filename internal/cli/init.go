package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/posting/internal/config"
	"github.com/opencode-ai/posting/internal/theme"
)

var initForce bool

// configDirFunc and themeDirFunc are replaced in tests.
var (
	configDirFunc = defaultConfigDir
	themeDirFunc  = func() string { return currentConfig().ThemeDirectory }
)

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and theme directory",
	Long: `Create a config file, the user theme directory and an example theme.
Existing files are left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		results := []initResult{
			createConfigFile(),
			createThemeDirectory(),
			createSampleTheme(),
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(out, results); err != nil {
				return err
			}
		} else {
			for _, r := range results {
				fmt.Fprintf(out, "%s %s: %s\n", formatInitStatus(r.Status), r.Name, r.Message)
			}
		}

		for _, r := range results {
			if r.Status == "failed" {
				return fmt.Errorf("init failed: %s", r.Name)
			}
		}
		return nil
	},
}

type initResult struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // done, skipped, failed
	Message string `json:"message"`
}

func defaultConfigDir() string {
	return filepath.Dir(config.DefaultPath())
}

func createConfigFile() initResult {
	result := initResult{Name: "Config file"}
	dir := configDirFunc()
	path := filepath.Join(dir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		result.Status = "skipped"
		result.Message = fmt.Sprintf("%s already exists (use --force to overwrite)", path)
		return result
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.Status = "failed"
		result.Message = fmt.Sprintf("create %s: %v", dir, err)
		return result
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o644); err != nil {
		result.Status = "failed"
		result.Message = fmt.Sprintf("write %s: %v", path, err)
		return result
	}

	result.Status = "done"
	result.Message = path
	return result
}

func createThemeDirectory() initResult {
	result := initResult{Name: "Theme directory"}
	dir := themeDirFunc()

	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		result.Status = "skipped"
		result.Message = fmt.Sprintf("%s already exists", dir)
		return result
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		result.Status = "failed"
		result.Message = fmt.Sprintf("create %s: %v", dir, err)
		return result
	}

	result.Status = "done"
	result.Message = dir
	return result
}

func createSampleTheme() initResult {
	result := initResult{Name: "Example theme"}
	path := filepath.Join(themeDirFunc(), "example.yaml")

	if _, err := os.Stat(path); err == nil && !initForce {
		result.Status = "skipped"
		result.Message = fmt.Sprintf("%s already exists", path)
		return result
	}
	if _, err := theme.Parse([]byte(sampleTheme)); err != nil {
		result.Status = "failed"
		result.Message = fmt.Sprintf("example theme is invalid: %v", err)
		return result
	}
	if err := os.WriteFile(path, []byte(sampleTheme), 0o644); err != nil {
		result.Status = "failed"
		result.Message = fmt.Sprintf("write %s: %v", path, err)
		return result
	}

	result.Status = "done"
	result.Message = path
	return result
}

func formatInitStatus(status string) string {
	switch status {
	case "done":
		return colorize("OK  ", colorGreen)
	case "skipped":
		return colorize("SKIP", colorCyan)
	default:
		return colorize("ERR ", colorRed)
	}
}

const configTemplate = `# Posting Configuration File
#
# Every setting can also be set through the environment, for example
# POSTING_THEME=nebula or POSTING_LOGGING_LEVEL=debug.

# Name of the active theme. Unknown names fall back to galaxy.
theme: galaxy

# Directory scanned for user theme files (*.yaml, *.yml).
# theme_directory: ~/.local/share/posting/themes

# Reload themes while the preview is open when files in theme_directory change.
watch_themes: true

logging:
  # trace, debug, info, warn, error
  level: warn
  # console or json
  format: console
`

const sampleTheme = `name: example
description: A starting point for your own theme.
author: you
primary: "#4b9cd3"
secondary: "#7aa2f7"
accent: "#f7768e"
success: "#9ece6a"
warning: "#e0af68"
error: "#f7768e"
background: "#1a1b26"
surface: "#24283b"
panel: "#2f3549"
dark: true

# syntax may be "posting", the name of a syntax theme such as "monokai",
# or a set of styles:
syntax:
  json_key: "bold #7aa2f7"
  json_string: "#9ece6a"
  json_number: "#ff9e64"
  json_boolean: "#bb9af7"
  json_null: "dim #565f89"

text_area:
  cursor: "reverse"
  cursor_line: "on #292e42"
  selection: "on #33467c"

url:
  base: "#7aa2f7"
  protocol: "dim"
  separator: "dim"

variable:
  resolved: "#9ece6a"
  unresolved: "#f7768e"

method:
  get: "#9ece6a"
  post: "#7aa2f7"
  delete: "#f7768e"
`
