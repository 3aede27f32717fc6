package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/posting/internal/theme"
)

var exportOutput string

func init() {
	themesCmd.AddCommand(themesExportCmd)
	themesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}

var themesExportCmd = &cobra.Command{
	Use:   "export <name>",
	Short: "Export a theme file",
	Long: `Write the theme file of a builtin or user theme. The output can be copied
into the theme directory and edited to create a new theme.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := findThemeDescriptor(args[0], currentConfig().ThemeDirectory)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			return writeYAML(cmd.OutOrStdout(), t)
		}
		if err := writeThemeFile(exportOutput, t); err != nil {
			return err
		}
		if !IsJSONOutput() && !IsJSONLOutput() {
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %s to %s\n", t.Name, exportOutput)
			return nil
		}
		return WriteOutput(cmd.OutOrStdout(), map[string]string{"name": t.Name, "path": exportOutput})
	},
}

// findThemeDescriptor returns the theme file named name. User themes take
// precedence over builtins, and later user files over earlier ones.
func findThemeDescriptor(name, dir string) (*theme.Theme, error) {
	builtins, err := theme.LoadBuiltinThemes()
	if err != nil {
		return nil, err
	}

	user, err := theme.LoadThemesFromDir(dir)
	var loadErrs theme.LoadErrors
	if err != nil && !errors.As(err, &loadErrs) {
		return nil, err
	}
	reportLoadErrors(loadErrs)

	var found *theme.Theme
	for _, t := range append(builtins, user...) {
		if t.Name == name {
			found = t
		}
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %q", theme.ErrThemeNotFound, name)
	}
	return found, nil
}

func writeThemeFile(path string, t *theme.Theme) error {
	if !theme.IsThemeFile(path) {
		return fmt.Errorf("theme files need a .yaml or .yml extension: %s", path)
	}
	if dir := filepath.Dir(path); strings.TrimSpace(dir) != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := writeYAML(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
