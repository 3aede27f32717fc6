package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/opencode-ai/posting/internal/style"
	"github.com/opencode-ai/posting/internal/theme"
)

func init() {
	rootCmd.AddCommand(themesCmd)
	themesCmd.AddCommand(themesListCmd)
	themesCmd.AddCommand(themesShowCmd)
	themesCmd.AddCommand(themesVarsCmd)
	themesCmd.AddCommand(themesCheckCmd)
}

var themesCmd = &cobra.Command{
	Use:     "themes",
	Aliases: []string{"theme"},
	Short:   "Manage themes",
	Long:    "List, inspect, validate and preview builtin and user themes.",
}

type themeSummary struct {
	Name    string `json:"name"`
	Source  string `json:"source"`
	Dark    bool   `json:"dark"`
	Primary string `json:"primary"`
	Active  bool   `json:"active"`
}

var themesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := MustBeJSONLForWatch(); err != nil {
			return err
		}
		registry, loadErrs, err := loadRegistry()
		if err != nil {
			return err
		}
		reportLoadErrors(loadErrs)

		active := currentConfig().Theme
		summaries := make([]themeSummary, 0, registry.Len())
		for _, t := range registry.Themes() {
			summaries = append(summaries, themeSummary{
				Name:    t.Name,
				Source:  t.Source,
				Dark:    t.Palette.Dark,
				Primary: t.Palette.Primary,
				Active:  t.Name == active,
			})
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(out, summaries); err != nil {
				return err
			}
			if watchMode {
				return streamReloads(cmd.Context(), out, true)
			}
			return nil
		}

		rows := make([][]string, 0, len(summaries))
		for _, s := range summaries {
			name := s.Name
			if s.Active {
				name += " *"
			}
			rows = append(rows, []string{name, sourceLabel(s.Source), formatYesNo(s.Dark), s.Primary})
		}
		return writeTable(out, []string{"NAME", "SOURCE", "DARK", "PRIMARY"}, rows)
	},
}

var themesShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Show the resolved styles of a theme",
	Long:  "Show the palette, syntax styles, text area styles and variables a theme resolves to. Defaults to the configured theme.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolveNamed(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, resolved)
		}
		return writeResolved(out, resolved)
	},
}

var themesVarsCmd = &cobra.Command{
	Use:   "vars [name]",
	Short: "Print the style variables of a theme",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolveNamed(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			return WriteOutput(out, resolved.Variables)
		}
		return writeTable(out, []string{"VARIABLE", "VALUE"}, variableRows(resolved.Variables))
	},
}

type checkResult struct {
	Path        string `json:"path"`
	Name        string `json:"name,omitempty"`
	OK          bool   `json:"ok"`
	Error       string `json:"error,omitempty"`
	Author      string `json:"author,omitempty"`
	Description string `json:"description,omitempty"`
	Homepage    string `json:"homepage,omitempty"`
}

var themesCheckCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Validate theme files",
	Long:  "Validate theme files. Without arguments every theme file in the theme directory is checked.",
	RunE: func(cmd *cobra.Command, args []string) error {
		paths := args
		if len(paths) == 0 {
			found, err := themeFiles(currentConfig().ThemeDirectory)
			if err != nil {
				return err
			}
			paths = found
		}

		results := checkThemeFiles(paths, theme.ChromaSyntaxLookup{})

		out := cmd.OutOrStdout()
		if IsJSONOutput() || IsJSONLOutput() {
			if err := WriteOutput(out, results); err != nil {
				return err
			}
		} else {
			if len(results) == 0 {
				fmt.Fprintf(out, "No theme files found in %s\n", currentConfig().ThemeDirectory)
			}
			rows := make([][]string, 0, len(results))
			for _, r := range results {
				detail := r.Error
				if r.OK {
					detail = describeTheme(r)
				}
				rows = append(rows, []string{formatCheckStatus(r.OK), r.Path, r.Name, detail})
			}
			if len(rows) > 0 {
				if err := writeTable(out, []string{"STATUS", "FILE", "NAME", "DETAIL"}, rows); err != nil {
					return err
				}
			}
		}

		failed := 0
		for _, r := range results {
			if !r.OK {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d theme files failed validation", failed, len(results))
		}
		return nil
	},
}

func checkThemeFiles(paths []string, lookup theme.SyntaxLookup) []checkResult {
	results := make([]checkResult, 0, len(paths))
	for _, path := range paths {
		result := checkResult{Path: path}
		t, err := theme.LoadTheme(path)
		if err == nil {
			result.Name = t.Name
			result.Author = t.Author
			result.Description = t.Description
			result.Homepage = t.Homepage
			_, err = theme.Resolve(t, lookup)
		}
		if err != nil {
			result.Error = checkErrorMessage(err)
		} else {
			result.OK = true
		}
		results = append(results, result)
	}
	return results
}

func checkErrorMessage(err error) string {
	msg := err.Error()
	var loadErr *theme.LoadError
	if errors.As(err, &loadErr) {
		msg = loadErr.Err.Error()
	}
	if errors.Is(err, theme.ErrUnknownSyntaxTheme) {
		msg += " (available syntax themes: " + strings.Join(theme.ChromaSyntaxNames(), ", ") + ")"
	}
	return msg
}

func themeFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read theme directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !theme.IsThemeFile(entry.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

func resolveNamed(args []string) (*theme.Resolved, error) {
	registry, loadErrs, err := loadRegistry()
	if err != nil {
		return nil, err
	}
	reportLoadErrors(loadErrs)

	if len(args) == 1 {
		return registry.Lookup(args[0])
	}

	name := currentConfig().Theme
	resolved, ok := registry.Fallback(name)
	if resolved == nil {
		return nil, fmt.Errorf("%w: %q", theme.ErrThemeNotFound, name)
	}
	if !ok {
		warnf("theme %q not found, using %s", name, resolved.Name)
		logger := cliLogger()
		logger.Warn().Str("theme", name).Str("fallback", resolved.Name).Msg("configured theme not found")
	}
	return resolved, nil
}

func reportLoadErrors(errs theme.LoadErrors) {
	for _, e := range errs {
		warnf("skipped %s: %v", e.Path, e.Err)
	}
}

func writeResolved(out io.Writer, r *theme.Resolved) error {
	p := r.Palette
	fmt.Fprintf(out, "%s (%s)\n\n", r.Name, sourceLabel(r.Source))

	palette := [][]string{
		{"primary", p.Primary},
		{"secondary", p.Secondary},
		{"accent", p.Accent},
		{"background", p.Background},
		{"surface", p.Surface},
		{"panel", p.Panel},
		{"success", p.Success},
		{"warning", p.Warning},
		{"error", p.Error},
		{"dark", formatYesNo(p.Dark)},
	}
	if err := writeTable(out, []string{"PALETTE", "VALUE"}, palette); err != nil {
		return err
	}

	fmt.Fprintln(out)
	syntax := make([][]string, 0, len(theme.SyntaxKeys))
	for _, key := range theme.SyntaxKeys {
		syntax = append(syntax, []string{string(key), r.Syntax[key].String()})
	}
	if err := writeTable(out, []string{"SYNTAX", "STYLE"}, syntax); err != nil {
		return err
	}

	fmt.Fprintln(out)
	ta := r.TextArea
	textArea := [][]string{
		{"gutter", styleString(ta.Gutter)},
		{"cursor", styleString(ta.Cursor)},
		{"cursor_line", styleString(ta.CursorLine)},
		{"cursor_line_gutter", styleString(ta.CursorLineGutter)},
		{"matched_bracket", styleString(ta.MatchedBracket)},
		{"selection", styleString(ta.Selection)},
	}
	if err := writeTable(out, []string{"TEXT AREA " + ta.Name, "STYLE"}, textArea); err != nil {
		return err
	}

	fmt.Fprintln(out)
	return writeTable(out, []string{"VARIABLE", "VALUE"}, variableRows(r.Variables))
}

func variableRows(vars map[string]string) [][]string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, []string{k, vars[k]})
	}
	return rows
}

func styleString(st *style.Style) string {
	if st == nil || st.IsZero() {
		return ""
	}
	return st.String()
}

func sourceLabel(source string) string {
	switch source {
	case theme.SourceBuiltin, "":
		return theme.SourceBuiltin
	default:
		return "user " + source
	}
}

func describeTheme(r checkResult) string {
	parts := make([]string, 0, 3)
	if r.Description != "" {
		parts = append(parts, r.Description)
	}
	if r.Author != "" {
		parts = append(parts, "by "+r.Author)
	}
	if r.Homepage != "" {
		parts = append(parts, r.Homepage)
	}
	return strings.Join(parts, " ")
}
