package cli

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/posting/internal/theme"
)

const oceanTheme = `name: ocean
description: Calm blues.
author: tester
primary: "#0077be"
dark: false
`

func TestThemesListJSON(t *testing.T) {
	dir := t.TempDir()
	writeTestTheme(t, dir, "ocean.yaml", oceanTheme)
	cfg := writeTestConfig(t, dir)

	out, err := executeCommand(t, "--config", cfg, "--json", "themes", "list")
	require.NoError(t, err)

	var summaries []themeSummary
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 7)

	byName := map[string]themeSummary{}
	for _, s := range summaries {
		byName[s.Name] = s
	}
	assert.True(t, byName["galaxy"].Active)
	assert.Equal(t, theme.SourceBuiltin, byName["galaxy"].Source)
	assert.Equal(t, "ocean", summaries[len(summaries)-1].Name)
	assert.False(t, byName["ocean"].Dark)
	assert.Equal(t, filepath.Join(dir, "ocean.yaml"), byName["ocean"].Source)
}

func TestThemesListTable(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	out, err := executeCommand(t, "--config", cfg, "themes", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "galaxy *")
	assert.Contains(t, out, "hacker")
}

func TestThemesListWatchRequiresJSONL(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	_, err := executeCommand(t, "--config", cfg, "themes", "list", "--watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--jsonl")
}

func TestThemesShow(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	out, err := executeCommand(t, "--config", cfg, "--json", "themes", "show", "hacker")
	require.NoError(t, err)

	var resolved theme.Resolved
	require.NoError(t, json.Unmarshal([]byte(out), &resolved))
	assert.Equal(t, "hacker", resolved.Name)
	assert.NotEmpty(t, resolved.Variables)

	_, err = executeCommand(t, "--config", cfg, "themes", "show", "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, theme.ErrThemeNotFound))
}

func TestThemesShowTable(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	out, err := executeCommand(t, "--config", cfg, "themes", "show")
	require.NoError(t, err)
	for _, want := range []string{"galaxy (builtin)", "PALETTE", "SYNTAX", "key-label", "TEXT AREA", "VARIABLE"} {
		assert.Contains(t, out, want)
	}
}

func TestThemesVars(t *testing.T) {
	dir := t.TempDir()
	writeTestTheme(t, dir, "ocean.yaml", oceanTheme)
	cfg := writeTestConfig(t, dir)

	out, err := executeCommand(t, "--config", cfg, "themes", "vars", "ocean")
	require.NoError(t, err)
	assert.Contains(t, out, "url-separator")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Greater(t, len(lines), 1)
	assert.True(t, strings.HasPrefix(lines[0], "VARIABLE"))
}

func TestThemesCheck(t *testing.T) {
	dir := t.TempDir()
	good := writeTestTheme(t, dir, "ocean.yaml", oceanTheme)
	bad := writeTestTheme(t, dir, "broken.yaml", "name: broken\nprimary: notacolor\n")
	cfg := writeTestConfig(t, dir)

	out, err := executeCommand(t, "--config", cfg, "themes", "check", good)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
	assert.Contains(t, out, "Calm blues. by tester")

	out, err = executeCommand(t, "--config", cfg, "themes", "check")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, out, "ERR")

	out, err = executeCommand(t, "--config", cfg, "--json", "themes", "check", bad)
	require.Error(t, err)
	var results []checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, bad, results[0].Path)
	assert.False(t, results[0].OK)
	assert.Contains(t, results[0].Error, "notacolor")
}

func TestTableCell(t *testing.T) {
	assert.Equal(t, "-", tableCell("  "))
	assert.Equal(t, "a b", tableCell("a\nb"))
	long := tableCell(strings.Repeat("x", maxCellWidth+10))
	assert.Len(t, long, maxCellWidth)
	assert.True(t, strings.HasSuffix(long, "..."))
}

func TestCheckThemeFilesUnknownSyntax(t *testing.T) {
	dir := t.TempDir()
	path := writeTestTheme(t, dir, "odd.yaml", "name: odd\nprimary: red\nsyntax: no-such-style\n")

	results := checkThemeFiles([]string{path}, theme.ChromaSyntaxLookup{})
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Equal(t, "odd", results[0].Name)
	assert.Contains(t, results[0].Error, "no-such-style")
	assert.Contains(t, results[0].Error, "available syntax themes:")
	assert.Contains(t, results[0].Error, "monokai")
	assert.Contains(t, results[0].Error, "github_light")
}

func TestCheckThemeFilesSyntaxAlias(t *testing.T) {
	dir := t.TempDir()
	path := writeTestTheme(t, dir, "vs.yaml", "name: vs\nprimary: red\nsyntax: vscode_dark\n")

	results := checkThemeFiles([]string{path}, theme.ChromaSyntaxLookup{})
	require.Len(t, results, 1)
	assert.True(t, results[0].OK, results[0].Error)
	assert.Empty(t, results[0].Error)
}

func TestCheckThemeFilesBadColorHasNoSyntaxHint(t *testing.T) {
	dir := t.TempDir()
	path := writeTestTheme(t, dir, "bad.yaml", "name: bad\nprimary: \"#12345z\"\n")

	results := checkThemeFiles([]string{path}, theme.ChromaSyntaxLookup{})
	require.Len(t, results, 1)
	assert.False(t, results[0].OK)
	assert.Contains(t, results[0].Error, "primary")
	assert.NotContains(t, results[0].Error, "available syntax themes")
}

func TestThemeFilesMissingDir(t *testing.T) {
	paths, err := themeFiles(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestFindThemeDescriptorPrefersUser(t *testing.T) {
	resetFlags(t)
	dir := t.TempDir()
	writeTestTheme(t, dir, "galaxy.yaml", "name: galaxy\nprimary: \"#123456\"\n")

	found, err := findThemeDescriptor("galaxy", dir)
	require.NoError(t, err)
	assert.Equal(t, "#123456", found.Primary)
	assert.Equal(t, filepath.Join(dir, "galaxy.yaml"), found.Source)

	found, err = findThemeDescriptor("nebula", dir)
	require.NoError(t, err)
	assert.Equal(t, theme.SourceBuiltin, found.Source)

	_, err = findThemeDescriptor("missing", dir)
	assert.ErrorIs(t, err, theme.ErrThemeNotFound)
}

func TestThemesExport(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())
	target := filepath.Join(t.TempDir(), "exported", "mine.yaml")

	out, err := executeCommand(t, "--config", cfg, "themes", "export", "nebula", "-o", target)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported nebula")

	exported, err := theme.LoadTheme(target)
	require.NoError(t, err)
	builtins, err := theme.LoadBuiltinThemes()
	require.NoError(t, err)
	for _, b := range builtins {
		if b.Name == "nebula" {
			exported.Source = b.Source
			assert.Equal(t, b, exported)
		}
	}

	_, err = executeCommand(t, "--config", cfg, "themes", "export", "nebula", "-o", filepath.Join(t.TempDir(), "mine.txt"))
	require.Error(t, err)
}

func TestThemesExportStdout(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	out, err := executeCommand(t, "--config", cfg, "themes", "export", "hacker")
	require.NoError(t, err)

	parsed, err := theme.Parse([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, "hacker", parsed.Name)
}

func TestThemesPreviewNonInteractive(t *testing.T) {
	cfg := writeTestConfig(t, t.TempDir())

	_, err := executeCommand(t, "--config", cfg, "--non-interactive", "themes", "preview")
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)
	assert.Contains(t, preflight.Error(), "posting themes show galaxy")
}

func TestSourceLabel(t *testing.T) {
	assert.Equal(t, "builtin", sourceLabel(theme.SourceBuiltin))
	assert.Equal(t, "builtin", sourceLabel(""))
	assert.Equal(t, "user /tmp/x.yaml", sourceLabel("/tmp/x.yaml"))
}

func TestConfigFlagOverrides(t *testing.T) {
	dir := t.TempDir()
	other := t.TempDir()
	writeTestTheme(t, other, "ocean.yaml", oceanTheme)
	cfg := writeTestConfig(t, dir)

	_, err := executeCommand(t, "--config", cfg, "--theme-dir", other, "--log-level", "debug", "--json", "themes", "vars", "ocean")
	require.NoError(t, err)

	_, err = executeCommand(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "themes", "list")
	require.Error(t, err)

	if _, statErr := os.Stat(cfg); statErr != nil {
		t.Fatalf("config file disappeared: %v", statErr)
	}
}
