package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func resetFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		configPath = ""
		themeDirFlag = ""
		logLevelFlag = ""
		jsonOutput = false
		jsonlOutput = false
		noProgress = false
		nonInteractive = false
		watchMode = false
		exportOutput = ""
		initForce = false
		previewNoWatch = false
		appConfig = nil
	}
	reset()
	t.Cleanup(reset)
}

// writeTestConfig writes a config file pointing at themeDir.
func writeTestConfig(t *testing.T, themeDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "theme: galaxy\ntheme_directory: " + themeDir + "\nlogging:\n  level: error\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func writeTestTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write theme: %v", err)
	}
	return path
}

func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(t)

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}
