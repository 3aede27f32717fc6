package cli

import (
	"fmt"
	"strings"
)

func formatCheckStatus(ok bool) string {
	if ok {
		return colorize("OK", colorGreen)
	}
	return colorize("ERR", colorRed)
}

func formatReloadStatus(event ReloadEvent) string {
	label, color := statusLabelForReload(event)
	detail := fmt.Sprintf("%d_themes", len(event.Themes))
	return colorize(formatStatusLabel(label, detail), color)
}

func statusLabelForReload(event ReloadEvent) (string, string) {
	switch {
	case event.Error != "":
		return "ERR", colorRed
	case len(event.Skipped) > 0:
		return "WARN", colorYellow
	default:
		return "OK", colorGreen
	}
}

func formatStatusLabel(label, status string) string {
	normalized := strings.TrimSpace(status)
	if normalized != "" {
		normalized = strings.ReplaceAll(normalized, "_", " ")
	}
	if normalized == "" {
		return label
	}
	return fmt.Sprintf("%s %s", label, normalized)
}
