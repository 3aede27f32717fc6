package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/posting/internal/tui/styles"
)

// RenderMethodBadge renders an HTTP method with the theme's badge style.
func RenderMethodBadge(styleSet styles.Styles, method string) string {
	label, style := methodDescriptor(styleSet, method)
	return style.Render(label)
}

func methodDescriptor(styleSet styles.Styles, method string) (string, lipgloss.Style) {
	key := strings.ToLower(strings.TrimSpace(method))
	label := strings.ToUpper(key)
	if label == "" {
		label = "GET"
		key = "get"
	}
	if style, ok := styleSet.Methods[key]; ok {
		return label, style
	}
	return label, styleSet.Muted
}
