package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/posting/internal/tui/styles"
)

func TestEmptyStateRender(t *testing.T) {
	styleSet := styles.DefaultStyles()

	tests := []struct {
		name     string
		state    EmptyState
		expected []string
	}{
		{
			name:     "title only",
			state:    EmptyState{Title: "No themes"},
			expected: []string{"No themes"},
		},
		{
			name:     "icon and subtitle",
			state:    EmptyState{Icon: "🎨", Title: "No themes", Subtitle: "Add one"},
			expected: []string{"🎨", "No themes", "Add one"},
		},
		{
			name: "suggestions",
			state: EmptyState{
				Title:       "No themes",
				Suggestions: []Suggestion{{Command: "posting init", Description: "set up"}},
			},
			expected: []string{"Get started:", "posting init", "set up"},
		},
		{
			name:     "user themes with dir",
			state:    EmptyUserThemes("/home/me/themes"),
			expected: []string{"No user themes", "/home/me/themes", "posting init", "themes export"},
		},
		{
			name:     "user themes without dir",
			state:    EmptyUserThemes(""),
			expected: []string{"your theme directory", "posting themes check"},
		},
		{
			name:     "filtered",
			state:    EmptyThemesFiltered("neon"),
			expected: []string{"'neon'", "Press /"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.state.Render(styleSet, 0)
			for _, want := range tt.expected {
				require.Contains(t, out, want)
			}
		})
	}
}

func TestEmptyStateRenderWraps(t *testing.T) {
	out := EmptyUserThemes("/a/rather/long/theme/directory/path").Render(styles.DefaultStyles(), 24)
	require.LessOrEqual(t, lipgloss.Width(out), 24)
}

func TestEmptyStateRenderCompact(t *testing.T) {
	styleSet := styles.DefaultStyles()

	out := EmptyState{Icon: "🔍", Title: "No results"}.RenderCompact(styleSet)
	require.Contains(t, out, "🔍 No results")
	require.NotContains(t, out, "Try:")

	out = EmptyUserThemes("").RenderCompact(styleSet)
	require.Contains(t, out, "Try: posting init")
}
