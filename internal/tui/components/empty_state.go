// Package components renders the pieces of the theme previewer.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/posting/internal/tui/styles"
)

// EmptyState is shown in place of a list that has nothing to show.
type EmptyState struct {
	Icon        string
	Title       string
	Subtitle    string
	Suggestions []Suggestion
}

// Suggestion is a command the user can run to fill the list.
type Suggestion struct {
	Command     string
	Description string
}

// Render renders the full empty state. Lines are wrapped to width when
// width is positive.
func (e EmptyState) Render(styleSet styles.Styles, width int) string {
	block := lipgloss.NewStyle()
	if width > 0 {
		block = block.Width(width)
	}

	lines := []string{styleSet.Muted.Render(e.heading())}
	if e.Subtitle != "" {
		lines = append(lines, styleSet.Muted.Render(e.Subtitle))
	}
	if len(e.Suggestions) > 0 {
		lines = append(lines, "", styleSet.Text.Render("Get started:"))
		for _, s := range e.Suggestions {
			line := "  " + styleSet.Accent.Render(s.Command)
			if s.Description != "" {
				line += styleSet.Muted.Render("  " + s.Description)
			}
			lines = append(lines, line)
		}
	}
	return block.Render(strings.Join(lines, "\n"))
}

// RenderCompact renders the heading and the first suggestion on one line.
func (e EmptyState) RenderCompact(styleSet styles.Styles) string {
	line := e.heading()
	if len(e.Suggestions) > 0 {
		line += fmt.Sprintf(" Try: %s", e.Suggestions[0].Command)
	}
	return styleSet.Muted.Render(line)
}

func (e EmptyState) heading() string {
	if e.Icon == "" {
		return e.Title
	}
	return e.Icon + " " + e.Title
}

// EmptyUserThemes is shown while the theme directory holds no themes.
func EmptyUserThemes(dir string) EmptyState {
	subtitle := "Drop .yaml theme files into your theme directory."
	if dir != "" {
		subtitle = fmt.Sprintf("Drop .yaml theme files into %s.", dir)
	}
	return EmptyState{
		Icon:     "🎨",
		Title:    "No user themes yet",
		Subtitle: subtitle,
		Suggestions: []Suggestion{
			{Command: "posting init", Description: "create the config file and theme directory"},
			{Command: "posting themes export galaxy -o mine.yaml", Description: "start from a builtin"},
			{Command: "posting themes check", Description: "validate your theme files"},
		},
	}
}

// EmptyThemesFiltered is shown when the picker filter matches nothing.
func EmptyThemesFiltered(filter string) EmptyState {
	return EmptyState{
		Icon:     "🔍",
		Title:    fmt.Sprintf("No themes match '%s'", filter),
		Subtitle: "Press / to edit or clear the filter.",
	}
}
