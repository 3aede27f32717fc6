package components

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/posting/internal/theme"
	"github.com/opencode-ai/posting/internal/tui/styles"
)

const maxPickerLabel = 60

// ThemePickerItem is one selectable theme.
type ThemePickerItem struct {
	Name   string
	Source string
	Dark   bool
}

// ThemePicker stores state for the theme picker.
type ThemePicker struct {
	Query   string
	Index   int
	Current string
	Items   []ThemePickerItem
}

// NewThemePicker creates a picker listing the themes of registry in
// registry order.
func NewThemePicker(registry *theme.Registry, current string) *ThemePicker {
	p := &ThemePicker{Current: current}
	p.SetRegistry(registry)
	return p
}

// SetRegistry replaces the listed themes and keeps the selection on the
// same name when it still exists.
func (p *ThemePicker) SetRegistry(registry *theme.Registry) {
	selected := ""
	if item := p.SelectedItem(); item != nil {
		selected = item.Name
	}

	themes := registry.Themes()
	p.Items = make([]ThemePickerItem, 0, len(themes))
	for _, t := range themes {
		p.Items = append(p.Items, ThemePickerItem{Name: t.Name, Source: t.Source, Dark: t.Palette.Dark})
	}

	if selected == "" {
		selected = p.Current
	}
	p.Index = 0
	for i, item := range p.filteredItems() {
		if item.Name == selected {
			p.Index = i
			break
		}
	}
	p.ClampIndex()
}

// SetQuery updates the filter and resets the selection.
func (p *ThemePicker) SetQuery(query string) {
	p.Query = query
	p.Index = 0
	p.ClampIndex()
}

// Move shifts the selection, wrapping around at both ends.
func (p *ThemePicker) Move(delta int) {
	items := p.filteredItems()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if delta == 0 {
		return
	}
	idx := p.Index
	if idx < 0 || idx >= len(items) {
		idx = 0
	}
	idx += delta
	if idx < 0 {
		idx = len(items) - 1
	} else if idx >= len(items) {
		idx = 0
	}
	p.Index = idx
}

// ClampIndex ensures the selection index stays in bounds.
func (p *ThemePicker) ClampIndex() {
	items := p.filteredItems()
	if len(items) == 0 {
		p.Index = 0
		return
	}
	if p.Index < 0 {
		p.Index = 0
	}
	if p.Index >= len(items) {
		p.Index = len(items) - 1
	}
}

// SelectedItem returns the highlighted theme.
func (p *ThemePicker) SelectedItem() *ThemePickerItem {
	items := p.filteredItems()
	if p.Index < 0 || p.Index >= len(items) {
		return nil
	}
	selected := items[p.Index]
	return &selected
}

// Render renders the picker lines.
func (p *ThemePicker) Render(styleSet styles.Styles) []string {
	lines := []string{
		styleSet.Title.Render("Themes"),
		styleSet.Text.Render(fmt.Sprintf("> %s", p.Query)),
	}

	items := p.filteredItems()
	if len(items) == 0 {
		return append(lines, EmptyThemesFiltered(p.Query).RenderCompact(styleSet))
	}

	for idx, item := range items {
		label := item.Name
		if item.Source != "" && item.Source != theme.SourceBuiltin {
			label += " (user)"
		}
		if item.Name == p.Current {
			label += " *"
		}
		label = truncate(label, maxPickerLabel)
		if idx == p.Index {
			lines = append(lines, styleSet.Primary.Bold(true).Render("> "+label))
			continue
		}
		lines = append(lines, styleSet.Muted.Render("  "+label))
	}
	return lines
}

func (p *ThemePicker) filteredItems() []ThemePickerItem {
	query := strings.TrimSpace(strings.ToLower(p.Query))
	if query == "" {
		return p.Items
	}
	tokens := strings.Fields(query)
	filtered := make([]ThemePickerItem, 0, len(p.Items))
	for _, item := range p.Items {
		haystack := strings.ToLower(item.Name + " " + item.Source)
		if matchesTokens(haystack, tokens) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func matchesTokens(haystack string, tokens []string) bool {
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

func truncate(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
