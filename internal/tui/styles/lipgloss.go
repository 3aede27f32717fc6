package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/posting/internal/style"
	"github.com/opencode-ai/posting/internal/theme"
)

// Methods lists the HTTP methods that get a badge style, in display order.
var Methods = []string{"get", "post", "put", "delete", "patch", "options", "head"}

// Styles contains lipgloss styles derived from a resolved theme.
type Styles struct {
	Theme     Theme
	Title     lipgloss.Style
	Text      lipgloss.Style
	Muted     lipgloss.Style
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Accent    lipgloss.Style
	Panel     lipgloss.Style
	Border    lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style

	URLBase      lipgloss.Style
	URLProtocol  lipgloss.Style
	URLSeparator lipgloss.Style

	VariableResolved   lipgloss.Style
	VariableUnresolved lipgloss.Style

	Methods  map[string]lipgloss.Style
	Syntax   map[theme.SyntaxKey]lipgloss.Style
	TextArea TextArea
}

// TextArea holds the styles of a text editing area.
type TextArea struct {
	Gutter           lipgloss.Style
	Cursor           lipgloss.Style
	CursorLine       lipgloss.Style
	CursorLineGutter lipgloss.Style
	MatchedBracket   lipgloss.Style
	Selection        lipgloss.Style
}

// DefaultStyles builds styles from the builtin default theme.
func DefaultStyles() Styles {
	r, _ := theme.MustBuiltin().Get(theme.DefaultThemeName)
	return BuildStyles(r)
}

// BuildStyles converts a resolved theme into lipgloss styles. Values the
// theme leaves unset fall back to the dark or light palette.
func BuildStyles(r *theme.Resolved) Styles {
	if r == nil {
		return buildBase(DarkTheme)
	}

	s := buildBase(FromPalette(r.Name, r.Palette))
	vars := r.Variables

	s.URLBase = variableStyle(vars, "url-base", s.Text)
	s.URLProtocol = variableStyle(vars, "url-protocol", s.Accent)
	s.URLSeparator = variableStyle(vars, "url-separator", s.Muted)
	s.VariableResolved = variableStyle(vars, "variable-resolved", s.Success)
	s.VariableUnresolved = variableStyle(vars, "variable-unresolved", s.Error)

	defaults := map[string]string{
		"get":     theme.DefaultMethodStyles.Get,
		"post":    theme.DefaultMethodStyles.Post,
		"put":     theme.DefaultMethodStyles.Put,
		"delete":  theme.DefaultMethodStyles.Delete,
		"patch":   theme.DefaultMethodStyles.Patch,
		"options": theme.DefaultMethodStyles.Options,
		"head":    theme.DefaultMethodStyles.Head,
	}
	s.Methods = make(map[string]lipgloss.Style, len(Methods))
	for _, m := range Methods {
		fallback := style.MustParse(defaults[m]).Lipgloss()
		s.Methods[m] = variableStyle(vars, "method-"+m, fallback).Bold(true)
	}

	s.Syntax = make(map[theme.SyntaxKey]lipgloss.Style, len(theme.SyntaxKeys))
	for _, key := range theme.SyntaxKeys {
		if st, ok := r.Syntax[key]; ok {
			s.Syntax[key] = st.Lipgloss()
			continue
		}
		s.Syntax[key] = s.Text
	}

	tokens := s.Theme.Tokens
	ta := r.TextArea
	s.TextArea = TextArea{
		Gutter:           slot(ta.Gutter, s.Muted),
		Cursor:           slot(ta.Cursor, lipgloss.NewStyle().Reverse(true)),
		CursorLine:       slot(ta.CursorLine, lipgloss.NewStyle().Background(style.TerminalColor(tokens.Surface))),
		CursorLineGutter: slot(ta.CursorLineGutter, s.Muted.Background(style.TerminalColor(tokens.Surface))),
		MatchedBracket:   slot(ta.MatchedBracket, s.Accent.Bold(true)),
		Selection:        slot(ta.Selection, lipgloss.NewStyle().Background(style.TerminalColor(tokens.Panel))),
	}

	return s
}

func buildBase(t Theme) Styles {
	tokens := t.Tokens
	color := style.TerminalColor

	return Styles{
		Theme:     t,
		Title:     lipgloss.NewStyle().Foreground(color(tokens.Primary)).Bold(true),
		Text:      lipgloss.NewStyle().Foreground(color(tokens.Text)),
		Muted:     lipgloss.NewStyle().Foreground(color(tokens.TextMuted)),
		Primary:   lipgloss.NewStyle().Foreground(color(tokens.Primary)),
		Secondary: lipgloss.NewStyle().Foreground(color(tokens.Secondary)),
		Accent:    lipgloss.NewStyle().Foreground(color(tokens.Accent)),
		Panel:     lipgloss.NewStyle().Foreground(color(tokens.Text)).Background(color(tokens.Panel)).BorderStyle(lipgloss.RoundedBorder()).BorderForeground(color(tokens.Border)),
		Border:    lipgloss.NewStyle().Foreground(color(tokens.Border)),
		Success:   lipgloss.NewStyle().Foreground(color(tokens.Success)),
		Warning:   lipgloss.NewStyle().Foreground(color(tokens.Warning)),
		Error:     lipgloss.NewStyle().Foreground(color(tokens.Error)),
	}
}

func variableStyle(vars map[string]string, key string, fallback lipgloss.Style) lipgloss.Style {
	def := strings.TrimSpace(vars[key])
	if def == "" {
		return fallback
	}
	st, err := style.Parse(def)
	if err != nil {
		return fallback
	}
	return st.Lipgloss()
}

func slot(st *style.Style, fallback lipgloss.Style) lipgloss.Style {
	if st == nil {
		return fallback
	}
	return st.Lipgloss()
}
