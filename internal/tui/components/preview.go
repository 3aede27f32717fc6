package components

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/posting/internal/theme"
	"github.com/opencode-ai/posting/internal/tui/styles"
)

var templateVariable = regexp.MustCompile(`\$\{?([A-Za-z_][A-Za-z0-9_]*)\}?`)

// RenderURL renders a URL with its protocol, separators and base styled
// separately. Variable references are checked against vars.
func RenderURL(styleSet styles.Styles, url string, vars map[string]string) string {
	var b strings.Builder
	rest := url
	if idx := strings.Index(rest, "://"); idx >= 0 {
		b.WriteString(styleSet.URLProtocol.Render(rest[:idx]))
		b.WriteString(styleSet.URLSeparator.Render("://"))
		rest = rest[idx+3:]
	}

	host, path, hasPath := strings.Cut(rest, "/")
	b.WriteString(RenderTemplate(styleSet, host, vars, styleSet.URLBase))
	if hasPath {
		for _, segment := range strings.Split(path, "/") {
			b.WriteString(styleSet.URLSeparator.Render("/"))
			b.WriteString(RenderTemplate(styleSet, segment, vars, styleSet.Text))
		}
	}
	return b.String()
}

// RenderTemplate renders text with $name and ${name} references highlighted
// as resolved when present in vars, unresolved otherwise.
func RenderTemplate(styleSet styles.Styles, text string, vars map[string]string, base lipgloss.Style) string {
	var b strings.Builder
	last := 0
	for _, loc := range templateVariable.FindAllStringSubmatchIndex(text, -1) {
		if loc[0] > last {
			b.WriteString(base.Render(text[last:loc[0]]))
		}
		name := text[loc[2]:loc[3]]
		st := styleSet.VariableUnresolved
		if _, ok := vars[name]; ok {
			st = styleSet.VariableResolved
		}
		b.WriteString(st.Render(text[loc[0]:loc[1]]))
		last = loc[1]
	}
	if last < len(text) {
		b.WriteString(base.Render(text[last:]))
	}
	return b.String()
}

// RenderJSONSample renders a small JSON document using the syntax styles.
func RenderJSONSample(styleSet styles.Styles) []string {
	key := styleSet.Syntax[theme.SyntaxKeyLabel]
	str := styleSet.Syntax[theme.SyntaxString]
	num := styleSet.Syntax[theme.SyntaxNumber]
	boolean := styleSet.Syntax[theme.SyntaxBoolean]
	null := styleSet.Syntax[theme.SyntaxNull]
	punct := styleSet.Text

	entry := func(name, value string, valueStyle lipgloss.Style, last bool) string {
		line := "  " + key.Render(fmt.Sprintf("%q", name)) + punct.Render(": ") + valueStyle.Render(value)
		if !last {
			line += punct.Render(",")
		}
		return line
	}

	return []string{
		punct.Render("{"),
		entry("name", `"posting"`, str, false),
		entry("version", "2.3", num, false),
		entry("stable", "true", boolean, false),
		entry("license", "null", null, true),
		punct.Render("}"),
	}
}

// RenderTextArea renders a few editor lines with gutter, cursor line,
// selection and matched brackets styled.
func RenderTextArea(styleSet styles.Styles) []string {
	ta := styleSet.TextArea
	return []string{
		ta.Gutter.Render(" 1 ") + styleSet.Text.Render("query {"),
		ta.CursorLineGutter.Render(" 2 ") + ta.CursorLine.Render("  user"+ta.MatchedBracket.Render("(")+"id: 1"+ta.MatchedBracket.Render(")")+" ") + ta.Cursor.Render(" "),
		ta.Gutter.Render(" 3 ") + styleSet.Text.Render("    ") + ta.Selection.Render("name email"),
		ta.Gutter.Render(" 4 ") + styleSet.Text.Render("}"),
	}
}

// RenderSwatches renders one block per palette color.
func RenderSwatches(styleSet styles.Styles) string {
	tokens := styleSet.Theme.Tokens
	swatches := []struct {
		label string
		style lipgloss.Style
	}{
		{"primary", styleSet.Primary},
		{"secondary", styleSet.Secondary},
		{"accent", styleSet.Accent},
		{"success", styleSet.Success},
		{"warning", styleSet.Warning},
		{"error", styleSet.Error},
	}

	parts := make([]string, 0, len(swatches))
	for _, s := range swatches {
		parts = append(parts, s.style.Render("██ "+s.label))
	}
	line := strings.Join(parts, "  ")
	if tokens.Background != "" {
		line += "  " + styleSet.Muted.Render("bg "+tokens.Background)
	}
	return line
}

// RenderThemePreview renders a full preview of styleSet. Template
// variables found in vars are shown as resolved.
func RenderThemePreview(styleSet styles.Styles, r *theme.Resolved, vars map[string]string) string {
	name := "--"
	source := "--"
	if r != nil {
		name = r.Name
		source = r.Source
	}

	lines := []string{
		styleSet.Title.Render(name) + " " + styleSet.Muted.Render(source),
		RenderSwatches(styleSet),
		"",
	}

	methods := make([]string, 0, len(styles.Methods))
	for _, m := range styles.Methods {
		methods = append(methods, RenderMethodBadge(styleSet, m))
	}
	lines = append(lines, strings.Join(methods, " "), "")

	lines = append(lines,
		RenderMethodBadge(styleSet, "get")+" "+RenderURL(styleSet, "https://${host}/users/$user_id", vars),
		RenderTemplate(styleSet, "Authorization: Bearer $token", vars, styleSet.Text),
		"",
	)
	lines = append(lines, RenderJSONSample(styleSet)...)
	lines = append(lines, "")
	lines = append(lines, RenderTextArea(styleSet)...)

	card := styleSet.Panel.Padding(0, 1)
	return card.Render(strings.Join(lines, "\n"))
}
