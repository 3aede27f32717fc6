package styles

import "github.com/opencode-ai/posting/internal/theme"

// ThemeTokens defines the semantic color roles for the TUI.
type ThemeTokens struct {
	Background string
	Surface    string
	Panel      string
	Text       string
	TextMuted  string
	Border     string
	Primary    string
	Secondary  string
	Accent     string
	Success    string
	Warning    string
	Error      string
}

// Theme bundles a palette with a name.
type Theme struct {
	Name   string
	Dark   bool
	Tokens ThemeTokens
}

// FromPalette builds a theme from a resolved palette. Unset colors are taken
// from DarkTheme or LightTheme depending on p.Dark.
func FromPalette(name string, p theme.Palette) Theme {
	base := LightTheme
	if p.Dark {
		base = DarkTheme
	}

	tokens := base.Tokens
	set := func(dst *string, value string) {
		if value != "" {
			*dst = value
		}
	}
	set(&tokens.Background, p.Background)
	set(&tokens.Surface, p.Surface)
	set(&tokens.Panel, p.Panel)
	set(&tokens.Primary, p.Primary)
	set(&tokens.Secondary, p.Secondary)
	set(&tokens.Accent, p.Accent)
	set(&tokens.Success, p.Success)
	set(&tokens.Warning, p.Warning)
	set(&tokens.Error, p.Error)
	if p.Secondary == "" && p.Primary != "" {
		tokens.Secondary = p.Primary
	}
	if p.Accent == "" && p.Primary != "" {
		tokens.Accent = p.Primary
	}
	tokens.Border = tokens.Primary

	return Theme{Name: name, Dark: p.Dark, Tokens: tokens}
}
