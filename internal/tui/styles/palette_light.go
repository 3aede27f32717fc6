package styles

// LightTheme is the fallback palette for light themes.
var LightTheme = Theme{
	Name: "light",
	Tokens: ThemeTokens{
		Background: "#FFFFFF",
		Surface:    "#F3F4F6",
		Panel:      "#E5E7EB",
		Text:       "#111827",
		TextMuted:  "#6B7280",
		Border:     "#D1D5DB",
		Primary:    "#2563EB",
		Secondary:  "#4F46E5",
		Accent:     "#0891B2",
		Success:    "#15803D",
		Warning:    "#B45309",
		Error:      "#B91C1C",
	},
}
