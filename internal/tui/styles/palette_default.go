package styles

// DarkTheme is the fallback palette for dark themes.
var DarkTheme = Theme{
	Name: "dark",
	Dark: true,
	Tokens: ThemeTokens{
		Background: "#0B0F14",
		Surface:    "#121821",
		Panel:      "#1A2330",
		Text:       "#E6EDF3",
		TextMuted:  "#8B9AAE",
		Border:     "#223043",
		Primary:    "#5B8DEF",
		Secondary:  "#7AA2F7",
		Accent:     "#58A6FF",
		Success:    "#3FB950",
		Warning:    "#D29922",
		Error:      "#F85149",
	},
}
