package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultColor is the terminal's own foreground/background.
const DefaultColor = "default"

// ansiColors maps the named colors to their ANSI index.
var ansiColors = map[string]int{
	"black":          0,
	"red":            1,
	"green":          2,
	"yellow":         3,
	"blue":           4,
	"magenta":        5,
	"cyan":           6,
	"white":          7,
	"bright_black":   8,
	"bright_red":     9,
	"bright_green":   10,
	"bright_yellow":  11,
	"bright_blue":    12,
	"bright_magenta": 13,
	"bright_cyan":    14,
	"bright_white":   15,
}

var colorAliases = map[string]string{
	"gray":   "bright_black",
	"grey":   "bright_black",
	"purple": "magenta",
}

// NormalizeColor validates a single color and returns its canonical form:
// lowercase "#rrggbb" for hex and rgb() colors, "color(N)" for indexed
// colors, the ANSI name for named colors, or "default".
func NormalizeColor(value string) (string, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	switch {
	case value == "":
		return "", fmt.Errorf("color is empty")
	case value == DefaultColor:
		return DefaultColor, nil
	case strings.HasPrefix(value, "#"):
		return normalizeHex(value)
	case strings.HasPrefix(value, "rgb(") && strings.HasSuffix(value, ")"):
		return normalizeRGB(value)
	case strings.HasPrefix(value, "color(") && strings.HasSuffix(value, ")"):
		inner := strings.TrimSpace(value[len("color(") : len(value)-1])
		n, err := strconv.Atoi(inner)
		if err != nil || n < 0 || n > 255 {
			return "", fmt.Errorf("color index %q must be between 0 and 255", inner)
		}
		return fmt.Sprintf("color(%d)", n), nil
	}

	name := strings.ReplaceAll(value, "-", "_")
	if alias, ok := colorAliases[name]; ok {
		name = alias
	}
	if _, ok := ansiColors[name]; ok {
		return name, nil
	}
	return "", fmt.Errorf("unknown color %q", value)
}

// ValidColor reports whether value is a single valid color.
func ValidColor(value string) error {
	if _, err := NormalizeColor(value); err != nil {
		return &ParseError{Input: value, Message: err.Error()}
	}
	return nil
}

func normalizeHex(value string) (string, error) {
	if len(value) != 4 && len(value) != 7 {
		return "", fmt.Errorf("hex color %q must be #rgb or #rrggbb", value)
	}
	if strings.Trim(value[1:], "0123456789abcdef") != "" {
		return "", fmt.Errorf("hex color %q has non-hex digits", value)
	}
	c, err := colorful.Hex(value)
	if err != nil {
		return "", fmt.Errorf("invalid hex color %q", value)
	}
	return c.Hex(), nil
}

func normalizeRGB(value string) (string, error) {
	inner := value[len("rgb(") : len(value)-1]
	parts := strings.Split(inner, ",")
	if len(parts) != 3 {
		return "", fmt.Errorf("rgb color %q needs three components", value)
	}
	var channels [3]float64
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 255 {
			return "", fmt.Errorf("rgb component %q must be between 0 and 255", strings.TrimSpace(part))
		}
		channels[i] = float64(n) / 255.0
	}
	return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}.Hex(), nil
}

// TerminalColor converts a color definition into a lipgloss color. Invalid
// definitions yield no color.
func TerminalColor(value string) lipgloss.TerminalColor {
	color, err := NormalizeColor(value)
	if err != nil {
		return lipgloss.NoColor{}
	}
	return terminalColor(color)
}

// terminalColor maps a normalized color onto a lipgloss color.
func terminalColor(color string) lipgloss.TerminalColor {
	switch {
	case color == DefaultColor:
		return lipgloss.NoColor{}
	case strings.HasPrefix(color, "#"):
		return lipgloss.Color(color)
	case strings.HasPrefix(color, "color("):
		return lipgloss.Color(color[len("color(") : len(color)-1])
	}
	if index, ok := ansiColors[color]; ok {
		return lipgloss.Color(strconv.Itoa(index))
	}
	return lipgloss.NoColor{}
}
