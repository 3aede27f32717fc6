// Package style parses and renders the short style grammar used by theme files,
// e.g. "bold #ff0000 on #101010" or "not italic cyan".
package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Attr is a bitmask of text attributes.
type Attr uint8

// Supported attributes.
const (
	Bold Attr = 1 << iota
	Dim
	Italic
	Underline
	Blink
	Reverse
	Strike
)

// attrOrder fixes the order attributes are rendered in by String.
var attrOrder = []struct {
	attr Attr
	name string
	set  func(lipgloss.Style, bool) lipgloss.Style
}{
	{Bold, "bold", lipgloss.Style.Bold},
	{Dim, "dim", lipgloss.Style.Faint},
	{Italic, "italic", lipgloss.Style.Italic},
	{Underline, "underline", lipgloss.Style.Underline},
	{Blink, "blink", lipgloss.Style.Blink},
	{Reverse, "reverse", lipgloss.Style.Reverse},
	{Strike, "strike", lipgloss.Style.Strikethrough},
}

var attrAliases = map[string]Attr{
	"bold":          Bold,
	"b":             Bold,
	"dim":           Dim,
	"d":             Dim,
	"italic":        Italic,
	"i":             Italic,
	"underline":     Underline,
	"u":             Underline,
	"blink":         Blink,
	"reverse":       Reverse,
	"r":             Reverse,
	"strike":        Strike,
	"s":             Strike,
	"strikethrough": Strike,
}

// Style is a parsed style: optional colors plus attributes that are
// explicitly switched on (Attrs) or off (Unset).
type Style struct {
	Foreground string `json:"foreground,omitempty"`
	Background string `json:"background,omitempty"`
	Attrs      Attr   `json:"attrs,omitempty"`
	Unset      Attr   `json:"unset,omitempty"`
}

// ParseError describes a style string that does not match the grammar.
type ParseError struct {
	Input   string
	Token   string
	Message string
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("invalid style %q at %q: %s", e.Input, e.Token, e.Message)
	}
	return fmt.Sprintf("invalid style %q: %s", e.Input, e.Message)
}

// Parse parses a style definition. The empty string and "none" yield the
// zero Style.
func Parse(def string) (Style, error) {
	var st Style

	words := tokenize(strings.ToLower(def))
	if len(words) == 0 || (len(words) == 1 && words[0] == "none") {
		return st, nil
	}

	for i := 0; i < len(words); i++ {
		word := words[i]
		switch word {
		case "on":
			i++
			if i >= len(words) {
				return Style{}, &ParseError{Input: def, Token: word, Message: "expected color after 'on'"}
			}
			color, err := NormalizeColor(words[i])
			if err != nil {
				return Style{}, &ParseError{Input: def, Token: words[i], Message: err.Error()}
			}
			st.Background = color

		case "not":
			i++
			if i >= len(words) {
				return Style{}, &ParseError{Input: def, Token: word, Message: "expected attribute after 'not'"}
			}
			attr, ok := attrAliases[words[i]]
			if !ok {
				return Style{}, &ParseError{Input: def, Token: words[i], Message: "unknown attribute"}
			}
			st.Unset |= attr
			st.Attrs &^= attr

		default:
			if attr, ok := attrAliases[word]; ok {
				st.Attrs |= attr
				st.Unset &^= attr
				continue
			}
			color, err := NormalizeColor(word)
			if err != nil {
				return Style{}, &ParseError{Input: def, Token: word, Message: err.Error()}
			}
			st.Foreground = color
		}
	}

	return st, nil
}

// MustParse is like Parse but panics on error. Intended for literals.
func MustParse(def string) Style {
	st, err := Parse(def)
	if err != nil {
		panic(err)
	}
	return st
}

// Validate reports whether def is a valid style definition.
func Validate(def string) error {
	_, err := Parse(def)
	return err
}

// IsZero reports whether the style sets nothing.
func (s Style) IsZero() bool {
	return s == Style{}
}

// Has reports whether attr is switched on.
func (s Style) Has(attr Attr) bool {
	return s.Attrs&attr != 0
}

// Bolded returns a copy of s with bold forced on.
func (s Style) Bolded() Style {
	s.Attrs |= Bold
	s.Unset &^= Bold
	return s
}

// String renders s in canonical grammar form. Parse(s.String()) == s.
func (s Style) String() string {
	if s.IsZero() {
		return "none"
	}

	parts := make([]string, 0, 4)
	for _, a := range attrOrder {
		if s.Attrs&a.attr != 0 {
			parts = append(parts, a.name)
		}
	}
	for _, a := range attrOrder {
		if s.Unset&a.attr != 0 {
			parts = append(parts, "not", a.name)
		}
	}
	if s.Foreground != "" {
		parts = append(parts, s.Foreground)
	}
	if s.Background != "" {
		parts = append(parts, "on", s.Background)
	}
	return strings.Join(parts, " ")
}

// Lipgloss converts s into a lipgloss style.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if s.Foreground != "" {
		ls = ls.Foreground(terminalColor(s.Foreground))
	}
	if s.Background != "" {
		ls = ls.Background(terminalColor(s.Background))
	}
	for _, a := range attrOrder {
		switch {
		case s.Attrs&a.attr != 0:
			ls = a.set(ls, true)
		case s.Unset&a.attr != 0:
			ls = a.set(ls, false)
		}
	}
	return ls
}

// tokenize splits on whitespace outside parentheses so that
// "rgb(1, 2, 3)" stays a single token.
func tokenize(def string) []string {
	var (
		words []string
		cur   strings.Builder
		depth int
	)
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for _, r := range def {
		switch {
		case r == '(':
			depth++
			cur.WriteRune(r)
		case r == ')':
			if depth > 0 {
				depth--
			}
			cur.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			if depth == 0 {
				flush()
			}
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}
