package theme

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/opencode-ai/posting/internal/style"
)

// Palette is the flat application color palette. Unset fields stay empty;
// the renderer supplies its own defaults for them.
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary,omitempty"`
	Background string `json:"background,omitempty"`
	Surface    string `json:"surface,omitempty"`
	Panel      string `json:"panel,omitempty"`
	Warning    string `json:"warning,omitempty"`
	Error      string `json:"error,omitempty"`
	Success    string `json:"success,omitempty"`
	Accent     string `json:"accent,omitempty"`
	Dark       bool   `json:"dark"`
}

// TextAreaSet is the style set of a text editing area. Nil slots are left
// to the text area's own defaults.
type TextAreaSet struct {
	Name             string       `json:"name"`
	Gutter           *style.Style `json:"gutter,omitempty"`
	Cursor           *style.Style `json:"cursor,omitempty"`
	CursorLine       *style.Style `json:"cursor_line,omitempty"`
	CursorLineGutter *style.Style `json:"cursor_line_gutter,omitempty"`
	MatchedBracket   *style.Style `json:"matched_bracket,omitempty"`
	Selection        *style.Style `json:"selection,omitempty"`
}

// Resolved bundles every derived representation of one theme. It is shared
// between registry readers and must be treated as read-only.
type Resolved struct {
	Name      string            `json:"name"`
	Source    string            `json:"source"`
	Palette   Palette           `json:"palette"`
	TextArea  TextAreaSet       `json:"text_area"`
	Syntax    SyntaxStyles      `json:"syntax"`
	Variables map[string]string `json:"variables"`
}

// textAreaNamespace seeds the name-based ids of text area style sets.
var textAreaNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://posting.sh/themes/text-area"))

// Resolve derives every representation of t.
func Resolve(t *Theme, lookup SyntaxLookup) (*Resolved, error) {
	if t == nil {
		return nil, fmt.Errorf("theme is required")
	}

	syntax, err := ResolveSyntax(t, lookup)
	if err != nil {
		return nil, fmt.Errorf("resolve theme %q: %w", t.Name, err)
	}

	return &Resolved{
		Name:      t.Name,
		Source:    t.Source,
		Palette:   ResolvePalette(t),
		TextArea:  ResolveTextArea(t),
		Syntax:    syntax,
		Variables: ResolveVariables(t),
	}, nil
}

// ResolvePalette projects the core colors of t.
func ResolvePalette(t *Theme) Palette {
	return Palette{
		Primary:    t.Primary,
		Secondary:  t.Secondary,
		Background: t.Background,
		Surface:    t.Surface,
		Panel:      t.Panel,
		Warning:    t.Warning,
		Error:      t.Error,
		Success:    t.Success,
		Accent:     t.Accent,
		Dark:       t.IsDark(),
	}
}

// ResolveTextArea parses the text area styles of t. Fields do not fall back
// to each other.
func ResolveTextArea(t *Theme) TextAreaSet {
	ta := t.TextArea
	key := strings.Join([]string{
		t.Name, ta.Gutter, ta.Cursor, ta.CursorLine, ta.CursorLineGutter, ta.MatchedBracket, ta.Selection,
	}, "\x00")

	return TextAreaSet{
		Name:             uuid.NewSHA1(textAreaNamespace, []byte(key)).String(),
		Gutter:           optionalStyle(ta.Gutter),
		Cursor:           optionalStyle(ta.Cursor),
		CursorLine:       optionalStyle(ta.CursorLine),
		CursorLineGutter: optionalStyle(ta.CursorLineGutter),
		MatchedBracket:   optionalStyle(ta.MatchedBracket),
		Selection:        optionalStyle(ta.Selection),
	}
}

// ResolveSyntax returns the syntax styles of t. Named syntax themes are
// delegated to lookup.
func ResolveSyntax(t *Theme, lookup SyntaxLookup) (SyntaxStyles, error) {
	switch t.Syntax.Kind {
	case SyntaxSelfDerived:
		return deriveSyntax(t, SyntaxGroup{}), nil
	case SyntaxStructured:
		return deriveSyntax(t, t.Syntax.Styles), nil
	case SyntaxNamed:
		if lookup == nil {
			return nil, fmt.Errorf("%w %q: no syntax lookup configured", ErrUnknownSyntaxTheme, t.Syntax.Name)
		}
		styles, ok := lookup.LookupSyntax(t.Syntax.Name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownSyntaxTheme, t.Syntax.Name)
		}
		return styles, nil
	default:
		return nil, fmt.Errorf("unknown syntax kind %s", t.Syntax.Kind)
	}
}

// deriveSyntax applies own field -> palette field -> primary.
func deriveSyntax(t *Theme, own SyntaxGroup) SyntaxStyles {
	return SyntaxStyles{
		SyntaxString:   cascadeStyle(own.JSONString, t.Primary),
		SyntaxNumber:   cascadeStyle(own.JSONNumber, t.Accent, t.Primary),
		SyntaxBoolean:  cascadeStyle(own.JSONBoolean, t.Accent, t.Primary),
		SyntaxNull:     cascadeStyle(own.JSONNull, t.Secondary, t.Primary),
		SyntaxKeyLabel: cascadeStyle(own.JSONKey, t.Primary).Bolded(),
	}
}

// ResolveVariables builds the flat variable map of t. Keys whose value
// resolves to an empty string are omitted.
func ResolveVariables(t *Theme) map[string]string {
	vars := make(map[string]string)

	if t.URL != nil {
		vars["url-base"] = firstSet(t.URL.Base, t.Secondary)
		vars["url-protocol"] = firstSet(t.URL.Protocol, t.Accent)
		vars["url-separator"] = firstSet(t.URL.Separator, DefaultURLSeparator)
	}

	if t.Variable != nil {
		vars["variable-resolved"] = firstSet(t.Variable.Resolved, t.Success)
		vars["variable-unresolved"] = firstSet(t.Variable.Unresolved, t.Error)
	}

	if t.Method != nil {
		defaults := DefaultMethodStyles
		want := defaults.fields()
		for i, f := range t.Method.fields() {
			vars["method-"+f.name] = firstSet(*f.value, *want[i].value)
		}
	}

	for _, f := range t.TextArea.fields() {
		vars["text-area-"+dashed(f.name)] = *f.value
	}

	switch t.Syntax.Kind {
	case SyntaxStructured:
		for _, f := range t.Syntax.Styles.fields() {
			vars["syntax-"+dashed(f.name)] = *f.value
		}
	case SyntaxNamed:
		vars["syntax-theme"] = t.Syntax.Name
	}

	for key, value := range t.Variables {
		vars[key] = value
	}

	for key, value := range vars {
		if strings.TrimSpace(value) == "" {
			delete(vars, key)
		}
	}
	return vars
}

func firstSet(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func cascadeStyle(chain ...string) style.Style {
	for _, def := range chain {
		if def == "" {
			continue
		}
		if st, err := style.Parse(def); err == nil {
			return st
		}
	}
	return style.Style{}
}

func optionalStyle(def string) *style.Style {
	if def == "" {
		return nil
	}
	st, err := style.Parse(def)
	if err != nil {
		return nil
	}
	return &st
}

func dashed(name string) string {
	return strings.ReplaceAll(name, "_", "-")
}
