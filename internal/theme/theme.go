// Package theme provides theme descriptors, the cascade that resolves them
// into the styling representations used by the UI, and the builtin and user
// theme registries.
package theme

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/opencode-ai/posting/internal/style"
)

var (
	// ErrNameRequired is returned when a theme has no name.
	ErrNameRequired = errors.New("theme name is required")
	// ErrPrimaryRequired is returned when a theme has no primary color.
	ErrPrimaryRequired = errors.New("theme primary color is required")
	// ErrThemeNotFound is returned when a theme is not in the registry.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrUnknownSyntaxTheme is returned when a named syntax theme cannot be found.
	ErrUnknownSyntaxTheme = errors.New("unknown syntax theme")
)

// ValidationError describes an invalid field in a theme descriptor.
type ValidationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("theme %s %q: %s", e.Field, e.Value, e.Message)
	}
	return fmt.Sprintf("theme %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Theme describes one theme. Apart from Name and Primary every field is
// optional; an empty string means unset. A Theme must not be modified once
// it has been validated, resolvers only read from it.
type Theme struct {
	Name string `yaml:"name"`

	Primary    string `yaml:"primary"`
	Secondary  string `yaml:"secondary,omitempty"`
	Background string `yaml:"background,omitempty"`
	Surface    string `yaml:"surface,omitempty"`
	Panel      string `yaml:"panel,omitempty"`
	Warning    string `yaml:"warning,omitempty"`
	Error      string `yaml:"error,omitempty"`
	Success    string `yaml:"success,omitempty"`
	Accent     string `yaml:"accent,omitempty"`
	Dark       *bool  `yaml:"dark,omitempty"` // nil means dark

	TextArea TextAreaStyles  `yaml:"text_area,omitempty"`
	Syntax   Syntax          `yaml:"syntax,omitempty"`
	URL      *URLStyles      `yaml:"url"`
	Variable *VariableStyles `yaml:"variable"`
	Method   *MethodStyles   `yaml:"method,omitempty"`

	// Variables holds extra widget variables copied verbatim into the
	// resolved variable map.
	Variables map[string]string `yaml:"variables,omitempty"`

	Author      string `yaml:"author,omitempty"`
	Description string `yaml:"description,omitempty"`
	Homepage    string `yaml:"homepage,omitempty"`

	Source string `yaml:"-"` // file path or "builtin"
}

// TextAreaStyles are the styles applied to text editing areas.
type TextAreaStyles struct {
	Gutter           string `yaml:"gutter,omitempty"`
	Cursor           string `yaml:"cursor,omitempty"`
	CursorLine       string `yaml:"cursor_line,omitempty"`
	CursorLineGutter string `yaml:"cursor_line_gutter,omitempty"`
	MatchedBracket   string `yaml:"matched_bracket,omitempty"`
	Selection        string `yaml:"selection,omitempty"`
}

// URLStyles are the styles applied to URL input fields.
type URLStyles struct {
	Base      string `yaml:"base,omitempty"`
	Protocol  string `yaml:"protocol,omitempty"`
	Separator string `yaml:"separator,omitempty"`
}

// VariableStyles are the styles applied to template variables.
type VariableStyles struct {
	Resolved   string `yaml:"resolved,omitempty"`
	Unresolved string `yaml:"unresolved,omitempty"`
}

// MethodStyles are the styles of the HTTP method badges.
type MethodStyles struct {
	Get     string `yaml:"get,omitempty"`
	Post    string `yaml:"post,omitempty"`
	Put     string `yaml:"put,omitempty"`
	Delete  string `yaml:"delete,omitempty"`
	Patch   string `yaml:"patch,omitempty"`
	Options string `yaml:"options,omitempty"`
	Head    string `yaml:"head,omitempty"`
}

// DefaultURLSeparator is used for url-separator when the url group does not set one.
const DefaultURLSeparator = "dim"

// DefaultMethodStyles holds the badge colors used for unset method fields.
var DefaultMethodStyles = MethodStyles{
	Get:     "#0ea5e9",
	Post:    "#22c55e",
	Put:     "#f59e0b",
	Delete:  "#ef4444",
	Patch:   "#14b8a6",
	Options: "#8b5cf6",
	Head:    "#d946ef",
}

type field struct {
	name  string
	value *string
}

func (t *Theme) colorFields() []field {
	return []field{
		{"primary", &t.Primary},
		{"secondary", &t.Secondary},
		{"background", &t.Background},
		{"surface", &t.Surface},
		{"panel", &t.Panel},
		{"warning", &t.Warning},
		{"error", &t.Error},
		{"success", &t.Success},
		{"accent", &t.Accent},
	}
}

func (s *TextAreaStyles) fields() []field {
	return []field{
		{"gutter", &s.Gutter},
		{"cursor", &s.Cursor},
		{"cursor_line", &s.CursorLine},
		{"cursor_line_gutter", &s.CursorLineGutter},
		{"matched_bracket", &s.MatchedBracket},
		{"selection", &s.Selection},
	}
}

func (s *URLStyles) fields() []field {
	return []field{
		{"base", &s.Base},
		{"protocol", &s.Protocol},
		{"separator", &s.Separator},
	}
}

func (s *VariableStyles) fields() []field {
	return []field{
		{"resolved", &s.Resolved},
		{"unresolved", &s.Unresolved},
	}
}

func (s *MethodStyles) fields() []field {
	return []field{
		{"get", &s.Get},
		{"post", &s.Post},
		{"put", &s.Put},
		{"delete", &s.Delete},
		{"patch", &s.Patch},
		{"options", &s.Options},
		{"head", &s.Head},
	}
}

// styleFields lists every group style field with its dotted path.
func (t *Theme) styleFields() []field {
	var out []field
	add := func(group string, fields []field) {
		for _, f := range fields {
			out = append(out, field{name: group + "." + f.name, value: f.value})
		}
	}

	add("text_area", t.TextArea.fields())
	if t.Syntax.Kind == SyntaxStructured {
		add("syntax", t.Syntax.Styles.fields())
	}
	if t.URL != nil {
		add("url", t.URL.fields())
	}
	if t.Variable != nil {
		add("variable", t.Variable.fields())
	}
	if t.Method != nil {
		add("method", t.Method.fields())
	}
	return out
}

// Base returns a theme carrying the descriptor defaults: dark, with empty
// url and variable groups and no method group.
func Base(name, primary string) Theme {
	return Theme{
		Name:     name,
		Primary:  primary,
		Dark:     BoolPtr(true),
		URL:      &URLStyles{},
		Variable: &VariableStyles{},
	}
}

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool {
	return &v
}

// IsDark reports whether t is a dark theme. Unset means dark.
func (t *Theme) IsDark() bool {
	return t.Dark == nil || *t.Dark
}

// New validates a copy of t and returns it. Fields left unset get the same
// defaults Parse applies: nil Dark, URL and Variable are taken from Base.
func New(t Theme) (*Theme, error) {
	out := t.Clone()
	base := Base(out.Name, out.Primary)
	if out.Dark == nil {
		out.Dark = base.Dark
	}
	if out.URL == nil {
		out.URL = base.URL
	}
	if out.Variable == nil {
		out.Variable = base.Variable
	}
	out.normalize()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

// Validate checks required fields and that every color and style parses.
func (t *Theme) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Message: "is required", Err: ErrNameRequired}
	}
	if t.Primary == "" {
		return &ValidationError{Field: "primary", Message: "is required", Err: ErrPrimaryRequired}
	}

	for _, f := range t.colorFields() {
		if *f.value == "" {
			continue
		}
		if err := style.ValidColor(*f.value); err != nil {
			return &ValidationError{Field: f.name, Value: *f.value, Message: "invalid color", Err: err}
		}
	}

	for _, f := range t.styleFields() {
		if *f.value == "" {
			continue
		}
		if err := style.Validate(*f.value); err != nil {
			return &ValidationError{Field: f.name, Value: *f.value, Message: "invalid style", Err: err}
		}
	}

	if t.Syntax.Kind == SyntaxNamed && t.Syntax.Name == "" {
		return &ValidationError{Field: "syntax", Message: "syntax theme name is empty"}
	}

	return nil
}

// Clone returns a deep copy of t.
func (t *Theme) Clone() *Theme {
	out := *t
	if t.Dark != nil {
		out.Dark = BoolPtr(*t.Dark)
	}
	if t.URL != nil {
		url := *t.URL
		out.URL = &url
	}
	if t.Variable != nil {
		variable := *t.Variable
		out.Variable = &variable
	}
	if t.Method != nil {
		method := *t.Method
		out.Method = &method
	}
	if t.Variables != nil {
		out.Variables = maps.Clone(t.Variables)
	}
	return &out
}

func (t *Theme) normalize() {
	t.Name = strings.TrimSpace(t.Name)
	for _, f := range t.colorFields() {
		*f.value = strings.TrimSpace(*f.value)
	}
	for _, f := range t.styleFields() {
		*f.value = strings.TrimSpace(*f.value)
	}
	t.Syntax.Name = strings.TrimSpace(t.Syntax.Name)
	t.Author = strings.TrimSpace(t.Author)
	t.Description = strings.TrimSpace(t.Description)
	t.Homepage = strings.TrimSpace(t.Homepage)
}
