package theme

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/posting/internal/style"
)

// SelfDerivedSyntaxName is the syntax value meaning "derive the syntax
// styles from this theme's own colors".
const SelfDerivedSyntaxName = "posting"

// SyntaxKind tells which variant a Syntax holds.
type SyntaxKind int

const (
	// SyntaxSelfDerived derives syntax styles from the theme palette.
	SyntaxSelfDerived SyntaxKind = iota
	// SyntaxNamed refers to an external syntax theme by name.
	SyntaxNamed
	// SyntaxStructured carries per-token overrides, falling back to the palette.
	SyntaxStructured
)

func (k SyntaxKind) String() string {
	switch k {
	case SyntaxSelfDerived:
		return "self-derived"
	case SyntaxNamed:
		return "named"
	case SyntaxStructured:
		return "structured"
	default:
		return fmt.Sprintf("SyntaxKind(%d)", int(k))
	}
}

// Syntax is the syntax setting of a theme. The zero value is self-derived.
type Syntax struct {
	Kind   SyntaxKind
	Name   string      // SyntaxNamed only
	Styles SyntaxGroup // SyntaxStructured only
}

// SyntaxGroup holds the per-token style overrides of a structured syntax.
type SyntaxGroup struct {
	JSONKey     string `yaml:"json_key,omitempty"`
	JSONString  string `yaml:"json_string,omitempty"`
	JSONNumber  string `yaml:"json_number,omitempty"`
	JSONBoolean string `yaml:"json_boolean,omitempty"`
	JSONNull    string `yaml:"json_null,omitempty"`
}

func (g *SyntaxGroup) fields() []field {
	return []field{
		{"json_key", &g.JSONKey},
		{"json_string", &g.JSONString},
		{"json_number", &g.JSONNumber},
		{"json_boolean", &g.JSONBoolean},
		{"json_null", &g.JSONNull},
	}
}

// SelfDerivedSyntax returns the self-derived syntax variant.
func SelfDerivedSyntax() Syntax {
	return Syntax{Kind: SyntaxSelfDerived}
}

// NamedSyntax returns a syntax referring to an external syntax theme.
func NamedSyntax(name string) Syntax {
	return Syntax{Kind: SyntaxNamed, Name: name}
}

// StructuredSyntax returns a syntax with per-token overrides.
func StructuredSyntax(group SyntaxGroup) Syntax {
	return Syntax{Kind: SyntaxStructured, Styles: group}
}

// UnmarshalYAML accepts either a syntax theme name or a mapping of styles.
func (s *Syntax) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var name string
		if err := node.Decode(&name); err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		if name == "" || name == SelfDerivedSyntaxName {
			*s = SelfDerivedSyntax()
			return nil
		}
		*s = NamedSyntax(name)
		return nil

	case yaml.MappingNode:
		var group SyntaxGroup
		if err := node.Decode(&group); err != nil {
			return err
		}
		*s = StructuredSyntax(group)
		return nil

	default:
		return fmt.Errorf("line %d: syntax must be a theme name or a mapping of styles", node.Line)
	}
}

// MarshalYAML writes the syntax back in the form UnmarshalYAML accepts.
func (s Syntax) MarshalYAML() (any, error) {
	switch s.Kind {
	case SyntaxNamed:
		return s.Name, nil
	case SyntaxStructured:
		return s.Styles, nil
	default:
		return SelfDerivedSyntaxName, nil
	}
}

// SyntaxKey names one entry of a syntax style map.
type SyntaxKey string

// Syntax style keys.
const (
	SyntaxString   SyntaxKey = "string"
	SyntaxNumber   SyntaxKey = "number"
	SyntaxBoolean  SyntaxKey = "boolean"
	SyntaxNull     SyntaxKey = "null-literal"
	SyntaxKeyLabel SyntaxKey = "key-label"
)

// SyntaxKeys lists the syntax style keys in display order.
var SyntaxKeys = []SyntaxKey{SyntaxString, SyntaxNumber, SyntaxBoolean, SyntaxNull, SyntaxKeyLabel}

// SyntaxStyles maps syntax keys to styles.
type SyntaxStyles map[SyntaxKey]style.Style

// SyntaxLookup resolves an external syntax theme by name.
type SyntaxLookup interface {
	LookupSyntax(name string) (SyntaxStyles, bool)
}

// SyntaxLookupFunc adapts a function to SyntaxLookup.
type SyntaxLookupFunc func(name string) (SyntaxStyles, bool)

// LookupSyntax calls f.
func (f SyntaxLookupFunc) LookupSyntax(name string) (SyntaxStyles, bool) {
	return f(name)
}

// ChromaSyntaxLookup resolves syntax themes from the chroma style registry.
type ChromaSyntaxLookup struct{}

// LookupSyntax maps the JSON token styles of a chroma style onto syntax keys.
func (ChromaSyntaxLookup) LookupSyntax(name string) (SyntaxStyles, bool) {
	cs, ok := chromaStyle(name)
	if !ok {
		return nil, false
	}
	return SyntaxStyles{
		SyntaxString:   fromChroma(cs.Get(chroma.LiteralString)),
		SyntaxNumber:   fromChroma(cs.Get(chroma.LiteralNumber)),
		SyntaxBoolean:  fromChroma(cs.Get(chroma.KeywordConstant)),
		SyntaxNull:     fromChroma(cs.Get(chroma.KeywordConstant)),
		SyntaxKeyLabel: fromChroma(cs.Get(chroma.NameTag)),
	}, true
}

// ChromaSyntaxNames lists the syntax theme names known to chroma, aliases
// included, sorted.
func ChromaSyntaxNames() []string {
	names := styles.Names()
	for alias := range syntaxAliases {
		names = append(names, strings.ReplaceAll(alias, "-", "_"))
	}
	sort.Strings(names)
	return names
}

// syntaxAliases maps text area theme names without a chroma style of the
// same name onto the closest chroma style.
var syntaxAliases = map[string]string{
	"github-light": "github",
	"vscode-dark":  "github-dark",
}

func chromaStyle(name string) (*chroma.Style, bool) {
	lower := strings.ToLower(strings.TrimSpace(name))
	dashed := strings.ReplaceAll(lower, "_", "-")
	candidates := []string{name, lower, dashed}
	if alias, ok := syntaxAliases[dashed]; ok {
		candidates = append(candidates, alias)
	}
	for _, candidate := range candidates {
		if cs, ok := styles.Registry[candidate]; ok {
			return cs, true
		}
	}
	return nil, false
}

// fromChroma keeps the foreground and attributes of a chroma entry. The
// background is left to the text area.
func fromChroma(entry chroma.StyleEntry) style.Style {
	var st style.Style
	if entry.Colour.IsSet() {
		st.Foreground = entry.Colour.String()
	}
	for _, t := range []struct {
		value chroma.Trilean
		attr  style.Attr
	}{
		{entry.Bold, style.Bold},
		{entry.Italic, style.Italic},
		{entry.Underline, style.Underline},
	} {
		switch t.value {
		case chroma.Yes:
			st.Attrs |= t.attr
		case chroma.No:
			st.Unset |= t.attr
		}
	}
	return st
}
