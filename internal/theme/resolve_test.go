package theme

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/opencode-ai/posting/internal/style"
)

func mustParseTheme(t *testing.T, src string) *Theme {
	t.Helper()
	th, err := Parse([]byte(src))
	require.NoError(t, err)
	return th
}

func TestResolveVariablesMinimalTheme(t *testing.T) {
	th := mustParseTheme(t, "name: t1\nprimary: \"#112233\"\n")

	vars := ResolveVariables(th)
	require.Equal(t, map[string]string{"url-separator": "dim"}, vars)
}

func TestNewAndParseResolveAlike(t *testing.T) {
	built, err := New(Theme{Name: "t1", Primary: "#112233"})
	require.NoError(t, err)
	parsed := mustParseTheme(t, "name: t1\nprimary: \"#112233\"\n")

	fromNew, err := Resolve(built, nil)
	require.NoError(t, err)
	fromParse, err := Resolve(parsed, nil)
	require.NoError(t, err)

	require.Equal(t, fromParse, fromNew)
	require.True(t, fromNew.Palette.Dark)
	require.Equal(t, map[string]string{"url-separator": "dim"}, fromNew.Variables)
}

func TestResolveVariablesGroups(t *testing.T) {
	th := mustParseTheme(t, `
name: full
primary: "#112233"
secondary: "#445566"
accent: "#778899"
success: green
error: red
url:
  protocol: italic
variable:
  unresolved: "bold red"
text_area:
  cursor: reverse
  matched_bracket: "on #222222"
syntax:
  json_key: "italic #ff0000"
variables:
  footer-background: transparent
  url-separator: "bold"
  empty-one: ""
`)

	vars := ResolveVariables(th)
	require.Equal(t, map[string]string{
		"url-base":                  "#445566",
		"url-protocol":              "italic",
		"url-separator":             "bold",
		"variable-resolved":         "green",
		"variable-unresolved":       "bold red",
		"text-area-cursor":          "reverse",
		"text-area-matched-bracket": "on #222222",
		"syntax-json-key":           "italic #ff0000",
		"footer-background":         "transparent",
	}, vars)
}

func TestResolveVariablesNullGroupsAreAbsent(t *testing.T) {
	th := mustParseTheme(t, `
name: bare
primary: "#112233"
secondary: "#445566"
success: green
url: null
variable: null
`)

	vars := ResolveVariables(th)
	require.Empty(t, vars)
}

func TestResolveVariablesMethodDefaults(t *testing.T) {
	th := mustParseTheme(t, `
name: methods
primary: "#112233"
method:
  post: "bold #00ff00"
`)

	vars := ResolveVariables(th)
	require.Equal(t, "bold #00ff00", vars["method-post"])
	require.Equal(t, DefaultMethodStyles.Get, vars["method-get"])
	require.Equal(t, DefaultMethodStyles.Head, vars["method-head"])
	require.Len(t, vars, 8) // seven methods plus url-separator
}

func TestResolveVariablesNamedSyntax(t *testing.T) {
	th := mustParseTheme(t, "name: n\nprimary: \"#112233\"\nsyntax: monokai\n")
	require.Equal(t, SyntaxNamed, th.Syntax.Kind)

	vars := ResolveVariables(th)
	require.Equal(t, "monokai", vars["syntax-theme"])
}

func TestResolveSyntaxSelfDerived(t *testing.T) {
	th := mustParseTheme(t, "name: t1\nprimary: \"#112233\"\n")

	syntax, err := ResolveSyntax(th, nil)
	require.NoError(t, err)
	require.Len(t, syntax, len(SyntaxKeys))

	primary := style.MustParse("#112233")
	require.Equal(t, primary, syntax[SyntaxString])
	require.Equal(t, primary, syntax[SyntaxNumber])
	require.Equal(t, primary, syntax[SyntaxBoolean])
	require.Equal(t, primary, syntax[SyntaxNull])
	require.Equal(t, style.MustParse("bold #112233"), syntax[SyntaxKeyLabel])
}

func TestResolveSyntaxCascade(t *testing.T) {
	th := mustParseTheme(t, `
name: cascade
primary: "#112233"
secondary: "#445566"
accent: "#778899"
syntax:
  json_string: "italic #aabbcc"
  json_key: "not bold #010203"
`)

	syntax, err := ResolveSyntax(th, nil)
	require.NoError(t, err)
	require.Equal(t, style.MustParse("italic #aabbcc"), syntax[SyntaxString])
	require.Equal(t, style.MustParse("#778899"), syntax[SyntaxNumber])
	require.Equal(t, style.MustParse("#778899"), syntax[SyntaxBoolean])
	require.Equal(t, style.MustParse("#445566"), syntax[SyntaxNull])

	key := syntax[SyntaxKeyLabel]
	require.True(t, key.Has(style.Bold))
	require.Equal(t, "#010203", key.Foreground)
}

func TestResolveSyntaxNamed(t *testing.T) {
	th := mustParseTheme(t, "name: n\nprimary: \"#112233\"\nsyntax: monokai\n")

	syntax, err := ResolveSyntax(th, ChromaSyntaxLookup{})
	require.NoError(t, err)
	require.Len(t, syntax, len(SyntaxKeys))
	require.NotEmpty(t, syntax[SyntaxString].Foreground)
	require.NotEmpty(t, syntax[SyntaxKeyLabel].Foreground)

	custom := SyntaxLookupFunc(func(name string) (SyntaxStyles, bool) {
		if name != "monokai" {
			return nil, false
		}
		return SyntaxStyles{SyntaxString: style.MustParse("red")}, true
	})
	syntax, err = ResolveSyntax(th, custom)
	require.NoError(t, err)
	require.Equal(t, style.MustParse("red"), syntax[SyntaxString])
}

func TestResolveSyntaxUnknownNamed(t *testing.T) {
	th := mustParseTheme(t, "name: n\nprimary: \"#112233\"\nsyntax: no-such-style\n")

	_, err := ResolveSyntax(th, ChromaSyntaxLookup{})
	require.ErrorIs(t, err, ErrUnknownSyntaxTheme)

	_, err = Resolve(th, nil)
	require.ErrorIs(t, err, ErrUnknownSyntaxTheme)
}

func TestChromaSyntaxLookupNames(t *testing.T) {
	tests := []struct {
		name  string
		found bool
	}{
		{"monokai", true},
		{"dracula", true},
		{"Monokai", true},
		{"github_light", true},
		{"vscode_dark", true},
		{"solarized_dark", true},
		{"no-such-style", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syntax, ok := ChromaSyntaxLookup{}.LookupSyntax(tt.name)
			require.Equal(t, tt.found, ok)
			if tt.found {
				require.Len(t, syntax, len(SyntaxKeys))
			}
		})
	}

	th := mustParseTheme(t, "name: gh\nprimary: \"#112233\"\nsyntax: github_light\n")
	_, err := Resolve(th, ChromaSyntaxLookup{})
	require.NoError(t, err)
}

func TestChromaSyntaxNames(t *testing.T) {
	names := ChromaSyntaxNames()
	require.True(t, sort.StringsAreSorted(names))
	require.Contains(t, names, "monokai")
	require.Contains(t, names, "github_light")
	require.Contains(t, names, "vscode_dark")
	for _, name := range names {
		_, ok := ChromaSyntaxLookup{}.LookupSyntax(name)
		require.True(t, ok, name)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	src := `
name: same
primary: "#112233"
accent: "#778899"
text_area:
  cursor: reverse
method:
  get: green
`
	a, err := Resolve(mustParseTheme(t, src), ChromaSyntaxLookup{})
	require.NoError(t, err)
	b, err := Resolve(mustParseTheme(t, src), ChromaSyntaxLookup{})
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestResolveTextArea(t *testing.T) {
	th := mustParseTheme(t, `
name: editor
primary: "#112233"
text_area:
  cursor: reverse
  selection: "on #333333"
`)

	ta := ResolveTextArea(th)
	require.NotEmpty(t, ta.Name)
	require.Equal(t, style.MustParse("reverse"), *ta.Cursor)
	require.Equal(t, style.MustParse("on #333333"), *ta.Selection)
	require.Nil(t, ta.Gutter)
	require.Nil(t, ta.CursorLine)
	require.Nil(t, ta.CursorLineGutter)
	require.Nil(t, ta.MatchedBracket)

	other := th.Clone()
	other.TextArea.Cursor = "bold"
	require.NotEqual(t, ta.Name, ResolveTextArea(other).Name)
	require.Equal(t, ta.Name, ResolveTextArea(th.Clone()).Name)
}

func TestResolvePalette(t *testing.T) {
	th := mustParseTheme(t, "name: p\nprimary: \"#112233\"\nsurface: \"#000000\"\ndark: false\n")

	p := ResolvePalette(th)
	require.Equal(t, Palette{Primary: "#112233", Surface: "#000000", Dark: false}, p)
}

func TestThemeYAMLRoundTrip(t *testing.T) {
	themes, err := LoadBuiltinThemes()
	require.NoError(t, err)

	extra := mustParseTheme(t, `
name: shapes
primary: "#112233"
url: null
syntax:
  json_null: dim
method:
  get: green
`)
	named := mustParseTheme(t, "name: named\nprimary: red\nsyntax: monokai\n")

	for _, th := range append(themes, extra, named) {
		data, err := yaml.Marshal(th)
		require.NoError(t, err)

		back, err := Parse(data)
		require.NoError(t, err, string(data))
		back.Source = th.Source
		require.Equal(t, th, back, string(data))
	}
}
