package theme

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		theme Theme
		field string
		is    error
	}{
		{
			name:  "missing name",
			theme: Theme{Primary: "#112233"},
			field: "name",
			is:    ErrNameRequired,
		},
		{
			name:  "missing primary",
			theme: Theme{Name: "t"},
			field: "primary",
			is:    ErrPrimaryRequired,
		},
		{
			name:  "malformed hex primary",
			theme: Theme{Name: "t", Primary: "#12345z"},
			field: "primary",
		},
		{
			name:  "bad color",
			theme: Theme{Name: "t", Primary: "#112233", Accent: "not-a-color"},
			field: "accent",
		},
		{
			name:  "bad group style",
			theme: Theme{Name: "t", Primary: "#112233", URL: &URLStyles{Base: "bold #zzzzzz"}},
			field: "url.base",
		},
		{
			name:  "bad structured syntax",
			theme: Theme{Name: "t", Primary: "#112233", Syntax: StructuredSyntax(SyntaxGroup{JSONNull: "sparkly"})},
			field: "syntax.json_null",
		},
		{
			name:  "bad text area style",
			theme: Theme{Name: "t", Primary: "#112233", TextArea: TextAreaStyles{Cursor: "on"}},
			field: "text_area.cursor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.theme.Validate()
			require.Error(t, err)

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			require.Equal(t, tt.field, verr.Field)
			if tt.is != nil {
				require.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestValidateAccepts(t *testing.T) {
	th := Theme{
		Name:      "ok",
		Primary:   "#112233",
		Secondary: "rgb(1, 2, 3)",
		Warning:   "bright_yellow",
		TextArea:  TextAreaStyles{Cursor: "reverse", Selection: "on #333333"},
		URL:       &URLStyles{Separator: "dim"},
		Method:    &MethodStyles{Get: "bold green"},
	}
	require.NoError(t, th.Validate())
}

func TestParseRejectsMalformedHex(t *testing.T) {
	for _, primary := range []string{"#12345z", "#abcdeg"} {
		_, err := Parse([]byte("name: t\nprimary: \"" + primary + "\"\n"))
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), primary)
		require.Equal(t, "primary", verr.Field)
		require.Equal(t, primary, verr.Value)
	}
}

func TestNewNormalizesAndCopies(t *testing.T) {
	in := Theme{
		Name:      "  spaced  ",
		Primary:   " #112233 ",
		URL:       &URLStyles{Base: " bold "},
		Variables: map[string]string{"footer-background": "transparent"},
	}

	out, err := New(in)
	require.NoError(t, err)
	require.Equal(t, "spaced", out.Name)
	require.Equal(t, "#112233", out.Primary)
	require.Equal(t, "bold", out.URL.Base)

	out.URL.Base = "dim"
	out.Variables["footer-background"] = "red"
	require.Equal(t, " bold ", in.URL.Base)
	require.Equal(t, "transparent", in.Variables["footer-background"])
	require.Equal(t, &VariableStyles{}, out.Variable)
	require.Nil(t, out.Method)
	require.True(t, out.IsDark())
}

func TestNewKeepsExplicitLight(t *testing.T) {
	out, err := New(Theme{Name: "l", Primary: "#ffffff", Dark: BoolPtr(false)})
	require.NoError(t, err)
	require.False(t, out.IsDark())
	require.NotNil(t, out.URL)
}
