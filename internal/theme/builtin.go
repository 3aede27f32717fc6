package theme

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"sync"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinThemes returns the theme descriptors bundled with posting.
func LoadBuiltinThemes() ([]*Theme, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin themes: %w", err)
	}

	themes := make([]*Theme, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !IsThemeFile(entry.Name()) {
			continue
		}
		path := "builtin/" + entry.Name()
		data, err := builtinFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read builtin theme %s: %w", entry.Name(), err)
		}
		t, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin theme %s: %w", entry.Name(), err)
		}
		t.Source = SourceBuiltin
		themes = append(themes, t)
	}

	sort.Slice(themes, func(i, j int) bool {
		return themes[i].Name < themes[j].Name
	})

	return themes, nil
}

var builtinRegistry = sync.OnceValues(func() (*Registry, error) {
	themes, err := LoadBuiltinThemes()
	if err != nil {
		return nil, err
	}

	resolved := make([]*Resolved, 0, len(themes))
	for _, t := range themes {
		r, err := Resolve(t, ChromaSyntaxLookup{})
		if err != nil {
			return nil, fmt.Errorf("resolve builtin theme %s: %w", t.Name, err)
		}
		resolved = append(resolved, r)
	}
	return NewRegistry(resolved...), nil
})

// Builtin returns the registry of builtin themes. It is built on first use
// and shared by every caller, so it must not be modified.
func Builtin() (*Registry, error) {
	return builtinRegistry()
}

// MustBuiltin is like Builtin but panics if the bundled themes are broken.
func MustBuiltin() *Registry {
	r, err := Builtin()
	if err != nil {
		panic(err)
	}
	return r
}
