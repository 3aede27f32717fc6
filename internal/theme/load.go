package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// SourceBuiltin is the Source of themes bundled with posting.
const SourceBuiltin = "builtin"

// LoadError describes a theme file that could not be parsed or validated.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("invalid theme file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// LoadErrors collects the files skipped while loading a directory.
type LoadErrors []*LoadError

func (e LoadErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("%d theme files failed to load: %s", len(e), strings.Join(msgs, "; "))
}

func (e LoadErrors) Unwrap() []error {
	out := make([]error, 0, len(e))
	for _, err := range e {
		out = append(out, err)
	}
	return out
}

// IsThemeFile reports whether path has a theme file extension.
func IsThemeFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Parse parses and validates a theme from YAML. Absent url and variable
// groups default to empty groups, an absent method group stays absent, and
// an explicit null removes a group.
func Parse(data []byte) (*Theme, error) {
	t := Base("", "")
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, err
	}

	t.normalize()
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTheme reads a single theme from disk.
func LoadTheme(path string) (*Theme, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("theme path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read theme %s: %w", path, err)
	}
	return parseFile(path, data)
}

// LoadThemesFromDir loads every theme file of dir in directory order.
// Unreadable entries and files without a theme extension are skipped.
// Invalid files do not stop the load: the valid themes are returned along
// with a LoadErrors naming each rejected file. A missing directory yields
// no themes and no error.
func LoadThemesFromDir(dir string) ([]*Theme, error) {
	if strings.TrimSpace(dir) == "" {
		return []*Theme{}, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []*Theme{}, nil
		}
		return nil, fmt.Errorf("read themes dir %s: %w", dir, err)
	}

	themes := make([]*Theme, 0, len(entries))
	var errs LoadErrors
	for _, entry := range entries {
		if entry.IsDir() || !IsThemeFile(entry.Name()) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		t, err := parseFile(path, data)
		if err != nil {
			var loadErr *LoadError
			if errors.As(err, &loadErr) {
				errs = append(errs, loadErr)
				continue
			}
			return nil, err
		}
		themes = append(themes, t)
	}

	if len(errs) > 0 {
		return themes, errs
	}
	return themes, nil
}

func parseFile(path string, data []byte) (*Theme, error) {
	t, err := Parse(data)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	t.Source = path
	return t, nil
}

// Loader resolves user themes and merges them over the builtin registry.
type Loader struct {
	logger zerolog.Logger
	syntax SyntaxLookup
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithSyntaxLookup sets the lookup used for named syntax themes.
func WithSyntaxLookup(lookup SyntaxLookup) LoaderOption {
	return func(l *Loader) {
		l.syntax = lookup
	}
}

// NewLoader creates a Loader. Named syntax themes resolve through chroma
// unless WithSyntaxLookup says otherwise.
func NewLoader(logger zerolog.Logger, opts ...LoaderOption) *Loader {
	l := &Loader{
		logger: logger,
		syntax: ChromaSyntaxLookup{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadDir loads and resolves the themes of dir. Files that fail to parse,
// validate or resolve are logged and returned as LoadErrors next to the
// themes that succeeded.
func (l *Loader) LoadDir(dir string) ([]*Resolved, error) {
	themes, err := LoadThemesFromDir(dir)
	var errs LoadErrors
	if err != nil && !errors.As(err, &errs) {
		return nil, err
	}

	resolved := make([]*Resolved, 0, len(themes))
	for _, t := range themes {
		r, err := Resolve(t, l.syntax)
		if err != nil {
			errs = append(errs, &LoadError{Path: t.Source, Err: err})
			continue
		}
		resolved = append(resolved, r)
	}

	for _, loadErr := range errs {
		l.logger.Warn().
			Str("path", loadErr.Path).
			Err(loadErr.Err).
			Msg("skipping invalid theme file")
	}
	l.logger.Debug().
		Str("dir", dir).
		Int("themes", len(resolved)).
		Int("skipped", len(errs)).
		Msg("loaded user themes")

	if len(errs) > 0 {
		return resolved, errs
	}
	return resolved, nil
}

// Build returns the builtin registry with the themes of dir merged on top.
// On LoadErrors the registry is still returned.
func (l *Loader) Build(dir string) (*Registry, error) {
	base, err := Builtin()
	if err != nil {
		return nil, err
	}

	user, err := l.LoadDir(dir)
	var errs LoadErrors
	if err != nil && !errors.As(err, &errs) {
		return nil, err
	}

	registry := base.With(user...)
	if len(errs) > 0 {
		return registry, errs
	}
	return registry, nil
}

// Reload builds a fresh registry from dir and publishes it to store in a
// single swap. Skipped files are reported through the returned error, the
// registry is published regardless.
func (l *Loader) Reload(dir string, store *Store) error {
	if store == nil {
		return fmt.Errorf("theme store is required")
	}

	registry, err := l.Build(dir)
	if registry == nil {
		return err
	}

	store.Swap(registry)
	l.logger.Info().
		Str("dir", dir).
		Int("themes", registry.Len()).
		Msg("theme registry published")
	return err
}
