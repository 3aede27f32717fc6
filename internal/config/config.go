// Package config loads posting's settings from the config file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	appName        = "posting"
	configFileName = "config.yaml"
	envPrefix      = "POSTING"
)

// Config is the resolved application configuration.
type Config struct {
	// Theme is the name of the active theme.
	Theme string `mapstructure:"theme"`
	// ThemeDirectory is scanned for user theme files.
	ThemeDirectory string `mapstructure:"theme_directory"`
	// WatchThemes reloads themes when files in ThemeDirectory change.
	WatchThemes bool `mapstructure:"watch_themes"`

	Logging LoggingConfig `mapstructure:"logging"`

	// Path is the config file that was read, empty when none was found.
	Path string `mapstructure:"-"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console or json
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Theme:          "galaxy",
		ThemeDirectory: DefaultThemeDirectory(),
		WatchThemes:    false,
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// DefaultPath returns the config file location under the XDG config home.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, appName, configFileName)
}

// DefaultThemeDirectory returns the user theme directory under the XDG data home.
func DefaultThemeDirectory() string {
	return filepath.Join(xdg.DataHome, appName, "themes")
}

// Load reads the config file at path, or the default location when path is
// empty, and applies POSTING_* environment overrides. A missing default file
// is not an error; a missing explicit path is.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case !explicit && (errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)):
		case errors.Is(err, os.ErrNotExist):
			return nil, fmt.Errorf("config file %s not found", path)
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Path = used
	cfg.ThemeDirectory = expandHome(cfg.ThemeDirectory)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Theme) == "" {
		return fmt.Errorf("config: theme must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("config: invalid logging.level %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: invalid logging.format %q (expected console or json)", c.Logging.Format)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("theme", d.Theme)
	v.SetDefault("theme_directory", d.ThemeDirectory)
	v.SetDefault("watch_themes", d.WatchThemes)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
