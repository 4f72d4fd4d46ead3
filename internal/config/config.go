// Package config handles global datekit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/datekit/internal/dates"
)

// Config represents the global datekit configuration.
type Config struct {
	// DefaultTemplate is used by `dk format` when no template is given.
	DefaultTemplate string `toml:"default_template"`

	// Dialect forces a dialect for `dk format` instead of detecting one.
	Dialect string `toml:"dialect"`

	// Timezone is an IANA zone name ("America/Chicago") or a fixed offset
	// ("+05:30"). Empty means the machine zone.
	Timezone string `toml:"timezone"`

	// Now pins the reference instant for relative expressions. Any text the
	// parser accepts is allowed.
	Now string `toml:"now"`

	// DayFirst reads 1/3/2006 as 1 March by moving the us pattern after world.
	DayFirst bool `toml:"day_first"`

	// Extensions is a path to a YAML file with extra fragments, patterns and
	// dialects. Relative paths resolve against the config file's directory.
	Extensions string `toml:"extensions"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown rendering.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Location resolves Timezone. Empty means time.Local.
func (c *Config) Location() (*time.Location, error) {
	return ResolveLocation(c.Timezone)
}

// ResolveLocation reads an IANA zone name or a ±HH:MM offset.
func ResolveLocation(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return time.Local, nil
	case strings.EqualFold(name, "utc"), name == "Z":
		return time.UTC, nil
	case strings.HasPrefix(name, "+"), strings.HasPrefix(name, "-"):
		minutes, err := dates.ParseOffset(name)
		if err != nil {
			return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
		}
		return dates.FixedZone(minutes), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// ExtensionsPath returns Extensions resolved against the directory of the
// config file at configPath.
func (c *Config) ExtensionsPath(configPath string) string {
	p := strings.TrimSpace(c.Extensions)
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	if filepath.IsAbs(p) || configPath == "" {
		return p
	}
	return filepath.Join(filepath.Dir(configPath), p)
}

// ResolveConfigPath resolves the effective config path from an optional override.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	md, err := toml.DecodeFile(path, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("failed to parse config %s: unknown key %q", path, undecoded[0].String())
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/datekit/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "datekit", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "datekit", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// DefaultContents is the commented template written by CreateDefault.
const DefaultContents = `# datekit configuration

# Template used by 'dk format' when none is given.
# Templates containing % use strftime codes, anything else uses php letters.
# default_template = "%Y-%m-%d %H:%M:%S"

# Force a dialect instead of detecting one: strftime, php, sql.
# dialect = "php"

# IANA zone name or fixed offset. Empty uses the machine zone.
# timezone = "America/Chicago"

# Pin "now" for reproducible relative expressions.
# now = "2010-07-19 12:00"

# Read 1/3/2006 as 1 March.
# day_first = true

# Extra fragments, patterns and dialects (YAML).
# extensions = "extensions.yaml"

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

// CreateDefault creates a default config file at path if it doesn't exist.
// An empty path means DefaultPath. It reports whether a file was written.
func CreateDefault(path string) (string, bool, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := writeAtomic(path, []byte(DefaultContents)); err != nil {
		return "", false, err
	}

	return path, true, nil
}
