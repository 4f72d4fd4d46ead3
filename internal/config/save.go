package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/datekit/internal/atomicfile"
)

type persistedConfig struct {
	DefaultTemplate *string              `toml:"default_template,omitempty"`
	Dialect         *string              `toml:"dialect,omitempty"`
	Timezone        *string              `toml:"timezone,omitempty"`
	Now             *string              `toml:"now,omitempty"`
	DayFirst        *bool                `toml:"day_first,omitempty"`
	Extensions      *string              `toml:"extensions,omitempty"`
	UI              *persistedUISettings `toml:"ui,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically. Empty
// settings are omitted.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		// default_template is kept verbatim; leading spaces can be meaningful.
		Dialect:    nonEmptyPtr(cfg.Dialect),
		Timezone:   nonEmptyPtr(cfg.Timezone),
		Now:        nonEmptyPtr(cfg.Now),
		Extensions: nonEmptyPtr(cfg.Extensions),
	}
	if cfg.DefaultTemplate != "" {
		tmpl := cfg.DefaultTemplate
		out.DefaultTemplate = &tmpl
	}
	if cfg.DayFirst {
		dayFirst := true
		out.DayFirst = &dayFirst
	}

	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	err := atomicfile.Write(path, 0o644, func(w io.Writer) error {
		return toml.NewEncoder(w).Encode(out)
	})
	if err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}

func writeAtomic(path string, data []byte) error {
	if err := atomicfile.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	return nil
}
