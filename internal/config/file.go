package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/compactlinks/internal/viewport"
)

// FileConfig is the command-line tool's configuration.
type FileConfig struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string

	// LogFile is where logs are written. When empty the viewer discards
	// logs and the printer writes them to stderr.
	LogFile string

	// SettingsPath points at a persisted plugin data file whose settings
	// replace the Links tables below.
	SettingsPath string

	// Threshold is the viewport significance threshold in characters.
	Threshold int

	// CacheCapacity bounds each engine's decoration cache.
	CacheCapacity int

	// Settings are the link settings.
	Settings Settings
}

// DefaultConfig returns the default tool configuration.
func DefaultConfig() FileConfig {
	return FileConfig{
		LogLevel:      "info",
		Threshold:     viewport.DefaultThreshold,
		CacheCapacity: 1000,
		Settings:      Default(),
	}
}

// tomlFile mirrors the on-disk layout. Pointers tell absent keys apart
// from zero values.
type tomlFile struct {
	Log struct {
		Level *string `toml:"level"`
		File  *string `toml:"file"`
	} `toml:"log"`
	Engine struct {
		Threshold     *int `toml:"viewport_threshold"`
		CacheCapacity *int `toml:"cache_capacity"`
	} `toml:"engine"`
	Links struct {
		SettingsFile        *string   `toml:"settings_file"`
		DisableInSourceMode *bool     `toml:"disable_in_source_mode"`
		DisableWhenSelected *bool     `toml:"disable_when_selected"`
		Alias               tomlLinks `toml:"alias"`
		URL                 tomlLinks `toml:"url"`
		Alt                 tomlLinks `toml:"alt"`
	} `toml:"links"`
}

type tomlLinks struct {
	Enable        *bool   `toml:"enable"`
	DisplayMode   *string `toml:"display_mode"`
	DisplayLength *int    `toml:"display_length"`
	Tooltip       *bool   `toml:"tooltip"`
	Script        *string `toml:"script"`
}

func (t tomlLinks) apply(dst *LinkSettings) error {
	if t.Enable != nil {
		dst.Enable = *t.Enable
	}
	if t.DisplayMode != nil {
		mode, err := ParseDisplayMode(*t.DisplayMode)
		if err != nil {
			return err
		}
		dst.DisplayMode = mode
	}
	if t.DisplayLength != nil {
		if *t.DisplayLength < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidLength, *t.DisplayLength)
		}
		dst.DisplayLength = *t.DisplayLength
	}
	if t.Tooltip != nil {
		dst.EnableTooltip = *t.Tooltip
	}
	if t.Script != nil {
		dst.Script = *t.Script
	}
	return nil
}

// ParseTOML parses the tool configuration. Absent keys keep their defaults.
func ParseTOML(data []byte) (FileConfig, error) {
	cfg := DefaultConfig()

	var raw tomlFile
	if err := toml.Unmarshal(data, &raw); err != nil {
		perr := &ParseError{Format: "toml", Message: err.Error(), Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return cfg, perr
	}

	if raw.Log.Level != nil {
		cfg.LogLevel = *raw.Log.Level
	}
	if raw.Log.File != nil {
		cfg.LogFile = *raw.Log.File
	}
	if raw.Engine.Threshold != nil {
		cfg.Threshold = *raw.Engine.Threshold
	}
	if raw.Engine.CacheCapacity != nil {
		cfg.CacheCapacity = *raw.Engine.CacheCapacity
	}
	if raw.Links.SettingsFile != nil {
		cfg.SettingsPath = *raw.Links.SettingsFile
	}
	if raw.Links.DisableInSourceMode != nil {
		cfg.Settings.DisableInSourceMode = *raw.Links.DisableInSourceMode
	}
	if raw.Links.DisableWhenSelected != nil {
		cfg.Settings.DisableWhenSelected = *raw.Links.DisableWhenSelected
	}

	links := []struct {
		name string
		src  tomlLinks
		dst  *LinkSettings
	}{
		{"links.alias", raw.Links.Alias, &cfg.Settings.Alias},
		{"links.url", raw.Links.URL, &cfg.Settings.URL},
		{"links.alt", raw.Links.Alt, &cfg.Settings.Alt},
	}
	for _, l := range links {
		if err := l.src.apply(l.dst); err != nil {
			return cfg, &ParseError{Format: "toml", Message: l.name + ": " + err.Error(), Err: err}
		}
	}

	if cfg.Threshold < 0 {
		return cfg, &ParseError{Format: "toml", Message: "engine.viewport_threshold must not be negative"}
	}
	if cfg.CacheCapacity < 0 {
		return cfg, &ParseError{Format: "toml", Message: "engine.cache_capacity must not be negative"}
	}

	return cfg, cfg.Settings.Validate()
}

// Load reads a tool configuration file. A .json file is treated as
// persisted plugin data and only sets the link settings. A missing file
// yields the defaults.
func Load(path string) (FileConfig, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		cfg, err = ParseTOML(data)
	case ".json":
		cfg.Settings, err = ParseJSON(data)
	default:
		return cfg, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
	if err != nil {
		return cfg, withPath(err, path)
	}

	if cfg.SettingsPath != "" {
		p := cfg.SettingsPath
		if !filepath.IsAbs(p) {
			p = filepath.Join(filepath.Dir(path), p)
		}
		cfg.SettingsPath = p
		s, err := LoadSettings(p)
		if err != nil {
			return cfg, err
		}
		cfg.Settings = s
	}
	return cfg, nil
}

// LoadSettings reads persisted plugin data. A missing file yields Default().
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("reading settings file %s: %w", path, err)
	}
	s, err := ParseJSON(data)
	if err != nil {
		return Default(), withPath(err, path)
	}
	return s, nil
}

// SaveSettings writes s into the data file at path, preserving keys that
// are not settings.
func SaveSettings(path string, s Settings) error {
	raw, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading settings file %s: %w", path, err)
	}
	out, err := EncodeJSON(raw, s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("writing settings file %s: %w", path, err)
	}
	return nil
}

func withPath(err error, path string) error {
	var perr *ParseError
	if errors.As(err, &perr) {
		perr.Path = path
		return perr
	}
	return fmt.Errorf("%s: %w", path, err)
}
