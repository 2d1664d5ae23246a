package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseTOML(t *testing.T) {
	data := []byte(`
[log]
level = "debug"
file = "/tmp/compactlinks.log"

[engine]
viewport_threshold = 250
cache_capacity = 64

[links]
disable_when_selected = true

[links.url]
display_mode = "truncated"
display_length = 20

[links.alt]
enable = false
`)

	cfg, err := ParseTOML(data)
	if err != nil {
		t.Fatalf("ParseTOML error: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.LogFile != "/tmp/compactlinks.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.Threshold != 250 {
		t.Errorf("Threshold = %d, want 250", cfg.Threshold)
	}
	if cfg.CacheCapacity != 64 {
		t.Errorf("CacheCapacity = %d, want 64", cfg.CacheCapacity)
	}
	if !cfg.Settings.DisableWhenSelected {
		t.Error("DisableWhenSelected = false, want true")
	}
	if cfg.Settings.URL.DisplayMode != DisplayTruncated || cfg.Settings.URL.DisplayLength != 20 {
		t.Errorf("URL = %+v", cfg.Settings.URL)
	}
	if !cfg.Settings.URL.EnableTooltip {
		t.Error("URL tooltip default lost")
	}
	if cfg.Settings.Alt.Enable {
		t.Error("Alt.Enable = true, want false")
	}
	if !cfg.Settings.Alias.Enable {
		t.Error("Alias.Enable default lost")
	}
}

func TestParseTOMLEmpty(t *testing.T) {
	cfg, err := ParseTOML(nil)
	if err != nil {
		t.Fatalf("ParseTOML(nil) error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("ParseTOML(nil) = %+v, want defaults", cfg)
	}
}

func TestParseTOMLErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		is   error
	}{
		{"syntax", "[links\nenable = true", nil},
		{"mode", "[links.alt]\ndisplay_mode = \"wide\"", ErrInvalidDisplayMode},
		{"length", "[links.url]\ndisplay_length = -1", ErrInvalidLength},
		{"threshold", "[engine]\nviewport_threshold = -5", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTOML([]byte(tt.in))
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("error = %v, want *ParseError", err)
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Error("Load of a missing file should return defaults")
	}

	s, err := LoadSettings(filepath.Join(t.TempDir(), "data.json"))
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}
	if s != Default() {
		t.Error("LoadSettings of a missing file should return defaults")
	}
}

func TestLoadUnknownFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("a: 1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Load error = %v, want ErrUnknownFormat", err)
	}
}

func TestLoadSettingsFileReference(t *testing.T) {
	dir := t.TempDir()
	data := `{"compactAliasedLinks": {"enable": false}}`
	if err := os.WriteFile(filepath.Join(dir, "data.json"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	conf := "[links]\nsettings_file = \"data.json\"\n"
	path := filepath.Join(dir, "compactlinks.toml")
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.SettingsPath != filepath.Join(dir, "data.json") {
		t.Errorf("SettingsPath = %q", cfg.SettingsPath)
	}
	if cfg.Settings.Alias.Enable {
		t.Error("settings from data.json not applied")
	}
}

func TestLoadParseErrorHasPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadSettings(path)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
	if perr.Path != path {
		t.Errorf("Path = %q, want %q", perr.Path, path)
	}
}

func TestSaveSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(`{"theme": "dark"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Default()
	s.URL.DisplayMode = DisplayHidden
	if err := SaveSettings(path, s); err != nil {
		t.Fatalf("SaveSettings error: %v", err)
	}

	got, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings error: %v", err)
	}
	if got != s {
		t.Errorf("LoadSettings = %+v, want %+v", got, s)
	}

	raw, _ := os.ReadFile(path)
	if !strings.Contains(string(raw), `"theme"`) {
		t.Error("unknown key dropped")
	}
}

