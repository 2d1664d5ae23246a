package config

import (
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// JSON key paths of the persisted plugin data.
const (
	keyDisableInSourceMode = "disableInSourceMode"
	keyDisableWhenSelected = "disableWhenSelected"

	keyAlias       = "compactAliasedLinks"
	keyMarkdown    = "compactMarkdownLinks"
	keyTooltip     = keyMarkdown + ".enableTooltip"
	keyURLSettings = keyMarkdown + ".CompactMdLinkUrlSettings"
	keyAltSettings = keyMarkdown + ".CompactMdLinkAltSettings"
)

// ParseJSON reads settings from persisted plugin data. Absent keys keep
// their default values; unknown keys are ignored.
func ParseJSON(data []byte) (Settings, error) {
	s := Default()
	if len(data) == 0 {
		return s, nil
	}
	if !gjson.ValidBytes(data) {
		return s, &ParseError{Format: "json", Message: "malformed document"}
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return s, &ParseError{Format: "json", Message: "top level value is not an object"}
	}

	readBool(root, keyDisableInSourceMode, &s.DisableInSourceMode)
	readBool(root, keyDisableWhenSelected, &s.DisableWhenSelected)

	if err := readLink(root.Get(keyAlias), &s.Alias); err != nil {
		return s, &ParseError{Format: "json", Message: keyAlias + ": " + err.Error(), Err: err}
	}
	if err := readLink(root.Get(keyURLSettings), &s.URL); err != nil {
		return s, &ParseError{Format: "json", Message: keyURLSettings + ": " + err.Error(), Err: err}
	}
	if err := readLink(root.Get(keyAltSettings), &s.Alt); err != nil {
		return s, &ParseError{Format: "json", Message: keyAltSettings + ": " + err.Error(), Err: err}
	}

	// The tooltip flag is shared by both markdown link kinds.
	if v := root.Get(keyTooltip); v.Exists() {
		s.URL.EnableTooltip = v.Bool()
		s.Alt.EnableTooltip = v.Bool()
	}

	return s, s.Validate()
}

func readBool(root gjson.Result, path string, dst *bool) {
	if v := root.Get(path); v.Exists() {
		*dst = v.Bool()
	}
}

func readLink(obj gjson.Result, dst *LinkSettings) error {
	if !obj.Exists() {
		return nil
	}
	if v := obj.Get("enable"); v.Exists() {
		dst.Enable = v.Bool()
	}
	if v := obj.Get("displayMode"); v.Exists() {
		mode, err := ParseDisplayMode(v.String())
		if err != nil {
			return err
		}
		dst.DisplayMode = mode
	}
	if v := obj.Get("displayLength"); v.Exists() {
		n := v.Int()
		if n < 0 {
			return fmt.Errorf("%w: %d", ErrInvalidLength, n)
		}
		dst.DisplayLength = int(n)
	}
	if v := obj.Get("script"); v.Exists() {
		dst.Script = v.String()
	}
	return nil
}

// EncodeJSON writes s onto raw and returns the updated document. Keys that
// Settings does not know about are carried over byte for byte. An empty raw
// starts a new document.
func EncodeJSON(raw []byte, s Settings) ([]byte, error) {
	out := []byte("{}")
	if len(raw) > 0 {
		out = append([]byte(nil), raw...)
	}

	type field struct {
		path  string
		value any
	}
	fields := []field{
		{keyDisableInSourceMode, s.DisableInSourceMode},
		{keyDisableWhenSelected, s.DisableWhenSelected},
		{keyAlias + ".enable", s.Alias.Enable},
		{keyTooltip, s.URL.EnableTooltip || s.Alt.EnableTooltip},
		{keyURLSettings + ".enable", s.URL.Enable},
		{keyURLSettings + ".displayMode", string(s.URL.DisplayMode)},
		{keyAltSettings + ".enable", s.Alt.Enable},
		{keyAltSettings + ".displayMode", string(s.Alt.DisplayMode)},
	}
	if s.URL.DisplayLength > 0 {
		fields = append(fields, field{keyURLSettings + ".displayLength", s.URL.DisplayLength})
	}
	if s.Alt.DisplayLength > 0 {
		fields = append(fields, field{keyAltSettings + ".displayLength", s.Alt.DisplayLength})
	}
	if s.URL.Script != "" {
		fields = append(fields, field{keyURLSettings + ".script", s.URL.Script})
	}
	if s.Alt.Script != "" {
		fields = append(fields, field{keyAltSettings + ".script", s.Alt.Script})
	}

	var err error
	for _, f := range fields {
		out, err = sjson.SetBytes(out, f.path, f.value)
		if err != nil {
			return nil, fmt.Errorf("setting %s: %w", f.path, err)
		}
	}
	return out, nil
}
