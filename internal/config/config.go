package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/compactlinks/internal/decoration"
)

// DisplayMode selects how a span is shown when compacted.
type DisplayMode string

// Display modes.
const (
	// DisplayHidden removes the span from view.
	DisplayHidden DisplayMode = "hidden"

	// DisplayDomain shows only the URL's [scheme://]domain.
	DisplayDomain DisplayMode = "domain"

	// DisplayTruncated shows the text cut to DisplayLength columns.
	DisplayTruncated DisplayMode = "truncated"

	// DisplayCustom asks the configured script for the display text.
	DisplayCustom DisplayMode = "custom"
)

// DefaultDisplayLength is the truncation budget used when none is set.
const DefaultDisplayLength = 30

// ParseDisplayMode parses a display mode name. "hide" is accepted as an
// older spelling of "hidden".
func ParseDisplayMode(s string) (DisplayMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hidden", "hide":
		return DisplayHidden, nil
	case "domain":
		return DisplayDomain, nil
	case "truncated":
		return DisplayTruncated, nil
	case "custom":
		return DisplayCustom, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidDisplayMode, s)
	}
}

// LinkSettings configures one kind of compacted span.
type LinkSettings struct {
	Enable        bool
	DisplayMode   DisplayMode
	DisplayLength int
	EnableTooltip bool

	// Script is Lua source defining display(kind, text, scheme, domain),
	// used in DisplayCustom mode.
	Script string
}

// Length returns DisplayLength, or DefaultDisplayLength when unset.
func (l LinkSettings) Length() int {
	if l.DisplayLength <= 0 {
		return DefaultDisplayLength
	}
	return l.DisplayLength
}

// Settings is an immutable snapshot of the decoration settings.
type Settings struct {
	// DisableInSourceMode turns every engine off while the host shows raw source.
	DisableInSourceMode bool

	// DisableWhenSelected suppresses all decorations while text is selected.
	DisableWhenSelected bool

	Alias LinkSettings
	URL   LinkSettings
	Alt   LinkSettings
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		DisableInSourceMode: false,
		DisableWhenSelected: false,
		Alias: LinkSettings{
			Enable:      true,
			DisplayMode: DisplayHidden,
		},
		URL: LinkSettings{
			Enable:        true,
			DisplayMode:   DisplayDomain,
			DisplayLength: DefaultDisplayLength,
			EnableTooltip: true,
		},
		Alt: LinkSettings{
			Enable:        true,
			DisplayMode:   DisplayTruncated,
			DisplayLength: DefaultDisplayLength,
			EnableTooltip: true,
		},
	}
}

// For returns the settings of one decoration kind.
func (s Settings) For(kind decoration.Kind) LinkSettings {
	switch kind {
	case decoration.KindAlias:
		return s.Alias
	case decoration.KindURL:
		return s.URL
	case decoration.KindAltText:
		return s.Alt
	default:
		return LinkSettings{}
	}
}

// With returns a copy of s with the settings of kind replaced.
func (s Settings) With(kind decoration.Kind, l LinkSettings) Settings {
	switch kind {
	case decoration.KindAlias:
		s.Alias = l
	case decoration.KindURL:
		s.URL = l
	case decoration.KindAltText:
		s.Alt = l
	}
	return s
}

// WithDisableWhenSelected returns a copy of s with the selection flag set.
func (s Settings) WithDisableWhenSelected(v bool) Settings {
	s.DisableWhenSelected = v
	return s
}

// Validate checks every kind's settings.
func (s Settings) Validate() error {
	var errs []error
	for _, kind := range decoration.Kinds {
		l := s.For(kind)
		prefix := kind.String()
		if _, err := ParseDisplayMode(string(l.DisplayMode)); err != nil {
			errs = append(errs, &ValidationError{Path: prefix + ".displayMode", Value: l.DisplayMode, Err: ErrInvalidDisplayMode})
		}
		if l.DisplayLength < 0 {
			errs = append(errs, &ValidationError{Path: prefix + ".displayLength", Value: l.DisplayLength, Err: ErrInvalidLength})
		}
		if l.Enable && l.DisplayMode == DisplayCustom && strings.TrimSpace(l.Script) == "" {
			errs = append(errs, &ValidationError{Path: prefix + ".script", Value: "", Err: ErrMissingScript})
		}
	}
	return errors.Join(errs...)
}
