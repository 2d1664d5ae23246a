package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrInvalidDisplayMode indicates an unknown display mode name.
	ErrInvalidDisplayMode = errors.New("invalid display mode")

	// ErrInvalidLength indicates a negative display length.
	ErrInvalidLength = errors.New("invalid display length")

	// ErrMissingScript indicates custom display mode without a script.
	ErrMissingScript = errors.New("custom display mode requires a script")

	// ErrUnknownFormat indicates a config file extension that is not understood.
	ErrUnknownFormat = errors.New("unknown config format")
)

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Format is "json" or "toml".
	Format string
	// Line is the line number where the error occurred (if available).
	Line int
	// Column is the column number where the error occurred (if available).
	Column int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
	}
	if e.Line > 0 && e.Column > 0 {
		return fmt.Sprintf("%s parse error in %s at line %d, column %d: %s", e.Format, e.Path, e.Line, e.Column, e.Message)
	}
	return fmt.Sprintf("%s parse error in %s: %s", e.Format, e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes an invalid setting.
type ValidationError struct {
	// Path is the dotted setting path, e.g. "url.displayLength".
	Path string
	// Value is the rejected value.
	Value any
	// Err is the sentinel describing the failure.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v (got %v)", e.Path, e.Err, e.Value)
}

// Unwrap returns the sentinel error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
