package config

import (
	"path/filepath"
	"strings"

	"github.com/vacrashmap/crashcheck/internal/errors"
)

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidFormat indicates an unrecognized output format.
	ErrInvalidFormat = errors.New(`output format must be "text" or "json"`)

	// ErrInvalidColorMode indicates an unrecognized output color mode.
	ErrInvalidColorMode = errors.New(`output color must be "auto", "always", or "never"`)

	// ErrInvalidPath indicates a path value is malformed.
	ErrInvalidPath = errors.New("invalid path")
)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	// Version must be >= 1
	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if err := validatePath(cfg.DataPath); err != nil {
		errs = append(errs, &FieldError{
			Field: "data_path",
			Value: cfg.DataPath,
			Err:   err,
		})
	}

	switch cfg.Output.Format {
	case FormatText, FormatJSON:
	default:
		errs = append(errs, &FieldError{
			Field: "output.format",
			Value: cfg.Output.Format,
			Err:   ErrInvalidFormat,
		})
	}

	switch cfg.Output.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs = append(errs, &FieldError{
			Field: "output.color",
			Value: cfg.Output.Color,
			Err:   ErrInvalidColorMode,
		})
	}

	return errs
}

// validatePath checks if a path string is well-formed.
// It does not check if the path exists, only that it's syntactically valid.
func validatePath(path string) error {
	// Check for null bytes which are never valid in paths
	if strings.ContainsRune(path, '\x00') {
		return ErrInvalidPath
	}

	// Clean the path and check it's not empty after cleaning
	cleaned := filepath.Clean(path)
	if path == "" || cleaned == "" || cleaned == "." {
		return ErrInvalidPath
	}

	return nil
}

// FieldError ties a validation error to the config field that caused it.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return e.Field + ": " + e.Err.Error()
	}
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
