package errors

import (
	"slices"
	"strings"
	"unicode"
)

// ValidateDatasetPath validates a dataset path given on the command line or in
// the config file. It does not check that the file exists.
func ValidateDatasetPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidInput, "dataset path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "dataset path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "dataset path contains invalid characters")
		}
	}
	return nil
}

// ValidateDimensions validates a canvas size in pixels.
func ValidateDimensions(width, height float64) error {
	const maxSide = 20000
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "canvas size must be positive, got %gx%g", width, height)
	}
	if width > maxSide || height > maxSide {
		return New(ErrCodeInvalidInput, "canvas size too large (max %d per side)", maxSide)
	}
	return nil
}

// ValidateFormats checks that every requested output format is in allowed.
func ValidateFormats(formats, allowed []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one output format is required")
	}
	for _, f := range formats {
		if !slices.Contains(allowed, f) {
			return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of: %s)", f, strings.Join(allowed, ", "))
		}
	}
	return nil
}

// ValidateLineName validates a line name received from a query string or flag.
func ValidateLineName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "line name cannot be empty")
	}
	if len(name) > 128 {
		return New(ErrCodeInvalidInput, "line name too long (max 128 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "line name contains invalid control characters")
		}
	}
	return nil
}
