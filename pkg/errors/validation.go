package errors

import (
	"strings"
	"unicode"

	"github.com/lucasb-eyer/go-colorful"
)

// maxFieldNameLength bounds dimension and metric field names.
const maxFieldNameLength = 128

// ValidateFieldName validates a record field name used as a dimension or metric.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 128 characters
func ValidateFieldName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidKey, "field name cannot be empty")
	}

	if len(name) > maxFieldNameLength {
		return New(ErrCodeInvalidKey, "field name too long (max %d characters)", maxFieldNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidKey, "field name contains invalid control characters")
		}
	}

	return nil
}

// ValidateKey validates a dimension field and its metric fields.
// At least one metric is required and metric names must be unique.
func ValidateKey(dimension string, metrics []string) error {
	if err := ValidateFieldName(dimension); err != nil {
		return Wrap(ErrCodeInvalidKey, err, "dimension")
	}
	if len(metrics) == 0 {
		return New(ErrCodeInvalidKey, "at least one metric is required")
	}

	seen := make(map[string]struct{}, len(metrics))
	for _, m := range metrics {
		if err := ValidateFieldName(m); err != nil {
			return Wrap(ErrCodeInvalidKey, err, "metric %q", m)
		}
		if m == dimension {
			return New(ErrCodeInvalidKey, "metric %q is also the dimension", m)
		}
		if _, dup := seen[m]; dup {
			return New(ErrCodeInvalidKey, "duplicate metric %q", m)
		}
		seen[m] = struct{}{}
	}
	return nil
}

// ValidatePath validates a user supplied file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	return nil
}

// ValidateColor checks that s is a hex color understood by SVG renderers
// ("#rgb" or "#rrggbb").
func ValidateColor(s string) error {
	if len(s) != 4 && len(s) != 7 {
		return New(ErrCodeInvalidColor, "invalid color %q (want #rgb or #rrggbb)", s)
	}
	if _, err := colorful.Hex(s); err != nil {
		return Wrap(ErrCodeInvalidColor, err, "invalid color %q", s)
	}
	return nil
}

// ValidateColors validates every entry of a palette.
func ValidateColors(colors []string) error {
	for _, c := range colors {
		if err := ValidateColor(c); err != nil {
			return err
		}
	}
	return nil
}
