package errors

import (
	"strings"
	"unicode"
)

// ValidateMarker validates the operator-class substring that triggers
// marble-shape alternation.
//
// The marker must be non-empty, at most 64 characters, and free of
// whitespace and control characters: operator class tags never contain
// either, so such a marker could never match.
func ValidateMarker(marker string) error {
	if marker == "" {
		return New(ErrCodeInvalidConfig, "remap marker cannot be empty")
	}
	if len(marker) > 64 {
		return New(ErrCodeInvalidConfig, "remap marker too long (max 64 characters)")
	}
	for _, r := range marker {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "remap marker contains whitespace or control characters: %q", marker)
		}
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - Must not name a directory (trailing separator)
func ValidateOutputPath(path string) error {
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

	if strings.HasSuffix(path, "/") || strings.HasSuffix(path, "\\") {
		return New(ErrCodeInvalidPath, "path must name a file, not a directory: %q", path)
	}

	return nil
}
