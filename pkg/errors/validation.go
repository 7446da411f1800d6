package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateLibraryName validates a photo library name for safety and
// correctness. It rejects names that could be used for path traversal
// or injection attacks.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path traversal sequences (.., //, etc.)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateLibraryName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "library name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "library name too long (max 256 characters)")
	}

	// Check for control characters and null bytes
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "library name contains invalid control characters")
		}
	}

	// Check for path traversal patterns
	dangerousPatterns := []string{
		"..",   // Parent directory
		"//",   // Double slash
		"\x00", // Null byte
		"\\",   // Backslash (Windows path)
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidInput, "library name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidatePath validates a file path for safety.
// It prevents path traversal attacks and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	// Must not be absolute path
	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateBreakpoints validates a breakpoint column-count list.
// Counts must be positive and strictly increasing so each breakpoint
// describes a wider viewport than the one before it.
func ValidateBreakpoints(widths []int) error {
	if len(widths) == 0 {
		return New(ErrCodeInvalidBreakpoint, "at least one breakpoint is required")
	}

	for i, w := range widths {
		if w < 1 {
			return New(ErrCodeInvalidBreakpoint, "breakpoint %d has non-positive column count %d", i, w)
		}
		if i > 0 && w <= widths[i-1] {
			return New(ErrCodeInvalidBreakpoint,
				"breakpoint column counts must be strictly increasing (%d after %d)", w, widths[i-1])
		}
	}

	return nil
}

// ValidateShortEdge validates the short-edge unit count used for
// footprint rounding.
func ValidateShortEdge(n int) error {
	if n < 1 {
		return New(ErrCodeInvalidInput, "short edge must be at least 1, got %d", n)
	}
	if n > 8 {
		return New(ErrCodeInvalidInput, "short edge %d is too large (max 8)", n)
	}
	return nil
}

// bucketNameRegex matches valid S3-style bucket names.
var bucketNameRegex = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]*[a-z0-9]$`)

// ValidateBucketName validates an S3-style bucket name.
func ValidateBucketName(name string) error {
	if len(name) < 3 || len(name) > 63 {
		return New(ErrCodeInvalidInput, "bucket name must be 3-63 characters: %q", name)
	}

	if !bucketNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid bucket name: %q", name)
	}

	return nil
}

// ValidateObjectKey validates a bucket object key.
// Keys must be relative, traversal-free paths.
func ValidateObjectKey(key string) error {
	if err := ValidatePath(key); err != nil {
		return err
	}

	const maxKeyLength = 1024
	if len(key) > maxKeyLength {
		return New(ErrCodeInvalidPath, "object key too long (max %d characters)", maxKeyLength)
	}

	return nil
}
