package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxItems bounds the number of stickers a single board may request.
// Placement cost grows with items × attempts, so the cap keeps a board
// initialization well below a perceptible stall.
const MaxItems = 1000

// MaxDimension bounds viewport dimensions accepted at the boundary.
const MaxDimension = 100_000

// ValidateViewport checks that width and height are finite, positive and
// within MaxDimension. It does not require room for a sticker: degenerate
// viewports are handled by clamping inside the engine.
func ValidateViewport(width, height float64) error {
	for _, d := range []struct {
		name string
		v    float64
	}{{"width", width}, {"height", height}} {
		if math.IsNaN(d.v) || math.IsInf(d.v, 0) {
			return New(ErrCodeInvalidViewport, "%s must be a finite number", d.name)
		}
		if d.v <= 0 {
			return New(ErrCodeInvalidViewport, "%s must be positive, got %v", d.name, d.v)
		}
		if d.v > MaxDimension {
			return New(ErrCodeInvalidViewport, "%s too large (max %d), got %v", d.name, MaxDimension, d.v)
		}
	}
	return nil
}

// ValidateCount checks a requested sticker count.
func ValidateCount(n int) error {
	if n < 0 {
		return New(ErrCodeInvalidInput, "count cannot be negative, got %d", n)
	}
	if n > MaxItems {
		return New(ErrCodeInvalidInput, "count too large (max %d), got %d", MaxItems, n)
	}
	return nil
}

// ValidateCoordinate checks that a drag coordinate is a finite number.
// Out-of-range values are allowed; they are clamped lazily on the next resize.
func ValidateCoordinate(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}

// ValidateAssetPath validates a sticker asset path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
//
// Absolute paths are allowed because assets usually live outside the
// working directory.
func ValidateAssetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "asset path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "asset path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "asset path contains invalid characters")
		}
	}

	for _, segment := range strings.Split(path, "/") {
		if segment == ".." {
			return New(ErrCodeInvalidPath, "asset path cannot contain path traversal sequences (..)")
		}
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "asset path cannot contain backslashes")
	}

	return nil
}

// ValidateOneOf checks that value is one of allowed.
func ValidateOneOf(code Code, kind, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return New(code, "invalid %s: %q (must be one of: %s)", kind, value, strings.Join(allowed, ", "))
}
