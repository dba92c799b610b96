package errors

import "unicode"

// Input bounds for the application surfaces. The core itself accepts any
// input; these limits protect the HTTP API and CLI from pathological
// requests, a resource condition rather than a modeled error.
const (
	// MaxTextLen caps the raw input text accepted by the API (bytes).
	MaxTextLen = 64 * 1024

	// MaxDimension caps canvas width and height in canvas units.
	MaxDimension = 100_000

	// MinDimension is the smallest usable canvas edge.
	MinDimension = 1
)

// ValidateText checks raw sketch text for size and byte-level sanity.
// Newlines and tabs are allowed; other control characters are rejected
// since they can only come from binary input.
func ValidateText(text string) error {
	if len(text) > MaxTextLen {
		return New(ErrCodeInvalidInput, "input text too large (max %d bytes)", MaxTextLen)
	}
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' {
			continue
		}
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "input text contains control characters")
		}
	}
	return nil
}

// ValidateDimensions checks canvas bounds.
func ValidateDimensions(width, height float64) error {
	if width < MinDimension || height < MinDimension {
		return New(ErrCodeInvalidDimensions, "canvas must be at least %dx%d", MinDimension, MinDimension)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimensions, "canvas exceeds %d units", MaxDimension)
	}
	return nil
}

// ValidateDiagramName checks a snapshot name for the store.
func ValidateDiagramName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "diagram name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidInput, "diagram name too long (max 256 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "diagram name contains control characters")
		}
	}
	return nil
}
