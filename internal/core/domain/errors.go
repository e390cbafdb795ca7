// Package domain defines the core domain models for fontsession.
package domain

import (
	"errors"
	"fmt"
)

// DomainError is a domain error carrying a stable code.
//
// Codes follow the format FS-<AREA>-<NNNN>. Two DomainErrors are considered
// equal by errors.Is when their codes match, regardless of message or details.
type DomainError struct {
	Code    string // Error code (e.g., "FS-GLYPH-4001")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support for error comparison.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// ============================================================================
// Glyph snapshot rejections (GLYPH)
// ============================================================================

var (
	// ErrGlyphMissingCode rejects a custom glyph snapshot without a usable code.
	ErrGlyphMissingCode = NewDomainError("FS-GLYPH-4001", "glyph code missing")

	// ErrGlyphMissingCSS rejects a custom glyph snapshot without a css name.
	ErrGlyphMissingCSS = NewDomainError("FS-GLYPH-4002", "glyph css missing")

	// ErrGlyphMissingSVG rejects a custom glyph snapshot without an svg object.
	ErrGlyphMissingSVG = NewDomainError("FS-GLYPH-4003", "glyph svg missing")

	// ErrGlyphInvalidSVGPath rejects an svg payload with an empty or non-string path.
	ErrGlyphInvalidSVGPath = NewDomainError("FS-GLYPH-4004", "glyph svg path invalid")

	// ErrGlyphInvalidSVGWidth rejects an svg payload with a missing or non-positive width.
	ErrGlyphInvalidSVGWidth = NewDomainError("FS-GLYPH-4005", "glyph svg width invalid")

	// ErrGlyphUnknownUID marks a regular-font snapshot whose uid has no live glyph.
	ErrGlyphUnknownUID = NewDomainError("FS-GLYPH-4040", "glyph uid not found")

	// ErrGlyphMalformed marks a glyph snapshot that is not an object at all.
	ErrGlyphMalformed = NewDomainError("FS-GLYPH-4000", "glyph snapshot malformed")
)

// ============================================================================
// Font and document errors (FONT, DOC)
// ============================================================================

var (
	// ErrFontUnknown marks a session font that does not exist in the live model.
	ErrFontUnknown = NewDomainError("FS-FONT-4040", "font not found")

	// ErrFontMalformed marks a font snapshot that is not an object.
	ErrFontMalformed = NewDomainError("FS-FONT-4000", "font snapshot malformed")

	// ErrDocumentMalformed indicates the stored bytes are not a document object.
	ErrDocumentMalformed = NewDomainError("FS-DOC-4000", "document malformed")
)

// ============================================================================
// Store errors (STORE)
// ============================================================================

var (
	// ErrStoreUnavailable indicates the key/value store failed its probe.
	ErrStoreUnavailable = NewDomainError("FS-STORE-5030", "store unavailable")

	// ErrStoreFailure indicates a backend read or write failed.
	ErrStoreFailure = NewDomainError("FS-STORE-5000", "store failure")
)

// ============================================================================
// Workspace errors (WS)
// ============================================================================

var (
	// ErrWorkspaceManifest indicates the font manifest could not be used.
	ErrWorkspaceManifest = NewDomainError("FS-WS-4000", "invalid font manifest")

	// ErrWorkspaceFontNotFound indicates an edit addressed an unknown font.
	ErrWorkspaceFontNotFound = NewDomainError("FS-WS-4040", "workspace font not found")

	// ErrWorkspaceGlyphNotFound indicates an edit addressed an unknown glyph.
	ErrWorkspaceGlyphNotFound = NewDomainError("FS-WS-4041", "workspace glyph not found")

	// ErrWorkspaceNotCustom indicates a custom-only edit addressed a regular font.
	ErrWorkspaceNotCustom = NewDomainError("FS-WS-4001", "font is not the custom font")
)

// ============================================================================
// Configuration errors (CFG)
// ============================================================================

var (
	// ErrInvalidConfig indicates configuration validation failed.
	ErrInvalidConfig = NewDomainError("FS-CFG-4000", "invalid configuration")
)
