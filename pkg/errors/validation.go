package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateLabel validates a node label for safety and correctness.
// Labels become text element content and flow into serialized documents,
// so control characters and null bytes are rejected outright.
//
// The validation rules are intentionally conservative:
//   - No empty labels
//   - No control characters (newlines included)
//   - No null bytes
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidInput, "label cannot be empty")
	}

	if len(label) > 256 {
		return New(ErrCodeInvalidInput, "label too long (max 256 characters)")
	}

	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}

	return nil
}

// ValidateTitle validates a document title. Empty titles are allowed
// (the assembler substitutes a default); otherwise the label rules apply.
func ValidateTitle(title string) error {
	if title == "" {
		return nil
	}
	return ValidateLabel(title)
}

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa CSS hex colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor validates a color value. Accepted forms are CSS hex
// notation and the literal "transparent" sentinel used for no-fill.
func ValidateColor(color string) error {
	if color == "" || color == "transparent" {
		return nil
	}
	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidInput, "invalid color %q (expected #rgb, #rrggbb or transparent)", color)
	}
	return nil
}

// ValidateManifestFilename validates a manifest filename for safety.
// It ensures the filename is a simple basename without path components.
func ValidateManifestFilename(filename string) error {
	if filename == "" {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be empty")
	}

	// Must be a simple filename, not a path
	if strings.ContainsAny(filename, "/\\") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot contain path separators")
	}

	if strings.HasPrefix(filename, ".") {
		return New(ErrCodeInvalidManifest, "manifest filename cannot be a hidden file")
	}

	return nil
}
