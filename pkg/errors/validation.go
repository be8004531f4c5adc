package errors

import (
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxTextLength bounds the input text in bytes.
const MaxTextLength = 2000

// Formats lists the output formats the renderer produces.
var Formats = []string{"png", "svg", "pdf", "json"}

// ValidateText checks text to be inscribed. It must be valid UTF-8, contain
// at least one letter or digit, stay within [MaxTextLength] and carry no
// control characters other than newlines and tabs.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeEmptyText, "text cannot be empty")
	}
	if len(text) > MaxTextLength {
		return New(ErrCodeInvalidInput, "text too long (max %d bytes)", MaxTextLength)
	}
	if !utf8.ValidString(text) {
		return New(ErrCodeInvalidInput, "text is not valid UTF-8")
	}

	alnum := false
	for _, r := range text {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			return New(ErrCodeInvalidInput, "text contains invalid control characters")
		}
		alnum = alnum || unicode.IsLetter(r) || unicode.IsDigit(r)
	}
	if !alnum {
		return New(ErrCodeEmptyText, "text has no letters or digits")
	}
	return nil
}

// ValidateSeedString parses a decimal seed. The empty string yields 0 and
// no error, meaning "pick a seed".
func ValidateSeedString(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, Wrap(ErrCodeInvalidSeed, err, "seed must be a non-negative integer: %q", s)
	}
	return seed, nil
}

// ValidateFormat checks a single output format name.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return New(ErrCodeInvalidFormat, "unsupported format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// ValidateFilename validates an output base name. It must be a plain file
// name: no directories, not hidden, no traversal.
func ValidateFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "filename cannot be empty")
	}
	if len(name) > 255 {
		return New(ErrCodeInvalidPath, "filename too long (max 255 characters)")
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "filename contains invalid characters")
		}
	}
	if strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return New(ErrCodeInvalidPath, "filename cannot contain path separators")
	}
	if strings.HasPrefix(name, ".") {
		return New(ErrCodeInvalidPath, "filename cannot be a hidden file")
	}
	return nil
}
