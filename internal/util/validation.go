package util

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEmail is returned when an address fails the minimal shape check.
	ErrInvalidEmail = errors.New("invalid email address")
	// ErrInvalidPhone is returned when a phone number is empty after trimming.
	ErrInvalidPhone = errors.New("invalid phone number")
)

// IsBlank reports whether a value is empty once surrounding whitespace is
// stripped.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}

// NormalizeEmail checks an address for the minimal accepted shape: a single
// non-leading @ with a non-empty domain part. Surrounding whitespace is
// stripped and the domain lowercased; the local part is passed through
// untouched since its casing belongs to the receiving host. Validation is
// deliberately loose; anything stricter belongs to the delivering provider.
func NormalizeEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: value is empty", ErrInvalidEmail)
	}

	at := strings.LastIndex(trimmed, "@")
	if at <= 0 || at == len(trimmed)-1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, trimmed)
	}
	if strings.ContainsAny(trimmed, " \t") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEmail, trimmed)
	}

	return trimmed[:at+1] + strings.ToLower(trimmed[at+1:]), nil
}

// NormalizePhone trims a phone number and rejects only empty values. Numbers
// are expected to resemble E.164 (leading + and digits) but historical inputs
// without the prefix are accepted as-is.
func NormalizePhone(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("%w: value is empty", ErrInvalidPhone)
	}
	return trimmed, nil
}
