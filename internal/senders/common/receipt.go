package common

import (
	"time"
	"unicode/utf8"
)

// DefaultDetailLimit defines the maximum number of characters retained from a
// provider response body when attaching it to a SendReceipt.
const DefaultDetailLimit = 1024

// SendReceipt captures normalized provider information exchanged between the
// per-channel senders and their callers.
type SendReceipt struct {
	ID        string
	Code      int
	Detail    string
	Timestamp time.Time
}

// TruncateDetail trims the supplied string to the specified rune limit. If
// limit is zero or negative it returns an empty string.
func TruncateDetail(detail string, limit int) string {
	if limit <= 0 {
		return ""
	}
	if utf8.RuneCountInString(detail) <= limit {
		return detail
	}
	runes := []rune(detail)
	return string(runes[:limit])
}
