package model

import "time"

// TimestampLayout is the wire format for every timestamp returned to callers.
const TimestampLayout = time.RFC3339Nano

// FormatTimestamp renders a store timestamp for API responses.
// Store-native time values never cross the handler boundary; use this instead.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatOptionalTimestamp renders t, returning nil when t is nil.
func FormatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := FormatTimestamp(*t)
	return &s
}

// ParseTimestamp parses a value previously produced by FormatTimestamp.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}
