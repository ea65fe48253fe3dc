// ABOUTME: Date normalization for leave record submission
// ABOUTME: Date-only picker values become midnight timestamps, never defaults

package client

import "strings"

// MidnightTimestamp converts a date-only value like "2024-05-01" into the
// midnight timestamp the API expects ("2024-05-01T00:00:00"). An empty
// value stays absent; a missing date is never coerced to today or any
// other default.
func MidnightTimestamp(date string) *string {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil
	}
	ts := date + "T00:00:00"
	return &ts
}
