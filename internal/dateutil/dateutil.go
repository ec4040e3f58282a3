// Package dateutil converts between the backend's date representation and the
// form shown to users. The backend never sends null for an unset date; it
// sends a zero-date placeholder instead, which must round-trip as "empty".
package dateutil

import (
	"strings"
	"time"
)

const (
	// SentinelDate is the backend's placeholder for "no date set".
	SentinelDate = "0001-01-01"

	// APILayout is the wire format for dates (date component only).
	APILayout = "2006-01-02"

	// DisplayLayout is the user-facing format.
	DisplayLayout = "02-01-2006"
)

// IsSentinel reports whether a backend date string means "no date set".
// Covers both the bare date and the timestamp form the API uses
// interchangeably.
func IsSentinel(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || s == SentinelDate || strings.HasPrefix(s, SentinelDate+"T")
}

// FormatForDisplay converts a backend date string to DD-MM-YYYY.
// Sentinel and unparseable values become the empty string, never a rendered
// year-one date.
func FormatForDisplay(s string) string {
	t, ok := ParseBackend(s)
	if !ok {
		return ""
	}
	return t.Format(DisplayLayout)
}

// FormatForAPI renders a time in the wire format.
func FormatForAPI(t time.Time) string {
	return t.Format(APILayout)
}

// ParseBackend parses a backend date string. The API mixes bare dates and
// RFC3339-ish timestamps without offsets, so several layouts are tried.
func ParseBackend(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if IsSentinel(s) {
		return time.Time{}, false
	}
	for _, layout := range []string{APILayout, "2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseDisplay parses a DD-MM-YYYY display value.
func ParseDisplay(s string) (time.Time, bool) {
	t, err := time.Parse(DisplayLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DisplayToAPI converts a display value back to the wire format. Empty or
// unparseable input yields the sentinel: the API requires a placeholder, not
// an omitted field.
func DisplayToAPI(s string) string {
	t, ok := ParseDisplay(s)
	if !ok {
		return SentinelDate
	}
	return FormatForAPI(t)
}

// Today returns the local device date truncated to the date component, in
// wire format. Meal dates are compared by exact string equality against this.
func Today() string {
	return time.Now().Format(APILayout)
}
