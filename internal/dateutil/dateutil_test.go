package dateutil

import (
	"testing"
	"time"
)

func TestFormatForDisplaySentinels(t *testing.T) {
	cases := []string{"", "0001-01-01", "0001-01-01T00:00:00", "  ", "not-a-date"}
	for _, input := range cases {
		if got := FormatForDisplay(input); got != "" {
			t.Errorf("FormatForDisplay(%q) = %q, want empty", input, got)
		}
	}
}

func TestFormatForDisplay(t *testing.T) {
	cases := map[string]string{
		"2024-01-10":          "10-01-2024",
		"2024-01-10T00:00:00": "10-01-2024",
		"2023-12-31":          "31-12-2023",
	}
	for input, want := range cases {
		if got := FormatForDisplay(input); got != want {
			t.Errorf("FormatForDisplay(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestDisplayToAPI(t *testing.T) {
	if got := DisplayToAPI("10-01-2024"); got != "2024-01-10" {
		t.Errorf("DisplayToAPI = %q, want 2024-01-10", got)
	}
	// Unset or broken display values must fall back to the sentinel, not an
	// omitted field.
	for _, input := range []string{"", "  ", "10/01/2024"} {
		if got := DisplayToAPI(input); got != SentinelDate {
			t.Errorf("DisplayToAPI(%q) = %q, want sentinel", input, got)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	backend := "2022-06-05T00:00:00"
	display := FormatForDisplay(backend)
	if display != "05-06-2022" {
		t.Fatalf("display = %q", display)
	}
	if got := DisplayToAPI(display); got != "2022-06-05" {
		t.Errorf("round trip = %q, want 2022-06-05", got)
	}
}

func TestFormatForAPI(t *testing.T) {
	d := time.Date(2024, 3, 7, 15, 4, 5, 0, time.UTC)
	if got := FormatForAPI(d); got != "2024-03-07" {
		t.Errorf("FormatForAPI = %q", got)
	}
}
