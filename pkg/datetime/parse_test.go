package datetime

import (
	"testing"
	"time"
)

func TestFormatTimestamp(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{"UTC", time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC), "2025-06-01T12:30:00.000Z"},
		{"Converted to UTC", time.Date(2025, 6, 1, 15, 30, 0, 0, moscow), "2025-06-01T12:30:00.000Z"},
		{"Milliseconds kept", time.Date(2025, 1, 2, 3, 4, 5, 678000000, time.UTC), "2025-01-02T03:04:05.678Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatTimestamp(tt.input); got != tt.expected {
				t.Errorf("FormatTimestamp() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Milliseconds", "2025-06-01T12:30:00.000Z", false},
		{"RFC3339", "2025-06-01T12:30:00Z", false},
		{"RFC3339 with offset", "2025-06-01T15:30:00+03:00", false},
		{"Nanoseconds", "2025-06-01T12:30:00.123456789Z", false},
		{"Date only", "2025-06-01", true},
		{"Empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimestamp(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && got.UTC().Hour() != 12 {
				t.Errorf("ParseTimestamp(%q) hour = %d, expected 12 UTC", tt.input, got.UTC().Hour())
			}
		})
	}
}

func TestTimestampRoundTrip(t *testing.T) {
	original := time.Date(2025, 12, 31, 23, 59, 59, 999000000, time.UTC)
	parsed, err := ParseTimestamp(FormatTimestamp(original))
	if err != nil {
		t.Fatalf("ParseTimestamp() error = %v", err)
	}
	if !parsed.Equal(original) {
		t.Errorf("round trip = %v, expected %v", parsed, original)
	}
}

func TestFormatDisplay(t *testing.T) {
	ts := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)
	if got := FormatDisplay(ts, time.UTC); got != "2025-06-01 12:30" {
		t.Errorf("FormatDisplay() = %s, expected 2025-06-01 12:30", got)
	}
	if got := FormatDisplay(ts, time.FixedZone("MSK", 3*60*60)); got != "2025-06-01 15:30" {
		t.Errorf("FormatDisplay() = %s, expected 2025-06-01 15:30", got)
	}
}
