// Package datetime provides date and time utility functions.
package datetime

import (
	"fmt"
	"time"

	"github.com/iwvelando/benefit-calculator/pkg/constants"
)

const (
	// TimestampLayout is the ISO-8601 layout, with milliseconds, used to
	// persist history entry dates.
	TimestampLayout = constants.TimestampLayout

	// DisplayLayout is the date and time layout shown to users.
	DisplayLayout = "2006-01-02 15:04"
)

// FormatTimestamp renders t in UTC using TimestampLayout, e.g.
// 2025-06-01T12:30:00.000Z.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses an ISO-8601 timestamp. Both the millisecond layout
// and RFC 3339 with or without fractional seconds are accepted.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range []string{TimestampLayout, time.RFC3339Nano, time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected ISO-8601", value)
}

// FormatDisplay renders t in loc using DisplayLayout. A nil loc uses time.Local.
func FormatDisplay(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DisplayLayout)
}
