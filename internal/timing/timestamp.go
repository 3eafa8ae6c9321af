package timing

import (
	"fmt"
	"strings"
	"time"
)

// Layouts accepted for serialized event timestamps, tried in order.
// GitHub sends RFC 3339; Flask's jsonify renders datetimes as RFC 1123.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a serialized instant. Zone-less values are taken as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

// FormatTimestamp renders t in UTC as "3rd June 2024 - 4:05 PM UTC".
// The zero time renders as an empty string.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	t = t.UTC()
	day := t.Day()

	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	meridiem := "AM"
	if t.Hour() >= 12 {
		meridiem = "PM"
	}

	return fmt.Sprintf("%d%s %s %d - %d:%02d %s UTC",
		day, DaySuffix(day), t.Month(), t.Year(), hour, t.Minute(), meridiem)
}

// FormatSerialized formats a timestamp as received on the wire.
// Empty input gives "", unparseable input is returned verbatim.
func FormatSerialized(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	t, err := ParseTimestamp(s)
	if err != nil {
		return s
	}
	return FormatTimestamp(t)
}

// DaySuffix returns the English ordinal suffix for a day of the month
func DaySuffix(day int) string {
	if day > 3 && day < 21 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}
