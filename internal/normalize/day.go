package normalize

import (
	"strings"
	"time"
)

// DayLayout is the calendar-day form every date is normalised to.
const DayLayout = "2006-01-02"

// Layouts without a zone are read as UTC.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	DayLayout,
}

// Time parses a server timestamp. ok is false when no known layout matches.
func Time(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// Day returns the UTC calendar day of s. When s does not parse, the part
// before the first "T" is returned unchanged.
func Day(s string) string {
	if t, ok := Time(s); ok {
		return t.Format(DayLayout)
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return s[:i]
	}
	return s
}
