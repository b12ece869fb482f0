package refresh

import (
	"strings"
	"time"
)

// DefaultInterval is the refresh age used when none is configured.
const DefaultInterval = 7 * 24 * time.Hour

// StampLayout is how refreshed questions are stamped.
const StampLayout = time.RFC3339

var zonedLayouts = []string{time.RFC3339Nano}

// naive stamps are read in local time
var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp accepts ISO-8601 stamps with or without a zone offset.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range zonedLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	for _, l := range naiveLayouts {
		if t, err := time.ParseInLocation(l, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// IsStale reports whether a dynamic answer stamped last is due at now.
// Missing and unparsable stamps are always due.
func IsStale(last *string, now time.Time, interval time.Duration) bool {
	if last == nil {
		return true
	}
	t, ok := ParseTimestamp(*last)
	if !ok {
		return true
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return now.Sub(t) >= interval
}
