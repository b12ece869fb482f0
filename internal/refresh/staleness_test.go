package refresh

import (
	"testing"
	"time"
)

func sp(s string) *string { return &s }

func TestIsStale(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	week := 7 * 24 * time.Hour
	cases := []struct {
		name string
		last *string
		want bool
	}{
		{"absent", nil, true},
		{"empty", sp(""), true},
		{"garbage", sp("yesterday-ish"), true},
		{"fresh zoned", sp("2025-06-09T12:00:00Z"), false},
		{"fresh with offset", sp("2025-06-09T08:00:00-04:00"), false},
		{"old zoned", sp("2025-05-01T00:00:00Z"), true},
		{"exactly one interval", sp("2025-06-03T12:00:00Z"), true},
		{"old naive with micros", sp("2024-12-31T23:59:59.123456"), true},
		{"date only, old", sp("2025-01-01"), true},
		{"future", sp("2026-01-01T00:00:00Z"), false},
	}
	for _, c := range cases {
		if got := IsStale(c.last, now, week); got != c.want {
			t.Fatalf("%s: IsStale = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestParseTimestampNaiveIsLocal(t *testing.T) {
	got, ok := ParseTimestamp("2025-06-01T10:00:00")
	if !ok {
		t.Fatal("naive stamp should parse")
	}
	if got.Location() != time.Local {
		t.Fatalf("naive stamp parsed in %v", got.Location())
	}
	if _, ok := ParseTimestamp("2025-06-01 10:00:00.5"); !ok {
		t.Fatal("space separated stamp should parse")
	}
}

func TestStampRoundTrips(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.FixedZone("EDT", -4*3600))
	got, ok := ParseTimestamp(now.Format(StampLayout))
	if !ok || !got.Equal(now) {
		t.Fatalf("stamp %q parsed as %v", now.Format(StampLayout), got)
	}
}
