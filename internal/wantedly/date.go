package wantedly

import (
	"strconv"
	"strings"
	"time"
)

// DateTokenKind enumerates the relative-date forms found in impression metadata.
type DateTokenKind int

const (
	DateTokenUnrecognized DateTokenKind = iota
	DateTokenToday
	DateTokenDaysAgo
)

const (
	todayToken    = "今日"
	daysAgoSuffix = "日前"

	// maxDaysAgo bounds N in "<N>日前" to about a century.
	maxDaysAgo = 36500
)

// DateToken is a parsed relative-date expression such as "今日" or "3日前".
type DateToken struct {
	Kind DateTokenKind
	Days int
	Raw  string
}

// ParseDateToken classifies raw. Unknown shapes yield DateTokenUnrecognized.
func ParseDateToken(raw string) DateToken {
	if raw == todayToken {
		return DateToken{Kind: DateTokenToday, Raw: raw}
	}
	if n, ok := strings.CutSuffix(raw, daysAgoSuffix); ok {
		if days, ok := parseDays(n); ok {
			return DateToken{Kind: DateTokenDaysAgo, Days: days, Raw: raw}
		}
	}
	return DateToken{Kind: DateTokenUnrecognized, Raw: raw}
}

// Resolve returns midnight UTC of the calendar date the token denotes,
// counted from anchor's calendar date.
func (t DateToken) Resolve(anchor time.Time) (time.Time, error) {
	y, m, d := anchor.Date()
	switch t.Kind {
	case DateTokenToday:
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case DateTokenDaysAgo:
		if t.Days < 0 || t.Days > maxDaysAgo {
			return time.Time{}, &UnrecognizedDateTokenError{Raw: t.Raw}
		}
		return time.Date(y, m, d-t.Days, 0, 0, 0, 0, time.UTC), nil
	default:
		return time.Time{}, &UnrecognizedDateTokenError{Raw: t.Raw}
	}
}

// ResolveViewedAt parses raw and resolves it against anchor.
func ResolveViewedAt(raw string, anchor time.Time) (time.Time, error) {
	return ParseDateToken(raw).Resolve(anchor)
}

// parseDays accepts ASCII digits only, so signs and spaces are rejected.
// Values above maxDaysAgo are rejected too.
func parseDays(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n > maxDaysAgo {
		return 0, false
	}
	return n, true
}
