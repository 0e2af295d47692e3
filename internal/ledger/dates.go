package ledger

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the stored date format.
const DateLayout = "2006-01-02"

// ParseDate parses a stored date. Blank or malformed values report false.
// Timestamps with a time part are accepted and truncated to the date.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if len(raw) > len(DateLayout) {
		raw = raw[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseDatePtr is ParseDate for nullable columns.
func ParseDatePtr(raw *string) (time.Time, bool) {
	if raw == nil {
		return time.Time{}, false
	}
	return ParseDate(*raw)
}

// FormatDate renders t in the stored format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

const secondsPerDay = 24 * 60 * 60

// DaysBetween returns the whole calendar days from from to to.
func DaysBetween(from, to time.Time) int {
	return int(epochDay(to) - epochDay(from))
}

// epochDay counts calendar days since 1970-01-01 via Unix seconds;
// time.Duration saturates at about 292 years.
func epochDay(t time.Time) int64 {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Unix() / secondsPerDay
}

// CycleDays renders the days between two stored dates as "N days".
// It returns "" when either date is missing or malformed.
func CycleDays(from, to *string) string {
	start, ok := ParseDatePtr(from)
	if !ok {
		return ""
	}
	end, ok := ParseDatePtr(to)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d days", DaysBetween(start, end))
}

// IsBlank reports whether a nullable text column has no content.
func IsBlank(value *string) bool {
	return value == nil || strings.TrimSpace(*value) == ""
}
