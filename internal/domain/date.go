package domain

import (
	"strings"
	"time"
)

// DateLayout wire format for procedure dates.
const DateLayout = "2006-01-02"

// Today returns the current date in wire format.
func Today() string {
	return time.Now().Format(DateLayout)
}

// NormalizeDate reduces a backend date value to YYYY-MM-DD. The backend
// sometimes returns full RFC3339 timestamps for the same field.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, 'T'); i > 0 {
		s = s[:i]
	}
	return s
}

// ParseDate parses a wire-format date, used for chronological sorting.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, NormalizeDate(s))
}
