package models

import (
	"time"
)

// Now returns the current time in UTC
func Now() time.Time {
	return time.Now().UTC()
}

// SimTime converts simulation seconds to a UTC time
func SimTime(t int64) time.Time {
	return time.Unix(t, 0).UTC()
}

// FormatSimTime formats simulation seconds according to RFC3339
func FormatSimTime(t int64) string {
	return SimTime(t).Format(time.RFC3339)
}

// ParseSimTime parses an RFC3339 string into simulation seconds
func ParseSimTime(s string) (int64, error) {
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, err
	}
	return parsed.Unix(), nil
}
