package utils

import "time"

// FormatTimestamp renders t in UTC using RFC3339 with sub-second precision
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

