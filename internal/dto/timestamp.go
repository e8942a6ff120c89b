package dto

import "time"

// TimestampLayout is ISO-8601 with a numeric offset, e.g. 2024-05-01T10:00:00+00:00.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}
