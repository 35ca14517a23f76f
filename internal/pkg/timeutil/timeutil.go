package timeutil

import (
	"errors"
	"time"
)

// Layout is the wire format for timestamps: ISO-8601 local time without a
// timezone offset. The engine treats all times as one implicit local zone.
const Layout = "2006-01-02T15:04:05"

var inputLayouts = []string{
	Layout,
	"2006-01-02T15:04",
	time.RFC3339,
}

var ErrBadTimestamp = errors.New("invalid timestamp")

// Parse accepts second- or minute-precision local timestamps, plus RFC 3339
// from clients that insist on sending an offset (the offset is dropped).
func Parse(s string) (time.Time, error) {
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC), nil
		}
	}
	return time.Time{}, ErrBadTimestamp
}

func Format(t time.Time) string {
	return t.Format(Layout)
}
