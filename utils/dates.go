package utils

import (
	"fmt"
	"time"
)

var deadlineLayouts = []string{
	DateLayout,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ParseDeadline reads a date ("2006-01-02", taken as midnight) or a
// date-time in loc.
func ParseDeadline(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range deadlineLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised deadline %q", s)
}
