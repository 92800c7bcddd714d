package reminders

import (
	"time"

	"lexdesk/utils"
)

// Window is the span a daily reminder scan covers. Both ends are inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow returns [midnight today, midnight tomorrow] in loc. Tomorrow is a
// calendar step, so the window is 23 or 25 hours long on DST transition days.
func DayWindow(now time.Time, loc *time.Location) Window {
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// QueryRange is the coarse string range [today, dayAfterTomorrow) used to
// fetch candidates. It is wider than the window; Contains does the exact check.
func (w Window) QueryRange() (from, to string) {
	return w.Start.Format(utils.DateLayout), w.Start.AddDate(0, 0, 2).Format(utils.DateLayout)
}

// Contains reports whether the deadline string falls inside the window.
func (w Window) Contains(deadline string) (bool, error) {
	t, err := utils.ParseDeadline(deadline, w.Start.Location())
	if err != nil {
		return false, err
	}
	return !t.Before(w.Start) && !t.After(w.End), nil
}
