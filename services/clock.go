package services

import "time"

// Clock supplies "today" so streak and weekly computations never hide a
// wall-clock read. Tests pin it to a fixed date.
type Clock func() time.Time

func orSystem(c Clock) Clock {
	if c == nil {
		return time.Now
	}
	return c
}

// dayStart truncates to local midnight; all date-keyed rows store this form.
func dayStart(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

// dayKey is the calendar date as a plain string. time.Time map keys compare
// location pointers, so plain strings are the safer index.
func dayKey(t time.Time) string {
	return dayStart(t).Format("2006-01-02")
}

// weekdayIndex maps time.Weekday to the plan's 0..6 scheme, Monday = 0.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// weekStart is the Monday of the ISO week containing t, at local midnight.
func weekStart(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, -weekdayIndex(t))
}
