package services

import (
	"sort"
	"time"
)

// CurrentStreak counts consecutive calendar days with at least one log,
// ending at today. The run must include today: an unbroken week that stops
// yesterday scores 0, not 7. That is the product rule, not an off-by-one.
// Pure function — O(n log n) sort, O(n) scan, no side effects.
func CurrentStreak(logDates []time.Time, today time.Time) int {
	if len(logDates) == 0 {
		return 0
	}

	// distinct days, newest first
	seen := make(map[time.Time]bool, len(logDates))
	days := make([]time.Time, 0, len(logDates))
	for _, d := range logDates {
		day := dayStart(d)
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	streak := 0
	for i, day := range days {
		expected := dayStart(today).AddDate(0, 0, -i)
		if !day.Equal(expected) {
			break
		}
		streak++
	}
	return streak
}
