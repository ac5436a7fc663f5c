package learning

import (
	"fmt"
	"time"
)

// timeNow is a package-level variable for testability.
// Tests can replace this to control time in assertions.
var timeNow = time.Now

// sqliteTime is the timestamp layout used in every table, always UTC.
const sqliteTime = "2006-01-02 15:04:05"

// isoDate is the calendar-day layout used for next-review output and the
// daily-reset check.
const isoDate = "2006-01-02"

// Now returns the current time formatted for sqlite.
func Now() string {
	return timeNow().UTC().Format(sqliteTime)
}

// Today returns the current UTC calendar date.
func Today() string {
	return timeNow().UTC().Format(isoDate)
}

// formatTime renders a time in the sqlite layout.
func formatTime(t time.Time) string {
	return t.UTC().Format(sqliteTime)
}

// parseTime parses a stored timestamp. Both the full layout and a bare date
// are accepted so next_review values round-trip either way.
func parseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(sqliteTime, s, time.UTC); err == nil {
		return t, nil
	}
	return time.ParseInLocation(isoDate, s, time.UTC)
}

// dateOf truncates a stored timestamp to its ISO date.
func dateOf(s string) string {
	t, err := parseTime(s)
	if err != nil {
		return s
	}
	return t.Format(isoDate)
}

// daysOverdue returns how many whole days past due a next-review timestamp
// is at the given instant. Not-yet-due timestamps yield 0.
func daysOverdue(nextReview string, now time.Time) int {
	due, err := parseTime(nextReview)
	if err != nil {
		return 0
	}
	days := int(now.UTC().Sub(due).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// minutesSince returns whole minutes elapsed since a stored timestamp.
// Malformed timestamps count as "long ago" so a corrupt row can never
// wedge the gate shut.
func minutesSince(s string, now time.Time) int {
	t, err := parseTime(s)
	if err != nil {
		return 1 << 30
	}
	m := int(now.UTC().Sub(t).Minutes())
	if m < 0 {
		return 0
	}
	return m
}

// formatRemaining renders a duration as a compact human string, e.g.
// "42m" or "1h 05m". Sub-minute remainders round up so the gate never
// reports "0m left" while still blocking.
func formatRemaining(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}
	mins := int((d + time.Minute - 1) / time.Minute)
	if mins < 60 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%dh %02dm", mins/60, mins%60)
}
