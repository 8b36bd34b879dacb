package timephrase

import "time"

// ShiftMonths moves a calendar date by delta months. When the resulting
// month is shorter than day, the day is clamped to the month's last day,
// so Jan 31 shifted by +1 lands on Feb 28 (or 29 in a leap year).
func ShiftMonths(year int, month time.Month, day, delta int) (int, time.Month, int) {
	total := year*12 + int(month-1) + delta

	y := total / 12
	m := total % 12
	if m < 0 {
		m += 12
		y--
	}
	newMonth := time.Month(m + 1)

	if last := daysIn(y, newMonth); day > last {
		day = last
	}
	return y, newMonth, day
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day 0 of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// subtractMonths moves t back by n calendar months, keeping the time of day
// and location of t.
func subtractMonths(t time.Time, n int) time.Time {
	if n == 0 {
		return t
	}
	y, m, d := ShiftMonths(t.Year(), t.Month(), t.Day(), -n)
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
