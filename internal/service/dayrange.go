package service

import "time"

// dayRange returns the inclusive [00:00:00.000, 23:59:59.999] window of the
// calendar day containing t, in t's location. Day boundaries are wall-clock
// local time of the running process, not per-user timezones.
func dayRange(t time.Time) (start, end time.Time) {
	year, month, day := t.Date()
	start = time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end = time.Date(year, month, day, 23, 59, 59, int(999*time.Millisecond), t.Location())
	return start, end
}

// yesterdayRange returns the same window shifted back one calendar day.
func yesterdayRange(t time.Time) (start, end time.Time) {
	return dayRange(t.AddDate(0, 0, -1))
}
