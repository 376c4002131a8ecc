package model

import "time"

// DateLayout is how calendar dates are stored in seed files and shown in replies
const DateLayout = "2006-01-02"

// Date returns the calendar date y-m-d as midnight UTC
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf drops the clock part of t, keeping the calendar date as seen in t's location
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return Date(y, m, d)
}

// FormatDate renders a calendar date, or "N/A" for the zero time
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.UTC().Format(DateLayout)
}
