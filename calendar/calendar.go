// Package calendar holds the billing-week arithmetic and the ISO date helpers
// used by the ledgers. Billing weeks run Saturday through Friday.
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// Layout is the storage and form format for calendar dates.
const Layout = "2006-01-02"

// DaysInWeek is the length of a billing week.
const DaysInWeek = 7

// Day truncates t to midnight in its own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// WeekStart returns the Saturday on or before d.
func WeekStart(d time.Time) time.Time {
	d = Day(d)
	// time.Weekday is Sunday=0..Saturday=6, so Saturday maps to offset 0.
	offset := (int(d.Weekday()) + 1) % DaysInWeek
	return d.AddDate(0, 0, -offset)
}

// WeekEnd returns the Friday closing the billing week that contains d.
func WeekEnd(d time.Time) time.Time {
	return WeekStart(d).AddDate(0, 0, DaysInWeek-1)
}

// WeekDays lists the seven dates of the billing week starting at start.
func WeekDays(start time.Time) []time.Time {
	start = Day(start)
	days := make([]time.Time, DaysInWeek)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// ShiftWeeks moves a week start by n whole weeks.
func ShiftWeeks(start time.Time, n int) time.Time {
	return Day(start).AddDate(0, 0, n*DaysInWeek)
}

// Key formats d as YYYY-MM-DD.
func Key(d time.Time) string {
	return d.Format(Layout)
}

// Parse reads a YYYY-MM-DD date in loc.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(Layout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}
