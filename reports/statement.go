// Package reports renders a billing week's member summaries as CSV, PDF and
// a PNG bar chart.
package reports

import (
	"time"

	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/shopspring/decimal"
)

// Statement is one billing week's figures for the active members.
type Statement struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Rows      []services.Summary
}

func NewStatement(weekStart time.Time, rows []services.Summary) Statement {
	weekStart = calendar.WeekStart(weekStart)
	return Statement{
		WeekStart: weekStart,
		WeekEnd:   calendar.WeekEnd(weekStart),
		Rows:      rows,
	}
}

// Totals sums every column across the rows.
func (s Statement) Totals() services.Summary {
	t := services.Summary{
		Name:      "Total",
		WeekStart: calendar.Key(s.WeekStart),
		Bill:      decimal.Zero,
		Paid:      decimal.Zero,
		Unpaid:    decimal.Zero,
	}
	for _, r := range s.Rows {
		t.Meals += r.Meals
		t.Bill = t.Bill.Add(r.Bill)
		t.Paid = t.Paid.Add(r.Paid)
		t.Unpaid = t.Unpaid.Add(r.Unpaid)
	}
	return t
}

// Filename is the download name for the given extension, e.g. "meals-2024-01-06.csv".
func (s Statement) Filename(ext string) string {
	return "meals-" + calendar.Key(s.WeekStart) + "." + ext
}
