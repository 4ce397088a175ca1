package services

import (
	"strings"
	"time"

	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/shopspring/decimal"
)

// maxAmount mirrors the decimal(10,2) column: eight integer digits.
var maxAmount = decimal.New(1, 8)

// ParseAmount converts form input such as "12.50" or "12,50" to a currency amount.
// Negative, malformed, over-precise and oversized values are ValidationErrors.
func ParseAmount(field, raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, newValidationError(field, "amount is required")
	}
	s = strings.ReplaceAll(s, ",", ".")

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, newValidationError(field, "%q is not a valid amount", raw)
	}
	if err := checkAmount(field, d); err != nil {
		return decimal.Zero, err
	}
	return d, nil
}

func checkAmount(field string, d decimal.Decimal) error {
	if d.IsNegative() {
		return newValidationError(field, "amount cannot be negative")
	}
	if d.Exponent() < -2 && !d.Equal(d.Round(2)) {
		return newValidationError(field, "amount has more than two decimal places")
	}
	if d.GreaterThanOrEqual(maxAmount) {
		return newValidationError(field, "amount is too large")
	}
	return nil
}

// ParseDate reads a YYYY-MM-DD form value, reporting failures as ValidationErrors.
func ParseDate(field, raw string, loc *time.Location) (time.Time, error) {
	d, err := calendar.Parse(raw, loc)
	if err != nil {
		return time.Time{}, newValidationError(field, "%q is not a valid date (YYYY-MM-DD)", raw)
	}
	return d, nil
}
