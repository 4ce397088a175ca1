package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol is appended to formatted amounts.
var CurrencySymbol = "Tk"

// FormatAmount renders d with two decimals and thousands separators, e.g. "1,234.50".
func FormatAmount(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)

	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := b.String() + "." + parts[1]
	if neg {
		return "-" + out
	}
	return out
}

// FormatCurrency renders d followed by the currency symbol, e.g. "1,234.50 Tk".
func FormatCurrency(d decimal.Decimal) string {
	return FormatAmount(d) + " " + CurrencySymbol
}
