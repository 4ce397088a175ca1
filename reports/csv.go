package reports

import (
	"encoding/csv"
	"io"
	"strconv"
)

var csvHeader = []string{"serial_number", "name", "week_start", "meals", "bill", "paid", "unpaid"}

// WriteCSV writes one row per member followed by a totals row. Amounts are
// plain decimals with two places so spreadsheets can sum them.
func WriteCSV(w io.Writer, s Statement) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range s.Rows {
		rec := []string{
			strconv.Itoa(r.SerialNumber),
			r.Name,
			r.WeekStart,
			strconv.Itoa(r.Meals),
			r.Bill.StringFixed(2),
			r.Paid.StringFixed(2),
			r.Unpaid.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	t := s.Totals()
	if err := cw.Write([]string{"", t.Name, t.WeekStart, strconv.Itoa(t.Meals), t.Bill.StringFixed(2), t.Paid.StringFixed(2), t.Unpaid.StringFixed(2)}); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}
