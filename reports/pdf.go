package reports

import (
	"fmt"
	"io"
	"strconv"

	"github.com/go-pdf/fpdf"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
)

var pdfColumns = []struct {
	title string
	width float64
	align string
}{
	{"#", 12, "C"},
	{"Name", 58, "L"},
	{"Meals", 18, "C"},
	{"Bill", 34, "R"},
	{"Paid", 34, "R"},
	{"Unpaid", 34, "R"},
}

// WritePDF renders the statement as a single A4 table.
func WritePDF(w io.Writer, s Statement) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	title := fmt.Sprintf("Weekly meal statement %s to %s", s.WeekStart.Format("02 Jan 2006"), s.WeekEnd.Format("02 Jan 2006"))
	pdf.SetTitle(title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr(title), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, tr("Amounts in "+utils.CurrencySymbol+". Unpaid is the week's bill less all payments to date."), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for _, col := range pdfColumns {
		pdf.CellFormat(col.width, 8, col.title, "1", 0, col.align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, r := range s.Rows {
		pdfRow(pdf, tr, strconv.Itoa(r.SerialNumber), r)
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdfRow(pdf, tr, "", s.Totals())

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

func pdfRow(pdf *fpdf.Fpdf, tr func(string) string, serial string, r services.Summary) {
	cells := []string{
		serial,
		tr(r.Name),
		strconv.Itoa(r.Meals),
		utils.FormatAmount(r.Bill),
		utils.FormatAmount(r.Paid),
		utils.FormatAmount(r.Unpaid),
	}
	for i, col := range pdfColumns {
		pdf.CellFormat(col.width, 7, cells[i], "1", 0, col.align, false, 0, "")
	}
	pdf.Ln(-1)
}
