package reports

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/mealtracker/meal-tracker/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleStatement() Statement {
	// A Tuesday; the statement snaps back to Saturday 2024-01-06.
	week := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
	return NewStatement(week, []services.Summary{
		{MemberID: 1, SerialNumber: 1, Name: "Rahim", WeekStart: "2024-01-06", Meals: 2,
			Bill: decimal.NewFromInt(35), Paid: decimal.NewFromInt(10), Unpaid: decimal.NewFromInt(25)},
		{MemberID: 2, SerialNumber: 2, Name: "Karim, Jr.", WeekStart: "2024-01-06", Meals: 1,
			Bill: decimal.RequireFromString("12.5"), Paid: decimal.Zero, Unpaid: decimal.RequireFromString("12.5")},
	})
}

func TestNewStatementNormalisesWeek(t *testing.T) {
	s := sampleStatement()
	assert.Equal(t, "2024-01-06", s.WeekStart.Format("2006-01-02"))
	assert.Equal(t, "2024-01-12", s.WeekEnd.Format("2006-01-02"))
	assert.Equal(t, "meals-2024-01-06.pdf", s.Filename("pdf"))
}

func TestTotals(t *testing.T) {
	tot := sampleStatement().Totals()
	assert.Equal(t, "Total", tot.Name)
	assert.Equal(t, 3, tot.Meals)
	assert.True(t, tot.Bill.Equal(decimal.RequireFromString("47.5")))
	assert.True(t, tot.Paid.Equal(decimal.NewFromInt(10)))
	assert.True(t, tot.Unpaid.Equal(decimal.RequireFromString("37.5")))
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleStatement()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{"1", "Rahim", "2024-01-06", "2", "35.00", "10.00", "25.00"}, records[1])
	assert.Equal(t, "Karim, Jr.", records[2][1], "names with commas survive quoting")
	assert.Equal(t, []string{"", "Total", "2024-01-06", "3", "47.50", "10.00", "37.50"}, records[3])
}

func TestWriteCSVEmptyWeek(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, NewStatement(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), nil)))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "0.00", records[1][4])
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, sampleStatement()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestWriteChart(t *testing.T) {
	pngMagic := []byte("\x89PNG\r\n\x1a\n")

	var buf bytes.Buffer
	require.NoError(t, WriteChart(&buf, sampleStatement()))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic))

	buf.Reset()
	require.NoError(t, WriteChart(&buf, NewStatement(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), nil)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), pngMagic), "an empty week still renders")
}
