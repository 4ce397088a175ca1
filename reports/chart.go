package reports

import (
	"io"

	"github.com/mealtracker/meal-tracker/calendar"
	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	chartHeight   = 360
	minChartWidth = 480
	barSlot       = 70
)

// WriteChart renders meals per member as a PNG bar chart. The y axis always
// spans a full week so charts for different weeks compare at a glance.
func WriteChart(w io.Writer, s Statement) error {
	bars := make([]chart.Value, 0, len(s.Rows))
	for _, r := range s.Rows {
		bars = append(bars, chart.Value{Label: r.Name, Value: float64(r.Meals)})
	}
	if len(bars) == 0 {
		bars = append(bars, chart.Value{Label: "no members", Value: 0})
	}

	width := len(bars)*barSlot + 120
	if width < minChartWidth {
		width = minChartWidth
	}

	graph := chart.BarChart{
		Title:  "Meals for week of " + calendar.Key(s.WeekStart),
		Width:  width,
		Height: chartHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		BarWidth: 40,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: calendar.DaysInWeek},
		},
		Bars: bars,
	}
	return graph.Render(chart.PNG, w)
}
