package controllers

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/reports"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
	"github.com/sirupsen/logrus"
)

type ReportController struct {
	Billing *services.BillingService
	Cutoff  *services.MealCutoff
}

func NewReportController(svc *services.Services) *ReportController {
	return &ReportController{Billing: svc.Billing, Cutoff: svc.Self.Cutoff()}
}

func (rc *ReportController) statement(c *gin.Context) (reports.Statement, error) {
	weekStart, err := weekParam(c, calendar.Day(rc.Cutoff.LocalNow()))
	if err != nil {
		return reports.Statement{}, err
	}
	rows, err := rc.Billing.WeeklySummaries(c.Request.Context(), weekStart)
	if err != nil {
		return reports.Statement{}, err
	}
	return reports.NewStatement(weekStart, rows), nil
}

// serve renders into a buffer first so a failed render still gets a clean error response.
func (rc *ReportController) serve(c *gin.Context, kind, contentType string, attach bool, write func(io.Writer, reports.Statement) error) {
	st, err := rc.statement(c)
	if err != nil {
		failJSON(c, err)
		return
	}

	var buf bytes.Buffer
	if err := write(&buf, st); err != nil {
		failJSON(c, err)
		return
	}

	if attach {
		c.Header("Content-Disposition", `attachment; filename="`+st.Filename(kind)+`"`)
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"report": kind,
		"week":   calendar.Key(st.WeekStart),
		"rows":   len(st.Rows),
	}).Info("report generated")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func (rc *ReportController) WeeklyCSV(c *gin.Context) {
	rc.serve(c, "csv", "text/csv; charset=utf-8", true, reports.WriteCSV)
}

func (rc *ReportController) WeeklyPDF(c *gin.Context) {
	rc.serve(c, "pdf", "application/pdf", true, reports.WritePDF)
}

func (rc *ReportController) WeeklyChart(c *gin.Context) {
	rc.serve(c, "png", "image/png", false, reports.WriteChart)
}
