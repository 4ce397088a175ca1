package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/shopspring/decimal"
)

type AdminController struct {
	Billing *services.BillingService
	Cutoff  *services.MealCutoff
}

func NewAdminController(svc *services.Services) *AdminController {
	return &AdminController{Billing: svc.Billing, Cutoff: svc.Self.Cutoff()}
}

// Dashboard shows the current week's figures for every active member.
func (ac *AdminController) Dashboard(c *gin.Context) {
	today := calendar.Day(ac.Cutoff.LocalNow())
	weekStart := calendar.WeekStart(today)

	rows, err := ac.Billing.WeeklySummaries(c.Request.Context(), weekStart)
	if err != nil {
		fail(c, err, "/")
		return
	}

	var totals struct {
		Meals              int
		Bill, Paid, Unpaid decimal.Decimal
	}
	for _, r := range rows {
		totals.Meals += r.Meals
		totals.Bill = totals.Bill.Add(r.Bill)
		totals.Paid = totals.Paid.Add(r.Paid)
		totals.Unpaid = totals.Unpaid.Add(r.Unpaid)
	}

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"Title":     "Dashboard",
		"Rows":      rows,
		"Totals":    totals,
		"WeekStart": weekStart,
		"WeekEnd":   calendar.WeekEnd(weekStart),
		"WeekKey":   calendar.Key(weekStart),
		"Today":     today,
	})
}
