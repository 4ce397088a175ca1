package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/middlewares"
	"github.com/mealtracker/meal-tracker/services"
)

const recentPaymentLimit = 20

type PaymentController struct {
	Members  *services.MemberService
	Payments *services.PaymentService
	Cutoff   *services.MealCutoff
}

func NewPaymentController(svc *services.Services) *PaymentController {
	return &PaymentController{Members: svc.Members, Payments: svc.Payments, Cutoff: svc.Self.Cutoff()}
}

func (pc *PaymentController) ManagePayments(c *gin.Context) {
	ctx := c.Request.Context()
	members, err := pc.Members.ListActive(ctx)
	if err != nil {
		fail(c, err, "/manage-payments")
		return
	}
	payments, err := pc.Payments.Recent(ctx, recentPaymentLimit)
	if err != nil {
		fail(c, err, "/manage-payments")
		return
	}
	render(c, http.StatusOK, "manage_payments.html", gin.H{
		"Title":    "Payments",
		"Members":  members,
		"Payments": payments,
		"Today":    calendar.Day(pc.Cutoff.LocalNow()),
	})
}

// RecordPayment appends a payment. The date defaults to today.
func (pc *PaymentController) RecordPayment(c *gin.Context) {
	ctx := c.Request.Context()

	memberID, err := formID(c, "member_id")
	if err != nil {
		fail(c, err, "/manage-payments")
		return
	}
	amount, err := services.ParseAmount("amount", c.PostForm("amount"))
	if err != nil {
		fail(c, err, "/manage-payments")
		return
	}

	var day time.Time
	if raw := strings.TrimSpace(c.PostForm("date")); raw != "" {
		day, err = services.ParseDate("date", raw, pc.Cutoff.Location)
		if err != nil {
			fail(c, err, "/manage-payments")
			return
		}
	} else {
		day = calendar.Day(pc.Cutoff.LocalNow())
	}

	member, err := pc.Members.Get(ctx, memberID)
	if err != nil {
		fail(c, err, "/manage-payments")
		return
	}
	if _, err := pc.Payments.Record(ctx, member.ID, amount, day, c.PostForm("note")); err != nil {
		fail(c, err, "/manage-payments")
		return
	}

	middlewares.AddFlash(c, middlewares.FlashSuccess, "Payment recorded for "+member.Name)
	c.Redirect(http.StatusSeeOther, "/manage-payments")
}
