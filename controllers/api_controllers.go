package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
)

// APIController is the JSON surface used by scripts and the grid page.
type APIController struct {
	svc *services.Services
}

func NewAPIController(svc *services.Services) *APIController {
	return &APIController{svc: svc}
}

// MemberSummary returns meals, bill, paid and unpaid for one member and week.
func (ac *APIController) MemberSummary(c *gin.Context) {
	id, err := parseID("id", c.Param("id"))
	if err != nil {
		failJSON(c, err)
		return
	}
	weekStart, err := weekParam(c, calendar.Day(ac.svc.Self.Cutoff().LocalNow()))
	if err != nil {
		failJSON(c, err)
		return
	}

	summary, err := ac.svc.Billing.MemberSummary(c.Request.Context(), id, weekStart)
	if err != nil {
		failJSON(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Summary loaded", summary)
}

// SetDecision stores an explicit eat/skip decision. Admin path, so the
// self-service cutoff does not apply.
func (ac *APIController) SetDecision(c *gin.Context) {
	var req struct {
		MemberID uint   `json:"member_id" binding:"required"`
		Date     string `json:"date" binding:"required"`
		Ate      *bool  `json:"ate" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	day, err := services.ParseDate("date", req.Date, ac.svc.Self.Cutoff().Location)
	if err != nil {
		failJSON(c, err)
		return
	}
	if err := ac.svc.Attendance.SetDecision(c.Request.Context(), req.MemberID, day, *req.Ate); err != nil {
		failJSON(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Decision saved", gin.H{
		"member_id": req.MemberID,
		"date":      calendar.Key(day),
		"ate":       *req.Ate,
	})
}
