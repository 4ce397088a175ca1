package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/middlewares"
	"github.com/mealtracker/meal-tracker/models"
	"github.com/mealtracker/meal-tracker/services"
	"github.com/mealtracker/meal-tracker/utils"
)

type MealController struct {
	svc *services.Services
}

func NewMealController(svc *services.Services) *MealController {
	return &MealController{svc: svc}
}

type mealCell struct {
	Date  time.Time
	Key   string
	Ate   bool
	Today bool
}

type mealRow struct {
	Member models.Member
	Cells  []mealCell
	Meals  int
}

func (mc *MealController) today() time.Time {
	return calendar.Day(mc.svc.Self.Cutoff().LocalNow())
}

func weekOffset(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// DailyMeals renders the attendance grid for active members, one billing
// week at a time. ?week=N shifts N weeks from the current one.
func (mc *MealController) DailyMeals(c *gin.Context) {
	ctx := c.Request.Context()
	today := mc.today()
	offset := weekOffset(c.Query("week"))
	weekStart := calendar.ShiftWeeks(calendar.WeekStart(today), offset)
	weekEnd := calendar.WeekEnd(weekStart)
	days := calendar.WeekDays(weekStart)

	members, err := mc.svc.Members.ListActive(ctx)
	if err != nil {
		fail(c, err, "/daily-meals")
		return
	}
	grid, err := mc.svc.Attendance.Range(ctx, weekStart, weekEnd)
	if err != nil {
		fail(c, err, "/daily-meals")
		return
	}

	todayKey := calendar.Key(today)
	rows := make([]mealRow, 0, len(members))
	for _, m := range members {
		row := mealRow{Member: m, Cells: make([]mealCell, 0, len(days))}
		for _, d := range days {
			key := calendar.Key(d)
			rec, ok := grid[m.ID][key]
			ate := ok && rec.AteMeal
			if ate {
				row.Meals++
			}
			row.Cells = append(row.Cells, mealCell{Date: d, Key: key, Ate: ate, Today: key == todayKey})
		}
		rows = append(rows, row)
	}

	render(c, http.StatusOK, "daily_meals.html", gin.H{
		"Title":         "Daily meals",
		"Days":          days,
		"Rows":          rows,
		"WeekStart":     weekStart,
		"WeekEnd":       weekEnd,
		"Today":         today,
		"WeekOffset":    offset,
		"PrevWeek":      offset - 1,
		"NextWeek":      offset + 1,
		"IsCurrentWeek": offset == 0,
	})
}

// ToggleMeal flips one member's attendance for one day. Script callers get
// JSON, plain form posts get a flash and a redirect back to the same week.
func (mc *MealController) ToggleMeal(c *gin.Context) {
	ctx := c.Request.Context()
	back := "/daily-meals"
	if w := c.PostForm("week"); w != "" && w != "0" {
		back += "?week=" + strconv.Itoa(weekOffset(w))
	}

	var ate bool
	member, day, err := mc.toggleTarget(c)
	if err == nil {
		ate, err = mc.svc.Attendance.Toggle(ctx, member.ID, day)
	}
	if err != nil {
		if utils.IsXHR(c) {
			c.JSON(statusFor(err), gin.H{"success": false, "message": userMessage(err)})
			return
		}
		fail(c, err, back)
		return
	}

	if utils.IsXHR(c) {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"ate":     ate,
			"message": fmt.Sprintf("Updated meal for %s on %s", member.Name, day.Format("Jan 02, 2006")),
		})
		return
	}

	middlewares.AddFlash(c, middlewares.FlashSuccess, fmt.Sprintf("Updated meal for %s on %s", member.Name, calendar.Key(day)))
	c.Redirect(http.StatusSeeOther, back)
}

func (mc *MealController) toggleTarget(c *gin.Context) (*models.Member, time.Time, error) {
	memberID, err := formID(c, "member_id")
	if err != nil {
		return nil, time.Time{}, err
	}
	day, err := services.ParseDate("date", c.PostForm("date"), mc.svc.Self.Cutoff().Location)
	if err != nil {
		return nil, time.Time{}, err
	}
	member, err := mc.svc.Members.Get(c.Request.Context(), memberID)
	if err != nil {
		return nil, time.Time{}, err
	}
	return member, day, nil
}

// MyMeals is the member's own page: today's decision, the current week and
// their balance.
func (mc *MealController) MyMeals(c *gin.Context) {
	ctx := c.Request.Context()
	cutoff := mc.svc.Self.Cutoff()
	now := cutoff.LocalNow()
	today := calendar.Day(now)
	weekStart := calendar.WeekStart(today)

	data := gin.H{
		"Title":       "My meals",
		"Today":       today,
		"CurrentTime": now,
		"Deadline":    cutoff.Deadline(now),
		"CutoffLabel": cutoff.Label(),
		"Locked":      cutoff.Locked(now),
		"WeekStart":   weekStart,
		"WeekEnd":     calendar.WeekEnd(weekStart),
	}

	memberID := middlewares.CurrentMemberID(c)
	if memberID == 0 {
		render(c, http.StatusOK, "my_meals.html", data)
		return
	}

	member, err := mc.svc.Members.Get(ctx, memberID)
	if err != nil {
		fail(c, err, "/my-meals")
		return
	}
	summary, err := mc.svc.Billing.MemberSummary(ctx, memberID, weekStart)
	if err != nil {
		fail(c, err, "/my-meals")
		return
	}
	todayRecord, err := mc.svc.Attendance.RecordFor(ctx, memberID, today)
	if err != nil {
		fail(c, err, "/my-meals")
		return
	}
	priceToday, err := mc.svc.Prices.PriceFor(ctx, today)
	if err != nil {
		fail(c, err, "/my-meals")
		return
	}
	grid, err := mc.svc.Attendance.Range(ctx, weekStart, calendar.WeekEnd(weekStart))
	if err != nil {
		fail(c, err, "/my-meals")
		return
	}

	type weekRow struct {
		Date     time.Time
		Recorded bool
		Ate      bool
		Today    bool
	}
	var rows []weekRow
	for _, d := range calendar.WeekDays(weekStart) {
		rec, ok := grid[memberID][calendar.Key(d)]
		rows = append(rows, weekRow{Date: d, Recorded: ok, Ate: ok && rec.AteMeal, Today: d.Equal(today)})
	}

	data["Member"] = member
	data["TodayRecord"] = todayRecord
	data["WeekRows"] = rows
	data["WeekMeals"] = summary.Meals
	data["WeekTotal"] = summary.Bill
	data["UnpaidBalance"] = summary.Unpaid
	data["PriceToday"] = priceToday
	render(c, http.StatusOK, "my_meals.html", data)
}

// DecideMeal records the member's eat/skip choice for today.
func (mc *MealController) DecideMeal(c *gin.Context) {
	cutoff := mc.svc.Self.Cutoff()
	memberID := middlewares.CurrentMemberID(c)
	if memberID == 0 {
		middlewares.AddFlash(c, middlewares.FlashError, "Your account is not linked to a member. Please contact an admin.")
		c.Redirect(http.StatusSeeOther, "/my-meals")
		return
	}

	lockedMsg := fmt.Sprintf("Changes are locked after %s.", cutoff.Label())
	if cutoff.Locked(cutoff.LocalNow()) {
		middlewares.AddFlash(c, middlewares.FlashError, lockedMsg)
		c.Redirect(http.StatusSeeOther, "/my-meals")
		return
	}

	var ate bool
	switch c.PostForm("decision") {
	case "eat":
		ate = true
	case "skip":
		ate = false
	default:
		middlewares.AddFlash(c, middlewares.FlashError, "Invalid meal selection.")
		c.Redirect(http.StatusSeeOther, "/my-meals")
		return
	}

	_, err := mc.svc.Self.Decide(c.Request.Context(), memberID, ate)
	if errors.Is(err, services.ErrDecisionLocked) {
		middlewares.AddFlash(c, middlewares.FlashError, lockedMsg)
		c.Redirect(http.StatusSeeOther, "/my-meals")
		return
	}
	if err != nil {
		fail(c, err, "/my-meals")
		return
	}

	label := "skipping"
	if ate {
		label = "eating"
	}
	middlewares.AddFlash(c, middlewares.FlashSuccess, fmt.Sprintf("You are marked as %s today.", label))
	c.Redirect(http.StatusSeeOther, "/my-meals")
}
