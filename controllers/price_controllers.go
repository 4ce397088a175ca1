package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mealtracker/meal-tracker/calendar"
	"github.com/mealtracker/meal-tracker/middlewares"
	"github.com/mealtracker/meal-tracker/services"
)

const recentPriceLimit = 30

type PriceController struct {
	Prices *services.PriceService
	Cutoff *services.MealCutoff
}

func NewPriceController(svc *services.Services) *PriceController {
	return &PriceController{Prices: svc.Prices, Cutoff: svc.Self.Cutoff()}
}

func (pc *PriceController) ManagePrice(c *gin.Context) {
	prices, err := pc.Prices.Recent(c.Request.Context(), recentPriceLimit)
	if err != nil {
		fail(c, err, "/manage-price")
		return
	}
	render(c, http.StatusOK, "manage_price.html", gin.H{
		"Title":  "Meal prices",
		"Prices": prices,
		"Today":  calendar.Day(pc.Cutoff.LocalNow()),
	})
}

// SetPrice creates or replaces the price effective from the posted date.
func (pc *PriceController) SetPrice(c *gin.Context) {
	rawDate := strings.TrimSpace(c.PostForm("date"))
	rawPrice := strings.TrimSpace(c.PostForm("price"))
	if rawDate == "" || rawPrice == "" {
		middlewares.AddFlash(c, middlewares.FlashError, "Date and price are required.")
		c.Redirect(http.StatusSeeOther, "/manage-price")
		return
	}

	day, err := services.ParseDate("date", rawDate, pc.Cutoff.Location)
	if err != nil {
		fail(c, err, "/manage-price")
		return
	}
	amount, err := services.ParseAmount("price", rawPrice)
	if err != nil {
		fail(c, err, "/manage-price")
		return
	}

	created, err := pc.Prices.SetPrice(c.Request.Context(), day, amount)
	if err != nil {
		fail(c, err, "/manage-price")
		return
	}

	verb := "Updated"
	if created {
		verb = "Added"
	}
	middlewares.AddFlash(c, middlewares.FlashSuccess, verb+" price for "+calendar.Key(day))
	c.Redirect(http.StatusSeeOther, "/manage-price")
}
